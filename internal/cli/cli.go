// Package cli implements the repolens command-line interface.
//
// This package provides commands for searching GitHub repositories,
// analyzing a single repository, serving the HTTP API, and managing the
// HTTP response cache. The CLI is built using cobra and supports verbose
// logging via the charmbracelet/log library.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/repolens/repolens/internal/config"
	"github.com/repolens/repolens/pkg/github"
	"github.com/repolens/repolens/pkg/httputil"
)

// appName is the application name used for directories and display.
const appName = "repolens"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Config *config.Config
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: log.NewWithOptions(w, log.Options{
			ReportTimestamp: true,
			TimeFormat:      "15:04:05.00",
			Level:           level,
		}),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	var (
		configPath string
		noCache    bool
	)

	root := &cobra.Command{
		Use:          appName,
		Short:        "repolens discovers and analyzes GitHub repositories",
		Long:         `repolens searches GitHub for repositories matching your criteria and enriches each hit with activity signals: age, contributors, commit count, license, and detected build tooling.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			cfg.NoCache = noCache
			c.Config = cfg
			return nil
		},
	}

	root.PersistentFlags().StringVar(&configPath, "config", "", "path to config file (default ~/.config/repolens/config.toml)")
	root.PersistentFlags().BoolVar(&noCache, "no-cache", false, "disable the HTTP response cache")

	root.AddCommand(c.searchCommand())
	root.AddCommand(c.analyzeCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// newGitHubClient builds the remote client with the configured cache
// backend. Cache setup failures degrade to no caching; they never block a
// search.
func (c *CLI) newGitHubClient(ctx context.Context) *github.Client {
	if c.Config.Token == "" {
		c.Logger.Warn("GITHUB_TOKEN not set; using unauthenticated requests with a much smaller rate-limit budget")
	}
	return github.NewClient(c.Config.Token, c.newCache(ctx))
}

func (c *CLI) newCache(ctx context.Context) httputil.Cache {
	if c.Config.NoCache {
		return httputil.NewNullCache()
	}
	if c.Config.RedisAddr != "" {
		cache, err := httputil.NewRedisCache(ctx, c.Config.RedisAddr, c.Config.TTL())
		if err == nil {
			return cache
		}
		c.Logger.Warn("redis cache unavailable, falling back to file cache", "addr", c.Config.RedisAddr, "err", err)
	}
	cache, err := httputil.NewFileCache(c.cacheDir(), c.Config.TTL())
	if err != nil {
		c.Logger.Warn("file cache unavailable, caching disabled", "err", err)
		return httputil.NewNullCache()
	}
	return cache
}

// cacheDir returns the cache directory using the XDG standard
// (~/.cache/repolens/) unless the config overrides it.
func (c *CLI) cacheDir() string {
	if c.Config != nil && c.Config.CacheDir != "" {
		return c.Config.CacheDir
	}
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".cache", appName)
}
