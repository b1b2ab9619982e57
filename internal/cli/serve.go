package cli

import (
	"github.com/spf13/cobra"

	"github.com/repolens/repolens/internal/server"
	"github.com/repolens/repolens/pkg/detect"
	"github.com/repolens/repolens/pkg/scout"
)

// serveCommand creates the serve subcommand.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the repository discovery HTTP API",
		Long: `Start an HTTP server exposing search, Java version probing, and
single-repository analysis as JSON endpoints.

Endpoints:
  GET /healthz
  GET /api/v1/search?q=...&language=...&topic=...&stars=...
  GET /api/v1/search-java?version=8&build_tool=maven
  GET /api/v1/analyze/{owner}/{repo}`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if addr == "" {
				addr = c.Config.ListenAddr
			}

			client := c.newGitHubClient(ctx)
			searcher := scout.NewSearcher(client, c.Logger)
			enricher := scout.NewEnricher(client, c.Logger, c.Config.Concurrency)
			detector := detect.NewDetector(client, nil, c.Logger)
			analyzer := scout.NewAnalyzer(client, detector, c.Logger)

			srv := server.New(searcher, enricher, analyzer, c.Logger, c.Config.MaxResults)
			printInfo("Listening on %s", addr)
			return srv.ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", "", "listen address (default from config, \":8080\")")
	return cmd
}
