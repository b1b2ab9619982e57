package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/repolens/repolens/pkg/detect"
	"github.com/repolens/repolens/pkg/github"
	"github.com/repolens/repolens/pkg/scout"
)

// analyzeCommand creates the analyze subcommand.
func (c *CLI) analyzeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "analyze <owner/repo>",
		Short: "Analyze a single GitHub repository",
		Long: `Fetch a repository's details and produce a full profile: activity
signals, contributor and commit counts, license, and detected build
tools and frameworks.

Accepts "owner/repo" or a full GitHub URL.

Examples:
  repolens analyze torvalds/linux
  repolens analyze https://github.com/golang/go`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			owner, repo, err := github.ParseRepoRef(args[0])
			if err != nil {
				return err
			}
			client := c.newGitHubClient(cmd.Context())
			return c.analyzeRepo(cmd.Context(), client, owner, repo)
		},
	}
}

func (c *CLI) analyzeRepo(ctx context.Context, client *github.Client, owner, repo string) error {
	detector := detect.NewDetector(client, nil, c.Logger)
	analyzer := scout.NewAnalyzer(client, detector, c.Logger)

	spinner := newSpinner("Analyzing " + owner + "/" + repo + "...")
	spinner.Start()
	prog := newProgress(c.Logger)
	profile, err := analyzer.Analyze(ctx, owner, repo)
	spinner.Stop()
	if err != nil {
		return err
	}
	prog.done("Analyzed " + profile.FullName)

	printNewline()
	printProfileDetail(*profile)
	return nil
}
