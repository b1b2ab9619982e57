package cli

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/repolens/repolens/pkg/detect"
	"github.com/repolens/repolens/pkg/github"
	"github.com/repolens/repolens/pkg/scout"
)

// searchFlags collects the search command's options.
type searchFlags struct {
	language    string
	topics      []string
	minStars    int
	minForks    int
	maxResults  int
	runDetect   bool
	pick        bool
	javaVersion string
	buildTool   string
}

// searchCommand creates the search subcommand.
func (c *CLI) searchCommand() *cobra.Command {
	flags := &searchFlags{}

	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Search GitHub repositories and enrich the results",
		Long: `Search GitHub repositories by free text, language, topics, and star/fork
minimums, then enrich each hit with contributor count, commit count,
license, and age.

Examples:
  repolens search kubernetes --language Go --stars 500
  repolens search --language Java --topic maven --stars 100
  repolens search web --topic framework --topic http --max 10 --detect
  repolens search --java-version 8 --build-tool maven --stars 50`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := ""
			if len(args) == 1 {
				query = args[0]
			}
			return c.runSearch(cmd.Context(), query, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.language, "language", "l", "", "primary language filter")
	cmd.Flags().StringArrayVarP(&flags.topics, "topic", "t", nil, "topic filter, repeatable (all must match)")
	cmd.Flags().IntVar(&flags.minStars, "stars", 0, "minimum star count")
	cmd.Flags().IntVar(&flags.minForks, "forks", 0, "minimum fork count")
	cmd.Flags().IntVarP(&flags.maxResults, "max", "m", 0, "maximum number of results (default from config)")
	cmd.Flags().BoolVar(&flags.runDetect, "detect", false, "also detect build tools and frameworks per result")
	cmd.Flags().BoolVar(&flags.pick, "pick", false, "interactively pick a result and analyze it")
	cmd.Flags().StringVar(&flags.javaVersion, "java-version", "", "probe for repositories targeting a Java version (8, 11, 17, 21)")
	cmd.Flags().StringVar(&flags.buildTool, "build-tool", "", "restrict the Java probe to a build tool (maven, gradle, ant)")

	return cmd
}

func (c *CLI) runSearch(ctx context.Context, query string, flags *searchFlags) error {
	client := c.newGitHubClient(ctx)
	searcher := scout.NewSearcher(client, c.Logger)
	enricher := scout.NewEnricher(client, c.Logger, c.Config.Concurrency)

	maxResults := flags.maxResults
	if maxResults <= 0 {
		maxResults = c.Config.MaxResults
	}

	result, err := c.runQuery(ctx, searcher, query, flags, maxResults)
	if err != nil {
		return err
	}
	if len(result.Candidates) == 0 {
		printInfo("No repositories matched")
		return nil
	}

	spinner := newSpinner(fmt.Sprintf("Enriching %d repositories...", len(result.Candidates)))
	spinner.Start()
	prog := newProgress(c.Logger)
	profiles := enricher.EnrichAll(ctx, result.Candidates)
	spinner.Stop()
	prog.done(fmt.Sprintf("Enriched %d repositories", len(profiles)))

	if flags.runDetect {
		detector := detect.NewDetector(client, nil, c.Logger)
		for i := range profiles {
			profiles[i].BuildTools, profiles[i].Frameworks =
				detector.Detect(ctx, profiles[i].Owner, profiles[i].Name)
		}
	}

	fmt.Println(renderProfileTable(profiles))
	if result.Truncated {
		printWarning("Rate limit reached: results truncated to %d of %d matches", len(profiles), result.Total)
	} else {
		printDetail("%d of %d matching repositories", len(profiles), result.Total)
	}

	if flags.runDetect {
		printNewline()
		for _, p := range profiles {
			if len(p.BuildTools) > 0 || len(p.Frameworks) > 0 {
				printDetail("%s: %s", p.FullName, strings.Join(append(p.BuildTools, p.Frameworks...), ", "))
			}
		}
	}

	if flags.pick {
		return c.pickAndAnalyze(ctx, client, profiles)
	}
	return nil
}

// runQuery dispatches between the regular criteria search and the Java
// version probe.
func (c *CLI) runQuery(ctx context.Context, searcher *scout.Searcher, query string, flags *searchFlags, maxResults int) (*scout.SearchResult, error) {
	spinner := newSpinner("Searching repositories...")
	spinner.Start()
	defer spinner.Stop()

	if flags.javaVersion != "" {
		return searcher.SearchJavaVersion(ctx, scout.JavaSearchOptions{
			Version:    flags.javaVersion,
			BuildTool:  flags.buildTool,
			MinStars:   flags.minStars,
			MaxResults: maxResults,
		})
	}

	return searcher.Search(ctx, scout.SearchCriteria{
		Query:    query,
		Language: flags.language,
		Topics:   flags.topics,
		MinStars: flags.minStars,
		MinForks: flags.minForks,
	}, maxResults)
}

// pickAndAnalyze opens an interactive list and runs a full analysis on the
// selected repository.
func (c *CLI) pickAndAnalyze(ctx context.Context, client *github.Client, profiles []scout.Profile) error {
	m := NewProfileListModel(profiles)
	p := tea.NewProgram(m)
	finalModel, err := p.Run()
	if err != nil {
		return err
	}

	fm, ok := finalModel.(ProfileListModel)
	if !ok || fm.Selected == nil {
		printDetail("No selection made")
		return nil
	}

	printNewline()
	return c.analyzeRepo(ctx, client, fm.Selected.Owner, fm.Selected.Name)
}
