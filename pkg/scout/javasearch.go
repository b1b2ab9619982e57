package scout

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	apperrors "github.com/repolens/repolens/pkg/errors"
)

// JavaSearchOptions selects repositories likely to target a specific Java
// version. Version detection through search is heuristic; candidates get a
// confidence score from description and topic keywords.
type JavaSearchOptions struct {
	Version    string // "8", "11", "17", or "21"
	BuildTool  string // optional: "maven", "gradle", or "ant"
	MinStars   int
	MaxResults int
}

// javaVersions enumerates the supported probe targets.
var javaVersions = map[string]bool{"8": true, "11": true, "17": true, "21": true}

// SearchJavaVersion runs several narrower queries per version (GitHub
// allows at most five OR operators per query, so one broad query is not
// possible), de-duplicates hits by full name, scores each candidate, and
// returns the top MaxResults ordered by (score, stars) descending.
func (s *Searcher) SearchJavaVersion(ctx context.Context, opts JavaSearchOptions) (*SearchResult, error) {
	if !javaVersions[opts.Version] {
		return nil, apperrors.New(apperrors.ErrCodeInvalidCriteria,
			"unsupported java version %q: use 8, 11, 17, or 21", opts.Version)
	}
	if opts.MaxResults <= 0 {
		opts.MaxResults = 50
	}

	queries := javaVersionQueries(opts)
	s.logger.Debug("java version probe", "version", opts.Version, "queries", len(queries))

	type scored struct {
		candidate Candidate
		score     int
	}
	var (
		all       []scored
		seen      = map[string]bool{}
		truncated bool
	)

	for _, query := range queries {
		sp, err := s.client.SearchRepositories(ctx, query, 1, searchPerPage)
		if err != nil {
			var rl *apperrors.RateLimitedError
			if errors.As(err, &rl) {
				s.logger.Warn("rate limit hit during version probe", "collected", len(all))
				truncated = true
				break
			}
			// A single rejected probe query degrades coverage, not the search.
			s.logger.Debug("probe query failed", "query", query, "err", err)
			continue
		}
		for _, item := range sp.Items {
			if seen[item.FullName] {
				continue
			}
			seen[item.FullName] = true
			c := NewCandidate(item)
			all = append(all, scored{candidate: c, score: javaVersionScore(c, opts.Version)})
		}
	}

	sort.SliceStable(all, func(i, j int) bool {
		if all[i].score != all[j].score {
			return all[i].score > all[j].score
		}
		return all[i].candidate.Stars > all[j].candidate.Stars
	})
	if len(all) > opts.MaxResults {
		all = all[:opts.MaxResults]
	}

	result := &SearchResult{Total: len(seen), Truncated: truncated}
	for _, sc := range all {
		result.Candidates = append(result.Candidates, sc.candidate)
	}
	return result, nil
}

// javaVersionQueries builds the per-version probe queries, each staying
// under GitHub's OR-operator limit.
func javaVersionQueries(opts JavaSearchOptions) []string {
	base := "language:Java"
	if opts.MinStars > 0 {
		base += fmt.Sprintf(" stars:>=%d", opts.MinStars)
	}
	switch opts.BuildTool {
	case "maven":
		base += " pom.xml"
	case "gradle":
		base += " build.gradle"
	case "ant":
		base += " build.xml"
	}

	v := opts.Version
	queries := []string{
		fmt.Sprintf("%s (java %s OR java%s OR jdk%s)", base, v, v, v),
		fmt.Sprintf("%s maven.compiler.source %s", base, v),
		fmt.Sprintf("%s sourceCompatibility %s", base, v),
	}
	if v == "8" {
		queries = append(queries, base+" (lambda OR stream)", base+` "1.8"`)
	}
	return queries
}

// javaVersionScore estimates how confidently a candidate targets the given
// Java version: description keyword hits score 3, topic hits score 5.
func javaVersionScore(c Candidate, version string) int {
	score := 0

	desc := strings.ToLower(c.Description)
	keywords := []string{"java " + version, "java" + version, "jdk" + version}
	if version == "8" {
		keywords = append(keywords, "1.8", "lambda", "stream")
	}
	for _, kw := range keywords {
		if strings.Contains(desc, kw) {
			score += 3
		}
	}

	topicTags := map[string]bool{
		"java" + version:  true,
		"java-" + version: true,
		"jdk" + version:   true,
	}
	for _, t := range c.Topics {
		if topicTags[strings.ToLower(t)] {
			score += 5
		}
	}
	return score
}
