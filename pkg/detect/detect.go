// Package detect infers build tools and frameworks in use by a repository
// from the presence and content of well-known manifest files, without
// cloning. Detection is best effort: false negatives are acceptable, and a
// repository where nothing matches (or nothing is readable) yields empty
// results rather than an error.
package detect

import (
	"context"
	"strings"

	"github.com/charmbracelet/log"
)

// ContentFetcher retrieves raw file content from a repository's default
// branch. *github.Client satisfies it. A missing file must surface as an
// error; the detector treats any fetch failure as "not present".
type ContentFetcher interface {
	FetchFileRaw(ctx context.Context, owner, repo, path string) (string, error)
}

// Detector probes a fixed, ordered rule table against a repository.
type Detector struct {
	fetcher ContentFetcher
	rules   []Rule
	logger  *log.Logger
}

// NewDetector creates a Detector with the given rules. Pass nil rules to
// use [DefaultRules].
func NewDetector(fetcher ContentFetcher, rules []Rule, logger *log.Logger) *Detector {
	if rules == nil {
		rules = DefaultRules
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Detector{fetcher: fetcher, rules: rules, logger: logger}
}

// Detect probes the rule table against owner/repo and returns the build
// tools and frameworks found. Most probes are expected to 404; that is a
// normal "not present" signal. Detect never fails: an inaccessible
// repository returns empty sets.
func (d *Detector) Detect(ctx context.Context, owner, repo string) (tools, frameworks []string) {
	seenFrameworks := map[string]bool{}

	for _, rule := range d.rules {
		content, ok := d.probe(ctx, owner, repo, rule.Paths)
		if !ok {
			continue
		}
		tools = append(tools, rule.Tool)

		lower := strings.ToLower(content)
		for _, fw := range rule.Frameworks {
			if seenFrameworks[fw.Name] {
				continue
			}
			if strings.Contains(lower, strings.ToLower(fw.Token)) {
				seenFrameworks[fw.Name] = true
				frameworks = append(frameworks, fw.Name)
			}
		}
	}

	d.logger.Debug("detection complete", "repo", owner+"/"+repo,
		"tools", len(tools), "frameworks", len(frameworks))
	return tools, frameworks
}

// probe fetches the first existing path from candidates. It returns the
// file content and whether any path existed.
func (d *Detector) probe(ctx context.Context, owner, repo string, paths []string) (string, bool) {
	for _, path := range paths {
		content, err := d.fetcher.FetchFileRaw(ctx, owner, repo, path)
		if err != nil {
			continue
		}
		return content, true
	}
	return "", false
}
