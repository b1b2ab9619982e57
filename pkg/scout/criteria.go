// Package scout implements the repository discovery and enrichment pipeline:
// translating search criteria into the GitHub query grammar, paginating
// search results, and enriching candidates with derived statistics that the
// search endpoint does not provide directly.
package scout

import (
	"strconv"
	"strings"

	apperrors "github.com/repolens/repolens/pkg/errors"
)

// SearchCriteria describes what to search for. At least one of Query,
// Language, or Topics must be set; star and fork minimums alone do not
// make a meaningful search.
type SearchCriteria struct {
	Query    string   // free-text term, passed through verbatim
	Language string   // primary language filter
	Topics   []string // all topics must match (AND semantics)
	MinStars int      // minimum star count, 0 disables the qualifier
	MinForks int      // minimum fork count, 0 disables the qualifier
}

// Validate reports whether the criteria specify enough to search on.
func (c SearchCriteria) Validate() error {
	if strings.TrimSpace(c.Query) == "" && strings.TrimSpace(c.Language) == "" && len(c.Topics) == 0 {
		return apperrors.New(apperrors.ErrCodeInvalidCriteria,
			"search criteria underspecified: provide a query, a language, or at least one topic")
	}
	return nil
}

// BuildQuery deterministically composes the GitHub search-qualifier string
// for the criteria: the free-text term verbatim, language:<L>, one
// topic:<T> per topic, and stars:>=<N> / forks:>=<N> when the minimums are
// positive. Pure; no network or side effects.
func (c SearchCriteria) BuildQuery() (string, error) {
	if err := c.Validate(); err != nil {
		return "", err
	}

	var parts []string
	if q := strings.TrimSpace(c.Query); q != "" {
		parts = append(parts, q)
	}
	if l := strings.TrimSpace(c.Language); l != "" {
		parts = append(parts, "language:"+l)
	}
	for _, topic := range c.Topics {
		if t := strings.TrimSpace(topic); t != "" {
			parts = append(parts, "topic:"+t)
		}
	}
	if c.MinStars > 0 {
		parts = append(parts, "stars:>="+strconv.Itoa(c.MinStars))
	}
	if c.MinForks > 0 {
		parts = append(parts, "forks:>="+strconv.Itoa(c.MinForks))
	}
	return strings.Join(parts, " "), nil
}
