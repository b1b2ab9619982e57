package scout

import (
	"context"
	"errors"

	"github.com/charmbracelet/log"

	apperrors "github.com/repolens/repolens/pkg/errors"
	"github.com/repolens/repolens/pkg/github"
)

// Client is the remote capability set the pipeline needs: search,
// repository detail, contributor count, and commit count. *github.Client
// satisfies it; tests substitute stubs.
type Client interface {
	SearchRepositories(ctx context.Context, query string, page, perPage int) (*github.SearchPage, error)
	GetRepository(ctx context.Context, owner, repo string) (*github.Repository, error)
	CountContributors(ctx context.Context, owner, repo string) (int, error)
	CountCommits(ctx context.Context, owner, repo, branch string) (int, *github.CommitInfo, error)
}

// searchPerPage is the page size for search pagination. GitHub allows up
// to 100 items per search page.
const searchPerPage = 100

// SearchResult is the outcome of one search request.
type SearchResult struct {
	Candidates []Candidate `json:"candidates"`
	Total      int         `json:"total"`     // platform-reported total matches
	Truncated  bool        `json:"truncated"` // rate limit stopped pagination early
}

// Searcher drives the paginated search endpoint and yields candidates in
// the platform's native ranking order.
type Searcher struct {
	client Client
	logger *log.Logger
}

// NewSearcher creates a Searcher. A nil logger falls back to log.Default().
func NewSearcher(client Client, logger *log.Logger) *Searcher {
	if logger == nil {
		logger = log.Default()
	}
	return &Searcher{client: client, logger: logger}
}

// Search builds the query from criteria and accumulates candidates until
// maxResults is reached or the platform reports no further pages. Results
// are never re-sorted.
//
// If the rate limit is exhausted mid-pagination, Search stops and returns
// the candidates collected so far with Truncated set; that is not an
// error. Any other remote failure is fatal to the search request.
func (s *Searcher) Search(ctx context.Context, criteria SearchCriteria, maxResults int) (*SearchResult, error) {
	query, err := criteria.BuildQuery()
	if err != nil {
		return nil, err
	}
	if maxResults <= 0 {
		maxResults = searchPerPage
	}

	s.logger.Debug("searching repositories", "query", query, "max", maxResults)

	result := &SearchResult{}
	for page := 1; len(result.Candidates) < maxResults; page++ {
		// per_page must stay constant across pages: GitHub windows results
		// as items[(page-1)*per_page : page*per_page], so shrinking the
		// final request would re-read earlier offsets. Overshoot on the
		// last page is trimmed locally instead.
		sp, err := s.client.SearchRepositories(ctx, query, page, searchPerPage)
		if err != nil {
			var rl *apperrors.RateLimitedError
			if errors.As(err, &rl) {
				s.logger.Warn("rate limit hit mid-search, returning partial results",
					"collected", len(result.Candidates), "reset_in", rl.RetryAfter())
				result.Truncated = true
				return result, nil
			}
			return nil, apperrors.Wrap(apperrors.ErrCodeNetwork, err, "search repositories")
		}

		result.Total = sp.TotalCount
		for _, item := range sp.Items {
			if len(result.Candidates) >= maxResults {
				break
			}
			result.Candidates = append(result.Candidates, NewCandidate(item))
		}

		if len(sp.Items) < searchPerPage {
			break // no further pages
		}
	}

	s.logger.Debug("search complete",
		"candidates", len(result.Candidates), "total", result.Total, "truncated", result.Truncated)
	return result, nil
}
