package scout

import (
	"context"
	"fmt"
	"testing"
	"time"

	apperrors "github.com/repolens/repolens/pkg/errors"
	"github.com/repolens/repolens/pkg/github"
)

// stubClient implements Client with canned responses per method. The zero
// value fails every call with NOT_FOUND.
type stubClient struct {
	search       func(ctx context.Context, query string, page, perPage int) (*github.SearchPage, error)
	repo         func(ctx context.Context, owner, repo string) (*github.Repository, error)
	contributors func(ctx context.Context, owner, repo string) (int, error)
	commits      func(ctx context.Context, owner, repo, branch string) (int, *github.CommitInfo, error)
}

func (s *stubClient) SearchRepositories(ctx context.Context, query string, page, perPage int) (*github.SearchPage, error) {
	if s.search == nil {
		return nil, apperrors.New(apperrors.ErrCodeNotFound, "no search stub")
	}
	return s.search(ctx, query, page, perPage)
}

func (s *stubClient) GetRepository(ctx context.Context, owner, repo string) (*github.Repository, error) {
	if s.repo == nil {
		return nil, apperrors.New(apperrors.ErrCodeNotFound, "no repo stub")
	}
	return s.repo(ctx, owner, repo)
}

func (s *stubClient) CountContributors(ctx context.Context, owner, repo string) (int, error) {
	if s.contributors == nil {
		return 0, apperrors.New(apperrors.ErrCodeNotFound, "no contributors stub")
	}
	return s.contributors(ctx, owner, repo)
}

func (s *stubClient) CountCommits(ctx context.Context, owner, repo, branch string) (int, *github.CommitInfo, error) {
	if s.commits == nil {
		return 0, nil, apperrors.New(apperrors.ErrCodeNotFound, "no commits stub")
	}
	return s.commits(ctx, owner, repo, branch)
}

// makeRepos builds n sequentially named repositories starting at offset.
func makeRepos(offset, n int) []github.Repository {
	repos := make([]github.Repository, n)
	for i := 0; i < n; i++ {
		name := fmt.Sprintf("repo%d", offset+i)
		repos[i] = github.Repository{
			Name:          name,
			FullName:      "owner/" + name,
			Owner:         github.Owner{Login: "owner"},
			DefaultBranch: "main",
			Stars:         1000 - offset - i,
			CreatedAt:     time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
		}
	}
	return repos
}

func TestSearchSinglePage(t *testing.T) {
	client := &stubClient{
		search: func(_ context.Context, query string, page, perPage int) (*github.SearchPage, error) {
			if query != "language:Go" {
				t.Errorf("unexpected query %q", query)
			}
			if page != 1 {
				t.Errorf("unexpected page %d", page)
			}
			return &github.SearchPage{TotalCount: 3, Items: makeRepos(0, 3)}, nil
		},
	}

	s := NewSearcher(client, nil)
	result, err := s.Search(context.Background(), SearchCriteria{Language: "Go"}, 10)
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}

	if len(result.Candidates) != 3 {
		t.Fatalf("got %d candidates, want 3", len(result.Candidates))
	}
	if result.Total != 3 {
		t.Errorf("got total %d, want 3", result.Total)
	}
	if result.Truncated {
		t.Error("unexpected truncation")
	}
	// Platform ranking order must survive.
	for i, c := range result.Candidates {
		want := fmt.Sprintf("owner/repo%d", i)
		if c.FullName != want {
			t.Errorf("candidate %d is %s, want %s", i, c.FullName, want)
		}
	}
}

// rankedSearch models GitHub's windowing over a fixed global ranking of
// total items: a request for (page, perPage) returns
// ranking[(page-1)*perPage : page*perPage].
func rankedSearch(total int) func(ctx context.Context, query string, page, perPage int) (*github.SearchPage, error) {
	return func(_ context.Context, _ string, page, perPage int) (*github.SearchPage, error) {
		start := (page - 1) * perPage
		if start >= total {
			return &github.SearchPage{TotalCount: total}, nil
		}
		n := min(perPage, total-start)
		return &github.SearchPage{TotalCount: total, Items: makeRepos(start, n)}, nil
	}
}

func TestSearchPaginatesToMax(t *testing.T) {
	var pages, sizes []int
	ranked := rankedSearch(500)
	client := &stubClient{
		search: func(ctx context.Context, query string, page, perPage int) (*github.SearchPage, error) {
			pages = append(pages, page)
			sizes = append(sizes, perPage)
			return ranked(ctx, query, page, perPage)
		},
	}

	s := NewSearcher(client, nil)
	result, err := s.Search(context.Background(), SearchCriteria{Query: "popular"}, 150)
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}

	if len(result.Candidates) != 150 {
		t.Fatalf("got %d candidates, want 150", len(result.Candidates))
	}
	if len(pages) != 2 || pages[0] != 1 || pages[1] != 2 {
		t.Errorf("got pages %v, want [1 2]", pages)
	}
	// Page size must not shrink on the final page: the remote windows by
	// (page-1)*per_page, so a smaller request re-reads earlier offsets.
	for i, size := range sizes {
		if size != 100 {
			t.Errorf("request %d used per_page=%d, want constant 100", i+1, size)
		}
	}
	seen := map[string]bool{}
	for i, c := range result.Candidates {
		if seen[c.FullName] {
			t.Errorf("candidate %d (%s) duplicated across pages", i, c.FullName)
		}
		seen[c.FullName] = true
	}
	if result.Candidates[149].FullName != "owner/repo149" {
		t.Errorf("ranking tail lost: last is %s, want owner/repo149", result.Candidates[149].FullName)
	}
}

func TestSearchTrimsOvershootLocally(t *testing.T) {
	client := &stubClient{search: rankedSearch(500)}

	s := NewSearcher(client, nil)
	result, err := s.Search(context.Background(), SearchCriteria{Query: "popular"}, 30)
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}

	if len(result.Candidates) != 30 {
		t.Fatalf("got %d candidates, want 30", len(result.Candidates))
	}
	// The first 30 of the global ranking, in order, no duplicates.
	for i, c := range result.Candidates {
		want := fmt.Sprintf("owner/repo%d", i)
		if c.FullName != want {
			t.Errorf("candidate %d is %s, want %s", i, c.FullName, want)
		}
	}
}

func TestSearchStopsOnShortPage(t *testing.T) {
	calls := 0
	client := &stubClient{
		search: func(_ context.Context, _ string, page, perPage int) (*github.SearchPage, error) {
			calls++
			return &github.SearchPage{TotalCount: 7, Items: makeRepos(0, 7)}, nil
		},
	}

	s := NewSearcher(client, nil)
	result, err := s.Search(context.Background(), SearchCriteria{Query: "rare"}, 100)
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if calls != 1 {
		t.Errorf("made %d calls, want 1", calls)
	}
	if len(result.Candidates) != 7 {
		t.Errorf("got %d candidates, want 7", len(result.Candidates))
	}
}

func TestSearchTruncatesOnRateLimit(t *testing.T) {
	client := &stubClient{
		search: func(_ context.Context, _ string, page, perPage int) (*github.SearchPage, error) {
			if page == 1 {
				return &github.SearchPage{TotalCount: 400, Items: makeRepos(0, perPage)}, nil
			}
			return nil, &apperrors.RateLimitedError{ResetAt: time.Now().Add(time.Minute)}
		},
	}

	s := NewSearcher(client, nil)
	result, err := s.Search(context.Background(), SearchCriteria{Query: "big"}, 200)
	if err != nil {
		t.Fatalf("rate limit mid-search must not be an error, got: %v", err)
	}

	if !result.Truncated {
		t.Error("expected Truncated to be set")
	}
	if len(result.Candidates) != 100 {
		t.Errorf("got %d candidates, want the 100 collected before the limit", len(result.Candidates))
	}
}

func TestSearchRateLimitOnFirstPage(t *testing.T) {
	client := &stubClient{
		search: func(_ context.Context, _ string, _, _ int) (*github.SearchPage, error) {
			return nil, &apperrors.RateLimitedError{}
		},
	}

	s := NewSearcher(client, nil)
	result, err := s.Search(context.Background(), SearchCriteria{Query: "anything"}, 50)
	if err != nil {
		t.Fatalf("expected empty truncated result, got error: %v", err)
	}
	if !result.Truncated || len(result.Candidates) != 0 {
		t.Errorf("got %d candidates truncated=%v, want 0 and true", len(result.Candidates), result.Truncated)
	}
}

func TestSearchFatalError(t *testing.T) {
	client := &stubClient{
		search: func(_ context.Context, _ string, _, _ int) (*github.SearchPage, error) {
			return nil, apperrors.New(apperrors.ErrCodeNetwork, "connection refused")
		},
	}

	s := NewSearcher(client, nil)
	_, err := s.Search(context.Background(), SearchCriteria{Query: "anything"}, 50)
	if err == nil {
		t.Fatal("expected non-rate-limit remote failure to be fatal")
	}
	if !apperrors.Is(err, apperrors.ErrCodeNetwork) {
		t.Errorf("got code %q, want NETWORK_ERROR", apperrors.GetCode(err))
	}
}

func TestSearchInvalidCriteria(t *testing.T) {
	s := NewSearcher(&stubClient{}, nil)
	_, err := s.Search(context.Background(), SearchCriteria{MinStars: 5}, 10)
	if !apperrors.Is(err, apperrors.ErrCodeInvalidCriteria) {
		t.Fatalf("got %v, want INVALID_CRITERIA", err)
	}
}
