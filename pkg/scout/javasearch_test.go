package scout

import (
	"context"
	"strings"
	"testing"
	"time"

	apperrors "github.com/repolens/repolens/pkg/errors"
	"github.com/repolens/repolens/pkg/github"
)

func TestSearchJavaVersionInvalid(t *testing.T) {
	s := NewSearcher(&stubClient{}, nil)
	for _, v := range []string{"", "7", "9", "latest"} {
		_, err := s.SearchJavaVersion(context.Background(), JavaSearchOptions{Version: v})
		if !apperrors.Is(err, apperrors.ErrCodeInvalidCriteria) {
			t.Errorf("version %q: got %v, want INVALID_CRITERIA", v, err)
		}
	}
}

func TestSearchJavaVersionScoring(t *testing.T) {
	client := &stubClient{
		search: func(_ context.Context, query string, _, _ int) (*github.SearchPage, error) {
			if !strings.Contains(query, "language:Java") {
				t.Errorf("probe query missing language qualifier: %q", query)
			}
			return &github.SearchPage{
				TotalCount: 3,
				Items: []github.Repository{
					{
						FullName: "a/plain",
						Owner:    github.Owner{Login: "a"},
						Name:     "plain",
						Stars:    5000,
					},
					{
						FullName:    "b/tagged",
						Owner:       github.Owner{Login: "b"},
						Name:        "tagged",
						Stars:       100,
						Topics:      []string{"java-17"},
						Description: "utilities for java 17",
					},
					{
						FullName:    "c/mentioned",
						Owner:       github.Owner{Login: "c"},
						Name:        "mentioned",
						Stars:       900,
						Description: "modern jdk17 toolkit",
					},
				},
			}, nil
		},
	}

	s := NewSearcher(client, nil)
	result, err := s.SearchJavaVersion(context.Background(), JavaSearchOptions{Version: "17", MaxResults: 10})
	if err != nil {
		t.Fatalf("probe failed: %v", err)
	}

	// Duplicate items across probe queries collapse to one entry each.
	if len(result.Candidates) != 3 {
		t.Fatalf("got %d candidates, want 3 deduplicated", len(result.Candidates))
	}

	// Topic tag plus description keyword outranks stars alone.
	if result.Candidates[0].FullName != "b/tagged" {
		t.Errorf("top candidate is %s, want b/tagged", result.Candidates[0].FullName)
	}
	if result.Candidates[1].FullName != "c/mentioned" {
		t.Errorf("second candidate is %s, want c/mentioned", result.Candidates[1].FullName)
	}
	if result.Candidates[2].FullName != "a/plain" {
		t.Errorf("unscored candidate should rank last, got %s", result.Candidates[2].FullName)
	}
}

func TestSearchJavaVersionTruncatesOnRateLimit(t *testing.T) {
	calls := 0
	client := &stubClient{
		search: func(_ context.Context, _ string, _, _ int) (*github.SearchPage, error) {
			calls++
			if calls == 1 {
				return &github.SearchPage{
					TotalCount: 1,
					Items: []github.Repository{
						{FullName: "a/one", Owner: github.Owner{Login: "a"}, Name: "one"},
					},
				}, nil
			}
			return nil, &apperrors.RateLimitedError{ResetAt: time.Now().Add(time.Hour)}
		},
	}

	s := NewSearcher(client, nil)
	result, err := s.SearchJavaVersion(context.Background(), JavaSearchOptions{Version: "11"})
	if err != nil {
		t.Fatalf("rate limit mid-probe must not be an error, got: %v", err)
	}
	if !result.Truncated {
		t.Error("expected Truncated")
	}
	if len(result.Candidates) != 1 {
		t.Errorf("got %d candidates, want the 1 collected before the limit", len(result.Candidates))
	}
	if calls != 2 {
		t.Errorf("probe should stop at the rate limit, made %d calls", calls)
	}
}

func TestSearchJavaVersionToleratesFailedProbe(t *testing.T) {
	calls := 0
	client := &stubClient{
		search: func(_ context.Context, _ string, _, _ int) (*github.SearchPage, error) {
			calls++
			if calls == 1 {
				return nil, apperrors.New(apperrors.ErrCodeNetwork, "422 rejected query")
			}
			return &github.SearchPage{
				TotalCount: 1,
				Items: []github.Repository{
					{FullName: "a/one", Owner: github.Owner{Login: "a"}, Name: "one"},
				},
			}, nil
		},
	}

	s := NewSearcher(client, nil)
	result, err := s.SearchJavaVersion(context.Background(), JavaSearchOptions{Version: "21"})
	if err != nil {
		t.Fatalf("single failed probe must not fail the search: %v", err)
	}
	if len(result.Candidates) != 1 {
		t.Errorf("got %d candidates, want 1 from remaining probes", len(result.Candidates))
	}
	if result.Truncated {
		t.Error("a rejected probe is not truncation")
	}
}

func TestJavaVersionQueries(t *testing.T) {
	queries := javaVersionQueries(JavaSearchOptions{Version: "8", BuildTool: "maven", MinStars: 50})
	if len(queries) != 5 {
		t.Fatalf("got %d queries for version 8, want 5", len(queries))
	}
	for _, q := range queries {
		if !strings.Contains(q, "stars:>=50") {
			t.Errorf("query missing star minimum: %q", q)
		}
		if !strings.Contains(q, "pom.xml") {
			t.Errorf("query missing maven hint: %q", q)
		}
		// GitHub rejects queries with more than five OR operators.
		if strings.Count(q, " OR ") > 5 {
			t.Errorf("query exceeds OR limit: %q", q)
		}
	}

	if got := javaVersionQueries(JavaSearchOptions{Version: "17"}); len(got) != 3 {
		t.Errorf("got %d queries for version 17, want 3", len(got))
	}
}
