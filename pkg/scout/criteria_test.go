package scout

import (
	"testing"

	apperrors "github.com/repolens/repolens/pkg/errors"
)

func TestBuildQuery(t *testing.T) {
	tests := []struct {
		name     string
		criteria SearchCriteria
		want     string
	}{
		{
			name:     "free text only",
			criteria: SearchCriteria{Query: "kubernetes"},
			want:     "kubernetes",
		},
		{
			name:     "language only",
			criteria: SearchCriteria{Language: "Go"},
			want:     "language:Go",
		},
		{
			name:     "java maven with stars",
			criteria: SearchCriteria{Language: "Java", Topics: []string{"maven"}, MinStars: 100},
			want:     "language:Java topic:maven stars:>=100",
		},
		{
			name: "all qualifiers",
			criteria: SearchCriteria{
				Query:    "web framework",
				Language: "Go",
				Topics:   []string{"http", "router"},
				MinStars: 500,
				MinForks: 50,
			},
			want: "web framework language:Go topic:http topic:router stars:>=500 forks:>=50",
		},
		{
			name:     "zero minimums omitted",
			criteria: SearchCriteria{Query: "cli", MinStars: 0, MinForks: 0},
			want:     "cli",
		},
		{
			name:     "whitespace trimmed",
			criteria: SearchCriteria{Query: "  redis  ", Language: " Go "},
			want:     "redis language:Go",
		},
		{
			name:     "blank topics skipped",
			criteria: SearchCriteria{Language: "Rust", Topics: []string{"", "  ", "async"}},
			want:     "language:Rust topic:async",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.criteria.BuildQuery()
			if err != nil {
				t.Fatalf("BuildQuery failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBuildQueryDeterministic(t *testing.T) {
	c := SearchCriteria{Query: "db", Language: "Go", Topics: []string{"sql", "orm"}, MinStars: 10}
	first, err := c.BuildQuery()
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 5; i++ {
		got, err := c.BuildQuery()
		if err != nil {
			t.Fatal(err)
		}
		if got != first {
			t.Fatalf("query not deterministic: %q vs %q", got, first)
		}
	}
}

func TestValidateUnderspecified(t *testing.T) {
	tests := []struct {
		name     string
		criteria SearchCriteria
	}{
		{"empty", SearchCriteria{}},
		{"whitespace query", SearchCriteria{Query: "   "}},
		{"stars alone", SearchCriteria{MinStars: 100}},
		{"forks alone", SearchCriteria{MinForks: 10}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.criteria.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !apperrors.Is(err, apperrors.ErrCodeInvalidCriteria) {
				t.Errorf("got code %q, want INVALID_CRITERIA", apperrors.GetCode(err))
			}
			if _, err := tt.criteria.BuildQuery(); err == nil {
				t.Error("BuildQuery should reject invalid criteria")
			}
		})
	}
}
