package scout

import (
	"testing"
	"time"

	"github.com/repolens/repolens/pkg/github"
)

func TestNewCandidate(t *testing.T) {
	created := time.Date(2019, 6, 1, 0, 0, 0, 0, time.UTC)
	r := github.Repository{
		Name:          "proj",
		FullName:      "owner/proj",
		Owner:         github.Owner{Login: "owner"},
		HTMLURL:       "https://github.com/owner/proj",
		Description:   "a project",
		Language:      "Go",
		DefaultBranch: "main",
		Stars:         10,
		Forks:         2,
		OpenIssues:    3,
		Size:          512,
		Topics:        []string{"cli"},
		CreatedAt:     created,
		License:       &github.License{SPDXID: "Apache-2.0", Name: "Apache License 2.0"},
	}

	c := NewCandidate(r)
	if c.Owner != "owner" || c.Name != "proj" || c.FullName != "owner/proj" {
		t.Errorf("identity fields wrong: %+v", c)
	}
	if c.License == nil || *c.License != "Apache-2.0" {
		t.Errorf("got license %v, want Apache-2.0", c.License)
	}
	if !c.CreatedAt.Equal(created) {
		t.Errorf("got created %v, want %v", c.CreatedAt, created)
	}
}

func TestNewCandidateNoAssertionLicense(t *testing.T) {
	r := github.Repository{
		FullName: "owner/proj",
		License:  &github.License{SPDXID: "NOASSERTION", Name: "Other"},
	}
	if c := NewCandidate(r); c.License != nil {
		t.Errorf("NOASSERTION should map to unknown, got %q", *c.License)
	}
}

func TestAgeYears(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		name    string
		created time.Time
		want    float64
	}{
		{"one year", now.AddDate(-1, 0, 0), 1.0},
		{"half year", now.AddDate(0, -6, 0), 0.5},
		{"decade", now.AddDate(-10, 0, 0), 10.0},
		{"zero time", time.Time{}, 0},
		{"future", now.AddDate(1, 0, 0), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ageYears(tt.created, now)
			if got != tt.want {
				t.Errorf("got %.1f, want %.1f", got, tt.want)
			}
		})
	}
}
