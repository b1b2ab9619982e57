package scout

import (
	"math"
	"time"

	"github.com/repolens/repolens/pkg/github"
)

// Candidate is a repository returned by a search call, before enrichment.
// It carries everything the search payload provides and is immutable once
// created.
type Candidate struct {
	Owner         string    `json:"owner"`
	Name          string    `json:"name"`
	FullName      string    `json:"full_name"`
	URL           string    `json:"url"`
	Description   string    `json:"description,omitempty"`
	Stars         int       `json:"stars"`
	Forks         int       `json:"forks"`
	OpenIssues    int       `json:"open_issues"`
	Language      string    `json:"language,omitempty"`
	Topics        []string  `json:"topics,omitempty"`
	SizeKB        int       `json:"size_kb"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
	DefaultBranch string    `json:"default_branch"`
	License       *string   `json:"license,omitempty"`
}

// Profile is a candidate plus derived statistics. Every derived field is
// independently optional: a nil pointer or empty slice means that single
// enrichment lookup failed or found nothing, while the rest of the profile
// stays valid.
type Profile struct {
	Candidate

	AgeYears     float64            `json:"age_years"`
	Contributors *int               `json:"contributors"`
	Commits      *int               `json:"commits"`
	LastCommit   *github.CommitInfo `json:"last_commit,omitempty"`
	BuildTools   []string           `json:"build_tools,omitempty"`
	Frameworks   []string           `json:"frameworks,omitempty"`
}

// AnalysisResult has the same shape as Profile; it is produced from a
// direct repository identifier rather than a search hit, and always has
// detection results populated (possibly empty).
type AnalysisResult = Profile

// NewCandidate converts a GitHub API repository into a Candidate.
func NewCandidate(r github.Repository) Candidate {
	c := Candidate{
		Owner:         r.Owner.Login,
		Name:          r.Name,
		FullName:      r.FullName,
		URL:           r.HTMLURL,
		Description:   r.Description,
		Stars:         r.Stars,
		Forks:         r.Forks,
		OpenIssues:    r.OpenIssues,
		Language:      r.Language,
		Topics:        r.Topics,
		SizeKB:        r.Size,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
		DefaultBranch: r.DefaultBranch,
	}
	if r.License != nil && r.License.SPDXID != "" && r.License.SPDXID != "NOASSERTION" {
		spdx := r.License.SPDXID
		c.License = &spdx
	}
	return c
}

// ageYears computes the repository age in years from its creation
// timestamp, rounded to one decimal. Pure; derived from data already in
// hand, no remote call.
func ageYears(createdAt, now time.Time) float64 {
	if createdAt.IsZero() || createdAt.After(now) {
		return 0
	}
	days := now.Sub(createdAt).Hours() / 24
	return math.Round(days/365.25*10) / 10
}
