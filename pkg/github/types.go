package github

import "time"

// Repository is the GitHub API representation of a repository, trimmed to
// the fields the discovery pipeline consumes.
type Repository struct {
	ID            int64      `json:"id"`
	Name          string     `json:"name"`
	FullName      string     `json:"full_name"`
	Owner         Owner      `json:"owner"`
	HTMLURL       string     `json:"html_url"`
	Description   string     `json:"description"`
	Language      string     `json:"language"`
	DefaultBranch string     `json:"default_branch"`
	Stars         int        `json:"stargazers_count"`
	Forks         int        `json:"forks_count"`
	OpenIssues    int        `json:"open_issues_count"`
	Size          int        `json:"size"`
	Topics        []string   `json:"topics"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
	PushedAt      *time.Time `json:"pushed_at"`
	License       *License   `json:"license"`
	Archived      bool       `json:"archived"`
	Private       bool       `json:"private"`
}

// Owner identifies the account a repository belongs to.
type Owner struct {
	Login string `json:"login"`
}

// License holds repository license metadata. Many repositories carry none.
type License struct {
	SPDXID string `json:"spdx_id"`
	Name   string `json:"name"`
}

// SearchPage is one page of repository search results, in the platform's
// native ranking order.
type SearchPage struct {
	TotalCount        int          `json:"total_count"`
	IncompleteResults bool         `json:"incomplete_results"`
	Items             []Repository `json:"items"`
}

// CommitInfo summarizes the most recent commit on a branch.
type CommitInfo struct {
	SHA     string    `json:"sha"`
	Author  string    `json:"author"`
	Date    time.Time `json:"date"`
	Message string    `json:"message"`
}

// commitResponse is the GitHub API shape for a commit list entry.
type commitResponse struct {
	SHA    string `json:"sha"`
	Commit struct {
		Author struct {
			Name string `json:"name"`
			Date string `json:"date"`
		} `json:"author"`
		Message string `json:"message"`
	} `json:"commit"`
}

// contributorResponse is the GitHub API shape for a contributor list entry.
type contributorResponse struct {
	Login         string `json:"login"`
	Contributions int    `json:"contributions"`
	Type          string `json:"type"`
}
