package github

import (
	"regexp"
	"strings"

	apperrors "github.com/repolens/repolens/pkg/errors"
)

// Regex patterns for GitHub resource validation.
var (
	// GitHub usernames/orgs: 1-39 alphanumeric or hyphen, not starting with hyphen
	validOwner = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9-]{0,38}$`)
	// GitHub repo names: 1-100 alphanumeric, hyphen, underscore, or dot
	validRepo = regexp.MustCompile(`^[a-zA-Z0-9._-]{1,100}$`)

	repoURLPattern = regexp.MustCompile(`^https?://github\.com/([^/]+)/([^/]+?)(?:\.git)?/?$`)
)

// ValidateOwner validates a GitHub username or organization name.
func ValidateOwner(owner string) error {
	if owner == "" {
		return apperrors.New(apperrors.ErrCodeInvalidRepoRef, "owner is required")
	}
	if !validOwner.MatchString(owner) {
		return apperrors.New(apperrors.ErrCodeInvalidRepoRef,
			"invalid owner %q: must be 1-39 alphanumeric characters or hyphens, cannot start with hyphen", owner)
	}
	return nil
}

// ValidateRepo validates a GitHub repository name.
func ValidateRepo(repo string) error {
	if repo == "" {
		return apperrors.New(apperrors.ErrCodeInvalidRepoRef, "repo is required")
	}
	if !validRepo.MatchString(repo) {
		return apperrors.New(apperrors.ErrCodeInvalidRepoRef,
			"invalid repo %q: must be 1-100 alphanumeric characters, hyphens, underscores, or dots", repo)
	}
	return nil
}

// ParseRepoRef parses a repository reference and validates both parts.
// Accepted forms: "owner/repo" and "https://github.com/owner/repo[.git]".
func ParseRepoRef(ref string) (owner, repo string, err error) {
	ref = strings.TrimSpace(ref)

	if m := repoURLPattern.FindStringSubmatch(ref); m != nil {
		owner, repo = m[1], m[2]
	} else {
		parts := strings.SplitN(ref, "/", 2)
		if len(parts) != 2 {
			return "", "", apperrors.New(apperrors.ErrCodeInvalidRepoRef,
				"invalid repository reference %q: use owner/repo or a GitHub URL", ref)
		}
		owner, repo = parts[0], strings.TrimSuffix(parts[1], ".git")
	}

	if err := ValidateOwner(owner); err != nil {
		return "", "", err
	}
	if err := ValidateRepo(repo); err != nil {
		return "", "", err
	}
	return owner, repo, nil
}
