package github

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"time"
)

// errEmptyRepository marks a 409 from a list endpoint: the repository has no
// commits yet. Callers translate it into a zero count, not a failure.
var errEmptyRepository = errors.New("repository is empty")

// linkLastPage extracts the page number of the rel="last" entry from a Link
// response header. With per_page=1 that page number equals the total item
// count, which is how totals are obtained without walking the whole list.
var linkLastPage = regexp.MustCompile(`[?&]page=(\d+)>;\s*rel="last"`)

// CountContributors returns the total number of contributors to owner/repo,
// including anonymous ones.
func (c *Client) CountContributors(ctx context.Context, owner, repo string) (int, error) {
	var count int
	key := fmt.Sprintf("contributors:%s/%s", owner, repo)
	err := c.cached(ctx, key, &count, func() error {
		u := fmt.Sprintf("%s/repos/%s/%s/contributors?per_page=1&anon=true", c.baseURL, owner, repo)
		resp, err := c.doRequest(ctx, u, "")
		if errors.Is(err, errEmptyRepository) {
			count = 0
			return nil
		}
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		var items []contributorResponse
		if err := decodeBody(resp.Body, &items); err != nil {
			return err
		}
		count = lastPageCount(resp.Header.Get("Link"), len(items))
		return nil
	})
	return count, err
}

// commitStats bundles the commit total with the newest commit so both come
// from a single remote call.
type commitStats struct {
	Count int         `json:"count"`
	Last  *CommitInfo `json:"last,omitempty"`
}

// CountCommits returns the total commit count on the given branch of
// owner/repo, along with the most recent commit. Pass an empty branch to
// use the repository's default branch.
func (c *Client) CountCommits(ctx context.Context, owner, repo, branch string) (int, *CommitInfo, error) {
	var stats commitStats
	key := fmt.Sprintf("commits:%s/%s@%s", owner, repo, branch)
	err := c.cached(ctx, key, &stats, func() error {
		u := fmt.Sprintf("%s/repos/%s/%s/commits?per_page=1", c.baseURL, owner, repo)
		if branch != "" {
			u += "&sha=" + url.QueryEscape(branch)
		}
		resp, err := c.doRequest(ctx, u, "")
		if errors.Is(err, errEmptyRepository) {
			stats = commitStats{}
			return nil
		}
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		var items []commitResponse
		if err := decodeBody(resp.Body, &items); err != nil {
			return err
		}
		stats.Count = lastPageCount(resp.Header.Get("Link"), len(items))
		if len(items) > 0 {
			stats.Last = toCommitInfo(items[0])
		}
		return nil
	})
	if err != nil {
		return 0, nil, err
	}
	return stats.Count, stats.Last, nil
}

func lastPageCount(linkHeader string, itemsOnPage int) int {
	if m := linkLastPage.FindStringSubmatch(linkHeader); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			return n
		}
	}
	// No pagination header: everything fit on this page.
	return itemsOnPage
}

func toCommitInfo(cr commitResponse) *CommitInfo {
	info := &CommitInfo{
		SHA:     cr.SHA,
		Author:  cr.Commit.Author.Name,
		Message: firstLine(cr.Commit.Message),
	}
	if t, err := time.Parse(time.RFC3339, cr.Commit.Author.Date); err == nil {
		info.Date = t
	}
	return info
}

func firstLine(s string) string {
	for i, r := range s {
		if r == '\n' {
			return s[:i]
		}
	}
	return s
}
