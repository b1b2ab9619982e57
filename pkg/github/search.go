package github

import (
	"context"
	"fmt"
	"net/url"
)

// searchResultCap is GitHub's hard limit on accessible search results;
// requests beyond the first 1000 hits return an error page.
const searchResultCap = 1000

// SearchRepositories runs one page of the repository search endpoint with
// the given query string (GitHub search grammar). Results come back in the
// platform's native best-match order; no sort parameter is applied.
//
// Search pages are not cached: discovery wants fresh rankings, and the
// enrichment lookups that follow are the cacheable part.
func (c *Client) SearchRepositories(ctx context.Context, query string, page, perPage int) (*SearchPage, error) {
	if page*perPage > searchResultCap {
		return &SearchPage{}, nil
	}

	u := fmt.Sprintf("%s/search/repositories?q=%s&per_page=%d&page=%d",
		c.baseURL, url.QueryEscape(query), perPage, page)

	var data SearchPage
	if err := c.getJSON(ctx, u, &data); err != nil {
		return nil, err
	}
	return &data, nil
}
