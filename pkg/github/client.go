// Package github is a typed façade over the GitHub REST API, scoped to the
// read operations the discovery pipeline needs: repository search, repository
// detail, contributor and commit counts, and file-content lookup.
//
// The client centralizes error translation (authentication, rate limit,
// not-found, transient network failures) into the pkg/errors taxonomy and
// tracks the remaining rate-limit budget from response headers. It performs
// no retries itself; cacheable lookups go through [Client.cached], which
// wraps fetches with bounded backoff for transient failures.
package github

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	apperrors "github.com/repolens/repolens/pkg/errors"
	"github.com/repolens/repolens/pkg/httputil"
)

const (
	defaultBaseURL = "https://api.github.com"

	// Per-call timeout. A hung connection must not stall a whole
	// enrichment batch.
	httpTimeout = 15 * time.Second
)

// Client provides access to the GitHub API for repository discovery and
// enrichment. A zero token is allowed; unauthenticated requests get a much
// smaller rate-limit budget.
type Client struct {
	http    *http.Client
	cache   httputil.Cache
	headers map[string]string
	baseURL string
	budget  *Budget
}

// NewClient creates a GitHub API client. Pass a nil cache to disable
// response caching. The token is consumed opaquely and never logged.
func NewClient(token string, cache httputil.Cache) *Client {
	if cache == nil {
		cache = httputil.NewNullCache()
	}
	headers := map[string]string{"Accept": "application/vnd.github.v3+json"}
	if token != "" {
		headers["Authorization"] = "Bearer " + token
	}
	return &Client{
		http:    &http.Client{Timeout: httpTimeout},
		cache:   cache,
		headers: headers,
		baseURL: defaultBaseURL,
		budget:  NewBudget(),
	}
}

// Budget exposes the shared rate-limit budget, letting callers inspect the
// remaining allowance before starting a large batch.
func (c *Client) Budget() *Budget { return c.budget }

// GetRepository retrieves repository metadata for owner/repo.
func (c *Client) GetRepository(ctx context.Context, owner, repo string) (*Repository, error) {
	var data Repository
	key := fmt.Sprintf("repo:%s/%s", owner, repo)
	err := c.cached(ctx, key, &data, func() error {
		return c.getJSON(ctx, fmt.Sprintf("%s/repos/%s/%s", c.baseURL, owner, repo), &data)
	})
	if err != nil {
		return nil, err
	}
	return &data, nil
}

// cached retrieves a value from the response cache or executes fetch with
// bounded retry and stores the result. Rate-limit and not-found errors are
// never retried; only RetryableError-wrapped failures are.
func (c *Client) cached(ctx context.Context, key string, v any, fetch func() error) error {
	if ok, _ := c.cache.Get(key, v); ok {
		return nil
	}
	if err := httputil.RetryWithBackoff(ctx, fetch); err != nil {
		return err
	}
	_ = c.cache.Set(key, v)
	return nil
}

// getJSON performs a GET request and decodes the JSON response into v.
func (c *Client) getJSON(ctx context.Context, url string, v any) error {
	resp, err := c.doRequest(ctx, url, "")
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return apperrors.Wrap(apperrors.ErrCodeNetwork, err, "decode response from %s", url)
	}
	return nil
}

// doRequest issues a GET request with the client's default headers, consuming
// one unit of rate-limit budget. A non-empty accept overrides the default
// Accept header (used for raw file content).
func (c *Client) doRequest(ctx context.Context, url, accept string) (*http.Response, error) {
	if err := c.budget.Acquire(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInternal, err, "create request")
	}
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}
	if accept != "" {
		req.Header.Set("Accept", accept)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &httputil.RetryableError{
			Err: apperrors.Wrap(apperrors.ErrCodeNetwork, err, "request %s", url),
		}
	}

	c.observeRateHeaders(resp)

	if err := c.checkStatus(resp); err != nil {
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
		return nil, err
	}
	return resp, nil
}

// observeRateHeaders feeds X-RateLimit-* response headers into the budget.
func (c *Client) observeRateHeaders(resp *http.Response) {
	remStr := resp.Header.Get("X-RateLimit-Remaining")
	if remStr == "" {
		return
	}
	remaining, err := strconv.Atoi(remStr)
	if err != nil {
		return
	}
	var resetAt time.Time
	if resetStr := resp.Header.Get("X-RateLimit-Reset"); resetStr != "" {
		if unix, err := strconv.ParseInt(resetStr, 10, 64); err == nil {
			resetAt = time.Unix(unix, 0)
		}
	}
	c.budget.Observe(remaining, resetAt)
}

// checkStatus translates HTTP status codes into the application error
// taxonomy. GitHub signals an exhausted search or core budget with 403 (or
// 429) plus X-RateLimit-Remaining: 0.
func (c *Client) checkStatus(resp *http.Response) error {
	switch {
	case resp.StatusCode == http.StatusOK:
		return nil
	case resp.StatusCode == http.StatusUnauthorized:
		return apperrors.New(apperrors.ErrCodeUnauthorized,
			"GitHub rejected the credential; check GITHUB_TOKEN format and scopes")
	case resp.StatusCode == http.StatusForbidden || resp.StatusCode == http.StatusTooManyRequests:
		if resp.Header.Get("X-RateLimit-Remaining") == "0" {
			var resetAt time.Time
			if unix, err := strconv.ParseInt(resp.Header.Get("X-RateLimit-Reset"), 10, 64); err == nil {
				resetAt = time.Unix(unix, 0)
			}
			return &apperrors.RateLimitedError{ResetAt: resetAt}
		}
		return apperrors.New(apperrors.ErrCodeForbidden, "access forbidden: %s", resp.Request.URL.Path)
	case resp.StatusCode == http.StatusNotFound:
		return apperrors.New(apperrors.ErrCodeNotFound, "resource not found: %s", resp.Request.URL.Path)
	case resp.StatusCode == http.StatusConflict, resp.StatusCode == http.StatusNoContent:
		// GitHub answers 409 (commits) or 204 (contributors) for list
		// endpoints on an empty repository.
		return errEmptyRepository
	case resp.StatusCode >= 500:
		return &httputil.RetryableError{
			Err: apperrors.New(apperrors.ErrCodeNetwork, "server error: status %d", resp.StatusCode),
		}
	default:
		return apperrors.New(apperrors.ErrCodeNetwork, "unexpected status %d", resp.StatusCode)
	}
}
