package github

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"strings"

	apperrors "github.com/repolens/repolens/pkg/errors"
)

// FetchFileRaw retrieves the raw content of a file from the repository's
// default branch. A missing file surfaces as a NOT_FOUND error; manifest
// probing treats that as a normal "not present" signal.
func (c *Client) FetchFileRaw(ctx context.Context, owner, repo, path string) (string, error) {
	var content string
	key := fmt.Sprintf("file:%s/%s:%s", owner, repo, path)
	err := c.cached(ctx, key, &content, func() error {
		u := fmt.Sprintf("%s/repos/%s/%s/contents/%s", c.baseURL, owner, repo, escapePath(path))
		resp, err := c.doRequest(ctx, u, "application/vnd.github.v3.raw")
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return apperrors.Wrap(apperrors.ErrCodeNetwork, err, "read content of %s", path)
		}
		content = string(data)
		return nil
	})
	if err != nil {
		return "", err
	}
	return content, nil
}

// escapePath escapes each segment of a repository file path separately,
// keeping the / separators intact for nested paths like app/build.gradle.
func escapePath(path string) string {
	segments := strings.Split(path, "/")
	for i, seg := range segments {
		segments[i] = url.PathEscape(seg)
	}
	return strings.Join(segments, "/")
}

func decodeBody(r io.Reader, v any) error {
	if err := json.NewDecoder(r).Decode(v); err != nil {
		return apperrors.Wrap(apperrors.ErrCodeNetwork, err, "decode response")
	}
	return nil
}
