// Package ghapi provides GitHub API client functionality.
//
// This file (traffic.go) fetches the per-repository traffic endpoints
// (views and clones). Traffic data is frequently unavailable (the token
// may lack push access to a repository), so callers treat an error as an
// empty payload rather than a failed run.
package ghapi

import (
	"context"
	"encoding/json"
	"fmt"
)

// FetchTrafficViews fetches the 14-day view statistics for a repository.
func (c *Client) FetchTrafficViews(ctx context.Context, owner, repo string) (*TrafficPayload, error) {
	return c.fetchTraffic(ctx, owner, repo, "views")
}

// FetchTrafficClones fetches the 14-day clone statistics for a repository.
func (c *Client) FetchTrafficClones(ctx context.Context, owner, repo string) (*TrafficPayload, error) {
	return c.fetchTraffic(ctx, owner, repo, "clones")
}

func (c *Client) fetchTraffic(ctx context.Context, owner, repo, kind string) (*TrafficPayload, error) {
	url := fmt.Sprintf("%s/repos/%s/%s/traffic/%s", c.APIBase, owner, repo, kind)
	body, err := c.GetJSON(ctx, url)
	if err != nil {
		return nil, err
	}

	var payload TrafficPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("parsing %s traffic for %s/%s: %w", kind, owner, repo, err)
	}
	return &payload, nil
}
