// Package ghapi provides GitHub API client functionality.
//
// This file (pagination.go) walks GitHub's Link-header pagination to
// retrieve the complete repository list as one ordered result. A failed
// page degrades to an empty page and ends the walk instead of erroring
// out: a partial list still produces a useful report.
package ghapi

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pterm/pterm"
)

const reposPerPage = 100

// FetchRepositories retrieves every repository of the authenticated user
// and filters it down to those owned by login with the requested
// visibility ("public" or "private"). Item order is preserved across
// pages.
func (c *Client) FetchRepositories(ctx context.Context, login, visibility string) ([]Repository, error) {
	initialURL := fmt.Sprintf("%s/user/repos?per_page=%d", c.APIBase, reposPerPage)
	all, err := c.fetchRepositoryPages(ctx, initialURL)
	if err != nil {
		return nil, err
	}

	repos := make([]Repository, 0, len(all))
	for _, repo := range all {
		if repo.Visibility == visibility && repo.Owner.Login == login {
			repos = append(repos, repo)
		}
	}
	return repos, nil
}

// fetchRepositoryPages follows rel="next" links starting at url. A visited
// set guards against a malformed or cyclic Link header fetching the same
// page twice.
func (c *Client) fetchRepositoryPages(ctx context.Context, url string) ([]Repository, error) {
	var all []Repository
	visited := make(map[string]bool)

	for url != "" && !visited[url] {
		visited[url] = true

		body, linkHeader, err := c.getJSONWithLink(ctx, url)
		if err != nil {
			if ctx.Err() != nil {
				return all, ctx.Err()
			}
			pterm.Warning.Printf("Repository page %s unavailable, stopping pagination: %v\n", url, err)
			break
		}

		var page []Repository
		if err := json.Unmarshal(body, &page); err != nil {
			pterm.Warning.Printf("Malformed repository page %s, stopping pagination: %v\n", url, err)
			break
		}
		all = append(all, page...)

		url = nextPageURL(linkHeader)
	}

	return all, nil
}

// nextPageURL extracts the rel="next" URL from a Link header, e.g.
//
//	<https://api.github.com/user/repos?page=2>; rel="next", <...>; rel="last"
//
// Returns "" when there is no next page.
func nextPageURL(linkHeader string) string {
	for _, link := range strings.Split(linkHeader, ",") {
		if !strings.Contains(link, `rel="next"`) {
			continue
		}
		if urlPart, _, ok := strings.Cut(link, ">"); ok {
			if _, url, ok := strings.Cut(urlPart, "<"); ok {
				return strings.TrimSpace(url)
			}
		}
	}
	return ""
}
