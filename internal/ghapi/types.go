// Package ghapi provides GitHub API client functionality.
//
// This file (types.go) defines the wire types consumed by the rest of the
// tool: the repository descriptor returned by the repository list endpoint
// and the traffic payloads returned by the per-repository views/clones
// endpoints.
package ghapi

// BaseURL is the GitHub REST API root.
const BaseURL = "https://api.github.com"

// Repository is the descriptor returned by the repository list endpoint.
// Only the fields the aggregation pipeline reads are mapped.
type Repository struct {
	Name            string `json:"name"`
	Owner           Owner  `json:"owner"`
	Visibility      string `json:"visibility"`
	HTMLURL         string `json:"html_url"`
	StargazersCount int    `json:"stargazers_count"`
	WatchersCount   int    `json:"watchers_count"`
	ForksCount      int    `json:"forks_count"`
}

// Owner identifies the account a repository belongs to.
type Owner struct {
	Login string `json:"login"`
}

// TrafficEntry is one day of traffic for a repository.
type TrafficEntry struct {
	Timestamp string `json:"timestamp"`
	Count     int    `json:"count"`
	Uniques   int    `json:"uniques"`
}

// TrafficPayload is the body of the traffic/views and traffic/clones
// endpoints. Only one of Views/Clones is populated depending on which
// endpoint was called; the aggregation layer selects by kind.
type TrafficPayload struct {
	Count   int            `json:"count"`
	Uniques int            `json:"uniques"`
	Views   []TrafficEntry `json:"views,omitempty"`
	Clones  []TrafficEntry `json:"clones,omitempty"`
}
