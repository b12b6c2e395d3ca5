// Package metrics implements the aggregation structures for repository
// statistics.
//
// This file (accumulator.go) contains the base accumulator that tracks a
// single metric (stars, watchers, forks, or a traffic total) across all
// repositories in a run: a running total, the highest value seen, and a
// grouping of repository names by recorded value.
package metrics

import (
	"errors"
	"fmt"
)

// ErrNegativeValue indicates a caller tried to record a negative metric
// value. Repository counts from the API are never negative, so this is a
// programming error rather than bad remote data.
var ErrNegativeValue = errors.New("metric value cannot be negative")

// Accumulator tracks one metric across repositories.
//
// Thread-safety: Accumulator is NOT safe for concurrent use. The scheduler
// serializes all Record calls behind a single mutex; readers must wait for
// the fan-in barrier before calling accessors.
type Accumulator struct {
	key     string
	total   int
	max     int
	grouped map[int][]string
}

// NewAccumulator creates an accumulator for the given source field key
// (e.g. "stargazers_count").
func NewAccumulator(key string) *Accumulator {
	return &Accumulator{
		key:     key,
		grouped: make(map[int][]string),
	}
}

// Record adds the metric value reported by a repository.
// A negative value returns ErrNegativeValue and leaves the accumulator
// unchanged.
func (a *Accumulator) Record(repoName string, value int) error {
	if value < 0 {
		return fmt.Errorf("record %q for %s: %w", a.key, repoName, ErrNegativeValue)
	}

	a.total += value
	if value > a.max {
		a.max = value
	}
	a.grouped[value] = append(a.grouped[value], repoName)
	return nil
}

// Key returns the source field this accumulator reads.
func (a *Accumulator) Key() string {
	return a.key
}

// Total returns the sum of all recorded values.
func (a *Accumulator) Total() int {
	return a.total
}

// Max returns the highest single value recorded so far, 0 if none.
func (a *Accumulator) Max() int {
	return a.max
}

// TopRepositories returns the repositories tied for the highest recorded
// value, in record order. Before any Record call it returns nil: max starts
// at 0 and no repository is grouped under 0 unless one actually recorded 0.
func (a *Accumulator) TopRepositories() []string {
	return a.grouped[a.max]
}

// GroupedByValue returns a copy of the value → repository names grouping.
func (a *Accumulator) GroupedByValue() map[int][]string {
	grouped := make(map[int][]string, len(a.grouped))
	for value, repos := range a.grouped {
		names := make([]string, len(repos))
		copy(names, repos)
		grouped[value] = names
	}
	return grouped
}
