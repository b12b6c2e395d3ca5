// Package metrics implements the aggregation structures for repository
// statistics.
//
// This file (window.go) contains the time-windowed accumulator used for
// traffic metrics (views and clones). It folds per-day traffic entries into
// a rolling calendar-date window while also feeding each repository's
// window total into a base Accumulator, so "top repositories" for a traffic
// metric is ranked by the sum across the whole window rather than any
// single day.
package metrics

import (
	"sort"
	"time"

	"github.com/woodsj1206/GitHub-Repository-Statistics/internal/ghapi"
)

// Traffic kinds selecting which series of the raw payload to read.
const (
	KindViews  = "views"
	KindClones = "clones"
)

// Traffic field keys selecting which value of a traffic entry to read.
const (
	FieldCount   = "count"
	FieldUniques = "uniques"
)

// DefaultWindowDays is the trailing window the GitHub traffic API reports.
const DefaultWindowDays = 14

// timestampLayout is the date-key format used by the traffic API and kept
// as-is for exporters: YYYY-MM-DDT00:00:00Z.
const timestampLayout = "2006-01-02T15:04:05Z"

// DateEntry is one repository's contribution to a single date.
type DateEntry struct {
	Repo  string
	Value int
}

// DateBucket holds the accumulated traffic for one calendar date.
type DateBucket struct {
	Total   int
	Entries []DateEntry
}

// WindowedAccumulator accumulates a traffic metric per calendar date over a
// rolling window, delegating per-repository totals to a base Accumulator.
//
// The window is pre-populated at construction with windowDays consecutive
// UTC dates ending yesterday, each at (0, []). Exporters therefore always
// see a complete, gap-free date axis even when no repository had traffic.
// Entries outside that range are accepted and inserted; the API
// occasionally reports them and dropping data helps nobody.
//
// Not safe for concurrent use; see Accumulator.
type WindowedAccumulator struct {
	base   *Accumulator
	kind   string
	window map[string]*DateBucket
}

// NewWindowedAccumulator creates a windowed accumulator for the given
// traffic kind (KindViews or KindClones) and field key (FieldCount or
// FieldUniques). windowDays <= 0 falls back to DefaultWindowDays.
func NewWindowedAccumulator(kind, field string, windowDays int) *WindowedAccumulator {
	if windowDays <= 0 {
		windowDays = DefaultWindowDays
	}

	w := &WindowedAccumulator{
		base:   NewAccumulator(field),
		kind:   kind,
		window: make(map[string]*DateBucket, windowDays),
	}

	start := time.Now().UTC().Truncate(24 * time.Hour).AddDate(0, 0, -windowDays)
	for offset := 0; offset < windowDays; offset++ {
		key := start.AddDate(0, 0, offset).Format(timestampLayout)
		w.window[key] = &DateBucket{}
	}
	return w
}

// RecordTraffic folds one repository's raw traffic payload into the window
// and records the repository's window total on the base accumulator. A nil
// payload or missing series is treated as empty: the repository still
// records a 0 so it participates in the grouping.
func (w *WindowedAccumulator) RecordTraffic(repoName string, payload *ghapi.TrafficPayload) error {
	perRepoTotal := 0

	for _, entry := range w.series(payload) {
		value := w.fieldValue(entry)
		perRepoTotal += value

		bucket, ok := w.window[entry.Timestamp]
		if !ok {
			bucket = &DateBucket{}
			w.window[entry.Timestamp] = bucket
		}
		bucket.Total += value
		bucket.Entries = append(bucket.Entries, DateEntry{Repo: repoName, Value: value})
	}

	return w.base.Record(repoName, perRepoTotal)
}

// series selects the payload list matching the accumulator's traffic kind.
func (w *WindowedAccumulator) series(payload *ghapi.TrafficPayload) []ghapi.TrafficEntry {
	if payload == nil {
		return nil
	}
	if w.kind == KindClones {
		return payload.Clones
	}
	return payload.Views
}

// fieldValue selects the entry value matching the accumulator's field key.
func (w *WindowedAccumulator) fieldValue(entry ghapi.TrafficEntry) int {
	if w.base.key == FieldUniques {
		return entry.Uniques
	}
	return entry.Count
}

// Kind returns the traffic kind ("views" or "clones").
func (w *WindowedAccumulator) Kind() string {
	return w.kind
}

// Key returns the field key of the base accumulator.
func (w *WindowedAccumulator) Key() string {
	return w.base.Key()
}

// Total returns the sum of window totals across all repositories.
func (w *WindowedAccumulator) Total() int {
	return w.base.Total()
}

// Max returns the highest per-repository window total.
func (w *WindowedAccumulator) Max() int {
	return w.base.Max()
}

// TopRepositories returns the repositories tied for the highest window
// total, in record order.
func (w *WindowedAccumulator) TopRepositories() []string {
	return w.base.TopRepositories()
}

// Bucket returns the accumulated bucket for a timestamp key, or a zero
// bucket if the date was never populated.
func (w *WindowedAccumulator) Bucket(timestamp string) DateBucket {
	if bucket, ok := w.window[timestamp]; ok {
		return *bucket
	}
	return DateBucket{}
}

// Timestamps returns all window keys in chronological order. The keys sort
// lexically because they share a fixed ISO-8601 layout.
func (w *WindowedAccumulator) Timestamps() []string {
	keys := make([]string, 0, len(w.window))
	for key := range w.window {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Window returns a copy of the full date → bucket mapping.
func (w *WindowedAccumulator) Window() map[string]DateBucket {
	window := make(map[string]DateBucket, len(w.window))
	for key, bucket := range w.window {
		entries := make([]DateEntry, len(bucket.Entries))
		copy(entries, bucket.Entries)
		window[key] = DateBucket{Total: bucket.Total, Entries: entries}
	}
	return window
}
