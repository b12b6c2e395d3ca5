// Package metrics implements the aggregation structures for repository
// statistics.
//
// This file (tracker.go) composes the seven named accumulators into the
// single aggregation root shared by all repository workers, and provides
// the plain-data snapshot consumed by the HTML, CSV, and console
// reporters.
package metrics

import "github.com/woodsj1206/GitHub-Repository-Statistics/internal/ghapi"

// Tracker is the aggregation root for one run: three plain metrics read
// from the repository descriptor and four time-windowed traffic metrics.
//
// All mutation must happen while holding the scheduler's lock; reads are
// only valid after every repository worker has completed.
type Tracker struct {
	Stargazers     *Accumulator
	Watchers       *Accumulator
	Forks          *Accumulator
	Views          *WindowedAccumulator
	UniqueVisitors *WindowedAccumulator
	Clones         *WindowedAccumulator
	UniqueCloners  *WindowedAccumulator
}

// NewTracker creates all seven accumulators with a shared window length.
func NewTracker(windowDays int) *Tracker {
	return &Tracker{
		Stargazers:     NewAccumulator("stargazers_count"),
		Watchers:       NewAccumulator("watchers_count"),
		Forks:          NewAccumulator("forks_count"),
		Views:          NewWindowedAccumulator(KindViews, FieldCount, windowDays),
		UniqueVisitors: NewWindowedAccumulator(KindViews, FieldUniques, windowDays),
		Clones:         NewWindowedAccumulator(KindClones, FieldCount, windowDays),
		UniqueCloners:  NewWindowedAccumulator(KindClones, FieldUniques, windowDays),
	}
}

// RecordRepository folds one repository's descriptor counts and traffic
// payloads into all seven accumulators. The caller must hold the
// scheduler's mutation lock. A nil traffic payload is treated as empty
// traffic; the repository still contributes its scalar counts.
func (t *Tracker) RecordRepository(repo ghapi.Repository, views, clones *ghapi.TrafficPayload) error {
	if err := t.Stargazers.Record(repo.Name, repo.StargazersCount); err != nil {
		return err
	}
	if err := t.Watchers.Record(repo.Name, repo.WatchersCount); err != nil {
		return err
	}
	if err := t.Forks.Record(repo.Name, repo.ForksCount); err != nil {
		return err
	}

	if err := t.Views.RecordTraffic(repo.Name, views); err != nil {
		return err
	}
	if err := t.UniqueVisitors.RecordTraffic(repo.Name, views); err != nil {
		return err
	}
	if err := t.Clones.RecordTraffic(repo.Name, clones); err != nil {
		return err
	}
	return t.UniqueCloners.RecordTraffic(repo.Name, clones)
}

// MetricSnapshot is the exported read-only view of one plain accumulator.
type MetricSnapshot struct {
	Key             string
	Total           int
	Max             int
	TopRepositories []string
	GroupedByValue  map[int][]string
}

// TrafficSnapshot extends MetricSnapshot with the full date window.
type TrafficSnapshot struct {
	MetricSnapshot
	Kind       string
	Timestamps []string
	Window     map[string]DateBucket
}

// Snapshot is the plain-data export of the whole tracker, decoupled from
// any particular output format.
type Snapshot struct {
	Stargazers     MetricSnapshot
	Watchers       MetricSnapshot
	Forks          MetricSnapshot
	Views          TrafficSnapshot
	UniqueVisitors TrafficSnapshot
	Clones         TrafficSnapshot
	UniqueCloners  TrafficSnapshot
}

// Snapshot exports the current aggregation state. Call only after the
// scheduler's fan-in barrier.
func (t *Tracker) Snapshot() Snapshot {
	return Snapshot{
		Stargazers:     snapshotMetric(t.Stargazers),
		Watchers:       snapshotMetric(t.Watchers),
		Forks:          snapshotMetric(t.Forks),
		Views:          snapshotTraffic(t.Views),
		UniqueVisitors: snapshotTraffic(t.UniqueVisitors),
		Clones:         snapshotTraffic(t.Clones),
		UniqueCloners:  snapshotTraffic(t.UniqueCloners),
	}
}

func snapshotMetric(a *Accumulator) MetricSnapshot {
	top := a.TopRepositories()
	names := make([]string, len(top))
	copy(names, top)
	return MetricSnapshot{
		Key:             a.Key(),
		Total:           a.Total(),
		Max:             a.Max(),
		TopRepositories: names,
		GroupedByValue:  a.GroupedByValue(),
	}
}

func snapshotTraffic(w *WindowedAccumulator) TrafficSnapshot {
	return TrafficSnapshot{
		MetricSnapshot: snapshotMetric(w.base),
		Kind:           w.Kind(),
		Timestamps:     w.Timestamps(),
		Window:         w.Window(),
	}
}
