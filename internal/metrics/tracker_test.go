package metrics

import (
	"errors"
	"testing"

	"github.com/woodsj1206/GitHub-Repository-Statistics/internal/ghapi"
)

func TestTrackerRecordRepository(t *testing.T) {
	tracker := NewTracker(DefaultWindowDays)
	day := windowKey(1)

	repo := ghapi.Repository{
		Name:            "repo-a",
		StargazersCount: 10,
		WatchersCount:   10,
		ForksCount:      2,
	}
	views := &ghapi.TrafficPayload{
		Views: []ghapi.TrafficEntry{{Timestamp: day, Count: 7, Uniques: 3}},
	}
	clones := &ghapi.TrafficPayload{
		Clones: []ghapi.TrafficEntry{{Timestamp: day, Count: 4, Uniques: 2}},
	}

	if err := tracker.RecordRepository(repo, views, clones); err != nil {
		t.Fatalf("RecordRepository returned error: %v", err)
	}

	checks := []struct {
		name string
		got  int
		want int
	}{
		{"stargazers", tracker.Stargazers.Total(), 10},
		{"watchers", tracker.Watchers.Total(), 10},
		{"forks", tracker.Forks.Total(), 2},
		{"views", tracker.Views.Total(), 7},
		{"unique visitors", tracker.UniqueVisitors.Total(), 3},
		{"clones", tracker.Clones.Total(), 4},
		{"unique cloners", tracker.UniqueCloners.Total(), 2},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s total = %d, want %d", c.name, c.got, c.want)
		}
	}
}

func TestTrackerRecordRepositoryNilTraffic(t *testing.T) {
	tracker := NewTracker(DefaultWindowDays)
	repo := ghapi.Repository{Name: "repo-a", StargazersCount: 3}

	if err := tracker.RecordRepository(repo, nil, nil); err != nil {
		t.Fatalf("RecordRepository returned error: %v", err)
	}

	if tracker.Stargazers.Total() != 3 {
		t.Errorf("stargazers total = %d, want 3", tracker.Stargazers.Total())
	}
	if top := tracker.Views.TopRepositories(); len(top) != 1 || top[0] != "repo-a" {
		t.Errorf("views TopRepositories() = %v, want [repo-a]", top)
	}
}

func TestTrackerRecordRepositoryRejectsNegativeCounts(t *testing.T) {
	tracker := NewTracker(DefaultWindowDays)
	repo := ghapi.Repository{Name: "repo-a", StargazersCount: -1}

	err := tracker.RecordRepository(repo, nil, nil)
	if !errors.Is(err, ErrNegativeValue) {
		t.Fatalf("RecordRepository error = %v, want ErrNegativeValue", err)
	}
}

func TestTrackerSnapshotIsDecoupled(t *testing.T) {
	tracker := NewTracker(DefaultWindowDays)
	day := windowKey(1)
	repo := ghapi.Repository{Name: "repo-a", StargazersCount: 5}
	views := &ghapi.TrafficPayload{
		Views: []ghapi.TrafficEntry{{Timestamp: day, Count: 6, Uniques: 2}},
	}
	if err := tracker.RecordRepository(repo, views, nil); err != nil {
		t.Fatalf("RecordRepository returned error: %v", err)
	}

	snapshot := tracker.Snapshot()

	if snapshot.Stargazers.Total != 5 {
		t.Errorf("snapshot stargazers total = %d, want 5", snapshot.Stargazers.Total)
	}
	if snapshot.Views.Kind != KindViews {
		t.Errorf("snapshot views kind = %s, want %s", snapshot.Views.Kind, KindViews)
	}
	if got := snapshot.Views.Window[day].Total; got != 6 {
		t.Errorf("snapshot views bucket total = %d, want 6", got)
	}
	if len(snapshot.Views.Timestamps) != DefaultWindowDays {
		t.Errorf("snapshot views has %d timestamps, want %d",
			len(snapshot.Views.Timestamps), DefaultWindowDays)
	}

	// Mutating the snapshot must not touch the tracker.
	snapshot.Stargazers.TopRepositories[0] = "mutated"
	bucket := snapshot.Views.Window[day]
	bucket.Entries[0].Value = 999

	if tracker.Stargazers.TopRepositories()[0] != "repo-a" {
		t.Error("mutating snapshot top repositories leaked into the tracker")
	}
	if tracker.Views.Bucket(day).Entries[0].Value != 6 {
		t.Error("mutating snapshot window leaked into the tracker")
	}
}
