package ghapi

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestFetchTrafficViews(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/repos/octocat/alpha/traffic/views" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		fmt.Fprint(w, `{
			"count": 12,
			"uniques": 5,
			"views": [
				{"timestamp": "2025-02-10T00:00:00Z", "count": 7, "uniques": 3},
				{"timestamp": "2025-02-11T00:00:00Z", "count": 5, "uniques": 2}
			]
		}`)
	}))
	defer server.Close()

	c, _ := newTestClient(server)
	payload, err := c.FetchTrafficViews(context.Background(), "octocat", "alpha")
	if err != nil {
		t.Fatalf("FetchTrafficViews returned error: %v", err)
	}

	if payload.Count != 12 || payload.Uniques != 5 {
		t.Errorf("payload totals = (%d, %d), want (12, 5)", payload.Count, payload.Uniques)
	}
	if len(payload.Views) != 2 {
		t.Fatalf("payload has %d view entries, want 2", len(payload.Views))
	}
	want := TrafficEntry{Timestamp: "2025-02-10T00:00:00Z", Count: 7, Uniques: 3}
	if payload.Views[0] != want {
		t.Errorf("first entry = %+v, want %+v", payload.Views[0], want)
	}
}

func TestFetchTrafficClones(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/repos/octocat/alpha/traffic/clones" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		fmt.Fprint(w, `{"count": 3, "uniques": 1, "clones": [{"timestamp": "2025-02-10T00:00:00Z", "count": 3, "uniques": 1}]}`)
	}))
	defer server.Close()

	c, _ := newTestClient(server)
	payload, err := c.FetchTrafficClones(context.Background(), "octocat", "alpha")
	if err != nil {
		t.Fatalf("FetchTrafficClones returned error: %v", err)
	}
	if len(payload.Clones) != 1 || payload.Clones[0].Count != 3 {
		t.Errorf("payload clones = %+v", payload.Clones)
	}
}

func TestFetchTrafficUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// The traffic endpoints 403 when the token lacks push access.
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	c, _ := newTestClient(server)
	if _, err := c.FetchTrafficViews(context.Background(), "octocat", "alpha"); err == nil {
		t.Fatal("FetchTrafficViews returned nil error for a forbidden repository")
	}
}

func TestFetchTrafficMalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `not json`)
	}))
	defer server.Close()

	c, _ := newTestClient(server)
	if _, err := c.FetchTrafficClones(context.Background(), "octocat", "alpha"); err == nil {
		t.Fatal("FetchTrafficClones returned nil error for a malformed body")
	}
}
