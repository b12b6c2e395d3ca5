// Package state provides global state tracking for a report run.
//
// It tracks progress (repositories processed), API usage, and the most
// recently observed rate limit headers. All operations are safe for
// concurrent use: the repository workers and the HTTP client update it
// from multiple goroutines.
package state

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/pterm/pterm"
)

// RateLimitInfo holds the GitHub REST API rate limit as last reported by
// response headers.
//
// Zero value: a zero Limit means no rate limit data has been observed yet.
type RateLimitInfo struct {
	Limit     int64     // Maximum requests allowed per hour
	Remaining int64     // Requests remaining in current window
	Reset     time.Time // When the rate limit window resets
}

// Status tracks progress and API call counts for the current run.
//
// Counters use atomics for lock-free updates from workers; the rate limit
// struct is guarded by an RWMutex because it must be read consistently.
type Status struct {
	repoTotal int64
	repoDone  int64
	apiCalls  int64

	rateLimitMu sync.RWMutex
	rateLimit   RateLimitInfo
}

var global = &Status{}

// Get returns the global Status instance.
func Get() *Status {
	return global
}

// Reset clears all tracked state. Used between runs and by tests.
func (s *Status) Reset() {
	atomic.StoreInt64(&s.repoTotal, 0)
	atomic.StoreInt64(&s.repoDone, 0)
	atomic.StoreInt64(&s.apiCalls, 0)
	s.rateLimitMu.Lock()
	s.rateLimit = RateLimitInfo{}
	s.rateLimitMu.Unlock()
}

// PrintRepo prints the status of a processed repository and increments the
// done count.
func (s *Status) PrintRepo(repoName string, success bool, errMsg string) {
	if success {
		pterm.Success.Printf("✓ %s\n", repoName)
	} else if errMsg != "" {
		pterm.Warning.Printf("⚠ %s: %s\n", repoName, errMsg)
	} else {
		pterm.Warning.Printf("⚠ %s\n", repoName)
	}
	atomic.AddInt64(&s.repoDone, 1)
}

// AddRepos increments the total repository count.
func (s *Status) AddRepos(n int) {
	atomic.AddInt64(&s.repoTotal, int64(n))
}

// IncrementAPICalls increments the API call count.
func (s *Status) IncrementAPICalls() {
	atomic.AddInt64(&s.apiCalls, 1)
}

// GetAPICalls returns the current API call count.
func (s *Status) GetAPICalls() int64 {
	return atomic.LoadInt64(&s.apiCalls)
}

// UpdateRateLimit records the rate limit information from the latest
// response headers.
func (s *Status) UpdateRateLimit(limit, remaining int64, reset time.Time) {
	s.rateLimitMu.Lock()
	defer s.rateLimitMu.Unlock()
	s.rateLimit = RateLimitInfo{Limit: limit, Remaining: remaining, Reset: reset}
}

// GetRateLimit returns the most recently observed rate limit information.
func (s *Status) GetRateLimit() RateLimitInfo {
	s.rateLimitMu.RLock()
	defer s.rateLimitMu.RUnlock()
	return s.rateLimit
}

// PrintRateLimit prints the current rate limit status, if known.
func (s *Status) PrintRateLimit() {
	rateLimit := s.GetRateLimit()
	if rateLimit.Limit == 0 {
		return
	}

	used := rateLimit.Limit - rateLimit.Remaining
	reset := "unknown"
	if !rateLimit.Reset.IsZero() {
		reset = rateLimit.Reset.Format("15:04:05")
	}
	pterm.Info.Printf("%d/%d calls used | %d remaining | resets at: %s\n",
		used, rateLimit.Limit, rateLimit.Remaining, reset)
}

// MarkDoneWithSummary prints the final run summary.
func (s *Status) MarkDoneWithSummary(outputDir string, duration time.Duration, failed int) {
	repoDone := atomic.LoadInt64(&s.repoDone)
	repoTotal := atomic.LoadInt64(&s.repoTotal)
	apiCalls := atomic.LoadInt64(&s.apiCalls)

	pterm.Success.Printf("✓ Complete! Processed %d/%d repos | %d API calls | %v\n",
		repoDone, repoTotal, apiCalls, duration.Round(time.Second))
	if failed > 0 {
		pterm.Warning.Printf("⚠ %d repositories had incomplete traffic data (reported as zero)\n", failed)
	}
	pterm.Info.Printf("Reports written to %s\n", outputDir)
}
