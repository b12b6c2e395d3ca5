package state

import (
	"sync"
	"testing"
	"time"
)

func TestGetReturnsSameInstance(t *testing.T) {
	if Get() != Get() {
		t.Fatal("Get() returned different instances")
	}
}

func TestAPICallCounting(t *testing.T) {
	s := Get()
	s.Reset()

	const goroutines = 8
	const callsEach = 50

	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < callsEach; j++ {
				s.IncrementAPICalls()
			}
		}()
	}
	wg.Wait()

	if got := s.GetAPICalls(); got != goroutines*callsEach {
		t.Errorf("GetAPICalls() = %d, want %d", got, goroutines*callsEach)
	}
}

func TestRateLimitRoundTrip(t *testing.T) {
	s := Get()
	s.Reset()

	if rl := s.GetRateLimit(); rl.Limit != 0 {
		t.Fatalf("rate limit after Reset = %+v, want zero value", rl)
	}

	reset := time.Now().Add(30 * time.Minute)
	s.UpdateRateLimit(5000, 4200, reset)

	rl := s.GetRateLimit()
	if rl.Limit != 5000 || rl.Remaining != 4200 || !rl.Reset.Equal(reset) {
		t.Errorf("GetRateLimit() = %+v", rl)
	}
}

func TestResetClearsCounters(t *testing.T) {
	s := Get()
	s.AddRepos(10)
	s.IncrementAPICalls()
	s.UpdateRateLimit(5000, 1, time.Now())

	s.Reset()

	if got := s.GetAPICalls(); got != 0 {
		t.Errorf("GetAPICalls() after Reset = %d, want 0", got)
	}
	if rl := s.GetRateLimit(); rl.Limit != 0 || rl.Remaining != 0 || !rl.Reset.IsZero() {
		t.Errorf("GetRateLimit() after Reset = %+v, want zero value", rl)
	}
}
