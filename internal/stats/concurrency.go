// Package stats implements concurrent processing of GitHub repository
// statistics.
//
// This file (concurrency.go) contains the parallel repository processing
// implementation. It provides a worker pool with semaphore-based
// concurrency control so the per-repository traffic fetches run in
// parallel while all mutation of the shared metrics tracker happens under
// a single mutex.
//
// Key features:
//   - Controlled parallelism using a semaphore channel
//   - Lock-free I/O phase, serialized aggregation phase
//   - Context-aware cancellation support
//   - Panic recovery in worker goroutines
package stats

import (
	"context"
	"fmt"
	"runtime/debug"
	"sync"
	"time"

	"github.com/pterm/pterm"

	"github.com/woodsj1206/GitHub-Repository-Statistics/internal/ghapi"
	"github.com/woodsj1206/GitHub-Repository-Statistics/internal/metrics"
	"github.com/woodsj1206/GitHub-Repository-Statistics/internal/state"
)

type progressUpdate struct {
	delta int
	title string
}

// startProgressUpdater refreshes the progress bar title with rate limit
// info every 2 seconds until done is closed.
func startProgressUpdater(done <-chan struct{}, updates chan<- progressUpdate, repoCount int) <-chan struct{} {
	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		ticker := time.NewTicker(2 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				rateLimit := state.Get().GetRateLimit()
				if rateLimit.Limit == 0 {
					continue
				}
				used := rateLimit.Limit - rateLimit.Remaining
				title := fmt.Sprintf("Processing %d repositories... [API: %d/%d used, %d remaining]",
					repoCount, used, rateLimit.Limit, rateLimit.Remaining)
				select {
				case updates <- progressUpdate{title: title}:
				default:
				}
			}
		}
	}()
	return stopped
}

// processRepoWorker processes a single repository: fetch its views and
// clones traffic concurrently, then fold everything into the shared
// tracker while holding mu.
//
// A failed fetch degrades to an empty payload; the repository still
// contributes its stargazer/watcher/fork counts and the run continues.
func processRepoWorker(
	ctx context.Context,
	client *ghapi.Client,
	owner string,
	repo ghapi.Repository,
	tracker *metrics.Tracker,
	errs *[]error,
	mu *sync.Mutex,
	progressUpdates chan<- progressUpdate,
) {
	defer func() {
		if r := recover(); r != nil {
			stack := debug.Stack()
			mu.Lock()
			*errs = append(*errs, fmt.Errorf("%s: panic recovered: %v", repo.Name, r))
			mu.Unlock()
			pterm.Error.Printf("🔥 PANIC in worker processing %s: %v\n%s\n", repo.Name, r, stack)
		}
	}()

	select {
	case <-ctx.Done():
		mu.Lock()
		*errs = append(*errs, fmt.Errorf("%s: %w", repo.Name, ctx.Err()))
		mu.Unlock()
		return
	default:
	}

	// I/O phase: both traffic fetches run concurrently and both must
	// settle before aggregation.
	var (
		views, clones       *ghapi.TrafficPayload
		viewsErr, clonesErr error
		fetchWG             sync.WaitGroup
	)
	fetchWG.Add(2)
	go func() {
		defer fetchWG.Done()
		views, viewsErr = client.FetchTrafficViews(ctx, owner, repo.Name)
	}()
	go func() {
		defer fetchWG.Done()
		clones, clonesErr = client.FetchTrafficClones(ctx, owner, repo.Name)
	}()
	fetchWG.Wait()

	fetchFailed := viewsErr != nil || clonesErr != nil

	// Aggregation phase: the tracker's maps are not safe for concurrent
	// mutation, so all seven record calls happen under the lock.
	mu.Lock()
	recordErr := tracker.RecordRepository(repo, views, clones)
	if fetchFailed {
		if viewsErr != nil {
			*errs = append(*errs, fmt.Errorf("%s: views traffic: %w", repo.Name, viewsErr))
		}
		if clonesErr != nil {
			*errs = append(*errs, fmt.Errorf("%s: clones traffic: %w", repo.Name, clonesErr))
		}
	}
	if recordErr != nil {
		*errs = append(*errs, fmt.Errorf("%s: recording metrics: %w", repo.Name, recordErr))
	}
	mu.Unlock()

	switch {
	case recordErr != nil:
		state.Get().PrintRepo(repo.Name, false, recordErr.Error())
	case fetchFailed:
		state.Get().PrintRepo(repo.Name, false, "traffic unavailable, reported as zero")
	default:
		state.Get().PrintRepo(repo.Name, true, "")
	}

	progressUpdates <- progressUpdate{delta: 1}
}

// processReposParallel processes repositories concurrently with at most
// maxWorkers in flight, folding results into the shared tracker. It
// returns only after every spawned worker has completed; the tracker is
// not safe to read before then.
func processReposParallel(
	ctx context.Context,
	client *ghapi.Client,
	owner string,
	repos []ghapi.Repository,
	tracker *metrics.Tracker,
	maxWorkers int,
	progress *pterm.ProgressbarPrinter,
) []error {
	if maxWorkers < 1 {
		maxWorkers = 1
	}

	errs := make([]error, 0, len(repos)/5)
	var mu sync.Mutex

	sem := make(chan struct{}, maxWorkers)
	var wg sync.WaitGroup
	done := make(chan struct{})

	// pterm printers are not thread-safe; a single handler goroutine owns
	// the progress bar.
	progressUpdates := make(chan progressUpdate, maxWorkers*4)
	var progressHandler sync.WaitGroup
	progressHandler.Add(1)
	go func() {
		defer progressHandler.Done()
		for update := range progressUpdates {
			if update.title != "" && progress != nil {
				progress.UpdateTitle(update.title)
			}
			if update.delta > 0 && progress != nil {
				for i := 0; i < update.delta; i++ {
					progress.Increment()
				}
			}
		}
	}()

	updaterDone := startProgressUpdater(done, progressUpdates, len(repos))

spawnLoop:
	for _, repo := range repos {
		select {
		case <-ctx.Done():
			break spawnLoop
		default:
		}

		wg.Add(1)
		go func(r ghapi.Repository) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			processRepoWorker(ctx, client, owner, r, tracker, &errs, &mu, progressUpdates)
		}(repo)
	}

	wg.Wait()

	close(done)
	<-updaterDone
	close(progressUpdates)
	progressHandler.Wait()

	return errs
}
