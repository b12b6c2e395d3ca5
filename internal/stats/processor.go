// Package stats implements concurrent processing of GitHub repository
// statistics.
//
// This file (processor.go) contains the main orchestration for a report
// run: fetch the repository list, fan out over repositories to collect
// traffic data, then hand the aggregated snapshot to the reporters.
package stats

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/pterm/pterm"

	"github.com/woodsj1206/GitHub-Repository-Statistics/internal/config"
	"github.com/woodsj1206/GitHub-Repository-Statistics/internal/ghapi"
	"github.com/woodsj1206/GitHub-Repository-Statistics/internal/metrics"
	"github.com/woodsj1206/GitHub-Repository-Statistics/internal/report"
	"github.com/woodsj1206/GitHub-Repository-Statistics/internal/state"
)

// Options holds run options that come from the command line rather than
// the environment.
type Options struct {
	Version string
	Verbose bool
}

// printBanner displays the startup banner with version information.
func printBanner(version string) {
	if version == "" {
		version = "dev"
	}

	banner := fmt.Sprintf(`
   ████████╗██████╗  █████╗ ███████╗███████╗██╗ ██████╗
   ╚══██╔══╝██╔══██╗██╔══██╗██╔════╝██╔════╝██║██╔════╝
      ██║   ██████╔╝███████║█████╗  █████╗  ██║██║
      ██║   ██╔══██╗██╔══██║██╔══╝  ██╔══╝  ██║██║
      ██║   ██║  ██║██║  ██║██║     ██║     ██║╚██████╗
      ╚═╝   ╚═╝  ╚═╝╚═╝  ╚═╝╚═╝     ╚═╝     ╚═╝ ╚═════╝
   📊 GitHub Repository Statistics • %s
`, version)

	pterm.DefaultBox.WithBoxStyle(pterm.NewStyle(pterm.FgCyan)).
		WithHorizontalString("═").
		WithVerticalString("║").
		Println(banner)
	fmt.Println()
}

// RunWithContext executes a full report run: repository discovery, the
// concurrent fetch-and-aggregate pipeline, and report generation.
//
// Individual repository failures degrade to zero traffic and are listed
// at the end; the only fatal errors are invalid configuration and context
// cancellation.
func RunWithContext(ctx context.Context, cfg *config.Config, opts Options) error {
	printBanner(opts.Version)

	if opts.Verbose {
		pterm.EnableDebugMessages()
	}

	if err := validateUsername(cfg.Username); err != nil {
		return fmt.Errorf("invalid GitHub username: %w", err)
	}

	startTime := time.Now()
	state.Get().Reset()

	client := ghapi.NewClient(cfg.Token)
	tracker := metrics.NewTracker(cfg.WindowDays)

	spinner, _ := pterm.DefaultSpinner.WithRemoveWhenDone(true).Start("Fetching repository list...")
	repos, err := client.FetchRepositories(ctx, cfg.Username, cfg.Visibility)
	_ = spinner.Stop()
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return fmt.Errorf("operation cancelled: %w", err)
		}
		return fmt.Errorf("fetching repository list: %w", err)
	}

	pterm.Info.Printf("Found %d %s repositories for %s\n", len(repos), cfg.Visibility, cfg.Username)
	state.Get().AddRepos(len(repos))

	var errs []error
	if len(repos) > 0 {
		progress, _ := pterm.DefaultProgressbar.
			WithTotal(len(repos)).
			WithTitle(fmt.Sprintf("Processing %d repositories...", len(repos))).
			WithBarCharacter("█").
			WithLastCharacter("█").
			WithElapsedTimeRoundingFactor(time.Second).
			WithShowElapsedTime(true).
			WithShowCount(true).
			WithBarStyle(pterm.NewStyle(pterm.FgLightBlue)).
			WithTitleStyle(pterm.NewStyle(pterm.FgLightCyan)).
			Start()

		errs = processReposParallel(ctx, client, cfg.Username, repos, tracker, cfg.MaxWorkers, progress)
	}

	if ctx.Err() != nil {
		return fmt.Errorf("operation cancelled: %w", ctx.Err())
	}

	// Reads are safe here: every worker has completed.
	snapshot := tracker.Snapshot()

	report.PrintSummary(snapshot, cfg.Username)

	if err := report.WriteAll(cfg.OutputDir, snapshot, cfg.Username, cfg.Theme); err != nil {
		return fmt.Errorf("writing reports: %w", err)
	}

	if len(errs) > 0 {
		pterm.Println()
		pterm.Warning.Printf("⚠ %d errors occurred during processing:\n", len(errs))
		for _, err := range errs {
			pterm.Warning.Printf("  - %s\n", err)
		}
	}

	pterm.Println()
	state.Get().PrintRateLimit()
	state.Get().MarkDoneWithSummary(cfg.OutputDir, time.Since(startTime), len(errs))
	return nil
}
