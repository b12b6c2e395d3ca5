package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/woodsj1206/GitHub-Repository-Statistics/internal/config"
	"github.com/woodsj1206/GitHub-Repository-Statistics/internal/stats"
)

var (
	envFile    string
	outputDir  string
	maxWorkers int
	windowDays int
	visibility string
	theme      string
	verbose    bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Generate a repository statistics report",
	Long: `Fetch the repository list and per-repository traffic data for the
configured GitHub user, aggregate them, and write the HTML dashboard and
CSV reports.

Credentials come from the environment (or a .env file):
  GITHUB_USERNAME        GitHub username that owns the repositories
  PERSONAL_ACCESS_TOKEN  Token with access to the traffic endpoints

Examples:
  gh-traffic-stats run                      # reports/ with defaults
  gh-traffic-stats run -d out -w 5 -v       # custom dir, 5 workers, verbose
  gh-traffic-stats run --theme dark         # dark dashboard`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(envFile)
		if err != nil {
			return err
		}

		// Flags override environment-sourced settings when set.
		if cmd.Flags().Changed("output-dir") {
			cfg.OutputDir = outputDir
		}
		if cmd.Flags().Changed("max-workers") {
			cfg.MaxWorkers = maxWorkers
		}
		if cmd.Flags().Changed("window-days") {
			cfg.WindowDays = windowDays
		}
		if cmd.Flags().Changed("visibility") {
			cfg.Visibility = visibility
		}
		if cmd.Flags().Changed("theme") {
			cfg.Theme = theme
		}

		// A 2-hour ceiling keeps a wedged API from hanging the run forever.
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Hour)
		defer cancel()

		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

		go func() {
			sig := <-sigChan
			if sig == syscall.SIGTERM {
				fmt.Fprintln(os.Stderr, "\nReceived termination signal (SIGTERM), shutting down gracefully...")
				cancel()
				return
			}

			fmt.Fprintln(os.Stderr, "\nReceived interrupt signal, shutting down gracefully... (press Ctrl-C again to force quit)")
			cancel()

			<-sigChan
			fmt.Fprintln(os.Stderr, "\nForce quitting...")
			os.Exit(130)
		}()

		return stats.RunWithContext(ctx, cfg, stats.Options{Version: Version, Verbose: verbose})
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVar(&envFile, "env-file", "", "Path to a .env file with credentials (default: ./.env)")
	runCmd.Flags().StringVarP(&outputDir, "output-dir", "d", config.DefaultOutputDir, "Directory for the HTML and CSV reports")
	runCmd.Flags().IntVarP(&maxWorkers, "max-workers", "w", config.DefaultMaxWorkers, "Maximum number of repositories processed concurrently")
	runCmd.Flags().IntVar(&windowDays, "window-days", config.DefaultWindowDays, "Length of the traffic date window in days")
	runCmd.Flags().StringVar(&visibility, "visibility", config.DefaultVisibility, "Repository visibility to include (public or private)")
	runCmd.Flags().StringVar(&theme, "theme", config.DefaultTheme, "Dashboard theme (light or dark)")
	runCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
}
