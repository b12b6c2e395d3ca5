// Package cmd provides the command-line interface for the repository
// statistics tool. It defines the Cobra command structure, flag handling,
// and command execution.
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version is set by the main package from the build version.
var Version = "dev"

var rootCmd = &cobra.Command{
	Use:   "gh-traffic-stats",
	Short: "Analyze stars, forks, watchers, and traffic trends across your repositories",
	Long: `gh-traffic-stats uses GitHub's API to analyze stars, clones, forks,
watchers, and traffic trends across a user's repositories, and writes an
HTML dashboard plus CSV reports.`,
	Run: func(cmd *cobra.Command, args []string) {
		// fallback message, report logic is in a subcommand
		fmt.Println("Use `gh-traffic-stats run` to generate a report.")
	},
}

func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}
