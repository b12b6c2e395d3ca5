// gh-traffic-stats uses GitHub's API to analyze stars, clones, forks,
// watchers, and traffic trends across a user's repositories, and emits an
// HTML dashboard plus CSV reports.
//
// Usage:
//
//	gh-traffic-stats run
//	gh-traffic-stats run --output-dir out --max-workers 5 --theme dark
package main

import (
	"github.com/woodsj1206/GitHub-Repository-Statistics/cmd"
)

// Version is the current version of the tool.
// It can be overridden at build time using:
//
//	go build -ldflags="-X main.Version=v1.0.0"
var Version = "dev"

func main() {
	cmd.Version = Version
	cmd.Execute()
}
