// Package report renders the aggregated metrics snapshot.
//
// This file (console.go) prints the end-of-run summary: per-metric totals
// and top repositories in a tree layout, plus ASCII charts of the daily
// traffic totals over the rolling window.
package report

import (
	"fmt"
	"strings"

	"github.com/guptarohit/asciigraph"
	"github.com/pterm/pterm"

	"github.com/woodsj1206/GitHub-Repository-Statistics/internal/metrics"
)

const chartHeight = 8

// PrintSummary prints the aggregated metrics to the console.
func PrintSummary(snapshot metrics.Snapshot, username string) {
	pterm.Println()
	pterm.DefaultSection.Printf("Repository metrics for %s", username)

	printMetric("⭐ Stars", snapshot.Stargazers)
	printMetric("👀 Watchers", snapshot.Watchers)
	printMetric("🍴 Forks", snapshot.Forks)

	pterm.DefaultSection.Println("Traffic (rolling window)")

	printTraffic("Views", snapshot.Views)
	printTraffic("Unique visitors", snapshot.UniqueVisitors)
	printTraffic("Clones", snapshot.Clones)
	printTraffic("Unique cloners", snapshot.UniqueCloners)

	printChart("Daily views", snapshot.Views)
	printChart("Daily clones", snapshot.Clones)
}

func printMetric(label string, m metrics.MetricSnapshot) {
	pterm.Info.Printf("%s\n", label)
	pterm.Info.Printf("   ├─ Total: %d\n", m.Total)
	pterm.Info.Printf("   └─ Top (%d): %s\n", m.Max, joinOrDash(m.TopRepositories))
}

func printTraffic(label string, t metrics.TrafficSnapshot) {
	pterm.Info.Printf("📈 %s\n", label)
	pterm.Info.Printf("   ├─ Window total: %d\n", t.Total)
	pterm.Info.Printf("   └─ Top (%d): %s\n", t.Max, joinOrDash(t.TopRepositories))
}

// printChart renders the per-date totals as an ASCII line chart. Dates
// inserted outside the initial window are included; Timestamps is already
// chronological.
func printChart(caption string, t metrics.TrafficSnapshot) {
	if len(t.Timestamps) == 0 {
		return
	}

	data := make([]float64, 0, len(t.Timestamps))
	for _, ts := range t.Timestamps {
		data = append(data, float64(t.Window[ts].Total))
	}

	pterm.Println()
	fmt.Println(asciigraph.Plot(data,
		asciigraph.Height(chartHeight),
		asciigraph.Caption(caption),
	))
}

func joinOrDash(names []string) string {
	if len(names) == 0 {
		return "-"
	}
	return strings.Join(names, ", ")
}
