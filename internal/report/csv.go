// Package report renders the aggregated metrics snapshot.
//
// This file (csv.go) writes the CSV exports: the scalar metric totals,
// the combined per-date traffic totals, and one per-date breakdown file
// for each traffic metric. Dates are exported as MM/DD/YYYY.
package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/woodsj1206/GitHub-Repository-Statistics/internal/metrics"
)

const timestampLayout = "2006-01-02T15:04:05Z"

// WriteCSVReports writes all CSV reports into dir.
func WriteCSVReports(dir string, snapshot metrics.Snapshot) error {
	if err := WriteRepositoryMetricsReport(dir, snapshot); err != nil {
		return err
	}
	if err := WriteTotalTrafficReport(dir, snapshot); err != nil {
		return err
	}
	for _, traffic := range []metrics.TrafficSnapshot{
		snapshot.Views, snapshot.UniqueVisitors, snapshot.Clones, snapshot.UniqueCloners,
	} {
		if err := WriteTrafficTimestampReport(dir, traffic); err != nil {
			return err
		}
	}
	return nil
}

// WriteRepositoryMetricsReport writes the scalar totals (stars, watchers,
// forks) as a single-row CSV.
func WriteRepositoryMetricsReport(dir string, snapshot metrics.Snapshot) error {
	headers := []string{"Stars", "Watchers", "Forks"}
	rows := [][]string{{
		strconv.Itoa(snapshot.Stargazers.Total),
		strconv.Itoa(snapshot.Watchers.Total),
		strconv.Itoa(snapshot.Forks.Total),
	}}
	return writeCSV(filepath.Join(dir, "repository_metrics_report.csv"), headers, rows)
}

// WriteTotalTrafficReport writes the per-date totals of all four traffic
// metrics on a shared date axis. The axis comes from the views window;
// the accumulators share a construction window, so dates only diverge
// when the API reported out-of-window timestamps for one metric only.
func WriteTotalTrafficReport(dir string, snapshot metrics.Snapshot) error {
	headers := []string{"Date", "Total Views", "Unique Visitors", "Total Clones", "Unique Cloners"}

	rows := make([][]string, 0, len(snapshot.Views.Timestamps))
	for _, ts := range snapshot.Views.Timestamps {
		rows = append(rows, []string{
			formatTimestamp(ts),
			strconv.Itoa(snapshot.Views.Window[ts].Total),
			strconv.Itoa(snapshot.UniqueVisitors.Window[ts].Total),
			strconv.Itoa(snapshot.Clones.Window[ts].Total),
			strconv.Itoa(snapshot.UniqueCloners.Window[ts].Total),
		})
	}
	return writeCSV(filepath.Join(dir, "total_traffic_metric_report.csv"), headers, rows)
}

// WriteTrafficTimestampReport writes the per-date, per-repository
// breakdown for one traffic metric.
func WriteTrafficTimestampReport(dir string, traffic metrics.TrafficSnapshot) error {
	headers := []string{"Date", "Repository", titleCase(traffic.Kind) + " " + titleCase(traffic.Key)}

	var rows [][]string
	for _, ts := range traffic.Timestamps {
		for _, entry := range traffic.Window[ts].Entries {
			rows = append(rows, []string{formatTimestamp(ts), entry.Repo, strconv.Itoa(entry.Value)})
		}
	}

	name := fmt.Sprintf("traffic_metric_timestamp_report_%s_%s.csv", traffic.Kind, traffic.Key)
	return writeCSV(filepath.Join(dir, name), headers, rows)
}

// formatTimestamp converts a window key (YYYY-MM-DDT00:00:00Z) to
// MM/DD/YYYY. Unparsable keys pass through unchanged rather than dropping
// the row.
func formatTimestamp(ts string) string {
	t, err := time.Parse(timestampLayout, ts)
	if err != nil {
		return ts
	}
	return t.Format("01/02/2006")
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func writeCSV(path string, headers []string, rows [][]string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if len(headers) > 0 {
		if err := writer.Write(headers); err != nil {
			return fmt.Errorf("writing headers to %s: %w", path, err)
		}
	}
	if err := writer.WriteAll(rows); err != nil {
		return fmt.Errorf("writing rows to %s: %w", path, err)
	}
	writer.Flush()
	return writer.Error()
}
