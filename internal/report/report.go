// Package report renders the aggregated metrics snapshot into its output
// formats: the console summary, the HTML dashboard, and the CSV exports.
// It consumes only the read-only snapshot; nothing here touches the
// accumulators.
package report

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pterm/pterm"

	"github.com/woodsj1206/GitHub-Repository-Statistics/internal/metrics"
)

// WriteAll writes the HTML dashboard and every CSV report into outputDir,
// creating the directory if needed.
func WriteAll(outputDir string, snapshot metrics.Snapshot, username, theme string) error {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("creating output directory %s: %w", outputDir, err)
	}

	generator := NewHTMLGenerator(username, theme)
	htmlPath := filepath.Join(outputDir, theme+".html")
	if err := generator.WriteDashboard(htmlPath, snapshot); err != nil {
		return err
	}
	pterm.Success.Printf("✓ HTML dashboard written to %s\n", htmlPath)

	if err := WriteCSVReports(outputDir, snapshot); err != nil {
		return err
	}
	pterm.Success.Printf("✓ CSV reports written to %s\n", outputDir)

	return nil
}
