// Package report renders the aggregated metrics snapshot.
//
// This file (html.go) generates the themed HTML dashboard: a header with
// the user's profile, one card per scalar metric and per traffic metric
// showing the total and the top repositories, and a per-date table for
// each traffic metric.
package report

import (
	"fmt"
	"html/template"
	"os"

	"github.com/woodsj1206/GitHub-Repository-Statistics/internal/metrics"
)

// HTMLGenerator renders the dashboard for one user. The link toggles
// mirror the output options of the report: profile and repository links
// can be suppressed for embedding.
type HTMLGenerator struct {
	Username                 string
	Theme                    string
	ProfileLinkDisplayed     bool
	RepositoryLinksDisplayed bool
}

// NewHTMLGenerator creates a generator with both link toggles enabled.
// Unknown themes fall back to "light".
func NewHTMLGenerator(username, theme string) *HTMLGenerator {
	if theme != "dark" {
		theme = "light"
	}
	return &HTMLGenerator{
		Username:                 username,
		Theme:                    theme,
		ProfileLinkDisplayed:     true,
		RepositoryLinksDisplayed: true,
	}
}

// themeVariables maps a theme name to its CSS custom properties.
var themeVariables = map[string]map[string]string{
	"light": {
		"background-color": "#ffffff",
		"border-color":     "#59636e",
		"link-color":       "#59636e",
		"link-hover-color": "#023b95",
		"text-color":       "#59636e",
	},
	"dark": {
		"background-color": "#010409",
		"border-color":     "#dfe1ed",
		"link-color":       "#dfe1ed",
		"link-hover-color": "#74b9ff",
		"text-color":       "#dfe1ed",
	},
}

// metricCard is one dashboard card.
type metricCard struct {
	Label        string
	PastTense    string
	Total        string
	TopRepos     []repoLink
	PluralSuffix string
}

// trafficTable is the per-date table of one traffic metric.
type trafficTable struct {
	Label string
	Rows  []trafficRow
}

type trafficRow struct {
	Date  string
	Total int
}

type repoLink struct {
	Name string
	URL  string
}

type dashboardData struct {
	Username    string
	ProfileURL  string
	ShowProfile bool
	CSSVars     template.CSS
	Cards       []metricCard
	Tables      []trafficTable
}

// WriteDashboard renders the dashboard for the snapshot into path.
func (g *HTMLGenerator) WriteDashboard(path string, snapshot metrics.Snapshot) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer file.Close()

	data := g.buildData(snapshot)
	if err := dashboardTemplate.Execute(file, data); err != nil {
		return fmt.Errorf("rendering dashboard: %w", err)
	}
	return nil
}

func (g *HTMLGenerator) buildData(snapshot metrics.Snapshot) dashboardData {
	return dashboardData{
		Username:    g.Username,
		ProfileURL:  "https://github.com/" + g.Username,
		ShowProfile: g.ProfileLinkDisplayed,
		CSSVars:     g.cssVariables(),
		Cards: []metricCard{
			g.card("Stars", "starred", snapshot.Stargazers),
			g.card("Watchers", "watched", snapshot.Watchers),
			g.card("Forks", "forked", snapshot.Forks),
			g.card("Views", "viewed", snapshot.Views.MetricSnapshot),
			g.card("Unique Visitors", "visited", snapshot.UniqueVisitors.MetricSnapshot),
			g.card("Clones", "cloned", snapshot.Clones.MetricSnapshot),
			g.card("Unique Cloners", "cloned", snapshot.UniqueCloners.MetricSnapshot),
		},
		Tables: []trafficTable{
			g.table("Views", snapshot.Views),
			g.table("Unique Visitors", snapshot.UniqueVisitors),
			g.table("Clones", snapshot.Clones),
			g.table("Unique Cloners", snapshot.UniqueCloners),
		},
	}
}

func (g *HTMLGenerator) card(label, pastTense string, m metrics.MetricSnapshot) metricCard {
	links := make([]repoLink, 0, len(m.TopRepositories))
	for _, name := range m.TopRepositories {
		link := repoLink{Name: name}
		if g.RepositoryLinksDisplayed {
			link.URL = fmt.Sprintf("https://github.com/%s/%s", g.Username, name)
		}
		links = append(links, link)
	}

	suffix := ""
	if len(links) != 1 {
		suffix = "s"
	}

	return metricCard{
		Label:        label,
		PastTense:    pastTense,
		Total:        FormatLargeNumber(m.Total),
		TopRepos:     links,
		PluralSuffix: suffix,
	}
}

func (g *HTMLGenerator) table(label string, t metrics.TrafficSnapshot) trafficTable {
	rows := make([]trafficRow, 0, len(t.Timestamps))
	for _, ts := range t.Timestamps {
		rows = append(rows, trafficRow{Date: formatTimestamp(ts), Total: t.Window[ts].Total})
	}
	return trafficTable{Label: label, Rows: rows}
}

// cssVariables renders the theme as CSS custom properties.
func (g *HTMLGenerator) cssVariables() template.CSS {
	vars := themeVariables[g.Theme]
	css := ""
	for _, name := range []string{
		"background-color", "border-color", "link-color", "link-hover-color", "text-color",
	} {
		css += fmt.Sprintf("--%s: %s;\n", name, vars[name])
	}
	return template.CSS(css)
}

// FormatLargeNumber formats a count with k/M/B suffixes; anything above a
// billion collapses to "1B+".
func FormatLargeNumber(number int) string {
	if number > 1_000_000_000 {
		return "1B+"
	}

	for _, scale := range []struct {
		factor int
		suffix string
	}{
		{1_000_000_000, "B"},
		{1_000_000, "M"},
		{1_000, "k"},
	} {
		if number >= scale.factor {
			formatted := fmt.Sprintf("%.1f", float64(number)/float64(scale.factor))
			if len(formatted) > 2 && formatted[len(formatted)-2:] == ".0" {
				formatted = formatted[:len(formatted)-2]
			}
			return formatted + scale.suffix
		}
	}

	return fmt.Sprintf("%d", number)
}

var dashboardTemplate = template.Must(template.New("dashboard").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>GitHub Repository Statistics - {{.Username}}</title>
<style>
:root {
{{.CSSVars}}}
body {
  background-color: var(--background-color);
  color: var(--text-color);
  font-family: -apple-system, "Segoe UI", Helvetica, Arial, sans-serif;
  margin: 2rem;
}
.card {
  border: 1px solid var(--border-color);
  border-radius: 6px;
  padding: 1rem;
  margin-bottom: 1rem;
}
.card h2 { margin-top: 0; }
.link { color: var(--link-color); text-decoration: none; }
.link:hover { color: var(--link-hover-color); }
table { border-collapse: collapse; margin-top: 0.5rem; }
th, td { border: 1px solid var(--border-color); padding: 0.25rem 0.75rem; }
</style>
</head>
<body>
<header>
  {{if .ShowProfile}}<h1><a class="link" target="_blank" href="{{.ProfileURL}}">{{.Username}}</a></h1>
  {{else}}<h1>{{.Username}}</h1>{{end}}
</header>
{{range .Cards}}<section class="card">
  <h2>{{.Label}}: {{.Total}}</h2>
  <p>Most {{.PastTense}} repository{{.PluralSuffix}}:</p>
  <ul>
  {{range .TopRepos}}{{if .URL}}<li><a class="link" target="_blank" href="{{.URL}}">{{.Name}}</a></li>
  {{else}}<li>{{.Name}}</li>
  {{end}}{{end}}</ul>
</section>
{{end}}
{{range .Tables}}<section class="card">
  <h2>{{.Label}} per day</h2>
  <table>
    <tr><th>Date</th><th>Total</th></tr>
    {{range .Rows}}<tr><td>{{.Date}}</td><td>{{.Total}}</td></tr>
    {{end}}
  </table>
</section>
{{end}}
</body>
</html>
`))
