// Package report renders analysis, profile and modernization reports as
// console tables, JSON, or markdown files.
package report

import (
	"cmp"
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/drpaneas/repolens/internal/analyzer"
	"github.com/drpaneas/repolens/internal/modernize"
)

var (
	strongColor   = color.New(color.FgGreen, color.Bold)
	moderateColor = color.New(color.FgYellow)
	weakColor     = color.New(color.FgRed)
)

// colorRating highlights a rating by its score band. Color is disabled
// automatically when stdout is not a terminal.
func colorRating(total float64, rating string) string {
	switch {
	case total >= 70:
		return strongColor.Sprint(rating)
	case total >= 40:
		return moderateColor.Sprint(rating)
	default:
		return weakColor.Sprint(rating)
	}
}

// Language is one row of the language breakdown.
type Language struct {
	Name    string
	Percent float64
}

// Languages returns the language percentages ordered by share, largest
// first, with ties broken by name.
func Languages(r *analyzer.Report) []Language {
	langs := make([]Language, 0, len(r.Languages.Percentages))
	for name, pct := range r.Languages.Percentages {
		langs = append(langs, Language{Name: name, Percent: pct})
	}
	slices.SortFunc(langs, func(a, b Language) int {
		if c := cmp.Compare(b.Percent, a.Percent); c != 0 {
			return c
		}
		return strings.Compare(a.Name, b.Name)
	})
	return langs
}

// Metric is one labelled value of the key metrics table.
type Metric struct {
	Name  string
	Value string
}

// KeyMetrics returns the headline metrics shown in text and markdown output.
func KeyMetrics(r *analyzer.Report) []Metric {
	return []Metric{
		{"Commit quality", pct(r.CommitAnalysis.Score()) + strategySuffix(string(r.CommitAnalysis.Strategy))},
		{"README quality", pct(r.ReadmeAnalysis.Score()) + strategySuffix(string(r.ReadmeAnalysis.Strategy))},
		{"Commit discipline", fmt.Sprintf("%s (%s)", pct(r.CommitDiscipline.ConsistencyScore), r.CommitDiscipline.WorkRhythm)},
		{"Code review signal", pct(r.Collaboration.CodeReview.Signal()) + strategySuffix(string(r.Collaboration.CodeReview.Strategy))},
		{"Issue resolution", pct(r.ProblemSolving.ResolutionRate)},
		{"Avg resolution time", fmt.Sprintf("%.1f days", r.ProblemSolving.AvgResolutionDays)},
		{"External repositories", strconv.Itoa(r.OpenSource.UniqueExternalRepos)},
		{"Community engagement", fmt.Sprintf("%.1f", r.OpenSource.CommunityEngagementScore)},
	}
}

// Components returns the composite score breakdown, or nil when the
// report carries no score.
func Components(r *analyzer.Report) []Metric {
	if r.Score == nil {
		return nil
	}
	c := r.Score.Components
	return []Metric{
		{"Technical skills", fmt.Sprintf("%.1f / 20", c.TechnicalSkills)},
		{"Collaboration", fmt.Sprintf("%.1f / 15", c.Collaboration)},
		{"Communication", fmt.Sprintf("%.1f / 20", c.Communication)},
		{"Discipline", fmt.Sprintf("%.1f / 15", c.Discipline)},
		{"Problem solving", fmt.Sprintf("%.1f / 15", c.ProblemSolving)},
		{"Community impact", fmt.Sprintf("%.1f / 15", c.CommunityImpact)},
	}
}

func pct(v float64) string {
	return fmt.Sprintf("%.1f%%", v)
}

func strategySuffix(s string) string {
	if s == "" {
		return ""
	}
	return " [" + s + "]"
}

// WriteJSON writes v as indented JSON.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	return nil
}

// WriteText prints a console summary of an analysis report.
func WriteText(w io.Writer, r *analyzer.Report) error {
	rule := strings.Repeat("=", 70)
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "Repository analysis: %s\n", r.FullName)
	fmt.Fprintln(w, rule)
	if r.Score != nil {
		fmt.Fprintf(w, "Total score      : %.1f / %.0f (%s)\n", r.Score.TotalScore, r.Score.MaxScore, colorRating(r.Score.TotalScore, r.Score.Rating))
		fmt.Fprintf(w, "Level            : %s\n", r.Score.Level)
	}
	fmt.Fprintf(w, "Primary language : %s\n", r.Language)
	fmt.Fprintf(w, "Contributors     : %d\n", r.Collaboration.ContributorsCount)
	fmt.Fprintf(w, "Stars / forks    : %d / %d\n", r.Stars, r.Forks)
	fmt.Fprintf(w, "Last updated     : %s\n", r.UpdatedAt.Format("2006-01-02"))
	fmt.Fprintf(w, "URL              : %s\n\n", r.URL)

	langs := Languages(r)
	if len(langs) == 0 {
		fmt.Fprintf(w, "No language data found.\n\n")
	} else {
		rows := make([][]string, 0, len(langs))
		for _, l := range langs {
			rows = append(rows, []string{l.Name, pct(l.Percent)})
		}
		if err := table(w, []string{"Language", "Share"}, rows); err != nil {
			return err
		}
	}

	if err := table(w, []string{"Metric", "Value"}, metricRows(KeyMetrics(r))); err != nil {
		return err
	}
	if comps := Components(r); comps != nil {
		if err := table(w, []string{"Component", "Points"}, metricRows(comps)); err != nil {
			return err
		}
	}

	if len(r.Degraded) > 0 {
		fmt.Fprintf(w, "Unavailable data: %s\n", strings.Join(r.Degraded, ", "))
	}
	writeNarrative(w, r.Narrative)
	fmt.Fprintln(w, rule)
	return nil
}

func writeNarrative(w io.Writer, text string) {
	if text == "" {
		return
	}
	fmt.Fprintln(w, "\nAI assessment")
	fmt.Fprintln(w, strings.Repeat("-", 70))
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			fmt.Fprintf(w, "  %s\n", line)
		}
	}
}

// WriteModernizationText prints the package recommendations of a
// modernization report.
func WriteModernizationText(w io.Writer, r *modernize.Report) error {
	if !r.Found || len(r.Recommendations) == 0 {
		fmt.Fprintln(w, r.Narrative)
		return nil
	}
	rows := make([][]string, 0, len(r.Recommendations))
	for _, rec := range r.Recommendations {
		rows = append(rows, []string{rec.Package, rec.Suggestion})
	}
	if err := table(w, []string{"Package", "Suggestion"}, rows); err != nil {
		return err
	}
	fmt.Fprintf(w, "\n%s\n", r.Narrative)
	return nil
}

func metricRows(ms []Metric) [][]string {
	rows := make([][]string, 0, len(ms))
	for _, m := range ms {
		rows = append(rows, []string{m.Name, m.Value})
	}
	return rows
}

func table(w io.Writer, header []string, rows [][]string) error {
	t := tablewriter.NewWriter(w)
	t.Header(header)
	t.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignLeft
	})
	if err := t.Bulk(rows); err != nil {
		return fmt.Errorf("building table: %w", err)
	}
	if err := t.Render(); err != nil {
		return fmt.Errorf("rendering table: %w", err)
	}
	fmt.Fprintln(w)
	return nil
}
