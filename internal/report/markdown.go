package report

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/drpaneas/repolens/internal/analyzer"
)

// Generator writes markdown reports into an output directory.
type Generator struct {
	outputDir string
}

// NewGenerator returns a Generator that writes to outputDir.
func NewGenerator(outputDir string) *Generator {
	return &Generator{outputDir: outputDir}
}

type markdownData struct {
	Report     *analyzer.Report
	Languages  []Language
	Metrics    []Metric
	Components []Metric
	Updated    string
}

var markdownTmpl = template.Must(template.New("report").Parse(markdownTemplate))

// Markdown renders r as markdown.
func Markdown(r *analyzer.Report) ([]byte, error) {
	data := markdownData{
		Report:     r,
		Languages:  Languages(r),
		Metrics:    KeyMetrics(r),
		Components: Components(r),
		Updated:    r.UpdatedAt.Format("2006-01-02"),
	}
	var buf bytes.Buffer
	if err := markdownTmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("executing report template: %w", err)
	}
	return buf.Bytes(), nil
}

// Write renders r and stores it as <owner>_<repo>_analysis_report.md,
// returning the file path.
func (g *Generator) Write(r *analyzer.Report) (string, error) {
	content, err := Markdown(r)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(g.outputDir, 0o755); err != nil {
		return "", fmt.Errorf("creating directory %s: %w", g.outputDir, err)
	}
	path := filepath.Join(g.outputDir, FileName(r.FullName))
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return "", fmt.Errorf("writing file %s: %w", path, err)
	}
	slog.Info("wrote report", "path", path)
	return path, nil
}

// FileName returns the report file name for a full repository name.
func FileName(fullName string) string {
	return strings.ReplaceAll(fullName, "/", "_") + "_analysis_report.md"
}
