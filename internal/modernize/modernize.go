// Package modernize reads a Python dependency manifest and suggests modern
// replacements for legacy libraries.
package modernize

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/drpaneas/repolens/internal/ghcrawl"
	"github.com/drpaneas/repolens/internal/llm"
)

// ManifestPath is the dependency manifest read from the default branch.
const ManifestPath = "requirements.txt"

// Fixed narratives for the cases where no LLM text is produced.
const (
	NarrativeNotFound    = "requirements.txt not found."
	NarrativeUndecodable = "Decoding error."
	NarrativeNoPackages  = "No packages detected."
	NarrativeUnavailable = "AI analysis unavailable: no LLM provider configured."
	noAlternative        = "No clear modern alternative found. May already be up-to-date."
)

var packageName = regexp.MustCompile(`(?m)^([a-zA-Z0-9_\-]+)`)

type replacement struct {
	legacy string
	modern string
}

// replacements is matched in order; the first legacy name contained in a
// package name wins.
var replacements = []replacement{
	{"tensorflow", "PyTorch or JAX (modern, flexible deep learning alternatives)"},
	{"flask", "FastAPI (async-ready, modern Python web framework)"},
	{"django", "Django REST Framework or FastAPI (for modern REST APIs)"},
	{"numpy", "Consider JAX for GPU-accelerated numerical computing"},
	{"pandas", "Polars (faster DataFrame library with lazy evaluation)"},
	{"matplotlib", "Plotly or Altair (interactive and modern plotting)"},
	{"requests", "httpx (async HTTP client with better performance)"},
	{"sqlalchemy", "SQLModel (modern ORM combining SQLAlchemy + Pydantic)"},
	{"beautifulsoup4", "Selectolax (faster HTML parsing library)"},
	{"keras", "PyTorch Lightning or HuggingFace Transformers"},
	{"scikit-learn", "Consider LightGBM or AutoML frameworks for scalability"},
}

// FileSource fetches decoded file content from a repository.
// *ghcrawl.Crawler implements it.
type FileSource interface {
	FileContent(ctx context.Context, owner, repo, path string) (string, error)
}

// Recommendation pairs a package with its suggested replacement.
type Recommendation struct {
	Package    string `json:"package"`
	Suggestion string `json:"suggestion"`
}

// Report is the modernization advice for one repository.
type Report struct {
	Found           bool             `json:"found"`
	Packages        []string         `json:"packages"`
	Recommendations []Recommendation `json:"recommendations"`
	Narrative       string           `json:"ai_analysis"`
}

// Advisor produces modernization reports.
type Advisor struct {
	source   FileSource
	provider llm.Provider
}

// NewAdvisor returns an Advisor. A nil provider skips the LLM narrative.
func NewAdvisor(source FileSource, provider llm.Provider) *Advisor {
	return &Advisor{source: source, provider: provider}
}

// Analyze reads the manifest of owner/repo and maps its packages to
// suggestions. It never fails: an absent or undecodable manifest yields
// Found=false, and LLM problems only affect the narrative.
func (a *Advisor) Analyze(ctx context.Context, owner, repo string) *Report {
	content, err := a.source.FileContent(ctx, owner, repo, ManifestPath)
	if errors.Is(err, ghcrawl.ErrUndecodable) {
		slog.Warn("manifest could not be decoded", "repo", owner+"/"+repo, "path", ManifestPath, "error", err)
		return &Report{Packages: []string{}, Recommendations: []Recommendation{}, Narrative: NarrativeUndecodable}
	}
	if err != nil {
		slog.Warn("manifest not found", "repo", owner+"/"+repo, "path", ManifestPath, "error", err)
		return &Report{Packages: []string{}, Recommendations: []Recommendation{}, Narrative: NarrativeNotFound}
	}
	if !utf8.ValidString(content) {
		slog.Warn("manifest is not valid UTF-8", "repo", owner+"/"+repo, "path", ManifestPath)
		return &Report{Packages: []string{}, Recommendations: []Recommendation{}, Narrative: NarrativeUndecodable}
	}

	packages := Packages(content)
	slog.Info("manifest packages detected", "repo", owner+"/"+repo, "count", len(packages))
	r := &Report{Found: true, Packages: packages, Recommendations: Recommend(packages)}
	if len(packages) == 0 {
		r.Narrative = NarrativeNoPackages
		return r
	}
	r.Narrative = a.narrate(ctx, r.Recommendations)
	return r
}

// Packages extracts the sorted, de-duplicated package names of a
// requirements file.
func Packages(manifest string) []string {
	var out []string
	for _, m := range packageName.FindAllStringSubmatch(manifest, -1) {
		out = append(out, m[1])
	}
	slices.Sort(out)
	out = slices.Compact(out)
	if out == nil {
		out = []string{}
	}
	return out
}

// Recommend looks up every package in the replacement table.
func Recommend(packages []string) []Recommendation {
	recs := make([]Recommendation, 0, len(packages))
	for _, pkg := range packages {
		recs = append(recs, Recommendation{Package: pkg, Suggestion: Suggest(pkg)})
	}
	return recs
}

// Suggest returns the replacement for a package, matching legacy names as
// case-insensitive substrings.
func Suggest(pkg string) string {
	lower := strings.ToLower(pkg)
	for _, r := range replacements {
		if strings.Contains(lower, r.legacy) {
			return r.modern
		}
	}
	return noAlternative
}

func (a *Advisor) narrate(ctx context.Context, recs []Recommendation) string {
	if a.provider == nil {
		return NarrativeUnavailable
	}
	var b strings.Builder
	for _, r := range recs {
		fmt.Fprintf(&b, "- %s: %s\n", r.Package, r.Suggestion)
	}
	text, err := a.provider.Complete(ctx, systemPrompt, fmt.Sprintf(modernizePrompt, b.String()), nil)
	if err != nil {
		slog.Warn("modernization narrative failed", "error", err)
		return fmt.Sprintf("AI analysis failed: %v", err)
	}
	return strings.TrimSpace(text)
}
