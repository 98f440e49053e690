package analyzer

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// NarrativeUnavailable is returned by Narrate when no LLM provider is
// configured.
const NarrativeUnavailable = "AI analysis unavailable: no LLM provider configured."

// Narrate writes a prose assessment of a report. It never fails: without a
// provider, or when the provider errors, it returns a fixed message.
func (a *Analyzer) Narrate(ctx context.Context, r *Report) string {
	if a.provider == nil {
		return NarrativeUnavailable
	}

	var total float64
	rating, level := "unknown", "unknown"
	if r.Score != nil {
		total, rating, level = r.Score.TotalScore, r.Score.Rating, r.Score.Level
	}
	prompt := fmt.Sprintf(narrativePrompt,
		r.FullName,
		total, rating, level,
		r.ReadmeAnalysis.Score(),
		r.CommitDiscipline.ConsistencyScore, r.CommitDiscipline.WorkRhythm,
		r.IssueCommunication.DescriptionRate, r.IssueCommunication.ProfessionalTitleRate,
		r.ProblemSolving.ResolutionRate, r.ProblemSolving.AvgResolutionDays,
		r.OpenSource.UniqueExternalRepos, r.OpenSource.CommunityEngagementScore,
	)

	slog.Info("generating AI analysis", "repo", r.FullName)
	text, err := a.provider.Complete(ctx, systemPrompt, prompt, nil)
	if err != nil {
		slog.Warn("AI analysis failed", "repo", r.FullName, "error", err)
		return fmt.Sprintf("AI analysis failed: %v", err)
	}
	return strings.TrimSpace(text)
}
