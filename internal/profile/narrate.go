package profile

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
)

// NarrativeUnavailable is returned by Narrate when no LLM provider is
// configured.
const NarrativeUnavailable = "AI analysis unavailable: no LLM provider configured."

// Narrate writes feedback on a profile report. Without a provider, or when
// the provider errors, it returns a fixed message.
func (a *Analyzer) Narrate(ctx context.Context, r *Report) string {
	if a.provider == nil {
		return NarrativeUnavailable
	}
	langs := "none"
	if len(r.TopLanguages) > 0 {
		langs = strings.Join(r.TopLanguages[:min(len(r.TopLanguages), 5)], ", ")
	}
	prompt := fmt.Sprintf(narrativePrompt,
		r.Login, r.Name, r.PublicRepos, r.Followers, r.TotalStars, langs,
		r.Score.TotalScore, r.Score.Rating,
	)

	slog.Info("generating profile feedback", "user", r.Login)
	text, err := a.provider.Complete(ctx, systemPrompt, prompt, nil)
	if err != nil {
		slog.Warn("profile feedback failed", "user", r.Login, "error", err)
		return fmt.Sprintf("AI analysis failed: %v", err)
	}
	return strings.TrimSpace(text)
}

var heading = regexp.MustCompile(`(?m)^##[ \t]+(.*)$`)

// Sections splits markdown text at its "## " headings. Each value is the
// heading line and the text up to the next heading. Text before the first
// heading is dropped.
func Sections(text string) map[string]string {
	out := make(map[string]string)
	locs := heading.FindAllStringSubmatchIndex(text, -1)
	for i, loc := range locs {
		end := len(text)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		name := strings.TrimSpace(text[loc[2]:loc[3]])
		out[name] = strings.TrimSpace(text[loc[0]:end])
	}
	return out
}
