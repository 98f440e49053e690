package scoring

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/drpaneas/repolens/internal/llm"
	"github.com/drpaneas/repolens/internal/textutil"
)

// llmResponse mirrors the JSON object requested from the model. Pointer
// fields distinguish a missing component from a zero one.
type llmResponse struct {
	TotalScore      *float64 `json:"total_score"`
	TechnicalSkills *float64 `json:"technical_skills"`
	Collaboration   *float64 `json:"collaboration"`
	Communication   *float64 `json:"communication"`
	Discipline      *float64 `json:"discipline"`
	ProblemSolving  *float64 `json:"problem_solving"`
	CommunityImpact *float64 `json:"community_impact"`
	Reasoning       string   `json:"reasoning"`
}

// ParseLLM extracts a Composite from a model response. Components are
// clamped to their caps and the total is recomputed from them, so the
// model's own total_score is ignored.
func ParseLLM(raw string) (Composite, error) {
	text := textutil.StripCodeFence(raw)
	if text == "" {
		return Composite{}, errors.New("empty LLM response")
	}

	var resp llmResponse
	if err := json.Unmarshal([]byte(text), &resp); err != nil {
		if err2 := json.Unmarshal([]byte(textutil.SanitizeJSON(text)), &resp); err2 != nil {
			return Composite{}, fmt.Errorf("invalid JSON from LLM: %w\nraw response (first 500 bytes): %s",
				err, textutil.Truncate(raw, 500, "..."))
		}
	}

	fields := []*float64{
		resp.TechnicalSkills, resp.Collaboration, resp.Communication,
		resp.Discipline, resp.ProblemSolving, resp.CommunityImpact,
	}
	for _, f := range fields {
		if f == nil {
			return Composite{}, errors.New("LLM response is missing score components")
		}
	}

	c := newComposite(Components{
		TechnicalSkills: *resp.TechnicalSkills,
		Collaboration:   *resp.Collaboration,
		Communication:   *resp.Communication,
		Discipline:      *resp.Discipline,
		ProblemSolving:  *resp.ProblemSolving,
		CommunityImpact: *resp.CommunityImpact,
	})
	c.Reasoning = resp.Reasoning
	c.LLMScored = true
	return c, nil
}

// WithLLM asks the provider to grade the collected metrics. Any provider
// error or unusable response yields Deterministic(in). A nil provider
// always yields Deterministic(in).
func WithLLM(ctx context.Context, provider llm.Provider, metrics any, in Inputs) Composite {
	fallback := Deterministic(in)
	if provider == nil {
		return fallback
	}

	payload, err := json.MarshalIndent(metrics, "", "  ")
	if err != nil {
		slog.Warn("encoding metrics for LLM scoring failed, using deterministic score", "error", err)
		return fallback
	}

	raw, err := provider.Complete(ctx, systemPrompt, fmt.Sprintf(compositePrompt, payload), nil)
	if err != nil {
		slog.Warn("LLM composite scoring failed, using deterministic score", "error", err)
		return fallback
	}
	c, err := ParseLLM(raw)
	if err != nil {
		slog.Warn("unusable LLM composite score, using deterministic score", "error", err)
		return fallback
	}
	return c
}
