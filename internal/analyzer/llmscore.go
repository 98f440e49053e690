package analyzer

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"

	"github.com/drpaneas/repolens/internal/ghcrawl"
	"github.com/drpaneas/repolens/internal/metrics"
	"github.com/drpaneas/repolens/internal/textutil"
)

// Sampling limits for LLM grading.
const (
	llmCommitSample     = 10
	llmReadmeChars      = 3000
	llmReviewPRs        = 5
	llmCommentsPerPR    = 3
	llmCommentBodyChars = 200
)

type reviewExcerpt struct {
	PRTitle       string `json:"pr_title"`
	CommentBody   string `json:"comment_body"`
	CommentLength int    `json:"comment_length"`
}

// gradeMetric asks the provider for a 0-100 grade. It reports false when
// the provider fails or the answer holds no usable number.
func (a *Analyzer) gradeMetric(ctx context.Context, metric, prompt string) (float64, bool) {
	raw, err := a.provider.Complete(ctx, systemPrompt, prompt, nil)
	if err != nil {
		slog.Warn("LLM grading failed, using heuristic", "metric", metric, "error", err)
		return 0, false
	}
	v, ok := textutil.FirstNumber(raw)
	if !ok {
		slog.Warn("LLM grade has no number, using heuristic", "metric", metric, "response", textutil.Truncate(raw, 200, "..."))
		return 0, false
	}
	v = math.Max(0, math.Min(v, 100))
	slog.Debug("LLM grade", "metric", metric, "score", v)
	return v, true
}

func (a *Analyzer) commitQualityLLM(ctx context.Context, commits []ghcrawl.CommitData) metrics.CommitQuality {
	heuristic := func() metrics.CommitQuality {
		return metrics.HeuristicCommits(metrics.AnalyzeCommits(commits))
	}
	if len(commits) == 0 {
		return heuristic()
	}

	sample := commits[:min(len(commits), llmCommitSample)]
	subjects := make([]string, 0, len(sample))
	for _, c := range sample {
		subjects = append(subjects, metrics.FirstLine(c.Message))
	}
	payload, err := json.MarshalIndent(subjects, "", "  ")
	if err != nil {
		return heuristic()
	}

	score, ok := a.gradeMetric(ctx, "commit_quality", fmt.Sprintf(commitQualityPrompt, payload))
	if !ok {
		return heuristic()
	}
	return metrics.LLMCommits(len(commits), len(subjects), score)
}

func (a *Analyzer) readmeQualityLLM(ctx context.Context, readme string) metrics.ReadmeQuality {
	heuristic := metrics.HeuristicReadme(metrics.AnalyzeReadme(readme))
	if readme == "" {
		return heuristic
	}
	prompt := fmt.Sprintf(readmeQualityPrompt, textutil.TruncateRunes(readme, llmReadmeChars))
	score, ok := a.gradeMetric(ctx, "readme_quality", prompt)
	if !ok {
		return heuristic
	}
	return metrics.LLMReadme(heuristic.Heuristic.Length, score)
}

// codeReviewLLM grades a sample of review comments. Without any comment to
// grade, or when grading fails, it computes the heuristic metric instead.
func (a *Analyzer) codeReviewLLM(ctx context.Context, r *Report, owner, repo string, prs []ghcrawl.PullRequestData) metrics.CodeReview {
	heuristic := func() metrics.CodeReview {
		return metrics.HeuristicReview(a.codeReview(ctx, r, owner, repo, prs))
	}
	if len(prs) == 0 {
		return heuristic()
	}

	var excerpts []reviewExcerpt
	for _, pr := range prs[:min(len(prs), llmReviewPRs)] {
		comments, err := a.source.PullComments(ctx, owner, repo, pr.Number)
		a.check(r, SectionReviews, err)
		for _, c := range comments[:min(len(comments), llmCommentsPerPR)] {
			excerpts = append(excerpts, reviewExcerpt{
				PRTitle:       pr.Title,
				CommentBody:   textutil.TruncateRunes(c.Body, llmCommentBodyChars),
				CommentLength: len(c.Body),
			})
		}
		if err := a.opts.Sleep(ctx, a.opts.LLMReviewThrottle); err != nil {
			a.check(r, SectionReviews, err)
			break
		}
	}
	if len(excerpts) == 0 {
		return heuristic()
	}

	payload, err := json.MarshalIndent(excerpts, "", "  ")
	if err != nil {
		return heuristic()
	}
	score, ok := a.gradeMetric(ctx, "code_review", fmt.Sprintf(codeReviewPrompt, payload))
	if !ok {
		return heuristic()
	}
	return metrics.LLMReview(len(prs), len(excerpts), score)
}
