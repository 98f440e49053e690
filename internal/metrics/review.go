package metrics

import (
	"strings"

	"github.com/drpaneas/repolens/internal/ghcrawl"
)

var constructiveWords = []string{"suggest", "consider", "recommend", "could", "maybe"}

// detailedComment is the body length above which a review comment counts
// toward review depth.
const detailedComment = 100

// ReviewSample holds one pull request together with its fetched review
// activity.
type ReviewSample struct {
	PR       ghcrawl.PullRequestData
	Comments []ghcrawl.ReviewComment
	Reviews  []ghcrawl.Review
}

// CodeReviewHeuristics is the rule-based code review quality metric.
type CodeReviewHeuristics struct {
	TotalPRs             int     `json:"total_prs"`
	ReviewedPRs          int     `json:"reviewed_prs"`
	TotalReviewComments  int     `json:"total_review_comments"`
	ReviewRate           float64 `json:"review_rate"`
	AvgReviewDepth       float64 `json:"avg_review_depth"`
	ConstructiveFeedback int     `json:"constructive_feedback"`
	ConstructiveRate     float64 `json:"constructive_rate"`
}

// IsConstructive reports whether a comment uses suggestion language.
func IsConstructive(body string) bool {
	lower := strings.ToLower(body)
	for _, w := range constructiveWords {
		if strings.Contains(lower, w) {
			return true
		}
	}
	return false
}

// AnalyzeCodeReview computes CodeReviewHeuristics. totalPRs is the size of
// the fetched pull request list; only the first ReviewSampleSize samples
// are read, and only the first CommentsPerReview comments of each.
func AnalyzeCodeReview(totalPRs int, samples []ReviewSample) CodeReviewHeuristics {
	h := CodeReviewHeuristics{TotalPRs: totalPRs}
	samples = samples[:min(len(samples), ReviewSampleSize)]
	if totalPRs == 0 || len(samples) == 0 {
		return h
	}

	depth := 0
	for _, s := range samples {
		if len(s.Comments) > 0 || len(s.Reviews) > 0 {
			h.ReviewedPRs++
			h.TotalReviewComments += len(s.Comments) + len(s.Reviews)
		}
		for _, c := range s.Comments[:min(len(s.Comments), CommentsPerReview)] {
			if runeLen(c.Body) > detailedComment {
				depth++
			}
			if IsConstructive(c.Body) {
				h.ConstructiveFeedback++
			}
		}
	}
	h.ReviewRate = percent(h.ReviewedPRs, len(samples))
	h.AvgReviewDepth = float64(depth) / float64(len(samples))
	h.ConstructiveRate = percent(h.ConstructiveFeedback, max(h.TotalReviewComments, 1))
	return h
}
