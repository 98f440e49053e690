// Package metrics turns raw GitHub resources into repository quality
// metrics. Every extractor is a pure function: missing resources produce
// zero-valued metrics, never errors.
package metrics

import "unicode/utf8"

// Sampling caps applied by the extractors and by the callers that fetch
// per-item resources.
const (
	IssueSampleSize          = 20
	ProblemSolvingSampleSize = 30
	ReviewSampleSize         = 10
	CommentsPerReview        = 5
)

func percent(n, total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(n) / float64(total) * 100
}

func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}
