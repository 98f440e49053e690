package metrics

import (
	"regexp"
	"strings"

	"github.com/drpaneas/repolens/internal/ghcrawl"
)

var conventionalCommit = regexp.MustCompile(`(?i)^(feat|fix|docs|style|refactor|test|chore|perf|ci|build|revert)(\(.+\))?:`)

// descriptiveLength is the minimum first-line length of a descriptive
// commit message.
const descriptiveLength = 20

// CommitHeuristics is the rule-based commit message quality metric.
type CommitHeuristics struct {
	TotalCommits           int     `json:"total_commits"`
	ConventionalCount      int     `json:"conventional_commits"`
	ConventionalPercentage float64 `json:"conventional_percentage"`
	AvgMessageLength       float64 `json:"avg_message_length"`
	DescriptiveCount       int     `json:"descriptive_commits"`
	DescriptivePercentage  float64 `json:"descriptive_percentage"`
}

// FirstLine returns the subject line of a commit message.
func FirstLine(message string) string {
	line, _, _ := strings.Cut(message, "\n")
	return line
}

// IsConventional reports whether a commit subject follows the Conventional
// Commits type prefix.
func IsConventional(subject string) bool {
	return conventionalCommit.MatchString(subject)
}

// AnalyzeCommits classifies the subject line of every commit.
func AnalyzeCommits(commits []ghcrawl.CommitData) CommitHeuristics {
	h := CommitHeuristics{TotalCommits: len(commits)}
	totalLength := 0
	for _, c := range commits {
		subject := FirstLine(c.Message)
		n := runeLen(subject)
		totalLength += n
		if IsConventional(subject) {
			h.ConventionalCount++
		}
		if n >= descriptiveLength {
			h.DescriptiveCount++
		}
	}
	if h.TotalCommits > 0 {
		h.AvgMessageLength = float64(totalLength) / float64(h.TotalCommits)
	}
	h.ConventionalPercentage = percent(h.ConventionalCount, h.TotalCommits)
	h.DescriptivePercentage = percent(h.DescriptiveCount, h.TotalCommits)
	return h
}
