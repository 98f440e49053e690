package metrics

import (
	"strings"

	"github.com/drpaneas/repolens/internal/ghcrawl"
)

// OpenSourceContribution measures a user's activity on repositories they do
// not own.
type OpenSourceContribution struct {
	UniqueExternalRepos      int     `json:"unique_external_repos"`
	TotalExternalActivity    int     `json:"total_external_activity"`
	ExternalPRs              int     `json:"external_prs"`
	ExternalIssues           int     `json:"external_issues"`
	ExternalReviews          int     `json:"external_reviews"`
	CommunityEngagementScore float64 `json:"community_engagement_score"`
}

// IsExternal reports whether an event repository counts as external for
// username. A repository is the user's own when its full name contains the
// username, case-insensitively. Forks and repositories that merely mention
// the username are misclassified as owned.
func IsExternal(repoName, username string) bool {
	return !strings.Contains(strings.ToLower(repoName), strings.ToLower(username))
}

// AnalyzeOpenSource computes OpenSourceContribution from a user's public
// events.
func AnalyzeOpenSource(events []ghcrawl.EventData, username string) OpenSourceContribution {
	var o OpenSourceContribution
	repos := map[string]struct{}{}
	for _, ev := range events {
		if !IsExternal(ev.Repo, username) {
			continue
		}
		repos[ev.Repo] = struct{}{}
		o.TotalExternalActivity++
		switch ev.Type {
		case "PullRequestEvent":
			o.ExternalPRs++
		case "IssuesEvent":
			o.ExternalIssues++
		case "PullRequestReviewEvent":
			o.ExternalReviews++
		}
	}
	o.UniqueExternalRepos = len(repos)
	o.CommunityEngagementScore = float64(min(o.UniqueExternalRepos*10, 100))
	return o
}
