package metrics

import (
	"math"
	"regexp"
	"strings"

	"github.com/drpaneas/repolens/internal/ghcrawl"
)

var professionalTitle = regexp.MustCompile(`(?i)^(bug|feature|enhancement|question|documentation|help):`)

// descriptionLength is the body length above which an issue counts as
// described.
const descriptionLength = 50

// IssueCommunication measures how clearly issues are written.
type IssueCommunication struct {
	TotalIssues           int     `json:"total_issues"`
	OpenIssues            int     `json:"open_issues"`
	ClosedIssues          int     `json:"closed_issues"`
	AvgTitleLength        float64 `json:"avg_title_length"`
	WithLabels            int     `json:"has_labels"`
	WithDescription       int     `json:"has_description"`
	ProfessionalTitles    int     `json:"professional_titles"`
	LabelUsageRate        float64 `json:"label_usage_rate"`
	DescriptionRate       float64 `json:"description_rate"`
	ProfessionalTitleRate float64 `json:"professional_title_rate"`
}

// ProblemSolving measures how issues get resolved.
type ProblemSolving struct {
	TotalCreated           int     `json:"total_created"`
	TotalResolved          int     `json:"total_resolved"`
	ResolutionRate         float64 `json:"resolution_rate"`
	AvgResolutionDays      float64 `json:"avg_resolution_days"`
	BugFixes               int     `json:"bug_fixes"`
	FeatureImplementations int     `json:"feature_implementations"`
}

// OnlyIssues drops pull requests from the repository issue list.
func OnlyIssues(issues []ghcrawl.IssueData) []ghcrawl.IssueData {
	out := make([]ghcrawl.IssueData, 0, len(issues))
	for _, is := range issues {
		if !is.IsPullRequest {
			out = append(out, is)
		}
	}
	return out
}

// AnalyzeIssues computes IssueCommunication. State counts cover every
// issue; the writing signals cover the first IssueSampleSize.
func AnalyzeIssues(all []ghcrawl.IssueData) IssueCommunication {
	issues := OnlyIssues(all)
	c := IssueCommunication{TotalIssues: len(issues)}
	for _, is := range issues {
		switch is.State {
		case "open":
			c.OpenIssues++
		case "closed":
			c.ClosedIssues++
		}
	}

	sample := issues[:min(len(issues), IssueSampleSize)]
	if len(sample) == 0 {
		return c
	}
	titleLength := 0
	for _, is := range sample {
		titleLength += runeLen(is.Title)
		if len(is.Labels) > 0 {
			c.WithLabels++
		}
		if runeLen(is.Body) > descriptionLength {
			c.WithDescription++
		}
		if professionalTitle.MatchString(is.Title) {
			c.ProfessionalTitles++
		}
	}
	c.AvgTitleLength = float64(titleLength) / float64(len(sample))
	c.LabelUsageRate = percent(c.WithLabels, len(sample))
	c.DescriptionRate = percent(c.WithDescription, len(sample))
	c.ProfessionalTitleRate = percent(c.ProfessionalTitles, len(sample))
	return c
}

// AnalyzeProblemSolving computes ProblemSolving over the first
// ProblemSolvingSampleSize issues. The resolution rate is relative to every
// issue, so repositories with long issue histories score lower.
func AnalyzeProblemSolving(all []ghcrawl.IssueData) ProblemSolving {
	issues := OnlyIssues(all)
	p := ProblemSolving{TotalCreated: len(issues)}

	var totalDays float64
	for _, is := range issues[:min(len(issues), ProblemSolvingSampleSize)] {
		if is.State != "closed" || is.ClosedAt == nil {
			continue
		}
		p.TotalResolved++
		totalDays += math.Floor(is.ClosedAt.Sub(is.CreatedAt).Hours() / 24)
		if anyLabelContains(is.Labels, "bug") {
			p.BugFixes++
		}
		if anyLabelContains(is.Labels, "feature", "enhancement") {
			p.FeatureImplementations++
		}
	}
	if p.TotalResolved > 0 {
		p.AvgResolutionDays = totalDays / float64(p.TotalResolved)
	}
	p.ResolutionRate = percent(p.TotalResolved, p.TotalCreated)
	return p
}

func anyLabelContains(labels []string, words ...string) bool {
	for _, l := range labels {
		l = strings.ToLower(l)
		for _, w := range words {
			if strings.Contains(l, w) {
				return true
			}
		}
	}
	return false
}
