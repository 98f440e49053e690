package analyzer

import (
	"time"

	"github.com/drpaneas/repolens/internal/ghcrawl"
	"github.com/drpaneas/repolens/internal/metrics"
	"github.com/drpaneas/repolens/internal/scoring"
)

// Sections recorded in Report.Degraded when their upstream fetch was
// unavailable.
const (
	SectionLanguages      = "languages"
	SectionCommitActivity = "commit_activity"
	SectionContributors   = "contributors"
	SectionCommits        = "commits"
	SectionReadme         = "readme"
	SectionIssues         = "issues"
	SectionPullRequests   = "pull_requests"
	SectionReviews        = "reviews"
	SectionEvents         = "events"
)

const (
	noDescription   = "No description"
	noLicense       = "No License"
	topContributors = 5
)

// Collaboration groups contributor and code review metrics.
type Collaboration struct {
	ContributorsCount int                   `json:"contributors_count"`
	TopContributors   []ghcrawl.Contributor `json:"top_contributors"`
	CodeReview        metrics.CodeReview    `json:"code_review"`
}

// Report is the consolidated analysis of one repository.
type Report struct {
	ghcrawl.RepoInfo

	Languages          metrics.LanguageProfile        `json:"languages"`
	CommitDiscipline   metrics.CommitDiscipline       `json:"commit_discipline"`
	Collaboration      Collaboration                  `json:"collaboration"`
	CommitAnalysis     metrics.CommitQuality          `json:"commit_analysis"`
	ReadmeAnalysis     metrics.ReadmeQuality          `json:"readme_analysis"`
	IssueCommunication metrics.IssueCommunication     `json:"issue_communication"`
	ProblemSolving     metrics.ProblemSolving         `json:"problem_solving"`
	OpenSource         metrics.OpenSourceContribution `json:"open_source"`
	Score              *scoring.Composite             `json:"comprehensive_score,omitempty"`

	// Degraded lists the sections whose data could not be fetched and
	// were reported as zero.
	Degraded    []string  `json:"degraded,omitempty"`
	Narrative   string    `json:"narrative,omitempty"`
	GeneratedAt time.Time `json:"generated_at"`
}

// ScoreInputs extracts the values the composite score reads.
func (r *Report) ScoreInputs() scoring.Inputs {
	return scoring.Inputs{
		LanguageCount:         len(r.Languages.Bytes),
		CommitQuality:         r.CommitAnalysis.Score(),
		Contributors:          r.Collaboration.ContributorsCount,
		ReviewSignal:          r.Collaboration.CodeReview.Signal(),
		ReadmeScore:           r.ReadmeAnalysis.Score(),
		ProfessionalTitleRate: r.IssueCommunication.ProfessionalTitleRate,
		DescriptionRate:       r.IssueCommunication.DescriptionRate,
		Consistency:           r.CommitDiscipline.ConsistencyScore,
		ResolutionRate:        r.ProblemSolving.ResolutionRate,
		Stars:                 r.Stars,
		Engagement:            r.OpenSource.CommunityEngagementScore,
	}
}

func (r *Report) degrade(section string) {
	for _, s := range r.Degraded {
		if s == section {
			return
		}
	}
	r.Degraded = append(r.Degraded, section)
}
