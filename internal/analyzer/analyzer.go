// Package analyzer assembles repository quality reports from GitHub
// resources, optionally grading metrics with an LLM.
package analyzer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/drpaneas/repolens/internal/ghcrawl"
	"github.com/drpaneas/repolens/internal/llm"
	"github.com/drpaneas/repolens/internal/metrics"
	"github.com/drpaneas/repolens/internal/scoring"
)

// ErrRepoUnavailable reports that the repository metadata could not be
// fetched. It is the only error Analyze returns.
var ErrRepoUnavailable = errors.New("repository unavailable")

// Fetch sizes for the list resources.
const (
	commitLimit = 50
	issueLimit  = 50
	pullLimit   = 20
	eventLimit  = 100
)

// Source provides the GitHub resources an analysis reads. *ghcrawl.Crawler
// implements it.
type Source interface {
	Repo(ctx context.Context, owner, repo string) (*ghcrawl.RepoInfo, error)
	Languages(ctx context.Context, owner, repo string) (map[string]int, error)
	CommitActivity(ctx context.Context, owner, repo string) ([]ghcrawl.WeekActivity, error)
	Contributors(ctx context.Context, owner, repo string) ([]ghcrawl.Contributor, error)
	Commits(ctx context.Context, owner, repo string, limit int) ([]ghcrawl.CommitData, error)
	Readme(ctx context.Context, owner, repo string) (string, error)
	Issues(ctx context.Context, owner, repo string, limit int) ([]ghcrawl.IssueData, error)
	PullRequests(ctx context.Context, owner, repo string, limit int) ([]ghcrawl.PullRequestData, error)
	PullComments(ctx context.Context, owner, repo string, number int) ([]ghcrawl.ReviewComment, error)
	PullReviews(ctx context.Context, owner, repo string, number int) ([]ghcrawl.Review, error)
	UserEvents(ctx context.Context, username string, limit int) ([]ghcrawl.EventData, error)
}

// Options tunes the per-pull-request throttle.
type Options struct {
	// ReviewThrottle is the pause after each pull request whose review
	// activity is fetched for the heuristic metric.
	ReviewThrottle time.Duration
	// LLMReviewThrottle is the same pause when sampling for LLM grading.
	LLMReviewThrottle time.Duration
	// Sleep performs the pauses. Nil uses ghcrawl.SleepContext.
	Sleep ghcrawl.Sleeper
}

// DefaultOptions returns 500ms and 300ms throttles.
func DefaultOptions() Options {
	return Options{
		ReviewThrottle:    500 * time.Millisecond,
		LLMReviewThrottle: 300 * time.Millisecond,
	}
}

// Analyzer produces repository reports.
type Analyzer struct {
	source   Source
	provider llm.Provider
	opts     Options
}

// New returns an Analyzer. A nil provider disables every LLM feature.
func New(source Source, provider llm.Provider, opts Options) *Analyzer {
	if opts.Sleep == nil {
		opts.Sleep = ghcrawl.SleepContext
	}
	return &Analyzer{source: source, provider: provider, opts: opts}
}

// Analyze fetches every resource of owner/repo in a fixed order and
// assembles the report. Only missing repository metadata aborts the
// analysis, with ErrRepoUnavailable; every other failure leaves its
// section zeroed and listed in Report.Degraded.
func (a *Analyzer) Analyze(ctx context.Context, owner, repo string, useLLMScoring bool) (*Report, error) {
	full := owner + "/" + repo
	useLLM := useLLMScoring && a.provider != nil
	slog.Info("analyzing repository", "repo", full, "llm_scoring", useLLM)

	info, err := a.source.Repo(ctx, owner, repo)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrRepoUnavailable, full, err)
	}
	r := &Report{RepoInfo: *info, GeneratedAt: time.Now().UTC()}
	if r.Description == "" {
		r.Description = noDescription
	}
	if r.License == "" {
		r.License = noLicense
	}
	if r.FullName == "" {
		r.FullName = full
	}

	langs, err := a.source.Languages(ctx, owner, repo)
	a.check(r, SectionLanguages, err)
	r.Languages = metrics.Languages(langs)

	weeks, err := a.source.CommitActivity(ctx, owner, repo)
	a.check(r, SectionCommitActivity, err)
	r.CommitDiscipline = metrics.Discipline(weeks)

	contributors, err := a.source.Contributors(ctx, owner, repo)
	a.check(r, SectionContributors, err)
	r.Collaboration.ContributorsCount = len(contributors)
	r.Collaboration.TopContributors = contributors[:min(len(contributors), topContributors)]

	commits, err := a.source.Commits(ctx, owner, repo, commitLimit)
	a.check(r, SectionCommits, err)
	if useLLM {
		r.CommitAnalysis = a.commitQualityLLM(ctx, commits)
	} else {
		r.CommitAnalysis = metrics.HeuristicCommits(metrics.AnalyzeCommits(commits))
	}

	readme, err := a.source.Readme(ctx, owner, repo)
	a.check(r, SectionReadme, err)
	if useLLM {
		r.ReadmeAnalysis = a.readmeQualityLLM(ctx, readme)
	} else {
		r.ReadmeAnalysis = metrics.HeuristicReadme(metrics.AnalyzeReadme(readme))
	}

	issues, err := a.source.Issues(ctx, owner, repo, issueLimit)
	a.check(r, SectionIssues, err)
	r.IssueCommunication = metrics.AnalyzeIssues(issues)
	r.ProblemSolving = metrics.AnalyzeProblemSolving(issues)

	prs, err := a.source.PullRequests(ctx, owner, repo, pullLimit)
	a.check(r, SectionPullRequests, err)
	if useLLM {
		r.Collaboration.CodeReview = a.codeReviewLLM(ctx, r, owner, repo, prs)
	} else {
		r.Collaboration.CodeReview = metrics.HeuristicReview(a.codeReview(ctx, r, owner, repo, prs))
	}

	events, err := a.source.UserEvents(ctx, owner, eventLimit)
	a.check(r, SectionEvents, err)
	r.OpenSource = metrics.AnalyzeOpenSource(events, owner)

	var score scoring.Composite
	if useLLM {
		score = scoring.WithLLM(ctx, a.provider, r, r.ScoreInputs())
	} else {
		score = scoring.Deterministic(r.ScoreInputs())
	}
	r.Score = &score

	slog.Info("analysis complete", "repo", full, "score", score.TotalScore, "rating", score.Rating, "degraded", len(r.Degraded))
	return r, nil
}

func (a *Analyzer) check(r *Report, section string, err error) {
	if err == nil {
		return
	}
	slog.Warn("section unavailable, reporting zero", "repo", r.FullName, "section", section, "error", err)
	r.degrade(section)
}

// codeReview fetches review activity of the first pull requests and
// computes the heuristic metric.
func (a *Analyzer) codeReview(ctx context.Context, r *Report, owner, repo string, prs []ghcrawl.PullRequestData) metrics.CodeReviewHeuristics {
	var samples []metrics.ReviewSample
	for _, pr := range prs[:min(len(prs), metrics.ReviewSampleSize)] {
		comments, err := a.source.PullComments(ctx, owner, repo, pr.Number)
		a.check(r, SectionReviews, err)
		reviews, err := a.source.PullReviews(ctx, owner, repo, pr.Number)
		a.check(r, SectionReviews, err)
		samples = append(samples, metrics.ReviewSample{PR: pr, Comments: comments, Reviews: reviews})

		if err := a.opts.Sleep(ctx, a.opts.ReviewThrottle); err != nil {
			a.check(r, SectionReviews, err)
			break
		}
	}
	return metrics.AnalyzeCodeReview(len(prs), samples)
}
