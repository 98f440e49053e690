// Package profile scores a GitHub account from its public profile and
// repository listing.
package profile

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/drpaneas/repolens/internal/ghcrawl"
	"github.com/drpaneas/repolens/internal/llm"
	"github.com/drpaneas/repolens/internal/scoring"
)

// ErrProfileUnavailable reports that the account profile could not be
// fetched. It is the only error Analyze returns.
var ErrProfileUnavailable = errors.New("profile unavailable")

// Sections recorded in Report.Degraded.
const (
	SectionRepositories = "repositories"
	SectionLanguages    = "languages"
)

const (
	repoLimit     = 30
	languageRepos = 10
	topLanguages  = 10
	topRepos      = 5
	// activeWindow is the six months a repository counts as active after
	// its last update.
	activeWindow = 6 * 30 * 24 * time.Hour

	notAvailable = "N/A"
	noBio        = "No bio"
	notSpecified = "Not specified"
)

// Source provides the GitHub resources a profile analysis reads.
// *ghcrawl.Crawler implements it.
type Source interface {
	User(ctx context.Context, username string) (*ghcrawl.UserProfile, error)
	UserRepos(ctx context.Context, username string, limit int) ([]ghcrawl.UserRepo, error)
	Languages(ctx context.Context, owner, repo string) (map[string]int, error)
}

// Options tunes the language throttle.
type Options struct {
	// LanguageThrottle is the pause after each repository whose languages
	// are fetched.
	LanguageThrottle time.Duration
	// Sleep performs the pauses. Nil uses ghcrawl.SleepContext.
	Sleep ghcrawl.Sleeper
	// Now returns the reference time for repository activity. Nil uses
	// time.Now.
	Now func() time.Time
}

// DefaultOptions returns a 500ms language throttle.
func DefaultOptions() Options {
	return Options{LanguageThrottle: 500 * time.Millisecond}
}

// Report is the analysis of one GitHub account.
type Report struct {
	ghcrawl.UserProfile

	TotalStars   int                  `json:"total_stars"`
	TotalForks   int                  `json:"total_forks"`
	TopLanguages []string             `json:"top_languages"`
	ActiveRepos  int                  `json:"active_repos_count"`
	TopRepos     []ghcrawl.UserRepo   `json:"top_repos"`
	Score        scoring.ProfileScore `json:"score"`

	Degraded    []string  `json:"degraded,omitempty"`
	Narrative   string    `json:"ai_analysis,omitempty"`
	GeneratedAt time.Time `json:"generated_at"`
}

func (r *Report) degrade(section string) {
	if !slices.Contains(r.Degraded, section) {
		r.Degraded = append(r.Degraded, section)
	}
}

// Analyzer produces profile reports.
type Analyzer struct {
	source   Source
	provider llm.Provider
	opts     Options
}

// New returns an Analyzer. A nil provider disables the narrative.
func New(source Source, provider llm.Provider, opts Options) *Analyzer {
	if opts.Sleep == nil {
		opts.Sleep = ghcrawl.SleepContext
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Analyzer{source: source, provider: provider, opts: opts}
}

// Analyze fetches the profile and recent repositories of username and
// scores them. Only a missing profile aborts the analysis, with
// ErrProfileUnavailable; a missing repository listing or language
// breakdown leaves the affected statistics at zero.
func (a *Analyzer) Analyze(ctx context.Context, username string) (*Report, error) {
	slog.Info("analyzing profile", "user", username)

	user, err := a.source.User(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrProfileUnavailable, username, err)
	}
	r := &Report{UserProfile: *user, GeneratedAt: a.opts.Now().UTC()}
	if r.Login == "" {
		r.Login = username
	}
	r.Name = orDefault(r.Name, notAvailable)
	r.Bio = orDefault(r.Bio, noBio)
	r.Location = orDefault(r.Location, notSpecified)
	r.Company = orDefault(r.Company, notSpecified)

	repos, err := a.source.UserRepos(ctx, username, repoLimit)
	if err != nil {
		slog.Warn("repositories unavailable, reporting zero", "user", username, "error", err)
		r.degrade(SectionRepositories)
	}

	cutoff := a.opts.Now().Add(-activeWindow)
	for _, repo := range repos {
		r.TotalStars += repo.Stars
		r.TotalForks += repo.Forks
		if repo.UpdatedAt.After(cutoff) {
			r.ActiveRepos++
		}
	}
	r.TopLanguages = rankLanguages(a.languages(ctx, r, username, repos), topLanguages)
	r.TopRepos = mostStarred(repos, topRepos)

	r.Score = scoring.Profile(scoring.ProfileInputs{
		PublicRepos:   r.PublicRepos,
		Followers:     r.Followers,
		TotalStars:    r.TotalStars,
		TotalForks:    r.TotalForks,
		ActiveRepos:   r.ActiveRepos,
		LanguageCount: len(r.TopLanguages),
	})

	slog.Info("profile analysis complete", "user", username, "score", r.Score.TotalScore, "rating", r.Score.Rating)
	return r, nil
}

// languages sums the language bytes of the first non-fork repositories,
// pausing after each fetch.
func (a *Analyzer) languages(ctx context.Context, r *Report, username string, repos []ghcrawl.UserRepo) map[string]int {
	totals := make(map[string]int)
	for _, repo := range repos[:min(len(repos), languageRepos)] {
		if repo.Fork {
			continue
		}
		langs, err := a.source.Languages(ctx, username, repo.Name)
		if err != nil {
			slog.Debug("languages unavailable", "repo", repo.Name, "error", err)
			r.degrade(SectionLanguages)
		}
		for lang, n := range langs {
			totals[lang] += n
		}
		if err := a.opts.Sleep(ctx, a.opts.LanguageThrottle); err != nil {
			r.degrade(SectionLanguages)
			break
		}
	}
	return totals
}

// rankLanguages returns up to n language names by descending byte count,
// ties broken by name.
func rankLanguages(totals map[string]int, n int) []string {
	names := make([]string, 0, len(totals))
	for lang := range totals {
		names = append(names, lang)
	}
	slices.SortFunc(names, func(x, y string) int {
		if c := cmp.Compare(totals[y], totals[x]); c != 0 {
			return c
		}
		return cmp.Compare(x, y)
	})
	return names[:min(len(names), n)]
}

func mostStarred(repos []ghcrawl.UserRepo, n int) []ghcrawl.UserRepo {
	sorted := slices.Clone(repos)
	slices.SortStableFunc(sorted, func(x, y ghcrawl.UserRepo) int {
		return cmp.Compare(y.Stars, x.Stars)
	})
	if sorted == nil {
		sorted = []ghcrawl.UserRepo{}
	}
	return sorted[:min(len(sorted), n)]
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
