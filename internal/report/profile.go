package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/drpaneas/repolens/internal/profile"
	"github.com/drpaneas/repolens/internal/scoring"
)

// ProfileBreakdown returns the six profile score parts with their caps.
func ProfileBreakdown(r *profile.Report) []Metric {
	b, c := r.Score.Breakdown, scoring.ProfileCaps
	part := func(name string, v, hi float64) Metric {
		return Metric{Name: name, Value: fmt.Sprintf("%.1f / %.0f", v, hi)}
	}
	return []Metric{
		part("Repositories", b.RepoCount, c.RepoCount),
		part("Followers", b.Followers, c.Followers),
		part("Stars", b.Stars, c.Stars),
		part("Activity", b.Activity, c.Activity),
		part("Language diversity", b.LanguageDiversity, c.LanguageDiversity),
		part("Forks", b.Forks, c.Forks),
	}
}

// WriteProfileText prints a console summary of a profile report.
func WriteProfileText(w io.Writer, r *profile.Report) error {
	rule := strings.Repeat("=", 70)
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "Profile analysis: %s (%s)\n", r.Login, r.Name)
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "Total score      : %.1f / %.0f (%s)\n", r.Score.TotalScore, r.Score.MaxScore, colorRating(r.Score.TotalScore, r.Score.Rating))
	fmt.Fprintf(w, "Bio              : %s\n", r.Bio)
	fmt.Fprintf(w, "Location         : %s\n", r.Location)
	fmt.Fprintf(w, "Company          : %s\n", r.Company)
	fmt.Fprintf(w, "Repos / active   : %d / %d\n", r.PublicRepos, r.ActiveRepos)
	fmt.Fprintf(w, "Followers        : %d\n", r.Followers)
	fmt.Fprintf(w, "Stars / forks    : %d / %d\n", r.TotalStars, r.TotalForks)
	if len(r.TopLanguages) > 0 {
		fmt.Fprintf(w, "Top languages    : %s\n", strings.Join(r.TopLanguages, ", "))
	}
	fmt.Fprintln(w)

	if err := table(w, []string{"Part", "Points"}, metricRows(ProfileBreakdown(r))); err != nil {
		return err
	}
	if len(r.TopRepos) > 0 {
		rows := make([][]string, 0, len(r.TopRepos))
		for _, repo := range r.TopRepos {
			rows = append(rows, []string{repo.Name, strconv.Itoa(repo.Stars), repo.Language})
		}
		if err := table(w, []string{"Repository", "Stars", "Language"}, rows); err != nil {
			return err
		}
	}

	if len(r.Degraded) > 0 {
		fmt.Fprintf(w, "Unavailable data: %s\n", strings.Join(r.Degraded, ", "))
	}
	writeNarrative(w, r.Narrative)
	fmt.Fprintln(w, rule)
	return nil
}
