package metrics

import "github.com/drpaneas/repolens/internal/ghcrawl"

// Work rhythm labels derived from the consistency score.
const (
	RhythmHigh   = "High"
	RhythmMedium = "Medium"
	RhythmLow    = "Low"
)

// LanguageProfile holds bytes of code per language and each language's
// share of the total.
type LanguageProfile struct {
	Bytes       map[string]int     `json:"bytes"`
	Percentages map[string]float64 `json:"percentages"`
}

// Languages builds a LanguageProfile. Percentages are empty when the
// repository reports no bytes at all.
func Languages(bytes map[string]int) LanguageProfile {
	p := LanguageProfile{
		Bytes:       make(map[string]int, len(bytes)),
		Percentages: map[string]float64{},
	}
	total := 0
	for lang, n := range bytes {
		p.Bytes[lang] = n
		total += n
	}
	if total == 0 {
		return p
	}
	for lang, n := range bytes {
		p.Percentages[lang] = float64(n) / float64(total) * 100
	}
	return p
}

// CommitDiscipline measures how regularly commits land over the weekly
// activity buckets.
type CommitDiscipline struct {
	WeeksAnalyzed     int     `json:"total_weeks_analyzed"`
	ActiveWeeks       int     `json:"active_weeks"`
	TotalCommits      int     `json:"total_commits_year"`
	AvgCommitsPerWeek float64 `json:"avg_commits_per_week"`
	ConsistencyScore  float64 `json:"consistency_score"`
	WorkRhythm        string  `json:"work_rhythm"`
}

// Discipline computes CommitDiscipline from weekly commit activity.
func Discipline(weeks []ghcrawl.WeekActivity) CommitDiscipline {
	d := CommitDiscipline{WeeksAnalyzed: len(weeks)}
	for _, w := range weeks {
		if w.Total > 0 {
			d.ActiveWeeks++
		}
		d.TotalCommits += w.Total
	}
	if d.WeeksAnalyzed > 0 {
		d.AvgCommitsPerWeek = float64(d.TotalCommits) / float64(d.WeeksAnalyzed)
	}
	d.ConsistencyScore = percent(d.ActiveWeeks, d.WeeksAnalyzed)
	d.WorkRhythm = Rhythm(d.ConsistencyScore)
	return d
}

// Rhythm maps a consistency score to a work rhythm label. Both thresholds
// are exclusive: exactly 70 is Medium and exactly 40 is Low.
func Rhythm(consistency float64) string {
	switch {
	case consistency > 70:
		return RhythmHigh
	case consistency > 40:
		return RhythmMedium
	default:
		return RhythmLow
	}
}
