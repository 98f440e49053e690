package scoring

// ProfileInputs are the account statistics the profile score reads.
type ProfileInputs struct {
	PublicRepos   int `json:"public_repos"`
	Followers     int `json:"followers"`
	TotalStars    int `json:"total_stars"`
	TotalForks    int `json:"total_forks"`
	ActiveRepos   int `json:"active_repos"`
	LanguageCount int `json:"language_count"`
}

// ProfileBreakdown holds the six parts of a profile score.
type ProfileBreakdown struct {
	RepoCount         float64 `json:"repo_count"`
	Followers         float64 `json:"followers"`
	Stars             float64 `json:"stars"`
	Activity          float64 `json:"activity"`
	LanguageDiversity float64 `json:"language_diversity"`
	Forks             float64 `json:"forks"`
}

// ProfileCaps holds the maximum of every part. The caps add up to MaxScore.
var ProfileCaps = ProfileBreakdown{
	RepoCount:         20,
	Followers:         15,
	Stars:             25,
	Activity:          15,
	LanguageDiversity: 15,
	Forks:             10,
}

// Sum returns the total of all parts.
func (b ProfileBreakdown) Sum() float64 {
	return b.RepoCount + b.Followers + b.Stars + b.Activity + b.LanguageDiversity + b.Forks
}

// ProfileScore is the aggregated score of a GitHub account. TotalScore
// always equals Breakdown.Sum().
type ProfileScore struct {
	TotalScore float64          `json:"total_score"`
	MaxScore   float64          `json:"max_score"`
	Breakdown  ProfileBreakdown `json:"breakdown"`
	Rating     string           `json:"rating"`
}

// Profile scores an account. Each part grows linearly with its statistic
// until it reaches its cap: 50 repositories, 100 followers, 200 stars, 10
// active repositories, 6 languages and 50 forks earn full marks.
func Profile(in ProfileInputs) ProfileScore {
	b := ProfileBreakdown{
		RepoCount:         ratio(in.PublicRepos, 50, ProfileCaps.RepoCount),
		Followers:         ratio(in.Followers, 100, ProfileCaps.Followers),
		Stars:             ratio(in.TotalStars, 200, ProfileCaps.Stars),
		Activity:          ratio(in.ActiveRepos, 10, ProfileCaps.Activity),
		LanguageDiversity: clamp(float64(in.LanguageCount)*2.5, ProfileCaps.LanguageDiversity),
		Forks:             ratio(in.TotalForks, 50, ProfileCaps.Forks),
	}
	total := b.Sum()
	return ProfileScore{
		TotalScore: total,
		MaxScore:   MaxScore,
		Breakdown:  b,
		Rating:     ProfileRating(total),
	}
}

func ratio(n, full int, hi float64) float64 {
	return clamp(float64(n)/float64(full)*hi, hi)
}

// ProfileRating returns the qualitative band of a profile score.
func ProfileRating(score float64) string {
	switch {
	case score >= 80:
		return "Excellent"
	case score >= 60:
		return "Very Good"
	case score >= 40:
		return "Good"
	case score >= 20:
		return "Average"
	default:
		return "Beginner"
	}
}
