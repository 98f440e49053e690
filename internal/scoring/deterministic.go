package scoring

import "math"

// Inputs are the metric values the deterministic strategy reads. Rates and
// scores are percentages in 0-100.
type Inputs struct {
	LanguageCount         int     `json:"language_count"`
	CommitQuality         float64 `json:"commit_quality"`
	Contributors          int     `json:"contributors"`
	ReviewSignal          float64 `json:"review_signal"`
	ReadmeScore           float64 `json:"readme_score"`
	ProfessionalTitleRate float64 `json:"professional_title_rate"`
	DescriptionRate       float64 `json:"description_rate"`
	Consistency           float64 `json:"consistency"`
	ResolutionRate        float64 `json:"resolution_rate"`
	Stars                 int     `json:"stars"`
	Engagement            float64 `json:"engagement"`
}

// Deterministic computes the closed-form weighted score. Every component is
// clamped to its cap before summation.
func Deterministic(in Inputs) Composite {
	return newComposite(Components{
		TechnicalSkills: math.Min(float64(in.LanguageCount)*3, 15) + in.CommitQuality/5,
		Collaboration:   math.Min(float64(in.Contributors)*2, 8) + in.ReviewSignal/15,
		Communication:   in.ReadmeScore/5 + (in.ProfessionalTitleRate+in.DescriptionRate)/20,
		Discipline:      in.Consistency / 100 * 15,
		ProblemSolving:  in.ResolutionRate / 100 * 15,
		CommunityImpact: math.Min(float64(in.Stars)/50, 7) + in.Engagement/100*8,
	})
}
