// Package scoring combines repository metrics into a weighted 0-100
// composite score.
package scoring

import "math"

// MaxScore is the highest composite score.
const MaxScore = 100

// Components are the six weighted dimensions of the composite score.
type Components struct {
	TechnicalSkills float64 `json:"technical_skills"`
	Collaboration   float64 `json:"collaboration"`
	Communication   float64 `json:"communication"`
	Discipline      float64 `json:"discipline"`
	ProblemSolving  float64 `json:"problem_solving"`
	CommunityImpact float64 `json:"community_impact"`
}

// Caps holds the maximum of every component. The caps add up to MaxScore.
var Caps = Components{
	TechnicalSkills: 20,
	Collaboration:   15,
	Communication:   20,
	Discipline:      15,
	ProblemSolving:  15,
	CommunityImpact: 15,
}

// Sum returns the total of all components.
func (c Components) Sum() float64 {
	return c.TechnicalSkills + c.Collaboration + c.Communication +
		c.Discipline + c.ProblemSolving + c.CommunityImpact
}

// Clamp limits every component to [0, cap].
func (c Components) Clamp() Components {
	return Components{
		TechnicalSkills: clamp(c.TechnicalSkills, Caps.TechnicalSkills),
		Collaboration:   clamp(c.Collaboration, Caps.Collaboration),
		Communication:   clamp(c.Communication, Caps.Communication),
		Discipline:      clamp(c.Discipline, Caps.Discipline),
		ProblemSolving:  clamp(c.ProblemSolving, Caps.ProblemSolving),
		CommunityImpact: clamp(c.CommunityImpact, Caps.CommunityImpact),
	}
}

func clamp(v, hi float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Max(0, math.Min(v, hi))
}

// Composite is the aggregated score. TotalScore always equals
// Components.Sum().
type Composite struct {
	TotalScore float64    `json:"total_score"`
	MaxScore   float64    `json:"max_score"`
	Components Components `json:"components"`
	Rating     string     `json:"rating"`
	Level      string     `json:"level"`
	Reasoning  string     `json:"reasoning,omitempty"`
	LLMScored  bool       `json:"llm_scored"`
}

func newComposite(c Components) Composite {
	c = c.Clamp()
	total := c.Sum()
	return Composite{
		TotalScore: total,
		MaxScore:   MaxScore,
		Components: c,
		Rating:     Rating(total),
		Level:      Level(total),
	}
}

// Rating returns the qualitative band of a total score.
func Rating(score float64) string {
	switch {
	case score >= 85:
		return "Exceptional"
	case score >= 70:
		return "Excellent"
	case score >= 55:
		return "Very Good"
	case score >= 40:
		return "Good"
	case score >= 25:
		return "Developing"
	default:
		return "Beginner"
	}
}

// Level returns the developer seniority band of a total score.
func Level(score float64) string {
	switch {
	case score >= 80:
		return "Senior/Lead Developer"
	case score >= 60:
		return "Mid-Level Developer"
	case score >= 35:
		return "Junior Developer"
	default:
		return "Entry-Level Developer"
	}
}
