package metrics

// Strategy names the strategy that produced a metric.
type Strategy string

const (
	Heuristic Strategy = "heuristic"
	LLM       Strategy = "llm"
)

// LLMCommitScore is the LLM-graded commit message quality.
type LLMCommitScore struct {
	TotalCommits   int     `json:"total_commits"`
	SampledCommits int     `json:"sampled_commits"`
	QualityScore   float64 `json:"quality_score"`
	LLMScored      bool    `json:"llm_scored"`
}

// LLMReadmeScore is the LLM-graded README quality.
type LLMReadmeScore struct {
	HasReadme    bool    `json:"has_readme"`
	Length       int     `json:"length"`
	QualityScore float64 `json:"quality_score"`
	LLMScored    bool    `json:"llm_scored"`
}

// LLMReviewScore is the LLM-graded code review quality.
type LLMReviewScore struct {
	TotalPRs        int     `json:"total_prs"`
	ReviewedSamples int     `json:"reviewed_samples"`
	QualityScore    float64 `json:"quality_score"`
	LLMScored       bool    `json:"llm_scored"`
}

// CommitQuality holds exactly one of its variants, selected by Strategy.
type CommitQuality struct {
	Strategy  Strategy          `json:"strategy"`
	Heuristic *CommitHeuristics `json:"heuristic,omitempty"`
	LLM       *LLMCommitScore   `json:"llm,omitempty"`
}

// HeuristicCommits wraps a rule-based result.
func HeuristicCommits(h CommitHeuristics) CommitQuality {
	return CommitQuality{Strategy: Heuristic, Heuristic: &h}
}

// LLMCommits wraps an LLM-graded result.
func LLMCommits(total, sampled int, score float64) CommitQuality {
	return CommitQuality{Strategy: LLM, LLM: &LLMCommitScore{
		TotalCommits:   total,
		SampledCommits: sampled,
		QualityScore:   score,
		LLMScored:      true,
	}}
}

// Score is the 0-100 quality signal used by the composite score: the
// conventional-commit percentage, or the LLM grade.
func (q CommitQuality) Score() float64 {
	switch {
	case q.LLM != nil:
		return q.LLM.QualityScore
	case q.Heuristic != nil:
		return q.Heuristic.ConventionalPercentage
	}
	return 0
}

// ReadmeQuality holds exactly one of its variants, selected by Strategy.
type ReadmeQuality struct {
	Strategy  Strategy          `json:"strategy"`
	Heuristic *ReadmeHeuristics `json:"heuristic,omitempty"`
	LLM       *LLMReadmeScore   `json:"llm,omitempty"`
}

// HeuristicReadme wraps a rule-based result.
func HeuristicReadme(h ReadmeHeuristics) ReadmeQuality {
	return ReadmeQuality{Strategy: Heuristic, Heuristic: &h}
}

// LLMReadme wraps an LLM-graded result.
func LLMReadme(length int, score float64) ReadmeQuality {
	return ReadmeQuality{Strategy: LLM, LLM: &LLMReadmeScore{
		HasReadme:    true,
		Length:       length,
		QualityScore: score,
		LLMScored:    true,
	}}
}

// Score returns the 0-100 README quality score.
func (q ReadmeQuality) Score() float64 {
	switch {
	case q.LLM != nil:
		return q.LLM.QualityScore
	case q.Heuristic != nil:
		return q.Heuristic.QualityScore
	}
	return 0
}

// HasReadme reports whether a README was found.
func (q ReadmeQuality) HasReadme() bool {
	switch {
	case q.LLM != nil:
		return q.LLM.HasReadme
	case q.Heuristic != nil:
		return q.Heuristic.HasReadme
	}
	return false
}

// CodeReview holds exactly one of its variants, selected by Strategy.
type CodeReview struct {
	Strategy  Strategy              `json:"strategy"`
	Heuristic *CodeReviewHeuristics `json:"heuristic,omitempty"`
	LLM       *LLMReviewScore       `json:"llm,omitempty"`
}

// HeuristicReview wraps a rule-based result.
func HeuristicReview(h CodeReviewHeuristics) CodeReview {
	return CodeReview{Strategy: Heuristic, Heuristic: &h}
}

// LLMReview wraps an LLM-graded result.
func LLMReview(totalPRs, samples int, score float64) CodeReview {
	return CodeReview{Strategy: LLM, LLM: &LLMReviewScore{
		TotalPRs:        totalPRs,
		ReviewedSamples: samples,
		QualityScore:    score,
		LLMScored:       true,
	}}
}

// Signal is the 0-100 review signal used by the composite score: the review
// rate, or the LLM grade.
func (r CodeReview) Signal() float64 {
	switch {
	case r.LLM != nil:
		return r.LLM.QualityScore
	case r.Heuristic != nil:
		return r.Heuristic.ReviewRate
	}
	return 0
}
