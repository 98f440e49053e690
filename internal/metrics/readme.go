package metrics

import (
	"regexp"
	"strings"
)

var (
	readmeTitle = regexp.MustCompile(`(?m)^#\s+.+`)
	readmeBadge = regexp.MustCompile(`\[!\[.+\]\(.+\)\]`)
	readmeImage = regexp.MustCompile(`!\[.+\]\(.+\)`)
)

// ReadmeIndicators are the nine documentation probes run against a README.
type ReadmeIndicators struct {
	HasTitle        bool `json:"has_title"`
	HasDescription  bool `json:"has_description"`
	HasInstallation bool `json:"has_installation"`
	HasUsage        bool `json:"has_usage"`
	HasContributing bool `json:"has_contributing"`
	HasLicense      bool `json:"has_license"`
	HasBadges       bool `json:"has_badges"`
	HasCodeBlocks   bool `json:"has_code_blocks"`
	HasImages       bool `json:"has_images"`
}

func (r ReadmeIndicators) values() []bool {
	return []bool{
		r.HasTitle, r.HasDescription, r.HasInstallation,
		r.HasUsage, r.HasContributing, r.HasLicense,
		r.HasBadges, r.HasCodeBlocks, r.HasImages,
	}
}

// Count returns the number of indicators present.
func (r ReadmeIndicators) Count() int {
	n := 0
	for _, v := range r.values() {
		if v {
			n++
		}
	}
	return n
}

// ReadmeHeuristics is the rule-based README quality metric.
type ReadmeHeuristics struct {
	HasReadme    bool              `json:"has_readme"`
	Length       int               `json:"length"`
	Indicators   *ReadmeIndicators `json:"quality_indicators,omitempty"`
	QualityScore float64           `json:"quality_score"`
}

// AnalyzeReadme probes README text. An empty text means the repository has
// no README.
func AnalyzeReadme(text string) ReadmeHeuristics {
	if text == "" {
		return ReadmeHeuristics{}
	}
	lower := strings.ToLower(text)
	ind := ReadmeIndicators{
		HasTitle:        readmeTitle.MatchString(text),
		HasDescription:  runeLen(text) > 200,
		HasInstallation: strings.Contains(lower, "install") || strings.Contains(lower, "setup"),
		HasUsage:        strings.Contains(lower, "usage") || strings.Contains(lower, "example"),
		HasContributing: strings.Contains(lower, "contribut"),
		HasLicense:      strings.Contains(lower, "license"),
		HasBadges:       readmeBadge.MatchString(text),
		HasCodeBlocks:   strings.Contains(text, "```"),
		HasImages:       readmeImage.MatchString(text),
	}
	return ReadmeHeuristics{
		HasReadme:    true,
		Length:       runeLen(text),
		Indicators:   &ind,
		QualityScore: percent(ind.Count(), len(ind.values())),
	}
}
