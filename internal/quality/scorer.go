package quality

import (
	"strings"

	"github.com/fyrsmithlabs/screend/internal/patterns"
)

// Fixed blend weights. Compliance defaults to 80 when not evaluated.
const (
	weightGrammar    = 0.25
	weightStyle      = 0.35
	weightTechnical  = 0.25
	weightCompliance = 0.15

	defaultCompliance = 80.0
)

// Rating is the five-level discrete quality rating.
type Rating string

const (
	RatingExcellent        Rating = "Excellent"
	RatingGood             Rating = "Good"
	RatingSatisfactory     Rating = "Satisfactory"
	RatingNeedsImprovement Rating = "Needs Improvement"
	RatingPoor             Rating = "Poor"
)

// ratingThresholds in descending order; inclusive lower bounds.
var ratingThresholds = []struct {
	min    float64
	rating Rating
}{
	{90, RatingExcellent},
	{80, RatingGood},
	{70, RatingSatisfactory},
	{60, RatingNeedsImprovement},
}

// StyleInputs are the four equally-weighted style components.
type StyleInputs struct {
	Clarity         float64 `json:"clarity"`
	Consistency     float64 `json:"consistency"`
	Concision       float64 `json:"concision"`
	Professionalism float64 `json:"professionalism"`
}

// Average is the unweighted mean of the four components.
func (s StyleInputs) Average() float64 {
	return (s.Clarity + s.Consistency + s.Concision + s.Professionalism) / 4
}

// SubScores are the independently computed inputs to the blend.
// ComplianceEvaluated=false substitutes the default compliance score.
type SubScores struct {
	Grammar             float64
	Style               float64
	Technical           float64
	Compliance          float64
	ComplianceEvaluated bool
}

// Breakdown is the scored result.
type Breakdown struct {
	Grammar    float64 `json:"grammar"`
	Style      float64 `json:"style"`
	Technical  float64 `json:"technical"`
	Compliance float64 `json:"compliance"`
	Overall    float64 `json:"overall"`
	Rating     Rating  `json:"rating"`
}

// Scorer blends sub-scores into a Breakdown.
type Scorer struct {
	lib *patterns.Library
}

// NewScorer creates a scorer over the given pattern library.
func NewScorer(lib *patterns.Library) *Scorer {
	return &Scorer{lib: lib}
}

// Score blends the sub-scores with the fixed weights and derives the rating.
// The overall score is clamped to [0,100].
func (s *Scorer) Score(in SubScores) Breakdown {
	compliance := in.Compliance
	if !in.ComplianceEvaluated {
		compliance = defaultCompliance
	}

	overall := in.Grammar*weightGrammar +
		in.Style*weightStyle +
		in.Technical*weightTechnical +
		compliance*weightCompliance

	b := Breakdown{
		Grammar:    clamp100(in.Grammar),
		Style:      clamp100(in.Style),
		Technical:  clamp100(in.Technical),
		Compliance: clamp100(compliance),
		Overall:    clamp100(overall),
	}
	b.Rating = rate(b.Overall)
	return b
}

// AnalyzeGrammar computes the grammar sub-score from the quality rule
// table: 100 minus the summed severity of every rule hit.
func (s *Scorer) AnalyzeGrammar(text string) float64 {
	score := 100.0
	for _, rule := range s.lib.QualityRules() {
		score -= rule.Severity * float64(rule.Count(text))
	}
	return clamp100(score)
}

// AnalyzeStyle derives the four style components deterministically from the
// text and returns their unweighted average inputs.
func (s *Scorer) AnalyzeStyle(text string) StyleInputs {
	words := strings.Fields(text)
	sentences := countSentences(text)

	in := StyleInputs{
		Clarity:         100,
		Consistency:     100,
		Concision:       100,
		Professionalism: 100,
	}

	// Clarity: penalize hedging and vague quantifiers.
	for _, rule := range s.lib.QualityRules() {
		switch rule.Name {
		case "hedging", "vague_quantifier":
			in.Clarity -= 5 * float64(rule.Count(text))
		case "passive_voice":
			in.Professionalism -= 4 * float64(rule.Count(text))
		case "unexpanded_acronym_cluster":
			in.Consistency -= 5 * float64(rule.Count(text))
		}
	}

	// Concision: penalize long average sentence length.
	if sentences > 0 {
		avg := float64(len(words)) / float64(sentences)
		if avg > 25 {
			in.Concision -= (avg - 25) * 2
		}
	}

	in.Clarity = clamp100(in.Clarity)
	in.Consistency = clamp100(in.Consistency)
	in.Concision = clamp100(in.Concision)
	in.Professionalism = clamp100(in.Professionalism)
	return in
}

func countSentences(text string) int {
	n := strings.Count(text, ".") + strings.Count(text, "!") + strings.Count(text, "?")
	if n == 0 && strings.TrimSpace(text) != "" {
		return 1
	}
	return n
}

func rate(overall float64) Rating {
	for _, t := range ratingThresholds {
		if overall >= t.min {
			return t.rating
		}
	}
	return RatingPoor
}

func clamp100(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
