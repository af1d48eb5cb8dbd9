package classify

import "fmt"

// Category is one of the five ordered screening levels. Category I carries
// the most review burden; Category V is an identical replacement.
type Category int

const (
	CategoryI   Category = 1
	CategoryII  Category = 2
	CategoryIII Category = 3
	CategoryIV  Category = 4
	CategoryV   Category = 5
)

// DefaultCategory is the moderate-change default used when neither the
// reasoning service nor the similarity source yields a category.
const DefaultCategory = CategoryII

var romanNumerals = map[Category]string{
	CategoryI:   "I",
	CategoryII:  "II",
	CategoryIII: "III",
	CategoryIV:  "IV",
	CategoryV:   "V",
}

// String renders the category in report form, e.g. "Category III".
func (c Category) String() string {
	if r, ok := romanNumerals[c]; ok {
		return "Category " + r
	}
	return fmt.Sprintf("Category(%d)", int(c))
}

// Valid reports whether c is one of the five defined categories.
func (c Category) Valid() bool {
	return c >= CategoryI && c <= CategoryV
}

// Source tags where a category suggestion or classification came from.
type Source string

const (
	SourceSimilarity Source = "similarity"
	SourceReasoning  Source = "reasoning"
	SourceFallback   Source = "keyword-fallback"
	// SourceDeclared marks a suggestion synthesized from the submitter's own
	// structured flags (temporary, identical replacement).
	SourceDeclared Source = "declared"
)

// Suggestion is a candidate category from one source with a confidence
// in [0,1]. Multiple suggestions may coexist; Classifier reconciles them.
type Suggestion struct {
	Category   Category `json:"category"`
	Confidence float64  `json:"confidence"`
	Source     Source   `json:"source"`
}

// Classification is the reconciled category decision.
type Classification struct {
	Category             Category `json:"category"`
	Confidence           float64  `json:"confidence"`
	Reasoning            string   `json:"reasoning"`
	KeyFactors           []string `json:"key_factors"`
	AgreesWithSuggestion bool     `json:"agrees_with_suggestion"`
	Source               Source   `json:"source"`
}

// Decision is the screening-required outcome. Explicit distinguishes a
// decision quoted from the reasoning prose from one inferred by the
// category-keyed default policy.
type Decision struct {
	Required       bool     `json:"required"`
	Justifications []string `json:"justifications"`
	Explicit       bool     `json:"explicit"`
}

// clamp01 bounds a confidence to [0,1].
func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
