package classify

import (
	"regexp"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/fyrsmithlabs/screend/internal/extraction"
)

// fallbackReasoning replaces the reasoning text when the external analysis
// was unusable for classification.
const fallbackReasoning = "External analysis did not yield a parseable category; classification follows the similarity suggestion and keyword evidence."

// genericKeyFactor guarantees the key-factors list is never empty.
const genericKeyFactor = "General plant modification characteristics"

// tokenConfidence is the confidence contributed by an explicit category
// token in the reasoning prose, unless the prose states its own figure.
const tokenConfidence = 0.8

// categoryToken pairs a compiled token regex with its category. Checked in
// order V, IV, III, II, I so "Category III" is never half-matched as I.
type categoryToken struct {
	regex    *regexp.Regexp
	category Category
}

var categoryTokens = []categoryToken{
	{regexp.MustCompile(`(?i)\bcategory\s+V\b`), CategoryV},
	{regexp.MustCompile(`(?i)\bcategory\s+IV\b`), CategoryIV},
	{regexp.MustCompile(`(?i)\bcategory\s+III\b`), CategoryIII},
	{regexp.MustCompile(`(?i)\bcategory\s+II\b`), CategoryII},
	{regexp.MustCompile(`(?i)\bcategory\s+I\b`), CategoryI},
}

// statedConfidence extracts an explicit confidence figure from prose,
// e.g. "confidence: 0.85" or "confidence of 85%".
var statedConfidence = regexp.MustCompile(`(?i)\bconfidence(?:\s+(?:of|is|level))?\s*[:=]?\s*(\d+(?:\.\d+)?)(\s*%)?`)

// keywordCategoryRule maps a raw-text keyword to a category for the
// degraded path. Rules are checked in declaration order, first match wins.
type keywordCategoryRule struct {
	Name     string
	Keywords []string
	Category Category
}

// fallbackCategoryRules is the keyword-only category table used when the
// reasoning service is unavailable. Order is fixed: temporary, identical,
// replace, new/install, modify/upgrade.
var fallbackCategoryRules = []keywordCategoryRule{
	{Name: "temporary", Keywords: []string{"temporary", "interim", "bypass"}, Category: CategoryIV},
	{Name: "identical", Keywords: []string{"identical", "like-for-like", "like for like"}, Category: CategoryV},
	{Name: "replace", Keywords: []string{"replace", "replacement"}, Category: CategoryIII},
	{Name: "new_install", Keywords: []string{"new ", "install"}, Category: CategoryII},
	{Name: "modify_upgrade", Keywords: []string{"modify", "modification", "upgrade"}, Category: CategoryII},
}

// Classifier reconciles the external analysis, the similarity suggestion,
// and keyword evidence into a Classification.
type Classifier struct {
	logger *zap.Logger
}

// NewClassifier creates a classifier. logger may be nil.
func NewClassifier(logger *zap.Logger) *Classifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Classifier{logger: logger}
}

// Classify decides the category for text.
//
// Precedence: an explicit category token in analysis wins; otherwise the
// similarity suggestion; otherwise the moderate default. Confidence is the
// max of the suggestion confidence and the reasoning-derived confidence,
// clamped to [0,1]. When the analysis yields no token the reasoning text is
// replaced with a literal fallback explanation and agreement with the
// suggestion is forced true.
func (c *Classifier) Classify(text string, suggestion *Suggestion, analysis string, sig extraction.Signals) Classification {
	suggestionConf := 0.0
	suggestionCat := Category(0)
	if suggestion != nil && suggestion.Category.Valid() {
		suggestionConf = clamp01(suggestion.Confidence)
		suggestionCat = suggestion.Category
	}

	result := Classification{
		KeyFactors: keyFactors(sig),
	}

	if cat, ok := scanCategoryToken(analysis); ok {
		reasoningConf := tokenConfidence
		if stated, ok := parseStatedConfidence(analysis); ok {
			reasoningConf = stated
		}
		result.Category = cat
		result.Confidence = clamp01(maxFloat(suggestionConf, reasoningConf))
		result.Reasoning = strings.TrimSpace(analysis)
		result.AgreesWithSuggestion = suggestionCat == cat
		result.Source = SourceReasoning
		return result
	}

	// Analysis unusable for classification: similarity suggestion or default.
	result.Reasoning = fallbackReasoning
	result.AgreesWithSuggestion = true
	if suggestionCat.Valid() {
		result.Category = suggestionCat
		result.Confidence = suggestionConf
		result.Source = SourceSimilarity
	} else {
		result.Category = DefaultCategory
		result.Confidence = suggestionConf
		result.Source = SourceFallback
		c.logger.Debug("no category evidence, using moderate default")
	}
	return result
}

// InferCategoryFromKeywords is the keyword-only category decision used by
// the fallback cascade. It returns the matched rule name for auditability;
// rule order and the moderate default are fixed.
func InferCategoryFromKeywords(text string) (Category, string) {
	lower := strings.ToLower(text)
	for _, rule := range fallbackCategoryRules {
		for _, kw := range rule.Keywords {
			if strings.Contains(lower, kw) {
				return rule.Category, rule.Name
			}
		}
	}
	return DefaultCategory, "default"
}

// scanCategoryToken scans prose for an explicit category token, most
// specific numeral first.
func scanCategoryToken(analysis string) (Category, bool) {
	for _, t := range categoryTokens {
		if t.regex.MatchString(analysis) {
			return t.category, true
		}
	}
	return 0, false
}

// parseStatedConfidence reads an explicit confidence figure from prose.
// Percentages and figures above 1 are scaled into [0,1].
func parseStatedConfidence(analysis string) (float64, bool) {
	m := statedConfidence.FindStringSubmatch(analysis)
	if m == nil {
		return 0, false
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, false
	}
	if m[2] != "" || v > 1 {
		v /= 100
	}
	return clamp01(v), true
}

// keyFactors derives the key-factor list from signal evidence. Never empty.
func keyFactors(sig extraction.Signals) []string {
	var factors []string
	if sig.CriticalSafety {
		factors = append(factors, "Critical safety function affected")
	} else if sig.SafetySignificant {
		factors = append(factors, "Safety-significant equipment involved")
	}
	if sig.ComplexModification {
		factors = append(factors, "Complex modification spanning multiple systems")
	}
	if sig.DigitalUpgrade {
		factors = append(factors, "Digital or software content")
	}
	if sig.Environmental {
		factors = append(factors, "Potential environmental impact")
	}
	if sig.Seismic {
		factors = append(factors, "Seismic qualification affected")
	}
	if len(factors) == 0 {
		factors = append(factors, genericKeyFactor)
	}
	return factors
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
