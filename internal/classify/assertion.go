package classify

import "regexp"

// Assertion is a screening-required statement found in reasoning prose.
// Position is the byte offset of the match, used for first-wins ordering
// when the prose contains conflicting assertions.
type Assertion struct {
	Required bool
	Position int
	Quote    string
}

// Assertion phrase tables. Phrases are matched whole (word-bounded), never as
// substrings of unrelated words. Negative phrases are scanned first so a
// "required" inside "not required" is attributed to the negation.
var (
	notRequiredPhrases = regexp.MustCompile(`(?i)\b(?:(?:is|are|was|be)\s+not\s+required|not\s+required|no\s+(?:formal\s+)?screening\s+(?:is\s+)?required|does\s+not\s+require\s+(?:a\s+)?(?:formal\s+)?screening)\b`)
	requiredPhrases    = regexp.MustCompile(`(?i)\b(?:(?:is|are|was|be)\s+required|screening\s+(?:is\s+)?required|requires?\s+(?:a\s+)?(?:formal\s+)?screening|required)\b`)
)

// FindAssertion scans prose for an explicit required / not-required
// assertion. When both appear, the earliest by text position wins; a
// positive match lying inside a negated span counts as the negation. When
// both start at the same position, preferNegative breaks the tie.
func FindAssertion(analysis string, preferNegative bool) (Assertion, bool) {
	negSpans := notRequiredPhrases.FindAllStringIndex(analysis, -1)
	posSpans := requiredPhrases.FindAllStringIndex(analysis, -1)

	negStart := -1
	if len(negSpans) > 0 {
		negStart = negSpans[0][0]
	}

	// First positive match not contained in any negated span.
	posStart := -1
	var posSpan []int
	for _, span := range posSpans {
		if insideAny(span, negSpans) {
			continue
		}
		posStart = span[0]
		posSpan = span
		break
	}

	switch {
	case negStart == -1 && posStart == -1:
		return Assertion{}, false
	case posStart == -1:
		return negAssertion(analysis, negSpans[0]), true
	case negStart == -1:
		return posAssertion(analysis, posSpan), true
	case negStart < posStart:
		return negAssertion(analysis, negSpans[0]), true
	case posStart < negStart:
		return posAssertion(analysis, posSpan), true
	case preferNegative:
		return negAssertion(analysis, negSpans[0]), true
	default:
		return posAssertion(analysis, posSpan), true
	}
}

func insideAny(span []int, outer [][]int) bool {
	for _, o := range outer {
		if span[0] >= o[0] && span[1] <= o[1] {
			return true
		}
	}
	return false
}

func negAssertion(analysis string, span []int) Assertion {
	return Assertion{Required: false, Position: span[0], Quote: analysis[span[0]:span[1]]}
}

func posAssertion(analysis string, span []int) Assertion {
	return Assertion{Required: true, Position: span[0], Quote: analysis[span[0]:span[1]]}
}
