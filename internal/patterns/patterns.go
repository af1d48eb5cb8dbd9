package patterns

import (
	"regexp"
	"strings"
)

// Signal names recognized by the library. These are the keys returned by
// SignalNames and accepted by Keywords.
const (
	SignalSafetySignificant      = "safety_significant"
	SignalCriticalSafety         = "critical_safety"
	SignalComplexModification    = "complex_modification"
	SignalDigitalUpgrade         = "digital_upgrade"
	SignalEnvironmental          = "environmentally_significant"
	SignalSeismic                = "seismically_significant"
)

// Template is a named, pre-compiled extraction template. Templates are tried
// in declaration order; more structured patterns are declared before generic
// keyword patterns.
type Template struct {
	Name  string
	regex *regexp.Regexp
}

// Match returns the first capture group of the first match, or the whole
// match when the template has no capture group. ok is false when the template
// does not match.
func (t *Template) Match(text string) (value string, ok bool) {
	m := t.regex.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	if len(m) > 1 && m[1] != "" {
		return strings.TrimSpace(m[1]), true
	}
	return strings.TrimSpace(m[0]), true
}

// MatchAll returns every match of the template, first capture group when
// present, in order of appearance.
func (t *Template) MatchAll(text string) []string {
	matches := t.regex.FindAllStringSubmatch(text, -1)
	if matches == nil {
		return nil
	}
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		v := m[0]
		if len(m) > 1 && m[1] != "" {
			v = m[1]
		}
		out = append(out, strings.TrimSpace(v))
	}
	return out
}

// QualityRule is a writing-quality rule with a penalty severity and a
// human-readable description of the defect it detects.
type QualityRule struct {
	Name        string
	Severity    float64 // score penalty per occurrence
	Description string
	regex       *regexp.Regexp
}

// Count returns the number of occurrences of the rule's pattern in text.
func (r *QualityRule) Count(text string) int {
	return len(r.regex.FindAllStringIndex(text, -1))
}

// Library holds every compiled pattern collection. Construct with New; the
// zero value is not usable.
type Library struct {
	keywords  map[string][]string
	locations []*Template
	equipment []*Template
	systems   []string
	solutions []*Template
	quality   []QualityRule
}

// New compiles the built-in pattern library.
func New() *Library {
	return &Library{
		keywords:  signalKeywords(),
		locations: locationTemplates(),
		equipment: equipmentTemplates(),
		systems:   systemVocabulary(),
		solutions: solutionTemplates(),
		quality:   qualityRules(),
	}
}

// Keywords returns the keyword set for a signal name, nil when unknown.
func (l *Library) Keywords(signal string) []string {
	return l.keywords[signal]
}

// SignalNames returns every signal name with a keyword set, in a fixed order.
func (l *Library) SignalNames() []string {
	return []string{
		SignalSafetySignificant,
		SignalCriticalSafety,
		SignalComplexModification,
		SignalDigitalUpgrade,
		SignalEnvironmental,
		SignalSeismic,
	}
}

// LocationTemplates returns the ordered location extraction templates.
func (l *Library) LocationTemplates() []*Template { return l.locations }

// EquipmentTemplates returns the ordered equipment-identifier templates.
func (l *Library) EquipmentTemplates() []*Template { return l.equipment }

// SystemVocabulary returns the known system names, most specific first.
func (l *Library) SystemVocabulary() []string { return l.systems }

// SolutionTemplates returns the ordered proposed-solution templates.
func (l *Library) SolutionTemplates() []*Template { return l.solutions }

// QualityRules returns the writing-quality rule table.
func (l *Library) QualityRules() []QualityRule { return l.quality }

// signalKeywords returns the keyword sets backing each boolean signal.
// Matching is case-insensitive substring containment (see extraction).
func signalKeywords() map[string][]string {
	return map[string][]string{
		SignalSafetySignificant: {
			"safety-related", "safety related", "safety significant",
			"emergency diesel", "reactor protection", "emergency core cooling",
			"containment", "station blackout", "fire protection",
			"safe shutdown", "class 1e", "residual heat removal",
		},
		SignalCriticalSafety: {
			"reactor protection system", "reactor trip",
			"emergency core cooling", "containment isolation",
			"engineered safety feature", "critical safety function",
		},
		SignalComplexModification: {
			"multiple systems", "interfacing systems", "rerouting",
			"structural modification", "load path", "setpoint change",
			"logic change", "multiple disciplines",
		},
		SignalDigitalUpgrade: {
			"digital", "software", "firmware", "plc",
			"programmable logic", "hmi", "microprocessor", "analog to digital",
		},
		SignalEnvironmental: {
			"effluent", "discharge", "hazardous material", "chemical release",
			"oil-filled", "radiological release", "groundwater", "asbestos",
		},
		SignalSeismic: {
			"seismic", "seismically", "anchorage", "seismic qualification",
			"support bracing", "category i structure",
		},
	}
}

// locationTemplates returns structured patterns first (rooms, units,
// elevations), then generic "in/at the ... building" phrases.
func locationTemplates() []*Template {
	return []*Template{
		{Name: "room", regex: regexp.MustCompile(`(?i)\b(?:room|rm\.?)\s*([A-Z]?-?\d+[A-Z]?)`)},
		{Name: "elevation", regex: regexp.MustCompile(`(?i)\b(?:elevation|el\.?)\s*(\d{2,4}(?:'|\s*ft)?)`)},
		{Name: "unit", regex: regexp.MustCompile(`(?i)\b(unit\s*\d+)\b`)},
		{Name: "named_building", regex: regexp.MustCompile(`(?i)\b(?:in|at|inside|within|near)\s+the\s+([a-z][a-z\s-]{2,40}?(?:building|structure|bay|yard|vault|gallery|pump\s?house))`)},
		{Name: "building", regex: regexp.MustCompile(`(?i)\b([a-z][a-z\s-]{2,40}?(?:building|pump\s?house|switchyard))\b`)},
	}
}

// equipmentTemplates match plant equipment tag formats. All matches from all
// templates accumulate (multi-valued field).
func equipmentTemplates() []*Template {
	return []*Template{
		// Unit-prefixed tags: 1-EDG-01, 2-CCW-P-1A
		{Name: "unit_tag", regex: regexp.MustCompile(`\b\d-[A-Z]{2,4}(?:-[A-Z0-9]{1,4}){1,2}\b`)},
		// Component tags: MOV-1234, HV-201A, P-38B
		{Name: "component_tag", regex: regexp.MustCompile(`\b[A-Z]{1,4}-\d{2,5}[A-Z]?\b`)},
		// Spelled-out numbered equipment: "pump 2B", "valve 301"
		{Name: "numbered_equipment", regex: regexp.MustCompile(`(?i)\b((?:pump|valve|breaker|fan|motor|transformer|generator|compressor|heater)\s+\d+[A-Z]?)\b`)},
	}
}

// systemVocabulary lists recognized system names, most specific first so a
// match on "emergency diesel generator" is not shadowed by "diesel".
func systemVocabulary() []string {
	return []string{
		"emergency diesel generator",
		"emergency core cooling",
		"reactor protection system",
		"residual heat removal",
		"component cooling water",
		"essential service water",
		"containment spray",
		"instrument air",
		"fire protection",
		"main feedwater",
		"auxiliary feedwater",
		"circulating water",
		"chilled water",
		"service water",
		"compressed air",
		"hvac",
	}
}

// solutionTemplates capture the proposed-solution sentence. First match wins.
func solutionTemplates() []*Template {
	return []*Template{
		{Name: "labeled_solution", regex: regexp.MustCompile(`(?i)(?:proposed\s+(?:solution|change|modification)|solution)\s*[:\-]\s*([^.\n]{10,240})`)},
		{Name: "action_sentence", regex: regexp.MustCompile(`(?i)\b((?:replace|install|modify|upgrade|reroute|remove|add|relocate|rewire)\b[^.\n]{5,240})`)},
	}
}

// qualityRules is the writing-quality rule table. Severity is the per-hit
// penalty applied by the quality analyzer.
func qualityRules() []QualityRule {
	return []QualityRule{
		{
			Name: "double_word", Severity: 3,
			Description: "repeated word",
			regex:       regexp.MustCompile(`(?i)\b(?:the\s+the|a\s+a|is\s+is|to\s+to|of\s+of|and\s+and)\b`),
		},
		{
			Name: "passive_voice", Severity: 2,
			Description: "passive construction obscures the responsible actor",
			regex:       regexp.MustCompile(`(?i)\b(?:was|were|is|are|been)\s+\w+ed\s+by\b`),
		},
		{
			Name: "vague_quantifier", Severity: 2,
			Description: "vague quantifier; state the measured value",
			regex:       regexp.MustCompile(`(?i)\b(?:several|various|numerous|some|many|a\s+few)\b`),
		},
		{
			Name: "hedging", Severity: 2,
			Description: "hedging language weakens a technical assertion",
			regex:       regexp.MustCompile(`(?i)\b(?:probably|possibly|might\s+be|could\s+be|seems?\s+to)\b`),
		},
		{
			Name: "run_on_sentence", Severity: 4,
			Description: "sentence exceeds 40 words",
			regex:       regexp.MustCompile(`(?:\S+\s+){40,}\S+[.!?]`),
		},
		{
			Name: "missing_units", Severity: 3,
			Description: "bare measurement without units",
			regex:       regexp.MustCompile(`(?i)\bat\s+\d+\s+(?:psi|gpm|amps?|volts?|degrees)?\s*$`),
		},
		{
			Name: "unexpanded_acronym_cluster", Severity: 1,
			Description: "dense acronym use; expand on first occurrence",
			regex:       regexp.MustCompile(`\b[A-Z]{2,5}\b(?:[\s,/-]+\b[A-Z]{2,5}\b){2,}`),
		},
	}
}
