package extraction

import (
	"strings"

	"go.uber.org/zap"

	"github.com/fyrsmithlabs/screend/internal/patterns"
)

// Undetermined is the sentinel for a field no template could resolve.
// Downstream consumers and the API contract rely on this exact string.
const Undetermined = "Undetermined (requires follow-up)"

// Fields holds the structured values extracted from a change description.
// Multi-valued fields are joined for display; see FieldExtractor.Extract.
type Fields struct {
	Location         string `json:"location"`
	Systems          string `json:"systems"`
	Equipment        string `json:"equipment"`
	ProposedSolution string `json:"proposed_solution"`
}

// FieldExtractor extracts structured fields using the pattern library.
type FieldExtractor struct {
	lib    *patterns.Library
	logger *zap.Logger
}

// NewFieldExtractor creates a field extractor. logger may be nil.
func NewFieldExtractor(lib *patterns.Library, logger *zap.Logger) *FieldExtractor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FieldExtractor{lib: lib, logger: logger}
}

// Extract runs every field's template chain over text. It never fails: a
// field without a match carries the Undetermined sentinel.
func (e *FieldExtractor) Extract(text string) Fields {
	f := Fields{
		Location:         e.firstMatch(e.lib.LocationTemplates(), text),
		Systems:          joinOrUndetermined(e.matchSystems(text)),
		Equipment:        joinOrUndetermined(e.matchEquipment(text)),
		ProposedSolution: e.firstMatch(e.lib.SolutionTemplates(), text),
	}

	e.logger.Debug("fields extracted",
		zap.String("location", f.Location),
		zap.String("systems", f.Systems),
		zap.String("equipment", f.Equipment),
	)
	return f
}

// firstMatch tries templates in declared order and returns the first hit.
func (e *FieldExtractor) firstMatch(tmpls []*patterns.Template, text string) string {
	for _, t := range tmpls {
		if v, ok := t.Match(text); ok {
			return v
		}
	}
	return Undetermined
}

// matchSystems scans the system vocabulary, most specific names first, and
// removes names shadowed by an already-matched longer name.
func (e *FieldExtractor) matchSystems(text string) []string {
	lower := strings.ToLower(text)
	var found []string
	for _, name := range e.lib.SystemVocabulary() {
		if !strings.Contains(lower, name) {
			continue
		}
		shadowed := false
		for _, prev := range found {
			if strings.Contains(prev, name) {
				shadowed = true
				break
			}
		}
		if !shadowed {
			found = append(found, name)
		}
	}
	return found
}

// matchEquipment accumulates all matches from all equipment templates,
// deduplicated in first-seen order.
func (e *FieldExtractor) matchEquipment(text string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, t := range e.lib.EquipmentTemplates() {
		for _, m := range t.MatchAll(text) {
			key := strings.ToUpper(m)
			if seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, m)
		}
	}
	return out
}

// joinOrUndetermined renders a multi-valued field for display.
func joinOrUndetermined(values []string) string {
	if len(values) == 0 {
		return Undetermined
	}
	return strings.Join(values, ", ")
}
