// Package risk maps categorical change-request signals to per-dimension
// risk levels and an aggregated overall level.
package risk

import "strings"

// Level is a risk severity. Unset ranks below Low for aggregation.
type Level int

const (
	Unset Level = iota
	Low
	Medium
	High
)

var levelNames = map[Level]string{
	Unset:  "Unset",
	Low:    "Low",
	Medium: "Medium",
	High:   "High",
}

func (l Level) String() string {
	if n, ok := levelNames[l]; ok {
		return n
	}
	return "Unset"
}

// MarshalText renders the level name for JSON/YAML output.
func (l Level) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// Profile holds the three dimension levels, the derived overall level, and
// parallel factor/mitigation lists appended in dimension order.
type Profile struct {
	Safety        Level    `json:"safety"`
	Environmental Level    `json:"environmental"`
	Operational   Level    `json:"operational"`
	Overall       Level    `json:"overall"`
	Factors       []string `json:"factors"`
	Mitigations   []string `json:"mitigations"`
}

// Inputs are the categorical signals the assessor maps to levels.
type Inputs struct {
	// SafetyClassification is matched case-insensitively against a small
	// fixed vocabulary; unrecognized values map to Low.
	SafetyClassification string
	// HazardCategory is recorded as a safety factor. It raises an otherwise
	// unset safety dimension to Low but never overrides the classification.
	HazardCategory string
	PhysicalChange bool
	NewProcedures  bool
	SoftwareChange bool
}

// safetyVocabulary maps the elevated safety classifications. Everything
// else maps to Low.
var safetyVocabulary = map[string]Level{
	"safety-related":      High,
	"safety related":      High,
	"important-to-safety": Medium,
	"important to safety": Medium,
}

// Assessor maps inputs to a Profile. Stateless.
type Assessor struct{}

// NewAssessor creates a risk assessor.
func NewAssessor() *Assessor {
	return &Assessor{}
}

// Assess computes the profile. Overall is the maximum severity across the
// three dimensions with Unset ranked lowest; when all three are Unset the
// overall defaults to Low. Factor/mitigation pairs are appended in the same
// fixed order as the level computations, one pair per non-Unset dimension.
func (a *Assessor) Assess(in Inputs) Profile {
	p := Profile{}

	p.Safety = safetyLevel(in.SafetyClassification)
	switch {
	case p.Safety != Unset:
		p.Factors = append(p.Factors, "Safety classification: "+strings.TrimSpace(in.SafetyClassification))
		p.Mitigations = append(p.Mitigations, "Verify design function acceptance criteria before implementation.")
	case strings.TrimSpace(in.HazardCategory) != "":
		p.Safety = Low
		p.Factors = append(p.Factors, "Hazard category: "+strings.TrimSpace(in.HazardCategory))
		p.Mitigations = append(p.Mitigations, "Confirm the hazard analysis covers the modified configuration.")
	}

	if in.PhysicalChange {
		p.Environmental = Medium
		p.Factors = append(p.Factors, "Physical change to plant configuration")
		p.Mitigations = append(p.Mitigations, "Walk down the affected area and update environmental permits as needed.")
	}

	if in.NewProcedures || in.SoftwareChange {
		p.Operational = Medium
		p.Factors = append(p.Factors, "Operating procedures or software require revision")
		p.Mitigations = append(p.Mitigations, "Complete procedure updates and operator training before turnover.")
	}

	p.Overall = overall(p.Safety, p.Environmental, p.Operational)
	return p
}

// safetyLevel resolves the classification string against the vocabulary.
// An empty classification contributes nothing to the profile.
func safetyLevel(classification string) Level {
	c := strings.ToLower(strings.TrimSpace(classification))
	if c == "" {
		return Unset
	}
	if lvl, ok := safetyVocabulary[c]; ok {
		return lvl
	}
	return Low
}

// overall is the max severity; all-Unset defaults to Low.
func overall(levels ...Level) Level {
	max := Unset
	for _, l := range levels {
		if l > max {
			max = l
		}
	}
	if max == Unset {
		return Low
	}
	return max
}
