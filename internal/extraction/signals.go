package extraction

import (
	"strings"

	"github.com/fyrsmithlabs/screend/internal/patterns"
)

// Signals are the keyword-derived boolean indicators consumed by the
// classifier, the screening decider, and the risk assessor.
type Signals struct {
	SafetySignificant   bool `json:"safety_significant"`
	CriticalSafety      bool `json:"critical_safety"`
	ComplexModification bool `json:"complex_modification"`
	DigitalUpgrade      bool `json:"digital_upgrade"`
	Environmental       bool `json:"environmentally_significant"`
	Seismic             bool `json:"seismically_significant"`
}

// SignalDetector evaluates keyword signal sets against request text.
type SignalDetector struct {
	lib *patterns.Library
}

// NewSignalDetector creates a signal detector over the given library.
func NewSignalDetector(lib *patterns.Library) *SignalDetector {
	return &SignalDetector{lib: lib}
}

// Detect evaluates every signal keyword set against text. Matching is
// case-insensitive substring containment; a single keyword hit sets the
// signal. CriticalSafety implies SafetySignificant.
func (d *SignalDetector) Detect(text string) Signals {
	lower := strings.ToLower(text)

	s := Signals{
		SafetySignificant:   d.anyKeyword(patterns.SignalSafetySignificant, lower),
		CriticalSafety:      d.anyKeyword(patterns.SignalCriticalSafety, lower),
		ComplexModification: d.anyKeyword(patterns.SignalComplexModification, lower),
		DigitalUpgrade:      d.anyKeyword(patterns.SignalDigitalUpgrade, lower),
		Environmental:       d.anyKeyword(patterns.SignalEnvironmental, lower),
		Seismic:             d.anyKeyword(patterns.SignalSeismic, lower),
	}
	if s.CriticalSafety {
		s.SafetySignificant = true
	}
	return s
}

func (d *SignalDetector) anyKeyword(signal, lowerText string) bool {
	for _, kw := range d.lib.Keywords(signal) {
		if strings.Contains(lowerText, kw) {
			return true
		}
	}
	return false
}
