package classify

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/fyrsmithlabs/screend/internal/extraction"
)

// Fixed justification text. The decider composes these in a deterministic
// order; callers rely on the list never being empty.
const (
	complianceRationale = "A formal screening documents the basis for concluding the change can be implemented without prior regulatory approval."
	localProceduresNote = "Local procedures may still mandate an evaluation regardless of this screening determination."

	safetyClause      = "The change involves safety-significant equipment. The screening must address the effect on the equipment's design function."
	complexityClause  = "The change is a complex modification spanning multiple systems or disciplines. The screening must address interface and integration effects."
	digitalClause     = "The change introduces digital or software content. The screening must address software common-cause failure and cyber considerations."
	environmentClause = "The change is environmentally significant. The screening must address effluent and release pathways."
	seismicClause     = "The change affects seismic qualification. The screening must address anchorage and load path adequacy."
)

// categoryPolicy is the default screening policy for one category, applied
// when the reasoning prose contains no explicit assertion.
type categoryPolicy struct {
	// required decides the screening obligation from the detected signals.
	required func(sig extraction.Signals) bool
	// baseRequired is the lead justification when a screening is required.
	baseRequired string
	// caveat is the lead justification when no screening is required.
	caveat string
}

// defaultPolicies is the category-keyed policy table. Review thresholds
// are fixed and enumerable per category.
var defaultPolicies = map[Category]categoryPolicy{
	CategoryI: {
		required:     func(extraction.Signals) bool { return true },
		baseRequired: "Category I changes alter the facility as described in the licensing basis and always require a formal screening.",
	},
	CategoryII: {
		required:     func(extraction.Signals) bool { return true },
		baseRequired: "Category II changes are presumed to require a formal screening unless demonstrated otherwise.",
	},
	CategoryIII: {
		required:     func(extraction.Signals) bool { return true },
		baseRequired: "Category III changes modify existing design features and require a formal screening.",
	},
	CategoryIV: {
		required:     func(sig extraction.Signals) bool { return sig.SafetySignificant },
		baseRequired: "This temporary change affects safety-significant equipment and requires a formal screening for the installed duration.",
		caveat:       "Temporary changes that do not affect safety-significant equipment may be dispositioned without a formal screening.",
	},
	CategoryV: {
		required:     func(sig extraction.Signals) bool { return sig.CriticalSafety },
		baseRequired: "Although an identical replacement, the component supports a critical safety function and a formal screening is required.",
		caveat:       "Identical replacements that preserve the original design function do not require a formal screening.",
	},
}

// DeciderConfig configures prose-assertion handling.
type DeciderConfig struct {
	// PreferNegativeAssertion breaks the tie when conflicting assertions
	// start at the same text position. Default true: an explicit negation
	// is treated as the deliberate statement.
	PreferNegativeAssertion bool
}

// Decider decides whether a formal screening is required.
type Decider struct {
	cfg    DeciderConfig
	logger *zap.Logger
}

// NewDecider creates a decider. logger may be nil.
func NewDecider(cfg DeciderConfig, logger *zap.Logger) *Decider {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Decider{cfg: cfg, logger: logger}
}

// Decide runs the screening-required policy.
//
// An explicit assertion in the reasoning prose wins immediately. Otherwise
// the category-keyed default applies, extra clauses are appended in fixed
// order for active signals, and the list closes with the compliance
// rationale (required) or the local-procedures note (not required).
func (d *Decider) Decide(analysis string, cat Category, sig extraction.Signals) Decision {
	if a, ok := FindAssertion(analysis, d.cfg.PreferNegativeAssertion); ok {
		d.logger.Debug("explicit screening assertion",
			zap.Bool("required", a.Required),
			zap.Int("position", a.Position),
		)
		just := []string{fmt.Sprintf("External analysis states %q.", a.Quote)}
		if a.Required {
			just = append(just, complianceRationale)
		} else {
			just = append(just, localProceduresNote)
		}
		return Decision{Required: a.Required, Justifications: just, Explicit: true}
	}

	policy, ok := defaultPolicies[cat]
	if !ok {
		policy = defaultPolicies[DefaultCategory]
	}

	if !policy.required(sig) {
		return Decision{
			Required:       false,
			Justifications: []string{policy.caveat, localProceduresNote},
		}
	}

	just := []string{policy.baseRequired}

	// Extra clauses in fixed order: safety, complexity, digital,
	// environmental, seismic.
	if sig.SafetySignificant {
		just = append(just, safetyClause)
	}
	if sig.ComplexModification {
		just = append(just, complexityClause)
	}
	if sig.DigitalUpgrade {
		just = append(just, digitalClause)
	}
	if sig.Environmental {
		just = append(just, environmentClause)
	}
	if sig.Seismic {
		just = append(just, seismicClause)
	}

	just = append(just, complianceRationale)
	return Decision{Required: true, Justifications: just}
}
