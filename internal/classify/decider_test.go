package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fyrsmithlabs/screend/internal/extraction"
)

func newDecider() *Decider {
	return NewDecider(DeciderConfig{PreferNegativeAssertion: true}, nil)
}

func TestDecider_ExplicitAssertionWins(t *testing.T) {
	d := newDecider()

	got := d.Decide("A screening is not required here.", CategoryI, extraction.Signals{})
	assert.False(t, got.Required, "explicit negation overrides the category default")
	assert.True(t, got.Explicit)
	require.NotEmpty(t, got.Justifications)
	assert.Contains(t, got.Justifications[0], "not required")
	assert.Equal(t, localProceduresNote, got.Justifications[len(got.Justifications)-1])

	got = d.Decide("Screening is required.", CategoryV, extraction.Signals{})
	assert.True(t, got.Required)
	assert.True(t, got.Explicit)
	assert.Equal(t, complianceRationale, got.Justifications[len(got.Justifications)-1])
}

func TestDecider_CategoryDefaults(t *testing.T) {
	d := newDecider()

	tests := []struct {
		name         string
		cat          Category
		sig          extraction.Signals
		wantRequired bool
	}{
		{"category I always required", CategoryI, extraction.Signals{}, true},
		{"category II required by default", CategoryII, extraction.Signals{}, true},
		{"category III required", CategoryIII, extraction.Signals{}, true},
		{"category IV required with safety signal", CategoryIV, extraction.Signals{SafetySignificant: true}, true},
		{"category IV not required without safety signal", CategoryIV, extraction.Signals{}, false},
		{"category V requires critical safety", CategoryV, extraction.Signals{CriticalSafety: true, SafetySignificant: true}, true},
		{"category V not required for mere safety significance", CategoryV, extraction.Signals{SafetySignificant: true}, false},
		{"category V not required without signals", CategoryV, extraction.Signals{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := d.Decide("no assertion in this prose", tt.cat, tt.sig)
			assert.Equal(t, tt.wantRequired, got.Required)
			assert.False(t, got.Explicit)
			require.NotEmpty(t, got.Justifications)
		})
	}
}

func TestDecider_ClauseOrderAndClosings(t *testing.T) {
	d := newDecider()

	sig := extraction.Signals{
		SafetySignificant:   true,
		ComplexModification: true,
		DigitalUpgrade:      true,
		Environmental:       true,
		Seismic:             true,
	}
	got := d.Decide("", CategoryII, sig)
	require.True(t, got.Required)

	want := []string{
		defaultPolicies[CategoryII].baseRequired,
		safetyClause,
		complexityClause,
		digitalClause,
		environmentClause,
		seismicClause,
		complianceRationale,
	}
	assert.Equal(t, want, got.Justifications)
}

func TestDecider_ComplexityAddsJustification(t *testing.T) {
	d := newDecider()

	plain := d.Decide("", CategoryII, extraction.Signals{})
	complex := d.Decide("", CategoryII, extraction.Signals{ComplexModification: true})

	assert.Len(t, complex.Justifications, len(plain.Justifications)+1)
	assert.Contains(t, complex.Justifications, complexityClause)
	assert.NotContains(t, plain.Justifications, complexityClause)
}

func TestDecider_CategoryIVSafetyClause(t *testing.T) {
	d := newDecider()

	got := d.Decide("", CategoryIV, extraction.Signals{SafetySignificant: true})
	require.True(t, got.Required)
	assert.Contains(t, got.Justifications, safetyClause,
		"the safety clause applies to every required screening, temporary changes included")
}

func TestDecider_NotRequiredCarriesCaveat(t *testing.T) {
	d := newDecider()

	got := d.Decide("", CategoryV, extraction.Signals{})
	require.False(t, got.Required)
	assert.Equal(t, []string{
		defaultPolicies[CategoryV].caveat,
		localProceduresNote,
	}, got.Justifications)
}

func TestDecider_JustificationsNeverEmpty(t *testing.T) {
	d := newDecider()
	for cat := CategoryI; cat <= CategoryV; cat++ {
		for _, sig := range []extraction.Signals{{}, {SafetySignificant: true}, {CriticalSafety: true, SafetySignificant: true}} {
			got := d.Decide("", cat, sig)
			if len(got.Justifications) == 0 {
				t.Errorf("cat %v sig %+v: empty justification list", cat, sig)
			}
		}
	}
}

func TestDecider_Idempotent(t *testing.T) {
	d := newDecider()
	sig := extraction.Signals{DigitalUpgrade: true}

	first := d.Decide("Category III prose", CategoryIII, sig)
	second := d.Decide("Category III prose", CategoryIII, sig)
	assert.Equal(t, first, second)
}
