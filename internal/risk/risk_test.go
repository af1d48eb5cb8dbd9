package risk

import "testing"

func TestAssessor_SafetyVocabulary(t *testing.T) {
	a := NewAssessor()

	tests := []struct {
		classification string
		want           Level
	}{
		{"safety-related", High},
		{"Safety-Related", High},
		{"important-to-safety", Medium},
		{"Important To Safety", Medium},
		{"non-safety", Low},
		{"commercial", Low},
		{"", Unset},
	}

	for _, tt := range tests {
		t.Run(tt.classification, func(t *testing.T) {
			p := a.Assess(Inputs{SafetyClassification: tt.classification})
			if p.Safety != tt.want {
				t.Errorf("Safety = %v, want %v", p.Safety, tt.want)
			}
		})
	}
}

func TestAssessor_DimensionRules(t *testing.T) {
	a := NewAssessor()

	p := a.Assess(Inputs{PhysicalChange: true})
	if p.Environmental != Medium {
		t.Errorf("Environmental = %v, want Medium", p.Environmental)
	}

	p = a.Assess(Inputs{NewProcedures: true})
	if p.Operational != Medium {
		t.Errorf("Operational = %v, want Medium for new procedures", p.Operational)
	}

	p = a.Assess(Inputs{SoftwareChange: true})
	if p.Operational != Medium {
		t.Errorf("Operational = %v, want Medium for software change", p.Operational)
	}

	p = a.Assess(Inputs{})
	if p.Environmental != Unset || p.Operational != Unset {
		t.Errorf("dimensions without triggers must stay Unset, got %+v", p)
	}
}

func TestAssessor_HazardCategory(t *testing.T) {
	a := NewAssessor()

	p := a.Assess(Inputs{HazardCategory: "standard industrial"})
	if p.Safety != Low {
		t.Errorf("Safety = %v, want Low when only a hazard category is declared", p.Safety)
	}
	if len(p.Factors) != 1 || len(p.Mitigations) != 1 {
		t.Fatalf("want 1 factor/mitigation pair, got %d/%d", len(p.Factors), len(p.Mitigations))
	}

	// The classification vocabulary wins over the hazard category.
	p = a.Assess(Inputs{SafetyClassification: "safety-related", HazardCategory: "standard industrial"})
	if p.Safety != High {
		t.Errorf("Safety = %v, want High", p.Safety)
	}
	if len(p.Factors) != 1 {
		t.Errorf("hazard category must not add a second safety factor, got %v", p.Factors)
	}
}

func TestAssessor_OverallIsMaxSeverity(t *testing.T) {
	a := NewAssessor()

	tests := []struct {
		name string
		in   Inputs
		want Level
	}{
		{"high dominates", Inputs{SafetyClassification: "safety-related", PhysicalChange: true}, High},
		{"medium from environmental only", Inputs{PhysicalChange: true}, Medium},
		{"low from unrecognized classification", Inputs{SafetyClassification: "commercial"}, Low},
		{"all unset defaults to low", Inputs{}, Low},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := a.Assess(tt.in)
			if p.Overall != tt.want {
				t.Errorf("Overall = %v, want %v", p.Overall, tt.want)
			}

			// Invariant: overall == max(dimensions) with Unset lowest,
			// except all-Unset which yields Low.
			max := Unset
			for _, l := range []Level{p.Safety, p.Environmental, p.Operational} {
				if l > max {
					max = l
				}
			}
			if max == Unset {
				max = Low
			}
			if p.Overall != max {
				t.Errorf("Overall = %v violates max-severity invariant (max %v)", p.Overall, max)
			}
		})
	}
}

func TestAssessor_FactorMitigationPairs(t *testing.T) {
	a := NewAssessor()

	p := a.Assess(Inputs{
		SafetyClassification: "safety-related",
		PhysicalChange:       true,
		SoftwareChange:       true,
	})

	if len(p.Factors) != 3 || len(p.Mitigations) != 3 {
		t.Fatalf("want 3 factor/mitigation pairs, got %d/%d", len(p.Factors), len(p.Mitigations))
	}

	p = a.Assess(Inputs{})
	if len(p.Factors) != 0 || len(p.Mitigations) != 0 {
		t.Errorf("unset dimensions must contribute no factors, got %v", p.Factors)
	}
}
