package extraction

import (
	"strings"
	"testing"

	"github.com/fyrsmithlabs/screend/internal/patterns"
)

func newExtractor(t *testing.T) *FieldExtractor {
	t.Helper()
	return NewFieldExtractor(patterns.New(), nil)
}

func TestFieldExtractor_Extract(t *testing.T) {
	e := newExtractor(t)

	tests := []struct {
		name          string
		text          string
		wantLocation  string
		wantSystems   string
		wantEquipment string
	}{
		{
			name:          "room and tag",
			text:          "Replace MOV-1234 in Room 204B to restore service water flow.",
			wantLocation:  "204B",
			wantSystems:   "service water",
			wantEquipment: "MOV-1234",
		},
		{
			name:         "unit location",
			text:         "Modify the instrument air header on Unit 2.",
			wantLocation: "Unit 2",
			wantSystems:  "instrument air",
		},
		{
			name:         "building phrase",
			text:         "Install new lighting in the turbine building.",
			wantLocation: "turbine building",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := e.Extract(tt.text)
			if got.Location != tt.wantLocation {
				t.Errorf("Location = %q, want %q", got.Location, tt.wantLocation)
			}
			if tt.wantSystems != "" && got.Systems != tt.wantSystems {
				t.Errorf("Systems = %q, want %q", got.Systems, tt.wantSystems)
			}
			if tt.wantEquipment != "" && got.Equipment != tt.wantEquipment {
				t.Errorf("Equipment = %q, want %q", got.Equipment, tt.wantEquipment)
			}
		})
	}
}

func TestFieldExtractor_UndeterminedSentinel(t *testing.T) {
	e := newExtractor(t)
	got := e.Extract("no recognizable content here")

	for field, v := range map[string]string{
		"location":  got.Location,
		"systems":   got.Systems,
		"equipment": got.Equipment,
		"solution":  got.ProposedSolution,
	} {
		if v != Undetermined {
			t.Errorf("%s = %q, want sentinel %q", field, v, Undetermined)
		}
		if v == "" {
			t.Errorf("%s is empty; sentinel required", field)
		}
	}
}

func TestFieldExtractor_MultiValuedAccumulation(t *testing.T) {
	e := newExtractor(t)
	text := "Rewire MOV-1234, MOV-1234 and HV-201A; impacts service water and fire protection."
	got := e.Extract(text)

	if strings.Count(got.Equipment, "MOV-1234") != 1 {
		t.Errorf("Equipment not deduplicated: %q", got.Equipment)
	}
	for _, want := range []string{"MOV-1234", "HV-201A"} {
		if !strings.Contains(got.Equipment, want) {
			t.Errorf("Equipment %q missing %q", got.Equipment, want)
		}
	}
	for _, want := range []string{"service water", "fire protection"} {
		if !strings.Contains(got.Systems, want) {
			t.Errorf("Systems %q missing %q", got.Systems, want)
		}
	}
}

func TestFieldExtractor_SpecificSystemNotShadowed(t *testing.T) {
	e := newExtractor(t)
	got := e.Extract("Inspect the essential service water pump motors.")

	if got.Systems != "essential service water" {
		t.Errorf("Systems = %q, want the more specific name only", got.Systems)
	}
}
