package patterns

import (
	"testing"
)

func TestLibrary_SignalNamesHaveKeywords(t *testing.T) {
	lib := New()
	for _, name := range lib.SignalNames() {
		if len(lib.Keywords(name)) == 0 {
			t.Errorf("signal %q has no keyword set", name)
		}
	}
}

func TestLibrary_UnknownSignal(t *testing.T) {
	lib := New()
	if kw := lib.Keywords("no_such_signal"); kw != nil {
		t.Errorf("Keywords(unknown) = %v, want nil", kw)
	}
}

func TestTemplate_Match(t *testing.T) {
	lib := New()

	tests := []struct {
		name string
		text string
		want string
	}{
		{"room", "Install conduit in Room 204B near the panel.", "204B"},
		{"unit", "The work affects Unit 2 only.", "Unit 2"},
		{"named building", "Replace lighting in the turbine building next outage.", "turbine building"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got string
			for _, tmpl := range lib.LocationTemplates() {
				if v, ok := tmpl.Match(tt.text); ok {
					got = v
					break
				}
			}
			if got != tt.want {
				t.Errorf("location match = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTemplate_MatchAllEquipment(t *testing.T) {
	lib := New()
	text := "Replace MOV-1234 and breaker 52B; 1-EDG-01 is unaffected."

	var all []string
	for _, tmpl := range lib.EquipmentTemplates() {
		all = append(all, tmpl.MatchAll(text)...)
	}

	want := map[string]bool{"MOV-1234": false, "1-EDG-01": false, "breaker 52B": false}
	for _, m := range all {
		if _, ok := want[m]; ok {
			want[m] = true
		}
	}
	for tag, found := range want {
		if !found {
			t.Errorf("equipment %q not matched in %v", tag, all)
		}
	}
}

func TestQualityRules_Count(t *testing.T) {
	lib := New()
	text := "The valve was inspected by the technician. Several leaks were repaired by the crew."

	counts := map[string]int{}
	for _, r := range lib.QualityRules() {
		counts[r.Name] = r.Count(text)
	}

	if counts["passive_voice"] < 2 {
		t.Errorf("passive_voice count = %d, want >= 2", counts["passive_voice"])
	}
	if counts["vague_quantifier"] != 1 {
		t.Errorf("vague_quantifier count = %d, want 1", counts["vague_quantifier"])
	}
}
