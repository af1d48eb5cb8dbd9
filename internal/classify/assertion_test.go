package classify

import "testing"

func TestFindAssertion(t *testing.T) {
	tests := []struct {
		name         string
		analysis     string
		wantFound    bool
		wantRequired bool
	}{
		{
			name:         "explicit required",
			analysis:     "A formal screening is required for this change.",
			wantFound:    true,
			wantRequired: true,
		},
		{
			name:         "explicit not required",
			analysis:     "A formal screening is not required for this change.",
			wantFound:    true,
			wantRequired: false,
		},
		{
			name:         "does not require phrasing",
			analysis:     "This change does not require a formal screening.",
			wantFound:    true,
			wantRequired: false,
		},
		{
			name:      "no assertion",
			analysis:  "The change replaces a strainer basket.",
			wantFound: false,
		},
		{
			name:      "required as substring of unrelated word",
			analysis:  "All prerequired training applies.",
			wantFound: false,
		},
		{
			name:         "conflicting assertions, first wins (negative first)",
			analysis:     "Screening is not required. However, some reviewers argue it is required.",
			wantFound:    true,
			wantRequired: false,
		},
		{
			name:         "conflicting assertions, first wins (positive first)",
			analysis:     "Screening is required. A minority view holds it is not required.",
			wantFound:    true,
			wantRequired: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, found := FindAssertion(tt.analysis, true)
			if found != tt.wantFound {
				t.Fatalf("found = %v, want %v", found, tt.wantFound)
			}
			if found && got.Required != tt.wantRequired {
				t.Errorf("Required = %v, want %v (quote %q)", got.Required, tt.wantRequired, got.Quote)
			}
		})
	}
}

func TestFindAssertion_NegationNotMisreadAsPositive(t *testing.T) {
	// The bare word "required" inside the negated span must not register as
	// a positive assertion.
	got, found := FindAssertion("No screening required for identical replacements.", true)
	if !found {
		t.Fatal("expected an assertion")
	}
	if got.Required {
		t.Errorf("negated phrase read as positive: %q", got.Quote)
	}
}
