package extraction

import (
	"testing"

	"github.com/fyrsmithlabs/screend/internal/patterns"
)

func TestSignalDetector_Detect(t *testing.T) {
	d := NewSignalDetector(patterns.New())

	tests := []struct {
		name string
		text string
		want Signals
	}{
		{
			name: "emergency diesel is safety significant",
			text: "Temporary bypass of emergency diesel generator for 48 hours",
			want: Signals{SafetySignificant: true},
		},
		{
			name: "reactor protection system is critical safety",
			text: "Replace a relay in the reactor protection system cabinet",
			want: Signals{SafetySignificant: true, CriticalSafety: true},
		},
		{
			name: "plc upgrade is digital",
			text: "Upgrade the PLC firmware on the compressor skid",
			want: Signals{DigitalUpgrade: true},
		},
		{
			name: "effluent change is environmental",
			text: "Modify the effluent discharge monitoring line",
			want: Signals{Environmental: true},
		},
		{
			name: "seismic anchorage",
			text: "Add seismic anchorage to the new battery rack",
			want: Signals{Seismic: true},
		},
		{
			name: "benign text",
			text: "Repaint the administration office hallway",
			want: Signals{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := d.Detect(tt.text); got != tt.want {
				t.Errorf("Detect() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestSignalDetector_CriticalImpliesSafetySignificant(t *testing.T) {
	d := NewSignalDetector(patterns.New())
	got := d.Detect("work near the containment isolation valves")
	if !got.CriticalSafety || !got.SafetySignificant {
		t.Errorf("critical safety must imply safety significant, got %+v", got)
	}
}

func TestSignalDetector_Idempotent(t *testing.T) {
	d := NewSignalDetector(patterns.New())
	text := "Digital upgrade of the fire protection panel with seismic bracing"
	if d.Detect(text) != d.Detect(text) {
		t.Error("Detect is not deterministic for identical input")
	}
}
