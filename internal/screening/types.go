package screening

import (
	"errors"
	"time"

	"github.com/fyrsmithlabs/screend/internal/classify"
	"github.com/fyrsmithlabs/screend/internal/extraction"
	"github.com/fyrsmithlabs/screend/internal/quality"
	"github.com/fyrsmithlabs/screend/internal/risk"
)

// ErrEmptyText is the single caller-visible validation error: requests
// without text are rejected before any classification attempt.
var ErrEmptyText = errors.New("change description text is required")

// StructuredFields is the optional pre-structured record accompanying the
// free text. Field values pre-empt extraction; the boolean flags feed the
// classifier and the risk assessor directly.
type StructuredFields struct {
	ProblemStatement     string `json:"problem_statement,omitempty"`
	ProposedSolution     string `json:"proposed_solution,omitempty"`
	SafetyClassification string `json:"safety_classification,omitempty"`
	HazardCategory       string `json:"hazard_category,omitempty"`
	PhysicalChange       bool   `json:"physical_change,omitempty"`
	NewProcedures        bool   `json:"new_procedures_required,omitempty"`
	SoftwareChange       bool   `json:"software_change_required,omitempty"`
	Temporary            bool   `json:"temporary,omitempty"`
	IdenticalReplacement bool   `json:"identical_replacement,omitempty"`
	MultipleDocuments    bool   `json:"multiple_documents_required,omitempty"`
}

// Request is the screening input. Immutable once received.
type Request struct {
	Text       string            `json:"text"`
	Structured *StructuredFields `json:"structured_fields,omitempty"`
}

// Report is the assembled screening result. Created once per request and
// never mutated after return; requests share no state.
type Report struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`

	Category             classify.Category `json:"category"`
	CategoryLabel        string            `json:"category_label"`
	Confidence           float64           `json:"confidence"`
	Reasoning            string            `json:"reasoning"`
	KeyFactors           []string          `json:"key_factors"`
	AgreesWithSuggestion bool              `json:"agrees_with_suggestion"`
	ClassificationSource classify.Source   `json:"classification_source"`

	ScreeningRequired bool     `json:"screening_required"`
	Justifications    []string `json:"justifications"`
	// DecisionSource is "explicit" when quoted from the reasoning prose,
	// "inferred" from the category policy, or "fallback".
	DecisionSource string `json:"decision_source"`

	Risk    risk.Profile       `json:"risk_profile"`
	Fields  extraction.Fields  `json:"extracted_fields"`
	Signals extraction.Signals `json:"signals"`

	Degraded       bool   `json:"degraded"`
	DegradedReason string `json:"degraded_reason,omitempty"`
}

// DocumentScore is the quality-scoring result for a written document.
type DocumentScore struct {
	ID        string              `json:"id"`
	CreatedAt time.Time           `json:"created_at"`
	Breakdown quality.Breakdown   `json:"breakdown"`
	Style     quality.StyleInputs `json:"style_components"`
	Degraded  bool                `json:"degraded"`
}
