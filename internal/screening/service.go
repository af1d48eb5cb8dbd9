package screening

import (
	"context"
	"errors"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fyrsmithlabs/screend/internal/classify"
	"github.com/fyrsmithlabs/screend/internal/extraction"
	"github.com/fyrsmithlabs/screend/internal/quality"
	"github.com/fyrsmithlabs/screend/internal/reasoner"
	"github.com/fyrsmithlabs/screend/internal/risk"
)

// Degraded-path constants. The cascade substitutes these deterministic
// values whenever the reasoning step fails or returns nothing usable.
const (
	degradedReasoning  = "Automated reasoning was unavailable; category inferred from keyword evidence only."
	degradedConfidence = 0.2
)

// degradedJustifications is the fixed justification list for degraded
// reports. Conservative: a human completes what automation could not.
var degradedJustifications = []string{
	"Automated analysis was unavailable for this change request.",
	"A formal screening by a qualified engineer is required until the change is manually dispositioned.",
	"Re-submit the request once the analysis service is restored to obtain a full classification.",
}

// technicalScorePattern extracts the technical sub-score from review prose,
// e.g. "score: 78" or "technical score = 85".
var technicalScorePattern = regexp.MustCompile(`(?i)\b(?:technical\s+)?score\s*[:=]?\s*(\d{1,3})\b`)

// defaultTechnicalScore stands in when the external technical review is
// unavailable or unparseable.
const defaultTechnicalScore = 70.0

// Config tunes the external-call policy.
type Config struct {
	// ReasonTimeout bounds each reasoning attempt.
	ReasonTimeout time.Duration
	// ReasonRetries is the number of extra attempts before the cascade
	// fires. At most one retry is made regardless of configuration.
	ReasonRetries int
	// PreferNegativeAssertion is passed through to the decider.
	PreferNegativeAssertion bool
}

// DefaultConfig returns the default external-call policy.
func DefaultConfig() Config {
	return Config{
		ReasonTimeout:           20 * time.Second,
		ReasonRetries:           1,
		PreferNegativeAssertion: true,
	}
}

// Service runs the screening pipeline. Stateless across requests; all
// shared structures are read-only after construction.
type Service struct {
	extractor  *extraction.FieldExtractor
	signals    *extraction.SignalDetector
	classifier *classify.Classifier
	decider    *classify.Decider
	assessor   *risk.Assessor
	scorer     *quality.Scorer
	reasoner   reasoner.Reasoner
	suggester  reasoner.Suggester
	cfg        Config
	logger     *zap.Logger
	metrics    *Metrics
}

// Options wires the service dependencies. Reasoner and Suggester may be
// nil; the corresponding step then always takes its fallback.
type Options struct {
	Extractor *extraction.FieldExtractor
	Signals   *extraction.SignalDetector
	Scorer    *quality.Scorer
	Reasoner  reasoner.Reasoner
	Suggester reasoner.Suggester
	Config    Config
	Logger    *zap.Logger
	Metrics   *Metrics
}

// NewService creates the screening service.
func NewService(opts Options) *Service {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	cfg := opts.Config
	if cfg.ReasonTimeout <= 0 {
		cfg.ReasonTimeout = DefaultConfig().ReasonTimeout
	}
	return &Service{
		extractor:  opts.Extractor,
		signals:    opts.Signals,
		classifier: classify.NewClassifier(logger.Named("classify")),
		decider:    classify.NewDecider(classify.DeciderConfig{PreferNegativeAssertion: cfg.PreferNegativeAssertion}, logger.Named("decide")),
		assessor:   risk.NewAssessor(),
		scorer:     opts.Scorer,
		reasoner:   opts.Reasoner,
		suggester:  opts.Suggester,
		cfg:        cfg,
		logger:     logger,
		metrics:    opts.Metrics,
	}
}

// Screen runs the full pipeline for one request. Every code path returns a
// well-formed report, possibly flagged degraded; the only error returned is
// ErrEmptyText for missing input.
func (s *Service) Screen(ctx context.Context, req Request) (*Report, error) {
	text := strings.TrimSpace(req.Text)
	if text == "" {
		s.metrics.Screening("rejected")
		return nil, ErrEmptyText
	}
	// A submitter-provided problem statement is part of the analyzed text.
	if req.Structured != nil {
		if ps := strings.TrimSpace(req.Structured.ProblemStatement); ps != "" && !strings.Contains(text, ps) {
			text = ps + "\n\n" + text
		}
	}

	fields := s.extractor.Extract(text)
	signals := s.signals.Detect(text)
	applyStructuredFields(&fields, req.Structured)

	suggestion := s.suggest(ctx, text, req.Structured)

	analysis, err := s.reason(ctx, text)
	if err != nil {
		s.logger.Warn("reasoning unavailable, using keyword fallback", zap.Error(err))
		report := s.fallbackReport(text, fields, signals, suggestion, err)
		annotateDeclared(report, req.Structured)
		s.metrics.Screening("degraded")
		return report, nil
	}

	classification := s.classifier.Classify(text, suggestion, analysis, signals)
	decision := s.decider.Decide(analysis, classification.Category, signals)
	profile := s.assessor.Assess(riskInputs(req.Structured))

	report := newReport(classification, decision, profile, fields, signals)
	annotateDeclared(report, req.Structured)
	s.metrics.Screening("ok")
	s.logger.Info("request screened",
		zap.String("report_id", report.ID),
		zap.Stringer("category", report.Category),
		zap.Bool("screening_required", report.ScreeningRequired),
		zap.Float64("confidence", report.Confidence),
	)
	return report, nil
}

// ScoreDocument scores a written document's quality. The technical
// sub-score comes from the reasoning service; when that fails the default
// stands in and the result is flagged degraded.
func (s *Service) ScoreDocument(ctx context.Context, text string) (*DocumentScore, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		s.metrics.Scoring("rejected")
		return nil, ErrEmptyText
	}

	grammar := s.scorer.AnalyzeGrammar(text)
	style := s.scorer.AnalyzeStyle(text)

	technical := defaultTechnicalScore
	degraded := false
	if review, err := s.reason(ctx, "Review the technical adequacy of this document and state a score from 0 to 100:\n\n"+text); err != nil {
		s.logger.Warn("technical review unavailable, using default score", zap.Error(err))
		degraded = true
	} else if v, ok := parseTechnicalScore(review); ok {
		technical = v
	} else {
		s.logger.Warn("technical review unparseable, using default score")
		degraded = true
	}

	breakdown := s.scorer.Score(quality.SubScores{
		Grammar:   grammar,
		Style:     style.Average(),
		Technical: technical,
	})

	outcome := "ok"
	if degraded {
		outcome = "degraded"
	}
	s.metrics.Scoring(outcome)

	return &DocumentScore{
		ID:        uuid.New().String(),
		CreatedAt: time.Now().UTC(),
		Breakdown: breakdown,
		Style:     style,
		Degraded:  degraded,
	}, nil
}

// reason calls the external reasoning service with a bounded timeout and at
// most one retry. Parent cancellation is honored and never retried.
func (s *Service) reason(ctx context.Context, text string) (string, error) {
	if s.reasoner == nil {
		return "", errors.New("no reasoner configured")
	}

	attempt := func() (string, error) {
		actx, cancel := context.WithTimeout(ctx, s.cfg.ReasonTimeout)
		defer cancel()
		return s.reasoner.Analyze(actx, text)
	}

	out, err := attempt()
	if err == nil {
		return out, nil
	}
	if ctx.Err() != nil || s.cfg.ReasonRetries < 1 {
		return "", err
	}
	return attempt()
}

// suggest obtains the similarity suggestion. Submitter-declared flags
// (temporary, identical replacement) outrank the similarity source, and a
// suggester failure simply leaves the classifier without a suggestion.
func (s *Service) suggest(ctx context.Context, text string, st *StructuredFields) *classify.Suggestion {
	if st != nil {
		if st.IdenticalReplacement {
			return &classify.Suggestion{Category: classify.CategoryV, Confidence: 0.9, Source: classify.SourceDeclared}
		}
		if st.Temporary {
			return &classify.Suggestion{Category: classify.CategoryIV, Confidence: 0.9, Source: classify.SourceDeclared}
		}
	}
	if s.suggester == nil {
		return nil
	}
	suggestion, err := s.suggester.Suggest(ctx, text)
	if err != nil {
		s.logger.Debug("similarity suggestion unavailable", zap.Error(err))
		return nil
	}
	return &suggestion
}

// fallbackReport is the cascade's deterministic keyword-only substitute.
// It is a pure function of its inputs, so repeated failures produce
// identical reports.
func (s *Service) fallbackReport(text string, fields extraction.Fields, signals extraction.Signals, suggestion *classify.Suggestion, cause error) *Report {
	category, rule := classify.InferCategoryFromKeywords(text)

	confidence := degradedConfidence
	if suggestion != nil {
		if c := suggestion.Confidence; c > confidence && c <= 1 {
			confidence = c
		}
	}

	classification := classify.Classification{
		Category:             category,
		Confidence:           confidence,
		Reasoning:            degradedReasoning,
		KeyFactors:           []string{"Keyword rule: " + rule},
		AgreesWithSuggestion: suggestion != nil && suggestion.Category == category,
		Source:               classify.SourceFallback,
	}
	decision := classify.Decision{
		Required:       true,
		Justifications: append([]string(nil), degradedJustifications...),
	}
	profile := s.assessor.Assess(risk.Inputs{})

	report := newReport(classification, decision, profile, fields, signals)
	report.DecisionSource = "fallback"
	report.Degraded = true
	report.DegradedReason = cause.Error()
	return report
}

// newReport assembles the immutable report record.
func newReport(c classify.Classification, d classify.Decision, p risk.Profile, f extraction.Fields, sig extraction.Signals) *Report {
	source := "inferred"
	if d.Explicit {
		source = "explicit"
	}
	return &Report{
		ID:                   uuid.New().String(),
		CreatedAt:            time.Now().UTC(),
		Category:             c.Category,
		CategoryLabel:        c.Category.String(),
		Confidence:           c.Confidence,
		Reasoning:            c.Reasoning,
		KeyFactors:           c.KeyFactors,
		AgreesWithSuggestion: c.AgreesWithSuggestion,
		ClassificationSource: c.Source,
		ScreeningRequired:    d.Required,
		Justifications:       d.Justifications,
		DecisionSource:       source,
		Risk:                 p,
		Fields:               f,
		Signals:              sig,
	}
}

// annotateDeclared records declared flags that affect review scope but not
// the category decision itself.
func annotateDeclared(report *Report, st *StructuredFields) {
	if st == nil {
		return
	}
	if st.MultipleDocuments {
		report.KeyFactors = append(report.KeyFactors, "Multiple licensing documents require coordinated updates")
	}
}

// applyStructuredFields lets submitter-provided values pre-empt extraction.
func applyStructuredFields(fields *extraction.Fields, st *StructuredFields) {
	if st == nil {
		return
	}
	if v := strings.TrimSpace(st.ProposedSolution); v != "" {
		fields.ProposedSolution = v
	}
}

// riskInputs maps the structured record onto the risk assessor's inputs.
func riskInputs(st *StructuredFields) risk.Inputs {
	if st == nil {
		return risk.Inputs{}
	}
	return risk.Inputs{
		SafetyClassification: st.SafetyClassification,
		HazardCategory:       st.HazardCategory,
		PhysicalChange:       st.PhysicalChange,
		NewProcedures:        st.NewProcedures,
		SoftwareChange:       st.SoftwareChange,
	}
}

// parseTechnicalScore reads a 0-100 score figure out of review prose.
func parseTechnicalScore(review string) (float64, bool) {
	m := technicalScorePattern.FindStringSubmatch(review)
	if m == nil {
		return 0, false
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil || v > 100 {
		return 0, false
	}
	return v, true
}
