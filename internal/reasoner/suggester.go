package reasoner

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	chromem "github.com/philippgille/chromem-go"
	"go.uber.org/zap"

	"github.com/fyrsmithlabs/screend/internal/classify"
)

const exemplarCollection = "screening-exemplars"

// Exemplar is a categorized reference change description. The suggester
// recommends the category of the nearest exemplars.
type Exemplar struct {
	ID       string
	Text     string
	Category classify.Category
}

// DefaultExemplars seeds the similarity corpus with one or more reference
// descriptions per category.
func DefaultExemplars() []Exemplar {
	return []Exemplar{
		{ID: "cat1-rps-logic", Text: "Redesign the reactor protection system actuation logic and add a new trip function.", Category: classify.CategoryI},
		{ID: "cat1-new-system", Text: "Install a new standby cooling system tied into the emergency buses.", Category: classify.CategoryI},
		{ID: "cat2-reroute", Text: "Reroute instrument air piping and add isolation valves to support maintenance.", Category: classify.CategoryII},
		{ID: "cat2-setpoint", Text: "Revise the pump discharge pressure setpoint and update the alarm response procedure.", Category: classify.CategoryII},
		{ID: "cat3-upgrade", Text: "Replace the analog flow controller with an upgraded model of different design.", Category: classify.CategoryIII},
		{ID: "cat3-breaker", Text: "Replace aging breakers with a newer qualified model from a different vendor.", Category: classify.CategoryIII},
		{ID: "cat4-temporary", Text: "Temporary bypass of a non-essential interlock for the duration of the outage.", Category: classify.CategoryIV},
		{ID: "cat4-scaffold", Text: "Temporary scaffolding and shielding installed for inspection access.", Category: classify.CategoryIV},
		{ID: "cat5-identical", Text: "Replace the pump with an identical spare of the same make, model, and rating.", Category: classify.CategoryV},
		{ID: "cat5-like", Text: "Like-for-like replacement of a failed level transmitter with an identical unit.", Category: classify.CategoryV},
	}
}

// ExemplarSuggester implements Suggester over an embedded chromem
// collection of categorized exemplars.
type ExemplarSuggester struct {
	collection *chromem.Collection
	logger     *zap.Logger
	topK       int
}

// NewExemplarSuggester builds the in-memory exemplar collection. embed may
// be nil, in which case chromem's default embedding function is used. topK
// is the number of nearest exemplars consulted per suggestion; a
// non-positive value applies the default of 3, and the value is capped at
// the corpus size.
func NewExemplarSuggester(ctx context.Context, exemplars []Exemplar, embed chromem.EmbeddingFunc, topK int, logger *zap.Logger) (*ExemplarSuggester, error) {
	if len(exemplars) == 0 {
		exemplars = DefaultExemplars()
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	db := chromem.NewDB()
	col, err := db.GetOrCreateCollection(exemplarCollection, nil, embed)
	if err != nil {
		return nil, fmt.Errorf("create exemplar collection: %w", err)
	}

	docs := make([]chromem.Document, len(exemplars))
	for i, ex := range exemplars {
		docs[i] = chromem.Document{
			ID:      ex.ID,
			Content: ex.Text,
			Metadata: map[string]string{
				"category": strconv.Itoa(int(ex.Category)),
			},
		}
	}
	if err := col.AddDocuments(ctx, docs, 1); err != nil {
		return nil, fmt.Errorf("seed exemplars: %w", err)
	}

	if topK <= 0 {
		topK = 3
	}
	if len(exemplars) < topK {
		topK = len(exemplars)
	}
	return &ExemplarSuggester{collection: col, logger: logger, topK: topK}, nil
}

// Suggest returns the category of the nearest exemplar. Confidence is the
// cosine similarity of the best match, clamped to [0,1]; ties across the
// top results are broken by summed similarity per category.
func (s *ExemplarSuggester) Suggest(ctx context.Context, text string) (classify.Suggestion, error) {
	results, err := s.collection.Query(ctx, text, s.topK, nil, nil)
	if err != nil {
		return classify.Suggestion{}, fmt.Errorf("exemplar query: %w", err)
	}
	if len(results) == 0 {
		return classify.Suggestion{}, fmt.Errorf("no exemplar matches")
	}

	// Sum similarity per category over the top results.
	sums := make(map[classify.Category]float64)
	best := classify.Category(0)
	for _, r := range results {
		n, err := strconv.Atoi(r.Metadata["category"])
		if err != nil {
			continue
		}
		cat := classify.Category(n)
		if !cat.Valid() {
			continue
		}
		sums[cat] += float64(r.Similarity)
		if best == 0 || sums[cat] > sums[best] {
			best = cat
		}
	}
	if best == 0 {
		return classify.Suggestion{}, fmt.Errorf("no valid exemplar categories in results")
	}

	confidence := float64(results[0].Similarity)
	if confidence < 0 {
		confidence = 0
	}
	if confidence > 1 {
		confidence = 1
	}

	s.logger.Debug("similarity suggestion",
		zap.Stringer("category", best),
		zap.Float64("confidence", confidence),
	)
	return classify.Suggestion{
		Category:   best,
		Confidence: confidence,
		Source:     classify.SourceSimilarity,
	}, nil
}

var _ Suggester = (*ExemplarSuggester)(nil)

// lexicalFeatures is the term vocabulary for LexicalEmbedding. One dimension
// per term plus a bias dimension so no vector is all-zero.
var lexicalFeatures = []string{
	"identical", "like-for-like", "same make", "spare",
	"temporary", "interim", "bypass", "outage", "scaffold",
	"replace", "replacement", "upgrade", "different",
	"new", "install", "reroute", "revise", "setpoint",
	"reactor", "cooling", "emergency", "trip", "interlock",
	"pump", "valve", "breaker", "transmitter", "controller", "piping",
	"digital", "software", "analog",
	"procedure", "alarm", "inspection", "shielding",
}

// LexicalEmbedding is a deterministic bag-of-terms embedding over a fixed
// domain vocabulary. It lets the exemplar suggester run without an external
// embedding provider; pass a provider-backed chromem.EmbeddingFunc instead
// when one is configured.
func LexicalEmbedding() chromem.EmbeddingFunc {
	return func(_ context.Context, text string) ([]float32, error) {
		lower := strings.ToLower(text)
		vec := make([]float32, len(lexicalFeatures)+1)
		vec[len(lexicalFeatures)] = 0.1
		for i, f := range lexicalFeatures {
			if strings.Contains(lower, f) {
				vec[i] = 1
			}
		}
		var norm float64
		for _, v := range vec {
			norm += float64(v) * float64(v)
		}
		n := float32(math.Sqrt(norm))
		for i := range vec {
			vec[i] /= n
		}
		return vec, nil
	}
}
