package services

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"github.com/fyrsmithlabs/screend/internal/config"
	"github.com/fyrsmithlabs/screend/internal/extraction"
	"github.com/fyrsmithlabs/screend/internal/patterns"
	"github.com/fyrsmithlabs/screend/internal/quality"
	"github.com/fyrsmithlabs/screend/internal/reasoner"
	"github.com/fyrsmithlabs/screend/internal/screening"
)

// Registry provides access to all screend services.
// Use accessor methods to retrieve individual services.
type Registry interface {
	Screening() *screening.Service
	Patterns() *patterns.Library
	Reasoner() reasoner.Reasoner
	Metrics() *screening.Metrics
	Gatherer() prometheus.Gatherer
}

// registry is the concrete implementation of Registry.
type registry struct {
	screening *screening.Service
	patterns  *patterns.Library
	reasoner  reasoner.Reasoner
	metrics   *screening.Metrics
	gatherer  prometheus.Gatherer
}

// Build constructs the full service graph from configuration.
//
// The reasoner client is created per cfg.Reasoner.Provider ("disabled"
// yields a client whose calls always fail, routing every request through
// the keyword fallback). The exemplar suggester is seeded in memory with
// the default corpus and a lexical embedding.
func Build(ctx context.Context, cfg *config.Config, logger *zap.Logger) (Registry, error) {
	lib := patterns.New()

	rsn, err := reasoner.New(cfg.Reasoner.Provider, reasoner.Config{
		Model:             cfg.Reasoner.Model,
		APIKey:            cfg.Reasoner.APIKey.Value(),
		BaseURL:           cfg.Reasoner.BaseURL,
		MaxTokens:         cfg.Reasoner.MaxTokens,
		Timeout:           int(cfg.Reasoner.Timeout.Duration().Seconds()),
		RequestsPerSecond: cfg.Reasoner.RequestsPerSecond,
	})
	if err != nil {
		return nil, fmt.Errorf("create reasoner: %w", err)
	}

	var suggester reasoner.Suggester
	if cfg.Suggester.Enabled {
		s, err := reasoner.NewExemplarSuggester(ctx, nil, reasoner.LexicalEmbedding(), cfg.Suggester.TopK, logger.Named("suggester"))
		if err != nil {
			return nil, fmt.Errorf("create suggester: %w", err)
		}
		suggester = s
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	metrics := screening.NewMetrics(reg)

	svc := screening.NewService(screening.Options{
		Extractor: extraction.NewFieldExtractor(lib, logger.Named("extract")),
		Signals:   extraction.NewSignalDetector(lib),
		Scorer:    quality.NewScorer(lib),
		Reasoner:  rsn,
		Suggester: suggester,
		Config: screening.Config{
			ReasonTimeout:           cfg.Reasoner.Timeout.Duration(),
			ReasonRetries:           cfg.Reasoner.Retries,
			PreferNegativeAssertion: cfg.Screening.PreferNegativeAssertion,
		},
		Logger:  logger.Named("screening"),
		Metrics: metrics,
	})

	return &registry{
		screening: svc,
		patterns:  lib,
		reasoner:  rsn,
		metrics:   metrics,
		gatherer:  reg,
	}, nil
}

func (r *registry) Screening() *screening.Service { return r.screening }
func (r *registry) Patterns() *patterns.Library   { return r.patterns }
func (r *registry) Reasoner() reasoner.Reasoner   { return r.reasoner }
func (r *registry) Metrics() *screening.Metrics   { return r.metrics }
func (r *registry) Gatherer() prometheus.Gatherer { return r.gatherer }
