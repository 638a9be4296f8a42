package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/jonathan/talent-match/internal/availability"
	"github.com/jonathan/talent-match/internal/config"
	"github.com/jonathan/talent-match/internal/db"
	"github.com/jonathan/talent-match/internal/fairness"
	"github.com/jonathan/talent-match/internal/matching"
	"github.com/jonathan/talent-match/internal/scoring"
	"github.com/jonathan/talent-match/internal/skillmatch"
	"github.com/jonathan/talent-match/internal/taxonomy"
	"github.com/jonathan/talent-match/internal/weights"
)

// buildPipeline connects to the database and assembles the matching
// orchestrator. The caller owns the returned database handle.
func buildPipeline(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*db.DB, *matching.Orchestrator, error) {
	if cfg.DatabaseURL == "" {
		return nil, nil, fmt.Errorf("database URL is required (TALENT_MATCH_DATABASE_URL or config file)")
	}

	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	tax := taxonomy.Default()
	if cfg.TaxonomyPath != "" {
		tax, err = taxonomy.Load(cfg.TaxonomyPath, cfg.TaxonomySchemaPath)
		if err != nil {
			database.Close()
			return nil, nil, fmt.Errorf("failed to load taxonomy: %w", err)
		}
	}

	orch := matching.NewOrchestrator(matching.Deps{
		Requirements: database,
		Talents:      database,
		Bookings:     database,
		Store:        database,
		Scorer:       scoring.NewScorer(skillmatch.NewResolver(tax), availability.NewEngine()),
		Policy:       weights.NewContextPolicy(),
		Auditor:      fairness.NewAuditor(nil),
		Logger:       logger,
		Concurrency:  cfg.Workers,
		PoolCap:      cfg.MaxPoolSize,
	})
	return database, orch, nil
}
