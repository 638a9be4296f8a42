package main

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jonathan/talent-match/internal/observability"
)

var statsRequirementID string

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show match statistics for one requirement",
	RunE:  runStats,
}

func init() {
	statsCmd.Flags().StringVarP(&statsRequirementID, "requirement", "r", "", "Requirement ID (required)")
	_ = statsCmd.MarkFlagRequired("requirement")
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	requirementID, err := uuid.Parse(statsRequirementID)
	if err != nil {
		return fmt.Errorf("invalid requirement ID %q: %w", statsRequirementID, err)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx := context.Background()
	database, orch, err := buildPipeline(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer database.Close()

	stats, err := orch.GetStatistics(ctx, requirementID)
	if err != nil {
		return fmt.Errorf("failed to compute statistics: %w", err)
	}

	observability.NewPrinter(os.Stdout).PrintStatistics(stats)
	return nil
}
