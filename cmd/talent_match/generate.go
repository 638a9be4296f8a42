package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jonathan/talent-match/internal/matching"
	"github.com/jonathan/talent-match/internal/observability"
)

var (
	generateRequirementID string
	generateMaxMatches    int
	generateMinScore      float64
	generateRealTime      bool
	generateResponseHours int
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate matches for one requirement",
	Long:  `Run the full matching pipeline for a stored requirement: pre-filter, score, audit, rank, and persist the resulting matches.`,
	RunE:  runGenerate,
}

func init() {
	generateCmd.Flags().StringVarP(&generateRequirementID, "requirement", "r", "", "Requirement ID to match against (required)")
	generateCmd.Flags().IntVar(&generateMaxMatches, "max-matches", 0, "Cap on returned matches (0 uses the requirement-derived default)")
	generateCmd.Flags().Float64Var(&generateMinScore, "min-score", 0, "Minimum total score in [0,1] (0 uses the requirement-derived default)")
	generateCmd.Flags().BoolVar(&generateRealTime, "real-time", false, "Refresh availability from current bookings before ranking")
	generateCmd.Flags().IntVar(&generateResponseHours, "response-hours", 0, "Response time guarantee in hours")
	_ = generateCmd.MarkFlagRequired("requirement")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	requirementID, err := uuid.Parse(generateRequirementID)
	if err != nil {
		return fmt.Errorf("invalid requirement ID %q: %w", generateRequirementID, err)
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

	requirement, err := database.GetRequirement(ctx, requirementID)
	if err != nil {
		return fmt.Errorf("failed to fetch requirement: %w", err)
	}
	if requirement == nil {
		return fmt.Errorf("requirement %s not found", requirementID)
	}

	printer := observability.NewPrinter(os.Stdout)
	printer.PrintRequirement(requirement)

	result, err := orch.GenerateMatches(ctx, requirementID, matching.GenerateOptions{
		MaxMatches:                 generateMaxMatches,
		MinScore:                   generateMinScore,
		EnableRealTimeAvailability: generateRealTime,
		ResponseTimeGuarantee:      time.Duration(generateResponseHours) * time.Hour,
	})
	if err != nil {
		return fmt.Errorf("match generation failed: %w", err)
	}

	printer.PrintMatches(result.Matches)
	printer.PrintBiasReport(result.BiasReport)

	fmt.Printf("Considered %d candidates, %d eligible after pre-filtering.\n",
		result.Filter.Considered, result.Filter.Eligible)
	return nil
}
