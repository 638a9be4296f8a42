package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/talent-match/internal/db"
)

var purgeCmd = &cobra.Command{
	Use:   "purge",
	Short: "Delete expired pending matches",
	Long: `Delete pending matches past their expiry. Expired matches are already
invisible to reads; this reclaims the rows. Intended to run periodically,
e.g. from cron.`,
	RunE: runPurge,
}

func init() {
	rootCmd.AddCommand(purgeCmd)
}

func runPurge(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("database URL is required (TALENT_MATCH_DATABASE_URL or config file)")
	}

	ctx := context.Background()
	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.Close()

	n, err := database.PurgeExpiredMatches(ctx)
	if err != nil {
		return fmt.Errorf("failed to purge expired matches: %w", err)
	}

	fmt.Printf("Purged %d expired matches.\n", n)
	return nil
}
