// Package main provides the entry point for the talent matching service.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/talent-match/internal/config"
	"github.com/jonathan/talent-match/internal/observability"
)

var (
	configPath string
	debugFlag  bool
	jsonFlag   bool
)

var rootCmd = &cobra.Command{
	Use:   "talent_match",
	Short: "Talent matching service",
	Long:  "Talent match scores and ranks candidate professionals against structured project requirements, with availability-aware scoring and a fairness audit on every run.",
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a YAML config file")
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&jsonFlag, "json", false, "Log in JSON format")
}

// loadConfig reads the config file and environment, then applies explicitly
// set global flags on top.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if cmd.Flags().Changed("debug") {
		cfg.Debug = debugFlag
	}
	if cmd.Flags().Changed("json") {
		cfg.JSONLog = jsonFlag
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	return observability.NewLogger(cfg.JSONLog, cfg.Debug)
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
