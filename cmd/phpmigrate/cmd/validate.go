package cmd

import (
	"fmt"

	"github.com/gookit/color"
	"github.com/spf13/cobra"

	"github.com/dbsmedya/phpmigrate/internal/logger"
	"github.com/dbsmedya/phpmigrate/internal/preflight"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate configuration and run preflight checks",
	Long: `Validate checks the configuration file and verifies that the
environment can support a scan.

Checks performed:
  - Configuration syntax and required fields
  - Scan root exists and is a directory
  - Report destination directory is writable
  - Exclude glob patterns compile

Example:
  phpmigrate validate --config phpmigrate.yaml`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	// Load configuration
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Apply CLI overrides
	overrides := GetCLIOverrides()
	cfg.ApplyOverrides(overrides.LogLevel, overrides.LogFormat,
		overrides.Root, overrides.ReportPath)

	// Initialize logger
	log, err := logger.New(&cfg.Logging)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	log.Info("Starting validation checks...")

	fmt.Printf("\n=== Configuration Validation ===\n")
	fmt.Printf("Config file: %s\n", GetConfigFile())
	fmt.Printf("Scan root: %s\n", cfg.Scan.Root)
	fmt.Printf("Report path: %s\n\n", cfg.Report.Path)

	hasErrors := false

	// Field validation
	if err := cfg.Validate(); err != nil {
		color.Red.Printf("❌ %v\n", err)
		hasErrors = true
	} else {
		color.Green.Println("✅ configuration fields")
	}

	// Preflight checks against the environment
	checker, err := preflight.NewChecker(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to create preflight checker: %w", err)
	}

	checks := []struct {
		name string
		run  func() error
	}{
		{"scan root", checker.ValidateScanRoot},
		{"report path", checker.ValidateReportPath},
		{"exclude patterns", checker.ValidateExcludePatterns},
	}
	for _, check := range checks {
		if err := check.run(); err != nil {
			color.Red.Printf("❌ %v\n", err)
			hasErrors = true
			continue
		}
		color.Green.Printf("✅ %s\n", check.name)
	}

	if hasErrors {
		return fmt.Errorf("validation failed")
	}

	fmt.Println("\n=== Validation Complete ===")
	color.Green.Println("✅ Configuration validated successfully")
	return nil
}
