package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dbsmedya/phpmigrate/internal/logger"
	"github.com/dbsmedya/phpmigrate/internal/scanner"
)

var listFilesCmd = &cobra.Command{
	Use:   "list-files",
	Short: "List the files a scan would process",
	Long: `List-files walks the configured root and prints every file a scan
would read, honoring extension filters and exclude patterns, without
reading any file contents.

Example:
  phpmigrate list-files --config phpmigrate.yaml --root ./src`,
	RunE: runListFiles,
}

func init() {
	rootCmd.AddCommand(listFilesCmd)
}

func runListFiles(cmd *cobra.Command, args []string) error {
	// Load configuration
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Apply CLI overrides
	overrides := GetCLIOverrides()
	cfg.ApplyOverrides(overrides.LogLevel, overrides.LogFormat,
		overrides.Root, overrides.ReportPath)

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	// Initialize logger
	log, err := logger.New(&cfg.Logging)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	// Discover files
	discovery, err := scanner.NewDiscovery(&cfg.Scan, log)
	if err != nil {
		return fmt.Errorf("failed to create discovery: %w", err)
	}
	fileSet, err := discovery.Discover()
	if err != nil {
		return fmt.Errorf("file discovery failed: %w", err)
	}

	if fileSet.Len() == 0 {
		cmd.Printf("No files found under %s\n", cfg.Scan.Root)
		return nil
	}

	cmd.Printf("Files discovered under %s:\n\n", cfg.Scan.Root)

	for i, path := range fileSet.Paths {
		cmd.Printf("%d. %s\n", i+1, path)
	}

	cmd.Printf("\nTotal: %d file(s), %d bytes\n", fileSet.Len(), fileSet.Stats.TotalBytes)
	if fileSet.Stats.DirsSkipped > 0 {
		cmd.Printf("Directories skipped: %d\n", fileSet.Stats.DirsSkipped)
	}

	return nil
}
