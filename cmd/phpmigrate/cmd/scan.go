package cmd

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/gookit/color"
	"github.com/spf13/cobra"

	"github.com/dbsmedya/phpmigrate/internal/logger"
	"github.com/dbsmedya/phpmigrate/internal/preflight"
	"github.com/dbsmedya/phpmigrate/internal/report"
	"github.com/dbsmedya/phpmigrate/internal/resolver"
	"github.com/dbsmedya/phpmigrate/internal/scanner"
	"github.com/dbsmedya/phpmigrate/internal/types"
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Scan a PHP tree and write the migration report",
	Long: `Scan walks the configured root, reads every matching PHP file and
records deprecated constructs and dynamic object properties, then writes
the report artifact.

The scan follows these steps:
  1. Discover PHP files under the scan root
  2. Read each file line by line, recording classes, declared properties,
     dynamic property assignments and deprecated constructs
  3. Resolve inheritance so properties declared in an ancestor are not
     reported as dynamic
  4. Render the report and replace the previous artifact

A file that cannot be read or is not valid UTF-8 aborts the scan.

Example:
  phpmigrate scan --config phpmigrate.yaml --root ./src`,
	RunE: runScan,
}

func init() {
	rootCmd.AddCommand(scanCmd)
}

func runScan(cmd *cobra.Command, args []string) error {
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
	log = log.WithScan(uuid.New().String())

	log.Infow("Starting scan",
		"root", cfg.Scan.Root,
		"config", GetConfigFile(),
	)

	// Run preflight checks
	checker, err := preflight.NewChecker(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to create preflight checker: %w", err)
	}
	if err := checker.RunAllChecks(); err != nil {
		return fmt.Errorf("preflight checks failed: %w", err)
	}

	start := time.Now()

	// Discover files
	discovery, err := scanner.NewDiscovery(&cfg.Scan, log)
	if err != nil {
		return fmt.Errorf("failed to create discovery: %w", err)
	}
	fileSet, err := discovery.Discover()
	if err != nil {
		return fmt.Errorf("file discovery failed: %w", err)
	}

	// Scan every file
	sc := scanner.New(log)
	files := make([]*types.PHPFile, 0, fileSet.Len())
	externalUsed := make(map[string]struct{})
	for _, path := range fileSet.Paths {
		file, err := sc.ScanFile(path)
		if err != nil {
			return fmt.Errorf("scan failed: %w", err)
		}
		files = append(files, file)
		for name := range file.ExternalUsedProperties() {
			externalUsed[name] = struct{}{}
		}
	}

	// Resolve inheritance
	res := resolver.New(files, log)
	resolveStats := res.Resolve()

	// Render and write the report
	content := report.NewBuilder(externalUsed).Build(files)
	if err := report.Write(cfg.Report.Path, content); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	duration := time.Since(start)
	summary := report.Summarize(files)

	log.Infow("Scan complete",
		"files", fileSet.Len(),
		"duration", duration,
	)

	// Display results
	fmt.Printf("\n=== Scan Complete ===\n")
	fmt.Printf("Files Scanned: %d\n", fileSet.Len())
	fmt.Printf("Duration: %s\n", duration.Round(time.Millisecond))
	fmt.Printf("Deprecated Features: %d (in %d files)\n",
		summary.DeprecatedFeatures, summary.FilesWithFeatures)
	fmt.Printf("Dynamic Properties: %d (in %d classes)\n",
		summary.DynamicProperties, summary.ClassesWithDynamic)
	fmt.Printf("Inherited Properties Suppressed: %d\n", resolveStats.PropertiesSuppressed)
	fmt.Printf("Report: %s\n", cfg.Report.Path)

	if summary.DeprecatedFeatures == 0 && summary.ClassesWithDynamic == 0 {
		color.Green.Println("✅ No migration work found")
	} else {
		color.Yellow.Printf("⚠️  %d deprecated features and %d classes need review\n",
			summary.DeprecatedFeatures, summary.ClassesWithDynamic)
	}

	return nil
}
