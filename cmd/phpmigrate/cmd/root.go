package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/dbsmedya/phpmigrate/internal/config"
)

// Version information (set via ldflags at build time)
var (
	Version = "0.0.1-dev"
	Commit  = "unknown"
)

// CLI flags that override config file values
var (
	cfgFile    string
	logLevel   string
	logFormat  string
	scanRoot   string
	reportPath string
)

var rootCmd = &cobra.Command{
	Use:   "phpmigrate",
	Short: "PHP 8.2 Migration Scanner",
	Long: `A CLI tool that scans PHP codebases for constructs that break or
misbehave under PHP 8.2 and prepares a migration worklist.

Features:
  - Detects deprecated ${} string interpolation and utf8_encode/utf8_decode
  - Finds dynamic object properties and suggests declarations
  - Resolves inheritance so inherited properties are not flagged
  - Writes a single report artifact, replaced on every run`,
	Version: Version,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	// Config file flag
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "phpmigrate.yaml",
		"Path to configuration file")

	// Logging overrides
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "",
		"Override log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "",
		"Override log format (json, text)")

	// Scan overrides
	rootCmd.PersistentFlags().StringVar(&scanRoot, "root", "",
		"Override scan root directory")
	rootCmd.PersistentFlags().StringVar(&reportPath, "report", "",
		"Override report output path")
}

// GetConfigFile returns the config file path
func GetConfigFile() string {
	return cfgFile
}

// loadConfig loads the configuration honoring the --config flag: an
// explicitly given file must exist, while the default file name is optional
// and falls back to built-in defaults when absent.
func loadConfig() (*config.Config, error) {
	if rootCmd.PersistentFlags().Changed("config") {
		return config.Load(cfgFile)
	}
	return config.LoadOrDefault(cfgFile)
}

// CLIOverrides contains flag values that override config file settings
type CLIOverrides struct {
	LogLevel   string
	LogFormat  string
	Root       string
	ReportPath string
}

// GetCLIOverrides returns the CLI flag override values
func GetCLIOverrides() CLIOverrides {
	return CLIOverrides{
		LogLevel:   logLevel,
		LogFormat:  logFormat,
		Root:       scanRoot,
		ReportPath: reportPath,
	}
}
