// Package config provides configuration structures and loading for phpmigrate.
package config

// Config represents the complete application configuration.
type Config struct {
	Scan    ScanConfig    `yaml:"scan" mapstructure:"scan"`
	Report  ReportConfig  `yaml:"report" mapstructure:"report"`
	Logging LoggingConfig `yaml:"logging" mapstructure:"logging"`
}

// ScanConfig selects the files a scan visits.
type ScanConfig struct {
	Root       string        `yaml:"root" mapstructure:"root"`
	Extensions []string      `yaml:"extensions" mapstructure:"extensions"` // matched against file extensions, e.g. ".php"
	Exclude    ExcludeConfig `yaml:"exclude" mapstructure:"exclude"`
}

// ExcludeConfig holds glob patterns matched against base names during the
// tree walk. A matching directory is pruned with its entire subtree; a
// matching file is skipped.
type ExcludeConfig struct {
	Dirs  []string `yaml:"dirs" mapstructure:"dirs"`
	Files []string `yaml:"files" mapstructure:"files"`
}

// ReportConfig controls the report artifact.
type ReportConfig struct {
	Path string `yaml:"path" mapstructure:"path"`
}

// LoggingConfig represents logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`   // debug, info, warn, error
	Format string `yaml:"format" mapstructure:"format"` // json or text
	Output string `yaml:"output" mapstructure:"output"` // stdout, stderr, or file path
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() *Config {
	return &Config{
		Scan: ScanConfig{
			Root:       ".",
			Extensions: []string{".php"},
		},
		Report: ReportConfig{
			Path: "phpmigrate-report.log",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
			Output: "stdout",
		},
	}
}
