package config

import (
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	// Test scan defaults
	if cfg.Scan.Root != "." {
		t.Errorf("expected scan root '.', got %s", cfg.Scan.Root)
	}
	if len(cfg.Scan.Extensions) != 1 || cfg.Scan.Extensions[0] != ".php" {
		t.Errorf("expected extensions ['.php'], got %v", cfg.Scan.Extensions)
	}
	if len(cfg.Scan.Exclude.Dirs) != 0 {
		t.Errorf("expected no excluded dirs by default, got %v", cfg.Scan.Exclude.Dirs)
	}
	if len(cfg.Scan.Exclude.Files) != 0 {
		t.Errorf("expected no excluded files by default, got %v", cfg.Scan.Exclude.Files)
	}

	// Test report defaults
	if cfg.Report.Path != "phpmigrate-report.log" {
		t.Errorf("expected report path 'phpmigrate-report.log', got %s", cfg.Report.Path)
	}

	// Test logging defaults
	if cfg.Logging.Level != "info" {
		t.Errorf("expected logging level 'info', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.Format != "text" {
		t.Errorf("expected logging format 'text', got %s", cfg.Logging.Format)
	}
	if cfg.Logging.Output != "stdout" {
		t.Errorf("expected logging output 'stdout', got %s", cfg.Logging.Output)
	}
}

func TestExcludeConfig(t *testing.T) {
	// Test that exclude patterns can be stored per kind
	cfg := &Config{
		Scan: ScanConfig{
			Root:       "/srv/app",
			Extensions: []string{".php", ".inc"},
			Exclude: ExcludeConfig{
				Dirs:  []string{"vendor", "node_modules", ".*"},
				Files: []string{"*_test.php"},
			},
		},
	}

	if len(cfg.Scan.Exclude.Dirs) != 3 {
		t.Errorf("expected 3 excluded dirs, got %d", len(cfg.Scan.Exclude.Dirs))
	}
	if len(cfg.Scan.Exclude.Files) != 1 {
		t.Errorf("expected 1 excluded file pattern, got %d", len(cfg.Scan.Exclude.Files))
	}
	if cfg.Scan.Exclude.Dirs[0] != "vendor" {
		t.Errorf("expected first excluded dir 'vendor', got %s", cfg.Scan.Exclude.Dirs[0])
	}
}
