// Package preflight provides environment checks that run before a scan.
package preflight

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gobwas/glob"

	"github.com/dbsmedya/phpmigrate/internal/config"
	"github.com/dbsmedya/phpmigrate/internal/logger"
)

// CheckError represents a preflight check failure.
type CheckError struct {
	Check   string
	Message string
}

func (e *CheckError) Error() string {
	return fmt.Sprintf("%s: %s", e.Check, e.Message)
}

// Checker verifies that the environment can support a scan: the root is
// readable, the report destination is writable and the exclude patterns
// compile.
type Checker struct {
	cfg    *config.Config
	logger *logger.Logger
}

// NewChecker creates a new preflight checker.
func NewChecker(cfg *config.Config, log *logger.Logger) (*Checker, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is nil")
	}
	if log == nil {
		log = logger.NewDefault()
	}

	return &Checker{
		cfg:    cfg,
		logger: log,
	}, nil
}

// RunAllChecks runs all preflight checks and fails on the first problem.
func (c *Checker) RunAllChecks() error {
	c.logger.Info("Running preflight checks...")

	if err := c.ValidateScanRoot(); err != nil {
		return err
	}

	if err := c.ValidateReportPath(); err != nil {
		return err
	}

	if err := c.ValidateExcludePatterns(); err != nil {
		return err
	}

	c.logger.Info("All preflight checks PASSED")
	return nil
}

// ValidateScanRoot checks that the scan root exists and is a directory.
func (c *Checker) ValidateScanRoot() error {
	c.logger.Debug("Checking scan root...")

	info, err := os.Stat(c.cfg.Scan.Root)
	if err != nil {
		if os.IsNotExist(err) {
			return &CheckError{
				Check:   "scan root",
				Message: fmt.Sprintf("%s does not exist", c.cfg.Scan.Root),
			}
		}
		return &CheckError{
			Check:   "scan root",
			Message: err.Error(),
		}
	}
	if !info.IsDir() {
		return &CheckError{
			Check:   "scan root",
			Message: fmt.Sprintf("%s is not a directory", c.cfg.Scan.Root),
		}
	}

	return nil
}

// ValidateReportPath checks that the report destination directory exists
// and accepts writes.
func (c *Checker) ValidateReportPath() error {
	c.logger.Debug("Checking report path...")

	dir := filepath.Dir(c.cfg.Report.Path)
	info, err := os.Stat(dir)
	if err != nil {
		return &CheckError{
			Check:   "report path",
			Message: fmt.Sprintf("directory %s does not exist", dir),
		}
	}
	if !info.IsDir() {
		return &CheckError{
			Check:   "report path",
			Message: fmt.Sprintf("%s is not a directory", dir),
		}
	}

	probe, err := os.CreateTemp(dir, ".phpmigrate-*")
	if err != nil {
		return &CheckError{
			Check:   "report path",
			Message: fmt.Sprintf("directory %s is not writable", dir),
		}
	}
	probe.Close()
	os.Remove(probe.Name())

	return nil
}

// ValidateExcludePatterns checks that every exclude glob compiles.
func (c *Checker) ValidateExcludePatterns() error {
	c.logger.Debug("Checking exclude patterns...")

	for _, pattern := range c.cfg.Scan.Exclude.Dirs {
		if _, err := glob.Compile(pattern); err != nil {
			return &CheckError{
				Check:   "exclude patterns",
				Message: fmt.Sprintf("invalid directory pattern %q", pattern),
			}
		}
	}
	for _, pattern := range c.cfg.Scan.Exclude.Files {
		if _, err := glob.Compile(pattern); err != nil {
			return &CheckError{
				Check:   "exclude patterns",
				Message: fmt.Sprintf("invalid file pattern %q", pattern),
			}
		}
	}

	return nil
}
