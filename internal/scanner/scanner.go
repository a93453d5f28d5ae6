// Package scanner discovers PHP source files and performs the line-oriented
// scan that records class structure and deprecated constructs.
package scanner

import (
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/dbsmedya/phpmigrate/internal/logger"
	"github.com/dbsmedya/phpmigrate/internal/types"
)

// Scanner reads PHP source files line by line and builds one PHPFile record
// per file: every class declaration, declared property, dynamic property
// assignment, member access and deprecated construct the classifier reports.
type Scanner struct {
	classifier LineClassifier
	logger     *logger.Logger
}

// New creates a Scanner backed by the pattern-based line classifier.
func New(log *logger.Logger) *Scanner {
	return NewWithClassifier(NewLineClassifier(), log)
}

// NewWithClassifier creates a Scanner with a caller-supplied classifier.
func NewWithClassifier(classifier LineClassifier, log *logger.Logger) *Scanner {
	if log == nil {
		log = logger.NewDefault()
	}
	return &Scanner{
		classifier: classifier,
		logger:     log,
	}
}

// ScanFile reads path from disk and scans it. The file must decode as UTF-8;
// a read or decode failure aborts the scan, there is no per-file recovery.
func (s *Scanner) ScanFile(path string) (*types.PHPFile, error) {
	s.logger.Infof("Processing %s", path)

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if !utf8.Valid(content) {
		return nil, fmt.Errorf("failed to decode %s: not valid UTF-8", path)
	}

	return s.Scan(path, string(content)), nil
}

// Scan classifies every line of content and returns the resulting record.
// Line numbers are zero-based; rendering adds one.
func (s *Scanner) Scan(path, content string) *types.PHPFile {
	file := types.NewPHPFile(path)

	// The placeholder accumulates findings seen before the first class
	// declaration. It stays registered so top-level code reports too.
	current, _ := file.Classes.Get("")

	for nr, line := range splitLines(content) {
		if strings.HasPrefix(strings.TrimSpace(line), "//") {
			continue
		}

		cl := s.classifier.Classify(line)
		switch {
		case cl.Class != nil:
			current = types.NewPHPClass(cl.Class.Name, nr)
			current.Extends = cl.Class.Extends
			file.Classes.Set(current.Name, current)

		case cl.Property != nil:
			current.Properties.Set(cl.Property.Name, types.DeclaredProperty{
				Visibility: cl.Property.Visibility,
				Name:       cl.Property.Name,
				Line:       nr,
			})

		case cl.Assign != nil:
			name := cl.Assign.Name
			if !current.HasProperty(name) && !current.HasDynamicProperty(name) {
				current.DynamicProperties.Set(name, types.DynamicProperty{
					Name: name,
					Line: nr,
				})
			}

		case cl.Access != nil:
			if cl.Access.Receiver != "this" {
				current.ExternalUses[cl.Access.Name] = struct{}{}
			}
		}

		for _, kind := range s.classifier.Deprecations(line) {
			file.DeprecatedFeatures = append(file.DeprecatedFeatures, types.DeprecatedFeature{
				Kind: kind,
				Line: nr,
				Text: line,
			})
		}
	}

	return file
}

// splitLines splits content on newlines, tolerating CRLF endings. A trailing
// newline does not produce an empty final line.
func splitLines(content string) []string {
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}
	return lines
}
