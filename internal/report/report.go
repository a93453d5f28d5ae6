// Package report renders and writes the migration report artifact.
package report

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/dbsmedya/phpmigrate/internal/types"
)

// Builder renders the report text from finalized file records. The report
// has two sections: deprecated constructs per file, then dynamic properties
// per class with suggested declarations.
type Builder struct {
	externalUsed map[string]struct{}
}

// NewBuilder creates a Builder. externalUsed is the union of member names
// accessed on receivers other than $this across the whole scan; it decides
// the suggested visibility of each dynamic property.
func NewBuilder(externalUsed map[string]struct{}) *Builder {
	if externalUsed == nil {
		externalUsed = make(map[string]struct{})
	}
	return &Builder{externalUsed: externalUsed}
}

// Build renders the full report for the given files, in scan order. Line
// numbers are one-based in the output.
func (b *Builder) Build(files []*types.PHPFile) string {
	var result []string

	for _, file := range files {
		if len(file.DeprecatedFeatures) == 0 {
			continue
		}
		result = append(result, absolutePath(file.Path))
		for _, feature := range file.DeprecatedFeatures {
			result = append(result, fmt.Sprintf("    %d: %s %s", feature.Line+1, feature.Kind, feature.Text))
		}
		result = append(result, "")
	}

	for _, file := range files {
		classes := file.ClassesWithDynamicProperties()
		if len(classes) == 0 {
			continue
		}

		for _, class := range classes {
			result = append(result, fmt.Sprintf("%s -- %s:%d", class.Declaration(), absolutePath(file.Path), class.Line+1))

			for el := class.DynamicProperties.Front(); el != nil; el = el.Next() {
				result = append(result, fmt.Sprintf("    %d: $%s", el.Value.Line+1, el.Key))
			}

			result = append(result, "")
			for el := class.DynamicProperties.Front(); el != nil; el = el.Next() {
				visibility := "private"
				if _, used := b.externalUsed[el.Key]; used {
					visibility = "public"
				}
				result = append(result, fmt.Sprintf("    %s $%s;", visibility, el.Key))
			}
			result = append(result, "")
		}
		result = append(result, "")
	}

	return strings.Join(result, "\n")
}

// Summary counts what a report contains.
type Summary struct {
	FilesWithFeatures  int
	DeprecatedFeatures int
	ClassesWithDynamic int
	DynamicProperties  int
}

// Summarize tallies the findings of the given files.
func Summarize(files []*types.PHPFile) Summary {
	var s Summary
	for _, file := range files {
		if len(file.DeprecatedFeatures) > 0 {
			s.FilesWithFeatures++
			s.DeprecatedFeatures += len(file.DeprecatedFeatures)
		}
		for _, class := range file.ClassesWithDynamicProperties() {
			s.ClassesWithDynamic++
			s.DynamicProperties += class.DynamicProperties.Len()
		}
	}
	return s
}

// absolutePath resolves path for display. Findings are reported with
// absolute paths so the report stays usable from any directory.
func absolutePath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return abs
}
