// Package types contains shared scan records used across multiple packages to avoid import cycles.
package types

import (
	"fmt"
	"time"

	orderedmap "github.com/elliotchance/orderedmap/v2"
)

// Deprecated-feature kinds as they appear in the report.
const (
	FeatureStringInterpolation = "string interpolation"
	FeatureFunction            = "function"
)

// DeclaredProperty is a property declared in a class body with an explicit
// visibility modifier (or the legacy `var`).
type DeclaredProperty struct {
	Visibility string // "private", "protected", "public", or "var"
	Name       string
	Line       int // 0-based line of the declaration
}

// DynamicProperty is a property assigned through $this-> without a matching
// declaration anywhere in the class body. PHP 8.2 deprecates creating these.
type DynamicProperty struct {
	Name string
	Line int // 0-based line of the first assignment
}

// DeprecatedFeature records one deprecated-construct hit on a source line.
type DeprecatedFeature struct {
	Kind string // FeatureStringInterpolation or FeatureFunction
	Line int    // 0-based
	Text string // raw line content, reported verbatim
}

// PHPClass is the per-class record built up by the scanner.
//
// The empty class name denotes the placeholder record that collects findings
// from file-level code before the first class declaration.
type PHPClass struct {
	Name    string
	Line    int    // 0-based line of the class declaration
	Extends string // parent class name, empty when the class has no parent

	// Properties and DynamicProperties iterate in first-insertion order;
	// the report depends on that ordering.
	Properties        *orderedmap.OrderedMap[string, DeclaredProperty]
	DynamicProperties *orderedmap.OrderedMap[string, DynamicProperty]

	// ExternalUses holds property names seen accessed through a receiver
	// other than $this while this class was the scan cursor.
	ExternalUses map[string]struct{}
}

// NewPHPClass creates an empty class record at the given declaration line.
func NewPHPClass(name string, line int) *PHPClass {
	return &PHPClass{
		Name:              name,
		Line:              line,
		Properties:        orderedmap.NewOrderedMap[string, DeclaredProperty](),
		DynamicProperties: orderedmap.NewOrderedMap[string, DynamicProperty](),
		ExternalUses:      make(map[string]struct{}),
	}
}

// Declaration returns the class header as it would appear in source:
// "class Name" or "class Name extends Parent".
func (c *PHPClass) Declaration() string {
	if c.Extends != "" {
		return fmt.Sprintf("class %s extends %s", c.Name, c.Extends)
	}
	return fmt.Sprintf("class %s", c.Name)
}

// HasProperty reports whether name is a declared property of this class.
func (c *PHPClass) HasProperty(name string) bool {
	_, ok := c.Properties.Get(name)
	return ok
}

// HasDynamicProperty reports whether name was recorded as a dynamic property.
func (c *PHPClass) HasDynamicProperty(name string) bool {
	_, ok := c.DynamicProperties.Get(name)
	return ok
}

// PHPFile is the per-file scan record: every class found in the file plus
// the deprecated-feature hits in scan order.
type PHPFile struct {
	Path               string
	Classes            *orderedmap.OrderedMap[string, *PHPClass]
	DeprecatedFeatures []DeprecatedFeature
}

// NewPHPFile creates a file record seeded with the placeholder class that
// receives findings until the first class declaration.
func NewPHPFile(path string) *PHPFile {
	f := &PHPFile{
		Path:    path,
		Classes: orderedmap.NewOrderedMap[string, *PHPClass](),
	}
	f.Classes.Set("", NewPHPClass("", 0))
	return f
}

// ClassesWithDynamicProperties returns the classes that still carry dynamic
// properties, in declaration order.
func (f *PHPFile) ClassesWithDynamicProperties() []*PHPClass {
	var result []*PHPClass
	for el := f.Classes.Front(); el != nil; el = el.Next() {
		if el.Value.DynamicProperties.Len() > 0 {
			result = append(result, el.Value)
		}
	}
	return result
}

// ExternalUsedProperties returns the union of externally accessed property
// names across every class in the file.
func (f *PHPFile) ExternalUsedProperties() map[string]struct{} {
	result := make(map[string]struct{})
	for el := f.Classes.Front(); el != nil; el = el.Next() {
		for name := range el.Value.ExternalUses {
			result[name] = struct{}{}
		}
	}
	return result
}

// DiscoveryStats contains statistics about one tree walk.
type DiscoveryStats struct {
	FilesFound  int           // Files matching the configured extensions
	DirsSkipped int           // Directories pruned by exclude patterns
	TotalBytes  int64         // Combined size of the discovered files
	Duration    time.Duration // Time taken for the walk
}

// FileSet is the outcome of a tree walk: the files to scan, in walk order,
// plus statistics about the walk itself.
type FileSet struct {
	Paths []string
	Stats DiscoveryStats
}

// Len returns the number of discovered files.
func (fs *FileSet) Len() int {
	return len(fs.Paths)
}

// ResolveStats contains statistics about one inheritance resolution pass.
type ResolveStats struct {
	ClassesResolved      int // Classes with at least one known ancestor
	PropertiesSuppressed int // Dynamic-property findings explained by an ancestor
}
