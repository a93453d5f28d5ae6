package scanner

import (
	"regexp"

	"github.com/dbsmedya/phpmigrate/internal/types"
)

// ClassDecl is a class declaration found on a line.
type ClassDecl struct {
	Name    string
	Extends string // empty when the class has no extends clause
}

// PropertyDecl is an explicit property declaration found on a line.
type PropertyDecl struct {
	Visibility string
	Name       string
}

// MemberAssign is an assignment to a member of $this found on a line.
type MemberAssign struct {
	Name string
}

// MemberAccess is a generic member access found on a line.
type MemberAccess struct {
	Receiver string
	Name     string
}

// Classification is the structural reading of a single line. A line maps to
// at most one construct; all pointers are nil when nothing matched.
type Classification struct {
	Class    *ClassDecl
	Property *PropertyDecl
	Assign   *MemberAssign
	Access   *MemberAccess
}

// LineClassifier decides what a single source line represents. Classify
// returns the structural construct on the line, if any; Deprecations returns
// the deprecated-construct kinds the line contains, independent of its
// classification. Implementations must be deterministic and stateless so
// that a syntax-tree-backed classifier can replace the pattern-based one
// without touching the scan loop.
type LineClassifier interface {
	Classify(line string) Classification
	Deprecations(line string) []string
}

// patternClassifier reads lines with regular expressions. It does not parse
// PHP: a construct inside a string literal or a block comment matches the
// same as real code. Classification precedence when several patterns match
// is class declaration, property declaration, $this assignment, member
// access.
type patternClassifier struct {
	class    *regexp.Regexp
	extends  *regexp.Regexp
	property *regexp.Regexp
	assign   *regexp.Regexp
	access   *regexp.Regexp
	interp   *regexp.Regexp
	funcs    *regexp.Regexp
}

// NewLineClassifier returns the pattern-based classifier.
func NewLineClassifier() LineClassifier {
	return &patternClassifier{
		class:    regexp.MustCompile(`\bclass\s+(\w+)`),
		extends:  regexp.MustCompile(`extends\s+(\w+)`),
		property: regexp.MustCompile(`^\s*(private|protected|public|var) \$(\w+)`),
		assign:   regexp.MustCompile(`\$this\s*->\s*(\w+)\s*=`),
		access:   regexp.MustCompile(`(\w+)\s*->\s*(\w+)`),
		interp:   regexp.MustCompile(`".*?\$\{`),
		funcs:    regexp.MustCompile(`\b(utf8_encode|utf8_decode)\b`),
	}
}

func (c *patternClassifier) Classify(line string) Classification {
	if m := c.class.FindStringSubmatch(line); m != nil {
		decl := &ClassDecl{Name: m[1]}
		if em := c.extends.FindStringSubmatch(line); em != nil {
			decl.Extends = em[1]
		}
		return Classification{Class: decl}
	}
	if m := c.property.FindStringSubmatch(line); m != nil {
		return Classification{Property: &PropertyDecl{Visibility: m[1], Name: m[2]}}
	}
	if m := c.assign.FindStringSubmatch(line); m != nil {
		return Classification{Assign: &MemberAssign{Name: m[1]}}
	}
	if m := c.access.FindStringSubmatch(line); m != nil {
		return Classification{Access: &MemberAccess{Receiver: m[1], Name: m[2]}}
	}
	return Classification{}
}

func (c *patternClassifier) Deprecations(line string) []string {
	var kinds []string
	if c.interp.MatchString(line) {
		kinds = append(kinds, types.FeatureStringInterpolation)
	}
	if c.funcs.MatchString(line) {
		kinds = append(kinds, types.FeatureFunction)
	}
	return kinds
}
