package resolver

import "github.com/dbsmedya/phpmigrate/internal/types"

// Hierarchy is the parent-to-children view over a class index, used to
// render the inheritance tree. Ordering follows first declaration across
// the scan, so output is stable between runs.
type Hierarchy struct {
	index    Index
	order    []string
	children map[string][]string
}

// BuildHierarchy creates a Hierarchy over the classes of the given files.
func BuildHierarchy(files []*types.PHPFile) *Hierarchy {
	h := &Hierarchy{
		index:    BuildIndex(files),
		children: make(map[string][]string),
	}

	seen := make(map[string]bool)
	for _, file := range files {
		for el := file.Classes.Front(); el != nil; el = el.Next() {
			if el.Key == "" || seen[el.Key] {
				continue
			}
			seen[el.Key] = true
			h.order = append(h.order, el.Key)
		}
	}

	for _, name := range h.order {
		if parent := h.index[name].Extends; parent != "" {
			h.children[parent] = append(h.children[parent], name)
		}
	}

	return h
}

// Len returns the number of classes.
func (h *Hierarchy) Len() int {
	return len(h.order)
}

// Order returns all class names in first-declaration order.
func (h *Hierarchy) Order() []string {
	return h.order
}

// Class returns the record registered under name.
func (h *Hierarchy) Class(name string) (*types.PHPClass, bool) {
	class, ok := h.index[name]
	return class, ok
}

// Children returns the direct subclasses of name, in declaration order.
func (h *Hierarchy) Children(name string) []string {
	return h.children[name]
}

// Roots returns classes that extend nothing or extend a class outside the
// scan, in declaration order.
func (h *Hierarchy) Roots() []string {
	var roots []string
	for _, name := range h.order {
		parent := h.index[name].Extends
		if parent == "" {
			roots = append(roots, name)
			continue
		}
		if _, known := h.index[parent]; !known {
			roots = append(roots, name)
		}
	}
	return roots
}
