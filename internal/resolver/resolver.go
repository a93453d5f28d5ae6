// Package resolver reconciles dynamic-property findings with inheritance:
// a property assigned on $this in a subclass but declared in an ancestor is
// not dynamic and must not be reported.
package resolver

import (
	"github.com/dbsmedya/phpmigrate/internal/logger"
	"github.com/dbsmedya/phpmigrate/internal/types"
)

// Index maps class names to their records across every scanned file.
type Index map[string]*types.PHPClass

// BuildIndex flattens the classes of all files into one name-keyed index.
// On a name collision the record from the later file wins. The per-file
// placeholder record is left out.
func BuildIndex(files []*types.PHPFile) Index {
	index := make(Index)
	for _, file := range files {
		for el := file.Classes.Front(); el != nil; el = el.Next() {
			index[el.Key] = el.Value
		}
	}
	delete(index, "")
	return index
}

// Resolver walks extends chains over a cross-file class index and removes
// dynamic-property findings that an ancestor already declares.
type Resolver struct {
	files  []*types.PHPFile
	index  Index
	logger *logger.Logger
}

// New creates a Resolver over the classes of the given files.
func New(files []*types.PHPFile, log *logger.Logger) *Resolver {
	if log == nil {
		log = logger.NewDefault()
	}
	return &Resolver{
		files:  files,
		index:  BuildIndex(files),
		logger: log,
	}
}

// Index returns the cross-file class index.
func (r *Resolver) Index() Index {
	return r.index
}

// Resolve walks every class's extends chain and deletes dynamic properties
// that a reachable ancestor declares. Each distinct ancestor is processed at
// most once per class, so unknown parents, self-extension and cyclic chains
// all terminate. The pass mutates the class records in place and is
// idempotent.
func (r *Resolver) Resolve() *types.ResolveStats {
	stats := &types.ResolveStats{}

	for _, file := range r.files {
		for el := file.Classes.Front(); el != nil; el = el.Next() {
			r.resolveClass(el.Value, stats)
		}
	}

	r.logger.Debugw("Inheritance resolution complete",
		"classes_resolved", stats.ClassesResolved,
		"properties_suppressed", stats.PropertiesSuppressed,
	)

	return stats
}

func (r *Resolver) resolveClass(class *types.PHPClass, stats *types.ResolveStats) {
	visited := make(map[string]bool)

	parent, known := r.index[class.Extends]
	if known {
		stats.ClassesResolved++
	}

	for known && !visited[parent.Name] {
		visited[parent.Name] = true

		for _, name := range class.DynamicProperties.Keys() {
			if parent.HasProperty(name) {
				class.DynamicProperties.Delete(name)
				stats.PropertiesSuppressed++
				r.logger.Debugw("Suppressed inherited property",
					"class", class.Name,
					"property", name,
					"declared_in", parent.Name,
				)
			}
		}

		parent, known = r.index[parent.Extends]
	}
}
