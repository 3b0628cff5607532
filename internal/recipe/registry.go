package recipe

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Registry holds built recipes by id, in registration order.
type Registry struct {
	byID  map[string]*Recipe
	order []string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{byID: make(map[string]*Recipe)}
}

// Register adds r. Registering a second recipe with the same id fails.
func (g *Registry) Register(r *Recipe) error {
	if _, ok := g.byID[r.ID()]; ok {
		return ValidationError{
			Field:   "id",
			Message: fmt.Sprintf("recipe %q is already registered", r.ID()),
			Code:    ErrDuplicateRecipeID,
		}
	}
	g.byID[r.ID()] = r
	g.order = append(g.order, r.ID())
	return nil
}

// Get returns the recipe with id.
func (g *Registry) Get(id string) (*Recipe, bool) {
	r, ok := g.byID[id]
	return r, ok
}

// IDs returns recipe ids in registration order.
func (g *Registry) IDs() []string {
	out := make([]string, len(g.order))
	copy(out, g.order)
	return out
}

// Len returns the number of registered recipes.
func (g *Registry) Len() int {
	return len(g.order)
}

// LoadDir loads every recipe in dir: each *.yaml / *.yml file (sorted by
// name), then the CUE package formed by the *.cue files, if any.
//
// All errors are collected; recipes that load cleanly are registered even
// when others fail.
func LoadDir(dir string) (*Registry, []error) {
	g := NewRegistry()

	entries, err := os.ReadDir(dir)
	if err != nil {
		return g, []error{fmt.Errorf("reading recipe directory: %w", err)}
	}

	var yamlFiles []string
	hasCUE := false
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".yaml", ".yml":
			yamlFiles = append(yamlFiles, filepath.Join(dir, e.Name()))
		case ".cue":
			hasCUE = true
		}
	}
	sort.Strings(yamlFiles)

	var errs []error
	for _, path := range yamlFiles {
		r, err := LoadYAMLFile(path)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if err := g.Register(r); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", path, err))
		}
	}

	if hasCUE {
		defs, err := LoadCUEDir(dir)
		if err != nil {
			errs = append(errs, err)
		}
		for _, d := range defs {
			r, err := Build(d)
			if err != nil {
				errs = append(errs, err)
				continue
			}
			if err := g.Register(r); err != nil {
				errs = append(errs, err)
			}
		}
	}

	if g.Len() == 0 && len(errs) == 0 {
		errs = append(errs, fmt.Errorf("no recipes found in %s", dir))
	}
	return g, errs
}
