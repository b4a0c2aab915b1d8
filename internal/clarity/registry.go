package clarity

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"strings"
)

// ErrInvalidRegistry is returned by NewRegistry for a malformed category table.
var ErrInvalidRegistry = errors.New("invalid category registry")

// Registry is a validated, read-only category table. It is safe for
// concurrent use.
type Registry struct {
	byID       map[string]int
	declared   []Category // ascending Order
	byPriority []Category // issue-bearing only, ascending Priority
}

var defaultRegistry = mustRegistry(categoryDefs())

// DefaultRegistry returns the built-in caregiving category table.
func DefaultRegistry() *Registry {
	return defaultRegistry
}

func mustRegistry(defs []Category) *Registry {
	reg, err := NewRegistry(defs)
	if err != nil {
		panic(err)
	}
	return reg
}

// NewRegistry validates defs and builds a registry from a private copy of them.
func NewRegistry(defs []Category) (*Registry, error) {
	if len(defs) == 0 {
		return nil, fmt.Errorf("%w: no categories", ErrInvalidRegistry)
	}

	reg := &Registry{
		byID:     make(map[string]int, len(defs)),
		declared: make([]Category, 0, len(defs)),
	}
	orders := make(map[int]string, len(defs))
	priorities := make(map[int]string, len(defs))

	for i, d := range defs {
		if err := validateCategory(d); err != nil {
			return nil, fmt.Errorf("%w: category %d: %v", ErrInvalidRegistry, i, err)
		}
		if _, dup := reg.byID[d.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate category id %q", ErrInvalidRegistry, d.ID)
		}
		if other, dup := orders[d.Order]; dup {
			return nil, fmt.Errorf("%w: categories %q and %q share order %d", ErrInvalidRegistry, other, d.ID, d.Order)
		}
		orders[d.Order] = d.ID
		if d.NamesIssue() {
			if other, dup := priorities[d.Priority]; dup {
				return nil, fmt.Errorf("%w: categories %q and %q share priority %d", ErrInvalidRegistry, other, d.ID, d.Priority)
			}
			priorities[d.Priority] = d.ID
		}
		reg.byID[d.ID] = -1
		reg.declared = append(reg.declared, d.clone())
	}

	slices.SortFunc(reg.declared, func(a, b Category) int {
		return cmp.Compare(a.Order, b.Order)
	})
	for i, c := range reg.declared {
		reg.byID[c.ID] = i
		if c.NamesIssue() {
			reg.byPriority = append(reg.byPriority, c)
		}
	}
	slices.SortFunc(reg.byPriority, func(a, b Category) int {
		return cmp.Compare(a.Priority, b.Priority)
	})

	return reg, nil
}

func validateCategory(c Category) error {
	if strings.TrimSpace(c.ID) == "" {
		return errors.New("empty id")
	}
	if len(c.Phrases) == 0 {
		return fmt.Errorf("%q has no phrases", c.ID)
	}
	for _, p := range append(append([]string(nil), c.Phrases...), c.Requires...) {
		if p == "" {
			return fmt.Errorf("%q has an empty phrase", c.ID)
		}
		if p != strings.ToLower(p) {
			return fmt.Errorf("%q phrase %q is not lower-case", c.ID, p)
		}
	}
	if c.Issue == "" && c.Constraint == "" && len(c.Choices) == 0 {
		return fmt.Errorf("%q contributes no issue, constraint or choices", c.ID)
	}
	for _, ch := range c.Choices {
		if strings.TrimSpace(ch) == "" {
			return fmt.Errorf("%q has an empty choice", c.ID)
		}
	}
	return nil
}

// Categories returns a copy of the table in declaration order.
func (r *Registry) Categories() []Category {
	out := make([]Category, 0, len(r.declared))
	for _, c := range r.declared {
		out = append(out, c.clone())
	}
	return out
}

// Lookup returns the category with the given id.
func (r *Registry) Lookup(id string) (Category, bool) {
	i, ok := r.byID[id]
	if !ok {
		return Category{}, false
	}
	return r.declared[i].clone(), true
}

// Len is the number of categories in the registry.
func (r *Registry) Len() int { return len(r.declared) }

// Matched returns the ids of every category triggered by normalized text, in
// declaration order.
func (r *Registry) Matched(normalized string) []string {
	var ids []string
	for _, c := range allMatches(r.declared, normalized) {
		ids = append(ids, c.ID)
	}
	return ids
}
