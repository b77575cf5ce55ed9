package rooms

import (
	"fmt"
	"slices"
)

// MapCatalog is an in-memory Catalog.
type MapCatalog map[string]*Definition

// Definition returns the definition of id.
func (m MapCatalog) Definition(id string) (*Definition, error) {
	d, ok := m[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownRoom, id)
	}
	return d, nil
}

// IDs returns every room ID in sorted order.
func (m MapCatalog) IDs() []string {
	ids := make([]string, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}
