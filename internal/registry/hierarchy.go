package registry

import (
	"fmt"
)

// Edge declares that Child derives from Parent.
type Edge struct {
	Child  string
	Parent string
}

// Hierarchy is an in-memory TypeRegistry built from a flat list of type
// names and derivation edges. It is immutable after construction.
type Hierarchy struct {
	norm     Normalization
	children map[string][]string // canonical parent -> canonical children
	known    map[string]string   // canonical name -> name as registered
}

// NewHierarchy builds a hierarchy from the given types and edges.
// Every edge endpoint must appear in types, multiple inheritance is not
// allowed (one parent per child), and cycles are rejected.
func NewHierarchy(norm Normalization, types []string, edges []Edge) (*Hierarchy, error) {
	h := &Hierarchy{
		norm:     norm,
		children: make(map[string][]string),
		known:    make(map[string]string, len(types)),
	}

	for _, name := range types {
		if name == "" {
			return nil, fmt.Errorf("type name is required")
		}
		canon := norm.Canon(name)
		if _, exists := h.known[canon]; exists {
			return nil, fmt.Errorf("duplicate type: %s", name)
		}
		h.known[canon] = name
	}

	parents := make(map[string]string)
	for _, edge := range edges {
		child := norm.Canon(edge.Child)
		parent := norm.Canon(edge.Parent)
		if _, ok := h.known[child]; !ok {
			return nil, fmt.Errorf("edge child %q: %w", edge.Child, ErrUnknownType)
		}
		if _, ok := h.known[parent]; !ok {
			return nil, fmt.Errorf("edge parent %q: %w", edge.Parent, ErrUnknownType)
		}
		if existing, ok := parents[child]; ok {
			return nil, fmt.Errorf("type %q has two parents: %q and %q", edge.Child, existing, edge.Parent)
		}
		parents[child] = parent
		h.children[parent] = append(h.children[parent], child)
	}

	// A child with an ancestor chain leading back to itself makes the
	// subtype closure undefined; walk each chain to rule that out.
	for child := range parents {
		seen := map[string]struct{}{child: {}}
		for current := child; ; {
			parent, ok := parents[current]
			if !ok {
				break
			}
			if _, looped := seen[parent]; looped {
				return nil, fmt.Errorf("type hierarchy contains a cycle through %q", parent)
			}
			seen[parent] = struct{}{}
			current = parent
		}
	}

	return h, nil
}

// SubtypesOf returns typeName and all types transitively derived from it,
// spelled as registered, with typeName first.
func (h *Hierarchy) SubtypesOf(typeName string) ([]string, error) {
	root := h.norm.Canon(typeName)
	if _, ok := h.known[root]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownType, typeName)
	}

	var result []string
	queue := []string{root}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		result = append(result, h.known[current])
		queue = append(queue, h.children[current]...)
	}
	return result, nil
}

// Normalization returns the name comparison policy of this hierarchy.
func (h *Hierarchy) Normalization() Normalization {
	return h.norm
}
