package repositories

import (
	"context"

	"github.com/asakaida/kimera/internal/registry"
)

// HierarchyRepository defines the interface for type-hierarchy data access
type HierarchyRepository interface {
	// Types retrieves the names of all registered types.
	Types(ctx context.Context) ([]string, error)

	// Edges retrieves all derivation edges (child, parent).
	Edges(ctx context.Context) ([]registry.Edge, error)
}
