package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/asakaida/kimera/internal/registry"
	"github.com/asakaida/kimera/internal/repositories"
)

// PostgresHierarchyRepository implements HierarchyRepository using PostgreSQL
type PostgresHierarchyRepository struct {
	db *sql.DB
}

// NewPostgresHierarchyRepository creates a new PostgreSQL hierarchy repository
func NewPostgresHierarchyRepository(db *sql.DB) repositories.HierarchyRepository {
	return &PostgresHierarchyRepository{db: db}
}

// Types retrieves the names of all registered types
func (r *PostgresHierarchyRepository) Types(ctx context.Context) ([]string, error) {
	queryText := `SELECT type_name FROM class_hierarchy ORDER BY type_name`

	rows, err := r.db.QueryContext(ctx, queryText)
	if err != nil {
		return nil, fmt.Errorf("failed to read types: %w", err)
	}
	defer rows.Close()

	var types []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan type: %w", err)
		}
		types = append(types, name)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating types: %w", err)
	}

	return types, nil
}

// Edges retrieves all derivation edges (child, parent)
func (r *PostgresHierarchyRepository) Edges(ctx context.Context) ([]registry.Edge, error) {
	queryText := `
		SELECT type_name, parent_name
		FROM class_hierarchy
		WHERE parent_name IS NOT NULL
		ORDER BY type_name
	`

	rows, err := r.db.QueryContext(ctx, queryText)
	if err != nil {
		return nil, fmt.Errorf("failed to read hierarchy edges: %w", err)
	}
	defer rows.Close()

	var edges []registry.Edge
	for rows.Next() {
		var child, parent string
		if err := rows.Scan(&child, &parent); err != nil {
			return nil, fmt.Errorf("failed to scan hierarchy edge: %w", err)
		}
		edges = append(edges, registry.Edge{Child: child, Parent: parent})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating hierarchy edges: %w", err)
	}

	return edges, nil
}

// LoadHierarchy builds an in-memory registry from the stored hierarchy.
func LoadHierarchy(ctx context.Context, repo repositories.HierarchyRepository, norm registry.Normalization) (*registry.Hierarchy, error) {
	types, err := repo.Types(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load types: %w", err)
	}
	edges, err := repo.Edges(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load edges: %w", err)
	}
	hierarchy, err := registry.NewHierarchy(norm, types, edges)
	if err != nil {
		return nil, fmt.Errorf("failed to build hierarchy: %w", err)
	}
	return hierarchy, nil
}
