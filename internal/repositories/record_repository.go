package repositories

import (
	"context"
	"errors"

	"github.com/asakaida/kimera/internal/entities"
	"github.com/asakaida/kimera/internal/query"
)

// ErrNotFound is returned when a record lookup matches no row.
var ErrNotFound = errors.New("record not found")

// RecordRepository defines the interface for related-record data access
type RecordRepository interface {
	// GetByID retrieves a single record by its type and identifier.
	// Returns ErrNotFound if no such record exists.
	GetByID(ctx context.Context, recordType string, id string) (*entities.Record, error)

	// Save persists the record's owner reference fields in a single call.
	// The record row must already exist; Save never creates rows.
	Save(ctx context.Context, record *entities.Record) error

	// Select retrieves records of the given type matching the filter params.
	Select(ctx context.Context, recordType string, params *query.Params) ([]*entities.Record, error)
}
