package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/asakaida/kimera/internal/entities"
	"github.com/asakaida/kimera/internal/query"
	"github.com/asakaida/kimera/internal/repositories"
	"github.com/lib/pq"
)

// filterableColumns lists the columns a filter predicate may reference.
// Predicates arrive with column names composed from a foreign-key prefix, so
// they must be checked against the physical schema before being rendered.
var filterableColumns = map[string]bool{
	"owner_id":       true,
	"owner_class":    true,
	"owner_relation": true,
}

// PostgresRecordRepository implements RecordRepository using PostgreSQL.
// The records table carries the fixed owner_id/owner_class/owner_relation
// columns, so only lists keyed by the "owner" foreign-key prefix can be
// served; filters over any other prefix fail when their predicates render.
type PostgresRecordRepository struct {
	db *sql.DB
}

// NewPostgresRecordRepository creates a new PostgreSQL record repository
func NewPostgresRecordRepository(db *sql.DB) repositories.RecordRepository {
	return &PostgresRecordRepository{db: db}
}

// GetByID retrieves a single record by its type and identifier
func (r *PostgresRecordRepository) GetByID(ctx context.Context, recordType string, id string) (*entities.Record, error) {
	queryText := `
		SELECT id, record_type, owner_id, owner_class, owner_relation, created_at, updated_at
		FROM records
		WHERE record_type = $1 AND id = $2
	`
	record, err := scanRecord(r.db.QueryRowContext(ctx, queryText, recordType, id))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("record %s:%s: %w", recordType, id, repositories.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get record: %w", err)
	}
	return record, nil
}

// Save persists the record's owner reference fields.
// The row must already exist; a miss is reported as ErrNotFound.
func (r *PostgresRecordRepository) Save(ctx context.Context, record *entities.Record) error {
	if err := record.Validate(); err != nil {
		return fmt.Errorf("invalid record: %w", err)
	}

	queryText := `
		UPDATE records
		SET owner_id = $1, owner_class = $2, owner_relation = $3, updated_at = $4
		WHERE record_type = $5 AND id = $6
	`
	result, err := r.db.ExecContext(ctx, queryText,
		nullString(record.Owner.ID),
		nullString(record.Owner.Class),
		nullString(record.Owner.Relation),
		time.Now(),
		record.Type, record.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to save record: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check save result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("record %s:%s: %w", record.Type, record.ID, repositories.ErrNotFound)
	}
	return nil
}

// Select retrieves records of the given type matching the filter params
func (r *PostgresRecordRepository) Select(ctx context.Context, recordType string, params *query.Params) ([]*entities.Record, error) {
	queryText := `
		SELECT id, record_type, owner_id, owner_class, owner_relation, created_at, updated_at
		FROM records
		WHERE record_type = $1
	`
	args := []interface{}{recordType}

	where, whereArgs, err := renderPredicates(params, len(args)+1)
	if err != nil {
		return nil, err
	}
	queryText += where
	args = append(args, whereArgs...)
	queryText += " ORDER BY created_at, id"

	rows, err := r.db.QueryContext(ctx, queryText, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to select records: %w", err)
	}
	defer rows.Close()

	var records []*entities.Record
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan record: %w", err)
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating records: %w", err)
	}

	return records, nil
}

// renderPredicates renders filter predicates into an " AND ..." WHERE suffix
// with positional placeholders starting at argIdx.
func renderPredicates(params *query.Params, argIdx int) (string, []interface{}, error) {
	if params == nil {
		return "", nil, nil
	}

	var where string
	var args []interface{}

	for _, pred := range params.Predicates() {
		if !filterableColumns[pred.Column] {
			return "", nil, fmt.Errorf("column %q is not filterable", pred.Column)
		}
		switch pred.Op {
		case query.OpEq:
			where += fmt.Sprintf(" AND %s = $%d", pred.Column, argIdx)
			args = append(args, pred.Value)
			argIdx++
		case query.OpIn:
			where += fmt.Sprintf(" AND %s = ANY($%d)", pred.Column, argIdx)
			args = append(args, pq.Array(pred.Values))
			argIdx++
		case query.OpIsNull:
			where += fmt.Sprintf(" AND %s IS NULL", pred.Column)
		default:
			return "", nil, fmt.Errorf("unsupported predicate op: %d", pred.Op)
		}
	}

	return where, args, nil
}

// rowScanner covers both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRecord(row rowScanner) (*entities.Record, error) {
	var record entities.Record
	var ownerID, ownerClass, ownerRelation sql.NullString

	err := row.Scan(
		&record.ID, &record.Type,
		&ownerID, &ownerClass, &ownerRelation,
		&record.CreatedAt, &record.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	record.Owner.ID = ownerID.String
	record.Owner.Class = ownerClass.String
	record.Owner.Relation = ownerRelation.String
	return &record, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
