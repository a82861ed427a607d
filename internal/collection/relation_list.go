// Package collection implements lazily-filtered, mutable views over records
// that point back at an owning record through a foreign key. RelationList
// covers the plain single-column case; PolymorphicList layers owner-class
// and relation-discriminator filtering on top for tables whose rows can be
// owned by instances of many distinct types.
package collection

import (
	"context"
	"errors"
	"fmt"

	"github.com/asakaida/kimera/internal/entities"
	"github.com/asakaida/kimera/internal/infrastructure/metrics"
	"github.com/asakaida/kimera/internal/query"
	"github.com/asakaida/kimera/internal/repositories"
)

// ErrTypeMismatch is returned when a record of the wrong type is passed to
// Add or Remove. No mutation occurs in that case.
var ErrTypeMismatch = errors.New("record type does not match collection")

// RelationList is a filtered collection of records of one declared type,
// constrained by a single owner-id foreign key column. The filter
// configuration is fixed at construction except for the owner-id filter,
// which the owning context sets per query.
type RelationList struct {
	relatedType string
	key         entities.ForeignKey
	params      *query.Params
	owner       OwnerFilter
	records     repositories.RecordRepository
	metrics     *metrics.Collector
}

// NewRelationList creates a list of relatedType records keyed by the id
// column of the given foreign key. The collector may be nil.
func NewRelationList(relatedType string, key entities.ForeignKey, records repositories.RecordRepository, collector *metrics.Collector) *RelationList {
	return &RelationList{
		relatedType: relatedType,
		key:         key,
		params:      query.NewParams(),
		owner:       NoOwner(),
		records:     records,
		metrics:     collector,
	}
}

// RelatedType returns the declared type of records in the list.
func (l *RelationList) RelatedType() string {
	return l.relatedType
}

// Key returns the foreign key the list filters on.
func (l *RelationList) Key() entities.ForeignKey {
	return l.key
}

// Params exposes the list's filter parameter set.
func (l *RelationList) Params() *query.Params {
	return l.params
}

// ForeignFilter returns the current owner-id filter.
func (l *RelationList) ForeignFilter() OwnerFilter {
	return l.owner
}

// SetForeignFilter installs the owner-id filter, replacing the id predicate
// clause in the parameter set.
func (l *RelationList) SetForeignFilter(filter OwnerFilter) {
	l.owner = filter
	idColumn := l.key.IDColumn()
	switch filter.Kind() {
	case OwnerNone:
		l.params.RemoveWhere(idColumn)
	case OwnerOne:
		id, _ := filter.One()
		l.params.Where(idColumn, query.Eq(idColumn, id))
	case OwnerMany:
		l.params.Where(idColumn, query.In(idColumn, filter.IDs()))
	}
}

// Records retrieves the current members of the list from storage.
func (l *RelationList) Records(ctx context.Context) ([]*entities.Record, error) {
	records, err := l.records.Select(ctx, l.relatedType, l.params)
	if err != nil {
		return nil, fmt.Errorf("failed to read relation list: %w", err)
	}
	return records, nil
}

// Add attaches the record to the single configured owner and persists it.
// A list without exactly one owner id reports a skipped outcome and leaves
// the record untouched.
func (l *RelationList) Add(ctx context.Context, record *entities.Record) (AddOutcome, error) {
	if err := l.checkType(record); err != nil {
		return Added, err
	}

	ownerID, outcome := l.singleOwner()
	if outcome != Added {
		l.recordAdd(outcome)
		return outcome, nil
	}

	record.Owner.ID = ownerID
	if err := l.save(ctx, record); err != nil {
		return Added, err
	}
	l.recordAdd(Added)
	return Added, nil
}

// Remove detaches the record from its owner by clearing the foreign-key
// column and persisting. A record whose owner id is outside the configured
// filter is silently left untouched: removing a non-member must be safely
// ignorable. The storage row itself is never deleted.
func (l *RelationList) Remove(ctx context.Context, record *entities.Record) error {
	if err := l.checkType(record); err != nil {
		return err
	}

	if !l.owner.Matches(record.Owner.ID) {
		l.recordRemoveRejected(metrics.GuardOwner)
		return nil
	}

	record.Owner.ID = ""
	if err := l.save(ctx, record); err != nil {
		return err
	}
	l.recordRemove()
	return nil
}

// AddID resolves an identifier to a record and adds it.
func (l *RelationList) AddID(ctx context.Context, id string) (AddOutcome, error) {
	record, err := l.records.GetByID(ctx, l.relatedType, id)
	if err != nil {
		return Added, fmt.Errorf("failed to resolve record id %q: %w", id, err)
	}
	return l.Add(ctx, record)
}

func (l *RelationList) checkType(record *entities.Record) error {
	if record == nil {
		return fmt.Errorf("record is required")
	}
	if record.Type != l.relatedType {
		return fmt.Errorf("%w: got %q, want %q", ErrTypeMismatch, record.Type, l.relatedType)
	}
	return nil
}

// singleOwner returns the one configured owner id, or the skipped outcome
// describing why there is none.
func (l *RelationList) singleOwner() (string, AddOutcome) {
	switch l.owner.Kind() {
	case OwnerOne:
		id, _ := l.owner.One()
		return id, Added
	case OwnerMany:
		return "", SkippedMultiOwner
	default:
		return "", SkippedNoOwner
	}
}

func (l *RelationList) save(ctx context.Context, record *entities.Record) error {
	if err := l.records.Save(ctx, record); err != nil {
		l.recordStoreError()
		return fmt.Errorf("failed to persist record %s: %w", record, err)
	}
	return nil
}

func (l *RelationList) recordAdd(outcome AddOutcome) {
	if l.metrics != nil {
		l.metrics.RecordAdd(outcome.String())
	}
}

func (l *RelationList) recordRemove() {
	if l.metrics != nil {
		l.metrics.RecordRemove()
	}
}

func (l *RelationList) recordRemoveRejected(guard string) {
	if l.metrics != nil {
		l.metrics.RecordRemoveRejected(guard)
	}
}

func (l *RelationList) recordStoreError() {
	if l.metrics != nil {
		l.metrics.RecordStoreError()
	}
}
