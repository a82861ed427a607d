package collection

import (
	"context"
	"errors"
	"fmt"

	"github.com/asakaida/kimera/internal/entities"
	"github.com/asakaida/kimera/internal/infrastructure/metrics"
	"github.com/asakaida/kimera/internal/query"
	"github.com/asakaida/kimera/internal/registry"
	"github.com/asakaida/kimera/internal/repositories"
)

// ErrAlreadyScoped is returned when ScopeToRelation is called on a list that
// already has a relation name. Scoping permanently narrows the list; it
// cannot be widened back or re-pointed afterwards.
var ErrAlreadyScoped = errors.New("relation list is already scoped to a relation")

// Named parameter keys stored in the list's parameter set.
const (
	paramOwnerType    = "owner_type"
	paramRelationName = "relation_name"
)

// PolymorphicList is a RelationList whose owner is identified by a composite
// polymorphic key: owner id, owner class, and an optional relation name. It
// accepts owners of the declared owner type and every registered sub-type.
//
// The accepted class set is snapshotted from the registry at construction
// and is not re-evaluated if the registry changes afterward.
type PolymorphicList struct {
	RelationList

	relationName string
	classes      registry.TypeSet
}

// NewPolymorphicList creates a polymorphic list of relatedType records owned
// by ownerType (or any of its sub-types) through the given foreign key.
// Returns registry.ErrUnknownType if ownerType is not registered. The
// collector may be nil.
func NewPolymorphicList(
	relatedType string,
	key entities.ForeignKey,
	ownerType string,
	reg registry.TypeRegistry,
	records repositories.RecordRepository,
	collector *metrics.Collector,
) (*PolymorphicList, error) {
	subtypes, err := reg.SubtypesOf(ownerType)
	if err != nil {
		return nil, fmt.Errorf("owner type %q: %w", ownerType, err)
	}

	l := &PolymorphicList{
		RelationList: *NewRelationList(relatedType, key, records, collector),
		classes:      registry.NewTypeSet(reg.Normalization(), subtypes),
	}

	classColumn := key.ClassColumn()
	l.Params().Where(classColumn, query.In(classColumn, l.classes.Names()))
	// subtypes[0] is ownerType as registered. Add stamps OwnerType() onto
	// records, so the stored class must carry the same spelling the class
	// filter compares against.
	l.Params().SetParam(paramOwnerType, subtypes[0])
	l.applyRelationFilter()

	return l, nil
}

// OwnerType returns the owner type as registered, read back from the
// parameter set it was stored in at construction.
func (l *PolymorphicList) OwnerType() string {
	ownerType, _ := l.Params().Param(paramOwnerType)
	return ownerType
}

// RelationName returns the relation the list is scoped to, or empty when
// the list is unscoped.
func (l *PolymorphicList) RelationName() string {
	return l.relationName
}

// ClassColumn returns the derived owner-class column name.
func (l *PolymorphicList) ClassColumn() string {
	return l.Key().ClassColumn()
}

// RelationColumn returns the derived relation column name. It is available
// whether or not the list is scoped to a relation.
func (l *PolymorphicList) RelationColumn() string {
	return l.Key().RelationColumn()
}

// Classes returns the snapshot of accepted owner class names.
func (l *PolymorphicList) Classes() []string {
	return l.classes.Names()
}

// ScopeToRelation narrows the list to records attached through the named
// owner-side relation. This is a one-way transition: an unscoped list can be
// scoped once, and a scoped list stays scoped.
//
// Deprecated: pass the relation name at construction via
// services.RelationService.HasManyScoped instead of narrowing afterwards.
func (l *PolymorphicList) ScopeToRelation(name string) error {
	if name == "" {
		return fmt.Errorf("relation name is required")
	}
	if l.relationName != "" {
		return fmt.Errorf("%w: %s", ErrAlreadyScoped, l.relationName)
	}
	l.relationName = name
	l.Params().SetParam(paramRelationName, name)
	l.applyRelationFilter()
	return nil
}

// Add attaches the record to the single configured owner: the owner id,
// the declared owner type, and the relation name when the list is scoped.
// The mutation is persisted in one call. A list without exactly one owner
// id reports a skipped outcome and leaves the record untouched.
func (l *PolymorphicList) Add(ctx context.Context, record *entities.Record) (AddOutcome, error) {
	if err := l.checkType(record); err != nil {
		return Added, err
	}

	ownerID, outcome := l.singleOwner()
	if outcome != Added {
		l.recordAdd(outcome)
		return outcome, nil
	}

	record.Owner.ID = ownerID
	record.Owner.Class = l.OwnerType()
	if l.relationName != "" {
		record.Owner.Relation = l.relationName
	}

	if err := l.save(ctx, record); err != nil {
		return Added, err
	}
	l.recordAdd(Added)
	return Added, nil
}

// AddID resolves an identifier to a record and adds it.
func (l *PolymorphicList) AddID(ctx context.Context, id string) (AddOutcome, error) {
	record, err := l.records.GetByID(ctx, l.relatedType, id)
	if err != nil {
		return Added, fmt.Errorf("failed to resolve record id %q: %w", id, err)
	}
	return l.Add(ctx, record)
}

// Remove detaches the record from its owner: the relation name (when the
// list is scoped), owner id, and owner class are cleared and the record is
// persisted. The storage row is never deleted.
//
// Three guards fail closed and silent, so that removing a record that does
// not belong to this collection is safely ignorable: the record's owner
// class must be in the accepted class set, its relation must match the
// list's scope (empty matches empty), and its owner id must fall inside the
// owner-id filter (an absent filter matches anything).
func (l *PolymorphicList) Remove(ctx context.Context, record *entities.Record) error {
	if err := l.checkType(record); err != nil {
		return err
	}

	if !l.classes.Contains(record.Owner.Class) {
		l.recordRemoveRejected(metrics.GuardClass)
		return nil
	}
	if !relationMatches(record.Owner.Relation, l.relationName) {
		l.recordRemoveRejected(metrics.GuardRelation)
		return nil
	}
	if !l.ForeignFilter().Matches(record.Owner.ID) {
		l.recordRemoveRejected(metrics.GuardOwner)
		return nil
	}

	record.Owner.Clear(l.relationName != "")
	if err := l.save(ctx, record); err != nil {
		return err
	}
	l.recordRemove()
	return nil
}

// applyRelationFilter installs the relation predicate matching the current
// scope: rows must carry the scoped relation name, or no relation at all
// when the list is unscoped. Mirrors relationMatches.
func (l *PolymorphicList) applyRelationFilter() {
	relationColumn := l.Key().RelationColumn()
	if l.relationName == "" {
		l.Params().Where(relationColumn, query.IsNull(relationColumn))
		return
	}
	l.Params().Where(relationColumn, query.Eq(relationColumn, l.relationName))
}

// relationMatches is the single source of truth for relation-name
// comparison: empty on both sides is a match, otherwise the names must be
// equal. Empty strings stand for NULL columns.
func relationMatches(actual, expected string) bool {
	return actual == expected
}
