package services

import (
	"fmt"

	"github.com/asakaida/kimera/internal/collection"
	"github.com/asakaida/kimera/internal/entities"
	"github.com/asakaida/kimera/internal/infrastructure/metrics"
	"github.com/asakaida/kimera/internal/registry"
	"github.com/asakaida/kimera/internal/repositories"
)

// RelationServiceInterface defines the interface for building relation lists
type RelationServiceInterface interface {
	HasMany(relatedType string, prefix string) (*collection.RelationList, error)
	HasManyPolymorphic(relatedType string, prefix string, ownerType string) (*collection.PolymorphicList, error)
	HasManyScoped(relatedType string, prefix string, ownerType string, relationName string) (*collection.PolymorphicList, error)
}

// RelationService hands out configured relation lists. Lists are built once
// per owner.relation access; the service wires them to the shared registry,
// record repository, and metrics collector.
type RelationService struct {
	registry  registry.TypeRegistry
	records   repositories.RecordRepository
	collector *metrics.Collector
}

// NewRelationService creates a new RelationService. The collector may be nil.
func NewRelationService(
	reg registry.TypeRegistry,
	records repositories.RecordRepository,
	collector *metrics.Collector,
) *RelationService {
	return &RelationService{
		registry:  reg,
		records:   records,
		collector: collector,
	}
}

// HasMany builds a plain relation list keyed by a single owner-id column.
func (s *RelationService) HasMany(relatedType string, prefix string) (*collection.RelationList, error) {
	if err := checkNames(relatedType, prefix); err != nil {
		return nil, err
	}
	key := entities.NewForeignKey(prefix)
	return collection.NewRelationList(relatedType, key, s.records, s.collector), nil
}

// HasManyPolymorphic builds a polymorphic relation list accepting owners of
// ownerType and all of its registered sub-types.
func (s *RelationService) HasManyPolymorphic(relatedType string, prefix string, ownerType string) (*collection.PolymorphicList, error) {
	if err := checkNames(relatedType, prefix); err != nil {
		return nil, err
	}
	if ownerType == "" {
		return nil, fmt.Errorf("owner type is required")
	}
	key := entities.NewForeignKey(prefix)
	list, err := collection.NewPolymorphicList(relatedType, key, ownerType, s.registry, s.records, s.collector)
	if err != nil {
		return nil, fmt.Errorf("failed to build polymorphic list: %w", err)
	}
	return list, nil
}

// HasManyScoped builds a polymorphic relation list scoped to one owner-side
// relation name.
func (s *RelationService) HasManyScoped(relatedType string, prefix string, ownerType string, relationName string) (*collection.PolymorphicList, error) {
	if relationName == "" {
		return nil, fmt.Errorf("relation name is required")
	}
	list, err := s.HasManyPolymorphic(relatedType, prefix, ownerType)
	if err != nil {
		return nil, err
	}
	if err := list.ScopeToRelation(relationName); err != nil {
		return nil, fmt.Errorf("failed to scope list: %w", err)
	}
	return list, nil
}

func checkNames(relatedType string, prefix string) error {
	if relatedType == "" {
		return fmt.Errorf("related type is required")
	}
	if prefix == "" {
		return fmt.Errorf("foreign key prefix is required")
	}
	return nil
}
