package collection

// OwnerFilterKind discriminates the variants of OwnerFilter.
type OwnerFilterKind int

const (
	// OwnerNone means no owner-id filter is configured.
	OwnerNone OwnerFilterKind = iota
	// OwnerOne scopes the collection to a single owner id.
	OwnerOne
	// OwnerMany scopes the collection to a set of owner ids.
	OwnerMany
)

// OwnerFilter is the owner-id filter of a relation list: absent, a single
// identifier, or a set of identifiers for multi-owner queries.
type OwnerFilter struct {
	kind OwnerFilterKind
	id   string
	ids  []string
}

// NoOwner returns the absent filter.
func NoOwner() OwnerFilter {
	return OwnerFilter{kind: OwnerNone}
}

// OneOwner returns a filter scoped to a single owner id.
func OneOwner(id string) OwnerFilter {
	if id == "" {
		return NoOwner()
	}
	return OwnerFilter{kind: OwnerOne, id: id}
}

// ManyOwners returns a filter scoped to a set of owner ids. An empty set
// collapses to NoOwner and a single id collapses to OneOwner.
func ManyOwners(ids ...string) OwnerFilter {
	switch len(ids) {
	case 0:
		return NoOwner()
	case 1:
		return OneOwner(ids[0])
	default:
		copied := make([]string, len(ids))
		copy(copied, ids)
		return OwnerFilter{kind: OwnerMany, ids: copied}
	}
}

// Kind returns the variant of the filter.
func (f OwnerFilter) Kind() OwnerFilterKind {
	return f.kind
}

// One returns the single owner id. The second result is false unless the
// filter is the OwnerOne variant.
func (f OwnerFilter) One() (string, bool) {
	return f.id, f.kind == OwnerOne
}

// IDs returns all configured ids: none, one, or the full set.
func (f OwnerFilter) IDs() []string {
	switch f.kind {
	case OwnerOne:
		return []string{f.id}
	case OwnerMany:
		ids := make([]string, len(f.ids))
		copy(ids, f.ids)
		return ids
	default:
		return nil
	}
}

// Matches reports whether a record carrying the given owner id belongs to
// this filter. The absent filter matches anything: callers with no active
// id filter are not restricted by ownership.
func (f OwnerFilter) Matches(ownerID string) bool {
	switch f.kind {
	case OwnerNone:
		return true
	case OwnerOne:
		return f.id == ownerID
	default:
		for _, id := range f.ids {
			if id == ownerID {
				return true
			}
		}
		return false
	}
}
