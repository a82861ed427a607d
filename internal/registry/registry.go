// Package registry tracks the known type hierarchy: which concrete type
// names exist and which types derive from which. Collections consult it to
// compute the set of owner classes they accept.
package registry

import (
	"errors"
	"sort"
	"strings"
)

// ErrUnknownType is returned when a type name is not registered.
var ErrUnknownType = errors.New("unknown type")

// Normalization controls how type names are canonicalized before comparison.
// The policy is fixed when a registry is built and applies to every lookup
// and membership check derived from it.
type Normalization int

const (
	// NormalizeExact compares type names exactly as registered.
	NormalizeExact Normalization = iota
	// NormalizeFold lower-cases type names before comparison.
	NormalizeFold
)

// Canon returns the canonical form of a type name under the policy.
func (n Normalization) Canon(name string) string {
	if n == NormalizeFold {
		return strings.ToLower(name)
	}
	return name
}

// TypeRegistry enumerates the sub-types of a registered type.
type TypeRegistry interface {
	// SubtypesOf returns the names of typeName and every type transitively
	// derived from it, spelled as registered and with typeName first.
	// Returns ErrUnknownType if typeName is not registered. Lookup follows
	// the registry's normalization policy; the returned spellings do not:
	// they are the ones that appear in stored class columns.
	SubtypesOf(typeName string) ([]string, error)

	// Normalization returns the name comparison policy of this registry.
	Normalization() Normalization
}

// TypeSet is an immutable membership set of type names, carrying the
// normalization policy it was built under. Membership checks canonicalize;
// Names keeps the spellings the set was built with, so filters rendered from
// a set compare against the same values that got stored.
type TypeSet struct {
	norm  Normalization
	canon map[string]struct{}
	names []string
}

// NewTypeSet builds a set from the given names. Names that canonicalize to
// the same key are deduplicated; the first spelling wins.
func NewTypeSet(norm Normalization, names []string) TypeSet {
	set := TypeSet{norm: norm, canon: make(map[string]struct{}, len(names))}
	for _, name := range names {
		key := norm.Canon(name)
		if _, dup := set.canon[key]; dup {
			continue
		}
		set.canon[key] = struct{}{}
		set.names = append(set.names, name)
	}
	sort.Strings(set.names)
	return set
}

// Contains reports whether name is a member, under the set's policy.
func (s TypeSet) Contains(name string) bool {
	_, ok := s.canon[s.norm.Canon(name)]
	return ok
}

// Names returns the member names as given at construction, sorted for
// determinism.
func (s TypeSet) Names() []string {
	names := make([]string, len(s.names))
	copy(names, s.names)
	return names
}

// Len returns the number of members.
func (s TypeSet) Len() int {
	return len(s.names)
}
