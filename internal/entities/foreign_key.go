package entities

// ForeignKey names the three columns a polymorphic owner reference occupies
// on the related table. The names are derived once from a base prefix and
// stored; nothing downstream composes column names at runtime.
// Example: prefix "owner" -> owner_id, owner_class, owner_relation
type ForeignKey struct {
	prefix         string
	idColumn       string
	classColumn    string
	relationColumn string
}

// NewForeignKey derives the column names for the given prefix.
func NewForeignKey(prefix string) ForeignKey {
	return ForeignKey{
		prefix:         prefix,
		idColumn:       prefix + "_id",
		classColumn:    prefix + "_class",
		relationColumn: prefix + "_relation",
	}
}

// Prefix returns the base prefix the key was derived from.
func (k ForeignKey) Prefix() string {
	return k.prefix
}

// IDColumn returns the column holding the owning record's identifier.
func (k ForeignKey) IDColumn() string {
	return k.idColumn
}

// ClassColumn returns the column holding the owning record's concrete type name.
func (k ForeignKey) ClassColumn() string {
	return k.classColumn
}

// RelationColumn returns the column holding the owner-side relation name.
func (k ForeignKey) RelationColumn() string {
	return k.relationColumn
}
