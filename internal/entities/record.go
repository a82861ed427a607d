package entities

import (
	"fmt"
	"time"
)

// OwnerRef is the polymorphic owner reference carried by a related record.
// Empty strings map to NULL columns in storage, the same convention used for
// other nullable text columns in this codebase.
type OwnerRef struct {
	ID       string // Identifier of the owning record (e.g., "42")
	Class    string // Concrete type name of the owning record (e.g., "Photo")
	Relation string // Owner-side relation name (optional, e.g., "Cover")
}

// IsSet reports whether the reference points at an owner.
func (o OwnerRef) IsSet() bool {
	return o.ID != ""
}

// Clear detaches the reference from its owner. The relation name is only
// cleared when clearRelation is true: a collection that is not scoped to a
// relation must leave the column untouched.
func (o *OwnerRef) Clear(clearRelation bool) {
	o.ID = ""
	o.Class = ""
	if clearRelation {
		o.Relation = ""
	}
}

// Record represents a row of the related table
// Example: attachment:7@photo:42#Cover
// This means: attachment "7" belongs to photo "42" through its "Cover" relation
type Record struct {
	ID        string   // Record ID (e.g., "7")
	Type      string   // Concrete type name of the record itself (e.g., "attachment")
	Owner     OwnerRef // Polymorphic owner reference (zero value when detached)
	CreatedAt time.Time
	UpdatedAt time.Time
}

// String returns a string representation of the record
// Format: type:id[@owner_class:owner_id[#relation]]
func (r *Record) String() string {
	if !r.Owner.IsSet() {
		return fmt.Sprintf("%s:%s", r.Type, r.ID)
	}
	if r.Owner.Relation != "" {
		return fmt.Sprintf("%s:%s@%s:%s#%s",
			r.Type, r.ID, r.Owner.Class, r.Owner.ID, r.Owner.Relation)
	}
	return fmt.Sprintf("%s:%s@%s:%s", r.Type, r.ID, r.Owner.Class, r.Owner.ID)
}

// Validate checks if the record is valid
func (r *Record) Validate() error {
	if r.ID == "" {
		return fmt.Errorf("record ID is required")
	}
	if r.Type == "" {
		return fmt.Errorf("record type is required")
	}
	if r.Owner.IsSet() && r.Owner.Class == "" {
		return fmt.Errorf("owner class is required when owner ID is set")
	}
	return nil
}
