package collection

// AddOutcome reports what an Add call did. The skipped outcomes are not
// errors: they mean the collection's filter state made the mutation unsafe
// and nothing was changed or persisted.
type AddOutcome int

const (
	// Added means the record was attached to the owner and persisted.
	Added AddOutcome = iota
	// SkippedNoOwner means no owner id is configured on the collection.
	SkippedNoOwner
	// SkippedMultiOwner means the collection is filtered by multiple owner
	// ids, so there is no single owner to attach to.
	SkippedMultiOwner
)

// String returns a human-readable outcome name.
func (o AddOutcome) String() string {
	switch o {
	case Added:
		return "added"
	case SkippedNoOwner:
		return "skipped_no_owner"
	case SkippedMultiOwner:
		return "skipped_multi_owner"
	default:
		return "unknown"
	}
}
