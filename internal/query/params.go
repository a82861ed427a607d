// Package query describes filter state for record selection. A Params value
// collects named predicate clauses and named parameters; the storage layer
// renders the predicates into SQL, and callers can read previously stored
// clauses and parameters back at any time.
package query

// PredicateOp identifies the comparison a predicate performs.
type PredicateOp int

const (
	// OpEq matches rows whose column equals a single value.
	OpEq PredicateOp = iota
	// OpIn matches rows whose column equals any of a set of values.
	OpIn
	// OpIsNull matches rows whose column is NULL.
	OpIsNull
)

// Predicate is one filter condition against a single column.
type Predicate struct {
	Column string
	Op     PredicateOp
	Value  string   // used by OpEq
	Values []string // used by OpIn
}

// Eq builds an equality predicate.
func Eq(column, value string) Predicate {
	return Predicate{Column: column, Op: OpEq, Value: value}
}

// In builds a set-membership predicate.
func In(column string, values []string) Predicate {
	return Predicate{Column: column, Op: OpIn, Values: values}
}

// IsNull builds a NULL-check predicate.
func IsNull(column string) Predicate {
	return Predicate{Column: column, Op: OpIsNull}
}

type clause struct {
	name string
	pred Predicate
}

// Params holds named predicate clauses in insertion order plus a bag of
// named parameters. Re-adding a clause under an existing name replaces the
// predicate in place, preserving its position.
type Params struct {
	clauses []clause
	values  map[string]string
}

// NewParams creates an empty parameter set.
func NewParams() *Params {
	return &Params{
		values: make(map[string]string),
	}
}

// Where installs or replaces the predicate clause with the given name.
func (p *Params) Where(name string, pred Predicate) {
	for i := range p.clauses {
		if p.clauses[i].name == name {
			p.clauses[i].pred = pred
			return
		}
	}
	p.clauses = append(p.clauses, clause{name: name, pred: pred})
}

// RemoveWhere deletes the clause with the given name.
// Returns false if no such clause exists.
func (p *Params) RemoveWhere(name string) bool {
	for i := range p.clauses {
		if p.clauses[i].name == name {
			p.clauses = append(p.clauses[:i], p.clauses[i+1:]...)
			return true
		}
	}
	return false
}

// Clause returns the predicate stored under the given name.
func (p *Params) Clause(name string) (Predicate, bool) {
	for i := range p.clauses {
		if p.clauses[i].name == name {
			return p.clauses[i].pred, true
		}
	}
	return Predicate{}, false
}

// Predicates returns all predicates in insertion order.
func (p *Params) Predicates() []Predicate {
	preds := make([]Predicate, len(p.clauses))
	for i := range p.clauses {
		preds[i] = p.clauses[i].pred
	}
	return preds
}

// SetParam stores a named parameter for later retrieval.
func (p *Params) SetParam(name, value string) {
	p.values[name] = value
}

// Param returns a previously stored named parameter.
func (p *Params) Param(name string) (string, bool) {
	v, ok := p.values[name]
	return v, ok
}
