// Package query defines the typed filter specification shared by all
// repositories. A filter is a closed set of predicate variants over named
// fields; translation to SQL happens in the storage layer, which also
// validates field names against each entity's queryable columns.
package query

import "errors"

// ErrUnknownField is returned by the storage layer when a filter or ordering
// references a field the entity does not expose. Unknown fields fail fast
// instead of being silently dropped, so operator typos surface immediately.
var ErrUnknownField = errors.New("unknown filter field")

// Op enumerates the supported predicate operators.
type Op int

const (
	OpEquals Op = iota
	OpIn
	OpNotIn
	OpIsNull
	OpIsNotNull
	OpAtLeast // >=
	OpAtMost  // <=
)

// Condition is a single operator applied to a field.
type Condition struct {
	Op     Op
	Value  any   // OpEquals, OpAtLeast, OpAtMost
	Values []any // OpIn, OpNotIn
}

// Equals matches rows whose field equals v.
func Equals(v any) Condition { return Condition{Op: OpEquals, Value: v} }

// In matches rows whose field is one of vs.
func In(vs ...any) Condition { return Condition{Op: OpIn, Values: vs} }

// NotIn matches rows whose field is none of vs.
func NotIn(vs ...any) Condition { return Condition{Op: OpNotIn, Values: vs} }

// IsNull matches rows whose field is NULL.
func IsNull() Condition { return Condition{Op: OpIsNull} }

// IsNotNull matches rows whose field is not NULL.
func IsNotNull() Condition { return Condition{Op: OpIsNotNull} }

// AtLeast matches rows whose field is >= v.
func AtLeast(v any) Condition { return Condition{Op: OpAtLeast, Value: v} }

// AtMost matches rows whose field is <= v.
func AtMost(v any) Condition { return Condition{Op: OpAtMost, Value: v} }

// Direction is an ordering direction.
type Direction int

const (
	Asc Direction = iota
	Desc
)

// Predicate binds a condition to a field name.
type Predicate struct {
	Field string
	Cond  Condition
}

// Order is an optional ordering clause.
type Order struct {
	Field     string
	Direction Direction
}

// Filter is an immutable-by-convention filter specification. All predicates
// are ANDed together; the storage layer additionally ANDs the soft-delete
// exclusion into every translated query.
type Filter struct {
	Predicates []Predicate
	Order      *Order
	LimitCount int
}

// All is the empty filter: every non-deleted row matches.
func All() *Filter { return &Filter{} }

// Where starts a filter with a single predicate.
func Where(field string, cond Condition) *Filter {
	return All().And(field, cond)
}

// And appends a predicate. The same field may appear more than once, which is
// how inclusive ranges are expressed (AtLeast + AtMost).
func (f *Filter) And(field string, cond Condition) *Filter {
	f.Predicates = append(f.Predicates, Predicate{Field: field, Cond: cond})
	return f
}

// OrderBy sets the ordering clause. Without one, result order follows the
// underlying store and must not be relied upon.
func (f *Filter) OrderBy(field string, dir Direction) *Filter {
	f.Order = &Order{Field: field, Direction: dir}
	return f
}

// Limit caps the number of rows returned. Limit(1) with an ordering is the
// degenerate "latest"/"oldest" case.
func (f *Filter) Limit(n int) *Filter {
	f.LimitCount = n
	return f
}
