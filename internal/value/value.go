// Package value implements JAL's runtime value model (spec §3): a tagged
// union distinct from the static types package, converted only at
// evaluator boundaries. Grounded on the teacher's internal/interp.Value
// interface — one concrete struct per variant, each with Kind()/String()
// — simplified to JAL's five variants (null, bool, number, string, list)
// in place of the teacher's much larger Pascal value set.
package value

import (
	"strconv"
	"strings"
)

// Kind tags a Value's runtime variant.
type Kind int

const (
	Null Kind = iota
	Bool
	Number
	String
	List
)

func (k Kind) String() string {
	switch k {
	case Null:
		return "null"
	case Bool:
		return "bool"
	case Number:
		return "number"
	case String:
		return "string"
	case List:
		return "list"
	default:
		return "?"
	}
}

// Value is any JAL runtime value.
type Value interface {
	Kind() Kind
	String() string
}

// NullValue is JAL's single null value.
type NullValue struct{}

func (NullValue) Kind() Kind      { return Null }
func (NullValue) String() string  { return "null" }

// BoolValue wraps a boolean.
type BoolValue struct{ Val bool }

func (BoolValue) Kind() Kind        { return Bool }
func (b BoolValue) String() string  { return strconv.FormatBool(b.Val) }

// NumberValue unifies int and float at runtime (spec §3: "number unifies
// int/float at runtime"). IsFloat distinguishes formatting and the
// division/modulo semantics the evaluator applies.
type NumberValue struct {
	Val     float64
	IsFloat bool
}

func (NumberValue) Kind() Kind { return Number }
func (n NumberValue) String() string {
	if n.IsFloat {
		return strconv.FormatFloat(n.Val, 'g', -1, 64)
	}
	return strconv.FormatInt(int64(n.Val), 10)
}

// Int returns n truncated to an int64, used by index/loop-bound callers.
func (n NumberValue) Int() int64 { return int64(n.Val) }

// NewInt and NewFloat build a NumberValue of the given flavor.
func NewInt(v int64) NumberValue   { return NumberValue{Val: float64(v)} }
func NewFloat(v float64) NumberValue { return NumberValue{Val: v, IsFloat: true} }

// StringValue wraps a string.
type StringValue struct{ Val string }

func (StringValue) Kind() Kind       { return String }
func (s StringValue) String() string { return s.Val }

// ListValue is a reference-shared, mutable list of values (spec §3: "lists
// reference-shared/mutable"). Elements is a pointer to the backing slice so
// that copies of a ListValue alias the same storage, matching aliasing
// semantics of assignment and function-argument passing.
type ListValue struct {
	Elements *[]Value
}

// NewList builds a ListValue owning a fresh backing slice.
func NewList(elems []Value) ListValue {
	e := append([]Value(nil), elems...)
	return ListValue{Elements: &e}
}

func (ListValue) Kind() Kind { return List }
func (l ListValue) String() string {
	var sb strings.Builder
	sb.WriteString("[")
	for i, e := range *l.Elements {
		if i > 0 {
			sb.WriteString(", ")
		}
		if e.Kind() == String {
			sb.WriteString("\"" + e.String() + "\"")
		} else {
			sb.WriteString(e.String())
		}
	}
	sb.WriteString("]")
	return sb.String()
}

// Push appends v to the list in place, implementing the spread-append rule
// of ListPushStatement (spec §4.3): pushing a list spreads its elements.
func (l ListValue) Push(v Value) {
	if lv, ok := v.(ListValue); ok {
		*l.Elements = append(*l.Elements, *lv.Elements...)
		return
	}
	*l.Elements = append(*l.Elements, v)
}

// Truthy implements JAL's truthiness rule (spec §4.3): bool uses its own
// value; number is truthy when non-zero; string and list are truthy when
// non-empty; null is always falsy.
func Truthy(v Value) bool {
	switch x := v.(type) {
	case BoolValue:
		return x.Val
	case NumberValue:
		return x.Val != 0
	case StringValue:
		return x.Val != ""
	case ListValue:
		return len(*x.Elements) > 0
	case NullValue:
		return false
	default:
		return false
	}
}

// TypeName returns a short internal Kind name for v, used in diagnostics.
// It is not what JAL's `type()` builtin reports to scripts; see
// builtins.jalTypeName for that mapping.
func TypeName(v Value) string {
	switch v.(type) {
	case NullValue:
		return "null"
	case BoolValue:
		return "bool"
	case NumberValue:
		return "number"
	case StringValue:
		return "string"
	case ListValue:
		return "list"
	default:
		return "?"
	}
}
