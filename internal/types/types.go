// Package types defines TypeAnnotation, the static type model the parser's
// inference pass and the TypeChecker share (spec §3). It is deliberately
// kept separate from the runtime value model in package value — the two
// tagged unions never mix except at evaluator boundaries (spec §9).
package types

import "fmt"

// Kind tags a TypeAnnotation variant.
type Kind int

const (
	Int Kind = iota
	Float
	Bool
	String
	List
	Void
)

// TypeAnnotation is the static type of an expression or declaration.
type TypeAnnotation struct {
	Element *TypeAnnotation // only meaningful when Kind == List
	Kind    Kind
	Bits    int // only meaningful when Kind == Int or Kind == Float
}

// Constructors for the primitive variants, named after the surface syntax
// in spec §6's primitive-types table.
func IntType(bits int) TypeAnnotation   { return TypeAnnotation{Kind: Int, Bits: bits} }
func FloatType(bits int) TypeAnnotation { return TypeAnnotation{Kind: Float, Bits: bits} }
func BoolType() TypeAnnotation          { return TypeAnnotation{Kind: Bool} }
func StringType() TypeAnnotation        { return TypeAnnotation{Kind: String} }
func VoidType() TypeAnnotation          { return TypeAnnotation{Kind: Void} }

// ListType builds a list{element} annotation. An element of Void represents
// an unknown/empty-list element (spec §3 invariant).
func ListType(element TypeAnnotation) TypeAnnotation {
	e := element
	return TypeAnnotation{Kind: List, Element: &e}
}

// IsNumeric reports whether t is int or float, regardless of bit width.
func (t TypeAnnotation) IsNumeric() bool {
	return t.Kind == Int || t.Kind == Float
}

// String renders a TypeAnnotation the way JAL source spells it.
func (t TypeAnnotation) String() string {
	switch t.Kind {
	case Int:
		if t.Bits == 32 {
			return "int"
		}
		return fmt.Sprintf("i%d", t.Bits)
	case Float:
		if t.Bits == 32 {
			return "float"
		}
		return fmt.Sprintf("f%d", t.Bits)
	case Bool:
		return "bool"
	case String:
		return "string"
	case Void:
		return "void"
	case List:
		if t.Element == nil {
			return "list"
		}
		return "list{" + t.Element.String() + "}"
	default:
		return "?"
	}
}

// TypesMatch implements the GLOSSARY's typesMatch: structural equality,
// with the special rule that a list whose element type is Void is
// compatible with any list (spec §3 invariant, §4.2 typesMatch rule).
func TypesMatch(a, b TypeAnnotation) bool {
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case Int, Float:
		return a.Bits == b.Bits
	case List:
		if a.Element == nil || b.Element == nil {
			return true
		}
		if a.Element.Kind == Void || b.Element.Kind == Void {
			return true
		}
		return TypesMatch(*a.Element, *b.Element)
	default:
		return true
	}
}

// WiderType implements the GLOSSARY's widerType: float beats int; within a
// kind, the wider bit width wins (spec §4.2).
func WiderType(a, b TypeAnnotation) TypeAnnotation {
	if a.Kind == Float || b.Kind == Float {
		bits := a.Bits
		if a.Kind != Float || (b.Kind == Float && b.Bits > bits) {
			bits = b.Bits
		}
		if bits == 0 {
			bits = 32
		}
		return FloatType(bits)
	}
	bits := a.Bits
	if b.Bits > bits {
		bits = b.Bits
	}
	return IntType(bits)
}
