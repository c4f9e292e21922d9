// Package ast defines JAL's abstract syntax tree, per spec §3. Nodes are
// small, exported structs grouped into Expression/Statement interfaces —
// the same tagged-variant-over-interface shape the teacher uses in its own
// internal/ast package, trimmed to JAL's ten statement kinds and six
// expression kinds instead of DWScript's full OOP surface.
package ast

import (
	"strings"

	"github.com/jal-lang/jal/internal/types"
)

// Node is the root interface implemented by every AST node.
type Node interface {
	String() string
}

// Expression is any node that produces a RuntimeValue when evaluated.
type Expression interface {
	Node
	expressionNode()
}

// Statement is any node that is executed for effect.
type Statement interface {
	Node
	statementNode()
}

// Program is the root node: an ordered sequence of top-level statements.
type Program struct {
	Body []Statement
}

func (p *Program) String() string {
	var sb strings.Builder
	for _, s := range p.Body {
		sb.WriteString(s.String())
		sb.WriteString("\n")
	}
	return sb.String()
}

// Parameter is a single `name : type` entry in a function declaration.
type Parameter struct {
	Type types.TypeAnnotation
	Name string
}
