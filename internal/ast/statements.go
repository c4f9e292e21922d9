package ast

import (
	"strconv"
	"strings"

	"github.com/jal-lang/jal/internal/types"
)

func toString(v any) string {
	switch x := v.(type) {
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	default:
		return ""
	}
}

// VariableDeclaration is `let`/`const NAME (:= | : TYPE =) EXPR`.
// TypeAnnotation is filled in by the parser's inference pass (§4.1) when
// the source used `:=`; it is always non-nil after parsing.
type VariableDeclaration struct {
	TypeAnnotation *types.TypeAnnotation
	Initializer    Expression
	Name           string
	Mutable        bool
}

func (*VariableDeclaration) statementNode() {}
func (v *VariableDeclaration) String() string {
	kw := "const"
	if v.Mutable {
		kw = "let"
	}
	return kw + " " + v.Name + " = " + v.Initializer.String()
}

// AssignmentStatement is `target = value`.
type AssignmentStatement struct {
	Target Expression
	Value  Expression
}

func (*AssignmentStatement) statementNode() {}
func (a *AssignmentStatement) String() string {
	return a.Target.String() + " = " + a.Value.String()
}

// ExpressionStatement is a bare expression used for its side effect.
type ExpressionStatement struct {
	Expr Expression
}

func (*ExpressionStatement) statementNode() {}
func (e *ExpressionStatement) String() string { return e.Expr.String() }

// BlockStatement is an ordered `{ ... }` body.
type BlockStatement struct {
	Body []Statement
}

func (*BlockStatement) statementNode() {}
func (b *BlockStatement) String() string {
	var sb strings.Builder
	sb.WriteString("{ ")
	for _, s := range b.Body {
		sb.WriteString(s.String())
		sb.WriteString("; ")
	}
	sb.WriteString("}")
	return sb.String()
}

// FunctionDeclaration is `fn NAME(params) : RET { body }`.
type FunctionDeclaration struct {
	Body       *BlockStatement
	Name       string
	Params     []Parameter
	ReturnType types.TypeAnnotation
}

func (*FunctionDeclaration) statementNode() {}
func (f *FunctionDeclaration) String() string {
	parts := make([]string, len(f.Params))
	for i, p := range f.Params {
		parts[i] = p.Name + ": " + p.Type.String()
	}
	return "fn " + f.Name + "(" + strings.Join(parts, ", ") + "): " + f.ReturnType.String() + " " + f.Body.String()
}

// ListPushStatement is `target << value` (§4.1 LIST_PUSH lookahead).
type ListPushStatement struct {
	Target Expression
	Value  Expression
}

func (*ListPushStatement) statementNode() {}
func (l *ListPushStatement) String() string {
	return l.Target.String() + " << " + l.Value.String()
}

// ReturnStatement is `return [expr]`.
type ReturnStatement struct {
	Argument Expression // nil for a bare `return`
}

func (*ReturnStatement) statementNode() {}
func (r *ReturnStatement) String() string {
	if r.Argument == nil {
		return "return"
	}
	return "return " + r.Argument.String()
}

// IfStatement is `if (cond) { ... } [else { ... }]`.
type IfStatement struct {
	Condition  Expression
	Consequent *BlockStatement
	Alternate  *BlockStatement // nil if no else branch
}

func (*IfStatement) statementNode() {}
func (i *IfStatement) String() string {
	s := "if (" + i.Condition.String() + ") " + i.Consequent.String()
	if i.Alternate != nil {
		s += " else " + i.Alternate.String()
	}
	return s
}

// WhileStatement is `while (cond) { ... }`.
type WhileStatement struct {
	Condition Expression
	Body      *BlockStatement
}

func (*WhileStatement) statementNode() {}
func (w *WhileStatement) String() string {
	return "while (" + w.Condition.String() + ") " + w.Body.String()
}

// ForStatement is `for NAME (of|in) iterable { ... }`.
// IsIndex is true for `of` (index iteration), false for `in` (element
// iteration) — spec §4.1.
type ForStatement struct {
	Iterable Expression
	Body     *BlockStatement
	Variable string
	IsIndex  bool
}

func (*ForStatement) statementNode() {}
func (f *ForStatement) String() string {
	kw := "in"
	if f.IsIndex {
		kw = "of"
	}
	return "for " + f.Variable + " " + kw + " " + f.Iterable.String() + " " + f.Body.String()
}
