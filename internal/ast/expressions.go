package ast

import "strings"

// Literal is a constant value fixed at parse time: a number, string,
// boolean, or null (spec §3).
type Literal struct {
	Value any // int64, float64, bool, string, or nil
}

func (*Literal) expressionNode() {}
func (l *Literal) String() string {
	if l.Value == nil {
		return "null"
	}
	switch v := l.Value.(type) {
	case string:
		return "\"" + v + "\""
	default:
		return toString(v)
	}
}

// Variable is a reference to a bound name.
type Variable struct {
	Name string
}

func (*Variable) expressionNode() {}
func (v *Variable) String() string { return v.Name }

// BinaryExpression applies a binary operator to two operands.
// Op is one of: + - * / % == != < <= > >=.
type BinaryExpression struct {
	Left  Expression
	Right Expression
	Op    string
}

func (*BinaryExpression) expressionNode() {}
func (b *BinaryExpression) String() string {
	return "(" + b.Left.String() + " " + b.Op + " " + b.Right.String() + ")"
}

// FunctionCallExpression invokes either a user function or one of the five
// built-ins (spec §4.3).
type FunctionCallExpression struct {
	Callee string
	Args   []Expression
}

func (*FunctionCallExpression) expressionNode() {}
func (f *FunctionCallExpression) String() string {
	parts := make([]string, len(f.Args))
	for i, a := range f.Args {
		parts[i] = a.String()
	}
	return f.Callee + "(" + strings.Join(parts, ", ") + ")"
}

// ListExpression is a list literal `[e1, e2, ...]`.
type ListExpression struct {
	Elements []Expression
}

func (*ListExpression) expressionNode() {}
func (l *ListExpression) String() string {
	parts := make([]string, len(l.Elements))
	for i, e := range l.Elements {
		parts[i] = e.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// IndexAccess is `object[index]`, possibly chained left-to-right.
type IndexAccess struct {
	Object Expression
	Index  Expression
}

func (*IndexAccess) expressionNode() {}
func (i *IndexAccess) String() string {
	return i.Object.String() + "[" + i.Index.String() + "]"
}
