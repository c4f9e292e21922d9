package parser

import (
	"github.com/jal-lang/jal/internal/ast"
	"github.com/jal-lang/jal/internal/types"
)

// inferScope is one link in the scope-mirroring environment the inference
// pass walks (spec §4.1: "a second walk assigns a TypeAnnotation to every
// VariableDeclaration... by propagating types through a scope-mirroring
// environment"). It is advisory only — the TypeChecker re-derives every
// type independently and is the authority on well-typedness.
type inferScope struct {
	parent *inferScope
	vars   map[string]types.TypeAnnotation
}

func newInferScope(parent *inferScope) *inferScope {
	return &inferScope{parent: parent, vars: map[string]types.TypeAnnotation{}}
}

func (s *inferScope) define(name string, t types.TypeAnnotation) {
	s.vars[name] = t
}

func (s *inferScope) lookup(name string) (types.TypeAnnotation, bool) {
	for sc := s; sc != nil; sc = sc.parent {
		if t, ok := sc.vars[name]; ok {
			return t, true
		}
	}
	return types.TypeAnnotation{}, false
}

type funcSig struct {
	params []types.TypeAnnotation
	ret    types.TypeAnnotation
}

// inferProgram gathers forward function signatures, then walks the program
// assigning TypeAnnotation to every `:=` VariableDeclaration it can resolve.
// Declarations it cannot confidently type are annotated void and left to
// the checker; this pass always returns nil (spec §4.1 keeps this pass
// best-effort).
func inferProgram(prog *ast.Program) error {
	sigs := map[string]funcSig{}
	for _, stmt := range prog.Body {
		if fn, ok := stmt.(*ast.FunctionDeclaration); ok {
			params := make([]types.TypeAnnotation, len(fn.Params))
			for i, p := range fn.Params {
				params[i] = p.Type
			}
			sigs[fn.Name] = funcSig{params: params, ret: fn.ReturnType}
		}
	}

	root := newInferScope(nil)
	inf := &inferrer{sigs: sigs}
	for _, stmt := range prog.Body {
		inf.statement(stmt, root)
	}
	return nil
}

type inferrer struct {
	sigs map[string]funcSig
}

func (inf *inferrer) statement(stmt ast.Statement, scope *inferScope) {
	switch s := stmt.(type) {
	case *ast.VariableDeclaration:
		if s.TypeAnnotation == nil {
			t, ok := inf.expr(s.Initializer, scope)
			if ok {
				s.TypeAnnotation = &t
			} else {
				void := types.VoidType()
				s.TypeAnnotation = &void
			}
		}
		scope.define(s.Name, *s.TypeAnnotation)
	case *ast.BlockStatement:
		inner := newInferScope(scope)
		for _, st := range s.Body {
			inf.statement(st, inner)
		}
	case *ast.FunctionDeclaration:
		inner := newInferScope(scope)
		for _, p := range s.Params {
			inner.define(p.Name, p.Type)
		}
		for _, st := range s.Body.Body {
			inf.statement(st, inner)
		}
	case *ast.IfStatement:
		inf.statement(s.Consequent, scope)
		if s.Alternate != nil {
			inf.statement(s.Alternate, scope)
		}
	case *ast.WhileStatement:
		inf.statement(s.Body, scope)
	case *ast.ForStatement:
		inner := newInferScope(scope)
		if s.IsIndex {
			inner.define(s.Variable, types.IntType(32))
		} else if elemT, ok := inf.expr(s.Iterable, scope); ok && elemT.Kind == types.List && elemT.Element != nil {
			inner.define(s.Variable, *elemT.Element)
		}
		for _, st := range s.Body.Body {
			inf.statement(st, inner)
		}
	}
}

// expr derives a best-effort TypeAnnotation for an expression. The bool
// result is false when the type could not be confidently determined.
func (inf *inferrer) expr(e ast.Expression, scope *inferScope) (types.TypeAnnotation, bool) {
	switch ex := e.(type) {
	case *ast.Literal:
		switch ex.Value.(type) {
		case int64:
			return types.IntType(32), true
		case float64:
			return types.FloatType(32), true
		case bool:
			return types.BoolType(), true
		case string:
			return types.StringType(), true
		default:
			return types.VoidType(), true
		}
	case *ast.Variable:
		return scope.lookup(ex.Name)
	case *ast.BinaryExpression:
		switch ex.Op {
		case "==", "!=", "<", "<=", ">", ">=":
			return types.BoolType(), true
		default:
			lt, lok := inf.expr(ex.Left, scope)
			rt, rok := inf.expr(ex.Right, scope)
			if !lok || !rok {
				return types.TypeAnnotation{}, false
			}
			if ex.Op == "/" && lt.Kind == types.Int && rt.Kind == types.Int {
				return lt, true
			}
			return types.WiderType(lt, rt), true
		}
	case *ast.FunctionCallExpression:
		switch ex.Callee {
		case "len":
			return types.IntType(32), true
		case "type", "stringify":
			return types.StringType(), true
		case "toNumber":
			return types.IntType(32), true
		case "print":
			return types.VoidType(), true
		}
		if sig, ok := inf.sigs[ex.Callee]; ok {
			return sig.ret, true
		}
		return types.TypeAnnotation{}, false
	case *ast.ListExpression:
		if len(ex.Elements) == 0 {
			return types.ListType(types.VoidType()), true
		}
		et, ok := inf.expr(ex.Elements[0], scope)
		if !ok {
			return types.TypeAnnotation{}, false
		}
		return types.ListType(et), true
	case *ast.IndexAccess:
		ot, ok := inf.expr(ex.Object, scope)
		if !ok || ot.Kind != types.List || ot.Element == nil {
			return types.TypeAnnotation{}, false
		}
		return *ot.Element, true
	default:
		return types.TypeAnnotation{}, false
	}
}
