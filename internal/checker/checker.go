// Package checker implements JAL's two-pass static TypeChecker (spec §4.2).
// Grounded on the teacher's internal/semantic analyzer: a scope stack with
// case-sensitive symbol definitions (JAL needs no overload resolution, so
// this is considerably smaller than the teacher's symbol table), and an
// accumulate-all-errors-then-report shape mirroring the teacher's
// semantic.Analyzer / errors.FormatErrors pairing.
package checker

import (
	"strconv"

	"github.com/jal-lang/jal/internal/ast"
	"github.com/jal-lang/jal/internal/errors"
	"github.com/jal-lang/jal/internal/types"
)

type symbol struct {
	typ     types.TypeAnnotation
	mutable bool
}

type scope struct {
	parent *scope
	names  map[string]*symbol
}

func newScope(parent *scope) *scope {
	return &scope{parent: parent, names: map[string]*symbol{}}
}

// resolve walks outward; shadowing an outer mutable binding in an inner
// scope is allowed (spec §3 invariant) — define rejects the other case
// (an outer const binding) before a name ever reaches this chain.
func (s *scope) resolve(name string) (*symbol, bool) {
	for sc := s; sc != nil; sc = sc.parent {
		if sym, ok := sc.names[name]; ok {
			return sym, true
		}
	}
	return nil, false
}

type funcSig struct {
	params []types.TypeAnnotation
	ret    types.TypeAnnotation
}

// Checker accumulates diagnostics across a full walk of the Program; it
// never aborts early (spec §4.2).
type Checker struct {
	errs  []*errors.CheckError
	funcs map[string]funcSig
}

// Check type-checks prog and returns every diagnostic found, in source
// order, plus a bool reporting whether the program is well-typed.
func Check(prog *ast.Program) ([]*errors.CheckError, bool) {
	c := &Checker{funcs: map[string]funcSig{}}
	for _, stmt := range prog.Body {
		if fn, ok := stmt.(*ast.FunctionDeclaration); ok {
			params := make([]types.TypeAnnotation, len(fn.Params))
			for i, p := range fn.Params {
				params[i] = p.Type
			}
			c.funcs[fn.Name] = funcSig{params: params, ret: fn.ReturnType}
		}
	}

	root := newScope(nil)
	c.checkBlockBody(prog.Body, root, types.VoidType())
	return c.errs, len(c.errs) == 0
}

func (c *Checker) errorf(msg string) {
	c.errs = append(c.errs, &errors.CheckError{Message: msg})
}

// preRegister hoists every VariableDeclaration name in a statement list so
// forward references inside the same scope resolve rather than reporting
// "undefined" — matching spec §4.2's per-scope pre-registration rule. Each
// name is registered with the annotation the parser's inference pass gave
// its declaration (void if there is none); checking the declaration itself
// later replaces that with the declaration's checked type.
func (c *Checker) preRegister(body []ast.Statement, s *scope) {
	for _, stmt := range body {
		if decl, ok := stmt.(*ast.VariableDeclaration); ok {
			sym := symbol{typ: types.VoidType(), mutable: decl.Mutable}
			if decl.TypeAnnotation != nil {
				sym.typ = *decl.TypeAnnotation
			}
			c.define(s, decl.Name, sym)
		}
	}
}

// define registers name in s with sym. It rejects a same-scope duplicate
// and, per spec §3/§4.2 ("if an outer-scope symbol with the same name
// exists and is const, redeclaration is rejected"), rejects shadowing an
// outer immutable binding. It reports the error itself and returns false
// on either failure.
func (c *Checker) define(s *scope, name string, sym symbol) bool {
	if _, exists := s.names[name]; exists {
		c.errorf("duplicate declaration of '" + name + "' in this scope")
		return false
	}
	if s.parent != nil {
		if outer, ok := s.parent.resolve(name); ok && !outer.mutable {
			c.errorf("cannot shadow immutable binding '" + name + "' in an inner scope")
			return false
		}
	}
	sc := sym
	s.names[name] = &sc
	return true
}

func (c *Checker) checkBlockBody(body []ast.Statement, s *scope, fnReturn types.TypeAnnotation) {
	c.preRegister(body, s)
	for _, stmt := range body {
		c.checkStatement(stmt, s, fnReturn)
	}
}

func (c *Checker) checkStatement(stmt ast.Statement, s *scope, fnReturn types.TypeAnnotation) {
	switch st := stmt.(type) {
	case *ast.VariableDeclaration:
		initT, ok := c.checkExpr(st.Initializer, s)
		if !ok {
			return
		}
		if st.TypeAnnotation == nil {
			st.TypeAnnotation = &initT
		} else if !types.TypesMatch(*st.TypeAnnotation, initT) {
			c.errorf("cannot assign " + initT.String() + " to declared type " + st.TypeAnnotation.String() + " in declaration of '" + st.Name + "'")
		}
		if sym, ok := s.names[st.Name]; ok {
			sym.typ = *st.TypeAnnotation
		} else {
			c.define(s, st.Name, symbol{typ: *st.TypeAnnotation, mutable: st.Mutable})
		}

	case *ast.AssignmentStatement:
		target, ok := st.Target.(*ast.Variable)
		if !ok {
			// Index-access assignment: type-check both sides, and require the
			// underlying bound variable to be mutable — the same rule §4.2
			// states for ListPushStatement's target, applied to `xs[i] = v`.
			targetT, ok := c.checkExpr(st.Target, s)
			if !ok {
				return
			}
			if base := rootVariable(st.Target); base != nil {
				if sym, found := s.resolve(base.Name); found && !sym.mutable {
					c.errorf("cannot assign into index of immutable binding '" + base.Name + "'")
				}
			}
			valT, ok := c.checkExpr(st.Value, s)
			if ok && !types.TypesMatch(targetT, valT) {
				c.errorf("cannot assign " + valT.String() + " to index of type " + targetT.String())
			}
			return
		}
		sym, found := s.resolve(target.Name)
		if !found {
			c.errorf("assignment to undeclared variable '" + target.Name + "'")
			return
		}
		if !sym.mutable {
			c.errorf("cannot assign to immutable binding '" + target.Name + "'")
		}
		valT, ok := c.checkExpr(st.Value, s)
		if ok && !types.TypesMatch(sym.typ, valT) {
			c.errorf("cannot assign " + valT.String() + " to '" + target.Name + "' of type " + sym.typ.String())
		}

	case *ast.ExpressionStatement:
		c.checkExpr(st.Expr, s)

	case *ast.BlockStatement:
		inner := newScope(s)
		c.checkBlockBody(st.Body, inner, fnReturn)

	case *ast.FunctionDeclaration:
		inner := newScope(s)
		for _, p := range st.Params {
			c.define(inner, p.Name, symbol{typ: p.Type, mutable: false})
		}
		c.checkBlockBody(st.Body.Body, inner, st.ReturnType)

	case *ast.ListPushStatement:
		targetT, ok := c.checkExpr(st.Target, s)
		if !ok {
			return
		}
		if targetT.Kind != types.List {
			c.errorf("list push target must be a list, got " + targetT.String())
			return
		}
		if target, isVar := st.Target.(*ast.Variable); isVar {
			if sym, found := s.resolve(target.Name); found && !sym.mutable {
				c.errorf("cannot push onto immutable binding '" + target.Name + "'")
			}
		}
		valT, ok := c.checkExpr(st.Value, s)
		if !ok {
			return
		}
		if targetT.Element != nil && targetT.Element.Kind != types.Void && valT.Kind == types.List && valT.Element != nil {
			if !types.TypesMatch(*targetT.Element, *valT.Element) {
				c.errorf("cannot push list{" + valT.Element.String() + "} onto " + targetT.String())
			}
		} else if targetT.Element != nil && targetT.Element.Kind != types.Void && valT.Kind != types.List {
			if !types.TypesMatch(*targetT.Element, valT) {
				c.errorf("cannot push " + valT.String() + " onto " + targetT.String())
			}
		}

	case *ast.ReturnStatement:
		if st.Argument == nil {
			if fnReturn.Kind != types.Void {
				c.errorf("missing return value for function returning " + fnReturn.String())
			}
			return
		}
		argT, ok := c.checkExpr(st.Argument, s)
		if ok && !types.TypesMatch(fnReturn, argT) {
			c.errorf("cannot return " + argT.String() + " from function declared to return " + fnReturn.String())
		}

	case *ast.IfStatement:
		condT, ok := c.checkExpr(st.Condition, s)
		if ok && condT.Kind != types.Bool {
			c.errorf("if condition must be bool, got " + condT.String())
		}
		c.checkStatement(st.Consequent, s, fnReturn)
		if st.Alternate != nil {
			c.checkStatement(st.Alternate, s, fnReturn)
		}

	case *ast.WhileStatement:
		condT, ok := c.checkExpr(st.Condition, s)
		if ok && condT.Kind != types.Bool {
			c.errorf("while condition must be bool, got " + condT.String())
		}
		c.checkStatement(st.Body, s, fnReturn)

	case *ast.ForStatement:
		iterT, ok := c.checkExpr(st.Iterable, s)
		if !ok {
			return
		}
		if iterT.Kind != types.List {
			c.errorf("for-loop iterable must be a list, got " + iterT.String())
			return
		}
		inner := newScope(s)
		if st.IsIndex {
			c.define(inner, st.Variable, symbol{typ: types.IntType(32), mutable: false})
		} else {
			elem := types.VoidType()
			if iterT.Element != nil {
				elem = *iterT.Element
			}
			c.define(inner, st.Variable, symbol{typ: elem, mutable: false})
		}
		c.checkBlockBody(st.Body.Body, inner, fnReturn)

	default:
		c.errorf("unsupported statement")
	}
}

// builtinSig reports the return type of JAL's five built-ins (spec §4.3);
// ok is false for a user-defined call. It returns no parameter list and
// always sets variadicAny: the per-built-in arity and argument checks are
// made in checkExpr.
func builtinSig(name string, argc int) (params []types.TypeAnnotation, ret types.TypeAnnotation, variadicAny bool, ok bool) {
	switch name {
	case "print":
		return nil, types.VoidType(), true, true
	case "len":
		return nil, types.IntType(32), true, true
	case "type":
		return nil, types.StringType(), true, true
	case "stringify":
		return nil, types.StringType(), true, true
	case "toNumber":
		return nil, types.IntType(32), true, true
	default:
		return nil, types.TypeAnnotation{}, false, false
	}
}

func (c *Checker) checkExpr(e ast.Expression, s *scope) (types.TypeAnnotation, bool) {
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
		sym, ok := s.resolve(ex.Name)
		if !ok {
			c.errorf("undefined variable '" + ex.Name + "'")
			return types.TypeAnnotation{}, false
		}
		return sym.typ, true

	case *ast.BinaryExpression:
		lt, lok := c.checkExpr(ex.Left, s)
		rt, rok := c.checkExpr(ex.Right, s)
		if !lok || !rok {
			return types.TypeAnnotation{}, false
		}
		switch ex.Op {
		case "==", "!=":
			return types.BoolType(), true
		case "<", "<=", ">", ">=":
			if !lt.IsNumeric() || !rt.IsNumeric() {
				c.errorf("comparison operands must be numeric, got " + lt.String() + " and " + rt.String())
				return types.TypeAnnotation{}, false
			}
			return types.BoolType(), true
		case "+":
			if !lt.IsNumeric() || !rt.IsNumeric() {
				c.errorf("operator '+' requires numeric operands, got " + lt.String() + " and " + rt.String())
				return types.TypeAnnotation{}, false
			}
			return types.WiderType(lt, rt), true
		case "/":
			if !lt.IsNumeric() || !rt.IsNumeric() {
				c.errorf("operator '/' requires numeric operands, got " + lt.String() + " and " + rt.String())
				return types.TypeAnnotation{}, false
			}
			if lt.Kind == types.Int && rt.Kind == types.Int {
				// Integer division preserves the left operand's type (§4.2).
				return lt, true
			}
			return types.WiderType(lt, rt), true
		default: // - * %
			if !lt.IsNumeric() || !rt.IsNumeric() {
				c.errorf("operator '" + ex.Op + "' requires numeric operands, got " + lt.String() + " and " + rt.String())
				return types.TypeAnnotation{}, false
			}
			return types.WiderType(lt, rt), true
		}

	case *ast.FunctionCallExpression:
		argTypes := make([]types.TypeAnnotation, 0, len(ex.Args))
		allOK := true
		for _, a := range ex.Args {
			t, ok := c.checkExpr(a, s)
			if !ok {
				allOK = false
				continue
			}
			argTypes = append(argTypes, t)
		}
		if _, ret, _, isBuiltin := builtinSig(ex.Callee, len(ex.Args)); isBuiltin {
			switch ex.Callee {
			case "stringify", "type":
				if len(ex.Args) != 1 {
					c.errorf(ex.Callee + "() takes exactly one argument")
				}
			case "len":
				if len(ex.Args) != 1 {
					c.errorf("len() takes exactly one argument")
				} else if allOK && argTypes[0].Kind != types.List && argTypes[0].Kind != types.String {
					c.errorf("len() requires a list or string argument, got " + argTypes[0].String())
				}
			case "toNumber":
				if len(ex.Args) != 1 {
					c.errorf("toNumber() takes exactly one argument")
				} else if allOK && argTypes[0].Kind != types.String && !argTypes[0].IsNumeric() && argTypes[0].Kind != types.Bool {
					c.errorf("toNumber() requires a string, number, or bool argument, got " + argTypes[0].String())
				}
			}
			return ret, allOK
		}
		sig, found := c.funcs[ex.Callee]
		if !found {
			c.errorf("call to undefined function '" + ex.Callee + "'")
			return types.TypeAnnotation{}, false
		}
		if len(sig.params) != len(argTypes) {
			c.errorf("function '" + ex.Callee + "' expects " + itoa(len(sig.params)) + " argument(s), got " + itoa(len(argTypes)))
			return sig.ret, allOK
		}
		for i, pt := range sig.params {
			if i < len(argTypes) && !types.TypesMatch(pt, argTypes[i]) {
				c.errorf("argument " + itoa(i+1) + " to '" + ex.Callee + "' must be " + pt.String() + ", got " + argTypes[i].String())
			}
		}
		return sig.ret, allOK

	case *ast.ListExpression:
		if len(ex.Elements) == 0 {
			return types.ListType(types.VoidType()), true
		}
		first, ok := c.checkExpr(ex.Elements[0], s)
		if !ok {
			return types.TypeAnnotation{}, false
		}
		for _, el := range ex.Elements[1:] {
			t, ok := c.checkExpr(el, s)
			if ok && !types.TypesMatch(first, t) {
				c.errorf("list elements must share a type: " + first.String() + " vs " + t.String())
			}
		}
		return types.ListType(first), true

	case *ast.IndexAccess:
		objT, ok := c.checkExpr(ex.Object, s)
		if !ok {
			return types.TypeAnnotation{}, false
		}
		idxT, idxOk := c.checkExpr(ex.Index, s)
		if idxOk && idxT.Kind != types.Int {
			c.errorf("index must be an int, got " + idxT.String())
		}
		if objT.Kind != types.List {
			c.errorf("cannot index into " + objT.String())
			return types.TypeAnnotation{}, false
		}
		if objT.Element == nil {
			return types.VoidType(), true
		}
		return *objT.Element, true

	default:
		c.errorf("unsupported expression")
		return types.TypeAnnotation{}, false
	}
}

func itoa(n int) string { return strconv.Itoa(n) }

// rootVariable walks a chain of IndexAccess nodes down to the Variable it
// ultimately indexes into, or nil if the chain bottoms out in something
// else (e.g. a function call result).
func rootVariable(e ast.Expression) *ast.Variable {
	for {
		switch x := e.(type) {
		case *ast.Variable:
			return x
		case *ast.IndexAccess:
			e = x.Object
		default:
			return nil
		}
	}
}
