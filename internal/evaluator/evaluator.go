// Package evaluator implements JAL's tree-walking evaluator (spec §4.3).
// Grounded on the teacher's internal/interp.Interpreter: a single-pass
// walk driven by a type switch over ast.Statement/ast.Expression, an
// Environment chain for scoping, and an explicit control-flow signal for
// return instead of Go panics — mirroring the teacher's own
// non-panic-based control flow for `exit`/`break`.
package evaluator

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jal-lang/jal/internal/ast"
	"github.com/jal-lang/jal/internal/builtins"
	"github.com/jal-lang/jal/internal/errors"
	"github.com/jal-lang/jal/internal/value"
)

// DefaultMaxDepth bounds function-call recursion (SPEC_FULL.md §C); the CLI
// exposes this as --max-depth.
const DefaultMaxDepth = 10000

// control is the unwind signal a statement can produce: a pending return
// value bubbling up through enclosing blocks, loops, and if-branches.
type control struct {
	returning bool
	value     value.Value
}

var noControl = control{}

// Evaluator walks a Program, executing it against a global Environment.
type Evaluator struct {
	global    *Environment
	functions map[string]*ast.FunctionDeclaration
	out       io.Writer
	maxDepth  int
	depth     int
	steps     []Step

	// Trace, when set, receives a line for every function call and return
	// (SPEC_FULL.md §A.2: the CLI's --trace flag wires this to os.Stderr).
	Trace io.Writer
}

// Step is one entry in the evaluator's step log (SPEC_FULL.md §C: "the
// EXE dump is the ordered step log of statements executed... a flat list
// of one-line descriptions: {"step": N, "kind": "...", "detail": "..."}").
type Step struct {
	Step   int    `json:"step"`
	Kind   string `json:"kind"`
	Detail string `json:"detail"`
}

// Steps returns the ordered step log recorded by the most recent Run.
func (e *Evaluator) Steps() []Step { return e.steps }

// logStep appends one step-log entry per statement actually executed, in
// evaluation order (including statements inside loop bodies and function
// calls, which run once per pass through them).
func (e *Evaluator) logStep(stmt ast.Statement) {
	kind := strings.TrimPrefix(fmt.Sprintf("%T", stmt), "*ast.")
	e.steps = append(e.steps, Step{Step: len(e.steps) + 1, Kind: kind, Detail: stmt.String()})
}

// New builds an Evaluator that writes print() output to out (os.Stdout if
// nil) and aborts recursive calls past maxDepth (DefaultMaxDepth if <= 0).
func New(out io.Writer, maxDepth int) *Evaluator {
	if out == nil {
		out = os.Stdout
	}
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	return &Evaluator{
		global:    NewEnvironment(nil),
		functions: map[string]*ast.FunctionDeclaration{},
		out:       out,
		maxDepth:  maxDepth,
	}
}

// Run executes prog per spec §4.3's top-level protocol: function
// declarations are registered (not executed in place), top-level variable
// declarations populate the global environment in source order, bare
// top-level expression statements are skipped, and finally `main` is
// invoked if the program declares one.
func (e *Evaluator) Run(prog *ast.Program) error {
	for _, stmt := range prog.Body {
		if fn, ok := stmt.(*ast.FunctionDeclaration); ok {
			e.functions[fn.Name] = fn
		}
	}

	for _, stmt := range prog.Body {
		switch stmt.(type) {
		case *ast.FunctionDeclaration:
			continue // already registered
		case *ast.ExpressionStatement:
			continue // no top-level side effects outside of main
		default:
			if _, err := e.execStatement(stmt, e.global); err != nil {
				return err
			}
		}
	}

	if _, ok := e.functions["main"]; ok {
		_, err := e.callFunction("main", nil)
		return err
	}
	return nil
}

func (e *Evaluator) execBlock(block *ast.BlockStatement, env *Environment) (control, error) {
	inner := NewEnvironment(env)
	for _, stmt := range block.Body {
		ctl, err := e.execStatement(stmt, inner)
		if err != nil {
			return noControl, err
		}
		if ctl.returning {
			return ctl, nil
		}
	}
	return noControl, nil
}

func (e *Evaluator) execStatement(stmt ast.Statement, env *Environment) (control, error) {
	e.logStep(stmt)
	switch st := stmt.(type) {
	case *ast.VariableDeclaration:
		val, err := e.evalExpr(st.Initializer, env)
		if err != nil {
			return noControl, err
		}
		env.Define(st.Name, val, st.Mutable)
		return noControl, nil

	case *ast.AssignmentStatement:
		val, err := e.evalExpr(st.Value, env)
		if err != nil {
			return noControl, err
		}
		return noControl, e.assign(st.Target, val, env)

	case *ast.ExpressionStatement:
		_, err := e.evalExpr(st.Expr, env)
		return noControl, err

	case *ast.BlockStatement:
		return e.execBlock(st, env)

	case *ast.FunctionDeclaration:
		e.functions[st.Name] = st
		return noControl, nil

	case *ast.ListPushStatement:
		targetVal, err := e.evalExpr(st.Target, env)
		if err != nil {
			return noControl, err
		}
		list, ok := targetVal.(value.ListValue)
		if !ok {
			return noControl, &errors.RuntimeError{Message: "cannot push onto a non-list value (got " + value.TypeName(targetVal) + ")"}
		}
		val, err := e.evalExpr(st.Value, env)
		if err != nil {
			return noControl, err
		}
		list.Push(val)
		return noControl, nil

	case *ast.ReturnStatement:
		if st.Argument == nil {
			return control{returning: true, value: value.NullValue{}}, nil
		}
		val, err := e.evalExpr(st.Argument, env)
		if err != nil {
			return noControl, err
		}
		return control{returning: true, value: val}, nil

	case *ast.IfStatement:
		condVal, err := e.evalExpr(st.Condition, env)
		if err != nil {
			return noControl, err
		}
		if value.Truthy(condVal) {
			return e.execBlock(st.Consequent, env)
		} else if st.Alternate != nil {
			return e.execBlock(st.Alternate, env)
		}
		return noControl, nil

	case *ast.WhileStatement:
		for {
			condVal, err := e.evalExpr(st.Condition, env)
			if err != nil {
				return noControl, err
			}
			if !value.Truthy(condVal) {
				return noControl, nil
			}
			ctl, err := e.execBlock(st.Body, env)
			if err != nil {
				return noControl, err
			}
			if ctl.returning {
				return ctl, nil
			}
		}

	case *ast.ForStatement:
		iterVal, err := e.evalExpr(st.Iterable, env)
		if err != nil {
			return noControl, err
		}
		list, ok := iterVal.(value.ListValue)
		if !ok {
			return noControl, &errors.RuntimeError{Message: "for-loop iterable must be a list"}
		}
		elems := *list.Elements
		for i := 0; i < len(elems); i++ {
			// Fresh environment per iteration (spec §4.3) so closures or
			// per-iteration bindings never alias the loop variable.
			iterEnv := NewEnvironment(env)
			if st.IsIndex {
				iterEnv.Define(st.Variable, value.NewInt(int64(i)), false)
			} else {
				iterEnv.Define(st.Variable, elems[i], false)
			}
			ctl, err := e.execBlock(st.Body, iterEnv)
			if err != nil {
				return noControl, err
			}
			if ctl.returning {
				return ctl, nil
			}
		}
		return noControl, nil

	default:
		return noControl, &errors.RuntimeError{Message: "unsupported statement in evaluator"}
	}
}

func (e *Evaluator) assign(target ast.Expression, val value.Value, env *Environment) error {
	switch t := target.(type) {
	case *ast.Variable:
		found, mutable := env.Set(t.Name, val)
		if !found {
			return &errors.RuntimeError{Message: "assignment to undeclared variable '" + t.Name + "'"}
		}
		if !mutable {
			return &errors.RuntimeError{Message: "cannot assign to immutable binding '" + t.Name + "'"}
		}
		return nil
	case *ast.IndexAccess:
		objVal, err := e.evalExpr(t.Object, env)
		if err != nil {
			return err
		}
		list, ok := objVal.(value.ListValue)
		if !ok {
			return &errors.RuntimeError{Message: "cannot index-assign into a non-list value"}
		}
		idxVal, err := e.evalExpr(t.Index, env)
		if err != nil {
			return err
		}
		idx, ok := idxVal.(value.NumberValue)
		if !ok {
			return &errors.RuntimeError{Message: "list index must be a number"}
		}
		i := idx.Int()
		elems := *list.Elements
		if i < 0 || int(i) >= len(elems) {
			return &errors.RuntimeError{Message: "list index out of range"}
		}
		elems[i] = val
		return nil
	default:
		return &errors.RuntimeError{Message: "invalid assignment target"}
	}
}

func (e *Evaluator) evalExpr(expr ast.Expression, env *Environment) (value.Value, error) {
	switch ex := expr.(type) {
	case *ast.Literal:
		return literalToValue(ex.Value), nil

	case *ast.Variable:
		val, ok := env.Get(ex.Name)
		if !ok {
			return nil, &errors.RuntimeError{Message: "undefined variable '" + ex.Name + "'"}
		}
		return val, nil

	case *ast.BinaryExpression:
		return e.evalBinary(ex, env)

	case *ast.FunctionCallExpression:
		args := make([]value.Value, len(ex.Args))
		for i, a := range ex.Args {
			v, err := e.evalExpr(a, env)
			if err != nil {
				return nil, err
			}
			args[i] = v
		}
		if builtins.Names[ex.Callee] {
			return builtins.Call(ex.Callee, args, e.out)
		}
		return e.callFunction(ex.Callee, args)

	case *ast.ListExpression:
		elems := make([]value.Value, len(ex.Elements))
		for i, el := range ex.Elements {
			v, err := e.evalExpr(el, env)
			if err != nil {
				return nil, err
			}
			elems[i] = v
		}
		return value.NewList(elems), nil

	case *ast.IndexAccess:
		objVal, err := e.evalExpr(ex.Object, env)
		if err != nil {
			return nil, err
		}
		list, ok := objVal.(value.ListValue)
		if !ok {
			return nil, &errors.RuntimeError{Message: "cannot index into a non-list value"}
		}
		idxVal, err := e.evalExpr(ex.Index, env)
		if err != nil {
			return nil, err
		}
		idx, ok := idxVal.(value.NumberValue)
		if !ok {
			return nil, &errors.RuntimeError{Message: "list index must be a number"}
		}
		elems := *list.Elements
		i := idx.Int()
		if i < 0 || int(i) >= len(elems) {
			// Out-of-range reads yield null rather than erroring (spec §4.3).
			return value.NullValue{}, nil
		}
		return elems[i], nil

	default:
		return nil, &errors.RuntimeError{Message: "unsupported expression in evaluator"}
	}
}

// callFunction invokes a user-defined function. Frame parenting is
// lexical-to-global (spec §9 Open Question, resolved in DESIGN.md): the
// call frame's parent is the global environment, not the caller's, so JAL
// functions close over top-level bindings only, never the caller's locals.
func (e *Evaluator) callFunction(name string, args []value.Value) (value.Value, error) {
	fn, ok := e.functions[name]
	if !ok {
		return nil, &errors.RuntimeError{Message: "call to undefined function '" + name + "'"}
	}
	e.depth++
	defer func() { e.depth-- }()
	if e.depth > e.maxDepth {
		return nil, &errors.RuntimeError{Message: "stack overflow: maximum call depth exceeded"}
	}
	if e.Trace != nil {
		fmt.Fprintf(e.Trace, "call %s depth=%d\n", name, e.depth)
	}

	frame := NewEnvironment(e.global)
	for i, p := range fn.Params {
		if i < len(args) {
			frame.Define(p.Name, args[i], false)
		}
	}

	ctl, err := e.execBlock(fn.Body, frame)
	if err != nil {
		return nil, err
	}
	if ctl.returning {
		if e.Trace != nil {
			fmt.Fprintf(e.Trace, "return %s -> %s\n", name, ctl.value.String())
		}
		return ctl.value, nil
	}
	// Missing return in a non-void function (spec §9 Open Question,
	// resolved in DESIGN.md): falls through returning null rather than
	// erroring — the checker does not check that every path of a non-void
	// function ends in a return.
	if e.Trace != nil {
		fmt.Fprintf(e.Trace, "return %s -> null\n", name)
	}
	return value.NullValue{}, nil
}

func literalToValue(v any) value.Value {
	switch x := v.(type) {
	case int64:
		return value.NewInt(x)
	case float64:
		return value.NewFloat(x)
	case bool:
		return value.BoolValue{Val: x}
	case string:
		return value.StringValue{Val: x}
	default:
		return value.NullValue{}
	}
}

func (e *Evaluator) evalBinary(ex *ast.BinaryExpression, env *Environment) (value.Value, error) {
	left, err := e.evalExpr(ex.Left, env)
	if err != nil {
		return nil, err
	}
	right, err := e.evalExpr(ex.Right, env)
	if err != nil {
		return nil, err
	}

	switch ex.Op {
	case "==":
		return value.BoolValue{Val: valuesEqual(left, right)}, nil
	case "!=":
		return value.BoolValue{Val: !valuesEqual(left, right)}, nil
	}

	ln, lok := left.(value.NumberValue)
	rn, rok := right.(value.NumberValue)
	if !lok || !rok {
		return nil, &errors.RuntimeError{Message: "operator '" + ex.Op + "' requires numeric operands"}
	}
	isFloat := ln.IsFloat || rn.IsFloat

	switch ex.Op {
	case "<":
		return value.BoolValue{Val: ln.Val < rn.Val}, nil
	case "<=":
		return value.BoolValue{Val: ln.Val <= rn.Val}, nil
	case ">":
		return value.BoolValue{Val: ln.Val > rn.Val}, nil
	case ">=":
		return value.BoolValue{Val: ln.Val >= rn.Val}, nil
	case "+":
		return numberResult(ln.Val+rn.Val, isFloat), nil
	case "-":
		return numberResult(ln.Val-rn.Val, isFloat), nil
	case "*":
		return numberResult(ln.Val*rn.Val, isFloat), nil
	case "/":
		if rn.Val == 0 {
			return nil, &errors.RuntimeError{Message: "division by zero"}
		}
		if isFloat {
			return value.NewFloat(ln.Val / rn.Val), nil
		}
		return value.NewInt(int64(ln.Val) / int64(rn.Val)), nil
	case "%":
		if rn.Val == 0 {
			return nil, &errors.RuntimeError{Message: "modulo by zero"}
		}
		if isFloat {
			return value.NewFloat(float64(int64(ln.Val) % int64(rn.Val))), nil
		}
		return value.NewInt(int64(ln.Val) % int64(rn.Val)), nil
	default:
		return nil, &errors.RuntimeError{Message: "unsupported operator '" + ex.Op + "'"}
	}
}

func numberResult(v float64, isFloat bool) value.Value {
	if isFloat {
		return value.NewFloat(v)
	}
	return value.NewInt(int64(v))
}

func valuesEqual(a, b value.Value) bool {
	switch av := a.(type) {
	case value.NumberValue:
		bv, ok := b.(value.NumberValue)
		return ok && av.Val == bv.Val
	case value.StringValue:
		bv, ok := b.(value.StringValue)
		return ok && av.Val == bv.Val
	case value.BoolValue:
		bv, ok := b.(value.BoolValue)
		return ok && av.Val == bv.Val
	case value.NullValue:
		_, ok := b.(value.NullValue)
		return ok
	case value.ListValue:
		bv, ok := b.(value.ListValue)
		if !ok || len(*av.Elements) != len(*bv.Elements) {
			return false
		}
		for i := range *av.Elements {
			if !valuesEqual((*av.Elements)[i], (*bv.Elements)[i]) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
