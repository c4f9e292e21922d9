package evaluator

import "github.com/jal-lang/jal/internal/value"

// binding pairs a runtime value with the mutability it was declared with.
type binding struct {
	val     value.Value
	mutable bool
}

// Environment is a lexically-scoped chain of bindings, innermost-first
// (spec §3). Grounded on the teacher's internal/interp/runtime.Environment
// — a parent-linked map of names to values — narrowed to track per-binding
// mutability instead of the teacher's richer symbol metadata.
type Environment struct {
	parent *Environment
	vars   map[string]*binding
}

// NewEnvironment creates a child scope of parent (nil for the global scope).
func NewEnvironment(parent *Environment) *Environment {
	return &Environment{parent: parent, vars: map[string]*binding{}}
}

// Define introduces a new binding in this scope, shadowing any outer
// binding of the same name and replacing any binding of that name already
// in this scope. It does not enforce the shadowing rules; the checker does.
func (e *Environment) Define(name string, val value.Value, mutable bool) {
	e.vars[name] = &binding{val: val, mutable: mutable}
}

// Get resolves name by walking outward from this scope.
func (e *Environment) Get(name string) (value.Value, bool) {
	for env := e; env != nil; env = env.parent {
		if b, ok := env.vars[name]; ok {
			return b.val, true
		}
	}
	return nil, false
}

// Set assigns to an existing binding, walking outward to find it. It
// reports whether the binding was found and whether it was mutable; the
// caller (evaluator) is responsible for turning "found but immutable"
// into a runtime error, since checker already rejects such programs and a
// second message here would duplicate that check's wording.
func (e *Environment) Set(name string, val value.Value) (found bool, mutable bool) {
	for env := e; env != nil; env = env.parent {
		if b, ok := env.vars[name]; ok {
			if !b.mutable {
				return true, false
			}
			b.val = val
			return true, true
		}
	}
	return false, false
}
