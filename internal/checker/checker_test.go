package checker

import (
	"testing"

	"github.com/jal-lang/jal/internal/errors"
	"github.com/jal-lang/jal/internal/lexer"
	"github.com/jal-lang/jal/internal/parser"
)

func checkSource(t *testing.T, src string) ([]*errors.CheckError, bool) {
	t.Helper()
	prog, err := parser.ParseProgram(lexer.New(src))
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	return Check(prog)
}

func TestCheckWellTypedProgram(t *testing.T) {
	_, ok := checkSource(t, `let x := 1 let y := x + 2 print(y)`)
	if !ok {
		t.Fatalf("expected well-typed program")
	}
}

func TestCheckRejectsImmutableAssignment(t *testing.T) {
	_, ok := checkSource(t, `const x := 1 x = 2`)
	if ok {
		t.Fatalf("expected an error assigning to a const binding")
	}
}

func TestCheckRejectsUndefinedVariable(t *testing.T) {
	_, ok := checkSource(t, `print(missing)`)
	if ok {
		t.Fatalf("expected an error referencing an undefined variable")
	}
}

func TestCheckRejectsTypeMismatchInDeclaration(t *testing.T) {
	_, ok := checkSource(t, `let x: string = 5`)
	if ok {
		t.Fatalf("expected a type mismatch error")
	}
}

func TestCheckAllowsShadowingInnerScope(t *testing.T) {
	_, ok := checkSource(t, `let x := 1 if (true) { let x := "shadow" print(x) }`)
	if !ok {
		t.Fatalf("expected shadowing in an inner scope to be allowed")
	}
}

func TestCheckRejectsShadowingOuterConst(t *testing.T) {
	_, ok := checkSource(t, `const k := 1 if (true) { let k := 2 print(k) }`)
	if ok {
		t.Fatalf("expected an error shadowing an outer const binding in an inner scope")
	}
}

func TestCheckRejectsDuplicateInSameScope(t *testing.T) {
	_, ok := checkSource(t, `let x := 1 let x := 2`)
	if ok {
		t.Fatalf("expected an error for a duplicate declaration in the same scope")
	}
}

func TestCheckComparisonRequiresNumeric(t *testing.T) {
	_, ok := checkSource(t, `let x := "a" < "b"`)
	if ok {
		t.Fatalf("expected comparison of strings to be rejected")
	}
}

func TestCheckFunctionCallArity(t *testing.T) {
	_, ok := checkSource(t, `
		fn add(a: int, b: int): int { return a + b }
		let x := add(1)
	`)
	if ok {
		t.Fatalf("expected an arity mismatch error")
	}
}

func TestCheckForLoopOverNonList(t *testing.T) {
	_, ok := checkSource(t, `for i in 5 { print(i) }`)
	if ok {
		t.Fatalf("expected an error iterating over a non-list value")
	}
}

func TestCheckListPushElementTypeMismatch(t *testing.T) {
	_, ok := checkSource(t, `let xs := [1, 2] xs << "three"`)
	if ok {
		t.Fatalf("expected an error pushing a string onto a list{int}")
	}
}

func TestCheckRejectsIndexAssignmentIntoImmutableList(t *testing.T) {
	_, ok := checkSource(t, `const xs := [1, 2] xs[0] = 9`)
	if ok {
		t.Fatalf("expected an error index-assigning into a const-bound list")
	}
}

func TestCheckAllowsIndexAssignmentIntoMutableList(t *testing.T) {
	_, ok := checkSource(t, `let xs := [1, 2] xs[0] = 9`)
	if !ok {
		t.Fatalf("expected index-assignment into a let-bound list to be allowed")
	}
}
