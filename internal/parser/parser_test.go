package parser

import (
	"testing"

	"github.com/jal-lang/jal/internal/ast"
	"github.com/jal-lang/jal/internal/lexer"
	"github.com/jal-lang/jal/internal/types"
)

func mustParse(t *testing.T, src string) *ast.Program {
	t.Helper()
	prog, err := ParseProgram(lexer.New(src))
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	return prog
}

func TestParseVariableDeclarationInferred(t *testing.T) {
	prog := mustParse(t, `let x := 5`)
	decl, ok := prog.Body[0].(*ast.VariableDeclaration)
	if !ok {
		t.Fatalf("expected *ast.VariableDeclaration, got %T", prog.Body[0])
	}
	if !decl.Mutable {
		t.Fatalf("expected mutable declaration for let")
	}
	if decl.TypeAnnotation == nil || decl.TypeAnnotation.Kind != types.Int {
		t.Fatalf("expected inferred int type, got %v", decl.TypeAnnotation)
	}
}

func TestParseVariableDeclarationTyped(t *testing.T) {
	prog := mustParse(t, `const pi: float = 3.14`)
	decl := prog.Body[0].(*ast.VariableDeclaration)
	if decl.Mutable {
		t.Fatalf("expected immutable declaration for const")
	}
	if decl.TypeAnnotation.Kind != types.Float {
		t.Fatalf("expected float type, got %v", decl.TypeAnnotation)
	}
}

func TestParseBinaryPrecedence(t *testing.T) {
	prog := mustParse(t, `let x := 1 + 2 * 3`)
	decl := prog.Body[0].(*ast.VariableDeclaration)
	bin := decl.Initializer.(*ast.BinaryExpression)
	if bin.Op != "+" {
		t.Fatalf("expected top-level '+', got %q", bin.Op)
	}
	rhs, ok := bin.Right.(*ast.BinaryExpression)
	if !ok || rhs.Op != "*" {
		t.Fatalf("expected '*' to bind tighter than '+', got %#v", bin.Right)
	}
}

func TestParseComparisonBelowArithmetic(t *testing.T) {
	prog := mustParse(t, `let x := 1 + 2 < 3 * 4`)
	decl := prog.Body[0].(*ast.VariableDeclaration)
	cmp := decl.Initializer.(*ast.BinaryExpression)
	if cmp.Op != "<" {
		t.Fatalf("expected top-level '<', got %q", cmp.Op)
	}
	if _, ok := cmp.Left.(*ast.BinaryExpression); !ok {
		t.Fatalf("expected left side to be the '+' subexpression, got %#v", cmp.Left)
	}
	if _, ok := cmp.Right.(*ast.BinaryExpression); !ok {
		t.Fatalf("expected right side to be the '*' subexpression, got %#v", cmp.Right)
	}
}

func TestParseFunctionDeclaration(t *testing.T) {
	prog := mustParse(t, `fn add(a: int, b: int): int { return a + b }`)
	fn := prog.Body[0].(*ast.FunctionDeclaration)
	if fn.Name != "add" || len(fn.Params) != 2 {
		t.Fatalf("unexpected function shape: %#v", fn)
	}
	if fn.ReturnType.Kind != types.Int {
		t.Fatalf("expected int return type, got %v", fn.ReturnType)
	}
}

func TestParseIfElse(t *testing.T) {
	prog := mustParse(t, `if (true) { let x := 1 } else { let y := 2 }`)
	ifStmt := prog.Body[0].(*ast.IfStatement)
	if ifStmt.Alternate == nil {
		t.Fatalf("expected an else branch")
	}
}

func TestParseForOfAndForIn(t *testing.T) {
	prog := mustParse(t, `for i of [1, 2, 3] { print(i) } for v in [1, 2, 3] { print(v) }`)
	forOf := prog.Body[0].(*ast.ForStatement)
	if !forOf.IsIndex {
		t.Fatalf("expected `of` to set IsIndex")
	}
	forIn := prog.Body[1].(*ast.ForStatement)
	if forIn.IsIndex {
		t.Fatalf("expected `in` to clear IsIndex")
	}
}

func TestParseListPush(t *testing.T) {
	prog := mustParse(t, `let xs := [1, 2] xs << 3`)
	push := prog.Body[1].(*ast.ListPushStatement)
	if _, ok := push.Target.(*ast.Variable); !ok {
		t.Fatalf("expected push target to be a variable, got %#v", push.Target)
	}
}

func TestParseIndexAccessChain(t *testing.T) {
	prog := mustParse(t, `let xs := [[1, 2], [3, 4]] let y := xs[0][1]`)
	decl := prog.Body[1].(*ast.VariableDeclaration)
	idx, ok := decl.Initializer.(*ast.IndexAccess)
	if !ok {
		t.Fatalf("expected IndexAccess, got %#v", decl.Initializer)
	}
	if _, ok := idx.Object.(*ast.IndexAccess); !ok {
		t.Fatalf("expected chained IndexAccess, got %#v", idx.Object)
	}
}

func TestParseUnexpectedTokenIsFatal(t *testing.T) {
	_, err := ParseProgram(lexer.New(`let := 5`))
	if err == nil {
		t.Fatalf("expected a parse error for a missing variable name")
	}
}
