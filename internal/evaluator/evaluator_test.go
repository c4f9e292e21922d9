package evaluator

import (
	"bytes"
	"strings"
	"testing"

	"github.com/jal-lang/jal/internal/lexer"
	"github.com/jal-lang/jal/internal/parser"
)

func run(t *testing.T, src string) string {
	t.Helper()
	prog, err := parser.ParseProgram(lexer.New(src))
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	var buf bytes.Buffer
	ev := New(&buf, 0)
	if err := ev.Run(prog); err != nil {
		t.Fatalf("unexpected runtime error: %v", err)
	}
	return buf.String()
}

func runExpectError(t *testing.T, src string) error {
	t.Helper()
	prog, err := parser.ParseProgram(lexer.New(src))
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	var buf bytes.Buffer
	ev := New(&buf, 0)
	return ev.Run(prog)
}

func TestEvalArithmeticAndPrint(t *testing.T) {
	out := run(t, `
		fn main(): void {
			let x := 2 + 3 * 4
			print(x)
		}
	`)
	if strings.TrimSpace(out) != "14" {
		t.Fatalf("got %q, want \"14\"", out)
	}
}

func TestEvalIntegerDivisionTruncates(t *testing.T) {
	out := run(t, `
		fn main(): void {
			let x := 7 / 2
			print(x)
		}
	`)
	if strings.TrimSpace(out) != "3" {
		t.Fatalf("got %q, want \"3\"", out)
	}
}

func TestEvalFloatDivisionKeepsFraction(t *testing.T) {
	out := run(t, `
		fn main(): void {
			let x := 7.0 / 2
			print(x)
		}
	`)
	if strings.TrimSpace(out) != "3.5" {
		t.Fatalf("got %q, want \"3.5\"", out)
	}
}

func TestEvalIfElseTruthiness(t *testing.T) {
	out := run(t, `
		fn main(): void {
			if (0) {
				print("nonzero branch")
			} else {
				print("zero branch")
			}
		}
	`)
	if strings.TrimSpace(out) != "zero branch" {
		t.Fatalf("got %q, want \"zero branch\"", out)
	}
}

func TestEvalForOfIndexIteration(t *testing.T) {
	out := run(t, `
		fn main(): void {
			let xs := ["a", "b", "c"]
			for i of xs {
				print(i)
			}
		}
	`)
	if strings.TrimSpace(out) != "0\n1\n2" {
		t.Fatalf("got %q", out)
	}
}

func TestEvalForInElementIteration(t *testing.T) {
	out := run(t, `
		fn main(): void {
			let xs := [10, 20, 30]
			for v in xs {
				print(v)
			}
		}
	`)
	if strings.TrimSpace(out) != "10\n20\n30" {
		t.Fatalf("got %q", out)
	}
}

func TestEvalListPushSpreadsLists(t *testing.T) {
	out := run(t, `
		fn main(): void {
			let xs := [1, 2]
			let ys := [3, 4]
			xs << ys
			print(xs)
		}
	`)
	if strings.TrimSpace(out) != "[1, 2, 3, 4]" {
		t.Fatalf("got %q, want \"[1, 2, 3, 4]\"", out)
	}
}

func TestEvalRecursiveFunction(t *testing.T) {
	out := run(t, `
		fn fact(n: int): int {
			if (n <= 1) {
				return 1
			}
			return n * fact(n - 1)
		}

		fn main(): void {
			print(fact(5))
		}
	`)
	if strings.TrimSpace(out) != "120" {
		t.Fatalf("got %q, want \"120\"", out)
	}
}

func TestEvalDivisionByZeroIsRuntimeError(t *testing.T) {
	if err := runExpectError(t, `
		fn main(): void {
			let x := 1 / 0
		}
	`); err == nil {
		t.Fatalf("expected a division-by-zero runtime error")
	}
}

func TestEvalFunctionFramesAreLexicalToGlobal(t *testing.T) {
	if err := runExpectError(t, `
		fn helper(): int {
			return outer
		}

		fn main(): void {
			let outer := 5
			print(helper())
		}
	`); err == nil {
		t.Fatalf("expected helper() to not see main's local 'outer' binding")
	}
}
