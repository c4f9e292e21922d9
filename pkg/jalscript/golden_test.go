package jalscript

import (
	"fmt"
	"os"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
)

// TestMain lets go-snaps prune snapshots left behind by removed test cases.
func TestMain(m *testing.M) {
	v := m.Run()
	snaps.Clean(m)
	os.Exit(v)
}

// goldenCases mirrors the end-to-end scenarios every JAL implementation is
// expected to agree on: arithmetic/print, integer division, truthiness,
// list iteration, mutability, list push/spread, and recursion.
var goldenCases = []struct {
	name   string
	source string
}{
	{
		name: "arithmetic_and_print",
		source: `
			fn main(): void {
				let x := 2 + 3 * 4
				print(x)
			}
		`,
	},
	{
		name: "integer_division_truncates",
		source: `
			fn main(): void {
				print(7 / 2)
			}
		`,
	},
	{
		name: "if_else_truthiness",
		source: `
			fn main(): void {
				let values := [0, 1, -1]
				for v in values {
					if (v != 0) {
						print("truthy")
					} else {
						print("falsy")
					}
				}
			}
		`,
	},
	{
		name: "for_in_over_list",
		source: `
			fn main(): void {
				let names := ["ada", "grace", "margaret"]
				for name in names {
					print(name)
				}
			}
		`,
	},
	{
		name: "list_push_and_spread",
		source: `
			fn main(): void {
				let xs := [1, 2]
				let ys := [3, 4]
				xs << 5
				xs << ys
				print(xs)
			}
		`,
	},
	{
		name: "recursive_function",
		source: `
			fn fib(n: int): int {
				if (n <= 1) {
					return n
				}
				return fib(n - 1) + fib(n - 2)
			}

			fn main(): void {
				print(fib(10))
			}
		`,
	},
}

func TestGoldenPrograms(t *testing.T) {
	for _, tc := range goldenCases {
		t.Run(tc.name, func(t *testing.T) {
			out, err := RunToString(tc.source, Options{})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			snaps.MatchSnapshot(t, fmt.Sprintf("%s_output", tc.name), out)
		})
	}
}

func TestGoldenMutabilityViolationIsRejected(t *testing.T) {
	_, checkErrs := Check(`
		const total := 0
		total = total + 1
	`)
	if len(checkErrs) == 0 {
		t.Fatalf("expected a type-check error assigning to an immutable binding")
	}
	snaps.MatchSnapshot(t, "mutability_violation_errors", checkErrs)
}
