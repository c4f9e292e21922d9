// Package jalscript is the public facade over JAL's lex/parse/check/eval
// pipeline, mirroring the teacher's pkg/dwscript embedding surface: a small
// set of functions a host Go program links against directly, without
// reaching into internal/.
package jalscript

import (
	"bytes"
	"io"

	"github.com/jal-lang/jal/internal/checker"
	"github.com/jal-lang/jal/internal/errors"
	"github.com/jal-lang/jal/internal/evaluator"
	"github.com/jal-lang/jal/internal/lexer"
	"github.com/jal-lang/jal/internal/parser"
)

// Options configures Run/Check beyond their defaults.
type Options struct {
	// MaxDepth bounds function-call recursion; DefaultMaxDepth is used when
	// this is <= 0.
	MaxDepth int
}

// Check lexes, parses, and type-checks source without executing it. It
// returns the parse error (if any) or the checker's diagnostics.
func Check(source string) (parseErr error, checkErrs []string) {
	prog, err := parser.ParseProgram(lexer.New(source))
	if err != nil {
		return err, nil
	}
	errs, ok := checker.Check(prog)
	if ok {
		return nil, nil
	}
	out := make([]string, len(errs))
	for i, e := range errs {
		out[i] = e.Error()
	}
	return nil, out
}

// Run lexes, parses, type-checks, and evaluates source, writing print()
// output to w. It returns the first error encountered at any stage.
func Run(source string, w io.Writer, opts Options) error {
	prog, err := parser.ParseProgram(lexer.New(source))
	if err != nil {
		return err
	}

	checkErrs, ok := checker.Check(prog)
	if !ok {
		formatted := make([]*errors.CheckError, len(checkErrs))
		copy(formatted, checkErrs)
		return &errors.RuntimeError{Message: errors.FormatErrors(formatted)}
	}

	ev := evaluator.New(w, opts.MaxDepth)
	return ev.Run(prog)
}

// RunToString runs source and returns everything it printed, for tests and
// embedders that want the output captured rather than streamed.
func RunToString(source string, opts Options) (string, error) {
	var buf bytes.Buffer
	err := Run(source, &buf, opts)
	return buf.String(), err
}
