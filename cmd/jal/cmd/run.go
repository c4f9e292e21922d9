package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jal-lang/jal/internal/checker"
	"github.com/jal-lang/jal/internal/errors"
	"github.com/jal-lang/jal/internal/evaluator"
	"github.com/jal-lang/jal/internal/lexer"
	"github.com/jal-lang/jal/internal/parser"
)

// dumpDir is where --debug writes its JSON artifacts; fixed per
// SPEC_FULL.md §A.1 ("./outputs/{token,AST,walker,EXE}.json").
const dumpDir = "outputs"

var (
	debugDump  bool
	printSteps bool
	maxDepth   int
	trace      bool
)

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Run a JAL script file",
	Args:  cobra.ExactArgs(1),
	RunE:  runScript,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().BoolVarP(&debugDump, "debug", "d", false, "dump token/AST/walker/EXE JSON to ./outputs")
	runCmd.Flags().BoolVarP(&printSteps, "output", "o", false, "print the evaluator's step log to stdout")
	runCmd.Flags().IntVar(&maxDepth, "max-depth", evaluator.DefaultMaxDepth, "maximum function-call recursion depth")
	runCmd.Flags().BoolVar(&trace, "trace", false, "trace function calls/returns to stderr")
}

func runScript(_ *cobra.Command, args []string) error {
	filename := args[0]
	content, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	source := string(content)

	if verbose {
		fmt.Fprintln(os.Stderr, "tokenizing")
	}
	l := lexer.New(source)
	tokens := l.Tokenize()
	if debugDump {
		if err := dumpJSON("token", tokens); err != nil {
			return err
		}
	}

	if verbose {
		fmt.Fprintln(os.Stderr, "parsing")
	}
	prog, err := parser.NewFromTokens(tokens).ParseProgram()
	if err != nil {
		return fmt.Errorf("parse error: %w", err)
	}
	if debugDump {
		if err := dumpJSON("AST", prog.String()); err != nil {
			return err
		}
	}

	if verbose {
		fmt.Fprintln(os.Stderr, "checking")
	}
	checkErrs, ok := checker.Check(prog)
	if debugDump {
		if err := dumpJSON("walker", checkErrs); err != nil {
			return err
		}
	}
	if !ok {
		fmted := make([]*errors.CheckError, len(checkErrs))
		copy(fmted, checkErrs)
		return fmt.Errorf("%s", errors.FormatErrors(fmted))
	}

	if verbose {
		fmt.Fprintln(os.Stderr, "evaluating")
	}

	ev := evaluator.New(os.Stdout, maxDepth)
	if trace {
		ev.Trace = os.Stderr
	}
	runErr := ev.Run(prog)
	if debugDump {
		if err := dumpJSON("EXE", ev.Steps()); err != nil {
			return err
		}
	}
	if printSteps {
		for _, st := range ev.Steps() {
			fmt.Printf("[%d] %s: %s\n", st.Step, st.Kind, st.Detail)
		}
	}
	if runErr != nil {
		return fmt.Errorf("runtime error: %w", runErr)
	}
	return nil
}

func dumpJSON(stage string, v any) error {
	if err := os.MkdirAll(dumpDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory %s: %w", dumpDir, err)
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s dump: %w", stage, err)
	}
	path := filepath.Join(dumpDir, stage+".json")
	return os.WriteFile(path, data, 0o644)
}
