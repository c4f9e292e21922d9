package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Version is set by build flags.
	Version = "0.1.0-dev"

	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "jal",
	Short: "JAL interpreter",
	Long: `jal is the reference interpreter for the JAL scripting language:
a small statically-typed imperative language with a tree-walking evaluator.`,
	Version: Version,
}

// Execute runs the root command, exiting the process on failure.
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		exitWithError(err.Error())
	}
	return nil
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

func exitWithError(msg string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+msg+"\n", args...)
	os.Exit(1)
}
