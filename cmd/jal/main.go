// Command jal runs JAL scripts from the command line.
package main

import (
	"github.com/jal-lang/jal/cmd/jal/cmd"
)

func main() {
	cmd.Execute()
}
