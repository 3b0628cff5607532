// Command craftkit validates recipes and simulates crafting machines.
package main

import (
	"fmt"
	"os"

	"github.com/roach88/craftkit/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(cli.GetExitCode(err))
	}
}
