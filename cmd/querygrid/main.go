// Command querygrid converts boolean search equations to tables and back.
package main

import (
	"fmt"
	"os"

	"github.com/roach88/querygrid/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(cli.GetExitCode(err))
	}
}
