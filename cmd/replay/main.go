package main

import (
	"fmt"
	"os"

	"github.com/runnerr0/replay/internal/cli"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	if err := cli.Run(version); err != nil {
		fmt.Fprintf(os.Stderr, "replay: %v\n", err)
		fmt.Fprintln(os.Stderr, "Check that your files are valid streaming-history JSON exports.")
		os.Exit(1)
	}
}
