package main

import (
	"fmt"
	"os"

	"github.com/arthur-debert/kilib/pkg/output/styles"
)

// Version information set via ldflags at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := Execute(); err != nil {
		fmt.Fprintln(os.Stderr, styles.Render(styles.Error, "Error: ")+err.Error())
		os.Exit(1)
	}
}
