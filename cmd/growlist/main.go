// Command growlist runs container scripts and prints their transcripts.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCommand(os.Stdout, os.Stderr).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "growlist: %v\n", err)
		os.Exit(1)
	}
}
