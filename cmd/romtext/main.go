package main

import (
	"os"

	"github.com/romhack/romtext/pkg/cmd"
)

// Set via ldflags at release time.
var (
	commit  = "HEAD"
	version = "latest"
)

func main() {
	if err := cmd.Execute(version, commit); err != nil {
		os.Exit(1)
	}
}
