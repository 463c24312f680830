// Command ghub exposes the ghub library operations on the command line:
// creating, merging and looking up pull requests, listing and deleting
// branches, and deleting git references. Results are printed as JSON.
package main

import (
	"log/slog"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		slog.Error("fatal", "error", err)
		os.Exit(1)
	}
}
