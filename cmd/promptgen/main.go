// Command promptgen edits furniture photo prompt fields and renders the
// resulting record document and prompt text.
package main

import (
	"fmt"
	"os"

	"k8s.io/klog/v2"
)

var (
	// Version information (set via ldflags during build)
	version = "dev"
	commit  = "none"
)

func main() {
	defer klog.Flush()
	a := newApp()
	if err := execute(a, newRootCommand(a)); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		klog.Flush()
		os.Exit(1)
	}
}
