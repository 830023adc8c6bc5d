// Command zippy extracts content-word wordlists from bilingual dictionary
// archives (.dz flat gzip, .dictd.tar.xz and .src.tar.xz TEI bundles).
//
// Usage:
//
//	zippy [all]        process every dictionary in the input directory
//	zippy single FILE  process one dictionary
//	zippy version      print build information
//
// Exit codes: 0 = success, 1 = error or any dictionary failed.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "zippy:", err)
		stop()
		os.Exit(1)
	}
}
