// YardCut estimates how much fabric a cut list needs.
//
// Pieces are packed onto a roll of fixed width in shelf rows, once with
// each piece's horizontal dimension across the width and once with it
// along the length, and the shorter layout is recommended.
//
// Build:
//
//	go build -o yardcut ./cmd/yardcut
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"
	"k8s.io/klog/v2"
)

func main() {
	klog.InitFlags(nil)
	pflag.CommandLine.AddGoFlagSet(flag.CommandLine)
	defer klog.Flush()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = klog.NewContext(ctx, klog.Background())

	cmd := NewCommand(os.Stdout, os.Stderr)
	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		stop()
		klog.Flush()
		os.Exit(1)
	}
}
