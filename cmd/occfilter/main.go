// Command occfilter validates, inspects and stores occurrence search
// predicates and download requests.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/roach88/occfilter/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := cli.NewRootCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(cli.GetExitCode(err))
	}
}
