// Command lagplot draws lag-1 scatter plots of a bad and a good random
// number generator side by side.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/roach88/lagplot/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cmd := cli.NewRootCommand()
	if err := cmd.ExecuteContext(ctx); err != nil {
		format, _ := cmd.PersistentFlags().GetString("format")
		if format == "json" {
			f := &cli.OutputFormatter{Format: format, Writer: os.Stdout, ErrWriter: os.Stderr}
			_ = f.ReportError(err)
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		stop()
		os.Exit(cli.GetExitCode(err))
	}
}
