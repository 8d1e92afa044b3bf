// Command sparklines renders word-sized charts from the command line and
// serves them over HTTP.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/matzehuels/sparklines/internal/cli"
	sperrors "github.com/matzehuels/sparklines/pkg/errors"
)

// Exit statuses. Chart errors get their own code so scripts can tell bad
// input apart from IO failures.
const (
	exitFailure     = 1
	exitChartError  = 2
	exitInterrupted = 130
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, os.Args[1:])
	stop()
	os.Exit(exitCode(err))
}

func run(ctx context.Context, args []string) error {
	c := cli.New(os.Stderr, cli.LogInfo)
	root := c.RootCommand()
	root.SetArgs(args)

	verbose := root.PersistentFlags().BoolP("verbose", "v", false, "log debug output")
	next := root.PersistentPreRunE
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if *verbose {
			c.SetLogLevel(cli.LogDebug)
		}
		if next == nil {
			return nil
		}
		return next(cmd, args)
	}
	return root.ExecuteContext(ctx)
}

func exitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, context.Canceled):
		return exitInterrupted
	case sperrors.IsRender(err):
		fmt.Fprintf(os.Stderr, "sparklines: %s\n", sperrors.UserMessage(err))
		return exitChartError
	default:
		fmt.Fprintf(os.Stderr, "sparklines: %v\n", err)
		return exitFailure
	}
}
