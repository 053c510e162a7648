package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vango-dev/vroute/internal/errors"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const banner = `
  ╦  ╦┬─┐┌─┐┬ ┬┌┬┐┌─┐
  ╚╗╔╝├┬┘│ ││ │ │ ├┤
   ╚╝ ┴└─└─┘└─┘ ┴ └─┘
`

func main() {
	if err := newRootCmd().Execute(); err != nil {
		errors.PrintError(err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "vroute",
		Short: "Inspect and drive transition-animated routers",
		Long: `vroute works with the route tables of vroute applications.

  • match    test a route pattern against a path
  • simulate replay navigations on a virtual clock and print a timeline
  • serve    run the routes live behind the devtools inspector`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		matchCmd(),
		simulateCmd(),
		serveCmd(),
		versionCmd(),
	)
	return rootCmd
}

// printBanner prints the ASCII art banner.
func printBanner(w io.Writer) {
	fmt.Fprint(w, banner)
}

// success prints a success message.
func success(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "\033[32m✓\033[0m %s\n", fmt.Sprintf(format, args...))
}

// info prints an info message.
func info(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "  %s\n", fmt.Sprintf(format, args...))
}
