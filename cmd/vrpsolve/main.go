// Command vrpsolve is the CLI boundary around the refinement engine: load a
// run configuration, solve, print the resulting solution summary.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "vrpsolve",
		Short: "Run the vrp-engine constrained insertion and refinement pipeline",
	}
	root.AddCommand(newSolveCmd())
	root.AddCommand(newServeMetricsCmd())
	return root
}
