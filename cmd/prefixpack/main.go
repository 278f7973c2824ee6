// Command prefixpack compresses the resource URLs of a track table into a
// hierarchical prefix dictionary and resolves references against it.
package main

import (
	"fmt"
	"os"

	"github.com/npillmayer/schuko/tracing"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd(afero.NewOsFs()).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd(fs afero.Fs) *cobra.Command {
	var verbose bool
	root := &cobra.Command{
		Use:           "prefixpack",
		Short:         "Compress catalog asset URLs into a prefix dictionary",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				tracing.Select("prefixdict").SetTraceLevel(tracing.LevelDebug)
			}
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "trace every atom and composition")
	root.AddCommand(newCompressCmd(fs), newResolveCmd(fs), newInspectCmd(fs))
	return root
}
