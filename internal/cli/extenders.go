package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var extendersCmd = &cobra.Command{
	Use:   "extenders",
	Short: "Show the aggregated extender order",
	Long: `Show the flattened extender sequence the host application would apply
at boot, across all enabled extensions in registry order.`,
	RunE: runExtenders,
}

func init() {
	rootCmd.AddCommand(extendersCmd)
}

func runExtenders(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	bound, err := a.aggregator.Extenders()
	if err != nil {
		return err
	}

	if len(bound) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No extenders contributed.")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "#\tEXTENSION\tEXTENDER")
	for i, b := range bound {
		fmt.Fprintf(w, "%d\t%s\t%T\n", i+1, b.Extension.ID, b.Extender)
	}
	return w.Flush()
}
