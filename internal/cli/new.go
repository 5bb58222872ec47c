package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/miquelnez/extman/internal/scaffold"
)

var (
	flagNewTitle       string
	flagNewDescription string
	flagNewDir         string
)

var newCmd = &cobra.Command{
	Use:   "new <vendor/package>",
	Short: "Generate a new extension skeleton",
	Long: `Generate the skeleton of a new extension: a manifest, an extend file, and
empty migrations and assets directories. The output directory defaults to the
package part of the name under the current directory.`,
	Args: cobra.ExactArgs(1),
	RunE: runNew,
}

func init() {
	newCmd.Flags().StringVar(&flagNewTitle, "title", "", "Extension title (derived from the name when empty)")
	newCmd.Flags().StringVar(&flagNewDescription, "description", "", "Extension description")
	newCmd.Flags().StringVar(&flagNewDir, "dir", "", "Output directory")
	rootCmd.AddCommand(newCmd)
}

func runNew(cmd *cobra.Command, args []string) error {
	data, err := scaffold.NewData(args[0], flagNewTitle, flagNewDescription)
	if err != nil {
		return err
	}

	dir := flagNewDir
	if dir == "" {
		dir = filepath.Base(args[0])
	}

	result, err := scaffold.Generate(afero.NewOsFs(), data, dir)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Created %s in %s\n", args[0], result.OutputDir)
	for _, f := range result.Files {
		fmt.Fprintf(out, "  %s\n", f)
	}
	for _, w := range result.Warnings {
		fmt.Fprintf(out, "Warning: %s\n", w)
	}
	return nil
}
