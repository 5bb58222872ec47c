package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/miquelnez/extman/internal/extension"
	"github.com/miquelnez/extman/internal/manifest"
)

var (
	listJSON     bool
	listValidate bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List discovered extensions",
	Long:  `List every extension package in the host's install manifest, with its enabled state.`,
	RunE:  runList,
}

func init() {
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
	listCmd.Flags().BoolVar(&listValidate, "validate", false, "Validate each extension manifest against the schema")
	rootCmd.AddCommand(listCmd)
}

// listEntry represents one extension for display.
type listEntry struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Version string `json:"version"`
	Enabled bool   `json:"enabled"`
}

func runList(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	all, err := a.registry.All()
	if err != nil {
		if errors.Is(err, extension.ErrDiscoveryUnavailable) {
			fmt.Fprintln(cmd.OutOrStdout(), "No extensions installed yet.")
			return nil
		}
		return err
	}

	if len(all) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No extensions installed yet.")
		return nil
	}

	entries := make([]listEntry, 0, len(all))
	for _, d := range all {
		entries = append(entries, listEntry{
			ID:      d.ID,
			Title:   d.Title(),
			Version: d.Version,
			Enabled: d.Enabled,
		})
	}

	if listJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tVERSION\tENABLED")
	for _, e := range entries {
		fmt.Fprintf(w, "%s\t%s\t%s\t%v\n", e.ID, e.Title, e.Version, e.Enabled)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if !listValidate {
		return nil
	}

	for _, d := range all {
		result, err := manifest.ValidateFile(a.fs, a.manifestPath(d))
		if err != nil {
			fmt.Fprintf(cmd.OutOrStdout(), "%s: manifest unreadable: %v\n", d.ID, err)
			continue
		}
		for _, issue := range result.Issues {
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s %s\n", d.ID, issue.Path, issue.Message)
		}
	}
	return nil
}
