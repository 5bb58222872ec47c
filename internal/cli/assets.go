package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/miquelnez/extman/internal/platform"
)

var assetsCmd = &cobra.Command{
	Use:   "assets",
	Short: "Manage published extension assets",
}

var assetsPublishCmd = &cobra.Command{
	Use:   "publish <id>",
	Short: "Copy an extension's assets into the public root",
	Args:  cobra.ExactArgs(1),
	RunE:  runAssetsPublish,
}

var assetsLinkCmd = &cobra.Command{
	Use:   "link <id>",
	Short: "Symlink an extension's assets into the public root",
	Long: `Symlink an extension's asset directory into the public root instead of
copying it, so edits to the source show up without republishing. Meant for
development; use publish for deployments.`,
	Args: cobra.ExactArgs(1),
	RunE: runAssetsLink,
}

var assetsUnpublishCmd = &cobra.Command{
	Use:   "unpublish <id>",
	Short: "Remove an extension's published assets",
	Args:  cobra.ExactArgs(1),
	RunE:  runAssetsUnpublish,
}

func init() {
	assetsCmd.AddCommand(assetsPublishCmd, assetsLinkCmd, assetsUnpublishCmd)
	rootCmd.AddCommand(assetsCmd)
}

func runAssetsPublish(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	ext, err := a.registry.Get(args[0])
	if err != nil {
		return err
	}
	if err := a.publisher.Publish(ext); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Published assets for %s to %s\n", ext.ID, a.publisher.Dir(ext))
	return nil
}

func runAssetsLink(cmd *cobra.Command, args []string) error {
	if !platform.Supported() {
		return fmt.Errorf("symlinks are not supported on this machine; use assets publish")
	}

	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	ext, err := a.registry.Get(args[0])
	if err != nil {
		return err
	}
	if !ext.HasAssets(a.fs) {
		return fmt.Errorf("%s ships no assets", ext.ID)
	}

	target, err := filepath.Abs(ext.AssetsPath())
	if err != nil {
		return err
	}
	link := a.publisher.Dir(ext)

	// Replace whatever is there, published copy or stale link.
	if err := a.fs.RemoveAll(link); err != nil {
		return err
	}
	if err := a.fs.MkdirAll(filepath.Dir(link), 0o755); err != nil {
		return err
	}
	if err := platform.Symlink(target, link); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Linked %s -> %s\n", link, target)
	return nil
}

func runAssetsUnpublish(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	ext, err := a.registry.Get(args[0])
	if err != nil {
		return err
	}
	if err := a.publisher.Unpublish(ext); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Removed published assets for %s\n", ext.ID)
	return nil
}
