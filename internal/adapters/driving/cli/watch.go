package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docshelf/internal/adapters/driving/watcher"
)

var watchCmd = &cobra.Command{
	Use:   "watch [dir]",
	Short: "Import files dropped into a directory",
	Long: `Watches an inbox directory and uploads every regular file that appears
in it, then moves the file into <dir>/.imported/. Files already present are
imported on start. Hidden files and subdirectories are ignored.

The directory defaults to watch.dir from the configuration.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}
	settings, err := currentSettings()
	if err != nil {
		return err
	}

	dir := settings.Watch.Dir
	if len(args) == 1 {
		dir = args[0]
	}
	if dir == "" {
		return errors.New("no directory given and watch.dir is not set")
	}

	w, err := watcher.New(dir, documentService, watcher.Options{RatePerSec: settings.Watch.RatePerSec})
	if err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}
	cmd.Printf("Watching %s (imported files move to %s/)\n", w.Dir(), watcher.ImportedDir)
	return w.Run(cmd.Context())
}
