package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show repository statistics",
	Args:  cobra.NoArgs,
	RunE:  runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, _ []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	stats, err := documentService.Stats(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to get stats: %w", err)
	}

	cmd.Printf("Documents: %d\n", stats.TotalDocuments)
	if stats.IndexedDocuments >= 0 {
		cmd.Printf("Indexed:   %d\n", stats.IndexedDocuments)
	} else {
		cmd.Println("Indexed:   unavailable")
	}
	if stats.LastUploaded != nil {
		last := stats.LastUploaded
		cmd.Printf("Last upload: %s (%s, id %d) at %s\n",
			last.Title, last.Filename(), last.ID, last.CreatedAt.Format("2006-01-02 15:04:05"))
	}
	return nil
}
