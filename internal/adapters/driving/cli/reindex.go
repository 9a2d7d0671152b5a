package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docshelf/internal/core/domain"
)

var reindexCmd = &cobra.Command{
	Use:   "reindex",
	Short: "Rebuild the search index from stored records",
	Long: `Builds a fresh index from every stored record and swaps it in.
Searches keep using the previous index until the new one is complete.`,
	Args: cobra.NoArgs,
	RunE: runReindex,
}

func init() {
	rootCmd.AddCommand(reindexCmd)
}

func runReindex(cmd *cobra.Command, _ []string) error {
	if indexService == nil || !indexService.Available() {
		return domain.ErrIndexUnavailable
	}

	n, err := indexService.Rebuild(cmd.Context())
	if err != nil {
		return fmt.Errorf("reindex failed: %w", err)
	}

	cmd.Printf("Reindexed %d documents.\n", n)
	return nil
}
