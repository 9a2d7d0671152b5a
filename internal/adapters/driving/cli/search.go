package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docshelf/internal/core/domain"
)

var (
	searchLimit int
	searchJSON  bool
)

// markStripper removes highlight tags for terminal output.
var markStripper = strings.NewReplacer("<mark>", "", "</mark>", "")

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search documents",
	Long: `Searches titles, content and tags through the full-text index.

Query syntax supports +required and -excluded terms, "quoted phrases" and
field:term. When the index finds nothing, a plain substring match over
stored records is used instead.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", domain.DefaultSearchLimit, "maximum number of results")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := args[0]

	if searchService == nil {
		return errors.New("search service not configured")
	}

	opts := domain.SearchOptions{
		Limit: searchLimit,
	}

	results, err := searchService.Search(cmd.Context(), query, opts)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if searchJSON {
		return outputSearchJSON(cmd, results)
	}

	return outputSearchTable(cmd, results)
}

func outputSearchJSON(cmd *cobra.Command, results []domain.SearchResult) error {
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputSearchTable(cmd *cobra.Command, results []domain.SearchResult) error {
	if len(results) == 0 {
		cmd.Println("No results found.")
		return nil
	}

	if results[0].Source == domain.SourceFallback {
		cmd.Println("Results (substring match):")
	} else {
		cmd.Println("Results:")
	}
	cmd.Println()
	for i := range results {
		// Format: [N] Title (Score)
		title := results[i].Title
		if title == "" {
			title = results[i].Filename
		}

		if results[i].Source == domain.SourceIndex {
			cmd.Printf("  [%d] %s (%.2f)\n", i+1, title, results[i].Score)
		} else {
			cmd.Printf("  [%d] %s\n", i+1, title)
		}
		cmd.Printf("      ID: %d  File: %s\n", results[i].ID, results[i].Filename)
		if results[i].Tags != "" {
			cmd.Printf("      Tags: %s\n", results[i].Tags)
		}
		if snippet := markStripper.Replace(results[i].Snippet); snippet != "" {
			cmd.Printf("      %s\n", snippet)
		}
		cmd.Println()
	}

	return nil
}
