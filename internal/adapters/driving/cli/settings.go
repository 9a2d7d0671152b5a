package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show application settings",
	Long: `Show the effective settings after applying config.toml, .env and
DOCSHELF_* environment variables on top of the defaults.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()
	cmd.Printf("Data directory: %s\n", settings.DataDir)
	cmd.Printf("Log format: %s\n", settings.LogFormat)
	cmd.Println()

	cmd.Println("[Search]")
	cmd.Printf("  Default limit: %d\n", settings.Search.DefaultLimit)
	cmd.Printf("  Fallback limit: %d\n", settings.Search.FallbackLimit)
	cmd.Printf("  Snippet chars: %s\n", limitOrUnlimited(settings.Search.SnippetChars))
	cmd.Printf("  Fallback snippet chars: %d\n", settings.Search.FallbackSnippetChars)
	cmd.Println()

	cmd.Println("[HTTP]")
	cmd.Printf("  Address: %s\n", settings.HTTP.Addr)
	cmd.Printf("  Read timeout: %ds\n", settings.HTTP.ReadTimeoutSec)
	cmd.Printf("  Write timeout: %ds\n", settings.HTTP.WriteTimeoutSec)
	cmd.Printf("  Max upload: %d MB\n", settings.HTTP.MaxUploadMB)
	cmd.Println()

	cmd.Println("[Tagging]")
	if settings.Tagging.RulesFile != "" {
		cmd.Printf("  Rules file: %s\n", settings.Tagging.RulesFile)
	} else {
		cmd.Println("  Rules file: (built-in rules)")
	}
	cmd.Println()

	cmd.Println("[Watch]")
	if settings.Watch.Dir != "" {
		cmd.Printf("  Directory: %s\n", settings.Watch.Dir)
	} else {
		cmd.Println("  Directory: (not set)")
	}
	cmd.Printf("  Rate: %.1f files/s\n", settings.Watch.RatePerSec)

	return nil
}

func limitOrUnlimited(n int) string {
	if n <= 0 {
		return "unlimited"
	}
	return fmt.Sprintf("%d", n)
}
