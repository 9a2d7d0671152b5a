// Package cli provides the cobra command tree for the docshelf binary.
package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docshelf/internal/core/ports/driving"
	"github.com/custodia-labs/docshelf/internal/logger"
)

// annotationStandalone marks commands that run without services.
const annotationStandalone = "docshelf/standalone"

// Services are the driving ports the commands run against.
type Services struct {
	Search   driving.SearchService
	Document driving.DocumentService
	Index    driving.IndexService
	Settings driving.SettingsService

	// Media serves stored files for the HTTP API. Nil disables /media/.
	Media http.Handler
}

// Options holds the global flags.
type Options struct {
	ConfigDir string
	LogFormat string
	Verbose   bool
	Ephemeral bool
}

// BootstrapFunc wires services before a command runs. The returned cleanup
// is called once the command has finished.
type BootstrapFunc func(ctx context.Context, opts Options) (*Services, func(), error)

var (
	version = "dev"

	searchService   driving.SearchService
	documentService driving.DocumentService
	indexService    driving.IndexService
	settingsService driving.SettingsService
	mediaHandler    http.Handler

	bootstrap  BootstrapFunc
	cleanup    func()
	globalOpts Options
)

var rootCmd = &cobra.Command{
	Use:   "docshelf",
	Short: "Document repository with full-text search",
	Long: `docshelf stores uploaded files, extracts their text, tags them by keyword
and keeps a full-text index for fast, highlighted search.

Run 'docshelf serve' for the HTTP API or 'docshelf tui' for interactive search.`,
	SilenceUsage:      true,
	PersistentPreRunE: runBootstrap,
}

func init() {
	// cmd.Print* writes to stderr unless an output is set.
	rootCmd.SetOut(os.Stdout)

	flags := rootCmd.PersistentFlags()
	flags.BoolVarP(&globalOpts.Verbose, "verbose", "v", false, "enable debug logging")
	flags.StringVar(&globalOpts.ConfigDir, "config-dir", "", "configuration directory (default ~/.docshelf)")
	flags.StringVar(&globalOpts.LogFormat, "log-format", "", "log format: console or json")
	flags.BoolVar(&globalOpts.Ephemeral, "ephemeral", false, "keep records and files in memory only")
}

// SetVersion sets the version reported by 'docshelf version'.
func SetVersion(v string) {
	version = v
}

// SetBootstrap registers the function that wires services for commands.
func SetBootstrap(fn BootstrapFunc) {
	bootstrap = fn
}

// SetServices installs services directly, bypassing the bootstrap.
func SetServices(s *Services) {
	if s == nil {
		s = &Services{}
	}
	searchService = s.Search
	documentService = s.Document
	indexService = s.Index
	settingsService = s.Settings
	mediaHandler = s.Media
}

// Execute runs the root command until it completes or the process is
// interrupted.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	defer runCleanup()

	err := rootCmd.ExecuteContext(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func runBootstrap(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(globalOpts.Verbose)
	if globalOpts.LogFormat != "" {
		if err := logger.SetFormat(globalOpts.LogFormat); err != nil {
			return err
		}
	}

	if bootstrap == nil || cmd.Annotations[annotationStandalone] == "true" {
		return nil
	}
	services, done, err := bootstrap(cmd.Context(), globalOpts)
	if err != nil {
		return err
	}
	SetServices(services)
	cleanup = done
	return nil
}

func runCleanup() {
	if cleanup != nil {
		cleanup()
		cleanup = nil
	}
	logger.Sync()
}
