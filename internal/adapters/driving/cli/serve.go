package cli

import (
	"errors"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docshelf/internal/adapters/driving/api"
	"github.com/custodia-labs/docshelf/internal/core/domain"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long: `Serves the REST API, stored files under /media/ and prometheus
metrics under /metrics until interrupted.

Endpoints:
  POST   /api/upload/           multipart upload (file, title, tags)
  GET    /api/documents/        list documents
  GET    /api/search/?q=        search
  GET    /api/stats/            repository statistics
  DELETE /api/delete/{id}/      delete a document
  POST   /api/reindex/          rebuild the search index`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from http.addr)")
	rootCmd.AddCommand(serveCmd)
}

// currentSettings returns the configured settings, or the defaults when no
// settings service is wired.
func currentSettings() (domain.Settings, error) {
	if settingsService == nil {
		return domain.DefaultSettings(), nil
	}
	s, err := settingsService.Get()
	if err != nil {
		return domain.Settings{}, err
	}
	return *s, nil
}

func newAPIServer(settings domain.Settings) (*api.Server, error) {
	if searchService == nil || documentService == nil {
		return nil, errors.New("search and document services not configured")
	}

	ports := &api.Ports{
		Search:   searchService,
		Document: documentService,
		Index:    indexService,
	}
	return api.NewServer(ports, api.Options{
		MaxUploadBytes: int64(settings.HTTP.MaxUploadMB) << 20,
		SearchLimit:    settings.Search.DefaultLimit,
		Media:          mediaHandler,
		ReadTimeout:    time.Duration(settings.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout:   time.Duration(settings.HTTP.WriteTimeoutSec) * time.Second,
	})
}

func runServe(cmd *cobra.Command, _ []string) error {
	settings, err := currentSettings()
	if err != nil {
		return err
	}

	server, err := newAPIServer(settings)
	if err != nil {
		return err
	}

	addr := settings.HTTP.Addr
	if serveAddr != "" {
		addr = serveAddr
	}
	cmd.Printf("docshelf API listening on %s\n", addr)
	return server.ListenAndServe(cmd.Context(), addr)
}
