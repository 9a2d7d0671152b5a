package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docshelf/internal/core/domain"
)

var (
	uploadTitle string
	uploadTags  string
	uploadJSON  bool
)

var uploadCmd = &cobra.Command{
	Use:   "upload [file...]",
	Short: "Upload files into the repository",
	Long: `Stores each file, extracts its text and adds it to the search index.

Tags are assigned from keywords found in the text unless --tags is given.
A failed extraction or index update does not undo the upload; it is reported
as a warning and 'docshelf reindex' can repair the index later.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runUpload,
}

func init() {
	uploadCmd.Flags().StringVarP(&uploadTitle, "title", "t", "", "document title (single file only)")
	uploadCmd.Flags().StringVar(&uploadTags, "tags", "", "comma-separated tags, skipping auto-tagging")
	uploadCmd.Flags().BoolVar(&uploadJSON, "json", false, "output uploaded documents as JSON")
	rootCmd.AddCommand(uploadCmd)
}

// uploadOutput is the JSON shape of one uploaded document.
type uploadOutput struct {
	ID       int64    `json:"id"`
	Title    string   `json:"title"`
	File     string   `json:"file"`
	FileType string   `json:"file_type"`
	Tags     string   `json:"tags"`
	Warnings []string `json:"warnings,omitempty"`
}

func runUpload(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}
	if uploadTitle != "" && len(args) > 1 {
		return errors.New("--title can only be used with a single file")
	}

	var (
		uploaded []uploadOutput
		failed   []error
	)
	for _, path := range args {
		res, err := uploadFile(cmd.Context(), path)
		if err != nil {
			failed = append(failed, fmt.Errorf("%s: %w", path, err))
			continue
		}

		out := uploadOutput{
			ID:       res.Document.ID,
			Title:    res.Document.Title,
			File:     res.Document.FileKey,
			FileType: res.Document.FileType.String(),
			Tags:     res.Document.Tags,
		}
		for _, f := range res.Report.Failures {
			out.Warnings = append(out.Warnings, fmt.Sprintf("%s: %v", f.Step, f.Err))
		}
		uploaded = append(uploaded, out)

		if !uploadJSON {
			printUpload(cmd, path, out)
		}
	}

	if uploadJSON {
		if uploaded == nil {
			uploaded = []uploadOutput{}
		}
		data, err := json.MarshalIndent(uploaded, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal uploads: %w", err)
		}
		cmd.Println(string(data))
	}

	if len(failed) > 0 {
		return fmt.Errorf("%d of %d uploads failed: %w", len(failed), len(args), errors.Join(failed...))
	}
	return nil
}

func uploadFile(ctx context.Context, path string) (*domain.UploadResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: is a directory", domain.ErrInvalidInput)
	}

	req := domain.UploadRequest{
		Filename: filepath.Base(path),
		Title:    uploadTitle,
		Tags:     uploadTags,
	}
	return documentService.Upload(ctx, req, f)
}

func printUpload(cmd *cobra.Command, path string, out uploadOutput) {
	cmd.Printf("Uploaded %s as document %d\n", path, out.ID)
	cmd.Printf("  Title: %s\n", out.Title)
	cmd.Printf("  Type:  %s\n", out.FileType)
	if out.Tags != "" {
		cmd.Printf("  Tags:  %s\n", out.Tags)
	}
	for _, w := range out.Warnings {
		cmd.Printf("  Warning: %s\n", w)
	}
}
