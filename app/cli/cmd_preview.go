package cli

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"apparel-editpages/service"
)

var (
	previewID     int
	previewFormat string
	previewOut    string
)

// previewCmd renders a page through headless Chrome. The page must be served
// at BASE_URL, usually by a running serve command.
var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Render an edit page to PDF or PNG",
	RunE: func(cmd *cobra.Command, args []string) error {
		if previewID <= 0 {
			return errors.New("--id is required")
		}
		if previewFormat != service.PreviewPDF && previewFormat != service.PreviewPNG {
			return fmt.Errorf("invalid format %q. Must be pdf or png", previewFormat)
		}
		if _, err := application.Store.Find(previewID); err != nil {
			return err
		}

		out := previewOut
		if out == "" {
			out = fmt.Sprintf("product-%d.%s", previewID, previewFormat)
		}

		data, err := application.Preview.Render(cmd.Context(), previewID, previewFormat)
		if err != nil {
			return err
		}
		if err := os.WriteFile(out, data, 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", out, err)
		}
		log.Printf("✓ Preview written to %s (%d bytes)", out, len(data))
		return nil
	},
}

func init() {
	previewCmd.Flags().IntVar(&previewID, "id", 0, "Product id")
	previewCmd.Flags().StringVar(&previewFormat, "format", service.PreviewPNG, "Output format: pdf or png")
	previewCmd.Flags().StringVar(&previewOut, "out", "", "Output file (default product-{id}.{format})")
}
