package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"apparel-editpages/app"
	"apparel-editpages/config"
)

var (
	// Global flags
	pagesDir       string
	optimizeImages bool

	// application is initialized before every subcommand runs
	application *app.App
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "editpages",
	Short: "Generate and maintain per-product apparel edit pages",
	Long: `editpages writes one self-contained admin edit page per product and keeps
existing pages in sync through idempotent section patches.

Products come from a JSON catalog, a storefront item list, a spreadsheet,
the catalog database, Google Drive, or the pages already on disk.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()
		if pagesDir != "" {
			cfg.PagesDir = pagesDir
		}
		if optimizeImages {
			cfg.OptimizeImages = true
		}

		a, err := app.Initialize(cfg)
		if err != nil {
			return err
		}
		application = a
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if application == nil {
			return nil
		}
		return application.Close()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&pagesDir, "pages-dir", "", "Directory holding the edit pages (default $PAGES_DIR or ./pages)")

	rootCmd.AddCommand(
		generateCmd,
		patchCmd,
		retireCmd,
		indexCmd,
		nextIDCmd,
		xlsxTemplateCmd,
		serveCmd,
		previewCmd,
	)
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
