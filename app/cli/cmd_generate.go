package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"apparel-editpages/service"
)

// generateCmd writes a complete edit page per product
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Write a complete edit page for every product",
	Long: `Renders one edit page per product and writes it as
product-edit-product-{id}_{slug}.html. Pages whose content would not change
are left alone; a renamed product replaces its old file.`,
	Example: `  editpages generate --catalog catalog.json
  editpages generate --itemlist listing.json --first-id 41
  editpages generate --db --id 3 --id 7`,
	RunE: runGenerate,
}

func init() {
	addSourceFlags(generateCmd)
	generateCmd.Flags().BoolVar(&optimizeImages, "optimize-images", false, "Downscale inline images before writing")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	products, err := loadProducts(ctx)
	if err != nil {
		return err
	}

	report := application.Batch.Run(ctx, products, service.Synthesize())
	fmt.Fprint(cmd.OutOrStdout(), report.Summary())
	return exitStatus(report)
}
