package cli

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"
)

var templateOut string

// xlsxTemplateCmd writes an empty product spreadsheet with every column --xlsx reads
var xlsxTemplateCmd = &cobra.Command{
	Use:   "xlsx-template",
	Short: "Write an empty product spreadsheet",
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Create(templateOut)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", templateOut, err)
		}
		defer f.Close()

		if err := application.Import.WriteXLSXTemplate(f); err != nil {
			return err
		}
		log.Printf("✓ Spreadsheet template written to %s", templateOut)
		return nil
	},
}

func init() {
	xlsxTemplateCmd.Flags().StringVar(&templateOut, "out", "products.xlsx", "Output file")
}
