package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"apparel-editpages/models"
	"apparel-editpages/service"
)

var retireIDs []int

// retireCmd deletes the pages of retired products
var retireCmd = &cobra.Command{
	Use:   "retire",
	Short: "Delete the edit pages of retired products",
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(retireIDs) == 0 {
			return errors.New("--id is required")
		}

		products := make([]models.ProductRecord, 0, len(retireIDs))
		for _, id := range retireIDs {
			products = append(products, models.ProductRecord{ID: id})
		}

		report := application.Batch.Run(cmd.Context(), products, service.Retire())
		fmt.Fprint(cmd.OutOrStdout(), report.Summary())
		return exitStatus(report)
	},
}

func init() {
	retireCmd.Flags().IntSliceVar(&retireIDs, "id", nil, "Product id to retire; repeat for several")
}
