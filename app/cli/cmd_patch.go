package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"apparel-editpages/editpage"
	"apparel-editpages/models"
	"apparel-editpages/service"
)

var sectionNames []string

// patchCmd rewrites named sections of existing pages in place
var patchCmd = &cobra.Command{
	Use:   "patch",
	Short: "Replace sections of existing edit pages",
	Long: `Replaces the named sections of every product's existing page with freshly
rendered content. Older unmarked copies of a section are removed first, so
running the same patch twice changes nothing.

Sections: ` + joinNames(editpage.SectionNamesInOrder),
	Example: `  editpages patch --section size-chart --from-pages
  editpages patch --section colors --section sizes --catalog catalog.json`,
	RunE: runPatch,
}

func init() {
	addSourceFlags(patchCmd)
	patchCmd.Flags().StringSliceVar(&sectionNames, "section", nil, "Section to patch; repeat for several (default all)")
	patchCmd.Flags().BoolVar(&optimizeImages, "optimize-images", false, "Downscale inline images before rendering")
}

func selectedPatches() ([]editpage.SectionPatch, error) {
	if len(sectionNames) == 0 {
		return application.Synth.Sections(), nil
	}
	patches := make([]editpage.SectionPatch, 0, len(sectionNames))
	for _, name := range sectionNames {
		patch, ok := application.Synth.Section(name)
		if !ok {
			return nil, fmt.Errorf("unknown section %q (known: %s)", name, joinNames(application.Synth.SectionNames()))
		}
		patches = append(patches, patch)
	}
	return patches, nil
}

func runPatch(cmd *cobra.Command, args []string) error {
	patches, err := selectedPatches()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	products, err := loadProducts(ctx)
	if err != nil {
		return err
	}

	report := application.Batch.Run(ctx, products, service.Patch(patches...))
	fmt.Fprint(cmd.OutOrStdout(), report.Summary())
	return exitStatus(report)
}

// exitStatus fails the command when any product failed; the report is printed either way
func exitStatus(report *models.BatchReport) error {
	if n := report.Count(models.OutcomeFailed); n > 0 {
		return fmt.Errorf("%d of %d products failed", n, len(report.Items))
	}
	return nil
}
