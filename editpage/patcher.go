package editpage

import (
	"fmt"

	"apparel-editpages/models"
)

// RenderFunc produces the body of a section for one product
type RenderFunc func(product models.ProductRecord) (string, error)

// SectionPatch describes one named section: how to find prior copies of it,
// where it goes, and how to render it. Sections are always inserted
// immediately before the anchor.
type SectionPatch struct {
	Name string
	// Legacy finds unmarked copies written before sections carried markers
	Legacy []Matcher
	// Anchor must occur exactly once in the cleaned document
	Anchor string
	// Residue lists fragments that must not remain in skeleton text after cleanup
	Residue []string
	Render  RenderFunc
}

// PatchResult is the outcome of a successful ApplyPatch
type PatchResult struct {
	Text     string
	Removed  int
	Changed  bool
	Warnings []string
}

// ApplyPatch removes every prior copy of the section, then inserts exactly one
// freshly rendered copy before the anchor. Applying the same patch twice with
// the same product yields the same text. On error the input is left as is and
// no text is returned.
func ApplyPatch(document string, patch SectionPatch, product models.ProductRecord) (*PatchResult, error) {
	body, err := patch.Render(product)
	if err != nil {
		return nil, fmt.Errorf("failed to render section %s for product %d: %w", patch.Name, product.ID, err)
	}

	doc := ParseDocument(document)
	removed := doc.RemoveSections(patch.Name)
	for _, m := range patch.Legacy {
		removed += doc.RemoveMatches(m)
	}

	stray := doc.RemoveStrayMarkers(patch.Name)

	var warnings []string
	if stray > 0 {
		warnings = append(warnings, fmt.Sprintf("%s: dropped %d unmatched markers of section %s", models.KindDuplicateSection, stray, patch.Name))
	}
	if removed > 1 {
		warnings = append(warnings, fmt.Sprintf("%s: removed %d copies of section %s", models.KindDuplicateSection, removed, patch.Name))
	}
	for _, fragment := range leftovers(doc, patch) {
		warnings = append(warnings, fmt.Sprintf("%s: fragment %q of section %s remains after cleanup", models.KindDuplicateSection, fragment, patch.Name))
	}

	switch n := doc.CountAnchor(patch.Anchor); n {
	case 1:
	case 0:
		return nil, fmt.Errorf("%w: %q for section %s (product %d)", models.ErrAnchorNotFound, patch.Anchor, patch.Name, product.ID)
	default:
		return nil, fmt.Errorf("%w: %q occurs %d times, section %s is ambiguous (product %d)", models.ErrAnchorNotFound, patch.Anchor, n, patch.Name, product.ID)
	}
	if !doc.InsertBefore(patch.Anchor, patch.Name, body) {
		return nil, fmt.Errorf("%w: %q only occurs inside another section, cannot place %s (product %d)", models.ErrAnchorNotFound, patch.Anchor, patch.Name, product.ID)
	}

	text := doc.String()
	return &PatchResult{
		Text:     text,
		Removed:  removed,
		Changed:  text != document,
		Warnings: warnings,
	}, nil
}

func leftovers(doc *Document, patch SectionPatch) []string {
	var out []string
	for _, marker := range []string{BeginMarker(patch.Name), EndMarker(patch.Name)} {
		if doc.SkeletonContains(marker) {
			out = append(out, marker)
		}
	}
	for _, fragment := range patch.Residue {
		if doc.SkeletonContains(fragment) {
			out = append(out, fragment)
		}
	}
	return out
}
