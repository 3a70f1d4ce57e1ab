package editpage

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"apparel-editpages/models"
)

func section(t *testing.T, s *Synthesizer, name string) SectionPatch {
	t.Helper()
	patch, ok := s.Section(name)
	require.True(t, ok, name)
	return patch
}

func TestApplyPatch_FreshPageIsFixedPoint(t *testing.T) {
	s := newTestSynthesizer(t)
	p := testProduct()
	page := synthesize(t, s, p)

	for _, patch := range s.Sections() {
		result, err := ApplyPatch(page, patch, p)
		require.NoError(t, err, patch.Name)
		assert.Equal(t, page, result.Text, patch.Name)
		assert.False(t, result.Changed, patch.Name)
		assert.Equal(t, 1, result.Removed, patch.Name)
		assert.Empty(t, result.Warnings, patch.Name)
	}
}

func TestApplyPatch_Idempotent(t *testing.T) {
	s := newTestSynthesizer(t)
	page := synthesize(t, s, testProduct())

	changed := testProduct()
	changed.Colors = []string{"Red"}
	patch := section(t, s, SectionColors)

	first, err := ApplyPatch(page, patch, changed)
	require.NoError(t, err)
	assert.True(t, first.Changed)

	second, err := ApplyPatch(first.Text, patch, changed)
	require.NoError(t, err)
	assert.Equal(t, first.Text, second.Text)
	assert.False(t, second.Changed)
}

func TestApplyPatch_OnlyTouchesItsSection(t *testing.T) {
	s := newTestSynthesizer(t)
	page := synthesize(t, s, testProduct())

	changed := testProduct()
	changed.Colors = []string{"White", "Green"}
	result, err := ApplyPatch(page, section(t, s, SectionColors), changed)
	require.NoError(t, err)

	sel, err := ParseSelections(result.Text)
	require.NoError(t, err)
	assert.Equal(t, []string{"White", "Green"}, sel.Colors)
	assert.Equal(t, []string{"S", "M", "XL"}, sel.Sizes)

	before, after := ParseDocument(page), ParseDocument(result.Text)
	for _, name := range SectionNamesInOrder {
		if name == SectionColors {
			continue
		}
		assert.Equal(t, before.Sections(name), after.Sections(name), name)
	}

	// the payload is its own section and still describes the old record
	payload, err := ParsePayload(result.Text)
	require.NoError(t, err)
	assert.Equal(t, []string{"Black", "Navy"}, payload.Colors)
}

func TestApplyPatch_RemovesMarkedDuplicates(t *testing.T) {
	s := newTestSynthesizer(t)
	p := testProduct()
	page := synthesize(t, s, p)

	doc := ParseDocument(page)
	require.True(t, doc.InsertBefore(AnchorActions, SectionSizeChart, "            <p>stale copy</p>"))
	broken := doc.String()
	require.Len(t, ParseDocument(broken).Sections(SectionSizeChart), 2)

	result, err := ApplyPatch(broken, section(t, s, SectionSizeChart), p)
	require.NoError(t, err)

	assert.Equal(t, page, result.Text)
	assert.Equal(t, 2, result.Removed)
	require.Len(t, result.Warnings, 1)
	assert.True(t, strings.HasPrefix(result.Warnings[0], models.KindDuplicateSection+":"))
}

func TestApplyPatch_BrokenEndMarker(t *testing.T) {
	s := newTestSynthesizer(t)
	p := testProduct()
	page := synthesize(t, s, p)

	// a line break inside the closing comment leaves the old begin marker unmatched
	end := EndMarker(SectionBasic)
	broken := strings.Replace(page, end, "<\n"+end[1:], 1)
	require.Empty(t, ParseDocument(broken).Sections(SectionBasic))

	patch := section(t, s, SectionBasic)
	first, err := ApplyPatch(broken, patch, p)
	require.NoError(t, err)
	assert.Len(t, ParseDocument(first.Text).Sections(SectionBasic), 1)
	assert.Equal(t, 1, strings.Count(first.Text, BeginMarker(SectionBasic)))
	require.NotEmpty(t, first.Warnings)
	assert.Contains(t, first.Warnings[0], "unmatched markers")

	second, err := ApplyPatch(first.Text, patch, p)
	require.NoError(t, err)
	assert.Equal(t, first.Text, second.Text)
	assert.False(t, second.Changed)
}

func TestApplyPatch_DamagedPagesReachFixedPoint(t *testing.T) {
	s := newTestSynthesizer(t)
	p := testProduct()
	page := synthesize(t, s, p)

	fragments := []string{"\n", "<", "-->", BeginMarker(SectionColors), EndMarker(SectionSizes)}
	step := len(page) / 40
	for _, patch := range s.Sections() {
		damage := append([]string{BeginMarker(patch.Name), EndMarker(patch.Name)}, fragments...)
		for _, fragment := range damage {
			for at := 0; at < len(page); at += step {
				broken := page[:at] + fragment + page[at:]

				first, err := ApplyPatch(broken, patch, p)
				if err != nil {
					// the damage hit the anchor
					assert.ErrorIs(t, err, models.ErrAnchorNotFound)
					continue
				}
				second, err := ApplyPatch(first.Text, patch, p)
				require.NoError(t, err, "%s: %q at %d", patch.Name, fragment, at)
				assert.Equal(t, first.Text, second.Text, "%s: %q at %d", patch.Name, fragment, at)
				assert.Len(t, ParseDocument(first.Text).Sections(patch.Name), 1, "%s: %q at %d", patch.Name, fragment, at)
			}
		}
	}
}

func TestApplyPatch_RenameUpdatesHeader(t *testing.T) {
	s := newTestSynthesizer(t)
	p := testProduct()
	page := synthesize(t, s, p)

	renamed := p.Clone()
	renamed.Name = "Glow Bones Tee"
	text := page
	for _, name := range []string{SectionHead, SectionHeader, SectionBasic, SectionPayload} {
		result, err := ApplyPatch(text, section(t, s, name), renamed)
		require.NoError(t, err, name)
		assert.Empty(t, result.Warnings, name)
		text = result.Text
	}

	assert.Equal(t, synthesize(t, s, renamed), text)
	assert.Contains(t, text, "<title>Edit Product 12 - Glow Bones Tee</title>")
	assert.NotContains(t, text, "Father")
}

func legacySizeChart(marker string) string {
	return "\n            " + marker + `
            <div class="form-section">
                <h2>Size Chart</h2>
                <div class="grid grid-cols-3 gap-4">
                    <input type="text" id="size-s-chest" value="18">
                </div>
            </div>`
}

func TestApplyPatch_RemovesLegacySizeChart(t *testing.T) {
	s := newTestSynthesizer(t)
	p := testProduct()
	page := synthesize(t, s, p)

	// a page from the older generator: no markers, the block after the Size Chart heading
	stripped := ParseDocument(page)
	stripped.RemoveSections(SectionSizeChart)
	legacy := strings.Replace(stripped.String(), AnchorSizeChart, AnchorSizeChart+legacySizeChart(LegacySizeChartComment), 1)
	require.NotContains(t, legacy, BeginMarker(SectionSizeChart))

	patch := section(t, s, SectionSizeChart)
	first, err := ApplyPatch(legacy, patch, p)
	require.NoError(t, err)
	assert.Equal(t, page, first.Text)
	assert.Equal(t, 1, first.Removed)
	assert.Empty(t, first.Warnings)

	second, err := ApplyPatch(first.Text, patch, p)
	require.NoError(t, err)
	assert.Equal(t, first.Text, second.Text)
}

func TestApplyPatch_RemovesRepeatedLegacySizeCharts(t *testing.T) {
	s := newTestSynthesizer(t)
	p := testProduct()
	page := synthesize(t, s, p)

	stripped := ParseDocument(page)
	stripped.RemoveSections(SectionSizeChart)
	block := legacySizeChart(LegacySizeChartComment)
	legacy := strings.Replace(stripped.String(), AnchorSizeChart, AnchorSizeChart+block+block, 1)

	result, err := ApplyPatch(legacy, section(t, s, SectionSizeChart), p)
	require.NoError(t, err)

	assert.Equal(t, page, result.Text)
	assert.Equal(t, 2, result.Removed)
	require.NotEmpty(t, result.Warnings)
	assert.Contains(t, result.Warnings[0], models.KindDuplicateSection)
	assert.Equal(t, 1, strings.Count(result.Text, `id="garment-type"`))
}

func TestApplyPatch_WarnsOnResidue(t *testing.T) {
	s := newTestSynthesizer(t)
	p := testProduct()
	page := synthesize(t, s, p)

	// an unmarked copy nothing knows how to remove
	stray := `<select id="garment-type"></select>`
	broken := strings.Replace(page, AnchorActions, stray+AnchorActions, 1)

	result, err := ApplyPatch(broken, section(t, s, SectionSizeChart), p)
	require.NoError(t, err)
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], `id=\"garment-type\"`)
}

func TestApplyPatch_AmbiguousAnchor(t *testing.T) {
	s := newTestSynthesizer(t)
	p := testProduct()
	page := synthesize(t, s, p)
	doubled := strings.Replace(page, "</body>", AnchorCustomInputOptions+"\n</body>", 1)

	result, err := ApplyPatch(doubled, section(t, s, SectionSizeChart), p)

	assert.Nil(t, result)
	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrAnchorNotFound))
	assert.Contains(t, err.Error(), "ambiguous")
}

func TestApplyPatch_MissingAnchor(t *testing.T) {
	s := newTestSynthesizer(t)
	p := testProduct()
	page := synthesize(t, s, p)
	noAnchor := strings.Replace(page, AnchorSizes, "", 1)

	result, err := ApplyPatch(noAnchor, section(t, s, SectionColors), p)

	assert.Nil(t, result)
	assert.ErrorIs(t, err, models.ErrAnchorNotFound)
	assert.Equal(t, models.KindAnchorNotFound, models.ErrorKind(err))
}

func TestApplyPatch_InvalidRecord(t *testing.T) {
	s := newTestSynthesizer(t)
	page := synthesize(t, s, testProduct())

	p := testProduct()
	p.Name = ""
	result, err := ApplyPatch(page, section(t, s, SectionBasic), p)

	assert.Nil(t, result)
	assert.Equal(t, models.KindInvalidRecord, models.ErrorKind(err))
}

func TestApplyPatch_CustomSection(t *testing.T) {
	patch := SectionPatch{
		Name:   "notice",
		Anchor: "<!-- Footer -->",
		Render: func(p models.ProductRecord) (string, error) {
			return "  <p>Product " + p.Name + "</p>", nil
		},
	}
	doc := "<body>\n  <!-- Footer -->\n</body>"

	first, err := ApplyPatch(doc, patch, models.ProductRecord{ID: 1, Name: "Tee"})
	require.NoError(t, err)
	assert.Equal(t, "<body>\n  <!-- section:notice:begin -->\n  <p>Product Tee</p>\n  <!-- section:notice:end -->\n  <!-- Footer -->\n</body>", first.Text)
	assert.Equal(t, 0, first.Removed)

	second, err := ApplyPatch(first.Text, patch, models.ProductRecord{ID: 1, Name: "Hoodie"})
	require.NoError(t, err)
	assert.Contains(t, second.Text, "Product Hoodie")
	assert.NotContains(t, second.Text, "Product Tee")
	assert.Equal(t, 1, second.Removed)
}
