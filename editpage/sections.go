package editpage

// Built-in section names, in page order
const (
	SectionHead           = "head"
	SectionHeader         = "header"
	SectionBasic          = "basic"
	SectionInventory      = "inventory"
	SectionColors         = "colors"
	SectionSizes          = "sizes"
	SectionSpecifications = "specifications"
	SectionFeatures       = "features"
	SectionSizeChart      = "size-chart"
	SectionImages         = "images"
	SectionPayload        = "payload"
)

// SectionNamesInOrder lists the built-in sections as they appear on a page
var SectionNamesInOrder = []string{
	SectionHead, SectionHeader, SectionBasic, SectionInventory, SectionColors,
	SectionSizes, SectionSpecifications, SectionFeatures, SectionSizeChart,
	SectionImages, SectionPayload,
}

// Skeleton anchors. Each section sits right before the heading comment of the
// block that follows it; the size chart anchor is shared with pages written
// by older generators.
var (
	AnchorStylesheets        = AnchorComment("Stylesheets")
	AnchorForm               = AnchorComment("Form")
	AnchorInventory          = AnchorComment("Inventory")
	AnchorColors             = AnchorComment("Colors")
	AnchorSizes              = AnchorComment("Sizes")
	AnchorSpecifications     = AnchorComment("Specifications")
	AnchorFeatures           = AnchorComment("Features")
	AnchorSizeChart          = AnchorComment("Size Chart")
	AnchorCustomInputOptions = AnchorComment("Custom Input Options")
	AnchorActions            = AnchorComment("Actions")
	AnchorScripts            = AnchorComment("Scripts")
)

// LegacySizeChartComment opens the unmarked size chart block of older pages
const LegacySizeChartComment = "<!-- Size Chart Configuration -->"

func (s *Synthesizer) builtinSections() []SectionPatch {
	view := func(v *pageView) interface{} { return v }
	return []SectionPatch{
		{
			Name:    SectionHead,
			Anchor:  AnchorStylesheets,
			Residue: []string{`name="product-id"`},
			Render:  s.renderer("head", view),
		},
		{
			Name:    SectionHeader,
			Anchor:  AnchorForm,
			Residue: []string{`id="product-title"`},
			Render:  s.renderer("header", view),
		},
		{
			Name:    SectionBasic,
			Anchor:  AnchorInventory,
			Residue: []string{`id="product-name"`},
			Render:  s.renderer("basic", view),
		},
		{
			Name:    SectionInventory,
			Anchor:  AnchorColors,
			Residue: []string{`id="stock-quantity"`},
			Render:  s.renderer("inventory", view),
		},
		{
			Name:    SectionColors,
			Anchor:  AnchorSizes,
			Residue: []string{`name="colors"`},
			Render:  s.renderer("checkboxes", func(v *pageView) interface{} { return v.Colors }),
		},
		{
			Name:    SectionSizes,
			Anchor:  AnchorSpecifications,
			Residue: []string{`name="sizes"`},
			Render:  s.renderer("checkboxes", func(v *pageView) interface{} { return v.Sizes }),
		},
		{
			Name:    SectionSpecifications,
			Anchor:  AnchorFeatures,
			Residue: []string{`id="spec-material"`},
			Render:  s.renderer("specifications", view),
		},
		{
			Name:    SectionFeatures,
			Anchor:  AnchorSizeChart,
			Residue: []string{`name="features"`},
			Render:  s.renderer("checkboxes", func(v *pageView) interface{} { return v.Features }),
		},
		{
			Name:    SectionSizeChart,
			Anchor:  AnchorCustomInputOptions,
			Legacy:  []Matcher{ElementAfterComment{Comment: LegacySizeChartComment, Tag: "div"}},
			Residue: []string{`id="garment-type"`, LegacySizeChartComment},
			Render:  s.renderer("size-chart", view),
		},
		{
			Name:    SectionImages,
			Anchor:  AnchorActions,
			Residue: []string{`id="current-images"`},
			Render:  s.renderer("images", view),
		},
		{
			Name:    SectionPayload,
			Anchor:  AnchorScripts,
			Residue: []string{`id="product-payload"`},
			Render:  s.renderer("payload", view),
		},
	}
}
