package editpage

import (
	"encoding/json"
	"fmt"
	"html/template"
	"strings"

	"apparel-editpages/models"
	"apparel-editpages/presets"
	"apparel-editpages/pricing"
	"apparel-editpages/utils"
)

type option struct {
	Value    string
	Label    string
	Selected bool
}

type checkbox struct {
	ID      string
	Name    string
	Value   string
	Label   string
	Checked bool
}

type checkboxGroup struct {
	Title string
	Items []checkbox
}

type field struct {
	ID    string
	Name  string
	Label string
	Value string
}

type chartRow struct {
	Size              string
	ChestID           string
	LengthID          string
	Chest             string
	Length            string
	ChestPlaceholder  string
	LengthPlaceholder string
}

type imageView struct {
	Index int
	Src   interface{}
}

// pageView is everything the templates read; product must already carry defaults
type pageView struct {
	ID                int
	Name              string
	Description       string
	Price             string
	OriginalPrice     string
	SalePrice         string
	SalePercentage    int
	StockQuantity     int
	LowStockThreshold int
	Tags              string
	Categories        []option
	Colors            checkboxGroup
	Sizes             checkboxGroup
	Features          checkboxGroup
	Specifications    []field
	GarmentTypes      []option
	SizeChart         []chartRow
	PresetsJSON       string
	Images            []imageView
	PayloadJSON       template.JS

	StylesheetURL string
	APIBase       string
	ReturnURL     string
}

func (s *Synthesizer) newPageView(p models.ProductRecord) (*pageView, error) {
	payload, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("failed to encode payload for product %d: %w", p.ID, err)
	}

	chart, err := chartRows(p)
	if err != nil {
		return nil, fmt.Errorf("%w: %w (product %d)", models.ErrInvalidRecord, err, p.ID)
	}
	presetsJSON, err := presetTablesJSON()
	if err != nil {
		return nil, err
	}

	originalPrice := p.Price
	if p.OriginalPrice != nil {
		originalPrice = *p.OriginalPrice
	}

	return &pageView{
		ID:                p.ID,
		Name:              p.Name,
		Description:       p.Description,
		Price:             p.Price.Fixed(),
		OriginalPrice:     originalPrice.Fixed(),
		SalePrice:         utils.FormatUSD(pricing.SalePrice(p.Price.Decimal, p.SalePercentage)),
		SalePercentage:    p.SalePercentage,
		StockQuantity:     p.StockQuantity,
		LowStockThreshold: p.LowStockThreshold,
		Tags:              strings.Join(p.Tags, ", "),
		Categories:        categoryOptions(p.Category),
		Colors:            colorGroup(p),
		Sizes:             sizeGroup(p),
		Features:          featureGroup(p),
		Specifications:    specificationFields(p.Specifications),
		GarmentTypes:      garmentOptions(p.GarmentType),
		SizeChart:         chart,
		PresetsJSON:       presetsJSON,
		Images:            imageViews(p.Images),
		// json.Marshal escapes <, > and & so the payload cannot close its script element
		PayloadJSON:   template.JS(payload),
		StylesheetURL: s.opts.StylesheetURL,
		APIBase:       s.opts.APIBase,
		ReturnURL:     s.opts.ReturnURL,
	}, nil
}

func categoryOptions(selected string) []option {
	out := make([]option, 0, len(models.Categories)+2)
	if selected == "" {
		out = append(out, option{Value: "", Label: "Select Category", Selected: true})
	}
	known := false
	for _, c := range models.Categories {
		out = append(out, option{Value: c, Label: c, Selected: c == selected})
		known = known || c == selected
	}
	if selected != "" && !known {
		out = append(out, option{Value: selected, Label: selected, Selected: true})
	}
	return out
}

func colorGroup(p models.ProductRecord) checkboxGroup {
	g := checkboxGroup{Title: "Available Colors"}
	for _, c := range models.Colors {
		g.Items = append(g.Items, checkbox{ID: utils.ColorInputID(c), Name: "colors", Value: c, Label: c, Checked: p.HasColor(c)})
	}
	return g
}

func sizeGroup(p models.ProductRecord) checkboxGroup {
	g := checkboxGroup{Title: "Available Sizes"}
	for _, s := range models.Sizes {
		g.Items = append(g.Items, checkbox{ID: utils.SizeInputID(s), Name: "sizes", Value: s, Label: s, Checked: p.HasSize(s)})
	}
	return g
}

func featureGroup(p models.ProductRecord) checkboxGroup {
	g := checkboxGroup{Title: "Features"}
	for _, f := range models.FeatureFlags {
		g.Items = append(g.Items, checkbox{ID: utils.FeatureInputID(f), Name: "features", Value: f, Label: utils.FeatureLabel(f), Checked: p.Features[f]})
	}
	return g
}

func specificationFields(specs models.Specifications) []field {
	out := make([]field, 0, len(models.SpecificationFields))
	for _, f := range models.SpecificationFields {
		out = append(out, field{ID: utils.SpecInputID(f.Key), Name: f.Key, Label: f.Label, Value: specs.Get(f.Key)})
	}
	return out
}

func garmentOptions(selected string) []option {
	out := make([]option, 0, len(presets.GarmentTypes))
	for _, g := range presets.GarmentTypes {
		out = append(out, option{Value: string(g), Label: g.Label(), Selected: string(g) == selected})
	}
	return out
}

func chartRows(p models.ProductRecord) ([]chartRow, error) {
	resolved, err := p.ResolvedSizeChart()
	if err != nil {
		return nil, err
	}
	g, err := presets.ParseGarmentType(p.GarmentType)
	if err != nil {
		return nil, err
	}
	preset, err := presets.Lookup(g)
	if err != nil {
		return nil, err
	}

	rows := make([]chartRow, 0, len(presets.ChartSizes))
	for _, size := range presets.ChartSizes {
		m := resolved[size]
		row := chartRow{
			Size:     size,
			ChestID:  utils.ChartInputID(size, "chest"),
			LengthID: utils.ChartInputID(size, "length"),
			Chest:    m.Chest,
			Length:   m.Length,
		}
		if def, ok := preset[size]; ok {
			row.ChestPlaceholder, row.LengthPlaceholder = def.Chest, def.Length
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func presetTablesJSON() (string, error) {
	tables := make(map[presets.GarmentType]presets.Table, len(presets.GarmentTypes))
	for _, g := range presets.GarmentTypes {
		t, err := presets.Lookup(g)
		if err != nil {
			return "", err
		}
		if t != nil {
			tables[g] = t
		}
	}
	b, err := json.Marshal(tables)
	if err != nil {
		return "", fmt.Errorf("failed to encode size chart presets: %w", err)
	}
	return string(b), nil
}

// imageViews trusts only http(s) and inline image sources; anything else is
// left to html/template, which neutralizes it.
func imageViews(images []string) []imageView {
	out := make([]imageView, 0, len(images))
	for i, src := range images {
		var v interface{} = src
		lower := strings.ToLower(src)
		if strings.HasPrefix(lower, "data:image/") || strings.HasPrefix(lower, "https://") || strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "/") {
			v = template.URL(src)
		}
		out = append(out, imageView{Index: i, Src: v})
	}
	return out
}
