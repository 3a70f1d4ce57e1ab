package models

import (
	"fmt"
	"strings"

	"apparel-editpages/presets"
)

// ProductRecord is the canonical description of one catalog item.
// JSON keys are shared by catalog exports, the embedded page payload and the save request.
type ProductRecord struct {
	ID                int                            `json:"id"`
	Name              string                         `json:"name"`
	Description       string                         `json:"description"`
	Category          string                         `json:"category"`
	Price             Money                          `json:"price"`
	OriginalPrice     *Money                         `json:"original_price,omitempty"`
	SalePercentage    int                            `json:"sale_percentage"`
	StockQuantity     int                            `json:"stock_quantity"`
	LowStockThreshold int                            `json:"low_stock_threshold"`
	Tags              []string                       `json:"tags"`
	Colors            []string                       `json:"colors"`
	Sizes             []string                       `json:"sizes"`
	Images            []string                       `json:"images"`
	Specifications    Specifications                 `json:"specifications"`
	Features          map[string]bool                `json:"features"`
	GarmentType       string                         `json:"garment_type,omitempty"`
	SizeChart         map[string]presets.Measurement `json:"size_chart,omitempty"`
}

// Specifications holds the fixed specification keys
type Specifications struct {
	Material     string `json:"material"`
	Weight       string `json:"weight"`
	Fit          string `json:"fit"`
	NeckStyle    string `json:"neck_style"`
	SleeveLength string `json:"sleeve_length"`
	Origin       string `json:"origin"`
}

// Get returns a specification by its JSON key
func (s Specifications) Get(key string) string {
	switch key {
	case "material":
		return s.Material
	case "weight":
		return s.Weight
	case "fit":
		return s.Fit
	case "neck_style":
		return s.NeckStyle
	case "sleeve_length":
		return s.SleeveLength
	case "origin":
		return s.Origin
	}
	return ""
}

// WithDefaults fills every empty field from DefaultSpecifications
func (s Specifications) WithDefaults() Specifications {
	fill := func(v, def string) string {
		if strings.TrimSpace(v) == "" {
			return def
		}
		return v
	}
	d := DefaultSpecifications
	return Specifications{
		Material:     fill(s.Material, d.Material),
		Weight:       fill(s.Weight, d.Weight),
		Fit:          fill(s.Fit, d.Fit),
		NeckStyle:    fill(s.NeckStyle, d.NeckStyle),
		SleeveLength: fill(s.SleeveLength, d.SleeveLength),
		Origin:       fill(s.Origin, d.Origin),
	}
}

func invalid(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidRecord, fmt.Sprintf(format, args...))
}

// Validate checks required fields and enumerated values.
// Optional fields that are simply missing never fail; WithDefaults covers them.
func (p ProductRecord) Validate() error {
	if p.ID <= 0 {
		return invalid("id must be a positive integer, got %d", p.ID)
	}
	if strings.TrimSpace(p.Name) == "" {
		return invalid("name is required (product %d)", p.ID)
	}
	if p.Price.IsNegative() {
		return invalid("price must not be negative (product %d)", p.ID)
	}
	if p.OriginalPrice != nil && p.OriginalPrice.IsNegative() {
		return invalid("original_price must not be negative (product %d)", p.ID)
	}
	if p.SalePercentage < 0 || p.SalePercentage > 100 {
		return invalid("sale_percentage must be within 0-100, got %d (product %d)", p.SalePercentage, p.ID)
	}
	if p.StockQuantity < 0 || p.LowStockThreshold < 0 {
		return invalid("stock values must not be negative (product %d)", p.ID)
	}
	for _, c := range p.Colors {
		if !IsColor(c) {
			return invalid("unknown color %q (product %d)", c, p.ID)
		}
	}
	for _, s := range p.Sizes {
		if !IsSize(s) {
			return invalid("unknown size %q (product %d)", s, p.ID)
		}
	}
	for f := range p.Features {
		if !IsFeature(f) {
			return fmt.Errorf("%w: %w %q in feature set v%d (product %d)", ErrInvalidRecord, ErrUnknownFeature, f, FeatureSetVersion, p.ID)
		}
	}
	if p.GarmentType != "" {
		if _, err := presets.ParseGarmentType(p.GarmentType); err != nil {
			return fmt.Errorf("%w: %w (product %d)", ErrInvalidRecord, err, p.ID)
		}
	}
	for size := range p.SizeChart {
		if !presets.IsChartSize(size) {
			return fmt.Errorf("%w: %w %q (product %d)", ErrInvalidRecord, ErrUnknownSize, size, p.ID)
		}
	}
	return nil
}

// canonicalSet dedupes values and orders them like the enumeration
func canonicalSet(values []string, enum []string) []string {
	if values == nil {
		return nil
	}
	seen := make(map[string]bool, len(values))
	for _, v := range values {
		seen[v] = true
	}
	out := make([]string, 0, len(seen))
	for _, e := range enum {
		if seen[e] {
			out = append(out, e)
		}
	}
	return out
}

// WithDefaults returns a copy with every documented default applied:
// specifications, the full feature set, original_price and garment_type.
// Colors and sizes are put into enumeration order; an empty set stays empty.
// The size chart is left as given; presets are applied at render time.
func (p ProductRecord) WithDefaults() ProductRecord {
	out := p.Clone()
	out.Specifications = p.Specifications.WithDefaults()
	if out.OriginalPrice == nil {
		op := p.Price
		out.OriginalPrice = &op
	}
	features := make(map[string]bool, len(FeatureFlags))
	for _, f := range FeatureFlags {
		v, ok := p.Features[f]
		if !ok {
			v = DefaultFeatureValue
		}
		features[f] = v
	}
	out.Features = features
	out.Colors = canonicalSet(p.Colors, Colors)
	out.Sizes = canonicalSet(p.Sizes, Sizes)
	if out.GarmentType == "" {
		out.GarmentType = string(presets.DefaultGarmentType)
	} else if g, err := presets.ParseGarmentType(out.GarmentType); err == nil {
		out.GarmentType = string(g)
	}
	if len(out.SizeChart) == 0 {
		out.SizeChart = nil
	}
	return out
}

// Clone deep-copies slices and maps so callers can modify the copy freely
func (p ProductRecord) Clone() ProductRecord {
	out := p
	copyStrings := func(in []string) []string {
		if in == nil {
			return nil
		}
		return append([]string{}, in...)
	}
	out.Tags = copyStrings(p.Tags)
	out.Colors = copyStrings(p.Colors)
	out.Sizes = copyStrings(p.Sizes)
	out.Images = copyStrings(p.Images)
	if p.OriginalPrice != nil {
		op := *p.OriginalPrice
		out.OriginalPrice = &op
	}
	if p.Features != nil {
		out.Features = make(map[string]bool, len(p.Features))
		for k, v := range p.Features {
			out.Features[k] = v
		}
	}
	if p.SizeChart != nil {
		out.SizeChart = make(map[string]presets.Measurement, len(p.SizeChart))
		for k, v := range p.SizeChart {
			out.SizeChart[k] = v
		}
	}
	return out
}

// HasColor reports membership in the color set
func (p ProductRecord) HasColor(c string) bool { return contains(p.Colors, c) }

// HasSize reports membership in the size set
func (p ProductRecord) HasSize(s string) bool { return contains(p.Sizes, s) }

// ResolvedSizeChart returns the measurements to display: explicit values first,
// then the garment type preset for any size left out. Custom garments get no preset.
func (p ProductRecord) ResolvedSizeChart() (presets.Table, error) {
	g := presets.DefaultGarmentType
	if p.GarmentType != "" {
		parsed, err := presets.ParseGarmentType(p.GarmentType)
		if err != nil {
			return nil, err
		}
		g = parsed
	}
	preset, err := presets.Lookup(g)
	if err != nil {
		return nil, err
	}
	out := make(presets.Table, len(presets.ChartSizes))
	for _, size := range presets.ChartSizes {
		if m, ok := p.SizeChart[size]; ok && (m.Chest != "" || m.Length != "") {
			if preset != nil {
				if def, err := preset.Measurement(size); err == nil {
					if m.Chest == "" {
						m.Chest = def.Chest
					}
					if m.Length == "" {
						m.Length = def.Length
					}
				}
			}
			out[size] = m
			continue
		}
		if preset == nil {
			out[size] = presets.Measurement{}
			continue
		}
		m, err := preset.Measurement(size)
		if err != nil {
			return nil, err
		}
		out[size] = m
	}
	return out, nil
}

// SortedFeatureNames returns enabled feature flags in canonical order
func (p ProductRecord) SortedFeatureNames() []string {
	var out []string
	for _, f := range FeatureFlags {
		if p.Features[f] {
			out = append(out, f)
		}
	}
	return out
}
