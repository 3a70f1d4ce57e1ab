package presets

import (
	"errors"
	"fmt"
	"strings"
)

// GarmentType selects a default size chart table
type GarmentType string

const (
	AdultTShirt GarmentType = "adult-tshirt"
	AdultHoodie GarmentType = "adult-hoodie"
	KidsTShirt  GarmentType = "kids-tshirt"
	KidsHoodie  GarmentType = "kids-hoodie"
	Custom      GarmentType = "custom"
)

// DefaultGarmentType is preselected on pages whose product names no garment type
const DefaultGarmentType = AdultTShirt

var (
	ErrUnknownGarmentType = errors.New("unknown garment type")
	ErrUnknownSize        = errors.New("unknown size chart size")
)

// Measurement is one row of a size chart, in inches
type Measurement struct {
	Chest  string `json:"chest"`
	Length string `json:"length"`
}

// Table maps a size label to its measurement
type Table map[string]Measurement

// ChartSizes is the fixed, ordered set of sizes every size chart covers
var ChartSizes = []string{"S", "M", "L", "XL", "2XL"}

// GarmentTypes lists the selectable garment types in display order
var GarmentTypes = []GarmentType{AdultTShirt, AdultHoodie, KidsTShirt, KidsHoodie, Custom}

var garmentLabels = map[GarmentType]string{
	AdultTShirt: "Adult Unisex T-Shirt",
	AdultHoodie: "Adult Hoodie",
	KidsTShirt:  "Kids T-Shirt",
	KidsHoodie:  "Kids Hoodie",
	Custom:      "Custom (Manual Input)",
}

// tables is versioned content; editing a value changes every regenerated page.
var tables = map[GarmentType]Table{
	AdultTShirt: {
		"S":   {Chest: "18", Length: "28"},
		"M":   {Chest: "20", Length: "29"},
		"L":   {Chest: "22", Length: "30"},
		"XL":  {Chest: "24", Length: "31"},
		"2XL": {Chest: "26", Length: "32"},
	},
	AdultHoodie: {
		"S":   {Chest: "20", Length: "26"},
		"M":   {Chest: "22", Length: "27"},
		"L":   {Chest: "24", Length: "28"},
		"XL":  {Chest: "26", Length: "29"},
		"2XL": {Chest: "28", Length: "30"},
	},
	KidsTShirt: {
		"S":   {Chest: "14", Length: "19"},
		"M":   {Chest: "15", Length: "20"},
		"L":   {Chest: "16", Length: "21"},
		"XL":  {Chest: "17", Length: "22"},
		"2XL": {Chest: "18", Length: "23"},
	},
	KidsHoodie: {
		"S":   {Chest: "15", Length: "18"},
		"M":   {Chest: "16", Length: "19"},
		"L":   {Chest: "17", Length: "20"},
		"XL":  {Chest: "18", Length: "21"},
		"2XL": {Chest: "19", Length: "22"},
	},
}

// ParseGarmentType accepts a garment type value in any case
func ParseGarmentType(s string) (GarmentType, error) {
	g := GarmentType(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := garmentLabels[g]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownGarmentType, s)
	}
	return g, nil
}

// Label returns the human readable name shown in the garment type select
func (g GarmentType) Label() string {
	return garmentLabels[g]
}

// Lookup returns the preset table for a garment type.
// Custom returns a nil table and no error: existing values must be kept as they are.
func Lookup(g GarmentType) (Table, error) {
	if g == Custom {
		return nil, nil
	}
	t, ok := tables[g]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownGarmentType, string(g))
	}
	// copy so callers cannot mutate the shared preset
	out := make(Table, len(t))
	for size, m := range t {
		out[size] = m
	}
	return out, nil
}

// Measurement returns the row for a size; sizes outside ChartSizes are an error
func (t Table) Measurement(size string) (Measurement, error) {
	m, ok := t[size]
	if !ok {
		return Measurement{}, fmt.Errorf("%w: %q", ErrUnknownSize, size)
	}
	return m, nil
}

// IsChartSize reports whether size belongs to ChartSizes
func IsChartSize(size string) bool {
	for _, s := range ChartSizes {
		if s == size {
			return true
		}
	}
	return false
}
