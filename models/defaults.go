package models

// Single table of catalog enumerations and defaults. The synthesizer renders
// from it and readers fill gaps from it, so a default can only change here.

// Colors offered on every edit page, in display order
var Colors = []string{"Black", "White", "Navy", "Gray", "Red", "Green"}

// Sizes offered on every edit page, in display order
var Sizes = []string{"XS", "S", "M", "L", "XL", "XXL"}

// Categories offered in the category select. A record may carry another value;
// it is then rendered as an extra option.
var Categories = []string{"Halloween", "Custom Designs", "Humor & Sass", "Awareness", "Pop Culture", "Horror"}

// FeatureSetVersion is bumped whenever FeatureFlags changes
const FeatureSetVersion = 1

// FeatureFlags is the canonical feature set (version 1 keeps preshrunk)
var FeatureFlags = []string{"preshrunk", "double_stitched", "fade_resistant", "soft_touch"}

// DefaultFeatureValue applies to every flag a record leaves out
const DefaultFeatureValue = false

// DefaultSpecifications fills empty specification fields
var DefaultSpecifications = Specifications{
	Material:     "100% Cotton",
	Weight:       "6.1 oz",
	Fit:          "Regular",
	NeckStyle:    "Crew Neck",
	SleeveLength: "Short Sleeve",
	Origin:       "Made in USA",
}

// SpecificationFields lists specification keys with their form labels, in display order
var SpecificationFields = []struct {
	Key   string
	Label string
}{
	{"material", "Material"},
	{"weight", "Weight"},
	{"fit", "Fit"},
	{"neck_style", "Neck Style"},
	{"sleeve_length", "Sleeve Length"},
	{"origin", "Origin"},
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

// IsColor reports whether c is one of Colors
func IsColor(c string) bool { return contains(Colors, c) }

// IsSize reports whether s is one of Sizes
func IsSize(s string) bool { return contains(Sizes, s) }

// IsFeature reports whether f is one of FeatureFlags
func IsFeature(f string) bool { return contains(FeatureFlags, f) }
