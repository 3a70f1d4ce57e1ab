package utils

import (
	"strings"
)

// ColorInputID maps a color to its checkbox element id (e.g. "Black" -> "color-black")
func ColorInputID(color string) string {
	return "color-" + strings.ToLower(strings.TrimSpace(color))
}

// SizeInputID maps a size to its checkbox element id (e.g. "XXL" -> "size-xxl")
func SizeInputID(size string) string {
	return "size-" + strings.ToLower(strings.TrimSpace(size))
}

// FeatureInputID maps a feature flag to its checkbox element id
// (e.g. "double_stitched" -> "feature-double-stitched")
func FeatureInputID(flag string) string {
	return "feature-" + strings.ReplaceAll(strings.ToLower(strings.TrimSpace(flag)), "_", "-")
}

// SpecInputID maps a specification key to its input element id
// (e.g. "neck_style" -> "spec-neck-style")
func SpecInputID(key string) string {
	return "spec-" + strings.ReplaceAll(strings.ToLower(strings.TrimSpace(key)), "_", "-")
}

// ChartInputID maps a size chart cell to its input element id
// (e.g. "2XL", "chest" -> "size-2xl-chest")
func ChartInputID(size, dimension string) string {
	return "size-" + strings.ToLower(strings.TrimSpace(size)) + "-" + dimension
}

// FeatureLabel maps a feature flag to its readable label
// (e.g. "fade_resistant" -> "Fade Resistant")
func FeatureLabel(flag string) string {
	labels := map[string]string{
		"preshrunk":       "Preshrunk",
		"double_stitched": "Double Stitched",
		"fade_resistant":  "Fade Resistant",
		"soft_touch":      "Soft Touch",
	}

	if label, exists := labels[flag]; exists {
		return label
	}

	// If not found, capitalize each underscore separated word
	words := strings.Split(strings.ToLower(flag), "_")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}

// MapFeatureToFlag maps spreadsheet and form spellings back to feature flags
// Input is normalized to lowercase before mapping
// Returns the input in snake case if no alias matches
func MapFeatureToFlag(feature string) string {
	featureLower := strings.ToLower(strings.TrimSpace(feature))

	aliases := map[string]string{
		"pre-shrunk":      "preshrunk",
		"pre shrunk":      "preshrunk",
		"double stitched": "double_stitched",
		"double-stitched": "double_stitched",
		"fade resistant":  "fade_resistant",
		"fade-resistant":  "fade_resistant",
		"soft touch":      "soft_touch",
		"soft-touch":      "soft_touch",
	}

	if flag, exists := aliases[featureLower]; exists {
		return flag
	}

	return strings.NewReplacer(" ", "_", "-", "_").Replace(featureLower)
}

// MapColorName maps a color spelling to its catalog name ("navy blue" -> "Navy")
// Returns the input capitalized if no alias matches
func MapColorName(color string) string {
	colorLower := strings.ToLower(strings.TrimSpace(color))

	colorMap := map[string]string{
		"black":     "Black",
		"white":     "White",
		"navy":      "Navy",
		"navy blue": "Navy",
		"gray":      "Gray",
		"grey":      "Gray",
		"heather":   "Gray",
		"red":       "Red",
		"green":     "Green",
	}

	if name, exists := colorMap[colorLower]; exists {
		return name
	}

	if colorLower == "" {
		return ""
	}
	return strings.ToUpper(colorLower[:1]) + colorLower[1:]
}
