package utils

import "strings"

// NormalizeSize normalizes selectable size values to the catalog format
// 2XL -> XXL, Small -> S
func NormalizeSize(size string) string {
	sizeUpper := strings.ToUpper(strings.TrimSpace(size))

	aliases := map[string]string{
		"2XL":         "XXL",
		"XX-LARGE":    "XXL",
		"X-LARGE":     "XL",
		"EXTRA SMALL": "XS",
		"SMALL":       "S",
		"MEDIUM":      "M",
		"LARGE":       "L",
	}
	if normalized, ok := aliases[sizeUpper]; ok {
		return normalized
	}
	return sizeUpper
}

// NormalizeChartSize normalizes size chart labels, which spell the largest size 2XL
func NormalizeChartSize(size string) string {
	normalized := NormalizeSize(size)
	if normalized == "XXL" {
		return "2XL"
	}
	return normalized
}
