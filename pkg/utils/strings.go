package utils

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	htmlTagRegex      = regexp.MustCompile(`<[^>]*>`)
	leadingFloatRegex = regexp.MustCompile(`^[\d.]+`)
)

// StripHTMLTags removes HTML markup from a string and trims whitespace.
// e.g. "<p>Livraison rapide</p>" -> "Livraison rapide"
func StripHTMLTags(input string) string {
	return strings.TrimSpace(htmlTagRegex.ReplaceAllString(input, ""))
}

// ParseLeadingFloat extracts the numeric prefix of a free-form cost string.
// WooCommerce allows cost formulas like "10.00 * [qty]"; only the flat base
// rate matters here, so everything after the leading number is discarded.
// Empty or non-numeric input degrades to 0, never an error.
func ParseLeadingFloat(raw string) float64 {
	if raw == "" {
		return 0
	}
	cleaned := strings.TrimSpace(raw)
	match := leadingFloatRegex.FindString(cleaned)
	if match == "" {
		return 0
	}
	val, err := strconv.ParseFloat(match, 64)
	if err != nil {
		// e.g. "10.0.5" or a bare "."
		return 0
	}
	return val
}

// ParseInt parses a string to int with a fallback default value
func ParseInt(s string, defaultVal int) int {
	if s == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(s)
	if err != nil {
		return defaultVal
	}
	return val
}
