// Package units normalizes the free-form quantity and money tokens that
// arrive from extraction providers and user input into canonical values:
// weights in kilograms and amounts as plain floats.
package units

import (
	"math"
	"strconv"
	"strings"
)

// WeightKg parses a weight token and returns its value in kilograms.
// Recognized suffixes: "ml" (divided by 1000), "l"/"ltr" (taken as litres,
// which map 1:1 to kilograms for the liquids this system ships), "kg"/"kgs".
// A bare number is already kilograms. Unparseable input yields 0.
func WeightKg(raw string) float64 {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" {
		return 0
	}

	factor := 1.0
	switch {
	case strings.HasSuffix(s, "ml"):
		s = strings.TrimSuffix(s, "ml")
		factor = 1.0 / 1000.0
	case strings.HasSuffix(s, "ltr"):
		s = strings.TrimSuffix(s, "ltr")
	case strings.HasSuffix(s, "kgs"):
		s = strings.TrimSuffix(s, "kgs")
	case strings.HasSuffix(s, "kg"):
		s = strings.TrimSuffix(s, "kg")
	case strings.HasSuffix(s, "l"):
		s = strings.TrimSuffix(s, "l")
	}

	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || v < 0 {
		return 0
	}
	return v * factor
}

// Money parses a money token, tolerating currency symbols, thousands
// separators and surrounding whitespace. Unparseable input yields 0.
func Money(raw string) float64 {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "$")
	s = strings.TrimPrefix(s, "₹")
	s = strings.TrimPrefix(s, "€")
	s = strings.ReplaceAll(s, ",", "")
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return v
}

// Int parses an integer token the same way Money handles floats; fractional
// and unparseable input yields 0.
func Int(raw string) int {
	v := Money(raw)
	if v != math.Trunc(v) {
		return 0
	}
	return int(v)
}

// Round2 rounds to two decimal places, half away from zero.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Round3 rounds to three decimal places, half away from zero.
func Round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
