package ingredient

import (
	"regexp"
	"strconv"
	"strings"
)

// vulgarFractions maps unicode vulgar fraction runes to their value.
var vulgarFractions = map[rune]float64{
	'½': 0.5, '⅓': 1.0 / 3, '⅔': 2.0 / 3,
	'¼': 0.25, '¾': 0.75,
	'⅕': 0.2, '⅖': 0.4, '⅗': 0.6, '⅘': 0.8,
	'⅙': 1.0 / 6, '⅚': 5.0 / 6,
	'⅛': 0.125, '⅜': 0.375, '⅝': 0.625, '⅞': 0.875,
}

var (
	mixedFractionRe = regexp.MustCompile(`^(\d+)\s+(\d+)/(\d+)\s*`)
	plainFractionRe = regexp.MustCompile(`^(\d+)/(\d+)\s*`)
	decimalRe       = regexp.MustCompile(`^(\d+(?:\.\d+)?)\s*`)
)

// leadingQuantity consumes a leading quantity from s in the priority order
// given by spec.md §4.3: mixed fraction, plain fraction, decimal/integer,
// unicode vulgar fraction — and if a decimal is immediately followed by a
// vulgar fraction, the two are summed (e.g. "1½" = 1.5). Returns the parsed
// quantity (defaulting to 1.0 if nothing was found) and the remainder of s.
func leadingQuantity(s string) (float64, string) {
	s = strings.TrimLeft(s, " \t")

	if m := mixedFractionRe.FindStringSubmatch(s); m != nil {
		whole, _ := strconv.ParseFloat(m[1], 64)
		num, _ := strconv.ParseFloat(m[2], 64)
		den, _ := strconv.ParseFloat(m[3], 64)
		if den != 0 {
			return whole + num/den, s[len(m[0]):]
		}
	}

	if m := plainFractionRe.FindStringSubmatch(s); m != nil {
		num, _ := strconv.ParseFloat(m[1], 64)
		den, _ := strconv.ParseFloat(m[2], 64)
		if den != 0 {
			return num / den, s[len(m[0]):]
		}
	}

	if m := decimalRe.FindStringSubmatch(s); m != nil {
		val, _ := strconv.ParseFloat(m[1], 64)
		rest := s[len(m[0]):]
		// A decimal followed by a vulgar fraction is summed with it; any
		// whitespace between the two was already consumed by decimalRe, so
		// "1½" and "1 ½" both give 1.5.
		if v, consumed, ok := leadingVulgarFraction(rest); ok {
			return val + v, consumed
		}
		return val, rest
	}

	if v, rest, ok := leadingVulgarFraction(s); ok {
		return v, rest
	}

	return 1.0, s
}

// leadingVulgarFraction consumes a single leading unicode vulgar fraction
// rune, if present.
func leadingVulgarFraction(s string) (float64, string, bool) {
	runes := []rune(s)
	if len(runes) == 0 {
		return 0, s, false
	}
	if v, ok := vulgarFractions[runes[0]]; ok {
		return v, strings.TrimLeft(string(runes[1:]), " \t"), true
	}
	return 0, s, false
}
