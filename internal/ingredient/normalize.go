package ingredient

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// lowerCaser performs Unicode-aware lowercasing (spec.md §4.3 step 5)
// with the English casing rules of golang.org/x/text/cases; no
// locale-specific rules (such as Turkish dotted/dotless "I") are applied.
var lowerCaser = cases.Lower(language.English)

var parenRe = regexp.MustCompile(`\([^)]*\)`)

// trailingPhraseRes matches the descriptor phrases spec.md §4.3 says to
// strip from the tail of a name, e.g. "chicken breast, cut into cubes" ->
// "chicken breast, ".
var trailingPhraseRes = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bto taste\b.*$`),
	regexp.MustCompile(`(?i)\bdivided\b.*$`),
	regexp.MustCompile(`(?i)\bor more\b.*$`),
	regexp.MustCompile(`(?i)\bas needed\b.*$`),
	regexp.MustCompile(`(?i)\bplus more\b.*$`),
	regexp.MustCompile(`(?i)\bat room temperature\b.*$`),
	regexp.MustCompile(`(?i)\bcut into\b.*$`),
	regexp.MustCompile(`(?i)\blike\b.*$`),
	regexp.MustCompile(`(?i)\bsuch as\b.*$`),
	regexp.MustCompile(`(?i)\bfor\b.*$`),
	regexp.MustCompile(`(?i)\bpreferably\b.*$`),
	regexp.MustCompile(`(?i)\bstore-bought\b.*$`),
	regexp.MustCompile(`(?i)\bif available\b.*$`),
}

// embeddedMeasurementRe matches an embedded measurement like "8 oz" or
// "2 cups" appearing anywhere in the remaining text (not just the front,
// since the leading quantity was already consumed before this point).
var embeddedMeasurementRe = regexp.MustCompile(`(?i)\b\d+(?:\.\d+)?\s*(?:` + unitAlternation() + `)\.?\b`)

func unitAlternation() string {
	seen := make(map[string]bool)
	var alts []string
	for k := range unitCanon {
		if !seen[k] {
			seen[k] = true
			alts = append(alts, regexp.QuoteMeta(k))
		}
	}
	return strings.Join(alts, "|")
}

var bareNumberRe = regexp.MustCompile(`^\d+(?:\.\d+)?$`)

var leadingConjunctions = map[string]bool{
	"and": true, "or": true, "then": true, "plus": true,
}

// stripWords removes prep verbs, size adjectives, freshness markers, and
// connective prepositions — tokens that describe HOW an ingredient is
// used rather than WHAT it is.
var stripWords = map[string]bool{
	"chopped": true, "diced": true, "minced": true, "sliced": true,
	"grated": true, "shredded": true, "crushed": true, "peeled": true,
	"seeded": true, "cored": true, "trimmed": true, "halved": true,
	"quartered": true, "cubed": true, "julienned": true, "sifted": true,
	"melted": true, "softened": true, "beaten": true, "whisked": true,
	"drained": true, "rinsed": true, "packed": true, "toasted": true,
	"large": true, "small": true, "medium": true, "extra": true,
	"fresh": true, "frozen": true, "dried": true, "ripe": true,
	"raw": true, "cooked": true,
	"of": true, "the": true, "a": true, "an": true, "with": true,
	"into": true, "in": true, "to": true,
}

// irregularSingular holds exceptions checked before the suffix rules.
var irregularSingular = map[string]string{
	"leaves": "leaf", "halves": "half", "loaves": "loaf", "knives": "knife",
	"tomatoes": "tomato", "potatoes": "potato", "lives": "life",
}

// singularize reduces a plural English noun token to its singular form,
// irregular table first, then suffix rules (spec.md §4.3 step 5).
func singularize(tok string) string {
	if s, ok := irregularSingular[tok]; ok {
		return s
	}
	switch {
	case strings.HasSuffix(tok, "ies") && len(tok) > 3:
		return tok[:len(tok)-3] + "y"
	case strings.HasSuffix(tok, "oes") && len(tok) > 3:
		return tok[:len(tok)-2]
	case strings.HasSuffix(tok, "ches") || strings.HasSuffix(tok, "shes"):
		return tok[:len(tok)-2]
	case strings.HasSuffix(tok, "ses") && len(tok) > 3:
		return tok[:len(tok)-3] + "s"
	case strings.HasSuffix(tok, "ss"), strings.HasSuffix(tok, "us"):
		return tok
	case strings.HasSuffix(tok, "s") && len(tok) > 1:
		return tok[:len(tok)-1]
	}
	return tok
}

// normalizeName implements spec.md §4.3 step 5. Idempotent per §8 P8.
func normalizeName(raw string) string {
	s := parenRe.ReplaceAllString(raw, "")

	for _, re := range trailingPhraseRes {
		s = re.ReplaceAllString(s, "")
	}

	if i := strings.IndexByte(s, ','); i >= 0 {
		s = s[:i]
	}

	s = embeddedMeasurementRe.ReplaceAllString(s, "")

	s = lowerCaser.String(s)

	fields := strings.Fields(s)

	// drop a single leading conjunction
	if len(fields) > 0 && leadingConjunctions[fields[0]] {
		fields = fields[1:]
	}

	out := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.Trim(f, ".,;:!()")
		if f == "" {
			continue
		}
		if stripWords[f] {
			continue
		}
		if bareNumberRe.MatchString(f) {
			continue
		}
		out = append(out, singularize(f))
	}

	result := strings.Join(out, " ")
	if len([]rune(result)) <= 1 {
		return ""
	}
	return result
}
