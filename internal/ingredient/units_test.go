package ingredient

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanonicalUnit_FoldsPluralsAndCase(t *testing.T) {
	cases := map[string]string{
		"lbs":         "lb",
		"lb":          "lb",
		"pounds":      "lb",
		"Pound":       "lb",
		"TBSP":        "tbsp",
		"tablespoons": "tablespoon",
		"cups":        "cup",
		"Cup.":        "cup",
		"oz":          "oz",
		"ounces":      "oz",
	}
	for in, want := range cases {
		got, ok := canonicalUnit(in)
		assert.True(t, ok, "expected %q to be a recognized unit", in)
		assert.Equal(t, want, got)
	}
}

func TestCanonicalUnit_RejectsUnknownToken(t *testing.T) {
	_, ok := canonicalUnit("bag")
	assert.False(t, ok)
}

func TestPluralizeUnit(t *testing.T) {
	assert.Equal(t, "cups", PluralizeUnit("cup"))
	assert.Equal(t, "g", PluralizeUnit("g"))
	assert.Equal(t, "tbsp", PluralizeUnit("tbsp"))
	assert.Equal(t, "bunches", PluralizeUnit("bunch"))
	assert.Equal(t, "", PluralizeUnit(""))
}
