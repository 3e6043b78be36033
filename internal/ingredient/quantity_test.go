package ingredient

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLeadingQuantity(t *testing.T) {
	cases := []struct {
		in       string
		wantQty  float64
		wantRest string
	}{
		{"2 eggs", 2, "eggs"},
		{"1 1/2 cups flour", 1.5, "cups flour"},
		{"3/4 cup sugar", 0.75, "cup sugar"},
		{"½ tsp vanilla", 0.5, "tsp vanilla"},
		{"1½ cups milk", 1.5, "cups milk"},
		{"no leading number here", 1.0, "no leading number here"},
		{"0.5 cup oil", 0.5, "cup oil"},
	}
	for _, c := range cases {
		gotQty, gotRest := leadingQuantity(c.in)
		assert.InDelta(t, c.wantQty, gotQty, 1e-9, "qty for %q", c.in)
		assert.Equal(t, c.wantRest, gotRest, "rest for %q", c.in)
	}
}

func TestVulgarFractionValues(t *testing.T) {
	assert.InDelta(t, 0.5, vulgarFractions['½'], 1e-9)
	assert.InDelta(t, 0.25, vulgarFractions['¼'], 1e-9)
	assert.InDelta(t, 0.75, vulgarFractions['¾'], 1e-9)
	assert.InDelta(t, 1.0/3, vulgarFractions['⅓'], 1e-9)
}
