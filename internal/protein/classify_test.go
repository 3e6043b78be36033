package protein

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetect_SingleCategory(t *testing.T) {
	got := Detect([]string{"2 lbs boneless chicken breast", "1 tbsp olive oil"})
	assert.Equal(t, []Category{Chicken}, got)
}

func TestDetect_MultipleCategories(t *testing.T) {
	got := Detect([]string{"1 lb ground beef", "1 can black beans", "1 cup rice"})
	assert.ElementsMatch(t, []Category{Beef, Legume}, got)
}

func TestDetect_NoMatch(t *testing.T) {
	got := Detect([]string{"2 cups flour", "1 tsp vanilla"})
	assert.Empty(t, got)
}

func TestDetect_DoesNotDuplicateCategory(t *testing.T) {
	got := Detect([]string{"chicken thighs", "chicken stock"})
	assert.Equal(t, []Category{Chicken}, got)
}
