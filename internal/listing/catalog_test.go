package listing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCatalogKeepsLoadOrder(t *testing.T) {
	c := NewCatalog([]string{"Дом", "Мебель", "Техника"})
	assert.Equal(t, []string{"Дом", "Мебель", "Техника"}, c.Tags())
	assert.Equal(t, 3, c.Len())
}

func TestCatalogContains(t *testing.T) {
	c := NewCatalog([]string{"Дом", "Мебель"})
	assert.True(t, c.Contains("Мебель"))
	assert.False(t, c.Contains("Авто"))
	assert.False(t, c.Contains(""))
}

func TestCatalogCopiesInput(t *testing.T) {
	src := []string{"Дом"}
	c := NewCatalog(src)
	src[0] = "mutated"
	assert.Equal(t, []string{"Дом"}, c.Tags())
}
