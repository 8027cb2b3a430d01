package menu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateID(t *testing.T) {
	assert.Equal(t, "ram-samosa", GenerateID("Ram Samosa"))
	assert.Equal(t, "red-potato-crackers-with-fruity-yoghurt-dip", GenerateID("Red Potato Crackers with Fruity Yoghurt Dip"))
	assert.Equal(t, "rice-16", GenerateID("Rice 16"))
}

func TestCatalog_Find(t *testing.T) {
	c := NewCatalog()

	item, ok := c.Find("seafood-party")
	require.True(t, ok)
	assert.Equal(t, "Seafood Party", item.Name)
	assert.Equal(t, int64(15000000), item.Price)
	assert.NotEmpty(t, item.Description)

	_, ok = c.Find("no-such-dish")
	assert.False(t, ok)
}

func TestCatalog_SectionsHaveIDs(t *testing.T) {
	c := NewCatalog()

	sections := c.Sections()
	require.Len(t, sections, 4)
	for _, s := range sections {
		for _, item := range s.Items {
			assert.NotEmpty(t, item.ID, "item %q has no id", item.Name)
			assert.Positive(t, item.Price)
		}
	}
}
