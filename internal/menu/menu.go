// Package menu holds the restaurant's catalog. The menu is deployment
// content, not user data; it ships with the binary.
package menu

import (
	"regexp"
	"strings"
)

// Item is a single orderable dish. Price is in minor units (kobo).
type Item struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Price       int64  `json:"price"`
}

// Section groups items for display.
type Section struct {
	Name  string `json:"name"`
	Items []Item `json:"items"`
}

var whitespace = regexp.MustCompile(`\s+`)

// GenerateID derives a stable item id from its display name.
func GenerateID(name string) string {
	return whitespace.ReplaceAllString(strings.ToLower(name), "-")
}

// Catalog is the seasonal menu. Prices are kobo (menu shows major naira).
type Catalog struct {
	sections []Section
	byID     map[string]Item
}

// NewCatalog builds the catalog with ids derived from item names.
func NewCatalog() *Catalog {
	sections := []Section{
		{
			Name: "Appetizers",
			Items: []Item{
				{Name: "Caramelized Pineapple Kabobs", Price: 2000000},
				{Name: "Red Potato Crackers with Fruity Yoghurt Dip", Price: 2000000},
				{Name: "Smoked Chicken Spring Rolls", Price: 2000000},
				{Name: "Ram Samosa", Price: 2500000},
			},
		},
		{
			Name: "Salad Bar",
			Items: []Item{
				{Name: "Mesclun Salad", Description: "Kale, coriander, lettuce, arugula, spinach, celery. Tangy-Tangy or Angel splash dressing.", Price: 2500000},
				{Name: "Mexican Salad", Description: "Potato, beetroot, avocado, seasoned with olive oil.", Price: 2500000},
				{Name: "Lamo Salad", Description: "Chicken and rice salad", Price: 5000000},
				{Name: "Salad Of The Day", Description: "Build your favourite salad platter from our daily selection of fresh vegetable and dressings.", Price: 4500000},
				{Name: "Steamed Aromatic Compound Salad", Price: 4000000},
			},
		},
		{
			Name: "Main Courses",
			Items: []Item{
				{Name: "Rice 16", Description: "A sixteen-ingredient special signature basmati rice served with your choice of Turkey or Prawns, or Ram strips.", Price: 6000000},
				{Name: "Seafood Party", Description: "A luxurious mix of prawns, shrimps, calamari, octopus, white fish, and snail, served with three sides, three salads, and a signature lemon sauce.", Price: 15000000},
				{Name: "Joplan Bowl", Description: "Caribbean-inspired platter of grilled fruits, plantain, and jerky rice. Choice of two proteins.", Price: 5700000},
				{Name: "Natures Pot", Description: "Cajun ram and vegetable stew, served with grilled vegetables or brown basmati rice.", Price: 5700000},
			},
		},
		{
			Name: "Desserts",
			Items: []Item{
				{Name: "Pineapple Upside-Down Cake", Price: 2500000},
				{Name: "Chocolate-Dipped Strawberries", Price: 2500000},
				{Name: "Fruicuterie Board", Price: 2500000},
				{Name: "Mixed Berry Tart", Price: 2500000},
			},
		},
	}

	byID := make(map[string]Item)
	for si := range sections {
		for ii := range sections[si].Items {
			item := &sections[si].Items[ii]
			item.ID = GenerateID(item.Name)
			byID[item.ID] = *item
		}
	}

	return &Catalog{sections: sections, byID: byID}
}

// Sections returns the menu in display order.
func (c *Catalog) Sections() []Section {
	return c.sections
}

// Find looks an item up by id.
func (c *Catalog) Find(id string) (Item, bool) {
	item, ok := c.byID[id]
	return item, ok
}
