package cart

import (
	"testing"

	"github.com/naturescrunch/storefront/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func line(id string, price int64) domain.CartLine {
	return domain.CartLine{ID: id, Name: id, UnitPrice: price}
}

func TestCart_Add_NewLine(t *testing.T) {
	c := New("s1")

	c.Add(line("ram-samosa", 2500000))

	require.Len(t, c.Lines, 1)
	assert.Equal(t, 1, c.Lines[0].Quantity)
	assert.Equal(t, int64(2500000), c.Total())
	assert.Equal(t, 1, c.Count())
}

func TestCart_Add_ExistingLineIncrementsByOne(t *testing.T) {
	c := New("s1")

	c.Add(line("ram-samosa", 2500000))
	c.Add(line("ram-samosa", 2500000))
	c.Add(line("ram-samosa", 2500000))

	// No duplicate line, quantity bumped each time
	require.Len(t, c.Lines, 1)
	assert.Equal(t, 3, c.Lines[0].Quantity)
	assert.Equal(t, int64(7500000), c.Total())
}

func TestCart_Remove_AbsentIsNoop(t *testing.T) {
	c := New("s1")
	c.Add(line("rice-16", 6000000))

	c.Remove("not-there")

	assert.Len(t, c.Lines, 1)
}

func TestCart_SetQuantity_ZeroRemovesLine(t *testing.T) {
	c := New("s1")
	c.Add(line("rice-16", 6000000))
	c.Add(line("lamo-salad", 5000000))

	c.SetQuantity("rice-16", 0)

	require.Len(t, c.Lines, 1)
	assert.Equal(t, "lamo-salad", c.Lines[0].ID)
	assert.Equal(t, 1, c.Count())
}

func TestCart_SetQuantity_NegativeRemovesLine(t *testing.T) {
	c := New("s1")
	c.Add(line("rice-16", 6000000))

	c.SetQuantity("rice-16", -3)

	assert.True(t, c.IsEmpty())
	assert.Equal(t, int64(0), c.Total())
}

func TestCart_InsertionOrderPreserved(t *testing.T) {
	c := New("s1")
	c.Add(line("a", 100))
	c.Add(line("b", 200))
	c.Add(line("c", 300))
	c.Add(line("b", 200)) // bump existing, order unchanged

	ids := []string{c.Lines[0].ID, c.Lines[1].ID, c.Lines[2].ID}
	assert.Equal(t, []string{"a", "b", "c"}, ids)
}

// Total stays equal to the sum over surviving lines for any op sequence.
func TestCart_TotalInvariant(t *testing.T) {
	c := New("s1")

	ops := []func(){
		func() { c.Add(line("a", 2000000)) },
		func() { c.Add(line("b", 2500000)) },
		func() { c.Add(line("a", 2000000)) },
		func() { c.SetQuantity("b", 4) },
		func() { c.Remove("a") },
		func() { c.Add(line("c", 5700000)) },
		func() { c.SetQuantity("c", 0) },
		func() { c.Add(line("a", 2000000)) },
	}

	for _, op := range ops {
		op()

		var want int64
		var count int
		for _, l := range c.Lines {
			require.GreaterOrEqual(t, l.Quantity, 1, "no line survives below quantity 1")
			want += l.UnitPrice * int64(l.Quantity)
			count += l.Quantity
		}
		assert.Equal(t, want, c.Total())
		assert.Equal(t, count, c.Count())
	}
}
