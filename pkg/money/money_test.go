package money

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormat_WholeAmounts(t *testing.T) {
	assert.Equal(t, "₦0", Format(0))
	assert.Equal(t, "₦200", Format(20000))
	assert.Equal(t, "₦20,000", Format(2000000))
	assert.Equal(t, "₦150,000", Format(15000000))
	assert.Equal(t, "₦1,500,000", Format(150000000))
}

func TestFormat_Cents(t *testing.T) {
	assert.Equal(t, "₦0.01", Format(1))
	assert.Equal(t, "₦20,000.50", Format(2000050))
	assert.Equal(t, "₦1.05", Format(105))
}

func TestFormat_Negative(t *testing.T) {
	assert.Equal(t, "-₦250", Format(-25000))
	assert.Equal(t, "-₦0.01", Format(-1))
}
