package cart

import (
	"time"

	"github.com/naturescrunch/storefront/internal/domain"
)

// Cart is one session's cart. Lines keep insertion order for display.
type Cart struct {
	SessionID string            `json:"session_id"`
	Lines     []domain.CartLine `json:"lines"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

// New returns an empty cart for the session.
func New(sessionID string) *Cart {
	now := time.Now()
	return &Cart{
		SessionID: sessionID,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// clone returns a deep copy so callers can mutate independently.
func (c *Cart) clone() *Cart {
	cp := *c
	cp.Lines = append([]domain.CartLine(nil), c.Lines...)
	return &cp
}

// Add inserts a new line with quantity 1, or increments the quantity of an
// existing line with the same id. It always succeeds.
func (c *Cart) Add(line domain.CartLine) {
	for i := range c.Lines {
		if c.Lines[i].ID == line.ID {
			c.Lines[i].Quantity++
			c.UpdatedAt = time.Now()
			return
		}
	}
	line.Quantity = 1
	c.Lines = append(c.Lines, line)
	c.UpdatedAt = time.Now()
}

// Remove deletes the line if present. Removing an absent id is a no-op.
func (c *Cart) Remove(id string) {
	for i := range c.Lines {
		if c.Lines[i].ID == id {
			c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
			c.UpdatedAt = time.Now()
			return
		}
	}
}

// SetQuantity sets the line's quantity; quantity <= 0 removes the line. A
// line never survives at quantity zero.
func (c *Cart) SetQuantity(id string, quantity int) {
	if quantity <= 0 {
		c.Remove(id)
		return
	}
	for i := range c.Lines {
		if c.Lines[i].ID == id {
			c.Lines[i].Quantity = quantity
			c.UpdatedAt = time.Now()
			return
		}
	}
}

// Total returns the sum of unit price times quantity over all lines, in
// minor units.
func (c *Cart) Total() int64 {
	var total int64
	for _, line := range c.Lines {
		total += line.LineTotal()
	}
	return total
}

// Count returns the sum of quantities over all lines.
func (c *Cart) Count() int {
	var count int
	for _, line := range c.Lines {
		count += line.Quantity
	}
	return count
}

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}
