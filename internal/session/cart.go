package session

import "tea-estate/internal/domain"

// Cart keeps entries in the order they were first added. It is not safe for
// concurrent use; the owning service serializes access.
type Cart struct {
	entries []domain.CartEntry
}

// NewCart builds a cart from stored entries, dropping any that are not
// orderable.
func NewCart(entries []domain.CartEntry) *Cart {
	c := &Cart{}
	for _, e := range entries {
		if e.Quantity > 0 {
			c.entries = append(c.entries, e)
		}
	}
	return c
}

func (c *Cart) index(itemID int) int {
	for i, e := range c.entries {
		if e.ID == itemID {
			return i
		}
	}
	return -1
}

// ChangeQuantity adds delta to the entry for item. A missing entry is created
// only for a positive delta; an entry that falls to zero or below is removed.
// It reports whether the cart changed.
func (c *Cart) ChangeQuantity(item domain.MenuItem, delta int) bool {
	if delta == 0 {
		return false
	}
	i := c.index(item.ID)
	if i < 0 {
		if delta < 0 {
			return false
		}
		c.entries = append(c.entries, domain.CartEntry{
			ID:       item.ID,
			Name:     item.Name,
			Price:    item.Price,
			Quantity: delta,
		})
		return true
	}
	c.entries[i].Quantity += delta
	if c.entries[i].Quantity <= 0 {
		c.removeAt(i)
	}
	return true
}

func (c *Cart) Remove(itemID int) bool {
	i := c.index(itemID)
	if i < 0 {
		return false
	}
	c.removeAt(i)
	return true
}

func (c *Cart) removeAt(i int) {
	c.entries = append(c.entries[:i], c.entries[i+1:]...)
}

func (c *Cart) Quantity(itemID int) int {
	if i := c.index(itemID); i >= 0 {
		return c.entries[i].Quantity
	}
	return 0
}

func (c *Cart) Entries() []domain.CartEntry {
	out := make([]domain.CartEntry, len(c.entries))
	copy(out, c.entries)
	return out
}

func (c *Cart) Total() float64 {
	var total float64
	for _, e := range c.entries {
		total += e.Subtotal()
	}
	return total
}

// Count is the number of units across all entries.
func (c *Cart) Count() int {
	n := 0
	for _, e := range c.entries {
		n += e.Quantity
	}
	return n
}

func (c *Cart) Empty() bool { return len(c.entries) == 0 }

// Subtract takes submitted lines back out of the cart. Units added after the
// lines were taken stay; entries that reach zero are dropped.
func (c *Cart) Subtract(lines []domain.OrderLine) {
	for _, line := range lines {
		i := c.index(line.MenuItemID)
		if i < 0 {
			continue
		}
		c.entries[i].Quantity -= line.Quantity
		if c.entries[i].Quantity <= 0 {
			c.removeAt(i)
		}
	}
}

func (c *Cart) Lines() []domain.OrderLine {
	lines := make([]domain.OrderLine, 0, len(c.entries))
	for _, e := range c.entries {
		lines = append(lines, domain.OrderLine{MenuItemID: e.ID, Quantity: e.Quantity})
	}
	return lines
}
