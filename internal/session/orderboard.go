package session

import "tea-estate/internal/domain"

// OrderBoard is the customer's view of the orders placed from this table.
type OrderBoard struct {
	orders []domain.Order
}

func NewOrderBoard() *OrderBoard {
	return &OrderBoard{}
}

func (b *OrderBoard) Replace(orders []domain.Order) {
	b.orders = append([]domain.Order(nil), orders...)
}

// Apply replaces the order with the same id. Orders the board does not know
// are ignored. becameReady is true only on the transition into ready.
func (b *OrderBoard) Apply(order domain.Order) (replaced, becameReady bool) {
	for i, existing := range b.orders {
		if existing.ID != order.ID {
			continue
		}
		becameReady = order.Status == domain.StatusReady && existing.Status != domain.StatusReady
		b.orders[i] = order
		return true, becameReady
	}
	return false, false
}

func (b *OrderBoard) Orders() []domain.Order {
	out := make([]domain.Order, len(b.orders))
	copy(out, b.orders)
	return out
}

func (b *OrderBoard) Len() int { return len(b.orders) }
