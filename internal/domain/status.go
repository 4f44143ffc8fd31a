package domain

import "fmt"

type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusPreparing OrderStatus = "preparing"
	StatusReady     OrderStatus = "ready"
	StatusCompleted OrderStatus = "completed"
)

// Statuses lists every status the kitchen can set, in workflow order.
var Statuses = []OrderStatus{StatusPending, StatusPreparing, StatusReady, StatusCompleted}

func (s OrderStatus) Valid() bool {
	for _, known := range Statuses {
		if s == known {
			return true
		}
	}
	return false
}

// Active reports whether an order in this status still occupies its table.
func (s OrderStatus) Active() bool {
	return s == StatusPending || s == StatusPreparing || s == StatusReady
}

// Next returns the status that follows s in the kitchen workflow. Completed
// wraps around to pending.
func (s OrderStatus) Next() OrderStatus {
	for i, known := range Statuses {
		if s == known {
			return Statuses[(i+1)%len(Statuses)]
		}
	}
	return StatusPending
}

func ParseStatus(raw string) (OrderStatus, error) {
	status := OrderStatus(raw)
	if !status.Valid() {
		return "", fmt.Errorf("invalid order status %q", raw)
	}
	return status, nil
}
