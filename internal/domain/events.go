package domain

import (
	"encoding/json"
	"fmt"
	"strconv"
)

type EventKind string

const (
	EventNewOrder           EventKind = "new_order"
	EventOrderUpdated       EventKind = "order_updated"
	EventOrderStatusUpdated EventKind = "order_status_updated"
	EventMenuUpdated        EventKind = "menu_updated"
	EventItemUnavailable    EventKind = "item_unavailable"
)

// Event is one push notification from the server. Data holds the kind
// specific payload untouched until a handler decodes it.
type Event struct {
	Type EventKind       `json:"type"`
	Room string          `json:"room,omitempty"`
	Data json.RawMessage `json:"data,omitempty"`
}

func (e Event) Order() (*Order, error) {
	var order Order
	if err := json.Unmarshal(e.Data, &order); err != nil {
		return nil, fmt.Errorf("decode %s payload: %w", e.Type, err)
	}
	return &order, nil
}

func (e Event) ItemID() (int, error) {
	var payload struct {
		ItemID int `json:"item_id"`
	}
	if err := json.Unmarshal(e.Data, &payload); err != nil {
		return 0, fmt.Errorf("decode %s payload: %w", e.Type, err)
	}
	return payload.ItemID, nil
}

// Channel is a logical room on the push transport together with the join
// message the client announces when it subscribes.
type Channel struct {
	Room     string `json:"room"`
	Announce string `json:"type"`
	Table    int    `json:"table_number,omitempty"`
}

const (
	RoomCustomers = "customers"
	RoomAdmin     = "admin"
)

func TableChannel(tableNumber int) Channel {
	return Channel{
		Room:     "table_" + strconv.Itoa(tableNumber),
		Announce: "join_table",
		Table:    tableNumber,
	}
}

func CustomersChannel() Channel {
	return Channel{Room: RoomCustomers, Announce: "join_customers"}
}

func AdminChannel() Channel {
	return Channel{Room: RoomAdmin, Announce: "join_admin"}
}

func Rooms(channels []Channel) []string {
	rooms := make([]string, 0, len(channels))
	for _, ch := range channels {
		rooms = append(rooms, ch.Room)
	}
	return rooms
}
