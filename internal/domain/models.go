package domain

import "time"

type MenuItem struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	CategoryID  int       `json:"category_id"`
	IsAvailable bool      `json:"is_available"`
	CreatedAt   time.Time `json:"created_at,omitempty"`
	UpdatedAt   time.Time `json:"updated_at,omitempty"`
}

type Category struct {
	ID           int        `json:"id"`
	Name         string     `json:"name"`
	DisplayOrder int        `json:"display_order"`
	Items        []MenuItem `json:"items"`
}

// CartEntry is one line of the customer's cart. Quantity is always at least 1
// while the entry exists.
type CartEntry struct {
	ID       int     `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

func (e CartEntry) Subtotal() float64 {
	return e.Price * float64(e.Quantity)
}

type OrderItem struct {
	ID           int     `json:"id"`
	MenuItemID   int     `json:"menu_item_id"`
	MenuItemName string  `json:"menu_item_name"`
	Quantity     int     `json:"quantity"`
	PriceAtTime  float64 `json:"price_at_time"`
	Subtotal     float64 `json:"subtotal"`
}

type Order struct {
	ID            int         `json:"id"`
	TableNumber   int         `json:"table_number"`
	Status        OrderStatus `json:"status"`
	EstimatedTime int         `json:"estimated_time"`
	TotalAmount   float64     `json:"total_amount"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
	Items         []OrderItem `json:"items"`
}

type OrderLine struct {
	MenuItemID int `json:"menu_item_id"`
	Quantity   int `json:"quantity"`
}

type OrderRequest struct {
	TableNumber int         `json:"table_number"`
	Items       []OrderLine `json:"items"`
}

// OrderConfirmation is what the server reports back after accepting an order.
type OrderConfirmation struct {
	OrderID       int         `json:"order_id"`
	TotalAmount   float64     `json:"total_amount"`
	EstimatedTime int         `json:"estimated_time"`
	Status        OrderStatus `json:"status"`
}

type Table struct {
	ID           int       `json:"id"`
	TableNumber  int       `json:"table_number"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	ActiveOrders int       `json:"active_orders"`
}

type TableValidation struct {
	Exists   bool `json:"exists"`
	IsActive bool `json:"is_active"`
	TableID  *int `json:"table_id"`
}

type AdminUser struct {
	ID        int       `json:"id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}

type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResult struct {
	Token     string    `json:"token"`
	ExpiresIn int       `json:"expires_in"`
	User      AdminUser `json:"user"`
}

// MenuItemInput carries the fields of an admin create or update. Nil fields
// are left out of the request so partial updates keep the server's values.
type MenuItemInput struct {
	Name        *string  `json:"name,omitempty"`
	Description *string  `json:"description,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	CategoryID  *int     `json:"category_id,omitempty"`
	IsAvailable *bool    `json:"is_available,omitempty"`
}

type StatusUpdate struct {
	Status        OrderStatus `json:"status"`
	EstimatedTime *int        `json:"estimated_time,omitempty"`
}
