package domain

import (
	"time"
)

// Order represents a stored customer order with its lines.
type Order struct {
	// ID is the unique identifier for the order.
	ID string `json:"order_id"`
	// Status is the current state of the order (e.g., pendiente, confirmado).
	Status string `json:"status"`
	// Total is the charged amount including shipping.
	Total float64 `json:"total"`
	// CustomerName is the name captured at checkout.
	CustomerName string `json:"customer_name"`
	// Email is the contact email for the customer.
	Email string `json:"email"`
	// Phone is the contact phone for the customer.
	Phone string `json:"phone"`
	// Address is the delivery address for the order.
	Address string `json:"address"`
	// City is the city of the delivery address.
	City string `json:"city"`
	// Notes holds optional delivery instructions.
	Notes string `json:"notes,omitempty"`
	// CreatedAt is the timestamp when the order was created.
	CreatedAt time.Time `json:"create_date"`
	// Items contains the list of products included in the order.
	Items []OrderItem `json:"items"`
}

// OrderItem represents an individual item within an order.
type OrderItem struct {
	// ProductID references the catalog product.
	ProductID string `json:"product_id"`
	// Quantity is the number of units purchased.
	Quantity int `json:"quantity"`
	// Price is the unit price charged at checkout.
	Price float64 `json:"price"`
}
