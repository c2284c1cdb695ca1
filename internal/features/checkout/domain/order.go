package domain

// OrderStatus values as persisted by the order store.
const (
	StatusPending = "pendiente"
)

// DraftItem is one order line captured at submit time. Price is the
// undiscounted unit price, matching the cart subtotal rule.
type DraftItem struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
}

// OrderDraft is everything the order store needs to persist a new
// order. Reference is a client-generated idempotency key; retrying the
// same submission reuses it so the store can deduplicate.
type OrderDraft struct {
	Reference string
	UserID    string
	Form      CheckoutForm
	Items     []DraftItem
	Totals    Totals
}

// OrderResult is what a successful submission hands back to the shopper.
type OrderResult struct {
	OrderID     string `json:"order_id"`
	WhatsAppURL string `json:"whatsapp_url"`
	Totals      Totals `json:"totals"`
}
