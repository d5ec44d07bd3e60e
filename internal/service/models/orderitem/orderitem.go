package orderitem

// OrderItem represents one line item within an order. Unit and total price
// are supplied by the caller at creation time (price-at-add-to-cart) and are
// not recomputed from the catalog.
type OrderItem struct {
	ID         int64   `json:"id"`
	OrderID    int64   `json:"orderId"`
	ProductID  int64   `json:"productId"`
	Quantity   int     `json:"quantity"`
	UnitPrice  float64 `json:"unitPrice"`
	TotalPrice float64 `json:"totalPrice"`

	// Denormalized product fields, populated on read paths only.
	ProductName string `json:"productName,omitempty"`
	Description string `json:"description,omitempty"`
	ImageURL    string `json:"imageUrl,omitempty"`
	Category    string `json:"category,omitempty"`
}
