package order

// LineItem is one line of an order-creation request.
type LineItem struct {
	ProductID int `json:"productId"`
	Quantity  int `json:"quantity"`
}

// Placed is the remote response to a successful order creation.
type Placed struct {
	ID      int    `json:"id"`
	Message string `json:"message"`
}

// Summary is one order as listed in the order history.
type Summary struct {
	ID         int     `json:"id"`
	UserID     int     `json:"userId"`
	Status     string  `json:"status"`
	TotalPrice float64 `json:"totalPrice"`
	CreatedAt  string  `json:"createdAt"`
}

// ItemDetail is one line of a placed order.
type ItemDetail struct {
	ID              int     `json:"id"`
	OrderID         int     `json:"orderId"`
	ProductID       int     `json:"productId"`
	Quantity        int     `json:"quantity"`
	PriceAtPurchase float64 `json:"priceAtPurchase"`
}

// Details is an order together with its lines.
type Details struct {
	Order Summary      `json:"order"`
	Items []ItemDetail `json:"items"`
}

// Page is a paged order history response.
type Page struct {
	Page  int       `json:"page"`
	Limit int       `json:"limit"`
	Total int64     `json:"total"`
	Data  []Summary `json:"data"`
}
