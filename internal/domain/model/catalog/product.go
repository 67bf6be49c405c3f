package catalog

// Product is a catalog entry as served by the remote service and cached
// locally. Fields beyond id/type/price are opaque pass-through: the sync
// core never interprets them, it only stores and returns them.
type Product struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Category    string  `json:"category,omitempty"`
	Number      string  `json:"number,omitempty"`
	Details     int     `json:"details,omitempty"`
	Minifigures int     `json:"minifigures,omitempty"`
	Age         string  `json:"age,omitempty"`
	Year        string  `json:"year,omitempty"`
	Size        string  `json:"size,omitempty"`
	Condition   string  `json:"condition,omitempty"`
	Price       float64 `json:"price"`
	CreatedAt   string  `json:"createdAt,omitempty"`
	Image       string  `json:"image,omitempty"`
	Description string  `json:"description,omitempty"`
	Type        string  `json:"type"`
	Keywords    string  `json:"keywords,omitempty"`
	IsAvailable bool    `json:"isAvailable"`
}

// CategoryState is the observable load state of one catalog category.
// It is replaced wholesale on each load, never patched field by field.
type CategoryState struct {
	Loading  bool
	Products []Product
	Err      error
}
