package wishlist

// Item is one wishlist entry as reported by the remote service. The remote
// service is the id authority: ItemID is assigned remotely and must be known
// locally before any remove or update call can address the entry.
type Item struct {
	ItemID     int    `json:"id"`
	WishlistID int    `json:"wishlistId"`
	ProductID  int    `json:"productId"`
	Quantity   int    `json:"quantity"`
	AddedAt    string `json:"addedAt,omitempty"`
}

// Info is the wishlist header row.
type Info struct {
	ID        int    `json:"id"`
	UserID    int    `json:"userId"`
	CreatedAt string `json:"createdAt"`
}

// Snapshot is the canonical remote view of the wishlist.
type Snapshot struct {
	Wishlist Info   `json:"wishlist"`
	Items    []Item `json:"items"`
}

// State is a point-in-time snapshot of the wishlist engine.
type State struct {
	// Items maps productID to quantity.
	Items map[int]int
	// Raw holds the last-fetched remote entries, needed because remote item
	// ids are required for removal and update.
	Raw      []Item
	Busy     map[int]bool
	Clearing bool
	Loading  bool
	Loaded   bool
}
