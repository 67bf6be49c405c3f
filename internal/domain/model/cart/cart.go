package cart

// Row is a persisted cart line. Quantity is always >= 1; a quantity that
// would drop to zero deletes the row instead.
type Row struct {
	ID        int64
	ProductID int
	Quantity  int
}

// State is a point-in-time snapshot of the cart engine, safe to hand to
// observers without further locking.
type State struct {
	// Items maps productID to quantity.
	Items map[int]int
	// Busy holds the productIDs currently undergoing a remote mutation.
	Busy map[int]bool
	Clearing bool
	Loading  bool
	// Loaded flips to true once a refresh has been attempted at least once,
	// regardless of whether it succeeded.
	Loaded bool
}
