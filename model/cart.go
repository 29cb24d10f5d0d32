package model

type CartItem struct {
	ItemID string  `json:"itemId" db:"item_id"`
	Price  float64 `json:"price" db:"price"`
}

// Cart is a per-user append-only item list.
type Cart struct {
	UserID string     `json:"userId"`
	Items  []CartItem `json:"items"`
}
