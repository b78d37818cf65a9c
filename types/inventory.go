package types

// InventoryItem is a catalog entry. Names are unique across the
// whole inventory; items have no owning user.
type InventoryItem struct {
	ID          int     `json:"id" db:"id"`
	Name        string  `json:"name" db:"name"`
	Description string  `json:"description" db:"description"`
	Quantity    int     `json:"quantity" db:"quantity"`
	Price       float64 `json:"price" db:"price"`
	Category    string  `json:"category" db:"category"`
}

// InventoryPage is one page of an inventory search result.
type InventoryPage struct {
	Items   []InventoryItem `json:"items"`
	Total   int             `json:"total_items"`
	Page    int             `json:"page"`
	PerPage int             `json:"per_page"`
	Pages   int             `json:"pages"`
	HasNext bool            `json:"has_next"`
	HasPrev bool            `json:"has_prev"`
}
