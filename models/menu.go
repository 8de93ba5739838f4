package models

// MenuItem is one catalog entry as served by GET /customer/menus.
// Price is in yen (integer, no minor unit).
type MenuItem struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       int64  `json:"price"`
	ImageURL    string `json:"image_url"`
	IsAvailable bool   `json:"is_available"`
}

const (
	// MaxOrderQuantity caps the per-item quantity a customer may select.
	MaxOrderQuantity = 10

	// CatalogFetchLimit is the per_page sent when loading the full catalog
	// or order history in one request.
	CatalogFetchLimit = 100
)
