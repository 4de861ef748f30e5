package models

// OrderPayload is the body of POST /orders. Price carries the computed
// order total, not the unit price. Extras lists only the add-ons the
// user actually selected (quantity > 0).
type OrderPayload struct {
	ProductID    int64   `json:"product_id"`
	Name         string  `json:"name"`
	Description  string  `json:"description"`
	Price        float64 `json:"price"`
	Category     int64   `json:"category"`
	ThumbnailURL string  `json:"thumbnail_url"`
	Extras       []Extra `json:"extras"`
}
