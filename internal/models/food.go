package models

// Food is a product record as served by the remote store (GET /foods/:id).
// Price is the base unit price; FormattedPrice is derived at load time.
type Food struct {
	ID             int64   `json:"id"`
	Name           string  `json:"name"`
	Description    string  `json:"description"`
	Price          float64 `json:"price"`
	Category       int64   `json:"category"`
	ImageURL       string  `json:"image_url"`
	ThumbnailURL   string  `json:"thumbnail_url"`
	FormattedPrice string  `json:"formatted_price,omitempty"`
	Extras         []Extra `json:"extras"`
}

// Extra is an optional add-on belonging to a food. The store serves it
// with quantity zero ("not selected"); quantity is mutated per session.
type Extra struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	Value    float64 `json:"value"`
	Quantity int     `json:"quantity"`
}
