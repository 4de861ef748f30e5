package service

import "github.com/jardelbordignon/gorestaurant-details-service/internal/models"

// BuildOrderPayload assembles the POST /orders body from the live
// session state. Only extras the user selected (quantity > 0) are
// serialized; an order with no extras carries an empty list. Price is
// the computed order total, not the unit price.
func BuildOrderPayload(food models.Food, extras []models.Extra, total float64) *models.OrderPayload {
	selected := make([]models.Extra, 0, len(extras))
	for _, extra := range extras {
		if extra.Quantity > 0 {
			selected = append(selected, extra)
		}
	}

	return &models.OrderPayload{
		ProductID:    food.ID,
		Name:         food.Name,
		Description:  food.Description,
		Price:        total,
		Category:     food.Category,
		ThumbnailURL: food.ThumbnailURL,
		Extras:       selected,
	}
}
