package models

import "time"

// Product statuses are derived from stock, never set directly.
const (
	StatusActive     = "Active"
	StatusOutOfStock = "Out of Stock"
)

type Product struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Description    string    `json:"description"`
	Category       string    `json:"category"`
	Subcategory    string    `json:"subcategory,omitempty"`
	Price          float64   `json:"price"`
	DiscountPrice  float64   `json:"discountPrice,omitempty"`
	OldPrice       float64   `json:"oldPrice,omitempty"`
	Stock          int       `json:"stock"`
	Brand          string    `json:"brand"`
	Tags           []string  `json:"tags"`
	Images         []string  `json:"images"`
	Rating         float64   `json:"rating"`
	ReviewsCount   int       `json:"reviewsCount"`
	IsFeatured     bool      `json:"isFeatured"`
	DeliveryCharge float64   `json:"deliveryCharge"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// StatusForStock derives the listing status from the stock level.
func StatusForStock(stock int) string {
	if stock > 0 {
		return StatusActive
	}
	return StatusOutOfStock
}

// CartItem references a product by id and carries the unit price captured
// when the item was first added. Later catalog price changes do not touch it.
type CartItem struct {
	ProductID string  `json:"productId"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}
