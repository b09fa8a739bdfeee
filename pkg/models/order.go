package models

import "time"

type OrderStatus string

const (
	OrderPending   OrderStatus = "Pending"
	OrderPacked    OrderStatus = "Packed"
	OrderShipped   OrderStatus = "Shipped"
	OrderDelivered OrderStatus = "Delivered"
	OrderCancelled OrderStatus = "Cancelled"
)

// Order is computed by the checkout flow and handed back to the caller.
// Real checkouts never append to the order-history listing, which is backed
// by a fixed list.
type Order struct {
	ID            string      `json:"id"`
	UserID        string      `json:"userId"`
	Items         []CartItem  `json:"items"`
	TotalAmount   float64     `json:"totalAmount"`
	Discount      float64     `json:"discount"`
	ShippingFee   float64     `json:"shippingFee"`
	Status        OrderStatus `json:"status"`
	PaymentStatus string      `json:"paymentStatus"` // Paid | Unpaid
	PaymentMethod string      `json:"paymentMethod"`
	AddressID     string      `json:"addressId"`
	CreatedAt     time.Time   `json:"createdAt"`
}
