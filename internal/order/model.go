package order

import (
	"strings"
	"time"

	"github.com/MikeMC777/ordenes-skincare/internal/apperr"
	"github.com/MikeMC777/ordenes-skincare/internal/money"
	"github.com/MikeMC777/ordenes-skincare/internal/shipping"
)

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusShipped   Status = "SHIPPED"
	StatusDelivered Status = "DELIVERED"
)

func ParseStatus(s string) (Status, error) {
	st := Status(strings.ToUpper(strings.TrimSpace(s)))
	switch st {
	case StatusPending, StatusShipped, StatusDelivered:
		return st, nil
	}
	return "", apperr.NewValidation("status", "must be one of PENDING, SHIPPED, DELIVERED")
}

// Customer is the contact and delivery data typed at checkout.
type Customer struct {
	FullName   string `json:"full_name"`
	DNI        string `json:"dni"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	Department string `json:"department"`
	Province   string `json:"province"`
}

// Order money fields are computed server-side at creation and never change:
// total = subtotal + shipping_cost, subtotal = sum of item line totals.
type Order struct {
	ID            string            `json:"id"`
	Customer      Customer          `json:"customer"`
	Zone          shipping.Zone     `json:"shipping_zone"`
	Modality      shipping.Modality `json:"shipping_modality"`
	Subtotal      money.Money       `json:"subtotal"       swaggertype:"string" example:"300.00"`
	ShippingCost  money.Money       `json:"shipping_cost"  swaggertype:"string" example:"10.00"`
	EstimatedDays string            `json:"estimated_days" example:"1 - 2 días"`
	Total         money.Money       `json:"total_amount"   swaggertype:"string" example:"310.00"`
	Status        Status            `json:"status"`
	HandoffLink   string            `json:"handoff_link,omitempty"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
}

// Item snapshots the product name and price at order time.
type Item struct {
	ID          string      `json:"id"`
	OrderID     string      `json:"order_id"`
	ProductID   string      `json:"product_id"`
	ProductName string      `json:"product_name"`
	Quantity    int         `json:"quantity"`
	UnitPrice   money.Money `json:"unit_price" swaggertype:"string" example:"85.00"`
}

func (it Item) LineTotal() money.Money {
	return it.UnitPrice.Mul(it.Quantity)
}

// Details is an order with its items, the full representation returned by
// the admin endpoints.
type Details struct {
	Order
	Items []Item `json:"items"`
}

type ListFilter struct {
	Status Status
	Limit  int
	Offset int
}
