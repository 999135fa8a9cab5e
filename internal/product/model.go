package product

import (
	"time"

	"github.com/MikeMC777/ordenes-skincare/internal/money"
)

type Product struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description,omitempty"`
	Price       money.Money `json:"price"     swaggertype:"string" example:"85.00"`
	Available   bool        `json:"available"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// ListResponse represents the paginated response of products.
// swagger:model
type ListResponse struct {
	// search query applied
	Q string `json:"q,omitempty"`
	// limit applied
	Limit int `json:"limit"`
	// offset applied
	Offset int `json:"offset"`
	// items found
	Items []Product `json:"items"`
}

// CreateProductRequest payload of creation.
// swagger:model CreateProductRequest
type CreateProductRequest struct {
	Name        string `json:"name"        binding:"required,max=200" example:"Sérum de niacinamida 10%"`
	Description string `json:"description" binding:"max=2000"         example:"30 ml, piel mixta"`
	Price       string `json:"price"       binding:"required"         example:"85.00"`
	Available   *bool  `json:"available"                              example:"true"`
}

// UpdateProductRequest payload of partial update; omitted fields are kept.
// swagger:model UpdateProductRequest
type UpdateProductRequest struct {
	Name        *string `json:"name"        binding:"omitempty,min=1,max=200"`
	Description *string `json:"description" binding:"omitempty,max=2000"`
	Price       *string `json:"price"`
	Available   *bool   `json:"available"`
}

// Patch is the parsed form of UpdateProductRequest.
type Patch struct {
	Name        *string
	Description *string
	Price       *money.Money
	Available   *bool
}

func (p Patch) Empty() bool {
	return p.Name == nil && p.Description == nil && p.Price == nil && p.Available == nil
}
