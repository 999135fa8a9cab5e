package order

// CreateOrderItem payload de ítem.
// swagger:model CreateOrderItem
type CreateOrderItem struct {
	ProductID string `json:"productId" validate:"required,uuid" example:"4e7d4e5c-5cb9-4a3f-9f21-7e1a4f9f2b2a"`
	Quantity  int    `json:"quantity"  validate:"min=1,max=99"  example:"2"`
}

// CreateOrderRequest payload de creación de orden. shippingZone may be
// omitted; when sent it must match the zone of department/province.
// swagger:model CreateOrderRequest
type CreateOrderRequest struct {
	FullName         string            `json:"fullName"         validate:"required,max=200"              example:"María Quispe"`
	DNI              string            `json:"dni"              validate:"required,alphanum,min=8,max=12" example:"45678912"`
	Phone            string            `json:"phone"            validate:"required,min=6,max=20"          example:"987654321"`
	Address          string            `json:"address"          validate:"required,max=500"              example:"Av. Arequipa 123, Miraflores"`
	Department       string            `json:"department"       validate:"required,max=100"              example:"Lima"`
	Province         string            `json:"province"         validate:"required,max=100"              example:"Lima"`
	ShippingZone     string            `json:"shippingZone"     validate:"omitempty,max=40"              example:"LIMA_LOCAL"`
	ShippingModality string            `json:"shippingModality" validate:"required"                      example:"DOMICILIO"`
	Items            []CreateOrderItem `json:"items"            validate:"required,min=1,max=50,dive"`
}

// CreateOrderResponse is returned on 201. HandoffError is set when the order
// was stored but its handoff link could not be produced.
// swagger:model CreateOrderResponse
type CreateOrderResponse struct {
	OrderID      string `json:"orderId"`
	HandoffLink  string `json:"handoffLink,omitempty"`
	HandoffError string `json:"handoffError,omitempty"`
}

// UpdateStatusRequest payload de cambio de estado.
// swagger:model UpdateStatusRequest
type UpdateStatusRequest struct {
	Status string `json:"status" example:"SHIPPED"`
}

// HandoffResponse is returned by the regenerate endpoint.
// swagger:model HandoffResponse
type HandoffResponse struct {
	OrderID     string `json:"orderId"`
	HandoffLink string `json:"handoffLink"`
}

// ListResponse represents a page of orders.
// swagger:model
type ListResponse struct {
	Status string  `json:"status,omitempty"`
	Limit  int     `json:"limit"`
	Offset int     `json:"offset"`
	Items  []Order `json:"items"`
}
