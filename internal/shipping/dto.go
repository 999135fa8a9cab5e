package shipping

// ZoneResponse is the answer of the zone lookup the storefront calls while
// the customer types the address.
// swagger:model ZoneResponse
type ZoneResponse struct {
	Department string `json:"department" example:"Cusco"`
	Province   string `json:"province"   example:"Urubamba"`
	Zone       Zone   `json:"zone"       example:"SIERRA_SELVA"`
	Label      string `json:"label"      example:"Sierra y Selva"`
}

// UpsertRateRequest payload del ajuste de tarifa.
// swagger:model UpsertRateRequest
type UpsertRateRequest struct {
	Cost          string `json:"cost"           binding:"required"        example:"12.00"`
	EstimatedDays string `json:"estimated_days" binding:"required,max=50" example:"2 - 3 días"`
}

// ListResponse wraps the full rate table.
// swagger:model RateListResponse
type ListResponse struct {
	Items []Rate `json:"items"`
}
