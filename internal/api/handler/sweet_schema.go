package handler

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// --- Request types ---

type createSweetRequest struct {
	Name     string  `json:"name"     validate:"required"`
	Category string  `json:"category" validate:"required"`
	Price    float64 `json:"price"    validate:"required,gt=0"`
	Quantity int     `json:"quantity" validate:"gte=0"`
}

// updateSweetRequest is a partial update: absent fields stay nil and the
// corresponding columns are left untouched.
type updateSweetRequest struct {
	Name     *string  `json:"name"     validate:"omitempty,min=1"`
	Category *string  `json:"category" validate:"omitempty,min=1"`
	Price    *float64 `json:"price"    validate:"omitempty,gt=0"`
	Quantity *int     `json:"quantity" validate:"omitempty,gte=0"`
}

type purchaseRequest struct {
	// Quantity defaults to 1 when omitted or non-positive.
	Quantity int `json:"quantity"`
}

type restockRequest struct {
	Quantity int `json:"quantity" validate:"required,gt=0"`
}
