package validation

// ItemInput is a single checkout line item.
type ItemInput struct {
	ProductID string  `json:"productId" validate:"required"`
	Name      string  `json:"name" validate:"required"`
	Price     float64 `json:"price" validate:"required,gt=0"`     // unit price, 2-decimal currency
	Quantity  int     `json:"quantity" validate:"required,min=1"` // must be >= 1
	ImageURL  string  `json:"imageUrl,omitempty"`
}

// ShippingAddressInput is the delivery address captured at checkout.
type ShippingAddressInput struct {
	Address string `json:"address" validate:"required"`
	City    string `json:"city" validate:"required"`
	ZipCode string `json:"zipCode" validate:"required"`
	Phone   string `json:"phone" validate:"required"`
}

// CreateOrderRequest is the payload for POST /orders.
//
// totalAmount is recorded as the amount charged at checkout; it is not
// required to equal the sum of the line items and is never reconciled
// against it.
type CreateOrderRequest struct {
	Items           []ItemInput          `json:"items" validate:"required,min=1,dive"`
	TotalAmount     float64              `json:"totalAmount" validate:"required,gt=0"`
	ShippingAddress ShippingAddressInput `json:"shippingAddress" validate:"required"`
}
