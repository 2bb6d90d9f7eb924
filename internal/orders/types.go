package orders

import "time"

// Fulfillment statuses, owned by the order-management workflow.
const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusShipped    = "shipped"
	StatusDelivered  = "delivered"
	StatusCancelled  = "cancelled"
)

// Invoice statuses, owned by the invoicing pipeline. None of these are
// terminal: a regeneration call can move an order from any state to
// ready or failed.
const (
	InvoiceNone    = "none"
	InvoicePending = "pending"
	InvoiceReady   = "ready"
	InvoiceFailed  = "failed"
)

// Item is a single order line. Line order is preserved and is the
// rendering order on the invoice.
type Item struct {
	ProductID string  `dynamodbav:"product_id" json:"productId"`
	Name      string  `dynamodbav:"name" json:"name"`
	Price     float64 `dynamodbav:"price" json:"price"`
	Quantity  int     `dynamodbav:"quantity" json:"quantity"`
	ImageURL  string  `dynamodbav:"image_url,omitempty" json:"imageUrl,omitempty"`
}

// ShippingAddress is the delivery address captured at checkout.
type ShippingAddress struct {
	Address string `dynamodbav:"address" json:"address"`
	City    string `dynamodbav:"city" json:"city"`
	ZipCode string `dynamodbav:"zip_code" json:"zipCode"`
	Phone   string `dynamodbav:"phone" json:"phone"`
}

// Order represents the item stored in the orders DynamoDB table. Core
// fields are written once at checkout; the invoice_* fields are mutated
// only by the invoicing pipeline, last write wins.
type Order struct {
	OrderID         string          `dynamodbav:"order_id" json:"id"` // PK
	UserID          string          `dynamodbav:"user_id" json:"userId"`
	UserEmail       string          `dynamodbav:"user_email" json:"userEmail"`
	Items           []Item          `dynamodbav:"items" json:"items"`
	TotalAmount     float64         `dynamodbav:"total_amount" json:"totalAmount"`
	ShippingAddress ShippingAddress `dynamodbav:"shipping_address" json:"shippingAddress"`
	Status          string          `dynamodbav:"status" json:"status"`

	InvoiceStatus      string    `dynamodbav:"invoice_status,omitempty" json:"invoiceStatus,omitempty"`
	InvoiceURL         string    `dynamodbav:"invoice_url,omitempty" json:"invoiceUrl,omitempty"`
	InvoiceID          string    `dynamodbav:"invoice_id,omitempty" json:"invoiceId,omitempty"`
	InvoiceGeneratedAt time.Time `dynamodbav:"invoice_generated_at,omitempty" json:"invoiceGeneratedAt,omitempty"`
	InvoiceError       string    `dynamodbav:"invoice_error,omitempty" json:"invoiceError,omitempty"`

	CreatedAt time.Time `dynamodbav:"created_at" json:"createdAt"`
	UpdatedAt time.Time `dynamodbav:"updated_at" json:"updatedAt"`
}
