package invoice

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/sparsh3104/ShopStack/internal/orders"
)

func renderableOrder() *orders.Order {
	return &orders.Order{
		OrderID:   "a1b2c3d4e5f6g7h8",
		UserID:    "user-1",
		UserEmail: "buyer@example.com",
		Items: []orders.Item{
			{ProductID: "p1", Name: "Widget", Price: 10.00, Quantity: 2},
			{ProductID: "p2", Name: "Gadget", Price: 5.50, Quantity: 1},
		},
		TotalAmount: 25.50,
		ShippingAddress: orders.ShippingAddress{
			Address: "1 Main St",
			City:    "Springfield",
			ZipCode: "12345",
			Phone:   "555-0100",
		},
		Status:    orders.StatusPending,
		CreatedAt: time.Date(2025, 6, 1, 10, 30, 0, 0, time.UTC),
	}
}

// The renderer writes uncompressed content streams, so rendered text is
// directly visible in the output bytes.
func assertContains(t *testing.T, pdf []byte, want string) {
	t.Helper()
	if !bytes.Contains(pdf, []byte(want)) {
		t.Fatalf("rendered document does not contain %q", want)
	}
}

func TestRender_Layout(t *testing.T) {
	pdf, err := Render(renderableOrder())
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF-")) {
		t.Fatal("output is not a PDF")
	}

	assertContains(t, pdf, "ShopStack")
	assertContains(t, pdf, "INVOICE")
	assertContains(t, pdf, "Invoice #: A1B2C3D4E5F6")
	assertContains(t, pdf, "buyer@example.com")
	assertContains(t, pdf, "1 Main St")
	assertContains(t, pdf, "Springfield, 12345")
	assertContains(t, pdf, "Widget")
	assertContains(t, pdf, "Gadget")
	assertContains(t, pdf, "$20.00") // 2 x 10.00 line total
	assertContains(t, pdf, "$5.50")
	assertContains(t, pdf, "Thank you for your purchase!")
}

func TestRender_SubtotalRecomputedFromItems(t *testing.T) {
	o := renderableOrder()
	// totalAmount intentionally diverges from the item sum; the rendered
	// document must carry both figures untouched.
	o.TotalAmount = 30.00

	pdf, err := Render(o)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	assertContains(t, pdf, "$25.50") // subtotal from items
	assertContains(t, pdf, "$30.00") // total due from the order record
}

func TestRender_TotalDueMatchesOrderAmount(t *testing.T) {
	pdf, err := Render(renderableOrder())
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	// subtotal and total due agree here; both lines render $25.50
	if n := bytes.Count(pdf, []byte("$25.50")); n < 2 {
		t.Fatalf("expected subtotal and total due at $25.50, found %d occurrences", n)
	}
}

func TestRender_ExactCents(t *testing.T) {
	o := renderableOrder()
	// 3 x 0.10 trips naive float accumulation (0.30000000000000004)
	o.Items = []orders.Item{
		{ProductID: "p1", Name: "Sticker", Price: 0.10, Quantity: 3},
	}
	o.TotalAmount = 0.30

	pdf, err := Render(o)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	assertContains(t, pdf, "$0.30")
}

func TestRender_Deterministic(t *testing.T) {
	a, err := Render(renderableOrder())
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	b, err := Render(renderableOrder())
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !bytes.Equal(a, b) {
		t.Fatal("same order rendered different bytes")
	}
}

func TestRender_EmptyItems(t *testing.T) {
	o := renderableOrder()
	o.Items = nil

	_, err := Render(o)
	if !errors.Is(err, ErrNoItems) {
		t.Fatalf("expected ErrNoItems, got %v", err)
	}
}

func TestRender_MissingShippingAddress(t *testing.T) {
	o := renderableOrder()
	o.ShippingAddress = orders.ShippingAddress{}

	_, err := Render(o)
	if !errors.Is(err, ErrNoShippingAddress) {
		t.Fatalf("expected ErrNoShippingAddress, got %v", err)
	}
}

func TestInvoiceNumber(t *testing.T) {
	if got := InvoiceNumber("a1b2c3d4e5f6g7h8"); got != "A1B2C3D4E5F6" {
		t.Fatalf("invoice number mismatch: %s", got)
	}
	if got := InvoiceNumber("short"); got != "SHORT" {
		t.Fatalf("short id mismatch: %s", got)
	}
}
