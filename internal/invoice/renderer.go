package invoice

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/sparsh3104/ShopStack/internal/orders"
)

// Rendering failures classified as bad input rather than I/O faults.
var (
	ErrNoItems           = errors.New("order has no items")
	ErrNoShippingAddress = errors.New("order has no shipping address")
)

// Layout constants, US Letter in points.
const (
	leftX   = 50
	rightX  = 550
	qtyX    = 280
	priceX  = 360
	totalX  = 470
	shipToX = 320
	rowStep = 20
	footerY = 700
)

// Render produces the fixed-layout billing PDF for an order. It is a pure
// transform: same order in, same bytes out, no I/O, no clock.
//
// The subtotal is recomputed from the line items; the Total Due line is
// printed from order.TotalAmount. The two are never reconciled and may
// differ. The layout is a single page; orders with very many items overflow
// the page rather than paginate.
func Render(o *orders.Order) ([]byte, error) {
	if len(o.Items) == 0 {
		return nil, ErrNoItems
	}
	if (o.ShippingAddress == orders.ShippingAddress{}) {
		return nil, ErrNoShippingAddress
	}

	pdf := gofpdf.New("P", "pt", "Letter", "")
	pdf.SetCompression(false)
	// pin document metadata to the order so identical orders render
	// identical bytes
	pdf.SetCreationDate(o.CreatedAt)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	// Company header
	pdf.SetFont("Helvetica", "B", 24)
	pdf.Text(leftX, 65, "ShopStack")
	pdf.SetFont("Helvetica", "", 12)
	pdf.Text(leftX, 90, "Your Online Store")

	// Invoice title
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Text(400, 62, "INVOICE")

	// Invoice details
	pdf.SetFont("Helvetica", "", 11)
	pdf.Text(leftX, 118, "Invoice #: "+InvoiceNumber(o.OrderID))
	pdf.Text(leftX, 136, "Date: "+o.CreatedAt.Format("Jan 2, 2006"))
	pdf.Text(leftX, 154, "Order Status: "+o.Status)

	// Bill-to and ship-to, side by side
	pdf.SetFont("Helvetica", "B", 11)
	pdf.Text(leftX, 186, "BILL TO")
	pdf.Text(shipToX, 186, "SHIPPING ADDRESS")

	pdf.SetFont("Helvetica", "", 10)
	pdf.Text(leftX, 206, o.UserEmail)
	pdf.Text(leftX, 224, "Phone: "+o.ShippingAddress.Phone)
	pdf.Text(shipToX, 206, o.ShippingAddress.Address)
	pdf.Text(shipToX, 224, fmt.Sprintf("%s, %s", o.ShippingAddress.City, o.ShippingAddress.ZipCode))
	pdf.Text(shipToX, 242, "Phone: "+o.ShippingAddress.Phone)

	// Items table
	tableTop := float64(280)
	pdf.SetFont("Helvetica", "B", 11)
	pdf.Text(leftX, tableTop, "ITEMS")

	y := tableTop + 25
	pdf.SetFont("Helvetica", "", 10)
	pdf.Text(leftX, y, "Product")
	pdf.Text(qtyX, y, "Quantity")
	pdf.Text(priceX, y, "Price")
	pdf.Text(totalX, y, "Total")

	y += 10
	pdf.Line(leftX, y, rightX, y)

	y += rowStep
	var subtotalCents int64
	for _, it := range o.Items {
		lineCents := priceCents(it.Price) * int64(it.Quantity)
		subtotalCents += lineCents
		pdf.Text(leftX, y, it.Name)
		pdf.Text(qtyX, y, fmt.Sprintf("%d", it.Quantity))
		pdf.Text(priceX, y, usd(priceCents(it.Price)))
		pdf.Text(totalX, y, usd(lineCents))
		y += rowStep
	}

	pdf.Line(leftX, y-10, rightX, y-10)

	// Totals block: subtotal from the items, Total Due from the recorded
	// order amount. Shipping and tax are not computed by this system.
	y += 5
	pdf.Text(priceX, y, "Subtotal")
	pdf.Text(totalX, y, usd(subtotalCents))
	y += rowStep
	pdf.Text(priceX, y, "Shipping")
	pdf.Text(totalX, y, usd(0))
	y += rowStep
	pdf.Text(priceX, y, "Tax")
	pdf.Text(totalX, y, usd(0))
	y += rowStep
	pdf.SetFont("Helvetica", "B", 11)
	pdf.Text(priceX, y, "TOTAL DUE")
	pdf.Text(totalX, y, usd(priceCents(o.TotalAmount)))

	// Footer
	pdf.SetFont("Helvetica", "", 8)
	pdf.Text(leftX, footerY, "Thank you for your purchase!")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf output: %w", err)
	}
	return buf.Bytes(), nil
}

// InvoiceNumber derives the printed invoice number from the order id: the
// first 12 characters, upper-cased.
func InvoiceNumber(orderID string) string {
	n := orderID
	if len(n) > 12 {
		n = n[:12]
	}
	return strings.ToUpper(n)
}

func priceCents(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

func usd(cents int64) string {
	return fmt.Sprintf("$%.2f", float64(cents)/100)
}
