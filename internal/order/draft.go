// Package order models the in-progress sale: its line items, totals, and the
// submission state machine including the stock-shortfall confirmation step.
package order

import (
	"fmt"

	"github.com/shopspring/decimal"

	"farmaterm/internal/api"
	"farmaterm/internal/domain"
)

// Status is the submission state of a draft
type Status int

const (
	StatusDraft         Status = iota // lines accumulated client-side, no server call yet
	StatusSubmitting                  // sale POSTed to the backend
	StatusStockConflict               // backend reported shortages; awaiting user decision
	StatusOverriding                  // user accepted selling down to zero; resubmitting
	StatusCommitted                   // backend accepted the sale
)

// Document types
const (
	DocumentInvoice   = "invoice"   // factura, carries IVA
	DocumentRemission = "remission" // nota de remisión, no IVA
)

// Line is one draft line item
type Line struct {
	ProductID int
	Name      string
	Barcode   string
	Quantity  int
	UnitPrice decimal.Decimal
	Discount  decimal.Decimal
	IVARate   decimal.Decimal
	Stock     int // available quantity at the time the product was added
}

// Subtotal is quantity × unit price − discount
func (l Line) Subtotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity))).Sub(l.Discount)
}

// Draft is an in-progress sale
type Draft struct {
	ClientID       int
	UserID         int
	DocumentType   string
	PaymentStatus  string
	PaymentMethod  string
	ShippingStatus string
	Notes          string
	Lines          []Line

	status Status
	issues []domain.StockIssue
}

// NewDraft creates an empty draft with the original dialog's defaults
func NewDraft(userID int) *Draft {
	return &Draft{
		UserID:         userID,
		DocumentType:   DocumentInvoice,
		PaymentStatus:  "pending",
		PaymentMethod:  "transfer",
		ShippingStatus: "pending",
	}
}

// AddProduct adds a catalog item as a line with the given quantity. If the
// product is already on the draft its quantity is increased instead.
func (d *Draft) AddProduct(p domain.Product, quantity int) {
	if quantity <= 0 {
		quantity = 1
	}
	for i := range d.Lines {
		if d.Lines[i].ProductID == p.ID {
			d.Lines[i].Quantity += quantity
			return
		}
	}
	d.Lines = append(d.Lines, Line{
		ProductID: p.ID,
		Name:      p.Name,
		Barcode:   p.Barcode,
		Quantity:  quantity,
		UnitPrice: p.SalePrice,
		Discount:  decimal.Zero,
		IVARate:   p.IVARate,
		Stock:     p.Stock(),
	})
}

// SetQuantity changes the quantity of the line at index i
func (d *Draft) SetQuantity(i, quantity int) error {
	if i < 0 || i >= len(d.Lines) {
		return fmt.Errorf("no line at index %d", i)
	}
	if quantity <= 0 {
		return fmt.Errorf("quantity must be positive")
	}
	d.Lines[i].Quantity = quantity
	return nil
}

// RemoveLine removes the line at index i
func (d *Draft) RemoveLine(i int) error {
	if i < 0 || i >= len(d.Lines) {
		return fmt.Errorf("no line at index %d", i)
	}
	d.Lines = append(d.Lines[:i], d.Lines[i+1:]...)
	return nil
}

// ProductIDs returns the IDs of all products on the draft; the search widget
// excludes these from its results.
func (d *Draft) ProductIDs() []int {
	ids := make([]int, 0, len(d.Lines))
	for _, line := range d.Lines {
		ids = append(ids, line.ProductID)
	}
	return ids
}

// Empty reports whether the draft has no lines
func (d *Draft) Empty() bool {
	return len(d.Lines) == 0
}

// Subtotal sums line subtotals
func (d *Draft) Subtotal() decimal.Decimal {
	sum := decimal.Zero
	for _, line := range d.Lines {
		sum = sum.Add(line.Subtotal())
	}
	return sum
}

// IVAAmount sums per-line IVA at each product's own rate. A remission carries
// no IVA even when products have one.
func (d *Draft) IVAAmount() decimal.Decimal {
	if d.DocumentType != DocumentInvoice {
		return decimal.Zero
	}
	sum := decimal.Zero
	for _, line := range d.Lines {
		sum = sum.Add(line.Subtotal().Mul(line.IVARate))
	}
	return sum
}

// Total is subtotal plus IVA
func (d *Draft) Total() decimal.Decimal {
	return d.Subtotal().Add(d.IVAAmount())
}

// ToggleDocumentType flips between invoice and remission
func (d *Draft) ToggleDocumentType() {
	if d.DocumentType == DocumentInvoice {
		d.DocumentType = DocumentRemission
	} else {
		d.DocumentType = DocumentInvoice
	}
}

// Payload builds the sale submission body
func (d *Draft) Payload() api.SaleCreate {
	items := make([]api.SaleItemCreate, 0, len(d.Lines))
	for _, line := range d.Lines {
		items = append(items, api.SaleItemCreate{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
			Discount:  line.Discount,
		})
	}
	return api.SaleCreate{
		ClientID:       d.ClientID,
		UserID:         d.UserID,
		DocumentType:   d.DocumentType,
		PaymentStatus:  d.PaymentStatus,
		PaymentMethod:  d.PaymentMethod,
		ShippingStatus: d.ShippingStatus,
		Notes:          d.Notes,
		Items:          items,
	}
}
