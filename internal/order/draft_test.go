package order

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"farmaterm/internal/api"
	"farmaterm/internal/domain"
)

func aspirina() domain.Product {
	return domain.Product{
		ID:        1,
		Name:      "Aspirina 500mg",
		Barcode:   "7501008496",
		SalePrice: decimal.RequireFromString("45.50"),
		IVARate:   decimal.RequireFromString("0.16"),
		Inventory: &domain.Inventory{Quantity: 5},
	}
}

func paracetamol() domain.Product {
	return domain.Product{
		ID:        2,
		Name:      "Paracetamol 750mg",
		SalePrice: decimal.RequireFromString("30.00"),
		IVARate:   decimal.Zero,
		Inventory: &domain.Inventory{Quantity: 10},
	}
}

func TestAddProductMergesQuantities(t *testing.T) {
	t.Parallel()
	d := NewDraft(1)

	d.AddProduct(aspirina(), 1)
	d.AddProduct(paracetamol(), 2)
	d.AddProduct(aspirina(), 3)

	require.Len(t, d.Lines, 2)
	require.Equal(t, 4, d.Lines[0].Quantity)
	require.Equal(t, []int{1, 2}, d.ProductIDs())
}

func TestAddProductDefaultsQuantityToOne(t *testing.T) {
	t.Parallel()
	d := NewDraft(1)
	d.AddProduct(aspirina(), 0)
	require.Equal(t, 1, d.Lines[0].Quantity)
}

func TestInvoiceTotals(t *testing.T) {
	t.Parallel()
	d := NewDraft(1)
	d.AddProduct(aspirina(), 2)    // 91.00, IVA 16%
	d.AddProduct(paracetamol(), 1) // 30.00, IVA 0%

	require.Equal(t, DocumentInvoice, d.DocumentType)
	require.Equal(t, "121.00", d.Subtotal().StringFixed(2))
	require.Equal(t, "14.56", d.IVAAmount().StringFixed(2), "IVA applies per line at its own rate")
	require.Equal(t, "135.56", d.Total().StringFixed(2))
}

func TestRemissionCarriesNoIVA(t *testing.T) {
	t.Parallel()
	d := NewDraft(1)
	d.AddProduct(aspirina(), 2)
	d.ToggleDocumentType()

	require.Equal(t, DocumentRemission, d.DocumentType)
	require.True(t, d.IVAAmount().IsZero())
	require.Equal(t, d.Subtotal().StringFixed(2), d.Total().StringFixed(2))
}

func TestLineDiscountReducesSubtotal(t *testing.T) {
	t.Parallel()
	d := NewDraft(1)
	d.AddProduct(aspirina(), 2)
	d.Lines[0].Discount = decimal.RequireFromString("10.00")

	require.Equal(t, "81.00", d.Subtotal().StringFixed(2))
}

func TestSetQuantityAndRemove(t *testing.T) {
	t.Parallel()
	d := NewDraft(1)
	d.AddProduct(aspirina(), 1)

	require.NoError(t, d.SetQuantity(0, 7))
	require.Equal(t, 7, d.Lines[0].Quantity)

	require.Error(t, d.SetQuantity(0, 0))
	require.Error(t, d.SetQuantity(5, 1))

	require.NoError(t, d.RemoveLine(0))
	require.True(t, d.Empty())
	require.Error(t, d.RemoveLine(0))
}

func TestPayloadShape(t *testing.T) {
	t.Parallel()
	d := NewDraft(3)
	d.ClientID = 9
	d.AddProduct(aspirina(), 2)

	payload := d.Payload()
	require.Equal(t, 9, payload.ClientID)
	require.Equal(t, 3, payload.UserID)
	require.Equal(t, DocumentInvoice, payload.DocumentType)
	require.Len(t, payload.Items, 1)
	require.Equal(t, 1, payload.Items[0].ProductID)
	require.Equal(t, 2, payload.Items[0].Quantity)
	require.Equal(t, "45.50", payload.Items[0].UnitPrice.StringFixed(2))
}

func TestSubmitRequiresLines(t *testing.T) {
	t.Parallel()
	d := NewDraft(1)
	require.Error(t, d.BeginSubmit())

	d.AddProduct(aspirina(), 1)
	require.NoError(t, d.BeginSubmit())
	require.Equal(t, StatusSubmitting, d.Status())
	require.Error(t, d.BeginSubmit(), "double submit rejected")
}

func TestSuccessfulSubmission(t *testing.T) {
	t.Parallel()
	d := NewDraft(1)
	d.AddProduct(aspirina(), 1)
	require.NoError(t, d.BeginSubmit())

	require.NoError(t, d.ApplyResult(nil))
	require.Equal(t, StatusCommitted, d.Status())

	d.ResetAfterCommit()
	require.Equal(t, StatusDraft, d.Status())
	require.True(t, d.Empty())
}

func TestStockConflictFlowOverride(t *testing.T) {
	t.Parallel()
	d := NewDraft(1)
	d.AddProduct(aspirina(), 10)
	require.NoError(t, d.BeginSubmit())

	conflict := &api.StockConflictError{Issues: []domain.StockIssue{
		{ProductID: 1, ProductName: "Aspirina 500mg", Requested: 10, Available: 5, Shortage: 5},
	}}
	require.NoError(t, d.ApplyResult(conflict))
	require.Equal(t, StatusStockConflict, d.Status())
	require.Len(t, d.Issues(), 1)
	require.Equal(t, 5, d.TotalShortage())

	require.NoError(t, d.ConfirmOverride())
	require.Equal(t, StatusOverriding, d.Status())

	require.NoError(t, d.ApplyResult(nil))
	require.Equal(t, StatusCommitted, d.Status())
	require.Empty(t, d.Issues())
}

func TestStockConflictCancelKeepsLines(t *testing.T) {
	t.Parallel()
	d := NewDraft(1)
	d.AddProduct(aspirina(), 10)
	d.AddProduct(paracetamol(), 2)
	require.NoError(t, d.BeginSubmit())

	conflict := &api.StockConflictError{Issues: []domain.StockIssue{
		{ProductID: 1, ProductName: "Aspirina 500mg", Requested: 10, Available: 5, Shortage: 5},
	}}
	require.NoError(t, d.ApplyResult(conflict))

	require.NoError(t, d.CancelConflict())
	require.Equal(t, StatusDraft, d.Status())
	require.Len(t, d.Lines, 2, "ticket survives a cancelled conflict")
	require.Empty(t, d.Issues())
}

func TestNonStockErrorReturnsToDraft(t *testing.T) {
	t.Parallel()
	d := NewDraft(1)
	d.AddProduct(aspirina(), 1)
	require.NoError(t, d.BeginSubmit())

	require.NoError(t, d.ApplyResult(errors.New("connection refused")))
	require.Equal(t, StatusDraft, d.Status())
	require.Len(t, d.Lines, 1)
}

func TestConflictActionsRequireConflictState(t *testing.T) {
	t.Parallel()
	d := NewDraft(1)
	require.Error(t, d.ConfirmOverride())
	require.Error(t, d.CancelConflict())
	require.Error(t, d.ApplyResult(nil))
}
