package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product represents a catalog item (medicine or material) as returned by the
// backend search endpoint. The client only ever reads a snapshot of it.
type Product struct {
	ID              int             `json:"id"`
	Name            string          `json:"name"`
	Barcode         string          `json:"barcode,omitempty"`
	Laboratory      string          `json:"laboratory,omitempty"`
	ActiveSubstance string          `json:"active_substance,omitempty"`
	SalePrice       decimal.Decimal `json:"sale_price"`
	IVARate         decimal.Decimal `json:"iva_rate"`
	SATKey          string          `json:"sat_key,omitempty"`
	Inventory       *Inventory      `json:"inventory,omitempty"`
	Supplier        *Supplier       `json:"suppliers,omitempty"`
}

// Stock returns the available quantity, treating a missing inventory record as zero.
func (p *Product) Stock() int {
	if p.Inventory == nil {
		return 0
	}
	return p.Inventory.Quantity
}

// Inventory is the stock record attached to a product.
type Inventory struct {
	Quantity int `json:"quantity"`
}

// Supplier is the supplier reference attached to a product.
type Supplier struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Client is a customer of the pharmacy.
type Client struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	RFC  string `json:"rfc,omitempty"`
}

// StockIssue describes one sale line whose requested quantity exceeds the
// available inventory. The backend computes these; the client treats the list
// as authoritative and never recomputes it.
type StockIssue struct {
	ProductID   int    `json:"product_id"`
	ProductName string `json:"product_name"`
	Requested   int    `json:"requested"`
	Available   int    `json:"available"`
	Shortage    int    `json:"shortage"`
}

// Sale is a committed sale as returned by the backend.
type Sale struct {
	ID            int             `json:"id"`
	ClientID      int             `json:"client_id"`
	UserID        int             `json:"user_id"`
	SaleDate      time.Time       `json:"sale_date"`
	DocumentType  string          `json:"document_type"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	IVAAmount     decimal.Decimal `json:"iva_amount"`
	Total         decimal.Decimal `json:"total"`
	PaymentStatus string          `json:"payment_status"`
	PaymentMethod string          `json:"payment_method,omitempty"`
	Items         []SaleItem      `json:"items,omitempty"`
	Client        *Client         `json:"client,omitempty"`
}

// SaleItem is one line of a committed sale.
type SaleItem struct {
	ProductID int             `json:"product_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Discount  decimal.Decimal `json:"discount"`
	Subtotal  decimal.Decimal `json:"subtotal"`
	Product   *Product        `json:"product,omitempty"`
}

// Alert is a backend-generated notice (low stock, upcoming expiration).
type Alert struct {
	ID        int    `json:"id"`
	Type      string `json:"type"`
	Message   string `json:"message"`
	ProductID int    `json:"product_id,omitempty"`
	Severity  string `json:"severity,omitempty"`
}
