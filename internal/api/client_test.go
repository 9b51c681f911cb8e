package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"farmaterm/internal/domain"
)

func TestSearchProductsQueryParams(t *testing.T) {
	t.Parallel()
	var gotPath string
	var gotQuery map[string][]string
	var gotAuth string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query()
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(ProductPage{
			Items: []domain.Product{{ID: 1, Name: "Aspirina 500mg", Barcode: "7501008496"}},
			Total: 1, Page: 1, PageSize: 20, TotalPages: 1,
		})
	}))
	defer server.Close()

	client := New(server.URL, WithToken("secreto"))
	page, err := client.SearchProducts(context.Background(), "asp", 1, 20)
	require.NoError(t, err)

	require.Equal(t, "/products/paginated", gotPath)
	require.Equal(t, []string{"asp"}, gotQuery["search"])
	require.Equal(t, []string{"1"}, gotQuery["page"])
	require.Equal(t, []string{"20"}, gotQuery["page_size"])
	require.Equal(t, []string{"all"}, gotQuery["stock_filter"])
	require.Equal(t, "Bearer secreto", gotAuth)

	require.Len(t, page.Items, 1)
	require.Equal(t, "Aspirina 500mg", page.Items[0].Name)
}

func TestCreateSaleSendsNumbersForMoney(t *testing.T) {
	t.Parallel()
	var gotBody []byte

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotBody, _ = io.ReadAll(r.Body)
		json.NewEncoder(w).Encode(domain.Sale{ID: 42})
	}))
	defer server.Close()

	client := New(server.URL)
	sale := SaleCreate{
		ClientID:     1,
		UserID:       1,
		DocumentType: "invoice",
		Items: []SaleItemCreate{{
			ProductID: 7,
			Quantity:  2,
			UnitPrice: decimal.RequireFromString("45.5"),
			Discount:  decimal.Zero,
		}},
	}

	created, err := client.CreateSale(context.Background(), sale, false)
	require.NoError(t, err)
	require.Equal(t, 42, created.ID)

	// unit_price must travel as a JSON number, not a quoted string
	require.Contains(t, string(gotBody), `"unit_price":45.5`)
}

func TestCreateSaleAutoAdjustFlag(t *testing.T) {
	t.Parallel()
	var gotRawQuery string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotRawQuery = r.URL.RawQuery
		json.NewEncoder(w).Encode(domain.Sale{ID: 1})
	}))
	defer server.Close()

	client := New(server.URL)
	_, err := client.CreateSale(context.Background(), SaleCreate{}, true)
	require.NoError(t, err)
	require.Equal(t, "auto_adjust_stock=true", gotRawQuery)
}

func TestCreateSaleStockConflict(t *testing.T) {
	t.Parallel()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"detail": {"message": "Stock insuficiente", "stock_issues": [
			{"product_id": 7, "product_name": "Aspirina 500mg", "requested": 10, "available": 4, "shortage": 6}
		]}}`))
	}))
	defer server.Close()

	client := New(server.URL)
	_, err := client.CreateSale(context.Background(), SaleCreate{}, false)
	require.Error(t, err)

	var conflict *StockConflictError
	require.True(t, errors.As(err, &conflict))
	require.Len(t, conflict.Issues, 1)
	require.Equal(t, "Aspirina 500mg", conflict.Issues[0].ProductName)
	require.Equal(t, 6, conflict.Issues[0].Shortage)
}

func TestPlainDetailErrorIsNotAConflict(t *testing.T) {
	t.Parallel()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"detail": "Not authenticated"}`))
	}))
	defer server.Close()

	client := New(server.URL)
	_, err := client.SearchProducts(context.Background(), "asp", 1, 20)
	require.Error(t, err)

	var conflict *StockConflictError
	require.False(t, errors.As(err, &conflict))

	var apiErr *Error
	require.True(t, errors.As(err, &apiErr))
	require.Equal(t, http.StatusUnauthorized, apiErr.Status)
	require.Equal(t, "Not authenticated", apiErr.Error())
}

func TestParseErrorShapes(t *testing.T) {
	t.Parallel()

	t.Run("detail as bare issue list", func(t *testing.T) {
		err := parseError(400, []byte(`{"detail": [
			{"product_id": 1, "product_name": "A", "requested": 3, "available": 1, "shortage": 2}
		]}`))
		var conflict *StockConflictError
		require.True(t, errors.As(err, &conflict))
		require.Equal(t, 2, conflict.Issues[0].Shortage)
	})

	t.Run("older medicine_id spelling", func(t *testing.T) {
		err := parseError(400, []byte(`{"detail": [
			{"medicine_id": 1, "medicine_name": "Aspirina", "requested": 10, "available": 3, "shortage": 7}
		]}`))
		var conflict *StockConflictError
		require.True(t, errors.As(err, &conflict))
		require.Equal(t, 1, conflict.Issues[0].ProductID)
		require.Equal(t, "Aspirina", conflict.Issues[0].ProductName)
		require.Equal(t, 7, conflict.Issues[0].Shortage)
	})

	t.Run("validation error list is not a conflict", func(t *testing.T) {
		err := parseError(422, []byte(`{"detail": [{"loc": ["body", "items"], "msg": "field required"}]}`))
		var conflict *StockConflictError
		require.False(t, errors.As(err, &conflict))
	})

	t.Run("non-JSON body", func(t *testing.T) {
		err := parseError(502, []byte("Bad Gateway"))
		var apiErr *Error
		require.True(t, errors.As(err, &apiErr))
		require.Equal(t, 502, apiErr.Status)
	})
}
