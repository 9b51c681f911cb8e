package api

import (
	"encoding/json"
	"fmt"

	"farmaterm/internal/domain"
)

// Error is a non-2xx backend response carrying a `detail` message, surfaced
// verbatim to the user.
type Error struct {
	Status int
	Detail string
}

func (e *Error) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return fmt.Sprintf("backend returned status %d", e.Status)
}

// StockConflictError is the recoverable failure mode of sale submission: the
// backend rejected the sale because one or more lines exceed available stock.
// The issue list drives the confirmation dialog.
type StockConflictError struct {
	Issues []domain.StockIssue
}

func (e *StockConflictError) Error() string {
	return fmt.Sprintf("insufficient stock for %d item(s)", len(e.Issues))
}

// errorBody is the FastAPI-style error envelope. `detail` may be a plain
// string, a stock-issue list, or an object wrapping one.
type errorBody struct {
	Detail json.RawMessage `json:"detail"`
}

// wireStockIssue tolerates both field spellings the backend has used for
// shortage lists (product_id and the older medicine_id).
type wireStockIssue struct {
	ProductID    int    `json:"product_id"`
	ProductName  string `json:"product_name"`
	MedicineID   int    `json:"medicine_id"`
	MedicineName string `json:"medicine_name"`
	Requested    int    `json:"requested"`
	Available    int    `json:"available"`
	Shortage     int    `json:"shortage"`
}

func (w wireStockIssue) toDomain() domain.StockIssue {
	issue := domain.StockIssue{
		ProductID:   w.ProductID,
		ProductName: w.ProductName,
		Requested:   w.Requested,
		Available:   w.Available,
		Shortage:    w.Shortage,
	}
	if issue.ProductID == 0 {
		issue.ProductID = w.MedicineID
	}
	if issue.ProductName == "" {
		issue.ProductName = w.MedicineName
	}
	return issue
}

func toDomainIssues(wire []wireStockIssue) []domain.StockIssue {
	issues := make([]domain.StockIssue, 0, len(wire))
	for _, w := range wire {
		issues = append(issues, w.toDomain())
	}
	return issues
}

// parseError turns a non-2xx response body into an *Error or, when the detail
// shape carries a stock-shortage list, a *StockConflictError.
func parseError(status int, body []byte) error {
	var envelope errorBody
	if err := json.Unmarshal(body, &envelope); err != nil || len(envelope.Detail) == 0 {
		return &Error{Status: status, Detail: string(body)}
	}

	// detail as a bare string
	var detail string
	if err := json.Unmarshal(envelope.Detail, &detail); err == nil {
		return &Error{Status: status, Detail: detail}
	}

	// detail as a list of stock issues
	var wireIssues []wireStockIssue
	if err := json.Unmarshal(envelope.Detail, &wireIssues); err == nil {
		if issues := toDomainIssues(wireIssues); hasShortages(issues) {
			return &StockConflictError{Issues: issues}
		}
	}

	// detail as an object wrapping the issue list
	var wrapped struct {
		Message     string           `json:"message"`
		StockIssues []wireStockIssue `json:"stock_issues"`
		Issues      []wireStockIssue `json:"issues"`
	}
	if err := json.Unmarshal(envelope.Detail, &wrapped); err == nil {
		if issues := toDomainIssues(wrapped.StockIssues); hasShortages(issues) {
			return &StockConflictError{Issues: issues}
		}
		if issues := toDomainIssues(wrapped.Issues); hasShortages(issues) {
			return &StockConflictError{Issues: issues}
		}
		if wrapped.Message != "" {
			return &Error{Status: status, Detail: wrapped.Message}
		}
	}

	return &Error{Status: status, Detail: string(envelope.Detail)}
}

// hasShortages reports whether the decoded list actually looks like stock
// issues rather than an unrelated JSON array.
func hasShortages(issues []domain.StockIssue) bool {
	if len(issues) == 0 {
		return false
	}
	for _, issue := range issues {
		if issue.ProductID == 0 || issue.Requested == 0 {
			return false
		}
	}
	return true
}
