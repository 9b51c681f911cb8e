package order

import (
	"errors"
	"fmt"

	"farmaterm/internal/api"
	"farmaterm/internal/domain"
)

// Status returns the current submission state
func (d *Draft) Status() Status {
	return d.status
}

// Issues returns the stock shortfalls reported by the last rejected
// submission. Empty outside StatusStockConflict.
func (d *Draft) Issues() []domain.StockIssue {
	return d.issues
}

// TotalShortage sums the missing units across all reported issues
func (d *Draft) TotalShortage() int {
	total := 0
	for _, issue := range d.issues {
		total += issue.Shortage
	}
	return total
}

// BeginSubmit moves the draft into StatusSubmitting. It fails when there is
// nothing to sell or a submission is already underway.
func (d *Draft) BeginSubmit() error {
	if d.status != StatusDraft {
		return fmt.Errorf("cannot submit in state %d", d.status)
	}
	if d.Empty() {
		return errors.New("no items to sell")
	}
	d.status = StatusSubmitting
	return nil
}

// ApplyResult feeds the backend's answer to a submission back in.
//
// A stock conflict parks the draft in StatusStockConflict with the server's
// shortage list; any other error returns it to StatusDraft with all lines
// intact so the user can retry. Success moves to StatusCommitted.
func (d *Draft) ApplyResult(err error) error {
	if d.status != StatusSubmitting && d.status != StatusOverriding {
		return fmt.Errorf("no submission in flight (state %d)", d.status)
	}

	if err == nil {
		d.status = StatusCommitted
		d.issues = nil
		return nil
	}

	var conflict *api.StockConflictError
	if errors.As(err, &conflict) {
		d.status = StatusStockConflict
		d.issues = conflict.Issues
		return nil
	}

	d.status = StatusDraft
	d.issues = nil
	return nil
}

// ConfirmOverride accepts selling short items down to zero stock. The caller
// resubmits the same payload with the stock auto-adjust flag set.
func (d *Draft) ConfirmOverride() error {
	if d.status != StatusStockConflict {
		return errors.New("no stock conflict to confirm")
	}
	d.status = StatusOverriding
	return nil
}

// CancelConflict dismisses the stock conflict and returns to StatusDraft with
// every line intact, so the user can adjust quantities by hand.
func (d *Draft) CancelConflict() error {
	if d.status != StatusStockConflict {
		return errors.New("no stock conflict to cancel")
	}
	d.status = StatusDraft
	d.issues = nil
	return nil
}

// ResetAfterCommit clears the lines and returns to StatusDraft so the next
// sale starts from an empty ticket. Client, document type and payment
// settings carry over.
func (d *Draft) ResetAfterCommit() {
	d.Lines = nil
	d.Notes = ""
	d.issues = nil
	d.status = StatusDraft
}
