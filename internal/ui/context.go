package ui

import "farmaterm/internal/order"

// modelContext exposes read-only model state to the input mode handlers
type modelContext struct {
	m *Model
}

func (c modelContext) CurrentLineIndex() int { return c.m.lineIndex }
func (c modelContext) TotalLines() int       { return len(c.m.draft.Lines) }
func (c modelContext) ResultIndex() int      { return c.m.resultIndex }
func (c modelContext) TotalResults() int     { return len(c.m.searchSvc.Visible()) }
func (c modelContext) ScannerActive() bool   { return c.m.detector.Active() }
func (c modelContext) HasConflict() bool     { return c.m.draft.Status() == order.StatusStockConflict }
func (c modelContext) ClientIndex() int      { return c.m.clientIndex }
func (c modelContext) TotalClients() int     { return len(c.m.filteredClients) }
