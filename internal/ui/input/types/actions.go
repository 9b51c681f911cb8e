package types

// Navigation actions
type NavigateAction struct {
	Direction string // "up", "down", "home", "end"
}

func (a NavigateAction) Type() string { return "navigate" }

// Mode transition actions
type ChangeModeAction struct {
	Mode Mode
	Data interface{} // Optional data for the mode
}

func (a ChangeModeAction) Type() string { return "change_mode" }

// Text input actions
type UpdateTextAction struct {
	Text string
}

func (a UpdateTextAction) Type() string { return "update_text" }

type SubmitTextAction struct {
	Text string
	Mode Mode // Which mode submitted the text
}

func (a SubmitTextAction) Type() string { return "submit_text" }

type CancelTextAction struct{}

func (a CancelTextAction) Type() string { return "cancel_text" }

// Search result actions
type SelectResultAction struct {
	Index int // -1 for the highlighted result
}

func (a SelectResultAction) Type() string { return "select_result" }

type ResultNavigateAction struct {
	Direction string // "up" or "down"
}

func (a ResultNavigateAction) Type() string { return "result_navigate" }

// Ticket actions
type RemoveLineAction struct {
	Index int // -1 for current
}

func (a RemoveLineAction) Type() string { return "remove_line" }

type AdjustQuantityAction struct {
	Delta int
}

func (a AdjustQuantityAction) Type() string { return "adjust_quantity" }

type ToggleDocumentTypeAction struct{}

func (a ToggleDocumentTypeAction) Type() string { return "toggle_document_type" }

type SubmitSaleAction struct{}

func (a SubmitSaleAction) Type() string { return "submit_sale" }

// Stock conflict actions
type ConfirmOverrideAction struct{}

func (a ConfirmOverrideAction) Type() string { return "confirm_override" }

type CancelConflictAction struct{}

func (a CancelConflictAction) Type() string { return "cancel_conflict" }

// Client picker actions
type ClientNavigateAction struct {
	Direction string // "up" or "down"
}

func (a ClientNavigateAction) Type() string { return "client_navigate" }

type SelectClientAction struct {
	Index int // -1 for the highlighted client
}

func (a SelectClientAction) Type() string { return "select_client" }

// Command actions
type RefreshAlertsAction struct{}

func (a RefreshAlertsAction) Type() string { return "refresh_alerts" }

type OpenHistoryAction struct{}

func (a OpenHistoryAction) Type() string { return "open_history" }

type ToggleHelpAction struct{}

func (a ToggleHelpAction) Type() string { return "toggle_help" }

type QuitAction struct {
	Force bool // true for Ctrl+C, false for 'q'
}

func (a QuitAction) Type() string { return "quit" }
