package modes

import (
	tea "github.com/charmbracelet/bubbletea"

	"farmaterm/internal/ui/input/types"
)

// ConflictConfirmMode handles the stock shortfall dialog. Confirming sells
// the short items down to zero; cancelling keeps the ticket untouched.
type ConflictConfirmMode struct{}

func NewConflictConfirmMode() *ConflictConfirmMode {
	return &ConflictConfirmMode{}
}

func (m *ConflictConfirmMode) Name() string {
	return "conflict-confirm"
}

func (m *ConflictConfirmMode) Enter(ctx types.Context) []types.Action {
	return nil
}

func (m *ConflictConfirmMode) Exit(ctx types.Context) []types.Action {
	return nil
}

func (m *ConflictConfirmMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch msg.String() {
	case "ctrl+c":
		return []types.Action{types.QuitAction{Force: true}}, true
	case "esc", "n", "N":
		return []types.Action{
			types.CancelConflictAction{},
			types.ChangeModeAction{Mode: types.ModeNormal},
		}, true
	case "y", "Y", "enter":
		return []types.Action{
			types.ConfirmOverrideAction{},
			types.ChangeModeAction{Mode: types.ModeNormal},
		}, true
	}

	return nil, true // modal: swallow everything else
}
