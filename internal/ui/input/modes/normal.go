package modes

import (
	tea "github.com/charmbracelet/bubbletea"

	"farmaterm/internal/ui/input/types"
)

// NormalMode navigates the ticket and dispatches to the other modes
type NormalMode struct{}

func NewNormalMode() *NormalMode {
	return &NormalMode{}
}

func (m *NormalMode) Name() string {
	return "normal"
}

func (m *NormalMode) Enter(ctx types.Context) []types.Action {
	return nil
}

func (m *NormalMode) Exit(ctx types.Context) []types.Action {
	return nil
}

func (m *NormalMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return []types.Action{types.QuitAction{Force: true}}, true

	case tea.KeyUp:
		return []types.Action{types.NavigateAction{Direction: "up"}}, true

	case tea.KeyDown:
		return []types.Action{types.NavigateAction{Direction: "down"}}, true

	case tea.KeyHome:
		return []types.Action{types.NavigateAction{Direction: "home"}}, true

	case tea.KeyEnd:
		return []types.Action{types.NavigateAction{Direction: "end"}}, true

	case tea.KeyEnter:
		// Enter on a line edits its quantity
		if ctx.TotalLines() > 0 {
			return []types.Action{types.ChangeModeAction{Mode: types.ModeQuantity}}, true
		}
		return nil, false

	case tea.KeyDelete:
		if ctx.TotalLines() > 0 {
			return []types.Action{types.RemoveLineAction{Index: -1}}, true
		}
		return nil, false
	}

	switch msg.String() {
	case "j":
		return []types.Action{types.NavigateAction{Direction: "down"}}, true

	case "k":
		return []types.Action{types.NavigateAction{Direction: "up"}}, true

	case "/", "b":
		return []types.Action{types.ChangeModeAction{Mode: types.ModeSearch}}, true

	case "c":
		return []types.Action{types.ChangeModeAction{Mode: types.ModeClient}}, true

	case "n":
		if ctx.TotalLines() > 0 {
			return []types.Action{types.ChangeModeAction{Mode: types.ModeQuantity}}, true
		}
		return nil, false

	case "d", "x":
		if ctx.TotalLines() > 0 {
			return []types.Action{types.RemoveLineAction{Index: -1}}, true
		}
		return nil, false

	case "+", "=":
		if ctx.TotalLines() > 0 {
			return []types.Action{types.AdjustQuantityAction{Delta: 1}}, true
		}
		return nil, false

	case "-":
		if ctx.TotalLines() > 0 {
			return []types.Action{types.AdjustQuantityAction{Delta: -1}}, true
		}
		return nil, false

	case "t":
		return []types.Action{types.ToggleDocumentTypeAction{}}, true

	case "s":
		if ctx.TotalLines() > 0 {
			return []types.Action{types.SubmitSaleAction{}}, true
		}
		return nil, false

	case "a":
		return []types.Action{types.RefreshAlertsAction{}}, true

	case "v":
		return []types.Action{types.OpenHistoryAction{}}, true

	case "?":
		return []types.Action{types.ToggleHelpAction{}}, true

	case "q":
		return []types.Action{types.QuitAction{}}, true
	}

	return nil, false
}
