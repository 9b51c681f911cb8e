package modes

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"farmaterm/internal/ui/input/types"
)

// SearchMode drives the product search field. Unlike other text modes it
// stays active after a selection so a scanner can read several barcodes in a
// row without re-entering the mode.
type SearchMode struct {
	TextInputMode
}

func NewSearchMode(ti *textinput.Model) *SearchMode {
	return &SearchMode{
		TextInputMode: NewTextInputMode(types.ModeSearch, "search", "Buscar: ", ti),
	}
}

func (m *SearchMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch msg.String() {
	case "ctrl+c":
		return []types.Action{types.QuitAction{Force: true}}, true
	case "esc":
		return []types.Action{
			types.CancelTextAction{},
			types.ChangeModeAction{Mode: types.ModeNormal},
		}, true
	case "up", "ctrl+p":
		return []types.Action{types.ResultNavigateAction{Direction: "up"}}, true
	case "down", "ctrl+n":
		return []types.Action{types.ResultNavigateAction{Direction: "down"}}, true
	case "enter":
		return []types.Action{types.SelectResultAction{Index: -1}}, true
	default:
		return nil, false
	}
}
