package modes

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"farmaterm/internal/ui/input/types"
)

// ClientMode filters and picks the customer for the ticket
type ClientMode struct {
	TextInputMode
}

func NewClientMode(ti *textinput.Model) *ClientMode {
	return &ClientMode{
		TextInputMode: NewTextInputMode(types.ModeClient, "client", "Cliente: ", ti),
	}
}

func (m *ClientMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch msg.String() {
	case "up", "ctrl+p":
		return []types.Action{types.ClientNavigateAction{Direction: "up"}}, true
	case "down", "ctrl+n":
		return []types.Action{types.ClientNavigateAction{Direction: "down"}}, true
	case "enter":
		return []types.Action{
			types.SelectClientAction{Index: -1},
			types.ChangeModeAction{Mode: types.ModeNormal},
		}, true
	}
	return m.TextInputMode.HandleKey(msg, ctx)
}
