package modes

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"farmaterm/internal/ui/input/types"
)

// QuantityMode edits the quantity of the highlighted ticket line
type QuantityMode struct {
	TextInputMode
}

func NewQuantityMode(ti *textinput.Model) *QuantityMode {
	return &QuantityMode{
		TextInputMode: NewTextInputMode(types.ModeQuantity, "quantity", "Cantidad: ", ti),
	}
}

func (m *QuantityMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	// Only digits reach the text input
	if msg.Type == tea.KeyRunes {
		for _, r := range msg.Runes {
			if r < '0' || r > '9' {
				return nil, true
			}
		}
	}
	return m.TextInputMode.HandleKey(msg, ctx)
}
