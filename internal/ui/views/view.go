package views

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"farmaterm/internal/domain"
	"farmaterm/internal/order"
	"farmaterm/internal/search"
)

// ViewState contains all the state needed for rendering
type ViewState struct {
	Width  int
	Height int

	InputMode string // "", "search", "quantity", "client"
	TextInput string

	SearchState     search.State
	Results         []domain.Product
	ResultIndex     int
	ScannerActive   bool
	MinQueryLength  int
	ShowStockBadges bool

	Lines        []order.Line
	LineIndex    int
	DocumentType string
	ClientName   string
	Subtotal     decimal.Decimal
	IVAAmount    decimal.Decimal
	Total        decimal.Decimal

	Clients     []domain.Client
	ClientIndex int

	Submitting    bool
	Issues        []domain.StockIssue
	TotalShortage int
	ShowConflict  bool

	AlertCount    int
	StatusMessage string
	StatusIsError bool
	ShowHelp      bool
	Currency      string
}

// Renderer handles all view rendering
type Renderer struct {
	styles      *Styles
	popupRender *PopupRenderer
}

// NewRenderer creates a new renderer
func NewRenderer() *Renderer {
	styles := NewStyles()
	return &Renderer{
		styles:      styles,
		popupRender: NewPopupRenderer(styles),
	}
}

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Render produces the complete view
func (r *Renderer) Render(state ViewState) string {
	content := &strings.Builder{}

	content.WriteString(r.renderTitleLine(state))
	content.WriteString("\n")

	switch state.InputMode {
	case "search":
		content.WriteString(r.renderSearchBox(state))
	case "quantity":
		content.WriteString(r.styles.Prompt.Render("Cantidad: ") + state.TextInput)
		content.WriteString("\n\n")
	case "client":
		content.WriteString(r.renderClientPicker(state))
	}

	content.WriteString(r.renderTicket(state))

	helpText := ""
	if !state.ShowHelp && !state.ShowConflict {
		helpText = r.styles.Help.Render("/ buscar · c cliente · t documento · s cobrar · ? ayuda")
	}

	if state.StatusMessage != "" {
		style := r.styles.Status
		if state.StatusIsError {
			style = r.styles.StatusError
		}
		content.WriteString("\n")
		content.WriteString(style.Render(state.StatusMessage))
	}

	if helpText != "" {
		currentLines := strings.Count(content.String(), "\n") + 1
		availableLines := state.Height - 2
		if availableLines <= 0 {
			availableLines = 22
		}
		paddingNeeded := availableLines - currentLines - 1
		if paddingNeeded > 0 {
			content.WriteString(strings.Repeat("\n", paddingNeeded))
		}
		content.WriteString("\n")
		content.WriteString(helpText)
	}

	mainStyle := r.styles.Main.MaxHeight(state.Height)
	finalContent := mainStyle.Render(content.String())

	if state.ShowConflict {
		popup := r.renderConflictContent(state)
		return r.popupRender.RenderPopupOverlay(finalContent, popup, state.Height, state.Width, r.styles.ConflictBox)
	}

	if state.ShowHelp {
		return r.popupRender.RenderPopupOverlay(finalContent, r.renderHelpContent(), state.Height, state.Width, r.styles.ConflictBox)
	}

	return finalContent
}

// renderTitleLine builds the logo line with right-aligned indicators
func (r *Renderer) renderTitleLine(state ViewState) string {
	logo := r.styles.Title.Render("farmaterm")

	indicators := []string{}
	if state.SearchState == search.StateLoading {
		frame := int(time.Now().UnixMilli()/80) % len(spinnerFrames)
		indicators = append(indicators, fmt.Sprintf("%s Buscando", spinnerFrames[frame]))
	}
	if state.Submitting {
		frame := int(time.Now().UnixMilli()/80) % len(spinnerFrames)
		indicators = append(indicators, fmt.Sprintf("%s Cobrando", spinnerFrames[frame]))
	}

	rightContent := ""
	if len(indicators) > 0 {
		rightContent = r.styles.Dim.Render(strings.Join(indicators, " | "))
	}
	if state.AlertCount > 0 {
		badge := r.styles.AlertBadge.Render(fmt.Sprintf("⚠ %d alertas", state.AlertCount))
		if rightContent != "" {
			rightContent = fmt.Sprintf("%s  %s", rightContent, badge)
		} else {
			rightContent = badge
		}
	}

	if rightContent == "" {
		return logo
	}

	termWidth := state.Width
	if termWidth <= 0 {
		termWidth = 80
	}
	availableWidth := termWidth - 4 // Account for main container padding
	paddingWidth := availableWidth - lipgloss.Width(logo) - lipgloss.Width(rightContent)
	if paddingWidth > 0 {
		return logo + strings.Repeat(" ", paddingWidth) + rightContent
	}
	return fmt.Sprintf("%s  %s", logo, rightContent)
}

// renderSearchBox draws the query field and the result dropdown under it
func (r *Renderer) renderSearchBox(state ViewState) string {
	b := &strings.Builder{}

	prompt := r.styles.Prompt.Render("Buscar producto: ")
	line := prompt + state.TextInput
	if state.ScannerActive {
		line += "  " + r.styles.Scanner.Render("[escáner]")
	}
	b.WriteString(line)
	b.WriteString("\n")

	switch state.SearchState {
	case search.StateTooShort:
		min := state.MinQueryLength
		if min <= 0 {
			min = 2
		}
		b.WriteString(r.styles.Dim.Render(fmt.Sprintf("Escribe al menos %d caracteres para buscar", min)))
		b.WriteString("\n")
	case search.StateLoading:
		b.WriteString(r.styles.StatusLoading.Render("Buscando..."))
		b.WriteString("\n")
	case search.StateEmpty:
		b.WriteString(r.styles.Dim.Render("No se encontraron productos"))
		b.WriteString("\n")
	case search.StateReady:
		for i, p := range state.Results {
			b.WriteString(r.renderResultRow(p, i == state.ResultIndex, state.ShowStockBadges))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	return b.String()
}

// renderResultRow draws one product in the dropdown
func (r *Renderer) renderResultRow(p domain.Product, selected, showBadge bool) string {
	marker := "  "
	if selected {
		marker = "> "
	}

	name := p.Name
	detail := ""
	if p.Laboratory != "" && p.ActiveSubstance != "" {
		detail = fmt.Sprintf("%s · %s", p.Laboratory, p.ActiveSubstance)
	} else if p.Laboratory != "" {
		detail = p.Laboratory
	} else if p.ActiveSubstance != "" {
		detail = p.ActiveSubstance
	}

	badge := ""
	if showBadge {
		stock := p.Stock()
		badge = lipgloss.NewStyle().
			Foreground(lipgloss.Color(GetStockColor(stock))).
			Render(fmt.Sprintf("[%d]", stock))
	}

	price := r.styles.Price.Render("$" + p.SalePrice.StringFixed(2))

	line := fmt.Sprintf("%s%-30s %-13s %s %s", marker, truncate(name, 30), p.Barcode, price, badge)
	if detail != "" {
		line += "  " + r.styles.Dim.Render(truncate(detail, 40))
	}

	if selected {
		return r.styles.SelectionBg.Render(line)
	}
	return line
}

// renderClientPicker draws the customer filter field and matching clients
func (r *Renderer) renderClientPicker(state ViewState) string {
	b := &strings.Builder{}
	b.WriteString(r.styles.Prompt.Render("Cliente: ") + state.TextInput)
	b.WriteString("\n")

	for i, c := range state.Clients {
		marker := "  "
		line := fmt.Sprintf("%s%s", marker, c.Name)
		if c.RFC != "" {
			line += "  " + r.styles.Dim.Render(c.RFC)
		}
		if i == state.ClientIndex {
			line = "> " + line[2:]
			line = r.styles.SelectionBg.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	return b.String()
}

// renderTicket draws the sale lines and totals
func (r *Renderer) renderTicket(state ViewState) string {
	b := &strings.Builder{}

	docLabel := "Factura"
	if state.DocumentType == order.DocumentRemission {
		docLabel = "Remisión"
	}
	clientName := state.ClientName
	if clientName == "" {
		clientName = "Público general"
	}
	b.WriteString(r.styles.Dim.Render(fmt.Sprintf("%s · %s", docLabel, clientName)))
	b.WriteString("\n\n")

	if len(state.Lines) == 0 {
		b.WriteString(r.styles.Dim.Render("Ticket vacío. Pulsa / para buscar o escanea un código."))
		b.WriteString("\n")
		return b.String()
	}

	header := fmt.Sprintf("  %-30s %5s %10s %10s", "Producto", "Cant", "Precio", "Importe")
	b.WriteString(r.styles.TableHeader.Render(header))
	b.WriteString("\n")

	for i, line := range state.Lines {
		marker := "  "
		if i == state.LineIndex && state.InputMode == "" {
			marker = "> "
		}
		row := fmt.Sprintf("%s%-30s %5d %10s %10s",
			marker,
			truncate(line.Name, 30),
			line.Quantity,
			"$"+line.UnitPrice.StringFixed(2),
			"$"+line.Subtotal().StringFixed(2),
		)
		if line.Quantity > line.Stock {
			row += "  " + r.styles.StatusError.Render(fmt.Sprintf("stock: %d", line.Stock))
		}
		if i == state.LineIndex && state.InputMode == "" {
			row = r.styles.SelectionBg.Render(row)
		}
		b.WriteString(row)
		b.WriteString("\n")
	}

	currency := state.Currency
	if currency == "" {
		currency = "MXN"
	}

	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  %47s %10s\n", "Subtotal:", "$"+state.Subtotal.StringFixed(2)))
	if state.DocumentType == order.DocumentInvoice {
		b.WriteString(fmt.Sprintf("  %47s %10s\n", "IVA:", "$"+state.IVAAmount.StringFixed(2)))
	}
	totalLine := fmt.Sprintf("  %47s %10s %s", "Total:", "$"+state.Total.StringFixed(2), currency)
	b.WriteString(r.styles.Highlight.Render(totalLine))
	b.WriteString("\n")

	return b.String()
}

// renderConflictContent builds the stock shortfall dialog body
func (r *Renderer) renderConflictContent(state ViewState) string {
	b := &strings.Builder{}

	b.WriteString(r.styles.StatusError.Render("Stock insuficiente"))
	b.WriteString("\n\n")

	header := fmt.Sprintf("%-28s %10s %10s %9s", "Producto", "Solicitado", "Disponible", "Faltante")
	b.WriteString(r.styles.TableHeader.Render(header))
	b.WriteString("\n")

	for _, issue := range state.Issues {
		b.WriteString(fmt.Sprintf("%-28s %10d %10d %9d\n",
			truncate(issue.ProductName, 28),
			issue.Requested,
			issue.Available,
			issue.Shortage,
		))
	}

	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("Faltan %d unidades en total.\n\n", state.TotalShortage))
	b.WriteString(r.styles.Confirm.Render("¿Vender ajustando a las existencias? (y/n)"))

	return b.String()
}

// renderHelpContent lists the key bindings
func (r *Renderer) renderHelpContent() string {
	b := &strings.Builder{}
	b.WriteString(r.styles.Title.Render("Atajos"))
	b.WriteString("\n")

	rows := [][2]string{
		{"/  b", "buscar producto o escanear código"},
		{"↑ ↓  j k", "mover la selección"},
		{"enter", "editar cantidad de la línea"},
		{"+  -", "ajustar cantidad"},
		{"d  x  supr", "quitar línea"},
		{"c", "elegir cliente"},
		{"t", "factura / remisión"},
		{"s", "cobrar la venta"},
		{"v", "ventas recientes"},
		{"a", "actualizar alertas"},
		{"?", "esta ayuda"},
		{"q", "salir"},
	}
	for _, row := range rows {
		b.WriteString(fmt.Sprintf("  %-12s %s\n", r.styles.Highlight.Render(row[0]), row[1]))
	}

	return b.String()
}

// truncate cuts s to max runes with an ellipsis
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max <= 1 {
		return string(runes[:max])
	}
	return string(runes[:max-1]) + "…"
}
