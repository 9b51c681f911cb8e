// Package ui holds the bubbletea model for the point-of-sale terminal: a
// product search widget with barcode-scanner detection, the ticket being
// built, and the sale submission flow with its stock-shortfall confirmation.
package ui

import (
	"context"
	"log"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"farmaterm/internal/api"
	"farmaterm/internal/config"
	"farmaterm/internal/domain"
	"farmaterm/internal/eventbus"
	"farmaterm/internal/order"
	"farmaterm/internal/scanner"
	"farmaterm/internal/search"
	"farmaterm/internal/ui/input"
	"farmaterm/internal/ui/input/types"
	"farmaterm/internal/ui/views"
)

const statusToastDuration = 4 * time.Second

// Model is the root bubbletea model
type Model struct {
	client   *api.Client
	bus      eventbus.EventBus
	cfg      *config.Config
	handler  *input.Handler
	renderer *views.Renderer
	pager    *Pager

	searchSvc *search.Service
	detector  *scanner.Detector
	draft     *order.Draft

	resultIndex int
	lineIndex   int

	clients         []domain.Client
	filteredClients []domain.Client
	clientIndex     int
	clientName      string

	alerts []domain.Alert

	statusMessage string
	statusIsError bool
	statusID      int

	showHelp bool
	width    int
	height   int
}

// New creates the root model
func New(client *api.Client, bus eventbus.EventBus, cfg *config.Config) *Model {
	return &Model{
		client:   client,
		bus:      bus,
		cfg:      cfg,
		handler:  input.New(),
		renderer: views.NewRenderer(),
		pager:    NewPager(),
		searchSvc: search.NewService(search.Options{
			MinQueryLength: cfg.Search.MinQueryLength,
			PageSize:       cfg.Search.PageSize,
			StaleTTL:       time.Duration(cfg.Search.StaleTTLMillis) * time.Millisecond,
		}),
		detector: scanner.New(time.Duration(cfg.Scanner.ThresholdMillis) * time.Millisecond),
		draft:    order.NewDraft(cfg.UserID),
	}
}

// SetProgram wires the running program in for terminal release around the pager
func (m *Model) SetProgram(p *tea.Program) {
	m.pager.SetProgram(p)
}

// Init loads the customer catalog
func (m *Model) Init() tea.Cmd {
	return m.loadClientsCmd()
}

// Update is the bubbletea update loop
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if m.showHelp {
			m.showHelp = false
			return m, nil
		}
		actions, cmd := m.handler.HandleKey(msg, modelContext{m})
		cmds := []tea.Cmd{cmd}
		for _, action := range actions {
			if c := m.processAction(action); c != nil {
				cmds = append(cmds, c)
			}
		}
		return m, tea.Batch(cmds...)

	case searchResultMsg:
		m.searchSvc.Apply(msg.result)
		m.clampResultIndex()
		return m, nil

	case saleResultMsg:
		return m, m.handleSaleResult(msg)

	case clientsLoadedMsg:
		if msg.err != nil {
			log.Printf("UI: client list load failed: %v", msg.err)
			return m, nil
		}
		m.clients = msg.clients
		m.filteredClients = msg.clients
		return m, nil

	case alertsRefreshedMsg:
		if msg.err != nil {
			return m, m.setStatus("No se pudieron actualizar las alertas", true)
		}
		m.alerts = msg.alerts
		return m, m.setStatus("Alertas actualizadas", false)

	case historyLoadedMsg:
		if msg.err != nil {
			return m, m.setStatus("No se pudo cargar el historial", true)
		}
		if err := m.pager.ShowSalesHistory(msg.sales); err != nil {
			log.Printf("UI: pager failed: %v", err)
		}
		return m, nil

	case clearStatusMsg:
		if msg.id == m.statusID {
			m.statusMessage = ""
		}
		return m, nil

	case spinnerTickMsg:
		if m.searchSvc.Loading() || m.draft.Status() == order.StatusSubmitting || m.draft.Status() == order.StatusOverriding {
			return m, m.spinnerTickCmd()
		}
		return m, nil

	case BusEventMsg:
		if event, ok := msg.Event.(eventbus.AlertsUpdatedEvent); ok {
			m.alerts = event.Alerts
		}
		return m, nil
	}

	return m, m.handler.Update(msg)
}

// processAction executes one action emitted by the input handler
func (m *Model) processAction(action types.Action) tea.Cmd {
	switch a := action.(type) {

	case types.NavigateAction:
		m.navigateTicket(a.Direction)

	case types.ResultNavigateAction:
		visible := m.searchSvc.Visible()
		if a.Direction == "up" && m.resultIndex > 0 {
			m.resultIndex--
		} else if a.Direction == "down" && m.resultIndex < len(visible)-1 {
			m.resultIndex++
		}

	case types.UpdateTextAction:
		return m.handleTextUpdate(a.Text)

	case types.SubmitTextAction:
		return m.handleTextSubmit(a)

	case types.CancelTextAction:
		m.searchSvc.Clear()
		m.detector.Reset()
		m.resultIndex = 0
		m.filteredClients = m.clients
		m.clientIndex = 0

	case types.SelectResultAction:
		return m.selectResult()

	case types.RemoveLineAction:
		if err := m.draft.RemoveLine(m.lineIndex); err == nil {
			m.searchSvc.SetExcluded(m.draft.ProductIDs())
			m.clampLineIndex()
		}

	case types.AdjustQuantityAction:
		if m.lineIndex < len(m.draft.Lines) {
			qty := m.draft.Lines[m.lineIndex].Quantity + a.Delta
			if qty > 0 {
				_ = m.draft.SetQuantity(m.lineIndex, qty)
			}
		}

	case types.ToggleDocumentTypeAction:
		m.draft.ToggleDocumentType()

	case types.SubmitSaleAction:
		if err := m.draft.BeginSubmit(); err != nil {
			return m.setStatus("No hay artículos que cobrar", true)
		}
		return tea.Batch(m.submitSaleCmd(false), m.spinnerTickCmd())

	case types.ConfirmOverrideAction:
		if err := m.draft.ConfirmOverride(); err != nil {
			return nil
		}
		return tea.Batch(m.submitSaleCmd(true), m.spinnerTickCmd())

	case types.CancelConflictAction:
		_ = m.draft.CancelConflict()

	case types.ClientNavigateAction:
		if a.Direction == "up" && m.clientIndex > 0 {
			m.clientIndex--
		} else if a.Direction == "down" && m.clientIndex < len(m.filteredClients)-1 {
			m.clientIndex++
		}

	case types.SelectClientAction:
		if m.clientIndex < len(m.filteredClients) {
			chosen := m.filteredClients[m.clientIndex]
			m.draft.ClientID = chosen.ID
			m.clientName = chosen.Name
		}

	case types.RefreshAlertsAction:
		return m.refreshAlertsCmd()

	case types.OpenHistoryAction:
		return m.loadHistoryCmd()

	case types.ToggleHelpAction:
		m.showHelp = !m.showHelp

	case types.QuitAction:
		return tea.Quit
	}

	return nil
}

// handleTextUpdate reacts to the shared text input changing, per mode
func (m *Model) handleTextUpdate(text string) tea.Cmd {
	switch m.handler.CurrentMode() {
	case types.ModeSearch:
		m.detector.Observe(time.Now(), text)
		fetch, ok := m.searchSvc.SetQuery(text)
		m.resultIndex = 0
		if !ok {
			return nil
		}
		return tea.Batch(m.fetchSearchCmd(*fetch), m.spinnerTickCmd())

	case types.ModeClient:
		m.filterClients(text)
	}
	return nil
}

// handleTextSubmit reacts to Enter in a plain text mode
func (m *Model) handleTextSubmit(a types.SubmitTextAction) tea.Cmd {
	if a.Mode == types.ModeQuantity {
		qty, err := strconv.Atoi(strings.TrimSpace(a.Text))
		if err != nil || qty <= 0 {
			return m.setStatus("Cantidad inválida", true)
		}
		if err := m.draft.SetQuantity(m.lineIndex, qty); err != nil {
			return m.setStatus("Cantidad inválida", true)
		}
	}
	return nil
}

// selectResult commits the product Enter points at: the auto-accept candidate
// when there is one, otherwise the highlighted row
func (m *Model) selectResult() tea.Cmd {
	var chosen *domain.Product

	if p, ok := m.searchSvc.AutoAccept(m.detector.Active()); ok {
		chosen = p
	} else {
		visible := m.searchSvc.Visible()
		if m.resultIndex >= 0 && m.resultIndex < len(visible) {
			chosen = &visible[m.resultIndex]
		}
	}
	if chosen == nil {
		return nil
	}

	m.draft.AddProduct(*chosen, 1)
	m.searchSvc.SetExcluded(m.draft.ProductIDs())

	// Selection clears the query, results and scanner mode; the field stays
	// focused so a scanner can read the next code immediately
	m.searchSvc.Clear()
	m.detector.Reset()
	m.handler.ClearText()
	m.resultIndex = 0
	m.lineIndex = len(m.draft.Lines) - 1

	return m.setStatus("Agregado: "+chosen.Name, false)
}

// handleSaleResult advances the draft state machine from the backend's answer
func (m *Model) handleSaleResult(msg saleResultMsg) tea.Cmd {
	if err := m.draft.ApplyResult(msg.err); err != nil {
		log.Printf("UI: unexpected sale result: %v", err)
		return nil
	}

	switch m.draft.Status() {
	case order.StatusCommitted:
		m.bus.Publish(eventbus.SaleCommittedEvent{Sale: msg.sale})
		m.draft.ResetAfterCommit()
		m.searchSvc.SetExcluded(nil)
		m.lineIndex = 0
		return m.setStatus("Venta registrada", false)

	case order.StatusStockConflict:
		m.handler.ChangeMode(types.ModeConflictConfirm, "")
		return nil

	default:
		// Non-stock failure, ticket stays intact
		message := "No se pudo registrar la venta"
		if msg.err != nil {
			message += ": " + msg.err.Error()
		}
		return m.setStatus(message, true)
	}
}

// navigateTicket moves the line selection
func (m *Model) navigateTicket(direction string) {
	switch direction {
	case "up":
		if m.lineIndex > 0 {
			m.lineIndex--
		}
	case "down":
		if m.lineIndex < len(m.draft.Lines)-1 {
			m.lineIndex++
		}
	case "home":
		m.lineIndex = 0
	case "end":
		if n := len(m.draft.Lines); n > 0 {
			m.lineIndex = n - 1
		}
	}
}

// filterClients narrows the customer list by a case-insensitive name match
func (m *Model) filterClients(query string) {
	m.clientIndex = 0
	if query == "" {
		m.filteredClients = m.clients
		return
	}
	lower := strings.ToLower(query)
	filtered := make([]domain.Client, 0, len(m.clients))
	for _, c := range m.clients {
		if strings.Contains(strings.ToLower(c.Name), lower) || strings.Contains(strings.ToLower(c.RFC), lower) {
			filtered = append(filtered, c)
		}
	}
	m.filteredClients = filtered
}

func (m *Model) clampResultIndex() {
	if n := len(m.searchSvc.Visible()); m.resultIndex >= n {
		m.resultIndex = 0
	}
}

func (m *Model) clampLineIndex() {
	if n := len(m.draft.Lines); m.lineIndex >= n && n > 0 {
		m.lineIndex = n - 1
	} else if n == 0 {
		m.lineIndex = 0
	}
}

// setStatus shows a toast and schedules its expiry
func (m *Model) setStatus(message string, isError bool) tea.Cmd {
	m.statusMessage = message
	m.statusIsError = isError
	m.statusID++
	id := m.statusID
	return tea.Tick(statusToastDuration, func(time.Time) tea.Msg {
		return clearStatusMsg{id: id}
	})
}

// Commands

func (m *Model) fetchSearchCmd(fetch search.Fetch) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		page, err := m.client.SearchProducts(ctx, fetch.Query, fetch.Page, fetch.PageSize)
		result := search.Result{Query: fetch.Query, Generation: fetch.Generation, Err: err}
		if err == nil {
			result.Items = page.Items
		} else {
			log.Printf("UI: search %q failed: %v", fetch.Query, err)
		}
		return searchResultMsg{result: result}
	}
}

func (m *Model) submitSaleCmd(autoAdjust bool) tea.Cmd {
	payload := m.draft.Payload()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		sale, err := m.client.CreateSale(ctx, payload, autoAdjust)
		return saleResultMsg{sale: sale, err: err}
	}
}

func (m *Model) loadClientsCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		clients, err := m.client.ListClients(ctx)
		return clientsLoadedMsg{clients: clients, err: err}
	}
}

func (m *Model) refreshAlertsCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		alerts, err := m.client.ListAlerts(ctx)
		return alertsRefreshedMsg{alerts: alerts, err: err}
	}
}

func (m *Model) loadHistoryCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		sales, err := m.client.RecentSales(ctx, 20)
		return historyLoadedMsg{sales: sales, err: err}
	}
}

func (m *Model) spinnerTickCmd() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(at time.Time) tea.Msg {
		return spinnerTickMsg{at: at}
	})
}

// View renders the whole screen
func (m *Model) View() string {
	return m.renderer.Render(m.viewState())
}

// viewState snapshots the model for the renderer
func (m *Model) viewState() views.ViewState {
	status := m.draft.Status()

	modeName := ""
	switch m.handler.CurrentMode() {
	case types.ModeSearch:
		modeName = "search"
	case types.ModeQuantity:
		modeName = "quantity"
	case types.ModeClient:
		modeName = "client"
	}

	return views.ViewState{
		Width:  m.width,
		Height: m.height,

		InputMode: modeName,
		TextInput: m.handler.TextInput().Value(),

		SearchState:     m.searchSvc.State(),
		Results:         m.searchSvc.Visible(),
		ResultIndex:     m.resultIndex,
		ScannerActive:   m.detector.Active(),
		MinQueryLength:  m.cfg.Search.MinQueryLength,
		ShowStockBadges: m.cfg.UISettings.ShowStockBadges,

		Lines:        m.draft.Lines,
		LineIndex:    m.lineIndex,
		DocumentType: m.draft.DocumentType,
		ClientName:   m.clientName,
		Subtotal:     m.draft.Subtotal(),
		IVAAmount:    m.draft.IVAAmount(),
		Total:        m.draft.Total(),

		Clients:     m.filteredClients,
		ClientIndex: m.clientIndex,

		Submitting:    status == order.StatusSubmitting || status == order.StatusOverriding,
		Issues:        m.draft.Issues(),
		TotalShortage: m.draft.TotalShortage(),
		ShowConflict:  status == order.StatusStockConflict,

		AlertCount:    len(m.alerts),
		StatusMessage: m.statusMessage,
		StatusIsError: m.statusIsError,
		ShowHelp:      m.showHelp,
		Currency:      m.cfg.UISettings.Currency,
	}
}
