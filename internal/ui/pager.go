package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/noborus/ov/oviewer"

	"farmaterm/internal/domain"
)

// Pager shows long content (sales history, help) through ov, releasing the
// terminal around it
type Pager struct {
	program *tea.Program
}

// NewPager creates a pager bound to the running program
func NewPager() *Pager {
	return &Pager{}
}

// SetProgram attaches the tea program once it exists
func (p *Pager) SetProgram(program *tea.Program) {
	p.program = program
}

// ShowSalesHistory formats recent sales and pages them
func (p *Pager) ShowSalesHistory(sales []domain.Sale) error {
	b := &strings.Builder{}
	b.WriteString("Ventas recientes\n")
	b.WriteString("================\n\n")

	if len(sales) == 0 {
		b.WriteString("Sin ventas registradas.\n")
	}

	for _, sale := range sales {
		clientName := "Público general"
		if sale.Client != nil && sale.Client.Name != "" {
			clientName = sale.Client.Name
		}
		docLabel := "Factura"
		if sale.DocumentType != "invoice" {
			docLabel = "Remisión"
		}
		fmt.Fprintf(b, "#%d  %s  %s  %s  $%s  [%s]\n",
			sale.ID,
			sale.SaleDate.Format("2006-01-02 15:04"),
			docLabel,
			clientName,
			sale.Total.StringFixed(2),
			sale.PaymentStatus,
		)
		for _, item := range sale.Items {
			name := fmt.Sprintf("producto %d", item.ProductID)
			if item.Product != nil && item.Product.Name != "" {
				name = item.Product.Name
			}
			fmt.Fprintf(b, "    %dx %s  $%s\n", item.Quantity, name, item.Subtotal.StringFixed(2))
		}
		b.WriteString("\n")
	}

	return p.run(b.String())
}

// ShowHelp pages the key binding reference
func (p *Pager) ShowHelp(content string) error {
	return p.run(content)
}

// run releases the terminal, runs ov over the content, and restores
func (p *Pager) run(content string) error {
	if p.program == nil {
		return fmt.Errorf("program not set")
	}

	if err := p.program.ReleaseTerminal(); err != nil {
		return err
	}
	defer func() {
		// Small delay to ensure ov has fully exited before restoring terminal
		time.Sleep(100 * time.Millisecond)
		_ = p.program.RestoreTerminal()
	}()

	root, err := oviewer.NewRoot(strings.NewReader(content))
	if err != nil {
		return err
	}

	// Don't write pager content on exit, it would mess with our screen
	config := oviewer.NewConfig()
	config.IsWriteOnExit = false
	config.IsWriteOriginal = false
	config.QuitSmall = true
	root.SetConfig(config)

	return root.Run()
}
