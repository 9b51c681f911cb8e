package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"farmaterm/internal/alerts"
	"farmaterm/internal/api"
	"farmaterm/internal/config"
	"farmaterm/internal/eventbus"
	"farmaterm/internal/ui"
)

func main() {
	// Parse command line arguments
	var baseURL string
	var configPath string
	flag.StringVar(&baseURL, "url", "", "Backend base URL (overrides config)")
	flag.StringVar(&configPath, "config", "", "Path to config file")
	flag.Parse()

	// Set up logging
	logFile, err := os.OpenFile("farmaterm.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		log.Printf("Could not open log file: %v", err)
	} else {
		defer logFile.Close()
		log.SetOutput(logFile)
	}

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle interrupt signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	// Create event bus
	bus := eventbus.New()

	// Load configuration with event bus support
	configSvc := config.NewConfigServiceWithBus(bus)
	cfg := loadOrCreateConfig(configSvc, configPath)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}

	// Subscribe to config changes to save automatically
	bus.Subscribe(eventbus.EventConfigChanged, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.ConfigChangedEvent); ok {
			if event.Token != "" {
				cfg.Token = event.Token
			}
			if event.BaseURL != "" {
				cfg.BaseURL = event.BaseURL
			}
			if err := saveConfig(configSvc, cfg, configPath); err != nil {
				log.Printf("Failed to save config: %v", err)
			}
		}
	})

	// Initialize services
	client := api.New(cfg.BaseURL, api.WithToken(cfg.Token))
	poller := alerts.NewPollerService(client, bus,
		time.Duration(cfg.Alerts.PollIntervalSeconds)*time.Second)

	// Create UI model
	uiModel := ui.New(client, bus, cfg)

	// Create Bubble Tea program
	p := tea.NewProgram(uiModel, tea.WithAltScreen())
	uiModel.SetProgram(p)

	// Forward bus events into the UI loop
	for _, eventType := range []eventbus.EventType{
		eventbus.EventAlertsUpdated,
		eventbus.EventSaleCommitted,
		eventbus.EventError,
	} {
		bus.Subscribe(eventType, func(e eventbus.DomainEvent) {
			p.Send(ui.BusEventMsg{Event: e})
		})
	}

	// Start the alerts poller
	if err := poller.StartPolling(ctx); err != nil {
		log.Printf("Failed to start alerts poller: %v", err)
	}
	defer poller.StopPolling()

	// Stop the program when the context is cancelled by a signal
	go func() {
		<-ctx.Done()
		p.Quit()
	}()

	log.Printf("Starting farmaterm against %s", cfg.BaseURL)
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running program: %v\n", err)
		os.Exit(1)
	}

	// Persist settings on exit when enabled
	if cfg.UISettings.AutosaveOnExit {
		if err := saveConfig(configSvc, cfg, configPath); err != nil {
			log.Printf("Failed to save config on exit: %v", err)
		}
	}
}

// loadOrCreateConfig loads the config from the given path (or the default
// location), falling back to defaults when no file exists yet
func loadOrCreateConfig(svc config.ConfigService, path string) *config.Config {
	if path != "" {
		cfg, err := svc.LoadFromPath(path)
		if err != nil {
			log.Printf("Could not load config from %s: %v, using defaults", path, err)
			return config.DefaultConfig()
		}
		return cfg
	}

	cfg, err := svc.Load()
	if err != nil {
		log.Printf("Could not load config: %v, using defaults", err)
		return config.DefaultConfig()
	}
	return cfg
}

// saveConfig writes the config back to where it was loaded from
func saveConfig(svc config.ConfigService, cfg *config.Config, path string) error {
	if path != "" {
		return svc.SaveToPath(cfg, path)
	}
	return svc.Save(cfg)
}
