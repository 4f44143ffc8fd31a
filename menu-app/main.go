// menu-app is the table-side ordering terminal: customers browse the menu,
// build a cart and follow their orders until they are ready.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"tea-estate/config"
	"tea-estate/internal/events"
	"tea-estate/internal/gateway"
	"tea-estate/internal/render"
	"tea-estate/internal/service"
	"tea-estate/internal/session"
	"tea-estate/internal/termui"
	"tea-estate/menu-app/internal/tui"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load("menu-app", os.Args[1:])
	if errors.Is(err, pflag.ErrHelp) {
		return nil
	}
	if err != nil {
		return err
	}

	logger, err := config.NewLogger(cfg.LogFile)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Sync()
	logger = logger.With(zap.String("app", "menu-app"), zap.Int("table", cfg.TableNumber))

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	store, err := config.OpenStore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("open local storage: %w", err)
	}
	defer store.Close()

	api := gateway.NewGateway(gateway.Config{BaseURL: cfg.APIURL, Logger: logger}, nil)
	bridge := &termui.Bridge{}
	customer := service.NewCustomer(service.CustomerConfig{
		TableNumber:   cfg.TableNumber,
		ServiceCharge: cfg.ServiceCharge,
		Logger:        logger,
	}, api, session.NewCartStore(store, logger), bridge)

	var warning string
	if err := customer.ValidateTable(ctx); err != nil {
		if errors.Is(err, service.ErrInvalidTable) {
			return fmt.Errorf("table %d is not a valid table, please scan the QR code again", cfg.TableNumber)
		}
		logger.Warn("table check skipped", zap.Error(err))
		warning = "Could not reach the server to check this table"
	}

	source, err := config.OpenSource(cfg, logger)
	if err != nil {
		logger.Warn("live updates unavailable", zap.Error(err))
	}
	if source != nil {
		dispatcher := events.NewDispatcher(logger)
		customer.Register(dispatcher)
		client := events.NewClient(source, dispatcher, events.Config{
			Channels:   customer.Channels(),
			RetryDelay: cfg.Events.RetryDelay,
			OnStatus:   bridge.Status,
			Logger:     logger,
		})
		stop := client.Start(ctx)
		defer stop()
	}

	model := tui.New(ctx, tui.Config{
		Customer:        customer,
		RefreshInterval: cfg.RefreshInterval,
		LiveUpdates:     source != nil,
		Warning:         warning,
		Theme:           render.DefaultTheme,
	})
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	bridge.Attach(program)
	_, err = program.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
