// admin-app is the staff dashboard for the Tea Estate: live kitchen queue,
// menu and table management, and sales analytics.
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

	"tea-estate/admin-app/internal/tui"
	"tea-estate/config"
	"tea-estate/internal/domain"
	"tea-estate/internal/events"
	"tea-estate/internal/gateway"
	"tea-estate/internal/render"
	"tea-estate/internal/service"
	"tea-estate/internal/session"
	"tea-estate/internal/termui"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load("admin-app", os.Args[1:])
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
	logger = logger.With(zap.String("app", "admin-app"))

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	store, err := config.OpenStore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("open local storage: %w", err)
	}
	defer store.Close()

	source, err := config.OpenSource(cfg, logger)
	if err != nil {
		logger.Warn("live updates unavailable", zap.Error(err))
	}

	bridge := &termui.Bridge{}
	dispatcher := events.NewDispatcher(logger)

	// The gateway and the admin service refer to each other: the gateway
	// reads the session token and ends the session on a 401.
	var admin *service.Admin
	api := gateway.NewGateway(gateway.Config{
		BaseURL:        cfg.APIURL,
		Token:          func() string { return admin.Token() },
		OnUnauthorized: func() { admin.Teardown(ctx) },
		Logger:         logger,
	}, nil)

	adminConfig := service.AdminConfig{Logger: logger}
	if source != nil {
		adminConfig.StartEvents = func(ctx context.Context) func() {
			client := events.NewClient(source, dispatcher, events.Config{
				Channels:   []domain.Channel{domain.AdminChannel()},
				RetryDelay: cfg.Events.RetryDelay,
				OnStatus:   func(status events.Status, _ error) { admin.SetConnection(status) },
				Logger:     logger,
			})
			return client.Start(ctx)
		}
	}
	admin = service.NewAdmin(adminConfig, api, session.NewCredentialStore(store), bridge)
	admin.Register(dispatcher)

	model := tui.New(ctx, tui.Config{
		Admin:           admin,
		RefreshInterval: cfg.RefreshInterval,
		LiveUpdates:     source != nil,
		ExportDir:       cfg.ExportDir,
		QR:              render.TableQRGenerator{PublicURL: cfg.PublicURL, Size: 512},
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
