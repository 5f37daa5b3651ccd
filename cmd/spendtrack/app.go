package main

import (
	"fmt"

	"spendtrack/internal/api"
	"spendtrack/internal/budget"
	"spendtrack/internal/config"
	"spendtrack/internal/gateway"
	"spendtrack/internal/logger"
	"spendtrack/internal/notify"
	"spendtrack/internal/session"
	"spendtrack/internal/settings"
	"spendtrack/internal/store"
)

// app wires the gateway, the resource services, and the allocation engine for
// one command invocation.
type app struct {
	cfg      *config.Config
	kv       *store.FileStore
	sessions *session.FileStore
	notifier notify.Notifier
	gw       *gateway.Client

	auth      *api.AuthService
	expenses  *api.ExpensesService
	budgets   *api.BudgetsService
	documents *api.DocumentsService
	team      *api.TeamService
	reports   *api.ReportsService
	engine    *budget.Engine
}

// newApp loads configuration, opens the local store, and builds the service
// graph. Callers must Close the returned app.
func newApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}
	logger.Init(cfg.Env)
	log := logger.Get()

	kv, err := store.Open(cfg.DataFile)
	if err != nil {
		return nil, fmt.Errorf("opening local store %s: %w", cfg.DataFile, err)
	}

	sessions := session.NewFileStore(kv)
	notifier := notify.NewLogger(log)

	gw := gateway.New(gateway.Options{
		Endpoints: cfg.Endpoints,
		Timeout:   cfg.RequestTimeout,
		Sessions:  sessions,
		Notifier:  notifier,
		Logger:    logger.Named("gateway"),
		OnSessionExpired: func(reason string) {
			log.Warnw("session ended", "reason", reason)
			fmt.Println("Run 'spendtrack login' to start a new session.")
		},
	})

	budgets := api.NewBudgetsService(gw, notifier)
	return &app{
		cfg:       cfg,
		kv:        kv,
		sessions:  sessions,
		notifier:  notifier,
		gw:        gw,
		auth:      api.NewAuthService(gw, sessions, notifier),
		expenses:  api.NewExpensesService(gw, notifier),
		budgets:   budgets,
		documents: api.NewDocumentsService(gw, notifier),
		team:      api.NewTeamService(gw, notifier),
		reports:   api.NewReportsService(gw, notifier),
		engine:    budget.NewEngine(budgets, notifier, logger.Named("engine")),
	}, nil
}

// settings loads the user preference set from the local store.
func (a *app) settings() (*settings.Settings, error) {
	return settings.Load(a.kv)
}

// Close releases the local store.
func (a *app) Close() {
	if err := a.kv.Close(); err != nil {
		logger.Get().Errorw("closing local store", "error", err)
	}
}
