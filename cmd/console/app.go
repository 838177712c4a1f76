package main

import (
	"context"
	"net/http"
	"time"

	"github.com/devicepulse/console/auth"
	"github.com/devicepulse/console/internal/config"
	"github.com/devicepulse/console/notify"
	"github.com/devicepulse/console/service"
	"github.com/devicepulse/console/session"
	"github.com/devicepulse/console/storage/filestore"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// app wires the session core together for the CLI: one controller, one state
// cell, one request client, all sharing the file-backed credential store.
type app struct {
	cfg        config.Config
	logger     zerolog.Logger
	state      *session.State
	controller *auth.Controller
	client     *service.Client
}

func newApp() (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, errors.Wrap(err, "[newApp] load config")
	}

	logger := newLogger(cfg)
	state := session.New(cfg)
	store := filestore.New(cfg.GetCredentialsPath())
	notifier := notify.NewLogNotifier(logger)
	navigator := &cliNavigator{logger: logger, cfg: cfg}

	httpClient := &http.Client{Timeout: time.Duration(cfg.GetRequestTimeoutSeconds()) * time.Second}
	gateway := auth.NewHTTPGateway(cfg.GetAPIBaseURL(), auth.WithHTTPClient(httpClient))

	controller, err := auth.NewController(auth.Deps{
		Gateway:   gateway,
		Store:     store,
		State:     state,
		Navigator: navigator,
		Notifier:  notifier,
	}, auth.WithLogger(logger))
	if err != nil {
		return nil, errors.Wrap(err, "[newApp] build controller")
	}

	client := service.NewClient(cfg.GetAPIBaseURL(),
		service.WithHTTPClient(httpClient),
		service.WithTokenSource(state),
		service.WithNotifier(notifier),
		service.WithOnUnauthorized(func() {
			if err := controller.Reset(context.Background()); err != nil {
				logger.Err(err).Msg("reset after unauthenticated response")
			}
		}),
		service.WithLogger(logger),
	)

	return &app{
		cfg:        cfg,
		logger:     logger,
		state:      state,
		controller: controller,
		client:     client,
	}, nil
}

// restore re-establishes a persisted session before a command runs.
func (a *app) restore(ctx context.Context) error {
	return a.controller.Restore(ctx)
}

// cliNavigator stands in for the route table: redirects become log lines.
type cliNavigator struct {
	logger zerolog.Logger
	cfg    config.Config
}

var _ auth.Navigator = (*cliNavigator)(nil)

func (n *cliNavigator) ToLogin() {
	n.logger.Info().Str("route", n.cfg.GetLoginRoute()).Msg("redirect to login")
}

func (n *cliNavigator) ToHome() {
	n.logger.Info().Str("route", n.cfg.GetHomeRoute()).Msg("redirect to home")
}

func (n *cliNavigator) CurrentRouteConstant() bool {
	return false
}
