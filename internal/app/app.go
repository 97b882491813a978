package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/redis/go-redis/v9"
	"github.com/shandysiswandi/contactrelay/internal/pkg/clock"
	"github.com/shandysiswandi/contactrelay/internal/pkg/config"
	"github.com/shandysiswandi/contactrelay/internal/pkg/credential"
	"github.com/shandysiswandi/contactrelay/internal/pkg/idempotency"
	"github.com/shandysiswandi/contactrelay/internal/pkg/instrument"
	"github.com/shandysiswandi/contactrelay/internal/pkg/mail"
	"github.com/shandysiswandi/contactrelay/internal/pkg/ratelimit"
	"github.com/shandysiswandi/contactrelay/internal/pkg/router"
	"github.com/shandysiswandi/contactrelay/internal/pkg/uid"
	"github.com/shandysiswandi/contactrelay/internal/pkg/validator"
)

type closer struct {
	name string
	fn   func(context.Context) error
}

// App wires dependencies and manages service lifecycle.
type App struct {
	ctx    context.Context
	cancel context.CancelFunc

	// configuration
	config config.Config
	ins    instrument.Instrumentation
	creds  credential.Credentials

	// libraries
	validator validator.Validator
	clock     clock.Clocker
	uuid      uid.StringID

	// resources
	cacheConn *redis.Client
	limiter   ratelimit.Limiter
	idemp     idempotency.Idempotency
	mail      mail.Mail

	// server
	router     *router.Router
	handler    http.Handler
	httpServer *http.Server

	// overrides
	ssmClient credential.SSMAPI
	sesClient mail.SESAPI

	closers []closer
}

// Option customizes App construction.
type Option func(*App)

// WithSSMClient replaces the Parameter Store client used in ssm mode.
func WithSSMClient(c credential.SSMAPI) Option {
	return func(a *App) { a.ssmClient = c }
}

// WithSESClient replaces the SES client used by the ses mail driver.
func WithSESClient(c mail.SESAPI) Option {
	return func(a *App) { a.sesClient = c }
}

// WithMail replaces the mail transport entirely.
func WithMail(m mail.Mail) Option {
	return func(a *App) { a.mail = m }
}

// New initializes the application. Any error is fatal for the process: in
// particular credentials are resolved here, before a listener is bound.
func New(cfg config.Config, opts ...Option) (*App, error) {
	ctx, cancel := context.WithCancel(context.Background())
	app := &App{
		ctx:    ctx,
		cancel: cancel,
		config: cfg,
	}
	for _, opt := range opts {
		opt(app)
	}

	app.addCloser("Config", func(context.Context) error { return cfg.Close() })

	steps := []struct {
		name string
		fn   func() error
	}{
		{"instrument", app.initInstrument},
		{"libraries", app.initLibraries},
		{"credentials", app.initCredentials},
		{"cache", app.initCache},
		{"rate limiter", app.initRateLimit},
		{"idempotency", app.initIdempotency},
		{"mail", app.initMail},
		{"http server", app.initHTTPServer},
		{"modules", app.initModules},
	}
	for _, step := range steps {
		if err := step.fn(); err != nil {
			app.Stop(context.Background())
			return nil, fmt.Errorf("init %s: %w", step.name, err)
		}
	}

	slog.Info("application initialized",
		"credential_mode", cfg.GetString("credential.mode"),
		"mail_driver", cfg.GetString("mail.driver"),
		"credentials", app.creds,
	)

	return app, nil
}

// Handler returns the fully wrapped HTTP handler (CORS, router, middleware).
func (a *App) Handler() http.Handler {
	return a.handler
}

// addCloser registers fn to run on Stop; resources close in reverse order of creation.
func (a *App) addCloser(name string, fn func(context.Context) error) {
	a.closers = append([]closer{{name: name, fn: fn}}, a.closers...)
}
