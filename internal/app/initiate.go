package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/cors"
	"github.com/shandysiswandi/contactrelay/internal/contact"
	"github.com/shandysiswandi/contactrelay/internal/pkg/clock"
	"github.com/shandysiswandi/contactrelay/internal/pkg/credential"
	"github.com/shandysiswandi/contactrelay/internal/pkg/idempotency"
	"github.com/shandysiswandi/contactrelay/internal/pkg/instrument"
	"github.com/shandysiswandi/contactrelay/internal/pkg/mail"
	"github.com/shandysiswandi/contactrelay/internal/pkg/ratelimit"
	"github.com/shandysiswandi/contactrelay/internal/pkg/router"
	"github.com/shandysiswandi/contactrelay/internal/pkg/uid"
	"github.com/shandysiswandi/contactrelay/internal/pkg/validator"
)

var (
	errRedisRequired = errors.New("redis.url is required")
	errCORSNoOrigins = errors.New("app.server.cors must list at least one origin")
)

func (a *App) initInstrument() error {
	ins, err := instrument.New(a.ctx, &instrument.Config{
		Enabled:          a.config.GetBool("instrument.enabled"),
		ServiceName:      a.config.GetString("instrument.service_name"),
		ServiceVersion:   a.config.GetString("instrument.service_version"),
		Environment:      a.config.GetString("instrument.env"),
		OTLPEndpoint:     a.config.GetString("instrument.otlp_endpoint"),
		OTLPSecure:       a.config.GetBool("instrument.otlp_secure"),
		TraceSampleRatio: a.config.GetFloat64("instrument.trace_sample_ratio"),
		MetricsInterval:  a.config.GetSecond("instrument.metric_interval_seconds"),
		MaskFields:       a.config.GetArray("instrument.log_mask_fields"),
	})
	if err != nil {
		return err
	}

	a.ins = ins
	a.addCloser("Instrument", ins.Shutdown)
	return nil
}

func (a *App) initLibraries() error {
	a.clock = clock.New()
	a.uuid = uid.NewUUID()

	v, err := validator.NewV10Validator()
	if err != nil {
		return err
	}
	a.validator = v

	return nil
}

func (a *App) initCredentials() error {
	creds, err := credential.Load(a.ctx, a.config.GetString("credential.mode"), credential.Options{
		Local: credential.LocalOptions{
			Username: a.config.GetString("credential.local.username"),
			Password: a.config.GetString("credential.local.password"),
		},
		SSM: credential.SSMOptions{
			Region:        a.config.GetString("credential.ssm.region"),
			Endpoint:      a.config.GetString("credential.ssm.endpoint"),
			UsernameParam: a.config.GetString("credential.ssm.username_param"),
			PasswordParam: a.config.GetString("credential.ssm.password_param"),
			Client:        a.ssmClient,
		},
	})
	if err != nil {
		return err
	}

	a.creds = creds
	return nil
}

func (a *App) redisNeeded() bool {
	return (a.config.GetBool("app.ratelimit.enabled") && a.config.GetString("app.ratelimit.driver") == ratelimit.DriverRedis) ||
		a.config.GetBool("idempotency.enabled")
}

func (a *App) initCache() error {
	url := a.config.GetString("redis.url")
	if url == "" || !a.redisNeeded() {
		return nil
	}

	opt, err := redis.ParseURL(url)
	if err != nil {
		return fmt.Errorf("parse redis url: %w", err)
	}

	rdb := redis.NewClient(opt)
	a.addCloser("Redis", func(context.Context) error { return rdb.Close() })

	pingCtx, cancel := context.WithTimeout(a.ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		return fmt.Errorf("ping redis: %w", err)
	}

	a.cacheConn = rdb
	return nil
}

func (a *App) initRateLimit() error {
	if !a.config.GetBool("app.ratelimit.enabled") {
		slog.Warn("rate limiting disabled")
		return nil
	}

	driver := a.config.GetString("app.ratelimit.driver")
	limiter, err := ratelimit.NewFromDriver(driver, ratelimit.Options{
		Window: a.config.GetSecond("app.ratelimit.window_seconds"),
		Max:    a.config.GetInt("app.ratelimit.max"),
		Clock:  a.clock,
		Redis:  a.cacheConn,
	})
	if errors.Is(err, ratelimit.ErrRedisRequired) {
		return fmt.Errorf("rate limit driver %q: %w", driver, errRedisRequired)
	}
	if err != nil {
		return err
	}

	a.limiter = limiter
	return nil
}

func (a *App) initIdempotency() error {
	if !a.config.GetBool("idempotency.enabled") {
		return nil
	}
	if a.cacheConn == nil {
		slog.Warn("idempotency enabled without redis.url, Idempotency-Key headers are ignored")
		return nil
	}

	a.idemp = idempotency.New(a.cacheConn)
	return nil
}

func (a *App) initMail() error {
	if a.mail == nil {
		m, err := mail.NewFromDriver(a.ctx, a.config.GetString("mail.driver"), mail.FactoryOptions{
			SMTP: mail.SMTPConfig{
				Host:     a.config.GetString("mail.host"),
				Port:     a.config.GetInt("mail.port"),
				Username: a.creds.Username,
				Password: a.creds.Password,
				From:     a.config.GetString("mail.from"),
			},
			SES: mail.SESConfig{
				Region:    a.config.GetString("mail.ses.region"),
				Endpoint:  a.config.GetString("mail.ses.endpoint"),
				AccessKey: a.creds.Username,
				SecretKey: a.creds.Password,
				From:      a.config.GetString("mail.from"),
				Client:    a.sesClient,
			},
		})
		if err != nil {
			return err
		}
		a.mail = m
	}

	m := a.mail
	a.addCloser("Mail", func(context.Context) error { return m.Close() })
	return nil
}

func (a *App) initHTTPServer() error {
	a.router = router.NewRouter(router.Config{
		Config:     a.config,
		UUID:       a.uuid,
		Instrument: a.ins,
		Limiter:    a.limiter,
	})

	// rs/cors allows every origin when the list is empty; use "*" to opt in explicitly.
	origins := a.config.GetArray("app.server.cors")
	if len(origins) == 0 {
		return errCORSNoOrigins
	}

	a.handler = cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodOptions,
		},
		AllowedHeaders: []string{"Content-Type", "Idempotency-Key", router.HeaderCorrelationID},
		ExposedHeaders: []string{
			router.HeaderCorrelationID,
			"Retry-After",
			"X-RateLimit-Limit",
			"X-RateLimit-Remaining",
			"X-RateLimit-Reset",
		},
		OptionsSuccessStatus: http.StatusOK,
	}).Handler(a.router)

	addr := net.JoinHostPort(
		a.config.GetString("app.server.http.address"),
		strconv.Itoa(a.config.GetInt("app.server.http.port")),
	)
	a.httpServer = &http.Server{
		Addr:              addr,
		Handler:           a.handler,
		ReadTimeout:       a.config.GetSecond("app.server.http.read_timeout_seconds"),
		ReadHeaderTimeout: a.config.GetSecond("app.server.http.read_header_timeout_seconds"),
		WriteTimeout:      a.config.GetSecond("app.server.http.write_timeout_seconds"),
		IdleTimeout:       a.config.GetSecond("app.server.http.idle_timeout_seconds"),
	}

	return nil
}

func (a *App) initModules() error {
	return contact.New(contact.Dependency{
		Config:      a.config,
		Instrument:  a.ins,
		Validator:   a.validator,
		Router:      a.router,
		Mail:        a.mail,
		Idempotency: a.idemp,
	})
}
