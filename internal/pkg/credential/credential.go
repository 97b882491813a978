package credential

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

const (
	// ModeLocal reads credentials from configuration values.
	ModeLocal = "local"
	// ModeSSM reads credentials from AWS SSM Parameter Store.
	ModeSSM = "ssm"
)

var (
	// ErrUnknownMode indicates an unsupported deployment mode.
	ErrUnknownMode = errors.New("credential: unknown mode")
	// ErrParameterMissing indicates a remote parameter is absent or empty.
	ErrParameterMissing = errors.New("credential: parameter missing")
)

// Credentials authenticate the process to the mail provider.
//
// It is a value type; once loaded it is only ever copied.
type Credentials struct {
	Username string
	Password string
}

// String renders the credentials with the secret masked.
func (c Credentials) String() string {
	return fmt.Sprintf("%s:%s", c.Username, mask(c.Password))
}

// LogValue keeps the secret out of structured logs.
func (c Credentials) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("username", c.Username),
		slog.String("password", mask(c.Password)),
	)
}

func mask(s string) string {
	if s == "" {
		return ""
	}
	return "***"
}

// Source loads Credentials.
type Source interface {
	Load(ctx context.Context) (Credentials, error)
}

// Options groups configuration for every mode.
type Options struct {
	// Local configures ModeLocal.
	Local LocalOptions
	// SSM configures ModeSSM.
	SSM SSMOptions
}

// NewSource constructs the Source for mode.
func NewSource(ctx context.Context, mode string, opts Options) (Source, error) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case ModeLocal:
		return NewLocal(opts.Local), nil
	case ModeSSM:
		return NewSSM(ctx, opts.SSM)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownMode, mode)
	}
}

// Load resolves credentials for mode in one step.
func Load(ctx context.Context, mode string, opts Options) (Credentials, error) {
	src, err := NewSource(ctx, mode, opts)
	if err != nil {
		return Credentials{}, err
	}

	return src.Load(ctx)
}
