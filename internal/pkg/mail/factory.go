package mail

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

const (
	// DriverSMTP selects the SMTP backend.
	DriverSMTP = "smtp"
	// DriverSES selects the Amazon SES v2 backend.
	DriverSES = "ses"
)

// ErrUnknownDriver indicates an unsupported mail driver.
var ErrUnknownDriver = errors.New("mail: unknown driver")

// FactoryOptions groups configuration for mail drivers.
type FactoryOptions struct {
	// SMTP configures the SMTP backend.
	SMTP SMTPConfig
	// SES configures the SES backend.
	SES SESConfig
}

// NewFromDriver constructs a Mail implementation by driver name.
func NewFromDriver(ctx context.Context, driver string, opts FactoryOptions) (Mail, error) {
	switch strings.ToLower(strings.TrimSpace(driver)) {
	case DriverSMTP:
		return NewSMTP(opts.SMTP)
	case DriverSES:
		return NewSES(ctx, opts.SES)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownDriver, driver)
	}
}
