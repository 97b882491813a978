package credential

import "context"

// LocalOptions carries credentials already present in configuration.
type LocalOptions struct {
	Username string
	Password string
}

// Local returns configured values as-is.
type Local struct {
	creds Credentials
}

// NewLocal constructs a Local source.
func NewLocal(opts LocalOptions) *Local {
	return &Local{creds: Credentials{Username: opts.Username, Password: opts.Password}}
}

// Load returns the configured credentials.
func (l *Local) Load(ctx context.Context) (Credentials, error) {
	if err := ctx.Err(); err != nil {
		return Credentials{}, err
	}
	return l.creds, nil
}
