package credential

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/aws/aws-sdk-go-v2/service/ssm/types"
)

// SSMAPI is the subset of the SSM client used here.
type SSMAPI interface {
	GetParameter(ctx context.Context, in *ssm.GetParameterInput, optFns ...func(*ssm.Options)) (*ssm.GetParameterOutput, error)
}

// SSMOptions configures the Parameter Store source.
type SSMOptions struct {
	// Region is the AWS region of the parameter store.
	Region string
	// Endpoint overrides the SSM endpoint (localstack, VPC endpoints).
	Endpoint string
	// UsernameParam names the parameter holding the mail-account identifier.
	UsernameParam string
	// PasswordParam names the parameter holding the mail-account secret.
	PasswordParam string
	// Client replaces the SDK client; nil builds one from the default AWS chain.
	Client SSMAPI
}

// SSM reads credentials from AWS Systems Manager Parameter Store.
type SSM struct {
	client        SSMAPI
	usernameParam string
	passwordParam string
}

// NewSSM constructs an SSM source.
func NewSSM(ctx context.Context, opts SSMOptions) (*SSM, error) {
	if opts.UsernameParam == "" || opts.PasswordParam == "" {
		return nil, fmt.Errorf("%w: parameter names are required", ErrParameterMissing)
	}

	client := opts.Client
	if client == nil {
		cfgOpts := []func(*config.LoadOptions) error{}
		if opts.Region != "" {
			cfgOpts = append(cfgOpts, config.WithRegion(opts.Region))
		}
		cfg, err := config.LoadDefaultConfig(ctx, cfgOpts...)
		if err != nil {
			return nil, err
		}
		client = ssm.NewFromConfig(cfg, func(o *ssm.Options) {
			if opts.Endpoint != "" {
				o.BaseEndpoint = aws.String(opts.Endpoint)
			}
		})
	}

	return &SSM{
		client:        client,
		usernameParam: opts.UsernameParam,
		passwordParam: opts.PasswordParam,
	}, nil
}

// Load fetches both parameters with decryption. Either one missing is an error.
func (s *SSM) Load(ctx context.Context) (Credentials, error) {
	username, err := s.get(ctx, s.usernameParam)
	if err != nil {
		return Credentials{}, err
	}

	password, err := s.get(ctx, s.passwordParam)
	if err != nil {
		return Credentials{}, err
	}

	return Credentials{Username: username, Password: password}, nil
}

func (s *SSM) get(ctx context.Context, name string) (string, error) {
	out, err := s.client.GetParameter(ctx, &ssm.GetParameterInput{
		Name:           aws.String(name),
		WithDecryption: aws.Bool(true),
	})
	if err != nil {
		var notFound *types.ParameterNotFound
		if errors.As(err, &notFound) {
			return "", fmt.Errorf("%w: %s", ErrParameterMissing, name)
		}
		return "", fmt.Errorf("credential: get parameter %s: %w", name, err)
	}

	if out == nil || out.Parameter == nil || aws.ToString(out.Parameter.Value) == "" {
		return "", fmt.Errorf("%w: %s", ErrParameterMissing, name)
	}

	return aws.ToString(out.Parameter.Value), nil
}
