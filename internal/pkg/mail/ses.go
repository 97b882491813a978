package mail

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
)

// SESAPI is the subset of the SES v2 client used here.
type SESAPI interface {
	SendEmail(ctx context.Context, in *sesv2.SendEmailInput, optFns ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error)
}

// SESConfig configures the Amazon SES v2 implementation.
type SESConfig struct {
	// Region is the AWS region of the SES identity.
	Region string
	// Endpoint overrides the SES endpoint.
	Endpoint string
	// AccessKey is the static access key ID; empty uses the default AWS chain.
	AccessKey string
	// SecretKey is the static secret access key.
	SecretKey string
	// From is the default (verified) sender when Message.From is empty.
	From string
	// Client replaces the SDK client.
	Client SESAPI
}

// SES is a Mail implementation backed by Amazon SES v2 raw sends.
type SES struct {
	client      SESAPI
	defaultFrom string
	now         func() time.Time
}

// NewSES constructs an SES mail sender.
func NewSES(ctx context.Context, cfg SESConfig) (*SES, error) {
	client := cfg.Client
	if client == nil {
		cfgOpts := []func(*config.LoadOptions) error{}
		if cfg.Region != "" {
			cfgOpts = append(cfgOpts, config.WithRegion(cfg.Region))
		}
		if cfg.AccessKey != "" || cfg.SecretKey != "" {
			cfgOpts = append(cfgOpts, config.WithCredentialsProvider(
				credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
			))
		}
		awsCfg, err := config.LoadDefaultConfig(ctx, cfgOpts...)
		if err != nil {
			return nil, err
		}
		client = sesv2.NewFromConfig(awsCfg, func(o *sesv2.Options) {
			if cfg.Endpoint != "" {
				o.BaseEndpoint = aws.String(cfg.Endpoint)
			}
		})
	}

	return &SES{client: client, defaultFrom: cfg.From, now: time.Now}, nil
}

// Send delivers a message through SES. The MIME body is built locally so
// Reply-To and custom headers survive unchanged.
func (s *SES) Send(ctx context.Context, msg Message) error {
	if len(recipients(msg)) == 0 {
		return ErrNoRecipients
	}

	from := msg.From
	if from == "" {
		from = s.defaultFrom
	}
	if from == "" {
		return ErrNoSender
	}

	in := &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(from),
		Destination: &types.Destination{
			ToAddresses:  msg.To,
			CcAddresses:  msg.Cc,
			BccAddresses: msg.Bcc,
		},
		Content: &types.EmailContent{
			Raw: &types.RawMessage{Data: buildRaw(msg, from, s.now())},
		},
	}
	if msg.ReplyTo != "" {
		in.ReplyToAddresses = []string{msg.ReplyTo}
	}

	_, err := s.client.SendEmail(ctx, in)
	return err
}

// Close implements io.Closer for interface compatibility.
func (s *SES) Close() error {
	return nil
}
