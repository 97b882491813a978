package email

import (
	"context"
	"maps"

	"github.com/shandysiswandi/contactrelay/internal/contact/entity"
	"github.com/shandysiswandi/contactrelay/internal/pkg/instrument"
	"github.com/shandysiswandi/contactrelay/internal/pkg/mail"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// priorityHeaders mark the notification as urgent in common mail clients.
var priorityHeaders = map[string]string{
	"Priority":          "high",
	"X-Priority":        "1",
	"X-MSMail-Priority": "High",
	"Importance":        "High",
}

type Config struct {
	// Destination is the single inbox every submission is relayed to.
	Destination string
	// From is the sender address; empty lets the transport use its account.
	From string
}

type Mail struct {
	client mail.Mail
	ins    instrument.Instrumentation
	cfg    Config
}

func New(client mail.Mail, ins instrument.Instrumentation, cfg Config) *Mail {
	return &Mail{client: client, ins: ins, cfg: cfg}
}

func (m *Mail) Send(ctx context.Context, sub entity.Submission, n entity.Notification) error {
	ctx, span := m.ins.Tracer("contact.outbound.email").Start(ctx, "Send")
	defer span.End()

	span.SetAttributes(attribute.Int("mail.body_bytes", len(n.HTMLBody)))

	err := m.client.Send(ctx, mail.Message{
		From:     m.cfg.From,
		ReplyTo:  sub.Email,
		To:       []string{m.cfg.Destination},
		Subject:  n.Subject,
		HTMLBody: n.HTMLBody,
		Headers:  maps.Clone(priorityHeaders),
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	return nil
}
