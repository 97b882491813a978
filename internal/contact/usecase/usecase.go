package usecase

import (
	"context"
	"time"

	"github.com/shandysiswandi/contactrelay/internal/contact/entity"
	"github.com/shandysiswandi/contactrelay/internal/pkg/config"
	"github.com/shandysiswandi/contactrelay/internal/pkg/idempotency"
	"github.com/shandysiswandi/contactrelay/internal/pkg/instrument"
	"github.com/shandysiswandi/contactrelay/internal/pkg/validator"
	"go.opentelemetry.io/otel/trace"
)

type repoMail interface {
	Send(ctx context.Context, sub entity.Submission, n entity.Notification) error
}

type Usecase struct {
	validator validator.Validator
	repoMail  repoMail
	idemp     idempotency.Idempotency
	ins       instrument.Instrumentation

	idempLock time.Duration
	idempTTL  time.Duration
}

type Dependency struct {
	Config     config.Config
	Validator  validator.Validator
	RepoMail   repoMail
	Instrument instrument.Instrumentation
	// Idempotency is optional; nil disables Idempotency-Key handling.
	Idempotency idempotency.Idempotency
}

func New(dep Dependency) *Usecase {
	ins := dep.Instrument
	if ins == nil {
		ins = instrument.NewNoop()
	}

	uc := &Usecase{
		validator: dep.Validator,
		repoMail:  dep.RepoMail,
		idemp:     dep.Idempotency,
		ins:       ins,
	}
	if dep.Config != nil {
		uc.idempLock = dep.Config.GetSecond("idempotency.lock_seconds")
		uc.idempTTL = dep.Config.GetSecond("idempotency.ttl_seconds")
	}

	return uc
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("contact.usecase").Start(ctx, name)
}
