package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/shandysiswandi/contactrelay/internal/contact/entity"
	"github.com/shandysiswandi/contactrelay/internal/pkg/goerror"
	"github.com/shandysiswandi/contactrelay/internal/pkg/idempotency"
)

type SendEmailInput struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Message string `json:"message" validate:"required"`

	// IdempotencyKey deduplicates client resubmits; empty means no deduplication.
	IdempotencyKey string `json:"-"`
}

type SendEmailOutput struct {
	// Replayed is true when an identical earlier request already sent the mail.
	Replayed bool
}

func (s *Usecase) SendEmail(ctx context.Context, in SendEmailInput) (*SendEmailOutput, error) {
	ctx, span := s.startSpan(ctx, "SendEmail")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		slog.WarnContext(ctx, "invalid contact submission", "error", err)
		return nil, goerror.NewInvalidInput(err)
	}

	sub := entity.Submission{
		Name:    in.Name,
		Email:   in.Email,
		Message: in.Message,
	}

	n, err := renderNotification(sub)
	if err != nil {
		slog.ErrorContext(ctx, "failed to render notification", "error", err)
		return nil, goerror.NewServer(err)
	}

	if in.IdempotencyKey == "" || s.idemp == nil {
		if err := s.dispatch(ctx, sub, n); err != nil {
			return nil, err
		}
		return &SendEmailOutput{}, nil
	}

	return s.dispatchOnce(ctx, in.IdempotencyKey, sub, n)
}

func (s *Usecase) deliver(ctx context.Context, sub entity.Submission, n entity.Notification) entity.Outcome {
	if err := s.repoMail.Send(ctx, sub, n); err != nil {
		return entity.Failed(err)
	}
	return entity.Delivered()
}

func (s *Usecase) dispatch(ctx context.Context, sub entity.Submission, n entity.Notification) error {
	out := s.deliver(ctx, sub, n)
	if !out.Delivered {
		slog.ErrorContext(ctx, "failed to send contact email", "error", out.Err)
		return goerror.NewServer(out.Err)
	}

	slog.InfoContext(ctx, "contact email sent")
	return nil
}

func (s *Usecase) dispatchOnce(ctx context.Context, key string, sub entity.Submission, n entity.Notification) (*SendEmailOutput, error) {
	var (
		attempted bool
		sendErr   error
	)
	err := s.idemp.Exec(ctx, "send-email:"+key, func(ctx context.Context) error {
		attempted = true
		sendErr = s.dispatch(ctx, sub, n)
		return sendErr
	}, idempotency.WithLockDuration(s.idempLock), idempotency.WithStateTTL(s.idempTTL))

	switch {
	case err == nil:
		return &SendEmailOutput{}, nil
	case errors.Is(err, idempotency.ErrAlreadyCompleted):
		slog.InfoContext(ctx, "duplicate contact submission replayed", "idempotency_key", key)
		return &SendEmailOutput{Replayed: true}, nil
	case errors.Is(err, idempotency.ErrAlreadyInProgress):
		return nil, goerror.NewBusiness("Request is already being processed", goerror.CodeConflict)
	case attempted && sendErr != nil:
		return nil, sendErr
	case attempted:
		slog.WarnContext(ctx, "contact email sent but idempotency state not recorded", "idempotency_key", key, "error", err)
		return &SendEmailOutput{}, nil
	default:
		slog.WarnContext(ctx, "idempotency store unavailable, sending without deduplication", "error", err)
		if err := s.dispatch(ctx, sub, n); err != nil {
			return nil, err
		}
		return &SendEmailOutput{}, nil
	}
}
