package inbound

import (
	"context"

	"github.com/shandysiswandi/contactrelay/internal/contact/usecase"
)

type uc interface {
	SendEmail(ctx context.Context, in usecase.SendEmailInput) (*usecase.SendEmailOutput, error)
}
