package contact

import (
	"errors"

	"github.com/shandysiswandi/contactrelay/internal/contact/inbound"
	"github.com/shandysiswandi/contactrelay/internal/contact/outbound/email"
	"github.com/shandysiswandi/contactrelay/internal/contact/usecase"
	"github.com/shandysiswandi/contactrelay/internal/pkg/config"
	"github.com/shandysiswandi/contactrelay/internal/pkg/idempotency"
	"github.com/shandysiswandi/contactrelay/internal/pkg/instrument"
	"github.com/shandysiswandi/contactrelay/internal/pkg/mail"
	"github.com/shandysiswandi/contactrelay/internal/pkg/router"
	"github.com/shandysiswandi/contactrelay/internal/pkg/validator"
)

var ErrDestinationRequired = errors.New("contact: mail.destination is required")

type Dependency struct {
	Config      config.Config
	Instrument  instrument.Instrumentation
	Validator   validator.Validator
	Router      *router.Router
	Mail        mail.Mail
	Idempotency idempotency.Idempotency
}

func New(dep Dependency) error {
	destination := dep.Config.GetString("mail.destination")
	if destination == "" {
		return ErrDestinationRequired
	}

	repoMail := email.New(dep.Mail, dep.Instrument, email.Config{
		Destination: destination,
		From:        dep.Config.GetString("mail.from"),
	})

	uc := usecase.New(usecase.Dependency{
		Config:      dep.Config,
		Validator:   dep.Validator,
		RepoMail:    repoMail,
		Instrument:  dep.Instrument,
		Idempotency: dep.Idempotency,
	})

	inbound.RegisterHTTPEndpoint(dep.Router, uc)

	return nil
}
