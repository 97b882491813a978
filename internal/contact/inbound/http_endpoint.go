package inbound

import (
	"github.com/shandysiswandi/contactrelay/internal/contact/usecase"
	"github.com/shandysiswandi/contactrelay/internal/pkg/router"
)

// HeaderIdempotencyKey lets a client safely resubmit the same form.
const HeaderIdempotencyKey = "Idempotency-Key"

type HTTPEndpoint struct {
	uc uc
}

// SendEmail relays a contact-form submission to the site owner's inbox.
// Accepts application/json or application/x-www-form-urlencoded.
func (h *HTTPEndpoint) SendEmail(r *router.Request) (any, error) {
	var req SendEmailRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	if _, err := h.uc.SendEmail(r.Context(), usecase.SendEmailInput{
		Name:           req.Name,
		Email:          req.Email,
		Message:        req.Message,
		IdempotencyKey: r.GetHeader(HeaderIdempotencyKey),
	}); err != nil {
		return nil, err
	}

	return SendEmailResponse{Success: true}, nil
}

func (h *HTTPEndpoint) Health(*router.Request) (any, error) {
	return HealthResponse{Status: "ok"}, nil
}
