package inbound

import (
	"github.com/shandysiswandi/contactrelay/internal/pkg/router"
)

func RegisterHTTPEndpoint(r *router.Router, uc uc) {
	end := &HTTPEndpoint{uc: uc}

	r.GET("/health", end.Health)
	r.POST("/api/send-email", end.SendEmail)
}
