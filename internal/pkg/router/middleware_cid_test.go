package router

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shandysiswandi/contactrelay/internal/pkg/instrument"
)

func TestMiddlewareCorrelationID(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		want    string
	}{
		{name: "generated when absent", want: "generated"},
		{name: "correlation header adopted", headers: map[string]string{HeaderCorrelationID: "abc-123"}, want: "abc-123"},
		{name: "request id adopted", headers: map[string]string{HeaderRequestID: "req-9"}, want: "req-9"},
		{name: "correlation header wins", headers: map[string]string{HeaderCorrelationID: "abc", HeaderRequestID: "req"}, want: "abc"},
		{name: "control bytes rejected", headers: map[string]string{HeaderCorrelationID: "abc\x1bdef"}, want: "generated"},
		{name: "inner space rejected", headers: map[string]string{HeaderCorrelationID: "a b"}, want: "generated"},
		{name: "long id truncated", headers: map[string]string{HeaderCorrelationID: strings.Repeat("x", 200)}, want: strings.Repeat("x", maxCorrelationIDLen)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var seen string
			h := middlewareCorrelationID(staticID("generated"))(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
				seen = instrument.GetCorrelationID(r.Context())
			}))

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			if seen != tt.want {
				t.Fatalf("context id = %q, want %q", seen, tt.want)
			}
			if got := rec.Header().Get(HeaderCorrelationID); got != tt.want {
				t.Fatalf("response header = %q, want %q", got, tt.want)
			}
		})
	}
}
