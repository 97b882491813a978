package router

import (
	"net/http"
	"strings"

	"github.com/shandysiswandi/contactrelay/internal/pkg/instrument"
	"github.com/shandysiswandi/contactrelay/internal/pkg/uid"
)

const (
	// HeaderCorrelationID carries the ID in both directions.
	HeaderCorrelationID = "X-Correlation-ID"
	// HeaderRequestID is adopted when a proxy (or the Lambda adapter) already assigned an ID.
	HeaderRequestID = "X-Request-ID"

	maxCorrelationIDLen = 128
)

var upstreamIDHeaders = []string{HeaderCorrelationID, HeaderRequestID}

// upstreamCorrelationID returns the first usable ID sent by the caller or a proxy.
func upstreamCorrelationID(h http.Header) string {
	for _, name := range upstreamIDHeaders {
		if cid := sanitizeCorrelationID(h.Get(name)); cid != "" {
			return cid
		}
	}
	return ""
}

// sanitizeCorrelationID accepts printable ASCII without spaces. Anything else
// is dropped so a caller cannot smuggle control bytes into logs or headers.
func sanitizeCorrelationID(v string) string {
	v = strings.TrimSpace(v)
	if len(v) > maxCorrelationIDLen {
		v = v[:maxCorrelationIDLen]
	}
	for i := 0; i < len(v); i++ {
		if v[i] <= ' ' || v[i] > '~' {
			return ""
		}
	}
	return v
}

func middlewareCorrelationID(gen uid.StringID) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cid := upstreamCorrelationID(r.Header)
			if cid == "" && gen != nil {
				cid = gen.Generate()
			}
			if cid == "" {
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set(HeaderCorrelationID, cid)
			next.ServeHTTP(w, r.WithContext(instrument.SetCorrelationID(r.Context(), cid)))
		})
	}
}
