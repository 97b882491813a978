package router

import (
	"net/http"

	"github.com/shandysiswandi/contactrelay/internal/pkg/config"
)

func middlewareMaintenance(cfg config.Config) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if cfg != nil && underMaintenance(cfg.GetArray("app.maintenance.endpoints"), matchedRoutePath(r)) {
				writeJSON(w, errorResponse{Error: "service is under maintenance"}, http.StatusServiceUnavailable)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// underMaintenance is evaluated per request so a hot-reloaded config takes effect.
func underMaintenance(endpoints []string, route string) bool {
	for _, endpoint := range endpoints {
		if endpoint == route || endpoint == "*" {
			return true
		}
	}
	return false
}
