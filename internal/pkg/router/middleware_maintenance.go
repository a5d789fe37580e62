package router

import (
	"net/http"
	"strings"

	"github.com/shandysiswandi/userbite/internal/pkg/config"
)

// middlewareMaintenance answers 503 for routes listed in app.maintenance.endpoints.
//
// An entry is a route pattern ("/api/v1/users/:id") or a method followed by a
// pattern ("DELETE /api/v1/users/:id"). The list is read per request so a
// config reload takes effect without a restart.
func middlewareMaintenance(cfg config.Config) Middleware {
	return func(next http.Handler) http.Handler {
		if cfg == nil {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if underMaintenance(cfg.GetArray("app.maintenance.endpoints"), r.Method, matchedRoutePath(r)) {
				writeJSON(w, errorResponse{Message: "Service is under maintenance"}, http.StatusServiceUnavailable)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func underMaintenance(endpoints []string, method, route string) bool {
	for _, entry := range endpoints {
		entryMethod, pattern, hasMethod := strings.Cut(strings.TrimSpace(entry), " ")
		if !hasMethod {
			pattern, entryMethod = entryMethod, ""
		}
		if strings.TrimSpace(pattern) != route || pattern == "" {
			continue
		}
		if entryMethod == "" || strings.EqualFold(entryMethod, method) {
			return true
		}
	}
	return false
}
