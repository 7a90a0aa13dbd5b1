package middleware

import (
	"net/http"

	"github.com/go-chi/cors"

	"github.com/ndewijer/pnl-dashboard/internal/config"
)

// NewCORS lets the configured origins read the JSON API and trigger a
// refresh. There is no authentication, so credentials are not allowed.
func NewCORS(cfg config.CORSConfig) func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		ExposedHeaders: []string{"X-Request-Id"},
		MaxAge:         300,
	})
}
