package httpapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"relay/internal/http/handlers"
	"relay/internal/middleware"
)

// NewRouter assembles the HTTP surface: two POST image operations, a health
// probe, and the shared middleware chain.
func NewRouter(app *handlers.App, lookup middleware.CountryLookup) http.Handler {
	r := chi.NewRouter()

	r.Use(
		chimiddleware.RealIP,
		chimiddleware.Recoverer,
		middleware.RequestID,
		middleware.Logger(app.Logger, lookup),
		middleware.CORS(splitOrigins(app.Config.AllowedOrigins)),
		middleware.RateLimit(app.Config.RateLimitPerMin, time.Minute),
	)

	r.NotFound(app.NotFound)
	r.MethodNotAllowed(app.MethodNotAllowed)

	r.Get("/v1/healthz", app.Health)
	r.Post("/v1/images/generate", app.ImagesGenerate)
	r.Post("/v1/images/enhance", app.ImagesEnhance)

	return r
}

func splitOrigins(raw string) []string {
	var origins []string
	for _, part := range strings.Split(raw, ",") {
		if origin := strings.TrimSpace(part); origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}
