// Route registration and go-chi router setup.
package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matiasleandrokruk/speechgate/internal/api/handlers"
	apmiddleware "github.com/matiasleandrokruk/speechgate/internal/api/middleware"
)

// NotFoundBody is the fixed body for unmatched routes.
const NotFoundBody = "Not Found."

// Dependencies are the collaborators the router hands to its handlers.
type Dependencies struct {
	Speeches handlers.SpeechService
	Logger   *slog.Logger
}

// NewRouter creates the chi router with the speech routes.
// It is built once at startup and shared by all requests.
//
//	POST /text       generate and store a speech
//	GET  /text/{id}  fetch a stored speech
//	*                404 "Not Found."
func NewRouter(deps Dependencies) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware (runs on all routes)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(apmiddleware.RequestLogger(deps.Logger))
	r.Use(middleware.Recoverer)

	// Unknown paths and known paths with the wrong method are both "not found".
	r.NotFound(notFound)
	r.MethodNotAllowed(notFound)

	speechHandler := handlers.NewSpeechHandler(deps.Speeches)
	r.Route("/text", func(r chi.Router) {
		r.Post("/", speechHandler.Generate) // POST /text
		r.Get("/", speechHandler.Get)       // GET /text (no id → 400)
		r.Get("/{id}", speechHandler.Get)   // GET /text/{id}
	})

	return r
}

func notFound(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusNotFound)
	w.Write([]byte(NotFoundBody)) //nolint:errcheck
}
