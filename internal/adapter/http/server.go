// Package adapthttp implements the HTTP adapter for the application.
package adapthttp

import (
	"log/slog"
	"net/http"
	"time"

	"pokedex/internal/app"

	"github.com/gorilla/mux"
)

// TokenVerifier validates a bearer token and returns the subject account id.
type TokenVerifier interface {
	Verify(token string) (int64, error)
}

// Server is the driving HTTP adapter that routes requests to application
// services.
type Server struct {
	auth       *app.AuthService
	pokedex    *app.PokedexService
	collection *app.CollectionService
	tokens     TokenVerifier
	logger     *slog.Logger
	limiter    *rateLimiter
}

// New creates a Server wired to the given application services. requests
// and window bound the per-client request rate at the boundary.
func New(auth *app.AuthService, pokedex *app.PokedexService, collection *app.CollectionService, tokens TokenVerifier, logger *slog.Logger, requests int, window time.Duration) *Server {
	return &Server{
		auth:       auth,
		pokedex:    pokedex,
		collection: collection,
		tokens:     tokens,
		logger:     logger,
		limiter:    newRateLimiter(requests, window),
	}
}

// Handler returns the root http.Handler for the application. Everything
// under /protected passes through the auth gate before any handler runs.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()
	r.Use(s.requestID, s.logRequests, s.limiter.middleware)

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	}).Methods(http.MethodGet)

	r.HandleFunc("/signup", s.handleSignup).Methods(http.MethodPost)
	r.HandleFunc("/signin", s.handleSignin).Methods(http.MethodPost)

	r.HandleFunc("/pokemon", s.handleAddPokemon).Methods(http.MethodPost)
	r.HandleFunc("/pokemon/{name}", s.handleLookupPokemon).Methods(http.MethodGet)
	r.HandleFunc("/pokemon/{id:[0-9]+}", s.handleUpdatePokemon).Methods(http.MethodPatch)
	r.HandleFunc("/pokemon/{name}", s.handleDeletePokemon).Methods(http.MethodDelete)

	protected := r.PathPrefix("/protected").Subrouter()
	protected.Use(s.requireAuth)
	protected.HandleFunc("/caught", s.handleListCaught).Methods(http.MethodGet)
	protected.HandleFunc("/catch", s.handleCatch).Methods(http.MethodPost)
	protected.HandleFunc("/update/{id:[0-9]+}", s.handleRenameCatch).Methods(http.MethodPatch)
	protected.HandleFunc("/delete/{id:[0-9]+}", s.handleReleaseCatch).Methods(http.MethodDelete)

	return r
}
