package adapthttp

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"pokedex/internal/app"

	"github.com/google/uuid"
)

type contextKey string

const (
	accountContextKey   contextKey = "accountID"
	requestIDContextKey contextKey = "requestID"
)

// accountFromContext returns the verified account id the auth middleware
// attached, or false when the request did not pass through it.
func accountFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(accountContextKey).(int64)
	return id, ok
}

var (
	errMissingAuthHeader = errors.New("missing authorization header")
	errBadAuthHeader     = errors.New("invalid authorization header format")
)

// requireAuth verifies the bearer token on every request under the
// protected prefix and attaches the subject account id to the request
// context. Handlers are never reachable without a verified subject.
func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			writeError(w, http.StatusUnauthorized, errMissingAuthHeader)
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			writeError(w, http.StatusUnauthorized, errBadAuthHeader)
			return
		}

		accountID, err := s.tokens.Verify(parts[1])
		if err != nil {
			if !errors.Is(err, app.ErrTokenExpired) {
				err = app.ErrTokenInvalid
			}
			writeError(w, http.StatusUnauthorized, err)
			return
		}

		ctx := context.WithValue(r.Context(), accountContextKey, accountID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requestID assigns each request a UUID, echoed back as X-Request-Id and
// carried in the context for logging.
func (s *Server) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-Id")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-Id", id)
		ctx := context.WithValue(r.Context(), requestIDContextKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// statusRecorder captures the response status for the request log.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rec *statusRecorder) WriteHeader(status int) {
	rec.status = status
	rec.ResponseWriter.WriteHeader(status)
}

// logRequests writes one structured log line per request.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		requestID, _ := r.Context().Value(requestIDContextKey).(string)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start),
			"requestId", requestID,
		)
	})
}
