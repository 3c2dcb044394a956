package adapthttp

import (
	"errors"
	"net/http"

	"pokedex/internal/app"
)

var (
	errInternal     = errors.New("internal error")
	errMissingCreds = errors.New("email and password are required")
)

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := parseJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if body.Email == "" || body.Password == "" {
		writeError(w, http.StatusBadRequest, errMissingCreds)
		return
	}

	_, err := s.auth.Register(r.Context(), body.Email, body.Password)
	if errors.Is(err, app.ErrEmailTaken) {
		// Documented reference behavior: a duplicate email is reported as a
		// normal message, not an error status.
		writeJSON(w, http.StatusOK, map[string]any{"message": "email already registered"})
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, errInternal)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"message": "account created"})
}

func (s *Server) handleSignin(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := parseJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	token, err := s.auth.Login(r.Context(), body.Email, body.Password)
	if errors.Is(err, app.ErrAccountNotFound) {
		writeError(w, http.StatusNotFound, err)
		return
	}
	if errors.Is(err, app.ErrInvalidCredentials) {
		writeError(w, http.StatusUnauthorized, err)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, errInternal)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"message": "signed in", "token": token})
}
