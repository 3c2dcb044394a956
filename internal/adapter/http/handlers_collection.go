package adapthttp

import (
	"errors"
	"net/http"
	"strconv"

	"pokedex/internal/app"

	"github.com/gorilla/mux"
)

var errMissingName = errors.New("name is required")

func (s *Server) handleListCaught(w http.ResponseWriter, r *http.Request) {
	accountID, ok := accountFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, app.ErrTokenInvalid)
		return
	}

	items, err := s.collection.List(r.Context(), accountID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, errInternal)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"data": items})
}

func (s *Server) handleCatch(w http.ResponseWriter, r *http.Request) {
	accountID, ok := accountFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, app.ErrTokenInvalid)
		return
	}

	var body struct {
		Name   string `json:"name"`
		Type   string `json:"type"`
		Height int64  `json:"height"`
	}
	if err := parseJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if body.Name == "" {
		writeError(w, http.StatusBadRequest, errMissingName)
		return
	}

	caught, err := s.collection.Catch(r.Context(), accountID, body.Name, body.Type, body.Height)
	if errors.Is(err, app.ErrLookupFailed) {
		writeError(w, http.StatusNotFound, app.ErrPokemonNotFound)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, errInternal)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"message": "pokemon caught", "data": caught})
}

func (s *Server) handleRenameCatch(w http.ResponseWriter, r *http.Request) {
	accountID, ok := accountFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, app.ErrTokenInvalid)
		return
	}

	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	var body struct {
		Nickname string `json:"nickname"`
	}
	if err := parseJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	caught, err := s.collection.Rename(r.Context(), accountID, id, body.Nickname)
	if errors.Is(err, app.ErrCatchNotFound) {
		writeError(w, http.StatusNotFound, err)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, errInternal)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"message": "catch updated", "data": caught})
}

func (s *Server) handleReleaseCatch(w http.ResponseWriter, r *http.Request) {
	accountID, ok := accountFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, app.ErrTokenInvalid)
		return
	}

	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	err = s.collection.Release(r.Context(), accountID, id)
	if errors.Is(err, app.ErrCatchNotFound) {
		writeError(w, http.StatusNotFound, err)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, errInternal)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"message": "catch released"})
}
