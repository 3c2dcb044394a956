package adapthttp

import (
	"errors"
	"net/http"
	"strconv"

	"pokedex/internal/app"
	"pokedex/internal/domain"

	"github.com/gorilla/mux"
)

var errMissingPokemonFields = errors.New("name and type are required")

func (s *Server) handleLookupPokemon(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	p, err := s.pokedex.Resolve(r.Context(), name)
	if errors.Is(err, app.ErrLookupFailed) {
		writeError(w, http.StatusNotFound, app.ErrPokemonNotFound)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, errInternal)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"data": p})
}

func (s *Server) handleAddPokemon(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name   string `json:"name"`
		Type   string `json:"type"`
		Height int64  `json:"height"`
	}
	if err := parseJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if body.Name == "" || body.Type == "" {
		writeError(w, http.StatusBadRequest, errMissingPokemonFields)
		return
	}

	p, err := s.pokedex.Add(r.Context(), body.Name, body.Type, body.Height)
	if errors.Is(err, app.ErrPokemonExists) {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, errInternal)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"message": "pokemon added", "data": p})
}

func (s *Server) handleUpdatePokemon(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	var body struct {
		Name   *string `json:"name"`
		Type   *string `json:"type"`
		Height *int64  `json:"height"`
	}
	if err := parseJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	p, err := s.pokedex.Update(r.Context(), id, domain.PokemonUpdate{
		Name:   body.Name,
		Type:   body.Type,
		Height: body.Height,
	})
	if errors.Is(err, app.ErrPokemonNotFound) {
		writeError(w, http.StatusNotFound, err)
		return
	}
	if errors.Is(err, domain.ErrConflict) {
		writeError(w, http.StatusBadRequest, app.ErrPokemonExists)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, errInternal)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"message": "pokemon updated", "data": p})
}

func (s *Server) handleDeletePokemon(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	p, err := s.pokedex.Remove(r.Context(), name)
	if errors.Is(err, app.ErrPokemonNotFound) {
		writeError(w, http.StatusNotFound, err)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, errInternal)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"message": "pokemon deleted", "data": p})
}
