// Package pokeapi implements the external creature-catalog port against a
// PokeAPI-compatible HTTP service.
package pokeapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"pokedex/internal/domain"
)

// DefaultBaseURL is the public PokeAPI endpoint.
const DefaultBaseURL = "https://pokeapi.co/api/v2"

// Client fetches catalog data over HTTP.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a Client against the given base URL. An empty baseURL uses
// the public PokeAPI.
func New(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

var _ domain.PokemonFetcher = (*Client)(nil)

type pokemonResponse struct {
	Name   string `json:"name"`
	Height int64  `json:"height"`
	Types  []struct {
		Type struct {
			Name string `json:"name"`
		} `json:"type"`
	} `json:"types"`
}

// Fetch resolves a creature name against the external catalog. The first
// listed type is taken as the type classification.
func (c *Client) Fetch(ctx context.Context, name string) (*domain.Pokemon, error) {
	u := c.baseURL + "/pokemon/" + url.PathEscape(name)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("pokeapi: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode == http.StatusNotFound {
		return nil, domain.ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("pokeapi: unexpected status %d", resp.StatusCode)
	}

	var body pokemonResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("pokeapi: decode: %w", err)
	}

	typ := ""
	if len(body.Types) > 0 {
		typ = body.Types[0].Type.Name
	}
	return &domain.Pokemon{Name: body.Name, Type: typ, Height: body.Height}, nil
}
