package main

import (
	"errors"
	"log/slog"
	"net/http"
	"os"

	adapthttp "pokedex/internal/adapter/http"
	"pokedex/internal/adapter/pokeapi"
	"pokedex/internal/adapter/postgres"
	"pokedex/internal/app"
	"pokedex/internal/config"
)

func main() {
	cfg := config.Load()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	if cfg.DatabaseDSN == "" {
		logger.Error("DATABASE_URL is required")
		os.Exit(1)
	}

	db, err := postgres.Open(cfg.DatabaseDSN)
	if err != nil {
		logger.Error("db open", "err", err)
		os.Exit(1)
	}
	defer func() { _ = db.Close() }()

	tokens := app.NewTokenIssuer([]byte(cfg.TokenSecret), cfg.TokenTTL)
	authSvc := app.NewAuthService(db, tokens)
	pokedexSvc := app.NewPokedexService(db, pokeapi.New(cfg.PokeAPIBaseURL))
	collectionSvc := app.NewCollectionService(db, pokedexSvc)

	h := adapthttp.New(authSvc, pokedexSvc, collectionSvc, tokens, logger,
		cfg.RateLimitRequests, cfg.RateLimitWindow).Handler()

	logger.Info("listening", "addr", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, h); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server", "err", err)
		os.Exit(1)
	}
}
