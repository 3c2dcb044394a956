package adapthttp_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	adapthttp "pokedex/internal/adapter/http"
	"pokedex/internal/adapter/memory"
	"pokedex/internal/app"
	"pokedex/internal/domain"
)

// ---------------------------------------------------------------------------
// Stub external catalog
// ---------------------------------------------------------------------------

type stubFetcher struct {
	mu    sync.Mutex
	calls int
	known map[string]domain.Pokemon
}

func newStubFetcher() *stubFetcher {
	return &stubFetcher{
		known: map[string]domain.Pokemon{
			"pikachu": {Name: "pikachu", Type: "electric", Height: 4},
			"eevee":   {Name: "eevee", Type: "normal", Height: 3},
		},
	}
}

func (f *stubFetcher) Fetch(ctx context.Context, name string) (*domain.Pokemon, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	p, ok := f.known[name]
	if !ok {
		return nil, domain.ErrNotFound
	}
	ret := p
	return &ret, nil
}

func (f *stubFetcher) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

// ---------------------------------------------------------------------------
// Harness
// ---------------------------------------------------------------------------

const testSecret = "test-secret"

func newTestHandler(t *testing.T) (http.Handler, *stubFetcher) {
	t.Helper()

	db := memory.New()
	issuer := app.NewTokenIssuer([]byte(testSecret), time.Hour)
	fetcher := newStubFetcher()

	authSvc := app.NewAuthService(db, issuer)
	pokedexSvc := app.NewPokedexService(db, fetcher)
	collectionSvc := app.NewCollectionService(db, pokedexSvc)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	srv := adapthttp.New(authSvc, pokedexSvc, collectionSvc, issuer, logger, 1000, time.Minute)
	return srv.Handler(), fetcher
}

func doJSON(t *testing.T, h http.Handler, method, path, token string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	var resp map[string]any
	if w.Body.Len() > 0 {
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode response %q: %v", w.Body.String(), err)
		}
	}
	return w, resp
}

func register(t *testing.T, h http.Handler, email, password string) string {
	t.Helper()

	w, _ := doJSON(t, h, http.MethodPost, "/signup", "", map[string]string{"email": email, "password": password})
	if w.Code != http.StatusOK {
		t.Fatalf("signup %s: status %d", email, w.Code)
	}
	w, resp := doJSON(t, h, http.MethodPost, "/signin", "", map[string]string{"email": email, "password": password})
	if w.Code != http.StatusOK {
		t.Fatalf("signin %s: status %d", email, w.Code)
	}
	token, _ := resp["token"].(string)
	if token == "" {
		t.Fatalf("signin %s: no token in %v", email, resp)
	}
	return token
}

// ---------------------------------------------------------------------------
// Auth endpoints
// ---------------------------------------------------------------------------

func TestSignup_DuplicateEmailReportsMessage(t *testing.T) {
	h, _ := newTestHandler(t)

	w, resp := doJSON(t, h, http.MethodPost, "/signup", "", map[string]string{"email": "a@x.com", "password": "pw1"})
	if w.Code != http.StatusOK || resp["message"] != "account created" {
		t.Fatalf("first signup: %d %v", w.Code, resp)
	}

	// Duplicate signup is reported with a 200 and a message, per the
	// documented interface, and must not create a second account.
	w, resp = doJSON(t, h, http.MethodPost, "/signup", "", map[string]string{"email": "a@x.com", "password": "pw2"})
	if w.Code != http.StatusOK || resp["message"] != "email already registered" {
		t.Fatalf("duplicate signup: %d %v", w.Code, resp)
	}

	// The original password still signs in; the duplicate's does not.
	w, _ = doJSON(t, h, http.MethodPost, "/signin", "", map[string]string{"email": "a@x.com", "password": "pw1"})
	if w.Code != http.StatusOK {
		t.Errorf("original credentials rejected: %d", w.Code)
	}
	w, _ = doJSON(t, h, http.MethodPost, "/signin", "", map[string]string{"email": "a@x.com", "password": "pw2"})
	if w.Code != http.StatusUnauthorized {
		t.Errorf("duplicate's credentials accepted: %d", w.Code)
	}
}

func TestSignin_Failures(t *testing.T) {
	h, _ := newTestHandler(t)
	_ = register(t, h, "a@x.com", "pw1")

	w, _ := doJSON(t, h, http.MethodPost, "/signin", "", map[string]string{"email": "nobody@x.com", "password": "pw"})
	if w.Code != http.StatusNotFound {
		t.Errorf("unknown email: expected 404, got %d", w.Code)
	}

	w, _ = doJSON(t, h, http.MethodPost, "/signin", "", map[string]string{"email": "a@x.com", "password": "wrong"})
	if w.Code != http.StatusUnauthorized {
		t.Errorf("bad password: expected 401, got %d", w.Code)
	}
}

// ---------------------------------------------------------------------------
// Access gate
// ---------------------------------------------------------------------------

func TestProtected_RejectsWithoutValidToken(t *testing.T) {
	h, _ := newTestHandler(t)

	cases := []struct {
		name  string
		token string
		raw   string
	}{
		{name: "missing header"},
		{name: "wrong scheme", raw: "Basic abc"},
		{name: "garbage token", token: "not.a.jwt"},
	}

	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodGet, "/protected/caught", nil)
		if tc.raw != "" {
			req.Header.Set("Authorization", tc.raw)
		} else if tc.token != "" {
			req.Header.Set("Authorization", "Bearer "+tc.token)
		}
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)
		if w.Code != http.StatusUnauthorized {
			t.Errorf("%s: expected 401, got %d", tc.name, w.Code)
		}
	}
}

func TestProtected_RejectsExpiredToken(t *testing.T) {
	h, _ := newTestHandler(t)
	_ = register(t, h, "a@x.com", "pw1")

	// Same secret, already expired: the signature is valid but the gate
	// must still reject.
	expired, err := app.NewTokenIssuer([]byte(testSecret), -time.Minute).Issue(1)
	if err != nil {
		t.Fatalf("issue expired token: %v", err)
	}

	w, resp := doJSON(t, h, http.MethodGet, "/protected/caught", expired, nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
	if resp["error"] != app.ErrTokenExpired.Error() {
		t.Errorf("expected expired-token error, got %v", resp["error"])
	}
}

// ---------------------------------------------------------------------------
// Collection flow
// ---------------------------------------------------------------------------

func TestCollection_EndToEnd(t *testing.T) {
	h, _ := newTestHandler(t)
	token := register(t, h, "a@x.com", "pw1")

	// Catch pikachu.
	w, resp := doJSON(t, h, http.MethodPost, "/protected/catch", token, map[string]any{"name": "pikachu"})
	if w.Code != http.StatusOK {
		t.Fatalf("catch: %d %v", w.Code, resp)
	}

	// List: one record, name pikachu, no nickname.
	w, resp = doJSON(t, h, http.MethodGet, "/protected/caught", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list: %d", w.Code)
	}
	items, _ := resp["data"].([]any)
	if len(items) != 1 {
		t.Fatalf("expected 1 record, got %v", resp["data"])
	}
	record := items[0].(map[string]any)
	if record["name"] != "pikachu" {
		t.Errorf("name: %v", record["name"])
	}
	if _, hasNickname := record["nickname"]; hasNickname {
		t.Errorf("expected no nickname, got %v", record["nickname"])
	}
	id := int64(record["id"].(float64))

	// Rename to Sparky.
	w, resp = doJSON(t, h, http.MethodPatch, fmt.Sprintf("/protected/update/%d", id), token, map[string]string{"nickname": "Sparky"})
	if w.Code != http.StatusOK {
		t.Fatalf("rename: %d %v", w.Code, resp)
	}

	w, resp = doJSON(t, h, http.MethodGet, "/protected/caught", token, nil)
	items, _ = resp["data"].([]any)
	if len(items) != 1 || items[0].(map[string]any)["nickname"] != "Sparky" {
		t.Fatalf("expected nickname Sparky, got %v", resp["data"])
	}

	// Release.
	w, _ = doJSON(t, h, http.MethodDelete, fmt.Sprintf("/protected/delete/%d", id), token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("release: %d", w.Code)
	}

	w, resp = doJSON(t, h, http.MethodGet, "/protected/caught", token, nil)
	items, _ = resp["data"].([]any)
	if len(items) != 0 {
		t.Fatalf("expected empty collection, got %v", resp["data"])
	}
}

func TestCollection_OwnershipIsolation(t *testing.T) {
	h, _ := newTestHandler(t)
	aliceToken := register(t, h, "alice@x.com", "pw1")
	bobToken := register(t, h, "bob@x.com", "pw2")

	w, resp := doJSON(t, h, http.MethodPost, "/protected/catch", aliceToken, map[string]any{"name": "pikachu"})
	if w.Code != http.StatusOK {
		t.Fatalf("catch: %d", w.Code)
	}
	data := resp["data"].(map[string]any)
	id := int64(data["id"].(float64))

	// Bob sees an empty collection.
	w, resp = doJSON(t, h, http.MethodGet, "/protected/caught", bobToken, nil)
	if items, _ := resp["data"].([]any); len(items) != 0 {
		t.Fatalf("bob can see alice's catches: %v", resp["data"])
	}

	// Bob's rename and release on alice's record look exactly like a
	// nonexistent id.
	wOwned, respOwned := doJSON(t, h, http.MethodPatch, fmt.Sprintf("/protected/update/%d", id), bobToken, map[string]string{"nickname": "Mine"})
	wMissing, respMissing := doJSON(t, h, http.MethodPatch, "/protected/update/424242", bobToken, map[string]string{"nickname": "Mine"})
	if wOwned.Code != http.StatusNotFound || wMissing.Code != http.StatusNotFound {
		t.Fatalf("expected 404/404, got %d/%d", wOwned.Code, wMissing.Code)
	}
	if respOwned["error"] != respMissing["error"] {
		t.Errorf("responses leak existence: %v vs %v", respOwned["error"], respMissing["error"])
	}

	if w, _ = doJSON(t, h, http.MethodDelete, fmt.Sprintf("/protected/delete/%d", id), bobToken, nil); w.Code != http.StatusNotFound {
		t.Fatalf("bob's release: expected 404, got %d", w.Code)
	}

	// Alice's record survived, unrenamed.
	_, resp = doJSON(t, h, http.MethodGet, "/protected/caught", aliceToken, nil)
	items, _ := resp["data"].([]any)
	if len(items) != 1 {
		t.Fatalf("alice's record is gone: %v", resp["data"])
	}
	if _, hasNickname := items[0].(map[string]any)["nickname"]; hasNickname {
		t.Errorf("alice's record was renamed by bob")
	}
}

func TestCollection_CatchReusesCatalogEntry(t *testing.T) {
	h, fetcher := newTestHandler(t)
	token := register(t, h, "a@x.com", "pw1")

	_, resp1 := doJSON(t, h, http.MethodPost, "/protected/catch", token, map[string]any{"name": "pikachu"})
	_, resp2 := doJSON(t, h, http.MethodPost, "/protected/catch", token, map[string]any{"name": "pikachu"})

	if fetcher.callCount() != 1 {
		t.Errorf("expected one external fetch, got %d", fetcher.callCount())
	}

	p1 := resp1["data"].(map[string]any)["pokemonId"]
	p2 := resp2["data"].(map[string]any)["pokemonId"]
	if p1 != p2 {
		t.Errorf("catches reference different catalog entries: %v vs %v", p1, p2)
	}
}

func TestCollection_CatchWithSuppliedAttributes(t *testing.T) {
	h, fetcher := newTestHandler(t)
	token := register(t, h, "a@x.com", "pw1")

	// snorlax is unknown to the stub catalog; supplied attributes must be
	// used instead of an external fetch.
	w, resp := doJSON(t, h, http.MethodPost, "/protected/catch", token, map[string]any{"name": "snorlax", "type": "normal", "height": 21})
	if w.Code != http.StatusOK {
		t.Fatalf("catch: %d %v", w.Code, resp)
	}
	if fetcher.callCount() != 0 {
		t.Errorf("expected no external fetch, got %d", fetcher.callCount())
	}
	data := resp["data"].(map[string]any)
	if data["type"] != "normal" {
		t.Errorf("type: %v", data["type"])
	}
}

func TestCollection_CatchUnknownName(t *testing.T) {
	h, _ := newTestHandler(t)
	token := register(t, h, "a@x.com", "pw1")

	w, _ := doJSON(t, h, http.MethodPost, "/protected/catch", token, map[string]any{"name": "missingno"})
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

// ---------------------------------------------------------------------------
// Catalog endpoints
// ---------------------------------------------------------------------------

func TestPokemon_LookupFetchesOnceThenCaches(t *testing.T) {
	h, fetcher := newTestHandler(t)

	w, resp := doJSON(t, h, http.MethodGet, "/pokemon/pikachu", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("lookup: %d", w.Code)
	}
	data := resp["data"].(map[string]any)
	if data["name"] != "pikachu" || data["type"] != "electric" {
		t.Errorf("unexpected entry: %v", data)
	}

	w, _ = doJSON(t, h, http.MethodGet, "/pokemon/pikachu", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("second lookup: %d", w.Code)
	}
	if fetcher.callCount() != 1 {
		t.Errorf("expected one external fetch across lookups, got %d", fetcher.callCount())
	}

	w, _ = doJSON(t, h, http.MethodGet, "/pokemon/missingno", "", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("unknown name: expected 404, got %d", w.Code)
	}
}

func TestPokemon_AdminCRUD(t *testing.T) {
	h, _ := newTestHandler(t)

	// Add.
	w, resp := doJSON(t, h, http.MethodPost, "/pokemon", "", map[string]any{"name": "mew", "type": "psychic", "height": 4})
	if w.Code != http.StatusOK {
		t.Fatalf("add: %d %v", w.Code, resp)
	}
	id := int64(resp["data"].(map[string]any)["id"].(float64))

	// Duplicate add.
	w, _ = doJSON(t, h, http.MethodPost, "/pokemon", "", map[string]any{"name": "mew", "type": "psychic", "height": 4})
	if w.Code != http.StatusBadRequest {
		t.Errorf("duplicate add: expected 400, got %d", w.Code)
	}

	// Partial update.
	w, resp = doJSON(t, h, http.MethodPatch, fmt.Sprintf("/pokemon/%d", id), "", map[string]any{"height": 5})
	if w.Code != http.StatusOK {
		t.Fatalf("update: %d %v", w.Code, resp)
	}
	data := resp["data"].(map[string]any)
	if data["height"] != float64(5) || data["type"] != "psychic" {
		t.Errorf("partial update wrong: %v", data)
	}

	// Update of a missing id.
	w, _ = doJSON(t, h, http.MethodPatch, "/pokemon/424242", "", map[string]any{"height": 5})
	if w.Code != http.StatusNotFound {
		t.Errorf("update missing: expected 404, got %d", w.Code)
	}

	// Delete by name, then again.
	w, _ = doJSON(t, h, http.MethodDelete, "/pokemon/mew", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("delete: %d", w.Code)
	}
	w, _ = doJSON(t, h, http.MethodDelete, "/pokemon/mew", "", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("second delete: expected 404, got %d", w.Code)
	}
}
