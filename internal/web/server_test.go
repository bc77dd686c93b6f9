package web

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/junseo/marketctl/internal/config"
)

// newUpstream fakes the marketplace API behind the frontend.
func newUpstream(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /products", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{
			"total": 1, "page": 1, "page_size": 10,
			"items": [{"id": 10, "title": "Mechanical keyboard", "price": 45000,
				"category": "electronics", "condition": "used", "status": "on_sale",
				"seller_nickname": "kim", "created_at": "2026-08-01T10:00:00Z"}]
		}`))
	})
	mux.HandleFunc("POST /auth/login", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"access_token":"acc-1","refresh_token":"ref-1"}`))
	})
	mux.HandleFunc("GET /cart", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer acc-1" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"detail":"Not authenticated"}`))
			return
		}
		_, _ = w.Write([]byte(`{
			"items": [{"id": 1, "product_id": 10, "title": "Mechanical keyboard",
				"status": "on_sale", "price": 45000, "quantity": 1,
				"selected": true, "subtotal": 45000}],
			"total_amount": 45000
		}`))
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newTestServer(t *testing.T) *Server {
	t.Helper()

	upstream := newUpstream(t)
	cfg := &config.Config{
		API: config.APIConfig{
			BaseURL: upstream.URL,
			Timeout: 5 * time.Second,
			RateLimit: config.RateLimitConfig{
				PerSecond: 100,
				Burst:     100,
			},
		},
	}

	srv, err := NewServer(cfg, slog.New(slog.DiscardHandler))
	require.NoError(t, err)
	return srv
}

func TestServer_Healthz(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	srv.Echo().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ok")
}

func TestServer_IndexRendersListing(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	srv.Echo().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Mechanical keyboard")
	assert.Contains(t, rec.Body.String(), "45000 won")
}

func TestServer_LoginSetsSessionCookies(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)

	form := url.Values{"email": {"a@b.com"}, "password": {"pw"}}
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	srv.Echo().ServeHTTP(rec, req)

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))

	cookies := rec.Result().Cookies()
	values := map[string]string{}
	for _, ck := range cookies {
		values[ck.Name] = ck.Value
	}
	assert.Equal(t, "acc-1", values[accessCookie])
	assert.Equal(t, "ref-1", values[refreshCookie])
}

func TestServer_CartRequiresLogin(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/cart", nil)
	rec := httptest.NewRecorder()
	srv.Echo().ServeHTTP(rec, req)

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
}

func TestServer_CartRendersForSession(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/cart", nil)
	req.AddCookie(&http.Cookie{Name: accessCookie, Value: "acc-1"})
	req.AddCookie(&http.Cookie{Name: refreshCookie, Value: "ref-1"})
	rec := httptest.NewRecorder()
	srv.Echo().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Mechanical keyboard")
}

func TestServer_LogoutClearsSession(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/logout", nil)
	req.AddCookie(&http.Cookie{Name: accessCookie, Value: "acc-1"})
	rec := httptest.NewRecorder()
	srv.Echo().ServeHTTP(rec, req)

	require.Equal(t, http.StatusSeeOther, rec.Code)
	for _, ck := range rec.Result().Cookies() {
		assert.Equal(t, -1, ck.MaxAge, "cookie %s must expire", ck.Name)
	}
}
