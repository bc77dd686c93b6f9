package market_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/junseo/marketctl/internal/market"
	"github.com/junseo/marketctl/internal/token"
)

func pairJSON(access, refresh string) []byte {
	return []byte(fmt.Sprintf(
		`{"access_token":%q,"refresh_token":%q}`, access, refresh,
	))
}

func storeWith(t *testing.T, access, refresh string) *token.Memory {
	t.Helper()
	s := token.NewMemory()
	require.NoError(t, s.SetPair(access, refresh))
	return s
}

func TestClient_NoBearerOnPublicCall(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Empty(t, r.Header.Get("Authorization"))
			w.WriteHeader(http.StatusCreated)
		}),
	)
	defer srv.Close()

	// A token is stored, but signup is unauthenticated and must not
	// carry it.
	client := market.New(srv.URL,
		market.WithTokenStore(storeWith(t, "acc-1", "ref-1")),
	)

	err := client.Signup(context.Background(), "a@b.com", "ab", "pw")
	require.NoError(t, err)
}

func TestClient_BearerMatchesStoredToken(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "Bearer acc-1", r.Header.Get("Authorization"))
			assert.Equal(t, "no-store", r.Header.Get("Cache-Control"))
			_, _ = w.Write([]byte(`{"id":7,"email":"a@b.com","nickname":"ab","role":"user"}`))
		}),
	)
	defer srv.Close()

	client := market.New(srv.URL,
		market.WithTokenStore(storeWith(t, "acc-1", "ref-1")),
	)

	user, err := client.Me(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(7), user.ID)
}

func TestClient_NoTokenSendsNoHeader(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, present := r.Header["Authorization"]
			assert.False(t, present, "empty token must not produce a header")
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"detail":"Not authenticated"}`))
		}),
	)
	defer srv.Close()

	client := market.New(srv.URL)

	_, err := client.Me(context.Background())
	require.Error(t, err)
	assert.Equal(t, "Not authenticated", err.Error())
}

func TestClient_RefreshAndRetryOn401(t *testing.T) {
	t.Parallel()

	var meCalls, refreshCalls atomic.Int32

	mux := http.NewServeMux()
	mux.HandleFunc("/auth/me", func(w http.ResponseWriter, r *http.Request) {
		meCalls.Add(1)
		if r.Header.Get("Authorization") != "Bearer acc-fresh" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error":{"code":"TOKEN_EXPIRED","message":"Access token expired"}}`))
			return
		}
		_, _ = w.Write([]byte(`{"id":7,"email":"a@b.com","nickname":"ab","role":"user"}`))
	})
	mux.HandleFunc("/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		refreshCalls.Add(1)
		assert.Empty(t, r.Header.Get("Authorization"), "refresh must be unauthenticated")

		var body struct {
			RefreshToken string `json:"refresh_token"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "ref-old", body.RefreshToken)

		_, _ = w.Write(pairJSON("acc-fresh", "ref-fresh"))
	})

	srv := httptest.NewServer(mux)
	defer srv.Close()

	store := storeWith(t, "acc-stale", "ref-old")
	client := market.New(srv.URL, market.WithTokenStore(store))

	user, err := client.Me(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(7), user.ID)

	assert.Equal(t, int32(2), meCalls.Load(), "one original call plus one retry")
	assert.Equal(t, int32(1), refreshCalls.Load())
	assert.Equal(t, "acc-fresh", store.Access())
	assert.Equal(t, "ref-fresh", store.Refresh())
}

func TestClient_RetryIsNeverRepeated(t *testing.T) {
	t.Parallel()

	var meCalls, refreshCalls atomic.Int32

	mux := http.NewServeMux()
	mux.HandleFunc("/auth/me", func(w http.ResponseWriter, _ *http.Request) {
		// Rejects even the retried request.
		meCalls.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"detail":"still no"}`))
	})
	mux.HandleFunc("/auth/refresh", func(w http.ResponseWriter, _ *http.Request) {
		refreshCalls.Add(1)
		_, _ = w.Write(pairJSON("acc-fresh", "ref-fresh"))
	})

	srv := httptest.NewServer(mux)
	defer srv.Close()

	client := market.New(srv.URL,
		market.WithTokenStore(storeWith(t, "acc-stale", "ref-old")),
	)

	_, err := client.Me(context.Background())
	require.Error(t, err)
	assert.Equal(t, "still no", err.Error())

	assert.Equal(t, int32(2), meCalls.Load(), "exactly one retry, no cascade")
	assert.Equal(t, int32(1), refreshCalls.Load())
}

func TestClient_RefreshFailureClearsSessionAndSurfaces401(t *testing.T) {
	t.Parallel()

	var meCalls atomic.Int32

	mux := http.NewServeMux()
	mux.HandleFunc("/auth/me", func(w http.ResponseWriter, _ *http.Request) {
		meCalls.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"code":"TOKEN_EXPIRED","message":"Access token expired"}}`))
	})
	mux.HandleFunc("/auth/refresh", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"detail":"refresh token expired"}`))
	})

	srv := httptest.NewServer(mux)
	defer srv.Close()

	store := storeWith(t, "acc-stale", "ref-dead")
	client := market.New(srv.URL, market.WithTokenStore(store))

	_, err := client.Me(context.Background())
	require.Error(t, err)

	// The caller sees the original call's normalized error, not the
	// refresh exchange's.
	var apiErr *market.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.Equal(t, "TOKEN_EXPIRED", apiErr.Code)
	assert.Equal(t, "[TOKEN_EXPIRED] Access token expired", err.Error())

	assert.Equal(t, int32(1), meCalls.Load(), "failed refresh means no retry")
	assert.Empty(t, store.Access())
	assert.Empty(t, store.Refresh())
}

func TestClient_NoStoredRefreshTokenSkipsExchange(t *testing.T) {
	t.Parallel()

	var refreshCalls atomic.Int32

	mux := http.NewServeMux()
	mux.HandleFunc("/auth/me", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"detail":"Not authenticated"}`))
	})
	mux.HandleFunc("/auth/refresh", func(w http.ResponseWriter, _ *http.Request) {
		refreshCalls.Add(1)
		_, _ = w.Write(pairJSON("x", "y"))
	})

	srv := httptest.NewServer(mux)
	defer srv.Close()

	store := token.NewMemory()
	require.NoError(t, store.SetPair("acc-only", ""))
	client := market.New(srv.URL, market.WithTokenStore(store))

	_, err := client.Me(context.Background())
	require.Error(t, err)
	assert.Equal(t, "Not authenticated", err.Error())
	assert.Equal(t, int32(0), refreshCalls.Load())
	assert.Empty(t, store.Access(), "failed refresh cycle ends the session")
}

func TestClient_ConcurrentRefreshCoalesces(t *testing.T) {
	t.Parallel()

	const workers = 8

	var refreshCalls atomic.Int32
	release := make(chan struct{})

	mux := http.NewServeMux()
	mux.HandleFunc("/auth/me", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer acc-fresh" {
			// Hold every stale request until all workers are in flight,
			// so their 401s race into the refresh path together.
			<-release
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"detail":"expired"}`))
			return
		}
		_, _ = w.Write([]byte(`{"id":7,"email":"a@b.com","nickname":"ab","role":"user"}`))
	})
	mux.HandleFunc("/auth/refresh", func(w http.ResponseWriter, _ *http.Request) {
		refreshCalls.Add(1)
		_, _ = w.Write(pairJSON("acc-fresh", "ref-fresh"))
	})

	srv := httptest.NewServer(mux)
	defer srv.Close()

	store := storeWith(t, "acc-stale", "ref-old")
	client := market.New(srv.URL, market.WithTokenStore(store))

	var wg sync.WaitGroup
	errs := make([]error, workers)
	for i := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[i] = client.Me(context.Background())
		}()
	}
	close(release)
	wg.Wait()

	for i, err := range errs {
		assert.NoError(t, err, "worker %d", i)
	}
	assert.Equal(t, int32(1), refreshCalls.Load(),
		"concurrent 401s must share one token exchange")
}

func TestClient_ErrorNormalization(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		status   int
		body     string
		wantMsg  string
		wantCode string
	}{
		{
			name:     "structured error with code",
			status:   http.StatusConflict,
			body:     `{"error":{"code":"ALREADY_IN_CART","message":"Product already in cart"}}`,
			wantMsg:  "[ALREADY_IN_CART] Product already in cart",
			wantCode: "ALREADY_IN_CART",
		},
		{
			name:    "detail shape",
			status:  http.StatusUnprocessableEntity,
			body:    `{"detail":"price must be positive"}`,
			wantMsg: "price must be positive",
		},
		{
			name:    "unparseable body falls back to status",
			status:  http.StatusNotFound,
			body:    `<html>not json</html>`,
			wantMsg: "Request failed: 404",
		},
		{
			name:    "empty body falls back to status",
			status:  http.StatusBadGateway,
			body:    "",
			wantMsg: "Request failed: 502",
		},
		{
			name:    "error shape with empty message falls back",
			status:  http.StatusInternalServerError,
			body:    `{"error":{"code":"","message":""}}`,
			wantMsg: "Request failed: 500",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			srv := httptest.NewServer(
				http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
					w.WriteHeader(tt.status)
					_, _ = w.Write([]byte(tt.body))
				}),
			)
			defer srv.Close()

			client := market.New(srv.URL)

			_, err := client.GetProduct(context.Background(), 1)
			require.Error(t, err)
			assert.Equal(t, tt.wantMsg, err.Error())

			var apiErr *market.APIError
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, tt.status, apiErr.Status)
			assert.Equal(t, tt.wantCode, apiErr.Code)
		})
	}
}

func TestClient_LoginStoresIssuedPair(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/auth/login", r.URL.Path)
			_, _ = w.Write(pairJSON("acc-new", "ref-new"))
		}),
	)
	defer srv.Close()

	store := token.NewMemory()
	client := market.New(srv.URL, market.WithTokenStore(store))

	require.NoError(t, client.Login(context.Background(), "a@b.com", "pw"))
	assert.Equal(t, "acc-new", store.Access())
	assert.Equal(t, "ref-new", store.Refresh())

	require.NoError(t, client.Logout())
	assert.Empty(t, store.Access())
	assert.Empty(t, store.Refresh())
}

func TestClient_ListProductsDefaults(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			q := r.URL.Query()
			assert.Equal(t, "1", q.Get("page"))
			assert.Equal(t, "10", q.Get("page_size"))
			assert.Equal(t, "latest", q.Get("sort"))
			assert.False(t, q.Has("keyword"))
			assert.False(t, q.Has("category"))
			_, _ = w.Write([]byte(`{"total":0,"page":1,"page_size":10,"items":[]}`))
		}),
	)
	defer srv.Close()

	client := market.New(srv.URL)

	list, err := client.ListProducts(context.Background(), &market.ListProductsParams{})
	require.NoError(t, err)
	assert.Equal(t, 1, list.Page)
	assert.Empty(t, list.Items)
}
