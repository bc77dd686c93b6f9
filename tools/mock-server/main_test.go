package main

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	domain "github.com/junseo/marketctl/pkg/types"
)

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func testServer(t *testing.T) (*server, http.Handler) {
	t.Helper()
	s := newServer(testLogger(), time.Minute)
	if err := s.loadFixture("testdata/products.json"); err != nil {
		t.Fatalf("loading fixture: %v", err)
	}
	return s, s.routes()
}

func doJSON(t *testing.T, h http.Handler, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader = http.NoBody
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func login(t *testing.T, h http.Handler, email, password string) (access, refresh string) {
	t.Helper()
	w := doJSON(t, h, http.MethodPost, "/auth/login", "",
		`{"email":"`+email+`","password":"`+password+`"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("login status=%d body=%s", w.Code, w.Body.String())
	}
	var pair map[string]string
	if err := json.NewDecoder(w.Body).Decode(&pair); err != nil {
		t.Fatalf("decoding pair: %v", err)
	}
	return pair["access_token"], pair["refresh_token"]
}

func TestLoadFixture(t *testing.T) {
	s, _ := testServer(t)
	if len(s.products) != 5 {
		t.Fatalf("products=%d, want 5", len(s.products))
	}
}

func TestLogin_InvalidCredentials(t *testing.T) {
	_, h := testServer(t)

	w := doJSON(t, h, http.MethodPost, "/auth/login", "",
		`{"email":"user@example.com","password":"wrong"}`)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status=%d, want 401", w.Code)
	}
	if !strings.Contains(w.Body.String(), "INVALID_CREDENTIALS") {
		t.Errorf("body=%s, want INVALID_CREDENTIALS code", w.Body.String())
	}
}

func TestRefresh_RotatesTokens(t *testing.T) {
	_, h := testServer(t)
	_, refresh := login(t, h, "user@example.com", "user")

	w := doJSON(t, h, http.MethodPost, "/auth/refresh", "",
		`{"refresh_token":"`+refresh+`"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("refresh status=%d", w.Code)
	}

	// The old refresh token is single-use.
	w = doJSON(t, h, http.MethodPost, "/auth/refresh", "",
		`{"refresh_token":"`+refresh+`"}`)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("reused refresh status=%d, want 401", w.Code)
	}
}

func TestExpiredAccessToken(t *testing.T) {
	s := newServer(testLogger(), -time.Second) // every token is born expired
	h := s.routes()
	access, _ := login(t, h, "user@example.com", "user")

	w := doJSON(t, h, http.MethodGet, "/auth/me", access, "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status=%d, want 401", w.Code)
	}
	if !strings.Contains(w.Body.String(), "TOKEN_EXPIRED") {
		t.Errorf("body=%s, want TOKEN_EXPIRED code", w.Body.String())
	}
}

func TestListProducts_FilterAndSort(t *testing.T) {
	_, h := testServer(t)

	w := doJSON(t, h, http.MethodGet, "/products?category=electronics&sort=price_asc", "", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}

	var list domain.ProductList
	if err := json.NewDecoder(w.Body).Decode(&list); err != nil {
		t.Fatalf("decoding list: %v", err)
	}
	if list.Total != 2 {
		t.Fatalf("total=%d, want 2", list.Total)
	}
	if list.Items[0].Price > list.Items[1].Price {
		t.Error("expected ascending price order")
	}
}

func TestCart_AddDuplicateConflicts(t *testing.T) {
	_, h := testServer(t)
	access, _ := login(t, h, "admin@example.com", "admin")

	w := doJSON(t, h, http.MethodPost, "/cart", access, `{"product_id":3,"quantity":1}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("add status=%d body=%s", w.Code, w.Body.String())
	}

	w = doJSON(t, h, http.MethodPost, "/cart", access, `{"product_id":3,"quantity":1}`)
	if w.Code != http.StatusConflict {
		t.Fatalf("duplicate add status=%d, want 409", w.Code)
	}
	if !strings.Contains(w.Body.String(), "ALREADY_IN_CART") {
		t.Errorf("body=%s, want ALREADY_IN_CART code", w.Body.String())
	}
}

func TestCart_TotalOverSelected(t *testing.T) {
	_, h := testServer(t)
	access, _ := login(t, h, "admin@example.com", "admin")

	doJSON(t, h, http.MethodPost, "/cart", access, `{"product_id":3,"quantity":2}`)
	doJSON(t, h, http.MethodPost, "/cart", access, `{"product_id":4,"quantity":1}`)

	w := doJSON(t, h, http.MethodGet, "/cart", access, "")
	var cart domain.Cart
	if err := json.NewDecoder(w.Body).Decode(&cart); err != nil {
		t.Fatalf("decoding cart: %v", err)
	}
	if len(cart.Items) != 2 {
		t.Fatalf("items=%d, want 2", len(cart.Items))
	}

	// Deselect the first item; the total must drop to the second's subtotal.
	itemID := cart.Items[0].ID
	second := cart.Items[1].Price * int64(cart.Items[1].Quantity)
	w = doJSON(t, h, http.MethodPatch,
		"/cart/"+strconv.FormatInt(itemID, 10), access, `{"selected":false}`)
	if w.Code != http.StatusOK {
		t.Fatalf("patch status=%d", w.Code)
	}
	if err := json.NewDecoder(w.Body).Decode(&cart); err != nil {
		t.Fatalf("decoding cart: %v", err)
	}
	if cart.TotalAmount != second {
		t.Errorf("total=%d, want %d", cart.TotalAmount, second)
	}
}

func TestCheckout_MarksSoldAndEmptiesSelection(t *testing.T) {
	s, h := testServer(t)
	access, _ := login(t, h, "admin@example.com", "admin")

	doJSON(t, h, http.MethodPost, "/cart", access, `{"product_id":3,"quantity":1}`)

	w := doJSON(t, h, http.MethodPost, "/purchases/checkout-selected", access, "")
	if w.Code != http.StatusCreated {
		t.Fatalf("checkout status=%d body=%s", w.Code, w.Body.String())
	}

	var cart domain.Cart
	if err := json.NewDecoder(w.Body).Decode(&cart); err != nil {
		t.Fatalf("decoding cart: %v", err)
	}
	if len(cart.Items) != 0 {
		t.Errorf("items=%d, want 0 after checkout", len(cart.Items))
	}
	if s.products[3].Status != domain.StatusSold {
		t.Errorf("product status=%s, want sold", s.products[3].Status)
	}

	// Buying it again conflicts.
	w = doJSON(t, h, http.MethodPost, "/purchases/buy-now/3", access, "")
	if w.Code != http.StatusConflict {
		t.Fatalf("buy-now status=%d, want 409", w.Code)
	}
}

func TestAdmin_BlindHidesFromListing(t *testing.T) {
	_, h := testServer(t)
	admin, _ := login(t, h, "admin@example.com", "admin")

	w := doJSON(t, h, http.MethodPost, "/admin/products/3/blind", admin,
		`{"reason":"Counterfeit goods"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("blind status=%d", w.Code)
	}

	w = doJSON(t, h, http.MethodGet, "/products?page_size=50", "", "")
	var list domain.ProductList
	if err := json.NewDecoder(w.Body).Decode(&list); err != nil {
		t.Fatalf("decoding list: %v", err)
	}
	for _, item := range list.Items {
		if item.ID == 3 {
			t.Error("blinded product still listed")
		}
	}

	w = doJSON(t, h, http.MethodPost, "/admin/products/3/unblind", admin, "")
	if w.Code != http.StatusOK {
		t.Fatalf("unblind status=%d", w.Code)
	}
}

func TestAdmin_RequiresRole(t *testing.T) {
	_, h := testServer(t)
	user, _ := login(t, h, "user@example.com", "user")

	w := doJSON(t, h, http.MethodGet, "/admin/products", user, "")
	if w.Code != http.StatusForbidden {
		t.Fatalf("status=%d, want 403", w.Code)
	}
}
