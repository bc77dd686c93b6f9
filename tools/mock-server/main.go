// Package main implements a mock marketplace API server for local
// development. It keeps every user, product, cart, and purchase in memory
// and issues short-lived access tokens so the refresh-and-retry path can
// be exercised without a real backend.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	domain "github.com/junseo/marketctl/pkg/types"
)

func main() {
	port := flag.Int("port", 8000, "port to listen on")
	fixtureFile := flag.String("fixture", "tools/mock-server/testdata/products.json", "path to product fixture")
	accessTTL := flag.Duration("access-ttl", 2*time.Minute, "access token lifetime")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	srv := newServer(logger, *accessTTL)
	if err := srv.loadFixture(*fixtureFile); err != nil {
		logger.Error("failed to load fixture", "path", *fixtureFile, "error", err)
		os.Exit(1)
	}
	logger.Info("loaded fixture", "products", len(srv.products))

	addr := fmt.Sprintf(":%d", *port)
	logger.Info("starting mock marketplace server", "addr", addr, "access_ttl", *accessTTL)

	httpSrv := &http.Server{
		Addr:         addr,
		Handler:      requestLogger(logger, srv.routes()),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	if err := httpSrv.ListenAndServe(); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func requestLogger(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger.Debug("request", "method", r.Method, "path", r.URL.Path, "query", r.URL.RawQuery)
		next.ServeHTTP(w, r)
	})
}

type account struct {
	user     domain.User
	password string
}

type session struct {
	userID    int64
	expiresAt time.Time
}

// server holds the whole marketplace state behind one mutex. Good enough
// for a development tool.
type server struct {
	log       *slog.Logger
	accessTTL time.Duration

	mu        sync.Mutex
	nextID    int64
	accounts  map[string]*account // by email
	users     map[int64]*account
	products  map[int64]*domain.ProductDetail
	carts     map[int64][]domain.CartItem // by user ID
	purchases map[int64][]domain.Purchase // by buyer ID
	access    map[string]session          // access token -> session
	refresh   map[string]int64            // refresh token -> user ID
}

func newServer(log *slog.Logger, accessTTL time.Duration) *server {
	s := &server{
		log:       log,
		accessTTL: accessTTL,
		nextID:    1,
		accounts:  make(map[string]*account),
		users:     make(map[int64]*account),
		products:  make(map[int64]*domain.ProductDetail),
		carts:     make(map[int64][]domain.CartItem),
		purchases: make(map[int64][]domain.Purchase),
		access:    make(map[string]session),
		refresh:   make(map[string]int64),
	}

	// Seed accounts for manual testing.
	s.addAccount("admin@example.com", "admin", "admin", domain.RoleAdmin)
	s.addAccount("user@example.com", "user", "user", domain.RoleUser)
	return s
}

func (s *server) addAccount(email, nickname, password string, role domain.Role) *account {
	a := &account{
		user: domain.User{
			ID:       s.nextID,
			Email:    email,
			Nickname: nickname,
			Role:     role,
		},
		password: password,
	}
	s.nextID++
	s.accounts[email] = a
	s.users[a.user.ID] = a
	return a
}

type fixtureProduct struct {
	Title       string   `json:"title"`
	Price       int64    `json:"price"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Condition   string   `json:"condition"`
	ImageURLs   []string `json:"image_urls"`
}

func (s *server) loadFixture(path string) error {
	data, err := os.ReadFile(path) //nolint:gosec // fixture path from trusted CLI flag
	if err != nil {
		return fmt.Errorf("reading fixture: %w", err)
	}
	var items []fixtureProduct
	if err := json.Unmarshal(data, &items); err != nil {
		return fmt.Errorf("parsing fixture: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	seller := s.accounts["user@example.com"]
	for _, item := range items {
		p := &domain.ProductDetail{
			ID:             s.nextID,
			Title:          item.Title,
			Price:          item.Price,
			Description:    item.Description,
			Category:       domain.Category(item.Category),
			Condition:      domain.Condition(item.Condition),
			Status:         domain.StatusOnSale,
			SellerID:       seller.user.ID,
			SellerNickname: seller.user.Nickname,
			ImageURLs:      item.ImageURLs,
			CreatedAt:      time.Now(),
			UpdatedAt:      time.Now(),
		}
		s.nextID++
		s.products[p.ID] = p
	}
	return nil
}

func (s *server) routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /auth/signup", s.handleSignup)
	mux.HandleFunc("POST /auth/login", s.handleLogin)
	mux.HandleFunc("POST /auth/refresh", s.handleRefresh)
	mux.HandleFunc("GET /auth/me", s.authed(s.handleMe))

	mux.HandleFunc("GET /products", s.handleListProducts)
	mux.HandleFunc("GET /products/{id}", s.handleGetProduct)
	mux.HandleFunc("POST /products", s.authed(s.handleCreateProduct))
	mux.HandleFunc("PATCH /products/{id}", s.authed(s.handleUpdateProduct))
	mux.HandleFunc("DELETE /products/{id}", s.authed(s.handleDeleteProduct))

	mux.HandleFunc("GET /cart", s.authed(s.handleGetCart))
	mux.HandleFunc("POST /cart", s.authed(s.handleAddToCart))
	mux.HandleFunc("PATCH /cart/{id}", s.authed(s.handleUpdateCartItem))
	mux.HandleFunc("DELETE /cart/{id}", s.authed(s.handleRemoveCartItem))

	mux.HandleFunc("POST /purchases/buy-now/{id}", s.authed(s.handleBuyNow))
	mux.HandleFunc("POST /purchases/checkout-selected", s.authed(s.handleCheckout))
	mux.HandleFunc("GET /purchases/me", s.authed(s.handleMyPurchases))
	mux.HandleFunc("GET /purchases/sales/me", s.authed(s.handleMySales))

	mux.HandleFunc("GET /admin/products", s.admin(s.handleAdminProducts))
	mux.HandleFunc("POST /admin/products/{id}/blind", s.admin(s.handleBlind))
	mux.HandleFunc("POST /admin/products/{id}/unblind", s.admin(s.handleUnblind))

	return mux
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	//nolint:errcheck,gosec // best-effort write to HTTP response in mock server
	json.NewEncoder(w).Encode(v)
}

// writeError emits the structured error shape clients normalize from.
func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, map[string]any{
		"error": map[string]string{"code": code, "message": message},
	})
}

// writeDetail emits the framework-style rejection shape.
func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}

type authedHandler func(w http.ResponseWriter, r *http.Request, user *domain.User)

func (s *server) authed(next authedHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tok := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		if tok == "" {
			writeDetail(w, http.StatusUnauthorized, "Not authenticated")
			return
		}

		s.mu.Lock()
		sess, ok := s.access[tok]
		var user domain.User
		if ok && time.Now().Before(sess.expiresAt) {
			user = s.users[sess.userID].user
		} else {
			ok = false
		}
		s.mu.Unlock()

		if !ok {
			writeError(w, http.StatusUnauthorized, "TOKEN_EXPIRED", "Access token expired")
			return
		}
		next(w, r, &user)
	}
}

func (s *server) admin(next authedHandler) http.HandlerFunc {
	return s.authed(func(w http.ResponseWriter, r *http.Request, user *domain.User) {
		if !user.IsAdmin() {
			writeError(w, http.StatusForbidden, "FORBIDDEN", "Admin role required")
			return
		}
		next(w, r, user)
	})
}

func (s *server) issuePair(userID int64) map[string]string {
	access := "acc-" + uuid.NewString()
	refresh := "ref-" + uuid.NewString()
	s.access[access] = session{userID: userID, expiresAt: time.Now().Add(s.accessTTL)}
	s.refresh[refresh] = userID
	return map[string]string{"access_token": access, "refresh_token": refresh}
}

func (s *server) handleSignup(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Nickname string `json:"nickname"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" || req.Password == "" {
		writeDetail(w, http.StatusUnprocessableEntity, "email and password are required")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.accounts[req.Email]; exists {
		writeError(w, http.StatusConflict, "EMAIL_TAKEN", "Email is already registered")
		return
	}
	a := s.addAccount(req.Email, req.Nickname, req.Password, domain.RoleUser)
	writeJSON(w, http.StatusCreated, a.user)
}

func (s *server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	//nolint:errcheck,gosec // malformed bodies fail the credential check below
	json.NewDecoder(r.Body).Decode(&req)

	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.accounts[req.Email]
	if !ok || a.password != req.Password {
		writeError(w, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid email or password")
		return
	}
	writeJSON(w, http.StatusOK, s.issuePair(a.user.ID))
}

func (s *server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	var req struct {
		RefreshToken string `json:"refresh_token"`
	}
	//nolint:errcheck,gosec // a malformed body fails the lookup below
	json.NewDecoder(r.Body).Decode(&req)

	s.mu.Lock()
	defer s.mu.Unlock()

	userID, ok := s.refresh[req.RefreshToken]
	if !ok {
		writeDetail(w, http.StatusUnauthorized, "Invalid refresh token")
		return
	}
	// Rotate: the old refresh token is single-use.
	delete(s.refresh, req.RefreshToken)
	writeJSON(w, http.StatusOK, s.issuePair(userID))
}

func (s *server) handleMe(w http.ResponseWriter, _ *http.Request, user *domain.User) {
	writeJSON(w, http.StatusOK, user)
}

func (s *server) handleListProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	if page < 1 {
		page = 1
	}
	pageSize, _ := strconv.Atoi(q.Get("page_size"))
	if pageSize < 1 {
		pageSize = 10
	}
	keyword := strings.ToLower(q.Get("keyword"))
	category := q.Get("category")

	s.mu.Lock()
	defer s.mu.Unlock()

	var matched []*domain.ProductDetail
	for _, p := range s.products {
		if p.IsBlinded {
			continue
		}
		if keyword != "" && !strings.Contains(strings.ToLower(p.Title), keyword) {
			continue
		}
		if category != "" && string(p.Category) != category {
			continue
		}
		matched = append(matched, p)
	}

	switch q.Get("sort") {
	case "price_asc":
		sort.Slice(matched, func(i, j int) bool { return matched[i].Price < matched[j].Price })
	case "price_desc":
		sort.Slice(matched, func(i, j int) bool { return matched[i].Price > matched[j].Price })
	default:
		sort.Slice(matched, func(i, j int) bool { return matched[i].CreatedAt.After(matched[j].CreatedAt) })
	}

	total := len(matched)
	start := (page - 1) * pageSize
	if start > total {
		start = total
	}
	end := min(start+pageSize, total)

	items := make([]domain.ProductSummary, 0, end-start)
	for _, p := range matched[start:end] {
		thumb := ""
		if len(p.ImageURLs) > 0 {
			thumb = p.ImageURLs[0]
		}
		items = append(items, domain.ProductSummary{
			ID:             p.ID,
			Title:          p.Title,
			Price:          p.Price,
			Category:       p.Category,
			Condition:      p.Condition,
			Status:         p.Status,
			SellerNickname: p.SellerNickname,
			ThumbnailURL:   thumb,
			CreatedAt:      p.CreatedAt,
		})
	}

	writeJSON(w, http.StatusOK, domain.ProductList{
		Total:    total,
		Page:     page,
		PageSize: pageSize,
		Items:    items,
	})
}

func (s *server) productFromPath(w http.ResponseWriter, r *http.Request) (*domain.ProductDetail, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeDetail(w, http.StatusNotFound, "Product not found")
		return nil, false
	}
	p, ok := s.products[id]
	if !ok {
		writeDetail(w, http.StatusNotFound, "Product not found")
		return nil, false
	}
	return p, true
}

func (s *server) handleGetProduct(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.productFromPath(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *server) handleCreateProduct(w http.ResponseWriter, r *http.Request, user *domain.User) {
	var req domain.NewProduct
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Title == "" {
		writeDetail(w, http.StatusUnprocessableEntity, "title is required")
		return
	}
	if req.Price <= 0 {
		writeDetail(w, http.StatusUnprocessableEntity, "price must be positive")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p := &domain.ProductDetail{
		ID:             s.nextID,
		Title:          req.Title,
		Price:          req.Price,
		Description:    req.Description,
		Category:       req.Category,
		Condition:      req.Condition,
		Status:         domain.StatusOnSale,
		SellerID:       user.ID,
		SellerNickname: user.Nickname,
		ImageURLs:      req.ImageURLs,
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}
	s.nextID++
	s.products[p.ID] = p
	writeJSON(w, http.StatusCreated, p)
}

func (s *server) handleUpdateProduct(w http.ResponseWriter, r *http.Request, user *domain.User) {
	var patch domain.ProductPatch
	//nolint:errcheck,gosec // empty patch is a no-op update
	json.NewDecoder(r.Body).Decode(&patch)

	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.productFromPath(w, r)
	if !ok {
		return
	}
	if p.SellerID != user.ID {
		writeError(w, http.StatusForbidden, "FORBIDDEN", "Only the seller can edit this product")
		return
	}

	if patch.Title != nil {
		p.Title = *patch.Title
	}
	if patch.Price != nil {
		p.Price = *patch.Price
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	if patch.Category != nil {
		p.Category = *patch.Category
	}
	if patch.Condition != nil {
		p.Condition = *patch.Condition
	}
	if patch.Status != nil {
		p.Status = *patch.Status
	}
	if patch.ImageURLs != nil {
		p.ImageURLs = patch.ImageURLs
	}
	p.UpdatedAt = time.Now()
	writeJSON(w, http.StatusOK, p)
}

func (s *server) handleDeleteProduct(w http.ResponseWriter, r *http.Request, user *domain.User) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.productFromPath(w, r)
	if !ok {
		return
	}
	if p.SellerID != user.ID && !user.IsAdmin() {
		writeError(w, http.StatusForbidden, "FORBIDDEN", "Only the seller can delete this product")
		return
	}
	delete(s.products, p.ID)
	w.WriteHeader(http.StatusNoContent)
}

// cartTotal is the sum of price times quantity over selected items.
func cartTotal(items []domain.CartItem) int64 {
	var total int64
	for _, item := range items {
		if item.Selected {
			total += item.Price * int64(item.Quantity)
		}
	}
	return total
}

func (s *server) cartResponse(userID int64) domain.Cart {
	items := s.carts[userID]
	for i := range items {
		items[i].Subtotal = items[i].Price * int64(items[i].Quantity)
		if p, ok := s.products[items[i].ProductID]; ok {
			items[i].Status = p.Status
		}
	}
	if items == nil {
		items = []domain.CartItem{}
	}
	return domain.Cart{Items: items, TotalAmount: cartTotal(items)}
}

func (s *server) handleGetCart(w http.ResponseWriter, _ *http.Request, user *domain.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, s.cartResponse(user.ID))
}

func (s *server) handleAddToCart(w http.ResponseWriter, r *http.Request, user *domain.User) {
	var req struct {
		ProductID int64 `json:"product_id"`
		Quantity  int   `json:"quantity"`
	}
	//nolint:errcheck,gosec // zero product ID fails the lookup below
	json.NewDecoder(r.Body).Decode(&req)
	if req.Quantity < 1 {
		req.Quantity = 1
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.products[req.ProductID]
	if !ok {
		writeDetail(w, http.StatusNotFound, "Product not found")
		return
	}
	for _, item := range s.carts[user.ID] {
		if item.ProductID == req.ProductID {
			writeError(w, http.StatusConflict, "ALREADY_IN_CART", "Product already in cart")
			return
		}
	}

	item := domain.CartItem{
		ID:        s.nextID,
		ProductID: p.ID,
		Title:     p.Title,
		Status:    p.Status,
		Price:     p.Price,
		Quantity:  req.Quantity,
		Selected:  true,
	}
	s.nextID++
	s.carts[user.ID] = append(s.carts[user.ID], item)
	writeJSON(w, http.StatusCreated, s.cartResponse(user.ID))
}

func (s *server) handleUpdateCartItem(w http.ResponseWriter, r *http.Request, user *domain.User) {
	itemID, _ := strconv.ParseInt(r.PathValue("id"), 10, 64)

	var patch domain.CartItemPatch
	//nolint:errcheck,gosec // empty patch is a no-op update
	json.NewDecoder(r.Body).Decode(&patch)

	if patch.Quantity != nil && *patch.Quantity < 1 {
		writeDetail(w, http.StatusUnprocessableEntity, "quantity must be at least 1")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.carts[user.ID]
	for i := range items {
		if items[i].ID != itemID {
			continue
		}
		if patch.Quantity != nil {
			items[i].Quantity = *patch.Quantity
		}
		if patch.Selected != nil {
			items[i].Selected = *patch.Selected
		}
		writeJSON(w, http.StatusOK, s.cartResponse(user.ID))
		return
	}
	writeDetail(w, http.StatusNotFound, "Cart item not found")
}

func (s *server) handleRemoveCartItem(w http.ResponseWriter, r *http.Request, user *domain.User) {
	itemID, _ := strconv.ParseInt(r.PathValue("id"), 10, 64)

	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.carts[user.ID]
	for i := range items {
		if items[i].ID == itemID {
			s.carts[user.ID] = append(items[:i], items[i+1:]...)
			w.WriteHeader(http.StatusNoContent)
			return
		}
	}
	writeDetail(w, http.StatusNotFound, "Cart item not found")
}

// recordPurchase marks the product sold and appends a purchase record.
func (s *server) recordPurchase(buyerID int64, p *domain.ProductDetail, quantity int) {
	p.Status = domain.StatusSold
	p.UpdatedAt = time.Now()
	s.purchases[buyerID] = append(s.purchases[buyerID], domain.Purchase{
		ID:           s.nextID,
		ProductID:    p.ID,
		ProductTitle: p.Title,
		Quantity:     quantity,
		Amount:       p.Price * int64(quantity),
		PurchasedAt:  time.Now(),
	})
	s.nextID++
}

func (s *server) handleBuyNow(w http.ResponseWriter, r *http.Request, user *domain.User) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.productFromPath(w, r)
	if !ok {
		return
	}
	if p.Status == domain.StatusSold {
		writeError(w, http.StatusConflict, "ALREADY_SOLD", "Product is already sold")
		return
	}
	s.recordPurchase(user.ID, p, 1)
	writeJSON(w, http.StatusCreated, s.purchases[user.ID][len(s.purchases[user.ID])-1])
}

func (s *server) handleCheckout(w http.ResponseWriter, _ *http.Request, user *domain.User) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.carts[user.ID]
	var selected []domain.CartItem
	for _, item := range items {
		if item.Selected {
			selected = append(selected, item)
		}
	}
	if len(selected) == 0 {
		writeDetail(w, http.StatusUnprocessableEntity, "no items selected")
		return
	}

	// Validate everything before committing anything.
	for _, item := range selected {
		p, ok := s.products[item.ProductID]
		if !ok || p.Status == domain.StatusSold {
			writeError(w, http.StatusConflict, "ALREADY_SOLD",
				fmt.Sprintf("%q is no longer available", item.Title))
			return
		}
	}

	var kept []domain.CartItem
	for _, item := range items {
		if !item.Selected {
			kept = append(kept, item)
			continue
		}
		s.recordPurchase(user.ID, s.products[item.ProductID], item.Quantity)
	}
	s.carts[user.ID] = kept
	writeJSON(w, http.StatusCreated, s.cartResponse(user.ID))
}

func (s *server) handleMyPurchases(w http.ResponseWriter, _ *http.Request, user *domain.User) {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.purchases[user.ID]
	if list == nil {
		list = []domain.Purchase{}
	}
	writeJSON(w, http.StatusOK, domain.PurchaseList{Purchases: list})
}

func (s *server) handleMySales(w http.ResponseWriter, _ *http.Request, user *domain.User) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var sales []domain.Purchase
	for _, records := range s.purchases {
		for _, rec := range records {
			if p, ok := s.products[rec.ProductID]; ok && p.SellerID == user.ID {
				sales = append(sales, rec)
			}
		}
	}
	if sales == nil {
		sales = []domain.Purchase{}
	}
	writeJSON(w, http.StatusOK, domain.PurchaseList{Purchases: sales})
}

func (s *server) handleAdminProducts(w http.ResponseWriter, _ *http.Request, _ *domain.User) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := make([]domain.AdminProduct, 0, len(s.products))
	for _, p := range s.products {
		items = append(items, domain.AdminProduct{
			ID:             p.ID,
			Title:          p.Title,
			Status:         p.Status,
			IsBlinded:      p.IsBlinded,
			BlindReason:    p.BlindReason,
			SellerNickname: p.SellerNickname,
		})
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}

func (s *server) handleBlind(w http.ResponseWriter, r *http.Request, _ *domain.User) {
	var req struct {
		Reason string `json:"reason"`
	}
	//nolint:errcheck,gosec // an empty reason is allowed
	json.NewDecoder(r.Body).Decode(&req)

	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.productFromPath(w, r)
	if !ok {
		return
	}
	p.IsBlinded = true
	p.BlindReason = req.Reason
	writeJSON(w, http.StatusOK, p)
}

func (s *server) handleUnblind(w http.ResponseWriter, r *http.Request, _ *domain.User) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.productFromPath(w, r)
	if !ok {
		return
	}
	p.IsBlinded = false
	p.BlindReason = ""
	writeJSON(w, http.StatusOK, p)
}
