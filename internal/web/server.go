package web

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"github.com/junseo/marketctl/internal/config"
	"github.com/junseo/marketctl/internal/market"
	"github.com/junseo/marketctl/internal/web/middleware"
)

// Server is the marketweb frontend: a server-rendered UI over the
// marketplace API. Each request gets its own API client bound to the
// browser session's cookie-stored tokens; the HTTP client and rate
// limiter are shared.
type Server struct {
	cfg        *config.Config
	log        *slog.Logger
	echo       *echo.Echo
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewServer builds the frontend server with routes and middleware wired.
func NewServer(cfg *config.Config, log *slog.Logger) (*Server, error) {
	renderer, err := NewRenderer()
	if err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Renderer = renderer

	e.Use(middleware.Recovery(log))
	e.Use(middleware.RequestLog(log))
	e.Use(middleware.Metrics())

	s := &Server{
		cfg:        cfg,
		log:        log,
		echo:       e,
		httpClient: &http.Client{Timeout: cfg.API.Timeout},
		limiter: rate.NewLimiter(
			rate.Limit(cfg.API.RateLimit.PerSecond),
			cfg.API.RateLimit.Burst,
		),
	}

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	e.GET("/", s.handleIndex)
	e.GET("/products/:id", s.handleProduct)
	e.POST("/products/:id/cart", s.handleAddToCart)
	e.POST("/products/:id/buy", s.handleBuyNow)
	e.POST("/products/:id/edit", s.handleEditProduct)
	e.POST("/products/:id/delete", s.handleDeleteProduct)

	e.GET("/cart", s.handleCart)
	e.POST("/cart/items/:itemID", s.handleCartUpdate)
	e.POST("/cart/items/:itemID/delete", s.handleCartDelete)
	e.POST("/cart/checkout", s.handleCheckout)

	e.GET("/sell", s.handleSellForm)
	e.POST("/sell", s.handleSell)
	e.GET("/mypage", s.handleMyPage)

	e.GET("/admin", s.handleAdmin)
	e.POST("/admin/:id/blind", s.handleBlind)
	e.POST("/admin/:id/unblind", s.handleUnblind)

	e.GET("/login", s.handleLoginForm)
	e.POST("/login", s.handleLogin)
	e.GET("/signup", s.handleSignupForm)
	e.POST("/signup", s.handleSignup)
	e.GET("/logout", s.handleLogout)

	return s, nil
}

// Echo exposes the underlying echo instance for tests.
func (s *Server) Echo() *echo.Echo {
	return s.echo
}

// Start runs the server until Shutdown.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.cfg.Server.Host, s.cfg.Server.Port)
	s.log.Info("starting marketweb", "addr", addr, "api", s.cfg.API.BaseURL)

	s.echo.Server.ReadTimeout = s.cfg.Server.ReadTimeout
	s.echo.Server.WriteTimeout = s.cfg.Server.WriteTimeout

	return s.echo.Start(addr)
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

// client builds a per-request API client bound to the session cookies.
func (s *Server) client(c echo.Context) *market.Client {
	return market.New(
		s.cfg.API.BaseURL,
		market.WithHTTPClient(s.httpClient),
		market.WithTokenStore(newCookieStore(c)),
		market.WithRateLimiter(s.limiter),
		market.WithLogger(s.log),
	)
}
