// Package mockapi serves an in-memory imitation of the WiziShop v3 API for
// local development and integration tests of the SDK.
package mockapi

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	mw "github.com/JWebCreation/wizishop-sdk/internal/mockapi/middleware"
)

// Config describes the account the mock serves and its limits.
type Config struct {
	Username  string
	Password  string
	AccountID int64
	ShopID    int64

	// Secret signs the issued session tokens (HS256).
	Secret   []byte
	TokenTTL time.Duration

	// RateBudget calls are allowed per RateWindow; 0 disables the
	// X-RateLimit-Remaining header and 429 answers.
	RateBudget int64
	RateWindow time.Duration
}

// DefaultConfig returns the configuration of a local mock account.
func DefaultConfig() Config {
	return Config{
		Username:   "demo@example.com",
		Password:   "demo",
		AccountID:  7,
		ShopID:     42,
		Secret:     []byte("wizishop-mock-secret"),
		TokenTTL:   time.Hour,
		RateBudget: 500,
		RateWindow: time.Minute,
	}
}

// Server is the mock API.
type Server struct {
	cfg   Config
	store *Store
	log   *slog.Logger
	echo  *echo.Echo
}

// New builds the mock API over store.
func New(cfg Config, store *Store, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}

	s := &Server{cfg: cfg, store: store, log: log}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(mw.RequestLog(log), mw.Metrics(), mw.Recovery(log))

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.POST("/v3/auth/login", s.login)

	var budget *mw.Budget
	if cfg.RateBudget > 0 {
		budget = mw.NewBudget(cfg.RateBudget, cfg.RateWindow, nil)
	}

	api := e.Group("/v3", mw.BearerAuth(cfg.Secret), mw.RateLimit(budget))
	api.GET("/newsletter/subscribers", s.listSubscribers)

	shop := api.Group("/shops/:shop", s.shopScope)
	s.routes(shop)

	s.echo = e
	return s
}

func (s *Server) routes(g *echo.Group) {
	g.GET("/brands", s.listBrands)
	g.GET("/brands/:id", s.getBrand)
	g.POST("/brands", s.createBrand)
	g.PATCH("/brands/:id", s.updateBrand)
	g.DELETE("/brands/:id", s.deleteBrand)

	g.GET("/products", s.listProducts)
	g.GET("/products/:id", s.getProduct)
	g.POST("/products", s.createProduct)
	g.PUT("/products/:id", s.updateProduct)

	g.GET("/categories", s.listCategories)
	g.POST("/categories", s.createCategory)

	g.GET("/customers", s.listCustomers)
	g.GET("/customers/:id", s.getCustomer)
	g.POST("/customers", s.createCustomer)

	g.GET("/newsletter/subscribers", s.listSubscribers)

	g.GET("/skus", s.listSkus)
	g.GET("/skus/:sku", s.getSku)
	g.PUT("/skus/:sku", s.updateSkuStock)

	g.GET("/orders", s.listOrders)
	g.GET("/orders/:id", s.getOrder)
	g.GET("/orders/:id/invoice", s.orderDocument("invoice"))
	g.GET("/orders/:id/picking_slip", s.orderDocument("picking slip"))
	g.GET("/orders/:id/delivery_slip", s.orderDocument("delivery slip"))
	g.PUT("/orders/:id/status/:status", s.setOrderStatus)
	g.POST("/ordercustomstate", s.createCustomState)
}

// Handler returns the HTTP handler, for httptest servers.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start listens on addr until Shutdown is called.
func (s *Server) Start(addr string) error {
	return s.echo.Start(addr)
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

// Store returns the server's state.
func (s *Server) Store() *Store {
	return s.store
}

// IssueToken signs a session token for the configured account.
func (s *Server) IssueToken() (string, error) {
	claims := jwt.MapClaims{
		"account_id":      s.cfg.AccountID,
		"default_shop_id": s.cfg.ShopID,
		"iat":             time.Now().Unix(),
	}
	if s.cfg.TokenTTL > 0 {
		claims["exp"] = time.Now().Add(s.cfg.TokenTTL).Unix()
	}

	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.cfg.Secret)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}
	return raw, nil
}

// shopScope answers 404 for any shop other than the configured one.
func (s *Server) shopScope(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if c.Param("shop") != strconv.FormatInt(s.cfg.ShopID, 10) {
			return message(c, http.StatusNotFound, "shop not found")
		}
		return next(c)
	}
}
