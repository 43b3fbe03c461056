package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/osse101/CharLedger_Go/internal/handler"
	"github.com/osse101/CharLedger_Go/internal/ledger"
	"github.com/osse101/CharLedger_Go/internal/metrics"
	"github.com/osse101/CharLedger_Go/internal/pending"
)

// Services are the collaborators the HTTP API dispatches to
type Services struct {
	Store   handler.Pinger
	Ledger  ledger.Service
	Pending pending.Service
	Catalog handler.ShopCatalog
}

type Server struct {
	httpServer *http.Server
}

// NewServer creates a new Server instance
func NewServer(port int, apiKey string, trustedProxies []string, svc Services) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           NewRouter(apiKey, trustedProxies, svc),
			ReadHeaderTimeout: ReadHeaderTimeout,
		},
	}
}

// NewRouter builds the middleware stack and routes
func NewRouter(apiKey string, trustedProxies []string, svc Services) http.Handler {
	r := chi.NewRouter()
	guard := NewClientGuard()

	r.Use(SecurityHeadersMiddleware())
	r.Use(RateLimitMiddleware(trustedProxies, guard))
	r.Use(AuthMiddleware(apiKey, trustedProxies, guard))
	r.Use(RequestSizeLimitMiddleware(MaxRequestBodyBytes))
	r.Use(metrics.Middleware)
	r.Use(loggingMiddleware)

	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(svc.Store))
	r.Get("/version", handler.HandleVersion())
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/characters", func(r chi.Router) {
			r.Get("/", handler.HandleListCharacters(svc.Ledger))
			r.Get("/slot", handler.HandleGetCharacter(svc.Ledger))
			r.Post("/rename", handler.HandleRenameCharacter(svc.Ledger))
			r.Post("/delete", handler.HandleDeleteCharacter(svc.Ledger))
			r.Post("/prompt", handler.HandleOpenPrompt(svc.Pending))
			r.Post("/prompt/choose", handler.HandleChooseSlot(svc.Pending))
		})

		r.Route("/credits", func(r chi.Router) {
			r.Post("/add", handler.HandleAddCredits(svc.Ledger))
			r.Post("/remove", handler.HandleRemoveCredits(svc.Ledger))
		})

		r.Route("/items", func(r chi.Router) {
			r.Post("/add", handler.HandleAddItem(svc.Ledger))
			r.Post("/remove", handler.HandleRemoveItem(svc.Ledger))
		})
		r.Get("/inventory", handler.HandleGetInventory(svc.Ledger))

		r.Route("/shop", func(r chi.Router) {
			r.Get("/", handler.HandleGetShop(svc.Catalog))
			r.Get("/suggest", handler.HandleSuggestShopItems(svc.Catalog))
			r.Post("/buy", handler.HandleBuyItem(svc.Ledger))
		})

		r.Get("/leaderboard", handler.HandleGetLeaderboard(svc.Ledger))
	})

	return r
}

// Start starts the server
func (s *Server) Start() error {
	slog.Default().Info(LogMsgServerStarting, "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
