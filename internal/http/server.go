// Package http is the JSON query API over the analyst. Routing is chi,
// payloads go through render, and every successful response is cached
// in a TTL LRU keyed by request URI.
package http

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"salesengine/internal/analyst"
	"salesengine/internal/cache"
	"salesengine/internal/config"
	"salesengine/internal/log"
	"salesengine/internal/store"
)

// Server wires the router, response cache, and metrics around a dataset.
type Server struct {
	httpServer   *http.Server
	logger       *log.Logger
	cacheManager *cache.Manager
	shutdownOnce sync.Once
}

func NewServer(cfg *config.Config, ds *store.Dataset, logger *log.Logger) *Server {
	responseCache := cache.NewLRUCache[any](cfg.CacheSize, cfg.CacheTTL)
	manager := cache.NewManager()
	manager.Register(responseCache)
	manager.StartCleanup(cfg.CacheCleanupInterval)

	handler := NewHandler(ds, analyst.New(ds), logger, responseCache)
	metrics := NewMetrics()

	return &Server{
		httpServer: &http.Server{
			Addr:           ":" + cfg.Port,
			Handler:        newRouter(handler, metrics, logger, cfg.ThrottleLimit),
			ReadTimeout:    10 * time.Second,
			WriteTimeout:   10 * time.Second,
			IdleTimeout:    60 * time.Second,
			MaxHeaderBytes: 1 << 16,
		},
		logger:       logger.WithComponent(log.ComponentHTTP),
		cacheManager: manager,
	}
}

func newRouter(h *Handler, metrics *Metrics, logger *log.Logger, throttleLimit int) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Throttle(throttleLimit))
	r.Use(metrics.Middleware)
	r.Use(log.Middleware(logger))

	r.Get("/healthz", h.health)
	r.Get("/readyz", h.ready)
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/merchants", func(r chi.Router) {
			r.Get("/stats", h.merchantStats)
			r.Get("/high-item-count", h.merchantsWithHighItemCount)
			r.Get("/top-by-invoices", h.topMerchantsByInvoiceCount)
			r.Get("/bottom-by-invoices", h.bottomMerchantsByInvoiceCount)
			r.Get("/one-item", h.merchantsWithOnlyOneItem)
			r.Get("/pending-invoices", h.merchantsWithPendingInvoices)
			r.Get("/top-earners", h.topRevenueEarners)
			r.Get("/{id}/average-item-price", h.averageItemPrice)
			r.Get("/{id}/revenue", h.merchantRevenue)
			r.Get("/{id}/most-sold-item", h.mostSoldItem)
			r.Get("/{id}/best-item", h.bestItem)
		})
		r.Route("/invoices", func(r chi.Router) {
			r.Get("/status", h.invoiceStatusPercentage)
			r.Get("/top-days", h.topDaysByInvoiceCount)
			r.Get("/{id}/total", h.invoiceTotal)
			r.Get("/{id}/paid", h.invoicePaid)
		})
		r.Get("/items/golden", h.goldenItems)
		r.Get("/revenue/date", h.revenueByDate)
	})

	return r
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

func (s *Server) ListenAndServe() error {
	s.logger.Info("server listening", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown stops the cache sweeper and drains in-flight requests. Safe
// to call more than once.
func (s *Server) Shutdown(ctx context.Context) error {
	var err error
	s.shutdownOnce.Do(func() {
		s.cacheManager.Stop()
		err = s.httpServer.Shutdown(ctx)
		s.logger.Info("server stopped", log.FieldOperation, log.OpShutdown)
	})
	return err
}
