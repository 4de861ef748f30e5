package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jardelbordignon/gorestaurant-details-service/internal/config"
	"github.com/jardelbordignon/gorestaurant-details-service/internal/handlers"
	"github.com/jardelbordignon/gorestaurant-details-service/internal/metrics"
)

type Server struct {
	config   *config.Config
	router   *gin.Engine
	handlers *handlers.Handlers
	httpSrv  *http.Server
}

func New(h *handlers.Handlers, cfg *config.Config) *Server {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(metrics.Middleware())

	s := &Server{
		config:   cfg,
		router:   router,
		handlers: h,
	}

	s.setupRoutes()

	s.httpSrv = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	return s
}

func (s *Server) setupRoutes() {
	s.router.GET("/health", s.handlers.Health)
	s.router.GET("/ready", s.handlers.Ready)
	s.router.GET("/live", s.handlers.Live)
	s.router.GET("/version", s.handlers.Version)
	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := s.router.Group("/api/v1")
	{
		v1.POST("/sessions", s.handlers.OpenSession)
		v1.GET("/sessions/:id", s.handlers.GetSession)
		v1.DELETE("/sessions/:id", s.handlers.CloseSession)

		v1.POST("/sessions/:id/extras/:extra_id/increment", s.handlers.IncrementExtra)
		v1.POST("/sessions/:id/extras/:extra_id/decrement", s.handlers.DecrementExtra)
		v1.POST("/sessions/:id/quantity/increment", s.handlers.IncrementQuantity)
		v1.POST("/sessions/:id/quantity/decrement", s.handlers.DecrementQuantity)

		v1.POST("/sessions/:id/favorite", s.handlers.ToggleFavorite)
		v1.POST("/sessions/:id/order", s.handlers.SubmitOrder)
	}
}

// Start runs the HTTP server until Shutdown.
func (s *Server) Start() error {
	return s.httpSrv.ListenAndServe()
}

// Shutdown stops the server, letting in-flight requests finish.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpSrv.Shutdown(ctx)
}
