package handlers

import (
	"go.uber.org/zap"

	"github.com/jardelbordignon/gorestaurant-details-service/internal/config"
	"github.com/jardelbordignon/gorestaurant-details-service/internal/service"
)

// Handlers holds all HTTP handlers for the details service.
type Handlers struct {
	sessionService *service.SessionService
	config         *config.Config
	logger         *zap.Logger
}

// NewHandlers creates a new handlers instance.
func NewHandlers(sessionService *service.SessionService, cfg *config.Config, logger *zap.Logger) *Handlers {
	return &Handlers{
		sessionService: sessionService,
		config:         cfg,
		logger:         logger,
	}
}
