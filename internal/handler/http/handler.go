// Package http implements the HTTP transport layer of the application.
// It provides middleware, route handlers, and request/response utilities
// for the REST API. Authentication, tracing, logging, analytics
// forwarding, and API-key checking concerns are all handled at this
// layer before requests are forwarded to the service layer.
package http

import (
	"github.com/midenpay/notewarden/internal/adapter"
	"github.com/midenpay/notewarden/internal/config"
	"github.com/midenpay/notewarden/internal/logger"
	"github.com/midenpay/notewarden/internal/service"
)

type Handler struct {
	services  *service.Services
	analytics adapter.AnalyticsForwarder

	// apiKeyHash is the bcrypt hash guarding the gift surface.
	apiKeyHash string

	// version is the reported application version.
	version string

	logger *logger.Logger
}

func NewHandler(services *service.Services, analytics adapter.AnalyticsForwarder, cfg config.App, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services:   services,
		analytics:  analytics,
		apiKeyHash: cfg.APIKeyHash,
		version:    cfg.Version,
		logger:     logger,
	}
}
