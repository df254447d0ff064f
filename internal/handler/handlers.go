package handler

import (
	"github.com/midenpay/notewarden/internal/adapter"
	"github.com/midenpay/notewarden/internal/config"
	"github.com/midenpay/notewarden/internal/handler/http"
	"github.com/midenpay/notewarden/internal/logger"
	"github.com/midenpay/notewarden/internal/service"
)

type Handlers struct {
	HTTP *http.Handler
}

func NewHandlers(services *service.Services, analytics adapter.AnalyticsForwarder, cfg config.StructuredConfig, logger *logger.Logger) (*Handlers, error) {
	logger.Info().Msg("creating new handlers...")

	handlers := &Handlers{}

	if cfg.Server.HTTPAddress != "" {
		handlers.HTTP = http.NewHandler(services, analytics, cfg.App, logger)
	}

	if handlers.HTTP == nil {
		return nil, errNoHandlersAreCreated
	}

	return handlers, nil
}
