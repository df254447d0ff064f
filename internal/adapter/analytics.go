package adapter

import (
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/midenpay/notewarden/internal/config"
	"github.com/midenpay/notewarden/internal/logger"
)

const defaultAnalyticsTimeout = 5 * time.Second

// analyticsForwarder posts events to the collector's /events endpoint.
type analyticsForwarder struct {
	client *resty.Client
	logger *logger.Logger
}

// nopForwarder drops every event. Used when no collector is configured.
type nopForwarder struct{}

func (nopForwarder) Forward(Event) {}

// NewAnalyticsForwarder builds an AnalyticsForwarder from cfg. An empty
// base URL yields a forwarder that silently drops events, so callers
// never branch on whether analytics is enabled.
func NewAnalyticsForwarder(cfg config.Analytics, log *logger.Logger) AnalyticsForwarder {
	if cfg.BaseURL == "" {
		return nopForwarder{}
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultAnalyticsTimeout
	}

	cli := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(timeout)

	return &analyticsForwarder{client: cli, logger: log}
}

// Forward ships the event in a background goroutine. Failures are
// logged and dropped; the collector is best-effort by contract.
func (a *analyticsForwarder) Forward(event Event) {
	go func() {
		resp, err := a.client.R().
			SetHeader("Content-Type", "application/json").
			SetBody(event).
			Post("/events")
		if err != nil {
			a.logger.Warn().Err(err).
				Str("func", "analyticsForwarder.Forward").
				Msg("failed to forward analytics event")
			return
		}
		if resp.IsError() {
			a.logger.Warn().
				Str("func", "analyticsForwarder.Forward").
				Int("status", resp.StatusCode()).
				Msg("analytics collector rejected event")
		}
	}()
}
