package adapter

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/midenpay/notewarden/internal/config"
	"github.com/midenpay/notewarden/internal/logger"
	"github.com/midenpay/notewarden/internal/service"
)

const defaultVerifierTimeout = 10 * time.Second

var ErrSignatureRejected = errors.New("verifier rejected the signature")

// verifyRequest is the payload sent to the wallet verification service.
type verifyRequest struct {
	WalletAddress string `json:"walletAddress"`
	Challenge     string `json:"challenge"`
	Signature     string `json:"signature"`
}

// walletVerifier delegates signature checks to the external wallet
// verification service. The signing scheme belongs to the wallet stack;
// this adapter only transports the question.
type walletVerifier struct {
	client *resty.Client
}

// devVerifier accepts any non-empty signature. Used when no verifier
// endpoint is configured; the startup log calls the mode out loudly.
type devVerifier struct {
	logger *logger.Logger
}

// NewWalletVerifier builds a service.SignatureVerifier from cfg. With
// no verifier URL configured the returned verifier only requires a
// non-empty signature, which is acceptable for local development and
// nothing else.
func NewWalletVerifier(cfg config.App, log *logger.Logger) service.SignatureVerifier {
	if cfg.WalletVerifierURL == "" {
		log.Warn().
			Str("func", "NewWalletVerifier").
			Msg("no wallet verifier configured, signatures will NOT be cryptographically verified")
		return &devVerifier{logger: log}
	}

	cli := resty.New().
		SetBaseURL(strings.TrimRight(cfg.WalletVerifierURL, "/")).
		SetTimeout(defaultVerifierTimeout)

	return &walletVerifier{client: cli}
}

// Verify implements service.SignatureVerifier by asking the external
// verifier whether the wallet signed the challenge.
func (w *walletVerifier) Verify(ctx context.Context, walletAddress, challenge, signature string) error {
	resp, err := w.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(verifyRequest{
			WalletAddress: walletAddress,
			Challenge:     challenge,
			Signature:     signature,
		}).
		Post("/verify")
	if err != nil {
		return fmt.Errorf("verify request: %w", err)
	}

	if resp.IsError() {
		return fmt.Errorf("%w: status %d", ErrSignatureRejected, resp.StatusCode())
	}

	return nil
}

// Verify implements service.SignatureVerifier without cryptography.
func (d *devVerifier) Verify(_ context.Context, walletAddress, _, signature string) error {
	if strings.TrimSpace(signature) == "" {
		return ErrSignatureRejected
	}

	d.logger.Debug().
		Str("func", "devVerifier.Verify").
		Str("wallet", walletAddress).
		Msg("accepted signature without verification")

	return nil
}
