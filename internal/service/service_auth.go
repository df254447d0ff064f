package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/midenpay/notewarden/internal/config"
	"github.com/midenpay/notewarden/internal/logger"
	"github.com/midenpay/notewarden/internal/utils"
	"github.com/midenpay/notewarden/models"
)

// challenge is a single outstanding auth challenge: a one-time code a
// wallet must sign within its TTL to obtain a session token.
type challenge struct {
	code      string
	expiresAt time.Time
}

// authService is the concrete implementation of AuthService. It runs
// the two-step wallet handshake (challenge issuance, signed-challenge
// exchange) and the JWT session token lifecycle.
//
// Outstanding challenges live in memory, keyed by wallet address: a
// restart simply forces wallets to restart the handshake, which costs
// one round trip and no persisted state.
type authService struct {
	verifier SignatureVerifier

	tokenSignKey  string
	tokenIssuer   string
	tokenDuration time.Duration
	challengeTTL  time.Duration

	mu         sync.Mutex
	challenges map[string]challenge

	now func() time.Time

	logger *logger.Logger
}

// NewAuthService constructs an AuthService populated with security
// parameters from cfg. The verifier checks wallet signatures; its
// scheme is opaque to this service.
//
// The returned service is safe for concurrent use.
func NewAuthService(verifier SignatureVerifier, cfg config.App, logger *logger.Logger) AuthService {
	return &authService{
		verifier:      verifier,
		tokenSignKey:  cfg.TokenSignKey,
		tokenIssuer:   cfg.TokenIssuer,
		tokenDuration: cfg.TokenDuration,
		challengeTTL:  cfg.ChallengeTTL,
		challenges:    make(map[string]challenge),
		now:           time.Now,
		logger:        logger,
	}
}

// InitiateChallenge issues a fresh one-time challenge for the wallet.
// A repeat call before the previous challenge is redeemed replaces it;
// only the latest challenge is redeemable.
func (a *authService) InitiateChallenge(ctx context.Context, walletAddress string) (models.InitiateAuthResponse, error) {
	log := logger.FromContext(ctx)

	walletAddress = strings.ToLower(strings.TrimSpace(walletAddress))
	if walletAddress == "" {
		return models.InitiateAuthResponse{}, ErrEmptyWallet
	}

	ch := challenge{
		code:      uuid.NewString(),
		expiresAt: a.now().Add(a.challengeTTL),
	}

	a.mu.Lock()
	a.challenges[walletAddress] = ch
	a.mu.Unlock()

	log.Info().
		Str("func", "authService.InitiateChallenge").
		Str("wallet", walletAddress).
		Time("expires_at", ch.expiresAt).
		Msg("issued auth challenge")

	return models.InitiateAuthResponse{
		ChallengeCode: ch.code,
		ExpiresAt:     ch.expiresAt,
	}, nil
}

// Authenticate exchanges a signed challenge for a session token.
//
// The presented challenge must be the wallet's latest, unexpired one
// and the signature must verify against it. The challenge is consumed
// on success, so a token can be minted from it exactly once.
func (a *authService) Authenticate(ctx context.Context, req models.AuthenticateRequest) (models.AuthenticateResponse, error) {
	log := logger.FromContext(ctx)

	walletAddress := strings.ToLower(strings.TrimSpace(req.WalletAddress))
	if walletAddress == "" {
		return models.AuthenticateResponse{}, ErrEmptyWallet
	}

	if err := a.redeemChallenge(walletAddress, req.ChallengeCode); err != nil {
		log.Warn().Err(err).
			Str("func", "authService.Authenticate").
			Str("wallet", walletAddress).
			Msg("challenge redemption rejected")
		return models.AuthenticateResponse{}, err
	}

	if err := a.verifier.Verify(ctx, walletAddress, req.ChallengeCode, req.Signature); err != nil {
		log.Warn().Err(err).
			Str("func", "authService.Authenticate").
			Str("wallet", walletAddress).
			Msg("challenge signature rejected")
		return models.AuthenticateResponse{}, fmt.Errorf("%w: %w", ErrInvalidSignature, err)
	}

	token, err := utils.GenerateJWTToken(a.tokenIssuer, walletAddress, a.tokenDuration, a.tokenSignKey)
	if err != nil {
		return models.AuthenticateResponse{}, fmt.Errorf("generating session token: %w", err)
	}

	log.Info().
		Str("func", "authService.Authenticate").
		Str("wallet", walletAddress).
		Msg("session token issued")

	return models.AuthenticateResponse{
		SessionToken:  token.SignedString,
		WalletAddress: walletAddress,
		ExpiresAt:     a.now().Add(a.tokenDuration),
	}, nil
}

// ParseToken validates a presented session token and returns the parsed
// token with the wallet address extracted from its subject claim.
func (a *authService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	log := logger.FromContext(ctx)

	token, err := utils.ValidateAndParseJWTToken(tokenString, a.tokenSignKey, a.tokenIssuer)
	if err != nil {
		log.Warn().Err(err).
			Str("func", "authService.ParseToken").
			Msg("session token rejected")
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenIsExpired, err)
	}

	return token, nil
}

// redeemChallenge consumes the wallet's outstanding challenge if code
// matches and the TTL has not elapsed. Expired or mismatched challenges
// read as unknown; the caller cannot distinguish the two.
func (a *authService) redeemChallenge(walletAddress, code string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	ch, ok := a.challenges[walletAddress]
	if !ok || ch.code != code {
		return ErrUnknownChallenge
	}
	if a.now().After(ch.expiresAt) {
		delete(a.challenges, walletAddress)
		return ErrUnknownChallenge
	}

	delete(a.challenges, walletAddress)
	return nil
}
