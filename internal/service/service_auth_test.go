package service

import (
	"context"
	"testing"
	"time"

	"github.com/midenpay/notewarden/internal/logger"
	"github.com/midenpay/notewarden/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAuthService(verifier SignatureVerifier, now time.Time) *authService {
	return &authService{
		verifier:      verifier,
		tokenSignKey:  "test-sign-key",
		tokenIssuer:   "notewarden",
		tokenDuration: time.Hour,
		challengeTTL:  5 * time.Minute,
		challenges:    make(map[string]challenge),
		now:           func() time.Time { return now },
		logger:        logger.Nop(),
	}
}

func TestInitiateChallenge(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc := newTestAuthService(&mockSignatureVerifier{}, now)
	ctx := context.Background()

	resp, err := svc.InitiateChallenge(ctx, "  0xABCDEF1234  ")
	require.NoError(t, err)

	assert.NotEmpty(t, resp.ChallengeCode)
	assert.Equal(t, now.Add(5*time.Minute), resp.ExpiresAt)

	// the challenge is keyed by the canonicalized address
	_, ok := svc.challenges["0xabcdef1234"]
	assert.True(t, ok)
}

func TestInitiateChallenge_EmptyWallet(t *testing.T) {
	svc := newTestAuthService(&mockSignatureVerifier{}, time.Now())

	_, err := svc.InitiateChallenge(context.Background(), "   ")
	assert.ErrorIs(t, err, ErrEmptyWallet)
}

func TestInitiateChallenge_RepeatReplacesPrevious(t *testing.T) {
	svc := newTestAuthService(&mockSignatureVerifier{}, time.Now())
	ctx := context.Background()

	first, err := svc.InitiateChallenge(ctx, "0xabc")
	require.NoError(t, err)
	second, err := svc.InitiateChallenge(ctx, "0xabc")
	require.NoError(t, err)
	require.NotEqual(t, first.ChallengeCode, second.ChallengeCode)

	// only the latest challenge is redeemable
	_, err = svc.Authenticate(ctx, models.AuthenticateRequest{
		WalletAddress: "0xabc",
		ChallengeCode: first.ChallengeCode,
		Signature:     "sig",
	})
	assert.ErrorIs(t, err, ErrUnknownChallenge)

	_, err = svc.Authenticate(ctx, models.AuthenticateRequest{
		WalletAddress: "0xabc",
		ChallengeCode: second.ChallengeCode,
		Signature:     "sig",
	})
	assert.NoError(t, err)
}

func TestAuthenticate_TokenRoundTrip(t *testing.T) {
	svc := newTestAuthService(&mockSignatureVerifier{}, time.Now())
	ctx := context.Background()

	issued, err := svc.InitiateChallenge(ctx, "0xABC")
	require.NoError(t, err)

	resp, err := svc.Authenticate(ctx, models.AuthenticateRequest{
		WalletAddress: "0xABC",
		ChallengeCode: issued.ChallengeCode,
		Signature:     "sig",
	})
	require.NoError(t, err)
	require.NotEmpty(t, resp.SessionToken)
	assert.Equal(t, "0xabc", resp.WalletAddress)

	token, err := svc.ParseToken(ctx, resp.SessionToken)
	require.NoError(t, err)
	assert.Equal(t, "0xabc", token.WalletAddress)
}

func TestAuthenticate_ChallengeIsSingleUse(t *testing.T) {
	svc := newTestAuthService(&mockSignatureVerifier{}, time.Now())
	ctx := context.Background()

	issued, err := svc.InitiateChallenge(ctx, "0xabc")
	require.NoError(t, err)

	req := models.AuthenticateRequest{
		WalletAddress: "0xabc",
		ChallengeCode: issued.ChallengeCode,
		Signature:     "sig",
	}

	_, err = svc.Authenticate(ctx, req)
	require.NoError(t, err)

	_, err = svc.Authenticate(ctx, req)
	assert.ErrorIs(t, err, ErrUnknownChallenge)
}

func TestAuthenticate_ExpiredChallenge(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc := newTestAuthService(&mockSignatureVerifier{}, now)
	ctx := context.Background()

	issued, err := svc.InitiateChallenge(ctx, "0xabc")
	require.NoError(t, err)

	svc.now = func() time.Time { return now.Add(6 * time.Minute) }

	_, err = svc.Authenticate(ctx, models.AuthenticateRequest{
		WalletAddress: "0xabc",
		ChallengeCode: issued.ChallengeCode,
		Signature:     "sig",
	})
	assert.ErrorIs(t, err, ErrUnknownChallenge)
}

func TestAuthenticate_WrongChallengeCode(t *testing.T) {
	svc := newTestAuthService(&mockSignatureVerifier{}, time.Now())
	ctx := context.Background()

	_, err := svc.InitiateChallenge(ctx, "0xabc")
	require.NoError(t, err)

	_, err = svc.Authenticate(ctx, models.AuthenticateRequest{
		WalletAddress: "0xabc",
		ChallengeCode: "guessed",
		Signature:     "sig",
	})
	assert.ErrorIs(t, err, ErrUnknownChallenge)
}

func TestAuthenticate_RejectedSignature(t *testing.T) {
	verifier := &mockSignatureVerifier{
		verifyFn: func(ctx context.Context, walletAddress, challenge, signature string) error {
			return assert.AnError
		},
	}
	svc := newTestAuthService(verifier, time.Now())
	ctx := context.Background()

	issued, err := svc.InitiateChallenge(ctx, "0xabc")
	require.NoError(t, err)

	_, err = svc.Authenticate(ctx, models.AuthenticateRequest{
		WalletAddress: "0xabc",
		ChallengeCode: issued.ChallengeCode,
		Signature:     "bad-sig",
	})
	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestParseToken_RejectsForeignToken(t *testing.T) {
	svc := newTestAuthService(&mockSignatureVerifier{}, time.Now())
	other := newTestAuthService(&mockSignatureVerifier{}, time.Now())
	other.tokenSignKey = "different-key"
	ctx := context.Background()

	issued, err := other.InitiateChallenge(ctx, "0xabc")
	require.NoError(t, err)
	resp, err := other.Authenticate(ctx, models.AuthenticateRequest{
		WalletAddress: "0xabc",
		ChallengeCode: issued.ChallengeCode,
		Signature:     "sig",
	})
	require.NoError(t, err)

	_, err = svc.ParseToken(ctx, resp.SessionToken)
	assert.ErrorIs(t, err, ErrTokenIsExpired)
}
