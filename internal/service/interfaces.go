package service

import (
	"context"
	"time"

	"github.com/midenpay/notewarden/models"
)

// TransactionService manages the lifecycle of transaction notes:
// creation (single and batch), sender recall, recipient consume, and
// the recipient's claimable inbox.
//
// Send returns (nil, nil) for payloads that are neither private nor
// recallable: such transfers settle publicly and are not tracked here.
type TransactionService interface {
	Send(ctx context.Context, req models.SendTransactionRequest) (*models.Transaction, error)
	SendBatch(ctx context.Context, reqs []models.SendTransactionRequest) ([]models.Transaction, error)

	Recall(ctx context.Context, ids []int64) (int64, error)
	Consume(ctx context.Context, ids []int64) (int64, error)

	GetConsumable(ctx context.Context, recipient string) ([]models.Transaction, error)
}

// GiftService manages the lifecycle of secret-claimable gift notes.
//
// GetBySecret returns (nil, nil) when no gift matches the presented
// secret: lookup is a probe, not an assertion.
type GiftService interface {
	Send(ctx context.Context, req models.CreateGiftRequest) (*models.GiftWithLink, error)
	GetBySecret(ctx context.Context, secret string) (*models.Gift, error)
	Open(ctx context.Context, secret string) (*models.Gift, error)
	Recall(ctx context.Context, id int64, sender string) (*models.Gift, error)

	FindRecallable(ctx context.Context, sender string) ([]models.Gift, error)
	FindRecalled(ctx context.Context, sender string) ([]models.Gift, error)
}

// RecallService is the cross-kind surface: the read-only recall
// dashboard and the partial-failure batch recall.
type RecallService interface {
	Dashboard(ctx context.Context, sender string, at time.Time) (*models.RecallDashboard, error)
	RecallBatch(ctx context.Context, sender string, req models.RecallBatchRequest) (*models.RecallBatchResponse, error)
}

// AuthService implements the wallet challenge handshake and the session
// token lifecycle.
type AuthService interface {
	InitiateChallenge(ctx context.Context, walletAddress string) (models.InitiateAuthResponse, error)
	Authenticate(ctx context.Context, req models.AuthenticateRequest) (models.AuthenticateResponse, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

// SignatureVerifier checks that a wallet signed the given challenge.
// The verification scheme belongs to the wallet stack and is opaque to
// this engine.
type SignatureVerifier interface {
	Verify(ctx context.Context, walletAddress, challenge, signature string) error
}
