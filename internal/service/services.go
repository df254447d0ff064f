package service

import (
	"github.com/midenpay/notewarden/internal/config"
	"github.com/midenpay/notewarden/internal/logger"
	"github.com/midenpay/notewarden/internal/store"
	"github.com/midenpay/notewarden/internal/validators"
)

// Services bundles every business-logic port exposed to the transport
// layer.
type Services struct {
	TransactionService TransactionService
	GiftService        GiftService
	RecallService      RecallService
	AuthService        AuthService
}

// NewServices wires the full service graph on top of the repositories.
// The signature verifier is injected by the caller so the wallet
// verification transport stays out of this package.
func NewServices(repositories *store.Repositories, verifier SignatureVerifier, cfg config.StructuredConfig, logger *logger.Logger) *Services {
	noteValidator := validators.NewNoteValidator()

	transactionService := NewTransactionService(repositories.Transactions, noteValidator, logger)
	giftService := NewGiftService(repositories.Gifts, noteValidator, cfg.App, logger)

	return &Services{
		TransactionService: transactionService,
		GiftService:        giftService,
		RecallService:      NewRecallService(transactionService, giftService, repositories.Transactions, logger),
		AuthService:        NewAuthService(verifier, cfg.App, logger),
	}
}
