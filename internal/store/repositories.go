package store

import (
	"context"

	"github.com/midenpay/notewarden/internal/config"
	"github.com/midenpay/notewarden/internal/logger"
)

// Repositories bundles every persistence port the service layer needs.
type Repositories struct {
	Transactions TransactionRepository
	Gifts        GiftRepository
}

// NewRepositories connects to the configured database, applies pending
// migrations, and wires up the per-entity repositories.
func NewRepositories(ctx context.Context, cfg config.Storage, log *logger.Logger) (*Repositories, error) {
	db, err := NewConnectPostgres(ctx, cfg.DB, log)
	if err != nil {
		return nil, err
	}

	if err := db.Migrate(); err != nil {
		log.Err(err).Str("func", "NewRepositories").Msg("error applying migrations")
		return nil, err
	}

	return &Repositories{
		Transactions: NewTransactionRepository(db, log),
		Gifts:        NewGiftRepository(db, log),
	}, nil
}
