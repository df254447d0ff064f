package store

import (
	"context"
	"time"

	"github.com/midenpay/notewarden/models"
)

// TransactionFilter narrows a transaction note lookup. Nil pointer
// fields are ignored; zero-length IDs means "no id restriction".
type TransactionFilter struct {
	IDs        []int64
	Sender     string
	Recipient  string
	Status     models.NoteStatus
	Private    *bool
	Recallable *bool
}

// GiftFilter narrows a gift note lookup. Zero values are ignored.
type GiftFilter struct {
	ID         int64
	Sender     string
	SecretHash string
	Status     models.NoteStatus
}

// TransactionRepository is the persistence port for transaction notes.
//
// TransitionStatus is the race-free conditional bulk update: it moves
// every listed note that is still in the expected prior status to the
// target status and reports the exact number of rows transitioned.
// Callers compare the count against their expectation to detect lost
// races instead of reading then writing.
type TransactionRepository interface {
	Save(ctx context.Context, notes ...*models.Transaction) error
	Find(ctx context.Context, filter TransactionFilter) ([]models.Transaction, error)
	TransitionStatus(ctx context.Context, ids []int64, from, to models.NoteStatus) (int64, error)
}

// GiftRepository is the persistence port for gift notes.
//
// Transition performs the single-row conditional update: the row must
// match the filter and still be in the expected prior status, otherwise
// [ErrGiftNoteNotFound] is returned. The timestamp stamp (openedAt or
// recalledAt) is chosen by the target status.
type GiftRepository interface {
	Save(ctx context.Context, gift *models.Gift) error
	FindOne(ctx context.Context, filter GiftFilter) (*models.Gift, error)
	Find(ctx context.Context, filter GiftFilter) ([]models.Gift, error)
	Transition(ctx context.Context, filter GiftFilter, to models.NoteStatus, stamp time.Time) (*models.Gift, error)
}

// ErrorClassificator decides whether a failed database operation is
// worth retrying. Implemented per backend.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}
