package service

import (
	"context"
	"fmt"
	"time"

	"github.com/midenpay/notewarden/internal/logger"
	"github.com/midenpay/notewarden/internal/store"
	"github.com/midenpay/notewarden/internal/validators"
	"github.com/midenpay/notewarden/models"
)

// maxBatchSize bounds both the all-or-nothing send batch and the id
// list of a bulk recall/consume call.
const maxBatchSize = 100

// transactionService is the concrete implementation of
// TransactionService. It owns the pending → {recalled | consumed}
// lifecycle of transaction notes; all writes go through the
// repository's conditional-update path so racing settlements cannot
// both succeed.
type transactionService struct {
	transactionRepository store.TransactionRepository
	validator             validators.Validator

	// now supplies the reference time for recall-eligibility checks.
	// Overridable in tests; defaults to time.Now.
	now func() time.Time

	logger *logger.Logger
}

// NewTransactionService constructs a TransactionService wired to the
// given repository and payload validator.
func NewTransactionService(transactionRepository store.TransactionRepository, validator validators.Validator, logger *logger.Logger) TransactionService {
	return &transactionService{
		transactionRepository: transactionRepository,
		validator:             validator,
		now:                   time.Now,
		logger:                logger,
	}
}

// Send validates and persists a single transaction note.
//
// A payload that is neither private nor recallable is valid but
// untracked: public transfers settle on chain and this engine holds no
// lifecycle for them. Send returns (nil, nil) for those and performs no
// store write.
func (t *transactionService) Send(ctx context.Context, req models.SendTransactionRequest) (*models.Transaction, error) {
	log := logger.FromContext(ctx)

	note, err := t.toNote(ctx, req)
	if err != nil {
		log.Warn().Err(err).
			Str("func", "transactionService.Send").
			Msg("transaction payload rejected")
		return nil, err
	}
	if note == nil {
		log.Debug().
			Str("func", "transactionService.Send").
			Msg("payload is neither private nor recallable, nothing to track")
		return nil, nil
	}

	if err := t.transactionRepository.Save(ctx, note); err != nil {
		return nil, fmt.Errorf("saving transaction note: %w", err)
	}

	return note, nil
}

// SendBatch validates and persists up to maxBatchSize transaction notes
// as one unit. Any payload failing validation aborts the whole call
// before anything is written. Untracked payloads are skipped, so a
// batch of only public non-recallable transfers yields an empty result
// and no store write.
func (t *transactionService) SendBatch(ctx context.Context, reqs []models.SendTransactionRequest) ([]models.Transaction, error) {
	log := logger.FromContext(ctx)

	if len(reqs) > maxBatchSize {
		return nil, fmt.Errorf("%w: %d > %d", ErrBatchSizeExceeded, len(reqs), maxBatchSize)
	}

	notes := make([]*models.Transaction, 0, len(reqs))
	for idx, req := range reqs {
		note, err := t.toNote(ctx, req)
		if err != nil {
			log.Warn().Err(err).
				Str("func", "transactionService.SendBatch").
				Int("index", idx).
				Msg("batch aborted, payload rejected")
			return nil, fmt.Errorf("payload %d: %w", idx, err)
		}
		if note != nil {
			notes = append(notes, note)
		}
	}

	if len(notes) == 0 {
		return []models.Transaction{}, nil
	}

	if err := t.transactionRepository.Save(ctx, notes...); err != nil {
		return nil, fmt.Errorf("saving transaction notes: %w", err)
	}

	results := make([]models.Transaction, len(notes))
	for idx, note := range notes {
		results[idx] = *note
	}

	return results, nil
}

// Recall moves the listed notes from pending to recalled and returns
// the number of notes transitioned.
//
// Preconditions, checked in order:
//   - every id is positive and the list is non-empty and within bounds,
//   - every id resolves to a note still pending (ErrTransactionNotFound
//     on any miss — the existence check is all-or-nothing),
//   - every note is currently recall-eligible (ErrNoteNotRecallable
//     when flagged non-recallable or the window has not opened).
//
// The transition itself is one conditional bulk update; if a concurrent
// settlement wins in between, the affected count falls short and
// ErrRecallConflict is returned instead of silently under-counting.
func (t *transactionService) Recall(ctx context.Context, ids []int64) (int64, error) {
	log := logger.FromContext(ctx)

	if err := validateIDs(ids); err != nil {
		return 0, err
	}

	notes, err := t.findPending(ctx, ids)
	if err != nil {
		return 0, err
	}

	now := t.now()
	for idx := range notes {
		if !models.RecallEligible(&notes[idx], now) {
			log.Warn().
				Str("func", "transactionService.Recall").
				Int64("id", notes[idx].ID).
				Bool("recallable", notes[idx].Recallable).
				Msg("note is not recall-eligible")
			return 0, fmt.Errorf("%w: id %d", ErrNoteNotRecallable, notes[idx].ID)
		}
	}

	return t.transition(ctx, ids, models.StatusRecalled)
}

// Consume moves the listed notes from pending to consumed. Unlike
// Recall there is no eligibility gate: consumption models the
// recipient's claim, and any pending note may be claimed regardless of
// its recall settings.
func (t *transactionService) Consume(ctx context.Context, ids []int64) (int64, error) {
	if err := validateIDs(ids); err != nil {
		return 0, err
	}

	if _, err := t.findPending(ctx, ids); err != nil {
		return 0, err
	}

	return t.transition(ctx, ids, models.StatusConsumed)
}

// GetConsumable returns the recipient's claimable inbox: all pending,
// private, non-recallable notes addressed to them.
func (t *transactionService) GetConsumable(ctx context.Context, recipient string) ([]models.Transaction, error) {
	private, recallable := true, false

	notes, err := t.transactionRepository.Find(ctx, store.TransactionFilter{
		Recipient:  recipient,
		Status:     models.StatusPending,
		Private:    &private,
		Recallable: &recallable,
	})
	if err != nil {
		return nil, fmt.Errorf("finding consumable notes: %w", err)
	}

	return notes, nil
}

// toNote validates req and maps it to a pending transaction note, or
// returns (nil, nil) when the payload is valid but untracked.
func (t *transactionService) toNote(ctx context.Context, req models.SendTransactionRequest) (*models.Transaction, error) {
	if err := t.validator.Validate(ctx, &req); err != nil {
		return nil, err
	}

	if !req.Private && !req.Recallable {
		return nil, nil
	}

	return &models.Transaction{
		Sender:       req.Sender,
		Recipient:    req.Recipient,
		Assets:       req.Assets,
		Private:      req.Private,
		Recallable:   req.Recallable,
		RecallableAt: req.RecallableAt,
		SerialNumber: req.SerialNumber,
		Status:       models.StatusPending,
	}, nil
}

// findPending loads the listed notes still pending and enforces the
// all-or-nothing existence check: any id that is missing or already
// settled fails the whole call with ErrTransactionNotFound.
func (t *transactionService) findPending(ctx context.Context, ids []int64) ([]models.Transaction, error) {
	notes, err := t.transactionRepository.Find(ctx, store.TransactionFilter{
		IDs:    ids,
		Status: models.StatusPending,
	})
	if err != nil {
		return nil, fmt.Errorf("finding pending notes: %w", err)
	}

	if len(notes) != len(ids) {
		return nil, fmt.Errorf("%w: %d of %d ids pending", ErrTransactionNotFound, len(notes), len(ids))
	}

	return notes, nil
}

func (t *transactionService) transition(ctx context.Context, ids []int64, to models.NoteStatus) (int64, error) {
	affected, err := t.transactionRepository.TransitionStatus(ctx, ids, models.StatusPending, to)
	if err != nil {
		return 0, fmt.Errorf("transitioning notes to %s: %w", to, err)
	}

	if affected != int64(len(ids)) {
		return affected, fmt.Errorf("%w: %d of %d transitioned", ErrRecallConflict, affected, len(ids))
	}

	return affected, nil
}

// validateIDs enforces the shape of a bulk id list: non-empty, within
// the batch bound, every id positive.
func validateIDs(ids []int64) error {
	if len(ids) == 0 {
		return ErrEmptyIDs
	}
	if len(ids) > maxBatchSize {
		return fmt.Errorf("%w: %d > %d", ErrBatchSizeExceeded, len(ids), maxBatchSize)
	}
	for _, id := range ids {
		if id <= 0 {
			return fmt.Errorf("%w: %d", ErrInvalidNoteID, id)
		}
	}
	return nil
}
