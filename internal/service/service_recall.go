package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/midenpay/notewarden/internal/logger"
	"github.com/midenpay/notewarden/internal/store"
	"github.com/midenpay/notewarden/models"
)

// recallService is the cross-kind coordinator: it aggregates the recall
// dashboard over both note kinds and runs the partial-failure batch
// recall. It performs no lifecycle logic of its own; single-item
// semantics stay with the per-kind services.
type recallService struct {
	transactionService    TransactionService
	giftService           GiftService
	transactionRepository store.TransactionRepository

	logger *logger.Logger
}

// NewRecallService constructs a RecallService delegating single-item
// operations to the per-kind services.
func NewRecallService(transactionService TransactionService, giftService GiftService, transactionRepository store.TransactionRepository, logger *logger.Logger) RecallService {
	return &recallService{
		transactionService:    transactionService,
		giftService:           giftService,
		transactionRepository: transactionRepository,
		logger:                logger,
	}
}

// Dashboard builds the sender's read-only recall snapshot at the
// reference time at (zero means now):
//
//   - pending recallable transactions and pending gifts, partitioned
//     into eligible (window open) and waiting (window not yet open),
//     tagged by kind and merged transactions-first,
//   - nextRecallTime, the minimum recallableAt across waiting items,
//     nil when nothing waits,
//   - recalledCount, the sender's lifetime recalled total across both
//     kinds.
//
// Either source set may be empty; the snapshot mutates nothing.
func (r *recallService) Dashboard(ctx context.Context, sender string, at time.Time) (*models.RecallDashboard, error) {
	if at.IsZero() {
		at = time.Now()
	}

	recallable := true
	transactions, err := r.transactionRepository.Find(ctx, store.TransactionFilter{
		Sender:     sender,
		Recallable: &recallable,
	})
	if err != nil {
		return nil, fmt.Errorf("finding recallable transactions: %w", err)
	}

	gifts, err := r.giftService.FindRecallable(ctx, sender)
	if err != nil {
		return nil, err
	}

	dashboard := &models.RecallDashboard{
		RecallableItems:      make([]models.RecallItem, 0, len(transactions)+len(gifts)),
		WaitingToRecallItems: make([]models.RecallItem, 0, len(transactions)+len(gifts)),
	}

	for idx := range transactions {
		note := &transactions[idx]
		item := models.RecallItem{Kind: models.KindTransaction, Transaction: note}

		switch {
		case models.RecallEligible(note, at):
			dashboard.RecallableItems = append(dashboard.RecallableItems, item)
		case models.WaitingToRecall(note, at):
			dashboard.WaitingToRecallItems = append(dashboard.WaitingToRecallItems, item)
			dashboard.NextRecallTime = minTime(dashboard.NextRecallTime, note.RecallableAt)
		}
	}

	for idx := range gifts {
		gift := &gifts[idx]
		item := models.RecallItem{Kind: models.KindGift, Gift: gift}

		switch {
		case models.RecallEligible(gift, at):
			dashboard.RecallableItems = append(dashboard.RecallableItems, item)
		case models.WaitingToRecall(gift, at):
			dashboard.WaitingToRecallItems = append(dashboard.WaitingToRecallItems, item)
			dashboard.NextRecallTime = minTime(dashboard.NextRecallTime, gift.RecallableAt)
		}
	}

	recalledCount, err := r.countRecalled(ctx, sender)
	if err != nil {
		return nil, err
	}
	dashboard.RecalledCount = recalledCount

	return dashboard, nil
}

// RecallBatch recalls a mixed-kind item sequence with per-item failure
// isolation. Items run concurrently (independent ids, each through its
// own conditional-update path) and results land at their input index,
// so ordering matches the request regardless of completion order.
//
// The call itself fails only on an empty or malformed container; any
// number of per-item failures still yields a full results sequence.
func (r *recallService) RecallBatch(ctx context.Context, sender string, req models.RecallBatchRequest) (*models.RecallBatchResponse, error) {
	log := logger.FromContext(ctx)

	if len(req.Items) == 0 {
		return nil, ErrEmptyBatch
	}
	if len(req.Items) > maxBatchSize {
		return nil, fmt.Errorf("%w: %d > %d", ErrBatchSizeExceeded, len(req.Items), maxBatchSize)
	}
	for _, item := range req.Items {
		if !item.Kind.Valid() {
			return nil, fmt.Errorf("%w: %q", models.ErrUnknownNoteKind, item.Kind)
		}
	}

	results := make([]models.RecallBatchItemResult, len(req.Items))

	var wg sync.WaitGroup
	for idx, item := range req.Items {
		wg.Add(1)
		go func(idx int, item models.RecallBatchItem) {
			defer wg.Done()
			results[idx] = r.recallOne(ctx, sender, item)
		}(idx, item)
	}
	wg.Wait()

	failed := 0
	for _, res := range results {
		if !res.Success {
			failed++
		}
	}
	log.Info().
		Str("func", "recallService.RecallBatch").
		Int("items", len(req.Items)).
		Int("failed", failed).
		Msg("batch recall finished")

	return &models.RecallBatchResponse{Results: results}, nil
}

// recallOne dispatches a single batch item to its lifecycle manager and
// captures the outcome. The kind switch is exhaustive over the closed
// set; the unreachable default guards against an unvalidated caller.
func (r *recallService) recallOne(ctx context.Context, sender string, item models.RecallBatchItem) models.RecallBatchItemResult {
	result := models.RecallBatchItemResult{Kind: item.Kind, ID: item.ID}

	var err error
	switch item.Kind {
	case models.KindTransaction:
		var affected int64
		affected, err = r.transactionService.Recall(ctx, []int64{item.ID})
		if err == nil && affected == 0 {
			err = ErrTransactionNotFound
		}
	case models.KindGift:
		_, err = r.giftService.Recall(ctx, item.ID, sender)
	default:
		err = fmt.Errorf("%w: %q", models.ErrUnknownNoteKind, item.Kind)
	}

	if err != nil {
		result.Error = err.Error()
		return result
	}

	result.Success = true
	return result
}

// countRecalled sums the sender's lifetime recalled notes across both
// kinds.
func (r *recallService) countRecalled(ctx context.Context, sender string) (int, error) {
	recalledTransactions, err := r.transactionRepository.Find(ctx, store.TransactionFilter{
		Sender: sender,
		Status: models.StatusRecalled,
	})
	if err != nil {
		return 0, fmt.Errorf("finding recalled transactions: %w", err)
	}

	recalledGifts, err := r.giftService.FindRecalled(ctx, sender)
	if err != nil {
		return 0, err
	}

	return len(recalledTransactions) + len(recalledGifts), nil
}

// minTime returns the earlier of current and candidate, treating nil
// current as unset.
func minTime(current, candidate *time.Time) *time.Time {
	if candidate == nil {
		return current
	}
	if current == nil || candidate.Before(*current) {
		return candidate
	}
	return current
}
