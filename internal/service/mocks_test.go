package service

import (
	"context"
	"time"

	"github.com/midenpay/notewarden/internal/store"
	"github.com/midenpay/notewarden/models"
)

type mockTransactionRepository struct {
	saveFn       func(ctx context.Context, notes ...*models.Transaction) error
	findFn       func(ctx context.Context, filter store.TransactionFilter) ([]models.Transaction, error)
	transitionFn func(ctx context.Context, ids []int64, from, to models.NoteStatus) (int64, error)
}

func (m *mockTransactionRepository) Save(ctx context.Context, notes ...*models.Transaction) error {
	if m.saveFn != nil {
		return m.saveFn(ctx, notes...)
	}
	return nil
}

func (m *mockTransactionRepository) Find(ctx context.Context, filter store.TransactionFilter) ([]models.Transaction, error) {
	if m.findFn != nil {
		return m.findFn(ctx, filter)
	}
	return nil, nil
}

func (m *mockTransactionRepository) TransitionStatus(ctx context.Context, ids []int64, from, to models.NoteStatus) (int64, error) {
	if m.transitionFn != nil {
		return m.transitionFn(ctx, ids, from, to)
	}
	return 0, nil
}

type mockGiftRepository struct {
	saveFn       func(ctx context.Context, gift *models.Gift) error
	findOneFn    func(ctx context.Context, filter store.GiftFilter) (*models.Gift, error)
	findFn       func(ctx context.Context, filter store.GiftFilter) ([]models.Gift, error)
	transitionFn func(ctx context.Context, filter store.GiftFilter, to models.NoteStatus, stamp time.Time) (*models.Gift, error)
}

func (m *mockGiftRepository) Save(ctx context.Context, gift *models.Gift) error {
	if m.saveFn != nil {
		return m.saveFn(ctx, gift)
	}
	return nil
}

func (m *mockGiftRepository) FindOne(ctx context.Context, filter store.GiftFilter) (*models.Gift, error) {
	if m.findOneFn != nil {
		return m.findOneFn(ctx, filter)
	}
	return nil, nil
}

func (m *mockGiftRepository) Find(ctx context.Context, filter store.GiftFilter) ([]models.Gift, error) {
	if m.findFn != nil {
		return m.findFn(ctx, filter)
	}
	return nil, nil
}

func (m *mockGiftRepository) Transition(ctx context.Context, filter store.GiftFilter, to models.NoteStatus, stamp time.Time) (*models.Gift, error) {
	if m.transitionFn != nil {
		return m.transitionFn(ctx, filter, to, stamp)
	}
	return nil, nil
}

type mockValidator struct {
	validateFn func(ctx context.Context, data any, fields ...string) error
}

func (m *mockValidator) Validate(ctx context.Context, data any, fields ...string) error {
	if m.validateFn != nil {
		return m.validateFn(ctx, data, fields...)
	}
	return nil
}

type mockTransactionService struct {
	TransactionService

	recallFn func(ctx context.Context, ids []int64) (int64, error)
}

func (m *mockTransactionService) Recall(ctx context.Context, ids []int64) (int64, error) {
	if m.recallFn != nil {
		return m.recallFn(ctx, ids)
	}
	return 0, nil
}

type mockGiftService struct {
	GiftService

	recallFn         func(ctx context.Context, id int64, sender string) (*models.Gift, error)
	findRecallableFn func(ctx context.Context, sender string) ([]models.Gift, error)
	findRecalledFn   func(ctx context.Context, sender string) ([]models.Gift, error)
}

func (m *mockGiftService) Recall(ctx context.Context, id int64, sender string) (*models.Gift, error) {
	if m.recallFn != nil {
		return m.recallFn(ctx, id, sender)
	}
	return nil, nil
}

func (m *mockGiftService) FindRecallable(ctx context.Context, sender string) ([]models.Gift, error) {
	if m.findRecallableFn != nil {
		return m.findRecallableFn(ctx, sender)
	}
	return nil, nil
}

func (m *mockGiftService) FindRecalled(ctx context.Context, sender string) ([]models.Gift, error) {
	if m.findRecalledFn != nil {
		return m.findRecalledFn(ctx, sender)
	}
	return nil, nil
}

type mockSignatureVerifier struct {
	verifyFn func(ctx context.Context, walletAddress, challenge, signature string) error
}

func (m *mockSignatureVerifier) Verify(ctx context.Context, walletAddress, challenge, signature string) error {
	if m.verifyFn != nil {
		return m.verifyFn(ctx, walletAddress, challenge, signature)
	}
	return nil
}
