package http

import (
	"context"
	"sync"
	"time"

	"github.com/midenpay/notewarden/internal/adapter"
	"github.com/midenpay/notewarden/internal/service"
	"github.com/midenpay/notewarden/models"
)

type mockTransactionService struct {
	sendFn          func(ctx context.Context, req models.SendTransactionRequest) (*models.Transaction, error)
	sendBatchFn     func(ctx context.Context, reqs []models.SendTransactionRequest) ([]models.Transaction, error)
	recallFn        func(ctx context.Context, ids []int64) (int64, error)
	consumeFn       func(ctx context.Context, ids []int64) (int64, error)
	getConsumableFn func(ctx context.Context, recipient string) ([]models.Transaction, error)
}

func (m *mockTransactionService) Send(ctx context.Context, req models.SendTransactionRequest) (*models.Transaction, error) {
	if m.sendFn != nil {
		return m.sendFn(ctx, req)
	}
	return nil, nil
}

func (m *mockTransactionService) SendBatch(ctx context.Context, reqs []models.SendTransactionRequest) ([]models.Transaction, error) {
	if m.sendBatchFn != nil {
		return m.sendBatchFn(ctx, reqs)
	}
	return nil, nil
}

func (m *mockTransactionService) Recall(ctx context.Context, ids []int64) (int64, error) {
	if m.recallFn != nil {
		return m.recallFn(ctx, ids)
	}
	return 0, nil
}

func (m *mockTransactionService) Consume(ctx context.Context, ids []int64) (int64, error) {
	if m.consumeFn != nil {
		return m.consumeFn(ctx, ids)
	}
	return 0, nil
}

func (m *mockTransactionService) GetConsumable(ctx context.Context, recipient string) ([]models.Transaction, error) {
	if m.getConsumableFn != nil {
		return m.getConsumableFn(ctx, recipient)
	}
	return nil, nil
}

type mockGiftService struct {
	sendFn           func(ctx context.Context, req models.CreateGiftRequest) (*models.GiftWithLink, error)
	getBySecretFn    func(ctx context.Context, secret string) (*models.Gift, error)
	openFn           func(ctx context.Context, secret string) (*models.Gift, error)
	recallFn         func(ctx context.Context, id int64, sender string) (*models.Gift, error)
	findRecallableFn func(ctx context.Context, sender string) ([]models.Gift, error)
	findRecalledFn   func(ctx context.Context, sender string) ([]models.Gift, error)
}

func (m *mockGiftService) Send(ctx context.Context, req models.CreateGiftRequest) (*models.GiftWithLink, error) {
	if m.sendFn != nil {
		return m.sendFn(ctx, req)
	}
	return nil, nil
}

func (m *mockGiftService) GetBySecret(ctx context.Context, secret string) (*models.Gift, error) {
	if m.getBySecretFn != nil {
		return m.getBySecretFn(ctx, secret)
	}
	return nil, nil
}

func (m *mockGiftService) Open(ctx context.Context, secret string) (*models.Gift, error) {
	if m.openFn != nil {
		return m.openFn(ctx, secret)
	}
	return nil, nil
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

type mockRecallService struct {
	dashboardFn   func(ctx context.Context, sender string, at time.Time) (*models.RecallDashboard, error)
	recallBatchFn func(ctx context.Context, sender string, req models.RecallBatchRequest) (*models.RecallBatchResponse, error)
}

func (m *mockRecallService) Dashboard(ctx context.Context, sender string, at time.Time) (*models.RecallDashboard, error) {
	if m.dashboardFn != nil {
		return m.dashboardFn(ctx, sender, at)
	}
	return &models.RecallDashboard{}, nil
}

func (m *mockRecallService) RecallBatch(ctx context.Context, sender string, req models.RecallBatchRequest) (*models.RecallBatchResponse, error) {
	if m.recallBatchFn != nil {
		return m.recallBatchFn(ctx, sender, req)
	}
	return &models.RecallBatchResponse{}, nil
}

type mockAuthService struct {
	initiateFn     func(ctx context.Context, walletAddress string) (models.InitiateAuthResponse, error)
	authenticateFn func(ctx context.Context, req models.AuthenticateRequest) (models.AuthenticateResponse, error)
	parseTokenFn   func(ctx context.Context, tokenString string) (models.Token, error)
}

func (m *mockAuthService) InitiateChallenge(ctx context.Context, walletAddress string) (models.InitiateAuthResponse, error) {
	if m.initiateFn != nil {
		return m.initiateFn(ctx, walletAddress)
	}
	return models.InitiateAuthResponse{}, nil
}

func (m *mockAuthService) Authenticate(ctx context.Context, req models.AuthenticateRequest) (models.AuthenticateResponse, error) {
	if m.authenticateFn != nil {
		return m.authenticateFn(ctx, req)
	}
	return models.AuthenticateResponse{}, nil
}

func (m *mockAuthService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	if m.parseTokenFn != nil {
		return m.parseTokenFn(ctx, tokenString)
	}
	return models.Token{}, nil
}

// mockAnalytics records forwarded events for assertion.
type mockAnalytics struct {
	mu     sync.Mutex
	events []adapter.Event
}

func (m *mockAnalytics) Forward(event adapter.Event) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, event)
}

func (m *mockAnalytics) recorded() []adapter.Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]adapter.Event, len(m.events))
	copy(out, m.events)
	return out
}

func defaultMockServices() *service.Services {
	return &service.Services{
		TransactionService: &mockTransactionService{},
		GiftService:        &mockGiftService{},
		RecallService:      &mockRecallService{},
		AuthService:        &mockAuthService{},
	}
}
