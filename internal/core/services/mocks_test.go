package services_test

import (
	"context"
	"time"

	"github.com/SscSPs/pleasybank_client/internal/core/domain"
	"github.com/stretchr/testify/mock"
)

// MockBackendClient is a mock type for the BackendClient interface
type MockBackendClient struct {
	mock.Mock
}

func (m *MockBackendClient) Transfer(ctx context.Context, req domain.TransferRequest) (any, error) {
	args := m.Called(ctx, req)
	return args.Get(0), args.Error(1)
}

func (m *MockBackendClient) GetAccount(ctx context.Context, accountID string) (any, error) {
	args := m.Called(ctx, accountID)
	return args.Get(0), args.Error(1)
}

func (m *MockBackendClient) CloseAccount(ctx context.Context, accountID string, verb domain.CloseVerb) (any, error) {
	args := m.Called(ctx, accountID, verb)
	return args.Get(0), args.Error(1)
}

func (m *MockBackendClient) ListAccounts(ctx context.Context) ([]any, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]any), args.Error(1)
}

func (m *MockBackendClient) ListTransactions(ctx context.Context, accountID string, filter domain.TransactionFilter) ([]any, error) {
	args := m.Called(ctx, accountID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]any), args.Error(1)
}

// MockSettlementLockRepository is a mock type for the SettlementLockRepository interface
type MockSettlementLockRepository struct {
	mock.Mock
}

func (m *MockSettlementLockRepository) AcquireSettlementLock(ctx context.Context, accountID string, owner string, ttl time.Duration) (bool, error) {
	args := m.Called(ctx, accountID, owner, ttl)
	return args.Bool(0), args.Error(1)
}

func (m *MockSettlementLockRepository) ExtendSettlementLock(ctx context.Context, accountID string, owner string, ttl time.Duration) (bool, error) {
	args := m.Called(ctx, accountID, owner, ttl)
	return args.Bool(0), args.Error(1)
}

func (m *MockSettlementLockRepository) ReleaseSettlementLock(ctx context.Context, accountID string, owner string) error {
	args := m.Called(ctx, accountID, owner)
	return args.Error(0)
}

// MockAnalyticsClient is a mock type for the AnalyticsClient interface
type MockAnalyticsClient struct {
	mock.Mock
}

func (m *MockAnalyticsClient) Enqueue(distinctID string, event string, properties map[string]any) {
	m.Called(distinctID, event, properties)
}

// --- Raw backend payloads ---

func rawAccount(id string, accountType string, balance int64) map[string]any {
	return map[string]any{
		"id":          id,
		"accountType": accountType,
		"balance":     balance,
		"status":      "ACTIVE",
		"currency":    "KRW",
	}
}

func rawClosedAccount(id string, accountType string) map[string]any {
	return map[string]any{
		"id":          id,
		"accountType": accountType,
		"balance":     0,
		"status":      "CLOSED",
		"currency":    "KRW",
	}
}
