package cases

import (
	"context"
	"math/big"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/dotbio/dotbio-api/internal/domain"
	"github.com/dotbio/dotbio-api/internal/event"
	"github.com/dotbio/dotbio-api/internal/repository"
)

// MockRepository implements repository.Cases for testing
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) GetCase(ctx context.Context, caseID uuid.UUID) (*domain.Case, error) {
	args := m.Called(ctx, caseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Case), args.Error(1)
}

func (m *MockRepository) ListActiveCases(ctx context.Context) ([]domain.Case, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Case), args.Error(1)
}

func (m *MockRepository) GetCaseItems(ctx context.Context, caseID uuid.UUID) ([]domain.CaseItem, error) {
	args := m.Called(ctx, caseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CaseItem), args.Error(1)
}

func (m *MockRepository) GetProfile(ctx context.Context, userID uuid.UUID) (*domain.Profile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Profile), args.Error(1)
}

func (m *MockRepository) ListOpenings(ctx context.Context, userID uuid.UUID, limit int) ([]domain.CaseOpening, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CaseOpening), args.Error(1)
}

func (m *MockRepository) BeginTx(ctx context.Context) (repository.CasesTx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(repository.CasesTx), args.Error(1)
}

// MockTx implements repository.CasesTx for testing
type MockTx struct {
	mock.Mock
}

func (m *MockTx) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockTx) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockTx) DebitBalance(ctx context.Context, userID uuid.UUID, amount *big.Int) (string, error) {
	args := m.Called(ctx, userID, amount)
	return args.String(0), args.Error(1)
}

func (m *MockTx) CreditBalance(ctx context.Context, userID uuid.UUID, amount *big.Int) (string, error) {
	args := m.Called(ctx, userID, amount)
	return args.String(0), args.Error(1)
}

func (m *MockTx) InsertInventoryItem(ctx context.Context, item domain.InventoryItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockTx) InsertCaseTransaction(ctx context.Context, txn domain.CaseTransaction) error {
	args := m.Called(ctx, txn)
	return args.Error(0)
}

func (m *MockTx) InsertOpening(ctx context.Context, opening domain.CaseOpening) error {
	args := m.Called(ctx, opening)
	return args.Error(0)
}

func (m *MockTx) InsertFeedEntry(ctx context.Context, entry domain.FeedEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

// MockBus implements event.Bus for testing
type MockBus struct {
	mock.Mock
}

func (m *MockBus) Publish(ctx context.Context, evt event.Event) error {
	args := m.Called(ctx, evt)
	return args.Error(0)
}

func (m *MockBus) Subscribe(eventType event.Type, handler event.Handler) {
	m.Called(eventType, handler)
}
