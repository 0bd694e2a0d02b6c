package handler

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/dotbio/dotbio-api/internal/cases"
	"github.com/dotbio/dotbio-api/internal/domain"
	"github.com/dotbio/dotbio-api/internal/inventory"
)

// MockCasesService mocks cases.Service
type MockCasesService struct {
	mock.Mock
}

func (m *MockCasesService) Open(ctx context.Context, userID, caseID uuid.UUID) (*cases.OpenResult, error) {
	args := m.Called(ctx, userID, caseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cases.OpenResult), args.Error(1)
}

func (m *MockCasesService) ListCases(ctx context.Context) ([]domain.Case, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Case), args.Error(1)
}

func (m *MockCasesService) GetCase(ctx context.Context, caseID uuid.UUID) (*cases.CaseDetail, error) {
	args := m.Called(ctx, caseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cases.CaseDetail), args.Error(1)
}

func (m *MockCasesService) History(ctx context.Context, userID uuid.UUID, limit int) ([]domain.CaseOpening, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CaseOpening), args.Error(1)
}

// MockInventoryService mocks inventory.Service
type MockInventoryService struct {
	mock.Mock
}

func (m *MockInventoryService) ListItems(ctx context.Context, userID uuid.UUID) ([]domain.InventoryItem, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.InventoryItem), args.Error(1)
}

func (m *MockInventoryService) Sell(ctx context.Context, userID uuid.UUID, itemIDs []uuid.UUID, sellAll bool) (*inventory.SellResult, error) {
	args := m.Called(ctx, userID, itemIDs, sellAll)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.SellResult), args.Error(1)
}

// MockFeedService mocks livefeed.Service
type MockFeedService struct {
	mock.Mock
}

func (m *MockFeedService) Recent(ctx context.Context, limit int) ([]domain.FeedEntry, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FeedEntry), args.Error(1)
}
