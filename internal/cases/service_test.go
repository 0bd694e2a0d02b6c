package cases

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dotbio/dotbio-api/internal/domain"
	"github.com/dotbio/dotbio-api/internal/event"
	"github.com/dotbio/dotbio-api/internal/metrics"
)

var (
	testUserID = uuid.MustParse("11111111-1111-1111-1111-111111111111")
	testCaseID = uuid.MustParse("22222222-2222-2222-2222-222222222222")
	testTime   = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
)

// newTestService builds a service with deterministic rng and clock and
// no backoff sleeping
func newTestService(repo *MockRepository, bus event.Bus, rng float64) *service {
	return &service{
		repo:      repo,
		publisher: bus,
		defs:      expirable.NewLRU[uuid.UUID, definition](DefinitionCacheSize, nil, DefinitionCacheTTL),
		rnd:       func() float64 { return rng },
		now:       func() time.Time { return testTime },
		sleep:     func(time.Duration) {},
	}
}

func starterCase() *domain.Case {
	return &domain.Case{
		ID:     testCaseID,
		Name:   "Starter Case",
		Price:  50,
		Active: true,
	}
}

// starterPool mirrors the worked example: a badge at weight 90 and a
// coin bundle at weight 10, in stable pool order
func starterPool() []domain.CaseItem {
	return []domain.CaseItem{
		{
			ID:           uuid.MustParse("33333333-3333-3333-3333-333333333333"),
			CaseID:       testCaseID,
			Name:         "Badge X",
			Reward:       domain.BadgeReward("badge-x"),
			Rarity:       "common",
			DropRate:     90,
			DisplayValue: 40,
		},
		{
			ID:           uuid.MustParse("44444444-4444-4444-4444-444444444444"),
			CaseID:       testCaseID,
			Name:         "Coin Bundle",
			Reward:       domain.CoinsReward(100),
			Rarity:       "rare",
			DropRate:     10,
			DisplayValue: 100,
		},
	}
}

func testProfile() *domain.Profile {
	return &domain.Profile{
		UserID:      testUserID,
		Username:    "player",
		DisplayName: "Player One",
		Balance:     "200",
	}
}

func expectDefinition(repo *MockRepository) {
	repo.On("GetProfile", mock.Anything, testUserID).Return(testProfile(), nil)
	repo.On("GetCase", mock.Anything, testCaseID).Return(starterCase(), nil)
	repo.On("GetCaseItems", mock.Anything, testCaseID).Return(starterPool(), nil)
}

func TestOpen_BadgeWin(t *testing.T) {
	repo := new(MockRepository)
	tx := new(MockTx)
	expectDefinition(repo)
	repo.On("BeginTx", mock.Anything).Return(tx, nil)

	tx.On("DebitBalance", mock.Anything, testUserID, big.NewInt(50)).Return("150", nil)
	tx.On("InsertInventoryItem", mock.Anything, mock.AnythingOfType("domain.InventoryItem")).Return(nil)
	tx.On("InsertCaseTransaction", mock.Anything, mock.AnythingOfType("domain.CaseTransaction")).Return(nil)
	tx.On("InsertOpening", mock.Anything, mock.AnythingOfType("domain.CaseOpening")).Return(nil)
	tx.On("InsertFeedEntry", mock.Anything, mock.AnythingOfType("domain.FeedEntry")).Return(nil)
	tx.On("Commit", mock.Anything).Return(nil)
	tx.On("Rollback", mock.Anything).Return(nil).Maybe()

	// rng 0.5 lands at cumulative 50 of 100, inside the badge's 90
	svc := newTestService(repo, nil, 0.5)

	result, err := svc.Open(context.Background(), testUserID, testCaseID)
	require.NoError(t, err)
	assert.Equal(t, "Badge X", result.Item.Name)
	assert.Equal(t, "150", result.NewBalance)
	assert.Equal(t, testTime, result.Item.WonAt)

	tx.AssertNotCalled(t, "CreditBalance", mock.Anything, mock.Anything, mock.Anything)
	tx.AssertExpectations(t)
	repo.AssertExpectations(t)
}

func TestOpen_CoinWinCreditsReward(t *testing.T) {
	repo := new(MockRepository)
	tx := new(MockTx)
	expectDefinition(repo)
	repo.On("BeginTx", mock.Anything).Return(tx, nil)

	tx.On("DebitBalance", mock.Anything, testUserID, big.NewInt(50)).Return("150", nil)
	tx.On("CreditBalance", mock.Anything, testUserID, big.NewInt(100)).Return("250", nil)
	tx.On("InsertInventoryItem", mock.Anything, mock.AnythingOfType("domain.InventoryItem")).Return(nil)
	tx.On("InsertCaseTransaction", mock.Anything, mock.AnythingOfType("domain.CaseTransaction")).Return(nil)
	tx.On("InsertOpening", mock.Anything, mock.AnythingOfType("domain.CaseOpening")).Return(nil)
	tx.On("InsertFeedEntry", mock.Anything, mock.AnythingOfType("domain.FeedEntry")).Return(nil)
	tx.On("Commit", mock.Anything).Return(nil)
	tx.On("Rollback", mock.Anything).Return(nil).Maybe()

	// rng 0.95 lands at cumulative 95, past the badge's 90
	svc := newTestService(repo, nil, 0.95)

	result, err := svc.Open(context.Background(), testUserID, testCaseID)
	require.NoError(t, err)
	assert.Equal(t, "Coin Bundle", result.Item.Name)
	assert.Equal(t, "250", result.NewBalance)

	tx.AssertExpectations(t)
}

func TestOpen_InsufficientFundsWritesNothing(t *testing.T) {
	repo := new(MockRepository)
	tx := new(MockTx)
	expectDefinition(repo)
	repo.On("BeginTx", mock.Anything).Return(tx, nil)

	tx.On("DebitBalance", mock.Anything, testUserID, big.NewInt(50)).Return("", domain.ErrInsufficientFunds)
	tx.On("Rollback", mock.Anything).Return(nil)

	svc := newTestService(repo, nil, 0.5)

	_, err := svc.Open(context.Background(), testUserID, testCaseID)
	assert.ErrorIs(t, err, domain.ErrInsufficientFunds)

	tx.AssertNotCalled(t, "InsertInventoryItem", mock.Anything, mock.Anything)
	tx.AssertNotCalled(t, "Commit", mock.Anything)
	tx.AssertCalled(t, "Rollback", mock.Anything)
}

func TestOpen_FailedRewardWriteRollsBack(t *testing.T) {
	repo := new(MockRepository)
	tx := new(MockTx)
	expectDefinition(repo)
	repo.On("BeginTx", mock.Anything).Return(tx, nil)

	// The debit succeeded but the inventory write fails. Without a commit
	// the debit rolls back too, so no coins are lost on a crash between
	// the writes.
	tx.On("DebitBalance", mock.Anything, testUserID, big.NewInt(50)).Return("150", nil)
	tx.On("InsertInventoryItem", mock.Anything, mock.AnythingOfType("domain.InventoryItem")).
		Return(errors.New("connection reset"))
	tx.On("Rollback", mock.Anything).Return(nil)

	svc := newTestService(repo, nil, 0.5)

	_, err := svc.Open(context.Background(), testUserID, testCaseID)
	require.Error(t, err)

	tx.AssertCalled(t, "Rollback", mock.Anything)
	tx.AssertNotCalled(t, "Commit", mock.Anything)
	tx.AssertNotCalled(t, "InsertCaseTransaction", mock.Anything, mock.Anything)
	tx.AssertNotCalled(t, "InsertFeedEntry", mock.Anything, mock.Anything)
}

func TestOpen_FailedCoinCreditRollsBack(t *testing.T) {
	repo := new(MockRepository)
	tx := new(MockTx)
	expectDefinition(repo)
	repo.On("BeginTx", mock.Anything).Return(tx, nil)

	tx.On("DebitBalance", mock.Anything, testUserID, big.NewInt(50)).Return("150", nil)
	tx.On("CreditBalance", mock.Anything, testUserID, big.NewInt(100)).
		Return("", errors.New("connection reset"))
	tx.On("Rollback", mock.Anything).Return(nil)

	// rng 0.95 draws the coin bundle, forcing the credit path
	svc := newTestService(repo, nil, 0.95)

	_, err := svc.Open(context.Background(), testUserID, testCaseID)
	require.Error(t, err)

	tx.AssertCalled(t, "Rollback", mock.Anything)
	tx.AssertNotCalled(t, "Commit", mock.Anything)
	tx.AssertNotCalled(t, "InsertInventoryItem", mock.Anything, mock.Anything)
}

func TestOpen_InactiveCase(t *testing.T) {
	repo := new(MockRepository)
	inactive := starterCase()
	inactive.Active = false

	repo.On("GetProfile", mock.Anything, testUserID).Return(testProfile(), nil)
	repo.On("GetCase", mock.Anything, testCaseID).Return(inactive, nil)
	repo.On("GetCaseItems", mock.Anything, testCaseID).Return(starterPool(), nil)

	svc := newTestService(repo, nil, 0.5)

	_, err := svc.Open(context.Background(), testUserID, testCaseID)
	assert.ErrorIs(t, err, domain.ErrCaseNotFound)
	repo.AssertNotCalled(t, "BeginTx", mock.Anything)
}

func TestOpen_EmptyPool(t *testing.T) {
	repo := new(MockRepository)
	repo.On("GetProfile", mock.Anything, testUserID).Return(testProfile(), nil)
	repo.On("GetCase", mock.Anything, testCaseID).Return(starterCase(), nil)
	repo.On("GetCaseItems", mock.Anything, testCaseID).Return([]domain.CaseItem{}, nil)

	svc := newTestService(repo, nil, 0.5)

	_, err := svc.Open(context.Background(), testUserID, testCaseID)
	assert.ErrorIs(t, err, domain.ErrEmptyPool)
}

func TestOpen_ProfileNotFound(t *testing.T) {
	repo := new(MockRepository)
	repo.On("GetProfile", mock.Anything, testUserID).Return(nil, domain.ErrProfileNotFound)

	svc := newTestService(repo, nil, 0.5)

	_, err := svc.Open(context.Background(), testUserID, testCaseID)
	assert.ErrorIs(t, err, domain.ErrProfileNotFound)
}

func TestOpen_ConflictRetriesThenSucceeds(t *testing.T) {
	repo := new(MockRepository)
	expectDefinition(repo)

	conflicted := new(MockTx)
	conflicted.On("DebitBalance", mock.Anything, testUserID, big.NewInt(50)).
		Return("", fmt.Errorf("debit: %w", domain.ErrConflict))
	conflicted.On("Rollback", mock.Anything).Return(nil)

	clean := new(MockTx)
	clean.On("DebitBalance", mock.Anything, testUserID, big.NewInt(50)).Return("150", nil)
	clean.On("InsertInventoryItem", mock.Anything, mock.AnythingOfType("domain.InventoryItem")).Return(nil)
	clean.On("InsertCaseTransaction", mock.Anything, mock.AnythingOfType("domain.CaseTransaction")).Return(nil)
	clean.On("InsertOpening", mock.Anything, mock.AnythingOfType("domain.CaseOpening")).Return(nil)
	clean.On("InsertFeedEntry", mock.Anything, mock.AnythingOfType("domain.FeedEntry")).Return(nil)
	clean.On("Commit", mock.Anything).Return(nil)
	clean.On("Rollback", mock.Anything).Return(nil).Maybe()

	repo.On("BeginTx", mock.Anything).Return(conflicted, nil).Once()
	repo.On("BeginTx", mock.Anything).Return(clean, nil).Once()

	svc := newTestService(repo, nil, 0.5)

	retriesBefore := testutil.ToFloat64(metrics.OpenRetries)

	result, err := svc.Open(context.Background(), testUserID, testCaseID)
	require.NoError(t, err)
	assert.Equal(t, "150", result.NewBalance)
	repo.AssertNumberOfCalls(t, "BeginTx", 2)
	assert.Equal(t, retriesBefore+1, testutil.ToFloat64(metrics.OpenRetries))
}

func TestOpen_ConflictExhaustsRetries(t *testing.T) {
	repo := new(MockRepository)
	expectDefinition(repo)

	tx := new(MockTx)
	tx.On("DebitBalance", mock.Anything, testUserID, big.NewInt(50)).
		Return("", fmt.Errorf("debit: %w", domain.ErrConflict))
	tx.On("Rollback", mock.Anything).Return(nil)
	repo.On("BeginTx", mock.Anything).Return(tx, nil)

	svc := newTestService(repo, nil, 0.5)

	_, err := svc.Open(context.Background(), testUserID, testCaseID)
	assert.ErrorIs(t, err, domain.ErrConflict)
	repo.AssertNumberOfCalls(t, "BeginTx", MaxOpenAttempts)
}

func TestOpen_PublishesEvent(t *testing.T) {
	repo := new(MockRepository)
	tx := new(MockTx)
	bus := new(MockBus)
	expectDefinition(repo)
	repo.On("BeginTx", mock.Anything).Return(tx, nil)

	tx.On("DebitBalance", mock.Anything, testUserID, big.NewInt(50)).Return("150", nil)
	tx.On("InsertInventoryItem", mock.Anything, mock.AnythingOfType("domain.InventoryItem")).Return(nil)
	tx.On("InsertCaseTransaction", mock.Anything, mock.AnythingOfType("domain.CaseTransaction")).Return(nil)
	tx.On("InsertOpening", mock.Anything, mock.AnythingOfType("domain.CaseOpening")).Return(nil)
	tx.On("InsertFeedEntry", mock.Anything, mock.AnythingOfType("domain.FeedEntry")).Return(nil)
	tx.On("Commit", mock.Anything).Return(nil)
	tx.On("Rollback", mock.Anything).Return(nil).Maybe()

	bus.On("Publish", mock.Anything, mock.MatchedBy(func(evt event.Event) bool {
		payload, ok := evt.Payload.(domain.CaseOpenedPayload)
		_, parseErr := uuid.Parse(payload.FeedEntryID)
		return ok &&
			evt.Type == event.CaseOpened &&
			payload.ItemName == "Badge X" &&
			payload.PricePaid == 50 &&
			payload.DisplayName == "Player One" &&
			parseErr == nil
	})).Return(nil)

	svc := newTestService(repo, bus, 0.5)

	_, err := svc.Open(context.Background(), testUserID, testCaseID)
	require.NoError(t, err)
	bus.AssertExpectations(t)
}

func TestOpen_PublishFailureDoesNotFailOpen(t *testing.T) {
	repo := new(MockRepository)
	tx := new(MockTx)
	bus := new(MockBus)
	expectDefinition(repo)
	repo.On("BeginTx", mock.Anything).Return(tx, nil)

	tx.On("DebitBalance", mock.Anything, testUserID, big.NewInt(50)).Return("150", nil)
	tx.On("InsertInventoryItem", mock.Anything, mock.AnythingOfType("domain.InventoryItem")).Return(nil)
	tx.On("InsertCaseTransaction", mock.Anything, mock.AnythingOfType("domain.CaseTransaction")).Return(nil)
	tx.On("InsertOpening", mock.Anything, mock.AnythingOfType("domain.CaseOpening")).Return(nil)
	tx.On("InsertFeedEntry", mock.Anything, mock.AnythingOfType("domain.FeedEntry")).Return(nil)
	tx.On("Commit", mock.Anything).Return(nil)
	tx.On("Rollback", mock.Anything).Return(nil).Maybe()

	bus.On("Publish", mock.Anything, mock.Anything).Return(errors.New("bus down"))

	svc := newTestService(repo, bus, 0.5)

	errorsBefore := testutil.ToFloat64(metrics.EventHandlerErrors.WithLabelValues(string(event.CaseOpened)))

	result, err := svc.Open(context.Background(), testUserID, testCaseID)
	require.NoError(t, err)
	assert.Equal(t, "150", result.NewBalance)
	assert.Equal(t, errorsBefore+1, testutil.ToFloat64(metrics.EventHandlerErrors.WithLabelValues(string(event.CaseOpened))))
}

func TestGetCase_OddsArePercentages(t *testing.T) {
	repo := new(MockRepository)
	repo.On("GetCase", mock.Anything, testCaseID).Return(starterCase(), nil)
	repo.On("GetCaseItems", mock.Anything, testCaseID).Return(starterPool(), nil)

	svc := newTestService(repo, nil, 0)

	detail, err := svc.GetCase(context.Background(), testCaseID)
	require.NoError(t, err)
	require.Len(t, detail.Items, 2)
	assert.InDelta(t, 90.0, detail.Items[0].Odds, 1e-9)
	assert.InDelta(t, 10.0, detail.Items[1].Odds, 1e-9)
}

func TestGetCase_InactiveReportsNotFound(t *testing.T) {
	repo := new(MockRepository)
	inactive := starterCase()
	inactive.Active = false
	repo.On("GetCase", mock.Anything, testCaseID).Return(inactive, nil)
	repo.On("GetCaseItems", mock.Anything, testCaseID).Return(starterPool(), nil)

	svc := newTestService(repo, nil, 0)

	_, err := svc.GetCase(context.Background(), testCaseID)
	assert.ErrorIs(t, err, domain.ErrCaseNotFound)
}

func TestGetCase_DefinitionServedFromCache(t *testing.T) {
	repo := new(MockRepository)
	repo.On("GetCase", mock.Anything, testCaseID).Return(starterCase(), nil).Once()
	repo.On("GetCaseItems", mock.Anything, testCaseID).Return(starterPool(), nil).Once()

	svc := newTestService(repo, nil, 0)

	_, err := svc.GetCase(context.Background(), testCaseID)
	require.NoError(t, err)
	_, err = svc.GetCase(context.Background(), testCaseID)
	require.NoError(t, err)

	repo.AssertNumberOfCalls(t, "GetCase", 1)
}

func TestHistory_DefaultsLimit(t *testing.T) {
	repo := new(MockRepository)
	repo.On("ListOpenings", mock.Anything, testUserID, DefaultHistoryLimit).Return([]domain.CaseOpening{}, nil)

	svc := newTestService(repo, nil, 0)

	_, err := svc.History(context.Background(), testUserID, 0)
	require.NoError(t, err)
	repo.AssertExpectations(t)
}
