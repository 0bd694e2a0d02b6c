package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/dotbio/dotbio-api/internal/auth"
	"github.com/dotbio/dotbio-api/internal/cases"
	"github.com/dotbio/dotbio-api/internal/domain"
)

var (
	testUserID = uuid.MustParse("11111111-1111-1111-1111-111111111111")
	testCaseID = uuid.MustParse("22222222-2222-2222-2222-222222222222")
)

// authedRequest builds a request carrying the authenticated user id,
// the way the auth middleware would
func authedRequest(method, target, body string) *http.Request {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	return req.WithContext(auth.WithUserID(req.Context(), testUserID))
}

func TestHandleOpenCase(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		svc := &MockCasesService{}
		svc.On("Open", mock.Anything, testUserID, testCaseID).Return(&cases.OpenResult{
			Item:       domain.InventoryItem{Name: "Badge X", Rarity: "common"},
			NewBalance: "150",
		}, nil)

		req := authedRequest("POST", "/api/v1/cases/open", `{"case_id":"`+testCaseID.String()+`"}`)
		w := httptest.NewRecorder()

		HandleOpenCase(svc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"new_balance":"150"`)
		assert.Contains(t, w.Body.String(), "Badge X")
		svc.AssertExpectations(t)
	})

	t.Run("Insufficient Funds", func(t *testing.T) {
		svc := &MockCasesService{}
		svc.On("Open", mock.Anything, testUserID, testCaseID).Return(nil, domain.ErrInsufficientFunds)

		req := authedRequest("POST", "/api/v1/cases/open", `{"case_id":"`+testCaseID.String()+`"}`)
		w := httptest.NewRecorder()

		HandleOpenCase(svc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), ErrMsgNotEnoughCoinsError)
	})

	t.Run("Case Not Found", func(t *testing.T) {
		svc := &MockCasesService{}
		svc.On("Open", mock.Anything, testUserID, testCaseID).Return(nil, domain.ErrCaseNotFound)

		req := authedRequest("POST", "/api/v1/cases/open", `{"case_id":"`+testCaseID.String()+`"}`)
		w := httptest.NewRecorder()

		HandleOpenCase(svc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), ErrMsgCaseNotFoundError)
	})

	t.Run("Conflict After Retries", func(t *testing.T) {
		svc := &MockCasesService{}
		svc.On("Open", mock.Anything, testUserID, testCaseID).Return(nil, domain.ErrConflict)

		req := authedRequest("POST", "/api/v1/cases/open", `{"case_id":"`+testCaseID.String()+`"}`)
		w := httptest.NewRecorder()

		HandleOpenCase(svc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("Invalid Body", func(t *testing.T) {
		svc := &MockCasesService{}

		req := authedRequest("POST", "/api/v1/cases/open", `not json`)
		w := httptest.NewRecorder()

		HandleOpenCase(svc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		svc.AssertNotCalled(t, "Open", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Missing Case ID", func(t *testing.T) {
		svc := &MockCasesService{}

		req := authedRequest("POST", "/api/v1/cases/open", `{}`)
		w := httptest.NewRecorder()

		HandleOpenCase(svc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), ErrMsgInvalidRequestSummary)
	})

	t.Run("No Authenticated User", func(t *testing.T) {
		svc := &MockCasesService{}

		req := httptest.NewRequest("POST", "/api/v1/cases/open", strings.NewReader(`{"case_id":"`+testCaseID.String()+`"}`))
		w := httptest.NewRecorder()

		HandleOpenCase(svc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestHandleListCases(t *testing.T) {
	svc := &MockCasesService{}
	svc.On("ListCases", mock.Anything).Return([]domain.Case{
		{ID: testCaseID, Name: "Starter Case", Price: 50, Active: true},
	}, nil)

	req := httptest.NewRequest("GET", "/api/v1/cases", nil)
	w := httptest.NewRecorder()

	HandleListCases(svc).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Starter Case")
}

func TestHandleGetCase(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		svc := &MockCasesService{}
		svc.On("GetCase", mock.Anything, testCaseID).Return(&cases.CaseDetail{
			Case: domain.Case{ID: testCaseID, Name: "Starter Case", Price: 50, Active: true},
			Items: []cases.CaseItemView{
				{CaseItem: domain.CaseItem{Name: "Badge X", DropRate: 90}, Odds: 90},
			},
		}, nil)

		req := httptest.NewRequest("GET", "/api/v1/cases/"+testCaseID.String(), nil)
		rctx := chi.NewRouteContext()
		rctx.URLParams.Add("caseID", testCaseID.String())
		req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
		w := httptest.NewRecorder()

		HandleGetCase(svc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"odds":90`)
	})

	t.Run("Malformed ID", func(t *testing.T) {
		svc := &MockCasesService{}

		req := httptest.NewRequest("GET", "/api/v1/cases/not-a-uuid", nil)
		rctx := chi.NewRouteContext()
		rctx.URLParams.Add("caseID", "not-a-uuid")
		req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
		w := httptest.NewRecorder()

		HandleGetCase(svc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		svc.AssertNotCalled(t, "GetCase", mock.Anything, mock.Anything)
	})
}

func TestHandleGetHistory(t *testing.T) {
	t.Run("With Limit", func(t *testing.T) {
		svc := &MockCasesService{}
		svc.On("History", mock.Anything, testUserID, 10).Return([]domain.CaseOpening{}, nil)

		req := authedRequest("GET", "/api/v1/cases/history?limit=10", "")
		w := httptest.NewRecorder()

		HandleGetHistory(svc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		svc.AssertExpectations(t)
	})

	t.Run("Bad Limit", func(t *testing.T) {
		svc := &MockCasesService{}

		req := authedRequest("GET", "/api/v1/cases/history?limit=banana", "")
		w := httptest.NewRecorder()

		HandleGetHistory(svc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		svc.AssertNotCalled(t, "History", mock.Anything, mock.Anything, mock.Anything)
	})
}
