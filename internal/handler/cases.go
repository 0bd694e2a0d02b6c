package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dotbio/dotbio-api/internal/cases"
	"github.com/dotbio/dotbio-api/internal/logger"
)

// OpenCaseRequest is the request body for opening a case
type OpenCaseRequest struct {
	CaseID string `json:"case_id" validate:"required,uuid"`
}

// OpenCaseResponse is returned after a successful case open
type OpenCaseResponse struct {
	Message string            `json:"message"`
	Result  *cases.OpenResult `json:"result"`
}

// HandleOpenCase opens a case for the authenticated user
func HandleOpenCase(svc cases.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := AuthenticatedUser(w, r)
		if !ok {
			return
		}

		var req OpenCaseRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Open case"); err != nil {
			return
		}

		caseID, ok := ParseUUIDParam(w, req.CaseID, ErrMsgInvalidCaseID)
		if !ok {
			return
		}

		log := logger.FromContext(r.Context())
		log.Debug("Opening case", "user_id", userID, "case_id", caseID)

		result, err := svc.Open(r.Context(), userID, caseID)
		if err != nil {
			respondServiceError(w, r, ErrMsgOpenCaseFailed, err)
			return
		}

		respondJSON(w, http.StatusOK, OpenCaseResponse{
			Message: MsgCaseOpenedSuccess,
			Result:  result,
		})
	}
}

// HandleListCases returns the purchasable cases
func HandleListCases(svc cases.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := svc.ListCases(r.Context())
		if err != nil {
			respondServiceError(w, r, ErrMsgListCasesFailed, err)
			return
		}
		respondJSON(w, http.StatusOK, DataResponse{Data: list})
	}
}

// HandleGetCase returns a case definition with its pool and odds
func HandleGetCase(svc cases.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caseID, ok := ParseUUIDParam(w, chi.URLParam(r, "caseID"), ErrMsgInvalidCaseID)
		if !ok {
			return
		}

		detail, err := svc.GetCase(r.Context(), caseID)
		if err != nil {
			respondServiceError(w, r, ErrMsgGetCaseFailed, err)
			return
		}
		respondJSON(w, http.StatusOK, DataResponse{Data: detail})
	}
}

// HandleGetHistory returns the authenticated user's opening history
func HandleGetHistory(svc cases.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := AuthenticatedUser(w, r)
		if !ok {
			return
		}

		limit, ok := GetLimitParam(r, w)
		if !ok {
			return
		}

		openings, err := svc.History(r.Context(), userID, limit)
		if err != nil {
			respondServiceError(w, r, ErrMsgGetHistoryFailed, err)
			return
		}
		respondJSON(w, http.StatusOK, DataResponse{Data: openings})
	}
}
