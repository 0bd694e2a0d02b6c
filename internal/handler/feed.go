package handler

import (
	"net/http"

	"github.com/dotbio/dotbio-api/internal/livefeed"
)

// HandleGetFeed returns the recent public wins
func HandleGetFeed(svc livefeed.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, ok := GetLimitParam(r, w)
		if !ok {
			return
		}

		entries, err := svc.Recent(r.Context(), limit)
		if err != nil {
			respondServiceError(w, r, ErrMsgGetFeedFailed, err)
			return
		}
		respondJSON(w, http.StatusOK, DataResponse{Data: entries})
	}
}
