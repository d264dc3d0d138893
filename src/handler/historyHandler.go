package handler

import (
	"context"
	"net/http"
	"strconv"

	logger "github.com/sirupsen/logrus"

	"orderdesk/src/model"
)

type historyLister interface {
	List(ctx context.Context, limit int) ([]model.OrderHistoryEntry, error)
}

// HistoryHandler lists recorded execution outcomes, newest first.
func HistoryHandler(repo historyLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := 0
		if limitParam := r.URL.Query().Get("limit"); limitParam != "" {
			parsed, err := strconv.Atoi(limitParam)
			if err != nil || parsed <= 0 {
				http.Error(w, "invalid limit", http.StatusBadRequest)
				return
			}
			limit = parsed
		}

		entries, err := repo.List(r.Context(), limit)
		if err != nil {
			logger.WithError(err).Error("failed to list order history")
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
		if entries == nil {
			entries = []model.OrderHistoryEntry{}
		}
		writeJSON(w, http.StatusOK, entries)
	}
}
