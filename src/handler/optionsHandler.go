package handler

import (
	"context"
	"net/http"
)

type chainLookup interface {
	Expirations(ctx context.Context, symbol string) ([]string, error)
	Strikes(ctx context.Context, symbol, expiration string) ([]float64, error)
}

type expirationsResponse struct {
	Expirations []string `json:"expirations"`
}

type strikesResponse struct {
	Strikes []float64 `json:"strikes"`
}

// ExpirationsHandler resolves expirations for ?symbol=. A request replaced by
// a newer one before its lookup ran answers 409.
func ExpirationsHandler(chain chainLookup) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		exps, err := chain.Expirations(r.Context(), r.URL.Query().Get("symbol"))
		if err != nil {
			writeError(w, err)
			return
		}
		if exps == nil {
			exps = []string{}
		}
		writeJSON(w, http.StatusOK, expirationsResponse{Expirations: exps})
	}
}

func StrikesHandler(chain chainLookup) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		strikes, err := chain.Strikes(r.Context(), q.Get("symbol"), q.Get("expiration"))
		if err != nil {
			writeError(w, err)
			return
		}
		if strikes == nil {
			strikes = []float64{}
		}
		writeJSON(w, http.StatusOK, strikesResponse{Strikes: strikes})
	}
}
