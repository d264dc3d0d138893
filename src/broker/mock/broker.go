// Package mock is an in-process stand-in for the trading backend: execution
// with requestId deduplication, template storage and a static option chain.
package mock

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	logger "github.com/sirupsen/logrus"

	"orderdesk/src/auth"
	"orderdesk/src/idempotency"
	"orderdesk/src/model"
)

type Broker struct {
	seen      *idempotency.Cache[model.ExecutionResponse]
	rejectSet map[string]struct{}
	tokenHash string

	mu        sync.Mutex
	executed  []model.ExecutionRequest
	templates []model.TemplateResponse
	uses      map[string]int
}

func New(config Config) *Broker {
	ttl := config.DedupeTTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	reject := make(map[string]struct{}, len(config.RejectSymbols))
	for _, s := range config.RejectSymbols {
		s = strings.ToUpper(strings.TrimSpace(s))
		if s != "" {
			reject[s] = struct{}{}
		}
	}
	return &Broker{
		seen:      idempotency.NewCache[model.ExecutionResponse](ttl),
		rejectSet: reject,
		tokenHash: config.TokenHash,
		uses:      make(map[string]int),
	}
}

// Routes mounts the backend endpoints.
func (b *Broker) Routes() http.Handler {
	r := chi.NewRouter()

	r.Get("/healthcheck", func(w http.ResponseWriter, r *http.Request) {
		if _, err := w.Write([]byte("OK")); err != nil {
			logger.WithError(err).Error("healthcheck write error")
		}
	})

	r.Group(func(r chi.Router) {
		r.Use(auth.RequireBearer(b.tokenHash))

		r.Post("/trading/execute", b.execute)

		r.Get("/order-templates", b.listTemplates)
		r.Post("/order-templates", b.createTemplate)
		r.Delete("/order-templates/{id}", b.deleteTemplate)
		r.Post("/order-templates/{id}/use", b.useTemplate)

		r.Get("/options/chain", b.optionChain)
	})

	return r
}

// StartSweeper drops expired requestIds every interval until ctx ends.
func (b *Broker) StartSweeper(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if n := b.seen.Sweep(); n > 0 {
					logger.WithField("evicted", n).Debug("Swept expired request ids")
				}
			}
		}
	}()
}

// Executions returns the requests that were processed for the first time.
func (b *Broker) Executions() []model.ExecutionRequest {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]model.ExecutionRequest, len(b.executed))
	copy(out, b.executed)
	return out
}

func (b *Broker) TemplateUses(id string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.uses[id]
}

// ---------------------------------------------------
// execution
// ---------------------------------------------------

func (b *Broker) execute(w http.ResponseWriter, r *http.Request) {
	var req model.ExecutionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid execution request body")
		return
	}
	if strings.TrimSpace(req.RequestID) == "" {
		writeMessage(w, http.StatusBadRequest, "requestId is required")
		return
	}
	if len(req.Orders) == 0 {
		writeMessage(w, http.StatusBadRequest, "at least one order is required")
		return
	}

	resp := model.ExecutionResponse{Accepted: true, DryRun: req.DryRun, Orders: req.Orders}
	for _, o := range req.Orders {
		if _, rejected := b.rejectSet[strings.ToUpper(o.Symbol)]; rejected {
			resp = model.ExecutionResponse{Accepted: false, DryRun: req.DryRun}
			break
		}
	}

	first, existed := b.seen.PutIfAbsent(req.RequestID, resp)
	if existed {
		logger.WithFields(map[string]interface{}{
			"component":  "mockbroker",
			"request_id": req.RequestID,
		}).Warn("Duplicate execution request")
		writeJSON(w, http.StatusOK, model.ExecutionResponse{Accepted: first.Accepted, Duplicate: true, DryRun: req.DryRun})
		return
	}

	b.mu.Lock()
	b.executed = append(b.executed, req)
	b.mu.Unlock()

	logger.WithFields(map[string]interface{}{
		"component":  "mockbroker",
		"request_id": req.RequestID,
		"accepted":   resp.Accepted,
		"dry_run":    req.DryRun,
	}).Info("Execution request processed")
	writeJSON(w, http.StatusOK, resp)
}

// ---------------------------------------------------
// templates
// ---------------------------------------------------

func (b *Broker) listTemplates(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	out := make([]model.TemplateResponse, len(b.templates))
	copy(out, b.templates)
	b.mu.Unlock()

	writeJSON(w, http.StatusOK, out)
}

func (b *Broker) createTemplate(w http.ResponseWriter, r *http.Request) {
	var payload model.TemplatePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid template body")
		return
	}
	if strings.TrimSpace(payload.Name) == "" {
		writeMessage(w, http.StatusBadRequest, "template name is required")
		return
	}

	created := model.TemplateResponse{ID: "tpl-" + uuid.NewString(), TemplatePayload: payload}
	b.mu.Lock()
	b.templates = append(b.templates, created)
	b.mu.Unlock()

	writeJSON(w, http.StatusCreated, created)
}

func (b *Broker) deleteTemplate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	b.mu.Lock()
	defer b.mu.Unlock()
	for i, t := range b.templates {
		if t.ID == id {
			b.templates = append(b.templates[:i], b.templates[i+1:]...)
			delete(b.uses, id)
			w.WriteHeader(http.StatusNoContent)
			return
		}
	}
	writeMessage(w, http.StatusNotFound, "template not found")
}

func (b *Broker) useTemplate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	b.mu.Lock()
	defer b.mu.Unlock()
	for _, t := range b.templates {
		if t.ID == id {
			b.uses[id]++
			w.WriteHeader(http.StatusNoContent)
			return
		}
	}
	writeMessage(w, http.StatusNotFound, "template not found")
}

// ---------------------------------------------------
// helpers
// ---------------------------------------------------

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.WithError(err).Error("failed to encode mock broker response")
	}
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}
