package handler

import (
	"context"
	"encoding/json"
	"net/http"

	logger "github.com/sirupsen/logrus"

	"orderdesk/src/auth"
	"orderdesk/src/draft"
	"orderdesk/src/model"
	"orderdesk/src/pipeline"
)

type deskPipeline interface {
	Snapshot() pipeline.Snapshot
	Update(updates ...draft.Update) pipeline.Snapshot
	Load(d model.OrderDraft) pipeline.Snapshot
	Reset() (pipeline.Snapshot, error)
	Preview() (pipeline.Snapshot, error)
	Submit() (pipeline.Snapshot, error)
	Cancel() (pipeline.Snapshot, error)
	Confirm(ctx context.Context) (pipeline.Outcome, error)
	ResubmitLast(ctx context.Context) (pipeline.Outcome, error)
}

// snapshotResponse carries the pipeline state, plus the error when the
// action was refused.
type snapshotResponse struct {
	pipeline.Snapshot
	Error *errorBody `json:"error,omitempty"`
}

type outcomeResponse struct {
	Outcome  pipeline.Outcome  `json:"outcome"`
	Snapshot pipeline.Snapshot `json:"snapshot"`
}

func writeSnapshot(w http.ResponseWriter, snap pipeline.Snapshot, err error) {
	resp := snapshotResponse{Snapshot: snap}
	if err != nil {
		resp.Error = &errorBody{Message: err.Error(), Field: snap.ErrorField}
	}
	writeJSON(w, statusFor(err), resp)
}

func GetDraftHandler(p deskPipeline) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeSnapshot(w, p.Snapshot(), nil)
	}
}

// PatchDraftHandler applies a partial update to the draft.
func PatchDraftHandler(p deskPipeline) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var patch model.DraftPatch
		if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
			writeJSON(w, http.StatusBadRequest, errorBody{Message: "invalid draft patch"})
			return
		}
		writeSnapshot(w, p.Update(draft.FromPatch(patch)...), nil)
	}
}

func ResetDraftHandler(p deskPipeline) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snap, err := p.Reset()
		writeSnapshot(w, snap, err)
	}
}

func PreviewHandler(p deskPipeline) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snap, err := p.Preview()
		writeSnapshot(w, snap, err)
	}
}

func SubmitHandler(p deskPipeline) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snap, err := p.Submit()
		writeSnapshot(w, snap, err)
	}
}

func CancelHandler(p deskPipeline) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snap, err := p.Cancel()
		writeSnapshot(w, snap, err)
	}
}

func ConfirmHandler(p deskPipeline) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		outcome, err := p.Confirm(r.Context())
		writeOutcome(w, r, p, outcome, err)
	}
}

// ResubmitLastHandler replays the last request id to exercise duplicate
// detection on the backend.
func ResubmitLastHandler(p deskPipeline) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		outcome, err := p.ResubmitLast(r.Context())
		writeOutcome(w, r, p, outcome, err)
	}
}

func writeOutcome(w http.ResponseWriter, r *http.Request, p deskPipeline, outcome pipeline.Outcome, err error) {
	if err != nil {
		writeSnapshot(w, p.Snapshot(), err)
		return
	}

	caller := "anonymous"
	if principal, ok := auth.GetPrincipalFromContext(r.Context()); ok {
		caller = principal.Scheme
	}
	logger.WithFields(map[string]interface{}{
		"component":  "handler",
		"path":       r.URL.Path,
		"caller":     caller,
		"request_id": outcome.RequestID,
		"state":      outcome.State,
	}).Info("Execution outcome")
	status := http.StatusOK
	if outcome.State == pipeline.StateNetworkError {
		status = http.StatusBadGateway
	}
	writeJSON(w, status, outcomeResponse{Outcome: outcome, Snapshot: p.Snapshot()})
}
