package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"orderdesk/src/model"
)

type templateService interface {
	Save(ctx context.Context, d model.OrderDraft, name string, description *string) (*model.TemplateResponse, error)
	List(ctx context.Context) ([]model.TemplateResponse, error)
	Delete(ctx context.Context, id string) error
	Apply(ctx context.Context, id string) (model.OrderDraft, error)
}

type draftSource interface {
	Draft() model.OrderDraft
}

type saveTemplateRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
}

func ListTemplatesHandler(svc templateService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := svc.List(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		if list == nil {
			list = []model.TemplateResponse{}
		}
		writeJSON(w, http.StatusOK, list)
	}
}

// SaveTemplateHandler stores the current draft under a name.
func SaveTemplateHandler(svc templateService, drafts draftSource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req saveTemplateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, errorBody{Message: "invalid template request"})
			return
		}
		created, err := svc.Save(r.Context(), drafts.Draft(), req.Name, req.Description)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, created)
	}
}

func DeleteTemplateHandler(svc templateService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// ApplyTemplateHandler loads a saved template into the draft.
func ApplyTemplateHandler(svc templateService, p deskPipeline) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		d, err := svc.Apply(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeSnapshot(w, p.Load(d), nil)
	}
}
