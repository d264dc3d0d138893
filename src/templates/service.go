package templates

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"sync"
	"time"

	logger "github.com/sirupsen/logrus"

	"orderdesk/src/connectors"
	"orderdesk/src/mapper"
	"orderdesk/src/model"
)

var (
	ErrTemplateNotFound     = errors.New("template not found")
	ErrTemplateNameRequired = errors.New("template name is required")
)

const usagePingTimeout = 5 * time.Second

// Backend is the template half of the trading backend.
type Backend interface {
	ListTemplates(ctx context.Context) ([]model.TemplateResponse, error)
	CreateTemplate(ctx context.Context, payload model.TemplatePayload) (*model.TemplateResponse, error)
	DeleteTemplate(ctx context.Context, id string) error
	TrackTemplateUse(ctx context.Context, id string) error
}

// Service saves drafts as named templates and loads them back into drafts.
type Service struct {
	backend Backend
	pings   sync.WaitGroup
}

func NewService(backend Backend) *Service {
	return &Service{backend: backend}
}

// Save stores the draft as is. Templates may hold incomplete drafts, so no
// validation runs here.
func (s *Service) Save(ctx context.Context, d model.OrderDraft, name string, description *string) (*model.TemplateResponse, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrTemplateNameRequired
	}
	payload := mapper.DraftToTemplatePayload(d, name, description)

	created, err := s.backend.CreateTemplate(ctx, payload)
	if err != nil {
		return nil, err
	}

	logger.WithFields(map[string]interface{}{
		"component": "templates",
		"op":        "Save",
		"id":        created.ID,
		"name":      created.Name,
	}).Info("Template saved")
	return created, nil
}

func (s *Service) List(ctx context.Context) ([]model.TemplateResponse, error) {
	return s.backend.ListTemplates(ctx)
}

// Delete removes a template. A 404 from the backend becomes ErrTemplateNotFound.
func (s *Service) Delete(ctx context.Context, id string) error {
	err := s.backend.DeleteTemplate(ctx, id)
	var te *connectors.TransportError
	if errors.As(err, &te) && te.StatusCode == http.StatusNotFound {
		return ErrTemplateNotFound
	}
	return err
}

// Apply loads a template into a fresh draft and records the use in the
// background. A failed usage ping is logged and otherwise ignored.
func (s *Service) Apply(ctx context.Context, id string) (model.OrderDraft, error) {
	list, err := s.backend.ListTemplates(ctx)
	if err != nil {
		return model.OrderDraft{}, err
	}

	for _, t := range list {
		if t.ID != id {
			continue
		}
		s.trackUse(id)
		return mapper.TemplateToDraft(t.TemplatePayload), nil
	}
	return model.OrderDraft{}, ErrTemplateNotFound
}

func (s *Service) trackUse(id string) {
	s.pings.Add(1)
	go func() {
		defer s.pings.Done()
		ctx, cancel := context.WithTimeout(context.Background(), usagePingTimeout)
		defer cancel()

		if err := s.backend.TrackTemplateUse(ctx, id); err != nil {
			logger.WithFields(map[string]interface{}{
				"component": "templates",
				"op":        "TrackTemplateUse",
				"id":        id,
			}).WithError(err).Warn("Template usage ping failed")
		}
	}()
}

// Wait blocks until in-flight usage pings finish.
func (s *Service) Wait() {
	s.pings.Wait()
}
