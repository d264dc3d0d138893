package connectors

import (
	"context"
	"encoding/json"
	"fmt"

	"orderdesk/src/model"
)

const (
	templatesPath   = "/order-templates"
	templatePath    = "/order-templates/{id}"
	templateUsePath = "/order-templates/{id}/use"
)

func (c *Client) ListTemplates(ctx context.Context) ([]model.TemplateResponse, error) {
	resp, err := c.reads.R().
		SetContext(ctx).
		Get(templatesPath)
	if err := check("list templates", resp, err); err != nil {
		return nil, err
	}

	var out []model.TemplateResponse
	if err := json.Unmarshal(resp.Body(), &out); err != nil {
		return nil, &TransportError{Op: "list templates", StatusCode: resp.StatusCode(), Body: resp.String(), Err: fmt.Errorf("decode templates: %w", err)}
	}
	return out, nil
}

func (c *Client) CreateTemplate(ctx context.Context, payload model.TemplatePayload) (*model.TemplateResponse, error) {
	resp, err := c.writes.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(payload).
		Post(templatesPath)
	if err := check("create template", resp, err); err != nil {
		return nil, err
	}

	var out model.TemplateResponse
	if err := json.Unmarshal(resp.Body(), &out); err != nil {
		return nil, &TransportError{Op: "create template", StatusCode: resp.StatusCode(), Body: resp.String(), Err: fmt.Errorf("decode template: %w", err)}
	}
	return &out, nil
}

func (c *Client) DeleteTemplate(ctx context.Context, id string) error {
	resp, err := c.writes.R().
		SetContext(ctx).
		SetPathParam("id", id).
		Delete(templatePath)
	return check("delete template", resp, err)
}

// TrackTemplateUse pings the usage counter. Callers treat failures as noise.
func (c *Client) TrackTemplateUse(ctx context.Context, id string) error {
	resp, err := c.writes.R().
		SetContext(ctx).
		SetPathParam("id", id).
		Post(templateUsePath)
	return check("track template use", resp, err)
}
