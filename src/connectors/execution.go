package connectors

import (
	"context"
	"encoding/json"
	"fmt"

	logger "github.com/sirupsen/logrus"

	"orderdesk/src/model"
)

const executePath = "/trading/execute"

// Execute posts one execution request. BACKEND_TIMEOUT does not apply, so a
// hung call blocks until the transport resolves or ctx ends; no retry is
// attempted.
func (c *Client) Execute(ctx context.Context, req model.ExecutionRequest) (*model.ExecutionResponse, error) {
	logger.WithFields(map[string]interface{}{
		"component":  "connectors",
		"op":         "Execute",
		"request_id": req.RequestID,
		"dry_run":    req.DryRun,
		"orders":     len(req.Orders),
	}).Debug("Sending execution request")

	resp, err := c.execute.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		Post(executePath)
	if err := check("execute", resp, err); err != nil {
		return nil, err
	}

	var out model.ExecutionResponse
	if err := json.Unmarshal(resp.Body(), &out); err != nil {
		return nil, &TransportError{
			Op:         "execute",
			StatusCode: resp.StatusCode(),
			Body:       resp.String(),
			Err:        fmt.Errorf("decode execution response: %w", err),
		}
	}

	logger.WithFields(map[string]interface{}{
		"component":  "connectors",
		"op":         "Execute",
		"request_id": req.RequestID,
		"accepted":   out.Accepted,
		"duplicate":  out.Duplicate,
	}).Info("Execution response received")

	return &out, nil
}
