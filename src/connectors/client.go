// REST CLIENT FOR THE TRADING BACKEND
// RESTY ONLY. READS RETRY, WRITES NEVER DO.
package connectors

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	logger "github.com/sirupsen/logrus"
)

const (
	defaultBaseURL         = "http://localhost:8088"
	defaultRetryBaseDelay  = 500 * time.Millisecond
	defaultRetryMaxBackoff = 8 * time.Second
)

// TransportError is a failed call: either the request never got a response
// or the backend answered with a non-2xx status.
type TransportError struct {
	Op         string
	StatusCode int
	Body       string
	Err        error
}

func (e *TransportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s failed: %v", e.Op, e.Err)
	}
	if msg := backendMessage(e.Body); msg != "" {
		return msg
	}
	return fmt.Sprintf("%s failed: HTTP %d", e.Op, e.StatusCode)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// backendMessage pulls a human message out of an error body, falling back to
// the raw text.
func backendMessage(body string) string {
	body = strings.TrimSpace(body)
	if body == "" {
		return ""
	}
	var parsed struct {
		Message string `json:"message"`
		Error   string `json:"error"`
		Detail  string `json:"detail"`
	}
	if err := json.Unmarshal([]byte(body), &parsed); err == nil {
		for _, m := range []string{parsed.Message, parsed.Error, parsed.Detail} {
			if strings.TrimSpace(m) != "" {
				return m
			}
		}
	}
	return body
}

// IsTransportError reports whether err is a *TransportError.
func IsTransportError(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}

func isRetryableResp(r *resty.Response, err error) bool {
	if err != nil {
		return true
	}

	if r == nil {
		return false
	}

	code := r.StatusCode()

	if code >= 500 && code <= 599 {
		return true
	}
	if code == http.StatusTooManyRequests {
		return true
	}
	if code == http.StatusRequestTimeout {
		return true
	}
	return false
}

// Client talks to the authenticated JSON API behind the execution view.
type Client struct {
	baseURL string
	reads   *resty.Client
	writes  *resty.Client
	execute *resty.Client
}

func NewClient(config Config) *Client {
	baseURL := strings.TrimRight(strings.TrimSpace(config.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
		logger.Warnf("No backend URL provided, using default: %s", baseURL)
	}
	timeout := config.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	reads := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json").
		SetRetryCount(config.ReadRetries).
		SetRetryWaitTime(defaultRetryBaseDelay).
		SetRetryMaxWaitTime(defaultRetryMaxBackoff).
		AddRetryCondition(isRetryableResp)

	// writes are never retried
	writes := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json").
		SetRetryCount(0)

	// execute has no client timeout; the call lasts until the backend answers
	// or the connection fails
	execute := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Accept", "application/json").
		SetRetryCount(0)

	if config.Token != "" {
		reads.SetAuthToken(config.Token)
		writes.SetAuthToken(config.Token)
		execute.SetAuthToken(config.Token)
	}

	return &Client{baseURL: baseURL, reads: reads, writes: writes, execute: execute}
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

// check turns a resty outcome into a *TransportError when it is not a 2xx.
func check(op string, resp *resty.Response, err error) error {
	if err != nil {
		logger.WithFields(map[string]interface{}{
			"component": "connectors",
			"op":        op,
		}).WithError(err).Error("Backend request failed")
		return &TransportError{Op: op, Err: err}
	}
	if !resp.IsSuccess() {
		logger.WithFields(map[string]interface{}{
			"component": "connectors",
			"op":        op,
			"status":    resp.StatusCode(),
			"body":      resp.String(),
		}).Warn("Backend returned non-2xx status")
		return &TransportError{Op: op, StatusCode: resp.StatusCode(), Body: resp.String()}
	}
	return nil
}
