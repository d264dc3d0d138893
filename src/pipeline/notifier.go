package pipeline

import (
	logger "github.com/sirupsen/logrus"
)

type Level string

const (
	LevelInfo  Level = "info"
	LevelWarn  Level = "warn"
	LevelError Level = "error"
)

// Notification kinds, one per user-visible branch of the flow.
const (
	KindValidation     = "validation"
	KindPreview        = "preview"
	KindConfirmation   = "confirmation"
	KindCancelled      = "cancelled"
	KindAccepted       = "accepted"
	KindDuplicate      = "duplicate"
	KindRejected       = "rejected"
	KindTransport      = "transport"
	KindInProgress     = "in_progress"
	KindNoPriorRequest = "no_prior_request"
	KindHistory        = "history"
)

type Notification struct {
	Level     Level  `json:"level"`
	Kind      string `json:"kind"`
	Message   string `json:"message"`
	RequestID string `json:"requestId,omitempty"`
}

// Notifier receives every user-visible signal the pipeline produces. Notify
// runs under the pipeline's lock and must not call back into it.
type Notifier interface {
	Notify(n Notification)
}

// LogNotifier writes notifications through logrus.
type LogNotifier struct{}

func (LogNotifier) Notify(n Notification) {
	entry := logger.WithFields(map[string]interface{}{
		"component":  "pipeline",
		"kind":       n.Kind,
		"request_id": n.RequestID,
	})
	switch n.Level {
	case LevelError:
		entry.Error(n.Message)
	case LevelWarn:
		entry.Warn(n.Message)
	default:
		entry.Info(n.Message)
	}
}
