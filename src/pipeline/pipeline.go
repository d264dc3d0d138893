package pipeline

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	logger "github.com/sirupsen/logrus"

	"orderdesk/src/draft"
	"orderdesk/src/idempotency"
	"orderdesk/src/mapper"
	"orderdesk/src/model"
	"orderdesk/src/risk"
	"orderdesk/src/validator"
)

// Executor sends execution requests to the trading backend.
type Executor interface {
	Execute(ctx context.Context, req model.ExecutionRequest) (*model.ExecutionResponse, error)
}

// HistoryStore records terminal execution outcomes.
type HistoryStore interface {
	Append(ctx context.Context, entry *model.OrderHistoryEntry) error
}

// Preview is the validated order as shown to the user before sending.
type Preview struct {
	Payload model.OrderPayload `json:"payload"`
	Summary string             `json:"summary"`
	Risk    risk.Assessment    `json:"risk"`
}

// Snapshot is a consistent read of the pipeline.
type Snapshot struct {
	State         State           `json:"state"`
	Draft         model.DraftView `json:"draft"`
	Preview       *Preview        `json:"preview,omitempty"`
	Message       string          `json:"message,omitempty"`
	ErrorField    string          `json:"errorField,omitempty"`
	LastRequestID string          `json:"lastRequestId,omitempty"`
}

// Outcome is the interpreted result of one execution request.
type Outcome struct {
	State     State                    `json:"state"`
	RequestID string                   `json:"requestId"`
	Response  *model.ExecutionResponse `json:"response,omitempty"`
	Message   string                   `json:"message"`
}

type Option func(*Pipeline)

func WithDryRun(dryRun bool) Option {
	return func(p *Pipeline) { p.dryRun = dryRun }
}

func WithHistory(h HistoryStore) Option {
	return func(p *Pipeline) { p.history = h }
}

func WithNotifier(n Notifier) Option {
	return func(p *Pipeline) { p.notifier = n }
}

func WithClock(now func() time.Time) Option {
	return func(p *Pipeline) { p.now = now }
}

// WithDraft seeds the pipeline with a pre-filled draft.
func WithDraft(d model.OrderDraft) Option {
	return func(p *Pipeline) { p.draft = draft.Clone(d) }
}

// Pipeline owns one draft and drives it through
// validate, preview, confirm, submit and interpret.
type Pipeline struct {
	executor Executor
	history  HistoryStore
	keys     *idempotency.KeyManager
	notifier Notifier
	dryRun   bool
	now      func() time.Time

	mu         sync.Mutex
	state      State
	draft      model.OrderDraft
	pending    *Preview
	message    string
	errorField string

	// editedInFlight marks a draft edit made while Submitting
	editedInFlight bool
}

func New(executor Executor, opts ...Option) *Pipeline {
	p := &Pipeline{
		executor: executor,
		keys:     idempotency.NewKeyManager(),
		notifier: LogNotifier{},
		now:      time.Now,
		state:    StateIdle,
		draft:    draft.New(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ---------------------------------------------------
// Reads
// ---------------------------------------------------

func (p *Pipeline) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Draft returns a copy of the draft being composed.
func (p *Pipeline) Draft() model.OrderDraft {
	p.mu.Lock()
	defer p.mu.Unlock()
	return draft.Clone(p.draft)
}

func (p *Pipeline) LastRequestID() (string, bool) {
	return p.keys.Last()
}

func (p *Pipeline) Snapshot() Snapshot {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.snapshotLocked()
}

func (p *Pipeline) snapshotLocked() Snapshot {
	s := Snapshot{
		State:      p.state,
		Draft:      mapper.DraftToView(p.draft),
		Message:    p.message,
		ErrorField: p.errorField,
	}
	if p.pending != nil {
		pv := *p.pending
		s.Preview = &pv
	}
	if id, ok := p.keys.Last(); ok {
		s.LastRequestID = id
	}
	return s
}

// ---------------------------------------------------
// Editing
// ---------------------------------------------------

// Update applies field updates to the draft. Any pending preview or
// confirmation becomes stale and is dropped. While a submission is in
// flight the draft stays editable; the request already sent is unaffected.
func (p *Pipeline) Update(updates ...draft.Update) Snapshot {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.draft = draft.Apply(p.draft, updates...)
	p.settleAfterEditLocked()
	return p.snapshotLocked()
}

// Load replaces the whole draft, e.g. with one built from a template.
func (p *Pipeline) Load(d model.OrderDraft) Snapshot {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.draft = draft.Clone(d)
	p.settleAfterEditLocked()
	return p.snapshotLocked()
}

// Reset discards the draft and any pending payload.
func (p *Pipeline) Reset() (Snapshot, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.state == StateSubmitting {
		return p.snapshotLocked(), p.rejectInProgressLocked()
	}
	p.draft = draft.New()
	p.pending = nil
	p.clearMessageLocked()
	if p.state != StateIdle {
		p.moveLocked(StateIdle)
	}
	return p.snapshotLocked(), nil
}

func (p *Pipeline) settleAfterEditLocked() {
	if p.state == StateSubmitting {
		p.editedInFlight = true
		return
	}
	if p.state == StateIdle {
		return
	}
	p.pending = nil
	p.clearMessageLocked()
	p.moveLocked(StateIdle)
}

// ---------------------------------------------------
// Preview, submit, confirm, cancel
// ---------------------------------------------------

// Preview validates the draft and builds the read-only preview. Nothing is
// sent over the network.
func (p *Pipeline) Preview() (Snapshot, error) {
	return p.validateInto(StatePreviewReady)
}

// Submit validates the draft and waits for confirmation.
func (p *Pipeline) Submit() (Snapshot, error) {
	return p.validateInto(StateAwaitingConfirmation)
}

func (p *Pipeline) validateInto(target State) (Snapshot, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.state == StateSubmitting {
		return p.snapshotLocked(), p.rejectInProgressLocked()
	}

	preview, err := p.validateLocked()
	if err != nil {
		return p.snapshotLocked(), err
	}

	p.pending = preview
	p.moveLocked(target)

	if target == StateAwaitingConfirmation {
		p.notify(Notification{Level: LevelInfo, Kind: KindConfirmation, Message: "Confirm order: " + preview.Summary})
	} else {
		p.notify(Notification{Level: LevelInfo, Kind: KindPreview, Message: "Preview: " + preview.Summary})
	}
	return p.snapshotLocked(), nil
}

// validateLocked passes through Validating and lands in Invalid on failure.
func (p *Pipeline) validateLocked() (*Preview, error) {
	p.moveLocked(StateValidating)
	p.clearMessageLocked()

	order, err := validator.Check(p.draft)
	if err != nil {
		p.pending = nil
		p.message = err.Error()
		var ve *validator.ValidationError
		if errors.As(err, &ve) {
			p.errorField = ve.Field
		}
		p.moveLocked(StateInvalid)
		p.notify(Notification{Level: LevelWarn, Kind: KindValidation, Message: err.Error()})
		return nil, err
	}

	return &Preview{
		Payload: mapper.OrderToPayload(order),
		Summary: Summarize(order),
		Risk:    risk.Assess(order, p.draft.EstimatedPrice),
	}, nil
}

// Cancel drops a pending confirmation or preview without sending anything.
func (p *Pipeline) Cancel() (Snapshot, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.state != StateAwaitingConfirmation && p.state != StatePreviewReady {
		if p.state == StateSubmitting {
			return p.snapshotLocked(), p.rejectInProgressLocked()
		}
		return p.snapshotLocked(), ErrNotAwaitingConfirmation
	}

	p.pending = nil
	p.clearMessageLocked()
	p.moveLocked(StateIdle)
	p.notify(Notification{Level: LevelInfo, Kind: KindCancelled, Message: "Order cancelled before submission"})
	return p.snapshotLocked(), nil
}

// Confirm sends the pending order under a freshly generated request id.
// After a network error the same pending order can be confirmed again; it
// goes out under a new id.
func (p *Pipeline) Confirm(ctx context.Context) (Outcome, error) {
	p.mu.Lock()
	if p.state == StateSubmitting {
		err := p.rejectInProgressLocked()
		p.mu.Unlock()
		return Outcome{}, err
	}
	if p.pending == nil || !canTransition(p.state, StateSubmitting) {
		p.mu.Unlock()
		return Outcome{}, ErrNotAwaitingConfirmation
	}

	sent := *p.pending
	requestID := p.keys.Generate()
	p.clearMessageLocked()
	p.editedInFlight = false
	p.moveLocked(StateSubmitting)
	p.mu.Unlock()

	return p.send(ctx, requestID, sent)
}

// ResubmitLast re-sends the last request id with a payload rebuilt from the
// current draft, so the backend's duplicate detection can be exercised.
func (p *Pipeline) ResubmitLast(ctx context.Context) (Outcome, error) {
	p.mu.Lock()
	if p.state == StateSubmitting {
		err := p.rejectInProgressLocked()
		p.mu.Unlock()
		return Outcome{}, err
	}

	requestID, ok := p.keys.Last()
	if !ok {
		p.notify(Notification{Level: LevelWarn, Kind: KindNoPriorRequest, Message: ErrNoPriorRequest.Error()})
		p.mu.Unlock()
		return Outcome{}, ErrNoPriorRequest
	}

	preview, err := p.validateLocked()
	if err != nil {
		p.mu.Unlock()
		return Outcome{}, err
	}

	p.pending = preview
	p.editedInFlight = false
	p.moveLocked(StateSubmitting)
	p.mu.Unlock()

	return p.send(ctx, requestID, *preview)
}

// send runs without the lock held. A hung call leaves the pipeline in
// Submitting until the transport resolves or fails. The caller's
// cancellation reaches neither the execute call nor the history insert.
func (p *Pipeline) send(ctx context.Context, requestID string, sent Preview) (Outcome, error) {
	ctx = context.WithoutCancel(ctx)

	req := model.ExecutionRequest{
		DryRun:    p.dryRun,
		RequestID: requestID,
		Orders:    []model.OrderPayload{sent.Payload},
	}

	logger.WithFields(map[string]interface{}{
		"component":  "pipeline",
		"op":         "send",
		"request_id": requestID,
		"symbol":     sent.Payload.Symbol,
		"dry_run":    p.dryRun,
	}).Info("Submitting order")

	resp, err := p.executor.Execute(ctx, req)

	p.mu.Lock()
	outcome, entry := p.interpretLocked(requestID, sent, resp, err)
	p.mu.Unlock()

	if entry != nil {
		p.appendHistory(ctx, entry)
	}
	return outcome, nil
}

func (p *Pipeline) interpretLocked(requestID string, sent Preview, resp *model.ExecutionResponse, err error) (Outcome, *model.OrderHistoryEntry) {
	outcome := Outcome{RequestID: requestID, Response: resp}
	var entry *model.OrderHistoryEntry

	switch {
	case err != nil:
		// pending payload stays so the user can retry without re-entering
		// data, unless the draft moved on meanwhile
		if p.editedInFlight {
			p.pending = nil
		}
		outcome.State = StateNetworkError
		outcome.Message = err.Error()
		p.notify(Notification{Level: LevelError, Kind: KindTransport, Message: outcome.Message, RequestID: requestID})

	case resp == nil:
		if p.editedInFlight {
			p.pending = nil
		}
		outcome.State = StateNetworkError
		outcome.Message = "execution endpoint returned an empty response"
		p.notify(Notification{Level: LevelError, Kind: KindTransport, Message: outcome.Message, RequestID: requestID})

	case resp.Duplicate:
		outcome.State = StateDuplicate
		outcome.Message = fmt.Sprintf("Duplicate submission: request %s was already processed", requestID)
		p.pending = nil
		p.notify(Notification{Level: LevelWarn, Kind: KindDuplicate, Message: outcome.Message, RequestID: requestID})

	case resp.Accepted:
		outcome.State = StateAccepted
		outcome.Message = "Order submitted: " + sent.Summary
		if resp.DryRun || p.dryRun {
			outcome.Message += " (dry run)"
		}
		p.pending = nil
		entry = p.historyEntry(requestID, sent.Payload, model.OrderHistoryStatusExecuted)
		p.notify(Notification{Level: LevelInfo, Kind: KindAccepted, Message: outcome.Message, RequestID: requestID})

	default:
		outcome.State = StateRejected
		outcome.Message = "Order rejected: " + sent.Summary
		p.pending = nil
		entry = p.historyEntry(requestID, sent.Payload, model.OrderHistoryStatusCancelled)
		p.notify(Notification{Level: LevelWarn, Kind: KindRejected, Message: outcome.Message, RequestID: requestID})
	}

	p.message = outcome.Message
	p.moveLocked(outcome.State)
	return outcome, entry
}

func (p *Pipeline) historyEntry(requestID string, payload model.OrderPayload, status string) *model.OrderHistoryEntry {
	return &model.OrderHistoryEntry{
		RequestID:  requestID,
		Symbol:     payload.Symbol,
		Side:       string(payload.Side),
		Qty:        payload.Qty,
		Type:       string(payload.Type),
		LimitPrice: payload.LimitPrice,
		Status:     status,
		DryRun:     p.dryRun,
		Timestamp:  p.now().UTC(),
	}
}

func (p *Pipeline) appendHistory(ctx context.Context, entry *model.OrderHistoryEntry) {
	if p.history == nil {
		return
	}
	if err := p.history.Append(ctx, entry); err != nil {
		p.notify(Notification{
			Level:     LevelError,
			Kind:      KindHistory,
			Message:   fmt.Sprintf("failed to record order history: %v", err),
			RequestID: entry.RequestID,
		})
	}
}

// ---------------------------------------------------
// helpers
// ---------------------------------------------------

func (p *Pipeline) rejectInProgressLocked() error {
	p.notify(Notification{Level: LevelWarn, Kind: KindInProgress, Message: ErrSubmissionInProgress.Error()})
	return ErrSubmissionInProgress
}

func (p *Pipeline) clearMessageLocked() {
	p.message = ""
	p.errorField = ""
}

// moveLocked enforces the transition table. An illegal move is a bug in this
// package, so it is logged loudly and the state is left unchanged.
func (p *Pipeline) moveLocked(to State) {
	if !canTransition(p.state, to) {
		logger.WithFields(map[string]interface{}{
			"component": "pipeline",
			"from":      p.state,
			"to":        to,
		}).Error("Illegal pipeline transition")
		return
	}
	p.state = to
}

func (p *Pipeline) notify(n Notification) {
	if p.notifier != nil {
		p.notifier.Notify(n)
	}
}
