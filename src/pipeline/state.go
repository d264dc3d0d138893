package pipeline

// State is where the execution flow currently stands.
type State string

const (
	StateIdle                 State = "idle"
	StateValidating           State = "validating"
	StateInvalid              State = "invalid"
	StatePreviewReady         State = "preview_ready"
	StateAwaitingConfirmation State = "awaiting_confirmation"
	StateSubmitting           State = "submitting"
	StateAccepted             State = "accepted"
	StateDuplicate            State = "duplicate"
	StateRejected             State = "rejected"
	StateNetworkError         State = "network_error"
)

// transitions lists every legal move. Outcome states rest until the next
// action, which treats them like Idle.
var transitions = map[State][]State{
	StateIdle:                 {StateValidating},
	StateValidating:           {StateInvalid, StatePreviewReady, StateAwaitingConfirmation, StateSubmitting},
	StateInvalid:              {StateIdle, StateValidating},
	StatePreviewReady:         {StateIdle, StateValidating},
	StateAwaitingConfirmation: {StateIdle, StateValidating, StateSubmitting},
	StateSubmitting:           {StateAccepted, StateDuplicate, StateRejected, StateNetworkError},
	StateAccepted:             {StateIdle, StateValidating},
	StateDuplicate:            {StateIdle, StateValidating},
	StateRejected:             {StateIdle, StateValidating},
	StateNetworkError:         {StateIdle, StateValidating, StateSubmitting},
}

func canTransition(from, to State) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}
