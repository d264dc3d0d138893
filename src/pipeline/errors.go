package pipeline

import "errors"

var (
	ErrSubmissionInProgress    = errors.New("a submission is already in progress")
	ErrNoPriorRequest          = errors.New("no prior request to resubmit")
	ErrNotAwaitingConfirmation = errors.New("no order is awaiting confirmation")
)
