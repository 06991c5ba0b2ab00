package usecases

import (
	"errors"
	"fmt"
)

var (
	ErrPatientNotFound    = errors.New("patient not found")
	ErrNoPendingChanges   = errors.New("patient has no pending changes")
	ErrSubmissionInFlight = errors.New("patient submission already in flight")
)

// RemoteError is a failure of the remote store. Message is the text shown to the user.
type RemoteError struct {
	Op      string
	Message string
	Err     error
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

func (e *RemoteError) Unwrap() error {
	return e.Err
}

func toRemoteError(op string, err error) *RemoteError {
	var remoteErr *RemoteError
	if errors.As(err, &remoteErr) {
		return &RemoteError{Op: op, Message: remoteErr.Message, Err: err}
	}

	return &RemoteError{Op: op, Message: err.Error(), Err: err}
}
