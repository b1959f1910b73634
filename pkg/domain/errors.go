package domain

import (
	"errors"
	"fmt"
)

// ErrSessionNotFound is returned when a session ID cannot be found in the store.
var ErrSessionNotFound = errors.New("session not found")

// ErrProfileNotFound is returned when no completed profile exists for a session.
var ErrProfileNotFound = errors.New("completed profile not found")

// ErrSessionTerminated is returned when an advance is attempted on a
// session that already reached a terminal state.
var ErrSessionTerminated = errors.New("session already terminated")

// ErrCannotRewind is returned when a rewind is attempted at the start
// of the questionnaire or after termination.
var ErrCannotRewind = errors.New("cannot rewind past the start of the questionnaire")

// ErrAccessRequired is returned by access gates when the caller has not
// cleared the external access step for the session.
var ErrAccessRequired = errors.New("access not granted for this session")

// InvalidAnswerError reports a malformed or out-of-domain answer. The
// session is left unchanged; the condition is recoverable and surfaced
// to the UI as a validation message.
type InvalidAnswerError struct {
	NodeID NodeID
	Reason string
}

func (e *InvalidAnswerError) Error() string {
	return fmt.Sprintf("invalid answer for node %s: %s", e.NodeID, e.Reason)
}

// GraphIntegrityError reports a node id that does not exist in the
// graph. Under a well-formed graph this is never user-triggered: it is
// an authoring defect, fatal to the session, and must be logged.
type GraphIntegrityError struct {
	NodeID NodeID
	Reason string
}

func (e *GraphIntegrityError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("graph integrity: node %s not found", e.NodeID)
	}
	return fmt.Sprintf("graph integrity: node %s: %s", e.NodeID, e.Reason)
}
