package domain

import "time"

// SchemaVersion tags persisted sessions so stores can reject or migrate
// payloads written by incompatible releases.
const SchemaVersion = 1

// CompletionReason explains how a session reached a terminal state.
type CompletionReason string

const (
	// ReasonCompleted means the full questionnaire was traversed.
	ReasonCompleted CompletionReason = "completed"
	// ReasonNoInsomnia means the respondent exited early because the
	// frequency criteria for insomnia were not met.
	ReasonNoInsomnia CompletionReason = "no_insomnia"
)

// SessionState is the mutable snapshot of one questionnaire attempt.
// It is owned by a single interactive flow at a time and is mutated
// only by the walker operations (advance, rewind). It is also the
// serialization unit handed to session stores.
type SessionState struct {
	SchemaVersion int    `json:"schema_version"`
	SessionID     string `json:"session_id"`

	// CurrentNodeID is the node awaiting an answer. Meaningless once
	// Terminated is true.
	CurrentNodeID NodeID `json:"current_node_id"`

	// VisitedNodeIDs is always non-empty; the first element is the node
	// the session started at, and the last equals CurrentNodeID until
	// the session terminates.
	VisitedNodeIDs []NodeID `json:"visited_node_ids"`

	// Answers holds one record per visited node except the current one.
	Answers []AnsweredQuestion `json:"answers"`

	Terminated       bool             `json:"terminated"`
	CompletionReason CompletionReason `json:"completion_reason,omitempty"`

	// Personal carries the intake form record alongside the session so
	// the report generator can interpolate demographics at completion.
	// The core never mutates it.
	Personal PersonalData `json:"personal_data"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Envelope holds an opaque encrypted payload when a store middleware
	// seals the session at rest. When set, every other field above except
	// SchemaVersion, SessionID and the timestamps is zeroed.
	Envelope string `json:"envelope,omitempty"`
}

// NewSession creates a clean session starting at the given node.
func NewSession(sessionID string, start NodeID, personal PersonalData) *SessionState {
	now := time.Now().UTC()
	return &SessionState{
		SchemaVersion:  SchemaVersion,
		SessionID:      sessionID,
		CurrentNodeID:  start,
		VisitedNodeIDs: []NodeID{start},
		Personal:       personal,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// Clone returns a deep copy safe for mutation.
func (s *SessionState) Clone() *SessionState {
	if s == nil {
		return nil
	}
	next := *s
	next.VisitedNodeIDs = make([]NodeID, len(s.VisitedNodeIDs))
	copy(next.VisitedNodeIDs, s.VisitedNodeIDs)
	next.Answers = make([]AnsweredQuestion, len(s.Answers))
	copy(next.Answers, s.Answers)
	for i, ans := range s.Answers {
		if len(ans.OptionIDs) > 0 {
			ids := make([]string, len(ans.OptionIDs))
			copy(ids, ans.OptionIDs)
			next.Answers[i].OptionIDs = ids
		}
	}
	return &next
}

// Step is the 1-based ordinal of the question currently on screen.
func (s *SessionState) Step() int { return len(s.VisitedNodeIDs) }
