// Package runtime owns the branching algorithm: it applies the graph's
// transition rules to a session, one answer at a time, and detects
// terminal conditions.
package runtime

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/bonsono/sonolog/internal/logging"
	"github.com/bonsono/sonolog/pkg/domain"
	"github.com/bonsono/sonolog/pkg/report"
)

// NodeSource resolves node definitions for the walker. *graph.Graph is
// the production implementation.
type NodeSource interface {
	Node(id domain.NodeID) (domain.Node, error)
}

// OutcomeStatus tags the result of an advance.
type OutcomeStatus string

const (
	// StatusAdvanced means the session moved to another question.
	StatusAdvanced OutcomeStatus = "advanced"
	// StatusReachedTerminal means the session terminated and a report
	// was produced.
	StatusReachedTerminal OutcomeStatus = "reached_terminal"
)

// Outcome describes what one advance did.
type Outcome struct {
	Status OutcomeStatus
	Reason domain.CompletionReason
	Report *domain.Report
}

// Walker applies transitions. It holds no session state of its own:
// both operations take the current session and return an updated copy,
// leaving the input untouched.
type Walker struct {
	source NodeSource
	logger *slog.Logger
}

// Option configures the Walker.
type Option func(*Walker)

// WithLogger sets a structured logger for defect reporting.
func WithLogger(logger *slog.Logger) Option {
	return func(w *Walker) {
		w.logger = logger
	}
}

// NewWalker creates a walker over the given node source.
func NewWalker(source NodeSource, opts ...Option) *Walker {
	w := &Walker{
		source: source,
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Advance records the answer for the current node and moves the
// session along the graph's transition rules. The input session is
// never mutated; on any error it is the caller's single source of
// truth, unchanged.
func (w *Walker) Advance(session *domain.SessionState, answer domain.Answer) (*domain.SessionState, *Outcome, error) {
	if session.Terminated {
		return nil, nil, domain.ErrSessionTerminated
	}

	node, err := w.source.Node(session.CurrentNodeID)
	if err != nil {
		w.logger.Error("current node lookup failed", "node_id", session.CurrentNodeID, "err", err)
		return nil, nil, err
	}

	selection, err := validateAnswer(node, answer)
	if err != nil {
		return nil, nil, err
	}

	next := resolveNext(node, answer)

	// Resolve-before-mutate: a dangling successor must leave the
	// session untouched.
	if !next.IsTerminal() {
		if _, err := w.source.Node(next); err != nil {
			w.logger.Error("transition resolved to unknown node",
				"from", session.CurrentNodeID, "to", next, "err", err)
			return nil, nil, err
		}
	}

	value, response := recordedText(node, answer, selection)

	updated := session.Clone()
	updated.Answers = append(updated.Answers, domain.AnsweredQuestion{
		QuestionID: node.ID,
		Prompt:     node.Prompt,
		Value:      value,
		OptionIDs:  selection,
		Response:   response,
		Sequence:   len(updated.VisitedNodeIDs),
	})
	updated.UpdatedAt = time.Now().UTC()

	if next.IsTerminal() {
		reason := domain.ReasonCompleted
		if next == domain.TerminalNoInsomnia {
			reason = domain.ReasonNoInsomnia
		}
		updated.Terminated = true
		updated.CompletionReason = reason

		rep := report.Generate(updated.Answers, reason, updated.Personal)
		return updated, &Outcome{
			Status: StatusReachedTerminal,
			Reason: reason,
			Report: &rep,
		}, nil
	}

	updated.CurrentNodeID = next
	updated.VisitedNodeIDs = append(updated.VisitedNodeIDs, next)
	return updated, &Outcome{Status: StatusAdvanced}, nil
}

// Rewind undoes exactly one advanced step: it drops the last visited
// node and the last recorded answer. Not valid at the start of the
// questionnaire or after termination.
func (w *Walker) Rewind(session *domain.SessionState) (*domain.SessionState, error) {
	if session.Terminated || len(session.VisitedNodeIDs) <= 1 {
		return nil, domain.ErrCannotRewind
	}

	updated := session.Clone()
	updated.VisitedNodeIDs = updated.VisitedNodeIDs[:len(updated.VisitedNodeIDs)-1]
	updated.CurrentNodeID = updated.VisitedNodeIDs[len(updated.VisitedNodeIDs)-1]
	updated.Answers = updated.Answers[:len(updated.Answers)-1]
	updated.UpdatedAt = time.Now().UTC()
	return updated, nil
}

// validateAnswer checks the answer shape against the node kind. For
// multiple-choice nodes it returns the selected ids normalized to
// declaration order, duplicates collapsed.
func validateAnswer(node domain.Node, answer domain.Answer) ([]string, error) {
	switch node.Kind {
	case domain.KindMultipleChoice:
		if answer.Value != "" {
			return nil, &domain.InvalidAnswerError{NodeID: node.ID, Reason: "expected a selection of options, got a yes/no literal"}
		}
		if len(answer.OptionIDs) == 0 {
			return nil, &domain.InvalidAnswerError{NodeID: node.ID, Reason: "at least one option must be selected"}
		}
		chosen := make(map[string]struct{}, len(answer.OptionIDs))
		for _, id := range answer.OptionIDs {
			if _, ok := node.Option(id); !ok {
				return nil, &domain.InvalidAnswerError{NodeID: node.ID, Reason: fmt.Sprintf("unknown option %q", id)}
			}
			chosen[id] = struct{}{}
		}
		selection := make([]string, 0, len(chosen))
		for _, opt := range node.Options {
			if _, ok := chosen[opt.ID]; ok {
				selection = append(selection, opt.ID)
			}
		}
		return selection, nil

	default:
		if len(answer.OptionIDs) > 0 {
			return nil, &domain.InvalidAnswerError{NodeID: node.ID, Reason: "node does not accept option selections"}
		}
		if answer.Value != domain.AnswerYes && answer.Value != domain.AnswerNo {
			return nil, &domain.InvalidAnswerError{NodeID: node.ID, Reason: fmt.Sprintf("expected %q or %q, got %q", domain.AnswerYes, domain.AnswerNo, answer.Value)}
		}
		return nil, nil
	}
}

// recordedText computes the answer value and contextual response that
// go into the history record.
func recordedText(node domain.Node, answer domain.Answer, selection []string) (value, response string) {
	if node.Kind == domain.KindMultipleChoice {
		labels := make([]string, 0, len(selection))
		responses := make([]string, 0, len(selection))
		for _, id := range selection {
			opt, _ := node.Option(id)
			labels = append(labels, opt.Label)
			if opt.Response != "" {
				responses = append(responses, opt.Response)
			}
		}
		return strings.Join(labels, "; "), strings.Join(responses, " ")
	}

	if node.ResponseYes != "" && node.ResponseNo != "" {
		if answer.IsYes() {
			response = node.ResponseYes
		} else {
			response = node.ResponseNo
		}
	}
	return answer.Value, response
}

// resolveNext applies the node's route to the answer. Multiple-choice
// nodes always carry a fixed successor, so the answer only matters for
// conditional routes.
func resolveNext(node domain.Node, answer domain.Answer) domain.NodeID {
	switch r := node.Route.(type) {
	case domain.ConditionalNext:
		if answer.IsYes() {
			return r.NextYes
		}
		return r.NextNo
	case domain.FixedNext:
		return r.Next
	default:
		// Unreachable for validated graphs.
		return domain.TerminalCompleted
	}
}
