package domain

import "fmt"

// NodeID identifies a question node in the graph.
// Authored nodes use small non-negative integers; negative values are
// reserved for the terminal sentinels, so they can never collide with
// authored content.
type NodeID int

const (
	// StartNodeID is where every fresh session begins.
	StartNodeID NodeID = 0

	// TerminalCompleted marks the normal end of the questionnaire.
	TerminalCompleted NodeID = -1

	// TerminalNoInsomnia marks the early exit taken when the respondent
	// does not meet the frequency criteria for insomnia.
	TerminalNoInsomnia NodeID = -2
)

// IsTerminal reports whether the id is a terminal sentinel rather than
// an authored node.
func (id NodeID) IsTerminal() bool { return id < 0 }

func (id NodeID) String() string {
	switch id {
	case TerminalCompleted:
		return "end"
	case TerminalNoInsomnia:
		return "end_no_insomnia"
	default:
		return fmt.Sprintf("%d", int(id))
	}
}

// NodeKind discriminates the node variants.
type NodeKind string

const (
	// KindYesNo nodes are answered with exactly "yes" or "no".
	KindYesNo NodeKind = "yes_no"
	// KindMultipleChoice nodes are answered with a non-empty set of
	// option ids. The choice never branches control flow, only content.
	KindMultipleChoice NodeKind = "multiple_choice"
)

// Route defines how a node resolves its successor. It is a closed sum:
// FixedNext or ConditionalNext, selected by the node author. Invalid
// combinations (e.g. a multiple-choice node with a conditional route)
// are rejected at graph build time.
type Route interface {
	isRoute()
}

// FixedNext always moves to the same successor, which may be a terminal
// sentinel.
type FixedNext struct {
	Next NodeID
}

func (FixedNext) isRoute() {}

// ConditionalNext picks the successor by the yes/no answer. Either side
// may be a terminal sentinel.
type ConditionalNext struct {
	NextYes NodeID
	NextNo  NodeID
}

func (ConditionalNext) isRoute() {}

// Option is one selectable entry of a multiple-choice node.
type Option struct {
	ID       string `json:"id" yaml:"id"`
	Label    string `json:"label" yaml:"label"`
	Response string `json:"response,omitempty" yaml:"response,omitempty"`
}

// Node is one question of the graph. The graph is authored once,
// statically, and is read-only at run time.
type Node struct {
	ID     NodeID
	Kind   NodeKind
	Prompt string

	// Route resolves the successor. Multiple-choice nodes must carry a
	// FixedNext route.
	Route Route

	// ResponseYes and ResponseNo hold the contextual response appended
	// to the answer record of a yes/no node. Both must be set for the
	// response to be recorded.
	ResponseYes string
	ResponseNo  string

	// Options is the ordered option list of a multiple-choice node.
	Options []Option
}

// Option returns the option with the given id, if declared.
func (n Node) Option(id string) (Option, bool) {
	for _, opt := range n.Options {
		if opt.ID == id {
			return opt, true
		}
	}
	return Option{}, false
}
