package dsl

import "github.com/bonsono/sonolog/pkg/domain"

// NodeBuilder provides a fluent API for configuring a question.
type NodeBuilder struct {
	node domain.Node
}

// Responses sets the contextual feedback shown after a yes or no
// answer. Both must be set for the feedback to be recorded.
func (n *NodeBuilder) Responses(yes, no string) *NodeBuilder {
	n.node.ResponseYes = yes
	n.node.ResponseNo = no
	return n
}

// Option appends a selectable choice to a multiple-choice question.
func (n *NodeBuilder) Option(id, label, response string) *NodeBuilder {
	n.node.Options = append(n.node.Options, domain.Option{
		ID:       id,
		Label:    label,
		Response: response,
	})
	return n
}

// To routes every answer to the same successor.
func (n *NodeBuilder) To(next domain.NodeID) *NodeBuilder {
	n.node.Route = domain.FixedNext{Next: next}
	return n
}

// Branch routes yes and no answers to different successors.
func (n *NodeBuilder) Branch(yes, no domain.NodeID) *NodeBuilder {
	n.node.Route = domain.ConditionalNext{NextYes: yes, NextNo: no}
	return n
}

// Ends terminates the questionnaire after this question.
func (n *NodeBuilder) Ends() *NodeBuilder {
	return n.To(domain.TerminalCompleted)
}
