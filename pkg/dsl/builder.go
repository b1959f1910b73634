package dsl

import (
	"fmt"

	"github.com/bonsono/sonolog/pkg/domain"
	"github.com/bonsono/sonolog/pkg/graph"
)

// Builder manages the questionnaire construction.
type Builder struct {
	start domain.NodeID
	nodes map[domain.NodeID]*NodeBuilder
	order []domain.NodeID
}

// New creates a builder whose questionnaire begins at start.
func New(start domain.NodeID) *Builder {
	return &Builder{
		start: start,
		nodes: make(map[domain.NodeID]*NodeBuilder),
	}
}

// YesNo declares a yes/no question. Declaring the same id again
// returns the existing builder.
func (b *Builder) YesNo(id domain.NodeID, prompt string) *NodeBuilder {
	return b.add(id, prompt, domain.KindYesNo)
}

// Choice declares a multiple-choice question.
func (b *Builder) Choice(id domain.NodeID, prompt string) *NodeBuilder {
	return b.add(id, prompt, domain.KindMultipleChoice)
}

func (b *Builder) add(id domain.NodeID, prompt string, kind domain.NodeKind) *NodeBuilder {
	if nb, ok := b.nodes[id]; ok {
		return nb
	}
	nb := &NodeBuilder{
		node: domain.Node{
			ID:     id,
			Kind:   kind,
			Prompt: prompt,
		},
	}
	b.nodes[id] = nb
	b.order = append(b.order, id)
	return nb
}

// Build compiles and validates the questionnaire.
func (b *Builder) Build() (*graph.Graph, error) {
	nodes := make([]domain.Node, 0, len(b.order))
	for _, id := range b.order {
		nodes = append(nodes, b.nodes[id].node)
	}

	g, err := graph.New(b.start, nodes)
	if err != nil {
		return nil, fmt.Errorf("failed to build questionnaire: %w", err)
	}
	return g, nil
}

// MustBuild is Build that panics on error, for static definitions.
func (b *Builder) MustBuild() *graph.Graph {
	g, err := b.Build()
	if err != nil {
		panic(err)
	}
	return g
}
