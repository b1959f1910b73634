package graph

import (
	"fmt"

	"github.com/bonsono/sonolog/pkg/domain"
)

// Graph is a static, read-only lookup table of question nodes. It is
// built once via New, which validates the whole structure; after that
// every id produced by a well-formed traversal resolves.
type Graph struct {
	start domain.NodeID
	nodes map[domain.NodeID]domain.Node
	order []domain.NodeID

	// longest remaining path per node, memoized at build time for the
	// progress estimate.
	depth map[domain.NodeID]int
}

// New builds and validates a graph. The node slice order is preserved
// for listing and visualization.
func New(start domain.NodeID, nodes []domain.Node) (*Graph, error) {
	g := &Graph{
		start: start,
		nodes: make(map[domain.NodeID]domain.Node, len(nodes)),
		order: make([]domain.NodeID, 0, len(nodes)),
	}
	for _, n := range nodes {
		if n.ID.IsTerminal() {
			return nil, fmt.Errorf("node id %s is reserved for terminals", n.ID)
		}
		if _, dup := g.nodes[n.ID]; dup {
			return nil, fmt.Errorf("duplicate node id %s", n.ID)
		}
		g.nodes[n.ID] = n
		g.order = append(g.order, n.ID)
	}
	if err := g.validate(); err != nil {
		return nil, err
	}
	g.depth = make(map[domain.NodeID]int, len(nodes))
	for id := range g.nodes {
		g.longestRemaining(id)
	}
	return g, nil
}

// MustNew is New for statically authored graphs, where a failure is a
// programming error.
func MustNew(start domain.NodeID, nodes []domain.Node) *Graph {
	g, err := New(start, nodes)
	if err != nil {
		panic(err)
	}
	return g
}

// Start returns the entry node id.
func (g *Graph) Start() domain.NodeID { return g.start }

// Len returns the number of authored nodes.
func (g *Graph) Len() int { return len(g.order) }

// Nodes returns the authored nodes in declaration order.
func (g *Graph) Nodes() []domain.Node {
	out := make([]domain.Node, 0, len(g.order))
	for _, id := range g.order {
		out = append(out, g.nodes[id])
	}
	return out
}

// Node resolves a node by id. A miss is reported as a
// *domain.GraphIntegrityError: it indicates an authoring defect, never
// a reachable user condition.
func (g *Graph) Node(id domain.NodeID) (domain.Node, error) {
	n, ok := g.nodes[id]
	if !ok {
		return domain.Node{}, &domain.GraphIntegrityError{NodeID: id}
	}
	return n, nil
}

// EstimateTotal projects the total number of questions a session will
// see: the count already visited plus the longest remaining path from
// the current node. Renderers use it for progress display.
func (g *Graph) EstimateTotal(current domain.NodeID, visited int) int {
	if current.IsTerminal() {
		return visited
	}
	if _, ok := g.nodes[current]; !ok {
		return visited
	}
	// The current node is part of the visited count and still pending,
	// so the remainder excludes it.
	return visited + g.depth[current] - 1
}

// successors lists the outgoing edges of a node, terminals included.
func successors(n domain.Node) []domain.NodeID {
	switch r := n.Route.(type) {
	case domain.FixedNext:
		return []domain.NodeID{r.Next}
	case domain.ConditionalNext:
		return []domain.NodeID{r.NextYes, r.NextNo}
	default:
		return nil
	}
}

// longestRemaining computes the memoized longest path (in questions,
// inclusive of the node itself) down to any terminal.
func (g *Graph) longestRemaining(id domain.NodeID) int {
	if id.IsTerminal() {
		return 0
	}
	if d, ok := g.depth[id]; ok {
		return d
	}
	max := 0
	for _, next := range successors(g.nodes[id]) {
		if d := g.longestRemaining(next); d > max {
			max = d
		}
	}
	g.depth[id] = 1 + max
	return 1 + max
}

func (g *Graph) validate() error {
	if _, ok := g.nodes[g.start]; !ok {
		return fmt.Errorf("start node %s is not defined", g.start)
	}

	for _, id := range g.order {
		n := g.nodes[id]
		if err := g.validateNode(n); err != nil {
			return err
		}
	}

	return g.checkAcyclic()
}

func (g *Graph) validateNode(n domain.Node) error {
	if n.Prompt == "" {
		return fmt.Errorf("node %s: empty prompt", n.ID)
	}

	switch n.Kind {
	case domain.KindYesNo:
		if len(n.Options) > 0 {
			return fmt.Errorf("node %s: yes/no node must not declare options", n.ID)
		}
	case domain.KindMultipleChoice:
		if len(n.Options) == 0 {
			return fmt.Errorf("node %s: multiple-choice node needs at least one option", n.ID)
		}
		if _, ok := n.Route.(domain.FixedNext); !ok {
			return fmt.Errorf("node %s: multiple-choice node must use a fixed successor", n.ID)
		}
		if n.ResponseYes != "" || n.ResponseNo != "" {
			return fmt.Errorf("node %s: multiple-choice node must not declare yes/no responses", n.ID)
		}
		seen := make(map[string]struct{}, len(n.Options))
		for _, opt := range n.Options {
			if opt.ID == "" {
				return fmt.Errorf("node %s: option with empty id", n.ID)
			}
			if _, dup := seen[opt.ID]; dup {
				return fmt.Errorf("node %s: duplicate option id %q", n.ID, opt.ID)
			}
			seen[opt.ID] = struct{}{}
		}
	default:
		return fmt.Errorf("node %s: unknown kind %q", n.ID, n.Kind)
	}

	if n.Route == nil {
		return fmt.Errorf("node %s: missing route", n.ID)
	}
	for _, next := range successors(n) {
		if next.IsTerminal() {
			if next != domain.TerminalCompleted && next != domain.TerminalNoInsomnia {
				return fmt.Errorf("node %s: unknown terminal sentinel %d", n.ID, int(next))
			}
			continue
		}
		if _, ok := g.nodes[next]; !ok {
			return fmt.Errorf("node %s: dangling reference to node %s", n.ID, next)
		}
	}
	return nil
}

// checkAcyclic runs a three-color DFS from every node. A cycle would
// make traversal (and the progress estimate) non-terminating.
func (g *Graph) checkAcyclic() error {
	const (
		white = 0
		grey  = 1
		black = 2
	)
	color := make(map[domain.NodeID]int, len(g.nodes))

	var visit func(id domain.NodeID) error
	visit = func(id domain.NodeID) error {
		if id.IsTerminal() {
			return nil
		}
		switch color[id] {
		case grey:
			return fmt.Errorf("cycle detected through node %s", id)
		case black:
			return nil
		}
		color[id] = grey
		for _, next := range successors(g.nodes[id]) {
			if err := visit(next); err != nil {
				return err
			}
		}
		color[id] = black
		return nil
	}

	for _, id := range g.order {
		if err := visit(id); err != nil {
			return err
		}
	}
	return nil
}
