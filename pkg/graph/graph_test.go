package graph_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bonsono/sonolog/pkg/domain"
	"github.com/bonsono/sonolog/pkg/graph"
)

func yesNo(id domain.NodeID, next domain.NodeID) domain.Node {
	return domain.Node{
		ID:     id,
		Kind:   domain.KindYesNo,
		Prompt: "pergunta",
		Route:  domain.FixedNext{Next: next},
	}
}

func TestNewValidGraph(t *testing.T) {
	g, err := graph.New(0, []domain.Node{
		yesNo(0, 1),
		yesNo(1, domain.TerminalCompleted),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.NodeID(0), g.Start())
	assert.Equal(t, 2, g.Len())
}

func TestNewRejectsMalformedGraphs(t *testing.T) {
	cases := []struct {
		name    string
		start   domain.NodeID
		nodes   []domain.Node
		wantErr string
	}{
		{
			name:    "undefined start",
			start:   7,
			nodes:   []domain.Node{yesNo(0, domain.TerminalCompleted)},
			wantErr: "start node",
		},
		{
			name:  "duplicate node id",
			start: 0,
			nodes: []domain.Node{
				yesNo(0, domain.TerminalCompleted),
				yesNo(0, domain.TerminalCompleted),
			},
			wantErr: "duplicate node id",
		},
		{
			name:    "reserved terminal id",
			start:   0,
			nodes:   []domain.Node{yesNo(0, domain.TerminalCompleted), yesNo(domain.TerminalCompleted, domain.TerminalCompleted)},
			wantErr: "reserved for terminals",
		},
		{
			name:    "dangling reference",
			start:   0,
			nodes:   []domain.Node{yesNo(0, 42)},
			wantErr: "dangling reference",
		},
		{
			name:  "unknown terminal sentinel",
			start: 0,
			nodes: []domain.Node{
				yesNo(0, domain.NodeID(-3)),
			},
			wantErr: "unknown terminal sentinel",
		},
		{
			name:  "cycle",
			start: 0,
			nodes: []domain.Node{
				yesNo(0, 1),
				yesNo(1, 0),
			},
			wantErr: "cycle detected",
		},
		{
			name:  "empty prompt",
			start: 0,
			nodes: []domain.Node{{
				ID:    0,
				Kind:  domain.KindYesNo,
				Route: domain.FixedNext{Next: domain.TerminalCompleted},
			}},
			wantErr: "empty prompt",
		},
		{
			name:  "missing route",
			start: 0,
			nodes: []domain.Node{{
				ID:     0,
				Kind:   domain.KindYesNo,
				Prompt: "pergunta",
			}},
			wantErr: "missing route",
		},
		{
			name:  "yes/no with options",
			start: 0,
			nodes: []domain.Node{{
				ID:      0,
				Kind:    domain.KindYesNo,
				Prompt:  "pergunta",
				Route:   domain.FixedNext{Next: domain.TerminalCompleted},
				Options: []domain.Option{{ID: "a", Label: "A"}},
			}},
			wantErr: "must not declare options",
		},
		{
			name:  "multiple choice without options",
			start: 0,
			nodes: []domain.Node{{
				ID:     0,
				Kind:   domain.KindMultipleChoice,
				Prompt: "pergunta",
				Route:  domain.FixedNext{Next: domain.TerminalCompleted},
			}},
			wantErr: "at least one option",
		},
		{
			name:  "multiple choice with conditional route",
			start: 0,
			nodes: []domain.Node{{
				ID:      0,
				Kind:    domain.KindMultipleChoice,
				Prompt:  "pergunta",
				Route:   domain.ConditionalNext{NextYes: domain.TerminalCompleted, NextNo: domain.TerminalCompleted},
				Options: []domain.Option{{ID: "a", Label: "A"}},
			}},
			wantErr: "fixed successor",
		},
		{
			name:  "multiple choice with yes/no responses",
			start: 0,
			nodes: []domain.Node{{
				ID:          0,
				Kind:        domain.KindMultipleChoice,
				Prompt:      "pergunta",
				Route:       domain.FixedNext{Next: domain.TerminalCompleted},
				Options:     []domain.Option{{ID: "a", Label: "A"}},
				ResponseYes: "sim",
			}},
			wantErr: "must not declare yes/no responses",
		},
		{
			name:  "duplicate option id",
			start: 0,
			nodes: []domain.Node{{
				ID:     0,
				Kind:   domain.KindMultipleChoice,
				Prompt: "pergunta",
				Route:  domain.FixedNext{Next: domain.TerminalCompleted},
				Options: []domain.Option{
					{ID: "a", Label: "A"},
					{ID: "a", Label: "A de novo"},
				},
			}},
			wantErr: "duplicate option id",
		},
		{
			name:  "unknown kind",
			start: 0,
			nodes: []domain.Node{{
				ID:     0,
				Kind:   domain.NodeKind("slider"),
				Prompt: "pergunta",
				Route:  domain.FixedNext{Next: domain.TerminalCompleted},
			}},
			wantErr: "unknown kind",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := graph.New(tc.start, tc.nodes)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestNodeMiss(t *testing.T) {
	g := graph.Canonical()

	_, err := g.Node(42)
	var integrity *domain.GraphIntegrityError
	require.ErrorAs(t, err, &integrity)
	assert.Equal(t, domain.NodeID(42), integrity.NodeID)
}

func TestEstimateTotal(t *testing.T) {
	g := graph.Canonical()

	// The longest walk through the questionnaire sees 18 questions.
	assert.Equal(t, 18, g.EstimateTotal(graph.NodeFrequency, 1))

	// Deeper in, the projection never shrinks the visited count.
	assert.Equal(t, 18, g.EstimateTotal(graph.NodeSubstances, 18))

	// Terminals and unknown ids fall back to what was already seen.
	assert.Equal(t, 5, g.EstimateTotal(domain.TerminalCompleted, 5))
	assert.Equal(t, 5, g.EstimateTotal(domain.NodeID(99), 5))
}

func TestMustNewPanics(t *testing.T) {
	assert.Panics(t, func() {
		graph.MustNew(0, []domain.Node{yesNo(0, 42)})
	})
}
