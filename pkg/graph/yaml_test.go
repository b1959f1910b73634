package graph_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bonsono/sonolog/pkg/domain"
	"github.com/bonsono/sonolog/pkg/graph"
)

const sampleDefinition = `
start: 0
nodes:
  - id: 0
    kind: yes_no
    prompt: "Você dorme mal com frequência?"
    response_yes: "Entendido."
    response_no: "Sem resposta."
    next_yes: 1
    next_no: end_no_insomnia
  - id: 1
    kind: multiple_choice
    prompt: "Escolha uma ou mais opções:"
    options:
      - {id: a, label: "Opção A", response: "Resposta A."}
      - {id: b, label: "Opção B"}
    next: end
`

func TestParseYAML(t *testing.T) {
	g, err := graph.ParseYAML(strings.NewReader(sampleDefinition))
	require.NoError(t, err)

	assert.Equal(t, domain.NodeID(0), g.Start())
	assert.Equal(t, 2, g.Len())

	first, err := g.Node(0)
	require.NoError(t, err)
	assert.Equal(t, domain.KindYesNo, first.Kind)
	route, ok := first.Route.(domain.ConditionalNext)
	require.True(t, ok)
	assert.Equal(t, domain.NodeID(1), route.NextYes)
	assert.Equal(t, domain.TerminalNoInsomnia, route.NextNo)

	second, err := g.Node(1)
	require.NoError(t, err)
	assert.Equal(t, domain.KindMultipleChoice, second.Kind)
	require.Len(t, second.Options, 2)
	assert.Equal(t, "Resposta A.", second.Options[0].Response)
	fixed, ok := second.Route.(domain.FixedNext)
	require.True(t, ok)
	assert.Equal(t, domain.TerminalCompleted, fixed.Next)
}

func TestParseYAMLDefaultsKindAndStart(t *testing.T) {
	g, err := graph.ParseYAML(strings.NewReader(`
nodes:
  - id: 0
    prompt: "Pergunta única"
    next: end
`))
	require.NoError(t, err)

	n, err := g.Node(0)
	require.NoError(t, err)
	assert.Equal(t, domain.KindYesNo, n.Kind)
	assert.Equal(t, domain.StartNodeID, g.Start())
}

func TestParseYAMLErrors(t *testing.T) {
	cases := []struct {
		name    string
		input   string
		wantErr string
	}{
		{
			name:    "not yaml",
			input:   "{{nope",
			wantErr: "failed to parse graph YAML",
		},
		{
			name: "unknown field",
			input: `
nodes:
  - id: 0
    prompt: "p"
    next: end
    surprise: true
`,
			wantErr: "invalid graph definition",
		},
		{
			name: "missing id",
			input: `
nodes:
  - prompt: "p"
    next: end
`,
			wantErr: "missing id",
		},
		{
			name: "missing successor",
			input: `
nodes:
  - id: 0
    prompt: "p"
`,
			wantErr: "missing successor",
		},
		{
			name: "half conditional",
			input: `
nodes:
  - id: 0
    prompt: "p"
    next_yes: end
`,
			wantErr: "declared together",
		},
		{
			name: "fixed and conditional mixed",
			input: `
nodes:
  - id: 0
    prompt: "p"
    next: end
    next_yes: end
    next_no: end
`,
			wantErr: "mutually exclusive",
		},
		{
			name: "unknown sentinel name",
			input: `
nodes:
  - id: 0
    prompt: "p"
    next: finish
`,
			wantErr: "unknown successor",
		},
		{
			name: "structurally invalid graph",
			input: `
nodes:
  - id: 0
    prompt: "p"
    next: 7
`,
			wantErr: "dangling reference",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := graph.ParseYAML(strings.NewReader(tc.input))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestLoadYAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "questionnaire.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleDefinition), 0o644))

	g, err := graph.LoadYAMLFile(path)
	require.NoError(t, err)
	assert.Equal(t, 2, g.Len())

	_, err = graph.LoadYAMLFile(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open graph definition")
}
