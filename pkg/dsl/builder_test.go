package dsl_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bonsono/sonolog/pkg/domain"
	"github.com/bonsono/sonolog/pkg/dsl"
)

func TestBuildQuestionnaire(t *testing.T) {
	b := dsl.New(0)
	b.YesNo(0, "Dorme mal?").
		Responses("Entendido.", "Que bom.").
		Branch(1, domain.TerminalNoInsomnia)
	b.Choice(1, "Quais períodos?").
		Option("inicio", "No início da noite", "Insônia inicial.").
		Option("fim", "No fim da noite", "Insônia terminal.").
		To(2)
	b.YesNo(2, "Tem prejuízos diurnos?").Ends()

	g, err := b.Build()
	require.NoError(t, err)

	assert.Equal(t, domain.NodeID(0), g.Start())
	assert.Equal(t, 3, g.Len())

	first, err := g.Node(0)
	require.NoError(t, err)
	assert.Equal(t, "Entendido.", first.ResponseYes)
	route, ok := first.Route.(domain.ConditionalNext)
	require.True(t, ok)
	assert.Equal(t, domain.TerminalNoInsomnia, route.NextNo)

	second, err := g.Node(1)
	require.NoError(t, err)
	require.Len(t, second.Options, 2)
	assert.Equal(t, "inicio", second.Options[0].ID)

	last, err := g.Node(2)
	require.NoError(t, err)
	assert.Equal(t, domain.FixedNext{Next: domain.TerminalCompleted}, last.Route)
}

func TestRedeclareReturnsExisting(t *testing.T) {
	b := dsl.New(0)
	first := b.YesNo(0, "Pergunta?")
	again := b.YesNo(0, "Outra?")
	assert.Same(t, first, again)

	first.Ends()
	g, err := b.Build()
	require.NoError(t, err)

	n, err := g.Node(0)
	require.NoError(t, err)
	assert.Equal(t, "Pergunta?", n.Prompt)
	assert.Equal(t, 1, g.Len())
}

func TestBuildRejectsInvalidGraph(t *testing.T) {
	b := dsl.New(0)
	b.YesNo(0, "Pergunta?").To(7)

	_, err := b.Build()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to build questionnaire")
}

func TestMustBuildPanics(t *testing.T) {
	b := dsl.New(0)
	b.YesNo(0, "Pergunta?") // no route

	assert.Panics(t, func() { b.MustBuild() })
}
