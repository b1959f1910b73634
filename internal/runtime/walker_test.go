package runtime_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bonsono/sonolog/internal/runtime"
	"github.com/bonsono/sonolog/pkg/domain"
	"github.com/bonsono/sonolog/pkg/graph"
)

func newCanonicalSession() *domain.SessionState {
	return domain.NewSession("test-session", graph.Canonical().Start(), domain.PersonalData{Name: "Ana"})
}

func TestAdvanceYesNo(t *testing.T) {
	w := runtime.NewWalker(graph.Canonical())
	session := newCanonicalSession()

	updated, outcome, err := w.Advance(session, domain.Yes())
	require.NoError(t, err)
	require.Equal(t, runtime.StatusAdvanced, outcome.Status)

	assert.Equal(t, graph.NodeDuration, updated.CurrentNodeID)
	assert.Equal(t, []domain.NodeID{graph.NodeFrequency, graph.NodeDuration}, updated.VisitedNodeIDs)

	require.Len(t, updated.Answers, 1)
	ans := updated.Answers[0]
	assert.Equal(t, graph.NodeFrequency, ans.QuestionID)
	assert.Equal(t, domain.AnswerYes, ans.Value)
	assert.Equal(t, 1, ans.Sequence)
	assert.Contains(t, ans.Response, "3 vezes por semana")
}

func TestAdvanceDoesNotMutateInput(t *testing.T) {
	w := runtime.NewWalker(graph.Canonical())
	session := newCanonicalSession()

	_, _, err := w.Advance(session, domain.Yes())
	require.NoError(t, err)

	assert.Equal(t, graph.NodeFrequency, session.CurrentNodeID)
	assert.Len(t, session.VisitedNodeIDs, 1)
	assert.Empty(t, session.Answers)
}

func TestAdvanceNoInsomniaShortCircuit(t *testing.T) {
	w := runtime.NewWalker(graph.Canonical())
	session := newCanonicalSession()

	updated, outcome, err := w.Advance(session, domain.No())
	require.NoError(t, err)

	require.Equal(t, runtime.StatusReachedTerminal, outcome.Status)
	assert.Equal(t, domain.ReasonNoInsomnia, outcome.Reason)
	assert.True(t, updated.Terminated)
	assert.Equal(t, domain.ReasonNoInsomnia, updated.CompletionReason)

	require.NotNil(t, outcome.Report)
	assert.Equal(t, "Análise Preliminar: Ausência de Critérios para Insônia", outcome.Report.Title)
	assert.Equal(t, domain.SeverityNormal, outcome.Report.Severity)

	// The terminal answer is still recorded.
	require.Len(t, updated.Answers, 1)
	assert.Equal(t, domain.AnswerNo, updated.Answers[0].Value)
}

func TestAdvanceTerminatedSession(t *testing.T) {
	w := runtime.NewWalker(graph.Canonical())
	session := newCanonicalSession()

	terminated, _, err := w.Advance(session, domain.No())
	require.NoError(t, err)
	require.True(t, terminated.Terminated)

	_, _, err = w.Advance(terminated, domain.Yes())
	assert.ErrorIs(t, err, domain.ErrSessionTerminated)
}

func TestAdvanceInvalidAnswers(t *testing.T) {
	w := runtime.NewWalker(graph.Canonical())

	t.Run("yes/no rejects arbitrary literals", func(t *testing.T) {
		session := newCanonicalSession()
		_, _, err := w.Advance(session, domain.Answer{Value: "maybe"})

		var invalid *domain.InvalidAnswerError
		require.ErrorAs(t, err, &invalid)
		assert.Equal(t, graph.NodeFrequency, invalid.NodeID)
	})

	t.Run("yes/no rejects option selections", func(t *testing.T) {
		session := newCanonicalSession()
		_, _, err := w.Advance(session, domain.Choices("inicial"))

		var invalid *domain.InvalidAnswerError
		require.ErrorAs(t, err, &invalid)
	})

	t.Run("multiple choice rejects empty selection", func(t *testing.T) {
		session := sessionAtTypes(t, w)
		_, _, err := w.Advance(session, domain.Answer{})

		var invalid *domain.InvalidAnswerError
		require.ErrorAs(t, err, &invalid)
		assert.Equal(t, graph.NodeTypesChronic, invalid.NodeID)
	})

	t.Run("multiple choice rejects unknown option", func(t *testing.T) {
		session := sessionAtTypes(t, w)
		_, _, err := w.Advance(session, domain.Choices("inicial", "nope"))

		var invalid *domain.InvalidAnswerError
		require.ErrorAs(t, err, &invalid)
	})

	t.Run("multiple choice rejects yes/no literal", func(t *testing.T) {
		session := sessionAtTypes(t, w)
		_, _, err := w.Advance(session, domain.Yes())

		var invalid *domain.InvalidAnswerError
		require.ErrorAs(t, err, &invalid)
	})
}

// sessionAtTypes walks a fresh session to the first multiple-choice
// question (chronic insomnia types).
func sessionAtTypes(t *testing.T, w *runtime.Walker) *domain.SessionState {
	t.Helper()
	session := newCanonicalSession()

	session, _, err := w.Advance(session, domain.Yes()) // frequency
	require.NoError(t, err)
	session, _, err = w.Advance(session, domain.Yes()) // duration, chronic
	require.NoError(t, err)
	require.Equal(t, graph.NodeTypesChronic, session.CurrentNodeID)
	return session
}

func TestMultipleChoiceAggregation(t *testing.T) {
	w := runtime.NewWalker(graph.Canonical())
	session := sessionAtTypes(t, w)

	// Selection arrives out of order and with a duplicate.
	updated, _, err := w.Advance(session, domain.Choices("terminal", "inicial", "terminal"))
	require.NoError(t, err)

	ans := updated.Answers[len(updated.Answers)-1]
	// Normalized to declaration order, duplicate collapsed.
	assert.Equal(t, []string{"inicial", "terminal"}, ans.OptionIDs)
	assert.Equal(t,
		"Tenho dificuldade para conciliar (iniciar) o sono.; Costumo perder o sono antes da hora prevista para acordar.",
		ans.Value)
	assert.Contains(t, ans.Response, "insônia inicial ou de conciliação.")
	assert.Contains(t, ans.Response, "insônia terminal.")
	// Responses are joined by a single space.
	assert.Contains(t, ans.Response, ". Se o seu problema é despertar")
}

func TestRewindRoundTrip(t *testing.T) {
	w := runtime.NewWalker(graph.Canonical())
	before := newCanonicalSession()

	advanced, _, err := w.Advance(before, domain.Yes())
	require.NoError(t, err)

	rewound, err := w.Rewind(advanced)
	require.NoError(t, err)

	assert.Equal(t, before.CurrentNodeID, rewound.CurrentNodeID)
	assert.Equal(t, before.VisitedNodeIDs, rewound.VisitedNodeIDs)
	assert.Len(t, rewound.Answers, 0)
}

func TestRewindAtStart(t *testing.T) {
	w := runtime.NewWalker(graph.Canonical())
	session := newCanonicalSession()

	_, err := w.Rewind(session)
	assert.ErrorIs(t, err, domain.ErrCannotRewind)
}

func TestRewindTerminated(t *testing.T) {
	w := runtime.NewWalker(graph.Canonical())
	session := newCanonicalSession()

	terminated, _, err := w.Advance(session, domain.No())
	require.NoError(t, err)

	_, err = w.Rewind(terminated)
	assert.ErrorIs(t, err, domain.ErrCannotRewind)
}

// brokenSource simulates an authoring defect: node 0 exists but its
// successor does not.
type brokenSource struct{}

func (brokenSource) Node(id domain.NodeID) (domain.Node, error) {
	if id == 0 {
		return domain.Node{
			ID:     0,
			Kind:   domain.KindYesNo,
			Prompt: "q",
			Route:  domain.FixedNext{Next: 99},
		}, nil
	}
	return domain.Node{}, &domain.GraphIntegrityError{NodeID: id}
}

func TestAdvanceDanglingSuccessor(t *testing.T) {
	w := runtime.NewWalker(brokenSource{})
	session := domain.NewSession("broken", 0, domain.PersonalData{})

	_, _, err := w.Advance(session, domain.Yes())

	var integrity *domain.GraphIntegrityError
	require.ErrorAs(t, err, &integrity)
	assert.Equal(t, domain.NodeID(99), integrity.NodeID)

	// The failed advance left the session untouched.
	assert.Equal(t, domain.NodeID(0), session.CurrentNodeID)
	assert.Empty(t, session.Answers)
}

func TestFullWalkSevere(t *testing.T) {
	w := runtime.NewWalker(graph.Canonical())
	session := newCanonicalSession()

	steps := []struct {
		node   domain.NodeID
		answer domain.Answer
	}{
		{graph.NodeFrequency, domain.Yes()},
		{graph.NodeDuration, domain.Yes()},
		{graph.NodeTypesChronic, domain.Choices("inicial", "manutencao", "terminal")},
		{graph.NodeMixedGlobal, domain.Yes()},
		{graph.NodePrimaryCause, domain.Yes()},
		{graph.NodeSecondaryCause, domain.No()},
		{graph.NodeCircadian, domain.No()},
		{graph.NodeDaytimeImpact, domain.Yes()},
		{graph.NodeRegularSchedule, domain.No()},
		{graph.NodeScheduleDifficulty, domain.Yes()},
		{graph.NodeFullyIrregular, domain.Yes()},
		{graph.NodeParadoxical, domain.No()},
		{graph.NodeWorry, domain.Yes()},
		{graph.NodeSleepDisorders, domain.Yes()},
		{graph.NodeSnoringApnea, domain.Yes()},
		{graph.NodeSystemicDisease, domain.No()},
		{graph.NodeSubstances, domain.Yes()},
	}

	var outcome *runtime.Outcome
	var err error
	for _, step := range steps {
		require.Equal(t, step.node, session.CurrentNodeID, "unexpected position in walk")
		session, outcome, err = w.Advance(session, step.answer)
		require.NoError(t, err)
	}

	require.Equal(t, runtime.StatusReachedTerminal, outcome.Status)
	assert.Equal(t, domain.ReasonCompleted, outcome.Reason)
	assert.Equal(t, domain.SeveritySevere, outcome.Report.Severity)
	assert.Contains(t, outcome.Report.Recommendations[0], "URGENTE")
}

func TestFullWalkMild(t *testing.T) {
	w := runtime.NewWalker(graph.Canonical())
	session := newCanonicalSession()

	steps := []struct {
		node   domain.NodeID
		answer domain.Answer
	}{
		{graph.NodeFrequency, domain.Yes()},
		{graph.NodeDuration, domain.No()},
		{graph.NodeTypesAcute, domain.Choices("inicial")},
		{graph.NodeMixedGlobal, domain.No()},
		{graph.NodePrimaryCause, domain.No()},
		{graph.NodeSecondaryCause, domain.No()},
		{graph.NodeCircadian, domain.No()},
		{graph.NodeDaytimeImpact, domain.No()},
		{graph.NodeOpportunity, domain.Yes()},
		{graph.NodeRegularSchedule, domain.Yes()},
		{graph.NodeParadoxical, domain.No()},
		{graph.NodeWorry, domain.No()},
		{graph.NodeSleepDisorders, domain.No()},
		{graph.NodeSnoringApnea, domain.No()},
		{graph.NodeSystemicDisease, domain.No()},
		{graph.NodeSubstances, domain.No()},
	}

	var outcome *runtime.Outcome
	var err error
	for _, step := range steps {
		require.Equal(t, step.node, session.CurrentNodeID, "unexpected position in walk")
		session, outcome, err = w.Advance(session, step.answer)
		require.NoError(t, err)
	}

	require.Equal(t, runtime.StatusReachedTerminal, outcome.Status)
	assert.Equal(t, domain.SeverityMild, outcome.Report.Severity)
	assert.Len(t, outcome.Report.Recommendations, 3)
}

func TestOutcomeErrorLeavesNoPartialState(t *testing.T) {
	w := runtime.NewWalker(graph.Canonical())
	session := sessionAtTypes(t, w)
	visitedBefore := len(session.VisitedNodeIDs)

	_, _, err := w.Advance(session, domain.Choices("wrong"))
	require.Error(t, err)
	assert.True(t, errors.As(err, new(*domain.InvalidAnswerError)))
	assert.Len(t, session.VisitedNodeIDs, visitedBefore)
}
