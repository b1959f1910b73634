package cli

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bonsono/sonolog/pkg/domain"
)

var testOptions = []domain.Option{
	{ID: "inicial", Label: "A"},
	{ID: "manutencao", Label: "B"},
	{ID: "terminal", Label: "C"},
}

func TestParseAnswerYesNo(t *testing.T) {
	cases := []struct {
		input string
		want  domain.Answer
	}{
		{"s", domain.Yes()},
		{"sim", domain.Yes()},
		{"SIM", domain.Yes()},
		{"  yes ", domain.Yes()},
		{"y", domain.Yes()},
		{"n", domain.No()},
		{"nao", domain.No()},
		{"não", domain.No()},
		{"no", domain.No()},
	}

	for _, tc := range cases {
		got, err := parseAnswer(tc.input, domain.KindYesNo, nil)
		require.NoError(t, err, "input %q", tc.input)
		assert.Equal(t, tc.want, got, "input %q", tc.input)
	}
}

func TestParseAnswerYesNoInvalid(t *testing.T) {
	_, err := parseAnswer("talvez", domain.KindYesNo, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sim ou não")
}

func TestParseAnswerGoBack(t *testing.T) {
	for _, input := range []string{"voltar", "VOLTAR", "b", " b "} {
		_, err := parseAnswer(input, domain.KindYesNo, nil)
		assert.ErrorIs(t, err, errGoBack, "input %q", input)
	}
	// Also honored on multiple-choice questions.
	_, err := parseAnswer("voltar", domain.KindMultipleChoice, testOptions)
	assert.ErrorIs(t, err, errGoBack)
}

func TestParseAnswerMultipleChoice(t *testing.T) {
	got, err := parseAnswer("1,3", domain.KindMultipleChoice, testOptions)
	require.NoError(t, err)
	assert.Equal(t, domain.Choices("inicial", "terminal"), got)

	got, err = parseAnswer(" 2 ", domain.KindMultipleChoice, testOptions)
	require.NoError(t, err)
	assert.Equal(t, domain.Choices("manutencao"), got)

	// Trailing comma is tolerated.
	got, err = parseAnswer("1,", domain.KindMultipleChoice, testOptions)
	require.NoError(t, err)
	assert.Equal(t, domain.Choices("inicial"), got)
}

func TestParseAnswerMultipleChoiceInvalid(t *testing.T) {
	for _, input := range []string{"0", "4", "abc", "1,4"} {
		_, err := parseAnswer(input, domain.KindMultipleChoice, testOptions)
		require.Error(t, err, "input %q", input)
		assert.Contains(t, err.Error(), "entre 1 e 3", "input %q", input)
	}

	_, err := parseAnswer("", domain.KindMultipleChoice, testOptions)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ao menos uma opção")
}

func TestInterruptibleReader(t *testing.T) {
	cancel := make(chan struct{})
	r := NewInterruptibleReader(strings.NewReader("hello"), cancel)

	buf := make([]byte, 5)
	n, err := r.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(buf[:n]))

	close(cancel)
	_, err = r.Read(buf)
	require.Error(t, err)
	assert.Equal(t, "interrupted", err.Error())
}

func TestIsInterrupted(t *testing.T) {
	assert.False(t, isInterrupted(nil))
	assert.False(t, isInterrupted(errors.New("boom")))
	assert.True(t, isInterrupted(io.EOF))
	assert.True(t, isInterrupted(errors.New("interrupted")))
}

func TestHandleExecutionError(t *testing.T) {
	assert.NoError(t, handleExecutionError(nil))
	assert.NoError(t, handleExecutionError(io.EOF))

	boom := errors.New("boom")
	assert.Equal(t, boom, handleExecutionError(boom))
}
