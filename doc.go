/*
Package sonolog implements an adaptive insomnia-assessment engine.

A questionnaire is a directed acyclic graph of yes/no and
multiple-choice questions. The engine walks a respondent through it
one answer at a time, branching on what they say, supports stepping
back to revise an answer, and on reaching a terminal produces a
clinical-style anamnesis report with a severity classification.

The root package is the facade: it wires the canonical questionnaire
(or a custom graph), the session walker and pluggable persistence into
an Engine with a small API (Start, Answer, Rewind, View, Report).
Sessions survive process restarts through a SessionStore; completed
assessments are archived as immutable profile bundles in a
ProfileStore.

Basic usage:

	engine, err := sonolog.New()
	if err != nil {
		log.Fatal(err)
	}

	view, err := engine.Start(ctx, domain.PersonalData{Name: "Ana"})
	// render view.Prompt, collect an answer...
	view, err = engine.Answer(ctx, view.SessionID, domain.Yes())

Adapters under pkg/adapters and internal/adapters expose the same
engine over HTTP, MCP and an interactive terminal, and persist
sessions to files, Redis or SQLite.
*/
package sonolog
