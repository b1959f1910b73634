/*
Package dsl provides a fluent builder for programmatically constructing
questionnaire graphs.

It allows defining flows in type-safe Go instead of YAML, which is
useful for dynamic questionnaire generation, unit testing, and IDE
autocompletion.

Example usage:

	q := dsl.New(0)

	q.YesNo(0, "Você dorme mal com frequência?").
		Branch(1, domain.TerminalNoInsomnia)

	q.Choice(1, "Em que momento da noite?").
		Option("inicial", "Ao deitar", "").
		Option("manutencao", "De madrugada", "").
		To(2)

	q.YesNo(2, "Isso afeta o seu dia?").
		Responses("Entendo.", "Que bom.").
		Branch(domain.TerminalCompleted, domain.TerminalCompleted)

	g, err := q.Build()
*/
package dsl
