package sonolog_test

import (
	"context"
	"fmt"
	"log"

	"github.com/bonsono/sonolog"
	"github.com/bonsono/sonolog/pkg/domain"
	"github.com/bonsono/sonolog/pkg/dsl"
)

// ExampleNew runs the canonical insomnia questionnaire fully in memory
// and takes the early exit on the first question.
func ExampleNew() {
	engine, err := sonolog.New()
	if err != nil {
		log.Fatal(err)
	}
	ctx := context.Background()

	view, err := engine.Start(ctx, domain.PersonalData{Name: "Maria"})
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(view.Prompt)

	// "No" on the frequency question means the insomnia criteria are
	// not met; the session terminates with a report.
	view, err = engine.Answer(ctx, view.SessionID, domain.No())
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(view.Terminated)
	fmt.Println(view.Report.Title)

	// Output:
	// A sua insatisfação com o sono acontece 3 ou mais vezes por semana?
	// true
	// Análise Preliminar: Ausência de Critérios para Insônia
}

// ExampleNew_customGraph builds a two-question screening flow with the
// dsl package and walks it to completion.
func ExampleNew_customGraph() {
	b := dsl.New(0)
	b.YesNo(0, "Você dorme mal com frequência?").
		Branch(1, domain.TerminalNoInsomnia)
	b.YesNo(1, "O problema afeta o seu dia?").Ends()

	engine, err := sonolog.New(sonolog.WithGraph(b.MustBuild()))
	if err != nil {
		log.Fatal(err)
	}
	ctx := context.Background()

	view, err := engine.Start(ctx, domain.PersonalData{})
	if err != nil {
		log.Fatal(err)
	}

	view, err = engine.Answer(ctx, view.SessionID, domain.Yes())
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(view.Prompt)

	view, err = engine.Answer(ctx, view.SessionID, domain.Yes())
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(view.Reason)

	// Output:
	// O problema afeta o seu dia?
	// completed
}
