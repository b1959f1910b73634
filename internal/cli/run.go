// Package cli holds the shared logic behind the sonolog commands:
// engine assembly from flags and the interactive terminal assessment.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/bonsono/sonolog"
	"github.com/bonsono/sonolog/internal/presentation/tui"
	"github.com/bonsono/sonolog/pkg/domain"
)

// RunOptions contains all the configuration for the run command.
type RunOptions struct {
	Engine EngineConfig

	SessionID string
	Fresh     bool
	Debug     bool

	Name       string
	Gender     string
	BirthDate  string
	Profession string
	City       string
	State      string
}

// Execute runs one interactive assessment in the terminal.
func Execute(opts RunOptions) error {
	logger := createLogger(opts.Debug)

	tui.PrintBanner()

	handles, err := BuildEngine(opts.Engine, logger)
	if err != nil {
		return fmt.Errorf("error initializing sonolog: %w", err)
	}
	defer handles.Close()
	engine := handles.Engine

	sigCtx := NewSignalContext(context.Background())
	defer sigCtx.Cancel()

	if opts.Fresh && opts.SessionID != "" {
		_ = engine.Abandon(sigCtx, opts.SessionID)
	}

	personal := domain.PersonalData{
		Name:       opts.Name,
		Gender:     opts.Gender,
		BirthDate:  opts.BirthDate,
		Profession: opts.Profession,
		City:       opts.City,
		State:      opts.State,
	}

	var startOpts []sonolog.StartOption
	if opts.SessionID != "" {
		startOpts = append(startOpts, sonolog.StartWithID(opts.SessionID))
	}

	view, err := engine.Start(sigCtx, personal, startOpts...)
	if err != nil {
		return fmt.Errorf("failed to start session: %w", err)
	}
	if view.Step > 1 {
		printSystemMessage("Retomando avaliação na pergunta %d.", view.Step)
	}

	render := tui.NewRenderer()
	reader := bufio.NewScanner(NewInterruptibleReader(os.Stdin, sigCtx.Done()))

	for !view.Terminated {
		printMarkdown(render, tui.QuestionMarkdown(view.Prompt, view.Step, view.EstimatedTotal, view.Options))

		fmt.Print("> ")
		if !reader.Scan() {
			return handleExecutionError(finishInterrupted(sigCtx, view.Step))
		}

		answer, err := parseAnswer(reader.Text(), view.Kind, view.Options)
		if errors.Is(err, errGoBack) {
			view, err = engine.Rewind(sigCtx, view.SessionID)
			if errors.Is(err, domain.ErrCannotRewind) {
				printSystemMessage("Você já está na primeira pergunta.")
				view, err = engine.View(sigCtx, view.SessionID)
			}
			if err != nil {
				return handleExecutionError(err)
			}
			continue
		}
		if err != nil {
			printSystemMessage("%v", err)
			continue
		}

		view, err = engine.Answer(sigCtx, view.SessionID, answer)
		if err != nil {
			var invalid *domain.InvalidAnswerError
			if errors.As(err, &invalid) {
				printSystemMessage("Resposta inválida: %s", invalid.Reason)
				view, err = engine.View(sigCtx, view.SessionID)
				if err != nil {
					return handleExecutionError(err)
				}
				continue
			}
			return handleExecutionError(err)
		}

		if view.Response != "" && !view.Terminated {
			fmt.Println()
			printSystemMessage("%s", view.Response)
		}
	}

	if view.Report != nil {
		printMarkdown(render, tui.ReportMarkdown(*view.Report))
	}
	printSystemMessage("Avaliação concluída. Relatório arquivado na sessão '%s'.", view.SessionID)
	return nil
}

func printMarkdown(render func(string) (string, error), markdown string) {
	out, err := render(markdown)
	if err != nil {
		fmt.Println(markdown)
		return
	}
	fmt.Print(out)
}

func finishInterrupted(sigCtx *SignalContext, step int) error {
	if sigCtx.Signal() == os.Interrupt {
		fmt.Printf("[CTRL+C]\n")
	}
	printSystemMessage("Avaliação interrompida na pergunta %d. A sessão foi preservada.", step)
	return sigCtx.Err()
}
