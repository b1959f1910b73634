package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"sync"
	"syscall"

	"github.com/bonsono/sonolog/internal/logging"
	"github.com/bonsono/sonolog/pkg/domain"
)

// SignalContext wraps a context and captures the signal that cancelled it.
type SignalContext struct {
	context.Context
	Cancel func()
	start  sync.Once
	stop   sync.Once
	sigCh  chan os.Signal
	sigVal os.Signal
	mu     sync.Mutex
}

// NewSignalContext creates a context that is cancelled on SIGINT or
// SIGTERM and remembers which signal did it.
func NewSignalContext(parent context.Context) *SignalContext {
	ctx, cancel := context.WithCancel(parent)
	sc := &SignalContext{
		Context: ctx,
		Cancel:  cancel,
		sigCh:   make(chan os.Signal, 1),
	}

	sc.start.Do(func() {
		signal.Notify(sc.sigCh, os.Interrupt, syscall.SIGTERM)
		go func() {
			select {
			case sig := <-sc.sigCh:
				sc.mu.Lock()
				sc.sigVal = sig
				sc.mu.Unlock()
				sc.Cancel()
			case <-sc.Context.Done():
			}
			sc.stop.Do(func() {
				signal.Stop(sc.sigCh)
			})
		}()
	})

	return sc
}

// Signal returns the signal that caused the cancellation, or nil.
func (sc *SignalContext) Signal() os.Signal {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return sc.sigVal
}

// createLogger configures the application logger. In debug mode it
// writes to stderr, keeping stdout clean for the questionnaire UI.
func createLogger(debug bool) *slog.Logger {
	if debug {
		return logging.New(slog.LevelDebug)
	}
	return logging.NewNop()
}

// printSystemMessage prints a standardized system message to stdout.
func printSystemMessage(format string, args ...any) {
	fmt.Printf(">>> %s\n", fmt.Sprintf(format, args...))
}

var errGoBack = errors.New("go back requested")

// parseAnswer turns terminal input into an answer for the given
// question. "voltar" (or "b") requests a rewind via errGoBack.
// Yes/no questions take s/sim/y/yes and n/nao/não/no; multiple-choice
// questions take comma-separated 1-based option numbers.
func parseAnswer(input string, kind domain.NodeKind, options []domain.Option) (domain.Answer, error) {
	trimmed := strings.ToLower(strings.TrimSpace(input))
	if trimmed == "voltar" || trimmed == "b" {
		return domain.Answer{}, errGoBack
	}

	if kind == domain.KindMultipleChoice {
		var ids []string
		for _, part := range strings.Split(trimmed, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			n, err := strconv.Atoi(part)
			if err != nil || n < 1 || n > len(options) {
				return domain.Answer{}, fmt.Errorf("escolha números entre 1 e %d, separados por vírgula", len(options))
			}
			ids = append(ids, options[n-1].ID)
		}
		if len(ids) == 0 {
			return domain.Answer{}, fmt.Errorf("selecione ao menos uma opção")
		}
		return domain.Choices(ids...), nil
	}

	switch trimmed {
	case "s", "sim", "y", "yes":
		return domain.Yes(), nil
	case "n", "nao", "não", "no":
		return domain.No(), nil
	default:
		return domain.Answer{}, fmt.Errorf("responda sim ou não (s/n)")
	}
}

// InterruptibleReader wraps an io.Reader (like os.Stdin) and checks a
// cancellation channel around the blocking read.
type InterruptibleReader struct {
	base   io.Reader
	cancel <-chan struct{}
}

func NewInterruptibleReader(base io.Reader, cancel <-chan struct{}) *InterruptibleReader {
	return &InterruptibleReader{
		base:   base,
		cancel: cancel,
	}
}

func (r *InterruptibleReader) Read(p []byte) (n int, err error) {
	select {
	case <-r.cancel:
		return 0, errors.New("interrupted")
	default:
	}

	n, err = r.base.Read(p)

	select {
	case <-r.cancel:
		return 0, errors.New("interrupted")
	default:
	}
	return n, err
}

func isInterrupted(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, context.Canceled) ||
		err.Error() == "interrupted" ||
		errors.Is(err, io.EOF) ||
		(errors.Unwrap(err) != nil && isInterrupted(errors.Unwrap(err)))
}

func handleExecutionError(err error) error {
	if err == nil {
		return nil
	}
	if isInterrupted(err) {
		return nil // Exit 0 for interruptions
	}
	return err
}
