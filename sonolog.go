package sonolog

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/bonsono/sonolog/internal/logging"
	"github.com/bonsono/sonolog/internal/runtime"
	"github.com/bonsono/sonolog/pkg/adapters/memory"
	"github.com/bonsono/sonolog/pkg/domain"
	"github.com/bonsono/sonolog/pkg/graph"
	"github.com/bonsono/sonolog/pkg/observability"
	"github.com/bonsono/sonolog/pkg/ports"
	"github.com/bonsono/sonolog/pkg/session"
)

// AccessGate decides whether a session may keep advancing. It is
// consulted before every answer once the respondent has moved past the
// opening question, which is where the product inserts its paywall.
// Return domain.ErrAccessRequired (possibly wrapped) to block.
type AccessGate func(ctx context.Context, state *domain.SessionState) error

// Engine is the high-level entry point for the Sonolog library.
// It wires the questionnaire graph, the walker and the persistence
// layers behind a small session-oriented API.
type Engine struct {
	graph    *graph.Graph
	walker   *runtime.Walker
	sessions *session.Manager
	profiles ports.ProfileStore
	metrics  *observability.Metrics
	gate     AccessGate
	logger   *slog.Logger

	sessionStore ports.SessionStore
	locker       ports.DistributedLocker
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithGraph replaces the canonical questionnaire with a custom graph.
func WithGraph(g *graph.Graph) Option {
	return func(e *Engine) {
		e.graph = g
	}
}

// WithSessionStore sets the backing store for in-flight sessions
// (default: in-memory).
func WithSessionStore(store ports.SessionStore) Option {
	return func(e *Engine) {
		e.sessionStore = store
	}
}

// WithProfileStore sets the archive for completed assessments
// (default: in-memory).
func WithProfileStore(store ports.ProfileStore) Option {
	return func(e *Engine) {
		e.profiles = store
	}
}

// WithLocker enables distributed session locking for multi-replica
// deployments sharing one store.
func WithLocker(locker ports.DistributedLocker) Option {
	return func(e *Engine) {
		e.locker = locker
	}
}

// WithMetrics registers engine counters.
func WithMetrics(m *observability.Metrics) Option {
	return func(e *Engine) {
		e.metrics = m
	}
}

// WithAccessGate installs the advance-permission hook.
func WithAccessGate(gate AccessGate) Option {
	return func(e *Engine) {
		e.gate = gate
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// New initializes a Sonolog Engine. With no options it runs the
// canonical insomnia questionnaire fully in memory.
func New(opts ...Option) (*Engine, error) {
	eng := &Engine{}
	for _, opt := range opts {
		opt(eng)
	}

	if eng.graph == nil {
		eng.graph = graph.Canonical()
	}
	if eng.logger == nil {
		eng.logger = logging.NewNop()
	}
	if eng.sessionStore == nil {
		eng.sessionStore = memory.NewSessionStore()
	}
	if eng.profiles == nil {
		eng.profiles = memory.NewProfileStore()
	}

	managerOpts := []session.Option{session.WithLogger(eng.logger)}
	if eng.locker != nil {
		managerOpts = append(managerOpts, session.WithLocker(eng.locker))
	}
	eng.sessions = session.NewManager(eng.sessionStore, managerOpts...)
	eng.walker = runtime.NewWalker(eng.graph, runtime.WithLogger(eng.logger))

	return eng, nil
}

// Graph exposes the questionnaire definition for visualization and
// validation tooling.
func (e *Engine) Graph() *graph.Graph {
	return e.graph
}

// QuestionView is what a renderer needs to put the current question on
// screen, or the terminal outcome when the session is over.
type QuestionView struct {
	SessionID string

	// Question fields, meaningful while Terminated is false.
	NodeID  domain.NodeID
	Prompt  string
	Kind    domain.NodeKind
	Options []domain.Option

	// Step is the 1-based position of the current question;
	// EstimatedTotal is the worst-case questionnaire length from here,
	// so progress renders as "Step of EstimatedTotal".
	Step           int
	EstimatedTotal int

	// Response echoes the contextual text for the answer that produced
	// this view, when the question that was just answered carried one.
	Response string

	Terminated bool
	Reason     domain.CompletionReason
	Report     *domain.Report
}

// StartOption tweaks session creation.
type StartOption func(*startConfig)

type startConfig struct {
	sessionID string
	resumeAt  *domain.NodeID
}

// StartWithID pins the session ID instead of generating one. Starting
// twice with the same ID resumes the persisted session.
func StartWithID(id string) StartOption {
	return func(c *startConfig) {
		c.sessionID = id
	}
}

// StartAt begins a fresh session at the given node instead of the
// graph start. This is the re-entry path after an external step (for
// example a completed payment) interrupted the flow.
func StartAt(node domain.NodeID) StartOption {
	return func(c *startConfig) {
		c.resumeAt = &node
	}
}

// Start creates (or resumes) an assessment session and returns the
// first question to render.
func (e *Engine) Start(ctx context.Context, personal domain.PersonalData, opts ...StartOption) (*QuestionView, error) {
	cfg := startConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.sessionID == "" {
		cfg.sessionID = uuid.NewString()
	}
	if cfg.resumeAt != nil {
		if _, err := e.graph.Node(*cfg.resumeAt); err != nil {
			return nil, fmt.Errorf("invalid resume node: %w", err)
		}
	}

	state, err := e.sessions.LoadOrStart(ctx, cfg.sessionID, e.graph.Start(), personal, cfg.resumeAt)
	if err != nil {
		return nil, err
	}

	if len(state.Answers) == 0 && !state.Terminated {
		e.metrics.SessionStarted()
		e.logger.Info("session started", "session_id", cfg.sessionID, "node_id", state.CurrentNodeID)
	} else {
		e.metrics.SessionResumed()
		e.logger.Info("session resumed", "session_id", cfg.sessionID, "step", state.Step())
	}

	return e.view(state, "")
}

// View renders the current question of an existing session.
func (e *Engine) View(ctx context.Context, sessionID string) (*QuestionView, error) {
	state, err := e.sessions.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return e.view(state, "")
}

// Answer applies one answer to the session. On a terminal transition
// the completed profile is archived and the in-flight session is
// discarded; the returned view carries the report.
func (e *Engine) Answer(ctx context.Context, sessionID string, answer domain.Answer) (*QuestionView, error) {
	var view *QuestionView
	err := e.sessions.WithLock(ctx, sessionID, func(ctx context.Context) error {
		state, err := e.sessions.Store().Load(ctx, sessionID)
		if err != nil {
			return err
		}

		// The opening question is free; everything past it goes
		// through the gate.
		if e.gate != nil && len(state.Answers) > 0 {
			if err := e.gate(ctx, state); err != nil {
				return err
			}
		}

		updated, outcome, err := e.walker.Advance(state, answer)
		if err != nil {
			return err
		}
		e.metrics.AnswerRecorded()

		if outcome.Status == runtime.StatusReachedTerminal {
			profile := domain.CompletedProfile{
				SessionID:        sessionID,
				Personal:         updated.Personal,
				Answers:          updated.Answers,
				CompletedAt:      time.Now().UTC(),
				CompletionReason: outcome.Reason,
				Report:           *outcome.Report,
			}
			if err := e.profiles.Save(ctx, profile); err != nil {
				return fmt.Errorf("failed to archive completed profile: %w", err)
			}
			if err := e.sessions.Store().Delete(ctx, sessionID); err != nil {
				e.logger.Warn("failed to delete terminated session", "session_id", sessionID, "err", err)
			}
			e.metrics.Completed(outcome.Reason, outcome.Report.Severity)
			e.logger.Info("session completed",
				"session_id", sessionID,
				"reason", outcome.Reason,
				"severity", outcome.Report.Severity,
			)

			view = &QuestionView{
				SessionID:  sessionID,
				Step:       updated.Step(),
				Terminated: true,
				Reason:     outcome.Reason,
				Report:     outcome.Report,
			}
			if len(updated.Answers) > 0 {
				view.Response = updated.Answers[len(updated.Answers)-1].Response
			}
			return nil
		}

		if err := e.sessions.Store().Save(ctx, sessionID, updated); err != nil {
			return fmt.Errorf("failed to persist session: %w", err)
		}

		response := ""
		if len(updated.Answers) > 0 {
			response = updated.Answers[len(updated.Answers)-1].Response
		}
		view, err = e.view(updated, response)
		return err
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

// Rewind undoes the last answered question and returns it for
// re-rendering.
func (e *Engine) Rewind(ctx context.Context, sessionID string) (*QuestionView, error) {
	var view *QuestionView
	err := e.sessions.WithLock(ctx, sessionID, func(ctx context.Context) error {
		state, err := e.sessions.Store().Load(ctx, sessionID)
		if err != nil {
			return err
		}

		updated, err := e.walker.Rewind(state)
		if err != nil {
			return err
		}
		if err := e.sessions.Store().Save(ctx, sessionID, updated); err != nil {
			return fmt.Errorf("failed to persist session: %w", err)
		}
		e.metrics.Rewind()

		view, err = e.view(updated, "")
		return err
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

// Report retrieves the archived bundle of a completed assessment.
func (e *Engine) Report(ctx context.Context, sessionID string) (domain.CompletedProfile, error) {
	return e.profiles.Load(ctx, sessionID)
}

// Sessions lists the in-flight session IDs.
func (e *Engine) Sessions(ctx context.Context) ([]string, error) {
	return e.sessions.List(ctx)
}

// Abandon discards an in-flight session without archiving anything.
func (e *Engine) Abandon(ctx context.Context, sessionID string) error {
	if err := e.sessions.Delete(ctx, sessionID); err != nil {
		return err
	}
	e.metrics.SessionAbandoned()
	e.logger.Info("session abandoned", "session_id", sessionID)
	return nil
}

// view projects a live session onto its render model.
func (e *Engine) view(state *domain.SessionState, response string) (*QuestionView, error) {
	if state.Terminated {
		return &QuestionView{
			SessionID:  state.SessionID,
			Step:       state.Step(),
			Response:   response,
			Terminated: true,
			Reason:     state.CompletionReason,
		}, nil
	}

	node, err := e.graph.Node(state.CurrentNodeID)
	if err != nil {
		e.logger.Error("session points at unknown node", "session_id", state.SessionID, "node_id", state.CurrentNodeID, "err", err)
		return nil, err
	}

	return &QuestionView{
		SessionID:      state.SessionID,
		NodeID:         node.ID,
		Prompt:         node.Prompt,
		Kind:           node.Kind,
		Options:        node.Options,
		Step:           state.Step(),
		EstimatedTotal: e.graph.EstimateTotal(state.CurrentNodeID, len(state.VisitedNodeIDs)),
		Response:       response,
	}, nil
}
