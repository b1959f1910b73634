// Package mcp exposes the assessment engine to AI assistants over the
// Model Context Protocol.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/bonsono/sonolog"
	"github.com/bonsono/sonolog/pkg/domain"
)

// AssessmentView is the structured result shared by all tools.
type AssessmentView struct {
	SessionID      string         `json:"session_id" jsonschema_description:"Identifier for the assessment session"`
	Prompt         string         `json:"prompt,omitempty" jsonschema_description:"The question to ask the respondent"`
	Kind           string         `json:"kind,omitempty" jsonschema_description:"Question kind: yes_no or multiple_choice"`
	Options        []OptionView   `json:"options,omitempty" jsonschema_description:"Selectable options for multiple_choice questions"`
	Step           int            `json:"step" jsonschema_description:"1-based position of the current question"`
	EstimatedTotal int            `json:"estimated_total,omitempty" jsonschema_description:"Worst-case number of questions in this run"`
	Response       string         `json:"response,omitempty" jsonschema_description:"Contextual feedback for the previous answer"`
	Terminated     bool           `json:"terminated" jsonschema_description:"True once the assessment is over"`
	Report         *domain.Report `json:"report,omitempty" jsonschema_description:"Final report, present when terminated"`
}

// OptionView is one selectable choice.
type OptionView struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// Server wraps the engine and exposes it as an MCP server.
type Server struct {
	engine    *sonolog.Engine
	mcpServer *server.MCPServer
	logger    *slog.Logger
}

// NewServer creates an MCP server over the engine.
func NewServer(engine *sonolog.Engine, logger *slog.Logger) *Server {
	s := &Server{
		engine:    engine,
		mcpServer: server.NewMCPServer("sonolog-mcp", strings.TrimSpace(sonolog.Version)),
		logger:    logger,
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	beginTool := mcp.NewTool("begin_assessment",
		mcp.WithDescription("Start an insomnia assessment for a respondent and get the first question."),
		mcp.WithString("name", mcp.Description("Respondent name (optional)")),
		mcp.WithString("gender", mcp.Description("Respondent gender (optional)")),
		mcp.WithString("birth_date", mcp.Description("Birth date as YYYY-MM-DD (optional)")),
		mcp.WithString("profession", mcp.Description("Respondent profession (optional)")),
		mcp.WithOutputSchema[AssessmentView](),
	)
	s.mcpServer.AddTool(beginTool, mcp.NewStructuredToolHandler(s.handleBegin))

	answerTool := mcp.NewTool("answer_question",
		mcp.WithDescription("Answer the current question. Use 'value' with yes/no questions and 'option_ids' with multiple-choice ones."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Session identifier from begin_assessment")),
		mcp.WithString("value", mcp.Description("Literal \"yes\" or \"no\"")),
		mcp.WithString("option_ids", mcp.Description("JSON array of selected option ids")),
		mcp.WithOutputSchema[AssessmentView](),
	)
	s.mcpServer.AddTool(answerTool, mcp.NewStructuredToolHandler(s.handleAnswer))

	backTool := mcp.NewTool("go_back",
		mcp.WithDescription("Undo the previous answer and return to that question."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Session identifier")),
		mcp.WithOutputSchema[AssessmentView](),
	)
	s.mcpServer.AddTool(backTool, mcp.NewStructuredToolHandler(s.handleGoBack))

	s.mcpServer.AddTool(mcp.NewTool("assessment_report",
		mcp.WithDescription("Retrieve the final report of a completed assessment."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Session identifier")),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		sessionID, err := request.RequireString("session_id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		profile, err := s.engine.Report(ctx, sessionID)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("report lookup failed: %v", err)), nil
		}
		jsonBytes, _ := json.Marshal(profile)
		return mcp.NewToolResultText(string(jsonBytes)), nil
	})
}

func (s *Server) handleBegin(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (AssessmentView, error) {
	personal := domain.PersonalData{}
	if v, ok := args["name"].(string); ok {
		personal.Name = v
	}
	if v, ok := args["gender"].(string); ok {
		personal.Gender = v
	}
	if v, ok := args["birth_date"].(string); ok {
		personal.BirthDate = v
	}
	if v, ok := args["profession"].(string); ok {
		personal.Profession = v
	}

	view, err := s.engine.Start(ctx, personal)
	if err != nil {
		return AssessmentView{}, fmt.Errorf("start failed: %w", err)
	}
	return fromEngineView(view), nil
}

func (s *Server) handleAnswer(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (AssessmentView, error) {
	sessionID, _ := args["session_id"].(string)
	if sessionID == "" {
		return AssessmentView{}, fmt.Errorf("session_id is required")
	}

	answer := domain.Answer{}
	if v, ok := args["value"].(string); ok {
		answer.Value = v
	}
	if raw, ok := args["option_ids"].(string); ok && raw != "" {
		if err := json.Unmarshal([]byte(raw), &answer.OptionIDs); err != nil {
			return AssessmentView{}, fmt.Errorf("option_ids must be a JSON array of strings: %w", err)
		}
	}

	view, err := s.engine.Answer(ctx, sessionID, answer)
	if err != nil {
		return AssessmentView{}, fmt.Errorf("answer failed: %w", err)
	}
	return fromEngineView(view), nil
}

func (s *Server) handleGoBack(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (AssessmentView, error) {
	sessionID, _ := args["session_id"].(string)
	if sessionID == "" {
		return AssessmentView{}, fmt.Errorf("session_id is required")
	}

	view, err := s.engine.Rewind(ctx, sessionID)
	if err != nil {
		return AssessmentView{}, fmt.Errorf("rewind failed: %w", err)
	}
	return fromEngineView(view), nil
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource("sonolog://graph", "Questionnaire Definition",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		jsonBytes, err := json.Marshal(s.engine.Graph().Nodes())
		if err != nil {
			return nil, fmt.Errorf("failed to marshal questionnaire: %w", err)
		}

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      "sonolog://graph",
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}

func fromEngineView(v *sonolog.QuestionView) AssessmentView {
	out := AssessmentView{
		SessionID:      v.SessionID,
		Prompt:         v.Prompt,
		Kind:           string(v.Kind),
		Step:           v.Step,
		EstimatedTotal: v.EstimatedTotal,
		Response:       v.Response,
		Terminated:     v.Terminated,
		Report:         v.Report,
	}
	for _, opt := range v.Options {
		out.Options = append(out.Options, OptionView{ID: opt.ID, Label: opt.Label})
	}
	return out
}
