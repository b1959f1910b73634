package http

import (
	"github.com/bonsono/sonolog"
	"github.com/bonsono/sonolog/pkg/domain"
)

// StartRequest creates or resumes a session.
type StartRequest struct {
	// SessionID pins the session ID; empty means generate one.
	SessionID string `json:"session_id,omitempty"`

	// ResumeAt restarts an interrupted flow at a specific question.
	ResumeAt *int `json:"resume_at,omitempty"`

	Personal PersonalData `json:"personal_data"`
}

// PersonalData mirrors the intake form.
type PersonalData struct {
	Name       string `json:"name"`
	Gender     string `json:"gender,omitempty"`
	Profession string `json:"profession,omitempty"`
	City       string `json:"city,omitempty"`
	State      string `json:"state,omitempty"`
	BirthDate  string `json:"birth_date,omitempty"`
}

// AnswerRequest carries one answer. Exactly one of Value (yes/no) or
// OptionIDs (multiple choice) must be set.
type AnswerRequest struct {
	Value     string   `json:"value,omitempty"`
	OptionIDs []string `json:"option_ids,omitempty"`
}

// OptionView is one selectable choice.
type OptionView struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// ReportView is the rendered anamnesis report.
type ReportView struct {
	Title           string   `json:"title"`
	Summary         string   `json:"summary"`
	Findings        []string `json:"findings,omitempty"`
	Recommendations []string `json:"recommendations"`
	Severity        string   `json:"severity"`
	SeverityLabel   string   `json:"severity_label"`
}

// SessionView is the wire form of a question view or terminal outcome.
type SessionView struct {
	SessionID      string       `json:"session_id"`
	NodeID         int          `json:"node_id,omitempty"`
	Prompt         string       `json:"prompt,omitempty"`
	Kind           string       `json:"kind,omitempty"`
	Options        []OptionView `json:"options,omitempty"`
	Step           int          `json:"step"`
	EstimatedTotal int          `json:"estimated_total,omitempty"`
	Response       string       `json:"response,omitempty"`
	Terminated     bool         `json:"terminated"`
	Reason         string       `json:"completion_reason,omitempty"`
	Report         *ReportView  `json:"report,omitempty"`
}

// ProfileView is the wire form of an archived assessment.
type ProfileView struct {
	SessionID        string       `json:"session_id"`
	Personal         PersonalData `json:"personal_data"`
	CompletedAt      string       `json:"completed_at"`
	CompletionReason string       `json:"completion_reason"`
	Report           ReportView   `json:"report"`
}

// SessionListResponse wraps a list of session IDs.
type SessionListResponse struct {
	Sessions []string `json:"sessions"`
}

// ErrorResponse is the uniform error payload.
type ErrorResponse struct {
	Error string `json:"error"`
}

func personalToDomain(p PersonalData) domain.PersonalData {
	return domain.PersonalData{
		Name:       p.Name,
		Gender:     p.Gender,
		Profession: p.Profession,
		City:       p.City,
		State:      p.State,
		BirthDate:  p.BirthDate,
	}
}

func personalFromDomain(p domain.PersonalData) PersonalData {
	return PersonalData{
		Name:       p.Name,
		Gender:     p.Gender,
		Profession: p.Profession,
		City:       p.City,
		State:      p.State,
		BirthDate:  p.BirthDate,
	}
}

func reportFromDomain(r domain.Report) ReportView {
	return ReportView{
		Title:           r.Title,
		Summary:         r.Summary,
		Findings:        r.Findings,
		Recommendations: r.Recommendations,
		Severity:        string(r.Severity),
		SeverityLabel:   r.Severity.Label(),
	}
}

func viewFromEngine(v *sonolog.QuestionView) SessionView {
	out := SessionView{
		SessionID:      v.SessionID,
		Step:           v.Step,
		EstimatedTotal: v.EstimatedTotal,
		Response:       v.Response,
		Terminated:     v.Terminated,
		Reason:         string(v.Reason),
	}
	if v.Terminated {
		if v.Report != nil {
			report := reportFromDomain(*v.Report)
			out.Report = &report
		}
		return out
	}

	out.NodeID = int(v.NodeID)
	out.Prompt = v.Prompt
	out.Kind = string(v.Kind)
	for _, opt := range v.Options {
		out.Options = append(out.Options, OptionView{ID: opt.ID, Label: opt.Label})
	}
	return out
}
