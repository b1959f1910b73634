package domain

import "time"

// Severity buckets the assessment outcome.
type Severity string

const (
	SeverityNormal   Severity = "normal"
	SeverityMild     Severity = "mild"
	SeverityModerate Severity = "moderate"
	SeveritySevere   Severity = "severe"
)

// Label returns the display label shown to the respondent.
func (s Severity) Label() string {
	switch s {
	case SeveritySevere:
		return "Grave - Necessita Atenção Urgente"
	case SeverityModerate:
		return "Moderada - Requer Acompanhamento"
	case SeverityMild:
		return "Leve - Monitoramento Recomendado"
	default:
		return "Padrão Normal"
	}
}

// Report is the immutable document derived once from a completed
// session.
type Report struct {
	Title           string   `json:"title"`
	Summary         string   `json:"summary"`
	Findings        []string `json:"findings,omitempty"`
	Recommendations []string `json:"recommendations"`
	Severity        Severity `json:"severity"`
}

// CompletedProfile is the bundle handed to the profile store when a
// session terminates. It is the durable record of one assessment.
type CompletedProfile struct {
	SessionID        string             `json:"session_id"`
	Personal         PersonalData       `json:"personal_data"`
	Answers          []AnsweredQuestion `json:"answers"`
	CompletedAt      time.Time          `json:"completed_at"`
	CompletionReason CompletionReason   `json:"completion_reason"`
	Report           Report             `json:"report"`
}
