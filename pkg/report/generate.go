// Package report derives the clinical-style anamnesis document from a
// completed answer history. Generate is a pure, total function:
// missing optional fields degrade to placeholder text, never to an
// error, since a report must always be producible from a well-formed
// completed session.
package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/bonsono/sonolog/pkg/domain"
)

var baseRecommendations = []string{
	"Avaliação médica especializada em Medicina do Sono",
	"Implementação de técnicas de higiene do sono",
	"Manutenção de diário do sono por 2 semanas",
}

// Generate produces the report for a completed session.
func Generate(answers []domain.AnsweredQuestion, reason domain.CompletionReason, personal domain.PersonalData) domain.Report {
	if reason == domain.ReasonNoInsomnia {
		return noInsomniaReport(personal)
	}

	a := analyze(answers)
	severity, _ := severityOf(a)

	return domain.Report{
		Title:           "Anamnese Inicial - Avaliação de Insônia",
		Summary:         summarize(personal, a),
		Findings:        findings(a),
		Recommendations: recommendations(severity),
		Severity:        severity,
	}
}

func noInsomniaReport(personal domain.PersonalData) domain.Report {
	return domain.Report{
		Title: "Análise Preliminar: Ausência de Critérios para Insônia",
		Summary: fmt.Sprintf(
			"Com base nas respostas fornecidas, %s não apresenta os critérios necessários para caracterização de insônia, uma vez que os distúrbios do sono não ocorrem com a frequência mínima de 3 vezes por semana.",
			displayName(personal)),
		Recommendations: []string{
			"Manutenção dos hábitos de sono atuais",
			"Monitoramento preventivo da qualidade do sono",
			"Práticas de higiene do sono como medida preventiva",
		},
		Severity: domain.SeverityNormal,
	}
}

func summarize(personal domain.PersonalData, a analysis) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("%s, %s, %s, %s, residente em %s/%s, apresenta quadro compatível com insônia ",
		displayName(personal),
		ageText(personal),
		orPlaceholder(personal.Gender, "gênero não informado"),
		orPlaceholder(personal.Profession, "profissão não informada"),
		orPlaceholder(personal.City, "cidade não informada"),
		orPlaceholder(personal.State, "UF não informada")))

	if a.duration != "" {
		if strings.Contains(a.duration, "Mais de 3 meses") {
			sb.WriteString("crônica ")
		} else {
			sb.WriteString("aguda ")
		}
	}

	if len(a.types) > 0 {
		sb.WriteString(fmt.Sprintf("do tipo: %s. ", strings.Join(a.types, ", ")))
	}

	if a.impact != "" {
		sb.WriteString(fmt.Sprintf("Paciente relata %s. ", strings.ToLower(a.impact)))
	}

	return sb.String()
}

func findings(a analysis) []string {
	var out []string
	if len(a.causes) > 0 {
		out = append(out, fmt.Sprintf("Possíveis causas identificadas: %s", strings.Join(a.causes, ", ")))
	}
	if a.sleepHygiene != "" {
		out = append(out, fmt.Sprintf("Higiene do sono: %s", a.sleepHygiene))
	}
	if len(a.comorbidities) > 0 {
		out = append(out, fmt.Sprintf("Comorbidades identificadas: %s", strings.Join(a.comorbidities, ", ")))
	}
	return out
}

func recommendations(severity domain.Severity) []string {
	switch severity {
	case domain.SeveritySevere:
		return append([]string{
			"Encaminhamento URGENTE para especialista em Medicina do Sono",
			"Possível necessidade de polissonografia",
			"Avaliação de comorbidades médicas e psiquiátricas",
			"Acompanhamento próximo da evolução do quadro",
		}, baseRecommendations...)
	case domain.SeverityModerate:
		return append([]string{
			"Consulta com especialista em Medicina do Sono em até 30 dias",
			"Início de terapia cognitivo-comportamental para insônia (TCC-I)",
		}, baseRecommendations...)
	default:
		return append([]string{}, baseRecommendations...)
	}
}

func ageText(personal domain.PersonalData) string {
	age, ok := personal.Age(time.Now())
	if !ok {
		return "idade não informada"
	}
	return fmt.Sprintf("%d anos", age)
}

func displayName(personal domain.PersonalData) string {
	return orPlaceholder(personal.Name, "Paciente")
}

func orPlaceholder(value, placeholder string) string {
	if strings.TrimSpace(value) == "" {
		return placeholder
	}
	return value
}
