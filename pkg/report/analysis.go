package report

import (
	"github.com/bonsono/sonolog/pkg/domain"
	"github.com/bonsono/sonolog/pkg/graph"
)

// Duration, impact and hygiene phrasings. The severity scorer matches
// on substrings of these, so they are constants rather than inline
// literals.
const (
	durationChronic = "Mais de 3 meses de evolução (insônia crônica)"
	durationAcute   = "Menos de 3 meses de evolução (insônia aguda)"

	impactWith    = "Com prejuízos diurnos"
	impactWithout = "Sem prejuízos diurnos significativos"

	hygieneIrregular      = "Horários irregulares"
	hygieneFullyIrregular = "Horários completamente irregulares"
)

// typeLabels maps the insomnia-type option ids onto report labels.
var typeLabels = map[string]string{
	graph.OptionInitial:     "Insônia Inicial/Conciliação",
	graph.OptionMaintenance: "Insônia de Manutenção",
	graph.OptionTerminal:    "Insônia Terminal",
}

// comorbidityLabels maps comorbidity question ids onto report labels.
var comorbidityLabels = map[domain.NodeID]string{
	graph.NodeSleepDisorders:  "Distúrbios do sono (pernas inquietas, apneia, pesadelos)",
	graph.NodeSnoringApnea:    "Roncopatia/Apneia do sono",
	graph.NodeSystemicDisease: "Doenças sistêmicas",
	graph.NodeSubstances:      "Uso de substâncias (álcool, cigarro, drogas)",
}

// analysis is the semantic digest of a full answer history.
type analysis struct {
	hasInsomnia   bool
	duration      string
	types         []string
	causes        []string
	impact        string
	sleepHygiene  string
	comorbidities []string
}

// analyze runs the fixed id→field mapping over the answers. Unmapped
// questions contribute nothing; the pass is total over any well-formed
// history.
func analyze(answers []domain.AnsweredQuestion) analysis {
	var a analysis

	for _, ans := range answers {
		yes := ans.Value == domain.AnswerYes

		switch ans.QuestionID {
		case graph.NodeFrequency:
			a.hasInsomnia = yes
		case graph.NodeDuration:
			if yes {
				a.duration = durationChronic
			} else {
				a.duration = durationAcute
			}
		case graph.NodeTypesChronic, graph.NodeTypesAcute:
			for _, id := range ans.OptionIDs {
				if label, ok := typeLabels[id]; ok {
					a.types = append(a.types, label)
				}
			}
		case graph.NodeMixedGlobal:
			if yes {
				a.types = append(a.types, "Insônia Mista/Global")
			}
		case graph.NodePrimaryCause:
			if yes {
				a.causes = append(a.causes, "Insônia Primária (eventos impactantes)")
			}
		case graph.NodeSecondaryCause:
			if yes {
				a.causes = append(a.causes, "Insônia Secundária (patologias/medicamentos)")
			}
		case graph.NodeCircadian:
			if yes {
				a.causes = append(a.causes, "Transtorno do Ciclo Circadiano")
			}
		case graph.NodeDaytimeImpact:
			if yes {
				a.impact = impactWith
			} else {
				a.impact = impactWithout
			}
		case graph.NodeRegularSchedule:
			if !yes {
				a.sleepHygiene = hygieneIrregular
			}
		case graph.NodeFullyIrregular:
			if yes {
				a.sleepHygiene = hygieneFullyIrregular
			}
		case graph.NodeSleepDisorders, graph.NodeSnoringApnea,
			graph.NodeSystemicDisease, graph.NodeSubstances:
			if yes {
				a.comorbidities = append(a.comorbidities, comorbidityLabels[ans.QuestionID])
			}
		}
	}

	return a
}
