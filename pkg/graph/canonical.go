package graph

import (
	"sync"

	"github.com/bonsono/sonolog/pkg/domain"
)

// Canonical node ids of the insomnia questionnaire. The report
// generator keys its analysis pass on these, so the numbering is part
// of the product contract.
const (
	NodeFrequency          domain.NodeID = 0
	NodeDuration           domain.NodeID = 1
	NodeTypesChronic       domain.NodeID = 2
	NodeTypesAcute         domain.NodeID = 3
	NodeMixedGlobal        domain.NodeID = 4
	NodePrimaryCause       domain.NodeID = 5
	NodeSecondaryCause     domain.NodeID = 6
	NodeCircadian          domain.NodeID = 7
	NodeDaytimeImpact      domain.NodeID = 8
	NodeOpportunity        domain.NodeID = 9
	NodeRegularSchedule    domain.NodeID = 10
	NodeScheduleDifficulty domain.NodeID = 11
	NodeFullyIrregular     domain.NodeID = 12
	NodeParadoxical        domain.NodeID = 13
	NodeWorry              domain.NodeID = 14
	NodeSleepDisorders     domain.NodeID = 15
	NodeSnoringApnea       domain.NodeID = 16
	NodeSystemicDisease    domain.NodeID = 17
	NodeSubstances         domain.NodeID = 18
)

// Option ids of the insomnia-type multiple-choice nodes.
const (
	OptionInitial     = "inicial"
	OptionMaintenance = "manutencao"
	OptionTerminal    = "terminal"
)

var (
	canonicalOnce  sync.Once
	canonicalGraph *Graph
)

// Canonical returns the insomnia assessment questionnaire. The content
// is authored in Brazilian Portuguese, the product's language; the
// graph is built and validated once.
func Canonical() *Graph {
	canonicalOnce.Do(func() {
		canonicalGraph = MustNew(NodeFrequency, canonicalNodes())
	})
	return canonicalGraph
}

func insomniaTypeOptions() []domain.Option {
	return []domain.Option{
		{
			ID:       OptionInitial,
			Label:    "Tenho dificuldade para conciliar (iniciar) o sono.",
			Response: "Se o seu problema é a dificuldade de começar a dormir, estamos falando de uma insônia inicial ou de conciliação.",
		},
		{
			ID:       OptionMaintenance,
			Label:    "Acordo mais de duas vezes durante a noite.",
			Response: "Se o seu problema é a dificuldade de se manter dormindo (acorda mais de 2 vezes na noite), estamos falando de uma insônia de manutenção.",
		},
		{
			ID:       OptionTerminal,
			Label:    "Costumo perder o sono antes da hora prevista para acordar.",
			Response: "Se o seu problema é despertar ou perder o sono antes do horário previsto, então estamos falando da chamada insônia terminal.",
		},
	}
}

func canonicalNodes() []domain.Node {
	return []domain.Node{
		{
			ID:     NodeFrequency,
			Kind:   domain.KindYesNo,
			Prompt: "A sua insatisfação com o sono acontece 3 ou mais vezes por semana?",
			// A "no" here exits straight to the no-insomnia terminal;
			// the early exit lives in the graph data, not in the walker.
			Route:       domain.ConditionalNext{NextYes: NodeDuration, NextNo: domain.TerminalNoInsomnia},
			ResponseYes: "De fato, sabemos que a insônia, para ser considerada como tal deve acontecer ao menos 3 vezes por semana. É seu caso.",
			ResponseNo:  "Sem resposta.",
		},
		{
			ID:          NodeDuration,
			Kind:        domain.KindYesNo,
			Prompt:      "O seu problema com o sono está acontecendo há mais de 3 meses?",
			Route:       domain.ConditionalNext{NextYes: NodeTypesChronic, NextNo: NodeTypesAcute},
			ResponseYes: "Quando a insônia tem mais de 3 meses de evolução, estamos diante de um quadro de insônia crônica.",
			ResponseNo:  "Com tempo de evolução menor que 3 meses, estamos diante de um quadro de insônia aguda.",
		},
		{
			ID:      NodeTypesChronic,
			Kind:    domain.KindMultipleChoice,
			Prompt:  "Escolha uma ou mais opções das três alternativas seguintes:",
			Route:   domain.FixedNext{Next: NodeMixedGlobal},
			Options: insomniaTypeOptions(),
		},
		{
			ID:      NodeTypesAcute,
			Kind:    domain.KindMultipleChoice,
			Prompt:  "Escolha uma ou mais opções das três alternativas seguintes:",
			Route:   domain.FixedNext{Next: NodeMixedGlobal},
			Options: insomniaTypeOptions(),
		},
		{
			ID:     NodeMixedGlobal,
			Kind:   domain.KindYesNo,
			Prompt: "Você apresenta mais de um tipo de insônia? Se não tem comprometimento em todas as fases do sono e a noite toda, você tem a denominada insônia mista. Mas, se o comprometimento do sono atinge níveis mais amplos, você padece da chamada insônia global. É seu caso?",
			Route:  domain.FixedNext{Next: NodePrimaryCause},
		},
		{
			ID:     NodePrimaryCause,
			Kind:   domain.KindYesNo,
			Prompt: "Quando a insônia ocorre a raiz de um determinado evento impactante como um abalo psicológico por problemas pessoais, familiares, econômicos ou de trabalho, algum acidente ou mudança brusca no cotidiano, dizemos que a insônia é primária. É o seu caso?",
			Route:  domain.FixedNext{Next: NodeSecondaryCause},
		},
		{
			ID:     NodeSecondaryCause,
			Kind:   domain.KindYesNo,
			Prompt: "Quando a insônia é decorrente de outra patologia física ou mental, ou surgiu a partir do uso de algum medicamento ou droga, dizemos que a insônia é secundária. É o seu caso?",
			Route:  domain.FixedNext{Next: NodeCircadian},
		},
		{
			ID:     NodeCircadian,
			Kind:   domain.KindYesNo,
			Prompt: "Quando mudamos bruscamente de fuso horário ou nos vemos forçados a mudar nosso horário de dormir, desregula-se o nosso relógio biológico e ocorre a insônia por transtorno do ciclo circadiano. É o seu caso?",
			Route:  domain.FixedNext{Next: NodeDaytimeImpact},
		},
		{
			ID:     NodeDaytimeImpact,
			Kind:   domain.KindYesNo,
			Prompt: "O fato de você ter prejuízos diurnos decorrentes da insônia é um alerta expressivo da necessidade urgente de tratar o problema. Você tem prejuízos diurnos?",
			// Daytime impairment skips the reassurance question.
			Route: domain.ConditionalNext{NextYes: NodeRegularSchedule, NextNo: NodeOpportunity},
		},
		{
			ID:     NodeOpportunity,
			Kind:   domain.KindYesNo,
			Prompt: "Se a sua insônia ainda não chegou a níveis que comprometam suas atividades no dia a dia, devemos considerar que estamos diante de uma excelente oportunidade para pôr fim a um problema. Sua insônia ainda não compromete suas atividades diárias?",
			Route:  domain.FixedNext{Next: NodeRegularSchedule},
		},
		{
			ID:     NodeRegularSchedule,
			Kind:   domain.KindYesNo,
			Prompt: "Indiscutivelmente se pretendemos ter uma boa noite de sono, prevenir ou tratar a insônia, é fundamental termos a disciplina de observar um rígido horário para deitar e para despertar. Você mantém horários regulares para dormir e acordar?",
			Route:  domain.ConditionalNext{NextYes: NodeParadoxical, NextNo: NodeScheduleDifficulty},
		},
		{
			ID:     NodeScheduleDifficulty,
			Kind:   domain.KindYesNo,
			Prompt: "É fundamental termos a disciplina de observar um rígido horário para deitar e para despertar. O horário destinado ao sono deve ser 'sagrado'. Você tem dificuldades para manter horários regulares?",
			Route:  domain.ConditionalNext{NextYes: NodeFullyIrregular, NextNo: NodeParadoxical},
		},
		{
			ID:     NodeFullyIrregular,
			Kind:   domain.KindYesNo,
			Prompt: "Alerta vermelho! Indiscutivelmente se pretendemos ter uma boa noite de sono, prevenir ou tratar a insônia, é fundamental termos a disciplina de observar um rígido horário para deitar e para despertar. Seus horários de sono são completamente irregulares?",
			Route:  domain.FixedNext{Next: NodeParadoxical},
		},
		{
			ID:     NodeParadoxical,
			Kind:   domain.KindYesNo,
			Prompt: "Quando surgem evidências ou suspeitas robustas de que a pessoa dormiu de forma contínua e por um período razoável, porém ela tem a nítida impressão ou a certeza de que dormiu muito pouco, é preciso considerarmos também a hipótese diagnóstica da insônia paradoxal. É o seu caso?",
			Route:  domain.FixedNext{Next: NodeWorry},
		},
		{
			ID:     NodeWorry,
			Kind:   domain.KindYesNo,
			Prompt: "A preocupação excessiva com o sono, com a insônia e/ou com suas consequências, é muito prejudicial. Este tipo de preocupações ou inquietações leva à inibição psicobiológica e até à 'síndrome do esforço do sono'. Você tem preocupação excessiva com o sono?",
			Route:  domain.FixedNext{Next: NodeSleepDisorders},
		},
		{
			ID:     NodeSleepDisorders,
			Kind:   domain.KindYesNo,
			Prompt: "Algumas doenças como a Síndrome das pernas inquietas, afecções que provoquem algum grau de angústia respiratória durante o sono, Síndrome de Apneia Hipopneia Obstrutiva do Sono e pesadelos podem provocar despertares frequentes e dar origem a um quadro de insônia. Você tem alguma dessas condições?",
			Route:  domain.FixedNext{Next: NodeSnoringApnea},
		},
		{
			ID:     NodeSnoringApnea,
			Kind:   domain.KindYesNo,
			Prompt: "Frequentemente a roncopatia e as apneias do sono levam a desarranjos na arquitetura do sono e micro despertares, podendo provocar insônia. Você ronca ou tem apneia do sono?",
			Route:  domain.FixedNext{Next: NodeSystemicDisease},
		},
		{
			ID:     NodeSystemicDisease,
			Kind:   domain.KindYesNo,
			Prompt: "Sabidamente, muitas doenças sistêmicas são capazes de levar à insônia, ou também podem ser desencadeadas ou agravadas por esta. A maioria das vezes coexistem formando um círculo vicioso onde uma agrava a outra e vice-versa. Você tem alguma doença sistêmica?",
			Route:  domain.FixedNext{Next: NodeSubstances},
		},
		{
			ID:     NodeSubstances,
			Kind:   domain.KindYesNo,
			Prompt: "Conforme estudamos anteriormente, o consumo de álcool, cigarro e drogas é altamente nocivo para a saúde em geral e particularmente para o sono. Você consome álcool, cigarro ou outras drogas regularmente?",
			Route:  domain.FixedNext{Next: domain.TerminalCompleted},
		},
	}
}
