package analyzing

import (
	"fmt"
	"math/rand/v2"

	"github.com/vfg2006/tracionar-api/internal/domain"
)

// Limites fixos das regras de alerta
const (
	cpaOverrunFactor  = 1.2
	roasFloor         = 2.0
	ctrFloor          = 1.0
	scaleROASCeiling  = 5.0
	scaleCPAUnderGoal = 0.8
)

var recommendations = map[domain.AlertCategory][]string{
	domain.AlertHighCPA: {
		"Revisar segmentação de público",
		"Testar novos criativos",
		"Ajustar lances automáticos",
		"Excluir públicos com baixa performance",
	},
	domain.AlertLowROAS: {
		"Verificar pixel de conversão",
		"Otimizar landing page",
		"Revisar funil de vendas",
		"Ajustar público-alvo",
	},
	domain.AlertLowCTR: {
		"Atualizar criativos visuais",
		"Testar novas copy do anúncio",
		"Revisar público-alvo",
		"Adicionar call-to-action mais forte",
	},
	domain.AlertScaleCandidate: {
		"Considere aumentar o orçamento para escalar esta campanha",
	},
}

const defaultRecommendation = "Revisar configurações gerais"

type rule struct {
	category domain.AlertCategory
	kind     domain.AlertKind
	severity domain.Severity
	title    string
	matches  func(m domain.CampaignMetrics) bool
	message  func(m domain.CampaignMetrics) string
}

// A ordem da tabela define a ordem dos alertas de uma mesma campanha
var rules = []rule{
	{
		category: domain.AlertHighCPA,
		kind:     domain.AlertKindWarning,
		severity: domain.SeverityHigh,
		title:    "CPA acima do desejável",
		matches: func(m domain.CampaignMetrics) bool {
			return hasTarget(m) && m.KPIs.AvgCPA > *m.DesiredCPA*cpaOverrunFactor
		},
		message: func(m domain.CampaignMetrics) string {
			return fmt.Sprintf("CPA atual (R$ %.2f) está 20%% acima da meta (R$ %.2f)", m.KPIs.AvgCPA, *m.DesiredCPA)
		},
	},
	{
		category: domain.AlertLowROAS,
		kind:     domain.AlertKindError,
		severity: domain.SeverityCritical,
		title:    "ROAS crítico",
		matches: func(m domain.CampaignMetrics) bool {
			return m.KPIs.AvgROAS < roasFloor
		},
		message: func(m domain.CampaignMetrics) string {
			return fmt.Sprintf("ROAS de %.2fx está abaixo do mínimo recomendado (2.0x)", m.KPIs.AvgROAS)
		},
	},
	{
		category: domain.AlertLowCTR,
		kind:     domain.AlertKindInfo,
		severity: domain.SeverityMedium,
		title:    "CTR baixo",
		matches: func(m domain.CampaignMetrics) bool {
			return m.KPIs.AvgCTR < ctrFloor
		},
		message: func(m domain.CampaignMetrics) string {
			return fmt.Sprintf("CTR de %.2f%% pode ser melhorado", m.KPIs.AvgCTR)
		},
	},
	{
		category: domain.AlertScaleCandidate,
		kind:     domain.AlertKindSuccess,
		severity: domain.SeverityLow,
		title:    "Performance excelente!",
		matches: func(m domain.CampaignMetrics) bool {
			return m.KPIs.AvgROAS > scaleROASCeiling && hasTarget(m) && m.KPIs.AvgCPA < *m.DesiredCPA*scaleCPAUnderGoal
		},
		message: func(m domain.CampaignMetrics) string {
			return fmt.Sprintf("ROAS de %.2fx e CPA abaixo da meta", m.KPIs.AvgROAS)
		},
	},
}

func hasTarget(m domain.CampaignMetrics) bool {
	return m.DesiredCPA != nil && *m.DesiredCPA > 0
}

// Evaluator aplica a tabela de regras sobre os KPIs agregados de cada campanha.
// Não faz I/O; a escolha da recomendação pode ser substituída nos testes.
type Evaluator struct {
	pick func(options []string) string
}

func NewEvaluator() *Evaluator {
	return &Evaluator{
		pick: func(options []string) string {
			return options[rand.IntN(len(options))]
		},
	}
}

// Evaluate mantém a ordem de entrada das campanhas e, dentro de cada campanha, a ordem das regras
func (e *Evaluator) Evaluate(metrics []domain.CampaignMetrics) []*domain.Alert {
	alerts := make([]*domain.Alert, 0)

	for _, m := range metrics {
		for _, r := range rules {
			if !r.matches(m) {
				continue
			}

			alerts = append(alerts, &domain.Alert{
				CampaignID:     m.CampaignID,
				CampaignName:   m.CampaignName,
				Kind:           r.kind,
				Category:       r.category,
				Severity:       r.severity,
				Title:          r.title,
				Message:        r.message(m),
				Recommendation: e.recommend(r.category),
			})
		}
	}

	return alerts
}

func (e *Evaluator) recommend(category domain.AlertCategory) string {
	options, ok := recommendations[category]
	if !ok || len(options) == 0 {
		return defaultRecommendation
	}
	return e.pick(options)
}
