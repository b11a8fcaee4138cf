package openai

import (
	"fmt"
	"strings"

	"github.com/vfg2006/tracionar-api/internal/domain"
)

const (
	insightsSystemPrompt = "Você é um especialista em Facebook Ads com 10+ anos de experiência. Analise métricas e forneça insights práticos e acionáveis em português brasileiro."
	analysisSystemPrompt = "Você é um consultor especialista em Facebook Ads. Sua análise deve ser direta, prática e focada em resultados."

	insightsMaxTokens    = 1000
	insightsTemperature  = 0.7
	analysisMaxTokens    = 800
	analysisTemperature  = 0.6
	defaultInsightPeriod = "7 dias"
)

func buildInsightsPrompt(req domain.InsightRequest) string {
	period := req.Context.Period
	if period == "" {
		period = defaultInsightPeriod
	}

	campaignCount := "N/A"
	if req.Context.CampaignCount > 0 {
		campaignCount = fmt.Sprintf("%d", req.Context.CampaignCount)
	}

	m := req.Metrics

	var b strings.Builder
	b.WriteString("Analise estas métricas do Facebook Ads e forneça insights estratégicos:\n\n")
	b.WriteString("**Métricas Gerais:**\n")
	fmt.Fprintf(&b, "- Total Investido: R$ %.2f\n", m.TotalSpend)
	fmt.Fprintf(&b, "- Impressões: %s\n", thousands(m.TotalImpressions))
	fmt.Fprintf(&b, "- Cliques: %s\n", thousands(m.TotalClicks))
	fmt.Fprintf(&b, "- Conversões: %d\n", m.TotalConversions)
	fmt.Fprintf(&b, "- CPA Médio: R$ %.2f\n", m.AvgCPA)
	fmt.Fprintf(&b, "- ROAS Médio: %.2fx\n", m.AvgROAS)
	fmt.Fprintf(&b, "- CTR Médio: %.2f%%\n", m.AvgCTR)
	fmt.Fprintf(&b, "- CPC Médio: R$ %.2f\n\n", m.AvgCPC)
	b.WriteString("**Contexto:**\n")
	fmt.Fprintf(&b, "- Período analisado: %s\n", period)
	fmt.Fprintf(&b, "- Número de campanhas: %s\n\n", campaignCount)
	b.WriteString("Forneça:\n")
	b.WriteString("1. **Resumo da Performance**: Avaliação geral dos resultados\n")
	b.WriteString("2. **Principais Oportunidades**: 3 pontos de melhoria mais importantes\n")
	b.WriteString("3. **Ações Recomendadas**: Passos específicos para otimização\n")
	b.WriteString("4. **Benchmark**: Como estas métricas se comparam com padrões do mercado\n\n")
	b.WriteString("Seja conciso, prático e focado em ações que geram resultados.")

	return b.String()
}

func buildCampaignPrompt(req domain.CampaignAnalysisRequest) string {
	desired := "Não definido"
	if req.DesiredCPA != nil {
		desired = fmt.Sprintf("%.2f", *req.DesiredCPA)
	}

	k := req.KPIs

	var b strings.Builder
	b.WriteString("Analise esta campanha do Facebook Ads e forneça recomendações específicas:\n\n")
	b.WriteString("**Dados da Campanha:**\n")
	fmt.Fprintf(&b, "- Nome: %s\n", req.Name)
	fmt.Fprintf(&b, "- Objetivo: %s\n", req.Objective)
	fmt.Fprintf(&b, "- CPA Atual: R$ %.2f\n", k.AvgCPA)
	fmt.Fprintf(&b, "- CPA Desejável: R$ %s\n", desired)
	fmt.Fprintf(&b, "- ROAS: %.2fx\n", k.AvgROAS)
	fmt.Fprintf(&b, "- CTR: %.2f%%\n", k.AvgCTR)
	fmt.Fprintf(&b, "- CPC: R$ %.2f\n", k.AvgCPC)
	fmt.Fprintf(&b, "- Gasto: R$ %.2f\n", k.TotalSpend)
	fmt.Fprintf(&b, "- Conversões: %d\n\n", k.TotalConversions)
	b.WriteString("Forneça sua análise seguindo esta estrutura:\n")
	b.WriteString("1. **Diagnóstico**: Identificar os principais problemas\n")
	b.WriteString("2. **Oportunidades**: Pontos positivos a explorar\n")
	b.WriteString("3. **Recomendações**: 3-5 ações específicas e práticas\n")
	b.WriteString("4. **Prioridade**: Qual ação implementar primeiro\n")
	b.WriteString("5. **Expectativa**: Impacto esperado das melhorias\n\n")
	b.WriteString("Seja específico e prático. Foque em ações que podem ser implementadas imediatamente.")

	return b.String()
}

// thousands formata inteiros com separador de milhar no padrão pt-BR
func thousands(n int64) string {
	sign := ""
	if n < 0 {
		sign = "-"
		n = -n
	}

	digits := fmt.Sprintf("%d", n)
	for i := len(digits) - 3; i > 0; i -= 3 {
		digits = digits[:i] + "." + digits[i:]
	}

	return sign + digits
}
