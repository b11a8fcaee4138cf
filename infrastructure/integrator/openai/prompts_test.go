package openai

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vfg2006/tracionar-api/internal/domain"
)

func TestBuildInsightsPrompt(t *testing.T) {
	tests := []struct {
		name     string
		req      domain.InsightRequest
		contains []string
	}{
		{
			name: "contexto padrão",
			req: domain.InsightRequest{
				Metrics: domain.KPISet{TotalSpend: 1500, TotalImpressions: 1234567, TotalClicks: 980, TotalConversions: 30, AvgCPA: 50, AvgROAS: 3.456},
			},
			contains: []string{
				"Total Investido: R$ 1500.00",
				"Impressões: 1.234.567",
				"Cliques: 980",
				"ROAS Médio: 3.46x",
				"Período analisado: 7 dias",
				"Número de campanhas: N/A",
			},
		},
		{
			name: "contexto informado",
			req: domain.InsightRequest{
				Context: domain.InsightContext{Period: "30 dias", CampaignCount: 4},
			},
			contains: []string{"Período analisado: 30 dias", "Número de campanhas: 4"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prompt := buildInsightsPrompt(tt.req)
			for _, fragment := range tt.contains {
				assert.Contains(t, prompt, fragment)
			}
		})
	}
}

func TestBuildCampaignPrompt(t *testing.T) {
	desired := 40.0

	prompt := buildCampaignPrompt(domain.CampaignAnalysisRequest{
		Name:       "Remarketing",
		Objective:  "CONVERSIONS",
		DesiredCPA: &desired,
		KPIs:       domain.KPISet{AvgCPA: 35, TotalConversions: 12},
	})
	assert.Contains(t, prompt, "- Nome: Remarketing")
	assert.Contains(t, prompt, "CPA Desejável: R$ 40.00")
	assert.Contains(t, prompt, "Conversões: 12")

	prompt = buildCampaignPrompt(domain.CampaignAnalysisRequest{Name: "Sem meta"})
	assert.Contains(t, prompt, "CPA Desejável: R$ Não definido")
}

func TestThousands(t *testing.T) {
	assert.Equal(t, "0", thousands(0))
	assert.Equal(t, "999", thousands(999))
	assert.Equal(t, "1.000", thousands(1000))
	assert.Equal(t, "12.345.678", thousands(12345678))
	assert.Equal(t, "-1.500", thousands(-1500))
}
