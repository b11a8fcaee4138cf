package insighting

import (
	"context"

	"github.com/vfg2006/tracionar-api/internal/domain"
)

// Generator produz narrativas a partir de KPIs; implementado pelo integrador OpenAI
type Generator interface {
	Configured() bool
	GenerateInsights(ctx context.Context, req domain.InsightRequest) (*domain.InsightPayload, error)
	AnalyzeCampaign(ctx context.Context, req domain.CampaignAnalysisRequest) (*domain.CampaignAnalysis, error)
}

// InsightService é a superfície consumida pelos handlers e pelo agendador
type InsightService interface {
	Configured() bool
	GenerateInsights(ctx context.Context, req domain.InsightRequest) (*domain.InsightPayload, error)
	AnalyzeCampaign(ctx context.Context, req domain.CampaignAnalysisRequest) (*domain.CampaignAnalysis, error)
	History(ctx context.Context, filter domain.InsightHistoryFilter) ([]*domain.Insight, error)
	SweepCache() int
}
