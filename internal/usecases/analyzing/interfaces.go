package analyzing

import (
	"context"

	"github.com/vfg2006/tracionar-api/internal/domain"
)

type AnalyticsService interface {
	GetDashboard(ctx context.Context, userID int, req domain.DashboardRequest) (*domain.Dashboard, error)
	GetCriticalCampaigns(ctx context.Context, userID int, accountID *string) ([]*domain.CriticalCampaign, error)
	GetAlerts(ctx context.Context, userID int) (*domain.AlertsResponse, error)
	SetDesiredCPA(ctx context.Context, userID int, campaignID string, req domain.SetDesiredCPARequest) (*domain.Campaign, error)
}

// GeneratorStatus informa se o gerador de narrativas está configurado
type GeneratorStatus interface {
	Configured() bool
}
