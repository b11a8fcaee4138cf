package syncing

import (
	"context"

	"github.com/vfg2006/tracionar-api/internal/domain"
)

// HierarchySource fornece a árvore campanha → conjunto → anúncio e as métricas diárias de uma conta
type HierarchySource interface {
	GetCampaigns(ctx context.Context, accessToken, accountExternalID string) ([]*domain.Campaign, error)
	GetAdSets(ctx context.Context, accessToken, campaignExternalID string) ([]*domain.AdSet, error)
	GetAds(ctx context.Context, accessToken, adSetExternalID string) ([]*domain.Ad, error)
	GetCampaignMetrics(ctx context.Context, accessToken, campaignExternalID string, mode domain.SyncMode) ([]*domain.MetricSample, error)
}

// Syncer executa uma sincronização completa de uma conta
type Syncer interface {
	Sync(ctx context.Context, account *domain.Account, accessToken string, mode domain.SyncMode) (*domain.SyncResult, error)
}

// SyncRequester aceita pedidos de sincronização vindos da API
type SyncRequester interface {
	RequestSync(ctx context.Context, userID int, accountID string, req domain.SyncRequest) (*domain.SyncAcknowledgement, error)
}
