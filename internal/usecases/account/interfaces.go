package account

import (
	"context"
	"time"

	"github.com/vfg2006/tracionar-api/internal/domain"
)

// MetaConnector cobre o fluxo OAuth e a descoberta de contas na Graph API
type MetaConnector interface {
	AuthURL(state string) string
	ExchangeCode(ctx context.Context, code string) (string, *time.Time, error)
	GetAdAccounts(ctx context.Context, accessToken string) ([]*domain.Account, error)
}

// SyncTracker informa se existe sincronização em andamento para a conta
type SyncTracker interface {
	IsRunning(accountID string) bool
}
