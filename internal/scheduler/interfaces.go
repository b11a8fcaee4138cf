package scheduler

import (
	"context"

	"github.com/vfg2006/tracionar-api/internal/domain"
)

// AccountSyncer executa a sincronização de uma conta aguardando o resultado.
// Implementado por *syncing.Executor, que serializa execuções por conta.
type AccountSyncer interface {
	SyncNow(ctx context.Context, account *domain.Account, mode domain.SyncMode) (bool, error)
}

// CacheSweeper remove as narrativas expiradas do cache de insights
type CacheSweeper interface {
	SweepCache() int
}
