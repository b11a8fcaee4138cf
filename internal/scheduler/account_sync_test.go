package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	repomocks "github.com/vfg2006/tracionar-api/infrastructure/repository/mocks"
	"github.com/vfg2006/tracionar-api/internal/config"
	"github.com/vfg2006/tracionar-api/internal/domain"
	"github.com/vfg2006/tracionar-api/internal/scheduler/mocks"
)

func newTestAccountSync(t *testing.T, maxJobs int) (*AccountSyncService, *repomocks.MockAccountRepository, *mocks.MockAccountSyncer) {
	ctrl := gomock.NewController(t)

	accounts := repomocks.NewMockAccountRepository(ctrl)
	syncer := mocks.NewMockAccountSyncer(ctrl)

	svc := NewAccountSyncService(accounts, syncer, &config.Config{
		Sync: config.Sync{
			CronSchedule:      "0 */6 * * *",
			Enabled:           true,
			MaxConcurrentJobs: maxJobs,
		},
	})

	return svc, accounts, syncer
}

func TestAccountSyncService_syncAllAccounts(t *testing.T) {
	accounts := []*domain.Account{{ID: "acc1"}, {ID: "acc2"}, {ID: "acc3"}, {ID: "acc4"}}

	tests := []struct {
		name  string
		setup func(accounts *repomocks.MockAccountRepository, syncer *mocks.MockAccountSyncer)
		want  SyncSummary
	}{
		{
			name: "sincroniza todas as contas ativas no modo incremental",
			setup: func(repo *repomocks.MockAccountRepository, syncer *mocks.MockAccountSyncer) {
				repo.EXPECT().ListActive(gomock.Any()).Return(accounts, nil)
				syncer.EXPECT().
					SyncNow(gomock.Any(), gomock.Any(), domain.SyncModeIncremental).
					Return(true, nil).
					Times(4)
			},
			want: SyncSummary{Accounts: 4, Synced: 4},
		},
		{
			name: "falha de uma conta não interrompe as demais",
			setup: func(repo *repomocks.MockAccountRepository, syncer *mocks.MockAccountSyncer) {
				repo.EXPECT().ListActive(gomock.Any()).Return(accounts, nil)
				syncer.EXPECT().SyncNow(gomock.Any(), accounts[0], domain.SyncModeIncremental).Return(true, nil)
				syncer.EXPECT().
					SyncNow(gomock.Any(), accounts[1], domain.SyncModeIncremental).
					Return(true, domain.NewError(domain.KindCredential, "sync.decrypt", domain.ErrMissingToken))
				syncer.EXPECT().SyncNow(gomock.Any(), accounts[2], domain.SyncModeIncremental).Return(false, nil)
				syncer.EXPECT().SyncNow(gomock.Any(), accounts[3], domain.SyncModeIncremental).Return(true, nil)
			},
			want: SyncSummary{Accounts: 4, Synced: 2, Skipped: 1, Failed: 1},
		},
		{
			name: "sem contas ativas",
			setup: func(repo *repomocks.MockAccountRepository, syncer *mocks.MockAccountSyncer) {
				repo.EXPECT().ListActive(gomock.Any()).Return(nil, nil)
			},
			want: SyncSummary{},
		},
		{
			name: "erro ao listar contas",
			setup: func(repo *repomocks.MockAccountRepository, syncer *mocks.MockAccountSyncer) {
				repo.EXPECT().ListActive(gomock.Any()).Return(nil, errors.New("connection refused"))
			},
			want: SyncSummary{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, syncer := newTestAccountSync(t, 2)
			tt.setup(repo, syncer)

			summary, ran := svc.syncAllAccounts(context.Background())

			assert.True(t, ran)
			assert.Equal(t, tt.want, summary)
			assert.Equal(t, tt.want, svc.GetStatus()["last_summary"])
		})
	}
}

func TestAccountSyncService_RespectsConcurrencyLimit(t *testing.T) {
	svc, repo, syncer := newTestAccountSync(t, 2)

	accounts := make([]*domain.Account, 6)
	for i := range accounts {
		accounts[i] = &domain.Account{ID: string(rune('a' + i))}
	}

	var inFlight, peak atomic.Int32
	repo.EXPECT().ListActive(gomock.Any()).Return(accounts, nil)
	syncer.EXPECT().
		SyncNow(gomock.Any(), gomock.Any(), domain.SyncModeIncremental).
		DoAndReturn(func(context.Context, *domain.Account, domain.SyncMode) (bool, error) {
			current := inFlight.Add(1)
			for {
				old := peak.Load()
				if current <= old || peak.CompareAndSwap(old, current) {
					break
				}
			}
			time.Sleep(10 * time.Millisecond)
			inFlight.Add(-1)
			return true, nil
		}).
		Times(6)

	summary, _ := svc.syncAllAccounts(context.Background())

	assert.Equal(t, 6, summary.Synced)
	assert.LessOrEqual(t, peak.Load(), int32(2))
}

func TestAccountSyncService_SkipsOverlappingRound(t *testing.T) {
	svc, _, _ := newTestAccountSync(t, 1)
	svc.syncRunning = true

	_, ran := svc.syncAllAccounts(context.Background())

	assert.False(t, ran)
	assert.False(t, svc.TriggerManualSync(context.Background()))
}

func TestAccountSyncService_StopsWaitingOnCancel(t *testing.T) {
	svc, repo, syncer := newTestAccountSync(t, 1)
	svc.config.RequestDelay = time.Hour

	ctx, cancel := context.WithCancel(context.Background())

	repo.EXPECT().ListActive(gomock.Any()).Return([]*domain.Account{{ID: "acc1"}, {ID: "acc2"}}, nil)
	syncer.EXPECT().
		SyncNow(gomock.Any(), gomock.Any(), domain.SyncModeIncremental).
		DoAndReturn(func(context.Context, *domain.Account, domain.SyncMode) (bool, error) {
			cancel()
			return true, nil
		})

	summary, _ := svc.syncAllAccounts(ctx)

	assert.Equal(t, 2, summary.Accounts)
	assert.Equal(t, 1, summary.Synced)
}

func TestAccountSyncService_Start(t *testing.T) {
	t.Run("desabilitado não agenda nada", func(t *testing.T) {
		svc, _, _ := newTestAccountSync(t, 1)
		svc.config.SyncEnabled = false

		assert.NoError(t, svc.Start(context.Background()))
		assert.Empty(t, svc.scheduler.Jobs())
	})

	t.Run("cron inválido", func(t *testing.T) {
		svc, _, _ := newTestAccountSync(t, 1)
		svc.config.CronSchedule = "a cada hora"

		assert.Error(t, svc.Start(context.Background()))
	})
}

func TestCacheSweepService(t *testing.T) {
	ctrl := gomock.NewController(t)
	sweeper := mocks.NewMockCacheSweeper(ctrl)

	svc := NewCacheSweepService(sweeper, &config.Config{Insight: config.Insight{CacheSweepCron: "*/15 * * * *"}})

	sweeper.EXPECT().SweepCache().Return(3)

	assert.True(t, svc.TriggerManualSync(context.Background()))

	status := svc.GetStatus()
	assert.Equal(t, 3, status["last_removed"])
	assert.Equal(t, "*/15 * * * *", status["sweep_cron"])
}
