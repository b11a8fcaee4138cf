package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/tracionar-api/infrastructure/repository"
	"github.com/vfg2006/tracionar-api/internal/config"
	"github.com/vfg2006/tracionar-api/internal/domain"
)

// AccountSyncConfig representa a configuração do agendador de sincronização incremental
type AccountSyncConfig struct {
	CronSchedule      string
	RequestDelay      time.Duration
	MaxConcurrentJobs int
	SyncEnabled       bool
}

// SyncSummary resume uma rodada do agendador
type SyncSummary struct {
	Accounts int `json:"accounts"`
	Synced   int `json:"synced"`
	Skipped  int `json:"skipped"`
	Failed   int `json:"failed"`
}

// AccountSyncService sincroniza periodicamente, no modo incremental, todas as contas ativas
type AccountSyncService struct {
	scheduler *gocron.Scheduler
	config    AccountSyncConfig
	accounts  repository.AccountRepository
	syncer    AccountSyncer

	syncMutex           sync.Mutex
	syncRunning         bool
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
	lastSummary         SyncSummary
}

func NewAccountSyncService(
	accounts repository.AccountRepository,
	syncer AccountSyncer,
	appConfig *config.Config,
) *AccountSyncService {
	syncConfig := AccountSyncConfig{
		CronSchedule:      appConfig.Sync.CronSchedule,
		RequestDelay:      time.Duration(appConfig.Sync.RequestDelaySeconds) * time.Second,
		MaxConcurrentJobs: max(appConfig.Sync.MaxConcurrentJobs, 1),
		SyncEnabled:       appConfig.Sync.Enabled,
	}

	logrus.WithFields(logrus.Fields{
		"cron_schedule":       syncConfig.CronSchedule,
		"request_delay":       syncConfig.RequestDelay.String(),
		"max_concurrent_jobs": syncConfig.MaxConcurrentJobs,
		"sync_enabled":        syncConfig.SyncEnabled,
	}).Info("scheduler: configuração da sincronização de contas carregada")

	return &AccountSyncService{
		scheduler: gocron.NewScheduler(time.UTC),
		config:    syncConfig,
		accounts:  accounts,
		syncer:    syncer,
	}
}

// Start agenda a rodada periódica; não faz nada quando a sincronização está desabilitada
func (s *AccountSyncService) Start(ctx context.Context) error {
	if !s.config.SyncEnabled {
		logrus.Info("scheduler: sincronização de contas desabilitada pela configuração")
		return nil
	}

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.syncAllAccounts(ctx)
	})
	if err != nil {
		return fmt.Errorf("scheduler: invalid sync cron %q: %w", s.config.CronSchedule, err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("scheduler: parando a sincronização de contas")
		s.scheduler.Stop()
	}()

	logrus.WithField("cron", s.config.CronSchedule).Info("scheduler: sincronização de contas iniciada")
	return nil
}

// syncAllAccounts roda uma rodada completa; uma segunda chamada concorrente é ignorada
func (s *AccountSyncService) syncAllAccounts(ctx context.Context) (SyncSummary, bool) {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("scheduler: sincronização de contas já em execução, pulando")
		return SyncSummary{}, false
	}
	s.syncRunning = true
	s.lastSyncStartedAt = time.Now()
	s.syncMutex.Unlock()

	summary := s.run(ctx)

	s.syncMutex.Lock()
	s.syncRunning = false
	s.lastSyncCompletedAt = time.Now()
	s.lastSummary = summary
	s.syncMutex.Unlock()

	return summary, true
}

func (s *AccountSyncService) run(ctx context.Context) SyncSummary {
	startTime := time.Now()

	accounts, err := s.accounts.ListActive(ctx)
	if err != nil {
		logrus.WithError(err).Error("scheduler: erro ao listar contas ativas")
		return SyncSummary{}
	}

	summary := SyncSummary{Accounts: len(accounts)}
	if len(accounts) == 0 {
		logrus.Info("scheduler: nenhuma conta ativa para sincronizar")
		return summary
	}

	var (
		mu        sync.Mutex
		wg        sync.WaitGroup
		semaphore = make(chan struct{}, s.config.MaxConcurrentJobs)
	)

	for i, account := range accounts {
		if i > 0 && !s.wait(ctx) {
			break
		}

		wg.Add(1)
		semaphore <- struct{}{}

		go func(acc *domain.Account) {
			defer func() {
				<-semaphore
				wg.Done()
			}()

			started, err := s.syncer.SyncNow(ctx, acc, domain.SyncModeIncremental)

			mu.Lock()
			defer mu.Unlock()

			switch {
			case err != nil:
				summary.Failed++
				logrus.WithError(err).WithField("account_id", acc.ID).Error("scheduler: falha na sincronização da conta")
			case !started:
				summary.Skipped++
				logrus.WithField("account_id", acc.ID).Info("scheduler: conta já em sincronização, ignorada")
			default:
				summary.Synced++
			}
		}(account)
	}

	wg.Wait()

	logrus.WithFields(logrus.Fields{
		"duration": time.Since(startTime).String(),
		"accounts": summary.Accounts,
		"synced":   summary.Synced,
		"skipped":  summary.Skipped,
		"failed":   summary.Failed,
	}).Info("scheduler: rodada de sincronização de contas finalizada")

	return summary
}

// wait espaça o início das contas para não concentrar chamadas na Graph API
func (s *AccountSyncService) wait(ctx context.Context) bool {
	if s.config.RequestDelay <= 0 {
		return ctx.Err() == nil
	}

	timer := time.NewTimer(s.config.RequestDelay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

// TriggerManualSync dispara uma rodada fora do agendamento; devolve false se já houver uma em andamento
func (s *AccountSyncService) TriggerManualSync(ctx context.Context) bool {
	s.syncMutex.Lock()
	running := s.syncRunning
	s.syncMutex.Unlock()

	if running {
		logrus.Info("scheduler: sincronização de contas já em execução, ignorando disparo manual")
		return false
	}

	logrus.Info("scheduler: sincronização manual de contas solicitada")
	go s.syncAllAccounts(ctx)
	return true
}

// GetStatus retorna o estado atual do agendador
func (s *AccountSyncService) GetStatus() map[string]any {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	return map[string]any{
		"sync_enabled":           s.config.SyncEnabled,
		"sync_cron":              s.config.CronSchedule,
		"sync_mode":              domain.SyncModeIncremental,
		"sync_max_concurrent":    s.config.MaxConcurrentJobs,
		"sync_request_delay_s":   s.config.RequestDelay.Seconds(),
		"running":                s.syncRunning,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
		"last_summary":           s.lastSummary,
	}
}
