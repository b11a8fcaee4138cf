package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/tracionar-api/internal/config"
)

// CacheSweepService remove periodicamente as narrativas expiradas do cache de insights
type CacheSweepService struct {
	scheduler    *gocron.Scheduler
	cronSchedule string
	sweeper      CacheSweeper

	mu          sync.Mutex
	lastSweepAt time.Time
	lastRemoved int
}

func NewCacheSweepService(sweeper CacheSweeper, appConfig *config.Config) *CacheSweepService {
	return &CacheSweepService{
		scheduler:    gocron.NewScheduler(time.UTC),
		cronSchedule: appConfig.Insight.CacheSweepCron,
		sweeper:      sweeper,
	}
}

func (s *CacheSweepService) Start(ctx context.Context) error {
	if s.cronSchedule == "" {
		logrus.Info("scheduler: limpeza do cache de insights desabilitada (sem cron configurado)")
		return nil
	}

	_, err := s.scheduler.Cron(s.cronSchedule).Do(func() {
		s.sweep()
	})
	if err != nil {
		return fmt.Errorf("scheduler: invalid cache sweep cron %q: %w", s.cronSchedule, err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		s.scheduler.Stop()
	}()

	logrus.WithField("cron", s.cronSchedule).Info("scheduler: limpeza do cache de insights iniciada")
	return nil
}

func (s *CacheSweepService) sweep() int {
	removed := s.sweeper.SweepCache()

	s.mu.Lock()
	s.lastSweepAt = time.Now()
	s.lastRemoved = removed
	s.mu.Unlock()

	return removed
}

// TriggerManualSync executa a limpeza imediatamente
func (s *CacheSweepService) TriggerManualSync(context.Context) bool {
	s.sweep()
	return true
}

func (s *CacheSweepService) GetStatus() map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()

	return map[string]any{
		"sweep_cron":    s.cronSchedule,
		"last_sweep_at": s.lastSweepAt,
		"last_removed":  s.lastRemoved,
	}
}
