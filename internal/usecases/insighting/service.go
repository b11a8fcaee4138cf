package insighting

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/tracionar-api/infrastructure/repository"
	"github.com/vfg2006/tracionar-api/internal/domain"
	"github.com/vfg2006/tracionar-api/pkg/utils"
	"github.com/vfg2006/tracionar-api/pkg/validation"
)

const defaultHistoryLimit = 10

// Service envolve o gerador de narrativas com o cache e o histórico de insights
type Service struct {
	generator Generator
	insights  repository.InsightRepository
	cache     *Cache
}

func NewService(generator Generator, insights repository.InsightRepository, cache *Cache) InsightService {
	return &Service{
		generator: generator,
		insights:  insights,
		cache:     cache,
	}
}

func (s *Service) Configured() bool {
	return s.generator.Configured()
}

// GenerateInsights reaproveita a narrativa de uma entrada idêntica dentro do TTL.
// Só gerações reais entram no histórico; acertos de cache não são gravados novamente.
func (s *Service) GenerateInsights(ctx context.Context, req domain.InsightRequest) (*domain.InsightPayload, error) {
	if err := validation.Struct("insights.generate", &req); err != nil {
		return nil, err
	}

	if !s.generator.Configured() {
		return nil, domain.NewError(domain.KindNotConfigured, "insights.generate", domain.ErrNotConfigured)
	}

	fingerprint, err := Fingerprint(req)
	if err != nil {
		return nil, domain.NewError(domain.KindValidation, "insights.generate", err)
	}

	return s.cache.GetOrGenerate(ctx, fingerprint, func(ctx context.Context) (*domain.InsightPayload, error) {
		payload, err := s.generator.GenerateInsights(ctx, req)
		if err != nil {
			logrus.WithError(err).Error("insights: erro ao gerar narrativa")
			return nil, domain.WrapKind(domain.KindGeneration, "insights.generate", err)
		}

		s.record(ctx, req, payload)

		return payload, nil
	})
}

func (s *Service) record(ctx context.Context, req domain.InsightRequest, payload *domain.InsightPayload) {
	id, err := utils.GenerateID()
	if err != nil {
		logrus.WithError(err).Error("insights: erro ao gerar id do insight")
		return
	}

	snapshot, err := json.Marshal(req)
	if err != nil {
		logrus.WithError(err).Warn("insights: não foi possível serializar o retrato das métricas")
		snapshot = nil
	}

	insight := &domain.Insight{
		ID:              id,
		Type:            payload.Type,
		Content:         payload.Content,
		Confidence:      payload.Confidence,
		Actionable:      payload.Actionable,
		MetricsSnapshot: snapshot,
		CreatedAt:       payload.GeneratedAt,
	}

	// O histórico é complementar: a narrativa já gerada é devolvida mesmo se a gravação falhar
	if err := s.insights.Create(context.WithoutCancel(ctx), insight); err != nil {
		logrus.WithError(err).WithField("insight_id", id).Error("insights: erro ao salvar histórico de insight")
	}
}

// AnalyzeCampaign não passa pelo cache nem grava histórico
func (s *Service) AnalyzeCampaign(ctx context.Context, req domain.CampaignAnalysisRequest) (*domain.CampaignAnalysis, error) {
	if err := validation.Struct("insights.analyze_campaign", &req); err != nil {
		return nil, err
	}

	if !s.generator.Configured() {
		return nil, domain.NewError(domain.KindNotConfigured, "insights.analyze_campaign", domain.ErrNotConfigured)
	}

	analysis, err := s.generator.AnalyzeCampaign(ctx, req)
	if err != nil {
		logrus.WithError(err).WithField("campaign_id", req.CampaignID).Error("insights: erro ao analisar campanha")
		return nil, domain.WrapKind(domain.KindGeneration, "insights.analyze_campaign", err)
	}

	return analysis, nil
}

func (s *Service) History(ctx context.Context, filter domain.InsightHistoryFilter) ([]*domain.Insight, error) {
	if filter.Limit == 0 {
		filter.Limit = defaultHistoryLimit
	}

	if err := validation.Struct("insights.history", &filter); err != nil {
		return nil, err
	}

	insights, err := s.insights.List(ctx, filter)
	if err != nil {
		return nil, domain.NewError(domain.KindPersistence, "insights.history", err)
	}

	return insights, nil
}

func (s *Service) SweepCache() int {
	removed := s.cache.Cleanup()
	if removed > 0 {
		logrus.WithFields(logrus.Fields{
			"removed":   removed,
			"remaining": s.cache.Len(),
		}).Info("insights: entradas expiradas removidas do cache")
	}
	return removed
}
