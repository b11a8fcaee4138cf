package meta

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	gobreaker "github.com/sony/gobreaker/v2"

	metadomain "github.com/vfg2006/tracionar-api/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/tracionar-api/infrastructure/integrator/meta/metaclient"
	"github.com/vfg2006/tracionar-api/infrastructure/metrics"
	"github.com/vfg2006/tracionar-api/internal/config"
	"github.com/vfg2006/tracionar-api/internal/domain"
)

const breakerName = "meta-graph-api"

type MetaIntegrator struct {
	cfg     *config.Config
	Client  metaclient.Client
	breaker *gobreaker.CircuitBreaker[any]
	now     func() time.Time
}

func New(cfg *config.Config, client metaclient.Client) *MetaIntegrator {
	metrics.CircuitBreakerState.WithLabelValues(breakerName).Set(0)

	breaker := gobreaker.NewCircuitBreaker[any](gobreaker.Settings{
		Name:        breakerName,
		MaxRequests: 3,
		Interval:    time.Minute,
		Timeout:     2 * time.Minute,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 10 {
				return false
			}
			return float64(counts.TotalFailures)/float64(counts.Requests) >= 0.6
		},
		// Token inválido não indica indisponibilidade da Graph API
		IsSuccessful: func(err error) bool {
			return err == nil || domain.IsKind(err, domain.KindCredential) || domain.IsKind(err, domain.KindValidation)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logrus.WithFields(logrus.Fields{
				"breaker": name,
				"from":    from.String(),
				"to":      to.String(),
			}).Warn("meta: circuit breaker mudou de estado")
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
		},
	})

	return &MetaIntegrator{
		cfg:     cfg,
		Client:  client,
		breaker: breaker,
		now:     time.Now,
	}
}

// execute protege a chamada com o circuit breaker
func execute[T any](s *MetaIntegrator, op string, fn func() (T, error)) (T, error) {
	var zero T

	result, err := s.breaker.Execute(func() (any, error) {
		v, err := fn()
		return v, err
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return zero, domain.NewError(domain.KindExternalAPI, op, err)
		}
		return zero, err
	}

	typed, ok := result.(T)
	if !ok {
		return zero, fmt.Errorf("%s: unexpected result type %T", op, result)
	}
	return typed, nil
}

func (s *MetaIntegrator) GetCampaigns(ctx context.Context, accessToken, accountExternalID string) ([]*domain.Campaign, error) {
	raw, err := execute(s, "meta.campaigns", func() ([]metadomain.Campaign, error) {
		return s.Client.GetCampaigns(ctx, accessToken, accountExternalID)
	})
	if err != nil {
		return nil, err
	}

	campaigns := make([]*domain.Campaign, 0, len(raw))
	for _, c := range raw {
		campaigns = append(campaigns, &domain.Campaign{
			ExternalID: c.ID,
			Name:       c.Name,
			Objective:  c.Objective,
			Status:     c.Status,
		})
	}

	return campaigns, nil
}

func (s *MetaIntegrator) GetAdSets(ctx context.Context, accessToken, campaignExternalID string) ([]*domain.AdSet, error) {
	raw, err := execute(s, "meta.adsets", func() ([]metadomain.AdSet, error) {
		return s.Client.GetAdSets(ctx, accessToken, campaignExternalID)
	})
	if err != nil {
		return nil, err
	}

	adSets := make([]*domain.AdSet, 0, len(raw))
	for _, a := range raw {
		adSets = append(adSets, &domain.AdSet{
			ExternalID:    a.ID,
			Name:          a.Name,
			Status:        a.Status,
			TargetingType: ClassifyTargeting(a.Targeting),
		})
	}

	return adSets, nil
}

func (s *MetaIntegrator) GetAds(ctx context.Context, accessToken, adSetExternalID string) ([]*domain.Ad, error) {
	raw, err := execute(s, "meta.ads", func() ([]metadomain.Ad, error) {
		return s.Client.GetAds(ctx, accessToken, adSetExternalID)
	})
	if err != nil {
		return nil, err
	}

	ads := make([]*domain.Ad, 0, len(raw))
	for _, a := range raw {
		ads = append(ads, &domain.Ad{
			ExternalID: a.ID,
			Name:       a.Name,
			Status:     a.Status,
			Creative:   a.Creative,
		})
	}

	return ads, nil
}

// GetCampaignMetrics busca as amostras diárias de uma campanha.
// Linhas com valores não numéricos são descartadas.
func (s *MetaIntegrator) GetCampaignMetrics(ctx context.Context, accessToken, campaignExternalID string, mode domain.SyncMode) ([]*domain.MetricSample, error) {
	query := metaclient.InsightsQuery{
		DatePreset: DatePresetFor(mode),
		Level:      metadomain.LevelCampaign,
	}

	rows, err := execute(s, "meta.insights", func() ([]metadomain.Insight, error) {
		return s.Client.GetInsights(ctx, accessToken, campaignExternalID, query)
	})
	if err != nil {
		return nil, err
	}

	samples := make([]*domain.MetricSample, 0, len(rows))
	for _, row := range rows {
		sample, err := ParseInsight(row)
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"campaign_external_id": campaignExternalID,
				"date":                 row.DateStart,
				"error":                err.Error(),
			}).Warn("meta: ignorando linha de insight malformada")
			continue
		}
		samples = append(samples, sample)
	}

	return samples, nil
}

// ExchangeCode troca o código OAuth por um token de longa duração.
// Se a troca pelo token longo falhar, o token curto é mantido.
func (s *MetaIntegrator) ExchangeCode(ctx context.Context, code string) (string, *time.Time, error) {
	short, err := s.Client.ExchangeCodeForToken(ctx, code)
	if err != nil {
		return "", nil, err
	}

	token := short
	long, err := s.Client.GetLongLivedToken(ctx, short.AccessToken)
	if err != nil {
		logrus.WithError(err).Warn("meta: falha na troca por token de longa duração, mantendo o token curto")
	} else {
		token = long
	}

	return token.AccessToken, metaclient.CalculateTokenExpiration(s.now(), token.ExpiresIn), nil
}

func (s *MetaIntegrator) GetAdAccounts(ctx context.Context, accessToken string) ([]*domain.Account, error) {
	raw, err := execute(s, "meta.adaccounts", func() ([]metadomain.AdAccount, error) {
		return s.Client.GetAdAccounts(ctx, accessToken)
	})
	if err != nil {
		return nil, err
	}

	accounts := make([]*domain.Account, 0, len(raw))
	for _, a := range raw {
		accounts = append(accounts, &domain.Account{
			ExternalID: a.ExternalID(),
			Name:       a.Name,
		})
	}

	return accounts, nil
}

func (s *MetaIntegrator) AuthURL(state string) string {
	return s.Client.AuthURL(state)
}

func DatePresetFor(mode domain.SyncMode) string {
	if mode == domain.SyncModeFull {
		return metadomain.DatePresetMaximum
	}
	return metadomain.DatePresetLast7Days
}

func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}
