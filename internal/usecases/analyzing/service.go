package analyzing

import (
	"context"
	"sort"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/tracionar-api/infrastructure/repository"
	"github.com/vfg2006/tracionar-api/internal/domain"
	"github.com/vfg2006/tracionar-api/pkg/validation"
)

// Janela usada por alertas e campanhas críticas fora do dashboard
const alertWindowDays = 7

const campaignStatusActive = "ACTIVE"

var periodDays = map[domain.Period]int{
	domain.Period7d:  7,
	domain.Period30d: 30,
	domain.Period90d: 90,
}

type Service struct {
	accounts  repository.AccountRepository
	campaigns repository.CampaignRepository
	metrics   repository.MetricRepository
	evaluator *Evaluator
	generator GeneratorStatus
	now       func() time.Time
}

func NewService(
	accounts repository.AccountRepository,
	campaigns repository.CampaignRepository,
	metrics repository.MetricRepository,
	evaluator *Evaluator,
	generator GeneratorStatus,
) AnalyticsService {
	return &Service{
		accounts:  accounts,
		campaigns: campaigns,
		metrics:   metrics,
		evaluator: evaluator,
		generator: generator,
		now:       time.Now,
	}
}

func (s *Service) GetDashboard(ctx context.Context, userID int, req domain.DashboardRequest) (*domain.Dashboard, error) {
	if err := validation.Struct("analytics.dashboard", &req); err != nil {
		return nil, err
	}

	period, dateRange, err := resolvePeriod(req, s.now())
	if err != nil {
		return nil, err
	}

	accounts, err := s.scopedAccounts(ctx, userID, req.AccountID)
	if err != nil {
		return nil, err
	}

	campaigns, err := s.campaigns.ListByUser(ctx, userID, req.AccountID)
	if err != nil {
		logrus.WithError(err).WithField("user_id", userID).Error("analytics: erro ao listar campanhas")
		return nil, domain.WrapKind(domain.KindPersistence, "analytics.dashboard", err)
	}

	samples, err := s.samplesFor(ctx, campaigns, dateRange)
	if err != nil {
		return nil, err
	}

	perCampaign := campaignMetrics(campaigns, samples)

	return &domain.Dashboard{
		KPIs:              Aggregate(samples),
		Period:            period,
		DateRange:         dateRange,
		Accounts:          accounts,
		CriticalCampaigns: s.critical(perCampaign),
		ChartData:         buildChartData(perCampaign, samples),
	}, nil
}

func (s *Service) GetCriticalCampaigns(ctx context.Context, userID int, accountID *string) ([]*domain.CriticalCampaign, error) {
	if accountID != nil {
		if _, err := s.scopedAccounts(ctx, userID, accountID); err != nil {
			return nil, err
		}
	}

	perCampaign, err := s.recentCampaignMetrics(ctx, userID, accountID)
	if err != nil {
		return nil, err
	}

	return s.critical(perCampaign), nil
}

// GetAlerts avalia as regras sobre o agregado de 7 dias de cada campanha ativa.
// As regras são locais, então os alertas saem mesmo sem o gerador de narrativas configurado.
func (s *Service) GetAlerts(ctx context.Context, userID int) (*domain.AlertsResponse, error) {
	perCampaign, err := s.recentCampaignMetrics(ctx, userID, nil)
	if err != nil {
		return nil, err
	}

	alerts := s.evaluator.Evaluate(perCampaign)

	critical := 0
	for _, alert := range alerts {
		if alert.Severity == domain.SeverityCritical {
			critical++
		}
	}

	return &domain.AlertsResponse{
		Alerts:        alerts,
		Total:         len(alerts),
		CriticalCount: critical,
		AIConfigured:  s.generator != nil && s.generator.Configured(),
	}, nil
}

func (s *Service) SetDesiredCPA(ctx context.Context, userID int, campaignID string, req domain.SetDesiredCPARequest) (*domain.Campaign, error) {
	if err := validation.Struct("analytics.desired_cpa", &req); err != nil {
		return nil, err
	}

	campaign, err := s.campaigns.GetByIDForUser(ctx, userID, campaignID)
	if err != nil {
		return nil, domain.WrapKind(domain.KindPersistence, "analytics.desired_cpa", err)
	}

	if campaign == nil {
		return nil, domain.NewError(domain.KindNotFound, "analytics.desired_cpa", domain.ErrCampaignNotFound)
	}

	if err := s.campaigns.SetDesiredCPA(ctx, campaign.ID, req.DesiredCPA); err != nil {
		logrus.WithError(err).WithField("campaign_id", campaign.ID).Error("analytics: erro ao atualizar o CPA desejado")
		return nil, domain.WrapKind(domain.KindPersistence, "analytics.desired_cpa", err)
	}

	desired := req.DesiredCPA
	campaign.DesiredCPA = &desired

	logrus.WithFields(logrus.Fields{
		"campaign_id": campaign.ID,
		"desired_cpa": desired,
	}).Info("analytics: CPA desejado atualizado")

	return campaign, nil
}

func (s *Service) scopedAccounts(ctx context.Context, userID int, accountID *string) ([]*domain.AccountCampaignCount, error) {
	accounts, err := s.accounts.ListByUser(ctx, userID)
	if err != nil {
		return nil, domain.WrapKind(domain.KindPersistence, "analytics.accounts", err)
	}

	counts := make([]*domain.AccountCampaignCount, 0, len(accounts))
	for _, acc := range accounts {
		if accountID != nil && acc.ID != *accountID {
			continue
		}
		counts = append(counts, &domain.AccountCampaignCount{
			AccountID:     acc.ID,
			AccountName:   acc.Name,
			CampaignCount: acc.CampaignCount,
		})
	}

	if accountID != nil && len(counts) == 0 {
		return nil, domain.NewError(domain.KindNotFound, "analytics.accounts", domain.ErrAccountNotFound)
	}

	return counts, nil
}

func (s *Service) recentCampaignMetrics(ctx context.Context, userID int, accountID *string) ([]domain.CampaignMetrics, error) {
	campaigns, err := s.campaigns.ListByUser(ctx, userID, accountID)
	if err != nil {
		return nil, domain.WrapKind(domain.KindPersistence, "analytics.campaigns", err)
	}

	active := make([]*domain.Campaign, 0, len(campaigns))
	for _, c := range campaigns {
		if c.Status == nil || *c.Status == campaignStatusActive {
			active = append(active, c)
		}
	}

	samples, err := s.samplesFor(ctx, active, windowEndingAt(s.now(), alertWindowDays))
	if err != nil {
		return nil, err
	}

	return campaignMetrics(active, samples), nil
}

// Um filtro sem campanhas consultaria todas as métricas, então a consulta é evitada
func (s *Service) samplesFor(ctx context.Context, campaigns []*domain.Campaign, dateRange domain.DateRange) ([]*domain.MetricSample, error) {
	if len(campaigns) == 0 {
		return []*domain.MetricSample{}, nil
	}

	ids := make([]string, 0, len(campaigns))
	for _, c := range campaigns {
		ids = append(ids, c.ID)
	}

	samples, err := s.metrics.ListByFilter(ctx, domain.MetricsFilter{
		CampaignIDs: ids,
		StartDate:   dateRange.Start,
		EndDate:     dateRange.End,
	})
	if err != nil {
		logrus.WithError(err).WithField("campaigns", len(ids)).Error("analytics: erro ao listar métricas")
		return nil, domain.WrapKind(domain.KindPersistence, "analytics.metrics", err)
	}

	return samples, nil
}

// critical mantém campanhas com pelo menos um alerta high ou critical,
// da pior severidade para a melhor e, no empate, do maior gasto para o menor
func (s *Service) critical(perCampaign []domain.CampaignMetrics) []*domain.CriticalCampaign {
	result := make([]*domain.CriticalCampaign, 0)

	for _, m := range perCampaign {
		alerts := s.evaluator.Evaluate([]domain.CampaignMetrics{m})

		var worst domain.Severity
		for _, alert := range alerts {
			if alert.Severity.Rank() > worst.Rank() {
				worst = alert.Severity
			}
		}

		if worst.Rank() < domain.SeverityHigh.Rank() {
			continue
		}

		result = append(result, &domain.CriticalCampaign{
			CampaignMetrics: m,
			WorstSeverity:   worst,
			Alerts:          alerts,
		})
	}

	sort.SliceStable(result, func(i, j int) bool {
		if result[i].WorstSeverity.Rank() != result[j].WorstSeverity.Rank() {
			return result[i].WorstSeverity.Rank() > result[j].WorstSeverity.Rank()
		}
		return result[i].KPIs.TotalSpend > result[j].KPIs.TotalSpend
	})

	return result
}

// campaignMetrics agrega as amostras de cada campanha na ordem recebida; campanhas sem amostra no período ficam de fora
func campaignMetrics(campaigns []*domain.Campaign, samples []*domain.MetricSample) []domain.CampaignMetrics {
	grouped := groupByCampaign(samples)

	result := make([]domain.CampaignMetrics, 0, len(campaigns))
	for _, c := range campaigns {
		campaignSamples, ok := grouped[c.ID]
		if !ok {
			continue
		}

		result = append(result, domain.CampaignMetrics{
			CampaignID:   c.ID,
			CampaignName: c.Name,
			AccountID:    c.AccountID,
			DesiredCPA:   c.DesiredCPA,
			KPIs:         Aggregate(campaignSamples),
		})
	}

	return result
}

func buildChartData(perCampaign []domain.CampaignMetrics, samples []*domain.MetricSample) domain.ChartData {
	byDate := make(map[string][]*domain.MetricSample)
	dates := make([]string, 0)
	for _, sample := range samples {
		if sample == nil {
			continue
		}
		day := sample.Date.Format(time.DateOnly)
		if _, seen := byDate[day]; !seen {
			dates = append(dates, day)
		}
		byDate[day] = append(byDate[day], sample)
	}
	sort.Strings(dates)

	chart := domain.ChartData{
		CPAEvolution:   make([]domain.DailyCPA, 0, len(dates)),
		ROASByCampaign: make([]domain.CampaignROAS, 0, len(perCampaign)),
	}

	for _, day := range dates {
		chart.CPAEvolution = append(chart.CPAEvolution, domain.DailyCPA{
			Date: day,
			CPA:  Aggregate(byDate[day]).AvgCPA,
		})
	}

	for _, m := range perCampaign {
		chart.ROASByCampaign = append(chart.ROASByCampaign, domain.CampaignROAS{
			CampaignName: m.CampaignName,
			ROAS:         m.KPIs.AvgROAS,
		})
	}

	return chart
}

func resolvePeriod(req domain.DashboardRequest, now time.Time) (domain.Period, domain.DateRange, error) {
	period := req.Period
	if period == "" {
		period = domain.Period7d
	}

	if period == domain.PeriodCustom {
		if req.StartDate == nil || req.EndDate == nil {
			return "", domain.DateRange{}, domain.NewError(domain.KindValidation, "analytics.period", ErrCustomRangeRequired)
		}

		if req.StartDate.After(*req.EndDate) {
			return "", domain.DateRange{}, domain.NewError(domain.KindValidation, "analytics.period", ErrInvalidDateRange)
		}

		return period, domain.DateRange{Start: *req.StartDate, End: *req.EndDate}, nil
	}

	return period, windowEndingAt(now, periodDays[period]), nil
}

func windowEndingAt(now time.Time, days int) domain.DateRange {
	return domain.DateRange{
		Start: now.AddDate(0, 0, -days),
		End:   now,
	}
}
