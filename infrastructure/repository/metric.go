package repository

import (
	"context"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/tracionar-api/infrastructure/database/postgres"
	"github.com/vfg2006/tracionar-api/internal/domain"
)

const (
	metricsTable  = "campaign_metrics m"
	metricColumns = "m.id, m.campaign_id, m.date, m.impressions, m.reach, m.clicks, m.spend, m.conversions, m.ctr, m.cpc, m.cpm, m.cpa, m.roas, m.frequency, m.updated_at"
)

type MetricRepository interface {
	Upsert(ctx context.Context, sample *domain.MetricSample) error
	ListByFilter(ctx context.Context, filter domain.MetricsFilter) ([]*domain.MetricSample, error)
}

type metricRepository struct {
	conn postgres.Queryer
}

func NewMetricRepository(conn postgres.Queryer) MetricRepository {
	return &metricRepository{
		conn: conn,
	}
}

// Uma amostra por (campanha, dia): reenvios sobrescrevem todos os valores
func buildMetricUpsert(sample *domain.MetricSample) (string, []interface{}, error) {
	return squirrel.StatementBuilder.
		Insert("campaign_metrics").
		Columns("campaign_id", "date", "impressions", "reach", "clicks", "spend", "conversions", "ctr", "cpc", "cpm", "cpa", "roas", "frequency").
		Values(
			sample.CampaignID,
			sample.Date.Format(time.DateOnly),
			sample.Impressions,
			sample.Reach,
			sample.Clicks,
			sample.Spend,
			sample.Conversions,
			sample.CTR,
			sample.CPC,
			sample.CPM,
			sample.CPA,
			sample.ROAS,
			sample.Frequency,
		).
		Suffix(`
			ON CONFLICT (campaign_id, date) DO UPDATE SET
				impressions = EXCLUDED.impressions,
				reach = EXCLUDED.reach,
				clicks = EXCLUDED.clicks,
				spend = EXCLUDED.spend,
				conversions = EXCLUDED.conversions,
				ctr = EXCLUDED.ctr,
				cpc = EXCLUDED.cpc,
				cpm = EXCLUDED.cpm,
				cpa = EXCLUDED.cpa,
				roas = EXCLUDED.roas,
				frequency = EXCLUDED.frequency,
				updated_at = NOW()
		`).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
}

func (r *metricRepository) Upsert(ctx context.Context, sample *domain.MetricSample) error {
	if err := sample.Validate(); err != nil {
		return err
	}

	query, args, err := buildMetricUpsert(sample)
	if err != nil {
		return postgres.WrapError("construir a query de métricas", err)
	}

	if _, err := r.conn.ExecContext(ctx, query, args...); err != nil {
		return domain.NewError(domain.KindPersistence, "metric.upsert", postgres.WrapError("salvar métricas", err))
	}

	return nil
}

func buildMetricsFilter(filter domain.MetricsFilter) (string, []interface{}, error) {
	builder := squirrel.
		Select(metricColumns).
		From(metricsTable).
		OrderBy("m.date ASC", "m.campaign_id ASC").
		PlaceholderFormat(squirrel.Dollar)

	if len(filter.AccountIDs) > 0 {
		builder = builder.
			Join("campaigns c ON c.id = m.campaign_id").
			Where(squirrel.Eq{"c.account_id": filter.AccountIDs})
	}

	if len(filter.CampaignIDs) > 0 {
		builder = builder.Where(squirrel.Eq{"m.campaign_id": filter.CampaignIDs})
	}

	if !filter.StartDate.IsZero() {
		builder = builder.Where(squirrel.GtOrEq{"m.date": filter.StartDate.Format(time.DateOnly)})
	}

	if !filter.EndDate.IsZero() {
		builder = builder.Where(squirrel.LtOrEq{"m.date": filter.EndDate.Format(time.DateOnly)})
	}

	return builder.ToSql()
}

func (r *metricRepository) ListByFilter(ctx context.Context, filter domain.MetricsFilter) ([]*domain.MetricSample, error) {
	query, args, err := buildMetricsFilter(filter)
	if err != nil {
		return nil, postgres.WrapError("construir a query de métricas", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, postgres.WrapError("listar métricas", err)
	}
	defer rows.Close()

	samples := make([]*domain.MetricSample, 0)
	for rows.Next() {
		sample := &domain.MetricSample{}
		if err := rows.Scan(
			&sample.ID,
			&sample.CampaignID,
			&sample.Date,
			&sample.Impressions,
			&sample.Reach,
			&sample.Clicks,
			&sample.Spend,
			&sample.Conversions,
			&sample.CTR,
			&sample.CPC,
			&sample.CPM,
			&sample.CPA,
			&sample.ROAS,
			&sample.Frequency,
			&sample.UpdatedAt,
		); err != nil {
			return nil, postgres.WrapError("deserializar métricas", err)
		}
		samples = append(samples, sample)
	}

	if err := rows.Err(); err != nil {
		return nil, postgres.WrapError("iterar sobre as métricas", err)
	}

	return samples, nil
}
