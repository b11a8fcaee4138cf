package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/tracionar-api/infrastructure/database/postgres"
	"github.com/vfg2006/tracionar-api/internal/domain"
	"github.com/vfg2006/tracionar-api/pkg/utils"
)

const (
	campaignsTable  = "campaigns c"
	campaignColumns = "c.id, c.account_id, c.external_id, c.name, c.objective, c.status, c.desired_cpa, c.created_at, c.updated_at"
)

type CampaignRepository interface {
	Upsert(ctx context.Context, campaign *domain.Campaign) (string, error)
	GetByIDForUser(ctx context.Context, userID int, campaignID string) (*domain.Campaign, error)
	ListByUser(ctx context.Context, userID int, accountID *string) ([]*domain.Campaign, error)
	ListSummaries(ctx context.Context, accountID string) ([]*domain.CampaignSummary, error)
	SetDesiredCPA(ctx context.Context, campaignID string, desiredCPA float64) error
}

type campaignRepository struct {
	conn postgres.Queryer
}

func NewCampaignRepository(conn postgres.Queryer) CampaignRepository {
	return &campaignRepository{
		conn: conn,
	}
}

// Objective e status ausentes na origem preservam o valor gravado; desired_cpa nunca é tocado pelo upsert
func buildCampaignUpsert(id string, campaign *domain.Campaign) (string, []interface{}, error) {
	return squirrel.StatementBuilder.
		Insert("campaigns").
		Columns("id", "account_id", "external_id", "name", "objective", "status").
		Values(id, campaign.AccountID, campaign.ExternalID, campaign.Name, campaign.Objective, campaign.Status).
		Suffix(`
			ON CONFLICT (account_id, external_id) DO UPDATE SET
				name = EXCLUDED.name,
				objective = COALESCE(EXCLUDED.objective, campaigns.objective),
				status = COALESCE(EXCLUDED.status, campaigns.status),
				updated_at = NOW()
			RETURNING id
		`).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
}

func (r *campaignRepository) Upsert(ctx context.Context, campaign *domain.Campaign) (string, error) {
	id, err := utils.GenerateID()
	if err != nil {
		return "", err
	}

	query, args, err := buildCampaignUpsert(id, campaign)
	if err != nil {
		return "", postgres.WrapError("construir a query de campanha", err)
	}

	var storedID string
	if err := r.conn.QueryRowContext(ctx, query, args...).Scan(&storedID); err != nil {
		return "", domain.NewError(domain.KindPersistence, "campaign.upsert", postgres.WrapError("salvar campanha", err))
	}

	return storedID, nil
}

func (r *campaignRepository) GetByIDForUser(ctx context.Context, userID int, campaignID string) (*domain.Campaign, error) {
	query, args, err := squirrel.
		Select(campaignColumns).
		From(campaignsTable).
		Join("ad_accounts a ON a.id = c.account_id").
		Where(squirrel.Eq{"c.id": campaignID, "a.user_id": userID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, postgres.WrapError("construir a query de campanha", err)
	}

	campaign, err := deserializeCampaign(r.conn.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, postgres.WrapError("buscar campanha", err)
	}

	return campaign, nil
}

func buildCampaignsByUser(userID int, accountID *string) (string, []interface{}, error) {
	where := squirrel.Eq{"a.user_id": userID, "a.is_active": true}
	if accountID != nil {
		where["a.id"] = *accountID
	}

	return squirrel.
		Select(campaignColumns).
		From(campaignsTable).
		Join("ad_accounts a ON a.id = c.account_id").
		Where(where).
		OrderBy("c.name ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
}

func (r *campaignRepository) ListByUser(ctx context.Context, userID int, accountID *string) ([]*domain.Campaign, error) {
	query, args, err := buildCampaignsByUser(userID, accountID)
	if err != nil {
		return nil, postgres.WrapError("construir a query de campanhas", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, postgres.WrapError("listar campanhas", err)
	}
	defer rows.Close()

	campaigns := make([]*domain.Campaign, 0)
	for rows.Next() {
		campaign, err := deserializeCampaign(rows)
		if err != nil {
			return nil, postgres.WrapError("deserializar campanha", err)
		}
		campaigns = append(campaigns, campaign)
	}

	if err := rows.Err(); err != nil {
		return nil, postgres.WrapError("iterar sobre as campanhas", err)
	}

	return campaigns, nil
}

func deserializeCampaign(row scanner) (*domain.Campaign, error) {
	campaign := &domain.Campaign{}

	if err := row.Scan(
		&campaign.ID,
		&campaign.AccountID,
		&campaign.ExternalID,
		&campaign.Name,
		&campaign.Objective,
		&campaign.Status,
		&campaign.DesiredCPA,
		&campaign.CreatedAt,
		&campaign.UpdatedAt,
	); err != nil {
		return nil, err
	}

	return campaign, nil
}

// ListSummaries traz a contagem de conjuntos e a métrica mais recente de cada campanha
func (r *campaignRepository) ListSummaries(ctx context.Context, accountID string) ([]*domain.CampaignSummary, error) {
	query, args, err := squirrel.
		Select(campaignColumns,
			"(SELECT COUNT(*) FROM ad_sets s WHERE s.campaign_id = c.id)",
			"m.date, m.impressions, m.reach, m.clicks, m.spend, m.conversions, m.ctr, m.cpc, m.cpm, m.cpa, m.roas, m.frequency, m.updated_at").
		From(campaignsTable).
		LeftJoin(`LATERAL (
			SELECT * FROM campaign_metrics cm
			WHERE cm.campaign_id = c.id
			ORDER BY cm.date DESC
			LIMIT 1
		) m ON TRUE`).
		Where(squirrel.Eq{"c.account_id": accountID}).
		OrderBy("c.updated_at DESC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, postgres.WrapError("construir a query de resumo de campanhas", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, postgres.WrapError("listar resumo de campanhas", err)
	}
	defer rows.Close()

	summaries := make([]*domain.CampaignSummary, 0)
	for rows.Next() {
		summary, err := deserializeCampaignSummary(rows)
		if err != nil {
			return nil, postgres.WrapError("deserializar resumo de campanha", err)
		}
		summaries = append(summaries, summary)
	}

	if err := rows.Err(); err != nil {
		return nil, postgres.WrapError("iterar sobre o resumo de campanhas", err)
	}

	return summaries, nil
}

func deserializeCampaignSummary(row scanner) (*domain.CampaignSummary, error) {
	summary := &domain.CampaignSummary{}

	var (
		date                                       sql.NullTime
		impressions, reach, clicks, conversions    sql.NullInt64
		spend, ctr, cpc, cpm, cpa, roas, frequency sql.NullFloat64
		updatedAt                                  sql.NullTime
	)

	if err := row.Scan(
		&summary.ID,
		&summary.AccountID,
		&summary.ExternalID,
		&summary.Name,
		&summary.Objective,
		&summary.Status,
		&summary.DesiredCPA,
		&summary.CreatedAt,
		&summary.UpdatedAt,
		&summary.AdSetCount,
		&date,
		&impressions,
		&reach,
		&clicks,
		&spend,
		&conversions,
		&ctr,
		&cpc,
		&cpm,
		&cpa,
		&roas,
		&frequency,
		&updatedAt,
	); err != nil {
		return nil, err
	}

	if date.Valid {
		summary.LatestMetric = &domain.MetricSample{
			CampaignID:  summary.ID,
			Date:        date.Time,
			Impressions: impressions.Int64,
			Reach:       reach.Int64,
			Clicks:      clicks.Int64,
			Spend:       spend.Float64,
			Conversions: conversions.Int64,
			CTR:         ctr.Float64,
			CPC:         cpc.Float64,
			CPM:         cpm.Float64,
			CPA:         cpa.Float64,
			ROAS:        roas.Float64,
			Frequency:   frequency.Float64,
			UpdatedAt:   updatedAt.Time,
		}
	}

	return summary, nil
}

func (r *campaignRepository) SetDesiredCPA(ctx context.Context, campaignID string, desiredCPA float64) error {
	query, args, err := squirrel.
		Update("campaigns").
		Set("desired_cpa", desiredCPA).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": campaignID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return postgres.WrapError("construir a query de CPA desejado", err)
	}

	result, err := r.conn.ExecContext(ctx, query, args...)
	if err != nil {
		return domain.NewError(domain.KindPersistence, "campaign.set_desired_cpa", postgres.WrapError("atualizar CPA desejado", err))
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return postgres.WrapError("obter linhas afetadas", err)
	}

	if rowsAffected == 0 {
		return domain.NewError(domain.KindNotFound, "campaign.set_desired_cpa", domain.ErrCampaignNotFound)
	}

	return nil
}
