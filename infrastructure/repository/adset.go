package repository

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/tracionar-api/infrastructure/database/postgres"
	"github.com/vfg2006/tracionar-api/internal/domain"
	"github.com/vfg2006/tracionar-api/pkg/utils"
)

type AdSetRepository interface {
	Upsert(ctx context.Context, adSet *domain.AdSet) (string, error)
}

type adSetRepository struct {
	conn postgres.Queryer
}

func NewAdSetRepository(conn postgres.Queryer) AdSetRepository {
	return &adSetRepository{
		conn: conn,
	}
}

func buildAdSetUpsert(id string, adSet *domain.AdSet) (string, []interface{}, error) {
	targeting := adSet.TargetingType
	if targeting == "" {
		targeting = domain.TargetingUnknown
	}

	return squirrel.StatementBuilder.
		Insert("ad_sets").
		Columns("id", "campaign_id", "external_id", "name", "status", "targeting_type").
		Values(id, adSet.CampaignID, adSet.ExternalID, adSet.Name, adSet.Status, string(targeting)).
		Suffix(`
			ON CONFLICT (campaign_id, external_id) DO UPDATE SET
				name = EXCLUDED.name,
				status = COALESCE(EXCLUDED.status, ad_sets.status),
				targeting_type = EXCLUDED.targeting_type,
				updated_at = NOW()
			RETURNING id
		`).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
}

func (r *adSetRepository) Upsert(ctx context.Context, adSet *domain.AdSet) (string, error) {
	id, err := utils.GenerateID()
	if err != nil {
		return "", err
	}

	query, args, err := buildAdSetUpsert(id, adSet)
	if err != nil {
		return "", postgres.WrapError("construir a query de conjunto de anúncios", err)
	}

	var storedID string
	if err := r.conn.QueryRowContext(ctx, query, args...).Scan(&storedID); err != nil {
		return "", domain.NewError(domain.KindPersistence, "adset.upsert", postgres.WrapError("salvar conjunto de anúncios", err))
	}

	return storedID, nil
}
