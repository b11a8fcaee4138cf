package repository

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/tracionar-api/infrastructure/database/postgres"
	"github.com/vfg2006/tracionar-api/internal/domain"
	"github.com/vfg2006/tracionar-api/pkg/utils"
)

type AdRepository interface {
	Upsert(ctx context.Context, ad *domain.Ad) error
}

type adRepository struct {
	conn postgres.Queryer
}

func NewAdRepository(conn postgres.Queryer) AdRepository {
	return &adRepository{
		conn: conn,
	}
}

func buildAdUpsert(id string, ad *domain.Ad) (string, []interface{}, error) {
	var creative interface{}
	if len(ad.Creative) > 0 {
		creative = string(ad.Creative)
	}

	return squirrel.StatementBuilder.
		Insert("ads").
		Columns("id", "ad_set_id", "external_id", "name", "status", "creative").
		Values(id, ad.AdSetID, ad.ExternalID, ad.Name, ad.Status, creative).
		Suffix(`
			ON CONFLICT (ad_set_id, external_id) DO UPDATE SET
				name = EXCLUDED.name,
				status = COALESCE(EXCLUDED.status, ads.status),
				creative = COALESCE(EXCLUDED.creative, ads.creative),
				updated_at = NOW()
		`).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
}

func (r *adRepository) Upsert(ctx context.Context, ad *domain.Ad) error {
	id, err := utils.GenerateID()
	if err != nil {
		return err
	}

	query, args, err := buildAdUpsert(id, ad)
	if err != nil {
		return postgres.WrapError("construir a query de anúncio", err)
	}

	if _, err := r.conn.ExecContext(ctx, query, args...); err != nil {
		return domain.NewError(domain.KindPersistence, "ad.upsert", postgres.WrapError("salvar anúncio", err))
	}

	return nil
}
