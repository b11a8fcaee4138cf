package repository

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/tracionar-api/infrastructure/database/postgres"
	"github.com/vfg2006/tracionar-api/internal/domain"
	"github.com/vfg2006/tracionar-api/pkg/utils"
)

type SyncRunRepository interface {
	Create(ctx context.Context, run *domain.SyncRun) error
	ListRecent(ctx context.Context, accountID string, limit uint64) ([]*domain.SyncRun, error)
}

type syncRunRepository struct {
	conn postgres.Queryer
}

func NewSyncRunRepository(conn postgres.Queryer) SyncRunRepository {
	return &syncRunRepository{
		conn: conn,
	}
}

func (r *syncRunRepository) Create(ctx context.Context, run *domain.SyncRun) error {
	if run.ID == "" {
		id, err := utils.GenerateID()
		if err != nil {
			return err
		}
		run.ID = id
	}

	query, args, err := squirrel.StatementBuilder.
		Insert("sync_runs").
		Columns("id", "account_id", "mode", "outcome", "records_touched", "error_message", "duration_ms", "created_at").
		Values(run.ID, run.AccountID, string(run.Mode), string(run.Outcome), run.RecordsTouched, run.ErrorMessage, run.Duration, run.CreatedAt).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return postgres.WrapError("construir a query de registro de sincronização", err)
	}

	if _, err := r.conn.ExecContext(ctx, query, args...); err != nil {
		return domain.NewError(domain.KindPersistence, "sync_run.create", postgres.WrapError("salvar registro de sincronização", err))
	}

	return nil
}

func (r *syncRunRepository) ListRecent(ctx context.Context, accountID string, limit uint64) ([]*domain.SyncRun, error) {
	query, args, err := squirrel.
		Select("id, account_id, mode, outcome, records_touched, error_message, duration_ms, created_at").
		From("sync_runs").
		Where(squirrel.Eq{"account_id": accountID}).
		OrderBy("created_at DESC").
		Limit(limit).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, postgres.WrapError("construir a query de registros de sincronização", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, postgres.WrapError("listar registros de sincronização", err)
	}
	defer rows.Close()

	runs := make([]*domain.SyncRun, 0)
	for rows.Next() {
		run := &domain.SyncRun{}
		if err := rows.Scan(
			&run.ID,
			&run.AccountID,
			&run.Mode,
			&run.Outcome,
			&run.RecordsTouched,
			&run.ErrorMessage,
			&run.Duration,
			&run.CreatedAt,
		); err != nil {
			return nil, postgres.WrapError("deserializar registro de sincronização", err)
		}
		runs = append(runs, run)
	}

	if err := rows.Err(); err != nil {
		return nil, postgres.WrapError("iterar sobre os registros de sincronização", err)
	}

	return runs, nil
}
