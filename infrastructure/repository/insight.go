package repository

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/tracionar-api/infrastructure/database/postgres"
	"github.com/vfg2006/tracionar-api/internal/domain"
	"github.com/vfg2006/tracionar-api/pkg/utils"
)

type InsightRepository interface {
	Create(ctx context.Context, insight *domain.Insight) error
	List(ctx context.Context, filter domain.InsightHistoryFilter) ([]*domain.Insight, error)
}

type insightRepository struct {
	conn postgres.Queryer
}

func NewInsightRepository(conn postgres.Queryer) InsightRepository {
	return &insightRepository{
		conn: conn,
	}
}

func (r *insightRepository) Create(ctx context.Context, insight *domain.Insight) error {
	if insight.ID == "" {
		id, err := utils.GenerateID()
		if err != nil {
			return err
		}
		insight.ID = id
	}

	var snapshot interface{}
	if len(insight.MetricsSnapshot) > 0 {
		snapshot = string(insight.MetricsSnapshot)
	}

	query, args, err := squirrel.StatementBuilder.
		Insert("insights").
		Columns("id", "type", "content", "confidence", "actionable", "metrics_snapshot", "created_at").
		Values(insight.ID, insight.Type, insight.Content, insight.Confidence, insight.Actionable, snapshot, insight.CreatedAt).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return postgres.WrapError("construir a query de insight", err)
	}

	if _, err := r.conn.ExecContext(ctx, query, args...); err != nil {
		return domain.NewError(domain.KindPersistence, "insight.create", postgres.WrapError("salvar insight", err))
	}

	return nil
}

func buildInsightHistory(filter domain.InsightHistoryFilter) (string, []interface{}, error) {
	builder := squirrel.
		Select("id, type, content, confidence, actionable, created_at").
		From("insights").
		OrderBy("created_at DESC").
		Limit(filter.Limit).
		PlaceholderFormat(squirrel.Dollar)

	if filter.Type != "" {
		builder = builder.Where(squirrel.Eq{"type": filter.Type})
	}

	return builder.ToSql()
}

func (r *insightRepository) List(ctx context.Context, filter domain.InsightHistoryFilter) ([]*domain.Insight, error) {
	query, args, err := buildInsightHistory(filter)
	if err != nil {
		return nil, postgres.WrapError("construir a query de histórico", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, postgres.WrapError("listar histórico de insights", err)
	}
	defer rows.Close()

	insights := make([]*domain.Insight, 0)
	for rows.Next() {
		insight := &domain.Insight{}
		if err := rows.Scan(
			&insight.ID,
			&insight.Type,
			&insight.Content,
			&insight.Confidence,
			&insight.Actionable,
			&insight.CreatedAt,
		); err != nil {
			return nil, postgres.WrapError("deserializar insight", err)
		}
		insights = append(insights, insight)
	}

	if err := rows.Err(); err != nil {
		return nil, postgres.WrapError("iterar sobre o histórico de insights", err)
	}

	return insights, nil
}
