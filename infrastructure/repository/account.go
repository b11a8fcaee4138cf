package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/tracionar-api/infrastructure/database/postgres"
	"github.com/vfg2006/tracionar-api/infrastructure/vault"
	"github.com/vfg2006/tracionar-api/internal/domain"
	"github.com/vfg2006/tracionar-api/pkg/utils"
)

const (
	accountsTable  = "ad_accounts a"
	accountColumns = "a.id, a.user_id, a.external_id, a.name, a.access_token, a.token_expiry, a.is_active, a.last_sync, a.created_at, a.updated_at"
)

type AccountRepository interface {
	Upsert(ctx context.Context, account *domain.Account) (*domain.Account, error)
	GetByID(ctx context.Context, accountID string) (*domain.Account, error)
	GetByIDForUser(ctx context.Context, userID int, accountID string) (*domain.Account, error)
	ListByUser(ctx context.Context, userID int) ([]*domain.AccountResponse, error)
	ListActive(ctx context.Context) ([]*domain.Account, error)
	Deactivate(ctx context.Context, userID int, accountID string) error
	UpdateLastSync(ctx context.Context, accountID string, at time.Time) error
}

type accountRepository struct {
	conn postgres.Queryer
}

func NewAccountRepository(conn postgres.Queryer) AccountRepository {
	return &accountRepository{
		conn: conn,
	}
}

// scanner é satisfeito por *sql.Row e *sql.Rows
type scanner interface {
	Scan(dest ...interface{}) error
}

func buildAccountUpsert(account *domain.Account) (string, []interface{}, error) {
	return squirrel.StatementBuilder.
		Insert("ad_accounts").
		Columns("id", "user_id", "external_id", "name", "access_token", "token_expiry", "is_active").
		Values(account.ID, account.UserID, account.ExternalID, account.Name, account.AccessToken, account.TokenExpiry, true).
		Suffix(`
			ON CONFLICT (user_id, external_id) DO UPDATE SET
				name = EXCLUDED.name,
				access_token = EXCLUDED.access_token,
				token_expiry = EXCLUDED.token_expiry,
				is_active = TRUE,
				updated_at = NOW()
			RETURNING id, created_at, updated_at, last_sync
		`).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
}

// checkStoredToken recusa gravar um token de acesso que não esteja cifrado
func checkStoredToken(account *domain.Account) error {
	if account.AccessToken == "" || vault.IsEncrypted(account.AccessToken) {
		return nil
	}
	return domain.NewError(domain.KindCredential, "account.upsert", vault.ErrInvalidFormat)
}

// Upsert reativa a conta caso ela já tenha sido desconectada anteriormente
func (r *accountRepository) Upsert(ctx context.Context, account *domain.Account) (*domain.Account, error) {
	if err := checkStoredToken(account); err != nil {
		return nil, err
	}

	if account.ID == "" {
		id, err := utils.GenerateID()
		if err != nil {
			return nil, err
		}
		account.ID = id
	}

	query, args, err := buildAccountUpsert(account)
	if err != nil {
		return nil, postgres.WrapError("construir a query de conta", err)
	}

	saved := *account
	saved.IsActive = true

	err = r.conn.QueryRowContext(ctx, query, args...).Scan(&saved.ID, &saved.CreatedAt, &saved.UpdatedAt, &saved.LastSync)
	if err != nil {
		return nil, postgres.WrapError("salvar conta", err)
	}

	return &saved, nil
}

func (r *accountRepository) GetByID(ctx context.Context, accountID string) (*domain.Account, error) {
	return r.getAccount(ctx, squirrel.Eq{"a.id": accountID})
}

func (r *accountRepository) GetByIDForUser(ctx context.Context, userID int, accountID string) (*domain.Account, error) {
	return r.getAccount(ctx, squirrel.Eq{"a.id": accountID, "a.user_id": userID, "a.is_active": true})
}

func (r *accountRepository) getAccount(ctx context.Context, where squirrel.Eq) (*domain.Account, error) {
	query, args, err := squirrel.
		Select(accountColumns).
		From(accountsTable).
		Where(where).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, postgres.WrapError("construir a query de conta", err)
	}

	acc, err := deserializeAccount(r.conn.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, postgres.WrapError("buscar conta", err)
	}

	return acc, nil
}

func deserializeAccount(row scanner) (*domain.Account, error) {
	acc := &domain.Account{}

	if err := row.Scan(
		&acc.ID,
		&acc.UserID,
		&acc.ExternalID,
		&acc.Name,
		&acc.AccessToken,
		&acc.TokenExpiry,
		&acc.IsActive,
		&acc.LastSync,
		&acc.CreatedAt,
		&acc.UpdatedAt,
	); err != nil {
		return nil, err
	}

	return acc, nil
}

func (r *accountRepository) ListByUser(ctx context.Context, userID int) ([]*domain.AccountResponse, error) {
	query, args, err := squirrel.
		Select("a.id, a.external_id, a.name, a.is_active, a.last_sync, a.token_expiry, COUNT(c.id)").
		From(accountsTable).
		LeftJoin("campaigns c ON c.account_id = a.id").
		Where(squirrel.Eq{"a.user_id": userID, "a.is_active": true}).
		GroupBy("a.id").
		OrderBy("a.created_at DESC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, postgres.WrapError("construir a query de contas", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, postgres.WrapError("listar contas", err)
	}
	defer rows.Close()

	accounts := make([]*domain.AccountResponse, 0)
	for rows.Next() {
		acc := &domain.AccountResponse{}
		if err := rows.Scan(
			&acc.ID,
			&acc.ExternalID,
			&acc.Name,
			&acc.IsActive,
			&acc.LastSync,
			&acc.TokenExpiry,
			&acc.CampaignCount,
		); err != nil {
			return nil, postgres.WrapError("deserializar conta", err)
		}
		accounts = append(accounts, acc)
	}

	if err := rows.Err(); err != nil {
		return nil, postgres.WrapError("iterar sobre as contas", err)
	}

	return accounts, nil
}

func (r *accountRepository) ListActive(ctx context.Context) ([]*domain.Account, error) {
	query, args, err := squirrel.
		Select(accountColumns).
		From(accountsTable).
		Where(squirrel.Eq{"a.is_active": true}).
		OrderBy("a.last_sync ASC NULLS FIRST").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, postgres.WrapError("construir a query de contas ativas", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, postgres.WrapError("listar contas ativas", err)
	}
	defer rows.Close()

	accounts := make([]*domain.Account, 0)
	for rows.Next() {
		acc, err := deserializeAccount(rows)
		if err != nil {
			return nil, postgres.WrapError("deserializar conta", err)
		}
		accounts = append(accounts, acc)
	}

	if err := rows.Err(); err != nil {
		return nil, postgres.WrapError("iterar sobre as contas ativas", err)
	}

	return accounts, nil
}

func (r *accountRepository) Deactivate(ctx context.Context, userID int, accountID string) error {
	query, args, err := squirrel.
		Update("ad_accounts").
		Set("is_active", false).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": accountID, "user_id": userID, "is_active": true}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return postgres.WrapError("construir a query de desconexão", err)
	}

	result, err := r.conn.ExecContext(ctx, query, args...)
	if err != nil {
		return postgres.WrapError("desconectar conta", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return postgres.WrapError("obter linhas afetadas", err)
	}

	if rowsAffected == 0 {
		return domain.NewError(domain.KindNotFound, "account.deactivate", domain.ErrAccountNotFound)
	}

	return nil
}

func (r *accountRepository) UpdateLastSync(ctx context.Context, accountID string, at time.Time) error {
	query, args, err := squirrel.
		Update("ad_accounts").
		Set("last_sync", at).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": accountID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return postgres.WrapError("construir a query de última sincronização", err)
	}

	if _, err := r.conn.ExecContext(ctx, query, args...); err != nil {
		return postgres.WrapError("atualizar última sincronização", err)
	}

	return nil
}
