package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/vfg2006/ads-optimizer-api/infrastructure/database/postgres"
	"github.com/vfg2006/ads-optimizer-api/internal/domain"
)

const accountsTable = "accounts a"

type AccountRepository interface {
	GetAccountByID(ctx context.Context, accountID string) (*domain.AdAccount, error)
	GetAccountByExternalID(ctx context.Context, externalID string) (*domain.AdAccount, error)
	ListAccounts(ctx context.Context, availableStatus []domain.AdAccountStatus) ([]*domain.AdAccount, error)
	ListOptimizerEnabled(ctx context.Context) ([]*domain.AdAccount, error)
	UpdateAccount(ctx context.Context, accountID string, req *domain.UpdateAdAccountRequest) error
}

type accountRepository struct {
	conn *postgres.Connection
}

func NewAccountRepository(conn *postgres.Connection) AccountRepository {
	return &accountRepository{
		conn: conn,
	}
}

const accountColumns = "a.id, a.external_id, a.name, a.status, a.optimizer_enabled, a.target_cpr, a.scoring_overrides, a.created_at, a.updated_at"

func (a *accountRepository) GetAccountByID(ctx context.Context, accountID string) (*domain.AdAccount, error) {
	return a.getAccount(ctx, squirrel.Eq{"a.id": accountID})
}

func (a *accountRepository) GetAccountByExternalID(ctx context.Context, externalID string) (*domain.AdAccount, error) {
	return a.getAccount(ctx, squirrel.Eq{"a.external_id": externalID})
}

func (a *accountRepository) getAccount(ctx context.Context, whereClause map[string]interface{}) (*domain.AdAccount, error) {
	accountsSQL, accountsArgs, err := squirrel.
		Select(accountColumns).
		From(accountsTable).
		Where(whereClause).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	row := a.conn.QueryRow(ctx, accountsSQL, accountsArgs...)

	acc, err := deserializeAccount(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	return acc, nil
}

func (a *accountRepository) ListAccounts(ctx context.Context, availableStatus []domain.AdAccountStatus) ([]*domain.AdAccount, error) {
	queryBuilder := squirrel.
		Select(accountColumns).
		From(accountsTable).
		OrderBy("a.name ASC").
		PlaceholderFormat(squirrel.Dollar)

	if len(availableStatus) > 0 {
		queryBuilder = queryBuilder.Where(squirrel.Eq{"a.status": availableStatus})
	}

	accountsSQL, accountsArgs, err := queryBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	return a.queryAccounts(ctx, accountsSQL, accountsArgs)
}

// ListOptimizerEnabled lista as contas ativas com o otimizador habilitado
func (a *accountRepository) ListOptimizerEnabled(ctx context.Context) ([]*domain.AdAccount, error) {
	accountsSQL, accountsArgs, err := squirrel.
		Select(accountColumns).
		From(accountsTable).
		Where(squirrel.Eq{"a.status": domain.AdAccountStatusActive, "a.optimizer_enabled": true}).
		OrderBy("a.name ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	return a.queryAccounts(ctx, accountsSQL, accountsArgs)
}

func (a *accountRepository) queryAccounts(ctx context.Context, accountsSQL string, accountsArgs []interface{}) ([]*domain.AdAccount, error) {
	rows, err := a.conn.Query(ctx, accountsSQL, accountsArgs...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	accounts := make([]*domain.AdAccount, 0)

	for rows.Next() {
		acc, err := deserializeAccount(rows)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, acc)
	}

	return accounts, rows.Err()
}

func (a *accountRepository) UpdateAccount(ctx context.Context, accountID string, req *domain.UpdateAdAccountRequest) error {
	queryBuilder := squirrel.
		Update("accounts").
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": accountID}).
		PlaceholderFormat(squirrel.Dollar)

	if req.Name != nil {
		queryBuilder = queryBuilder.Set("name", *req.Name)
	}
	if req.Status != nil {
		queryBuilder = queryBuilder.Set("status", *req.Status)
	}
	if req.OptimizerEnabled != nil {
		queryBuilder = queryBuilder.Set("optimizer_enabled", *req.OptimizerEnabled)
	}
	if req.TargetCPR != nil {
		queryBuilder = queryBuilder.Set("target_cpr", *req.TargetCPR)
	}
	if req.Overrides != nil {
		overridesJSON, err := json.Marshal(req.Overrides)
		if err != nil {
			return fmt.Errorf("erro ao serializar os overrides: %w", err)
		}
		queryBuilder = queryBuilder.Set("scoring_overrides", overridesJSON)
	}

	sqlQuery, args, err := queryBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	result, err := a.conn.Exec(ctx, sqlQuery, args...)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return fmt.Errorf("erro de banco de dados: %w (código: %s)", pqErr, pqErr.Code)
		}
		return fmt.Errorf("erro ao executar a query: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func deserializeAccount(row rowScanner) (*domain.AdAccount, error) {
	acc := &domain.AdAccount{}

	var overridesJSON []byte

	if err := row.Scan(
		&acc.ID,
		&acc.ExternalID,
		&acc.Name,
		&acc.Status,
		&acc.OptimizerEnabled,
		&acc.TargetCPR,
		&overridesJSON,
		&acc.CreatedAt,
		&acc.UpdatedAt,
	); err != nil {
		return nil, err
	}

	if len(overridesJSON) > 0 {
		overrides := &domain.ScoringOverrides{}
		if err := json.Unmarshal(overridesJSON, overrides); err != nil {
			return nil, fmt.Errorf("erro ao desserializar os overrides: %w", err)
		}
		acc.Overrides = overrides
	}

	return acc, nil
}
