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

type ActionPlanRepository interface {
	SavePlan(ctx context.Context, plan *domain.ActionPlan) error
	GetPlanByKey(ctx context.Context, key string) (*domain.ActionPlan, error)
	GetPlanByRun(ctx context.Context, runID string) (*domain.ActionPlan, error)

	SaveExecution(ctx context.Context, record *domain.ExecutionRecord) error
	GetExecutionByKey(ctx context.Context, idempotencyKey string) (*domain.ExecutionRecord, error)
	ListExecutionsByPlan(ctx context.Context, planKey string) ([]*domain.ExecutionRecord, error)
	ListBudgetChanges(ctx context.Context, accountID string, since time.Time) ([]domain.BudgetChange, error)
}

type actionPlanRepository struct {
	conn *postgres.Connection
}

func NewActionPlanRepository(conn *postgres.Connection) ActionPlanRepository {
	return &actionPlanRepository{
		conn: conn,
	}
}

// SavePlan grava o plano. A chave é única; planos repetidos da mesma janela
// são ignorados silenciosamente.
func (r *actionPlanRepository) SavePlan(ctx context.Context, plan *domain.ActionPlan) error {
	actionsJSON, err := json.Marshal(plan.Actions)
	if err != nil {
		return fmt.Errorf("erro ao serializar as ações do plano: %w", err)
	}

	sqlQuery, args, err := squirrel.StatementBuilder.
		Insert("action_plans").
		Columns("key", "run_id", "account_id", "actions", "created_at").
		Values(plan.Key, plan.RunID, plan.AccountID, actionsJSON, plan.CreatedAt).
		Suffix("ON CONFLICT (key) DO NOTHING").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	_, err = r.conn.Exec(ctx, sqlQuery, args...)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return fmt.Errorf("erro de banco de dados: %w (código: %s)", pqErr, pqErr.Code)
		}
		return fmt.Errorf("erro ao executar a query: %w", err)
	}

	return nil
}

func (r *actionPlanRepository) GetPlanByKey(ctx context.Context, key string) (*domain.ActionPlan, error) {
	return r.getPlan(ctx, squirrel.Eq{"p.key": key})
}

func (r *actionPlanRepository) GetPlanByRun(ctx context.Context, runID string) (*domain.ActionPlan, error) {
	return r.getPlan(ctx, squirrel.Eq{"p.run_id": runID})
}

func (r *actionPlanRepository) getPlan(ctx context.Context, whereClause map[string]interface{}) (*domain.ActionPlan, error) {
	sqlQuery, args, err := squirrel.
		Select("p.key, p.run_id, p.account_id, p.actions, p.created_at").
		From("action_plans p").
		Where(whereClause).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	row := r.conn.QueryRow(ctx, sqlQuery, args...)

	plan := &domain.ActionPlan{}
	var actionsJSON []byte

	if err := row.Scan(
		&plan.Key,
		&plan.RunID,
		&plan.AccountID,
		&actionsJSON,
		&plan.CreatedAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	if len(actionsJSON) > 0 {
		if err := json.Unmarshal(actionsJSON, &plan.Actions); err != nil {
			return nil, fmt.Errorf("erro ao desserializar as ações do plano: %w", err)
		}
	}

	return plan, nil
}

// SaveExecution grava o desfecho de uma ação. A chave de idempotência é
// única; um registro que já atingiu desfecho real nunca é sobrescrito.
// Registros de dry_run (validated) são substituídos pelo desfecho do
// despacho live da mesma chave.
func (r *actionPlanRepository) SaveExecution(ctx context.Context, record *domain.ExecutionRecord) error {
	sqlQuery, args, err := squirrel.StatementBuilder.
		Insert("execution_records").
		Columns(
			"plan_key", "idempotency_key", "action_index", "action_type",
			"target_entity_id", "direction", "status", "failure_kind",
			"error_message", "result_entity_id", "retry_count",
			"created_at", "completed_at",
		).
		Values(
			record.PlanKey,
			record.IdempotencyKey,
			record.ActionIndex,
			record.ActionType,
			record.TargetEntityID,
			record.Direction,
			record.Status,
			record.FailureKind,
			record.ErrorMessage,
			record.ResultEntityID,
			record.RetryCount,
			record.CreatedAt,
			record.CompletedAt,
		).
		Suffix(`ON CONFLICT (idempotency_key) DO UPDATE SET
			status = EXCLUDED.status,
			failure_kind = EXCLUDED.failure_kind,
			error_message = EXCLUDED.error_message,
			result_entity_id = EXCLUDED.result_entity_id,
			retry_count = EXCLUDED.retry_count,
			completed_at = EXCLUDED.completed_at
			WHERE execution_records.status = 'validated'`).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	_, err = r.conn.Exec(ctx, sqlQuery, args...)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return fmt.Errorf("erro de banco de dados: %w (código: %s)", pqErr, pqErr.Code)
		}
		return fmt.Errorf("erro ao executar a query: %w", err)
	}

	return nil
}

const executionColumns = "e.id, e.plan_key, e.idempotency_key, e.action_index, e.action_type, e.target_entity_id, e.direction, e.status, e.failure_kind, e.error_message, e.result_entity_id, e.retry_count, e.created_at, e.completed_at"

func (r *actionPlanRepository) GetExecutionByKey(ctx context.Context, idempotencyKey string) (*domain.ExecutionRecord, error) {
	sqlQuery, args, err := squirrel.
		Select(executionColumns).
		From("execution_records e").
		Where(squirrel.Eq{"e.idempotency_key": idempotencyKey}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	row := r.conn.QueryRow(ctx, sqlQuery, args...)

	record, err := deserializeExecution(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	return record, nil
}

func (r *actionPlanRepository) ListExecutionsByPlan(ctx context.Context, planKey string) ([]*domain.ExecutionRecord, error) {
	sqlQuery, args, err := squirrel.
		Select(executionColumns).
		From("execution_records e").
		Where(squirrel.Eq{"e.plan_key": planKey}).
		OrderBy("e.action_index ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Query(ctx, sqlQuery, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]*domain.ExecutionRecord, 0)

	for rows.Next() {
		record, err := deserializeExecution(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	return records, rows.Err()
}

// ListBudgetChanges lista os ajustes de orçamento bem-sucedidos da conta
// desde a data informada, para derivar as flags de histórico
func (r *actionPlanRepository) ListBudgetChanges(ctx context.Context, accountID string, since time.Time) ([]domain.BudgetChange, error) {
	sqlQuery, args, err := squirrel.
		Select("e.target_entity_id, e.direction, e.created_at").
		From("execution_records e").
		Join("action_plans p ON e.plan_key = p.key").
		Where(squirrel.Eq{
			"p.account_id":  accountID,
			"e.action_type": domain.ActionAdjustBudget,
			"e.status":      domain.ExecutionSucceeded,
		}).
		Where(squirrel.GtOrEq{"e.created_at": since}).
		OrderBy("e.created_at DESC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Query(ctx, sqlQuery, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	changes := make([]domain.BudgetChange, 0)

	for rows.Next() {
		var change domain.BudgetChange
		if err := rows.Scan(&change.AdSetID, &change.Direction, &change.OccurredAt); err != nil {
			return nil, err
		}
		changes = append(changes, change)
	}

	return changes, rows.Err()
}

func deserializeExecution(row rowScanner) (*domain.ExecutionRecord, error) {
	record := &domain.ExecutionRecord{}
	var completedAt sql.NullTime

	if err := row.Scan(
		&record.ID,
		&record.PlanKey,
		&record.IdempotencyKey,
		&record.ActionIndex,
		&record.ActionType,
		&record.TargetEntityID,
		&record.Direction,
		&record.Status,
		&record.FailureKind,
		&record.ErrorMessage,
		&record.ResultEntityID,
		&record.RetryCount,
		&record.CreatedAt,
		&completedAt,
	); err != nil {
		return nil, err
	}

	if completedAt.Valid {
		record.CompletedAt = &completedAt.Time
	}

	return record, nil
}
