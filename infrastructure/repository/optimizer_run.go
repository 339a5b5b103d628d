package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/vfg2006/ads-optimizer-api/infrastructure/database/postgres"
	"github.com/vfg2006/ads-optimizer-api/internal/domain"
)

type OptimizerRunRepository interface {
	CreateRun(ctx context.Context, run *domain.OptimizerRun) error
	CompleteRun(ctx context.Context, run *domain.OptimizerRun) error
	GetRunByID(ctx context.Context, runID string) (*domain.OptimizerRun, error)
	ListRunsByAccount(ctx context.Context, accountID string, limit uint64) ([]*domain.OptimizerRun, error)
}

type optimizerRunRepository struct {
	conn *postgres.Connection
}

func NewOptimizerRunRepository(conn *postgres.Connection) OptimizerRunRepository {
	return &optimizerRunRepository{
		conn: conn,
	}
}

func (r *optimizerRunRepository) CreateRun(ctx context.Context, run *domain.OptimizerRun) error {
	sqlQuery, args, err := squirrel.StatementBuilder.
		Insert("optimizer_runs").
		Columns("id", "account_id", "plan_key", "status", "mode", "started_at").
		Values(run.ID, run.AccountID, run.PlanKey, run.Status, run.Mode, run.StartedAt).
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

// CompleteRun grava os contadores finais e o status terminal da execução
func (r *optimizerRunRepository) CompleteRun(ctx context.Context, run *domain.OptimizerRun) error {
	sqlQuery, args, err := squirrel.
		Update("optimizer_runs").
		Set("status", run.Status).
		Set("plan_key", run.PlanKey).
		Set("adsets_evaluated", run.AdSetsEvaluated).
		Set("fetch_failures", run.FetchFailures).
		Set("actions_planned", run.ActionsPlanned).
		Set("actions_succeeded", run.ActionsSucceeded).
		Set("actions_failed", run.ActionsFailed).
		Set("actions_skipped", run.ActionsSkipped).
		Set("completed_at", time.Now()).
		Where(squirrel.Eq{"id": run.ID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	_, err = r.conn.Exec(ctx, sqlQuery, args...)
	return err
}

const runColumns = "r.id, r.account_id, r.plan_key, r.status, r.mode, r.adsets_evaluated, r.fetch_failures, r.actions_planned, r.actions_succeeded, r.actions_failed, r.actions_skipped, r.started_at, r.completed_at"

func (r *optimizerRunRepository) GetRunByID(ctx context.Context, runID string) (*domain.OptimizerRun, error) {
	sqlQuery, args, err := squirrel.
		Select(runColumns).
		From("optimizer_runs r").
		Where(squirrel.Eq{"r.id": runID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	row := r.conn.QueryRow(ctx, sqlQuery, args...)

	run, err := deserializeRun(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	return run, nil
}

func (r *optimizerRunRepository) ListRunsByAccount(ctx context.Context, accountID string, limit uint64) ([]*domain.OptimizerRun, error) {
	sqlQuery, args, err := squirrel.
		Select(runColumns).
		From("optimizer_runs r").
		Where(squirrel.Eq{"r.account_id": accountID}).
		OrderBy("r.started_at DESC").
		Limit(limit).
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

	runs := make([]*domain.OptimizerRun, 0)

	for rows.Next() {
		run, err := deserializeRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}

	return runs, rows.Err()
}

func deserializeRun(row rowScanner) (*domain.OptimizerRun, error) {
	run := &domain.OptimizerRun{}
	var completedAt sql.NullTime

	if err := row.Scan(
		&run.ID,
		&run.AccountID,
		&run.PlanKey,
		&run.Status,
		&run.Mode,
		&run.AdSetsEvaluated,
		&run.FetchFailures,
		&run.ActionsPlanned,
		&run.ActionsSucceeded,
		&run.ActionsFailed,
		&run.ActionsSkipped,
		&run.StartedAt,
		&completedAt,
	); err != nil {
		return nil, err
	}

	if completedAt.Valid {
		run.CompletedAt = &completedAt.Time
	}

	return run, nil
}
