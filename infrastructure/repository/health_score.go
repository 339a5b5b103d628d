package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/vfg2006/ads-optimizer-api/infrastructure/database/postgres"
	"github.com/vfg2006/ads-optimizer-api/internal/domain"
)

type HealthScoreRepository interface {
	SaveScores(ctx context.Context, scores []*domain.HealthScoreRecord) error
	ListByRun(ctx context.Context, runID string) ([]*domain.HealthScoreRecord, error)
	ListByAdSet(ctx context.Context, accountID, adsetID string, limit uint64) ([]*domain.HealthScoreRecord, error)
}

type healthScoreRepository struct {
	conn *postgres.Connection
}

func NewHealthScoreRepository(conn *postgres.Connection) HealthScoreRepository {
	return &healthScoreRepository{
		conn: conn,
	}
}

// SaveScores grava em lote os scores calculados em uma execução
func (r *healthScoreRepository) SaveScores(ctx context.Context, scores []*domain.HealthScoreRecord) error {
	if len(scores) == 0 {
		return nil
	}

	query := squirrel.StatementBuilder.
		Insert("health_scores").
		Columns(
			"run_id", "account_id", "adset_id", "adset_name", "score", "class",
			"components", "target_cpr", "cpr_yesterday", "cpr_today",
			"impressions_today", "flags", "created_at",
		).
		PlaceholderFormat(squirrel.Dollar)

	for _, score := range scores {
		componentsJSON, err := json.Marshal(score.Components)
		if err != nil {
			return fmt.Errorf("erro ao serializar os componentes do score: %w", err)
		}

		flagsJSON, err := json.Marshal(score.Flags)
		if err != nil {
			return fmt.Errorf("erro ao serializar as flags do score: %w", err)
		}

		query = query.Values(
			score.RunID,
			score.AccountID,
			score.AdSetID,
			score.AdSetName,
			score.Score,
			score.Class,
			componentsJSON,
			score.TargetCPR,
			score.CPRYesterday,
			score.CPRToday,
			score.ImpressionsToday,
			flagsJSON,
			score.CreatedAt,
		)
	}

	sqlQuery, args, err := query.ToSql()
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

const healthScoreColumns = "h.id, h.run_id, h.account_id, h.adset_id, h.adset_name, h.score, h.class, h.components, h.target_cpr, h.cpr_yesterday, h.cpr_today, h.impressions_today, h.flags, h.created_at"

func (r *healthScoreRepository) ListByRun(ctx context.Context, runID string) ([]*domain.HealthScoreRecord, error) {
	queryBuilder := squirrel.
		Select(healthScoreColumns).
		From("health_scores h").
		Where(squirrel.Eq{"h.run_id": runID}).
		OrderBy("h.score ASC").
		PlaceholderFormat(squirrel.Dollar)

	return r.queryScores(ctx, queryBuilder)
}

// ListByAdSet retorna o histórico recente de scores de um adset
func (r *healthScoreRepository) ListByAdSet(ctx context.Context, accountID, adsetID string, limit uint64) ([]*domain.HealthScoreRecord, error) {
	queryBuilder := squirrel.
		Select(healthScoreColumns).
		From("health_scores h").
		Where(squirrel.Eq{"h.account_id": accountID, "h.adset_id": adsetID}).
		OrderBy("h.created_at DESC").
		Limit(limit).
		PlaceholderFormat(squirrel.Dollar)

	return r.queryScores(ctx, queryBuilder)
}

func (r *healthScoreRepository) queryScores(ctx context.Context, queryBuilder squirrel.SelectBuilder) ([]*domain.HealthScoreRecord, error) {
	sqlQuery, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Query(ctx, sqlQuery, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	scores := make([]*domain.HealthScoreRecord, 0)

	for rows.Next() {
		score := &domain.HealthScoreRecord{}
		var componentsJSON, flagsJSON []byte

		if err := rows.Scan(
			&score.ID,
			&score.RunID,
			&score.AccountID,
			&score.AdSetID,
			&score.AdSetName,
			&score.Score,
			&score.Class,
			&componentsJSON,
			&score.TargetCPR,
			&score.CPRYesterday,
			&score.CPRToday,
			&score.ImpressionsToday,
			&flagsJSON,
			&score.CreatedAt,
		); err != nil {
			return nil, err
		}

		if len(componentsJSON) > 0 {
			if err := json.Unmarshal(componentsJSON, &score.Components); err != nil {
				return nil, fmt.Errorf("erro ao desserializar os componentes: %w", err)
			}
		}
		if len(flagsJSON) > 0 {
			if err := json.Unmarshal(flagsJSON, &score.Flags); err != nil {
				return nil, fmt.Errorf("erro ao desserializar as flags: %w", err)
			}
		}

		scores = append(scores, score)
	}

	return scores, rows.Err()
}
