package repository

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/vfg2006/ads-optimizer-api/infrastructure/database/postgres"
	"github.com/vfg2006/ads-optimizer-api/internal/domain"
)

type RiskRecordRepository interface {
	SaveRecords(ctx context.Context, records []*domain.RiskRecord) error
	ListByRun(ctx context.Context, runID string) ([]*domain.RiskRecord, error)
}

type riskRecordRepository struct {
	conn *postgres.Connection
}

func NewRiskRecordRepository(conn *postgres.Connection) RiskRecordRepository {
	return &riskRecordRepository{
		conn: conn,
	}
}

// SaveRecords grava em lote as predições de risco de uma execução
func (r *riskRecordRepository) SaveRecords(ctx context.Context, records []*domain.RiskRecord) error {
	if len(records) == 0 {
		return nil
	}

	query := squirrel.StatementBuilder.
		Insert("risk_records").
		Columns(
			"run_id", "account_id", "adset_id", "creative_id", "score", "level",
			"predicted_cpr", "horizon_days", "confidence", "trend",
			"recommendation", "reasons", "created_at",
		).
		PlaceholderFormat(squirrel.Dollar)

	for _, record := range records {
		query = query.Values(
			record.RunID,
			record.AccountID,
			record.AdSetID,
			record.CreativeID,
			record.Score,
			record.Level,
			record.PredictedCPR,
			record.HorizonDays,
			record.Confidence,
			record.Trend,
			record.Recommendation,
			pq.Array(record.Reasons),
			record.CreatedAt,
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

func (r *riskRecordRepository) ListByRun(ctx context.Context, runID string) ([]*domain.RiskRecord, error) {
	sqlQuery, args, err := squirrel.
		Select("r.id, r.run_id, r.account_id, r.adset_id, r.creative_id, r.score, r.level, r.predicted_cpr, r.horizon_days, r.confidence, r.trend, r.recommendation, r.reasons, r.created_at").
		From("risk_records r").
		Where(squirrel.Eq{"r.run_id": runID}).
		OrderBy("r.score DESC").
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

	records := make([]*domain.RiskRecord, 0)

	for rows.Next() {
		record := &domain.RiskRecord{}

		if err := rows.Scan(
			&record.ID,
			&record.RunID,
			&record.AccountID,
			&record.AdSetID,
			&record.CreativeID,
			&record.Score,
			&record.Level,
			&record.PredictedCPR,
			&record.HorizonDays,
			&record.Confidence,
			&record.Trend,
			&record.Recommendation,
			pq.Array(&record.Reasons),
			&record.CreatedAt,
		); err != nil {
			return nil, err
		}

		records = append(records, record)
	}

	return records, rows.Err()
}
