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

type AdSetSnapshotRepository interface {
	SaveSnapshots(ctx context.Context, snapshots []*domain.AdSetSnapshot) error
	ListByRun(ctx context.Context, runID string) ([]*domain.AdSetSnapshot, error)
}

type adsetSnapshotRepository struct {
	conn *postgres.Connection
}

func NewAdSetSnapshotRepository(conn *postgres.Connection) AdSetSnapshotRepository {
	return &adsetSnapshotRepository{
		conn: conn,
	}
}

// SaveSnapshots grava em lote as fotografias de adsets de uma execução
func (r *adsetSnapshotRepository) SaveSnapshots(ctx context.Context, snapshots []*domain.AdSetSnapshot) error {
	if len(snapshots) == 0 {
		return nil
	}

	query := squirrel.StatementBuilder.
		Insert("adset_snapshots").
		Columns("run_id", "account_id", "adset_id", "payload", "flags", "created_at").
		PlaceholderFormat(squirrel.Dollar)

	for _, snapshot := range snapshots {
		payloadJSON, err := json.Marshal(snapshot.Payload)
		if err != nil {
			return fmt.Errorf("erro ao serializar o snapshot do adset %s: %w", snapshot.AdSetID, err)
		}

		flagsJSON, err := json.Marshal(snapshot.Flags)
		if err != nil {
			return fmt.Errorf("erro ao serializar as flags do adset %s: %w", snapshot.AdSetID, err)
		}

		query = query.Values(
			snapshot.RunID,
			snapshot.AccountID,
			snapshot.AdSetID,
			payloadJSON,
			flagsJSON,
			snapshot.CreatedAt,
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

func (r *adsetSnapshotRepository) ListByRun(ctx context.Context, runID string) ([]*domain.AdSetSnapshot, error) {
	sqlQuery, args, err := squirrel.
		Select("s.id, s.run_id, s.account_id, s.adset_id, s.payload, s.flags, s.created_at").
		From("adset_snapshots s").
		Where(squirrel.Eq{"s.run_id": runID}).
		OrderBy("s.adset_id ASC").
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

	snapshots := make([]*domain.AdSetSnapshot, 0)

	for rows.Next() {
		snapshot := &domain.AdSetSnapshot{}
		var payloadJSON, flagsJSON []byte

		if err := rows.Scan(
			&snapshot.ID,
			&snapshot.RunID,
			&snapshot.AccountID,
			&snapshot.AdSetID,
			&payloadJSON,
			&flagsJSON,
			&snapshot.CreatedAt,
		); err != nil {
			return nil, err
		}

		if len(payloadJSON) > 0 {
			snapshot.Payload = &domain.AdSet{}
			if err := json.Unmarshal(payloadJSON, snapshot.Payload); err != nil {
				return nil, fmt.Errorf("erro ao desserializar o snapshot: %w", err)
			}
		}
		if len(flagsJSON) > 0 {
			if err := json.Unmarshal(flagsJSON, &snapshot.Flags); err != nil {
				return nil, fmt.Errorf("erro ao desserializar as flags: %w", err)
			}
		}

		snapshots = append(snapshots, snapshot)
	}

	return snapshots, rows.Err()
}
