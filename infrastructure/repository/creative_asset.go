package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/ads-optimizer-api/infrastructure/database/postgres"
	"github.com/vfg2006/ads-optimizer-api/internal/domain"
)

type CreativeAssetRepository interface {
	ListAssets(ctx context.Context, accountID string, onlyReady bool) ([]*domain.CreativeAsset, error)
	GetAssetByID(ctx context.Context, assetID string) (*domain.CreativeAsset, error)
}

type creativeAssetRepository struct {
	conn *postgres.Connection
}

func NewCreativeAssetRepository(conn *postgres.Connection) CreativeAssetRepository {
	return &creativeAssetRepository{
		conn: conn,
	}
}

const creativeAssetColumns = "c.id, c.account_id, c.name, c.ready, c.priority, c.refs_by_objective"

// ListAssets lista o catálogo de criativos da conta, priorizados
func (r *creativeAssetRepository) ListAssets(ctx context.Context, accountID string, onlyReady bool) ([]*domain.CreativeAsset, error) {
	queryBuilder := squirrel.
		Select(creativeAssetColumns).
		From("creative_assets c").
		Where(squirrel.Eq{"c.account_id": accountID}).
		OrderBy("c.priority DESC, c.name ASC").
		PlaceholderFormat(squirrel.Dollar)

	if onlyReady {
		queryBuilder = queryBuilder.Where(squirrel.Eq{"c.ready": true})
	}

	sqlQuery, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Query(ctx, sqlQuery, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	assets := make([]*domain.CreativeAsset, 0)

	for rows.Next() {
		asset, err := deserializeCreativeAsset(rows)
		if err != nil {
			return nil, err
		}
		assets = append(assets, asset)
	}

	return assets, rows.Err()
}

func (r *creativeAssetRepository) GetAssetByID(ctx context.Context, assetID string) (*domain.CreativeAsset, error) {
	sqlQuery, args, err := squirrel.
		Select(creativeAssetColumns).
		From("creative_assets c").
		Where(squirrel.Eq{"c.id": assetID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	row := r.conn.QueryRow(ctx, sqlQuery, args...)

	asset, err := deserializeCreativeAsset(row)
	if err != nil {
		return nil, err
	}

	return asset, nil
}

func deserializeCreativeAsset(row rowScanner) (*domain.CreativeAsset, error) {
	asset := &domain.CreativeAsset{}
	var refsJSON []byte

	if err := row.Scan(
		&asset.ID,
		&asset.AccountID,
		&asset.Name,
		&asset.Ready,
		&asset.Priority,
		&refsJSON,
	); err != nil {
		return nil, err
	}

	if len(refsJSON) > 0 {
		if err := json.Unmarshal(refsJSON, &asset.RefsByObjective); err != nil {
			return nil, fmt.Errorf("erro ao desserializar as referências do criativo: %w", err)
		}
	}

	return asset, nil
}
