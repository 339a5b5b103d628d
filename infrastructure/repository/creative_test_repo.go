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

type CreativeTestRepository interface {
	SaveTest(ctx context.Context, test *domain.CreativeTest) error
	GetTestByID(ctx context.Context, testID string) (*domain.CreativeTest, error)
	ListTestsByStatus(ctx context.Context, statuses []domain.CreativeTestStatus) ([]*domain.CreativeTest, error)
	ListTestsByAccount(ctx context.Context, accountID string) ([]*domain.CreativeTest, error)
	HasActiveTest(ctx context.Context, accountID, creativeID string) (bool, error)

	UpdateStatus(ctx context.Context, testID string, from, to domain.CreativeTestStatus) (bool, error)
	UpdateMetrics(ctx context.Context, testID string, metrics domain.MetricsWindow) error
	SetEvaluation(ctx context.Context, testID string, evaluation *domain.TestEvaluation) error
	SetLaunchedEntities(ctx context.Context, testID, campaignID, adsetID, adID string) error
}

type creativeTestRepository struct {
	conn *postgres.Connection
}

func NewCreativeTestRepository(conn *postgres.Connection) CreativeTestRepository {
	return &creativeTestRepository{
		conn: conn,
	}
}

func (r *creativeTestRepository) SaveTest(ctx context.Context, test *domain.CreativeTest) error {
	metricsJSON, err := json.Marshal(test.Metrics)
	if err != nil {
		return fmt.Errorf("erro ao serializar as métricas do teste: %w", err)
	}

	sqlQuery, args, err := squirrel.StatementBuilder.
		Insert("creative_tests").
		Columns(
			"id", "account_id", "creative_id", "campaign_id", "adset_id", "ad_id",
			"status", "impression_threshold", "daily_budget_cents", "metrics", "created_at",
		).
		Values(
			test.ID,
			test.AccountID,
			test.CreativeID,
			test.CampaignID,
			test.AdSetID,
			test.AdID,
			test.Status,
			test.ImpressionThreshold,
			test.DailyBudgetCents,
			metricsJSON,
			test.CreatedAt,
		).
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

const creativeTestColumns = "t.id, t.account_id, t.creative_id, t.campaign_id, t.adset_id, t.ad_id, t.status, t.impression_threshold, t.daily_budget_cents, t.metrics, t.evaluation, t.created_at, t.completed_at"

func (r *creativeTestRepository) GetTestByID(ctx context.Context, testID string) (*domain.CreativeTest, error) {
	sqlQuery, args, err := squirrel.
		Select(creativeTestColumns).
		From("creative_tests t").
		Where(squirrel.Eq{"t.id": testID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	row := r.conn.QueryRow(ctx, sqlQuery, args...)

	test, err := deserializeCreativeTest(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	return test, nil
}

func (r *creativeTestRepository) ListTestsByStatus(ctx context.Context, statuses []domain.CreativeTestStatus) ([]*domain.CreativeTest, error) {
	return r.listTests(ctx, squirrel.Eq{"t.status": statuses})
}

func (r *creativeTestRepository) ListTestsByAccount(ctx context.Context, accountID string) ([]*domain.CreativeTest, error) {
	return r.listTests(ctx, squirrel.Eq{"t.account_id": accountID})
}

func (r *creativeTestRepository) listTests(ctx context.Context, whereClause map[string]interface{}) ([]*domain.CreativeTest, error) {
	sqlQuery, args, err := squirrel.
		Select(creativeTestColumns).
		From("creative_tests t").
		Where(whereClause).
		OrderBy("t.created_at DESC").
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

	tests := make([]*domain.CreativeTest, 0)

	for rows.Next() {
		test, err := deserializeCreativeTest(rows)
		if err != nil {
			return nil, err
		}
		tests = append(tests, test)
	}

	return tests, rows.Err()
}

// HasActiveTest indica se já existe teste pendente ou em execução para o
// criativo na conta
func (r *creativeTestRepository) HasActiveTest(ctx context.Context, accountID, creativeID string) (bool, error) {
	sqlQuery, args, err := squirrel.
		Select("COUNT(1)").
		From("creative_tests t").
		Where(squirrel.Eq{
			"t.account_id":  accountID,
			"t.creative_id": creativeID,
			"t.status":      []domain.CreativeTestStatus{domain.TestPending, domain.TestRunning},
		}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("erro ao construir a query: %w", err)
	}

	var count int
	if err := r.conn.QueryRow(ctx, sqlQuery, args...).Scan(&count); err != nil {
		return false, err
	}

	return count > 0, nil
}

// UpdateStatus aplica a transição de estado de forma atômica: o UPDATE só
// tem efeito quando o status atual ainda é o esperado. Retorna false quando
// outra transição venceu a corrida.
func (r *creativeTestRepository) UpdateStatus(ctx context.Context, testID string, from, to domain.CreativeTestStatus) (bool, error) {
	queryBuilder := squirrel.
		Update("creative_tests").
		Set("status", to).
		Where(squirrel.Eq{"id": testID, "status": from}).
		PlaceholderFormat(squirrel.Dollar)

	if to.IsTerminal() {
		queryBuilder = queryBuilder.Set("completed_at", time.Now())
	}

	sqlQuery, args, err := queryBuilder.ToSql()
	if err != nil {
		return false, fmt.Errorf("erro ao construir a query: %w", err)
	}

	result, err := r.conn.Exec(ctx, sqlQuery, args...)
	if err != nil {
		return false, err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return affected > 0, nil
}

func (r *creativeTestRepository) UpdateMetrics(ctx context.Context, testID string, metrics domain.MetricsWindow) error {
	metricsJSON, err := json.Marshal(metrics)
	if err != nil {
		return fmt.Errorf("erro ao serializar as métricas do teste: %w", err)
	}

	sqlQuery, args, err := squirrel.
		Update("creative_tests").
		Set("metrics", metricsJSON).
		Where(squirrel.Eq{"id": testID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	_, err = r.conn.Exec(ctx, sqlQuery, args...)
	return err
}

func (r *creativeTestRepository) SetEvaluation(ctx context.Context, testID string, evaluation *domain.TestEvaluation) error {
	evaluationJSON, err := json.Marshal(evaluation)
	if err != nil {
		return fmt.Errorf("erro ao serializar a avaliação do teste: %w", err)
	}

	sqlQuery, args, err := squirrel.
		Update("creative_tests").
		Set("evaluation", evaluationJSON).
		Where(squirrel.Eq{"id": testID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	_, err = r.conn.Exec(ctx, sqlQuery, args...)
	return err
}

// SetLaunchedEntities registra os IDs das entidades criadas na plataforma
func (r *creativeTestRepository) SetLaunchedEntities(ctx context.Context, testID, campaignID, adsetID, adID string) error {
	sqlQuery, args, err := squirrel.
		Update("creative_tests").
		Set("campaign_id", campaignID).
		Set("adset_id", adsetID).
		Set("ad_id", adID).
		Where(squirrel.Eq{"id": testID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	_, err = r.conn.Exec(ctx, sqlQuery, args...)
	return err
}

func deserializeCreativeTest(row rowScanner) (*domain.CreativeTest, error) {
	test := &domain.CreativeTest{}
	var metricsJSON, evaluationJSON []byte
	var completedAt sql.NullTime

	if err := row.Scan(
		&test.ID,
		&test.AccountID,
		&test.CreativeID,
		&test.CampaignID,
		&test.AdSetID,
		&test.AdID,
		&test.Status,
		&test.ImpressionThreshold,
		&test.DailyBudgetCents,
		&metricsJSON,
		&evaluationJSON,
		&test.CreatedAt,
		&completedAt,
	); err != nil {
		return nil, err
	}

	if len(metricsJSON) > 0 {
		if err := json.Unmarshal(metricsJSON, &test.Metrics); err != nil {
			return nil, fmt.Errorf("erro ao desserializar as métricas: %w", err)
		}
	}
	if len(evaluationJSON) > 0 {
		test.Evaluation = &domain.TestEvaluation{}
		if err := json.Unmarshal(evaluationJSON, test.Evaluation); err != nil {
			return nil, fmt.Errorf("erro ao desserializar a avaliação: %w", err)
		}
	}
	if completedAt.Valid {
		test.CompletedAt = &completedAt.Time
	}

	return test, nil
}
