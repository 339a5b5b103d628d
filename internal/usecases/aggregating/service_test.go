package aggregating

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	metamocks "github.com/vfg2006/ads-optimizer-api/infrastructure/integrator/meta/mocks"
	repomocks "github.com/vfg2006/ads-optimizer-api/infrastructure/repository/mocks"
	"github.com/vfg2006/ads-optimizer-api/internal/config"
	"github.com/vfg2006/ads-optimizer-api/internal/domain"
	"github.com/vfg2006/ads-optimizer-api/pkg/log"
)

func newTestConfig() *config.Config {
	cfg := &config.Config{}
	cfg.OptimizerSync.MaxConcurrentFetch = 2
	return cfg
}

func TestCollectAccountDataset(t *testing.T) {
	log.SetupTestLogger()

	now := time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC)
	account := &domain.AdAccount{ID: "acc-1", ExternalID: "act_123"}

	t.Run("coleta métricas de todos os adsets e deriva as flags", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		metaMock := metamocks.NewMockIntegrator(ctrl)
		planMock := repomocks.NewMockActionPlanRepository(ctrl)
		snapshotMock := repomocks.NewMockAdSetSnapshotRepository(ctrl)

		adsets := []*domain.AdSet{
			{ID: "as-1", CampaignID: "cp-1", CreatedTime: now.AddDate(0, 0, -10)},
			{ID: "as-2", CampaignID: "cp-1", CreatedTime: now.Add(-12 * time.Hour)},
		}

		metaMock.EXPECT().ListAdSets(gomock.Any(), "act_123").Return(adsets, nil)
		planMock.EXPECT().ListBudgetChanges(gomock.Any(), "acc-1", gomock.Any()).Return([]domain.BudgetChange{
			{AdSetID: "as-1", Direction: domain.BudgetDecrease, OccurredAt: now.Add(-20 * time.Hour)},
		}, nil)

		metrics := domain.AdSetMetrics{
			Yesterday: domain.MetricsWindow{Impressions: 1000, Spend: 20, Results: 5},
		}
		metaMock.EXPECT().FetchAdSetMetrics(gomock.Any(), "as-1", now).Return(metrics, nil)
		metaMock.EXPECT().FetchAdSetMetrics(gomock.Any(), "as-2", now).Return(metrics, nil)

		snapshotMock.EXPECT().SaveSnapshots(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, snapshots []*domain.AdSetSnapshot) error {
				assert.Len(t, snapshots, 2)
				for _, snap := range snapshots {
					assert.Equal(t, "run-1", snap.RunID)
					assert.Equal(t, "acc-1", snap.AccountID)
				}
				return nil
			},
		)

		service := NewService(newTestConfig(), metaMock, planMock, snapshotMock)

		dataset, err := service.CollectAccountDataset(context.Background(), account, "run-1", now)
		require.NoError(t, err)

		assert.Len(t, dataset.AdSets, 2)
		assert.Empty(t, dataset.Failures)

		// as-1 teve redução ontem; as-2 tem menos de 48h
		assert.True(t, dataset.Flags["as-1"].WasDecreasedYesterday)
		assert.Equal(t, 1, dataset.Flags["as-1"].ConsecutiveDecreases)
		assert.False(t, dataset.Flags["as-1"].IsNew)
		assert.True(t, dataset.Flags["as-2"].IsNew)
	})

	t.Run("isola a falha de um adset sem abortar a coleta", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		metaMock := metamocks.NewMockIntegrator(ctrl)
		planMock := repomocks.NewMockActionPlanRepository(ctrl)
		snapshotMock := repomocks.NewMockAdSetSnapshotRepository(ctrl)

		adsets := []*domain.AdSet{
			{ID: "as-1", CampaignID: "cp-1"},
			{ID: "as-2", CampaignID: "cp-1"},
		}

		metaMock.EXPECT().ListAdSets(gomock.Any(), "act_123").Return(adsets, nil)
		planMock.EXPECT().ListBudgetChanges(gomock.Any(), "acc-1", gomock.Any()).Return(nil, nil)

		metaMock.EXPECT().FetchAdSetMetrics(gomock.Any(), "as-1", now).
			Return(domain.AdSetMetrics{}, domain.NewPlatformError(domain.FailureTransientNetwork, 0, "timeout"))
		metaMock.EXPECT().FetchAdSetMetrics(gomock.Any(), "as-2", now).
			Return(domain.AdSetMetrics{Yesterday: domain.MetricsWindow{Impressions: 500}}, nil)

		snapshotMock.EXPECT().SaveSnapshots(gomock.Any(), gomock.Any()).Return(nil)

		service := NewService(newTestConfig(), metaMock, planMock, snapshotMock)

		dataset, err := service.CollectAccountDataset(context.Background(), account, "run-1", now)
		require.NoError(t, err)

		require.Len(t, dataset.AdSets, 1)
		assert.Equal(t, "as-2", dataset.AdSets[0].ID)

		require.Len(t, dataset.Failures, 1)
		assert.Equal(t, "as-1", dataset.Failures[0].AdSetID)
		assert.Contains(t, dataset.Failures[0].Reason, "timeout")
	})

	t.Run("retorna erro quando a listagem de adsets falha", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		metaMock := metamocks.NewMockIntegrator(ctrl)
		planMock := repomocks.NewMockActionPlanRepository(ctrl)
		snapshotMock := repomocks.NewMockAdSetSnapshotRepository(ctrl)

		metaMock.EXPECT().ListAdSets(gomock.Any(), "act_123").
			Return(nil, domain.NewPlatformError(domain.FailureExpiredCredential, 190, "token expirado"))

		service := NewService(newTestConfig(), metaMock, planMock, snapshotMock)

		dataset, err := service.CollectAccountDataset(context.Background(), account, "run-1", now)
		require.Error(t, err)
		assert.Nil(t, dataset)
		assert.Equal(t, domain.FailureExpiredCredential, domain.ClassifyError(err))
	})
}

func TestDeriveFlags(t *testing.T) {
	now := time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC)

	t.Run("conta reduções consecutivas a partir de ontem", func(t *testing.T) {
		adset := &domain.AdSet{ID: "as-1", CreatedTime: now.AddDate(0, 0, -30)}
		changes := []domain.BudgetChange{
			{AdSetID: "as-1", Direction: domain.BudgetDecrease, OccurredAt: now.AddDate(0, 0, -1)},
			{AdSetID: "as-1", Direction: domain.BudgetDecrease, OccurredAt: now.AddDate(0, 0, -2)},
		}

		flags := deriveFlags(adset, changes, now)

		assert.True(t, flags.WasDecreasedYesterday)
		assert.Equal(t, 2, flags.ConsecutiveDecreases)
	})

	t.Run("sequência é interrompida por um dia sem redução", func(t *testing.T) {
		adset := &domain.AdSet{ID: "as-1", CreatedTime: now.AddDate(0, 0, -30)}
		changes := []domain.BudgetChange{
			{AdSetID: "as-1", Direction: domain.BudgetDecrease, OccurredAt: now.AddDate(0, 0, -1)},
			{AdSetID: "as-1", Direction: domain.BudgetDecrease, OccurredAt: now.AddDate(0, 0, -3)},
		}

		flags := deriveFlags(adset, changes, now)

		assert.Equal(t, 1, flags.ConsecutiveDecreases)
	})

	t.Run("aumento de ontem liga a flag de cooldown de escala", func(t *testing.T) {
		adset := &domain.AdSet{ID: "as-1", CreatedTime: now.AddDate(0, 0, -30)}
		changes := []domain.BudgetChange{
			{AdSetID: "as-1", Direction: domain.BudgetIncrease, OccurredAt: now.AddDate(0, 0, -1)},
		}

		flags := deriveFlags(adset, changes, now)

		assert.True(t, flags.WasIncreasedYesterday)
		assert.False(t, flags.WasDecreasedYesterday)
		assert.Zero(t, flags.ConsecutiveDecreases)
	})
}
