package risking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	metamocks "github.com/vfg2006/ads-optimizer-api/infrastructure/integrator/meta/mocks"
	repomocks "github.com/vfg2006/ads-optimizer-api/infrastructure/repository/mocks"
	"github.com/vfg2006/ads-optimizer-api/internal/domain"
	"github.com/vfg2006/ads-optimizer-api/pkg/log"
)

func riskConfig() domain.ScoringConfig {
	return domain.ScoringConfig{
		TargetCPR:                 4.0,
		RiskLowMax:                25,
		RiskMediumMax:             50,
		RiskHighMax:               75,
		MinSpendForConfidence:     50.0,
		ProjectionHorizonDays:     3,
		FatigueFrequencyThreshold: 3.0,
		FatigueCTRDeclinePct:      20.0,
	}
}

func adsetWith(id string, last3d, last7d domain.MetricsWindow) *domain.AdSet {
	return &domain.AdSet{
		ID:         id,
		CampaignID: "cp-1",
		Status:     domain.AdSetStatusActive,
		Metrics:    domain.AdSetMetrics{Last3d: last3d, Last7d: last7d},
	}
}

func TestComputeRisk(t *testing.T) {
	cfg := riskConfig()

	t.Run("adset saudável fica em risco baixo com recomendação de escala", func(t *testing.T) {
		adset := adsetWith("as-1",
			domain.MetricsWindow{Impressions: 9000, Spend: 60, Results: 20, CostPerResult: 3.0},
			domain.MetricsWindow{Impressions: 20000, Spend: 140, Results: 45, CostPerResult: 3.1},
		)
		adset.Metrics.Yesterday = domain.MetricsWindow{Impressions: 3000, Spend: 20, Results: 7, CostPerResult: 2.9}

		record := ComputeRisk(adset, cfg)

		assert.Equal(t, domain.RiskLow, record.Level)
		assert.Equal(t, domain.RecommendScale, record.Recommendation)
		assert.Equal(t, domain.ConfidenceHigh, record.Confidence)
		assert.Equal(t, domain.TrendStable, record.Trend)
	})

	t.Run("gasto sem resultado satura desvio e volume", func(t *testing.T) {
		adset := adsetWith("as-2",
			domain.MetricsWindow{Impressions: 5000, Spend: 30, Results: 0},
			domain.MetricsWindow{Impressions: 8000, Spend: 40, Results: 2, CostPerResult: 20.0},
		)

		record := ComputeRisk(adset, cfg)

		assert.GreaterOrEqual(t, record.Score, 50)
		assert.NotEmpty(t, record.Reasons)
	})

	t.Run("CPR em piora acentuada classifica tendência como declining", func(t *testing.T) {
		adset := adsetWith("as-3",
			domain.MetricsWindow{Impressions: 6000, Spend: 80, Results: 10, CostPerResult: 8.0},
			domain.MetricsWindow{Impressions: 15000, Spend: 120, Results: 24, CostPerResult: 5.0},
		)

		record := ComputeRisk(adset, cfg)

		assert.Equal(t, domain.TrendDeclining, record.Trend)
		assert.Greater(t, record.PredictedCPR, 8.0)
		assert.Equal(t, 3, record.HorizonDays)
	})

	t.Run("score fica sempre no intervalo 0-100", func(t *testing.T) {
		quiet := adsetWith("as-4", domain.MetricsWindow{}, domain.MetricsWindow{})

		record := ComputeRisk(quiet, cfg)

		assert.GreaterOrEqual(t, record.Score, 0)
		assert.LessOrEqual(t, record.Score, 100)
	})
}

func TestDetectFatigue(t *testing.T) {
	cfg := riskConfig()

	t.Run("frequência alta com CTR em queda é urgente", func(t *testing.T) {
		adset := adsetWith("as-1",
			domain.MetricsWindow{Impressions: 5000, Spend: 40, CTR: 0.7},
			domain.MetricsWindow{Impressions: 12000, Spend: 90, CTR: 1.2, Frequency: 3.5},
		)

		alert := DetectFatigue(adset, cfg)

		require.NotNil(t, alert)
		assert.True(t, alert.Urgent)
		assert.InDelta(t, 41.67, alert.CTRDeclinePct, 0.01)
	})

	t.Run("apenas frequência alta gera alerta não urgente", func(t *testing.T) {
		adset := adsetWith("as-2",
			domain.MetricsWindow{Impressions: 5000, Spend: 40, CTR: 1.2},
			domain.MetricsWindow{Impressions: 12000, Spend: 90, CTR: 1.2, Frequency: 3.2},
		)

		alert := DetectFatigue(adset, cfg)

		require.NotNil(t, alert)
		assert.False(t, alert.Urgent)
	})

	t.Run("sem sintomas não gera alerta", func(t *testing.T) {
		adset := adsetWith("as-3",
			domain.MetricsWindow{Impressions: 5000, Spend: 40, CTR: 1.3},
			domain.MetricsWindow{Impressions: 12000, Spend: 90, CTR: 1.2, Frequency: 1.8},
		)

		assert.Nil(t, DetectFatigue(adset, cfg))
	})
}

func TestDetectBudgetEaters(t *testing.T) {
	cfg := riskConfig()

	t.Run("classifica as três prioridades", func(t *testing.T) {
		adsets := []*domain.AdSet{
			adsetWith("critical", domain.MetricsWindow{Impressions: 4000, Spend: 130, Results: 10, CostPerResult: 13.0}, domain.MetricsWindow{}),
			adsetWith("high", domain.MetricsWindow{Impressions: 3000, Spend: 25, Results: 0}, domain.MetricsWindow{}),
			adsetWith("ok", domain.MetricsWindow{Impressions: 3000, Spend: 12, Results: 4, CostPerResult: 3.0}, domain.MetricsWindow{}),
		}

		eaters := DetectBudgetEaters(adsets, cfg)

		require.Len(t, eaters, 2)

		byID := make(map[string]domain.BudgetEater)
		for _, eater := range eaters {
			byID[eater.AdSetID] = eater
		}

		assert.Equal(t, domain.EaterCritical, byID["critical"].Priority)
		assert.Equal(t, domain.EaterHigh, byID["high"].Priority)
	})

	t.Run("marca o último adset ativo da campanha", func(t *testing.T) {
		lonely := adsetWith("lonely", domain.MetricsWindow{Impressions: 4000, Spend: 130, Results: 10, CostPerResult: 13.0}, domain.MetricsWindow{})
		paused := adsetWith("paused", domain.MetricsWindow{Impressions: 1000, Spend: 5, Results: 2, CostPerResult: 2.5}, domain.MetricsWindow{})
		paused.Status = domain.AdSetStatusPaused

		eaters := DetectBudgetEaters([]*domain.AdSet{lonely, paused}, cfg)

		require.Len(t, eaters, 1)
		assert.True(t, eaters[0].LastInCampaign)
	})
}

func TestAssessAccount(t *testing.T) {
	log.SetupTestLogger()

	now := time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC)
	account := &domain.AdAccount{ID: "acc-1", ExternalID: "act_123"}

	t.Run("persiste os registros e cruza o catálogo de criativos", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		metaMock := metamocks.NewMockIntegrator(ctrl)
		riskMock := repomocks.NewMockRiskRecordRepository(ctrl)
		assetMock := repomocks.NewMockCreativeAssetRepository(ctrl)

		dataset := &domain.AccountDataset{
			AccountID: "acc-1",
			AdSets: []*domain.AdSet{
				adsetWith("as-1",
					domain.MetricsWindow{Impressions: 5000, Spend: 30, Results: 0},
					domain.MetricsWindow{Impressions: 8000, Spend: 40, Results: 2, CostPerResult: 20.0},
				),
			},
		}

		riskMock.EXPECT().SaveRecords(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, records []*domain.RiskRecord) error {
				require.Len(t, records, 1)
				assert.Equal(t, "run-1", records[0].RunID)
				assert.Equal(t, "acc-1", records[0].AccountID)
				return nil
			},
		)

		assetMock.EXPECT().ListAssets(gomock.Any(), "acc-1", true).Return([]*domain.CreativeAsset{
			{ID: "asset-used", RefsByObjective: map[string]string{"OUTCOME_LEADS": "cr-1"}},
			{ID: "asset-idle", RefsByObjective: map[string]string{"OUTCOME_LEADS": "cr-2"}},
		}, nil)
		metaMock.EXPECT().ActiveCreativeRefs(gomock.Any(), "act_123").
			Return(map[string]struct{}{"cr-1": {}}, nil)

		service := NewService(metaMock, riskMock, assetMock)

		assessment, err := service.AssessAccount(context.Background(), account, dataset, riskConfig(), "run-1", now)
		require.NoError(t, err)

		require.Len(t, assessment.UnusedAssets, 1)
		assert.Equal(t, "asset-idle", assessment.UnusedAssets[0].ID)
	})

	t.Run("falha no catálogo não derruba a análise", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		metaMock := metamocks.NewMockIntegrator(ctrl)
		riskMock := repomocks.NewMockRiskRecordRepository(ctrl)
		assetMock := repomocks.NewMockCreativeAssetRepository(ctrl)

		dataset := &domain.AccountDataset{
			AccountID: "acc-1",
			AdSets: []*domain.AdSet{
				adsetWith("as-1",
					domain.MetricsWindow{Impressions: 3000, Spend: 12, Results: 4, CostPerResult: 3.0},
					domain.MetricsWindow{Impressions: 8000, Spend: 30, Results: 10, CostPerResult: 3.0},
				),
			},
		}

		riskMock.EXPECT().SaveRecords(gomock.Any(), gomock.Any()).Return(nil)
		assetMock.EXPECT().ListAssets(gomock.Any(), "acc-1", true).Return(nil, errors.New("conexão recusada"))

		service := NewService(metaMock, riskMock, assetMock)

		assessment, err := service.AssessAccount(context.Background(), account, dataset, riskConfig(), "run-1", now)
		require.NoError(t, err)
		assert.Empty(t, assessment.UnusedAssets)
		assert.Len(t, assessment.Records, 1)
	})
}
