package creativetesting

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	evaluatormocks "github.com/vfg2006/ads-optimizer-api/infrastructure/integrator/evaluator/mocks"
	"github.com/vfg2006/ads-optimizer-api/infrastructure/integrator/meta"
	metamocks "github.com/vfg2006/ads-optimizer-api/infrastructure/integrator/meta/mocks"
	repomocks "github.com/vfg2006/ads-optimizer-api/infrastructure/repository/mocks"
	"github.com/vfg2006/ads-optimizer-api/internal/config"
	"github.com/vfg2006/ads-optimizer-api/internal/domain"
	"github.com/vfg2006/ads-optimizer-api/pkg/log"
)

type testFixture struct {
	metaMock      *metamocks.MockIntegrator
	evaluatorMock *evaluatormocks.MockEvaluatorIntegrator
	testMock      *repomocks.MockCreativeTestRepository
	assetMock     *repomocks.MockCreativeAssetRepository
	accountMock   *repomocks.MockAccountRepository
	service       CreativeTester
}

func newTestFixture(t *testing.T) *testFixture {
	t.Helper()
	log.SetupTestLogger()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	cfg := &config.Config{}
	cfg.CreativeTestSync.ImpressionThreshold = 1000
	cfg.CreativeTestSync.DailyBudgetCents = 1000

	f := &testFixture{
		metaMock:      metamocks.NewMockIntegrator(ctrl),
		evaluatorMock: evaluatormocks.NewMockEvaluatorIntegrator(ctrl),
		testMock:      repomocks.NewMockCreativeTestRepository(ctrl),
		assetMock:     repomocks.NewMockCreativeAssetRepository(ctrl),
		accountMock:   repomocks.NewMockAccountRepository(ctrl),
	}
	f.service = NewService(cfg, f.metaMock, f.evaluatorMock, f.testMock, f.assetMock, f.accountMock)

	return f
}

func readyAsset() *domain.CreativeAsset {
	return &domain.CreativeAsset{
		ID:              "asset-1",
		AccountID:       "acc-1",
		Name:            "Video depoimento",
		Ready:           true,
		RefsByObjective: map[string]string{"OUTCOME_LEADS": "cr-77"},
	}
}

func TestStartTest(t *testing.T) {
	ctx := context.Background()

	t.Run("lança o teste e transiciona para running", func(t *testing.T) {
		f := newTestFixture(t)

		f.accountMock.EXPECT().GetAccountByID(ctx, "acc-1").
			Return(&domain.AdAccount{ID: "acc-1", ExternalID: "act_123"}, nil)
		f.assetMock.EXPECT().GetAssetByID(ctx, "asset-1").Return(readyAsset(), nil)
		f.testMock.EXPECT().HasActiveTest(ctx, "acc-1", "asset-1").Return(false, nil)

		f.testMock.EXPECT().SaveTest(ctx, gomock.Any()).DoAndReturn(
			func(_ context.Context, test *domain.CreativeTest) error {
				assert.Equal(t, domain.TestPending, test.Status)
				assert.Equal(t, 1000, test.ImpressionThreshold)
				assert.Equal(t, int64(1000), test.DailyBudgetCents)
				return nil
			},
		)

		f.metaMock.EXPECT().LaunchCreativeTest(
			ctx, "act_123", "Teste de criativo - Video depoimento",
			[]meta.AdCreative{{Name: "Teste de criativo - Video depoimento", Ref: "cr-77"}},
			int64(1000),
		).Return(&meta.LaunchResult{CampaignID: "cp-9", AdSetID: "as-9", AdIDs: []string{"ad-9"}}, nil)

		f.testMock.EXPECT().SetLaunchedEntities(ctx, gomock.Any(), "cp-9", "as-9", "ad-9").Return(nil)
		f.metaMock.EXPECT().ActivateEntity(ctx, "cp-9").Return(nil)
		f.testMock.EXPECT().UpdateStatus(ctx, gomock.Any(), domain.TestPending, domain.TestRunning).Return(true, nil)

		test, err := f.service.StartTest(ctx, "acc-1", "asset-1")
		require.NoError(t, err)

		assert.Equal(t, domain.TestRunning, test.Status)
		assert.Equal(t, "as-9", test.AdSetID)
	})

	t.Run("falha na ativação da campanha cancela o teste", func(t *testing.T) {
		f := newTestFixture(t)

		f.accountMock.EXPECT().GetAccountByID(ctx, "acc-1").
			Return(&domain.AdAccount{ID: "acc-1", ExternalID: "act_123"}, nil)
		f.assetMock.EXPECT().GetAssetByID(ctx, "asset-1").Return(readyAsset(), nil)
		f.testMock.EXPECT().HasActiveTest(ctx, "acc-1", "asset-1").Return(false, nil)
		f.testMock.EXPECT().SaveTest(ctx, gomock.Any()).Return(nil)

		f.metaMock.EXPECT().LaunchCreativeTest(ctx, "act_123", gomock.Any(), gomock.Any(), int64(1000)).
			Return(&meta.LaunchResult{CampaignID: "cp-9", AdSetID: "as-9", AdIDs: []string{"ad-9"}}, nil)
		f.testMock.EXPECT().SetLaunchedEntities(ctx, gomock.Any(), "cp-9", "as-9", "ad-9").Return(nil)

		f.metaMock.EXPECT().ActivateEntity(ctx, "cp-9").
			Return(domain.NewPlatformError(domain.FailurePermissionDenied, 200, "sem permissão"))
		f.testMock.EXPECT().UpdateStatus(ctx, gomock.Any(), domain.TestPending, domain.TestCancelled).Return(true, nil)

		_, err := f.service.StartTest(ctx, "acc-1", "asset-1")
		require.Error(t, err)
	})

	t.Run("criativo com teste ativo não pode iniciar outro", func(t *testing.T) {
		f := newTestFixture(t)

		f.accountMock.EXPECT().GetAccountByID(ctx, "acc-1").
			Return(&domain.AdAccount{ID: "acc-1", ExternalID: "act_123"}, nil)
		f.assetMock.EXPECT().GetAssetByID(ctx, "asset-1").Return(readyAsset(), nil)
		f.testMock.EXPECT().HasActiveTest(ctx, "acc-1", "asset-1").Return(true, nil)

		_, err := f.service.StartTest(ctx, "acc-1", "asset-1")
		assert.ErrorIs(t, err, ErrActiveTestExists)
	})

	t.Run("falha no lançamento cancela o teste recém-criado", func(t *testing.T) {
		f := newTestFixture(t)

		f.accountMock.EXPECT().GetAccountByID(ctx, "acc-1").
			Return(&domain.AdAccount{ID: "acc-1", ExternalID: "act_123"}, nil)
		f.assetMock.EXPECT().GetAssetByID(ctx, "asset-1").Return(readyAsset(), nil)
		f.testMock.EXPECT().HasActiveTest(ctx, "acc-1", "asset-1").Return(false, nil)
		f.testMock.EXPECT().SaveTest(ctx, gomock.Any()).Return(nil)

		platformErr := domain.NewPlatformError(domain.FailurePermissionDenied, 200, "sem permissão")
		f.metaMock.EXPECT().LaunchCreativeTest(ctx, "act_123", gomock.Any(), gomock.Any(), int64(1000)).
			Return(nil, platformErr)

		f.testMock.EXPECT().UpdateStatus(ctx, gomock.Any(), domain.TestPending, domain.TestCancelled).Return(true, nil)

		_, err := f.service.StartTest(ctx, "acc-1", "asset-1")
		require.Error(t, err)
		assert.Equal(t, domain.FailurePermissionDenied, domain.ClassifyError(err))
	})

	t.Run("asset sem referência para o objetivo é rejeitado", func(t *testing.T) {
		f := newTestFixture(t)

		asset := readyAsset()
		asset.RefsByObjective = map[string]string{"OUTCOME_SALES": "cr-88"}

		f.accountMock.EXPECT().GetAccountByID(ctx, "acc-1").
			Return(&domain.AdAccount{ID: "acc-1", ExternalID: "act_123"}, nil)
		f.assetMock.EXPECT().GetAssetByID(ctx, "asset-1").Return(asset, nil)

		_, err := f.service.StartTest(ctx, "acc-1", "asset-1")
		assert.ErrorIs(t, err, ErrAssetWithoutRef)
	})
}

func TestCheckRunningTests(t *testing.T) {
	ctx := context.Background()

	runningTest := func() *domain.CreativeTest {
		return &domain.CreativeTest{
			ID:                  "test-1",
			AccountID:           "acc-1",
			CreativeID:          "asset-1",
			CampaignID:          "cp-9",
			AdSetID:             "as-9",
			Status:              domain.TestRunning,
			ImpressionThreshold: 1000,
		}
	}

	t.Run("teste abaixo do limiar só atualiza as métricas", func(t *testing.T) {
		f := newTestFixture(t)

		f.testMock.EXPECT().ListTestsByStatus(ctx, []domain.CreativeTestStatus{domain.TestRunning}).
			Return([]*domain.CreativeTest{runningTest()}, nil)

		metrics := domain.MetricsWindow{Impressions: 400, Spend: 5}
		f.metaMock.EXPECT().FetchLifetimeMetrics(ctx, "as-9").Return(metrics, nil)
		f.testMock.EXPECT().UpdateMetrics(ctx, "test-1", metrics).Return(nil)

		require.NoError(t, f.service.CheckRunningTests(ctx))
	})

	t.Run("limiar atingido conclui com pausa e avaliação", func(t *testing.T) {
		f := newTestFixture(t)

		f.testMock.EXPECT().ListTestsByStatus(ctx, gomock.Any()).
			Return([]*domain.CreativeTest{runningTest()}, nil)

		metrics := domain.MetricsWindow{Impressions: 1500, Spend: 12, Clicks: 40, Results: 4}
		f.metaMock.EXPECT().FetchLifetimeMetrics(ctx, "as-9").Return(metrics, nil)
		f.testMock.EXPECT().UpdateMetrics(ctx, "test-1", metrics).Return(nil)

		f.testMock.EXPECT().UpdateStatus(ctx, "test-1", domain.TestRunning, domain.TestCompleted).Return(true, nil)
		f.metaMock.EXPECT().PauseEntity(ctx, "cp-9").Return(nil)

		evaluation := &domain.TestEvaluation{Score: 8.2, Verdict: "promote", Recommendation: "usar em campanha principal"}
		f.evaluatorMock.EXPECT().Evaluate(ctx, gomock.Any()).Return(evaluation, nil)
		f.testMock.EXPECT().SetEvaluation(ctx, "test-1", evaluation).Return(nil)

		require.NoError(t, f.service.CheckRunningTests(ctx))
	})

	t.Run("pausa e avaliação com falha não revertem a conclusão", func(t *testing.T) {
		f := newTestFixture(t)

		f.testMock.EXPECT().ListTestsByStatus(ctx, gomock.Any()).
			Return([]*domain.CreativeTest{runningTest()}, nil)

		metrics := domain.MetricsWindow{Impressions: 1500, Spend: 12}
		f.metaMock.EXPECT().FetchLifetimeMetrics(ctx, "as-9").Return(metrics, nil)
		f.testMock.EXPECT().UpdateMetrics(ctx, "test-1", metrics).Return(nil)

		f.testMock.EXPECT().UpdateStatus(ctx, "test-1", domain.TestRunning, domain.TestCompleted).Return(true, nil)
		f.metaMock.EXPECT().PauseEntity(ctx, "cp-9").
			Return(domain.NewPlatformError(domain.FailureTransientNetwork, 0, "timeout"))
		f.evaluatorMock.EXPECT().Evaluate(ctx, gomock.Any()).Return(nil, errors.New("avaliador indisponível"))

		require.NoError(t, f.service.CheckRunningTests(ctx))
	})

	t.Run("transição perdida não dispara pausa nem avaliação", func(t *testing.T) {
		f := newTestFixture(t)

		f.testMock.EXPECT().ListTestsByStatus(ctx, gomock.Any()).
			Return([]*domain.CreativeTest{runningTest()}, nil)

		metrics := domain.MetricsWindow{Impressions: 1500, Spend: 12}
		f.metaMock.EXPECT().FetchLifetimeMetrics(ctx, "as-9").Return(metrics, nil)
		f.testMock.EXPECT().UpdateMetrics(ctx, "test-1", metrics).Return(nil)

		// Outra verificação concluiu o teste primeiro
		f.testMock.EXPECT().UpdateStatus(ctx, "test-1", domain.TestRunning, domain.TestCompleted).Return(false, nil)

		require.NoError(t, f.service.CheckRunningTests(ctx))
	})

	t.Run("erro irrecuperável na coleta marca o teste como falho", func(t *testing.T) {
		f := newTestFixture(t)

		f.testMock.EXPECT().ListTestsByStatus(ctx, gomock.Any()).
			Return([]*domain.CreativeTest{runningTest()}, nil)

		// Entidade removida ou permissão perdida: reverificar nunca resolve
		f.metaMock.EXPECT().FetchLifetimeMetrics(ctx, "as-9").
			Return(domain.MetricsWindow{}, domain.NewPlatformError(domain.FailurePermissionDenied, 200, "sem permissão"))

		f.testMock.EXPECT().UpdateStatus(ctx, "test-1", domain.TestRunning, domain.TestFailed).Return(true, nil)
		f.metaMock.EXPECT().PauseEntity(ctx, "cp-9").Return(nil)

		require.NoError(t, f.service.CheckRunningTests(ctx))
	})

	t.Run("falha de coleta de um teste não interrompe os demais", func(t *testing.T) {
		f := newTestFixture(t)

		second := runningTest()
		second.ID = "test-2"
		second.AdSetID = "as-10"

		f.testMock.EXPECT().ListTestsByStatus(ctx, gomock.Any()).
			Return([]*domain.CreativeTest{runningTest(), second}, nil)

		f.metaMock.EXPECT().FetchLifetimeMetrics(ctx, "as-9").
			Return(domain.MetricsWindow{}, domain.NewPlatformError(domain.FailureRateLimited, 17, "limite"))

		metrics := domain.MetricsWindow{Impressions: 100}
		f.metaMock.EXPECT().FetchLifetimeMetrics(ctx, "as-10").Return(metrics, nil)
		f.testMock.EXPECT().UpdateMetrics(ctx, "test-2", metrics).Return(nil)

		require.NoError(t, f.service.CheckRunningTests(ctx))
	})
}

func TestCancelTest(t *testing.T) {
	ctx := context.Background()

	t.Run("cancela um teste em andamento e pausa a campanha", func(t *testing.T) {
		f := newTestFixture(t)

		f.testMock.EXPECT().GetTestByID(ctx, "test-1").Return(&domain.CreativeTest{
			ID:         "test-1",
			CampaignID: "cp-9",
			Status:     domain.TestRunning,
		}, nil)
		f.testMock.EXPECT().UpdateStatus(ctx, "test-1", domain.TestRunning, domain.TestCancelled).Return(true, nil)
		f.metaMock.EXPECT().PauseEntity(ctx, "cp-9").Return(nil)

		test, err := f.service.CancelTest(ctx, "test-1")
		require.NoError(t, err)
		assert.Equal(t, domain.TestCancelled, test.Status)
	})

	t.Run("teste terminal não pode ser cancelado", func(t *testing.T) {
		f := newTestFixture(t)

		f.testMock.EXPECT().GetTestByID(ctx, "test-1").Return(&domain.CreativeTest{
			ID:     "test-1",
			Status: domain.TestCompleted,
		}, nil)

		_, err := f.service.CancelTest(ctx, "test-1")
		assert.ErrorIs(t, err, ErrTestAlreadyDone)
	})

	t.Run("teste inexistente retorna erro", func(t *testing.T) {
		f := newTestFixture(t)

		f.testMock.EXPECT().GetTestByID(ctx, "test-404").Return(nil, nil)

		_, err := f.service.CancelTest(ctx, "test-404")
		assert.ErrorIs(t, err, ErrTestNotFound)
	})
}
