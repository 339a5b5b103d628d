package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/pkg/errors"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/vfg2006/ads-optimizer-api/infrastructure/cache/redis"
	repomocks "github.com/vfg2006/ads-optimizer-api/infrastructure/repository/mocks"
	"github.com/vfg2006/ads-optimizer-api/internal/config"
	"github.com/vfg2006/ads-optimizer-api/internal/domain"
	aggmocks "github.com/vfg2006/ads-optimizer-api/internal/usecases/aggregating/mocks"
	"github.com/vfg2006/ads-optimizer-api/internal/usecases/dispatching"
	dispmocks "github.com/vfg2006/ads-optimizer-api/internal/usecases/dispatching/mocks"
	planmocks "github.com/vfg2006/ads-optimizer-api/internal/usecases/planning/mocks"
	"github.com/vfg2006/ads-optimizer-api/internal/usecases/risking"
	riskmocks "github.com/vfg2006/ads-optimizer-api/internal/usecases/risking/mocks"
	scoremocks "github.com/vfg2006/ads-optimizer-api/internal/usecases/scoring/mocks"
	"github.com/vfg2006/ads-optimizer-api/pkg/log"
	"github.com/vfg2006/ads-optimizer-api/pkg/utils"
)

type optimizerSyncFixture struct {
	accountMock    *repomocks.MockAccountRepository
	runMock        *repomocks.MockOptimizerRunRepository
	aggregatorMock *aggmocks.MockAggregator
	scorerMock     *scoremocks.MockScorer
	predictorMock  *riskmocks.MockPredictor
	plannerMock    *planmocks.MockPlanner
	dispatcherMock *dispmocks.MockDispatcher
	locker         redis.RunLocker
	service        *OptimizerSyncService
}

func newOptimizerSyncFixture(t *testing.T) *optimizerSyncFixture {
	t.Helper()
	log.SetupTestLogger()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	mr := miniredis.RunT(t)
	locker := redis.NewRunLocker(goredis.NewClient(&goredis.Options{Addr: mr.Addr()}))

	cfg := &config.Config{}
	cfg.Optimizer.TargetCPR = 50
	cfg.Optimizer.GapMax = 45
	cfg.OptimizerSync.DispatchMode = string(domain.ModeLive)
	cfg.OptimizerSync.Enabled = true

	f := &optimizerSyncFixture{
		accountMock:    repomocks.NewMockAccountRepository(ctrl),
		runMock:        repomocks.NewMockOptimizerRunRepository(ctrl),
		aggregatorMock: aggmocks.NewMockAggregator(ctrl),
		scorerMock:     scoremocks.NewMockScorer(ctrl),
		predictorMock:  riskmocks.NewMockPredictor(ctrl),
		plannerMock:    planmocks.NewMockPlanner(ctrl),
		dispatcherMock: dispmocks.NewMockDispatcher(ctrl),
		locker:         locker,
	}

	f.service = &OptimizerSyncService{
		config: OptimizerSyncConfig{
			DispatchMode: domain.ModeLive,
			SyncEnabled:  true,
		},
		appConfig:   cfg,
		accountRepo: f.accountMock,
		runRepo:     f.runMock,
		runLocker:   locker,
		aggregator:  f.aggregatorMock,
		scorer:      f.scorerMock,
		predictor:   f.predictorMock,
		planner:     f.plannerMock,
		dispatcher:  f.dispatcherMock,
	}

	return f
}

func syncAccount() *domain.AdAccount {
	return &domain.AdAccount{
		ID:               "acc-1",
		ExternalID:       "act_123",
		Name:             "Conta Principal",
		Status:           domain.AdAccountStatusActive,
		OptimizerEnabled: true,
	}
}

func TestRunAccount(t *testing.T) {
	ctx := context.Background()

	t.Run("ciclo completo registra a execução com os contadores do despacho", func(t *testing.T) {
		f := newOptimizerSyncFixture(t)
		account := syncAccount()

		dataset := &domain.AccountDataset{
			AccountID: account.ID,
			AdSets: []*domain.AdSet{
				{ID: "as-1"},
				{ID: "as-2"},
			},
			Failures: []domain.FetchFailure{{AdSetID: "as-3", Reason: "timeout"}},
		}
		plan := &domain.ActionPlan{
			Key: "acc-1:2025-03-10-14:run",
			Actions: []domain.Action{
				{Type: domain.ActionPauseEntity, Params: domain.ActionParams{EntityID: "as-1"}},
				{Type: domain.ActionAdjustBudget, Params: domain.ActionParams{EntityID: "as-2"}},
			},
		}

		var createdRun *domain.OptimizerRun
		f.runMock.EXPECT().CreateRun(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, run *domain.OptimizerRun) error {
				createdRun = run
				return nil
			})

		f.aggregatorMock.EXPECT().
			CollectAccountDataset(gomock.Any(), account, gomock.Any(), gomock.Any()).
			Return(dataset, nil)
		f.scorerMock.EXPECT().
			ScoreAccount(gomock.Any(), account, dataset, gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]*domain.HealthScoreRecord{{AdSetID: "as-1"}}, nil)
		f.predictorMock.EXPECT().
			AssessAccount(gomock.Any(), account, dataset, gomock.Any(), gomock.Any(), gomock.Any()).
			Return(&risking.Assessment{}, nil)
		f.plannerMock.EXPECT().
			BuildPlan(gomock.Any(), account, gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(plan, nil)
		f.dispatcherMock.EXPECT().
			DispatchPlan(gomock.Any(), account, plan, domain.ModeLive, gomock.Any()).
			Return(&dispatching.Result{Succeeded: 1, Failed: 1}, nil)

		var completedRun *domain.OptimizerRun
		f.runMock.EXPECT().CompleteRun(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, run *domain.OptimizerRun) error {
				completedRun = run
				return nil
			})

		f.service.runAccount(ctx, account)

		require.NotNil(t, createdRun)
		require.NotNil(t, completedRun)
		assert.Equal(t, createdRun.ID, completedRun.ID)
		assert.Equal(t, domain.RunCompleted, completedRun.Status)
		assert.Equal(t, domain.ModeLive, completedRun.Mode)
		assert.Equal(t, plan.Key, completedRun.PlanKey)
		assert.Equal(t, 2, completedRun.AdSetsEvaluated)
		assert.Equal(t, 1, completedRun.FetchFailures)
		assert.Equal(t, 2, completedRun.ActionsPlanned)
		assert.Equal(t, 1, completedRun.ActionsSucceeded)
		assert.Equal(t, 1, completedRun.ActionsFailed)
		require.NotNil(t, completedRun.CompletedAt)

		// O lock segue retido: rodar de novo na mesma janela não toca nos serviços
		f.service.runAccount(ctx, account)
	})

	t.Run("falha na coleta marca a execução como falha e libera o lock", func(t *testing.T) {
		f := newOptimizerSyncFixture(t)
		account := syncAccount()

		f.runMock.EXPECT().CreateRun(gomock.Any(), gomock.Any()).Return(nil)
		f.aggregatorMock.EXPECT().
			CollectAccountDataset(gomock.Any(), account, gomock.Any(), gomock.Any()).
			Return(nil, errors.New("plataforma indisponível"))

		var completedRun *domain.OptimizerRun
		f.runMock.EXPECT().CompleteRun(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, run *domain.OptimizerRun) error {
				completedRun = run
				return nil
			})

		f.service.runAccount(ctx, account)

		require.NotNil(t, completedRun)
		assert.Equal(t, domain.RunFailed, completedRun.Status)

		// O lock foi liberado para permitir nova tentativa dentro da janela
		acquired, err := f.locker.Acquire(ctx, account.ID, utils.HourBucket(time.Now()))
		require.NoError(t, err)
		assert.True(t, acquired)
	})
}

func TestAccountScoringConfig(t *testing.T) {
	f := newOptimizerSyncFixture(t)

	t.Run("conta sem ajustes usa os defaults globais", func(t *testing.T) {
		cfg := f.service.accountScoringConfig(syncAccount())
		assert.Equal(t, 50.0, cfg.TargetCPR)
		assert.Equal(t, 45.0, cfg.GapMax)
	})

	t.Run("alvo de CPR da conta substitui o default", func(t *testing.T) {
		account := syncAccount()
		account.TargetCPR = 80

		cfg := f.service.accountScoringConfig(account)
		assert.Equal(t, 80.0, cfg.TargetCPR)
	})

	t.Run("overrides da conta têm precedência sobre o alvo", func(t *testing.T) {
		account := syncAccount()
		account.TargetCPR = 80
		target := 95.0
		account.Overrides = &domain.ScoringOverrides{TargetCPR: &target}

		cfg := f.service.accountScoringConfig(account)
		assert.Equal(t, 95.0, cfg.TargetCPR)
	})
}
