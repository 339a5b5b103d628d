package dispatching

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/vfg2006/ads-optimizer-api/infrastructure/cache/redis"
	"github.com/vfg2006/ads-optimizer-api/infrastructure/integrator/meta"
	metamocks "github.com/vfg2006/ads-optimizer-api/infrastructure/integrator/meta/mocks"
	repomocks "github.com/vfg2006/ads-optimizer-api/infrastructure/repository/mocks"
	"github.com/vfg2006/ads-optimizer-api/internal/domain"
	"github.com/vfg2006/ads-optimizer-api/pkg/log"
)

type dispatchFixture struct {
	metaMock  *metamocks.MockIntegrator
	planMock  *repomocks.MockActionPlanRepository
	assetMock *repomocks.MockCreativeAssetRepository
	service   Dispatcher
}

func newFixture(t *testing.T) *dispatchFixture {
	t.Helper()
	log.SetupTestLogger()

	dispatchBackoffBase = time.Millisecond

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	mr := miniredis.RunT(t)
	locker := redis.NewRunLocker(goredis.NewClient(&goredis.Options{Addr: mr.Addr()}))

	f := &dispatchFixture{
		metaMock:  metamocks.NewMockIntegrator(ctrl),
		planMock:  repomocks.NewMockActionPlanRepository(ctrl),
		assetMock: repomocks.NewMockCreativeAssetRepository(ctrl),
	}
	f.service = NewService(f.metaMock, f.planMock, f.assetMock, locker)

	return f
}

func dispatchConfig() domain.ScoringConfig {
	return domain.ScoringConfig{MinDailyBudgetCents: 500}
}

func testAccount() *domain.AdAccount {
	return &domain.AdAccount{ID: "acc-1", ExternalID: "act_123"}
}

func planWith(actions ...domain.Action) *domain.ActionPlan {
	return &domain.ActionPlan{
		Key:       "acc-1:2025-03-10-14:run-1",
		RunID:     "run-1",
		AccountID: "acc-1",
		Actions:   actions,
	}
}

func TestDispatchPlan(t *testing.T) {
	ctx := context.Background()

	t.Run("dry_run registra o desfecho sem chamar a plataforma", func(t *testing.T) {
		f := newFixture(t)

		plan := planWith(domain.Action{
			Type:   domain.ActionPauseEntity,
			Params: domain.ActionParams{EntityID: "as-1"},
		})

		f.planMock.EXPECT().GetExecutionByKey(gomock.Any(), plan.ActionKey(0)).Return(nil, nil)
		f.planMock.EXPECT().SaveExecution(gomock.Any(), gomock.Any()).Return(nil)

		result, err := f.service.DispatchPlan(ctx, testAccount(), plan, domain.ModeDryRun, dispatchConfig())
		require.NoError(t, err)

		assert.Equal(t, 1, result.Succeeded)
		assert.Zero(t, result.Failed)
		require.Len(t, result.Records, 1)
		assert.Equal(t, domain.ExecutionValidated, result.Records[0].Status)
	})

	t.Run("dry_run não consome a chave de idempotência do modo live", func(t *testing.T) {
		f := newFixture(t)

		plan := planWith(domain.Action{
			Type:   domain.ActionPauseEntity,
			Params: domain.ActionParams{EntityID: "as-1"},
		})

		f.planMock.EXPECT().GetExecutionByKey(gomock.Any(), plan.ActionKey(0)).Return(nil, nil)
		f.planMock.EXPECT().SaveExecution(gomock.Any(), gomock.Any()).Return(nil)

		dryRun, err := f.service.DispatchPlan(ctx, testAccount(), plan, domain.ModeDryRun, dispatchConfig())
		require.NoError(t, err)
		assert.Equal(t, domain.ExecutionValidated, dryRun.Records[0].Status)

		// O despacho live do mesmo plano executa de verdade: o registro do
		// dry_run não é terminal
		f.planMock.EXPECT().GetExecutionByKey(gomock.Any(), plan.ActionKey(0)).Return(&domain.ExecutionRecord{
			IdempotencyKey: plan.ActionKey(0),
			Status:         domain.ExecutionValidated,
		}, nil)
		f.planMock.EXPECT().SaveExecution(gomock.Any(), gomock.Any()).Return(nil)
		f.metaMock.EXPECT().PauseEntity(gomock.Any(), "as-1").Return(nil)

		live, err := f.service.DispatchPlan(ctx, testAccount(), plan, domain.ModeLive, dispatchConfig())
		require.NoError(t, err)

		assert.Equal(t, 1, live.Succeeded)
		assert.Zero(t, live.Skipped)
		assert.Equal(t, domain.ExecutionSucceeded, live.Records[0].Status)
	})

	t.Run("executa as ações em modo live e grava o resultado", func(t *testing.T) {
		f := newFixture(t)

		plan := planWith(
			domain.Action{
				Type:   domain.ActionAdjustBudget,
				Params: domain.ActionParams{EntityID: "as-1", NewDailyBudgetCents: 1600, Direction: domain.BudgetDecrease},
			},
			domain.Action{
				Type:   domain.ActionDuplicateWithAudience,
				Params: domain.ActionParams{SourceAdSetID: "as-2", BudgetCents: 1500, AudienceSpec: `{"targeting_relaxation_types":{"lookalike":1}}`},
			},
		)

		f.planMock.EXPECT().GetExecutionByKey(gomock.Any(), gomock.Any()).Return(nil, nil).Times(2)
		f.planMock.EXPECT().SaveExecution(gomock.Any(), gomock.Any()).Return(nil).Times(2)

		f.metaMock.EXPECT().UpdateDailyBudget(gomock.Any(), "as-1", int64(1600)).Return(nil)
		f.metaMock.EXPECT().DuplicateAdSet(gomock.Any(), "as-2", int64(1500), `{"targeting_relaxation_types":{"lookalike":1}}`).Return("as-2-copy", nil)

		result, err := f.service.DispatchPlan(ctx, testAccount(), plan, domain.ModeLive, dispatchConfig())
		require.NoError(t, err)

		assert.Equal(t, 2, result.Succeeded)
		assert.Equal(t, "as-2-copy", result.Records[1].ResultEntityID)
		assert.Equal(t, domain.BudgetDecrease, result.Records[0].Direction)
	})

	t.Run("ação inválida vira validation_error sem tocar a plataforma", func(t *testing.T) {
		f := newFixture(t)

		plan := planWith(domain.Action{
			Type:   domain.ActionAdjustBudget,
			Params: domain.ActionParams{EntityID: "as-1", NewDailyBudgetCents: 100},
		})

		f.planMock.EXPECT().SaveExecution(gomock.Any(), gomock.Any()).Return(nil)

		result, err := f.service.DispatchPlan(ctx, testAccount(), plan, domain.ModeLive, dispatchConfig())
		require.NoError(t, err)

		assert.Equal(t, 1, result.ValidationErrors)
		assert.Equal(t, domain.ExecutionValidationError, result.Records[0].Status)
		assert.Contains(t, result.Records[0].ErrorMessage, "piso")
	})

	t.Run("execução anterior bem-sucedida é pulada como duplicada", func(t *testing.T) {
		f := newFixture(t)

		plan := planWith(domain.Action{
			Type:   domain.ActionPauseEntity,
			Params: domain.ActionParams{EntityID: "as-1"},
		})

		f.planMock.EXPECT().GetExecutionByKey(gomock.Any(), plan.ActionKey(0)).Return(&domain.ExecutionRecord{
			IdempotencyKey: plan.ActionKey(0),
			Status:         domain.ExecutionSucceeded,
		}, nil)
		f.planMock.EXPECT().SaveExecution(gomock.Any(), gomock.Any()).Return(nil)

		result, err := f.service.DispatchPlan(ctx, testAccount(), plan, domain.ModeLive, dispatchConfig())
		require.NoError(t, err)

		assert.Equal(t, 1, result.Skipped)
		assert.Equal(t, domain.ExecutionSkippedDuplicate, result.Records[0].Status)
	})

	t.Run("falha retryable é retentada até suceder", func(t *testing.T) {
		f := newFixture(t)

		plan := planWith(domain.Action{
			Type:   domain.ActionPauseEntity,
			Params: domain.ActionParams{EntityID: "as-1"},
		})

		f.planMock.EXPECT().GetExecutionByKey(gomock.Any(), gomock.Any()).Return(nil, nil)
		f.planMock.EXPECT().SaveExecution(gomock.Any(), gomock.Any()).Return(nil)

		gomock.InOrder(
			f.metaMock.EXPECT().PauseEntity(gomock.Any(), "as-1").
				Return(domain.NewPlatformError(domain.FailureRateLimited, 17, "limite de requisições")),
			f.metaMock.EXPECT().PauseEntity(gomock.Any(), "as-1").Return(nil),
		)

		result, err := f.service.DispatchPlan(ctx, testAccount(), plan, domain.ModeLive, dispatchConfig())
		require.NoError(t, err)

		assert.Equal(t, 1, result.Succeeded)
		assert.Equal(t, 1, result.Records[0].RetryCount)
	})

	t.Run("falha não retryable não é retentada e não derruba as demais ações", func(t *testing.T) {
		f := newFixture(t)

		plan := planWith(
			domain.Action{
				Type:   domain.ActionPauseEntity,
				Params: domain.ActionParams{EntityID: "as-1"},
			},
			domain.Action{
				Type:   domain.ActionPauseEntity,
				Params: domain.ActionParams{EntityID: "as-2"},
			},
		)

		f.planMock.EXPECT().GetExecutionByKey(gomock.Any(), gomock.Any()).Return(nil, nil).Times(2)
		f.planMock.EXPECT().SaveExecution(gomock.Any(), gomock.Any()).Return(nil).Times(2)

		f.metaMock.EXPECT().PauseEntity(gomock.Any(), "as-1").
			Return(domain.NewPlatformError(domain.FailurePermissionDenied, 200, "sem permissão"))
		f.metaMock.EXPECT().PauseEntity(gomock.Any(), "as-2").Return(nil)

		result, err := f.service.DispatchPlan(ctx, testAccount(), plan, domain.ModeLive, dispatchConfig())
		require.NoError(t, err)

		assert.Equal(t, 1, result.Failed)
		assert.Equal(t, 1, result.Succeeded)
		assert.Equal(t, domain.FailurePermissionDenied, result.Records[0].FailureKind)
		assert.Zero(t, result.Records[0].RetryCount)
	})

	t.Run("contexto cancelado interrompe o despacho entre ações", func(t *testing.T) {
		f := newFixture(t)

		plan := planWith(domain.Action{
			Type:   domain.ActionPauseEntity,
			Params: domain.ActionParams{EntityID: "as-1"},
		})

		cancelled, cancel := context.WithCancel(context.Background())
		cancel()

		result, err := f.service.DispatchPlan(cancelled, testAccount(), plan, domain.ModeLive, dispatchConfig())
		require.NoError(t, err)

		assert.Empty(t, result.Records)
	})

	t.Run("lança uma única campanha com um anúncio por criativo e a ativa", func(t *testing.T) {
		f := newFixture(t)

		plan := planWith(domain.Action{
			Type: domain.ActionLaunchWithCreatives,
			Params: domain.ActionParams{
				Objective:   "OUTCOME_LEADS",
				CreativeIDs: []string{"asset-1", "asset-2"},
				AdSetName:   "Renovação de criativos",
				BudgetCents: 2000,
			},
		})

		f.planMock.EXPECT().GetExecutionByKey(gomock.Any(), gomock.Any()).Return(nil, nil)
		f.planMock.EXPECT().SaveExecution(gomock.Any(), gomock.Any()).Return(nil)

		f.assetMock.EXPECT().GetAssetByID(gomock.Any(), "asset-1").Return(&domain.CreativeAsset{
			ID:              "asset-1",
			Name:            "Video depoimento",
			RefsByObjective: map[string]string{"OUTCOME_LEADS": "cr-77"},
		}, nil)
		f.assetMock.EXPECT().GetAssetByID(gomock.Any(), "asset-2").Return(&domain.CreativeAsset{
			ID:              "asset-2",
			Name:            "Carrossel prova social",
			RefsByObjective: map[string]string{"OUTCOME_LEADS": "cr-78"},
		}, nil)

		f.metaMock.EXPECT().LaunchCreativeTest(
			gomock.Any(), "act_123", "Renovação de criativos",
			[]meta.AdCreative{
				{Name: "Renovação de criativos - Video depoimento", Ref: "cr-77"},
				{Name: "Renovação de criativos - Carrossel prova social", Ref: "cr-78"},
			},
			int64(2000),
		).Return(&meta.LaunchResult{CampaignID: "cp-9", AdSetID: "as-9", AdIDs: []string{"ad-9", "ad-10"}}, nil)
		f.metaMock.EXPECT().ActivateEntity(gomock.Any(), "cp-9").Return(nil)

		result, err := f.service.DispatchPlan(ctx, testAccount(), plan, domain.ModeLive, dispatchConfig())
		require.NoError(t, err)

		assert.Equal(t, 1, result.Succeeded)
		assert.Equal(t, "as-9", result.Records[0].ResultEntityID)
	})
}
