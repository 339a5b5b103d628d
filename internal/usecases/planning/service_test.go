package planning

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	repomocks "github.com/vfg2006/ads-optimizer-api/infrastructure/repository/mocks"
	"github.com/vfg2006/ads-optimizer-api/internal/domain"
	"github.com/vfg2006/ads-optimizer-api/internal/usecases/risking"
	"github.com/vfg2006/ads-optimizer-api/pkg/log"
)

func planningConfig() domain.ScoringConfig {
	return domain.ScoringConfig{
		TargetCPR:               4.0,
		MaxActionsPerPlan:       5,
		MaxCreativesPerLaunch:   3,
		DuplicationBudgetCents:  1500,
		DuplicationAudienceSpec: `{"targeting_relaxation_types":{"lookalike":1}}`,
		LaunchBudgetCents:       2000,
		BudgetStepUpPct:         20.0,
		BudgetStepDownPct:       20.0,
		MinScaleImpressions:     5000,
		MinDailyBudgetCents:     500,
	}
}

func activeAdSet(id, campaignID string, budgetCents int64, impressionsYesterday int) *domain.AdSet {
	return &domain.AdSet{
		ID:               id,
		CampaignID:       campaignID,
		Status:           domain.AdSetStatusActive,
		DailyBudgetCents: budgetCents,
		Metrics: domain.AdSetMetrics{
			Yesterday: domain.MetricsWindow{Impressions: impressionsYesterday, Spend: 10},
		},
	}
}

func buildPlan(t *testing.T, input *PlanInput, cfg domain.ScoringConfig) *domain.ActionPlan {
	t.Helper()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	planMock := repomocks.NewMockActionPlanRepository(ctrl)
	planMock.EXPECT().SavePlan(gomock.Any(), gomock.Any()).Return(nil)

	service := NewService(planMock)

	now := time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC)
	account := &domain.AdAccount{ID: "acc-1", ExternalID: "act_123"}

	plan, err := service.BuildPlan(context.Background(), account, input, cfg, "run-1", now)
	require.NoError(t, err)
	return plan
}

func TestBuildPlan(t *testing.T) {
	log.SetupTestLogger()

	t.Run("monta a chave do plano com conta, bucket horário e execução", func(t *testing.T) {
		input := &PlanInput{Dataset: &domain.AccountDataset{}}

		plan := buildPlan(t, input, planningConfig())

		assert.Equal(t, "acc-1:2025-03-10-14:run-1", plan.Key)
		assert.Empty(t, plan.Actions)
	})

	t.Run("pausa adset com score bad e reduz o slightly_bad", func(t *testing.T) {
		bad := activeAdSet("as-bad", "cp-1", 2000, 3000)
		slightly := activeAdSet("as-slight", "cp-1", 2000, 3000)

		input := &PlanInput{
			Dataset: &domain.AccountDataset{AdSets: []*domain.AdSet{bad, slightly}},
			Scores: []*domain.HealthScoreRecord{
				{AdSetID: "as-bad", Score: -40, Class: domain.HealthBad, CPRYesterday: 9.0, TargetCPR: 4.0},
				{AdSetID: "as-slight", Score: -15, Class: domain.HealthSlightlyBad},
			},
		}

		plan := buildPlan(t, input, planningConfig())

		require.Len(t, plan.Actions, 2)

		assert.Equal(t, domain.ActionPauseEntity, plan.Actions[0].Type)
		assert.Equal(t, "as-bad", plan.Actions[0].Params.EntityID)

		assert.Equal(t, domain.ActionAdjustBudget, plan.Actions[1].Type)
		assert.Equal(t, "as-slight", plan.Actions[1].Params.EntityID)
		assert.Equal(t, int64(1600), plan.Actions[1].Params.NewDailyBudgetCents)
		assert.Equal(t, domain.BudgetDecrease, plan.Actions[1].Params.Direction)
	})

	t.Run("último adset ativo da campanha nunca é pausado", func(t *testing.T) {
		lonely := activeAdSet("as-lonely", "cp-1", 2000, 3000)

		input := &PlanInput{
			Dataset: &domain.AccountDataset{AdSets: []*domain.AdSet{lonely}},
			Scores: []*domain.HealthScoreRecord{
				{AdSetID: "as-lonely", Score: -50, Class: domain.HealthBad},
			},
		}

		plan := buildPlan(t, input, planningConfig())

		require.Len(t, plan.Actions, 1)
		assert.Equal(t, domain.ActionAdjustBudget, plan.Actions[0].Type)
		assert.Equal(t, int64(500), plan.Actions[0].Params.NewDailyBudgetCents)
	})

	t.Run("escala very_good com risco baixo e respeita o cooldown", func(t *testing.T) {
		scalable := activeAdSet("as-scale", "cp-1", 2000, 6000)
		cooled := activeAdSet("as-cooled", "cp-1", 2000, 6000)

		input := &PlanInput{
			Dataset: &domain.AccountDataset{AdSets: []*domain.AdSet{scalable, cooled}},
			Scores: []*domain.HealthScoreRecord{
				{AdSetID: "as-scale", Score: 40, Class: domain.HealthVeryGood},
				{AdSetID: "as-cooled", Score: 45, Class: domain.HealthVeryGood, Flags: domain.HistoryFlags{WasIncreasedYesterday: true}},
			},
			Assessment: &risking.Assessment{
				Records: []*domain.RiskRecord{
					{AdSetID: "as-scale", Level: domain.RiskLow},
					{AdSetID: "as-cooled", Level: domain.RiskLow},
				},
			},
		}

		plan := buildPlan(t, input, planningConfig())

		require.Len(t, plan.Actions, 2)

		assert.Equal(t, domain.ActionAdjustBudget, plan.Actions[0].Type)
		assert.Equal(t, int64(2400), plan.Actions[0].Params.NewDailyBudgetCents)
		assert.Equal(t, domain.BudgetIncrease, plan.Actions[0].Params.Direction)

		// Escalado ontem vira duplicação em vez de novo aumento
		assert.Equal(t, domain.ActionDuplicateWithAudience, plan.Actions[1].Type)
		assert.Equal(t, "as-cooled", plan.Actions[1].Params.SourceAdSetID)
		assert.Equal(t, int64(1500), plan.Actions[1].Params.BudgetCents)
	})

	t.Run("risco alto veta a escala mesmo com score very_good", func(t *testing.T) {
		risky := activeAdSet("as-risky", "cp-1", 2000, 6000)

		input := &PlanInput{
			Dataset: &domain.AccountDataset{AdSets: []*domain.AdSet{risky}},
			Scores: []*domain.HealthScoreRecord{
				{AdSetID: "as-risky", Score: 40, Class: domain.HealthVeryGood},
			},
			Assessment: &risking.Assessment{
				Records: []*domain.RiskRecord{
					{AdSetID: "as-risky", Level: domain.RiskHigh},
				},
			},
		}

		plan := buildPlan(t, input, planningConfig())
		assert.Empty(t, plan.Actions)
	})

	t.Run("adset novo não sofre intervenção", func(t *testing.T) {
		fresh := activeAdSet("as-new", "cp-1", 2000, 3000)

		input := &PlanInput{
			Dataset: &domain.AccountDataset{AdSets: []*domain.AdSet{fresh}},
			Scores: []*domain.HealthScoreRecord{
				{AdSetID: "as-new", Score: -50, Class: domain.HealthBad, Flags: domain.HistoryFlags{IsNew: true}},
			},
		}

		plan := buildPlan(t, input, planningConfig())
		assert.Empty(t, plan.Actions)
	})

	t.Run("nunca emite duas ações sobre a mesma entidade", func(t *testing.T) {
		eater := activeAdSet("as-eater", "cp-1", 2000, 3000)
		other := activeAdSet("as-other", "cp-1", 2000, 3000)

		input := &PlanInput{
			Dataset: &domain.AccountDataset{AdSets: []*domain.AdSet{eater, other}},
			Scores: []*domain.HealthScoreRecord{
				{AdSetID: "as-eater", Score: -40, Class: domain.HealthBad},
			},
			Assessment: &risking.Assessment{
				BudgetEaters: []domain.BudgetEater{
					{AdSetID: "as-eater", Priority: domain.EaterCritical, Reason: "CPR 13.00 acima de 3x o alvo"},
				},
			},
		}

		plan := buildPlan(t, input, planningConfig())

		targets := make(map[string]int)
		for _, action := range plan.Actions {
			targets[action.TargetEntity()]++
		}
		assert.LessOrEqual(t, targets["as-eater"], 1)
	})

	t.Run("adset ruim sozinho com assets parados lança uma única campanha nova", func(t *testing.T) {
		lonely := activeAdSet("as-lonely", "cp-1", 2000, 3000)

		input := &PlanInput{
			Dataset: &domain.AccountDataset{AdSets: []*domain.AdSet{lonely}},
			Scores: []*domain.HealthScoreRecord{
				{AdSetID: "as-lonely", Score: -40, Class: domain.HealthBad},
			},
			Assessment: &risking.Assessment{
				UnusedAssets: []*domain.CreativeAsset{
					{ID: "asset-1"}, {ID: "asset-2"}, {ID: "asset-3"}, {ID: "asset-4"},
				},
			},
		}

		plan := buildPlan(t, input, planningConfig())

		launches := []domain.Action{}
		for _, action := range plan.Actions {
			assert.NotEqual(t, domain.ActionPauseEntity, action.Type)
			assert.NotEqual(t, domain.ActionDuplicateWithAudience, action.Type)
			if action.Type == domain.ActionLaunchWithCreatives {
				launches = append(launches, action)
			}
		}

		// Um único lançamento agrupando os criativos, nunca uma campanha por asset
		require.Len(t, launches, 1)
		assert.Equal(t, []string{"asset-1", "asset-2", "asset-3"}, launches[0].Params.CreativeIDs)
		assert.Equal(t, int64(2000), launches[0].Params.BudgetCents)
	})

	t.Run("adset ruim sozinho sem assets parados duplica para audiência semelhante", func(t *testing.T) {
		lonely := activeAdSet("as-lonely", "cp-1", 2000, 3000)

		input := &PlanInput{
			Dataset: &domain.AccountDataset{AdSets: []*domain.AdSet{lonely}},
			Scores: []*domain.HealthScoreRecord{
				{AdSetID: "as-lonely", Score: -40, Class: domain.HealthBad},
			},
			Assessment: &risking.Assessment{},
		}

		plan := buildPlan(t, input, planningConfig())

		require.Len(t, plan.Actions, 1)
		action := plan.Actions[0]
		assert.Equal(t, domain.ActionDuplicateWithAudience, action.Type)
		assert.Equal(t, "as-lonely", action.Params.SourceAdSetID)
		assert.Equal(t, int64(1500), action.Params.BudgetCents)
		assert.Equal(t, `{"targeting_relaxation_types":{"lookalike":1}}`, action.Params.AudienceSpec)
	})

	t.Run("fadiga urgente com assets parados gera lançamento de criativos", func(t *testing.T) {
		input := &PlanInput{
			Dataset: &domain.AccountDataset{},
			Assessment: &risking.Assessment{
				FatigueAlerts: []domain.FatigueAlert{{CreativeID: "as-1", Urgent: true}},
				UnusedAssets: []*domain.CreativeAsset{
					{ID: "asset-1"}, {ID: "asset-2"}, {ID: "asset-3"}, {ID: "asset-4"},
				},
			},
		}

		plan := buildPlan(t, input, planningConfig())

		require.Len(t, plan.Actions, 1)
		action := plan.Actions[0]
		assert.Equal(t, domain.ActionLaunchWithCreatives, action.Type)
		assert.Len(t, action.Params.CreativeIDs, 3)
		assert.Equal(t, int64(2000), action.Params.BudgetCents)
		assert.Equal(t, "OUTCOME_LEADS", action.Params.Objective)
	})

	t.Run("aplica o teto de ações priorizando as defensivas", func(t *testing.T) {
		cfg := planningConfig()
		cfg.MaxActionsPerPlan = 2

		adsets := []*domain.AdSet{}
		scores := []*domain.HealthScoreRecord{}
		for _, id := range []string{"a", "b", "c", "d"} {
			adsets = append(adsets, activeAdSet("as-"+id, "cp-"+id, 2000, 6000))
		}
		scores = append(scores,
			&domain.HealthScoreRecord{AdSetID: "as-a", Class: domain.HealthVeryGood},
			&domain.HealthScoreRecord{AdSetID: "as-b", Class: domain.HealthVeryGood},
			&domain.HealthScoreRecord{AdSetID: "as-c", Class: domain.HealthSlightlyBad},
			&domain.HealthScoreRecord{AdSetID: "as-d", Class: domain.HealthSlightlyBad},
		)

		plan := buildPlan(t, input(adsets, scores), cfg)

		require.Len(t, plan.Actions, 2)
		for _, action := range plan.Actions {
			assert.Equal(t, domain.BudgetDecrease, action.Params.Direction)
		}
	})
}

func input(adsets []*domain.AdSet, scores []*domain.HealthScoreRecord) *PlanInput {
	return &PlanInput{
		Dataset: &domain.AccountDataset{AdSets: adsets},
		Scores:  scores,
	}
}
