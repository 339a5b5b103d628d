package planning

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/vfg2006/ads-optimizer-api/infrastructure/repository"
	"github.com/vfg2006/ads-optimizer-api/internal/domain"
	"github.com/vfg2006/ads-optimizer-api/internal/usecases/risking"
	"github.com/vfg2006/ads-optimizer-api/pkg/log"
	"github.com/vfg2006/ads-optimizer-api/pkg/utils"
)

// Prioridades do plano: ações defensivas primeiro, expansão por último
const (
	priorityPause     = 1
	priorityDecrease  = 2
	priorityIncrease  = 3
	priorityDuplicate = 4
	priorityLaunch    = 5
)

// PlanInput reúne os resultados dos motores que alimentam o planejador
type PlanInput struct {
	Dataset    *domain.AccountDataset
	Scores     []*domain.HealthScoreRecord
	Assessment *risking.Assessment
}

// Planner monta o plano de ações de uma execução a partir dos scores e da
// análise de risco
type Planner interface {
	BuildPlan(
		ctx context.Context,
		account *domain.AdAccount,
		input *PlanInput,
		cfg domain.ScoringConfig,
		runID string,
		now time.Time,
	) (*domain.ActionPlan, error)
}

// Service implementa a interface Planner
type Service struct {
	planRepository repository.ActionPlanRepository
}

// NewService cria uma nova instância do planejador de ações
func NewService(planRepository repository.ActionPlanRepository) Planner {
	return &Service{
		planRepository: planRepository,
	}
}

// BuildPlan aplica a matriz de decisão sobre os scores e riscos da execução
// e grava o plano resultante. O plano nunca contém duas ações sobre a mesma
// entidade e respeita o teto de ações por execução.
func (s *Service) BuildPlan(
	ctx context.Context,
	account *domain.AdAccount,
	input *PlanInput,
	cfg domain.ScoringConfig,
	runID string,
	now time.Time,
) (*domain.ActionPlan, error) {
	builder := newPlanBuilder(input, cfg)

	builder.addDefensiveActions()
	builder.addScaleActions()
	builder.addCreativeActions()

	plan := &domain.ActionPlan{
		Key:       domain.PlanKey(account.ID, utils.HourBucket(now), runID),
		RunID:     runID,
		AccountID: account.ID,
		Actions:   builder.finalize(),
		CreatedAt: now,
	}

	if err := s.planRepository.SavePlan(ctx, plan); err != nil {
		log.ForContext(ctx).WithFields(log.Fields{
			"account_id": account.ID,
			"run_id":     runID,
			"error":      err.Error(),
		}).Error("Falha ao gravar o plano de ações")
		return nil, err
	}

	log.ForContext(ctx).WithFields(log.Fields{
		"account_id": account.ID,
		"run_id":     runID,
		"plan_key":   plan.Key,
		"actions":    len(plan.Actions),
	}).Info("Plano de ações da execução montado")

	return plan, nil
}

type planBuilder struct {
	cfg     domain.ScoringConfig
	input   *PlanInput
	actions []domain.Action

	adsetsByID     map[string]*domain.AdSet
	scoresByAdSet  map[string]*domain.HealthScoreRecord
	risksByAdSet   map[string]*domain.RiskRecord
	claimedTargets map[string]bool
	launchPlanned  bool
}

func newPlanBuilder(input *PlanInput, cfg domain.ScoringConfig) *planBuilder {
	b := &planBuilder{
		cfg:            cfg,
		input:          input,
		adsetsByID:     make(map[string]*domain.AdSet),
		scoresByAdSet:  make(map[string]*domain.HealthScoreRecord),
		risksByAdSet:   make(map[string]*domain.RiskRecord),
		claimedTargets: make(map[string]bool),
	}

	for _, adset := range input.Dataset.AdSets {
		b.adsetsByID[adset.ID] = adset
	}
	for _, score := range input.Scores {
		b.scoresByAdSet[score.AdSetID] = score
	}
	if input.Assessment != nil {
		for _, record := range input.Assessment.Records {
			b.risksByAdSet[record.AdSetID] = record
		}
	}

	return b
}

// add registra a ação se a entidade alvo ainda não foi reivindicada por
// outra ação do plano
func (b *planBuilder) add(action domain.Action) bool {
	if target := action.TargetEntity(); target != "" {
		if b.claimedTargets[target] {
			return false
		}
		b.claimedTargets[target] = true
	}

	b.actions = append(b.actions, action)
	return true
}

// addDefensiveActions trata comedores de verba e adsets com score ruim.
// O último adset ativo de uma campanha nunca é pausado: o orçamento cai
// para o piso no lugar da pausa.
func (b *planBuilder) addDefensiveActions() {
	if b.input.Assessment != nil {
		for _, eater := range b.input.Assessment.BudgetEaters {
			switch eater.Priority {
			case domain.EaterCritical, domain.EaterHigh:
				if eater.LastInCampaign {
					b.addBudgetDecrease(eater.AdSetID, fmt.Sprintf("último adset ativo da campanha; orçamento reduzido ao piso (%s)", eater.Reason), true)
					continue
				}
				b.add(domain.Action{
					Type:          domain.ActionPauseEntity,
					Priority:      priorityPause,
					Justification: eater.Reason,
					Params:        domain.ActionParams{EntityID: eater.AdSetID},
				})
			case domain.EaterMedium:
				b.addBudgetDecrease(eater.AdSetID, eater.Reason, false)
			}
		}
	}

	for _, score := range b.input.Scores {
		if score.Flags.IsNew {
			// Adsets em aprendizado não sofrem intervenção
			continue
		}

		switch score.Class {
		case domain.HealthBad:
			adset := b.adsetsByID[score.AdSetID]
			if adset == nil {
				continue
			}
			if b.isLastActiveInCampaign(adset) {
				b.addRecoveryAction(adset, score)
				b.addBudgetDecrease(score.AdSetID, fmt.Sprintf("health score %d (bad), mas é o último adset ativo da campanha", score.Score), true)
				continue
			}
			b.add(domain.Action{
				Type:          domain.ActionPauseEntity,
				Priority:      priorityPause,
				Justification: fmt.Sprintf("health score %d (bad) com CPR %.2f contra alvo %.2f", score.Score, score.CPRYesterday, score.TargetCPR),
				Params:        domain.ActionParams{EntityID: score.AdSetID},
			})
		case domain.HealthSlightlyBad:
			if adset := b.adsetsByID[score.AdSetID]; adset != nil && b.isLastActiveInCampaign(adset) {
				b.addRecoveryAction(adset, score)
			}
			if score.Flags.WasDecreasedYesterday {
				// Cooldown: uma redução por dia
				continue
			}
			b.addBudgetDecrease(score.AdSetID, fmt.Sprintf("health score %d (slightly_bad); reduzindo orçamento em %.0f%%", score.Score, b.cfg.BudgetStepDownPct), false)
		}
	}
}

// addRecoveryAction renova o único adset ativo de uma campanha com score
// ruim. Com assets parados no catálogo, o caminho preferido é lançar uma
// campanha nova com até o teto de criativos, sem resetar a fase de
// aprendizado do adset existente; sem assets, o fallback é duplicar o adset
// para uma audiência semelhante com orçamento fixo, mantendo o original no ar.
func (b *planBuilder) addRecoveryAction(adset *domain.AdSet, score *domain.HealthScoreRecord) {
	if b.input.Assessment == nil {
		return
	}

	if !b.launchPlanned && len(b.input.Assessment.UnusedAssets) > 0 {
		b.addCreativeLaunch(fmt.Sprintf("health score %d (%s) no único adset ativo da campanha; testando criativos parados em campanha nova", score.Score, score.Class))
		return
	}

	b.add(domain.Action{
		Type:          domain.ActionDuplicateWithAudience,
		Priority:      priorityDuplicate,
		Justification: fmt.Sprintf("health score %d (%s) sem criativos parados no catálogo; duplicando para audiência semelhante", score.Score, score.Class),
		Params: domain.ActionParams{
			SourceAdSetID: adset.ID,
			AudienceSpec:  b.cfg.DuplicationAudienceSpec,
			BudgetCents:   b.cfg.DuplicationBudgetCents,
		},
	})
}

// addScaleActions aumenta orçamento e duplica os adsets com desempenho
// comprovado e risco baixo
func (b *planBuilder) addScaleActions() {
	for _, score := range b.input.Scores {
		if score.Class != domain.HealthVeryGood || score.Flags.IsNew {
			continue
		}

		adset := b.adsetsByID[score.AdSetID]
		if adset == nil {
			continue
		}

		risk := b.risksByAdSet[score.AdSetID]
		if risk != nil && risk.Level != domain.RiskLow {
			continue
		}

		if adset.Metrics.Yesterday.Impressions < b.cfg.MinScaleImpressions {
			continue
		}

		if !score.Flags.WasIncreasedYesterday {
			newBudget := int64(math.Round(float64(adset.DailyBudgetCents) * (1 + b.cfg.BudgetStepUpPct/100)))
			b.add(domain.Action{
				Type:          domain.ActionAdjustBudget,
				Priority:      priorityIncrease,
				Justification: fmt.Sprintf("health score %d (very_good) com risco baixo; escalando orçamento em %.0f%%", score.Score, b.cfg.BudgetStepUpPct),
				Params: domain.ActionParams{
					EntityID:            adset.ID,
					NewDailyBudgetCents: newBudget,
					Direction:           domain.BudgetIncrease,
				},
			})
			continue
		}

		// Já escalado ontem: duplicar para nova audiência em vez de
		// aumentar de novo o mesmo adset
		b.add(domain.Action{
			Type:          domain.ActionDuplicateWithAudience,
			Priority:      priorityDuplicate,
			Justification: fmt.Sprintf("health score %d (very_good) já escalado ontem; duplicando para nova audiência", score.Score),
			Params: domain.ActionParams{
				SourceAdSetID: adset.ID,
				AudienceSpec:  b.cfg.DuplicationAudienceSpec,
				BudgetCents:   b.cfg.DuplicationBudgetCents,
			},
		})
	}
}

// addCreativeActions lança criativos do catálogo quando há fadiga urgente
// e assets prontos parados
func (b *planBuilder) addCreativeActions() {
	if b.input.Assessment == nil || len(b.input.Assessment.UnusedAssets) == 0 || b.launchPlanned {
		return
	}

	urgent := false
	for _, alert := range b.input.Assessment.FatigueAlerts {
		if alert.Urgent {
			urgent = true
			break
		}
	}
	if !urgent {
		return
	}

	b.addCreativeLaunch("fadiga urgente detectada; lançando criativos parados do catálogo")
}

// addCreativeLaunch emite um único lançamento por plano, agrupando até o
// teto de assets parados (já ordenados por prioridade) em um adset novo
func (b *planBuilder) addCreativeLaunch(justification string) {
	unused := b.input.Assessment.UnusedAssets

	limit := b.cfg.MaxCreativesPerLaunch
	if limit <= 0 || limit > len(unused) {
		limit = len(unused)
	}

	creativeIDs := make([]string, 0, limit)
	for _, asset := range unused[:limit] {
		creativeIDs = append(creativeIDs, asset.ID)
	}

	b.add(domain.Action{
		Type:          domain.ActionLaunchWithCreatives,
		Priority:      priorityLaunch,
		Justification: justification,
		Params: domain.ActionParams{
			Objective:   "OUTCOME_LEADS",
			CreativeIDs: creativeIDs,
			AdSetName:   "Renovação de criativos",
			BudgetCents: b.cfg.LaunchBudgetCents,
		},
	})
	b.launchPlanned = true
}

func (b *planBuilder) addBudgetDecrease(adsetID, justification string, toFloor bool) {
	adset := b.adsetsByID[adsetID]
	if adset == nil {
		return
	}

	newBudget := b.cfg.MinDailyBudgetCents
	if !toFloor {
		newBudget = int64(math.Round(float64(adset.DailyBudgetCents) * (1 - b.cfg.BudgetStepDownPct/100)))
		if newBudget < b.cfg.MinDailyBudgetCents {
			newBudget = b.cfg.MinDailyBudgetCents
		}
	}

	if newBudget >= adset.DailyBudgetCents {
		// Já está no piso; reduzir não teria efeito
		return
	}

	b.add(domain.Action{
		Type:          domain.ActionAdjustBudget,
		Priority:      priorityDecrease,
		Justification: justification,
		Params: domain.ActionParams{
			EntityID:            adsetID,
			NewDailyBudgetCents: newBudget,
			Direction:           domain.BudgetDecrease,
		},
	})
}

func (b *planBuilder) isLastActiveInCampaign(adset *domain.AdSet) bool {
	if adset.Status != domain.AdSetStatusActive {
		return false
	}

	active := 0
	for _, other := range b.adsetsByID {
		if other.CampaignID == adset.CampaignID && other.Status == domain.AdSetStatusActive {
			active++
		}
	}
	return active == 1
}

// finalize ordena por prioridade e aplica o teto de ações por plano
func (b *planBuilder) finalize() []domain.Action {
	sort.SliceStable(b.actions, func(i, j int) bool {
		return b.actions[i].Priority < b.actions[j].Priority
	})

	if b.cfg.MaxActionsPerPlan > 0 && len(b.actions) > b.cfg.MaxActionsPerPlan {
		b.actions = b.actions[:b.cfg.MaxActionsPerPlan]
	}

	return b.actions
}
