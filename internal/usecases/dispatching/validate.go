package dispatching

import (
	"errors"
	"fmt"

	"github.com/vfg2006/ads-optimizer-api/internal/domain"
)

var errUnknownActionType = errors.New("tipo de ação desconhecido")

// validateAction confere os parâmetros obrigatórios de cada tipo de ação
// antes de qualquer chamada à plataforma. Ações inválidas nunca saem do
// despachante: o registro fica como validation_error.
func validateAction(action domain.Action, cfg domain.ScoringConfig) error {
	switch action.Type {
	case domain.ActionAdjustBudget:
		if action.Params.EntityID == "" {
			return errors.New("AdjustBudget exige entity_id")
		}
		if action.Params.NewDailyBudgetCents < cfg.MinDailyBudgetCents {
			return fmt.Errorf("orçamento %d abaixo do piso de %d centavos", action.Params.NewDailyBudgetCents, cfg.MinDailyBudgetCents)
		}
		return nil

	case domain.ActionPauseEntity:
		if action.Params.EntityID == "" {
			return errors.New("PauseEntity exige entity_id")
		}
		return nil

	case domain.ActionDuplicateWithAudience:
		if action.Params.SourceAdSetID == "" {
			return errors.New("DuplicateWithAudience exige source_adset_id")
		}
		if action.Params.BudgetCents <= 0 {
			return errors.New("DuplicateWithAudience exige budget_cents positivo")
		}
		return nil

	case domain.ActionLaunchWithCreatives:
		if action.Params.Objective == "" {
			return errors.New("LaunchWithCreatives exige objective")
		}
		if len(action.Params.CreativeIDs) == 0 {
			return errors.New("LaunchWithCreatives exige ao menos um criativo")
		}
		if action.Params.AdSetName == "" {
			return errors.New("LaunchWithCreatives exige adset_name")
		}
		if action.Params.BudgetCents <= 0 {
			return errors.New("LaunchWithCreatives exige budget_cents positivo")
		}
		return nil
	}

	return fmt.Errorf("%w: %s", errUnknownActionType, action.Type)
}
