package domain

import (
	"fmt"
	"time"
)

// ActionType é o conjunto fechado de ações que o planejador pode emitir
type ActionType string

const (
	ActionAdjustBudget          ActionType = "AdjustBudget"
	ActionPauseEntity           ActionType = "PauseEntity"
	ActionDuplicateWithAudience ActionType = "DuplicateWithAudience"
	ActionLaunchWithCreatives   ActionType = "LaunchWithCreatives"
)

// DispatchMode define o modo de execução de um plano
type DispatchMode string

const (
	ModeDryRun DispatchMode = "dry_run"
	ModeLive   DispatchMode = "live"
)

// ActionParams carrega os parâmetros específicos de cada tipo de ação.
// O despachante valida os campos obrigatórios conforme o tipo.
type ActionParams struct {
	// AdjustBudget / PauseEntity
	EntityID            string          `json:"entity_id,omitempty"`
	NewDailyBudgetCents int64           `json:"new_daily_budget_cents,omitempty"`
	Direction           BudgetDirection `json:"direction,omitempty"`

	// DuplicateWithAudience
	SourceAdSetID string `json:"source_adset_id,omitempty"`
	AudienceSpec  string `json:"audience_spec,omitempty"`

	// LaunchWithCreatives
	Objective   string   `json:"objective,omitempty"`
	CreativeIDs []string `json:"creative_ids,omitempty"`
	AdSetName   string   `json:"adset_name,omitempty"`

	// Orçamento inicial para Duplicate/Launch
	BudgetCents int64 `json:"budget_cents,omitempty"`
}

// Action é uma entrada do plano, com justificativa legível e prioridade
type Action struct {
	Type          ActionType   `json:"type"`
	Priority      int          `json:"priority"`
	Justification string       `json:"justification"`
	Params        ActionParams `json:"params"`
}

// TargetEntity retorna a entidade afetada pela ação, usada pelo
// planejador para garantir que um plano nunca contenha ações
// contraditórias sobre a mesma entidade
func (a *Action) TargetEntity() string {
	switch a.Type {
	case ActionAdjustBudget, ActionPauseEntity:
		return a.Params.EntityID
	case ActionDuplicateWithAudience:
		return a.Params.SourceAdSetID
	case ActionLaunchWithCreatives:
		// Lançamentos criam entidades novas; não conflitam com existentes
		return ""
	}
	return ""
}

// ActionPlan é a sequência ordenada de ações de uma execução do
// planejador. Imutável após criado; consumido no máximo uma vez.
type ActionPlan struct {
	Key       string    `json:"key"`
	RunID     string    `json:"run_id"`
	AccountID string    `json:"account_id"`
	Actions   []Action  `json:"actions"`
	CreatedAt time.Time `json:"created_at"`
}

// PlanKey monta a chave de idempotência do plano a partir da conta,
// do bucket de tempo da execução e do ID da execução
func PlanKey(accountID, timeBucket, runID string) string {
	return fmt.Sprintf("%s:%s:%s", accountID, timeBucket, runID)
}

// ActionKey deriva a chave de idempotência de uma ação do plano
func (p *ActionPlan) ActionKey(index int) string {
	return fmt.Sprintf("%s:%d:%s", p.Key, index, p.Actions[index].Type)
}

// BudgetDirection indica o sentido de um ajuste de orçamento executado
type BudgetDirection string

const (
	BudgetIncrease BudgetDirection = "increase"
	BudgetDecrease BudgetDirection = "decrease"
)

// BudgetChange é um ajuste de orçamento bem-sucedido no histórico recente,
// usado para derivar as flags de histórico dos adsets
type BudgetChange struct {
	AdSetID    string          `json:"adset_id"`
	Direction  BudgetDirection `json:"direction"`
	OccurredAt time.Time       `json:"occurred_at"`
}
