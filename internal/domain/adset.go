package domain

import "time"

// AdSetStatus representa o ciclo de vida de um adset na plataforma
type AdSetStatus string

const (
	AdSetStatusActive   AdSetStatus = "ACTIVE"
	AdSetStatusPaused   AdSetStatus = "PAUSED"
	AdSetStatusArchived AdSetStatus = "ARCHIVED"
)

// AdSet representa a unidade endereçável de gasto abaixo de uma campanha.
// É criado externamente; este sistema só altera status e orçamento via ações.
type AdSet struct {
	ID               string       `json:"id"`
	CampaignID       string       `json:"campaign_id"`
	AccountID        string       `json:"account_id"`
	Name             string       `json:"name"`
	Status           AdSetStatus  `json:"status"`
	DailyBudgetCents int64        `json:"daily_budget_cents"`
	CreatedTime      time.Time    `json:"created_time"`
	Metrics          AdSetMetrics `json:"metrics"`
}

// IsNew indica se o adset ainda está na fase de aprendizado (< 48h)
func (a *AdSet) IsNew(now time.Time) bool {
	if a.CreatedTime.IsZero() {
		return false
	}
	return now.Sub(a.CreatedTime) < 48*time.Hour
}

// HistoryFlags resume o histórico recente de ações sobre um adset,
// derivado dos registros de execução dos últimos dias
type HistoryFlags struct {
	IsNew                 bool `json:"is_new"`
	WasDecreasedYesterday bool `json:"was_decreased_yesterday"`
	WasIncreasedYesterday bool `json:"was_increased_yesterday"`
	ConsecutiveDecreases  int  `json:"consecutive_decreases"`
}

// AdSetSnapshot é a fotografia versionada por execução de um adset e suas
// métricas, mantida para reprodutibilidade das comparações históricas
type AdSetSnapshot struct {
	ID        int64        `json:"id"`
	RunID     string       `json:"run_id"`
	AccountID string       `json:"account_id"`
	AdSetID   string       `json:"adset_id"`
	Payload   *AdSet       `json:"payload"`
	Flags     HistoryFlags `json:"flags"`
	CreatedAt time.Time    `json:"created_at"`
}

// FetchFailure registra a falha de coleta de um adset em uma execução.
// O adset correspondente fica fora do plano daquela execução.
type FetchFailure struct {
	AdSetID string `json:"adset_id"`
	Window  Window `json:"window,omitempty"`
	Reason  string `json:"reason"`
}

// AccountDataset é o resultado de uma coleta do agregador de métricas
type AccountDataset struct {
	AccountID   string                  `json:"account_id"`
	CollectedAt time.Time               `json:"collected_at"`
	AdSets      []*AdSet                `json:"adsets"`
	Failures    []FetchFailure          `json:"failures,omitempty"`
	Flags       map[string]HistoryFlags `json:"flags,omitempty"`
}
