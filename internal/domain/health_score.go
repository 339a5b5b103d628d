package domain

import "time"

// HealthClass classifica o Health Score de um adset
type HealthClass string

const (
	HealthVeryGood    HealthClass = "very_good"
	HealthGood        HealthClass = "good"
	HealthNeutral     HealthClass = "neutral"
	HealthSlightlyBad HealthClass = "slightly_bad"
	HealthBad         HealthClass = "bad"
)

// HealthComponents detalha a composição do Health Score
type HealthComponents struct {
	CPRGap          float64 `json:"cpr_gap"`          // ±45
	Trend           float64 `json:"trend"`            // ±15
	Diagnostics     float64 `json:"diagnostics"`      // até -30
	TodayAdjustment float64 `json:"today_adjustment"` // compensação pelo CPR de hoje
	VolumeFactor    float64 `json:"volume_factor"`    // 0.6..1.0
}

// HealthScoreRecord é o resultado do cálculo de Health Score de um adset em
// uma execução. Nunca é alterado; a próxima execução cria um novo registro.
type HealthScoreRecord struct {
	ID         int64            `json:"id"`
	RunID      string           `json:"run_id"`
	AccountID  string           `json:"account_id"`
	AdSetID    string           `json:"adset_id"`
	AdSetName  string           `json:"adset_name"`
	Score      int              `json:"score"`
	Class      HealthClass      `json:"class"`
	Components HealthComponents `json:"components"`

	// Contexto usado no cálculo
	TargetCPR        float64      `json:"target_cpr"`
	CPRYesterday     float64      `json:"cpr_yesterday"`
	CPRToday         float64      `json:"cpr_today"`
	ImpressionsToday int          `json:"impressions_today"`
	Flags            HistoryFlags `json:"flags"`

	CreatedAt time.Time `json:"created_at"`
}

// IsUnderperforming indica se o adset precisa de intervenção
func (h *HealthScoreRecord) IsUnderperforming() bool {
	return h.Class == HealthBad || h.Class == HealthSlightlyBad
}
