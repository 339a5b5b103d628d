package domain

import "time"

// RiskLevel classifica o risco de fadiga de um criativo/adset
type RiskLevel string

const (
	RiskLow      RiskLevel = "low"
	RiskMedium   RiskLevel = "medium"
	RiskHigh     RiskLevel = "high"
	RiskCritical RiskLevel = "critical"
)

// RiskConfidence qualifica a confiança da projeção
type RiskConfidence string

const (
	ConfidenceHigh   RiskConfidence = "high"
	ConfidenceMedium RiskConfidence = "medium"
	ConfidenceLow    RiskConfidence = "low"
)

// RiskTrend descreve a direção do CPR recente
type RiskTrend string

const (
	TrendImproving RiskTrend = "improving"
	TrendStable    RiskTrend = "stable"
	TrendDeclining RiskTrend = "declining"
)

// RiskRecommendation é a recomendação derivada do nível de risco
type RiskRecommendation string

const (
	RecommendScale   RiskRecommendation = "scale"
	RecommendMonitor RiskRecommendation = "monitor"
	RecommendReduce  RiskRecommendation = "reduce"
	RecommendPause   RiskRecommendation = "pause"
)

// RiskRecord é o resultado da predição de risco para um par criativo/adset
// em uma execução. Assim como o HealthScoreRecord, nunca é alterado.
type RiskRecord struct {
	ID             int64              `json:"id"`
	RunID          string             `json:"run_id"`
	AccountID      string             `json:"account_id"`
	AdSetID        string             `json:"adset_id"`
	CreativeID     string             `json:"creative_id,omitempty"`
	Score          int                `json:"score"` // 0-100
	Level          RiskLevel          `json:"level"`
	PredictedCPR   float64            `json:"predicted_cpr"`
	HorizonDays    int                `json:"horizon_days"`
	Confidence     RiskConfidence     `json:"confidence"`
	Trend          RiskTrend          `json:"trend"`
	Recommendation RiskRecommendation `json:"recommendation"`
	Reasons        []string           `json:"reasons"`
	CreatedAt      time.Time          `json:"created_at"`
}

// BudgetEaterPriority prioriza anúncios que consomem orçamento sem resultado
type BudgetEaterPriority string

const (
	EaterCritical BudgetEaterPriority = "CRITICAL" // CPR > 3x o alvo
	EaterHigh     BudgetEaterPriority = "HIGH"     // zero resultados com gasto relevante
	EaterMedium   BudgetEaterPriority = "MEDIUM"   // CPR alto concentrando o gasto do adset
)

// BudgetEater identifica um adset que consome o orçamento da campanha sem
// retorno proporcional ("comedor de verba")
type BudgetEater struct {
	AdSetID          string              `json:"adset_id"`
	AdSetName        string              `json:"adset_name"`
	CampaignID       string              `json:"campaign_id"`
	Spend            float64             `json:"spend"`
	Results          int                 `json:"results"`
	CPR              float64             `json:"cpr"`
	SpendSharePct    float64             `json:"spend_share_pct"`
	Priority         BudgetEaterPriority `json:"priority"`
	Reason           string              `json:"reason"`
	LastInCampaign   bool                `json:"last_in_campaign"`
}

// FatigueAlert sinaliza fadiga de audiência para um criativo
type FatigueAlert struct {
	CreativeID     string  `json:"creative_id"`
	Frequency      float64 `json:"frequency"`
	CTRCurrent     float64 `json:"ctr_current"`
	CTRBaseline    float64 `json:"ctr_baseline"`
	CTRDeclinePct  float64 `json:"ctr_decline_pct"`
	Urgent         bool    `json:"urgent"`
	Recommendation string  `json:"recommendation"`
}
