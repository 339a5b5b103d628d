package domain

import "time"

// CreativeTestStatus é o estado de um teste de criativo.
// Transições são estritamente progressivas: pending -> running ->
// {completed, failed, cancelled}; estados terminais são finais.
type CreativeTestStatus string

const (
	TestPending   CreativeTestStatus = "pending"
	TestRunning   CreativeTestStatus = "running"
	TestCompleted CreativeTestStatus = "completed"
	TestFailed    CreativeTestStatus = "failed"
	TestCancelled CreativeTestStatus = "cancelled"
)

// IsTerminal indica se o status não admite mais transições
func (s CreativeTestStatus) IsTerminal() bool {
	return s == TestCompleted || s == TestFailed || s == TestCancelled
}

// CanTransition valida uma transição de estado
func (s CreativeTestStatus) CanTransition(to CreativeTestStatus) bool {
	switch s {
	case TestPending:
		return to == TestRunning || to == TestCancelled
	case TestRunning:
		return to == TestCompleted || to == TestFailed || to == TestCancelled
	}
	return false
}

// TestEvaluation é o veredito devolvido pelo serviço externo de avaliação.
// Este sistema armazena o resultado; não o calcula.
type TestEvaluation struct {
	Score          float64 `json:"score"`
	Verdict        string  `json:"verdict"`
	Recommendation string  `json:"recommendation"`
}

// CreativeTest é um experimento limitado por orçamento e impressões para
// um único criativo
type CreativeTest struct {
	ID                  string             `json:"id"`
	AccountID           string             `json:"account_id"`
	CreativeID          string             `json:"creative_id"`
	CampaignID          string             `json:"campaign_id"`
	AdSetID             string             `json:"adset_id"`
	AdID                string             `json:"ad_id"`
	Status              CreativeTestStatus `json:"status"`
	ImpressionThreshold int                `json:"impression_threshold"`
	DailyBudgetCents    int64              `json:"daily_budget_cents"`
	Metrics             MetricsWindow      `json:"metrics"`
	Evaluation          *TestEvaluation    `json:"evaluation,omitempty"`
	CreatedAt           time.Time          `json:"created_at"`
	CompletedAt         *time.Time         `json:"completed_at,omitempty"`
}

// ReachedThreshold indica se o teste acumulou impressões suficientes
func (t *CreativeTest) ReachedThreshold() bool {
	return t.Metrics.Impressions >= t.ImpressionThreshold
}
