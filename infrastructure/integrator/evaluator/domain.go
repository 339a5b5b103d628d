package evaluator

import "github.com/vfg2006/ads-optimizer-api/internal/domain"

// EvaluationRequest é o payload enviado ao serviço de avaliação de criativos
type EvaluationRequest struct {
	TestID      string  `json:"test_id"`
	AccountID   string  `json:"account_id"`
	CreativeID  string  `json:"creative_id"`
	Impressions int     `json:"impressions"`
	Clicks      int     `json:"clicks"`
	Spend       float64 `json:"spend"`
	Results     int     `json:"results"`
	CTR         float64 `json:"ctr"`
	CPM         float64 `json:"cpm"`
	Frequency   float64 `json:"frequency"`
}

// EvaluationResponse é o veredito devolvido pelo serviço de avaliação
type EvaluationResponse struct {
	Score          float64 `json:"score"`
	Verdict        string  `json:"verdict"`
	Recommendation string  `json:"recommendation"`
}

// ToTestEvaluation converte a resposta para o modelo interno
func (r *EvaluationResponse) ToTestEvaluation() *domain.TestEvaluation {
	return &domain.TestEvaluation{
		Score:          r.Score,
		Verdict:        r.Verdict,
		Recommendation: r.Recommendation,
	}
}

// NewEvaluationRequest monta o payload a partir de um teste concluído
func NewEvaluationRequest(test *domain.CreativeTest) EvaluationRequest {
	return EvaluationRequest{
		TestID:      test.ID,
		AccountID:   test.AccountID,
		CreativeID:  test.CreativeID,
		Impressions: test.Metrics.Impressions,
		Clicks:      test.Metrics.Clicks,
		Spend:       test.Metrics.Spend,
		Results:     test.Metrics.Results,
		CTR:         test.Metrics.CTR,
		CPM:         test.Metrics.CPM,
		Frequency:   test.Metrics.Frequency,
	}
}
