package evaluator

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/vfg2006/ads-optimizer-api/internal/config"
	"github.com/vfg2006/ads-optimizer-api/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// EvaluatorIntegrator envia métricas de testes concluídos para o serviço
// externo de avaliação de criativos
type EvaluatorIntegrator interface {
	Evaluate(ctx context.Context, test *domain.CreativeTest) (*domain.TestEvaluation, error)
}

type EvaluatorService struct {
	cfg        *config.Config
	httpClient *http.Client
}

func New(cfg *config.Config) EvaluatorIntegrator {
	timeout := time.Duration(cfg.Evaluator.TimeoutMs) * time.Millisecond
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &EvaluatorService{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Evaluate envia as métricas finais do teste e devolve o veredito
func (s *EvaluatorService) Evaluate(ctx context.Context, test *domain.CreativeTest) (*domain.TestEvaluation, error) {
	payload, err := json.Marshal(NewEvaluationRequest(test))
	if err != nil {
		return nil, fmt.Errorf("erro ao serializar o payload de avaliação: %w", err)
	}

	requestURL := fmt.Sprintf("%s/evaluations", s.cfg.Evaluator.URL)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, requestURL, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("erro ao criar a requisição de avaliação: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.cfg.Evaluator.AccessToken)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("erro ao chamar o serviço de avaliação: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("serviço de avaliação retornou status %d", resp.StatusCode)
	}

	var response EvaluationResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("erro ao decodificar a resposta da avaliação: %w", err)
	}

	return response.ToTestEvaluation(), nil
}
