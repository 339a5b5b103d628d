package metaclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	metadomain "github.com/vfg2006/ads-optimizer-api/infrastructure/integrator/meta/domain"
)

const insightFields = "impressions,clicks,spend,ctr,cpm,frequency,actions,date_start,date_stop"

type responseInsights struct {
	Data []metadomain.InsightRow `json:"data"`
}

// GetAdSetInsights busca os insights agregados de um adset na janela dada.
// Retorna nil quando não houve entrega no período.
func (c *MetaClient) GetAdSetInsights(ctx context.Context, adsetID string, since, until time.Time) (*metadomain.InsightRow, error) {
	if err := c.EnsureValidToken(); err != nil {
		return nil, fmt.Errorf("erro ao verificar validade do token: %w", err)
	}

	timeRange := fmt.Sprintf("{\"since\":\"%s\",\"until\":\"%s\"}", since.Format(time.DateOnly), until.Format(time.DateOnly))

	params := url.Values{}
	params.Add("fields", insightFields)
	params.Add("time_range", timeRange)
	params.Add("access_token", c.Cfg.Meta.AccessToken)

	requestURL := fmt.Sprintf("%s/%s/insights?%s", c.Cfg.Meta.URL, adsetID, params.Encode())

	return c.fetchInsightRow(ctx, requestURL)
}

// GetAdSetLifetimeInsights busca os insights acumulados desde a criação do
// adset (usado pelos testes de criativo)
func (c *MetaClient) GetAdSetLifetimeInsights(ctx context.Context, adsetID string) (*metadomain.InsightRow, error) {
	if err := c.EnsureValidToken(); err != nil {
		return nil, fmt.Errorf("erro ao verificar validade do token: %w", err)
	}

	params := url.Values{}
	params.Add("fields", insightFields)
	params.Add("date_preset", "maximum")
	params.Add("access_token", c.Cfg.Meta.AccessToken)

	requestURL := fmt.Sprintf("%s/%s/insights?%s", c.Cfg.Meta.URL, adsetID, params.Encode())

	return c.fetchInsightRow(ctx, requestURL)
}

func (c *MetaClient) fetchInsightRow(ctx context.Context, requestURL string) (*metadomain.InsightRow, error) {
	body, err := c.doRequest(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, err
	}

	var response responseInsights
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("erro ao decodificar os insights: %w", err)
	}

	// Sem entrega na janela a API retorna data vazio
	if len(response.Data) == 0 {
		return nil, nil
	}

	return &response.Data[0], nil
}
