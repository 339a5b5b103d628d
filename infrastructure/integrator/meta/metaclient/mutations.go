package metaclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	metadomain "github.com/vfg2006/ads-optimizer-api/infrastructure/integrator/meta/domain"
)

// UpdateEntityStatus altera o status de uma campanha, adset ou anúncio.
// O endpoint é o mesmo para os três níveis.
func (c *MetaClient) UpdateEntityStatus(ctx context.Context, entityID, status string) error {
	if err := c.EnsureValidToken(); err != nil {
		return fmt.Errorf("erro ao verificar validade do token: %w", err)
	}

	form := url.Values{}
	form.Add("status", status)
	form.Add("access_token", c.Cfg.Meta.AccessToken)

	requestURL := fmt.Sprintf("%s/%s", c.Cfg.Meta.URL, entityID)

	_, err := c.doRequest(ctx, http.MethodPost, requestURL, form)
	return err
}

// UpdateAdSetDailyBudget altera o orçamento diário de um adset, em centavos
func (c *MetaClient) UpdateAdSetDailyBudget(ctx context.Context, adsetID string, dailyBudgetCents int64) error {
	if err := c.EnsureValidToken(); err != nil {
		return fmt.Errorf("erro ao verificar validade do token: %w", err)
	}

	form := url.Values{}
	form.Add("daily_budget", strconv.FormatInt(dailyBudgetCents, 10))
	form.Add("access_token", c.Cfg.Meta.AccessToken)

	requestURL := fmt.Sprintf("%s/%s", c.Cfg.Meta.URL, adsetID)

	_, err := c.doRequest(ctx, http.MethodPost, requestURL, form)
	return err
}

// UpdateAdSetTargeting substitui a segmentação de um adset pelo spec
// informado (JSON no formato de targeting da plataforma)
func (c *MetaClient) UpdateAdSetTargeting(ctx context.Context, adsetID, targetingSpec string) error {
	if err := c.EnsureValidToken(); err != nil {
		return fmt.Errorf("erro ao verificar validade do token: %w", err)
	}

	form := url.Values{}
	form.Add("targeting", targetingSpec)
	form.Add("access_token", c.Cfg.Meta.AccessToken)

	requestURL := fmt.Sprintf("%s/%s", c.Cfg.Meta.URL, adsetID)

	_, err := c.doRequest(ctx, http.MethodPost, requestURL, form)
	return err
}

// CopyAdSet duplica um adset com um novo orçamento diário. A cópia nasce
// pausada com a segmentação original; o chamador ajusta a audiência e ativa.
func (c *MetaClient) CopyAdSet(ctx context.Context, adsetID string, dailyBudgetCents int64) (string, error) {
	if err := c.EnsureValidToken(); err != nil {
		return "", fmt.Errorf("erro ao verificar validade do token: %w", err)
	}

	form := url.Values{}
	form.Add("deep_copy", "true")
	form.Add("status_option", "PAUSED")
	form.Add("rename_options", `{"rename_strategy":"ONLY_TOP_LEVEL_RENAME","rename_suffix":" - copy"}`)
	if dailyBudgetCents > 0 {
		form.Add("daily_budget", strconv.FormatInt(dailyBudgetCents, 10))
	}
	form.Add("access_token", c.Cfg.Meta.AccessToken)

	requestURL := fmt.Sprintf("%s/%s/copies", c.Cfg.Meta.URL, adsetID)

	body, err := c.doRequest(ctx, http.MethodPost, requestURL, form)
	if err != nil {
		return "", err
	}

	var result metadomain.CopyResult
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("erro ao decodificar a resposta da cópia: %w", err)
	}

	return result.ResolvedCopyID(), nil
}

// CreateCampaign cria uma campanha pausada com o objetivo informado
func (c *MetaClient) CreateCampaign(ctx context.Context, accountID, name, objective string) (string, error) {
	form := url.Values{}
	form.Add("name", name)
	form.Add("objective", objective)
	form.Add("status", "PAUSED")
	form.Add("special_ad_categories", "[]")

	requestURL := fmt.Sprintf("%s/act_%s/campaigns", c.Cfg.Meta.URL, accountID)

	return c.create(ctx, requestURL, form)
}

// CreateAdSet cria um adset pausado dentro da campanha informada
func (c *MetaClient) CreateAdSet(ctx context.Context, accountID, campaignID, name string, dailyBudgetCents int64) (string, error) {
	form := url.Values{}
	form.Add("name", name)
	form.Add("campaign_id", campaignID)
	form.Add("daily_budget", strconv.FormatInt(dailyBudgetCents, 10))
	form.Add("billing_event", "IMPRESSIONS")
	form.Add("optimization_goal", "LEAD_GENERATION")
	form.Add("status", "PAUSED")

	requestURL := fmt.Sprintf("%s/act_%s/adsets", c.Cfg.Meta.URL, accountID)

	return c.create(ctx, requestURL, form)
}

// CreateAd cria um anúncio ativo apontando para o criativo informado
func (c *MetaClient) CreateAd(ctx context.Context, accountID, adsetID, name, creativeID string) (string, error) {
	form := url.Values{}
	form.Add("name", name)
	form.Add("adset_id", adsetID)
	form.Add("creative", fmt.Sprintf(`{"creative_id":"%s"}`, creativeID))
	form.Add("status", "ACTIVE")

	requestURL := fmt.Sprintf("%s/act_%s/ads", c.Cfg.Meta.URL, accountID)

	return c.create(ctx, requestURL, form)
}

func (c *MetaClient) create(ctx context.Context, requestURL string, form url.Values) (string, error) {
	if err := c.EnsureValidToken(); err != nil {
		return "", fmt.Errorf("erro ao verificar validade do token: %w", err)
	}

	form.Add("access_token", c.Cfg.Meta.AccessToken)

	body, err := c.doRequest(ctx, http.MethodPost, requestURL, form)
	if err != nil {
		return "", err
	}

	var result metadomain.CreateResult
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("erro ao decodificar a resposta de criação: %w", err)
	}

	return result.ID, nil
}
