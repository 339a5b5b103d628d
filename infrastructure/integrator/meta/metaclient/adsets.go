package metaclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	metadomain "github.com/vfg2006/ads-optimizer-api/infrastructure/integrator/meta/domain"
)

type responseAdSets struct {
	Data   []metadomain.AdSet `json:"data"`
	Paging struct {
		Next string `json:"next"`
	} `json:"paging"`
}

type responseAds struct {
	Data   []metadomain.Ad `json:"data"`
	Paging struct {
		Next string `json:"next"`
	} `json:"paging"`
}

// ListAdSets lista os adsets ativos e pausados da conta, seguindo a paginação
func (c *MetaClient) ListAdSets(ctx context.Context, accountID string) ([]metadomain.AdSet, error) {
	if err := c.EnsureValidToken(); err != nil {
		return nil, fmt.Errorf("erro ao verificar validade do token: %w", err)
	}

	params := url.Values{}
	params.Add("fields", "id,name,campaign_id,status,daily_budget,created_time")
	params.Add("filtering", `[{"field":"effective_status","operator":"IN","value":["ACTIVE","PAUSED"]}]`)
	params.Add("limit", "100")
	params.Add("access_token", c.Cfg.Meta.AccessToken)

	requestURL := fmt.Sprintf("%s/act_%s/adsets?%s", c.Cfg.Meta.URL, accountID, params.Encode())

	var adsets []metadomain.AdSet
	for requestURL != "" {
		body, err := c.doRequest(ctx, http.MethodGet, requestURL, nil)
		if err != nil {
			return nil, err
		}

		var response responseAdSets
		if err := json.Unmarshal(body, &response); err != nil {
			return nil, fmt.Errorf("erro ao decodificar a lista de adsets: %w", err)
		}

		adsets = append(adsets, response.Data...)
		requestURL = response.Paging.Next
	}

	return adsets, nil
}

// ListActiveAds lista os anúncios ativos da conta com suas referências de
// criativo, seguindo a paginação
func (c *MetaClient) ListActiveAds(ctx context.Context, accountID string) ([]metadomain.Ad, error) {
	if err := c.EnsureValidToken(); err != nil {
		return nil, fmt.Errorf("erro ao verificar validade do token: %w", err)
	}

	params := url.Values{}
	params.Add("fields", "id,name,status,creative{id}")
	params.Add("filtering", `[{"field":"effective_status","operator":"IN","value":["ACTIVE"]}]`)
	params.Add("limit", "100")
	params.Add("access_token", c.Cfg.Meta.AccessToken)

	requestURL := fmt.Sprintf("%s/act_%s/ads?%s", c.Cfg.Meta.URL, accountID, params.Encode())

	var ads []metadomain.Ad
	for requestURL != "" {
		body, err := c.doRequest(ctx, http.MethodGet, requestURL, nil)
		if err != nil {
			return nil, err
		}

		var response responseAds
		if err := json.Unmarshal(body, &response); err != nil {
			return nil, fmt.Errorf("erro ao decodificar a lista de anúncios: %w", err)
		}

		ads = append(ads, response.Data...)
		requestURL = response.Paging.Next
	}

	return ads, nil
}
