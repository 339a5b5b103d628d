package metaclient

import (
	"context"
	"encoding/json"
	"io"
	"math/rand"
	"net/http"
	"net/url"
	"strings"
	"time"

	metadomain "github.com/vfg2006/ads-optimizer-api/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/ads-optimizer-api/internal/domain"
	"github.com/vfg2006/ads-optimizer-api/pkg/log"
)

// doRequest executa uma chamada à API Graph com retentativas. Apenas falhas
// transitórias (rede, 5xx, limite de requisições) são retentadas, com backoff
// exponencial e jitter. Token expirado dispara uma única renovação.
func (c *MetaClient) doRequest(ctx context.Context, method, requestURL string, form url.Values) ([]byte, error) {
	maxRetries := c.Cfg.Meta.MaxRetries
	if maxRetries <= 0 {
		maxRetries = 1
	}

	tokenRefreshed := false

	var lastErr *domain.PlatformError
	for attempt := 0; attempt <= maxRetries; attempt++ {
		body, perr := c.attempt(ctx, method, requestURL, form)
		if perr == nil {
			return body, nil
		}
		lastErr = perr

		if perr.Kind == domain.FailureExpiredCredential && !tokenRefreshed {
			tokenRefreshed = true
			if refreshErr := c.TokenManager.RefreshToken(); refreshErr == nil {
				log.ForContext(ctx).Info("Token renovado após resposta de credencial expirada, repetindo a chamada")
				continue
			}
			return nil, perr
		}

		if !perr.Kind.IsRetryable() || attempt == maxRetries {
			return nil, perr
		}

		wait := c.backoffDelay(attempt)
		log.ForContext(ctx).WithFields(log.Fields{
			"attempt":  attempt + 1,
			"wait_ms":  wait.Milliseconds(),
			"kind":     string(perr.Kind),
			"api_code": perr.Code,
		}).Warn("Falha transitória na API Graph, aguardando para retentar")

		select {
		case <-ctx.Done():
			return nil, domain.NewPlatformError(domain.FailureTransientNetwork, 0, ctx.Err().Error())
		case <-time.After(wait):
		}
	}

	return nil, lastErr
}

// attempt executa uma única chamada e classifica o resultado
func (c *MetaClient) attempt(ctx context.Context, method, requestURL string, form url.Values) ([]byte, *domain.PlatformError) {
	var reqBody io.Reader
	if method == http.MethodPost && form != nil {
		reqBody = strings.NewReader(form.Encode())
	}

	req, err := http.NewRequestWithContext(ctx, method, requestURL, reqBody)
	if err != nil {
		return nil, domain.NewPlatformError(domain.FailureInvalidParameters, 0, err.Error())
	}
	if reqBody != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, domain.NewPlatformError(domain.FailureTransientNetwork, 0, err.Error())
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, domain.NewPlatformError(domain.FailureTransientNetwork, 0, err.Error())
	}

	if resp.StatusCode == http.StatusOK {
		return body, nil
	}

	var errorResp metadomain.ErrorResponse
	if err := json.Unmarshal(body, &errorResp); err == nil && errorResp.Error.Code != 0 {
		return nil, errorResp.ToPlatformError()
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, domain.NewPlatformError(domain.FailureRateLimited, resp.StatusCode, string(body))
	}
	if resp.StatusCode >= 500 {
		return nil, domain.NewPlatformError(domain.FailureTransientNetwork, resp.StatusCode, string(body))
	}

	return nil, domain.NewPlatformError(domain.FailureUnknown, resp.StatusCode, string(body))
}

// backoffDelay calcula o atraso exponencial com jitter para a tentativa
func (c *MetaClient) backoffDelay(attempt int) time.Duration {
	base := time.Duration(c.Cfg.Meta.BackoffBaseMs) * time.Millisecond
	if base <= 0 {
		base = 500 * time.Millisecond
	}
	max := time.Duration(c.Cfg.Meta.BackoffMaxMs) * time.Millisecond
	if max <= 0 {
		max = 15 * time.Second
	}

	delay := base << attempt
	if delay > max {
		delay = max
	}

	// Jitter de até 50% para espalhar as retentativas
	jitter := time.Duration(rand.Int63n(int64(delay)/2 + 1))
	return delay + jitter
}
