package metaclient

import (
	"context"
	"net/http"
	"time"

	metadomain "github.com/vfg2006/ads-optimizer-api/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/ads-optimizer-api/internal/config"
)

type Client interface {
	ListAdSets(ctx context.Context, accountID string) ([]metadomain.AdSet, error)
	GetAdSetInsights(ctx context.Context, adsetID string, since, until time.Time) (*metadomain.InsightRow, error)
	GetAdSetLifetimeInsights(ctx context.Context, adsetID string) (*metadomain.InsightRow, error)
	ListActiveAds(ctx context.Context, accountID string) ([]metadomain.Ad, error)

	UpdateEntityStatus(ctx context.Context, entityID, status string) error
	UpdateAdSetDailyBudget(ctx context.Context, adsetID string, dailyBudgetCents int64) error
	UpdateAdSetTargeting(ctx context.Context, adsetID, targetingSpec string) error
	CopyAdSet(ctx context.Context, adsetID string, dailyBudgetCents int64) (string, error)
	CreateCampaign(ctx context.Context, accountID, name, objective string) (string, error)
	CreateAdSet(ctx context.Context, accountID, campaignID, name string, dailyBudgetCents int64) (string, error)
	CreateAd(ctx context.Context, accountID, adsetID, name, creativeID string) (string, error)

	RefreshToken() error
	EnsureValidToken() error
}

type MetaClient struct {
	Cfg          *config.Config
	TokenManager *TokenManager
	httpClient   *http.Client
}

func NewClient(cfg *config.Config, tokenManager *TokenManager) Client {
	timeout := time.Duration(cfg.Meta.RequestTimeoutMs) * time.Millisecond
	if timeout <= 0 {
		timeout = 20 * time.Second
	}

	return &MetaClient{
		Cfg:          cfg,
		TokenManager: tokenManager,
		httpClient:   &http.Client{Timeout: timeout},
	}
}

// RefreshToken obtém um novo token de longa duração
func (c *MetaClient) RefreshToken() error {
	return c.TokenManager.RefreshToken()
}

// EnsureValidToken verifica se o token atual é válido e tenta renová-lo se necessário
func (c *MetaClient) EnsureValidToken() error {
	return c.TokenManager.EnsureValidToken()
}
