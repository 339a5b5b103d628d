package meta

import (
	"context"
	"fmt"
	"strconv"
	"time"

	metadomain "github.com/vfg2006/ads-optimizer-api/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/ads-optimizer-api/infrastructure/integrator/meta/metaclient"
	"github.com/vfg2006/ads-optimizer-api/internal/config"
	"github.com/vfg2006/ads-optimizer-api/internal/domain"
	"github.com/vfg2006/ads-optimizer-api/pkg/log"
)

// AdCreative é um anúncio a criar em um lançamento: nome e referência de
// criativo já resolvida para o objetivo da campanha
type AdCreative struct {
	Name string
	Ref  string
}

// LaunchResult identifica as entidades criadas em um lançamento. AdIDs segue
// a ordem dos criativos pedidos.
type LaunchResult struct {
	CampaignID string
	AdSetID    string
	AdIDs      []string
}

// Integrator é a fachada da plataforma de anúncios consumida pelos casos de
// uso. Todas as falhas retornam como *domain.PlatformError já classificado.
type Integrator interface {
	ListAdSets(ctx context.Context, externalAccountID string) ([]*domain.AdSet, error)
	FetchAdSetMetrics(ctx context.Context, adsetID string, now time.Time) (domain.AdSetMetrics, error)
	FetchLifetimeMetrics(ctx context.Context, adsetID string) (domain.MetricsWindow, error)
	ActiveCreativeRefs(ctx context.Context, externalAccountID string) (map[string]struct{}, error)

	PauseEntity(ctx context.Context, entityID string) error
	ActivateEntity(ctx context.Context, entityID string) error
	UpdateDailyBudget(ctx context.Context, adsetID string, dailyBudgetCents int64) error
	DuplicateAdSet(ctx context.Context, adsetID string, dailyBudgetCents int64, audienceSpec string) (string, error)
	LaunchCreativeTest(ctx context.Context, externalAccountID, name string, creatives []AdCreative, dailyBudgetCents int64) (*LaunchResult, error)
}

type MetaIntegrator struct {
	cfg    *config.Config
	Client metaclient.Client
}

func New(cfg *config.Config, client metaclient.Client) *MetaIntegrator {
	return &MetaIntegrator{
		cfg:    cfg,
		Client: client,
	}
}

// ListAdSets lista os adsets da conta já normalizados para o modelo interno
func (s *MetaIntegrator) ListAdSets(ctx context.Context, externalAccountID string) ([]*domain.AdSet, error) {
	raw, err := s.Client.ListAdSets(ctx, externalAccountID)
	if err != nil {
		log.ForContext(ctx).WithFields(log.Fields{
			"account_id": externalAccountID,
			"error":      err.Error(),
		}).Error("Falha ao listar os adsets da conta")
		return nil, err
	}

	adsets := make([]*domain.AdSet, 0, len(raw))
	for _, r := range raw {
		adsets = append(adsets, factoryAdSet(externalAccountID, r))
	}

	log.ForContext(ctx).WithFields(log.Fields{
		"account_id": externalAccountID,
		"adsets":     len(adsets),
	}).Debug("Adsets da conta listados com sucesso")

	return adsets, nil
}

// FetchAdSetMetrics coleta as quatro janelas de métricas de um adset.
// Janelas sem entrega ficam zeradas.
func (s *MetaIntegrator) FetchAdSetMetrics(ctx context.Context, adsetID string, now time.Time) (domain.AdSetMetrics, error) {
	var metrics domain.AdSetMetrics

	today := now
	yesterday := now.AddDate(0, 0, -1)

	ranges := []struct {
		window domain.Window
		since  time.Time
		until  time.Time
	}{
		{domain.WindowToday, today, today},
		{domain.WindowYesterday, yesterday, yesterday},
		{domain.WindowLast3d, now.AddDate(0, 0, -3), yesterday},
		{domain.WindowLast7d, now.AddDate(0, 0, -7), yesterday},
	}

	for _, r := range ranges {
		row, err := s.Client.GetAdSetInsights(ctx, adsetID, r.since, r.until)
		if err != nil {
			return metrics, fmt.Errorf("erro ao coletar a janela %s do adset %s: %w", r.window, adsetID, err)
		}
		if row == nil {
			continue
		}

		target := metrics.ByWindow(r.window)
		*target = row.ToMetricsWindow()
	}

	return metrics, nil
}

// FetchLifetimeMetrics coleta as métricas acumuladas de um adset
func (s *MetaIntegrator) FetchLifetimeMetrics(ctx context.Context, adsetID string) (domain.MetricsWindow, error) {
	row, err := s.Client.GetAdSetLifetimeInsights(ctx, adsetID)
	if err != nil {
		return domain.MetricsWindow{}, err
	}
	if row == nil {
		return domain.MetricsWindow{}, nil
	}
	return row.ToMetricsWindow(), nil
}

// ActiveCreativeRefs devolve o conjunto de IDs de criativo referenciados por
// anúncios ativos da conta
func (s *MetaIntegrator) ActiveCreativeRefs(ctx context.Context, externalAccountID string) (map[string]struct{}, error) {
	ads, err := s.Client.ListActiveAds(ctx, externalAccountID)
	if err != nil {
		return nil, err
	}

	refs := make(map[string]struct{}, len(ads))
	for _, ad := range ads {
		if ad.Creative.ID != "" {
			refs[ad.Creative.ID] = struct{}{}
		}
	}

	return refs, nil
}

// PauseEntity pausa uma campanha, adset ou anúncio
func (s *MetaIntegrator) PauseEntity(ctx context.Context, entityID string) error {
	return s.Client.UpdateEntityStatus(ctx, entityID, "PAUSED")
}

// ActivateEntity ativa uma campanha, adset ou anúncio
func (s *MetaIntegrator) ActivateEntity(ctx context.Context, entityID string) error {
	return s.Client.UpdateEntityStatus(ctx, entityID, "ACTIVE")
}

// UpdateDailyBudget altera o orçamento diário de um adset
func (s *MetaIntegrator) UpdateDailyBudget(ctx context.Context, adsetID string, dailyBudgetCents int64) error {
	return s.Client.UpdateAdSetDailyBudget(ctx, adsetID, dailyBudgetCents)
}

// DuplicateAdSet duplica um adset para a audiência informada. A cópia nasce
// pausada, recebe a nova segmentação quando audienceSpec é informado e só
// então é ativada; o adset original não é alterado.
func (s *MetaIntegrator) DuplicateAdSet(ctx context.Context, adsetID string, dailyBudgetCents int64, audienceSpec string) (string, error) {
	copyID, err := s.Client.CopyAdSet(ctx, adsetID, dailyBudgetCents)
	if err != nil {
		return "", err
	}

	if audienceSpec != "" {
		if err := s.Client.UpdateAdSetTargeting(ctx, copyID, audienceSpec); err != nil {
			return copyID, fmt.Errorf("erro ao ajustar a audiência da cópia %s: %w", copyID, err)
		}
	}

	if err := s.Client.UpdateEntityStatus(ctx, copyID, "ACTIVE"); err != nil {
		return copyID, fmt.Errorf("erro ao ativar a cópia %s: %w", copyID, err)
	}

	return copyID, nil
}

// LaunchCreativeTest cria uma única cadeia campanha -> adset com um anúncio
// por criativo informado. A campanha e o adset nascem pausados; o chamador
// ativa a campanha após registrar o lançamento.
func (s *MetaIntegrator) LaunchCreativeTest(ctx context.Context, externalAccountID, name string, creatives []AdCreative, dailyBudgetCents int64) (*LaunchResult, error) {
	campaignID, err := s.Client.CreateCampaign(ctx, externalAccountID, name, "OUTCOME_LEADS")
	if err != nil {
		return nil, fmt.Errorf("erro ao criar a campanha do lançamento: %w", err)
	}

	adsetID, err := s.Client.CreateAdSet(ctx, externalAccountID, campaignID, name, dailyBudgetCents)
	if err != nil {
		return nil, fmt.Errorf("erro ao criar o adset do lançamento: %w", err)
	}

	adIDs := make([]string, 0, len(creatives))
	for _, creative := range creatives {
		adID, err := s.Client.CreateAd(ctx, externalAccountID, adsetID, creative.Name, creative.Ref)
		if err != nil {
			return nil, fmt.Errorf("erro ao criar o anúncio do criativo %s: %w", creative.Ref, err)
		}
		adIDs = append(adIDs, adID)
	}

	return &LaunchResult{
		CampaignID: campaignID,
		AdSetID:    adsetID,
		AdIDs:      adIDs,
	}, nil
}

func factoryAdSet(accountID string, r metadomain.AdSet) *domain.AdSet {
	budget, _ := strconv.ParseInt(r.DailyBudget, 10, 64)

	createdTime, err := time.Parse("2006-01-02T15:04:05-0700", r.CreatedTime)
	if err != nil {
		createdTime, _ = time.Parse(time.RFC3339, r.CreatedTime)
	}

	return &domain.AdSet{
		ID:               r.ID,
		CampaignID:       r.CampaignID,
		AccountID:        accountID,
		Name:             r.Name,
		Status:           domain.AdSetStatus(r.Status),
		DailyBudgetCents: budget,
		CreatedTime:      createdTime,
	}
}
