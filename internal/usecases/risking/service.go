package risking

import (
	"context"
	"time"

	"github.com/vfg2006/ads-optimizer-api/infrastructure/integrator/meta"
	"github.com/vfg2006/ads-optimizer-api/infrastructure/repository"
	"github.com/vfg2006/ads-optimizer-api/internal/domain"
	"github.com/vfg2006/ads-optimizer-api/pkg/log"
)

// Assessment agrupa o resultado da análise de risco de uma conta
type Assessment struct {
	Records       []*domain.RiskRecord
	FatigueAlerts []domain.FatigueAlert
	BudgetEaters  []domain.BudgetEater
	UnusedAssets  []*domain.CreativeAsset
}

// Predictor executa a análise de risco de uma conta: score por adset,
// alertas de fadiga, comedores de verba e criativos não utilizados
type Predictor interface {
	AssessAccount(
		ctx context.Context,
		account *domain.AdAccount,
		dataset *domain.AccountDataset,
		cfg domain.ScoringConfig,
		runID string,
		now time.Time,
	) (*Assessment, error)
}

// Service implementa a interface Predictor
type Service struct {
	metaService             meta.Integrator
	riskRecordRepository    repository.RiskRecordRepository
	creativeAssetRepository repository.CreativeAssetRepository
}

// NewService cria uma nova instância do preditor de risco
func NewService(
	metaService meta.Integrator,
	riskRecordRepository repository.RiskRecordRepository,
	creativeAssetRepository repository.CreativeAssetRepository,
) Predictor {
	return &Service{
		metaService:             metaService,
		riskRecordRepository:    riskRecordRepository,
		creativeAssetRepository: creativeAssetRepository,
	}
}

// AssessAccount calcula o risco de cada adset do dataset e grava os
// registros da execução. Fadiga e comedores de verba derivam do mesmo
// dataset; criativos não utilizados cruzam o catálogo da conta com as
// referências ativas na plataforma.
func (s *Service) AssessAccount(
	ctx context.Context,
	account *domain.AdAccount,
	dataset *domain.AccountDataset,
	cfg domain.ScoringConfig,
	runID string,
	now time.Time,
) (*Assessment, error) {
	logger := log.ForContext(ctx).WithFields(log.Fields{
		"account_id": account.ID,
		"run_id":     runID,
	})

	assessment := &Assessment{
		Records:      make([]*domain.RiskRecord, 0, len(dataset.AdSets)),
		BudgetEaters: DetectBudgetEaters(dataset.AdSets, cfg),
	}

	for _, adset := range dataset.AdSets {
		record := ComputeRisk(adset, cfg)
		record.RunID = runID
		record.AccountID = account.ID
		record.CreatedAt = now

		assessment.Records = append(assessment.Records, record)

		if alert := DetectFatigue(adset, cfg); alert != nil {
			assessment.FatigueAlerts = append(assessment.FatigueAlerts, *alert)
		}
	}

	if len(assessment.Records) > 0 {
		if err := s.riskRecordRepository.SaveRecords(ctx, assessment.Records); err != nil {
			logger.WithError(err).Error("Falha ao gravar os registros de risco da execução")
			return nil, err
		}
	}

	unused, err := s.findUnusedAssets(ctx, account)
	if err != nil {
		// A análise principal não depende do catálogo de criativos
		logger.WithError(err).Warn("Falha ao cruzar o catálogo de criativos; seguindo sem a lista de não utilizados")
	} else {
		assessment.UnusedAssets = unused
	}

	logger.WithFields(log.Fields{
		"records":        len(assessment.Records),
		"fatigue_alerts": len(assessment.FatigueAlerts),
		"budget_eaters":  len(assessment.BudgetEaters),
		"unused_assets":  len(assessment.UnusedAssets),
	}).Info("Análise de risco da conta concluída")

	return assessment, nil
}

// findUnusedAssets devolve os assets prontos do catálogo cujas referências
// de criativo não aparecem em nenhum anúncio ativo da conta
func (s *Service) findUnusedAssets(ctx context.Context, account *domain.AdAccount) ([]*domain.CreativeAsset, error) {
	assets, err := s.creativeAssetRepository.ListAssets(ctx, account.ID, true)
	if err != nil {
		return nil, err
	}
	if len(assets) == 0 {
		return nil, nil
	}

	activeRefs, err := s.metaService.ActiveCreativeRefs(ctx, account.ExternalID)
	if err != nil {
		return nil, err
	}

	unused := make([]*domain.CreativeAsset, 0)
	for _, asset := range assets {
		if !asset.IsUsed(activeRefs) {
			unused = append(unused, asset)
		}
	}

	return unused, nil
}
