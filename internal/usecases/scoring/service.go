package scoring

import (
	"context"
	"time"

	"github.com/vfg2006/ads-optimizer-api/infrastructure/repository"
	"github.com/vfg2006/ads-optimizer-api/internal/domain"
	"github.com/vfg2006/ads-optimizer-api/pkg/log"
)

// Scorer calcula e persiste o Health Score de todos os adsets de um dataset
type Scorer interface {
	ScoreAccount(
		ctx context.Context,
		account *domain.AdAccount,
		dataset *domain.AccountDataset,
		cfg domain.ScoringConfig,
		runID string,
		now time.Time,
	) ([]*domain.HealthScoreRecord, error)
}

// Service implementa a interface Scorer
type Service struct {
	healthScoreRepository repository.HealthScoreRepository
}

// NewService cria uma nova instância do motor de Health Score
func NewService(healthScoreRepository repository.HealthScoreRepository) Scorer {
	return &Service{
		healthScoreRepository: healthScoreRepository,
	}
}

// ScoreAccount calcula o Health Score de cada adset do dataset e grava os
// registros da execução. Os registros são imutáveis: a próxima execução
// produz um novo lote em vez de reescrever o anterior.
func (s *Service) ScoreAccount(
	ctx context.Context,
	account *domain.AdAccount,
	dataset *domain.AccountDataset,
	cfg domain.ScoringConfig,
	runID string,
	now time.Time,
) ([]*domain.HealthScoreRecord, error) {
	medianCPM := MedianCPM(dataset.AdSets)

	records := make([]*domain.HealthScoreRecord, 0, len(dataset.AdSets))
	for _, adset := range dataset.AdSets {
		record := ComputeScore(adset, dataset.Flags[adset.ID], cfg, medianCPM)
		record.RunID = runID
		record.AccountID = account.ID
		record.CreatedAt = now

		records = append(records, record)
	}

	if len(records) > 0 {
		if err := s.healthScoreRepository.SaveScores(ctx, records); err != nil {
			log.ForContext(ctx).WithFields(log.Fields{
				"account_id": account.ID,
				"run_id":     runID,
				"error":      err.Error(),
			}).Error("Falha ao gravar os Health Scores da execução")
			return nil, err
		}
	}

	log.ForContext(ctx).WithFields(log.Fields{
		"account_id": account.ID,
		"run_id":     runID,
		"adsets":     len(records),
		"median_cpm": medianCPM,
	}).Info("Health Scores da conta calculados")

	return records, nil
}
