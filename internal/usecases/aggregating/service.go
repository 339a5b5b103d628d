package aggregating

import (
	"context"
	"sync"
	"time"

	"github.com/vfg2006/ads-optimizer-api/infrastructure/integrator/meta"
	"github.com/vfg2006/ads-optimizer-api/infrastructure/repository"
	"github.com/vfg2006/ads-optimizer-api/internal/config"
	"github.com/vfg2006/ads-optimizer-api/internal/domain"
	"github.com/vfg2006/ads-optimizer-api/pkg/log"
	"github.com/vfg2006/ads-optimizer-api/pkg/utils"
)

// Aggregator coleta as métricas de todos os adsets de uma conta e monta o
// dataset consumido pelos motores de score, risco e planejamento
type Aggregator interface {
	CollectAccountDataset(ctx context.Context, account *domain.AdAccount, runID string, now time.Time) (*domain.AccountDataset, error)
}

// Service implementa a interface Aggregator
type Service struct {
	cfg                *config.Config
	metaService        meta.Integrator
	planRepository     repository.ActionPlanRepository
	snapshotRepository repository.AdSetSnapshotRepository
}

// NewService cria uma nova instância do agregador de métricas
func NewService(
	cfg *config.Config,
	metaService meta.Integrator,
	planRepository repository.ActionPlanRepository,
	snapshotRepository repository.AdSetSnapshotRepository,
) Aggregator {
	return &Service{
		cfg:                cfg,
		metaService:        metaService,
		planRepository:     planRepository,
		snapshotRepository: snapshotRepository,
	}
}

// CollectAccountDataset coleta as quatro janelas de métricas de cada adset da
// conta, em paralelo limitado. A falha de um adset não aborta a coleta: o
// adset entra na lista de falhas e fica fora do plano daquela execução.
func (s *Service) CollectAccountDataset(
	ctx context.Context,
	account *domain.AdAccount,
	runID string,
	now time.Time,
) (*domain.AccountDataset, error) {
	logger := log.ForContext(ctx).WithFields(log.Fields{
		"account_id": account.ID,
		"run_id":     runID,
	})

	adsets, err := s.metaService.ListAdSets(ctx, account.ExternalID)
	if err != nil {
		logger.WithError(err).Error("Falha ao listar os adsets da conta")
		return nil, err
	}

	dataset := &domain.AccountDataset{
		AccountID:   account.ID,
		CollectedAt: now,
		AdSets:      make([]*domain.AdSet, 0, len(adsets)),
		Flags:       make(map[string]domain.HistoryFlags, len(adsets)),
	}

	// Histórico de ajustes de orçamento dos últimos 3 dias para derivar as
	// flags de cooldown do planejador
	changes, err := s.planRepository.ListBudgetChanges(ctx, account.ID, now.AddDate(0, 0, -3))
	if err != nil {
		logger.WithError(err).Warn("Falha ao carregar o histórico de ajustes de orçamento; seguindo sem flags de histórico")
		changes = nil
	}
	changesByAdSet := groupChangesByAdSet(changes)

	maxConcurrent := s.cfg.OptimizerSync.MaxConcurrentFetch
	if maxConcurrent <= 0 {
		maxConcurrent = 1
	}

	var (
		mu        sync.Mutex
		wg        sync.WaitGroup
		semaphore = make(chan struct{}, maxConcurrent)
	)

	for _, adset := range adsets {
		wg.Add(1)

		go func(adset *domain.AdSet) {
			defer wg.Done()

			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			if ctx.Err() != nil {
				mu.Lock()
				dataset.Failures = append(dataset.Failures, domain.FetchFailure{
					AdSetID: adset.ID,
					Reason:  ctx.Err().Error(),
				})
				mu.Unlock()
				return
			}

			metrics, err := s.metaService.FetchAdSetMetrics(ctx, adset.ID, now)
			if err != nil {
				logger.WithFields(log.Fields{
					"adset_id": adset.ID,
					"error":    err.Error(),
				}).Warn("Falha ao coletar as métricas do adset; adset fora desta execução")

				mu.Lock()
				dataset.Failures = append(dataset.Failures, domain.FetchFailure{
					AdSetID: adset.ID,
					Reason:  err.Error(),
				})
				mu.Unlock()
				return
			}

			adset.Metrics = metrics

			mu.Lock()
			dataset.AdSets = append(dataset.AdSets, adset)
			dataset.Flags[adset.ID] = deriveFlags(adset, changesByAdSet[adset.ID], now)
			mu.Unlock()
		}(adset)
	}

	wg.Wait()

	if err := s.saveSnapshots(ctx, account.ID, runID, dataset); err != nil {
		logger.WithError(err).Warn("Falha ao gravar as fotografias dos adsets")
	}

	logger.WithFields(log.Fields{
		"adsets":   len(dataset.AdSets),
		"failures": len(dataset.Failures),
	}).Info("Coleta de métricas da conta concluída")

	return dataset, nil
}

func (s *Service) saveSnapshots(ctx context.Context, accountID, runID string, dataset *domain.AccountDataset) error {
	if len(dataset.AdSets) == 0 {
		return nil
	}

	snapshots := make([]*domain.AdSetSnapshot, 0, len(dataset.AdSets))
	for _, adset := range dataset.AdSets {
		snapshots = append(snapshots, &domain.AdSetSnapshot{
			RunID:     runID,
			AccountID: accountID,
			AdSetID:   adset.ID,
			Payload:   adset,
			Flags:     dataset.Flags[adset.ID],
			CreatedAt: dataset.CollectedAt,
		})
	}

	return s.snapshotRepository.SaveSnapshots(ctx, snapshots)
}

func groupChangesByAdSet(changes []domain.BudgetChange) map[string][]domain.BudgetChange {
	grouped := make(map[string][]domain.BudgetChange, len(changes))
	for _, change := range changes {
		grouped[change.AdSetID] = append(grouped[change.AdSetID], change)
	}
	return grouped
}

// deriveFlags resume o histórico recente de um adset: ajustes de ontem
// alimentam o cooldown do planejador e a sequência de reduções consecutivas
// sinaliza adsets em espiral de corte
func deriveFlags(adset *domain.AdSet, changes []domain.BudgetChange, now time.Time) domain.HistoryFlags {
	flags := domain.HistoryFlags{
		IsNew: adset.IsNew(now),
	}

	todayStart := utils.StartOfDay(now)
	yesterdayStart := todayStart.AddDate(0, 0, -1)

	decreasedByDay := make(map[string]bool)
	for _, change := range changes {
		day := utils.StartOfDay(change.OccurredAt).Format(time.DateOnly)

		switch change.Direction {
		case domain.BudgetDecrease:
			decreasedByDay[day] = true
			if !change.OccurredAt.Before(yesterdayStart) && change.OccurredAt.Before(todayStart) {
				flags.WasDecreasedYesterday = true
			}
		case domain.BudgetIncrease:
			if !change.OccurredAt.Before(yesterdayStart) && change.OccurredAt.Before(todayStart) {
				flags.WasIncreasedYesterday = true
			}
		}
	}

	// Dias consecutivos com redução, contando a partir de ontem
	for day := 1; ; day++ {
		key := todayStart.AddDate(0, 0, -day).Format(time.DateOnly)
		if !decreasedByDay[key] {
			break
		}
		flags.ConsecutiveDecreases++
	}

	return flags
}
