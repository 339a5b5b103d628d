package dispatching

import (
	"context"
	"fmt"
	"time"

	"github.com/vfg2006/ads-optimizer-api/infrastructure/cache/redis"
	"github.com/vfg2006/ads-optimizer-api/infrastructure/integrator/meta"
	"github.com/vfg2006/ads-optimizer-api/infrastructure/repository"
	"github.com/vfg2006/ads-optimizer-api/internal/domain"
	"github.com/vfg2006/ads-optimizer-api/pkg/log"
)

// Retentativas locais do despachante para falhas transitórias, além das
// retentativas internas do cliente HTTP da plataforma
const dispatchRetryLimit = 2

var dispatchBackoffBase = 2 * time.Second

// Result resume o desfecho do despacho de um plano
type Result struct {
	Succeeded        int
	Failed           int
	Skipped          int
	ValidationErrors int
	Records          []*domain.ExecutionRecord
}

// Dispatcher executa as ações de um plano contra a plataforma, com
// idempotência por ação e isolamento de falhas
type Dispatcher interface {
	DispatchPlan(
		ctx context.Context,
		account *domain.AdAccount,
		plan *domain.ActionPlan,
		mode domain.DispatchMode,
		cfg domain.ScoringConfig,
	) (*Result, error)
}

// Service implementa a interface Dispatcher
type Service struct {
	metaService     meta.Integrator
	planRepository  repository.ActionPlanRepository
	assetRepository repository.CreativeAssetRepository
	runLocker       redis.RunLocker
}

// NewService cria uma nova instância do despachante de ações
func NewService(
	metaService meta.Integrator,
	planRepository repository.ActionPlanRepository,
	assetRepository repository.CreativeAssetRepository,
	runLocker redis.RunLocker,
) Dispatcher {
	return &Service{
		metaService:     metaService,
		planRepository:  planRepository,
		assetRepository: assetRepository,
		runLocker:       runLocker,
	}
}

// DispatchPlan percorre as ações do plano em ordem. Cada ação é validada,
// verificada contra o histórico de idempotência e só então executada; a
// falha de uma ação não impede as seguintes. O cancelamento do contexto
// interrompe o despacho entre ações, nunca no meio de uma.
func (s *Service) DispatchPlan(
	ctx context.Context,
	account *domain.AdAccount,
	plan *domain.ActionPlan,
	mode domain.DispatchMode,
	cfg domain.ScoringConfig,
) (*Result, error) {
	logger := log.ForContext(ctx).WithFields(log.Fields{
		"account_id": account.ID,
		"plan_key":   plan.Key,
		"mode":       mode,
	})

	result := &Result{
		Records: make([]*domain.ExecutionRecord, 0, len(plan.Actions)),
	}

	for index, action := range plan.Actions {
		if ctx.Err() != nil {
			logger.WithField("pending_actions", len(plan.Actions)-index).
				Warn("Contexto cancelado; despacho interrompido entre ações")
			break
		}

		record := s.dispatchAction(ctx, account, plan, index, action, mode, cfg)
		result.Records = append(result.Records, record)

		switch record.Status {
		case domain.ExecutionSucceeded, domain.ExecutionValidated:
			result.Succeeded++
		case domain.ExecutionSkippedDuplicate:
			result.Skipped++
		case domain.ExecutionValidationError:
			result.ValidationErrors++
			result.Failed++
		default:
			result.Failed++
		}
	}

	logger.WithFields(log.Fields{
		"succeeded": result.Succeeded,
		"failed":    result.Failed,
		"skipped":   result.Skipped,
	}).Info("Despacho do plano concluído")

	return result, nil
}

func (s *Service) dispatchAction(
	ctx context.Context,
	account *domain.AdAccount,
	plan *domain.ActionPlan,
	index int,
	action domain.Action,
	mode domain.DispatchMode,
	cfg domain.ScoringConfig,
) *domain.ExecutionRecord {
	key := plan.ActionKey(index)
	logger := log.ForContext(ctx).WithFields(log.Fields{
		"idempotency_key": key,
		"action_type":     action.Type,
	})

	record := &domain.ExecutionRecord{
		PlanKey:        plan.Key,
		IdempotencyKey: key,
		ActionIndex:    index,
		ActionType:     action.Type,
		TargetEntityID: action.TargetEntity(),
		Direction:      action.Params.Direction,
		CreatedAt:      time.Now(),
	}

	if err := validateAction(action, cfg); err != nil {
		logger.WithError(err).Warn("Ação rejeitada na validação")
		record.Status = domain.ExecutionValidationError
		record.ErrorMessage = err.Error()
		s.persistRecord(ctx, record)
		return record
	}

	if s.alreadyExecuted(ctx, key) {
		logger.Info("Ação já executada anteriormente; ignorando")
		record.Status = domain.ExecutionSkippedDuplicate
		s.persistRecord(ctx, record)
		return record
	}

	// Dry-run valida e registra sem efeito na plataforma. O registro fica em
	// status não terminal: a chave segue livre para um despacho live futuro.
	if mode == domain.ModeDryRun {
		logger.WithField("justification", action.Justification).
			Info("Modo dry_run: ação validada sem chamada à plataforma")
		record.Status = domain.ExecutionValidated
		s.persistRecord(ctx, record)
		return record
	}

	resultEntityID, retries, err := s.executeWithRetry(ctx, account, action)
	record.RetryCount = retries

	now := time.Now()
	record.CompletedAt = &now

	if err != nil {
		kind := domain.ClassifyError(err)
		logger.WithFields(log.Fields{
			"failure_kind": kind,
			"retries":      retries,
			"error":        err.Error(),
		}).Error("Falha ao executar a ação")

		record.Status = domain.ExecutionFailed
		record.FailureKind = kind
		record.ErrorMessage = err.Error()
		s.persistRecord(ctx, record)
		return record
	}

	record.Status = domain.ExecutionSucceeded
	record.ResultEntityID = resultEntityID
	s.persistRecord(ctx, record)
	s.markExecuted(ctx, key)

	logger.WithField("result_entity_id", resultEntityID).Info("Ação executada com sucesso")

	return record
}

// alreadyExecuted consulta primeiro o cache de execução no Redis e, em caso
// de falha ou ausência, o registro durável no banco
func (s *Service) alreadyExecuted(ctx context.Context, key string) bool {
	executed, err := s.runLocker.WasExecuted(ctx, key)
	if err != nil {
		log.ForContext(ctx).WithError(err).Warn("Falha ao consultar o cache de execução; caindo para o banco")
	} else if executed {
		return true
	}

	record, err := s.planRepository.GetExecutionByKey(ctx, key)
	if err != nil {
		log.ForContext(ctx).WithError(err).Warn("Falha ao consultar o histórico de execução; assumindo não executada")
		return false
	}

	return record != nil && record.Status.IsTerminalSuccess()
}

func (s *Service) executeWithRetry(
	ctx context.Context,
	account *domain.AdAccount,
	action domain.Action,
) (string, int, error) {
	var lastErr error

	for attempt := 0; attempt <= dispatchRetryLimit; attempt++ {
		if attempt > 0 {
			delay := dispatchBackoffBase << (attempt - 1)

			select {
			case <-ctx.Done():
				return "", attempt - 1, ctx.Err()
			case <-time.After(delay):
			}
		}

		resultEntityID, err := s.execute(ctx, account, action)
		if err == nil {
			return resultEntityID, attempt, nil
		}

		lastErr = err

		if !domain.ClassifyError(err).IsRetryable() {
			return "", attempt, err
		}
	}

	return "", dispatchRetryLimit, lastErr
}

func (s *Service) execute(ctx context.Context, account *domain.AdAccount, action domain.Action) (string, error) {
	switch action.Type {
	case domain.ActionAdjustBudget:
		return "", s.metaService.UpdateDailyBudget(ctx, action.Params.EntityID, action.Params.NewDailyBudgetCents)

	case domain.ActionPauseEntity:
		return "", s.metaService.PauseEntity(ctx, action.Params.EntityID)

	case domain.ActionDuplicateWithAudience:
		return s.metaService.DuplicateAdSet(ctx, action.Params.SourceAdSetID, action.Params.BudgetCents, action.Params.AudienceSpec)

	case domain.ActionLaunchWithCreatives:
		return s.launchCreatives(ctx, account, action)
	}

	return "", fmt.Errorf("%w: %s", errUnknownActionType, action.Type)
}

// launchCreatives resolve cada asset do catálogo na referência de criativo
// do objetivo pedido e lança uma única campanha nova com um anúncio por
// criativo. A campanha nasce pausada e é ativada ao final do lançamento.
func (s *Service) launchCreatives(ctx context.Context, account *domain.AdAccount, action domain.Action) (string, error) {
	creatives := make([]meta.AdCreative, 0, len(action.Params.CreativeIDs))

	for _, assetID := range action.Params.CreativeIDs {
		asset, err := s.assetRepository.GetAssetByID(ctx, assetID)
		if err != nil {
			return "", fmt.Errorf("erro ao carregar o asset %s: %w", assetID, err)
		}
		if asset == nil {
			return "", fmt.Errorf("asset %s não encontrado no catálogo", assetID)
		}

		ref, ok := asset.RefsByObjective[action.Params.Objective]
		if !ok || ref == "" {
			return "", fmt.Errorf("asset %s não tem referência para o objetivo %s", assetID, action.Params.Objective)
		}

		creatives = append(creatives, meta.AdCreative{
			Name: fmt.Sprintf("%s - %s", action.Params.AdSetName, asset.Name),
			Ref:  ref,
		})
	}

	launch, err := s.metaService.LaunchCreativeTest(ctx, account.ExternalID, action.Params.AdSetName, creatives, action.Params.BudgetCents)
	if err != nil {
		return "", err
	}

	if err := s.metaService.ActivateEntity(ctx, launch.CampaignID); err != nil {
		return launch.AdSetID, fmt.Errorf("erro ao ativar a campanha %s do lançamento: %w", launch.CampaignID, err)
	}

	return launch.AdSetID, nil
}

func (s *Service) persistRecord(ctx context.Context, record *domain.ExecutionRecord) {
	if err := s.planRepository.SaveExecution(ctx, record); err != nil {
		log.ForContext(ctx).WithFields(log.Fields{
			"idempotency_key": record.IdempotencyKey,
			"error":           err.Error(),
		}).Error("Falha ao gravar o registro de execução")
	}
}

func (s *Service) markExecuted(ctx context.Context, key string) {
	if err := s.runLocker.MarkExecuted(ctx, key); err != nil {
		log.ForContext(ctx).WithError(err).Warn("Falha ao marcar a execução no cache")
	}
}
