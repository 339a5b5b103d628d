package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"

	"github.com/vfg2006/ads-optimizer-api/infrastructure/cache/redis"
	"github.com/vfg2006/ads-optimizer-api/infrastructure/repository"
	"github.com/vfg2006/ads-optimizer-api/internal/config"
	"github.com/vfg2006/ads-optimizer-api/internal/domain"
	"github.com/vfg2006/ads-optimizer-api/internal/usecases/aggregating"
	"github.com/vfg2006/ads-optimizer-api/internal/usecases/dispatching"
	"github.com/vfg2006/ads-optimizer-api/internal/usecases/planning"
	"github.com/vfg2006/ads-optimizer-api/internal/usecases/risking"
	"github.com/vfg2006/ads-optimizer-api/internal/usecases/scoring"
	"github.com/vfg2006/ads-optimizer-api/pkg/log"
	"github.com/vfg2006/ads-optimizer-api/pkg/utils"
)

// OptimizerSyncConfig representa a configuração do agendador do otimizador
type OptimizerSyncConfig struct {
	CronSchedule        string
	RequestDelaySeconds int
	DispatchMode        domain.DispatchMode
	SyncEnabled         bool
}

// OptimizerSyncService agenda e executa o ciclo completo do otimizador por
// conta: coleta -> score -> risco -> plano -> despacho
type OptimizerSyncService struct {
	scheduler *gocron.Scheduler
	config    OptimizerSyncConfig
	appConfig *config.Config

	accountRepo repository.AccountRepository
	runRepo     repository.OptimizerRunRepository
	runLocker   redis.RunLocker

	aggregator aggregating.Aggregator
	scorer     scoring.Scorer
	predictor  risking.Predictor
	planner    planning.Planner
	dispatcher dispatching.Dispatcher

	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
}

// NewOptimizerSyncService cria uma nova instância do agendador do otimizador
func NewOptimizerSyncService(
	accountRepo repository.AccountRepository,
	runRepo repository.OptimizerRunRepository,
	runLocker redis.RunLocker,
	aggregator aggregating.Aggregator,
	scorer scoring.Scorer,
	predictor risking.Predictor,
	planner planning.Planner,
	dispatcher dispatching.Dispatcher,
	appConfig *config.Config,
) *OptimizerSyncService {
	syncConfig := OptimizerSyncConfig{
		CronSchedule:        appConfig.OptimizerSync.CronSchedule,
		RequestDelaySeconds: appConfig.OptimizerSync.RequestDelaySeconds,
		DispatchMode:        domain.DispatchMode(appConfig.OptimizerSync.DispatchMode),
		SyncEnabled:         appConfig.OptimizerSync.Enabled,
	}

	logrus.WithFields(logrus.Fields{
		"cron_schedule":         syncConfig.CronSchedule,
		"dispatch_mode":         syncConfig.DispatchMode,
		"request_delay_seconds": syncConfig.RequestDelaySeconds,
		"sync_enabled":          syncConfig.SyncEnabled,
	}).Info("Configuração do agendador do otimizador carregada")

	return &OptimizerSyncService{
		scheduler:   gocron.NewScheduler(time.Local),
		config:      syncConfig,
		appConfig:   appConfig,
		accountRepo: accountRepo,
		runRepo:     runRepo,
		runLocker:   runLocker,
		aggregator:  aggregator,
		scorer:      scorer,
		predictor:   predictor,
		planner:     planner,
		dispatcher:  dispatcher,
	}
}

// Start inicia o agendador
func (s *OptimizerSyncService) Start(ctx context.Context) error {
	if !s.config.SyncEnabled {
		logrus.Info("Execução do otimizador desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador do otimizador")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.syncAllAccounts(ctx)
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar a execução do otimizador: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador do otimizador")
		s.scheduler.Stop()
	}()

	return nil
}

// TriggerManualSync dispara manualmente uma execução do otimizador
func (s *OptimizerSyncService) TriggerManualSync() {
	go s.syncAllAccounts(context.Background())
}

// GetStatus retorna o estado atual do agendador
func (s *OptimizerSyncService) GetStatus() map[string]interface{} {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	return map[string]interface{}{
		"enabled":                s.config.SyncEnabled,
		"running":                s.syncRunning,
		"dispatch_mode":          s.config.DispatchMode,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
	}
}

// syncAllAccounts executa o ciclo do otimizador para todas as contas
// habilitadas, uma de cada vez
func (s *OptimizerSyncService) syncAllAccounts(ctx context.Context) {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Execução do otimizador já em andamento, ignorando")
		return
	}
	s.syncRunning = true
	s.lastSyncStartedAt = time.Now()
	s.syncMutex.Unlock()

	defer func() {
		s.syncMutex.Lock()
		s.syncRunning = false
		s.lastSyncCompletedAt = time.Now()
		s.syncMutex.Unlock()
	}()

	startTime := time.Now()

	accounts, err := s.accountRepo.ListOptimizerEnabled(ctx)
	if err != nil {
		logrus.WithError(err).Error("Erro ao buscar as contas habilitadas para o otimizador")
		return
	}

	if len(accounts) == 0 {
		logrus.Info("Nenhuma conta habilitada para o otimizador")
		return
	}

	logrus.WithField("accounts", len(accounts)).Info("Iniciando ciclo do otimizador")

	for _, account := range accounts {
		if ctx.Err() != nil {
			logrus.Warn("Contexto cancelado; ciclo do otimizador interrompido")
			return
		}

		s.runAccount(ctx, account)

		if s.config.RequestDelaySeconds > 0 {
			time.Sleep(time.Duration(s.config.RequestDelaySeconds) * time.Second)
		}
	}

	logrus.WithFields(logrus.Fields{
		"duration": time.Since(startTime).String(),
		"accounts": len(accounts),
	}).Info("Ciclo do otimizador concluído")
}

// runAccount executa o ciclo completo de uma conta. O lock distribuído
// garante no máximo uma execução por conta por janela horária, mesmo com
// mais de uma instância do serviço no ar.
func (s *OptimizerSyncService) runAccount(ctx context.Context, account *domain.AdAccount) {
	now := time.Now()
	timeBucket := utils.HourBucket(now)

	acquired, err := s.runLocker.Acquire(ctx, account.ID, timeBucket)
	if err != nil {
		logrus.WithError(err).WithField("account_id", account.ID).
			Error("Erro ao adquirir o lock de execução da conta")
		return
	}
	if !acquired {
		logrus.WithFields(logrus.Fields{
			"account_id":  account.ID,
			"time_bucket": timeBucket,
		}).Info("Conta já processada nesta janela, ignorando")
		return
	}

	runID := utils.MustGenerateID()
	runCtx := log.WithRunID(ctx, runID)
	logger := log.ForContext(runCtx).WithField("account_id", account.ID)

	run := &domain.OptimizerRun{
		ID:        runID,
		AccountID: account.ID,
		Status:    domain.RunRunning,
		Mode:      s.config.DispatchMode,
		StartedAt: now,
	}

	if err := s.runRepo.CreateRun(runCtx, run); err != nil {
		logger.WithError(err).Error("Erro ao registrar a execução do otimizador")
		s.releaseLock(runCtx, account.ID, timeBucket)
		return
	}

	if err := s.executeRun(runCtx, account, run, now); err != nil {
		logger.WithError(err).Error("Execução do otimizador falhou")
		run.Status = domain.RunFailed
		s.completeRun(runCtx, run)

		// Libera o lock para permitir nova tentativa ainda nesta janela
		s.releaseLock(runCtx, account.ID, timeBucket)
		return
	}

	run.Status = domain.RunCompleted
	s.completeRun(runCtx, run)

	logger.WithFields(log.Fields{
		"adsets_evaluated":  run.AdSetsEvaluated,
		"actions_planned":   run.ActionsPlanned,
		"actions_succeeded": run.ActionsSucceeded,
		"actions_failed":    run.ActionsFailed,
		"actions_skipped":   run.ActionsSkipped,
	}).Info("Execução do otimizador concluída")
}

func (s *OptimizerSyncService) executeRun(
	ctx context.Context,
	account *domain.AdAccount,
	run *domain.OptimizerRun,
	now time.Time,
) error {
	scoringCfg := s.accountScoringConfig(account)

	dataset, err := s.aggregator.CollectAccountDataset(ctx, account, run.ID, now)
	if err != nil {
		return fmt.Errorf("coleta de métricas: %w", err)
	}

	run.AdSetsEvaluated = len(dataset.AdSets)
	run.FetchFailures = len(dataset.Failures)

	scores, err := s.scorer.ScoreAccount(ctx, account, dataset, scoringCfg, run.ID, now)
	if err != nil {
		return fmt.Errorf("cálculo de health score: %w", err)
	}

	assessment, err := s.predictor.AssessAccount(ctx, account, dataset, scoringCfg, run.ID, now)
	if err != nil {
		return fmt.Errorf("análise de risco: %w", err)
	}

	plan, err := s.planner.BuildPlan(ctx, account, &planning.PlanInput{
		Dataset:    dataset,
		Scores:     scores,
		Assessment: assessment,
	}, scoringCfg, run.ID, now)
	if err != nil {
		return fmt.Errorf("montagem do plano: %w", err)
	}

	run.PlanKey = plan.Key
	run.ActionsPlanned = len(plan.Actions)

	result, err := s.dispatcher.DispatchPlan(ctx, account, plan, s.config.DispatchMode, scoringCfg)
	if err != nil {
		return fmt.Errorf("despacho do plano: %w", err)
	}

	run.ActionsSucceeded = result.Succeeded
	run.ActionsFailed = result.Failed
	run.ActionsSkipped = result.Skipped

	return nil
}

// accountScoringConfig materializa a configuração de score da conta:
// defaults globais, alvo de CPR da conta e overrides por cima
func (s *OptimizerSyncService) accountScoringConfig(account *domain.AdAccount) domain.ScoringConfig {
	scoringCfg := s.appConfig.ScoringConfig()
	if account.TargetCPR > 0 {
		scoringCfg.TargetCPR = account.TargetCPR
	}
	return scoringCfg.Merge(account.Overrides)
}

func (s *OptimizerSyncService) completeRun(ctx context.Context, run *domain.OptimizerRun) {
	now := time.Now()
	run.CompletedAt = &now

	if err := s.runRepo.CompleteRun(ctx, run); err != nil {
		log.ForContext(ctx).WithFields(log.Fields{
			"run_id": run.ID,
			"error":  err.Error(),
		}).Error("Erro ao finalizar o registro da execução")
	}
}

func (s *OptimizerSyncService) releaseLock(ctx context.Context, accountID, timeBucket string) {
	if err := s.runLocker.Release(ctx, accountID, timeBucket); err != nil {
		logrus.WithError(err).WithField("account_id", accountID).
			Warn("Erro ao liberar o lock de execução da conta")
	}
}
