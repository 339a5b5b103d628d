package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"

	"github.com/vfg2006/ads-optimizer-api/internal/config"
	"github.com/vfg2006/ads-optimizer-api/internal/usecases/creativetesting"
)

// CreativeTestSyncConfig representa a configuração do agendador de testes de
// criativo
type CreativeTestSyncConfig struct {
	CronSchedule string
	SyncEnabled  bool
}

// CreativeTestSyncService verifica periodicamente os testes de criativo em
// andamento, atualizando métricas e concluindo os que atingiram o limiar
type CreativeTestSyncService struct {
	scheduler      *gocron.Scheduler
	config         CreativeTestSyncConfig
	creativeTester creativetesting.CreativeTester

	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
}

// NewCreativeTestSyncService cria uma nova instância do agendador de testes
// de criativo
func NewCreativeTestSyncService(
	creativeTester creativetesting.CreativeTester,
	appConfig *config.Config,
) *CreativeTestSyncService {
	syncConfig := CreativeTestSyncConfig{
		CronSchedule: appConfig.CreativeTestSync.CronSchedule,
		SyncEnabled:  appConfig.CreativeTestSync.Enabled,
	}

	logrus.WithFields(logrus.Fields{
		"cron_schedule": syncConfig.CronSchedule,
		"sync_enabled":  syncConfig.SyncEnabled,
	}).Info("Configuração do agendador de testes de criativo carregada")

	return &CreativeTestSyncService{
		scheduler:      gocron.NewScheduler(time.Local),
		config:         syncConfig,
		creativeTester: creativeTester,
	}
}

// Start inicia o agendador
func (s *CreativeTestSyncService) Start(ctx context.Context) error {
	if !s.config.SyncEnabled {
		logrus.Info("Verificação de testes de criativo desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador de testes de criativo")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.checkTests(ctx)
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar a verificação de testes de criativo: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de testes de criativo")
		s.scheduler.Stop()
	}()

	return nil
}

// TriggerManualSync dispara manualmente uma verificação dos testes em andamento
func (s *CreativeTestSyncService) TriggerManualSync() {
	go s.checkTests(context.Background())
}

// GetStatus retorna o estado atual do agendador
func (s *CreativeTestSyncService) GetStatus() map[string]interface{} {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	return map[string]interface{}{
		"enabled":                s.config.SyncEnabled,
		"running":                s.syncRunning,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
	}
}

func (s *CreativeTestSyncService) checkTests(ctx context.Context) {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Verificação de testes de criativo já em andamento, ignorando")
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

	if err := s.creativeTester.CheckRunningTests(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao verificar os testes de criativo em andamento")
		return
	}

	logrus.WithField("duration", time.Since(startTime).String()).
		Info("Verificação de testes de criativo concluída")
}
