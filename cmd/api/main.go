package main

import (
	"context"
	"os"
	"path"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/vfg2006/ads-optimizer-api/infrastructure/cache/redis"
	"github.com/vfg2006/ads-optimizer-api/infrastructure/database/postgres"
	"github.com/vfg2006/ads-optimizer-api/infrastructure/integrator/evaluator"
	"github.com/vfg2006/ads-optimizer-api/infrastructure/integrator/meta"
	"github.com/vfg2006/ads-optimizer-api/infrastructure/integrator/meta/metaclient"
	"github.com/vfg2006/ads-optimizer-api/infrastructure/repository"
	"github.com/vfg2006/ads-optimizer-api/internal/api"
	"github.com/vfg2006/ads-optimizer-api/internal/api/handler"
	"github.com/vfg2006/ads-optimizer-api/internal/config"
	"github.com/vfg2006/ads-optimizer-api/internal/scheduler"
	"github.com/vfg2006/ads-optimizer-api/internal/usecases/aggregating"
	"github.com/vfg2006/ads-optimizer-api/internal/usecases/authenticating"
	"github.com/vfg2006/ads-optimizer-api/internal/usecases/creativetesting"
	"github.com/vfg2006/ads-optimizer-api/internal/usecases/dispatching"
	"github.com/vfg2006/ads-optimizer-api/internal/usecases/planning"
	"github.com/vfg2006/ads-optimizer-api/internal/usecases/risking"
	"github.com/vfg2006/ads-optimizer-api/internal/usecases/scoring"
)

func main() {
	// Inicializa configuração de logs
	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	// Define o nível de log com base na configuração
	logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logrus.Warnf("Nível de log inválido: %s, usando 'info'", cfg.App.LogLevel)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)
	logrus.Infof("Nível de log configurado para: %s", logLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pgConn := pgconn(ctx, cfg.Database)
	defer pgConn.Close()

	redisClient, err := redis.NewClient(ctx, cfg.Redis)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao Redis")
	}
	defer redisClient.Close()

	runLocker := redis.NewRunLocker(redisClient)

	accountRepo := repository.NewAccountRepository(pgConn)
	userRepo := repository.NewUserRepository(pgConn)
	planRepo := repository.NewActionPlanRepository(pgConn)
	snapshotRepo := repository.NewAdSetSnapshotRepository(pgConn)
	scoreRepo := repository.NewHealthScoreRepository(pgConn)
	riskRepo := repository.NewRiskRecordRepository(pgConn)
	runRepo := repository.NewOptimizerRunRepository(pgConn)
	assetRepo := repository.NewCreativeAssetRepository(pgConn)
	testRepo := repository.NewCreativeTestRepository(pgConn)

	authenticator := authenticating.NewService(userRepo, cfg)

	tokenManager := metaclient.NewTokenManager(cfg)
	go tokenManager.StartAutoRefresh()
	defer tokenManager.StopAutoRefresh()

	metaClient := metaclient.NewClient(cfg, tokenManager)
	metaIntegrator := meta.New(cfg, metaClient)

	evaluatorIntegrator := evaluator.New(cfg)

	aggregator := aggregating.NewService(cfg, metaIntegrator, planRepo, snapshotRepo)
	scorer := scoring.NewService(scoreRepo)
	predictor := risking.NewService(metaIntegrator, riskRepo, assetRepo)
	planner := planning.NewService(planRepo)
	dispatcher := dispatching.NewService(metaIntegrator, planRepo, assetRepo, runLocker)

	creativeTester := creativetesting.NewService(
		cfg,
		metaIntegrator,
		evaluatorIntegrator,
		testRepo,
		assetRepo,
		accountRepo,
	)

	optimizerSyncService := scheduler.NewOptimizerSyncService(
		accountRepo,
		runRepo,
		runLocker,
		aggregator,
		scorer,
		predictor,
		planner,
		dispatcher,
		cfg,
	)

	creativeTestSyncService := scheduler.NewCreativeTestSyncService(creativeTester, cfg)

	// Inicia os agendadores em background
	if err := optimizerSyncService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador do otimizador")
	} else {
		logrus.Info("Agendador do otimizador iniciado com sucesso")
	}

	if err := creativeTestSyncService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de testes de criativo")
	} else {
		logrus.Info("Agendador de testes de criativo iniciado com sucesso")
	}

	auditRepos := handler.AuditRepositories{
		RunRepository:      runRepo,
		PlanRepository:     planRepo,
		ScoreRepository:    scoreRepo,
		RiskRepository:     riskRepo,
		SnapshotRepository: snapshotRepo,
	}

	server, err := api.New(
		cfg,
		authenticator,
		creativeTester,
		accountRepo,
		auditRepos,
		optimizerSyncService,
		creativeTestSyncService,
	)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// configureLogger configura o formato e comportamento dos logs
func configureLogger() {
	_, file, _, _ := runtime.Caller(0)
	dir := path.Dir(file)
	os.Chdir(dir)

	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
}

// pgconn cria uma conexão com o banco de dados
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	err = conn.Ping(ctx)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao testar conexão com PostgreSQL")
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}
