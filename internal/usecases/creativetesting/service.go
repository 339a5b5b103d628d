package creativetesting

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/vfg2006/ads-optimizer-api/infrastructure/integrator/evaluator"
	"github.com/vfg2006/ads-optimizer-api/infrastructure/integrator/meta"
	"github.com/vfg2006/ads-optimizer-api/infrastructure/repository"
	"github.com/vfg2006/ads-optimizer-api/internal/config"
	"github.com/vfg2006/ads-optimizer-api/internal/domain"
	"github.com/vfg2006/ads-optimizer-api/pkg/log"
	"github.com/vfg2006/ads-optimizer-api/pkg/utils"
)

// Objetivo de campanha usado nos testes de criativo
const testObjective = "OUTCOME_LEADS"

var (
	ErrAccountNotFound  = errors.New("conta não encontrada")
	ErrAssetNotFound    = errors.New("asset não encontrado no catálogo")
	ErrAssetNotReady    = errors.New("asset ainda não está pronto para teste")
	ErrAssetWithoutRef  = errors.New("asset não tem referência de criativo para o objetivo de teste")
	ErrActiveTestExists = errors.New("já existe um teste ativo para este criativo")
	ErrTestNotFound     = errors.New("teste não encontrado")
	ErrTestAlreadyDone  = errors.New("teste já está em estado terminal")
)

// CreativeTester gerencia o ciclo de vida dos testes de criativo: lançamento,
// acompanhamento do limiar de impressões, conclusão e cancelamento
type CreativeTester interface {
	StartTest(ctx context.Context, accountID, assetID string) (*domain.CreativeTest, error)
	CheckRunningTests(ctx context.Context) error
	CancelTest(ctx context.Context, testID string) (*domain.CreativeTest, error)
	GetTest(ctx context.Context, testID string) (*domain.CreativeTest, error)
	ListTests(ctx context.Context, accountID string) ([]*domain.CreativeTest, error)
}

// Service implementa a interface CreativeTester
type Service struct {
	cfg               *config.Config
	metaService       meta.Integrator
	evaluatorService  evaluator.EvaluatorIntegrator
	testRepository    repository.CreativeTestRepository
	assetRepository   repository.CreativeAssetRepository
	accountRepository repository.AccountRepository
}

// NewService cria uma nova instância do serviço de testes de criativo
func NewService(
	cfg *config.Config,
	metaService meta.Integrator,
	evaluatorService evaluator.EvaluatorIntegrator,
	testRepository repository.CreativeTestRepository,
	assetRepository repository.CreativeAssetRepository,
	accountRepository repository.AccountRepository,
) CreativeTester {
	return &Service{
		cfg:               cfg,
		metaService:       metaService,
		evaluatorService:  evaluatorService,
		testRepository:    testRepository,
		assetRepository:   assetRepository,
		accountRepository: accountRepository,
	}
}

// StartTest lança um teste limitado por orçamento e impressões para um asset
// do catálogo. Um criativo só pode ter um teste ativo por vez; a estrutura é
// criada pausada na plataforma e ativada ao final do lançamento.
func (s *Service) StartTest(ctx context.Context, accountID, assetID string) (*domain.CreativeTest, error) {
	account, err := s.accountRepository.GetAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, ErrAccountNotFound
	}

	asset, err := s.assetRepository.GetAssetByID(ctx, assetID)
	if err != nil {
		return nil, err
	}
	if asset == nil {
		return nil, ErrAssetNotFound
	}
	if !asset.Ready {
		return nil, ErrAssetNotReady
	}

	creativeRef, ok := asset.RefsByObjective[testObjective]
	if !ok || creativeRef == "" {
		return nil, ErrAssetWithoutRef
	}

	hasActive, err := s.testRepository.HasActiveTest(ctx, accountID, asset.ID)
	if err != nil {
		return nil, err
	}
	if hasActive {
		return nil, ErrActiveTestExists
	}

	test := &domain.CreativeTest{
		ID:                  utils.MustGenerateID(),
		AccountID:           accountID,
		CreativeID:          asset.ID,
		Status:              domain.TestPending,
		ImpressionThreshold: s.cfg.CreativeTestSync.ImpressionThreshold,
		DailyBudgetCents:    s.cfg.CreativeTestSync.DailyBudgetCents,
		CreatedAt:           time.Now(),
	}

	if err := s.testRepository.SaveTest(ctx, test); err != nil {
		return nil, err
	}

	logger := log.ForContext(ctx).WithFields(log.Fields{
		"test_id":    test.ID,
		"account_id": accountID,
		"asset_id":   asset.ID,
	})

	name := fmt.Sprintf("Teste de criativo - %s", asset.Name)

	creatives := []meta.AdCreative{{Name: name, Ref: creativeRef}}

	launch, err := s.metaService.LaunchCreativeTest(ctx, account.ExternalID, name, creatives, test.DailyBudgetCents)
	if err != nil {
		logger.WithError(err).Error("Falha ao lançar o teste na plataforma; cancelando")

		if _, cancelErr := s.testRepository.UpdateStatus(ctx, test.ID, domain.TestPending, domain.TestCancelled); cancelErr != nil {
			logger.WithError(cancelErr).Error("Falha ao cancelar o teste após erro de lançamento")
		}
		return nil, err
	}

	adID := ""
	if len(launch.AdIDs) > 0 {
		adID = launch.AdIDs[0]
	}

	if err := s.testRepository.SetLaunchedEntities(ctx, test.ID, launch.CampaignID, launch.AdSetID, adID); err != nil {
		return nil, err
	}

	// A campanha nasce pausada; só entra no ar depois do teste registrado
	if err := s.metaService.ActivateEntity(ctx, launch.CampaignID); err != nil {
		logger.WithError(err).Error("Falha ao ativar a campanha do teste; cancelando")

		if _, cancelErr := s.testRepository.UpdateStatus(ctx, test.ID, domain.TestPending, domain.TestCancelled); cancelErr != nil {
			logger.WithError(cancelErr).Error("Falha ao cancelar o teste após erro de ativação")
		}
		return nil, err
	}

	if _, err := s.testRepository.UpdateStatus(ctx, test.ID, domain.TestPending, domain.TestRunning); err != nil {
		return nil, err
	}

	test.CampaignID = launch.CampaignID
	test.AdSetID = launch.AdSetID
	test.AdID = adID
	test.Status = domain.TestRunning

	logger.WithFields(log.Fields{
		"campaign_id": launch.CampaignID,
		"adset_id":    launch.AdSetID,
	}).Info("Teste de criativo lançado")

	return test, nil
}

// CheckRunningTests atualiza as métricas acumuladas de cada teste em
// andamento e conclui os que atingiram o limiar de impressões. A falha de um
// teste não interrompe a verificação dos demais.
func (s *Service) CheckRunningTests(ctx context.Context) error {
	tests, err := s.testRepository.ListTestsByStatus(ctx, []domain.CreativeTestStatus{domain.TestRunning})
	if err != nil {
		return err
	}

	for _, test := range tests {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		logger := log.ForContext(ctx).WithField("test_id", test.ID)

		metrics, err := s.metaService.FetchLifetimeMetrics(ctx, test.AdSetID)
		if err != nil {
			if kind := domain.ClassifyError(err); !kind.IsRetryable() {
				logger.WithError(err).WithField("failure_kind", kind).
					Error("Erro irrecuperável na coleta das métricas do teste")
				s.failTest(ctx, test)
				continue
			}
			logger.WithError(err).Warn("Falha ao coletar as métricas do teste; tentando na próxima verificação")
			continue
		}

		if err := s.testRepository.UpdateMetrics(ctx, test.ID, metrics); err != nil {
			logger.WithError(err).Error("Falha ao atualizar as métricas do teste")
			continue
		}
		test.Metrics = metrics

		if test.ReachedThreshold() {
			s.completeTest(ctx, test)
		}
	}

	return nil
}

// completeTest conclui um teste que atingiu o limiar. A transição de estado
// é atômica: apenas o trabalhador que ganhar a troca segue com a pausa e a
// avaliação. Pausa e avaliação são melhor esforço: a conclusão vale mesmo
// quando a plataforma ou o avaliador falham.
func (s *Service) completeTest(ctx context.Context, test *domain.CreativeTest) {
	logger := log.ForContext(ctx).WithFields(log.Fields{
		"test_id":     test.ID,
		"impressions": test.Metrics.Impressions,
		"threshold":   test.ImpressionThreshold,
	})

	claimed, err := s.testRepository.UpdateStatus(ctx, test.ID, domain.TestRunning, domain.TestCompleted)
	if err != nil {
		logger.WithError(err).Error("Falha ao concluir o teste")
		return
	}
	if !claimed {
		logger.Debug("Teste já concluído por outra verificação")
		return
	}

	if test.CampaignID != "" {
		if err := s.metaService.PauseEntity(ctx, test.CampaignID); err != nil {
			logger.WithError(err).Warn("Falha ao pausar a campanha do teste concluído")
		}
	}

	evaluation, err := s.evaluatorService.Evaluate(ctx, test)
	if err != nil {
		logger.WithError(err).Warn("Falha ao avaliar o teste; concluído sem veredito")
	} else if evaluation != nil {
		if err := s.testRepository.SetEvaluation(ctx, test.ID, evaluation); err != nil {
			logger.WithError(err).Error("Falha ao gravar a avaliação do teste")
		}
	}

	logger.Info("Teste de criativo concluído")
}

// failTest encerra como falho um teste cuja verificação bateu em erro
// irrecuperável da plataforma (entidade removida, permissão perdida). A
// pausa da campanha remanescente é melhor esforço.
func (s *Service) failTest(ctx context.Context, test *domain.CreativeTest) {
	logger := log.ForContext(ctx).WithField("test_id", test.ID)

	claimed, err := s.testRepository.UpdateStatus(ctx, test.ID, domain.TestRunning, domain.TestFailed)
	if err != nil {
		logger.WithError(err).Error("Falha ao marcar o teste como falho")
		return
	}
	if !claimed {
		logger.Debug("Teste já saiu de running em outra verificação")
		return
	}

	if test.CampaignID != "" {
		if err := s.metaService.PauseEntity(ctx, test.CampaignID); err != nil {
			logger.WithError(err).Warn("Falha ao pausar a campanha do teste falho")
		}
	}

	logger.Info("Teste de criativo marcado como falho")
}

// CancelTest cancela um teste pendente ou em andamento e pausa a estrutura
// lançada na plataforma
func (s *Service) CancelTest(ctx context.Context, testID string) (*domain.CreativeTest, error) {
	test, err := s.testRepository.GetTestByID(ctx, testID)
	if err != nil {
		return nil, err
	}
	if test == nil {
		return nil, ErrTestNotFound
	}
	if test.Status.IsTerminal() {
		return nil, ErrTestAlreadyDone
	}

	claimed, err := s.testRepository.UpdateStatus(ctx, test.ID, test.Status, domain.TestCancelled)
	if err != nil {
		return nil, err
	}
	if !claimed {
		return nil, ErrTestAlreadyDone
	}

	if test.CampaignID != "" {
		if err := s.metaService.PauseEntity(ctx, test.CampaignID); err != nil {
			log.ForContext(ctx).WithFields(log.Fields{
				"test_id": test.ID,
				"error":   err.Error(),
			}).Warn("Falha ao pausar a campanha do teste cancelado")
		}
	}

	test.Status = domain.TestCancelled

	return test, nil
}

func (s *Service) GetTest(ctx context.Context, testID string) (*domain.CreativeTest, error) {
	test, err := s.testRepository.GetTestByID(ctx, testID)
	if err != nil {
		return nil, err
	}
	if test == nil {
		return nil, ErrTestNotFound
	}
	return test, nil
}

func (s *Service) ListTests(ctx context.Context, accountID string) ([]*domain.CreativeTest, error) {
	return s.testRepository.ListTestsByAccount(ctx, accountID)
}
