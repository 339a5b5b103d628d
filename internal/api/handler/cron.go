package handler

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"

	"github.com/vfg2006/ads-optimizer-api/internal/domain"
	"github.com/vfg2006/ads-optimizer-api/internal/scheduler"
	"github.com/vfg2006/ads-optimizer-api/pkg/apiErrors"
	"github.com/vfg2006/ads-optimizer-api/pkg/middleware"
)

// CronJobType define o tipo de cron job que será executada
const (
	CronJobTypeOptimizer     = "optimizer"
	CronJobTypeCreativeTests = "creative-tests"
	CronJobTypeAll           = "all"
)

// CronJobServices contém os serviços de cron necessários para executar manualmente
type CronJobServices struct {
	OptimizerSyncService    *scheduler.OptimizerSyncService
	CreativeTestSyncService *scheduler.CreativeTestSyncService
}

// RunCronJob executa manualmente uma cron job específica
func RunCronJob(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - RunCronJob")

		// Verificar permissões - apenas administradores podem executar cron jobs
		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok || userClaims.UserRoleID != domain.RoleAdmin {
			apiErrors.WriteError(w, apiErrors.ErrInsufficientPrivilege, "Apenas administradores podem executar cron jobs", nil)
			return
		}

		cronType := httprouter.ParamsFromContext(r.Context()).ByName("type")
		if cronType == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Tipo de cron job não especificado", nil)
			return
		}

		switch cronType {
		case CronJobTypeOptimizer:
			if services.OptimizerSyncService == nil {
				apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Serviço do otimizador não disponível", nil)
				return
			}
			services.OptimizerSyncService.TriggerManualSync()

		case CronJobTypeCreativeTests:
			if services.CreativeTestSyncService == nil {
				apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Serviço de testes de criativo não disponível", nil)
				return
			}
			services.CreativeTestSyncService.TriggerManualSync()

		case CronJobTypeAll:
			if services.OptimizerSyncService != nil {
				services.OptimizerSyncService.TriggerManualSync()
			}
			if services.CreativeTestSyncService != nil {
				services.CreativeTestSyncService.TriggerManualSync()
			}

		default:
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Tipo de cron job inválido. Valores aceitos: optimizer, creative-tests, all", nil)
			return
		}

		response := map[string]any{
			"message": "Cron job iniciada com sucesso",
			"type":    cronType,
		}
		json.NewEncoder(w).Encode(response)
	}
}

// GetCronStatus retorna o status das cron jobs
func GetCronStatus(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - GetCronStatus")

		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok || userClaims.UserRoleID != domain.RoleAdmin {
			apiErrors.WriteError(w, apiErrors.ErrInsufficientPrivilege, "Apenas administradores podem verificar status de cron jobs", nil)
			return
		}

		status := map[string]any{
			"optimizer":      services.OptimizerSyncService.GetStatus(),
			"creative-tests": services.CreativeTestSyncService.GetStatus(),
		}

		json.NewEncoder(w).Encode(status)
	}
}
