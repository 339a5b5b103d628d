package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"

	"github.com/vfg2006/ads-optimizer-api/infrastructure/repository"
	"github.com/vfg2006/ads-optimizer-api/internal/domain"
	"github.com/vfg2006/ads-optimizer-api/pkg/apiErrors"
)

const defaultRunListLimit = 20

// AuditRepositories agrupa os repositórios consultados pelas rotas de
// auditoria das execuções do otimizador
type AuditRepositories struct {
	RunRepository      repository.OptimizerRunRepository
	PlanRepository     repository.ActionPlanRepository
	ScoreRepository    repository.HealthScoreRepository
	RiskRepository     repository.RiskRecordRepository
	SnapshotRepository repository.AdSetSnapshotRepository
}

// PlanDetailResponse é o plano de uma execução com o resultado de cada ação
type PlanDetailResponse struct {
	Plan       *domain.ActionPlan        `json:"plan"`
	Executions []*domain.ExecutionRecord `json:"executions"`
}

// ListAccountRuns lista as execuções do otimizador de uma conta, da mais
// recente para a mais antiga
func ListAccountRuns(repos AuditRepositories) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		accountID := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if accountID == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID da conta é obrigatório", nil)
			return
		}

		limit := uint64(defaultRunListLimit)
		if rawLimit := r.URL.Query().Get("limit"); rawLimit != "" {
			parsed, err := strconv.ParseUint(rawLimit, 10, 64)
			if err != nil || parsed == 0 {
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Parâmetro limit inválido", nil)
				return
			}
			limit = parsed
		}

		runs, err := repos.RunRepository.ListRunsByAccount(r.Context(), accountID, limit)
		if err != nil {
			logrus.Error("Error listing optimizer runs:", err)
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao consultar as execuções do otimizador", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")

		if err := json.NewEncoder(w).Encode(runs); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao codificar resposta", nil)
		}
	})
}

// GetRun retorna os contadores e o estado de uma execução do otimizador
func GetRun(repos AuditRepositories) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		run, ok := loadRun(w, r, repos)
		if !ok {
			return
		}

		w.Header().Set("Content-Type", "application/json")

		if err := json.NewEncoder(w).Encode(run); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao codificar resposta", nil)
		}
	})
}

// GetRunPlan retorna o plano de ações de uma execução junto com o resultado
// de cada ação despachada
func GetRunPlan(repos AuditRepositories) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		run, ok := loadRun(w, r, repos)
		if !ok {
			return
		}

		plan, err := repos.PlanRepository.GetPlanByRun(r.Context(), run.ID)
		if err != nil {
			logrus.Error("Error fetching action plan:", err)
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao consultar o plano de ações", nil)
			return
		}

		response := PlanDetailResponse{Plan: plan}

		if plan != nil {
			executions, err := repos.PlanRepository.ListExecutionsByPlan(r.Context(), plan.Key)
			if err != nil {
				logrus.Error("Error listing plan executions:", err)
				apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao consultar as execuções do plano", nil)
				return
			}
			response.Executions = executions
		}

		w.Header().Set("Content-Type", "application/json")

		if err := json.NewEncoder(w).Encode(response); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao codificar resposta", nil)
		}
	})
}

// GetRunScores retorna os health scores calculados em uma execução
func GetRunScores(repos AuditRepositories) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		run, ok := loadRun(w, r, repos)
		if !ok {
			return
		}

		scores, err := repos.ScoreRepository.ListByRun(r.Context(), run.ID)
		if err != nil {
			logrus.Error("Error listing health scores:", err)
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao consultar os health scores da execução", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")

		if err := json.NewEncoder(w).Encode(scores); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao codificar resposta", nil)
		}
	})
}

// GetRunRisks retorna as análises de risco calculadas em uma execução
func GetRunRisks(repos AuditRepositories) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		run, ok := loadRun(w, r, repos)
		if !ok {
			return
		}

		risks, err := repos.RiskRepository.ListByRun(r.Context(), run.ID)
		if err != nil {
			logrus.Error("Error listing risk records:", err)
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao consultar as análises de risco da execução", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")

		if err := json.NewEncoder(w).Encode(risks); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao codificar resposta", nil)
		}
	})
}

// GetRunSnapshots retorna as métricas brutas coletadas em uma execução
func GetRunSnapshots(repos AuditRepositories) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		run, ok := loadRun(w, r, repos)
		if !ok {
			return
		}

		snapshots, err := repos.SnapshotRepository.ListByRun(r.Context(), run.ID)
		if err != nil {
			logrus.Error("Error listing adset snapshots:", err)
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao consultar as métricas da execução", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")

		if err := json.NewEncoder(w).Encode(snapshots); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao codificar resposta", nil)
		}
	})
}

// GetAdSetScoreHistory retorna o histórico de health scores de um conjunto de
// anúncios de uma conta
func GetAdSetScoreHistory(repos AuditRepositories) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		params := httprouter.ParamsFromContext(r.Context())
		accountID := params.ByName("id")
		adsetID := params.ByName("adset_id")
		if accountID == "" || adsetID == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID da conta e do conjunto são obrigatórios", nil)
			return
		}

		limit := uint64(defaultRunListLimit)
		if rawLimit := r.URL.Query().Get("limit"); rawLimit != "" {
			parsed, err := strconv.ParseUint(rawLimit, 10, 64)
			if err != nil || parsed == 0 {
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Parâmetro limit inválido", nil)
				return
			}
			limit = parsed
		}

		scores, err := repos.ScoreRepository.ListByAdSet(r.Context(), accountID, adsetID, limit)
		if err != nil {
			logrus.Error("Error listing adset score history:", err)
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao consultar o histórico de health scores", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")

		if err := json.NewEncoder(w).Encode(scores); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao codificar resposta", nil)
		}
	})
}

// loadRun busca a execução da URL e escreve o erro na resposta quando ela não
// existe. Retorna false quando a resposta já foi escrita.
func loadRun(w http.ResponseWriter, r *http.Request, repos AuditRepositories) (*domain.OptimizerRun, bool) {
	runID := httprouter.ParamsFromContext(r.Context()).ByName("id")
	if runID == "" {
		apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID da execução é obrigatório", nil)
		return nil, false
	}

	run, err := repos.RunRepository.GetRunByID(r.Context(), runID)
	if err != nil {
		logrus.Error("Error fetching optimizer run:", err)
		apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao consultar a execução do otimizador", nil)
		return nil, false
	}
	if run == nil {
		apiErrors.WriteError(w, apiErrors.ErrRunNotFound, "Execução não encontrada", map[string]interface{}{
			"run_id": runID,
		})
		return nil, false
	}

	return run, true
}
