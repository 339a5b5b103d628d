package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"

	"github.com/vfg2006/ads-optimizer-api/internal/usecases/creativetesting"
	"github.com/vfg2006/ads-optimizer-api/pkg/apiErrors"
)

type StartCreativeTestRequest struct {
	AccountID string `json:"account_id"`
	AssetID   string `json:"asset_id"`
}

// StartCreativeTest lança um teste de criativo para uma conta
func StartCreativeTest(service creativetesting.CreativeTester) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - StartCreativeTest")

		var req StartCreativeTestRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		if req.AccountID == "" || req.AssetID == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID da conta e do criativo são obrigatórios", nil)
			return
		}

		test, err := service.StartTest(r.Context(), req.AccountID, req.AssetID)
		if err != nil {
			handleCreativeTestError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)

		if err := json.NewEncoder(w).Encode(test); err != nil {
			logrus.Error(err)
		}
	})
}

// ListCreativeTests lista os testes de criativo de uma conta
func ListCreativeTests(service creativetesting.CreativeTester) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		accountID := r.URL.Query().Get("account_id")
		if accountID == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Parâmetro account_id é obrigatório", nil)
			return
		}

		tests, err := service.ListTests(r.Context(), accountID)
		if err != nil {
			logrus.Error("Error listing creative tests:", err)
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao consultar os testes de criativo", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")

		if err := json.NewEncoder(w).Encode(tests); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao codificar resposta", nil)
		}
	})
}

// GetCreativeTest retorna um teste de criativo com métricas e avaliação
func GetCreativeTest(service creativetesting.CreativeTester) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		testID := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if testID == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID do teste é obrigatório", nil)
			return
		}

		test, err := service.GetTest(r.Context(), testID)
		if err != nil {
			handleCreativeTestError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")

		if err := json.NewEncoder(w).Encode(test); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao codificar resposta", nil)
		}
	})
}

// CancelCreativeTest cancela um teste em andamento e pausa a campanha de teste
func CancelCreativeTest(service creativetesting.CreativeTester) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - CancelCreativeTest")

		testID := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if testID == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID do teste é obrigatório", nil)
			return
		}

		test, err := service.CancelTest(r.Context(), testID)
		if err != nil {
			handleCreativeTestError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")

		if err := json.NewEncoder(w).Encode(test); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao codificar resposta", nil)
		}
	})
}

func handleCreativeTestError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, creativetesting.ErrAccountNotFound):
		apiErrors.WriteError(w, apiErrors.ErrAccountNotFound, "Conta não encontrada", nil)

	case errors.Is(err, creativetesting.ErrTestNotFound):
		apiErrors.WriteError(w, apiErrors.ErrRunNotFound, "Teste de criativo não encontrado", nil)

	case errors.Is(err, creativetesting.ErrAssetNotFound):
		apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Criativo não encontrado", nil)

	case errors.Is(err, creativetesting.ErrAssetNotReady):
		apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Criativo ainda não está pronto para teste", nil)

	case errors.Is(err, creativetesting.ErrAssetWithoutRef):
		apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Criativo sem referência publicada para o objetivo do teste", nil)

	case errors.Is(err, creativetesting.ErrActiveTestExists):
		apiErrors.WriteError(w, apiErrors.ErrCreativeTestState, "A conta já possui um teste de criativo em andamento", nil)

	case errors.Is(err, creativetesting.ErrTestAlreadyDone):
		apiErrors.WriteError(w, apiErrors.ErrCreativeTestState, "O teste já foi finalizado", nil)

	default:
		logrus.Error("Creative test error:", err)
		apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro interno ao processar o teste de criativo", nil)
	}
}
