package domain

import (
	"errors"
	"fmt"
	"time"
)

// ExecutionStatus é o desfecho de uma ação despachada
type ExecutionStatus string

const (
	ExecutionSucceeded        ExecutionStatus = "succeeded"
	ExecutionValidated        ExecutionStatus = "validated" // dry_run: validada sem efeito na plataforma
	ExecutionFailed           ExecutionStatus = "failed"
	ExecutionSkippedDuplicate ExecutionStatus = "skipped_duplicate"
	ExecutionValidationError  ExecutionStatus = "validation_error"
)

// IsTerminalSuccess indica se o registro impede nova execução da mesma
// chave. Registros de dry_run nunca são terminais: a mesma chave pode ser
// executada de verdade em um despacho live posterior.
func (s ExecutionStatus) IsTerminalSuccess() bool {
	return s == ExecutionSucceeded
}

// FailureKind é a taxonomia fixa de falhas da plataforma
type FailureKind string

const (
	FailureTransientNetwork  FailureKind = "transient_network"  // timeout, 5xx
	FailureRateLimited       FailureKind = "rate_limited"       // limite de requisições
	FailureExpiredCredential FailureKind = "expired_credential" // token inválido/expirado
	FailurePermissionDenied  FailureKind = "permission_denied"  // sem permissão ou entidade restrita
	FailureInvalidParameters FailureKind = "invalid_parameters" // bug de planejamento
	FailureUnknown           FailureKind = "unknown"
)

// IsRetryable indica se o tipo de falha admite nova tentativa com backoff
func (k FailureKind) IsRetryable() bool {
	return k == FailureTransientNetwork || k == FailureRateLimited
}

// PlatformError é um erro estruturado devolvido pelo adaptador da
// plataforma, já classificado na taxonomia interna
type PlatformError struct {
	Kind    FailureKind
	Code    int
	Subcode int
	Message string
	Hint    string
}

func (e *PlatformError) Error() string {
	if e.Code != 0 {
		return fmt.Sprintf("%s (código %d): %s", e.Kind, e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// NewPlatformError cria um erro classificado da plataforma
func NewPlatformError(kind FailureKind, code int, message string) *PlatformError {
	return &PlatformError{Kind: kind, Code: code, Message: message}
}

// ClassifyError extrai o tipo de falha de um erro qualquer, inclusive
// quando o erro da plataforma foi encadeado com %w
func ClassifyError(err error) FailureKind {
	if err == nil {
		return ""
	}
	var pe *PlatformError
	if errors.As(err, &pe) {
		return pe.Kind
	}
	return FailureUnknown
}

// ExecutionRecord registra o desfecho de uma ação despachada.
// Append-only: nunca é reescrito após atingir status terminal.
type ExecutionRecord struct {
	ID             int64           `json:"id"`
	PlanKey        string          `json:"plan_key"`
	IdempotencyKey string          `json:"idempotency_key"`
	ActionIndex    int             `json:"action_index"`
	ActionType     ActionType      `json:"action_type"`
	TargetEntityID string          `json:"target_entity_id,omitempty"`
	Direction      BudgetDirection `json:"direction,omitempty"`
	Status         ExecutionStatus `json:"status"`
	FailureKind    FailureKind     `json:"failure_kind,omitempty"`
	ErrorMessage   string          `json:"error_message,omitempty"`
	ResultEntityID string          `json:"result_entity_id,omitempty"`
	RetryCount     int             `json:"retry_count"`
	CreatedAt      time.Time       `json:"created_at"`
	CompletedAt    *time.Time      `json:"completed_at,omitempty"`
}

// RunStatus é o estado de uma execução do otimizador
type RunStatus string

const (
	RunRunning   RunStatus = "running"
	RunCompleted RunStatus = "completed"
	RunFailed    RunStatus = "failed"
)

// OptimizerRun é o registro de auditoria de uma execução completa do ciclo
// coleta -> score -> risco -> plano -> despacho. Toda execução deixa rastro,
// mesmo quando todas as ações falham.
type OptimizerRun struct {
	ID               string       `json:"id"`
	AccountID        string       `json:"account_id"`
	PlanKey          string       `json:"plan_key,omitempty"`
	Status           RunStatus    `json:"status"`
	Mode             DispatchMode `json:"mode"`
	AdSetsEvaluated  int          `json:"adsets_evaluated"`
	FetchFailures    int          `json:"fetch_failures"`
	ActionsPlanned   int          `json:"actions_planned"`
	ActionsSucceeded int          `json:"actions_succeeded"`
	ActionsFailed    int          `json:"actions_failed"`
	ActionsSkipped   int          `json:"actions_skipped"`
	StartedAt        time.Time    `json:"started_at"`
	CompletedAt      *time.Time   `json:"completed_at,omitempty"`
}
