package domain

import "time"

// AdAccountStatus representa a situação de uma conta de anúncios no sistema
type AdAccountStatus string

const (
	AdAccountStatusActive   AdAccountStatus = "ACTIVE"
	AdAccountStatusInactive AdAccountStatus = "INACTIVE"
)

// AdAccount é uma conta de anúncios gerenciada pelo otimizador
type AdAccount struct {
	ID         string          `json:"id"`
	ExternalID string          `json:"external_id"`
	Name       string          `json:"name"`
	Status     AdAccountStatus `json:"status"`

	// Parâmetros de otimização da conta
	OptimizerEnabled bool              `json:"optimizer_enabled"`
	TargetCPR        float64           `json:"target_cpr"`
	Overrides        *ScoringOverrides `json:"scoring_overrides,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UpdateAdAccountRequest são os campos editáveis de uma conta
type UpdateAdAccountRequest struct {
	Name             *string           `json:"name,omitempty"`
	Status           *AdAccountStatus  `json:"status,omitempty"`
	OptimizerEnabled *bool             `json:"optimizer_enabled,omitempty"`
	TargetCPR        *float64          `json:"target_cpr,omitempty"`
	Overrides        *ScoringOverrides `json:"scoring_overrides,omitempty"`
}
