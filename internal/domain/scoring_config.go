package domain

// ScoringConfig concentra todos os parâmetros heurísticos de score, risco e
// planejamento. É passado explicitamente aos motores (nunca estado global),
// permitindo que duas contas sejam avaliadas concorrentemente com ajustes
// diferentes. Os valores padrão vêm da configuração da aplicação; overrides
// por conta são mesclados sobre eles.
type ScoringConfig struct {
	// Alvo de custo por resultado da conta
	TargetCPR float64 `json:"target_cpr"`

	// Componente CPR Gap (±GapMax, interpolação linear por segmentos)
	GapMax float64 `json:"gap_max"`

	// Componente de tendência 3d vs 7d (±TrendMax, saturado em ±TrendClampPct)
	TrendMax      float64 `json:"trend_max"`
	TrendClampPct float64 `json:"trend_clamp_pct"`

	// Diagnósticos
	DiagCTRFloor         float64 `json:"diag_ctr_floor"`
	DiagCTRPenalty       float64 `json:"diag_ctr_penalty"`
	DiagCPMMedianFactor  float64 `json:"diag_cpm_median_factor"`
	DiagCPMPenalty       float64 `json:"diag_cpm_penalty"`
	DiagFrequencyCeiling float64 `json:"diag_frequency_ceiling"`
	DiagFrequencyPenalty float64 `json:"diag_frequency_penalty"`

	// Compensação pelo desempenho de hoje (today-compensation).
	// Hoje <= FullRatio de ontem: compensa todo o gap negativo + bônus extra.
	// Hoje <= StrongRatio: compensa StrongShare do gap. Hoje <= MildRatio:
	// compensa MildShare. Exige um mínimo de impressões no dia.
	MinImpressionsToday     int     `json:"min_impressions_today"`
	CompensationFullRatio   float64 `json:"compensation_full_ratio"`
	CompensationFullBonus   float64 `json:"compensation_full_bonus"`
	CompensationStrongRatio float64 `json:"compensation_strong_ratio"`
	CompensationStrongShare float64 `json:"compensation_strong_share"`
	CompensationMildRatio   float64 `json:"compensation_mild_ratio"`
	CompensationMildShare   float64 `json:"compensation_mild_share"`

	// Cortes de classificação do Health Score
	VeryGoodMin    float64 `json:"very_good_min"`
	GoodMin        float64 `json:"good_min"`
	NeutralMin     float64 `json:"neutral_min"`
	SlightlyBadMin float64 `json:"slightly_bad_min"`

	// Bandas de risco e confiança
	RiskLowMax            int     `json:"risk_low_max"`
	RiskMediumMax         int     `json:"risk_medium_max"`
	RiskHighMax           int     `json:"risk_high_max"`
	MinSpendForConfidence float64 `json:"min_spend_for_confidence"`
	ProjectionHorizonDays int     `json:"projection_horizon_days"`

	// Fadiga
	FatigueFrequencyThreshold float64 `json:"fatigue_frequency_threshold"`
	FatigueCTRDeclinePct      float64 `json:"fatigue_ctr_decline_pct"`

	// Planejamento
	MaxActionsPerPlan       int     `json:"max_actions_per_plan"`
	MaxCreativesPerLaunch   int     `json:"max_creatives_per_launch"`
	DuplicationBudgetCents  int64   `json:"duplication_budget_cents"`
	DuplicationAudienceSpec string  `json:"duplication_audience_spec"`
	LaunchBudgetCents       int64   `json:"launch_budget_cents"`
	BudgetStepUpPct         float64 `json:"budget_step_up_pct"`
	BudgetStepDownPct       float64 `json:"budget_step_down_pct"`
	MinScaleImpressions     int     `json:"min_scale_impressions"`
	MinDailyBudgetCents     int64   `json:"min_daily_budget_cents"`
}

// ScoringOverrides são os ajustes por conta, armazenados na tabela de
// contas e mesclados sobre a configuração global
type ScoringOverrides struct {
	TargetCPR              *float64 `json:"target_cpr,omitempty"`
	VeryGoodMin            *float64 `json:"very_good_min,omitempty"`
	GoodMin                *float64 `json:"good_min,omitempty"`
	NeutralMin             *float64 `json:"neutral_min,omitempty"`
	SlightlyBadMin         *float64 `json:"slightly_bad_min,omitempty"`
	MaxActionsPerPlan      *int     `json:"max_actions_per_plan,omitempty"`
	MaxCreativesPerLaunch  *int     `json:"max_creatives_per_launch,omitempty"`
	DuplicationBudgetCents *int64   `json:"duplication_budget_cents,omitempty"`
	BudgetStepUpPct        *float64 `json:"budget_step_up_pct,omitempty"`
}

// Merge devolve uma cópia da configuração com os overrides aplicados
func (c ScoringConfig) Merge(o *ScoringOverrides) ScoringConfig {
	if o == nil {
		return c
	}

	if o.TargetCPR != nil {
		c.TargetCPR = *o.TargetCPR
	}
	if o.VeryGoodMin != nil {
		c.VeryGoodMin = *o.VeryGoodMin
	}
	if o.GoodMin != nil {
		c.GoodMin = *o.GoodMin
	}
	if o.NeutralMin != nil {
		c.NeutralMin = *o.NeutralMin
	}
	if o.SlightlyBadMin != nil {
		c.SlightlyBadMin = *o.SlightlyBadMin
	}
	if o.MaxActionsPerPlan != nil {
		c.MaxActionsPerPlan = *o.MaxActionsPerPlan
	}
	if o.MaxCreativesPerLaunch != nil {
		c.MaxCreativesPerLaunch = *o.MaxCreativesPerLaunch
	}
	if o.DuplicationBudgetCents != nil {
		c.DuplicationBudgetCents = *o.DuplicationBudgetCents
	}
	if o.BudgetStepUpPct != nil {
		c.BudgetStepUpPct = *o.BudgetStepUpPct
	}

	return c
}

// Classify mapeia um score para a classe de severidade
func (c ScoringConfig) Classify(score int) HealthClass {
	s := float64(score)
	switch {
	case s >= c.VeryGoodMin:
		return HealthVeryGood
	case s >= c.GoodMin:
		return HealthGood
	case s >= c.NeutralMin:
		return HealthNeutral
	case s >= c.SlightlyBadMin:
		return HealthSlightlyBad
	default:
		return HealthBad
	}
}

// ClassifyRisk mapeia um score de risco para o nível correspondente
func (c ScoringConfig) ClassifyRisk(score int) RiskLevel {
	switch {
	case score <= c.RiskLowMax:
		return RiskLow
	case score <= c.RiskMediumMax:
		return RiskMedium
	case score <= c.RiskHighMax:
		return RiskHigh
	default:
		return RiskCritical
	}
}
