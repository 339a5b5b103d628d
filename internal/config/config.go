package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"github.com/vfg2006/ads-optimizer-api/internal/domain"
)

type Config struct {
	App               App               `mapstructure:",squash"`
	Server            Server            `mapstructure:",squash"`
	Database          Database          `mapstructure:",squash"`
	Redis             Redis             `mapstructure:",squash"`
	Meta              Meta              `mapstructure:",squash"`
	Evaluator         Evaluator         `mapstructure:",squash"`
	Auth              Auth              `mapstructure:",squash"`
	Optimizer         Optimizer         `mapstructure:",squash"`
	OptimizerSync     OptimizerSync     `mapstructure:",squash"`
	CreativeTestSync  CreativeTestSync  `mapstructure:",squash"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

type Server struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

type Database struct {
	DSN      string `mapstructure:"-"`
	Driver   string `mapstructure:"database_driver"`
	Password string `mapstructure:"database_password"`
	URL      string `mapstructure:"database_url"`
	User     string `mapstructure:"database_user"`
}

type Redis struct {
	Addr     string `mapstructure:"redis_addr"`
	Password string `mapstructure:"redis_password"`
	DB       int    `mapstructure:"redis_db"`
}

type Meta struct {
	BaseURL        string `mapstructure:"meta_base_url"`
	URL            string `mapstructure:"meta_url"`
	Version        string `mapstructure:"meta_version"`
	AccessToken    string `mapstructure:"meta_access_token"`
	AppID          string `mapstructure:"meta_app_id"`
	AppSecret      string `mapstructure:"meta_app_secret"`
	LongLivedToken string `mapstructure:"meta_long_lived_token"`
	TokenExpiresAt time.Time `mapstructure:"-"`

	// Retentativas contra a API Graph
	MaxRetries       int `mapstructure:"meta_max_retries"`
	BackoffBaseMs    int `mapstructure:"meta_backoff_base_ms"`
	BackoffMaxMs     int `mapstructure:"meta_backoff_max_ms"`
	RequestTimeoutMs int `mapstructure:"meta_request_timeout_ms"`
}

type Evaluator struct {
	URL         string `mapstructure:"evaluator_url"`
	AccessToken string `mapstructure:"evaluator_access_token"`
	TimeoutMs   int    `mapstructure:"evaluator_timeout_ms"`
}

type Auth struct {
	Secret string `mapstructure:"auth_secret"`
}

// Optimizer concentra os parâmetros heurísticos padrão (espelhados em
// domain.ScoringConfig); overrides por conta vêm da tabela de contas
type Optimizer struct {
	TargetCPR                 float64 `mapstructure:"optimizer_target_cpr"`
	GapMax                    float64 `mapstructure:"optimizer_gap_max"`
	TrendMax                  float64 `mapstructure:"optimizer_trend_max"`
	TrendClampPct             float64 `mapstructure:"optimizer_trend_clamp_pct"`
	DiagCTRFloor              float64 `mapstructure:"optimizer_diag_ctr_floor"`
	DiagCTRPenalty            float64 `mapstructure:"optimizer_diag_ctr_penalty"`
	DiagCPMMedianFactor       float64 `mapstructure:"optimizer_diag_cpm_median_factor"`
	DiagCPMPenalty            float64 `mapstructure:"optimizer_diag_cpm_penalty"`
	DiagFrequencyCeiling      float64 `mapstructure:"optimizer_diag_frequency_ceiling"`
	DiagFrequencyPenalty      float64 `mapstructure:"optimizer_diag_frequency_penalty"`
	MinImpressionsToday       int     `mapstructure:"optimizer_min_impressions_today"`
	CompensationFullRatio     float64 `mapstructure:"optimizer_compensation_full_ratio"`
	CompensationFullBonus     float64 `mapstructure:"optimizer_compensation_full_bonus"`
	CompensationStrongRatio   float64 `mapstructure:"optimizer_compensation_strong_ratio"`
	CompensationStrongShare   float64 `mapstructure:"optimizer_compensation_strong_share"`
	CompensationMildRatio     float64 `mapstructure:"optimizer_compensation_mild_ratio"`
	CompensationMildShare     float64 `mapstructure:"optimizer_compensation_mild_share"`
	VeryGoodMin               float64 `mapstructure:"optimizer_very_good_min"`
	GoodMin                   float64 `mapstructure:"optimizer_good_min"`
	NeutralMin                float64 `mapstructure:"optimizer_neutral_min"`
	SlightlyBadMin            float64 `mapstructure:"optimizer_slightly_bad_min"`
	RiskLowMax                int     `mapstructure:"optimizer_risk_low_max"`
	RiskMediumMax             int     `mapstructure:"optimizer_risk_medium_max"`
	RiskHighMax               int     `mapstructure:"optimizer_risk_high_max"`
	MinSpendForConfidence     float64 `mapstructure:"optimizer_min_spend_for_confidence"`
	ProjectionHorizonDays     int     `mapstructure:"optimizer_projection_horizon_days"`
	FatigueFrequencyThreshold float64 `mapstructure:"optimizer_fatigue_frequency_threshold"`
	FatigueCTRDeclinePct      float64 `mapstructure:"optimizer_fatigue_ctr_decline_pct"`
	MaxActionsPerPlan         int     `mapstructure:"optimizer_max_actions_per_plan"`
	MaxCreativesPerLaunch     int     `mapstructure:"optimizer_max_creatives_per_launch"`
	DuplicationBudgetCents    int64   `mapstructure:"optimizer_duplication_budget_cents"`
	DuplicationAudienceSpec   string  `mapstructure:"optimizer_duplication_audience_spec"`
	LaunchBudgetCents         int64   `mapstructure:"optimizer_launch_budget_cents"`
	BudgetStepUpPct           float64 `mapstructure:"optimizer_budget_step_up_pct"`
	BudgetStepDownPct         float64 `mapstructure:"optimizer_budget_step_down_pct"`
	MinScaleImpressions       int     `mapstructure:"optimizer_min_scale_impressions"`
	MinDailyBudgetCents       int64   `mapstructure:"optimizer_min_daily_budget_cents"`
}

type OptimizerSync struct {
	CronSchedule        string `mapstructure:"optimizer_sync_cron"`
	MaxConcurrentFetch  int    `mapstructure:"optimizer_sync_max_concurrent_fetch"`
	RequestDelaySeconds int    `mapstructure:"optimizer_sync_request_delay_seconds"`
	DispatchMode        string `mapstructure:"optimizer_sync_dispatch_mode"`
	Enabled             bool   `mapstructure:"optimizer_sync_enabled"`
}

type CreativeTestSync struct {
	CronSchedule        string `mapstructure:"creative_test_sync_cron"`
	ImpressionThreshold int    `mapstructure:"creative_test_impression_threshold"`
	DailyBudgetCents    int64  `mapstructure:"creative_test_daily_budget_cents"`
	Enabled             bool   `mapstructure:"creative_test_sync_enabled"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)
	viper.SetDefault("LOG_LEVEL", "debug")

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/ads_optimizer")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")

	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_DB", 0)

	viper.SetDefault("META_BASE_URL", "https://graph.facebook.com")
	viper.SetDefault("META_VERSION", "v22.0")
	viper.SetDefault("META_APP_ID", "your_app_id")
	viper.SetDefault("META_APP_SECRET", "your_app_secret")
	viper.SetDefault("META_ACCESS_TOKEN", "your_access_token") // ONLY LOCAL
	viper.SetDefault("META_MAX_RETRIES", 4)
	viper.SetDefault("META_BACKOFF_BASE_MS", 500)
	viper.SetDefault("META_BACKOFF_MAX_MS", 15000)
	viper.SetDefault("META_REQUEST_TIMEOUT_MS", 20000)

	viper.SetDefault("EVALUATOR_URL", "http://localhost:9100/api/v1")
	viper.SetDefault("EVALUATOR_ACCESS_TOKEN", "your_access_token")
	viper.SetDefault("EVALUATOR_TIMEOUT_MS", 10000)

	viper.SetDefault("AUTH_SECRET", "your_auth_secret")

	// Heurísticas do otimizador (ajustáveis por ambiente e por conta)
	viper.SetDefault("OPTIMIZER_TARGET_CPR", 4.0)
	viper.SetDefault("OPTIMIZER_GAP_MAX", 45.0)
	viper.SetDefault("OPTIMIZER_TREND_MAX", 15.0)
	viper.SetDefault("OPTIMIZER_TREND_CLAMP_PCT", 20.0)
	viper.SetDefault("OPTIMIZER_DIAG_CTR_FLOOR", 1.0)
	viper.SetDefault("OPTIMIZER_DIAG_CTR_PENALTY", 8.0)
	viper.SetDefault("OPTIMIZER_DIAG_CPM_MEDIAN_FACTOR", 1.3)
	viper.SetDefault("OPTIMIZER_DIAG_CPM_PENALTY", 12.0)
	viper.SetDefault("OPTIMIZER_DIAG_FREQUENCY_CEILING", 2.0)
	viper.SetDefault("OPTIMIZER_DIAG_FREQUENCY_PENALTY", 10.0)
	viper.SetDefault("OPTIMIZER_MIN_IMPRESSIONS_TODAY", 500)
	viper.SetDefault("OPTIMIZER_COMPENSATION_FULL_RATIO", 0.5)
	viper.SetDefault("OPTIMIZER_COMPENSATION_FULL_BONUS", 10.0)
	viper.SetDefault("OPTIMIZER_COMPENSATION_STRONG_RATIO", 0.7)
	viper.SetDefault("OPTIMIZER_COMPENSATION_STRONG_SHARE", 0.6)
	viper.SetDefault("OPTIMIZER_COMPENSATION_MILD_RATIO", 0.9)
	viper.SetDefault("OPTIMIZER_COMPENSATION_MILD_SHARE", 0.3)
	viper.SetDefault("OPTIMIZER_VERY_GOOD_MIN", 25.0)
	viper.SetDefault("OPTIMIZER_GOOD_MIN", 5.0)
	viper.SetDefault("OPTIMIZER_NEUTRAL_MIN", -5.0)
	viper.SetDefault("OPTIMIZER_SLIGHTLY_BAD_MIN", -25.0)
	viper.SetDefault("OPTIMIZER_RISK_LOW_MAX", 25)
	viper.SetDefault("OPTIMIZER_RISK_MEDIUM_MAX", 50)
	viper.SetDefault("OPTIMIZER_RISK_HIGH_MAX", 75)
	viper.SetDefault("OPTIMIZER_MIN_SPEND_FOR_CONFIDENCE", 50.0)
	viper.SetDefault("OPTIMIZER_PROJECTION_HORIZON_DAYS", 3)
	viper.SetDefault("OPTIMIZER_FATIGUE_FREQUENCY_THRESHOLD", 3.0)
	viper.SetDefault("OPTIMIZER_FATIGUE_CTR_DECLINE_PCT", 20.0)
	viper.SetDefault("OPTIMIZER_MAX_ACTIONS_PER_PLAN", 5)
	viper.SetDefault("OPTIMIZER_MAX_CREATIVES_PER_LAUNCH", 3)
	viper.SetDefault("OPTIMIZER_DUPLICATION_BUDGET_CENTS", 1500)
	viper.SetDefault("OPTIMIZER_DUPLICATION_AUDIENCE_SPEC", `{"targeting_relaxation_types":{"lookalike":1,"custom_audience":1}}`)
	viper.SetDefault("OPTIMIZER_LAUNCH_BUDGET_CENTS", 2000)
	viper.SetDefault("OPTIMIZER_BUDGET_STEP_UP_PCT", 20.0)
	viper.SetDefault("OPTIMIZER_BUDGET_STEP_DOWN_PCT", 20.0)
	viper.SetDefault("OPTIMIZER_MIN_SCALE_IMPRESSIONS", 5000)
	viper.SetDefault("OPTIMIZER_MIN_DAILY_BUDGET_CENTS", 500)

	// Agendadores
	viper.SetDefault("OPTIMIZER_SYNC_CRON", "0 * * * *") // A cada hora
	viper.SetDefault("OPTIMIZER_SYNC_MAX_CONCURRENT_FETCH", 3)
	viper.SetDefault("OPTIMIZER_SYNC_REQUEST_DELAY_SECONDS", 1)
	viper.SetDefault("OPTIMIZER_SYNC_DISPATCH_MODE", "dry_run")
	viper.SetDefault("OPTIMIZER_SYNC_ENABLED", false)

	viper.SetDefault("CREATIVE_TEST_SYNC_CRON", "*/10 * * * *") // A cada 10 minutos
	viper.SetDefault("CREATIVE_TEST_IMPRESSION_THRESHOLD", 1000)
	viper.SetDefault("CREATIVE_TEST_DAILY_BUDGET_CENTS", 1000)
	viper.SetDefault("CREATIVE_TEST_SYNC_ENABLED", false)
}

func NewConfig() (*Config, error) {
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("Usando variáveis carregadas pelo godotenv (viper não conseguiu ler .env):", err)
	}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	config.Meta.URL = fmt.Sprintf("%s/%s", config.Meta.BaseURL, config.Meta.Version)

	config.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		config.Database.Driver,
		config.Database.User,
		config.Database.Password,
		config.Database.URL,
	)

	return config, nil
}

// ScoringConfig materializa a configuração de score a partir dos defaults
// globais. O agendador mescla os overrides da conta sobre este valor.
func (c *Config) ScoringConfig() domain.ScoringConfig {
	o := c.Optimizer
	return domain.ScoringConfig{
		TargetCPR:                 o.TargetCPR,
		GapMax:                    o.GapMax,
		TrendMax:                  o.TrendMax,
		TrendClampPct:             o.TrendClampPct,
		DiagCTRFloor:              o.DiagCTRFloor,
		DiagCTRPenalty:            o.DiagCTRPenalty,
		DiagCPMMedianFactor:       o.DiagCPMMedianFactor,
		DiagCPMPenalty:            o.DiagCPMPenalty,
		DiagFrequencyCeiling:      o.DiagFrequencyCeiling,
		DiagFrequencyPenalty:      o.DiagFrequencyPenalty,
		MinImpressionsToday:       o.MinImpressionsToday,
		CompensationFullRatio:     o.CompensationFullRatio,
		CompensationFullBonus:     o.CompensationFullBonus,
		CompensationStrongRatio:   o.CompensationStrongRatio,
		CompensationStrongShare:   o.CompensationStrongShare,
		CompensationMildRatio:     o.CompensationMildRatio,
		CompensationMildShare:     o.CompensationMildShare,
		VeryGoodMin:               o.VeryGoodMin,
		GoodMin:                   o.GoodMin,
		NeutralMin:                o.NeutralMin,
		SlightlyBadMin:            o.SlightlyBadMin,
		RiskLowMax:                o.RiskLowMax,
		RiskMediumMax:             o.RiskMediumMax,
		RiskHighMax:               o.RiskHighMax,
		MinSpendForConfidence:     o.MinSpendForConfidence,
		ProjectionHorizonDays:     o.ProjectionHorizonDays,
		FatigueFrequencyThreshold: o.FatigueFrequencyThreshold,
		FatigueCTRDeclinePct:      o.FatigueCTRDeclinePct,
		MaxActionsPerPlan:         o.MaxActionsPerPlan,
		MaxCreativesPerLaunch:     o.MaxCreativesPerLaunch,
		DuplicationBudgetCents:    o.DuplicationBudgetCents,
		DuplicationAudienceSpec:   o.DuplicationAudienceSpec,
		LaunchBudgetCents:         o.LaunchBudgetCents,
		BudgetStepUpPct:           o.BudgetStepUpPct,
		BudgetStepDownPct:         o.BudgetStepDownPct,
		MinScaleImpressions:       o.MinScaleImpressions,
		MinDailyBudgetCents:       o.MinDailyBudgetCents,
	}
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(filepath.Dir(cwd), ".env"),
		filepath.Join(cwd, "../../.env"),
	}

	for _, location := range locations {
		if err := godotenv.Load(location); err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Warn("Não foi possível carregar o arquivo .env de nenhuma localização conhecida")
}
