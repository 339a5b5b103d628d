package scoring

import (
	"math"
	"sort"

	"github.com/vfg2006/ads-optimizer-api/internal/domain"
	"github.com/vfg2006/ads-optimizer-api/pkg/utils"
)

// Pontos de quebra da curva de CPR gap, em múltiplos do alvo. Entre os
// pontos a pontuação é interpolada linearmente; fora deles, satura.
var gapCurve = []struct {
	ratio float64
	share float64 // fração de GapMax
}{
	{0.5, 1.0},
	{0.7, 0.5},
	{1.0, 0.0},
	{1.5, -0.5},
	{2.0, -1.0},
}

// Impressões de ontem a partir das quais o fator de volume atinge 1.0
const volumeFullImpressions = 5000

// scoreBounds limita o Health Score final
const (
	scoreMin = -100
	scoreMax = 100
)

// ComputeScore calcula o Health Score de um adset a partir das janelas de
// métricas já coletadas. medianCPM é a mediana de CPM de ontem entre os
// adsets da conta com entrega; zero desliga o diagnóstico de CPM.
func ComputeScore(
	adset *domain.AdSet,
	flags domain.HistoryFlags,
	cfg domain.ScoringConfig,
	medianCPM float64,
) *domain.HealthScoreRecord {
	yesterday := adset.Metrics.Yesterday
	today := adset.Metrics.Today

	components := domain.HealthComponents{
		CPRGap:          cprGap(yesterday, cfg),
		Trend:           trend(adset.Metrics, cfg),
		Diagnostics:     diagnostics(yesterday, cfg, medianCPM),
		VolumeFactor:    volumeFactor(yesterday),
		TodayAdjustment: 0,
	}

	components.TodayAdjustment = todayCompensation(components.CPRGap, yesterday, today, cfg)

	raw := (components.CPRGap + components.Trend + components.Diagnostics + components.TodayAdjustment) *
		components.VolumeFactor

	score := int(math.Round(utils.Clamp(raw, scoreMin, scoreMax)))

	return &domain.HealthScoreRecord{
		AdSetID:          adset.ID,
		AdSetName:        adset.Name,
		Score:            score,
		Class:            cfg.Classify(score),
		Components:       components,
		TargetCPR:        cfg.TargetCPR,
		CPRYesterday:     yesterday.CostPerResult,
		CPRToday:         today.CostPerResult,
		ImpressionsToday: today.Impressions,
		Flags:            flags,
	}
}

// cprGap compara o CPR de ontem com o alvo da conta. Sem resultados ontem,
// só penaliza quando o gasto já consumiu pelo menos um alvo inteiro; caso
// contrário trata como ausência de dados.
func cprGap(yesterday domain.MetricsWindow, cfg domain.ScoringConfig) float64 {
	if cfg.TargetCPR <= 0 {
		return 0
	}

	if yesterday.Results == 0 {
		if yesterday.Spend >= cfg.TargetCPR {
			return -cfg.GapMax
		}
		return 0
	}

	ratio := yesterday.CostPerResult / cfg.TargetCPR

	if ratio <= gapCurve[0].ratio {
		return cfg.GapMax * gapCurve[0].share
	}
	if ratio >= gapCurve[len(gapCurve)-1].ratio {
		return cfg.GapMax * gapCurve[len(gapCurve)-1].share
	}

	for i := 1; i < len(gapCurve); i++ {
		if ratio <= gapCurve[i].ratio {
			prev, curr := gapCurve[i-1], gapCurve[i]
			t := (ratio - prev.ratio) / (curr.ratio - prev.ratio)
			return cfg.GapMax * (prev.share + t*(curr.share-prev.share))
		}
	}

	return 0
}

// trend compara o CPR dos últimos 3 dias com o dos últimos 7. CPR em queda
// pontua positivo; a variação satura em TrendClampPct.
func trend(metrics domain.AdSetMetrics, cfg domain.ScoringConfig) float64 {
	cpr3 := metrics.Last3d.CostPerResult
	cpr7 := metrics.Last7d.CostPerResult

	if cpr3 <= 0 || cpr7 <= 0 || cfg.TrendClampPct <= 0 {
		return 0
	}

	deltaPct := utils.Clamp((cpr3-cpr7)/cpr7*100, -cfg.TrendClampPct, cfg.TrendClampPct)

	return -deltaPct / cfg.TrendClampPct * cfg.TrendMax
}

// diagnostics acumula penalidades por sintomas de entrega ruim: CTR abaixo
// do piso, CPM muito acima da mediana da conta e frequência alta
func diagnostics(yesterday domain.MetricsWindow, cfg domain.ScoringConfig, medianCPM float64) float64 {
	if !yesterday.HasDelivery() {
		return 0
	}

	penalty := 0.0

	if yesterday.CTR < cfg.DiagCTRFloor {
		penalty -= cfg.DiagCTRPenalty
	}
	if medianCPM > 0 && yesterday.CPM > medianCPM*cfg.DiagCPMMedianFactor {
		penalty -= cfg.DiagCPMPenalty
	}
	if yesterday.Frequency > cfg.DiagFrequencyCeiling {
		penalty -= cfg.DiagFrequencyPenalty
	}

	return penalty
}

// todayCompensation devolve parte do gap negativo de ontem quando o dia
// atual mostra recuperação clara, evitando pausar um adset que já virou.
// Exige um mínimo de impressões hoje para não reagir a ruído.
func todayCompensation(gap float64, yesterday, today domain.MetricsWindow, cfg domain.ScoringConfig) float64 {
	if gap >= 0 {
		return 0
	}
	if today.Impressions < cfg.MinImpressionsToday {
		return 0
	}
	if today.CostPerResult <= 0 || yesterday.CostPerResult <= 0 {
		return 0
	}

	ratio := today.CostPerResult / yesterday.CostPerResult

	switch {
	case ratio <= cfg.CompensationFullRatio:
		return -gap + cfg.CompensationFullBonus
	case ratio <= cfg.CompensationStrongRatio:
		return -gap * cfg.CompensationStrongShare
	case ratio <= cfg.CompensationMildRatio:
		return -gap * cfg.CompensationMildShare
	}

	return 0
}

// volumeFactor atenua o score de adsets com pouca entrega: com poucas
// impressões o sinal é fraco e o score converge para o neutro
func volumeFactor(yesterday domain.MetricsWindow) float64 {
	share := utils.Clamp(float64(yesterday.Impressions)/volumeFullImpressions, 0, 1)
	return 0.6 + 0.4*share
}

// MedianCPM calcula a mediana de CPM de ontem entre os adsets com entrega
func MedianCPM(adsets []*domain.AdSet) float64 {
	cpms := make([]float64, 0, len(adsets))
	for _, adset := range adsets {
		if adset.Metrics.Yesterday.HasDelivery() && adset.Metrics.Yesterday.CPM > 0 {
			cpms = append(cpms, adset.Metrics.Yesterday.CPM)
		}
	}

	if len(cpms) == 0 {
		return 0
	}

	sort.Float64s(cpms)

	mid := len(cpms) / 2
	if len(cpms)%2 == 0 {
		return (cpms[mid-1] + cpms[mid]) / 2
	}
	return cpms[mid]
}
