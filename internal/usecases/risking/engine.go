package risking

import (
	"fmt"
	"math"

	"github.com/vfg2006/ads-optimizer-api/internal/domain"
	"github.com/vfg2006/ads-optimizer-api/pkg/utils"
)

// Pesos máximos de cada componente do score de risco
const (
	cplDeviationMax      = 40.0
	trendRiskMax         = 20.0
	volumeRiskMax        = 20.0
	consistencyCreditMax = 20.0
)

// Variação de CPR (3d vs 7d) que satura o componente de tendência
const trendRiskSaturationPct = 30.0

// Variação mínima para considerar a tendência fora de "stable"
const trendStableBandPct = 5.0

// Resultados em 3 dias a partir dos quais o risco de volume zera
const volumeComfortResults = 10

// ComputeRisk calcula o score de risco (0-100) de um adset e a projeção de
// CPR para o horizonte configurado
func ComputeRisk(adset *domain.AdSet, cfg domain.ScoringConfig) *domain.RiskRecord {
	last3d := adset.Metrics.Last3d
	last7d := adset.Metrics.Last7d

	reasons := make([]string, 0, 4)

	deviation := cplDeviation(last3d, cfg, &reasons)
	trendRisk, trendPct := trendRisk(last3d, last7d, &reasons)
	volume := volumeRisk(last3d, &reasons)
	credit := consistencyCredit(adset.Metrics)

	raw := deviation + trendRisk + volume - credit
	score := int(math.Round(utils.Clamp(raw, 0, 100)))
	level := cfg.ClassifyRisk(score)

	return &domain.RiskRecord{
		AdSetID:        adset.ID,
		Score:          score,
		Level:          level,
		PredictedCPR:   projectCPR(last3d.CostPerResult, trendPct, cfg.ProjectionHorizonDays),
		HorizonDays:    cfg.ProjectionHorizonDays,
		Confidence:     confidence(last7d, cfg),
		Trend:          classifyTrend(trendPct),
		Recommendation: recommendationFor(level),
		Reasons:        reasons,
	}
}

// cplDeviation pontua o quanto o CPR de 3 dias excede o alvo: zero até o
// alvo, máximo a partir do dobro
func cplDeviation(last3d domain.MetricsWindow, cfg domain.ScoringConfig, reasons *[]string) float64 {
	if cfg.TargetCPR <= 0 {
		return 0
	}

	if last3d.Results == 0 {
		if last3d.Spend >= cfg.TargetCPR {
			*reasons = append(*reasons, fmt.Sprintf("gasto de %.2f em 3 dias sem nenhum resultado", last3d.Spend))
			return cplDeviationMax
		}
		return 0
	}

	ratio := last3d.CostPerResult / cfg.TargetCPR
	if ratio <= 1 {
		return 0
	}

	*reasons = append(*reasons, fmt.Sprintf("CPR de 3 dias %.2f acima do alvo %.2f", last3d.CostPerResult, cfg.TargetCPR))

	return utils.Clamp((ratio-1)*cplDeviationMax, 0, cplDeviationMax)
}

// trendRisk pontua a piora do CPR de 3 dias frente ao de 7 e devolve a
// variação percentual usada também na projeção
func trendRisk(last3d, last7d domain.MetricsWindow, reasons *[]string) (float64, float64) {
	if last3d.CostPerResult <= 0 || last7d.CostPerResult <= 0 {
		return 0, 0
	}

	deltaPct := (last3d.CostPerResult - last7d.CostPerResult) / last7d.CostPerResult * 100
	if deltaPct <= 0 {
		return 0, deltaPct
	}

	if deltaPct > trendStableBandPct {
		*reasons = append(*reasons, fmt.Sprintf("CPR piorou %.1f%% nos últimos 3 dias", deltaPct))
	}

	return utils.Clamp(deltaPct/trendRiskSaturationPct, 0, 1) * trendRiskMax, deltaPct
}

// volumeRisk pontua a escassez de resultados recentes: poucos resultados
// tornam qualquer CPR pouco confiável
func volumeRisk(last3d domain.MetricsWindow, reasons *[]string) float64 {
	if !last3d.HasDelivery() {
		return volumeRiskMax
	}

	if last3d.Results >= volumeComfortResults {
		return 0
	}

	if last3d.Results == 0 {
		*reasons = append(*reasons, "nenhum resultado nos últimos 3 dias")
		return volumeRiskMax
	}

	return (1 - float64(last3d.Results)/volumeComfortResults) * volumeRiskMax
}

// consistencyCredit abate risco de adsets que entregam resultado em todas
// as janelas avaliadas
func consistencyCredit(metrics domain.AdSetMetrics) float64 {
	windows := []domain.MetricsWindow{metrics.Yesterday, metrics.Last3d, metrics.Last7d}

	credit := 0.0
	for _, w := range windows {
		if w.Results > 0 {
			credit += consistencyCreditMax / float64(len(windows))
		}
	}
	return credit
}

// projectCPR extrapola o CPR de 3 dias pela tendência diária observada
func projectCPR(cpr3d, trendPct float64, horizonDays int) float64 {
	if cpr3d <= 0 {
		return 0
	}

	dailyPct := trendPct / 3
	projected := cpr3d * (1 + dailyPct/100*float64(horizonDays))

	return utils.RoundWithTwoDecimalPlace(math.Max(projected, 0))
}

func confidence(last7d domain.MetricsWindow, cfg domain.ScoringConfig) domain.RiskConfidence {
	switch {
	case last7d.Spend >= cfg.MinSpendForConfidence:
		return domain.ConfidenceHigh
	case last7d.Spend >= cfg.MinSpendForConfidence/2:
		return domain.ConfidenceMedium
	default:
		return domain.ConfidenceLow
	}
}

func classifyTrend(trendPct float64) domain.RiskTrend {
	switch {
	case trendPct > trendStableBandPct:
		return domain.TrendDeclining
	case trendPct < -trendStableBandPct:
		return domain.TrendImproving
	default:
		return domain.TrendStable
	}
}

func recommendationFor(level domain.RiskLevel) domain.RiskRecommendation {
	switch level {
	case domain.RiskLow:
		return domain.RecommendScale
	case domain.RiskMedium:
		return domain.RecommendMonitor
	case domain.RiskHigh:
		return domain.RecommendReduce
	default:
		return domain.RecommendPause
	}
}

// DetectFatigue sinaliza fadiga de audiência quando a frequência de 7 dias
// excede o teto ou o CTR de 3 dias caiu além do limite frente ao de 7
func DetectFatigue(adset *domain.AdSet, cfg domain.ScoringConfig) *domain.FatigueAlert {
	last3d := adset.Metrics.Last3d
	last7d := adset.Metrics.Last7d

	highFrequency := last7d.Frequency > cfg.FatigueFrequencyThreshold

	declinePct := 0.0
	if last7d.CTR > 0 && last3d.CTR > 0 {
		declinePct = (last7d.CTR - last3d.CTR) / last7d.CTR * 100
	}
	ctrDecline := declinePct > cfg.FatigueCTRDeclinePct

	if !highFrequency && !ctrDecline {
		return nil
	}

	alert := &domain.FatigueAlert{
		CreativeID:    adset.ID,
		Frequency:     last7d.Frequency,
		CTRCurrent:    last3d.CTR,
		CTRBaseline:   last7d.CTR,
		CTRDeclinePct: utils.RoundWithTwoDecimalPlace(declinePct),
		Urgent:        highFrequency && ctrDecline,
	}

	switch {
	case alert.Urgent:
		alert.Recommendation = "trocar o criativo imediatamente: frequência alta e CTR em queda"
	case highFrequency:
		alert.Recommendation = "ampliar a audiência ou preparar um novo criativo"
	default:
		alert.Recommendation = "monitorar o CTR; considerar rotação de criativo"
	}

	return alert
}

// DetectBudgetEaters identifica adsets que concentram gasto sem retorno
// proporcional, priorizados pela gravidade
func DetectBudgetEaters(adsets []*domain.AdSet, cfg domain.ScoringConfig) []domain.BudgetEater {
	spendByCampaign := make(map[string]float64)
	activeByCampaign := make(map[string]int)

	for _, adset := range adsets {
		spendByCampaign[adset.CampaignID] += adset.Metrics.Last3d.Spend
		if adset.Status == domain.AdSetStatusActive {
			activeByCampaign[adset.CampaignID]++
		}
	}

	eaters := make([]domain.BudgetEater, 0)

	for _, adset := range adsets {
		last3d := adset.Metrics.Last3d
		if !last3d.HasDelivery() {
			continue
		}

		sharePct := 0.0
		if total := spendByCampaign[adset.CampaignID]; total > 0 {
			sharePct = utils.RoundWithTwoDecimalPlace(last3d.Spend / total * 100)
		}

		eater := domain.BudgetEater{
			AdSetID:        adset.ID,
			AdSetName:      adset.Name,
			CampaignID:     adset.CampaignID,
			Spend:          last3d.Spend,
			Results:        last3d.Results,
			CPR:            last3d.CostPerResult,
			SpendSharePct:  sharePct,
			LastInCampaign: adset.Status == domain.AdSetStatusActive && activeByCampaign[adset.CampaignID] == 1,
		}

		switch {
		case last3d.Results > 0 && last3d.CostPerResult > cfg.TargetCPR*3:
			eater.Priority = domain.EaterCritical
			eater.Reason = fmt.Sprintf("CPR %.2f acima de 3x o alvo", last3d.CostPerResult)
		case last3d.Results == 0 && last3d.Spend >= cfg.TargetCPR:
			eater.Priority = domain.EaterHigh
			eater.Reason = fmt.Sprintf("gasto de %.2f sem nenhum resultado", last3d.Spend)
		case last3d.Results > 0 && last3d.CostPerResult > cfg.TargetCPR*1.5 && sharePct >= 40:
			eater.Priority = domain.EaterMedium
			eater.Reason = fmt.Sprintf("CPR alto concentrando %.0f%% do gasto da campanha", sharePct)
		default:
			continue
		}

		eaters = append(eaters, eater)
	}

	return eaters
}
