package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vfg2006/ads-optimizer-api/internal/domain"
)

func defaultScoringConfig() domain.ScoringConfig {
	return domain.ScoringConfig{
		TargetCPR:                 4.0,
		GapMax:                    45.0,
		TrendMax:                  15.0,
		TrendClampPct:             20.0,
		DiagCTRFloor:              1.0,
		DiagCTRPenalty:            8.0,
		DiagCPMMedianFactor:       1.3,
		DiagCPMPenalty:            12.0,
		DiagFrequencyCeiling:      2.0,
		DiagFrequencyPenalty:      10.0,
		MinImpressionsToday:       500,
		CompensationFullRatio:     0.5,
		CompensationFullBonus:     10.0,
		CompensationStrongRatio:   0.7,
		CompensationStrongShare:   0.6,
		CompensationMildRatio:     0.9,
		CompensationMildShare:     0.3,
		VeryGoodMin:               25.0,
		GoodMin:                   5.0,
		NeutralMin:                -5.0,
		SlightlyBadMin:            -25.0,
	}
}

func windowWithCPR(cpr float64, results, impressions int) domain.MetricsWindow {
	w := domain.MetricsWindow{
		Impressions:   impressions,
		Results:       results,
		Spend:         cpr * float64(results),
		CTR:           1.5,
		CostPerResult: cpr,
	}
	return w
}

func TestCPRGap(t *testing.T) {
	cfg := defaultScoringConfig()

	t.Run("CPR na metade do alvo satura no máximo positivo", func(t *testing.T) {
		gap := cprGap(windowWithCPR(2.0, 10, 3000), cfg)
		assert.InDelta(t, 45.0, gap, 0.01)
	})

	t.Run("CPR no alvo zera o componente", func(t *testing.T) {
		gap := cprGap(windowWithCPR(4.0, 10, 3000), cfg)
		assert.InDelta(t, 0.0, gap, 0.01)
	})

	t.Run("CPR no dobro do alvo satura no máximo negativo", func(t *testing.T) {
		gap := cprGap(windowWithCPR(8.0, 10, 3000), cfg)
		assert.InDelta(t, -45.0, gap, 0.01)
	})

	t.Run("interpola linearmente entre os pontos da curva", func(t *testing.T) {
		// ratio 1.25 fica no meio do segmento (1.0, 0) -> (1.5, -22.5)
		gap := cprGap(windowWithCPR(5.0, 10, 3000), cfg)
		assert.InDelta(t, -11.25, gap, 0.01)
	})

	t.Run("sem resultados com gasto acima do alvo penaliza no máximo", func(t *testing.T) {
		w := domain.MetricsWindow{Impressions: 2000, Spend: 6.0, Results: 0}
		assert.InDelta(t, -45.0, cprGap(w, cfg), 0.01)
	})

	t.Run("sem resultados e gasto irrelevante é tratado como sem dados", func(t *testing.T) {
		w := domain.MetricsWindow{Impressions: 200, Spend: 1.0, Results: 0}
		assert.InDelta(t, 0.0, cprGap(w, cfg), 0.01)
	})
}

func TestTrend(t *testing.T) {
	cfg := defaultScoringConfig()

	t.Run("CPR em queda pontua positivo", func(t *testing.T) {
		metrics := domain.AdSetMetrics{
			Last3d: windowWithCPR(3.0, 10, 3000),
			Last7d: windowWithCPR(4.0, 20, 6000),
		}
		// Queda de 25%, saturada em 20% -> +TrendMax
		assert.InDelta(t, 15.0, trend(metrics, cfg), 0.01)
	})

	t.Run("CPR em alta pontua negativo proporcional", func(t *testing.T) {
		metrics := domain.AdSetMetrics{
			Last3d: windowWithCPR(4.4, 10, 3000),
			Last7d: windowWithCPR(4.0, 20, 6000),
		}
		// Alta de 10% sobre um clamp de 20% -> metade do máximo
		assert.InDelta(t, -7.5, trend(metrics, cfg), 0.01)
	})

	t.Run("sem CPR em uma das janelas o componente zera", func(t *testing.T) {
		metrics := domain.AdSetMetrics{
			Last3d: windowWithCPR(4.0, 10, 3000),
		}
		assert.Zero(t, trend(metrics, cfg))
	})
}

func TestDiagnostics(t *testing.T) {
	cfg := defaultScoringConfig()

	t.Run("acumula as três penalidades", func(t *testing.T) {
		w := domain.MetricsWindow{
			Impressions: 3000,
			Spend:       30,
			CTR:         0.5,
			CPM:         20.0,
			Frequency:   2.5,
		}
		// CTR abaixo do piso, CPM acima de 1.3x a mediana (10) e frequência alta
		assert.InDelta(t, -30.0, diagnostics(w, cfg, 10.0), 0.01)
	})

	t.Run("sem entrega não aplica penalidade", func(t *testing.T) {
		assert.Zero(t, diagnostics(domain.MetricsWindow{}, cfg, 10.0))
	})

	t.Run("mediana zero desliga o diagnóstico de CPM", func(t *testing.T) {
		w := domain.MetricsWindow{Impressions: 3000, Spend: 30, CTR: 2.0, CPM: 100.0, Frequency: 1.0}
		assert.Zero(t, diagnostics(w, cfg, 0))
	})
}

func TestTodayCompensation(t *testing.T) {
	cfg := defaultScoringConfig()
	yesterday := windowWithCPR(8.0, 10, 3000)

	t.Run("recuperação total compensa o gap inteiro com bônus", func(t *testing.T) {
		today := windowWithCPR(3.0, 5, 1000) // 37.5% de ontem
		adj := todayCompensation(-45.0, yesterday, today, cfg)
		assert.InDelta(t, 55.0, adj, 0.01)
	})

	t.Run("recuperação forte compensa a maior parte do gap", func(t *testing.T) {
		today := windowWithCPR(5.0, 5, 1000) // 62.5% de ontem
		adj := todayCompensation(-45.0, yesterday, today, cfg)
		assert.InDelta(t, 27.0, adj, 0.01)
	})

	t.Run("recuperação leve compensa uma fração", func(t *testing.T) {
		today := windowWithCPR(6.8, 5, 1000) // 85% de ontem
		adj := todayCompensation(-45.0, yesterday, today, cfg)
		assert.InDelta(t, 13.5, adj, 0.01)
	})

	t.Run("poucas impressões hoje não compensam nada", func(t *testing.T) {
		today := windowWithCPR(3.0, 2, 300)
		assert.Zero(t, todayCompensation(-45.0, yesterday, today, cfg))
	})

	t.Run("gap positivo nunca é compensado", func(t *testing.T) {
		today := windowWithCPR(3.0, 5, 1000)
		assert.Zero(t, todayCompensation(20.0, yesterday, today, cfg))
	})
}

func TestVolumeFactor(t *testing.T) {
	t.Run("volume cheio não atenua", func(t *testing.T) {
		assert.InDelta(t, 1.0, volumeFactor(domain.MetricsWindow{Impressions: 5000}), 0.001)
	})

	t.Run("sem entrega aplica a atenuação máxima", func(t *testing.T) {
		assert.InDelta(t, 0.6, volumeFactor(domain.MetricsWindow{}), 0.001)
	})

	t.Run("volume parcial interpola", func(t *testing.T) {
		assert.InDelta(t, 0.8, volumeFactor(domain.MetricsWindow{Impressions: 2500}), 0.001)
	})
}

func TestComputeScore(t *testing.T) {
	cfg := defaultScoringConfig()

	t.Run("adset saudável classifica como very_good", func(t *testing.T) {
		adset := &domain.AdSet{
			ID:   "as-1",
			Name: "Leads - Lookalike 1%",
			Metrics: domain.AdSetMetrics{
				Yesterday: windowWithCPR(2.0, 20, 5000),
				Last3d:    windowWithCPR(2.2, 50, 15000),
				Last7d:    windowWithCPR(2.8, 100, 30000),
			},
		}

		record := ComputeScore(adset, domain.HistoryFlags{}, cfg, 10.0)

		require.NotNil(t, record)
		assert.Equal(t, domain.HealthVeryGood, record.Class)
		assert.False(t, record.IsUnderperforming())
		assert.InDelta(t, 45.0, record.Components.CPRGap, 0.01)
		assert.InDelta(t, 1.0, record.Components.VolumeFactor, 0.001)
	})

	t.Run("adset estourando o alvo classifica como bad", func(t *testing.T) {
		adset := &domain.AdSet{
			ID: "as-2",
			Metrics: domain.AdSetMetrics{
				Yesterday: windowWithCPR(9.0, 10, 5000),
				Last3d:    windowWithCPR(9.0, 20, 15000),
				Last7d:    windowWithCPR(6.0, 40, 30000),
			},
		}

		record := ComputeScore(adset, domain.HistoryFlags{}, cfg, 10.0)

		assert.Equal(t, domain.HealthBad, record.Class)
		assert.True(t, record.IsUnderperforming())
	})

	t.Run("recuperação de hoje reclassifica um dia ruim", func(t *testing.T) {
		adset := &domain.AdSet{
			ID: "as-3",
			Metrics: domain.AdSetMetrics{
				Today:     windowWithCPR(3.0, 5, 1000),
				Yesterday: windowWithCPR(8.5, 10, 5000),
				Last3d:    windowWithCPR(8.0, 20, 15000),
				Last7d:    windowWithCPR(8.0, 40, 30000),
			},
		}

		withComp := ComputeScore(adset, domain.HistoryFlags{}, cfg, 10.0)

		adset.Metrics.Today = domain.MetricsWindow{}
		withoutComp := ComputeScore(adset, domain.HistoryFlags{}, cfg, 10.0)

		assert.Greater(t, withComp.Score, withoutComp.Score)
		assert.Positive(t, withComp.Components.TodayAdjustment)
	})

	t.Run("sem dados em nenhuma janela o score fica neutro", func(t *testing.T) {
		adset := &domain.AdSet{ID: "as-4"}

		record := ComputeScore(adset, domain.HistoryFlags{}, cfg, 0)

		assert.Zero(t, record.Score)
		assert.Equal(t, domain.HealthNeutral, record.Class)
	})
}

func TestMedianCPM(t *testing.T) {
	t.Run("mediana ignora adsets sem entrega", func(t *testing.T) {
		adsets := []*domain.AdSet{
			{Metrics: domain.AdSetMetrics{Yesterday: domain.MetricsWindow{Impressions: 1000, CPM: 10}}},
			{Metrics: domain.AdSetMetrics{Yesterday: domain.MetricsWindow{Impressions: 1000, CPM: 20}}},
			{Metrics: domain.AdSetMetrics{Yesterday: domain.MetricsWindow{Impressions: 1000, CPM: 30}}},
			{Metrics: domain.AdSetMetrics{}},
		}
		assert.InDelta(t, 20.0, MedianCPM(adsets), 0.001)
	})

	t.Run("quantidade par usa a média dos centrais", func(t *testing.T) {
		adsets := []*domain.AdSet{
			{Metrics: domain.AdSetMetrics{Yesterday: domain.MetricsWindow{Impressions: 1000, CPM: 10}}},
			{Metrics: domain.AdSetMetrics{Yesterday: domain.MetricsWindow{Impressions: 1000, CPM: 30}}},
		}
		assert.InDelta(t, 20.0, MedianCPM(adsets), 0.001)
	})

	t.Run("sem adsets com entrega retorna zero", func(t *testing.T) {
		assert.Zero(t, MedianCPM(nil))
	})
}
