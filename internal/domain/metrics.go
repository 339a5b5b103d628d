package domain

import "github.com/vfg2006/ads-optimizer-api/pkg/utils"

// Window identifica a janela de tempo de um conjunto de métricas
type Window string

const (
	WindowToday     Window = "today"
	WindowYesterday Window = "yesterday"
	WindowLast3d    Window = "last_3d"
	WindowLast7d    Window = "last_7d"
)

// AllWindows na ordem em que o agregador as coleta
var AllWindows = []Window{WindowToday, WindowYesterday, WindowLast3d, WindowLast7d}

// MetricsWindow representa as métricas normalizadas de um adset em uma janela.
// Valores zerados indicam ausência de entrega na janela (zero-fill).
type MetricsWindow struct {
	Impressions int     `json:"impressions"`
	Clicks      int     `json:"clicks"`
	Spend       float64 `json:"spend"`
	Results     int     `json:"results"`
	CTR         float64 `json:"ctr"`
	CPM         float64 `json:"cpm"`
	Frequency   float64 `json:"frequency"`

	// CostPerResult é zero quando não há resultados na janela
	CostPerResult float64 `json:"cost_per_result"`
}

// ComputeDerived preenche as taxas derivadas a partir dos valores brutos
func (m *MetricsWindow) ComputeDerived() {
	if m.Results > 0 {
		m.CostPerResult = utils.RoundWithTwoDecimalPlace(m.Spend / float64(m.Results))
	}
	if m.Impressions > 0 {
		if m.CTR == 0 && m.Clicks > 0 {
			m.CTR = utils.RoundWithTwoDecimalPlace(float64(m.Clicks) / float64(m.Impressions) * 100)
		}
		if m.CPM == 0 && m.Spend > 0 {
			m.CPM = utils.RoundWithTwoDecimalPlace(m.Spend / float64(m.Impressions) * 1000)
		}
	}
}

// HasDelivery indica se houve qualquer entrega na janela
func (m *MetricsWindow) HasDelivery() bool {
	return m.Impressions > 0 || m.Spend > 0
}

// Accumulate soma outra janela a esta (usado pelos testes de criativo)
func (m *MetricsWindow) Accumulate(other MetricsWindow) {
	m.Impressions += other.Impressions
	m.Clicks += other.Clicks
	m.Spend += other.Spend
	m.Results += other.Results
	m.CTR = other.CTR
	m.CPM = other.CPM
	m.Frequency = other.Frequency
	m.ComputeDerived()
}

// AdSetMetrics agrupa as janelas avaliadas de um adset
type AdSetMetrics struct {
	Today     MetricsWindow `json:"today"`
	Yesterday MetricsWindow `json:"yesterday"`
	Last3d    MetricsWindow `json:"last_3d"`
	Last7d    MetricsWindow `json:"last_7d"`
}

// ByWindow retorna a janela solicitada
func (m *AdSetMetrics) ByWindow(w Window) *MetricsWindow {
	switch w {
	case WindowToday:
		return &m.Today
	case WindowYesterday:
		return &m.Yesterday
	case WindowLast3d:
		return &m.Last3d
	case WindowLast7d:
		return &m.Last7d
	}
	return nil
}
