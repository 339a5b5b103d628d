package metadomain

import (
	"strconv"

	"github.com/vfg2006/ads-optimizer-api/internal/domain"
)

// Tipos de ação da API Graph que contam como resultado (lead)
var leadActionTypes = map[string]struct{}{
	"lead":                              {},
	"leadgen_grouped":                   {},
	"onsite_conversion.lead_grouped":    {},
	"offsite_conversion.fb_pixel_lead":  {},
}

// ActionValue é uma entrada do array "actions" de um insight
type ActionValue struct {
	ActionType string `json:"action_type"`
	Value      string `json:"value"`
}

// InsightRow é a linha bruta de insights devolvida pela API Graph.
// Valores numéricos chegam como strings.
type InsightRow struct {
	Impressions string        `json:"impressions"`
	Clicks      string        `json:"clicks"`
	Spend       string        `json:"spend"`
	CTR         string        `json:"ctr"`
	CPM         string        `json:"cpm"`
	Frequency   string        `json:"frequency"`
	Actions     []ActionValue `json:"actions"`
	DateStart   string        `json:"date_start"`
	DateStop    string        `json:"date_stop"`
}

// LeadCount soma as ações que representam leads
func (r *InsightRow) LeadCount() int {
	total := 0
	for _, action := range r.Actions {
		if _, ok := leadActionTypes[action.ActionType]; ok {
			if v, err := strconv.Atoi(action.Value); err == nil {
				total += v
			}
		}
	}
	return total
}

// ToMetricsWindow normaliza a linha bruta para o modelo interno
func (r *InsightRow) ToMetricsWindow() domain.MetricsWindow {
	m := domain.MetricsWindow{
		Impressions: parseInt(r.Impressions),
		Clicks:      parseInt(r.Clicks),
		Spend:       parseFloat(r.Spend),
		CTR:         parseFloat(r.CTR),
		CPM:         parseFloat(r.CPM),
		Frequency:   parseFloat(r.Frequency),
		Results:     r.LeadCount(),
	}
	m.ComputeDerived()
	return m
}

func parseInt(s string) int {
	v, _ := strconv.Atoi(s)
	return v
}

func parseFloat(s string) float64 {
	v, _ := strconv.ParseFloat(s, 64)
	return v
}
