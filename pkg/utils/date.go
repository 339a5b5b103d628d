package utils

import "time"

func ParseDate(dateStr string) (*time.Time, error) {
	var date time.Time

	if dateStr != "" {
		incomingDate, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			return nil, err
		}

		date = incomingDate
	}

	return &date, nil
}

// StartOfDay normaliza um instante para a meia-noite do mesmo dia
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// HourBucket retorna o bucket horário usado nas chaves de idempotência
// de uma execução do otimizador (ex.: "2025-01-15-14").
func HourBucket(t time.Time) string {
	return t.Format("2006-01-02-15")
}
