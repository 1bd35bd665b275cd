package rest

import "defect-inspector/internal/domain/entity"

// ErrorResponse тело ответа с ошибкой
type ErrorResponse struct {
	Error string `json:"error"`
}

// ClassifyResponse результат классификации загруженного снимка
type ClassifyResponse struct {
	Label   entity.Label   `json:"label"`
	Score   float64        `json:"score"`
	Decoded bool           `json:"decoded"`
	Signals entity.Signals `json:"signals"`
}

// SeverityResponse вес одной метки
type SeverityResponse struct {
	Label    entity.Label `json:"label"`
	Severity float64      `json:"severity"`
	Major    bool         `json:"major"`
}
