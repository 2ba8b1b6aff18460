package handler

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tempsense/tracking-api/internal/core/domain"
)

// createMeasurementRequest is the body of POST /api/measurements.
type createMeasurementRequest struct {
	SeriesID  string              `json:"seriesId" validate:"required"`
	Value     decimal.NullDecimal `json:"value" validate:"required,digits=3.2"`
	Timestamp time.Time           `json:"timestamp" validate:"required,notfuture"`
}

// updateMeasurementRequest is the body of PUT /api/measurements/:id. An
// empty seriesId keeps the current series.
type updateMeasurementRequest struct {
	SeriesID  string              `json:"seriesId"`
	Value     decimal.NullDecimal `json:"value" validate:"required,digits=3.2"`
	Timestamp time.Time           `json:"timestamp" validate:"required,notfuture"`
}

type measurementResponse struct {
	ID                string      `json:"id"`
	SeriesID          string      `json:"seriesId"`
	SeriesName        string      `json:"seriesName,omitempty"`
	Value             json.Number `json:"value"`
	Timestamp         time.Time   `json:"timestamp"`
	CreatedBy         string      `json:"createdBy"`
	CreatedByUsername string      `json:"createdByUsername"`
	CreatedAt         time.Time   `json:"createdAt"`
}

func toMeasurementResponse(m *domain.Measurement) measurementResponse {
	return measurementResponse{
		ID:                m.ID,
		SeriesID:          m.SeriesID,
		SeriesName:        m.SeriesName,
		Value:             number(m.Value),
		Timestamp:         m.Timestamp,
		CreatedBy:         m.CreatedBy,
		CreatedByUsername: m.CreatedByUsername,
		CreatedAt:         m.CreatedAt,
	}
}

func toMeasurementResponses(list []*domain.Measurement) []measurementResponse {
	out := make([]measurementResponse, 0, len(list))
	for _, m := range list {
		out = append(out, toMeasurementResponse(m))
	}
	return out
}
