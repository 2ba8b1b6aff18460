package ports

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tempsense/tracking-api/internal/core/domain"
)

// CreateMeasurementInput is the DTO passed from the transport layer on create.
type CreateMeasurementInput struct {
	SeriesID  string
	Value     decimal.Decimal
	Timestamp time.Time
	CreatedBy string
}

// UpdateMeasurementInput replaces value and timestamp. SeriesID is optional;
// when set the measurement moves to that series.
type UpdateMeasurementInput struct {
	SeriesID  string
	Value     decimal.Decimal
	Timestamp time.Time
}

// MeasurementService defines use-case operations for measurements.
type MeasurementService interface {
	ListMeasurements(ctx context.Context) ([]*domain.Measurement, error)
	ListBySeries(ctx context.Context, seriesID string) ([]*domain.Measurement, error)
	GetMeasurement(ctx context.Context, id string) (*domain.Measurement, error)
	CreateMeasurement(ctx context.Context, input CreateMeasurementInput) (*domain.Measurement, error)
	UpdateMeasurement(ctx context.Context, id string, input UpdateMeasurementInput) (*domain.Measurement, error)
	DeleteMeasurement(ctx context.Context, id string) error
}
