package ports

import (
	"context"

	"github.com/tempsense/tracking-api/internal/core/domain"
)

// MeasurementRepository defines persistence operations for measurements.
type MeasurementRepository interface {
	List(ctx context.Context) ([]*domain.Measurement, error)
	ListBySeries(ctx context.Context, seriesID string) ([]*domain.Measurement, error)
	FindByID(ctx context.Context, id string) (*domain.Measurement, error)
	Create(ctx context.Context, m *domain.Measurement) (*domain.Measurement, error)
	Update(ctx context.Context, m *domain.Measurement) (*domain.Measurement, error)
	Delete(ctx context.Context, id string) error
	DeleteBySeries(ctx context.Context, seriesID string) (int64, error)
}
