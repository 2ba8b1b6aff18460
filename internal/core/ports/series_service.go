package ports

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/tempsense/tracking-api/internal/core/domain"
)

// SeriesInput carries the writable fields of a series.
type SeriesInput struct {
	Name        string
	Description string
	Color       string
	Icon        string
	MinValue    decimal.NullDecimal
	MaxValue    decimal.NullDecimal
}

// SeriesService defines use-case operations for series.
type SeriesService interface {
	ListSeries(ctx context.Context) ([]*domain.Series, error)
	GetSeries(ctx context.Context, id string) (*domain.Series, error)
	CreateSeries(ctx context.Context, input SeriesInput, createdBy string) (*domain.Series, error)
	UpdateSeries(ctx context.Context, id string, input SeriesInput) (*domain.Series, error)
	DeleteSeries(ctx context.Context, id string) error
}
