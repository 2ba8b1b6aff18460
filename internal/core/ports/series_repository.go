package ports

import (
	"context"

	"github.com/tempsense/tracking-api/internal/core/domain"
)

// SeriesRepository defines persistence operations for series.
type SeriesRepository interface {
	List(ctx context.Context) ([]*domain.Series, error)
	FindByID(ctx context.Context, id string) (*domain.Series, error)
	Create(ctx context.Context, s *domain.Series) (*domain.Series, error)
	// Update overwrites the mutable fields; creator and creation time are kept.
	Update(ctx context.Context, s *domain.Series) (*domain.Series, error)
	Delete(ctx context.Context, id string) error
}

// SeriesCache is a best-effort lookaside cache of series by ID. A miss
// returns (nil, nil).
type SeriesCache interface {
	Get(ctx context.Context, id string) (*domain.Series, error)
	Set(ctx context.Context, s *domain.Series) error
	Invalidate(ctx context.Context, id string) error
}
