package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/tempsense/tracking-api/internal/core/domain"
	"github.com/tempsense/tracking-api/internal/core/ports"
)

type SeriesService struct {
	repo         ports.SeriesRepository
	measurements ports.MeasurementRepository
	users        ports.UserRepository
	cache        ports.SeriesCache
	logger       zerolog.Logger
}

func NewSeriesService(
	repo ports.SeriesRepository,
	measurements ports.MeasurementRepository,
	users ports.UserRepository,
	cache ports.SeriesCache,
	logger zerolog.Logger,
) *SeriesService {
	return &SeriesService{repo: repo, measurements: measurements, users: users, cache: cache, logger: logger}
}

func (s *SeriesService) ListSeries(ctx context.Context) ([]*domain.Series, error) {
	return s.repo.List(ctx)
}

// GetSeries reads through the cache. Cache errors are logged and the store
// is used instead. Writes never consult the cache.
func (s *SeriesService) GetSeries(ctx context.Context, id string) (*domain.Series, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, id)
		if err != nil {
			s.logger.Warn().Err(err).Str("series_id", id).Msg("series cache read failed, using store")
		} else if cached != nil {
			return cached, nil
		}
	}

	series, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, series); err != nil {
			s.logger.Warn().Err(err).Str("series_id", id).Msg("failed to cache series")
		}
	}
	return series, nil
}

// CreateSeries stores a new series stamped with the creating user.
func (s *SeriesService) CreateSeries(ctx context.Context, input ports.SeriesInput, createdBy string) (*domain.Series, error) {
	if err := domain.ValidateBounds(input.MinValue, input.MaxValue); err != nil {
		return nil, err
	}

	user, err := s.users.FindByUsername(ctx, createdBy)
	if err != nil {
		return nil, fmt.Errorf("create series: %w", err)
	}

	series := &domain.Series{
		Name:              input.Name,
		Description:       input.Description,
		Color:             input.Color,
		Icon:              input.Icon,
		MinValue:          input.MinValue,
		MaxValue:          input.MaxValue,
		CreatedBy:         user.ID,
		CreatedByUsername: user.Username,
		CreatedAt:         time.Now().UTC(),
	}

	created, err := s.repo.Create(ctx, series)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to create series")
		return nil, fmt.Errorf("create series: %w", err)
	}

	s.logger.Info().Str("series_id", created.ID).Str("created_by", user.Username).Msg("series created")
	return created, nil
}

// UpdateSeries replaces the mutable fields of a series.
func (s *SeriesService) UpdateSeries(ctx context.Context, id string, input ports.SeriesInput) (*domain.Series, error) {
	if err := domain.ValidateBounds(input.MinValue, input.MaxValue); err != nil {
		return nil, err
	}

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	existing.Name = input.Name
	existing.Description = input.Description
	existing.Color = input.Color
	existing.Icon = input.Icon
	existing.MinValue = input.MinValue
	existing.MaxValue = input.MaxValue

	updated, err := s.repo.Update(ctx, existing)
	if err != nil {
		return nil, fmt.Errorf("update series: %w", err)
	}
	s.invalidate(ctx, id)

	s.logger.Info().Str("series_id", id).Msg("series updated")
	return updated, nil
}

// DeleteSeries removes a series together with its measurements.
func (s *SeriesService) DeleteSeries(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}

	removed, err := s.measurements.DeleteBySeries(ctx, id)
	if err != nil {
		return fmt.Errorf("delete series measurements: %w", err)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete series: %w", err)
	}
	s.invalidate(ctx, id)

	s.logger.Info().Str("series_id", id).Int64("measurements_removed", removed).Msg("series deleted")
	return nil
}

func (s *SeriesService) invalidate(ctx context.Context, id string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, id); err != nil {
		s.logger.Warn().Err(err).Str("series_id", id).Msg("failed to invalidate series cache")
	}
}
