package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/tempsense/tracking-api/internal/core/domain"
	"github.com/tempsense/tracking-api/internal/core/ports"
)

type measurementService struct {
	repo   ports.MeasurementRepository
	series ports.SeriesRepository
	users  ports.UserRepository
	log    zerolog.Logger
}

// NewMeasurementService returns a MeasurementService implementation.
// Series are always read from the store so range checks see the bounds
// as they are at the time of the write.
func NewMeasurementService(
	repo ports.MeasurementRepository,
	series ports.SeriesRepository,
	users ports.UserRepository,
	log zerolog.Logger,
) ports.MeasurementService {
	return &measurementService{repo: repo, series: series, users: users, log: log}
}

func (s *measurementService) ListMeasurements(ctx context.Context) ([]*domain.Measurement, error) {
	ms, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.resolveSeriesNames(ctx, ms); err != nil {
		return nil, err
	}
	return ms, nil
}

func (s *measurementService) ListBySeries(ctx context.Context, seriesID string) ([]*domain.Measurement, error) {
	ms, err := s.repo.ListBySeries(ctx, seriesID)
	if err != nil {
		return nil, err
	}
	if err := s.resolveSeriesNames(ctx, ms); err != nil {
		return nil, err
	}
	return ms, nil
}

func (s *measurementService) GetMeasurement(ctx context.Context, id string) (*domain.Measurement, error) {
	m, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.resolveSeriesNames(ctx, []*domain.Measurement{m}); err != nil {
		return nil, err
	}
	return m, nil
}

// CreateMeasurement validates the value against the series bounds and stores it.
func (s *measurementService) CreateMeasurement(ctx context.Context, in ports.CreateMeasurementInput) (*domain.Measurement, error) {
	user, err := s.users.FindByUsername(ctx, in.CreatedBy)
	if err != nil {
		return nil, fmt.Errorf("create measurement: %w", err)
	}

	series, err := s.lookupSeries(ctx, in.SeriesID)
	if err != nil {
		return nil, err
	}

	if err := domain.ValidateMeasurementValue(in.Value, series); err != nil {
		return nil, err
	}

	m := &domain.Measurement{
		SeriesID:          series.ID,
		Value:             in.Value,
		Timestamp:         in.Timestamp.UTC(),
		CreatedBy:         user.ID,
		CreatedByUsername: user.Username,
		CreatedAt:         time.Now().UTC(),
	}

	created, err := s.repo.Create(ctx, m)
	if err != nil {
		s.log.Error().Err(err).Str("series_id", series.ID).Msg("failed to create measurement")
		return nil, fmt.Errorf("create measurement: %w", err)
	}
	created.SeriesName = series.Name

	s.log.Info().
		Str("measurement_id", created.ID).
		Str("series_id", series.ID).
		Str("created_by", user.Username).
		Msg("measurement created")
	return created, nil
}

// UpdateMeasurement replaces value and timestamp. When the input names a
// series the measurement is moved there and validated against that series.
func (s *measurementService) UpdateMeasurement(ctx context.Context, id string, in ports.UpdateMeasurementInput) (*domain.Measurement, error) {
	m, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	targetID := m.SeriesID
	if in.SeriesID != "" {
		targetID = in.SeriesID
	}

	target, err := s.lookupSeries(ctx, targetID)
	if err != nil {
		return nil, err
	}

	if err := domain.ValidateMeasurementValue(in.Value, target); err != nil {
		return nil, err
	}

	m.SeriesID = target.ID
	m.Value = in.Value
	m.Timestamp = in.Timestamp.UTC()

	updated, err := s.repo.Update(ctx, m)
	if err != nil {
		return nil, fmt.Errorf("update measurement: %w", err)
	}
	updated.SeriesName = target.Name

	s.log.Info().Str("measurement_id", id).Str("series_id", target.ID).Msg("measurement updated")
	return updated, nil
}

func (s *measurementService) DeleteMeasurement(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Str("measurement_id", id).Msg("measurement deleted")
	return nil
}

func (s *measurementService) lookupSeries(ctx context.Context, id string) (*domain.Series, error) {
	series, err := s.series.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("find series: %w", err)
	}
	return series, nil
}

// resolveSeriesNames fills SeriesName from the current series so renames
// show up on every measurement.
func (s *measurementService) resolveSeriesNames(ctx context.Context, ms []*domain.Measurement) error {
	if len(ms) == 0 {
		return nil
	}
	if len(ms) == 1 {
		series, err := s.series.FindByID(ctx, ms[0].SeriesID)
		if errors.Is(err, domain.ErrNotFound) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("resolve series name: %w", err)
		}
		ms[0].SeriesName = series.Name
		return nil
	}

	all, err := s.series.List(ctx)
	if err != nil {
		return fmt.Errorf("resolve series names: %w", err)
	}
	names := make(map[string]string, len(all))
	for _, series := range all {
		names[series.ID] = series.Name
	}
	for _, m := range ms {
		m.SeriesName = names[m.SeriesID]
	}
	return nil
}
