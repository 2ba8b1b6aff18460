package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Measurement is a single timestamped reading belonging to a series.
// SeriesName is not persisted; it is resolved from the series on read.
type Measurement struct {
	ID                string
	SeriesID          string
	SeriesName        string
	Value             decimal.Decimal
	Timestamp         time.Time
	CreatedBy         string
	CreatedByUsername string
	CreatedAt         time.Time
}

// BoundKind names which side of a series envelope a value fell outside of.
type BoundKind string

const (
	BelowMin BoundKind = "BelowMin"
	AboveMax BoundKind = "AboveMax"
)

var ErrOutOfRange = errors.New("measurement value out of range")

// OutOfRangeError cites the offending bound. It matches ErrOutOfRange.
type OutOfRangeError struct {
	Kind       BoundKind
	Value      decimal.Decimal
	Bound      decimal.Decimal
	SeriesName string
}

func (e *OutOfRangeError) Error() string {
	if e.Kind == BelowMin {
		return fmt.Sprintf("Measurement value %s is below the minimum allowed value %s for series '%s'",
			FormatDecimal(e.Value), FormatDecimal(e.Bound), e.SeriesName)
	}
	return fmt.Sprintf("Measurement value %s exceeds the maximum allowed value %s for series '%s'",
		FormatDecimal(e.Value), FormatDecimal(e.Bound), e.SeriesName)
}

func (e *OutOfRangeError) Is(target error) bool {
	return target == ErrOutOfRange
}

// ValidateMeasurementValue checks value against the inclusive [min, max]
// envelope of series. Comparison is exact and scale independent, so 100 and
// 100.00 are equal.
func ValidateMeasurementValue(value decimal.Decimal, series *Series) error {
	if series == nil {
		return ErrSeriesNotFound
	}
	if series.MinValue.Valid && value.Cmp(series.MinValue.Decimal) < 0 {
		return &OutOfRangeError{Kind: BelowMin, Value: value, Bound: series.MinValue.Decimal, SeriesName: series.Name}
	}
	if series.MaxValue.Valid && value.Cmp(series.MaxValue.Decimal) > 0 {
		return &OutOfRangeError{Kind: AboveMax, Value: value, Bound: series.MaxValue.Decimal, SeriesName: series.Name}
	}
	return nil
}

// FormatDecimal renders d with at least two fraction digits, matching the
// storage scale of values and bounds.
func FormatDecimal(d decimal.Decimal) string {
	places := -d.Exponent()
	if places < 2 {
		places = 2
	}
	return d.StringFixed(places)
}
