package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Series is a named category of measurements. MinValue and MaxValue are
// independently optional; an invalid NullDecimal means "no bound".
type Series struct {
	ID                string
	Name              string
	Description       string
	Color             string
	Icon              string
	MinValue          decimal.NullDecimal
	MaxValue          decimal.NullDecimal
	CreatedBy         string
	CreatedByUsername string
	CreatedAt         time.Time
}

// ValidateBounds enforces minValue < maxValue when both are set.
func (s *Series) ValidateBounds() error {
	return ValidateBounds(s.MinValue, s.MaxValue)
}

// ValidateBounds enforces min < max (strict) when both bounds are present.
func ValidateBounds(min, max decimal.NullDecimal) error {
	if !min.Valid || !max.Valid {
		return nil
	}
	if min.Decimal.Cmp(max.Decimal) >= 0 {
		return ErrInvalidRange
	}
	return nil
}
