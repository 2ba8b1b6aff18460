package mongo

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tempsense/tracking-api/internal/core/domain"
	"github.com/tempsense/tracking-api/internal/core/ports"
)

var (
	_ ports.UserRepository        = (*UserRepository)(nil)
	_ ports.SeriesRepository      = (*SeriesRepository)(nil)
	_ ports.MeasurementRepository = (*MeasurementRepository)(nil)
)

func TestDecimal128_PreservesExactValue(t *testing.T) {
	for _, s := range []string{"0", "36.60", "-40.25", "12345.67", "0.01"} {
		in := decimal.RequireFromString(s)
		dec, err := toDecimal128(in)
		if err != nil {
			t.Fatalf("%s: encode: %v", s, err)
		}
		out, err := fromDecimal128(dec)
		if err != nil {
			t.Fatalf("%s: decode: %v", s, err)
		}
		if !out.Equal(in) {
			t.Fatalf("%s: got %s", s, out)
		}
	}
}

func TestNullDecimal128_AbsentBound(t *testing.T) {
	dec, err := toNullDecimal128(decimal.NullDecimal{})
	if err != nil || dec != nil {
		t.Fatalf("absent bound must encode as nil, got %v err=%v", dec, err)
	}
	back, err := fromNullDecimal128(nil)
	if err != nil || back.Valid {
		t.Fatalf("nil must decode as absent, got %+v err=%v", back, err)
	}
}

func TestSeriesDocument_RoundTrip(t *testing.T) {
	s := &domain.Series{
		Name:              "Boiler",
		Color:             "#FF0000",
		MinValue:          decimal.NewNullDecimal(decimal.RequireFromString("10.00")),
		CreatedBy:         "abc",
		CreatedByUsername: "admin",
		CreatedAt:         time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}
	doc, err := newSeriesDocument(s)
	if err != nil {
		t.Fatalf("newSeriesDocument: %v", err)
	}
	if doc.MaxValue != nil {
		t.Fatal("absent max must not be stored")
	}
	back, err := doc.toDomain()
	if err != nil {
		t.Fatalf("toDomain: %v", err)
	}
	if !back.MinValue.Valid || !back.MinValue.Decimal.Equal(s.MinValue.Decimal) || back.MaxValue.Valid {
		t.Fatalf("bounds lost: %+v", back)
	}
	if back.CreatedByUsername != "admin" || !back.CreatedAt.Equal(s.CreatedAt) {
		t.Fatalf("creator lost: %+v", back)
	}
}

func TestObjectID_MalformedIsNotFound(t *testing.T) {
	if _, err := objectID("not-hex", domain.ErrSeriesNotFound); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if _, err := objectID("65f0c0ffee0000000000beef", domain.ErrSeriesNotFound); err != nil {
		t.Fatalf("valid hex rejected: %v", err)
	}
}
