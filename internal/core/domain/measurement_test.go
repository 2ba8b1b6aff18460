package domain

import (
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func bounded(name, min, max string) *Series {
	s := &Series{Name: name}
	if min != "" {
		s.MinValue = decimal.NewNullDecimal(decimal.RequireFromString(min))
	}
	if max != "" {
		s.MaxValue = decimal.NewNullDecimal(decimal.RequireFromString(max))
	}
	return s
}

func TestValidateMeasurementValue_InclusiveBounds(t *testing.T) {
	series := bounded("Kitchen", "0.00", "100.00")

	for _, v := range []string{"0.00", "0", "50", "100.00", "100"} {
		if err := ValidateMeasurementValue(decimal.RequireFromString(v), series); err != nil {
			t.Errorf("value %s: expected pass, got %v", v, err)
		}
	}
}

func TestValidateMeasurementValue_OutOfRange(t *testing.T) {
	series := bounded("Kitchen", "0.00", "100.00")

	cases := []struct {
		value string
		kind  BoundKind
		bound string
	}{
		{"-0.01", BelowMin, "0.00"},
		{"100.01", AboveMax, "100.00"},
	}

	for _, tc := range cases {
		err := ValidateMeasurementValue(decimal.RequireFromString(tc.value), series)
		if !errors.Is(err, ErrOutOfRange) {
			t.Fatalf("value %s: expected ErrOutOfRange, got %v", tc.value, err)
		}
		var oor *OutOfRangeError
		if !errors.As(err, &oor) {
			t.Fatalf("value %s: expected *OutOfRangeError, got %T", tc.value, err)
		}
		if oor.Kind != tc.kind {
			t.Errorf("value %s: expected kind %s, got %s", tc.value, tc.kind, oor.Kind)
		}
		if !oor.Bound.Equal(decimal.RequireFromString(tc.bound)) {
			t.Errorf("value %s: expected bound %s, got %s", tc.value, tc.bound, oor.Bound)
		}
		if oor.SeriesName != "Kitchen" {
			t.Errorf("expected series name in error, got %q", oor.SeriesName)
		}
	}
}

func TestValidateMeasurementValue_Unbounded(t *testing.T) {
	series := bounded("Open", "", "")

	for _, v := range []string{"-999.99", "0", "123456789.123", "999.99"} {
		if err := ValidateMeasurementValue(decimal.RequireFromString(v), series); err != nil {
			t.Errorf("value %s: expected pass on unbounded series, got %v", v, err)
		}
	}
}

func TestValidateMeasurementValue_SingleBound(t *testing.T) {
	onlyMin := bounded("Freezer", "-30", "")
	if err := ValidateMeasurementValue(decimal.RequireFromString("500"), onlyMin); err != nil {
		t.Errorf("no upper bound: expected pass, got %v", err)
	}
	if err := ValidateMeasurementValue(decimal.RequireFromString("-30.01"), onlyMin); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("expected BelowMin, got %v", err)
	}

	onlyMax := bounded("Oven", "", "250")
	if err := ValidateMeasurementValue(decimal.RequireFromString("-999"), onlyMax); err != nil {
		t.Errorf("no lower bound: expected pass, got %v", err)
	}
}

func TestOutOfRangeError_Message(t *testing.T) {
	series := bounded("Boiler", "", "100.00")

	err := ValidateMeasurementValue(decimal.RequireFromString("500.00"), series)
	if err == nil {
		t.Fatal("expected error")
	}
	msg := err.Error()
	for _, want := range []string{"500.00", "100.00", "'Boiler'"} {
		if !strings.Contains(msg, want) {
			t.Errorf("message %q does not contain %q", msg, want)
		}
	}
}

func TestValidateBounds(t *testing.T) {
	cases := []struct {
		name     string
		min, max string
		wantErr  bool
	}{
		{"both nil", "", "", false},
		{"only min", "10", "", false},
		{"only max", "", "5", false},
		{"ordered", "5", "10", false},
		{"inverted", "10", "5", true},
		{"equal", "5.00", "5", true},
	}

	for _, tc := range cases {
		s := bounded("s", tc.min, tc.max)
		err := s.ValidateBounds()
		if tc.wantErr && !errors.Is(err, ErrInvalidRange) {
			t.Errorf("%s: expected ErrInvalidRange, got %v", tc.name, err)
		}
		if !tc.wantErr && err != nil {
			t.Errorf("%s: expected nil, got %v", tc.name, err)
		}
	}
}

func TestRole_Known(t *testing.T) {
	if !RoleAdmin.Known() || !RoleUser.Known() {
		t.Fatal("built-in roles must be known")
	}
	if Role("AUDITOR").Known() {
		t.Fatal("custom role must not be reported as built-in")
	}
}
