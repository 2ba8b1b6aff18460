package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/tempsense/tracking-api/internal/core/domain"
	"github.com/tempsense/tracking-api/internal/core/ports"
)

// newContext builds an echo context with the project validator and, when
// identity is non-nil, an authenticated caller.
func newContext(method, target, body string, identity *domain.Identity) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if identity != nil {
		c.Set("identity", *identity)
	}
	return c, rec
}

var (
	adminIdentity = &domain.Identity{Subject: "admin", Role: domain.RoleAdmin}
	userIdentity  = &domain.Identity{Subject: "user", Role: domain.RoleUser}
)

// expectHTTPError fails unless err is an *echo.HTTPError with the given code.
func expectHTTPError(t *testing.T, err error, code int) *echo.HTTPError {
	t.Helper()
	var he *echo.HTTPError
	if !errors.As(err, &he) {
		t.Fatalf("expected HTTPError %d, got %v", code, err)
	}
	if he.Code != code {
		t.Fatalf("expected %d, got %d (%v)", code, he.Code, he.Message)
	}
	return he
}

type stubAuthService struct {
	loginFn          func(ctx context.Context, username, password string) (*ports.LoginResult, error)
	changePasswordFn func(ctx context.Context, in ports.ChangePasswordInput) error
}

func (s *stubAuthService) Login(ctx context.Context, username, password string) (*ports.LoginResult, error) {
	return s.loginFn(ctx, username, password)
}

func (s *stubAuthService) ChangePassword(ctx context.Context, in ports.ChangePasswordInput) error {
	return s.changePasswordFn(ctx, in)
}

type stubSeriesService struct {
	listFn   func(ctx context.Context) ([]*domain.Series, error)
	getFn    func(ctx context.Context, id string) (*domain.Series, error)
	createFn func(ctx context.Context, in ports.SeriesInput, createdBy string) (*domain.Series, error)
	updateFn func(ctx context.Context, id string, in ports.SeriesInput) (*domain.Series, error)
	deleteFn func(ctx context.Context, id string) error
}

func (s *stubSeriesService) ListSeries(ctx context.Context) ([]*domain.Series, error) {
	return s.listFn(ctx)
}

func (s *stubSeriesService) GetSeries(ctx context.Context, id string) (*domain.Series, error) {
	return s.getFn(ctx, id)
}

func (s *stubSeriesService) CreateSeries(ctx context.Context, in ports.SeriesInput, createdBy string) (*domain.Series, error) {
	return s.createFn(ctx, in, createdBy)
}

func (s *stubSeriesService) UpdateSeries(ctx context.Context, id string, in ports.SeriesInput) (*domain.Series, error) {
	return s.updateFn(ctx, id, in)
}

func (s *stubSeriesService) DeleteSeries(ctx context.Context, id string) error {
	return s.deleteFn(ctx, id)
}

type stubMeasurementService struct {
	listFn         func(ctx context.Context) ([]*domain.Measurement, error)
	listBySeriesFn func(ctx context.Context, seriesID string) ([]*domain.Measurement, error)
	getFn          func(ctx context.Context, id string) (*domain.Measurement, error)
	createFn       func(ctx context.Context, in ports.CreateMeasurementInput) (*domain.Measurement, error)
	updateFn       func(ctx context.Context, id string, in ports.UpdateMeasurementInput) (*domain.Measurement, error)
	deleteFn       func(ctx context.Context, id string) error
}

func (s *stubMeasurementService) ListMeasurements(ctx context.Context) ([]*domain.Measurement, error) {
	return s.listFn(ctx)
}

func (s *stubMeasurementService) ListBySeries(ctx context.Context, seriesID string) ([]*domain.Measurement, error) {
	return s.listBySeriesFn(ctx, seriesID)
}

func (s *stubMeasurementService) GetMeasurement(ctx context.Context, id string) (*domain.Measurement, error) {
	return s.getFn(ctx, id)
}

func (s *stubMeasurementService) CreateMeasurement(ctx context.Context, in ports.CreateMeasurementInput) (*domain.Measurement, error) {
	return s.createFn(ctx, in)
}

func (s *stubMeasurementService) UpdateMeasurement(ctx context.Context, id string, in ports.UpdateMeasurementInput) (*domain.Measurement, error) {
	return s.updateFn(ctx, id, in)
}

func (s *stubMeasurementService) DeleteMeasurement(ctx context.Context, id string) error {
	return s.deleteFn(ctx, id)
}

var (
	_ ports.AuthService        = (*stubAuthService)(nil)
	_ ports.SeriesService      = (*stubSeriesService)(nil)
	_ ports.MeasurementService = (*stubMeasurementService)(nil)
)
