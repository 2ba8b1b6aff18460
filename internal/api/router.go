package api

import (
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/tempsense/tracking-api/internal/api/handler"
	"github.com/tempsense/tracking-api/internal/api/middleware"
	"github.com/tempsense/tracking-api/internal/core/domain"
	"github.com/tempsense/tracking-api/internal/core/ports"
)

// Dependencies are the services the router exposes over HTTP.
type Dependencies struct {
	Auth         ports.AuthService
	Guard        ports.AccessGuard
	Series       ports.SeriesService
	Measurements ports.MeasurementService
	Checks       map[string]handler.DependencyCheck
}

// Options configure cross-cutting HTTP behaviour.
// Registerer and Gatherer default to the global Prometheus registry.
type Options struct {
	AllowedOrigins []string
	Logger         zerolog.Logger
	Registerer     prometheus.Registerer
	Gatherer       prometheus.Gatherer
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies, opts Options) *echo.Echo {
	if opts.Registerer == nil {
		opts.Registerer = prometheus.DefaultRegisterer
	}
	if opts.Gatherer == nil {
		opts.Gatherer = prometheus.DefaultGatherer
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(opts.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(opts.Logger))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: opts.AllowedOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "tracking",
		Registerer: opts.Registerer,
	}))

	// --- Observability (no auth required) ---
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{
		Gatherer: opts.Gatherer,
	}))

	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(deps.Checks)
	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	authenticated := middleware.Auth(deps.Guard)
	can := func(op domain.Operation) echo.MiddlewareFunc {
		return middleware.RBAC(deps.Guard, op)
	}

	// --- Auth routes ---
	authHandler := handler.NewAuthHandler(deps.Auth)
	auth := e.Group("/api/auth")
	auth.POST("/signin", authHandler.SignIn)
	auth.POST("/change-password", authHandler.ChangePassword, authenticated, can(domain.OpChangeOwnPassword))

	// --- Series routes ---
	seriesHandler := handler.NewSeriesHandler(deps.Series)
	series := e.Group("/api/series", authenticated)
	series.GET("", seriesHandler.List, can(domain.OpReadSeries))
	series.GET("/:id", seriesHandler.Get, can(domain.OpReadSeries))
	series.POST("", seriesHandler.Create, can(domain.OpWriteSeries))
	series.PUT("/:id", seriesHandler.Update, can(domain.OpWriteSeries))
	series.DELETE("/:id", seriesHandler.Delete, can(domain.OpWriteSeries))

	// --- Measurement routes ---
	measurementHandler := handler.NewMeasurementHandler(deps.Measurements)
	measurements := e.Group("/api/measurements", authenticated)
	measurements.GET("", measurementHandler.List, can(domain.OpReadMeasurement))
	measurements.GET("/series/:seriesId", measurementHandler.ListBySeries, can(domain.OpReadMeasurement))
	measurements.GET("/:id", measurementHandler.Get, can(domain.OpReadMeasurement))
	measurements.POST("", measurementHandler.Create, can(domain.OpWriteMeasurement))
	measurements.PUT("/:id", measurementHandler.Update, can(domain.OpWriteMeasurement))
	measurements.DELETE("/:id", measurementHandler.Delete, can(domain.OpWriteMeasurement))

	return e
}

// requestLogger writes one zerolog entry per request.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Status >= http.StatusInternalServerError {
				ev = log.Error().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
