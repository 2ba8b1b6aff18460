package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tempsense/tracking-api/internal/api/metrics"
	"github.com/tempsense/tracking-api/internal/core/domain"
	"github.com/tempsense/tracking-api/internal/core/ports"
)

type MeasurementHandler struct {
	service ports.MeasurementService
}

func NewMeasurementHandler(service ports.MeasurementService) *MeasurementHandler {
	return &MeasurementHandler{service: service}
}

// List returns all measurements ordered by timestamp.
//
// @Summary      List measurements
// @Tags         measurements
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   measurementResponse
// @Router       /api/measurements [get]
func (h *MeasurementHandler) List(c echo.Context) error {
	list, err := h.service.ListMeasurements(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toMeasurementResponses(list))
}

// ListBySeries returns the measurements of one series ordered by timestamp.
//
// @Summary      List measurements of a series
// @Tags         measurements
// @Produce      json
// @Security     BearerAuth
// @Param        seriesId  path      string  true  "Series ID"
// @Success      200       {array}   measurementResponse
// @Router       /api/measurements/series/{seriesId} [get]
func (h *MeasurementHandler) ListBySeries(c echo.Context) error {
	list, err := h.service.ListBySeries(c.Request().Context(), c.Param("seriesId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toMeasurementResponses(list))
}

// Get returns a single measurement.
//
// @Summary      Get measurement
// @Tags         measurements
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Measurement ID"
// @Success      200  {object}  measurementResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/measurements/{id} [get]
func (h *MeasurementHandler) Get(c echo.Context) error {
	m, err := h.service.GetMeasurement(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toMeasurementResponse(m))
}

// Create records a measurement after checking it against the series bounds.
//
// @Summary      Create measurement
// @Tags         measurements
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createMeasurementRequest  true  "Measurement"
// @Success      201   {object}  measurementResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/measurements [post]
func (h *MeasurementHandler) Create(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req createMeasurementRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	m, err := h.service.CreateMeasurement(c.Request().Context(), ports.CreateMeasurementInput{
		SeriesID:  req.SeriesID,
		Value:     req.Value.Decimal,
		Timestamp: req.Timestamp,
		CreatedBy: identity.Subject,
	})
	if err != nil {
		countRangeViolation(err)
		return err
	}
	metrics.WritesTotal.WithLabelValues("measurement", "create").Inc()
	return c.JSON(http.StatusCreated, toMeasurementResponse(m))
}

// Update replaces value and timestamp, optionally moving the measurement to
// another series.
//
// @Summary      Update measurement
// @Tags         measurements
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                    true  "Measurement ID"
// @Param        body  body      updateMeasurementRequest  true  "Measurement"
// @Success      200   {object}  measurementResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/measurements/{id} [put]
func (h *MeasurementHandler) Update(c echo.Context) error {
	var req updateMeasurementRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	m, err := h.service.UpdateMeasurement(c.Request().Context(), c.Param("id"), ports.UpdateMeasurementInput{
		SeriesID:  req.SeriesID,
		Value:     req.Value.Decimal,
		Timestamp: req.Timestamp,
	})
	if err != nil {
		countRangeViolation(err)
		return err
	}
	metrics.WritesTotal.WithLabelValues("measurement", "update").Inc()
	return c.JSON(http.StatusOK, toMeasurementResponse(m))
}

// Delete removes a measurement.
//
// @Summary      Delete measurement
// @Tags         measurements
// @Security     BearerAuth
// @Param        id   path  string  true  "Measurement ID"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Router       /api/measurements/{id} [delete]
func (h *MeasurementHandler) Delete(c echo.Context) error {
	if err := h.service.DeleteMeasurement(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	metrics.WritesTotal.WithLabelValues("measurement", "delete").Inc()
	return c.NoContent(http.StatusNoContent)
}

func countRangeViolation(err error) {
	var oor *domain.OutOfRangeError
	if errors.As(err, &oor) {
		metrics.RangeViolationsTotal.WithLabelValues(string(oor.Kind)).Inc()
	}
}
