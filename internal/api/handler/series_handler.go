package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tempsense/tracking-api/internal/api/metrics"
	"github.com/tempsense/tracking-api/internal/core/ports"
)

type SeriesHandler struct {
	service ports.SeriesService
}

func NewSeriesHandler(service ports.SeriesService) *SeriesHandler {
	return &SeriesHandler{service: service}
}

// List returns every series.
//
// @Summary      List series
// @Tags         series
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   seriesResponse
// @Failure      401  {object}  errorResponse
// @Router       /api/series [get]
func (h *SeriesHandler) List(c echo.Context) error {
	list, err := h.service.ListSeries(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toSeriesResponses(list))
}

// Get returns a single series.
//
// @Summary      Get series
// @Tags         series
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Series ID"
// @Success      200  {object}  seriesResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/series/{id} [get]
func (h *SeriesHandler) Get(c echo.Context) error {
	s, err := h.service.GetSeries(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toSeriesResponse(s))
}

// Create registers a new series owned by the caller.
//
// @Summary      Create series
// @Tags         series
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      seriesRequest  true  "Series"
// @Success      201   {object}  seriesResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /api/series [post]
func (h *SeriesHandler) Create(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req seriesRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	s, err := h.service.CreateSeries(c.Request().Context(), req.toInput(), identity.Subject)
	if err != nil {
		return err
	}
	metrics.WritesTotal.WithLabelValues("series", "create").Inc()
	return c.JSON(http.StatusCreated, toSeriesResponse(s))
}

// Update replaces the mutable fields of a series.
//
// @Summary      Update series
// @Tags         series
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string         true  "Series ID"
// @Param        body  body      seriesRequest  true  "Series"
// @Success      200   {object}  seriesResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/series/{id} [put]
func (h *SeriesHandler) Update(c echo.Context) error {
	var req seriesRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	s, err := h.service.UpdateSeries(c.Request().Context(), c.Param("id"), req.toInput())
	if err != nil {
		return err
	}
	metrics.WritesTotal.WithLabelValues("series", "update").Inc()
	return c.JSON(http.StatusOK, toSeriesResponse(s))
}

// Delete removes a series and its measurements.
//
// @Summary      Delete series
// @Tags         series
// @Security     BearerAuth
// @Param        id   path  string  true  "Series ID"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Router       /api/series/{id} [delete]
func (h *SeriesHandler) Delete(c echo.Context) error {
	if err := h.service.DeleteSeries(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	metrics.WritesTotal.WithLabelValues("series", "delete").Inc()
	return c.NoContent(http.StatusNoContent)
}
