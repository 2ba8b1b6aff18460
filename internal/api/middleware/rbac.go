package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/tempsense/tracking-api/internal/api/metrics"
	"github.com/tempsense/tracking-api/internal/core/domain"
	"github.com/tempsense/tracking-api/internal/core/ports"
)

// RBAC enforces the access policy for op. It must run after Auth.
func RBAC(guard ports.AccessGuard, op domain.Operation) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			identity, ok := IdentityFrom(c)
			if !ok {
				return domain.ErrUnauthenticated
			}
			if err := guard.Authorize(identity, op); err != nil {
				metrics.AccessDeniedTotal.WithLabelValues(string(op)).Inc()
				return err
			}
			return next(c)
		}
	}
}
