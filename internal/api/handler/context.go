package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/tempsense/tracking-api/internal/api/middleware"
	"github.com/tempsense/tracking-api/internal/core/domain"
)

// ctxIdentity returns the identity injected by the Auth middleware. Handlers
// behind Auth always have one; its absence means the route is miswired.
func ctxIdentity(c echo.Context) (domain.Identity, error) {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		return domain.Identity{}, domain.ErrUnauthenticated
	}
	return identity, nil
}
