package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/agriconnect/marketplace/internal/logging"
	"github.com/agriconnect/marketplace/internal/service"
)

type DashboardHTTP struct {
	Svc *service.DashboardService
}

func (h *DashboardHTTP) GetDashboard(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "dashboard.get_dashboard")

	ident, err := identity(c)
	if err != nil {
		return err
	}

	summary, err := h.Svc.Summary(ctx, ident)
	if err != nil {
		if errors.Is(err, service.ErrForbidden) {
			return echo.NewHTTPError(http.StatusForbidden, err.Error())
		}
		l.Error("get_dashboard_error", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	return c.JSON(http.StatusOK, summary)
}
