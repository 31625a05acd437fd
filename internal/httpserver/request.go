package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/agriconnect/marketplace/internal/logging"
	"github.com/agriconnect/marketplace/internal/service"
	"github.com/agriconnect/marketplace/internal/transport"
)

type RequestHTTP struct {
	Svc *service.RequestService
}

func (h *RequestHTTP) CreateProduceRequest(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "request.create_produce_request")

	ident, err := identity(c)
	if err != nil {
		return err
	}

	var req transport.CreateProduceRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	pr, err := h.Svc.CreateProduceRequest(ctx, ident, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrForbidden):
			return echo.NewHTTPError(http.StatusForbidden, err.Error())
		case errors.Is(err, service.ErrValidation):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		default:
			l.Error("create_produce_request_error", "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
		}
	}

	l.Info("create_produce_request_success", "request_id", pr.ID)
	return c.JSON(http.StatusCreated, echo.Map{
		"message":    "Produce request created successfully!",
		"request_id": pr.ID,
	})
}

func (h *RequestHTTP) ListProduceRequests(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "request.list_produce_requests")

	ident, err := identity(c)
	if err != nil {
		return err
	}

	rows, err := h.Svc.ListOpenProduceRequests(ctx, ident)
	if err != nil {
		if errors.Is(err, service.ErrForbidden) {
			return echo.NewHTTPError(http.StatusForbidden, err.Error())
		}
		l.Error("list_produce_requests_error", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	return c.JSON(http.StatusOK, rows)
}

func (h *RequestHTTP) CreateIDRequest(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "request.create_id_request")

	ident, err := identity(c)
	if err != nil {
		return err
	}

	var req transport.CreateIDRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	ir, err := h.Svc.CreateIDRequest(ctx, ident, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrForbidden):
			return echo.NewHTTPError(http.StatusForbidden, err.Error())
		case errors.Is(err, service.ErrValidation):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		default:
			l.Error("create_id_request_error", "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
		}
	}

	l.Info("create_id_request_success", "request_id", ir.ID)
	return c.JSON(http.StatusCreated, echo.Map{
		"message":    "ID request submitted successfully!",
		"request_id": ir.ID,
	})
}

func (h *RequestHTTP) ListIDRequests(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "request.list_id_requests")

	ident, err := identity(c)
	if err != nil {
		return err
	}

	rows, err := h.Svc.ListOpenIDRequests(ctx, ident)
	if err != nil {
		if errors.Is(err, service.ErrForbidden) {
			return echo.NewHTTPError(http.StatusForbidden, err.Error())
		}
		l.Error("list_id_requests_error", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	return c.JSON(http.StatusOK, rows)
}

func (h *RequestHTTP) RespondIDRequest(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "request.respond_id_request")

	ident, err := identity(c)
	if err != nil {
		return err
	}

	requestID, err := idParam(c, "id")
	if err != nil {
		return err
	}

	var req transport.RespondIDRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	if err := h.Svc.RespondIDRequest(ctx, ident, requestID, req.Response); err != nil {
		switch {
		case errors.Is(err, service.ErrForbidden):
			return echo.NewHTTPError(http.StatusForbidden, err.Error())
		case errors.Is(err, service.ErrValidation):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "Request not found or has already been closed.")
		default:
			l.Error("respond_id_request_error", "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
		}
	}

	l.Info("respond_id_request_success", "request_id", requestID)
	return c.JSON(http.StatusOK, echo.Map{
		"message": "Response submitted successfully. The request is now closed.",
	})
}
