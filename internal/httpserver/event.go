package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/agriconnect/marketplace/internal/logging"
	"github.com/agriconnect/marketplace/internal/service"
	"github.com/agriconnect/marketplace/internal/transport"
)

type EventHTTP struct {
	Svc *service.EventService
}

func (h *EventHTTP) CreateEvent(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "event.create_event")

	ident, err := identity(c)
	if err != nil {
		return err
	}

	var req transport.CreateEventRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	event, err := h.Svc.Create(ctx, ident, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrForbidden):
			return echo.NewHTTPError(http.StatusForbidden, err.Error())
		case errors.Is(err, service.ErrValidation):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		default:
			l.Error("create_event_error", "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
		}
	}

	l.Info("create_event_success", "event_id", event.ID)
	return c.JSON(http.StatusCreated, echo.Map{
		"message":  "Event created successfully!",
		"event_id": event.ID,
	})
}

func (h *EventHTTP) ListEvents(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "event.list_events")

	events, err := h.Svc.ListUpcoming(ctx)
	if err != nil {
		l.Error("list_events_error", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	return c.JSON(http.StatusOK, events)
}

func (h *EventHTTP) GetEvent(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "event.get_event")

	eventID, err := idParam(c, "id")
	if err != nil {
		return err
	}

	detail, err := h.Svc.Get(ctx, eventID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Event not found.")
		}
		l.Error("get_event_error", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	return c.JSON(http.StatusOK, detail)
}

// RSVP surfaces every business failure as 400 with a message, the way
// the public API has always behaved.
func (h *EventHTTP) RSVP(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "event.rsvp")

	ident, err := identity(c)
	if err != nil {
		return err
	}

	eventID, err := idParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.Svc.RSVP(ctx, ident, eventID); err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound),
			errors.Is(err, service.ErrConflict),
			errors.Is(err, service.ErrEventFull):
			l.Warn("rsvp_rejected", "event_id", eventID, "reason", err.Error())
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		default:
			l.Error("rsvp_error", "event_id", eventID, "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
		}
	}

	l.Info("rsvp_success", "event_id", eventID, "volunteer_id", ident.UserID)
	return c.JSON(http.StatusCreated, echo.Map{"message": "Successfully RSVP'd for the event!"})
}

func (h *EventHTTP) RecordAttendance(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "event.record_attendance")

	ident, err := identity(c)
	if err != nil {
		return err
	}

	eventID, err := idParam(c, "id")
	if err != nil {
		return err
	}

	var req transport.RecordAttendanceRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	updated, err := h.Svc.RecordAttendance(ctx, ident, eventID, req.Volunteers)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrForbidden):
			return echo.NewHTTPError(http.StatusForbidden, err.Error())
		case errors.Is(err, service.ErrNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "Event not found.")
		default:
			l.Error("record_attendance_error", "event_id", eventID, "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "Failed to update attendance.")
		}
	}

	l.Info("record_attendance_success", "event_id", eventID, "updated", updated)
	return c.JSON(http.StatusOK, echo.Map{
		"message": "Attendance has been successfully updated.",
		"updated": updated,
	})
}
