package routes

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"famcal/cmd/internal/domain/entity"
	"famcal/cmd/internal/service"
	"famcal/cmd/internal/utils/apierror"
)

type EventService interface {
	ListEvents(ctx context.Context) ([]entity.Event, apierror.ErrorResponse)
	AddEvent(ctx context.Context, req *service.EventRequest) (string, apierror.ErrorResponse)
	UpdateEvent(ctx context.Context, id string, req *service.EventUpdateRequest) apierror.ErrorResponse
	DeleteEvent(ctx context.Context, id string) apierror.ErrorResponse
}

type DefaultEventRoute struct {
	EventService EventService
}

func NewEventDefault(eventService EventService) *DefaultEventRoute {
	return &DefaultEventRoute{EventService: eventService}
}

func (e *DefaultEventRoute) GetEvents(c echo.Context) error {
	events, apierr := e.EventService.ListEvents(c.Request().Context())
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	// Optional ?date=YYYY-MM-DD narrows to one day; the snapshot is
	// already date/time ordered.
	if date := c.QueryParam("date"); date != "" {
		filtered := make([]entity.Event, 0, len(events))
		for _, ev := range events {
			if ev.Date == date {
				filtered = append(filtered, ev)
			}
		}
		events = filtered
	}

	resp := echo.Map{"events": events}
	return c.JSON(http.StatusOK, &resp)
}

func (e *DefaultEventRoute) CreateEvent(c echo.Context) error {
	var req service.EventRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedBodyError)
	}

	id, apierr := e.EventService.AddEvent(c.Request().Context(), &req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusCreated, echo.Map{"id": id, "message": "Event added"})
}

func (e *DefaultEventRoute) UpdateEvent(c echo.Context) error {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		return c.JSON(http.StatusBadRequest, apierror.NewMissingParamError("id"))
	}

	var req service.EventUpdateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedBodyError)
	}

	apierr := e.EventService.UpdateEvent(c.Request().Context(), id, &req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Event updated"})
}

func (e *DefaultEventRoute) DeleteEvent(c echo.Context) error {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		return c.JSON(http.StatusBadRequest, apierror.NewMissingParamError("id"))
	}

	apierr := e.EventService.DeleteEvent(c.Request().Context(), id)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Event deleted"})
}
