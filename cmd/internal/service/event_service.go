package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/gommon/log"

	"famcal/cmd/internal/domain/entity"
	"famcal/cmd/internal/store"
	"famcal/cmd/internal/utils"
	"famcal/cmd/internal/utils/apierror"
)

type EventStore interface {
	Add(ctx context.Context, e entity.Event) (string, error)
	Update(ctx context.Context, id string, patch store.EventPatch) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]entity.Event, error)
}

// Shape-only validation: formats and required fields. Cross-field rules
// (end after start, reminder minutes vs the reminder flag, member
// existence) stay with the editing UI, matching the store's contract.
type EventRequest struct {
	Title           string `json:"title" validate:"required,max=128"`
	Description     string `json:"description" validate:"max=1000"`
	Date            string `json:"date" validate:"required,datetime=2006-01-02"`
	StartTime       string `json:"startTime" validate:"required,datetime=15:04"`
	EndTime         string `json:"endTime" validate:"required,datetime=15:04"`
	MemberID        string `json:"memberId" validate:"required"`
	Reminder        bool   `json:"reminder"`
	ReminderMinutes int    `json:"reminderMinutes" validate:"min=0,max=1440"`
}

type EventUpdateRequest struct {
	Title           *string `json:"title" validate:"omitempty,min=1,max=128"`
	Description     *string `json:"description" validate:"omitempty,max=1000"`
	Date            *string `json:"date" validate:"omitempty,datetime=2006-01-02"`
	StartTime       *string `json:"startTime" validate:"omitempty,datetime=15:04"`
	EndTime         *string `json:"endTime" validate:"omitempty,datetime=15:04"`
	MemberID        *string `json:"memberId" validate:"omitempty,min=1"`
	Reminder        *bool   `json:"reminder"`
	ReminderMinutes *int    `json:"reminderMinutes" validate:"omitempty,min=0,max=1440"`
}

type DefaultEventService struct {
	EventStore EventStore
	Validate   *validator.Validate
}

func NewEventService(eventStore EventStore, validate *validator.Validate) *DefaultEventService {
	return &DefaultEventService{EventStore: eventStore, Validate: validate}
}

func (e *DefaultEventService) ListEvents(ctx context.Context) ([]entity.Event, apierror.ErrorResponse) {
	events, err := e.EventStore.List(ctx)
	if err != nil {
		log.Errorf("failed to list events: %v", err)
		return nil, apierror.InternalServerError
	}
	return events, nil
}

func (e *DefaultEventService) AddEvent(ctx context.Context, req *EventRequest) (string, apierror.ErrorResponse) {
	utils.Sanitize(req)
	if err := e.Validate.Struct(req); err != nil {
		return "", apierror.FromValidationError(err)
	}

	event := entity.Event{
		Title:           req.Title,
		Description:     req.Description,
		Date:            req.Date,
		StartTime:       req.StartTime,
		EndTime:         req.EndTime,
		MemberID:        req.MemberID,
		Reminder:        req.Reminder,
		ReminderMinutes: req.ReminderMinutes,
	}
	id, err := e.EventStore.Add(ctx, event)
	if err != nil {
		log.Errorf("failed to add event: %v", err)
		return "", apierror.NewWriteFailure("add event", err)
	}
	return id, nil
}

func (e *DefaultEventService) UpdateEvent(ctx context.Context, id string, req *EventUpdateRequest) apierror.ErrorResponse {
	utils.Sanitize(req)
	if err := e.Validate.Struct(req); err != nil {
		return apierror.FromValidationError(err)
	}

	patch := store.EventPatch{
		Title:           req.Title,
		Description:     req.Description,
		Date:            req.Date,
		StartTime:       req.StartTime,
		EndTime:         req.EndTime,
		MemberID:        req.MemberID,
		Reminder:        req.Reminder,
		ReminderMinutes: req.ReminderMinutes,
	}
	if err := e.EventStore.Update(ctx, id, patch); err != nil {
		log.Errorf("failed to update event %s: %v", id, err)
		return apierror.NewWriteFailure("update event", err)
	}
	return nil
}

func (e *DefaultEventService) DeleteEvent(ctx context.Context, id string) apierror.ErrorResponse {
	if err := e.EventStore.Delete(ctx, id); err != nil {
		log.Errorf("failed to delete event %s: %v", id, err)
		return apierror.NewWriteFailure("delete event", err)
	}
	return nil
}
