package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/oguzt/trainhub/internal/app/models"
	"github.com/oguzt/trainhub/internal/app/models/dto"
	"github.com/oguzt/trainhub/internal/pkg/apperrors"
)

const eventDateLayout = "2006-01-02"
const eventTimeLayout = "15:04"

// EventService handles event CRUD and the two event projections
type EventService struct {
	events   EventStore
	nominees NomineeStore
	feedback FeedbackStore
}

// NewEventService creates a new event service instance
func NewEventService(events EventStore, nominees NomineeStore, feedback FeedbackStore) *EventService {
	return &EventService{
		events:   events,
		nominees: nominees,
		feedback: feedback,
	}
}

// List retrieves all events in the list projection: per-status counts, no
// nominee collection. Counts are recomputed on every read.
func (s *EventService) List(ctx context.Context) ([]dto.EventResponse, error) {
	events, err := s.events.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error retrieving events: %w", err)
	}

	responses := make([]dto.EventResponse, 0, len(events))
	for _, event := range events {
		counts, err := s.nominees.CountByStatus(ctx, event.ID)
		if err != nil {
			return nil, fmt.Errorf("error counting nominees for event %d: %w", event.ID, err)
		}
		responses = append(responses, newEventResponse(event, counts))
	}

	return responses, nil
}

// Create validates and creates a new event
func (s *EventService) Create(ctx context.Context, req dto.EventCreateRequest) (*dto.EventResponse, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, apperrors.NewValidationError("title cannot be empty")
	}
	if strings.TrimSpace(req.Venue) == "" {
		return nil, apperrors.NewValidationError("venue cannot be empty")
	}

	date, err := parseEventDate(req.Date)
	if err != nil {
		return nil, err
	}
	startTime, err := parseEventTime(req.Time)
	if err != nil {
		return nil, err
	}

	event := &models.Event{
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		Date:        date,
		StartTime:   startTime,
		Venue:       strings.TrimSpace(req.Venue),
	}

	if err := s.events.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("error creating event: %w", err)
	}

	resp := newEventResponse(event, models.NomineeCounts{})
	return &resp, nil
}

// Get retrieves one event in the detail projection: counts plus the nominee
// collection with embedded feedback.
func (s *EventService) Get(ctx context.Context, id int64) (*dto.EventDetailResponse, error) {
	event, err := s.events.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	counts, err := s.nominees.CountByStatus(ctx, event.ID)
	if err != nil {
		return nil, fmt.Errorf("error counting nominees: %w", err)
	}

	nominees, err := s.nominees.GetByEventID(ctx, event.ID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving nominees: %w", err)
	}

	feedbackRows, err := s.feedback.GetByEventID(ctx, event.ID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving feedback: %w", err)
	}

	feedbackByNominee := make(map[int64]*models.Feedback, len(feedbackRows))
	for _, row := range feedbackRows {
		fb := row.Feedback
		feedbackByNominee[row.NomineeID] = &fb
	}

	nomineeResponses := make([]dto.NomineeResponse, 0, len(nominees))
	for _, nominee := range nominees {
		nomineeResponses = append(nomineeResponses, newNomineeResponse(nominee, feedbackByNominee[nominee.ID]))
	}

	return &dto.EventDetailResponse{
		EventResponse: newEventResponse(event, counts),
		Nominees:      nomineeResponses,
	}, nil
}

// Update applies a partial update to an event; nil fields keep their value
func (s *EventService) Update(ctx context.Context, id int64, req dto.EventUpdateRequest) (*dto.EventResponse, error) {
	event, err := s.events.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		if strings.TrimSpace(*req.Title) == "" {
			return nil, apperrors.NewValidationError("title cannot be empty")
		}
		event.Title = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		event.Description = *req.Description
	}
	if req.Date != nil {
		date, err := parseEventDate(*req.Date)
		if err != nil {
			return nil, err
		}
		event.Date = date
	}
	if req.Time != nil {
		startTime, err := parseEventTime(*req.Time)
		if err != nil {
			return nil, err
		}
		event.StartTime = startTime
	}
	if req.Venue != nil {
		if strings.TrimSpace(*req.Venue) == "" {
			return nil, apperrors.NewValidationError("venue cannot be empty")
		}
		event.Venue = strings.TrimSpace(*req.Venue)
	}

	if err := s.events.Update(ctx, event); err != nil {
		return nil, err
	}

	counts, err := s.nominees.CountByStatus(ctx, event.ID)
	if err != nil {
		return nil, fmt.Errorf("error counting nominees: %w", err)
	}

	resp := newEventResponse(event, counts)
	return &resp, nil
}

// Delete deletes an event; its nominees and their feedback cascade
func (s *EventService) Delete(ctx context.Context, id int64) error {
	return s.events.Delete(ctx, id)
}

// newEventResponse builds the list projection for one event
func newEventResponse(event *models.Event, counts models.NomineeCounts) dto.EventResponse {
	return dto.EventResponse{
		ID:            event.ID,
		Title:         event.Title,
		Description:   event.Description,
		Date:          event.Date.Format(eventDateLayout),
		Time:          event.StartTime,
		Venue:         event.Venue,
		CreatedAt:     event.CreatedAt,
		TotalNominees: counts.Total,
		PendingCount:  counts.Pending,
		AcceptedCount: counts.Accepted,
		RejectedCount: counts.Rejected,
		AttendedCount: counts.Attended,
	}
}

func parseEventDate(value string) (time.Time, error) {
	date, err := time.Parse(eventDateLayout, value)
	if err != nil {
		return time.Time{}, apperrors.NewValidationError("date must be in YYYY-MM-DD format")
	}
	return date, nil
}

func parseEventTime(value string) (string, error) {
	if _, err := time.Parse(eventTimeLayout, value); err != nil {
		return "", apperrors.NewValidationError("time must be in HH:MM format")
	}
	return value, nil
}
