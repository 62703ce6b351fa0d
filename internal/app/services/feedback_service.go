package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/oguzt/trainhub/internal/app/models"
	"github.com/oguzt/trainhub/internal/app/models/dto"
	"github.com/oguzt/trainhub/internal/pkg/apperrors"
	"github.com/oguzt/trainhub/internal/pkg/helpers"
)

// FeedbackService handles feedback submission, the public form context,
// per-event listing and CSV export
type FeedbackService struct {
	events   EventStore
	nominees NomineeStore
	feedback FeedbackStore
}

// NewFeedbackService creates a new feedback service instance
func NewFeedbackService(events EventStore, nominees NomineeStore, feedback FeedbackStore) *FeedbackService {
	return &FeedbackService{
		events:   events,
		nominees: nominees,
		feedback: feedback,
	}
}

// Submit stores feedback for an attended nominee. A resubmission overwrites
// the previous record in place; the returned flag reports whether a new
// record was created. The rating range is checked before anything else, so a
// bad rating is reported even for unknown or non-attended nominees.
func (s *FeedbackService) Submit(ctx context.Context, nomineeID int64, req dto.FeedbackSubmitRequest) (*dto.FeedbackResponse, bool, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return nil, false, apperrors.NewValidationError("rating must be between 1 and 5")
	}

	nominee, err := s.nominees.GetByID(ctx, nomineeID)
	if err != nil {
		return nil, false, err
	}
	if nominee.Status != models.StatusAttended {
		return nil, false, apperrors.NewPreconditionError("Feedback can only be submitted by attended nominees.")
	}

	feedback := &models.Feedback{
		NomineeID:   nominee.ID,
		Rating:      req.Rating,
		Comments:    req.Comments,
		Suggestions: req.Suggestions,
	}

	created, err := s.feedback.Upsert(ctx, feedback)
	if err != nil {
		return nil, false, fmt.Errorf("error saving feedback: %w", err)
	}

	resp := newFeedbackResponse(feedback)
	return &resp, created, nil
}

// Info returns the public feedback-form context for a nominee. Only attended
// nominees can see the form.
func (s *FeedbackService) Info(ctx context.Context, nomineeID int64) (*dto.FeedbackInfoResponse, error) {
	nominee, err := s.nominees.GetByID(ctx, nomineeID)
	if err != nil {
		return nil, err
	}
	if nominee.Status != models.StatusAttended {
		return nil, apperrors.NewPreconditionError("Feedback is only available for attended nominees.")
	}

	event, err := s.events.GetByID(ctx, nominee.EventID)
	if err != nil {
		return nil, err
	}

	hasFeedback, err := s.feedback.ExistsForNominee(ctx, nominee.ID)
	if err != nil {
		return nil, fmt.Errorf("error checking feedback: %w", err)
	}

	return &dto.FeedbackInfoResponse{
		NomineeName: nominee.Name,
		EventTitle:  event.Title,
		Status:      string(nominee.Status),
		HasFeedback: hasFeedback,
	}, nil
}

// ListByEvent retrieves all feedback for one event joined with nominee info
func (s *FeedbackService) ListByEvent(ctx context.Context, eventID int64) ([]dto.EventFeedbackItem, error) {
	if _, err := s.events.GetByID(ctx, eventID); err != nil {
		return nil, err
	}

	rows, err := s.feedback.GetByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving feedback: %w", err)
	}

	items := make([]dto.EventFeedbackItem, 0, len(rows))
	for _, row := range rows {
		fb := row.Feedback
		items = append(items, dto.EventFeedbackItem{
			FeedbackResponse:  newFeedbackResponse(&fb),
			NomineeName:       row.NomineeName,
			NomineeEmail:      row.NomineeEmail,
			NomineeDepartment: row.NomineeDepartment,
		})
	}
	return items, nil
}

// ExportCSV renders all feedback for an event as a CSV document and returns
// the suggested download filename alongside the bytes
func (s *FeedbackService) ExportCSV(ctx context.Context, eventID int64) (string, []byte, error) {
	event, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		return "", nil, err
	}

	rows, err := s.feedback.GetByEventID(ctx, eventID)
	if err != nil {
		return "", nil, fmt.Errorf("error retrieving feedback: %w", err)
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{"Nominee Name", "Email", "Department", "Rating", "Comments", "Suggestions", "Submitted At"}
	if err := w.Write(header); err != nil {
		return "", nil, fmt.Errorf("error writing csv header: %w", err)
	}
	for _, row := range rows {
		record := []string{
			row.NomineeName,
			row.NomineeEmail,
			row.NomineeDepartment,
			strconv.Itoa(row.Rating),
			row.Comments,
			row.Suggestions,
			row.SubmittedAt.Format(helpers.CSVTimestampLayout),
		}
		if err := w.Write(record); err != nil {
			return "", nil, fmt.Errorf("error writing csv row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", nil, fmt.Errorf("error flushing csv: %w", err)
	}

	filename := fmt.Sprintf("%s_feedback.csv", event.Title)
	return filename, buf.Bytes(), nil
}

// newFeedbackResponse builds the response projection for one feedback record
func newFeedbackResponse(feedback *models.Feedback) dto.FeedbackResponse {
	return dto.FeedbackResponse{
		ID:          feedback.ID,
		NomineeID:   feedback.NomineeID,
		Rating:      feedback.Rating,
		Comments:    feedback.Comments,
		Suggestions: feedback.Suggestions,
		SubmittedAt: feedback.SubmittedAt,
	}
}
