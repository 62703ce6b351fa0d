package services

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/oguzt/trainhub/internal/app/models"
	"github.com/oguzt/trainhub/internal/app/models/dto"
	"github.com/oguzt/trainhub/internal/pkg/apperrors"
	"github.com/oguzt/trainhub/internal/pkg/email"
)

// RespondResult is the outcome of a public accept/reject click, used to build
// the browser redirect.
type RespondResult struct {
	Status      string // "accepted", "rejected" or "already"
	NomineeName string
	EventTitle  string
}

// NomineeService handles the nominee lifecycle: batch invitation, the public
// accept/reject decision, attendance marking and the feedback request blast.
type NomineeService struct {
	events   EventStore
	nominees NomineeStore
	feedback FeedbackStore
	mailer   email.Mailer
	validate *validator.Validate
	logger   zerolog.Logger
}

// NewNomineeService creates a new nominee service instance
func NewNomineeService(events EventStore, nominees NomineeStore, feedback FeedbackStore, mailer email.Mailer, logger zerolog.Logger) *NomineeService {
	validate := validator.New()
	// Report batch errors under the json field names the client sent
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &NomineeService{
		events:   events,
		nominees: nominees,
		feedback: feedback,
		mailer:   mailer,
		validate: validate,
		logger:   logger.With().Str("component", "nominee_service").Logger(),
	}
}

// ListByEvent retrieves all nominees for an event with any embedded feedback
func (s *NomineeService) ListByEvent(ctx context.Context, eventID int64) ([]dto.NomineeResponse, error) {
	if _, err := s.events.GetByID(ctx, eventID); err != nil {
		return nil, err
	}

	nominees, err := s.nominees.GetByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving nominees: %w", err)
	}

	feedbackRows, err := s.feedback.GetByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving feedback: %w", err)
	}
	feedbackByNominee := make(map[int64]*models.Feedback, len(feedbackRows))
	for _, row := range feedbackRows {
		fb := row.Feedback
		feedbackByNominee[row.NomineeID] = &fb
	}

	responses := make([]dto.NomineeResponse, 0, len(nominees))
	for _, nominee := range nominees {
		responses = append(responses, newNomineeResponse(nominee, feedbackByNominee[nominee.ID]))
	}
	return responses, nil
}

// InviteBatch creates nominees for an event and sends each one an invitation
// email. Entries are processed independently: a bad or unsendable entry is
// reported in the result and never aborts the rest. A nominee whose invitation
// email cannot be sent is removed again so the roster only holds people who
// were actually invited.
func (s *NomineeService) InviteBatch(ctx context.Context, eventID int64, entries []dto.NomineeCreateRequest) (*dto.BatchInviteResult, error) {
	event, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, apperrors.NewValidationError("at least one nominee is required")
	}

	result := &dto.BatchInviteResult{
		Created: []dto.NomineeResponse{},
		Errors:  []dto.BatchInviteError{},
	}

	for _, entry := range entries {
		if fields := s.validateEntry(entry); fields != nil {
			result.Errors = append(result.Errors, dto.BatchInviteError{
				Email:   entry.Email,
				Message: "validation failed",
				Fields:  fields,
			})
			continue
		}

		nominee := &models.Nominee{
			EventID:    event.ID,
			Name:       strings.TrimSpace(entry.Name),
			Email:      strings.TrimSpace(entry.Email),
			EmployeeID: strings.TrimSpace(entry.EmployeeID),
			Department: strings.TrimSpace(entry.Department),
			Status:     models.StatusPending,
		}

		if err := s.nominees.Create(ctx, nominee); err != nil {
			s.logger.Error().Err(err).Str("email", nominee.Email).Msg("Failed to create nominee")
			result.Errors = append(result.Errors, dto.BatchInviteError{
				Email:   nominee.Email,
				Message: "failed to create nominee",
			})
			continue
		}

		if err := s.mailer.SendInvitation(nominee, event); err != nil {
			s.logger.Error().Err(err).Str("email", nominee.Email).Msg("Failed to send invitation, removing nominee")
			if delErr := s.nominees.Delete(ctx, nominee.ID); delErr != nil {
				s.logger.Error().Err(delErr).Int64("nominee_id", nominee.ID).Msg("Failed to remove nominee after send failure")
			}
			result.Errors = append(result.Errors, dto.BatchInviteError{
				Email:   nominee.Email,
				Message: fmt.Sprintf("Failed to send invitation email to %s", nominee.Email),
			})
			continue
		}

		result.Created = append(result.Created, newNomineeResponse(nominee, nil))
	}

	return result, nil
}

// Get retrieves one nominee with any embedded feedback
func (s *NomineeService) Get(ctx context.Context, id int64) (*dto.NomineeResponse, error) {
	nominee, err := s.nominees.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	feedback, err := s.feedback.GetByNomineeID(ctx, nominee.ID)
	if err != nil && !errors.Is(err, apperrors.ErrFeedbackNotFound) {
		return nil, fmt.Errorf("error retrieving feedback: %w", err)
	}

	resp := newNomineeResponse(nominee, feedback)
	return &resp, nil
}

// Update applies a partial update to a nominee's descriptive fields. Status
// never changes here; it only moves through the lifecycle endpoints.
func (s *NomineeService) Update(ctx context.Context, id int64, req dto.NomineeUpdateRequest) (*dto.NomineeResponse, error) {
	nominee, err := s.nominees.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, apperrors.NewValidationError("name cannot be empty")
		}
		nominee.Name = strings.TrimSpace(*req.Name)
	}
	if req.Email != nil {
		if err := s.validate.Var(*req.Email, "required,email"); err != nil {
			return nil, apperrors.NewValidationError("email must be a valid email address")
		}
		nominee.Email = strings.TrimSpace(*req.Email)
	}
	if req.EmployeeID != nil {
		nominee.EmployeeID = strings.TrimSpace(*req.EmployeeID)
	}
	if req.Department != nil {
		nominee.Department = strings.TrimSpace(*req.Department)
	}

	if err := s.nominees.Update(ctx, nominee); err != nil {
		return nil, err
	}

	resp := newNomineeResponse(nominee, nil)
	return &resp, nil
}

// Delete removes a nominee; any feedback cascades
func (s *NomineeService) Delete(ctx context.Context, id int64) error {
	return s.nominees.Delete(ctx, id)
}

// Respond records a public accept or reject click. Only a pending nominee can
// decide; anyone who already decided gets the "already" outcome no matter
// which link they click, so the first decision always wins. The admin notice
// email is best effort and never blocks the transition.
func (s *NomineeService) Respond(ctx context.Context, id int64, accept bool) (*RespondResult, error) {
	nominee, err := s.nominees.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	target := models.StatusRejected
	outcome := "rejected"
	if accept {
		target = models.StatusAccepted
		outcome = "accepted"
	}

	changed, err := s.nominees.UpdateStatus(ctx, nominee.ID, models.StatusPending, target)
	if err != nil {
		return nil, fmt.Errorf("error updating nominee status: %w", err)
	}
	if !changed {
		return &RespondResult{Status: "already", NomineeName: nominee.Name}, nil
	}
	nominee.Status = target

	event, err := s.events.GetByID(ctx, nominee.EventID)
	if err != nil {
		return nil, err
	}

	if err := s.mailer.SendAdminStatusNotice(nominee, event, target); err != nil {
		s.logger.Error().Err(err).Int64("nominee_id", nominee.ID).Msg("Failed to send admin notification")
	}

	return &RespondResult{Status: outcome, NomineeName: nominee.Name, EventTitle: event.Title}, nil
}

// MarkAttended marks an accepted nominee as attended. Any other current
// status is a precondition failure naming that status.
func (s *NomineeService) MarkAttended(ctx context.Context, id int64) (*dto.NomineeResponse, error) {
	nominee, err := s.nominees.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	changed, err := s.nominees.UpdateStatus(ctx, nominee.ID, models.StatusAccepted, models.StatusAttended)
	if err != nil {
		return nil, fmt.Errorf("error updating nominee status: %w", err)
	}
	if !changed {
		return nil, apperrors.NewPreconditionError(
			fmt.Sprintf("Can only mark accepted nominees as attended. Current status: %s", nominee.Status))
	}
	nominee.Status = models.StatusAttended

	resp := newNomineeResponse(nominee, nil)
	return &resp, nil
}

// SendFeedbackRequests emails a feedback form link to every attended nominee
// of an event. Individual send failures are logged and skipped; the returned
// count is the number of emails actually sent.
func (s *NomineeService) SendFeedbackRequests(ctx context.Context, eventID int64) (int, error) {
	event, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		return 0, err
	}

	attended, err := s.nominees.GetByEventAndStatus(ctx, eventID, models.StatusAttended)
	if err != nil {
		return 0, fmt.Errorf("error retrieving attended nominees: %w", err)
	}
	if len(attended) == 0 {
		return 0, apperrors.ErrNoAttendedNominees
	}

	sent := 0
	for _, nominee := range attended {
		if err := s.mailer.SendFeedbackRequest(nominee, event); err != nil {
			s.logger.Error().Err(err).Str("email", nominee.Email).Msg("Failed to send feedback request")
			continue
		}
		sent++
	}

	return sent, nil
}

// validateEntry validates one batch invite entry and returns per-field
// messages, or nil when the entry is valid
func (s *NomineeService) validateEntry(entry dto.NomineeCreateRequest) map[string]string {
	err := s.validate.Struct(entry)
	if err == nil {
		return nil
	}

	fields := make(map[string]string)
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		for _, fieldErr := range validationErrors {
			name := fieldErr.Field()
			switch fieldErr.Tag() {
			case "required":
				fields[name] = "this field is required"
			case "email":
				fields[name] = "must be a valid email address"
			default:
				fields[name] = "invalid value"
			}
		}
	} else {
		fields["_"] = "invalid entry"
	}
	return fields
}

// newNomineeResponse builds the response projection for one nominee
func newNomineeResponse(nominee *models.Nominee, feedback *models.Feedback) dto.NomineeResponse {
	resp := dto.NomineeResponse{
		ID:         nominee.ID,
		EventID:    nominee.EventID,
		Name:       nominee.Name,
		Email:      nominee.Email,
		EmployeeID: nominee.EmployeeID,
		Department: nominee.Department,
		Status:     string(nominee.Status),
	}
	if feedback != nil {
		fb := newFeedbackResponse(feedback)
		resp.Feedback = &fb
	}
	return resp
}
