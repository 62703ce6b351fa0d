package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/oguzt/trainhub/internal/app/models"
	"github.com/oguzt/trainhub/internal/app/models/dto"
	"github.com/oguzt/trainhub/internal/pkg/apperrors"
)

type nomineeFixture struct {
	events   *fakeEventStore
	nominees *fakeNomineeStore
	feedback *fakeFeedbackStore
	mailer   *fakeMailer
	service  *NomineeService
	event    *models.Event
}

func newNomineeFixture(t *testing.T) *nomineeFixture {
	t.Helper()

	events := newFakeEventStore()
	nominees := newFakeNomineeStore()
	feedback := newFakeFeedbackStore(nominees)
	mailer := newFakeMailer()

	event := &models.Event{
		Title:     "Go Fundamentals",
		Date:      time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC),
		StartTime: "09:30",
		Venue:     "Room 4",
	}
	if err := events.Create(context.Background(), event); err != nil {
		t.Fatalf("seeding event: %v", err)
	}

	return &nomineeFixture{
		events:   events,
		nominees: nominees,
		feedback: feedback,
		mailer:   mailer,
		service:  NewNomineeService(events, nominees, feedback, mailer, zerolog.Nop()),
		event:    event,
	}
}

func (f *nomineeFixture) addNominee(t *testing.T, email string, status models.NomineeStatus) *models.Nominee {
	t.Helper()
	nominee := &models.Nominee{
		EventID:    f.event.ID,
		Name:       "Test Person",
		Email:      email,
		EmployeeID: "E-100",
		Department: "Engineering",
		Status:     status,
	}
	if err := f.nominees.Create(context.Background(), nominee); err != nil {
		t.Fatalf("seeding nominee: %v", err)
	}
	return nominee
}

func TestInviteBatchAllCreated(t *testing.T) {
	f := newNomineeFixture(t)

	result, err := f.service.InviteBatch(context.Background(), f.event.ID, []dto.NomineeCreateRequest{
		{Name: "Ada", Email: "ada@example.com", EmployeeID: "E-1", Department: "Eng"},
		{Name: "Grace", Email: "grace@example.com", EmployeeID: "E-2", Department: "Eng"},
	})
	if err != nil {
		t.Fatalf("InviteBatch: %v", err)
	}

	if len(result.Created) != 2 || len(result.Errors) != 0 {
		t.Fatalf("got %d created, %d errors, want 2 and 0", len(result.Created), len(result.Errors))
	}
	if len(f.mailer.invitations) != 2 {
		t.Fatalf("got %d invitations sent, want 2", len(f.mailer.invitations))
	}
	for _, created := range result.Created {
		if created.Status != string(models.StatusPending) {
			t.Errorf("nominee %s created with status %s, want pending", created.Email, created.Status)
		}
	}
}

func TestInviteBatchRollsBackOnSendFailure(t *testing.T) {
	f := newNomineeFixture(t)
	f.mailer.failFor["broken@example.com"] = true

	result, err := f.service.InviteBatch(context.Background(), f.event.ID, []dto.NomineeCreateRequest{
		{Name: "Ada", Email: "ada@example.com", EmployeeID: "E-1", Department: "Eng"},
		{Name: "Broken", Email: "broken@example.com", EmployeeID: "E-2", Department: "Eng"},
	})
	if err != nil {
		t.Fatalf("InviteBatch: %v", err)
	}

	if len(result.Created) != 1 || len(result.Errors) != 1 {
		t.Fatalf("got %d created, %d errors, want 1 and 1", len(result.Created), len(result.Errors))
	}
	if result.Errors[0].Email != "broken@example.com" {
		t.Errorf("error attributed to %q, want broken@example.com", result.Errors[0].Email)
	}

	// The unsendable nominee must not linger on the roster
	roster, err := f.nominees.GetByEventID(context.Background(), f.event.ID)
	if err != nil {
		t.Fatalf("GetByEventID: %v", err)
	}
	for _, n := range roster {
		if n.Email == "broken@example.com" {
			t.Fatalf("nominee with failed invitation still on roster")
		}
	}
}

func TestInviteBatchValidatesEntriesIndividually(t *testing.T) {
	f := newNomineeFixture(t)

	result, err := f.service.InviteBatch(context.Background(), f.event.ID, []dto.NomineeCreateRequest{
		{Name: "", Email: "not-an-email", EmployeeID: "", Department: ""},
		{Name: "Ada", Email: "ada@example.com", EmployeeID: "E-1", Department: "Eng"},
	})
	if err != nil {
		t.Fatalf("InviteBatch: %v", err)
	}

	if len(result.Created) != 1 {
		t.Fatalf("got %d created, want 1", len(result.Created))
	}
	if len(result.Errors) != 1 {
		t.Fatalf("got %d errors, want 1", len(result.Errors))
	}
	fields := result.Errors[0].Fields
	for _, field := range []string{"name", "email", "employeeId", "department"} {
		if _, ok := fields[field]; !ok {
			t.Errorf("missing field error for %q, got %v", field, fields)
		}
	}
}

func TestInviteBatchReportsStoreFailure(t *testing.T) {
	f := newNomineeFixture(t)
	f.nominees.createErr = errors.New("connection reset")

	result, err := f.service.InviteBatch(context.Background(), f.event.ID, []dto.NomineeCreateRequest{
		{Name: "Ada", Email: "ada@example.com", EmployeeID: "E-1", Department: "Eng"},
	})
	if err != nil {
		t.Fatalf("InviteBatch: %v", err)
	}
	if len(result.Created) != 0 || len(result.Errors) != 1 {
		t.Fatalf("got %d created, %d errors, want 0 and 1", len(result.Created), len(result.Errors))
	}
	if len(f.mailer.invitations) != 0 {
		t.Errorf("invitation sent despite store failure")
	}
}

func TestInviteBatchUnknownEvent(t *testing.T) {
	f := newNomineeFixture(t)

	_, err := f.service.InviteBatch(context.Background(), 999, []dto.NomineeCreateRequest{
		{Name: "Ada", Email: "ada@example.com", EmployeeID: "E-1", Department: "Eng"},
	})
	if !errors.Is(err, apperrors.ErrEventNotFound) {
		t.Fatalf("got %v, want ErrEventNotFound", err)
	}
}

func TestRespondAcceptFromPending(t *testing.T) {
	f := newNomineeFixture(t)
	nominee := f.addNominee(t, "ada@example.com", models.StatusPending)

	result, err := f.service.Respond(context.Background(), nominee.ID, true)
	if err != nil {
		t.Fatalf("Respond: %v", err)
	}
	if result.Status != "accepted" {
		t.Errorf("got status %q, want accepted", result.Status)
	}
	if result.EventTitle != f.event.Title {
		t.Errorf("got event title %q, want %q", result.EventTitle, f.event.Title)
	}

	stored, _ := f.nominees.GetByID(context.Background(), nominee.ID)
	if stored.Status != models.StatusAccepted {
		t.Errorf("stored status %s, want accepted", stored.Status)
	}
	if len(f.mailer.adminNotices) != 1 {
		t.Errorf("got %d admin notices, want 1", len(f.mailer.adminNotices))
	}
}

func TestRespondFirstDecisionWins(t *testing.T) {
	f := newNomineeFixture(t)
	nominee := f.addNominee(t, "ada@example.com", models.StatusPending)

	if _, err := f.service.Respond(context.Background(), nominee.ID, true); err != nil {
		t.Fatalf("first Respond: %v", err)
	}

	// A later reject click must not flip the decision
	result, err := f.service.Respond(context.Background(), nominee.ID, false)
	if err != nil {
		t.Fatalf("second Respond: %v", err)
	}
	if result.Status != "already" {
		t.Errorf("got status %q, want already", result.Status)
	}
	if result.EventTitle != "" {
		t.Errorf("already outcome carries event title %q, want empty", result.EventTitle)
	}

	stored, _ := f.nominees.GetByID(context.Background(), nominee.ID)
	if stored.Status != models.StatusAccepted {
		t.Errorf("stored status %s, want accepted", stored.Status)
	}
	if len(f.mailer.adminNotices) != 1 {
		t.Errorf("got %d admin notices, want 1 (none for the repeat click)", len(f.mailer.adminNotices))
	}
}

func TestRespondAdminNoticeFailureDoesNotBlock(t *testing.T) {
	f := newNomineeFixture(t)
	f.mailer.failFor["admin"] = true
	nominee := f.addNominee(t, "ada@example.com", models.StatusPending)

	result, err := f.service.Respond(context.Background(), nominee.ID, false)
	if err != nil {
		t.Fatalf("Respond: %v", err)
	}
	if result.Status != "rejected" {
		t.Errorf("got status %q, want rejected", result.Status)
	}

	stored, _ := f.nominees.GetByID(context.Background(), nominee.ID)
	if stored.Status != models.StatusRejected {
		t.Errorf("stored status %s, want rejected", stored.Status)
	}
}

func TestMarkAttendedRequiresAccepted(t *testing.T) {
	f := newNomineeFixture(t)

	for _, status := range []models.NomineeStatus{models.StatusPending, models.StatusRejected, models.StatusAttended} {
		nominee := f.addNominee(t, string(status)+"@example.com", status)
		_, err := f.service.MarkAttended(context.Background(), nominee.ID)
		if !errors.Is(err, apperrors.ErrPreconditionFailed) {
			t.Errorf("status %s: got %v, want precondition failure", status, err)
		}
	}

	accepted := f.addNominee(t, "ok@example.com", models.StatusAccepted)
	resp, err := f.service.MarkAttended(context.Background(), accepted.ID)
	if err != nil {
		t.Fatalf("MarkAttended: %v", err)
	}
	if resp.Status != string(models.StatusAttended) {
		t.Errorf("got status %s, want attended", resp.Status)
	}
}

func TestMarkAttendedUnknownNominee(t *testing.T) {
	f := newNomineeFixture(t)

	_, err := f.service.MarkAttended(context.Background(), 404)
	if !errors.Is(err, apperrors.ErrNomineeNotFound) {
		t.Fatalf("got %v, want ErrNomineeNotFound", err)
	}
}

func TestSendFeedbackRequestsOnlyAttended(t *testing.T) {
	f := newNomineeFixture(t)
	f.addNominee(t, "pending@example.com", models.StatusPending)
	f.addNominee(t, "accepted@example.com", models.StatusAccepted)
	f.addNominee(t, "went@example.com", models.StatusAttended)
	f.addNominee(t, "also-went@example.com", models.StatusAttended)

	sent, err := f.service.SendFeedbackRequests(context.Background(), f.event.ID)
	if err != nil {
		t.Fatalf("SendFeedbackRequests: %v", err)
	}
	if sent != 2 {
		t.Fatalf("got %d sent, want 2", sent)
	}
	for _, email := range f.mailer.feedbackRequests {
		if email == "pending@example.com" || email == "accepted@example.com" {
			t.Errorf("feedback request sent to non-attended nominee %s", email)
		}
	}
}

func TestSendFeedbackRequestsNoAttended(t *testing.T) {
	f := newNomineeFixture(t)
	f.addNominee(t, "pending@example.com", models.StatusPending)

	_, err := f.service.SendFeedbackRequests(context.Background(), f.event.ID)
	if !errors.Is(err, apperrors.ErrNoAttendedNominees) {
		t.Fatalf("got %v, want ErrNoAttendedNominees", err)
	}
}

func TestSendFeedbackRequestsCountsOnlySuccesses(t *testing.T) {
	f := newNomineeFixture(t)
	f.addNominee(t, "went@example.com", models.StatusAttended)
	f.addNominee(t, "unreachable@example.com", models.StatusAttended)
	f.mailer.failFor["unreachable@example.com"] = true

	sent, err := f.service.SendFeedbackRequests(context.Background(), f.event.ID)
	if err != nil {
		t.Fatalf("SendFeedbackRequests: %v", err)
	}
	if sent != 1 {
		t.Fatalf("got %d sent, want 1", sent)
	}
}

func TestUpdateNomineeKeepsStatus(t *testing.T) {
	f := newNomineeFixture(t)
	nominee := f.addNominee(t, "ada@example.com", models.StatusAccepted)

	newName := "Ada Lovelace"
	resp, err := f.service.Update(context.Background(), nominee.ID, dto.NomineeUpdateRequest{Name: &newName})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if resp.Name != newName {
		t.Errorf("got name %q, want %q", resp.Name, newName)
	}
	if resp.Status != string(models.StatusAccepted) {
		t.Errorf("descriptive update changed status to %s", resp.Status)
	}
}

func TestUpdateNomineeRejectsBadEmail(t *testing.T) {
	f := newNomineeFixture(t)
	nominee := f.addNominee(t, "ada@example.com", models.StatusPending)

	bad := "not-an-email"
	_, err := f.service.Update(context.Background(), nominee.ID, dto.NomineeUpdateRequest{Email: &bad})
	if !errors.Is(err, apperrors.ErrValidationFailed) {
		t.Fatalf("got %v, want validation failure", err)
	}
}
