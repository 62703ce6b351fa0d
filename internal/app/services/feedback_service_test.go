package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/oguzt/trainhub/internal/app/models"
	"github.com/oguzt/trainhub/internal/app/models/dto"
	"github.com/oguzt/trainhub/internal/pkg/apperrors"
)

type feedbackFixture struct {
	*nomineeFixture
	service *FeedbackService
}

func newFeedbackFixture(t *testing.T) *feedbackFixture {
	t.Helper()
	base := newNomineeFixture(t)
	return &feedbackFixture{
		nomineeFixture: base,
		service:        NewFeedbackService(base.events, base.nominees, base.feedback),
	}
}

func TestSubmitFeedbackCreatesThenUpdates(t *testing.T) {
	f := newFeedbackFixture(t)
	nominee := f.addNominee(t, "went@example.com", models.StatusAttended)

	first, created, err := f.service.Submit(context.Background(), nominee.ID, dto.FeedbackSubmitRequest{
		Rating:   4,
		Comments: "Good session",
	})
	if err != nil {
		t.Fatalf("first Submit: %v", err)
	}
	if !created {
		t.Fatalf("first submission reported as update")
	}

	second, created, err := f.service.Submit(context.Background(), nominee.ID, dto.FeedbackSubmitRequest{
		Rating:      5,
		Comments:    "Even better on reflection",
		Suggestions: "More exercises",
	})
	if err != nil {
		t.Fatalf("second Submit: %v", err)
	}
	if created {
		t.Fatalf("resubmission reported as create")
	}
	if second.ID != first.ID {
		t.Errorf("resubmission created new record %d, want %d", second.ID, first.ID)
	}
	if second.Rating != 5 {
		t.Errorf("got rating %d, want 5", second.Rating)
	}
	if !second.SubmittedAt.Equal(first.SubmittedAt) {
		t.Errorf("resubmission changed SubmittedAt from %v to %v", first.SubmittedAt, second.SubmittedAt)
	}
}

func TestSubmitFeedbackRatingCheckedFirst(t *testing.T) {
	f := newFeedbackFixture(t)

	// Out-of-range rating wins over unknown nominee
	for _, rating := range []int{0, 6, -1} {
		_, _, err := f.service.Submit(context.Background(), 404, dto.FeedbackSubmitRequest{Rating: rating})
		if !errors.Is(err, apperrors.ErrValidationFailed) {
			t.Errorf("rating %d: got %v, want validation failure", rating, err)
		}
	}
}

func TestSubmitFeedbackRequiresAttended(t *testing.T) {
	f := newFeedbackFixture(t)

	for _, status := range []models.NomineeStatus{models.StatusPending, models.StatusAccepted, models.StatusRejected} {
		nominee := f.addNominee(t, string(status)+"@example.com", status)
		_, _, err := f.service.Submit(context.Background(), nominee.ID, dto.FeedbackSubmitRequest{Rating: 3})
		if !errors.Is(err, apperrors.ErrPreconditionFailed) {
			t.Errorf("status %s: got %v, want precondition failure", status, err)
		}
	}
}

func TestSubmitFeedbackUnknownNominee(t *testing.T) {
	f := newFeedbackFixture(t)

	_, _, err := f.service.Submit(context.Background(), 404, dto.FeedbackSubmitRequest{Rating: 3})
	if !errors.Is(err, apperrors.ErrNomineeNotFound) {
		t.Fatalf("got %v, want ErrNomineeNotFound", err)
	}
}

func TestFeedbackInfo(t *testing.T) {
	f := newFeedbackFixture(t)
	nominee := f.addNominee(t, "went@example.com", models.StatusAttended)

	info, err := f.service.Info(context.Background(), nominee.ID)
	if err != nil {
		t.Fatalf("Info: %v", err)
	}
	if info.EventTitle != f.event.Title {
		t.Errorf("got event title %q, want %q", info.EventTitle, f.event.Title)
	}
	if info.HasFeedback {
		t.Errorf("HasFeedback true before any submission")
	}

	if _, _, err := f.service.Submit(context.Background(), nominee.ID, dto.FeedbackSubmitRequest{Rating: 4}); err != nil {
		t.Fatalf("Submit: %v", err)
	}

	info, err = f.service.Info(context.Background(), nominee.ID)
	if err != nil {
		t.Fatalf("Info after submit: %v", err)
	}
	if !info.HasFeedback {
		t.Errorf("HasFeedback false after submission")
	}
}

func TestFeedbackInfoRequiresAttended(t *testing.T) {
	f := newFeedbackFixture(t)
	nominee := f.addNominee(t, "pending@example.com", models.StatusPending)

	_, err := f.service.Info(context.Background(), nominee.ID)
	if !errors.Is(err, apperrors.ErrPreconditionFailed) {
		t.Fatalf("got %v, want precondition failure", err)
	}
}

func TestExportCSV(t *testing.T) {
	f := newFeedbackFixture(t)
	nominee := f.addNominee(t, "went@example.com", models.StatusAttended)
	if _, _, err := f.service.Submit(context.Background(), nominee.ID, dto.FeedbackSubmitRequest{
		Rating:      4,
		Comments:    "Solid content, \"quotes\" included",
		Suggestions: "Longer breaks",
	}); err != nil {
		t.Fatalf("Submit: %v", err)
	}

	filename, data, err := f.service.ExportCSV(context.Background(), f.event.ID)
	if err != nil {
		t.Fatalf("ExportCSV: %v", err)
	}
	if filename != f.event.Title+"_feedback.csv" {
		t.Errorf("got filename %q, want %q", filename, f.event.Title+"_feedback.csv")
	}

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d CSV lines, want 2 (header + one row)", len(lines))
	}
	if lines[0] != "Nominee Name,Email,Department,Rating,Comments,Suggestions,Submitted At" {
		t.Errorf("unexpected CSV header: %q", lines[0])
	}
	if !strings.Contains(lines[1], "went@example.com") {
		t.Errorf("row missing nominee email: %q", lines[1])
	}
	if !strings.Contains(lines[1], `"Solid content, ""quotes"" included"`) {
		t.Errorf("comment not CSV-quoted: %q", lines[1])
	}

	// Timestamp must use the fixed layout
	stored, _ := f.feedback.GetByNomineeID(context.Background(), nominee.ID)
	want := stored.SubmittedAt.Format("2006-01-02 15:04:05")
	if !strings.Contains(lines[1], want) {
		t.Errorf("row %q missing timestamp %q", lines[1], want)
	}
}

func TestExportCSVEmptyEvent(t *testing.T) {
	f := newFeedbackFixture(t)

	_, data, err := f.service.ExportCSV(context.Background(), f.event.ID)
	if err != nil {
		t.Fatalf("ExportCSV: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 1 {
		t.Fatalf("got %d CSV lines for empty event, want header only", len(lines))
	}
}

func TestListByEventJoinsNominee(t *testing.T) {
	f := newFeedbackFixture(t)
	nominee := f.addNominee(t, "went@example.com", models.StatusAttended)
	if _, _, err := f.service.Submit(context.Background(), nominee.ID, dto.FeedbackSubmitRequest{Rating: 5}); err != nil {
		t.Fatalf("Submit: %v", err)
	}

	items, err := f.service.ListByEvent(context.Background(), f.event.ID)
	if err != nil {
		t.Fatalf("ListByEvent: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("got %d items, want 1", len(items))
	}
	if items[0].NomineeEmail != "went@example.com" {
		t.Errorf("got nominee email %q", items[0].NomineeEmail)
	}
	if items[0].SubmittedAt.IsZero() {
		t.Errorf("SubmittedAt not set")
	}
}
