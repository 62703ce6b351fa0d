package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/oguzt/trainhub/internal/app/models"
	"github.com/oguzt/trainhub/internal/app/repositories"
	"github.com/oguzt/trainhub/internal/pkg/apperrors"
)

// In-memory store fakes. They mirror the repository behavior the services
// rely on: sentinel errors for missing rows, compare-and-swap status updates
// and the feedback upsert created flag.

type fakeEventStore struct {
	events map[int64]*models.Event
	nextID int64
}

func newFakeEventStore() *fakeEventStore {
	return &fakeEventStore{events: make(map[int64]*models.Event), nextID: 1}
}

func (s *fakeEventStore) Create(_ context.Context, event *models.Event) error {
	event.ID = s.nextID
	event.CreatedAt = time.Now()
	s.nextID++
	copied := *event
	s.events[event.ID] = &copied
	return nil
}

func (s *fakeEventStore) GetByID(_ context.Context, id int64) (*models.Event, error) {
	event, ok := s.events[id]
	if !ok {
		return nil, apperrors.ErrEventNotFound
	}
	copied := *event
	return &copied, nil
}

func (s *fakeEventStore) GetAll(_ context.Context) ([]*models.Event, error) {
	ids := make([]int64, 0, len(s.events))
	for id := range s.events {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	out := make([]*models.Event, 0, len(ids))
	for _, id := range ids {
		copied := *s.events[id]
		out = append(out, &copied)
	}
	return out, nil
}

func (s *fakeEventStore) Update(_ context.Context, event *models.Event) error {
	if _, ok := s.events[event.ID]; !ok {
		return apperrors.ErrEventNotFound
	}
	copied := *event
	s.events[event.ID] = &copied
	return nil
}

func (s *fakeEventStore) Delete(_ context.Context, id int64) error {
	if _, ok := s.events[id]; !ok {
		return apperrors.ErrEventNotFound
	}
	delete(s.events, id)
	return nil
}

type fakeNomineeStore struct {
	nominees  map[int64]*models.Nominee
	nextID    int64
	createErr error
}

func newFakeNomineeStore() *fakeNomineeStore {
	return &fakeNomineeStore{nominees: make(map[int64]*models.Nominee), nextID: 1}
}

func (s *fakeNomineeStore) Create(_ context.Context, nominee *models.Nominee) error {
	if s.createErr != nil {
		return s.createErr
	}
	nominee.ID = s.nextID
	s.nextID++
	copied := *nominee
	s.nominees[nominee.ID] = &copied
	return nil
}

func (s *fakeNomineeStore) GetByID(_ context.Context, id int64) (*models.Nominee, error) {
	nominee, ok := s.nominees[id]
	if !ok {
		return nil, apperrors.ErrNomineeNotFound
	}
	copied := *nominee
	return &copied, nil
}

func (s *fakeNomineeStore) GetByEventID(_ context.Context, eventID int64) ([]*models.Nominee, error) {
	return s.selectNominees(func(n *models.Nominee) bool { return n.EventID == eventID }), nil
}

func (s *fakeNomineeStore) GetByEventAndStatus(_ context.Context, eventID int64, status models.NomineeStatus) ([]*models.Nominee, error) {
	return s.selectNominees(func(n *models.Nominee) bool {
		return n.EventID == eventID && n.Status == status
	}), nil
}

func (s *fakeNomineeStore) selectNominees(keep func(*models.Nominee) bool) []*models.Nominee {
	ids := make([]int64, 0, len(s.nominees))
	for id, n := range s.nominees {
		if keep(n) {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	out := make([]*models.Nominee, 0, len(ids))
	for _, id := range ids {
		copied := *s.nominees[id]
		out = append(out, &copied)
	}
	return out
}

func (s *fakeNomineeStore) Update(_ context.Context, nominee *models.Nominee) error {
	stored, ok := s.nominees[nominee.ID]
	if !ok {
		return apperrors.ErrNomineeNotFound
	}
	copied := *nominee
	copied.Status = stored.Status
	s.nominees[nominee.ID] = &copied
	return nil
}

func (s *fakeNomineeStore) UpdateStatus(_ context.Context, id int64, from, to models.NomineeStatus) (bool, error) {
	nominee, ok := s.nominees[id]
	if !ok {
		return false, nil
	}
	if nominee.Status != from {
		return false, nil
	}
	nominee.Status = to
	return true, nil
}

func (s *fakeNomineeStore) Delete(_ context.Context, id int64) error {
	if _, ok := s.nominees[id]; !ok {
		return apperrors.ErrNomineeNotFound
	}
	delete(s.nominees, id)
	return nil
}

func (s *fakeNomineeStore) CountByStatus(_ context.Context, eventID int64) (models.NomineeCounts, error) {
	var counts models.NomineeCounts
	for _, n := range s.nominees {
		if n.EventID != eventID {
			continue
		}
		counts.Total++
		switch n.Status {
		case models.StatusPending:
			counts.Pending++
		case models.StatusAccepted:
			counts.Accepted++
		case models.StatusRejected:
			counts.Rejected++
		case models.StatusAttended:
			counts.Attended++
		}
	}
	return counts, nil
}

type fakeFeedbackStore struct {
	byNominee map[int64]*models.Feedback
	nominees  *fakeNomineeStore
	nextID    int64
}

func newFakeFeedbackStore(nominees *fakeNomineeStore) *fakeFeedbackStore {
	return &fakeFeedbackStore{
		byNominee: make(map[int64]*models.Feedback),
		nominees:  nominees,
		nextID:    1,
	}
}

func (s *fakeFeedbackStore) Upsert(_ context.Context, feedback *models.Feedback) (bool, error) {
	existing, ok := s.byNominee[feedback.NomineeID]
	if ok {
		feedback.ID = existing.ID
		feedback.SubmittedAt = existing.SubmittedAt
		copied := *feedback
		s.byNominee[feedback.NomineeID] = &copied
		return false, nil
	}
	feedback.ID = s.nextID
	s.nextID++
	feedback.SubmittedAt = time.Now()
	copied := *feedback
	s.byNominee[feedback.NomineeID] = &copied
	return true, nil
}

func (s *fakeFeedbackStore) GetByNomineeID(_ context.Context, nomineeID int64) (*models.Feedback, error) {
	feedback, ok := s.byNominee[nomineeID]
	if !ok {
		return nil, apperrors.ErrFeedbackNotFound
	}
	copied := *feedback
	return &copied, nil
}

func (s *fakeFeedbackStore) ExistsForNominee(_ context.Context, nomineeID int64) (bool, error) {
	_, ok := s.byNominee[nomineeID]
	return ok, nil
}

func (s *fakeFeedbackStore) GetByEventID(_ context.Context, eventID int64) ([]*repositories.FeedbackWithNominee, error) {
	var out []*repositories.FeedbackWithNominee
	for nomineeID, feedback := range s.byNominee {
		nominee, ok := s.nominees.nominees[nomineeID]
		if !ok || nominee.EventID != eventID {
			continue
		}
		out = append(out, &repositories.FeedbackWithNominee{
			Feedback:          *feedback,
			NomineeName:       nominee.Name,
			NomineeEmail:      nominee.Email,
			NomineeDepartment: nominee.Department,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].NomineeName < out[j].NomineeName })
	return out, nil
}

// fakeMailer records sends and can be told to fail per recipient
type fakeMailer struct {
	invitations      []string
	adminNotices     []string
	feedbackRequests []string
	failFor          map[string]bool
}

func newFakeMailer() *fakeMailer {
	return &fakeMailer{failFor: make(map[string]bool)}
}

func (m *fakeMailer) SendInvitation(nominee *models.Nominee, _ *models.Event) error {
	if m.failFor[nominee.Email] {
		return fmt.Errorf("smtp: cannot reach %s", nominee.Email)
	}
	m.invitations = append(m.invitations, nominee.Email)
	return nil
}

func (m *fakeMailer) SendAdminStatusNotice(nominee *models.Nominee, _ *models.Event, status models.NomineeStatus) error {
	if m.failFor["admin"] {
		return errors.New("smtp: admin mailbox unavailable")
	}
	m.adminNotices = append(m.adminNotices, fmt.Sprintf("%s:%s", nominee.Email, status))
	return nil
}

func (m *fakeMailer) SendFeedbackRequest(nominee *models.Nominee, _ *models.Event) error {
	if m.failFor[nominee.Email] {
		return fmt.Errorf("smtp: cannot reach %s", nominee.Email)
	}
	m.feedbackRequests = append(m.feedbackRequests, nominee.Email)
	return nil
}

type fakeAdminStore struct {
	byUsername map[string]*models.Admin
	nextID     int64
}

func newFakeAdminStore() *fakeAdminStore {
	return &fakeAdminStore{byUsername: make(map[string]*models.Admin), nextID: 1}
}

func (s *fakeAdminStore) Create(_ context.Context, admin *models.Admin) error {
	if _, ok := s.byUsername[admin.Username]; ok {
		return apperrors.ErrUsernameExists
	}
	admin.ID = s.nextID
	s.nextID++
	copied := *admin
	s.byUsername[admin.Username] = &copied
	return nil
}

func (s *fakeAdminStore) GetByUsername(_ context.Context, username string) (*models.Admin, error) {
	admin, ok := s.byUsername[username]
	if !ok {
		return nil, apperrors.ErrAdminNotFound
	}
	copied := *admin
	return &copied, nil
}

func (s *fakeAdminStore) UsernameExists(_ context.Context, username string) (bool, error) {
	_, ok := s.byUsername[username]
	return ok, nil
}

type fakeSessionStore struct {
	sessions map[uuid.UUID]*models.Session
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{sessions: make(map[uuid.UUID]*models.Session)}
}

func (s *fakeSessionStore) Create(_ context.Context, session *models.Session) error {
	session.CreatedAt = time.Now()
	copied := *session
	s.sessions[session.ID] = &copied
	return nil
}

func (s *fakeSessionStore) GetByID(_ context.Context, id uuid.UUID) (*models.Session, error) {
	session, ok := s.sessions[id]
	if !ok {
		return nil, apperrors.ErrSessionNotFound
	}
	copied := *session
	return &copied, nil
}

func (s *fakeSessionStore) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := s.sessions[id]; !ok {
		return apperrors.ErrSessionNotFound
	}
	delete(s.sessions, id)
	return nil
}

func (s *fakeSessionStore) DeleteExpired(_ context.Context) (int64, error) {
	var n int64
	now := time.Now()
	for id, session := range s.sessions {
		if now.After(session.ExpiresAt) {
			delete(s.sessions, id)
			n++
		}
	}
	return n, nil
}
