// Package notifications derives per-user alerts from complaint changes:
// a status transition or a newly arrived staff response becomes a local
// notification. Read/unread bookkeeping is purely client-side.
package notifications

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/campusvoice/student-portal/internal/gateway"
	"github.com/campusvoice/student-portal/pkg/i18n"
)

// snapshot is what Observe remembers about a complaint between refreshes
type snapshot struct {
	status        gateway.Status
	responseCount int
}

type userInbox struct {
	known map[string]snapshot
	items []Notification
}

// Service owns the in-memory notification inboxes
type Service struct {
	mu    sync.Mutex
	users map[string]*userInbox

	now func() time.Time
}

// NewService creates a notification service
func NewService() *Service {
	return &Service{
		users: make(map[string]*userInbox),
		now:   time.Now,
	}
}

func (s *Service) inbox(userID string) *userInbox {
	in, ok := s.users[userID]
	if !ok {
		in = &userInbox{known: make(map[string]snapshot)}
		s.users[userID] = in
	}
	return in
}

// Observe diffs a fresh complaint collection against the last one seen and
// synthesizes notifications for status changes and new staff responses.
// The first observation for a user only establishes the baseline.
func (s *Service) Observe(userID string, complaints []gateway.Complaint) {
	s.mu.Lock()
	defer s.mu.Unlock()

	in := s.inbox(userID)
	first := len(in.known) == 0 && len(in.items) == 0

	for _, c := range complaints {
		prev, seen := in.known[c.ID]
		if seen && !first {
			if c.Status != prev.status {
				in.push(c, KindStatusChanged, s.now())
			}
			if c.ResponseCount > prev.responseCount {
				in.push(c, KindNewResponse, s.now())
			}
		}
		in.known[c.ID] = snapshot{status: c.Status, responseCount: c.ResponseCount}
	}
}

func (in *userInbox) push(c gateway.Complaint, kind Kind, at time.Time) {
	in.items = append(in.items, Notification{
		ID:             uuid.NewString(),
		ComplaintID:    c.ID,
		ComplaintTitle: c.Title,
		Kind:           kind,
		CreatedAt:      at,
	})
}

// List returns the user's notifications, newest first, with messages
// rendered in the given language.
func (s *Service) List(userID string, filter Filter, lang i18n.Language) []Notification {
	if !filter.Valid() {
		filter = FilterAll
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	in := s.inbox(userID)
	out := make([]Notification, 0, len(in.items))
	for i := len(in.items) - 1; i >= 0; i-- {
		n := in.items[i]
		if filter == FilterUnread && n.Read {
			continue
		}
		if filter == FilterRead && !n.Read {
			continue
		}
		n.Message = i18n.Translate(n.Kind.messageKey(), lang)
		out = append(out, n)
	}
	return out
}

// UnreadCount returns how many notifications are unread
func (s *Service) UnreadCount(userID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for _, n := range s.inbox(userID).items {
		if !n.Read {
			count++
		}
	}
	return count
}

// MarkRead marks one notification as read. Idempotent; unknown IDs are
// ignored.
func (s *Service) MarkRead(userID, notificationID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	in := s.inbox(userID)
	for i := range in.items {
		if in.items[i].ID == notificationID {
			in.items[i].Read = true
			return
		}
	}
}

// MarkAllRead marks every notification as read
func (s *Service) MarkAllRead(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	in := s.inbox(userID)
	for i := range in.items {
		in.items[i].Read = true
	}
}

// Delete removes a notification locally. The underlying complaint is
// untouched.
func (s *Service) Delete(userID, notificationID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	in := s.inbox(userID)
	kept := in.items[:0]
	for _, n := range in.items {
		if n.ID != notificationID {
			kept = append(kept, n)
		}
	}
	in.items = kept
}
