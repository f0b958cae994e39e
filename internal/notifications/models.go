package notifications

import "time"

// Kind classifies what a notification is about
type Kind string

const (
	KindStatusChanged Kind = "status_changed"
	KindNewResponse   Kind = "new_response"
)

// messageKey returns the dictionary key for this notification kind
func (k Kind) messageKey() string {
	switch k {
	case KindStatusChanged:
		return "notification.status_changed"
	case KindNewResponse:
		return "notification.new_response"
	default:
		return ""
	}
}

// Notification is a local, per-user alert derived from complaint changes.
// Notifications live in memory only; dismissing one never touches the
// backend.
type Notification struct {
	ID             string    `json:"id"`
	ComplaintID    string    `json:"complaint_id"`
	ComplaintTitle string    `json:"complaint_title"`
	Kind           Kind      `json:"kind"`
	Message        string    `json:"message"`
	Read           bool      `json:"read"`
	CreatedAt      time.Time `json:"created_at"`
}

// Filter selects which notifications to list
type Filter string

const (
	FilterAll    Filter = "all"
	FilterUnread Filter = "unread"
	FilterRead   Filter = "read"
)

// Valid reports whether the filter is one of the known values
func (f Filter) Valid() bool {
	return f == FilterAll || f == FilterUnread || f == FilterRead
}
