package complaints

import (
	"time"

	"github.com/campusvoice/student-portal/internal/gateway"
)

// FilterAll matches every value of a filter dimension
const FilterAll = "all"

// FilterSet is the client-side complaint filter. Each dimension is either
// "all" or a specific value; dimensions combine with AND semantics. Never
// persisted.
type FilterSet struct {
	Status   string `form:"status" json:"status" validate:"omitempty,eq=all|complaint_status"`
	Category string `form:"category" json:"category"`
	Priority string `form:"priority" json:"priority" validate:"omitempty,eq=all|complaint_priority"`
}

// NewFilterSet returns a filter that passes everything
func NewFilterSet() FilterSet {
	return FilterSet{Status: FilterAll, Category: FilterAll, Priority: FilterAll}
}

func (f FilterSet) normalized() FilterSet {
	if f.Status == "" {
		f.Status = FilterAll
	}
	if f.Category == "" {
		f.Category = FilterAll
	}
	if f.Priority == "" {
		f.Priority = FilterAll
	}
	return f
}

// Matches reports whether a complaint passes all three predicates
func (f FilterSet) Matches(c gateway.Complaint) bool {
	f = f.normalized()
	if f.Status != FilterAll && string(c.Status) != f.Status {
		return false
	}
	if f.Category != FilterAll && c.Category != f.Category {
		return false
	}
	if f.Priority != FilterAll && string(c.Priority) != f.Priority {
		return false
	}
	return true
}

// ApplyFilter derives the filtered view from the full collection.
// The result is always a pure function of (collection, filter): a fresh
// slice, never a mutation of the input.
func ApplyFilter(collection []gateway.Complaint, filter FilterSet) []gateway.Complaint {
	filtered := make([]gateway.Complaint, 0, len(collection))
	for _, c := range collection {
		if filter.Matches(c) {
			filtered = append(filtered, c)
		}
	}
	return filtered
}

// DetailView is the expanded view of one selected complaint. The auxiliary
// collections are loaded fresh on every selection and never merged across
// selections.
type DetailView struct {
	Complaint gateway.Complaint  `json:"complaint"`
	Responses []gateway.Response `json:"responses"`
	Comments  []gateway.Comment  `json:"comments"`

	// CanComment is false until at least one staff response exists.
	CanComment        bool   `json:"can_comment"`
	CommentLockReason string `json:"comment_lock_reason,omitempty"`

	// CanRate requires a resolved complaint with at least one staff response.
	CanRate          bool   `json:"can_rate"`
	RatingLockReason string `json:"rating_lock_reason,omitempty"`
}

// FormPhase is the complaint form's submission state
type FormPhase string

const (
	PhaseEditing    FormPhase = "editing"
	PhaseSubmitting FormPhase = "submitting"
	PhaseSuccess    FormPhase = "success"
	PhaseFailed     FormPhase = "failed"
)

// DraftFile is a candidate attachment held in the draft
type DraftFile struct {
	Name      string `json:"name"`
	MediaType string `json:"media_type"`
	Size      int64  `json:"size"`
	Content   []byte `json:"-"`
}

// Draft is the transient, in-memory complaint form state. Discarded on
// submit success or reset, preserved across failed submissions.
type Draft struct {
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Institution string            `json:"institution"`
	Priority    gateway.Priority  `json:"priority"`
	Files       []DraftFile       `json:"files"`
	Errors      map[string]string `json:"errors,omitempty"`
	Phase       FormPhase         `json:"phase"`
	FailureMsg  string            `json:"failure_message,omitempty"`
}

// NewDraft returns an empty draft in the editing phase
func NewDraft() *Draft {
	return &Draft{Phase: PhaseEditing, Priority: gateway.PriorityMedium}
}

// AttachmentPolicy is the local file acceptance policy. The backend applies
// its own authoritative limits independently.
type AttachmentPolicy struct {
	MaxFiles    int
	MaxFileSize int64
}

// DefaultAttachmentPolicy mirrors the backend's documented limits
var DefaultAttachmentPolicy = AttachmentPolicy{
	MaxFiles:    5,
	MaxFileSize: 5 * 1024 * 1024,
}

// allowedMediaTypes is the attachment allow-list
var allowedMediaTypes = map[string]bool{
	"image/jpeg":         true,
	"image/png":          true,
	"image/gif":          true,
	"application/pdf":    true,
	"text/plain":         true,
	"application/msword": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
}

// Acceptable reports whether a single file passes the type and size checks
func (p AttachmentPolicy) Acceptable(f DraftFile) bool {
	return allowedMediaTypes[f.MediaType] && f.Size <= p.MaxFileSize
}

// AcceptFiles applies the policy to a batch: files failing the type or size
// check are dropped, and the combined set is capped at MaxFiles FIFO —
// earlier files keep their seats, later excess is truncated, never rotated.
// rejected counts files dropped for type or size (not the overflow).
func (p AttachmentPolicy) AcceptFiles(existing, batch []DraftFile) (accepted []DraftFile, rejected int) {
	accepted = make([]DraftFile, len(existing), len(existing)+len(batch))
	copy(accepted, existing)

	for _, f := range batch {
		if !p.Acceptable(f) {
			rejected++
			continue
		}
		if len(accepted) >= p.MaxFiles {
			continue
		}
		accepted = append(accepted, f)
	}
	return accepted, rejected
}

// maxDescriptionLength is the advisory local limit; the backend enforces
// its own.
const maxDescriptionLength = 500

// successConfirmationDelay is how long the confirmation view shows before
// the form reverts to editing.
const successConfirmationDelay = 5 * time.Second
