package gateway

import "time"

// Status represents the lifecycle state of a complaint, owned by the backend
type Status string

const (
	StatusDraft      Status = "draft"
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusResolved   Status = "resolved"
	StatusClosed     Status = "closed"
	StatusEscalated  Status = "escalated"
)

// Priority represents the urgency of a complaint
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// Complaint is a complaint record as the backend returns it.
// Consumed read-only in this tier.
type Complaint struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Status      Status       `json:"status"`
	Priority    Priority     `json:"priority"`
	Category    string       `json:"category"`
	Institution string       `json:"institution"`
	Attachments []Attachment `json:"attachments"`
	// ResponseCount is the number of staff responses on record
	ResponseCount int       `json:"response_count"`
	SubmittedBy   string    `json:"submitted_by"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Attachment is a stored file reference on a complaint
type Attachment struct {
	ID       string `json:"id"`
	FileName string `json:"file_name"`
	URL      string `json:"url"`
}

// Response is a staff response on a complaint
type Response struct {
	ID          string    `json:"id"`
	ComplaintID string    `json:"complaint"`
	Author      string    `json:"author"`
	Message     string    `json:"message"`
	CreatedAt   time.Time `json:"created_at"`
}

// CommentType distinguishes plain comments from rating comments
type CommentType string

const (
	CommentTypeComment CommentType = "comment"
	CommentTypeRating  CommentType = "rating"
)

// Comment is a student comment or rating thread entry on a complaint
type Comment struct {
	ID          string      `json:"id"`
	ComplaintID string      `json:"complaint"`
	Author      string      `json:"author"`
	Message     string      `json:"message"`
	Type        CommentType `json:"type"`
	Rating      *int        `json:"rating,omitempty"` // 1-5, only for type "rating"
	CreatedAt   time.Time   `json:"created_at"`
}

// Category is a localized complaint classification label
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Institution is an organizational unit a complaint is filed against
type Institution struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// TemplateStatus is the publication state of a feedback template
type TemplateStatus string

const (
	TemplateActive   TemplateStatus = "active"
	TemplateInactive TemplateStatus = "inactive"
)

// FeedbackTemplate is an anonymous feedback form definition
type FeedbackTemplate struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Office      string          `json:"office"`
	Status      TemplateStatus  `json:"status"`
	Fields      []FeedbackField `json:"fields"`
}

// FeedbackField is a single question on a feedback template
type FeedbackField struct {
	ID         string   `json:"id"`
	Label      string   `json:"label"`
	Type       string   `json:"type"` // text, number, rating, choice, checkbox
	IsRequired bool     `json:"is_required"`
	Options    []string `json:"options,omitempty"`
}

// FeedbackAnswer is one typed answer posted back for a template field
type FeedbackAnswer struct {
	FieldID string      `json:"field"`
	Value   interface{} `json:"value"`
}

// FeedbackSubmission is the batch of answers for one template
type FeedbackSubmission struct {
	TemplateID string           `json:"template"`
	Answers    []FeedbackAnswer `json:"answers"`
}

// MaintenanceNotice announces upcoming scheduled downtime
type MaintenanceNotice struct {
	ScheduledTime time.Time `json:"scheduled_time"`
	Message       string    `json:"message"`
}

// NewComplaint is the multipart payload for creating a complaint
type NewComplaint struct {
	Title       string
	Description string
	Institution string
	Priority    Priority
	Files       []UploadFile
}

// UploadFile is an attachment forwarded to the backend unchanged
type UploadFile struct {
	Name    string
	Content []byte
}
