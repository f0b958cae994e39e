// Package complaints implements the student-facing complaint workflows:
// the submission form with its draft lifecycle, the filterable complaint
// list, the detail view with comment and rating threads, and deletion.
package complaints

import (
	"context"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/campusvoice/student-portal/internal/gateway"
	"github.com/campusvoice/student-portal/pkg/common"
	"github.com/campusvoice/student-portal/pkg/i18n"
	"github.com/campusvoice/student-portal/pkg/logger"
)

// Backend is the slice of the gateway this service needs
type Backend interface {
	ListComplaints(ctx context.Context, token string) ([]gateway.Complaint, error)
	CreateComplaint(ctx context.Context, token string, nc *gateway.NewComplaint) (*gateway.Complaint, error)
	DeleteComplaint(ctx context.Context, token, complaintID string) error
	ListResponses(ctx context.Context, token, complaintID string) ([]gateway.Response, error)
	ListComments(ctx context.Context, token, complaintID string) ([]gateway.Comment, error)
	CreateComment(ctx context.Context, token, complaintID, message string) (*gateway.Comment, error)
	UpdateComment(ctx context.Context, token, commentID, message string) error
	DeleteComment(ctx context.Context, token, commentID string) error
	SubmitRating(ctx context.Context, token, complaintID string, rating int, feedback string) error
	ListCategories(ctx context.Context, token, lang string) ([]gateway.Category, error)
	ListInstitutions(ctx context.Context, token string) ([]gateway.Institution, error)
}

// userState is everything the portal tracks per signed-in student
type userState struct {
	collection []gateway.Complaint
	loaded     bool
	filter     FilterSet
	detail     *DetailView
	draft      *Draft

	confirmTimer *time.Timer
}

// Service owns per-user complaint state on top of the backend gateway
type Service struct {
	backend Backend
	policy  AttachmentPolicy

	// confirmDelay is how long a submit outcome stays visible before the
	// form reverts to editing. Overridable in tests.
	confirmDelay time.Duration

	mu        sync.Mutex
	users     map[string]*userState
	observers []CollectionObserver
}

// CollectionObserver is invoked with the fresh collection after every
// successful refresh
type CollectionObserver func(userID string, complaints []gateway.Complaint)

// NewService creates a complaint service
func NewService(backend Backend) *Service {
	return &Service{
		backend:      backend,
		policy:       DefaultAttachmentPolicy,
		confirmDelay: successConfirmationDelay,
		users:        make(map[string]*userState),
	}
}

// SetAttachmentPolicy overrides the default attachment limits. Call at
// startup, before serving traffic.
func (s *Service) SetAttachmentPolicy(policy AttachmentPolicy) {
	s.policy = policy
}

// state returns the user's state, creating it on first use. Caller must
// hold s.mu.
func (s *Service) state(userID string) *userState {
	st, ok := s.users[userID]
	if !ok {
		st = &userState{filter: NewFilterSet(), draft: NewDraft()}
		s.users[userID] = st
	}
	return st
}

// ─── List and refresh ────────────────────────────────────────────────────

// List returns the user's complaints filtered by the given filter set.
// The full collection is fetched on first use and kept as the source of
// truth; the filtered view is always derived from it, never stored.
func (s *Service) List(ctx context.Context, userID, token string, filter FilterSet) ([]gateway.Complaint, error) {
	filter = filter.normalized()

	s.mu.Lock()
	st := s.state(userID)
	loaded := st.loaded
	st.filter = filter
	s.mu.Unlock()

	if !loaded {
		if err := s.Refresh(ctx, userID, token); err != nil {
			return nil, err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return ApplyFilter(s.state(userID).collection, filter), nil
}

// Filter returns the user's current filter set
func (s *Service) Filter(userID string) FilterSet {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state(userID).filter
}

// Refresh replaces the user's complaint collection from the backend.
// The active filter, open detail view, and draft are left untouched.
func (s *Service) Refresh(ctx context.Context, userID, token string) error {
	complaints, err := s.backend.ListComplaints(ctx, token)
	if err != nil {
		return err
	}

	s.mu.Lock()
	st := s.state(userID)
	st.collection = complaints
	st.loaded = true
	observers := s.observers
	s.mu.Unlock()

	for _, observe := range observers {
		observe(userID, complaints)
	}
	return nil
}

// OnRefresh registers an observer of collection refreshes. Register before
// serving traffic; not safe to call concurrently with Refresh.
func (s *Service) OnRefresh(observer CollectionObserver) {
	s.mu.Lock()
	s.observers = append(s.observers, observer)
	s.mu.Unlock()
}

// RefreshAll refreshes the collection for every active session. Individual
// failures are logged and skipped; the next cycle retries naturally.
func (s *Service) RefreshAll(ctx context.Context, sessions map[string]string) {
	for userID, token := range sessions {
		if err := s.Refresh(ctx, userID, token); err != nil {
			logger.WithContext(ctx).Warn("complaint refresh failed",
				zap.String("user_id", userID),
				zap.Error(err))
		}
	}
}

// find locates a complaint in the user's collection, refreshing once from
// the backend if it is not there yet.
func (s *Service) find(ctx context.Context, userID, token, complaintID string) (*gateway.Complaint, error) {
	lookup := func() *gateway.Complaint {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i := range s.state(userID).collection {
			if s.state(userID).collection[i].ID == complaintID {
				c := s.state(userID).collection[i]
				return &c
			}
		}
		return nil
	}

	if c := lookup(); c != nil {
		return c, nil
	}
	if err := s.Refresh(ctx, userID, token); err != nil {
		return nil, err
	}
	if c := lookup(); c != nil {
		return c, nil
	}
	return nil, common.NewNotFoundError("complaint not found", nil)
}

// ─── Detail view ─────────────────────────────────────────────────────────

// Select opens the detail view for one complaint. Responses and comments
// are fetched fresh on every selection.
func (s *Service) Select(ctx context.Context, userID, token, complaintID string, lang i18n.Language) (*DetailView, error) {
	complaint, err := s.find(ctx, userID, token, complaintID)
	if err != nil {
		return nil, err
	}

	responses, err := s.backend.ListResponses(ctx, token, complaintID)
	if err != nil {
		return nil, err
	}
	comments, err := s.backend.ListComments(ctx, token, complaintID)
	if err != nil {
		return nil, err
	}

	view := &DetailView{
		Complaint: *complaint,
		Responses: responses,
		Comments:  comments,
	}
	view.CanComment = len(responses) > 0
	if !view.CanComment {
		view.CommentLockReason = i18n.Translate("complaint.detail.comments_locked", lang)
	}
	view.CanRate = complaint.Status == gateway.StatusResolved && len(responses) > 0
	if !view.CanRate {
		view.RatingLockReason = i18n.Translate("complaint.detail.rating_locked", lang)
	}

	s.mu.Lock()
	s.state(userID).detail = view
	s.mu.Unlock()
	return view, nil
}

// CloseDetail discards the user's open detail view
func (s *Service) CloseDetail(userID string) {
	s.mu.Lock()
	s.state(userID).detail = nil
	s.mu.Unlock()
}

// commentGate verifies that the complaint has at least one staff response.
// Uses the open detail view when it matches, otherwise asks the backend.
func (s *Service) commentGate(ctx context.Context, userID, token, complaintID string, lang i18n.Language) error {
	s.mu.Lock()
	detail := s.state(userID).detail
	s.mu.Unlock()

	if detail != nil && detail.Complaint.ID == complaintID {
		if detail.CanComment {
			return nil
		}
		return common.NewForbiddenError(i18n.Translate("complaint.detail.comments_locked", lang))
	}

	responses, err := s.backend.ListResponses(ctx, token, complaintID)
	if err != nil {
		return err
	}
	if len(responses) == 0 {
		return common.NewForbiddenError(i18n.Translate("complaint.detail.comments_locked", lang))
	}
	return nil
}

// AddComment posts a comment on a complaint that has a staff response
func (s *Service) AddComment(ctx context.Context, userID, token, complaintID, message string, lang i18n.Language) (*gateway.Comment, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, common.NewBadRequestError("comment message is required", nil)
	}
	if err := s.commentGate(ctx, userID, token, complaintID, lang); err != nil {
		return nil, err
	}

	created, err := s.backend.CreateComment(ctx, token, complaintID, message)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	if detail := s.state(userID).detail; detail != nil && detail.Complaint.ID == complaintID {
		detail.Comments = append(detail.Comments, *created)
	}
	s.mu.Unlock()
	return created, nil
}

// EditComment updates the message of the user's own comment
func (s *Service) EditComment(ctx context.Context, userID, token, complaintID, commentID, message string, lang i18n.Language) error {
	message = strings.TrimSpace(message)
	if message == "" {
		return common.NewBadRequestError("comment message is required", nil)
	}
	if err := s.commentGate(ctx, userID, token, complaintID, lang); err != nil {
		return err
	}
	if err := s.backend.UpdateComment(ctx, token, commentID, message); err != nil {
		return err
	}

	s.mu.Lock()
	if detail := s.state(userID).detail; detail != nil && detail.Complaint.ID == complaintID {
		for i := range detail.Comments {
			if detail.Comments[i].ID == commentID {
				detail.Comments[i].Message = message
			}
		}
	}
	s.mu.Unlock()
	return nil
}

// RemoveComment deletes the user's own comment
func (s *Service) RemoveComment(ctx context.Context, userID, token, complaintID, commentID string, lang i18n.Language) error {
	if err := s.commentGate(ctx, userID, token, complaintID, lang); err != nil {
		return err
	}
	if err := s.backend.DeleteComment(ctx, token, commentID); err != nil {
		return err
	}

	s.mu.Lock()
	if detail := s.state(userID).detail; detail != nil && detail.Complaint.ID == complaintID {
		kept := detail.Comments[:0]
		for _, c := range detail.Comments {
			if c.ID != commentID {
				kept = append(kept, c)
			}
		}
		detail.Comments = kept
	}
	s.mu.Unlock()
	return nil
}

// Rate submits a 1-5 star rating. Only resolved complaints with at least
// one staff response can be rated.
func (s *Service) Rate(ctx context.Context, userID, token, complaintID string, rating int, feedback string, lang i18n.Language) (string, error) {
	if rating < 1 || rating > 5 {
		return "", common.NewBadRequestError("rating must be between 1 and 5", nil)
	}

	complaint, err := s.find(ctx, userID, token, complaintID)
	if err != nil {
		return "", err
	}
	if complaint.Status != gateway.StatusResolved {
		return "", common.NewForbiddenError(i18n.Translate("complaint.detail.rating_locked", lang))
	}

	responses, err := s.backend.ListResponses(ctx, token, complaintID)
	if err != nil {
		return "", err
	}
	if len(responses) == 0 {
		return "", common.NewForbiddenError(i18n.Translate("complaint.detail.rating_locked", lang))
	}

	if err := s.backend.SubmitRating(ctx, token, complaintID, rating, feedback); err != nil {
		return "", err
	}
	return i18n.Translate("complaint.detail.rating_sent", lang), nil
}

// Delete removes a complaint. Requires explicit confirmation and is only
// allowed while the complaint is still pending or draft.
func (s *Service) Delete(ctx context.Context, userID, token, complaintID string, confirmed bool, lang i18n.Language) (string, error) {
	if !confirmed {
		return "", common.NewBadRequestError(i18n.Translate("complaint.delete.confirm", lang), nil)
	}

	complaint, err := s.find(ctx, userID, token, complaintID)
	if err != nil {
		return "", err
	}
	if complaint.Status != gateway.StatusPending && complaint.Status != gateway.StatusDraft {
		return "", common.NewForbiddenError(i18n.Translate("complaint.delete.not_allowed", lang))
	}

	if err := s.backend.DeleteComplaint(ctx, token, complaintID); err != nil {
		return "", err
	}

	s.mu.Lock()
	st := s.state(userID)
	kept := st.collection[:0]
	for _, c := range st.collection {
		if c.ID != complaintID {
			kept = append(kept, c)
		}
	}
	st.collection = kept
	if st.detail != nil && st.detail.Complaint.ID == complaintID {
		st.detail = nil
	}
	s.mu.Unlock()

	return i18n.Translate("complaint.delete.done", lang), nil
}

// ─── Reference data ──────────────────────────────────────────────────────

// Categories fetches complaint categories localized for the given language
func (s *Service) Categories(ctx context.Context, token string, lang i18n.Language) ([]gateway.Category, error) {
	return s.backend.ListCategories(ctx, token, string(lang))
}

// Institutions fetches the institutions a complaint can target
func (s *Service) Institutions(ctx context.Context, token string) ([]gateway.Institution, error) {
	return s.backend.ListInstitutions(ctx, token)
}

// ─── Draft lifecycle ─────────────────────────────────────────────────────

// draftCopy returns a detached copy so handlers never share mutable state.
// Caller must hold s.mu.
func draftCopy(d *Draft) *Draft {
	cp := *d
	cp.Files = append([]DraftFile(nil), d.Files...)
	if d.Errors != nil {
		cp.Errors = make(map[string]string, len(d.Errors))
		for k, v := range d.Errors {
			cp.Errors[k] = v
		}
	}
	return &cp
}

// Draft returns the user's current draft
func (s *Service) Draft(userID string) *Draft {
	s.mu.Lock()
	defer s.mu.Unlock()
	return draftCopy(s.state(userID).draft)
}

// DraftUpdate carries partial field edits; nil fields are left unchanged
type DraftUpdate struct {
	Title       *string           `json:"title"`
	Description *string           `json:"description"`
	Institution *string           `json:"institution"`
	Priority    *gateway.Priority `json:"priority" validate:"omitempty,complaint_priority"`
}

// UpdateDraft applies field edits to the draft. Editing clears previous
// validation errors and failure state.
func (s *Service) UpdateDraft(userID string, update DraftUpdate) *Draft {
	s.mu.Lock()
	defer s.mu.Unlock()

	d := s.state(userID).draft
	if update.Title != nil {
		d.Title = *update.Title
	}
	if update.Description != nil {
		d.Description = *update.Description
	}
	if update.Institution != nil {
		d.Institution = *update.Institution
	}
	if update.Priority != nil {
		d.Priority = *update.Priority
	}
	d.Errors = nil
	if d.Phase == PhaseFailed || d.Phase == PhaseSuccess {
		d.Phase = PhaseEditing
		d.FailureMsg = ""
	}
	return draftCopy(d)
}

// AttachFiles adds files to the draft under the attachment policy.
// Returns the updated draft and a localized warning when anything was
// dropped for type, size, or the file cap.
func (s *Service) AttachFiles(userID string, files []DraftFile, lang i18n.Language) (*Draft, string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d := s.state(userID).draft
	accepted, rejected := s.policy.AcceptFiles(d.Files, files)
	kept := len(accepted) - len(d.Files)
	d.Files = accepted

	warning := ""
	if rejected > 0 || kept < len(files)-rejected {
		warning = i18n.Translate("complaint.form.files_rejected", lang)
	}
	return draftCopy(d), warning
}

// RemoveFile drops one attached file by position
func (s *Service) RemoveFile(userID string, index int) *Draft {
	s.mu.Lock()
	defer s.mu.Unlock()

	d := s.state(userID).draft
	if index >= 0 && index < len(d.Files) {
		d.Files = append(d.Files[:index], d.Files[index+1:]...)
	}
	return draftCopy(d)
}

// ResetDraft discards the draft and starts a fresh one
func (s *Service) ResetDraft(userID string) *Draft {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.state(userID)
	if st.confirmTimer != nil {
		st.confirmTimer.Stop()
		st.confirmTimer = nil
	}
	st.draft = NewDraft()
	return draftCopy(st.draft)
}

// validateDraft returns localized field errors, empty when the draft is
// ready to submit.
func validateDraft(d *Draft, lang i18n.Language) map[string]string {
	errs := make(map[string]string)
	if strings.TrimSpace(d.Title) == "" {
		errs["title"] = i18n.Translate("complaint.form.title_required", lang)
	}
	if strings.TrimSpace(d.Description) == "" {
		errs["description"] = i18n.Translate("complaint.form.description_required", lang)
	} else if utf8.RuneCountInString(d.Description) > maxDescriptionLength {
		errs["description"] = i18n.Translate("complaint.form.description_too_long", lang)
	}
	if strings.TrimSpace(d.Institution) == "" {
		errs["institution"] = i18n.Translate("complaint.form.institution_required", lang)
	}
	return errs
}

// SubmitDraft validates and submits the draft. Validation failures stay
// local and never reach the backend. On success the draft is cleared and
// the new complaint joins the collection; on failure the draft is kept
// intact for retry. Either outcome reverts to editing after a short
// confirmation window.
func (s *Service) SubmitDraft(ctx context.Context, userID, token string, lang i18n.Language) (*Draft, error) {
	s.mu.Lock()
	st := s.state(userID)
	d := st.draft

	if d.Phase == PhaseSubmitting {
		s.mu.Unlock()
		return nil, common.NewConflictError(i18n.Translate("complaint.form.submit_in_progress", lang))
	}

	if errs := validateDraft(d, lang); len(errs) > 0 {
		d.Errors = errs
		out := draftCopy(d)
		s.mu.Unlock()
		return out, nil
	}

	d.Errors = nil
	d.Phase = PhaseSubmitting

	payload := &gateway.NewComplaint{
		Title:       d.Title,
		Description: d.Description,
		Institution: d.Institution,
		Priority:    d.Priority,
	}
	for _, f := range d.Files {
		payload.Files = append(payload.Files, gateway.UploadFile{Name: f.Name, Content: f.Content})
	}
	s.mu.Unlock()

	created, err := s.backend.CreateComplaint(ctx, token, payload)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		logger.WithContext(ctx).Error("complaint submission failed",
			zap.String("user_id", userID),
			zap.Error(err))
		d.Phase = PhaseFailed
		d.FailureMsg = i18n.Translate("complaint.form.submit_failed", lang)
		s.scheduleRevert(st)
		return draftCopy(d), nil
	}

	st.collection = append([]gateway.Complaint{*created}, st.collection...)
	st.draft = NewDraft()
	st.draft.Phase = PhaseSuccess
	s.scheduleRevert(st)
	return draftCopy(st.draft), nil
}

// scheduleRevert flips the draft back to editing after the confirmation
// window. Caller must hold s.mu.
func (s *Service) scheduleRevert(st *userState) {
	if st.confirmTimer != nil {
		st.confirmTimer.Stop()
	}
	st.confirmTimer = time.AfterFunc(s.confirmDelay, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if st.draft.Phase == PhaseSuccess || st.draft.Phase == PhaseFailed {
			st.draft.Phase = PhaseEditing
			st.draft.FailureMsg = ""
		}
	})
}
