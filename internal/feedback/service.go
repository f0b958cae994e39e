// Package feedback serves anonymous feedback forms: office-published
// templates are listed, answers are validated against each field's type,
// and submissions are forwarded without any user identity attached.
package feedback

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/campusvoice/student-portal/internal/gateway"
	"github.com/campusvoice/student-portal/pkg/common"
	"github.com/campusvoice/student-portal/pkg/httpclient"
	"github.com/campusvoice/student-portal/pkg/i18n"
	"github.com/campusvoice/student-portal/pkg/logger"
)

// Backend is the slice of the gateway this service needs
type Backend interface {
	ListFeedbackTemplates(ctx context.Context) ([]gateway.FeedbackTemplate, error)
	SubmitFeedback(ctx context.Context, submission *gateway.FeedbackSubmission) error
}

// Service validates and forwards anonymous feedback
type Service struct {
	backend Backend
}

// NewService creates a feedback service
func NewService(backend Backend) *Service {
	return &Service{backend: backend}
}

// ListActiveTemplates returns only templates currently accepting responses
func (s *Service) ListActiveTemplates(ctx context.Context) ([]gateway.FeedbackTemplate, error) {
	templates, err := s.backend.ListFeedbackTemplates(ctx)
	if err != nil {
		return nil, err
	}

	active := make([]gateway.FeedbackTemplate, 0, len(templates))
	for _, t := range templates {
		if t.Status == gateway.TemplateActive {
			active = append(active, t)
		}
	}
	return active, nil
}

// findTemplate locates an active template by ID
func (s *Service) findTemplate(ctx context.Context, templateID string) (*gateway.FeedbackTemplate, error) {
	templates, err := s.ListActiveTemplates(ctx)
	if err != nil {
		return nil, err
	}
	for i := range templates {
		if templates[i].ID == templateID {
			return &templates[i], nil
		}
	}
	return nil, common.NewNotFoundError("feedback form not found", nil)
}

// Submit validates the answers against the template's fields and forwards
// the submission anonymously. Field errors are returned localized, keyed
// by field ID; they never reach the backend.
func (s *Service) Submit(ctx context.Context, templateID string, answers map[string]interface{}, lang i18n.Language) (map[string]string, string, error) {
	template, err := s.findTemplate(ctx, templateID)
	if err != nil {
		return nil, "", err
	}

	fieldErrs := make(map[string]string)
	submission := &gateway.FeedbackSubmission{TemplateID: templateID}

	for _, field := range template.Fields {
		raw, present := answers[field.ID]
		if !present {
			if field.IsRequired {
				fieldErrs[field.ID] = i18n.Translate("feedback.form.required_field", lang)
			}
			continue
		}

		value, err := validateValue(field, raw)
		if err != nil {
			fieldErrs[field.ID] = i18n.Translate("feedback.form.invalid_value", lang)
			continue
		}

		fieldType, _ := ParseFieldType(field.Type)
		if !answered(fieldType, value) {
			if field.IsRequired {
				fieldErrs[field.ID] = i18n.Translate("feedback.form.required_field", lang)
			}
			continue
		}

		submission.Answers = append(submission.Answers, gateway.FeedbackAnswer{
			FieldID: field.ID,
			Value:   value,
		})
	}

	if len(fieldErrs) > 0 {
		return fieldErrs, "", nil
	}

	if err := s.backend.SubmitFeedback(ctx, submission); err != nil {
		logger.WithContext(ctx).Error("feedback submission failed",
			zap.String("template_id", templateID),
			zap.Error(err))
		if code, msg := backendMessage(err); msg != "" {
			return nil, "", &common.AppError{Code: code, Message: msg, Err: err}
		}
		return nil, "", common.NewInternalServerError(i18n.Translate("feedback.form.submit_failed", lang))
	}

	return nil, i18n.Translate("feedback.form.submitted", lang), nil
}

// backendMessage pulls the message out of a non-2xx backend reply so it can
// be shown to the student as-is. Bodies arrive either as plain text or as an
// `{"error": "..."}`-style envelope; anything else falls back to the
// localized generic message at the call site.
func backendMessage(err error) (int, string) {
	var httpErr *httpclient.HTTPError
	if !errors.As(err, &httpErr) {
		return 0, ""
	}

	body := strings.TrimSpace(httpErr.Body)
	var envelope struct {
		Error   string `json:"error"`
		Message string `json:"message"`
		Detail  string `json:"detail"`
	}
	if json.Unmarshal([]byte(body), &envelope) == nil {
		for _, msg := range []string{envelope.Error, envelope.Message, envelope.Detail} {
			if msg != "" {
				return httpErr.StatusCode, msg
			}
		}
	}
	return httpErr.StatusCode, body
}
