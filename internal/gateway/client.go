// Package gateway is the single boundary to the complaint backend REST API.
// It owns request shaping (bearer auth, multipart packaging) and response
// normalization; services above it never touch raw HTTP.
package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/campusvoice/student-portal/pkg/httpclient"
)

// Client issues typed calls against the backend
type Client struct {
	http *httpclient.Client
}

// NewClient creates a gateway client over the given HTTP client
func NewClient(http *httpclient.Client) *Client {
	return &Client{http: http}
}

func authHeaders(token string) map[string]string {
	if token == "" {
		return nil
	}
	return map[string]string{"Authorization": "Bearer " + token}
}

// ListComplaints fetches the caller's complaint collection
func (c *Client) ListComplaints(ctx context.Context, token string) ([]Complaint, error) {
	body, err := c.http.Get(ctx, "/complaints", authHeaders(token))
	if err != nil {
		return nil, fmt.Errorf("list complaints: %w", err)
	}
	return decodeCollection[Complaint](body), nil
}

// CreateComplaint submits a new complaint as multipart form data.
// Files are forwarded as attachment_0..attachment_N.
func (c *Client) CreateComplaint(ctx context.Context, token string, nc *NewComplaint) (*Complaint, error) {
	fields := map[string]string{
		"title":       nc.Title,
		"description": nc.Description,
		"institution": nc.Institution,
		"priority":    string(nc.Priority),
	}

	files := make([]httpclient.MultipartFile, 0, len(nc.Files))
	for i, f := range nc.Files {
		files = append(files, httpclient.MultipartFile{
			FieldName: fmt.Sprintf("attachment_%d", i),
			FileName:  f.Name,
			Content:   f.Content,
		})
	}

	body, err := c.http.PostMultipart(ctx, "/complaints", fields, files, authHeaders(token))
	if err != nil {
		return nil, fmt.Errorf("create complaint: %w", err)
	}

	var created Complaint
	if err := json.Unmarshal(body, &created); err != nil {
		return nil, fmt.Errorf("decode created complaint: %w", err)
	}
	return &created, nil
}

// DeleteComplaint removes a complaint
func (c *Client) DeleteComplaint(ctx context.Context, token, complaintID string) error {
	if _, err := c.http.Delete(ctx, "/complaints/"+complaintID, authHeaders(token)); err != nil {
		return fmt.Errorf("delete complaint %s: %w", complaintID, err)
	}
	return nil
}

// ListResponses fetches staff responses for a complaint
func (c *Client) ListResponses(ctx context.Context, token, complaintID string) ([]Response, error) {
	body, err := c.http.Get(ctx, "/complaints/"+complaintID+"/responses", authHeaders(token))
	if err != nil {
		return nil, fmt.Errorf("list responses: %w", err)
	}
	return decodeCollection[Response](body), nil
}

// ListComments fetches the caller's comments on a complaint
func (c *Client) ListComments(ctx context.Context, token, complaintID string) ([]Comment, error) {
	body, err := c.http.Get(ctx, "/complaints/"+complaintID+"/comments", authHeaders(token))
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	return decodeCollection[Comment](body), nil
}

// CreateComment posts a new comment
func (c *Client) CreateComment(ctx context.Context, token, complaintID, message string) (*Comment, error) {
	payload := map[string]string{
		"complaint": complaintID,
		"message":   message,
		"type":      string(CommentTypeComment),
	}
	body, err := c.http.Post(ctx, "/comments", payload, authHeaders(token))
	if err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}

	var created Comment
	if err := json.Unmarshal(body, &created); err != nil {
		return nil, fmt.Errorf("decode created comment: %w", err)
	}
	return &created, nil
}

// UpdateComment edits an existing comment's message
func (c *Client) UpdateComment(ctx context.Context, token, commentID, message string) error {
	payload := map[string]string{"message": message}
	if _, err := c.http.Patch(ctx, "/comments/"+commentID, payload, authHeaders(token)); err != nil {
		return fmt.Errorf("update comment %s: %w", commentID, err)
	}
	return nil
}

// DeleteComment removes a comment
func (c *Client) DeleteComment(ctx context.Context, token, commentID string) error {
	if _, err := c.http.Delete(ctx, "/comments/"+commentID, authHeaders(token)); err != nil {
		return fmt.Errorf("delete comment %s: %w", commentID, err)
	}
	return nil
}

// SubmitRating posts a 1-5 star rating with optional feedback text
func (c *Client) SubmitRating(ctx context.Context, token, complaintID string, rating int, feedback string) error {
	payload := map[string]interface{}{
		"rating":   rating,
		"feedback": feedback,
	}
	if _, err := c.http.Post(ctx, "/complaints/"+complaintID+"/rating", payload, authHeaders(token)); err != nil {
		return fmt.Errorf("submit rating for %s: %w", complaintID, err)
	}
	return nil
}

// ListCategories fetches category labels, localized when lang is non-empty
func (c *Client) ListCategories(ctx context.Context, token, lang string) ([]Category, error) {
	path := "/categories"
	if lang != "" {
		path += "?lang=" + lang
	}
	body, err := c.http.Get(ctx, path, authHeaders(token))
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return decodeCollection[Category](body), nil
}

// ListInstitutions fetches the institutions a complaint can target
func (c *Client) ListInstitutions(ctx context.Context, token string) ([]Institution, error) {
	body, err := c.http.Get(ctx, "/institutions", authHeaders(token))
	if err != nil {
		return nil, fmt.Errorf("list institutions: %w", err)
	}
	return decodeCollection[Institution](body), nil
}

// GetMaintenanceNotice fetches the upcoming maintenance window, if any.
// A 404 means nothing is scheduled and is not an error.
func (c *Client) GetMaintenanceNotice(ctx context.Context) (*MaintenanceNotice, error) {
	body, err := c.http.Get(ctx, "/maintenance", nil)
	if err != nil {
		var httpErr *httpclient.HTTPError
		if errors.As(err, &httpErr) && httpErr.StatusCode == http.StatusNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("get maintenance notice: %w", err)
	}

	var notice MaintenanceNotice
	if err := json.Unmarshal(body, &notice); err != nil {
		return nil, fmt.Errorf("decode maintenance notice: %w", err)
	}
	return &notice, nil
}

// ListFeedbackTemplates fetches all feedback form templates
func (c *Client) ListFeedbackTemplates(ctx context.Context) ([]FeedbackTemplate, error) {
	body, err := c.http.Get(ctx, "/feedback/templates", nil)
	if err != nil {
		return nil, fmt.Errorf("list feedback templates: %w", err)
	}
	return decodeCollection[FeedbackTemplate](body), nil
}

// SubmitFeedback posts an anonymous feedback submission
func (c *Client) SubmitFeedback(ctx context.Context, submission *FeedbackSubmission) error {
	if _, err := c.http.Post(ctx, "/feedback/responses", submission, nil); err != nil {
		return fmt.Errorf("submit feedback: %w", err)
	}
	return nil
}
