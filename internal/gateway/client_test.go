package gateway

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusvoice/student-portal/pkg/httpclient"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(httpclient.NewClient(server.URL, 5*time.Second))
}

func TestListComplaints_BareArray(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/complaints", r.URL.Path)
		assert.Equal(t, "Bearer tok-1", r.Header.Get("Authorization"))
		w.Write([]byte(`[{"id":"c1","title":"wifi down","status":"pending","priority":"high"}]`))
	})

	complaints, err := client.ListComplaints(context.Background(), "tok-1")
	require.NoError(t, err)
	require.Len(t, complaints, 1)
	assert.Equal(t, "c1", complaints[0].ID)
	assert.Equal(t, StatusPending, complaints[0].Status)
	assert.Equal(t, PriorityHigh, complaints[0].Priority)
}

func TestListComplaints_ResultsEnvelope(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"results":[{"id":"c1"},{"id":"c2"}]}`))
	})

	complaints, err := client.ListComplaints(context.Background(), "tok-1")
	require.NoError(t, err)
	assert.Len(t, complaints, 2)
}

func TestListComplaints_MalformedBodyDegradesToEmpty(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"unexpected":"shape"}`))
	})

	complaints, err := client.ListComplaints(context.Background(), "tok-1")
	require.NoError(t, err)
	assert.Empty(t, complaints)
}

func TestListComplaints_BackendError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := client.ListComplaints(context.Background(), "tok-1")
	require.Error(t, err)
}

func TestCreateComplaint_MultipartPayload(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(16<<20))
		assert.Equal(t, "library noise", r.FormValue("title"))
		assert.Equal(t, "too loud at night", r.FormValue("description"))
		assert.Equal(t, "inst-1", r.FormValue("institution"))
		assert.Equal(t, "medium", r.FormValue("priority"))

		file0, header0, err := r.FormFile("attachment_0")
		require.NoError(t, err)
		defer file0.Close()
		assert.Equal(t, "photo.jpg", header0.Filename)
		content, _ := io.ReadAll(file0)
		assert.Equal(t, "jpeg-bytes", string(content))

		_, _, err = r.FormFile("attachment_1")
		require.NoError(t, err)

		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":"c9","title":"library noise","status":"pending"}`))
	})

	created, err := client.CreateComplaint(context.Background(), "tok-1", &NewComplaint{
		Title:       "library noise",
		Description: "too loud at night",
		Institution: "inst-1",
		Priority:    PriorityMedium,
		Files: []UploadFile{
			{Name: "photo.jpg", Content: []byte("jpeg-bytes")},
			{Name: "notes.pdf", Content: []byte("pdf-bytes")},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "c9", created.ID)
}

func TestDeleteComplaint(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/complaints/c3", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	})

	require.NoError(t, client.DeleteComplaint(context.Background(), "tok-1", "c3"))
}

func TestListResponsesAndComments(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/complaints/c1/responses":
			w.Write([]byte(`{"results":[{"id":"r1","message":"we are on it"}]}`))
		case "/complaints/c1/comments":
			w.Write([]byte(`[{"id":"m1","message":"thanks","type":"comment"}]`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})

	responses, err := client.ListResponses(context.Background(), "tok-1", "c1")
	require.NoError(t, err)
	require.Len(t, responses, 1)
	assert.Equal(t, "we are on it", responses[0].Message)

	comments, err := client.ListComments(context.Background(), "tok-1", "c1")
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, CommentTypeComment, comments[0].Type)
}

func TestCommentLifecycle(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/comments":
			w.WriteHeader(http.StatusCreated)
			w.Write([]byte(`{"id":"m2","message":"any update?","type":"comment"}`))
		case r.Method == http.MethodPatch && r.URL.Path == "/comments/m2":
			w.Write([]byte(`{"id":"m2","message":"any news?"}`))
		case r.Method == http.MethodDelete && r.URL.Path == "/comments/m2":
			w.WriteHeader(http.StatusNoContent)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})

	ctx := context.Background()
	created, err := client.CreateComment(ctx, "tok-1", "c1", "any update?")
	require.NoError(t, err)
	assert.Equal(t, "m2", created.ID)

	require.NoError(t, client.UpdateComment(ctx, "tok-1", "m2", "any news?"))
	require.NoError(t, client.DeleteComment(ctx, "tok-1", "m2"))
}

func TestSubmitRating(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/complaints/c1/rating", r.URL.Path)
		body, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"rating":4,"feedback":"handled well"}`, string(body))
		w.WriteHeader(http.StatusCreated)
	})

	require.NoError(t, client.SubmitRating(context.Background(), "tok-1", "c1", 4, "handled well"))
}

func TestListCategories_LangQuery(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "am", r.URL.Query().Get("lang"))
		w.Write([]byte(`[{"id":"cat1","name":"የመማሪያ ክፍል"}]`))
	})

	categories, err := client.ListCategories(context.Background(), "tok-1", "am")
	require.NoError(t, err)
	require.Len(t, categories, 1)
}

func TestGetMaintenanceNotice(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/maintenance", r.URL.Path)
		w.Write([]byte(`{"scheduled_time":"2026-09-01T02:00:00Z","message":"db upgrade"}`))
	})

	notice, err := client.GetMaintenanceNotice(context.Background())
	require.NoError(t, err)
	require.NotNil(t, notice)
	assert.Equal(t, "db upgrade", notice.Message)
	assert.Equal(t, time.Date(2026, 9, 1, 2, 0, 0, 0, time.UTC), notice.ScheduledTime.UTC())
}

func TestGetMaintenanceNotice_NoneScheduled(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	notice, err := client.GetMaintenanceNotice(context.Background())
	require.NoError(t, err)
	assert.Nil(t, notice)
}

func TestListFeedbackTemplates(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/feedback/templates", r.URL.Path)
		w.Write([]byte(`{"results":[{"id":"t1","status":"active","fields":[{"id":"f1","type":"rating","is_required":true}]}]}`))
	})

	templates, err := client.ListFeedbackTemplates(context.Background())
	require.NoError(t, err)
	require.Len(t, templates, 1)
	assert.Equal(t, TemplateActive, templates[0].Status)
	require.Len(t, templates[0].Fields, 1)
	assert.True(t, templates[0].Fields[0].IsRequired)
}

func TestSubmitFeedback(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"template":"t1","answers":[{"field":"f1","value":5}]}`, string(body))
		w.WriteHeader(http.StatusCreated)
	})

	err := client.SubmitFeedback(context.Background(), &FeedbackSubmission{
		TemplateID: "t1",
		Answers:    []FeedbackAnswer{{FieldID: "f1", Value: 5}},
	})
	require.NoError(t, err)
}
