package httpclient

import (
	"context"
	"encoding/json"
	"io"
	"mime"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestNewClient(t *testing.T) {
	tests := []struct {
		name    string
		baseURL string
		timeout []time.Duration
	}{
		{
			name:    "with base URL only",
			baseURL: "https://api.example.com",
			timeout: nil,
		},
		{
			name:    "with custom timeout",
			baseURL: "https://api.example.com",
			timeout: []time.Duration{5 * time.Second},
		},
		{
			name:    "with zero timeout uses default",
			baseURL: "https://api.example.com",
			timeout: []time.Duration{0},
		},
		{
			name:    "with path in base URL",
			baseURL: "https://api.example.com/v1",
			timeout: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var client *Client
			if tt.timeout != nil {
				client = NewClient(tt.baseURL, tt.timeout...)
			} else {
				client = NewClient(tt.baseURL)
			}

			if client == nil {
				t.Fatal("NewClient returned nil")
			}
			if client.baseURL != tt.baseURL {
				t.Errorf("baseURL = %q, want %q", client.baseURL, tt.baseURL)
			}
			if client.httpClient == nil {
				t.Error("httpClient is nil")
			}
		})
	}
}

func TestClient_Get(t *testing.T) {
	tests := []struct {
		name           string
		serverHandler  http.HandlerFunc
		path           string
		headers        map[string]string
		expectedBody   string
		expectError    bool
		expectedStatus int
	}{
		{
			name: "successful GET",
			serverHandler: func(w http.ResponseWriter, r *http.Request) {
				if r.Method != http.MethodGet {
					t.Errorf("Method = %s, want GET", r.Method)
				}
				w.WriteHeader(http.StatusOK)
				w.Write([]byte(`{"message":"success"}`))
			},
			path:         "/test",
			expectedBody: `{"message":"success"}`,
		},
		{
			name: "GET with bearer header",
			serverHandler: func(w http.ResponseWriter, r *http.Request) {
				if r.Header.Get("Authorization") != "Bearer token" {
					t.Error("Authorization header not set")
				}
				w.WriteHeader(http.StatusOK)
				w.Write([]byte(`{"authenticated":true}`))
			},
			path:         "/auth",
			headers:      map[string]string{"Authorization": "Bearer token"},
			expectedBody: `{"authenticated":true}`,
		},
		{
			name: "GET returns 404",
			serverHandler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusNotFound)
				w.Write([]byte(`{"error":"not found"}`))
			},
			path:           "/notfound",
			expectError:    true,
			expectedStatus: http.StatusNotFound,
		},
		{
			name: "GET returns 500",
			serverHandler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
				w.Write([]byte(`{"error":"server error"}`))
			},
			path:           "/error",
			expectError:    true,
			expectedStatus: http.StatusInternalServerError,
		},
		{
			name: "GET returns empty body",
			serverHandler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusNoContent)
			},
			path: "/empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.serverHandler)
			defer server.Close()

			client := NewClient(server.URL)
			body, err := client.Get(context.Background(), tt.path, tt.headers)

			if tt.expectError {
				if err == nil {
					t.Error("Expected error but got nil")
				}
				if httpErr, ok := err.(*HTTPError); ok {
					if httpErr.StatusCode != tt.expectedStatus {
						t.Errorf("StatusCode = %d, want %d", httpErr.StatusCode, tt.expectedStatus)
					}
				}
			} else {
				if err != nil {
					t.Errorf("Unexpected error: %v", err)
				}
				if tt.expectedBody != "" && string(body) != tt.expectedBody {
					t.Errorf("Body = %s, want %s", string(body), tt.expectedBody)
				}
			}
		})
	}
}

func TestClient_Post(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("Method = %s, want POST", r.Method)
		}
		if r.Header.Get("Content-Type") != "application/json" {
			t.Error("Content-Type should be application/json")
		}
		body, _ := io.ReadAll(r.Body)
		var data map[string]string
		json.Unmarshal(body, &data)
		if data["title"] != "broken projector" {
			t.Errorf("Body title = %s, want broken projector", data["title"])
		}
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":"123"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	body, err := client.Post(context.Background(), "/complaints", map[string]string{"title": "broken projector"}, nil)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if string(body) != `{"id":"123"}` {
		t.Errorf("Body = %s, want {\"id\":\"123\"}", string(body))
	}
}

func TestClient_Post_NilBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		if len(body) != 0 {
			t.Error("Body should be empty")
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"success":true}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	if _, err := client.Post(context.Background(), "/empty", nil, nil); err != nil {
		t.Errorf("Unexpected error: %v", err)
	}
}

func TestClient_Patch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPatch {
			t.Errorf("Method = %s, want PATCH", r.Method)
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"updated":true}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	body, err := client.Patch(context.Background(), "/comments/1", map[string]string{"message": "edited"}, nil)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !strings.Contains(string(body), "updated") {
		t.Errorf("Body = %s, want updated response", string(body))
	}
}

func TestClient_Delete(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			t.Errorf("Method = %s, want DELETE", r.Method)
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	if _, err := client.Delete(context.Background(), "/complaints/1", nil); err != nil {
		t.Errorf("Unexpected error: %v", err)
	}
}

func TestClient_PostMultipart(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
		if err != nil || mediaType != "multipart/form-data" {
			t.Errorf("Content-Type = %s, want multipart/form-data", r.Header.Get("Content-Type"))
		}
		if err := r.ParseMultipartForm(10 << 20); err != nil {
			t.Fatalf("ParseMultipartForm: %v", err)
		}
		if r.FormValue("title") != "leaky roof" {
			t.Errorf("title = %s, want leaky roof", r.FormValue("title"))
		}
		file, header, err := r.FormFile("attachment_0")
		if err != nil {
			t.Fatalf("FormFile: %v", err)
		}
		defer file.Close()
		if header.Filename != "photo.png" {
			t.Errorf("Filename = %s, want photo.png", header.Filename)
		}
		content, _ := io.ReadAll(file)
		if string(content) != "png-bytes" {
			t.Errorf("Content = %s, want png-bytes", content)
		}
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":"7"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	body, err := client.PostMultipart(context.Background(), "/complaints",
		map[string]string{"title": "leaky roof"},
		[]MultipartFile{{FieldName: "attachment_0", FileName: "photo.png", Content: []byte("png-bytes")}},
		nil)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if string(body) != `{"id":"7"}` {
		t.Errorf("Body = %s, want {\"id\":\"7\"}", string(body))
	}
}

func TestHTTPError(t *testing.T) {
	tests := []struct {
		name           string
		statusCode     int
		body           string
		expectedString string
	}{
		{
			name:           "404 error",
			statusCode:     404,
			body:           "not found",
			expectedString: "HTTP 404: not found",
		},
		{
			name:           "400 with JSON body",
			statusCode:     400,
			body:           `{"error":"bad request"}`,
			expectedString: `HTTP 400: {"error":"bad request"}`,
		},
		{
			name:           "empty body",
			statusCode:     503,
			body:           "",
			expectedString: "HTTP 503: ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := &HTTPError{
				StatusCode: tt.statusCode,
				Body:       tt.body,
			}

			if err.Error() != tt.expectedString {
				t.Errorf("Error() = %s, want %s", err.Error(), tt.expectedString)
			}
		})
	}
}

func TestClient_ContextCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(5 * time.Second)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewClient(server.URL, 10*time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	_, err := client.Get(ctx, "/slow", nil)

	if err == nil {
		t.Error("Expected error due to context cancellation")
	}
}

func TestClient_InvalidURL(t *testing.T) {
	client := NewClient("http://invalid-host-that-does-not-exist.local")

	_, err := client.Get(context.Background(), "/test", nil)
	if err == nil {
		t.Error("Expected error for invalid URL")
	}
}
