package api

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
)

func TestNewClient(t *testing.T) {
	t.Run("creates client with correct base URL", func(t *testing.T) {
		client := NewClient("http://localhost:8080/", "test-token")
		if client.BaseURL != "http://localhost:8080/api" {
			t.Errorf("expected BaseURL 'http://localhost:8080/api', got %s", client.BaseURL)
		}
		if client.Token != "test-token" {
			t.Errorf("expected Token 'test-token', got %s", client.Token)
		}
	})

	t.Run("removes trailing slash from base URL", func(t *testing.T) {
		client := NewClient("http://example.com///", "")
		if client.BaseURL != "http://example.com/api" {
			t.Errorf("expected BaseURL 'http://example.com/api', got %s", client.BaseURL)
		}
	})

	t.Run("sets default HTTP client timeout", func(t *testing.T) {
		client := NewClient("http://localhost:8080", "")
		if client.HTTPClient == nil {
			t.Fatal("expected HTTPClient to be set")
		}
		if client.HTTPClient.Timeout == 0 {
			t.Error("expected HTTPClient to have a timeout set")
		}
	})
}

func TestAPIError(t *testing.T) {
	err := &APIError{Status: 404, Message: "not found"}
	expected := "api: 404 — not found"
	if err.Error() != expected {
		t.Errorf("expected error message %q, got %q", expected, err.Error())
	}
}

func TestClient_Get(t *testing.T) {
	t.Run("sends auth and accept headers", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet {
				t.Errorf("expected GET request, got %s", r.Method)
			}
			if r.Header.Get("Authorization") != "Bearer test-token" {
				t.Errorf("expected Authorization header 'Bearer test-token', got %s", r.Header.Get("Authorization"))
			}
			if r.Header.Get("Accept") != "application/json" {
				t.Errorf("expected Accept header 'application/json', got %s", r.Header.Get("Accept"))
			}
			_ = json.NewEncoder(w).Encode(map[string]string{"message": "ok"})
		}))
		defer server.Close()

		client := NewClient(server.URL, "test-token")
		var result map[string]string
		if err := client.Get("/test", nil, &result); err != nil {
			t.Fatalf("Get() returned error: %v", err)
		}
		if result["message"] != "ok" {
			t.Errorf("expected decoded message, got %+v", result)
		}
	})

	t.Run("appends query parameters", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Query().Get("folderId") != "abc" {
				t.Errorf("expected folderId=abc, got %s", r.URL.Query().Get("folderId"))
			}
			_ = json.NewEncoder(w).Encode(map[string]string{})
		}))
		defer server.Close()

		client := NewClient(server.URL, "")
		var result map[string]string
		if err := client.Get("/test", url.Values{"folderId": {"abc"}}, &result); err != nil {
			t.Fatalf("Get() returned error: %v", err)
		}
	})

	t.Run("returns APIError with server message on non-2xx status", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusConflict)
			_ = json.NewEncoder(w).Encode(map[string]any{"success": false, "error": "a folder with this name already exists in this location"})
		}))
		defer server.Close()

		client := NewClient(server.URL, "")
		err := client.Get("/test", nil, nil)
		apiErr, ok := err.(*APIError)
		if !ok {
			t.Fatalf("expected APIError, got %T (%v)", err, err)
		}
		if apiErr.Status != http.StatusConflict {
			t.Errorf("expected status 409, got %d", apiErr.Status)
		}
		if apiErr.Message != "a folder with this name already exists in this location" {
			t.Errorf("unexpected message %q", apiErr.Message)
		}
	})
}

func TestClient_Patch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPatch {
			t.Errorf("expected PATCH request, got %s", r.Method)
		}
		if r.Header.Get("Content-Type") != "application/json" {
			t.Errorf("expected JSON content type, got %s", r.Header.Get("Content-Type"))
		}
		raw, _ := io.ReadAll(r.Body)
		var body map[string]string
		if err := json.Unmarshal(raw, &body); err != nil || body["name"] != "renamed" {
			t.Errorf("unexpected body %q", string(raw))
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"success": true})
	}))
	defer server.Close()

	client := NewClient(server.URL, "token")
	if err := client.Patch("/files", map[string]string{"name": "renamed"}, nil); err != nil {
		t.Fatalf("Patch() returned error: %v", err)
	}
}

func TestClient_Delete(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			t.Errorf("expected DELETE request, got %s", r.Method)
		}
		if r.URL.Query().Get("fileId") != "xyz" {
			t.Errorf("expected fileId=xyz, got %s", r.URL.Query().Get("fileId"))
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"success": true})
	}))
	defer server.Close()

	client := NewClient(server.URL, "token")
	if err := client.Delete("/files", url.Values{"fileId": {"xyz"}}, nil); err != nil {
		t.Fatalf("Delete() returned error: %v", err)
	}
}
