package classlens

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/classlens/admin-panel/internal/config"
	"github.com/classlens/admin-panel/internal/pkg/apperrors"
)

func testClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := &config.Config{}
	cfg.Backend.BaseURL = srv.URL
	cfg.Backend.Timeout = "5s"
	cfg.Students.PageSize = 25

	return NewClient(cfg, zerolog.Nop()), srv
}

func TestLoginSuccess(t *testing.T) {
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/admin/login/" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"access": "tok123", "refresh": "ref456"}`)
	}))

	result, err := client.Login(context.Background(), "root", "secret")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Access != "tok123" || result.Refresh != "ref456" {
		t.Fatalf("unexpected tokens: %+v", result)
	}
	if result.Username != "root" {
		t.Fatalf("expected username fallback, got %q", result.Username)
	}
}

func TestLoginMissingAccessToken(t *testing.T) {
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"detail": "ok but no token"}`)
	}))

	_, err := client.Login(context.Background(), "root", "secret")
	if err == nil || !strings.Contains(err.Error(), "no access token received from server") {
		t.Fatalf("expected missing token error, got %v", err)
	}
}

func TestLoginInvalidCredentials(t *testing.T) {
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"detail": "Invalid credentials"}`)
	}))

	_, err := client.Login(context.Background(), "root", "wrong")
	if !errors.Is(err, apperrors.ErrUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
	var apiErr *apperrors.APIError
	if !errors.As(err, &apiErr) || apiErr.Detail != "Invalid credentials" {
		t.Fatalf("expected detail preserved, got %v", err)
	}
}

func TestBearerTokenAttached(t *testing.T) {
	var got string
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("Authorization")
		fmt.Fprint(w, `[]`)
	}))

	if _, err := client.Teachers(context.Background(), "tok123"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "Bearer tok123" {
		t.Fatalf("expected bearer header, got %q", got)
	}
}

func TestStudentsPagination(t *testing.T) {
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("page") != "2" {
			t.Errorf("expected page=2, got %q", r.URL.Query().Get("page"))
		}
		fmt.Fprint(w, `{"count": 30, "results": [{"id": 26, "name": "Zed"}]}`)
	}))

	page, err := client.Students(context.Background(), "tok", 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if page.Count != 30 || page.Page != 2 {
		t.Fatalf("unexpected page meta: %+v", page)
	}
	if page.TotalPages != 2 {
		t.Fatalf("30 items at size 25 should be 2 pages, got %d", page.TotalPages)
	}
}

func TestStudentsEmptyListIsOnePage(t *testing.T) {
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"count": 0, "results": []}`)
	}))

	page, err := client.Students(context.Background(), "tok", 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if page.TotalPages != 1 {
		t.Fatalf("empty list should still report one page, got %d", page.TotalPages)
	}
}

func TestCreateUsesPostAndUpdateUsesPut(t *testing.T) {
	var methods []string
	var paths []string
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		methods = append(methods, r.Method)
		paths = append(paths, r.URL.Path)
		fmt.Fprint(w, `{}`)
	}))

	payload := map[string]interface{}{"name": "Alice"}
	if err := client.CreateStudent(context.Background(), "tok", payload); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if err := client.UpdateStudent(context.Background(), "tok", "7", payload); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	if methods[0] != http.MethodPost || paths[0] != "/api/admin/students/" {
		t.Fatalf("create: %s %s", methods[0], paths[0])
	}
	if methods[1] != http.MethodPut || paths[1] != "/api/admin/students/7/" {
		t.Fatalf("update: %s %s", methods[1], paths[1])
	}
}

func TestDeleteErrors(t *testing.T) {
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.URL.Path, "/missing/") {
			w.WriteHeader(http.StatusNotFound)
			fmt.Fprint(w, `{"detail": "Not found."}`)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}))

	if err := client.Delete(context.Background(), "tok", ResourceSubjects, "9"); err != nil {
		t.Fatalf("expected 204 to succeed: %v", err)
	}

	err := client.Delete(context.Background(), "tok", ResourceSubjects, "missing")
	if !errors.Is(err, apperrors.ErrResourceNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestTransportFailureIsBackendUnavailable(t *testing.T) {
	cfg := &config.Config{}
	cfg.Backend.BaseURL = "http://127.0.0.1:1"
	cfg.Backend.Timeout = "200ms"
	cfg.Students.PageSize = 25
	client := NewClient(cfg, zerolog.Nop())

	_, err := client.Teachers(context.Background(), "tok")
	if !errors.Is(err, apperrors.ErrBackendUnavailable) {
		t.Fatalf("expected backend unavailable, got %v", err)
	}
}
