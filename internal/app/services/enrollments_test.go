package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"

	"github.com/classlens/admin-panel/internal/classlens"
	"github.com/classlens/admin-panel/internal/config"
	"github.com/classlens/admin-panel/internal/pkg/apperrors"
)

func serviceClient(t *testing.T, handler http.Handler) *classlens.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := &config.Config{}
	cfg.Backend.BaseURL = srv.URL
	cfg.Backend.Timeout = "5s"
	cfg.Students.PageSize = 25

	return classlens.NewClient(cfg, zerolog.Nop())
}

func TestEnrollmentSaveKeepsStoredPRNOnUpdate(t *testing.T) {
	var updateBody map[string]interface{}
	api := serviceClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet:
			fmt.Fprint(w, `{"id": 4, "student_prn": "2021001", "subject": 9}`)
		case r.Method == http.MethodPut:
			if err := json.NewDecoder(r.Body).Decode(&updateBody); err != nil {
				t.Errorf("bad update body: %v", err)
			}
			fmt.Fprint(w, `{}`)
		default:
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
	}))

	svc := NewEnrollmentService(api)
	form := EnrollmentForm{StudentPRN: "9999999", Subject: "12"}
	if err := svc.Save(context.Background(), "tok", "4", form); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	prn, ok := updateBody["student_prn"].(float64)
	if !ok || int64(prn) != 2021001 {
		t.Fatalf("update must carry the stored PRN, got %v", updateBody["student_prn"])
	}
	subject, ok := updateBody["subject"].(float64)
	if !ok || int64(subject) != 12 {
		t.Fatalf("update must carry the new subject, got %v", updateBody["subject"])
	}
}

func TestAdminUserSaveRequiresPasswordOnCreate(t *testing.T) {
	api := serviceClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request should reach the backend")
	}))

	svc := NewAdminUserService(api)
	err := svc.Save(context.Background(), "tok", "", AdminUserForm{Username: "root"})
	if !errors.Is(err, apperrors.ErrValidationFailed) {
		t.Fatalf("expected validation failure, got %v", err)
	}
}
