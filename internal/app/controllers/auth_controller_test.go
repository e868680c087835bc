package controllers_test

import (
	"fmt"
	"html/template"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/classlens/admin-panel/internal/app/controllers"
	"github.com/classlens/admin-panel/internal/app/routes"
	"github.com/classlens/admin-panel/internal/app/services"
	"github.com/classlens/admin-panel/internal/classlens"
	"github.com/classlens/admin-panel/internal/config"
	"github.com/classlens/admin-panel/internal/middleware"
	"github.com/classlens/admin-panel/internal/pkg/session"
	"github.com/classlens/admin-panel/internal/web"
)

// testPanel wires a full router against a fake backend, the way bootstrap
// does in production.
func testPanel(t *testing.T, backend http.Handler) (*gin.Engine, *session.Manager) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	srv := httptest.NewServer(backend)
	t.Cleanup(srv.Close)

	cfg := &config.Config{}
	cfg.Backend.BaseURL = srv.URL
	cfg.Backend.Timeout = "5s"
	cfg.Students.PageSize = 25

	lgr := zerolog.Nop()
	api := classlens.NewClient(cfg, lgr)
	sessions := session.NewManager("sid", "", 12*time.Hour, lgr)

	router := gin.New()
	tmpl, err := template.ParseFS(web.Templates, "templates/*.html")
	if err != nil {
		t.Fatalf("template parse failed: %v", err)
	}
	router.SetHTMLTemplate(tmpl)

	routes.SetupRouter(router,
		controllers.NewAuthController(api, sessions, lgr),
		controllers.NewOverviewController(api, sessions, lgr),
		controllers.NewStudentController(services.NewStudentService(api), sessions, lgr),
		controllers.NewTeacherController(services.NewTeacherService(api), sessions, lgr),
		controllers.NewSubjectController(services.NewSubjectService(api), sessions, lgr),
		controllers.NewMappingController(services.NewMappingService(api), sessions, lgr),
		controllers.NewEnrollmentController(services.NewEnrollmentService(api), sessions, lgr),
		controllers.NewAdminUserController(services.NewAdminUserService(api), sessions, lgr),
		controllers.NewBulkController(services.NewBulkService(api), sessions, 900*time.Millisecond, lgr),
		middleware.NewAuthMiddleware(sessions),
	)
	return router, sessions
}

func TestDashboardRedirectsWithoutSession(t *testing.T) {
	router, _ := testPanel(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no backend call expected")
	}))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/students", nil))

	if rec.Code != http.StatusFound || rec.Header().Get("Location") != "/login" {
		t.Fatalf("expected redirect to /login, got %d %q", rec.Code, rec.Header().Get("Location"))
	}
}

func TestLoginCreatesSessionAndRedirects(t *testing.T) {
	router, sessions := testPanel(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"access": "tok123", "refresh": "ref456", "username": "root"}`)
	}))

	form := url.Values{"username": {"root"}, "password": {"secret"}}
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusFound || rec.Header().Get("Location") != "/" {
		t.Fatalf("expected redirect to /, got %d %q", rec.Code, rec.Header().Get("Location"))
	}
	if sessions.Count() != 1 {
		t.Fatalf("expected one session, got %d", sessions.Count())
	}
	cookies := rec.Result().Cookies()
	if len(cookies) == 0 || cookies[0].Name != "sid" || cookies[0].Value == "" {
		t.Fatalf("expected session cookie, got %v", cookies)
	}
}

func TestLoginFailureRendersMessage(t *testing.T) {
	router, sessions := testPanel(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"detail": "Invalid credentials"}`)
	}))

	form := url.Values{"username": {"root"}, "password": {"wrong"}}
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected the login page again, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Invalid credentials") {
		t.Fatal("expected the backend detail on the page")
	}
	if sessions.Count() != 0 {
		t.Fatalf("no session should exist, got %d", sessions.Count())
	}
}

func TestBackendUnauthorizedClearsSession(t *testing.T) {
	router, sessions := testPanel(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"detail": "Token expired"}`)
	}))

	sess := sessions.Create("root", "stale-token", "")
	req := httptest.NewRequest(http.MethodGet, "/teachers", nil)
	req.AddCookie(&http.Cookie{Name: "sid", Value: sess.ID})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusFound || rec.Header().Get("Location") != "/login" {
		t.Fatalf("expected redirect to /login, got %d %q", rec.Code, rec.Header().Get("Location"))
	}
	if sessions.Count() != 0 {
		t.Fatalf("session should be cleared after backend 401, got %d", sessions.Count())
	}
}

func TestLogoutDeletesSession(t *testing.T) {
	router, sessions := testPanel(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{}`)
	}))

	sess := sessions.Create("root", "tok", "")
	req := httptest.NewRequest(http.MethodGet, "/logout", nil)
	req.AddCookie(&http.Cookie{Name: "sid", Value: sess.ID})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusFound || rec.Header().Get("Location") != "/login" {
		t.Fatalf("expected redirect to /login, got %d %q", rec.Code, rec.Header().Get("Location"))
	}
	if sessions.Count() != 0 {
		t.Fatalf("session should be gone, got %d", sessions.Count())
	}
}

func TestStudentsPageRenders(t *testing.T) {
	router, sessions := testPanel(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/admin/students/":
			fmt.Fprint(w, `{"count": 1, "results": [{"id": 1, "name": "Alice Johnson", "email": "alice@example.com", "prn": "2021001", "year": "2", "department_name": "Computer Science"}]}`)
		case "/api/getDepartments/":
			fmt.Fprint(w, `[{"id": 3, "name": "Computer Science"}]`)
		default:
			t.Errorf("unexpected backend call %s", r.URL.Path)
		}
	}))

	sess := sessions.Create("root", "tok", "")
	req := httptest.NewRequest(http.MethodGet, "/students", nil)
	req.AddCookie(&http.Cookie{Name: "sid", Value: sess.ID})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{"Alice Johnson", "2021001", "Computer Science"} {
		if !strings.Contains(body, want) {
			t.Fatalf("page missing %q", want)
		}
	}
}

func TestBulkPanelRejectsUnknownType(t *testing.T) {
	router, sessions := testPanel(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{}`)
	}))

	sess := sessions.Create("root", "tok", "")
	req := httptest.NewRequest(http.MethodGet, "/bulk/faculties", nil)
	req.AddCookie(&http.Cookie{Name: "sid", Value: sess.ID})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusFound {
		t.Fatalf("expected redirect for unknown type, got %d", rec.Code)
	}
	if !strings.Contains(rec.Header().Get("Location"), "Unknown") {
		t.Fatalf("expected flash message, got %q", rec.Header().Get("Location"))
	}
}
