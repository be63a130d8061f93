package controller_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/vibast-solutions/ms-go-internship/app/controller"
	"github.com/vibast-solutions/ms-go-internship/app/entity"
	"github.com/vibast-solutions/ms-go-internship/app/middleware"
	"github.com/vibast-solutions/ms-go-internship/app/repository"
	"github.com/vibast-solutions/ms-go-internship/app/service"
	"github.com/vibast-solutions/ms-go-internship/config"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
)

const (
	findUserQuery    = `(?s)SELECT id, username, password_hash, email, role, reset_token, reset_token_expires\s+FROM users WHERE `
	listTablesQuery  = `(?s)SELECT table_name, table_rows FROM information_schema.tables WHERE table_schema = \?`
	listColumnsQuery = `(?s)SELECT column_name, data_type, is_nullable, column_key FROM information_schema.columns`
)

var userColumns = []string{"id", "username", "password_hash", "email", "role", "reset_token", "reset_token_expires"}

var sessionConfig = config.SessionConfig{
	Secret:     "test-secret",
	TTL:        time.Hour,
	CookieName: "session",
}

type testServer struct {
	e        *echo.Echo
	mock     sqlmock.Sqlmock
	sessions service.SessionService
	metrics  *middleware.Metrics
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	gw := repository.NewGateway(db, "internship_db")
	users := repository.NewUserRepository(gw)
	students := repository.NewStudentRepository(gw)
	companies := repository.NewCompanyRepository(gw)
	internships := repository.NewInternshipRepository(gw)
	applications := repository.NewApplicationRepository(gw)

	sessions := service.NewSessionService(sessionConfig)
	accounts := service.NewAccountService(users, students, companies, service.NewLogMailer(), config.PasswordPolicy{MinLength: 6})
	catalog := service.NewCatalogService(students, companies, internships, applications)
	dashboard := service.NewDashboardService(students, companies, internships, applications)
	profiles := service.NewProfileService(students, companies)
	reporting := service.NewReportingService(gw)
	metrics := middleware.NewMetrics()

	router := &controller.Router{
		Auth:      controller.NewAuthController(accounts, sessions, sessionConfig),
		Catalog:   controller.NewCatalogController(catalog),
		Pages:     controller.NewPageController(dashboard, catalog, profiles, reporting),
		Reporting: controller.NewReportingController(reporting, metrics),
		Health:    controller.NewHealthController(db),
		Sessions:  middleware.NewSessionMiddleware(sessions, sessionConfig.CookieName),
		APIKey:    middleware.NewAPIKeyMiddleware("metrics-key"),
		Metrics:   metrics,
	}

	e := echo.New()
	router.Register(e)

	return &testServer{e: e, mock: mock, sessions: sessions, metrics: metrics}
}

func (s *testServer) do(t *testing.T, method, path, body string, principal *entity.Principal) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if principal != nil {
		token, _, err := s.sessions.Issue(*principal)
		if err != nil {
			t.Fatalf("issue failed: %v", err)
		}
		req.AddCookie(&http.Cookie{Name: sessionConfig.CookieName, Value: token})
	}

	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

func (s *testServer) assertExpectations(t *testing.T) {
	t.Helper()
	if err := s.mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json body %q: %v", rec.Body.String(), err)
	}
	return body
}

func expectStatus(t *testing.T, rec *httptest.ResponseRecorder, status int) {
	t.Helper()
	if rec.Code != status {
		t.Fatalf("expected status %d, got %d: %s", status, rec.Code, rec.Body.String())
	}
}

var (
	admin   = &entity.Principal{Username: "admin", Role: entity.RoleAdmin}
	company = &entity.Principal{Username: "acme", Role: entity.RoleCompany}
	student = &entity.Principal{Username: "ann", Role: entity.RoleStudent}
)
