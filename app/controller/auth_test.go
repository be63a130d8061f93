package controller_test

import (
	"net/http"
	"testing"

	"github.com/vibast-solutions/ms-go-internship/app/service"

	"github.com/DATA-DOG/go-sqlmock"
	"golang.org/x/crypto/bcrypt"
)

func TestLogin_SetsSessionCookie(t *testing.T) {
	srv := newTestServer(t)

	hash, err := bcrypt.GenerateFromPassword([]byte("secret1"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	srv.mock.ExpectQuery(findUserQuery+`username = \?`).
		WithArgs("acme").
		WillReturnRows(sqlmock.NewRows(userColumns).AddRow(uint64(3), "acme", string(hash), "hr@acme.io", "company", nil, nil))

	rec := srv.do(t, http.MethodPost, "/login", `{"username":"acme","password":"secret1"}`, nil)
	expectStatus(t, rec, http.StatusOK)

	body := decodeBody(t, rec)
	if body["status"] != "ok" || body["username"] != "acme" || body["role"] != "company" {
		t.Fatalf("unexpected body: %v", body)
	}

	var token string
	for _, c := range rec.Result().Cookies() {
		if c.Name == sessionConfig.CookieName {
			token = c.Value
			if !c.HttpOnly {
				t.Fatalf("session cookie must be HttpOnly")
			}
		}
	}
	principal, err := srv.sessions.Parse(token)
	if err != nil {
		t.Fatalf("cookie does not hold a valid session: %v", err)
	}
	if principal.Username != "acme" {
		t.Fatalf("unexpected principal: %+v", principal)
	}
	srv.assertExpectations(t)
}

func TestLogin_InvalidCredentialsIsGeneric(t *testing.T) {
	srv := newTestServer(t)

	srv.mock.ExpectQuery(findUserQuery+`username = \?`).
		WithArgs("ghost").
		WillReturnRows(sqlmock.NewRows(userColumns))

	rec := srv.do(t, http.MethodPost, "/login", `{"username":"ghost","password":"whatever"}`, nil)
	expectStatus(t, rec, http.StatusUnauthorized)
	if body := decodeBody(t, rec); body["status"] != "error" || body["message"] != "invalid credentials" {
		t.Fatalf("unexpected body: %v", body)
	}
	if len(rec.Result().Cookies()) != 0 {
		t.Fatalf("failed login must not set a cookie")
	}
	srv.assertExpectations(t)
}

func TestLogin_MissingFields(t *testing.T) {
	srv := newTestServer(t)

	rec := srv.do(t, http.MethodPost, "/login", `{"username":"acme"}`, nil)
	expectStatus(t, rec, http.StatusBadRequest)
	if body := decodeBody(t, rec); body["message"] != "username and password required" {
		t.Fatalf("unexpected body: %v", body)
	}
}

func TestRegister_CreatesUserAndProfile(t *testing.T) {
	srv := newTestServer(t)

	srv.mock.ExpectQuery(findUserQuery+`username = \?`).WithArgs("ann").WillReturnRows(sqlmock.NewRows(userColumns))
	srv.mock.ExpectQuery(findUserQuery+`email = \?`).WithArgs("ann@uni.edu").WillReturnRows(sqlmock.NewRows(userColumns))
	srv.mock.ExpectExec(`INSERT INTO users \(username, password_hash, email, role\)`).
		WithArgs("ann", sqlmock.AnyArg(), "ann@uni.edu", "student").
		WillReturnResult(sqlmock.NewResult(5, 1))
	srv.mock.ExpectExec(`INSERT INTO students \(name, email, phone, branch\)`).
		WithArgs("Ann Lee", "ann@uni.edu", nil, "CSE").
		WillReturnResult(sqlmock.NewResult(9, 1))

	rec := srv.do(t, http.MethodPost, "/register", `{
		"username":"ann","password":"secret1","confirm_password":"secret1",
		"email":"ann@uni.edu","account_type":"student",
		"student_name":"Ann Lee","student_branch":"CSE"
	}`, nil)
	expectStatus(t, rec, http.StatusCreated)
	if body := decodeBody(t, rec); body["role"] != "student" {
		t.Fatalf("unexpected body: %v", body)
	}
	srv.assertExpectations(t)
}

func TestRegister_ValidationErrors(t *testing.T) {
	srv := newTestServer(t)

	cases := []struct {
		body    string
		message string
	}{
		{`{"username":"ann"}`, "All fields are required"},
		{`{"username":"ann","password":"secret1","confirm_password":"other","email":"a@b.co","account_type":"student"}`, "Passwords do not match"},
		{`{"username":"ann","password":"secret1","confirm_password":"secret1","email":"nope","account_type":"student"}`, "Invalid email address"},
		{`{"username":"ann","password":"abc","confirm_password":"abc","email":"a@b.co","account_type":"student"}`, "Password must be at least 6 characters long"},
		{`{"username":"ann","password":"secret1","confirm_password":"secret1","email":"a@b.co","account_type":"admin"}`, "Invalid account type"},
	}
	for _, tc := range cases {
		rec := srv.do(t, http.MethodPost, "/register", tc.body, nil)
		expectStatus(t, rec, http.StatusBadRequest)
		if body := decodeBody(t, rec); body["message"] != tc.message {
			t.Fatalf("expected %q, got %v", tc.message, body["message"])
		}
	}
	srv.assertExpectations(t)
}

func TestLogout_ClearsCookie(t *testing.T) {
	srv := newTestServer(t)

	rec := srv.do(t, http.MethodGet, "/logout", "", student)
	expectStatus(t, rec, http.StatusFound)
	if loc := rec.Header().Get("Location"); loc != "/login" {
		t.Fatalf("expected redirect to /login, got %s", loc)
	}

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != sessionConfig.CookieName || cookies[0].MaxAge >= 0 || cookies[0].Value != "" {
		t.Fatalf("expected cleared session cookie, got %+v", cookies)
	}
}

func TestForgotPassword_UnknownEmailGetsGenericMessage(t *testing.T) {
	srv := newTestServer(t)

	srv.mock.ExpectQuery(findUserQuery+`email = \?`).
		WithArgs("nobody@example.com").
		WillReturnRows(sqlmock.NewRows(userColumns))

	rec := srv.do(t, http.MethodPost, "/forgot-password", `{"email":"nobody@example.com"}`, nil)
	expectStatus(t, rec, http.StatusOK)
	if body := decodeBody(t, rec); body["message"] != service.ForgotPasswordMessage {
		t.Fatalf("unexpected body: %v", body)
	}
	srv.assertExpectations(t)
}

func TestForgotPassword_RequiresEmail(t *testing.T) {
	srv := newTestServer(t)

	rec := srv.do(t, http.MethodPost, "/forgot-password", `{"email":""}`, nil)
	expectStatus(t, rec, http.StatusBadRequest)
	if body := decodeBody(t, rec); body["message"] != "Email is required" {
		t.Fatalf("unexpected body: %v", body)
	}
}

func TestResetPassword_RejectsUnknownToken(t *testing.T) {
	srv := newTestServer(t)

	srv.mock.ExpectQuery(findUserQuery+`reset_token = \?`).
		WithArgs("stale").
		WillReturnRows(sqlmock.NewRows(userColumns))

	rec := srv.do(t, http.MethodPost, "/reset-password", `{"token":"stale","password":"secret1","confirm_password":"secret1"}`, nil)
	expectStatus(t, rec, http.StatusBadRequest)
	if body := decodeBody(t, rec); body["message"] != "invalid or expired token" {
		t.Fatalf("unexpected body: %v", body)
	}
	srv.assertExpectations(t)
}
