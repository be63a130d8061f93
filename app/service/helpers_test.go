package service_test

import (
	"context"
	"sync"
	"testing"

	"github.com/vibast-solutions/ms-go-internship/app/repository"

	"github.com/DATA-DOG/go-sqlmock"
)

const (
	findUserQuery = `(?s)SELECT id, username, password_hash, email, role, reset_token, reset_token_expires\s+FROM users WHERE `

	findStudentByUsernameQuery = `(?s)FROM students s\s+JOIN users u ON s.email = u.email\s+WHERE u.username = \? AND u.role = 'student'`
	findCompanyByUsernameQuery = `(?s)FROM companies c\s+JOIN users u ON c.email = u.email\s+WHERE u.username = \? AND u.role = 'company'`
	listStudentsQuery          = `SELECT id, name, email, phone, branch FROM students ORDER BY id DESC`
	listCompaniesQuery         = `SELECT id, name, contact_person, email, phone FROM companies ORDER BY id DESC`
	listInternshipsQuery       = `(?s)FROM internships i\s+LEFT JOIN companies c ON i.company_id = c.id\s+ORDER BY i.id DESC`
	listApplicationsQuery      = `(?s)FROM applications a.*LEFT JOIN companies c ON i.company_id = c.id\s+ORDER BY a.id DESC`
)

var (
	userColumns        = []string{"id", "username", "password_hash", "email", "role", "reset_token", "reset_token_expires"}
	studentColumns     = []string{"id", "name", "email", "phone", "branch"}
	companyColumns     = []string{"id", "name", "contact_person", "email", "phone"}
	internshipColumns  = []string{"id", "title", "company_id", "start_date", "end_date", "stipend", "seats", "description", "company_name"}
	applicationColumns = []string{"id", "student_id", "internship_id", "status", "student_name", "student_email", "internship_title", "company_name"}
)

type repos struct {
	gw           *repository.Gateway
	users        *repository.UserRepository
	students     *repository.StudentRepository
	companies    *repository.CompanyRepository
	internships  *repository.InternshipRepository
	applications *repository.ApplicationRepository
}

func newMockRepos(t *testing.T) (*repos, sqlmock.Sqlmock, func()) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	gw := repository.NewGateway(db, "internship_db")
	r := &repos{
		gw:           gw,
		users:        repository.NewUserRepository(gw),
		students:     repository.NewStudentRepository(gw),
		companies:    repository.NewCompanyRepository(gw),
		internships:  repository.NewInternshipRepository(gw),
		applications: repository.NewApplicationRepository(gw),
	}
	return r, mock, func() { _ = db.Close() }
}

func assertExpectations(t *testing.T, mock sqlmock.Sqlmock) {
	t.Helper()
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

type sentMail struct {
	To      string
	Subject string
	Body    string
}

type recordingMailer struct {
	mu   sync.Mutex
	sent []sentMail
}

func (m *recordingMailer) Send(_ context.Context, to, subject, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, sentMail{To: to, Subject: subject, Body: body})
	return nil
}

func (m *recordingMailer) Sent() []sentMail {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]sentMail(nil), m.sent...)
}
