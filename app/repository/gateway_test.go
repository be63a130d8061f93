package repository_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/vibast-solutions/ms-go-internship/app/apperr"
	"github.com/vibast-solutions/ms-go-internship/app/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
)

const (
	listTablesQuery  = `(?s)SELECT table_name, table_rows FROM information_schema.tables WHERE table_schema = \? ORDER BY table_name`
	listColumnsQuery = `(?s)SELECT column_name, data_type, is_nullable, column_key FROM information_schema.columns WHERE table_schema = \? AND table_name = \? ORDER BY ordinal_position`
)

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock, func()) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	return db, mock, func() { _ = db.Close() }
}

func expectTables(mock sqlmock.Sqlmock, names ...string) {
	rows := sqlmock.NewRows([]string{"TABLE_NAME", "TABLE_ROWS"})
	for i, name := range names {
		rows.AddRow(name, int64(i+1))
	}
	mock.ExpectQuery(listTablesQuery).WithArgs("internship_db").WillReturnRows(rows)
}

func TestGateway_FetchAllKeepsMidnightDatetime(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()

	gw := repository.NewGateway(db, "internship_db")
	midnight := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT start_date, applied_at FROM applications`).
		WillReturnRows(sqlmock.NewRowsWithColumnDefinition(
			mock.NewColumn("start_date").OfType("DATE", time.Time{}),
			mock.NewColumn("applied_at").OfType("TIMESTAMP", time.Time{}),
		).AddRow(midnight, midnight))

	rs, err := gw.FetchAll(context.Background(), "SELECT start_date, applied_at FROM applications")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	row := rs.Rows[0]
	if row["start_date"] != "2024-01-01" {
		t.Fatalf("expected date only, got %#v", row["start_date"])
	}
	if row["applied_at"] != "2024-01-01 00:00:00" {
		t.Fatalf("expected midnight to keep its time, got %#v", row["applied_at"])
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestGateway_FetchAllKeepsColumnOrderAndNormalizesValues(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()

	gw := repository.NewGateway(db, "internship_db")
	start := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	created := time.Date(2024, 6, 1, 13, 45, 10, 0, time.UTC)

	mock.ExpectQuery(`SELECT title, start_date, created_at, note FROM internships WHERE id = \?`).
		WithArgs(7).
		WillReturnRows(sqlmock.NewRowsWithColumnDefinition(
			mock.NewColumn("title").OfType("VARCHAR", ""),
			mock.NewColumn("start_date").OfType("DATE", time.Time{}),
			mock.NewColumn("created_at").OfType("DATETIME", time.Time{}),
			mock.NewColumn("note").OfType("TEXT", "").Nullable(true),
		).AddRow([]byte("Backend intern"), start, created, nil))

	rs, err := gw.FetchAll(context.Background(), "SELECT title, start_date, created_at, note FROM internships WHERE id = ?", 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rs.Columns) != 4 || rs.Columns[0] != "title" || rs.Columns[3] != "note" {
		t.Fatalf("unexpected columns: %v", rs.Columns)
	}
	if rs.Len() != 1 {
		t.Fatalf("expected one row, got %d", rs.Len())
	}
	row := rs.Rows[0]
	if row["title"] != "Backend intern" {
		t.Fatalf("expected bytes to be decoded, got %#v", row["title"])
	}
	if row["start_date"] != "2024-06-01" {
		t.Fatalf("expected date only, got %#v", row["start_date"])
	}
	if row["created_at"] != "2024-06-01 13:45:10" {
		t.Fatalf("expected datetime, got %#v", row["created_at"])
	}
	if row["note"] != nil {
		t.Fatalf("expected nil note, got %#v", row["note"])
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestGateway_FetchAllEmptyResult(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()

	gw := repository.NewGateway(db, "internship_db")
	mock.ExpectQuery(`SELECT id FROM students`).WillReturnRows(sqlmock.NewRows([]string{"id"}))

	rs, err := gw.FetchAll(context.Background(), "SELECT id FROM students")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rs.Rows == nil || rs.Len() != 0 {
		t.Fatalf("expected empty non-nil rows, got %#v", rs.Rows)
	}
}

func TestGateway_ExecuteReturnsIDs(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()

	gw := repository.NewGateway(db, "internship_db")
	mock.ExpectExec(`INSERT INTO students \(name\) VALUES \(\?\)`).
		WithArgs("Ann").
		WillReturnResult(sqlmock.NewResult(42, 1))

	res, err := gw.Execute(context.Background(), "INSERT INTO students (name) VALUES (?)", "Ann")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.LastInsertID != 42 || res.RowsAffected != 1 {
		t.Fatalf("unexpected result: %+v", res)
	}
}

func TestGateway_ExecuteMapsConstraintErrorsToValidation(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()

	gw := repository.NewGateway(db, "internship_db")
	mock.ExpectExec(`INSERT INTO applications`).
		WillReturnError(&mysql.MySQLError{Number: 1452, Message: "Cannot add or update a child row"})

	_, err := gw.Execute(context.Background(), "INSERT INTO applications (student_id, internship_id, status) VALUES (?, ?, ?)", 999, 1, "Applied")
	if apperr.KindOf(err) != apperr.KindValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	if err.Error() != "Cannot add or update a child row" {
		t.Fatalf("unexpected message: %v", err)
	}
}

func TestDuplicateKey(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()

	gw := repository.NewGateway(db, "internship_db")
	mock.ExpectExec(`INSERT INTO users`).
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry 'a@b.co' for key 'users.uq_users_email'"})

	_, err := gw.Execute(context.Background(), "INSERT INTO users (username, password_hash, email, role) VALUES (?, ?, ?, ?)", "a", "h", "a@b.co", "student")
	key, ok := repository.DuplicateKey(err)
	if !ok || key != repository.UsersEmailKey {
		t.Fatalf("expected %s, got %q %v", repository.UsersEmailKey, key, ok)
	}

	if key, ok := repository.DuplicateKey(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry 'a' for key 'uq_users_username'"}); !ok || key != repository.UsersUsernameKey {
		t.Fatalf("expected %s, got %q %v", repository.UsersUsernameKey, key, ok)
	}
	if _, ok := repository.DuplicateKey(&mysql.MySQLError{Number: 1452, Message: "Cannot add or update a child row"}); ok {
		t.Fatalf("foreign key failure is not a duplicate")
	}
	if _, ok := repository.DuplicateKey(errors.New("boom")); ok {
		t.Fatalf("plain error is not a duplicate")
	}
}

func TestGateway_ConnectionFailureIsPersistence(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()

	gw := repository.NewGateway(db, "internship_db")
	mock.ExpectQuery(`SELECT 1`).WillReturnError(errors.New("connection refused"))

	_, err := gw.FetchAll(context.Background(), "SELECT 1")
	if apperr.KindOf(err) != apperr.KindPersistence {
		t.Fatalf("expected persistence error, got %v", err)
	}
}

func TestIsReadOnlyQuery(t *testing.T) {
	cases := map[string]bool{
		"SELECT * FROM students":     true,
		"  select 1":                 true,
		"\nSHOW TABLES":              true,
		"explain select * from x":    true,
		"DELETE FROM users":          false,
		"update students set name=1": false,
		"":                           false,
		"-- comment\nSELECT 1":       false,
	}
	for query, want := range cases {
		if got := repository.IsReadOnlyQuery(query); got != want {
			t.Fatalf("IsReadOnlyQuery(%q) = %v, want %v", query, got, want)
		}
	}
}

func TestGateway_RunSelectRejectsWrites(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()

	gw := repository.NewGateway(db, "internship_db")
	_, err := gw.RunSelect(context.Background(), "DELETE FROM users")
	if !errors.Is(err, apperr.ErrReadOnlyQuery) {
		t.Fatalf("expected read-only error, got %v", err)
	}
	_, err = gw.RunSelect(context.Background(), "   ")
	if !errors.Is(err, apperr.ErrEmptyQuery) {
		t.Fatalf("expected empty query error, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("no statement should reach the database: %v", err)
	}
}

func TestGateway_RunSelectAcceptsLeadingWhitespace(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()

	gw := repository.NewGateway(db, "internship_db")
	mock.ExpectQuery(`SELECT 1`).WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(int64(1)))

	rs, err := gw.RunSelect(context.Background(), "  SELECT 1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rs.Len() != 1 || rs.Rows[0]["1"] != int64(1) {
		t.Fatalf("unexpected result: %#v", rs.Rows)
	}
}

func TestGateway_GetTables(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()

	gw := repository.NewGateway(db, "internship_db")
	expectTables(mock, "applications", "students")

	tables, err := gw.GetTables(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tables) != 2 || tables[0].Table != "applications" || tables[1].Rows != 2 {
		t.Fatalf("unexpected tables: %+v", tables)
	}
}

func TestGateway_GetTableColumns(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()

	gw := repository.NewGateway(db, "internship_db")
	mock.ExpectQuery(listColumnsQuery).
		WithArgs("internship_db", "students").
		WillReturnRows(sqlmock.NewRows([]string{"COLUMN_NAME", "DATA_TYPE", "IS_NULLABLE", "COLUMN_KEY"}).
			AddRow("id", "int", "NO", "PRI").
			AddRow([]byte("email"), "varchar", "YES", ""))

	columns, err := gw.GetTableColumns(context.Background(), "students")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(columns) != 2 || columns[0].Key != "PRI" || columns[1].Column != "email" || columns[1].Nullable != "YES" {
		t.Fatalf("unexpected columns: %+v", columns)
	}
}

func TestGateway_GetTableSampleRejectsUnknownTable(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()

	gw := repository.NewGateway(db, "internship_db")
	expectTables(mock, "students")

	_, err := gw.GetTableSample(context.Background(), "students; DROP TABLE users", 10)
	if !errors.Is(err, apperr.ErrUnknownTable) {
		t.Fatalf("expected unknown table, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestGateway_GetTableSampleClampsLimit(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()

	gw := repository.NewGateway(db, "internship_db")

	expectTables(mock, "students")
	mock.ExpectQuery("SELECT \\* FROM `students` LIMIT \\?").
		WithArgs(repository.DefaultSampleLimit).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(1)))

	expectTables(mock, "students")
	mock.ExpectQuery("SELECT \\* FROM `students` LIMIT \\?").
		WithArgs(repository.MaxSampleLimit).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	if _, err := gw.GetTableSample(context.Background(), "students", 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := gw.GetTableSample(context.Background(), "students", 50000); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
