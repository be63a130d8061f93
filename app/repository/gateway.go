package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/vibast-solutions/ms-go-internship/app/apperr"
	"github.com/vibast-solutions/ms-go-internship/app/entity"

	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
)

const (
	DefaultSampleLimit = 10
	MaxSampleLimit     = 10000
)

// MySQL server error numbers that are caused by the caller's input rather than
// by the database being unavailable.
const (
	mysqlErrDuplicateEntry   = 1062
	mysqlErrRowIsReferenced  = 1451
	mysqlErrNoReferencedRow  = 1452
	mysqlErrRowIsReferenced2 = 1217
	mysqlErrNoReferencedRow2 = 1216
)

// Gateway is the only component that talks to the database. Every call checks
// a connection out of the pool and returns it before the call ends; no
// connection or transaction state survives between calls.
type Gateway struct {
	db     *sqlx.DB
	schema string
}

func NewGateway(db *sql.DB, schema string) *Gateway {
	return &Gateway{
		db:     sqlx.NewDb(db, "mysql"),
		schema: schema,
	}
}

func (g *Gateway) Schema() string {
	return g.schema
}

// FetchAll runs a parameterized query and returns every row as a column-name
// to value mapping, keeping the column order reported by the driver.
func (g *Gateway) FetchAll(ctx context.Context, query string, args ...any) (*entity.ResultSet, error) {
	rows, err := g.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, translateError(err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, apperr.Persistence(err)
	}

	columnTypes, err := rows.ColumnTypes()
	if err != nil {
		return nil, apperr.Persistence(err)
	}
	dateColumns := make(map[string]bool, len(columnTypes))
	for _, ct := range columnTypes {
		if strings.EqualFold(ct.DatabaseTypeName(), "DATE") {
			dateColumns[ct.Name()] = true
		}
	}

	result := &entity.ResultSet{
		Columns: columns,
		Rows:    []map[string]any{},
	}
	for rows.Next() {
		row := make(map[string]any, len(columns))
		if err := rows.MapScan(row); err != nil {
			return nil, apperr.Persistence(err)
		}
		for key, value := range row {
			row[key] = normalizeValue(value, dateColumns[key])
		}
		result.Rows = append(result.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Persistence(err)
	}
	return result, nil
}

// Query runs a parameterized query and hands each row to scan.
func (g *Gateway) Query(ctx context.Context, query string, args []any, scan func(*sql.Rows) error) error {
	rows, err := g.db.QueryContext(ctx, query, args...)
	if err != nil {
		return translateError(err)
	}
	defer rows.Close()

	for rows.Next() {
		if err := scan(rows); err != nil {
			return apperr.Persistence(err)
		}
	}
	if err := rows.Err(); err != nil {
		return apperr.Persistence(err)
	}
	return nil
}

// QueryRow scans a single row into dest. found is false when the query
// returned nothing.
func (g *Gateway) QueryRow(ctx context.Context, query string, args []any, dest ...any) (bool, error) {
	err := g.db.QueryRowContext(ctx, query, args...).Scan(dest...)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, translateError(err)
	}
	return true, nil
}

// Execute runs a mutating statement and commits it immediately.
func (g *Gateway) Execute(ctx context.Context, query string, args ...any) (entity.ExecResult, error) {
	res, err := g.db.ExecContext(ctx, query, args...)
	if err != nil {
		return entity.ExecResult{}, translateError(err)
	}

	var out entity.ExecResult
	if out.LastInsertID, err = res.LastInsertId(); err != nil {
		return entity.ExecResult{}, apperr.Persistence(err)
	}
	if out.RowsAffected, err = res.RowsAffected(); err != nil {
		return entity.ExecResult{}, apperr.Persistence(err)
	}
	return out, nil
}

// IsReadOnlyQuery is the static gate in front of the query console.
func IsReadOnlyQuery(query string) bool {
	safe := strings.ToLower(strings.TrimSpace(query))
	return strings.HasPrefix(safe, "select") ||
		strings.HasPrefix(safe, "show") ||
		strings.HasPrefix(safe, "explain")
}

// RunSelect executes one free-text statement after the read-only prefix check.
// The statement is sent without arguments; the driver rejects multiple
// statements because multiStatements is never enabled in the DSN.
func (g *Gateway) RunSelect(ctx context.Context, query string) (*entity.ResultSet, error) {
	if strings.TrimSpace(query) == "" {
		return nil, apperr.ErrEmptyQuery
	}
	if !IsReadOnlyQuery(query) {
		return nil, apperr.ErrReadOnlyQuery
	}
	return g.FetchAll(ctx, query)
}

func (g *Gateway) GetTables(ctx context.Context) ([]entity.TableInfo, error) {
	query := `SELECT table_name, table_rows FROM information_schema.tables WHERE table_schema = ? ORDER BY table_name`
	rs, err := g.FetchAll(ctx, query, g.schema)
	if err != nil {
		return nil, err
	}

	tables := make([]entity.TableInfo, 0, len(rs.Rows))
	for _, row := range rs.Rows {
		tables = append(tables, entity.TableInfo{
			Table: toString(lookupFold(row, "table_name")),
			Rows:  toInt64(lookupFold(row, "table_rows")),
		})
	}
	return tables, nil
}

func (g *Gateway) GetTableColumns(ctx context.Context, table string) ([]entity.ColumnInfo, error) {
	query := `SELECT column_name, data_type, is_nullable, column_key FROM information_schema.columns WHERE table_schema = ? AND table_name = ? ORDER BY ordinal_position`
	rs, err := g.FetchAll(ctx, query, g.schema, table)
	if err != nil {
		return nil, err
	}

	columns := make([]entity.ColumnInfo, 0, len(rs.Rows))
	for _, row := range rs.Rows {
		columns = append(columns, entity.ColumnInfo{
			Column:   toString(lookupFold(row, "column_name")),
			DataType: toString(lookupFold(row, "data_type")),
			Nullable: toString(lookupFold(row, "is_nullable")),
			Key:      toString(lookupFold(row, "column_key")),
		})
	}
	return columns, nil
}

// GetTableSample returns up to limit rows of table. The name is interpolated
// into the statement, so it must first match a table reported by GetTables.
func (g *Gateway) GetTableSample(ctx context.Context, table string, limit int) (*entity.ResultSet, error) {
	tables, err := g.GetTables(ctx)
	if err != nil {
		return nil, err
	}

	known := false
	for _, t := range tables {
		if t.Table == table {
			known = true
			break
		}
	}
	if !known {
		return nil, apperr.ErrUnknownTable
	}

	if limit <= 0 {
		limit = DefaultSampleLimit
	}
	if limit > MaxSampleLimit {
		limit = MaxSampleLimit
	}

	query := fmt.Sprintf("SELECT * FROM `%s` LIMIT ?", strings.ReplaceAll(table, "`", "``"))
	return g.FetchAll(ctx, query, limit)
}

func translateError(err error) error {
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		switch myErr.Number {
		case mysqlErrDuplicateEntry, mysqlErrRowIsReferenced, mysqlErrNoReferencedRow,
			mysqlErrRowIsReferenced2, mysqlErrNoReferencedRow2:
			return &apperr.Error{Kind: apperr.KindValidation, Message: myErr.Message, Err: err}
		}
	}
	return apperr.Persistence(err)
}

// DuplicateKey reports the unique index named by a MySQL duplicate-entry error.
// MySQL 8 qualifies the index with its table ("users.uq_users_email"); the
// table prefix is dropped.
func DuplicateKey(err error) (string, bool) {
	var myErr *mysql.MySQLError
	if !errors.As(err, &myErr) || myErr.Number != mysqlErrDuplicateEntry {
		return "", false
	}
	const marker = "for key '"
	idx := strings.LastIndex(myErr.Message, marker)
	if idx < 0 {
		return "", true
	}
	key := strings.TrimSuffix(myErr.Message[idx+len(marker):], "'")
	if dot := strings.LastIndex(key, "."); dot >= 0 {
		key = key[dot+1:]
	}
	return key, true
}

func lookupFold(row map[string]any, key string) any {
	if v, ok := row[key]; ok {
		return v
	}
	for k, v := range row {
		if strings.EqualFold(k, key) {
			return v
		}
	}
	return nil
}

// normalizeValue renders driver values for display. Only DATE columns drop the
// time of day; DATETIME and TIMESTAMP keep it even at midnight.
func normalizeValue(v any, dateOnly bool) any {
	switch val := v.(type) {
	case []byte:
		return string(val)
	case time.Time:
		if dateOnly {
			return val.Format(time.DateOnly)
		}
		return val.Format(time.DateTime)
	default:
		return val
	}
}

func toString(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case []byte:
		return string(val)
	default:
		return fmt.Sprint(val)
	}
}

func toInt64(v any) int64 {
	switch val := v.(type) {
	case int64:
		return val
	case int:
		return int64(val)
	case uint64:
		return int64(val)
	case float64:
		return int64(val)
	case string:
		n, _ := strconv.ParseInt(val, 10, 64)
		return n
	case []byte:
		n, _ := strconv.ParseInt(string(val), 10, 64)
		return n
	default:
		return 0
	}
}
