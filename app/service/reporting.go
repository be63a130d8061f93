package service

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/vibast-solutions/ms-go-internship/app/apperr"
	"github.com/vibast-solutions/ms-go-internship/app/dto"
	"github.com/vibast-solutions/ms-go-internship/app/entity"

	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
)

const (
	ExportRowLimit  = 10000
	BrowseRowLimit  = 5
	maxSheetNameLen = 31
)

type schemaGateway interface {
	GetTables(ctx context.Context) ([]entity.TableInfo, error)
	GetTableColumns(ctx context.Context, table string) ([]entity.ColumnInfo, error)
	GetTableSample(ctx context.Context, table string, limit int) (*entity.ResultSet, error)
	RunSelect(ctx context.Context, query string) (*entity.ResultSet, error)
}

type ReportingService interface {
	Overview(ctx context.Context) ([]dto.TableOverview, error)
	Browse(ctx context.Context) ([]dto.TableBrowse, error)
	Sample(ctx context.Context, table string, limit int) (*entity.ResultSet, error)
	Query(ctx context.Context, query string) (*entity.ResultSet, error)
	LoadExport(ctx context.Context, table string) (*entity.ResultSet, error)
	WriteCSV(w io.Writer, rs *entity.ResultSet) error
	WriteXLSX(w io.Writer, sheet string, rs *entity.ResultSet) error
	LabExamples() []dto.LabExample
}

type reportingService struct {
	gw schemaGateway
}

func NewReportingService(gw schemaGateway) ReportingService {
	return &reportingService{gw: gw}
}

func (s *reportingService) Overview(ctx context.Context) ([]dto.TableOverview, error) {
	tables, err := s.gw.GetTables(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]dto.TableOverview, 0, len(tables))
	for _, t := range tables {
		columns, err := s.gw.GetTableColumns(ctx, t.Table)
		if err != nil {
			return nil, err
		}
		result = append(result, dto.TableOverview{Table: t.Table, Rows: t.Rows, Columns: columns})
	}
	return result, nil
}

// Browse lists every table with its columns and a few sample rows. A table
// that cannot be inspected is shown with empty columns and sample.
func (s *reportingService) Browse(ctx context.Context) ([]dto.TableBrowse, error) {
	tables, err := s.gw.GetTables(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]dto.TableBrowse, 0, len(tables))
	for _, t := range tables {
		entry := dto.TableBrowse{
			TableOverview: dto.TableOverview{Table: t.Table, Rows: t.Rows, Columns: []entity.ColumnInfo{}},
			Sample:        &entity.ResultSet{Columns: []string{}, Rows: []map[string]any{}},
		}

		columns, err := s.gw.GetTableColumns(ctx, t.Table)
		if err == nil {
			var sample *entity.ResultSet
			sample, err = s.gw.GetTableSample(ctx, t.Table, BrowseRowLimit)
			if err == nil {
				entry.Columns = columns
				entry.Sample = sample
			}
		}
		if err != nil {
			logrus.WithError(err).WithField("table", t.Table).Warn("Failed to inspect table")
		}
		result = append(result, entry)
	}
	return result, nil
}

func (s *reportingService) Sample(ctx context.Context, table string, limit int) (*entity.ResultSet, error) {
	return s.gw.GetTableSample(ctx, table, limit)
}

func (s *reportingService) Query(ctx context.Context, query string) (*entity.ResultSet, error) {
	return s.gw.RunSelect(ctx, query)
}

// LoadExport fetches the rows to export before anything is written, so an
// empty table can still be reported as an error.
func (s *reportingService) LoadExport(ctx context.Context, table string) (*entity.ResultSet, error) {
	rs, err := s.gw.GetTableSample(ctx, table, ExportRowLimit)
	if err != nil {
		return nil, err
	}
	if rs.Len() == 0 {
		return nil, apperr.ErrNoRowsToExport
	}
	return rs, nil
}

// WriteCSV writes a header line and then one line per row, flushing after
// each row.
func (s *reportingService) WriteCSV(w io.Writer, rs *entity.ResultSet) error {
	if rs.Len() == 0 {
		return apperr.ErrNoRowsToExport
	}

	writer := csv.NewWriter(w)
	if err := writer.Write(rs.Columns); err != nil {
		return err
	}
	writer.Flush()

	record := make([]string, len(rs.Columns))
	for _, row := range rs.Rows {
		for i, column := range rs.Columns {
			record[i] = formatCell(row[column])
		}
		if err := writer.Write(record); err != nil {
			return err
		}
		writer.Flush()
		if err := writer.Error(); err != nil {
			return err
		}
	}
	return writer.Error()
}

func (s *reportingService) WriteXLSX(w io.Writer, sheet string, rs *entity.ResultSet) error {
	if rs.Len() == 0 {
		return apperr.ErrNoRowsToExport
	}
	sheet = SheetName(sheet)

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}

	header := make([]interface{}, len(rs.Columns))
	for i, column := range rs.Columns {
		header[i] = column
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}
	lastHeader, err := excelize.CoordinatesToCellName(len(rs.Columns), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", lastHeader, headerStyle); err != nil {
		return err
	}

	for r, row := range rs.Rows {
		values := make([]interface{}, len(rs.Columns))
		for i, column := range rs.Columns {
			values[i] = row[column]
		}
		cell, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return err
		}
	}

	return f.Write(w)
}

// SheetName turns a table name into a valid worksheet name: characters Excel
// forbids become underscores, edge apostrophes are dropped and the result is
// cut to 31 characters on a rune boundary.
func SheetName(table string) string {
	name := strings.Map(func(r rune) rune {
		if strings.ContainsRune(`[]:*?/\`, r) {
			return '_'
		}
		return r
	}, table)
	name = strings.Trim(strings.TrimSpace(name), "'")

	if runes := []rune(name); len(runes) > maxSheetNameLen {
		name = strings.TrimRight(string(runes[:maxSheetNameLen]), "'")
	}
	if name == "" {
		return "Sheet1"
	}
	return name
}

func (s *reportingService) LabExamples() []dto.LabExample {
	return []dto.LabExample{
		{Name: "ddl_create_table", Query: "CREATE TABLE sample_demo (id INT AUTO_INCREMENT PRIMARY KEY, name VARCHAR(100));"},
		{Name: "dml_insert", Query: "INSERT INTO students (name, email, phone, branch) VALUES ('Test Student','test@example.com','+911234567890','CSE');"},
		{Name: "dml_update", Query: "UPDATE students SET branch='IT' WHERE id=1;"},
		{Name: "dcl_grant", Query: "GRANT SELECT ON internship_db.* TO 'someuser'@'localhost';"},
		{Name: "advanced_join", Query: "SELECT s.name AS student, i.title AS internship FROM applications a JOIN students s ON a.student_id=s.id JOIN internships i ON a.internship_id=i.id;"},
		{Name: "aggregate", Query: "SELECT i.title, COUNT(a.id) AS applications FROM internships i LEFT JOIN applications a ON a.internship_id=i.id GROUP BY i.id;"},
	}
}

func formatCell(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case []byte:
		return string(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32)
	default:
		return fmt.Sprint(val)
	}
}
