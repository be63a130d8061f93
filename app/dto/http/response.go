package http

import (
	"database/sql"
	"time"

	"github.com/vibast-solutions/ms-go-internship/app/dto"
	"github.com/vibast-solutions/ms-go-internship/app/entity"
)

const (
	StatusOK    = "ok"
	StatusError = "error"
)

// StatusResponse is the envelope of every mutating endpoint.
type StatusResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	ID      uint64 `json:"id,omitempty"`
}

func OK() StatusResponse {
	return StatusResponse{Status: StatusOK}
}

func Created(id uint64) StatusResponse {
	return StatusResponse{Status: StatusOK, ID: id}
}

func Message(message string) StatusResponse {
	return StatusResponse{Status: StatusOK, Message: message}
}

func Error(message string) StatusResponse {
	return StatusResponse{Status: StatusError, Message: message}
}

type SessionResponse struct {
	Status   string      `json:"status"`
	Username string      `json:"username"`
	Role     entity.Role `json:"role"`
}

type StudentResponse struct {
	ID     uint64  `json:"id"`
	Name   string  `json:"name"`
	Email  *string `json:"email"`
	Phone  *string `json:"phone"`
	Branch *string `json:"branch"`
}

type CompanyResponse struct {
	ID            uint64  `json:"id"`
	Name          string  `json:"name"`
	ContactPerson *string `json:"contact_person"`
	Email         *string `json:"email"`
	Phone         *string `json:"phone"`
}

type InternshipResponse struct {
	ID          uint64   `json:"id"`
	Title       string   `json:"title"`
	CompanyID   *int64   `json:"company_id"`
	StartDate   *string  `json:"start_date"`
	EndDate     *string  `json:"end_date"`
	Stipend     *float64 `json:"stipend"`
	Seats       *int64   `json:"seats"`
	Description *string  `json:"description"`
	CompanyName *string  `json:"company_name"`
}

type ApplicationResponse struct {
	ID              uint64  `json:"id"`
	StudentID       uint64  `json:"student_id"`
	InternshipID    uint64  `json:"internship_id"`
	Status          string  `json:"status"`
	StudentName     *string `json:"student_name"`
	StudentEmail    *string `json:"student_email,omitempty"`
	InternshipTitle *string `json:"internship_title"`
	CompanyName     *string `json:"company_name,omitempty"`
}

type DashboardResponse struct {
	Status       string                `json:"status"`
	Role         entity.Role           `json:"role"`
	Students     []StudentResponse     `json:"students"`
	Companies    []CompanyResponse     `json:"companies"`
	Internships  []InternshipResponse  `json:"internships"`
	Applications []ApplicationResponse `json:"applications"`
}

type StudentsResponse struct {
	Status   string            `json:"status"`
	Students []StudentResponse `json:"students"`
}

type CompaniesResponse struct {
	Status    string            `json:"status"`
	Companies []CompanyResponse `json:"companies"`
}

type InternshipsResponse struct {
	Status      string               `json:"status"`
	Internships []InternshipResponse `json:"internships"`
	Companies   []CompanyResponse    `json:"companies"`
}

type ApplicationsResponse struct {
	Status       string                `json:"status"`
	Applications []ApplicationResponse `json:"applications"`
	Students     []StudentResponse     `json:"students"`
	Internships  []InternshipResponse  `json:"internships"`
}

type ProfileResponse struct {
	Status  string           `json:"status"`
	Role    entity.Role      `json:"role"`
	Student *StudentResponse `json:"student,omitempty"`
	Company *CompanyResponse `json:"company,omitempty"`
}

type RowsResponse struct {
	Status  string           `json:"status"`
	Columns []string         `json:"columns"`
	Rows    []map[string]any `json:"rows"`
}

type TableResponse struct {
	Table   string              `json:"table"`
	Rows    int64               `json:"rows"`
	Columns []entity.ColumnInfo `json:"columns"`
}

type TablesResponse struct {
	Status string          `json:"status"`
	Tables []TableResponse `json:"tables"`
}

type BrowseTableResponse struct {
	TableResponse
	Sample []map[string]any `json:"sample"`
}

type BrowseResponse struct {
	Status string                `json:"status"`
	Tables []BrowseTableResponse `json:"tables"`
}

type LabExampleResponse struct {
	Name  string `json:"name"`
	Query string `json:"query"`
}

type LabsResponse struct {
	Status   string               `json:"status"`
	Examples []LabExampleResponse `json:"examples"`
}

func NewStudentResponse(s *entity.Student) StudentResponse {
	return StudentResponse{
		ID:     s.ID,
		Name:   s.Name,
		Email:  nullString(s.Email),
		Phone:  nullString(s.Phone),
		Branch: nullString(s.Branch),
	}
}

func NewCompanyResponse(c *entity.Company) CompanyResponse {
	return CompanyResponse{
		ID:            c.ID,
		Name:          c.Name,
		ContactPerson: nullString(c.ContactPerson),
		Email:         nullString(c.Email),
		Phone:         nullString(c.Phone),
	}
}

func NewInternshipResponse(i *entity.InternshipView) InternshipResponse {
	return InternshipResponse{
		ID:          i.ID,
		Title:       i.Title,
		CompanyID:   nullInt64(i.CompanyID),
		StartDate:   nullDate(i.StartDate),
		EndDate:     nullDate(i.EndDate),
		Stipend:     nullFloat64(i.Stipend),
		Seats:       nullInt64(i.Seats),
		Description: nullString(i.Description),
		CompanyName: nullString(i.CompanyName),
	}
}

func NewApplicationResponse(a *entity.ApplicationView) ApplicationResponse {
	return ApplicationResponse{
		ID:              a.ID,
		StudentID:       a.StudentID,
		InternshipID:    a.InternshipID,
		Status:          a.Status,
		StudentName:     nullString(a.StudentName),
		StudentEmail:    nullString(a.StudentEmail),
		InternshipTitle: nullString(a.InternshipTitle),
		CompanyName:     nullString(a.CompanyName),
	}
}

func NewStudentResponses(students []*entity.Student) []StudentResponse {
	out := make([]StudentResponse, 0, len(students))
	for _, s := range students {
		out = append(out, NewStudentResponse(s))
	}
	return out
}

func NewCompanyResponses(companies []*entity.Company) []CompanyResponse {
	out := make([]CompanyResponse, 0, len(companies))
	for _, c := range companies {
		out = append(out, NewCompanyResponse(c))
	}
	return out
}

func NewInternshipResponses(internships []*entity.InternshipView) []InternshipResponse {
	out := make([]InternshipResponse, 0, len(internships))
	for _, i := range internships {
		out = append(out, NewInternshipResponse(i))
	}
	return out
}

func NewApplicationResponses(applications []*entity.ApplicationView) []ApplicationResponse {
	out := make([]ApplicationResponse, 0, len(applications))
	for _, a := range applications {
		out = append(out, NewApplicationResponse(a))
	}
	return out
}

func NewDashboardResponse(result *dto.DashboardResult) DashboardResponse {
	return DashboardResponse{
		Status:       StatusOK,
		Role:         result.Role,
		Students:     NewStudentResponses(result.Students),
		Companies:    NewCompanyResponses(result.Companies),
		Internships:  NewInternshipResponses(result.Internships),
		Applications: NewApplicationResponses(result.Applications),
	}
}

func NewProfileResponse(result *dto.ProfileResult) ProfileResponse {
	resp := ProfileResponse{Status: StatusOK, Role: result.Role}
	if result.Student != nil {
		s := NewStudentResponse(result.Student)
		resp.Student = &s
	}
	if result.Company != nil {
		c := NewCompanyResponse(result.Company)
		resp.Company = &c
	}
	return resp
}

func NewRowsResponse(rs *entity.ResultSet) RowsResponse {
	resp := RowsResponse{Status: StatusOK, Columns: []string{}, Rows: []map[string]any{}}
	if rs != nil {
		if rs.Columns != nil {
			resp.Columns = rs.Columns
		}
		if rs.Rows != nil {
			resp.Rows = rs.Rows
		}
	}
	return resp
}

func NewOverviewResponse(tables []dto.TableOverview) TablesResponse {
	resp := TablesResponse{Status: StatusOK, Tables: make([]TableResponse, 0, len(tables))}
	for _, t := range tables {
		resp.Tables = append(resp.Tables, TableResponse{Table: t.Table, Rows: t.Rows, Columns: t.Columns})
	}
	return resp
}

func NewBrowseResponse(tables []dto.TableBrowse) BrowseResponse {
	resp := BrowseResponse{Status: StatusOK, Tables: make([]BrowseTableResponse, 0, len(tables))}
	for _, t := range tables {
		sample := []map[string]any{}
		if t.Sample != nil && t.Sample.Rows != nil {
			sample = t.Sample.Rows
		}
		resp.Tables = append(resp.Tables, BrowseTableResponse{
			TableResponse: TableResponse{Table: t.Table, Rows: t.Rows, Columns: t.Columns},
			Sample:        sample,
		})
	}
	return resp
}

func NewLabsResponse(examples []dto.LabExample) LabsResponse {
	resp := LabsResponse{Status: StatusOK, Examples: make([]LabExampleResponse, 0, len(examples))}
	for _, e := range examples {
		resp.Examples = append(resp.Examples, LabExampleResponse{Name: e.Name, Query: e.Query})
	}
	return resp
}

func nullString(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	return &v.String
}

func nullInt64(v sql.NullInt64) *int64 {
	if !v.Valid {
		return nil
	}
	return &v.Int64
}

func nullFloat64(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	return &v.Float64
}

func nullDate(v sql.NullTime) *string {
	if !v.Valid {
		return nil
	}
	s := v.Time.Format(time.DateOnly)
	return &s
}
