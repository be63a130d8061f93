package types

import (
	"database/sql"
	"strings"

	"github.com/vibast-solutions/ms-go-internship/app/apperr"
	"github.com/vibast-solutions/ms-go-internship/app/entity"

	"github.com/labstack/echo/v4"
)

type StudentRequest struct {
	Name   string `json:"name" form:"name"`
	Email  string `json:"email" form:"email"`
	Phone  string `json:"phone" form:"phone"`
	Branch string `json:"branch" form:"branch"`
}

func NewStudentRequestFromContext(ctx echo.Context) (*StudentRequest, error) {
	var body StudentRequest
	if err := ctx.Bind(&body); err != nil {
		return nil, err
	}

	return &body, nil
}

func (r *StudentRequest) Validate() error {
	if err := requireText(r.Name, "Name is required"); err != nil {
		return err
	}

	return optionalEmail(r.Email)
}

func (r *StudentRequest) ToEntity(id uint64) *entity.Student {
	return &entity.Student{
		ID:     id,
		Name:   strings.TrimSpace(r.Name),
		Email:  NullString(r.Email),
		Phone:  NullString(r.Phone),
		Branch: NullString(r.Branch),
	}
}

type CompanyRequest struct {
	Name          string `json:"name" form:"name"`
	ContactPerson string `json:"contact_person" form:"contact_person"`
	Email         string `json:"email" form:"email"`
	Phone         string `json:"phone" form:"phone"`
}

func NewCompanyRequestFromContext(ctx echo.Context) (*CompanyRequest, error) {
	var body CompanyRequest
	if err := ctx.Bind(&body); err != nil {
		return nil, err
	}

	return &body, nil
}

func (r *CompanyRequest) Validate() error {
	if err := requireText(r.Name, "Name is required"); err != nil {
		return err
	}

	return optionalEmail(r.Email)
}

func (r *CompanyRequest) ToEntity(id uint64) *entity.Company {
	return &entity.Company{
		ID:            id,
		Name:          strings.TrimSpace(r.Name),
		ContactPerson: NullString(r.ContactPerson),
		Email:         NullString(r.Email),
		Phone:         NullString(r.Phone),
	}
}

type InternshipRequest struct {
	Title       string `json:"title"`
	CompanyID   Number `json:"company_id"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	Stipend     Number `json:"stipend"`
	Seats       Number `json:"seats"`
	Description string `json:"description"`
}

func NewInternshipRequestFromContext(ctx echo.Context) (*InternshipRequest, error) {
	var body InternshipRequest
	if err := ctx.Bind(&body); err != nil {
		return nil, err
	}

	return &body, nil
}

func (r *InternshipRequest) Validate() error {
	if err := requireText(r.Title, "Title is required"); err != nil {
		return err
	}
	if err := optionalDate(r.StartDate, "start_date"); err != nil {
		return err
	}
	if err := optionalDate(r.EndDate, "end_date"); err != nil {
		return err
	}
	if !r.CompanyID.Empty() {
		if _, err := r.CompanyID.Int64(); err != nil {
			return apperr.Validation("company_id must be a number")
		}
	}
	if !r.Stipend.Empty() {
		stipend, err := r.Stipend.Float64()
		if err != nil {
			return apperr.Validation("stipend must be a number")
		}
		if stipend < 0 {
			return apperr.Validation("stipend must not be negative")
		}
	}
	if !r.Seats.Empty() {
		seats, err := r.Seats.Int64()
		if err != nil {
			return apperr.Validation("seats must be a whole number")
		}
		if seats < 0 {
			return apperr.Validation("seats must not be negative")
		}
	}

	return nil
}

// ToEntity expects a request that passed Validate; unparsable numbers map to NULL.
func (r *InternshipRequest) ToEntity(id uint64) *entity.Internship {
	i := &entity.Internship{
		ID:          id,
		Title:       strings.TrimSpace(r.Title),
		StartDate:   NullDate(r.StartDate),
		EndDate:     NullDate(r.EndDate),
		Description: NullString(r.Description),
	}
	if companyID, err := r.CompanyID.Int64(); err == nil && companyID > 0 {
		i.CompanyID = sql.NullInt64{Int64: companyID, Valid: true}
	}
	if stipend, err := r.Stipend.Float64(); err == nil {
		i.Stipend = sql.NullFloat64{Float64: stipend, Valid: true}
	}
	if seats, err := r.Seats.Int64(); err == nil {
		i.Seats = sql.NullInt64{Int64: seats, Valid: true}
	}
	return i
}

type ApplicationRequest struct {
	StudentID    Number `json:"student_id"`
	InternshipID Number `json:"internship_id"`
}

func NewApplicationRequestFromContext(ctx echo.Context) (*ApplicationRequest, error) {
	var body ApplicationRequest
	if err := ctx.Bind(&body); err != nil {
		return nil, err
	}

	return &body, nil
}

func (r *ApplicationRequest) Validate() error {
	if r.StudentID.Empty() || r.InternshipID.Empty() {
		return apperr.Validation("student_id and internship_id are required")
	}
	if id, err := r.StudentID.Int64(); err != nil || id <= 0 {
		return apperr.Validation("student_id must be a positive number")
	}
	if id, err := r.InternshipID.Int64(); err != nil || id <= 0 {
		return apperr.Validation("internship_id must be a positive number")
	}

	return nil
}

// ToEntity expects a request that passed Validate.
func (r *ApplicationRequest) ToEntity() *entity.Application {
	studentID, _ := r.StudentID.Int64()
	internshipID, _ := r.InternshipID.Int64()
	return &entity.Application{
		StudentID:    uint64(studentID),
		InternshipID: uint64(internshipID),
		Status:       entity.DefaultApplicationStatus,
	}
}

type ApplicationStatusRequest struct {
	Status string `json:"status"`
}

func NewApplicationStatusRequestFromContext(ctx echo.Context) (*ApplicationStatusRequest, error) {
	var body ApplicationStatusRequest
	if err := ctx.Bind(&body); err != nil {
		return nil, err
	}

	return &body, nil
}

// StatusOrDefault returns the trimmed status, falling back to Applied.
func (r *ApplicationStatusRequest) StatusOrDefault() string {
	if status := strings.TrimSpace(r.Status); status != "" {
		return status
	}
	return entity.DefaultApplicationStatus
}
