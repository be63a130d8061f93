package repository

import (
	"context"
	"database/sql"

	"github.com/vibast-solutions/ms-go-internship/app/entity"
)

type ApplicationRepository struct {
	gw *Gateway
}

func NewApplicationRepository(gw *Gateway) *ApplicationRepository {
	return &ApplicationRepository{gw: gw}
}

const applicationViewSelect = `
	SELECT a.id, a.student_id, a.internship_id, a.status,
	       s.name AS student_name, s.email AS student_email,
	       i.title AS internship_title, c.name AS company_name
	FROM applications a
	LEFT JOIN students s ON a.student_id = s.id
	LEFT JOIN internships i ON a.internship_id = i.id
	LEFT JOIN companies c ON i.company_id = c.id
`

func (r *ApplicationRepository) list(ctx context.Context, query string, args []any) ([]*entity.ApplicationView, error) {
	applications := []*entity.ApplicationView{}
	err := r.gw.Query(ctx, query, args, func(rows *sql.Rows) error {
		v := &entity.ApplicationView{}
		err := rows.Scan(
			&v.ID,
			&v.StudentID,
			&v.InternshipID,
			&v.Status,
			&v.StudentName,
			&v.StudentEmail,
			&v.InternshipTitle,
			&v.CompanyName,
		)
		if err != nil {
			return err
		}
		applications = append(applications, v)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return applications, nil
}

func (r *ApplicationRepository) List(ctx context.Context) ([]*entity.ApplicationView, error) {
	return r.list(ctx, applicationViewSelect+`ORDER BY a.id DESC`, nil)
}

// ListByCompany returns applications to internships of one company; zero
// yields an empty list.
func (r *ApplicationRepository) ListByCompany(ctx context.Context, companyID uint64) ([]*entity.ApplicationView, error) {
	if companyID == 0 {
		return []*entity.ApplicationView{}, nil
	}
	return r.list(ctx, applicationViewSelect+`WHERE i.company_id = ? ORDER BY a.id DESC`, []any{companyID})
}

// ListByStudent returns one student's applications; zero yields an empty list.
func (r *ApplicationRepository) ListByStudent(ctx context.Context, studentID uint64) ([]*entity.ApplicationView, error) {
	if studentID == 0 {
		return []*entity.ApplicationView{}, nil
	}
	return r.list(ctx, applicationViewSelect+`WHERE a.student_id = ? ORDER BY a.id DESC`, []any{studentID})
}

func (r *ApplicationRepository) Create(ctx context.Context, a *entity.Application) error {
	if a.Status == "" {
		a.Status = entity.DefaultApplicationStatus
	}
	query := `INSERT INTO applications (student_id, internship_id, status) VALUES (?, ?, ?)`
	res, err := r.gw.Execute(ctx, query, a.StudentID, a.InternshipID, a.Status)
	if err != nil {
		return err
	}
	a.ID = uint64(res.LastInsertID)
	return nil
}

func (r *ApplicationRepository) UpdateStatus(ctx context.Context, id uint64, status string) error {
	query := `UPDATE applications SET status = ? WHERE id = ?`
	_, err := r.gw.Execute(ctx, query, status, id)
	return err
}

func (r *ApplicationRepository) Delete(ctx context.Context, id uint64) error {
	query := `DELETE FROM applications WHERE id = ?`
	_, err := r.gw.Execute(ctx, query, id)
	return err
}
