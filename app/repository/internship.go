package repository

import (
	"context"
	"database/sql"

	"github.com/vibast-solutions/ms-go-internship/app/entity"
)

type InternshipRepository struct {
	gw *Gateway
}

func NewInternshipRepository(gw *Gateway) *InternshipRepository {
	return &InternshipRepository{gw: gw}
}

func scanInternshipView(rows *sql.Rows) (*entity.InternshipView, error) {
	v := &entity.InternshipView{}
	err := rows.Scan(
		&v.ID,
		&v.Title,
		&v.CompanyID,
		&v.StartDate,
		&v.EndDate,
		&v.Stipend,
		&v.Seats,
		&v.Description,
		&v.CompanyName,
	)
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (r *InternshipRepository) list(ctx context.Context, query string, args []any) ([]*entity.InternshipView, error) {
	internships := []*entity.InternshipView{}
	err := r.gw.Query(ctx, query, args, func(rows *sql.Rows) error {
		v, err := scanInternshipView(rows)
		if err != nil {
			return err
		}
		internships = append(internships, v)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return internships, nil
}

// List returns every internship with the owning company's name.
func (r *InternshipRepository) List(ctx context.Context) ([]*entity.InternshipView, error) {
	query := `
		SELECT i.id, i.title, i.company_id, i.start_date, i.end_date, i.stipend, i.seats, i.description,
		       c.name AS company_name
		FROM internships i
		LEFT JOIN companies c ON i.company_id = c.id
		ORDER BY i.id DESC
	`
	return r.list(ctx, query, nil)
}

// ListByCompany returns the internships posted by one company. A zero id means
// the caller has no company and yields an empty list without a query.
func (r *InternshipRepository) ListByCompany(ctx context.Context, companyID uint64) ([]*entity.InternshipView, error) {
	if companyID == 0 {
		return []*entity.InternshipView{}, nil
	}
	query := `
		SELECT i.id, i.title, i.company_id, i.start_date, i.end_date, i.stipend, i.seats, i.description,
		       c.name AS company_name
		FROM internships i
		LEFT JOIN companies c ON i.company_id = c.id
		WHERE i.company_id = ?
		ORDER BY i.id DESC
	`
	return r.list(ctx, query, []any{companyID})
}

func (r *InternshipRepository) Create(ctx context.Context, i *entity.Internship) error {
	query := `
		INSERT INTO internships (title, company_id, start_date, end_date, stipend, seats, description)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	res, err := r.gw.Execute(ctx, query,
		i.Title,
		i.CompanyID,
		i.StartDate,
		i.EndDate,
		i.Stipend,
		i.Seats,
		i.Description,
	)
	if err != nil {
		return err
	}
	i.ID = uint64(res.LastInsertID)
	return nil
}

func (r *InternshipRepository) Update(ctx context.Context, i *entity.Internship) error {
	query := `
		UPDATE internships SET
			title = ?,
			company_id = ?,
			start_date = ?,
			end_date = ?,
			stipend = ?,
			seats = ?,
			description = ?
		WHERE id = ?
	`
	_, err := r.gw.Execute(ctx, query,
		i.Title,
		i.CompanyID,
		i.StartDate,
		i.EndDate,
		i.Stipend,
		i.Seats,
		i.Description,
		i.ID,
	)
	return err
}

func (r *InternshipRepository) Delete(ctx context.Context, id uint64) error {
	query := `DELETE FROM internships WHERE id = ?`
	_, err := r.gw.Execute(ctx, query, id)
	return err
}
