package repository

import (
	"context"
	"database/sql"

	"github.com/vibast-solutions/ms-go-internship/app/entity"
)

type CompanyRepository struct {
	gw *Gateway
}

func NewCompanyRepository(gw *Gateway) *CompanyRepository {
	return &CompanyRepository{gw: gw}
}

func (r *CompanyRepository) List(ctx context.Context) ([]*entity.Company, error) {
	query := `SELECT id, name, contact_person, email, phone FROM companies ORDER BY id DESC`

	companies := []*entity.Company{}
	err := r.gw.Query(ctx, query, nil, func(rows *sql.Rows) error {
		c := &entity.Company{}
		if err := rows.Scan(&c.ID, &c.Name, &c.ContactPerson, &c.Email, &c.Phone); err != nil {
			return err
		}
		companies = append(companies, c)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return companies, nil
}

func (r *CompanyRepository) FindByID(ctx context.Context, id uint64) (*entity.Company, error) {
	query := `SELECT id, name, contact_person, email, phone FROM companies WHERE id = ?`

	c := &entity.Company{}
	found, err := r.gw.QueryRow(ctx, query, []any{id}, &c.ID, &c.Name, &c.ContactPerson, &c.Email, &c.Phone)
	if err != nil || !found {
		return nil, err
	}
	return c, nil
}

// FindByUsername resolves the company row owned by a company account through
// the shared email address.
func (r *CompanyRepository) FindByUsername(ctx context.Context, username string) (*entity.Company, error) {
	query := `
		SELECT c.id, c.name, c.contact_person, c.email, c.phone
		FROM companies c
		JOIN users u ON c.email = u.email
		WHERE u.username = ? AND u.role = 'company'
		ORDER BY c.id
		LIMIT 1
	`
	c := &entity.Company{}
	found, err := r.gw.QueryRow(ctx, query, []any{username}, &c.ID, &c.Name, &c.ContactPerson, &c.Email, &c.Phone)
	if err != nil || !found {
		return nil, err
	}
	return c, nil
}

func (r *CompanyRepository) Create(ctx context.Context, c *entity.Company) error {
	query := `INSERT INTO companies (name, contact_person, email, phone) VALUES (?, ?, ?, ?)`
	res, err := r.gw.Execute(ctx, query, c.Name, c.ContactPerson, c.Email, c.Phone)
	if err != nil {
		return err
	}
	c.ID = uint64(res.LastInsertID)
	return nil
}

func (r *CompanyRepository) Update(ctx context.Context, c *entity.Company) error {
	query := `UPDATE companies SET name = ?, contact_person = ?, email = ?, phone = ? WHERE id = ?`
	_, err := r.gw.Execute(ctx, query, c.Name, c.ContactPerson, c.Email, c.Phone, c.ID)
	return err
}

func (r *CompanyRepository) Delete(ctx context.Context, id uint64) error {
	query := `DELETE FROM companies WHERE id = ?`
	_, err := r.gw.Execute(ctx, query, id)
	return err
}
