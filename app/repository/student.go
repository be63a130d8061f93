package repository

import (
	"context"
	"database/sql"

	"github.com/vibast-solutions/ms-go-internship/app/entity"
)

type StudentRepository struct {
	gw *Gateway
}

func NewStudentRepository(gw *Gateway) *StudentRepository {
	return &StudentRepository{gw: gw}
}

func scanStudent(rows interface{ Scan(...any) error }) (*entity.Student, error) {
	s := &entity.Student{}
	if err := rows.Scan(&s.ID, &s.Name, &s.Email, &s.Phone, &s.Branch); err != nil {
		return nil, err
	}
	return s, nil
}

func (r *StudentRepository) List(ctx context.Context) ([]*entity.Student, error) {
	query := `SELECT id, name, email, phone, branch FROM students ORDER BY id DESC`

	students := []*entity.Student{}
	err := r.gw.Query(ctx, query, nil, func(rows *sql.Rows) error {
		s, err := scanStudent(rows)
		if err != nil {
			return err
		}
		students = append(students, s)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return students, nil
}

func (r *StudentRepository) FindByID(ctx context.Context, id uint64) (*entity.Student, error) {
	query := `SELECT id, name, email, phone, branch FROM students WHERE id = ?`

	s := &entity.Student{}
	found, err := r.gw.QueryRow(ctx, query, []any{id}, &s.ID, &s.Name, &s.Email, &s.Phone, &s.Branch)
	if err != nil || !found {
		return nil, err
	}
	return s, nil
}

// FindByUsername resolves the student row owned by a student account. The
// link is the shared email address; when several rows carry the same email
// the oldest one wins.
func (r *StudentRepository) FindByUsername(ctx context.Context, username string) (*entity.Student, error) {
	query := `
		SELECT s.id, s.name, s.email, s.phone, s.branch
		FROM students s
		JOIN users u ON s.email = u.email
		WHERE u.username = ? AND u.role = 'student'
		ORDER BY s.id
		LIMIT 1
	`
	s := &entity.Student{}
	found, err := r.gw.QueryRow(ctx, query, []any{username}, &s.ID, &s.Name, &s.Email, &s.Phone, &s.Branch)
	if err != nil || !found {
		return nil, err
	}
	return s, nil
}

func (r *StudentRepository) Create(ctx context.Context, s *entity.Student) error {
	query := `INSERT INTO students (name, email, phone, branch) VALUES (?, ?, ?, ?)`
	res, err := r.gw.Execute(ctx, query, s.Name, s.Email, s.Phone, s.Branch)
	if err != nil {
		return err
	}
	s.ID = uint64(res.LastInsertID)
	return nil
}

func (r *StudentRepository) Update(ctx context.Context, s *entity.Student) error {
	query := `UPDATE students SET name = ?, email = ?, phone = ?, branch = ? WHERE id = ?`
	_, err := r.gw.Execute(ctx, query, s.Name, s.Email, s.Phone, s.Branch, s.ID)
	return err
}

func (r *StudentRepository) Delete(ctx context.Context, id uint64) error {
	query := `DELETE FROM students WHERE id = ?`
	_, err := r.gw.Execute(ctx, query, id)
	return err
}
