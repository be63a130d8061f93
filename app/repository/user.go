package repository

import (
	"context"
	"time"

	"github.com/vibast-solutions/ms-go-internship/app/entity"
)

type UserRepository struct {
	gw *Gateway
}

func NewUserRepository(gw *Gateway) *UserRepository {
	return &UserRepository{gw: gw}
}

func (r *UserRepository) findOne(ctx context.Context, where string, arg any) (*entity.User, error) {
	query := `
		SELECT id, username, password_hash, email, role, reset_token, reset_token_expires
		FROM users WHERE ` + where
	user := &entity.User{}
	found, err := r.gw.QueryRow(ctx, query, []any{arg},
		&user.ID,
		&user.Username,
		&user.PasswordHash,
		&user.Email,
		&user.Role,
		&user.ResetToken,
		&user.ResetTokenExpires,
	)
	if err != nil || !found {
		return nil, err
	}
	return user, nil
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	return r.findOne(ctx, "username = ?", username)
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.findOne(ctx, "email = ?", email)
}

func (r *UserRepository) FindByResetToken(ctx context.Context, token string) (*entity.User, error) {
	return r.findOne(ctx, "reset_token = ? AND reset_token_expires > UTC_TIMESTAMP()", token)
}

const (
	UsersUsernameKey = "uq_users_username"
	UsersEmailKey    = "uq_users_email"
)

func (r *UserRepository) Create(ctx context.Context, user *entity.User) error {
	query := `INSERT INTO users (username, password_hash, email, role) VALUES (?, ?, ?, ?)`
	res, err := r.gw.Execute(ctx, query, user.Username, user.PasswordHash, user.Email, string(user.Role))
	if err != nil {
		return err
	}
	user.ID = uint64(res.LastInsertID)
	return nil
}

func (r *UserRepository) UpdatePassword(ctx context.Context, userID uint64, passwordHash string) error {
	query := `UPDATE users SET password_hash = ? WHERE id = ?`
	_, err := r.gw.Execute(ctx, query, passwordHash, userID)
	return err
}

// SetResetToken stores a token valid for ttl. The expiry is computed by the
// server on the same UTC clock FindByResetToken compares against, so neither
// the application host's zone nor the session time_zone shifts the window.
func (r *UserRepository) SetResetToken(ctx context.Context, email, token string, ttl time.Duration) error {
	query := `UPDATE users SET reset_token = ?, reset_token_expires = DATE_ADD(UTC_TIMESTAMP(), INTERVAL ? SECOND) WHERE email = ?`
	_, err := r.gw.Execute(ctx, query, token, int64(ttl/time.Second), email)
	return err
}

func (r *UserRepository) ClearResetToken(ctx context.Context, userID uint64) error {
	query := `UPDATE users SET reset_token = NULL, reset_token_expires = NULL WHERE id = ?`
	_, err := r.gw.Execute(ctx, query, userID)
	return err
}

func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if _, err := r.gw.QueryRow(ctx, `SELECT COUNT(*) FROM users`, nil, &count); err != nil {
		return 0, err
	}
	return count, nil
}
