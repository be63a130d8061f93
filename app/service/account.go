package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/vibast-solutions/ms-go-internship/app/apperr"
	"github.com/vibast-solutions/ms-go-internship/app/entity"
	"github.com/vibast-solutions/ms-go-internship/app/repository"
	"github.com/vibast-solutions/ms-go-internship/app/types"
	"github.com/vibast-solutions/ms-go-internship/config"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

const (
	ResetTokenTTL = time.Hour

	ForgotPasswordMessage = "If an account exists with that email, you will receive reset instructions shortly"
)

var (
	ErrUsernameTaken     = apperr.Validation("Username already exists")
	ErrEmailTaken        = apperr.Validation("Email already registered")
	ErrInvalidResetToken = apperr.Validation("invalid or expired token")
	ErrUserNotFound      = apperr.Validation("user not found")
)

type userRepository interface {
	FindByUsername(ctx context.Context, username string) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	FindByResetToken(ctx context.Context, token string) (*entity.User, error)
	Create(ctx context.Context, user *entity.User) error
	UpdatePassword(ctx context.Context, userID uint64, passwordHash string) error
	SetResetToken(ctx context.Context, email, token string, ttl time.Duration) error
	ClearResetToken(ctx context.Context, userID uint64) error
}

type studentCreator interface {
	Create(ctx context.Context, s *entity.Student) error
}

type companyCreator interface {
	Create(ctx context.Context, c *entity.Company) error
}

// AdminAction reports what EnsureAdmin had to do.
type AdminAction string

const (
	AdminCreated   AdminAction = "created"
	AdminRepaired  AdminAction = "password_reset"
	AdminUnchanged AdminAction = "unchanged"
)

type AccountService interface {
	Register(ctx context.Context, req *types.RegisterRequest) (*entity.Principal, error)
	Login(ctx context.Context, req *types.LoginRequest) (*entity.Principal, error)
	RequestPasswordReset(ctx context.Context, req *types.ForgotPasswordRequest) error
	ResetPassword(ctx context.Context, req *types.ResetPasswordRequest) error
	EnsureAdmin(ctx context.Context, admin config.AdminConfig) (AdminAction, error)
	SetPassword(ctx context.Context, username, password string) error
}

type accountService struct {
	userRepo    userRepository
	studentRepo studentCreator
	companyRepo companyCreator
	mailer      Mailer
	policy      config.PasswordPolicy
}

func NewAccountService(
	userRepo userRepository,
	studentRepo studentCreator,
	companyRepo companyCreator,
	mailer Mailer,
	policy config.PasswordPolicy,
) AccountService {
	return &accountService{
		userRepo:    userRepo,
		studentRepo: studentRepo,
		companyRepo: companyRepo,
		mailer:      mailer,
		policy:      policy,
	}
}

// Register creates the user and then its profile row. The two inserts are
// separate commits; a failed profile insert leaves the user in place and is
// only logged, the owner can fill the profile in later.
func (s *accountService) Register(ctx context.Context, req *types.RegisterRequest) (*entity.Principal, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if err := s.policy.Validate(req.Password); err != nil {
		return nil, apperr.Validation(err.Error())
	}

	username := strings.TrimSpace(req.Username)
	email := strings.TrimSpace(req.Email)
	role := entity.Role(req.AccountType)

	existing, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrUsernameTaken
	}

	existing, err = s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := hashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &entity.User{
		Username:     username,
		PasswordHash: hash,
		Email:        email,
		Role:         role,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, registrationConflict(err)
	}

	s.createProfile(ctx, req, user)

	body := fmt.Sprintf("Hi %s,\n\nWelcome to the Internship Management System. Your %s account has been created successfully.",
		username, role)
	if err := s.mailer.Send(ctx, email, "Welcome to Internship Management System", body); err != nil {
		logrus.WithError(err).WithField("email", email).Warn("Failed to send welcome email")
	}

	return &entity.Principal{Username: user.Username, Role: user.Role}, nil
}

// registrationConflict maps a unique-index violation from a registration that
// raced past the lookups onto the same errors the lookups return.
func registrationConflict(err error) error {
	key, _ := repository.DuplicateKey(err)
	switch key {
	case repository.UsersUsernameKey:
		return ErrUsernameTaken
	case repository.UsersEmailKey:
		return ErrEmailTaken
	}
	return err
}

func (s *accountService) createProfile(ctx context.Context, req *types.RegisterRequest, user *entity.User) {
	var err error
	switch user.Role {
	case entity.RoleStudent:
		name := strings.TrimSpace(req.StudentName)
		if name == "" {
			name = user.Username
		}
		err = s.studentRepo.Create(ctx, &entity.Student{
			Name:   name,
			Email:  types.NullString(user.Email),
			Phone:  types.NullString(req.StudentPhone),
			Branch: types.NullString(req.StudentBranch),
		})
	case entity.RoleCompany:
		name := strings.TrimSpace(req.CompanyName)
		if name == "" {
			name = user.Username
		}
		err = s.companyRepo.Create(ctx, &entity.Company{
			Name:          name,
			ContactPerson: types.NullString(req.ContactPerson),
			Email:         types.NullString(user.Email),
			Phone:         types.NullString(req.CompanyPhone),
		})
	}
	if err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"username": user.Username,
			"role":     user.Role,
		}).Warn("Could not create profile record")
	}
}

// Login never tells the caller whether the username or the password was wrong.
func (s *accountService) Login(ctx context.Context, req *types.LoginRequest) (*entity.Principal, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByUsername(ctx, strings.TrimSpace(req.Username))
	if err != nil {
		return nil, err
	}
	if user == nil {
		// Same bcrypt cost as a real check so timing does not reveal the username.
		verifyPassword(dummyPasswordHash(), req.Password)
		return nil, apperr.ErrInvalidCredentials
	}
	if !verifyPassword(user.PasswordHash, req.Password) {
		return nil, apperr.ErrInvalidCredentials
	}

	return &entity.Principal{Username: user.Username, Role: user.Role}, nil
}

// RequestPasswordReset succeeds the same way whether or not the email belongs
// to an account.
func (s *accountService) RequestPasswordReset(ctx context.Context, req *types.ForgotPasswordRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	email := strings.TrimSpace(req.Email)

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	if user == nil {
		logrus.WithField("email", email).Debug("Password reset requested for unknown email")
		return nil
	}

	token := uuid.NewString()
	if err := s.userRepo.SetResetToken(ctx, user.Email, token, ResetTokenTTL); err != nil {
		return err
	}

	body := fmt.Sprintf("A password reset was requested. Use this token to choose a new password: %s\n\n"+
		"If this wasn't you, please ignore this email.", token)
	if err := s.mailer.Send(ctx, user.Email, "Password Reset Instructions", body); err != nil {
		logrus.WithError(err).WithField("email", user.Email).Warn("Failed to send password reset email")
	}
	return nil
}

func (s *accountService) ResetPassword(ctx context.Context, req *types.ResetPasswordRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	if err := s.policy.Validate(req.Password); err != nil {
		return apperr.Validation(err.Error())
	}

	user, err := s.userRepo.FindByResetToken(ctx, strings.TrimSpace(req.Token))
	if err != nil {
		return err
	}
	if user == nil {
		return ErrInvalidResetToken
	}

	hash, err := hashPassword(req.Password)
	if err != nil {
		return err
	}
	if err := s.userRepo.UpdatePassword(ctx, user.ID, hash); err != nil {
		return err
	}
	return s.userRepo.ClearResetToken(ctx, user.ID)
}

// EnsureAdmin creates the configured admin account, or resets its password
// when the stored hash no longer matches the configured one.
func (s *accountService) EnsureAdmin(ctx context.Context, admin config.AdminConfig) (AdminAction, error) {
	if admin.Password == "" {
		return AdminUnchanged, apperr.Validation("admin password is not configured")
	}

	user, err := s.userRepo.FindByUsername(ctx, admin.Username)
	if err != nil {
		return AdminUnchanged, err
	}

	if user == nil {
		hash, err := hashPassword(admin.Password)
		if err != nil {
			return AdminUnchanged, err
		}
		err = s.userRepo.Create(ctx, &entity.User{
			Username:     admin.Username,
			PasswordHash: hash,
			Email:        admin.Email,
			Role:         entity.RoleAdmin,
		})
		if err != nil {
			return AdminUnchanged, err
		}
		return AdminCreated, nil
	}

	if verifyPassword(user.PasswordHash, admin.Password) {
		return AdminUnchanged, nil
	}

	hash, err := hashPassword(admin.Password)
	if err != nil {
		return AdminUnchanged, err
	}
	if err := s.userRepo.UpdatePassword(ctx, user.ID, hash); err != nil {
		return AdminUnchanged, err
	}
	return AdminRepaired, nil
}

func (s *accountService) SetPassword(ctx context.Context, username, password string) error {
	if err := s.policy.Validate(password); err != nil {
		return apperr.Validation(err.Error())
	}

	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}

	hash, err := hashPassword(password)
	if err != nil {
		return err
	}
	return s.userRepo.UpdatePassword(ctx, user.ID, hash)
}

var dummyPasswordHash = sync.OnceValue(func() string {
	hash, err := bcrypt.GenerateFromPassword([]byte("internship-login-placeholder"), bcrypt.DefaultCost)
	if err != nil {
		logrus.WithError(err).Error("Failed to prepare placeholder password hash")
		return ""
	}
	return string(hash)
})

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// verifyPassword treats unparsable hashes as a mismatch.
func verifyPassword(hash, password string) bool {
	if hash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
