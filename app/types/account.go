package types

import (
	"strings"

	"github.com/vibast-solutions/ms-go-internship/app/apperr"
	"github.com/vibast-solutions/ms-go-internship/app/entity"

	"github.com/labstack/echo/v4"
)

type LoginRequest struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

func NewLoginRequestFromContext(ctx echo.Context) (*LoginRequest, error) {
	var body LoginRequest
	if err := ctx.Bind(&body); err != nil {
		return nil, err
	}

	return &body, nil
}

func (r *LoginRequest) Validate() error {
	if strings.TrimSpace(r.Username) == "" || r.Password == "" {
		return apperr.Validation("username and password required")
	}

	return nil
}

type RegisterRequest struct {
	Username        string `json:"username" form:"username"`
	Password        string `json:"password" form:"password"`
	ConfirmPassword string `json:"confirm_password" form:"confirm_password"`
	Email           string `json:"email" form:"email"`
	AccountType     string `json:"account_type" form:"account_type"`

	StudentName   string `json:"student_name" form:"student_name"`
	StudentPhone  string `json:"student_phone" form:"student_phone"`
	StudentBranch string `json:"student_branch" form:"student_branch"`

	CompanyName   string `json:"company_name" form:"company_name"`
	ContactPerson string `json:"contact_person" form:"contact_person"`
	CompanyPhone  string `json:"company_phone" form:"company_phone"`
}

func NewRegisterRequestFromContext(ctx echo.Context) (*RegisterRequest, error) {
	var body RegisterRequest
	if err := ctx.Bind(&body); err != nil {
		return nil, err
	}

	return &body, nil
}

// Validate checks field presence, confirmation and email syntax. The password
// length policy is configurable and enforced by the account service.
func (r *RegisterRequest) Validate() error {
	if strings.TrimSpace(r.Username) == "" || r.Password == "" || r.ConfirmPassword == "" ||
		strings.TrimSpace(r.Email) == "" || r.AccountType == "" {
		return apperr.Validation("All fields are required")
	}
	if r.Password != r.ConfirmPassword {
		return apperr.Validation("Passwords do not match")
	}
	if !IsValidEmail(strings.TrimSpace(r.Email)) {
		return apperr.Validation("Invalid email address")
	}
	role := entity.Role(r.AccountType)
	if role != entity.RoleStudent && role != entity.RoleCompany {
		return apperr.Validation("Invalid account type")
	}

	return nil
}

type ForgotPasswordRequest struct {
	Email string `json:"email" form:"email"`
}

func NewForgotPasswordRequestFromContext(ctx echo.Context) (*ForgotPasswordRequest, error) {
	var body ForgotPasswordRequest
	if err := ctx.Bind(&body); err != nil {
		return nil, err
	}

	return &body, nil
}

func (r *ForgotPasswordRequest) Validate() error {
	email := strings.TrimSpace(r.Email)
	if email == "" {
		return apperr.Validation("Email is required")
	}
	if !IsValidEmail(email) {
		return apperr.Validation("Invalid email address")
	}

	return nil
}

type ResetPasswordRequest struct {
	Token           string `json:"token" form:"token"`
	Password        string `json:"password" form:"password"`
	ConfirmPassword string `json:"confirm_password" form:"confirm_password"`
}

func NewResetPasswordRequestFromContext(ctx echo.Context) (*ResetPasswordRequest, error) {
	var body ResetPasswordRequest
	if err := ctx.Bind(&body); err != nil {
		return nil, err
	}

	return &body, nil
}

func (r *ResetPasswordRequest) Validate() error {
	if strings.TrimSpace(r.Token) == "" || r.Password == "" || r.ConfirmPassword == "" {
		return apperr.Validation("All fields are required")
	}
	if r.Password != r.ConfirmPassword {
		return apperr.Validation("Passwords do not match")
	}

	return nil
}
