package service

import (
	"context"

	"github.com/vibast-solutions/ms-go-internship/app/apperr"
	"github.com/vibast-solutions/ms-go-internship/app/dto"
	"github.com/vibast-solutions/ms-go-internship/app/entity"
	"github.com/vibast-solutions/ms-go-internship/app/types"
)

var (
	ErrStudentProfileNotFound = apperr.Validation("Student profile not found")
	ErrCompanyProfileNotFound = apperr.Validation("Company profile not found")
	ErrInvalidUserType        = apperr.Authorization("Invalid user type")
)

type ProfileService interface {
	Get(ctx context.Context, principal *entity.Principal) (*dto.ProfileResult, error)
	Update(ctx context.Context, principal *entity.Principal, req *types.ProfileRequest) (*dto.ProfileResult, error)
}

type profileService struct {
	students  studentRepository
	companies companyRepository
}

func NewProfileService(students studentRepository, companies companyRepository) ProfileService {
	return &profileService{students: students, companies: companies}
}

func (s *profileService) Get(ctx context.Context, principal *entity.Principal) (*dto.ProfileResult, error) {
	if principal == nil {
		return nil, apperr.ErrAuthenticationRequired
	}

	switch principal.Role {
	case entity.RoleStudent:
		student, err := s.students.FindByUsername(ctx, principal.Username)
		if err != nil {
			return nil, err
		}
		if student == nil {
			return nil, ErrStudentProfileNotFound
		}
		return &dto.ProfileResult{Role: principal.Role, Student: student}, nil
	case entity.RoleCompany:
		company, err := s.companies.FindByUsername(ctx, principal.Username)
		if err != nil {
			return nil, err
		}
		if company == nil {
			return nil, ErrCompanyProfileNotFound
		}
		return &dto.ProfileResult{Role: principal.Role, Company: company}, nil
	default:
		return nil, ErrInvalidUserType
	}
}

// Update rewrites the caller's own profile row and returns the stored result.
func (s *profileService) Update(ctx context.Context, principal *entity.Principal, req *types.ProfileRequest) (*dto.ProfileResult, error) {
	current, err := s.Get(ctx, principal)
	if err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if current.Student != nil {
		student := req.StudentRequest().ToEntity(current.Student.ID)
		if err := s.students.Update(ctx, student); err != nil {
			return nil, err
		}
		return &dto.ProfileResult{Role: current.Role, Student: student}, nil
	}

	company := req.CompanyRequest().ToEntity(current.Company.ID)
	if err := s.companies.Update(ctx, company); err != nil {
		return nil, err
	}
	return &dto.ProfileResult{Role: current.Role, Company: company}, nil
}
