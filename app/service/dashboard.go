package service

import (
	"context"

	"github.com/vibast-solutions/ms-go-internship/app/dto"
	"github.com/vibast-solutions/ms-go-internship/app/entity"
)

type DashboardService interface {
	Build(ctx context.Context, principal *entity.Principal) (*dto.DashboardResult, error)
}

type dashboardService struct {
	students     studentRepository
	companies    companyRepository
	internships  internshipRepository
	applications applicationRepository
}

func NewDashboardService(
	students studentRepository,
	companies companyRepository,
	internships internshipRepository,
	applications applicationRepository,
) DashboardService {
	return &dashboardService{
		students:     students,
		companies:    companies,
		internships:  internships,
		applications: applications,
	}
}

// Build assembles the index page data for the caller's role. A company or
// student account without a matching profile row gets empty lists.
func (s *dashboardService) Build(ctx context.Context, principal *entity.Principal) (*dto.DashboardResult, error) {
	result := &dto.DashboardResult{
		Students:     []*entity.Student{},
		Companies:    []*entity.Company{},
		Internships:  []*entity.InternshipView{},
		Applications: []*entity.ApplicationView{},
	}
	if principal == nil {
		return result, nil
	}
	result.Role = principal.Role

	var err error
	switch principal.Role {
	case entity.RoleAdmin:
		err = s.buildAdmin(ctx, result)
	case entity.RoleCompany:
		err = s.buildCompany(ctx, principal.Username, result)
	case entity.RoleStudent:
		err = s.buildStudent(ctx, principal.Username, result)
	}
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *dashboardService) buildAdmin(ctx context.Context, result *dto.DashboardResult) error {
	var err error
	if result.Students, err = s.students.List(ctx); err != nil {
		return err
	}
	if result.Companies, err = s.companies.List(ctx); err != nil {
		return err
	}
	if result.Internships, err = s.internships.List(ctx); err != nil {
		return err
	}
	result.Applications, err = s.applications.List(ctx)
	return err
}

func (s *dashboardService) buildCompany(ctx context.Context, username string, result *dto.DashboardResult) error {
	company, err := s.companies.FindByUsername(ctx, username)
	if err != nil {
		return err
	}

	var companyID uint64
	if company != nil {
		result.Companies = []*entity.Company{company}
		companyID = company.ID
	}

	if result.Internships, err = s.internships.ListByCompany(ctx, companyID); err != nil {
		return err
	}
	result.Applications, err = s.applications.ListByCompany(ctx, companyID)
	return err
}

func (s *dashboardService) buildStudent(ctx context.Context, username string, result *dto.DashboardResult) error {
	student, err := s.students.FindByUsername(ctx, username)
	if err != nil {
		return err
	}

	var studentID uint64
	if student != nil {
		result.Students = []*entity.Student{student}
		studentID = student.ID
	}

	if result.Companies, err = s.companies.List(ctx); err != nil {
		return err
	}
	if result.Internships, err = s.internships.List(ctx); err != nil {
		return err
	}
	result.Applications, err = s.applications.ListByStudent(ctx, studentID)
	return err
}
