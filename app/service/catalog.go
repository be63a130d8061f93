package service

import (
	"context"

	"github.com/vibast-solutions/ms-go-internship/app/entity"
	"github.com/vibast-solutions/ms-go-internship/app/types"
)

type studentRepository interface {
	List(ctx context.Context) ([]*entity.Student, error)
	FindByID(ctx context.Context, id uint64) (*entity.Student, error)
	FindByUsername(ctx context.Context, username string) (*entity.Student, error)
	Create(ctx context.Context, s *entity.Student) error
	Update(ctx context.Context, s *entity.Student) error
	Delete(ctx context.Context, id uint64) error
}

type companyRepository interface {
	List(ctx context.Context) ([]*entity.Company, error)
	FindByID(ctx context.Context, id uint64) (*entity.Company, error)
	FindByUsername(ctx context.Context, username string) (*entity.Company, error)
	Create(ctx context.Context, c *entity.Company) error
	Update(ctx context.Context, c *entity.Company) error
	Delete(ctx context.Context, id uint64) error
}

type internshipRepository interface {
	List(ctx context.Context) ([]*entity.InternshipView, error)
	ListByCompany(ctx context.Context, companyID uint64) ([]*entity.InternshipView, error)
	Create(ctx context.Context, i *entity.Internship) error
	Update(ctx context.Context, i *entity.Internship) error
	Delete(ctx context.Context, id uint64) error
}

type applicationRepository interface {
	List(ctx context.Context) ([]*entity.ApplicationView, error)
	ListByCompany(ctx context.Context, companyID uint64) ([]*entity.ApplicationView, error)
	ListByStudent(ctx context.Context, studentID uint64) ([]*entity.ApplicationView, error)
	Create(ctx context.Context, a *entity.Application) error
	UpdateStatus(ctx context.Context, id uint64, status string) error
	Delete(ctx context.Context, id uint64) error
}

// CatalogService validates input before any statement reaches the database.
type CatalogService interface {
	ListStudents(ctx context.Context) ([]*entity.Student, error)
	CreateStudent(ctx context.Context, req *types.StudentRequest) (uint64, error)
	UpdateStudent(ctx context.Context, id uint64, req *types.StudentRequest) error
	DeleteStudent(ctx context.Context, id uint64) error

	ListCompanies(ctx context.Context) ([]*entity.Company, error)
	CreateCompany(ctx context.Context, req *types.CompanyRequest) (uint64, error)
	UpdateCompany(ctx context.Context, id uint64, req *types.CompanyRequest) error
	DeleteCompany(ctx context.Context, id uint64) error

	ListInternships(ctx context.Context) ([]*entity.InternshipView, error)
	CreateInternship(ctx context.Context, req *types.InternshipRequest) (uint64, error)
	UpdateInternship(ctx context.Context, id uint64, req *types.InternshipRequest) error
	DeleteInternship(ctx context.Context, id uint64) error

	ListApplications(ctx context.Context) ([]*entity.ApplicationView, error)
	CreateApplication(ctx context.Context, req *types.ApplicationRequest) (uint64, error)
	UpdateApplicationStatus(ctx context.Context, id uint64, req *types.ApplicationStatusRequest) error
	DeleteApplication(ctx context.Context, id uint64) error
}

type catalogService struct {
	students     studentRepository
	companies    companyRepository
	internships  internshipRepository
	applications applicationRepository
}

func NewCatalogService(
	students studentRepository,
	companies companyRepository,
	internships internshipRepository,
	applications applicationRepository,
) CatalogService {
	return &catalogService{
		students:     students,
		companies:    companies,
		internships:  internships,
		applications: applications,
	}
}

func (s *catalogService) ListStudents(ctx context.Context) ([]*entity.Student, error) {
	return s.students.List(ctx)
}

func (s *catalogService) CreateStudent(ctx context.Context, req *types.StudentRequest) (uint64, error) {
	if err := req.Validate(); err != nil {
		return 0, err
	}
	student := req.ToEntity(0)
	if err := s.students.Create(ctx, student); err != nil {
		return 0, err
	}
	return student.ID, nil
}

func (s *catalogService) UpdateStudent(ctx context.Context, id uint64, req *types.StudentRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	return s.students.Update(ctx, req.ToEntity(id))
}

func (s *catalogService) DeleteStudent(ctx context.Context, id uint64) error {
	return s.students.Delete(ctx, id)
}

func (s *catalogService) ListCompanies(ctx context.Context) ([]*entity.Company, error) {
	return s.companies.List(ctx)
}

func (s *catalogService) CreateCompany(ctx context.Context, req *types.CompanyRequest) (uint64, error) {
	if err := req.Validate(); err != nil {
		return 0, err
	}
	company := req.ToEntity(0)
	if err := s.companies.Create(ctx, company); err != nil {
		return 0, err
	}
	return company.ID, nil
}

func (s *catalogService) UpdateCompany(ctx context.Context, id uint64, req *types.CompanyRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	return s.companies.Update(ctx, req.ToEntity(id))
}

func (s *catalogService) DeleteCompany(ctx context.Context, id uint64) error {
	return s.companies.Delete(ctx, id)
}

func (s *catalogService) ListInternships(ctx context.Context) ([]*entity.InternshipView, error) {
	return s.internships.List(ctx)
}

func (s *catalogService) CreateInternship(ctx context.Context, req *types.InternshipRequest) (uint64, error) {
	if err := req.Validate(); err != nil {
		return 0, err
	}
	internship := req.ToEntity(0)
	if err := s.internships.Create(ctx, internship); err != nil {
		return 0, err
	}
	return internship.ID, nil
}

func (s *catalogService) UpdateInternship(ctx context.Context, id uint64, req *types.InternshipRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	return s.internships.Update(ctx, req.ToEntity(id))
}

func (s *catalogService) DeleteInternship(ctx context.Context, id uint64) error {
	return s.internships.Delete(ctx, id)
}

func (s *catalogService) ListApplications(ctx context.Context) ([]*entity.ApplicationView, error) {
	return s.applications.List(ctx)
}

// CreateApplication only checks that both ids are present; whether they exist
// is left to the foreign keys.
func (s *catalogService) CreateApplication(ctx context.Context, req *types.ApplicationRequest) (uint64, error) {
	if err := req.Validate(); err != nil {
		return 0, err
	}
	application := req.ToEntity()
	if err := s.applications.Create(ctx, application); err != nil {
		return 0, err
	}
	return application.ID, nil
}

func (s *catalogService) UpdateApplicationStatus(ctx context.Context, id uint64, req *types.ApplicationStatusRequest) error {
	return s.applications.UpdateStatus(ctx, id, req.StatusOrDefault())
}

func (s *catalogService) DeleteApplication(ctx context.Context, id uint64) error {
	return s.applications.Delete(ctx, id)
}
