package controller

import (
	"net/http"

	httpdto "github.com/vibast-solutions/ms-go-internship/app/dto/http"
	"github.com/vibast-solutions/ms-go-internship/app/middleware"
	"github.com/vibast-solutions/ms-go-internship/app/service"
	"github.com/vibast-solutions/ms-go-internship/app/types"

	"github.com/labstack/echo/v4"
)

// PageController serves the data behind the console pages. Every page is
// rendered as JSON for the browser front end.
type PageController struct {
	dashboard service.DashboardService
	catalog   service.CatalogService
	profiles  service.ProfileService
	reporting service.ReportingService
}

func NewPageController(
	dashboard service.DashboardService,
	catalog service.CatalogService,
	profiles service.ProfileService,
	reporting service.ReportingService,
) *PageController {
	return &PageController{
		dashboard: dashboard,
		catalog:   catalog,
		profiles:  profiles,
		reporting: reporting,
	}
}

func (c *PageController) Dashboard(ctx echo.Context) error {
	result, err := c.dashboard.Build(ctx.Request().Context(), middleware.PrincipalFrom(ctx))
	if err != nil {
		return respondError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, httpdto.NewDashboardResponse(result))
}

func (c *PageController) Students(ctx echo.Context) error {
	students, err := c.catalog.ListStudents(ctx.Request().Context())
	if err != nil {
		return respondError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, httpdto.StudentsResponse{
		Status:   httpdto.StatusOK,
		Students: httpdto.NewStudentResponses(students),
	})
}

func (c *PageController) Companies(ctx echo.Context) error {
	companies, err := c.catalog.ListCompanies(ctx.Request().Context())
	if err != nil {
		return respondError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, httpdto.CompaniesResponse{
		Status:    httpdto.StatusOK,
		Companies: httpdto.NewCompanyResponses(companies),
	})
}

// Internships also lists companies so the create form can offer them.
func (c *PageController) Internships(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	internships, err := c.catalog.ListInternships(reqCtx)
	if err != nil {
		return respondError(ctx, err)
	}
	companies, err := c.catalog.ListCompanies(reqCtx)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, httpdto.InternshipsResponse{
		Status:      httpdto.StatusOK,
		Internships: httpdto.NewInternshipResponses(internships),
		Companies:   httpdto.NewCompanyResponses(companies),
	})
}

func (c *PageController) Applications(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	applications, err := c.catalog.ListApplications(reqCtx)
	if err != nil {
		return respondError(ctx, err)
	}
	students, err := c.catalog.ListStudents(reqCtx)
	if err != nil {
		return respondError(ctx, err)
	}
	internships, err := c.catalog.ListInternships(reqCtx)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, httpdto.ApplicationsResponse{
		Status:       httpdto.StatusOK,
		Applications: httpdto.NewApplicationResponses(applications),
		Students:     httpdto.NewStudentResponses(students),
		Internships:  httpdto.NewInternshipResponses(internships),
	})
}

func (c *PageController) Database(ctx echo.Context) error {
	tables, err := c.reporting.Browse(ctx.Request().Context())
	if err != nil {
		return respondError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, httpdto.NewBrowseResponse(tables))
}

func (c *PageController) Labs(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, httpdto.NewLabsResponse(c.reporting.LabExamples()))
}

func (c *PageController) Profile(ctx echo.Context) error {
	result, err := c.profiles.Get(ctx.Request().Context(), middleware.PrincipalFrom(ctx))
	if err != nil {
		return respondError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, httpdto.NewProfileResponse(result))
}

func (c *PageController) UpdateProfile(ctx echo.Context) error {
	req, err := types.NewProfileRequestFromContext(ctx)
	if err != nil {
		return invalidBody(ctx)
	}

	result, err := c.profiles.Update(ctx.Request().Context(), middleware.PrincipalFrom(ctx), req)
	if err != nil {
		return respondError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, httpdto.NewProfileResponse(result))
}
