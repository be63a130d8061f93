package controller

import (
	"net/http"

	httpdto "github.com/vibast-solutions/ms-go-internship/app/dto/http"
	"github.com/vibast-solutions/ms-go-internship/app/service"
	"github.com/vibast-solutions/ms-go-internship/app/types"

	"github.com/labstack/echo/v4"
)

// CatalogController serves the JSON CRUD endpoints under /api.
type CatalogController struct {
	catalog service.CatalogService
}

func NewCatalogController(catalog service.CatalogService) *CatalogController {
	return &CatalogController{catalog: catalog}
}

func (c *CatalogController) CreateStudent(ctx echo.Context) error {
	req, err := types.NewStudentRequestFromContext(ctx)
	if err != nil {
		return invalidBody(ctx)
	}

	id, err := c.catalog.CreateStudent(ctx.Request().Context(), req)
	if err != nil {
		return respondError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, httpdto.Created(id))
}

func (c *CatalogController) UpdateStudent(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return respondError(ctx, err)
	}
	req, err := types.NewStudentRequestFromContext(ctx)
	if err != nil {
		return invalidBody(ctx)
	}

	if err := c.catalog.UpdateStudent(ctx.Request().Context(), id, req); err != nil {
		return respondError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, httpdto.OK())
}

func (c *CatalogController) DeleteStudent(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	if err := c.catalog.DeleteStudent(ctx.Request().Context(), id); err != nil {
		return respondError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, httpdto.OK())
}

func (c *CatalogController) CreateCompany(ctx echo.Context) error {
	req, err := types.NewCompanyRequestFromContext(ctx)
	if err != nil {
		return invalidBody(ctx)
	}

	id, err := c.catalog.CreateCompany(ctx.Request().Context(), req)
	if err != nil {
		return respondError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, httpdto.Created(id))
}

func (c *CatalogController) UpdateCompany(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return respondError(ctx, err)
	}
	req, err := types.NewCompanyRequestFromContext(ctx)
	if err != nil {
		return invalidBody(ctx)
	}

	if err := c.catalog.UpdateCompany(ctx.Request().Context(), id, req); err != nil {
		return respondError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, httpdto.OK())
}

func (c *CatalogController) DeleteCompany(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	if err := c.catalog.DeleteCompany(ctx.Request().Context(), id); err != nil {
		return respondError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, httpdto.OK())
}

func (c *CatalogController) CreateInternship(ctx echo.Context) error {
	req, err := types.NewInternshipRequestFromContext(ctx)
	if err != nil {
		return invalidBody(ctx)
	}

	id, err := c.catalog.CreateInternship(ctx.Request().Context(), req)
	if err != nil {
		return respondError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, httpdto.Created(id))
}

func (c *CatalogController) UpdateInternship(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return respondError(ctx, err)
	}
	req, err := types.NewInternshipRequestFromContext(ctx)
	if err != nil {
		return invalidBody(ctx)
	}

	if err := c.catalog.UpdateInternship(ctx.Request().Context(), id, req); err != nil {
		return respondError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, httpdto.OK())
}

func (c *CatalogController) DeleteInternship(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	if err := c.catalog.DeleteInternship(ctx.Request().Context(), id); err != nil {
		return respondError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, httpdto.OK())
}

func (c *CatalogController) CreateApplication(ctx echo.Context) error {
	req, err := types.NewApplicationRequestFromContext(ctx)
	if err != nil {
		return invalidBody(ctx)
	}

	id, err := c.catalog.CreateApplication(ctx.Request().Context(), req)
	if err != nil {
		return respondError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, httpdto.Created(id))
}

// UpdateApplication changes only the status of an application.
func (c *CatalogController) UpdateApplication(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return respondError(ctx, err)
	}
	req, err := types.NewApplicationStatusRequestFromContext(ctx)
	if err != nil {
		return invalidBody(ctx)
	}

	if err := c.catalog.UpdateApplicationStatus(ctx.Request().Context(), id, req); err != nil {
		return respondError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, httpdto.OK())
}

func (c *CatalogController) DeleteApplication(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	if err := c.catalog.DeleteApplication(ctx.Request().Context(), id); err != nil {
		return respondError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, httpdto.OK())
}
