package controller

import (
	"github.com/vibast-solutions/ms-go-internship/app/middleware"

	"github.com/labstack/echo/v4"
)

// Router binds every controller to its route and access guard.
type Router struct {
	Auth      *AuthController
	Catalog   *CatalogController
	Pages     *PageController
	Reporting *ReportingController
	Health    *HealthController

	Sessions *middleware.SessionMiddleware
	APIKey   *middleware.APIKeyMiddleware
	Metrics  *middleware.Metrics
}

func (r *Router) Register(e *echo.Echo) {
	e.POST("/login", r.Auth.Login)
	e.POST("/register", r.Auth.Register)
	e.POST("/forgot-password", r.Auth.ForgotPassword)
	e.POST("/reset-password", r.Auth.ResetPassword)
	e.GET("/logout", r.Auth.Logout)
	e.POST("/logout", r.Auth.Logout)
	e.GET("/healthz", r.Health.Healthz)
	if r.Metrics != nil {
		e.GET("/metrics", echo.WrapHandler(r.Metrics.Handler()), r.APIKey.RequireAPIKey)
	}

	page := r.Sessions.RequirePage(middleware.Authenticated)
	e.GET("/", r.Pages.Dashboard, page)
	e.GET("/students", r.Pages.Students, r.Sessions.RequirePage(middleware.AdminOnly))
	e.GET("/companies", r.Pages.Companies, page)
	e.GET("/internships", r.Pages.Internships, page)
	e.GET("/applications", r.Pages.Applications, page)
	e.GET("/db", r.Pages.Database, page)
	e.GET("/labs", r.Pages.Labs, page)
	e.GET("/profile", r.Pages.Profile, page)
	e.POST("/profile", r.Pages.UpdateProfile, page)

	api := e.Group("/api")
	authenticated := r.Sessions.RequireAPI(middleware.Authenticated)

	api.POST("/students", r.Catalog.CreateStudent, r.Sessions.RequireAPI(middleware.AdminOnly))
	api.PUT("/students/:id", r.Catalog.UpdateStudent, authenticated)
	api.DELETE("/students/:id", r.Catalog.DeleteStudent, authenticated)

	api.POST("/companies", r.Catalog.CreateCompany, authenticated)
	api.PUT("/companies/:id", r.Catalog.UpdateCompany, authenticated)
	api.DELETE("/companies/:id", r.Catalog.DeleteCompany, authenticated)

	api.POST("/internships", r.Catalog.CreateInternship, authenticated)
	api.PUT("/internships/:id", r.Catalog.UpdateInternship, authenticated)
	api.DELETE("/internships/:id", r.Catalog.DeleteInternship, authenticated)

	api.POST("/applications", r.Catalog.CreateApplication, authenticated)
	api.PUT("/applications/:id", r.Catalog.UpdateApplication, r.Sessions.RequireAPI(middleware.CompanyOrAdmin))
	api.DELETE("/applications/:id", r.Catalog.DeleteApplication, authenticated)

	api.GET("/dashboard", r.Pages.Dashboard, authenticated)
	api.GET("/db_overview", r.Reporting.Overview, authenticated)
	api.GET("/table_sample/:name", r.Reporting.TableSample, authenticated)
	api.GET("/table_export/:name", r.Reporting.TableExport, authenticated)
	api.POST("/query", r.Reporting.Query, authenticated)
}
