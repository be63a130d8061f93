package controller

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/vibast-solutions/ms-go-internship/app/apperr"
	httpdto "github.com/vibast-solutions/ms-go-internship/app/dto/http"
	"github.com/vibast-solutions/ms-go-internship/app/repository"
	"github.com/vibast-solutions/ms-go-internship/app/service"
	"github.com/vibast-solutions/ms-go-internship/app/types"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

const (
	mimeCSV  = "text/csv; charset=utf-8"
	mimeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

type queryRecorder interface {
	RecordQuery(outcome string)
}

type ReportingController struct {
	reporting service.ReportingService
	metrics   queryRecorder
}

// NewReportingController accepts a nil recorder when metrics are not wired.
func NewReportingController(reporting service.ReportingService, metrics queryRecorder) *ReportingController {
	return &ReportingController{reporting: reporting, metrics: metrics}
}

func (c *ReportingController) Overview(ctx echo.Context) error {
	tables, err := c.reporting.Overview(ctx.Request().Context())
	if err != nil {
		return respondError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, httpdto.NewOverviewResponse(tables))
}

func (c *ReportingController) TableSample(ctx echo.Context) error {
	limit := repository.DefaultSampleLimit
	if raw := ctx.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return respondError(ctx, apperr.Validation("limit must be a number"))
		}
		limit = n
	}

	rs, err := c.reporting.Sample(ctx.Request().Context(), ctx.Param("name"), limit)
	if err != nil {
		return respondError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, httpdto.NewRowsResponse(rs))
}

// TableExport sends up to ExportRowLimit rows of a table as a CSV attachment,
// or as a workbook when format=xlsx.
func (c *ReportingController) TableExport(ctx echo.Context) error {
	table := ctx.Param("name")
	rs, err := c.reporting.LoadExport(ctx.Request().Context(), table)
	if err != nil {
		return respondError(ctx, err)
	}

	resp := ctx.Response()
	if ctx.QueryParam("format") == "xlsx" {
		resp.Header().Set(echo.HeaderContentType, mimeXLSX)
		resp.Header().Set(echo.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s.xlsx"`, table))
		resp.WriteHeader(http.StatusOK)
		err = c.reporting.WriteXLSX(resp, table, rs)
	} else {
		resp.Header().Set(echo.HeaderContentType, mimeCSV)
		resp.Header().Set(echo.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s.csv"`, table))
		resp.WriteHeader(http.StatusOK)
		err = c.reporting.WriteCSV(resp, rs)
	}
	if err != nil {
		// Headers are already sent; the client sees a truncated file.
		logrus.WithError(err).WithField("table", table).Error("Export interrupted")
	}
	return nil
}

func (c *ReportingController) Query(ctx echo.Context) error {
	req, err := types.NewQueryRequestFromContext(ctx)
	if err != nil {
		return invalidBody(ctx)
	}

	rs, err := c.reporting.Query(ctx.Request().Context(), req.Query)
	if err != nil {
		if apperr.KindOf(err) == apperr.KindValidation {
			c.record("rejected")
			return ctx.JSON(http.StatusBadRequest, httpdto.Error(err.Error()))
		}
		c.record("failed")
		logrus.WithError(err).Warn("Console query failed")
		return ctx.JSON(http.StatusInternalServerError, httpdto.Error("Query failed: "+err.Error()))
	}

	c.record("ok")
	return ctx.JSON(http.StatusOK, httpdto.NewRowsResponse(rs))
}

func (c *ReportingController) record(outcome string) {
	if c.metrics != nil {
		c.metrics.RecordQuery(outcome)
	}
}
