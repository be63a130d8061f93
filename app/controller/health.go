package controller

import (
	"context"
	"net/http"

	httpdto "github.com/vibast-solutions/ms-go-internship/app/dto/http"

	"github.com/labstack/echo/v4"
)

type pinger interface {
	PingContext(ctx context.Context) error
}

type HealthController struct {
	db pinger
}

func NewHealthController(db pinger) *HealthController {
	return &HealthController{db: db}
}

func (c *HealthController) Healthz(ctx echo.Context) error {
	if err := c.db.PingContext(ctx.Request().Context()); err != nil {
		return ctx.JSON(http.StatusServiceUnavailable, httpdto.Error("database unavailable"))
	}
	return ctx.JSON(http.StatusOK, httpdto.OK())
}
