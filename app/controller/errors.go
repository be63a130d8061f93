package controller

import (
	"net/http"
	"strconv"

	"github.com/vibast-solutions/ms-go-internship/app/apperr"
	httpdto "github.com/vibast-solutions/ms-go-internship/app/dto/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

var errInvalidID = apperr.Validation("invalid id")

// respondError converts a service failure into the JSON error envelope.
// Persistence failures keep the driver message.
func respondError(ctx echo.Context, err error) error {
	status := apperr.HTTPStatus(err)
	entry := logrus.WithFields(logrus.Fields{
		"method": ctx.Request().Method,
		"path":   ctx.Path(),
		"kind":   apperr.KindOf(err).String(),
	}).WithError(err)
	if status >= http.StatusInternalServerError {
		entry.Error("Request failed")
	} else {
		entry.Debug("Request rejected")
	}

	return ctx.JSON(status, httpdto.Error(err.Error()))
}

func invalidBody(ctx echo.Context) error {
	return ctx.JSON(http.StatusBadRequest, httpdto.Error("invalid request body"))
}

func pathID(ctx echo.Context) (uint64, error) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, errInvalidID
	}
	return id, nil
}
