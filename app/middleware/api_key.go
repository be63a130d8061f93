package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	httpdto "github.com/vibast-solutions/ms-go-internship/app/dto/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

// APIKeyMiddleware protects machine endpoints such as /metrics with the
// reporting API key. An empty key disables the check.
type APIKeyMiddleware struct {
	apiKey string
}

func NewAPIKeyMiddleware(apiKey string) *APIKeyMiddleware {
	return &APIKeyMiddleware{apiKey: strings.TrimSpace(apiKey)}
}

func (m *APIKeyMiddleware) RequireAPIKey(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if m.apiKey == "" {
			return next(c)
		}

		apiKey := strings.TrimSpace(c.Request().Header.Get("X-API-Key"))
		if apiKey == "" {
			logrus.Debug("Missing x-api-key header")
			return c.JSON(http.StatusUnauthorized, httpdto.Error("unauthorized"))
		}
		if subtle.ConstantTimeCompare([]byte(apiKey), []byte(m.apiKey)) != 1 {
			logrus.Debug("Invalid x-api-key header")
			return c.JSON(http.StatusUnauthorized, httpdto.Error("unauthorized"))
		}

		return next(c)
	}
}
