package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/vibast-solutions/ms-go-internship/app/middleware"

	"github.com/labstack/echo/v4"
)

func runAPIKey(t *testing.T, configured, header string) int {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	if header != "" {
		req.Header.Set("X-API-Key", header)
	}
	rec := httptest.NewRecorder()
	ctx := e.NewContext(req, rec)

	handler := middleware.NewAPIKeyMiddleware(configured).RequireAPIKey(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	if err := handler(ctx); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	return rec.Code
}

func TestRequireAPIKey_DisabledWithoutKey(t *testing.T) {
	if code := runAPIKey(t, "", ""); code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", code)
	}
}

func TestRequireAPIKey_MissingHeader(t *testing.T) {
	if code := runAPIKey(t, "secret-key", ""); code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", code)
	}
}

func TestRequireAPIKey_InvalidAPIKey(t *testing.T) {
	if code := runAPIKey(t, "secret-key", "invalid-key"); code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", code)
	}
}

func TestRequireAPIKey_ValidKey(t *testing.T) {
	if code := runAPIKey(t, " secret-key ", "secret-key"); code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", code)
	}
}
