package middleware

import (
	"net/http"

	"github.com/vibast-solutions/ms-go-internship/app/apperr"
	httpdto "github.com/vibast-solutions/ms-go-internship/app/dto/http"
	"github.com/vibast-solutions/ms-go-internship/app/entity"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

const (
	contextKeyPrincipal = "principal"
	contextKeyResolved  = "principal_resolved"

	LoginPath = "/login"
)

type sessionParser interface {
	Parse(token string) (*entity.Principal, error)
}

// Guard decides whether a resolved principal may use a route. A nil principal
// means the request carries no valid session.
type Guard func(principal *entity.Principal) error

func Authenticated(principal *entity.Principal) error {
	if principal == nil {
		return apperr.ErrAuthenticationRequired
	}
	return nil
}

func AdminOnly(principal *entity.Principal) error {
	if err := Authenticated(principal); err != nil {
		return err
	}
	if !principal.IsAdmin() {
		return apperr.ErrAdminRequired
	}
	return nil
}

// CompanyOrAdmin rejects students and any role outside the known three.
func CompanyOrAdmin(principal *entity.Principal) error {
	if err := Authenticated(principal); err != nil {
		return err
	}
	if !principal.IsCompanyOrAdmin() {
		return apperr.ErrCompanyRequired
	}
	return nil
}

type SessionMiddleware struct {
	sessions   sessionParser
	cookieName string
}

func NewSessionMiddleware(sessions sessionParser, cookieName string) *SessionMiddleware {
	return &SessionMiddleware{sessions: sessions, cookieName: cookieName}
}

func (m *SessionMiddleware) CookieName() string {
	return m.cookieName
}

// Resolve reads the session cookie at most once per request and stores the
// principal on the context. A missing or invalid cookie resolves to nil.
func (m *SessionMiddleware) Resolve(c echo.Context) *entity.Principal {
	if resolved, _ := c.Get(contextKeyResolved).(bool); resolved {
		return PrincipalFrom(c)
	}
	c.Set(contextKeyResolved, true)

	cookie, err := c.Cookie(m.cookieName)
	if err != nil || cookie.Value == "" {
		return nil
	}

	principal, err := m.sessions.Parse(cookie.Value)
	if err != nil {
		logrus.WithError(err).Debug("Ignoring invalid session cookie")
		return nil
	}

	c.Set(contextKeyPrincipal, principal)
	return principal
}

// RequireAPI guards JSON endpoints: no session is a 401, a denied role is a 403.
func (m *SessionMiddleware) RequireAPI(guard Guard) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			principal := m.Resolve(c)
			if err := guard(principal); err != nil {
				logrus.WithFields(logrus.Fields{
					"path":   c.Path(),
					"method": c.Request().Method,
				}).WithError(err).Warn("API request denied")
				return c.JSON(apperr.HTTPStatus(err), httpdto.Error(err.Error()))
			}
			return next(c)
		}
	}
}

// RequirePage guards page routes: no session redirects to the login page, a
// denied role is a 403 with the denial message.
func (m *SessionMiddleware) RequirePage(guard Guard) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			principal := m.Resolve(c)
			if principal == nil {
				logrus.WithField("path", c.Path()).Debug("Redirecting anonymous request to login")
				return c.Redirect(http.StatusFound, LoginPath)
			}
			if err := guard(principal); err != nil {
				logrus.WithFields(logrus.Fields{
					"path":     c.Path(),
					"username": principal.Username,
					"role":     principal.Role,
				}).Warn("Page request denied")
				return c.JSON(apperr.HTTPStatus(err), httpdto.Error(err.Error()))
			}
			return next(c)
		}
	}
}

func PrincipalFrom(c echo.Context) *entity.Principal {
	principal, _ := c.Get(contextKeyPrincipal).(*entity.Principal)
	return principal
}

// SetPrincipal replaces the request's principal, used right after login or
// logout so the rest of the request sees the new session state.
func SetPrincipal(c echo.Context, principal *entity.Principal) {
	c.Set(contextKeyResolved, true)
	c.Set(contextKeyPrincipal, principal)
}
