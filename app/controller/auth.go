package controller

import (
	"errors"
	"net/http"
	"time"

	"github.com/vibast-solutions/ms-go-internship/app/apperr"
	httpdto "github.com/vibast-solutions/ms-go-internship/app/dto/http"
	"github.com/vibast-solutions/ms-go-internship/app/entity"
	"github.com/vibast-solutions/ms-go-internship/app/middleware"
	"github.com/vibast-solutions/ms-go-internship/app/service"
	"github.com/vibast-solutions/ms-go-internship/app/types"
	"github.com/vibast-solutions/ms-go-internship/config"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

const PasswordResetMessage = "Password has been reset"

type AuthController struct {
	accounts service.AccountService
	sessions service.SessionService
	cookie   config.SessionConfig
}

func NewAuthController(accounts service.AccountService, sessions service.SessionService, cookie config.SessionConfig) *AuthController {
	return &AuthController{accounts: accounts, sessions: sessions, cookie: cookie}
}

func (c *AuthController) Login(ctx echo.Context) error {
	req, err := types.NewLoginRequestFromContext(ctx)
	if err != nil {
		return invalidBody(ctx)
	}

	principal, err := c.accounts.Login(ctx.Request().Context(), req)
	if err != nil {
		if errors.Is(err, apperr.ErrInvalidCredentials) {
			logrus.WithField("username", req.Username).Info("Login failed")
			return ctx.JSON(http.StatusUnauthorized, httpdto.Error("invalid credentials"))
		}
		return respondError(ctx, err)
	}

	return c.startSession(ctx, principal, http.StatusOK)
}

func (c *AuthController) Register(ctx echo.Context) error {
	req, err := types.NewRegisterRequestFromContext(ctx)
	if err != nil {
		return invalidBody(ctx)
	}

	principal, err := c.accounts.Register(ctx.Request().Context(), req)
	if err != nil {
		return respondError(ctx, err)
	}

	logrus.WithFields(logrus.Fields{
		"username": principal.Username,
		"role":     principal.Role,
	}).Info("Account registered")
	return c.startSession(ctx, principal, http.StatusCreated)
}

// Logout drops the session cookie and sends the browser back to the login page.
func (c *AuthController) Logout(ctx echo.Context) error {
	ctx.SetCookie(&http.Cookie{
		Name:     c.cookie.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   c.cookie.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
	middleware.SetPrincipal(ctx, nil)

	return ctx.Redirect(http.StatusFound, middleware.LoginPath)
}

func (c *AuthController) ForgotPassword(ctx echo.Context) error {
	req, err := types.NewForgotPasswordRequestFromContext(ctx)
	if err != nil {
		return invalidBody(ctx)
	}

	if err := c.accounts.RequestPasswordReset(ctx.Request().Context(), req); err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, httpdto.Message(service.ForgotPasswordMessage))
}

func (c *AuthController) ResetPassword(ctx echo.Context) error {
	req, err := types.NewResetPasswordRequestFromContext(ctx)
	if err != nil {
		return invalidBody(ctx)
	}

	if err := c.accounts.ResetPassword(ctx.Request().Context(), req); err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, httpdto.Message(PasswordResetMessage))
}

func (c *AuthController) startSession(ctx echo.Context, principal *entity.Principal, status int) error {
	token, expiresAt, err := c.sessions.Issue(*principal)
	if err != nil {
		logrus.WithError(err).Error("Failed to issue session")
		return ctx.JSON(http.StatusInternalServerError, httpdto.Error("internal server error"))
	}

	ctx.SetCookie(&http.Cookie{
		Name:     c.cookie.CookieName,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		HttpOnly: true,
		Secure:   c.cookie.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
	middleware.SetPrincipal(ctx, principal)

	return ctx.JSON(status, httpdto.SessionResponse{
		Status:   httpdto.StatusOK,
		Username: principal.Username,
		Role:     principal.Role,
	})
}
