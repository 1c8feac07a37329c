package handler

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/okonst/portfolio-server/internal/logger"
	"github.com/okonst/portfolio-server/internal/model"
)

// AccountService is the account-lifecycle surface the auth endpoints consume.
type AccountService interface {
	Register(ctx context.Context, email, password, firstName, lastName string) (string, error)
	ConfirmEmail(ctx context.Context, userID uuid.UUID, encodedToken string) error
	Login(ctx context.Context, email, password string) (model.TokenPair, []string, error)
	ForgotPassword(ctx context.Context, email string) (string, error)
	ResetPassword(ctx context.Context, email, encodedToken, newPassword string) error
	ChangePassword(ctx context.Context, currentPassword, newPassword string) error
	DeleteAccount(ctx context.Context) error
}

// Auth serves the anonymous authentication endpoints.
type Auth struct {
	accounts AccountService
	sessions model.SessionManager
	logger   *logger.Logger
}

func NewAuth(accounts AccountService, sessions model.SessionManager, logger *logger.Logger) *Auth {
	return &Auth{accounts: accounts, sessions: sessions, logger: logger}
}

// RegisterRoutes mounts the auth endpoints on the given group.
func (h *Auth) RegisterRoutes(g *echo.Group) {
	auth := g.Group("/auth")
	auth.POST("/register", h.register)
	auth.GET("/confirm-email", h.confirmEmail)
	auth.POST("/login", h.login)
	auth.POST("/forgot-password", h.forgotPassword)
	auth.POST("/reset-password", h.resetPassword)
	auth.POST("/refresh", h.refresh)
}

type registerRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required"`
	FirstName string `json:"first_name" validate:"max=100"`
	LastName  string `json:"last_name" validate:"max=100"`
}

type messageResponse struct {
	Message string `json:"message"`
}

func (h *Auth) register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body format")
	}
	if err := c.Validate(&req); err != nil {
		return handleError(c, h.logger, err)
	}

	msg, err := h.accounts.Register(c.Request().Context(), req.Email, req.Password, req.FirstName, req.LastName)
	if err != nil {
		return handleError(c, h.logger, err)
	}
	return sendSuccess(c, http.StatusOK, messageResponse{Message: msg})
}

func (h *Auth) confirmEmail(c echo.Context) error {
	userID, err := uuid.Parse(c.QueryParam("userId"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid userId format")
	}
	token := c.QueryParam("token")
	if token == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "token is required")
	}

	if err := h.accounts.ConfirmEmail(c.Request().Context(), userID, token); err != nil {
		return handleError(c, h.logger, err)
	}
	return sendSuccess(c, http.StatusOK, messageResponse{Message: "email confirmed"})
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type tokenPairResponse struct {
	AccessToken  string   `json:"access_token"`
	RefreshToken string   `json:"refresh_token"`
	Roles        []string `json:"roles,omitempty"`
}

func (h *Auth) login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body format")
	}
	if err := c.Validate(&req); err != nil {
		return handleError(c, h.logger, err)
	}

	pair, roles, err := h.accounts.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return handleError(c, h.logger, err)
	}
	return sendSuccess(c, http.StatusOK, tokenPairResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		Roles:        roles,
	})
}

type forgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

func (h *Auth) forgotPassword(c echo.Context) error {
	var req forgotPasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body format")
	}
	if err := c.Validate(&req); err != nil {
		return handleError(c, h.logger, err)
	}

	msg, err := h.accounts.ForgotPassword(c.Request().Context(), req.Email)
	if err != nil {
		return handleError(c, h.logger, err)
	}
	return sendSuccess(c, http.StatusOK, messageResponse{Message: msg})
}

type resetPasswordRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Token       string `json:"token" validate:"required"`
	NewPassword string `json:"new_password" validate:"required"`
}

func (h *Auth) resetPassword(c echo.Context) error {
	var req resetPasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body format")
	}
	if err := c.Validate(&req); err != nil {
		return handleError(c, h.logger, err)
	}

	if err := h.accounts.ResetPassword(c.Request().Context(), req.Email, req.Token, req.NewPassword); err != nil {
		return handleError(c, h.logger, err)
	}
	return sendSuccess(c, http.StatusOK, messageResponse{Message: "password updated"})
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

func (h *Auth) refresh(c echo.Context) error {
	var req refreshRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body format")
	}
	if err := c.Validate(&req); err != nil {
		return handleError(c, h.logger, err)
	}

	pair, err := h.sessions.Rotate(c.Request().Context(), req.RefreshToken)
	if err != nil {
		return handleError(c, h.logger, err)
	}
	return sendSuccess(c, http.StatusOK, tokenPairResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}
