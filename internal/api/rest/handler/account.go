package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/okonst/portfolio-server/internal/logger"
)

// Account serves the authenticated account-management endpoints.
type Account struct {
	accounts AccountService
	logger   *logger.Logger
}

func NewAccount(accounts AccountService, logger *logger.Logger) *Account {
	return &Account{accounts: accounts, logger: logger}
}

// RegisterRoutes mounts the account endpoints on the given (authenticated)
// group.
func (h *Account) RegisterRoutes(g *echo.Group) {
	account := g.Group("/account")
	account.POST("/change-password", h.changePassword)
	account.DELETE("", h.deleteAccount)
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required"`
}

func (h *Account) changePassword(c echo.Context) error {
	var req changePasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body format")
	}
	if err := c.Validate(&req); err != nil {
		return handleError(c, h.logger, err)
	}

	if err := h.accounts.ChangePassword(c.Request().Context(), req.CurrentPassword, req.NewPassword); err != nil {
		return handleError(c, h.logger, err)
	}
	return sendSuccess(c, http.StatusOK, messageResponse{Message: "password changed"})
}

func (h *Account) deleteAccount(c echo.Context) error {
	if err := h.accounts.DeleteAccount(c.Request().Context()); err != nil {
		return handleError(c, h.logger, err)
	}
	return sendSuccess(c, http.StatusOK, messageResponse{Message: "account deleted"})
}
