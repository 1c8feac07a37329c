package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/okonst/portfolio-server/internal/logger"
	"github.com/okonst/portfolio-server/internal/model"
)

// SettingsService is the site-settings surface. Get returns the SMTP
// password decrypted; this handler never echoes it back.
type SettingsService interface {
	Get(ctx context.Context) (model.Settings, error)
	Update(ctx context.Context, s model.Settings) (model.Settings, error)
}

// Settings serves the admin-only site-settings endpoints.
type Settings struct {
	settings SettingsService
	logger   *logger.Logger
}

func NewSettings(settings SettingsService, logger *logger.Logger) *Settings {
	return &Settings{settings: settings, logger: logger}
}

// RegisterRoutes mounts the settings endpoints on the given (admin) group.
func (h *Settings) RegisterRoutes(g *echo.Group) {
	settings := g.Group("/settings")
	settings.GET("", h.get)
	settings.PUT("", h.update)
}

type settingsRequest struct {
	SMTPHost     string `json:"smtp_host" validate:"required,hostname"`
	SMTPPort     int    `json:"smtp_port" validate:"required,min=1,max=65535"`
	SMTPUsername string `json:"smtp_username" validate:"required"`
	SMTPPassword string `json:"smtp_password" validate:"required"`
	SenderEmail  string `json:"sender_email" validate:"required,email"`
	SenderName   string `json:"sender_name" validate:"required,max=100"`
}

type settingsResponse struct {
	SMTPHost     string `json:"smtp_host"`
	SMTPPort     int    `json:"smtp_port"`
	SMTPUsername string `json:"smtp_username"`
	SenderEmail  string `json:"sender_email"`
	SenderName   string `json:"sender_name"`
}

func toSettingsResponse(s model.Settings) settingsResponse {
	return settingsResponse{
		SMTPHost:     s.SMTPHost,
		SMTPPort:     s.SMTPPort,
		SMTPUsername: s.SMTPUsername,
		SenderEmail:  s.SenderEmail,
		SenderName:   s.SenderName,
	}
}

func (h *Settings) get(c echo.Context) error {
	s, err := h.settings.Get(c.Request().Context())
	if err != nil {
		return handleError(c, h.logger, err)
	}
	return sendSuccess(c, http.StatusOK, toSettingsResponse(s))
}

func (h *Settings) update(c echo.Context) error {
	var req settingsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body format")
	}
	if err := c.Validate(&req); err != nil {
		return handleError(c, h.logger, err)
	}

	saved, err := h.settings.Update(c.Request().Context(), model.Settings{
		SMTPHost:     req.SMTPHost,
		SMTPPort:     req.SMTPPort,
		SMTPUsername: req.SMTPUsername,
		SMTPPassword: req.SMTPPassword,
		SenderEmail:  req.SenderEmail,
		SenderName:   req.SenderName,
	})
	if err != nil {
		return handleError(c, h.logger, err)
	}
	return sendSuccess(c, http.StatusOK, toSettingsResponse(saved))
}
