package handler

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/okonst/portfolio-server/internal/logger"
	"github.com/okonst/portfolio-server/internal/model"
)

const maxCoverSize = 5 << 20

// ProjectService is the owner-scoped project surface.
type ProjectService interface {
	Create(ctx context.Context, p model.Project) (model.Project, error)
	Get(ctx context.Context, id uuid.UUID) (model.Project, error)
	List(ctx context.Context) ([]model.Project, error)
	Update(ctx context.Context, p model.Project) (model.Project, error)
	Delete(ctx context.Context, id uuid.UUID) error
	UploadCover(ctx context.Context, id uuid.UUID, data io.Reader, size int64, contentType string) (model.Project, error)
	DownloadCover(ctx context.Context, id uuid.UUID) (io.ReadCloser, error)
}

// Project serves the authenticated portfolio-project endpoints.
type Project struct {
	projects ProjectService
	logger   *logger.Logger
}

func NewProject(projects ProjectService, logger *logger.Logger) *Project {
	return &Project{projects: projects, logger: logger}
}

// RegisterRoutes mounts the project endpoints on the given (authenticated)
// group.
func (h *Project) RegisterRoutes(g *echo.Group) {
	projects := g.Group("/projects")
	projects.POST("", h.create)
	projects.GET("", h.list)
	projects.GET("/:id", h.get)
	projects.PUT("/:id", h.update)
	projects.DELETE("/:id", h.delete)
	projects.PUT("/:id/cover", h.uploadCover)
	projects.GET("/:id/cover", h.downloadCover)
}

type projectRequest struct {
	Title       string   `json:"title" validate:"required,min=1,max=200"`
	Summary     string   `json:"summary" validate:"max=500"`
	Description string   `json:"description" validate:"max=10000"`
	Tags        []string `json:"tags" validate:"max=20,dive,min=1,max=50"`
	Published   bool     `json:"published"`
}

type projectResponse struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Summary     string    `json:"summary"`
	Description string    `json:"description"`
	Tags        []string  `json:"tags"`
	HasCover    bool      `json:"has_cover"`
	Published   bool      `json:"published"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func toProjectResponse(p model.Project) projectResponse {
	return projectResponse{
		ID:          p.ID,
		Title:       p.Title,
		Summary:     p.Summary,
		Description: p.Description,
		Tags:        p.Tags,
		HasCover:    p.CoverImageKey != nil,
		Published:   p.Published,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func (h *Project) create(c echo.Context) error {
	var req projectRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body format")
	}
	if err := c.Validate(&req); err != nil {
		return handleError(c, h.logger, err)
	}

	created, err := h.projects.Create(c.Request().Context(), model.Project{
		Title:       req.Title,
		Summary:     req.Summary,
		Description: req.Description,
		Tags:        req.Tags,
		Published:   req.Published,
	})
	if err != nil {
		return handleError(c, h.logger, err)
	}
	return sendSuccess(c, http.StatusCreated, toProjectResponse(created))
}

func (h *Project) list(c echo.Context) error {
	projects, err := h.projects.List(c.Request().Context())
	if err != nil {
		return handleError(c, h.logger, err)
	}

	out := make([]projectResponse, len(projects))
	for i, p := range projects {
		out[i] = toProjectResponse(p)
	}
	return sendSuccess(c, http.StatusOK, out)
}

func (h *Project) get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid project id format")
	}

	p, err := h.projects.Get(c.Request().Context(), id)
	if err != nil {
		return handleError(c, h.logger, err)
	}
	return sendSuccess(c, http.StatusOK, toProjectResponse(p))
}

func (h *Project) update(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid project id format")
	}

	var req projectRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body format")
	}
	if err := c.Validate(&req); err != nil {
		return handleError(c, h.logger, err)
	}

	updated, err := h.projects.Update(c.Request().Context(), model.Project{
		ID:          id,
		Title:       req.Title,
		Summary:     req.Summary,
		Description: req.Description,
		Tags:        req.Tags,
		Published:   req.Published,
	})
	if err != nil {
		return handleError(c, h.logger, err)
	}
	return sendSuccess(c, http.StatusOK, toProjectResponse(updated))
}

func (h *Project) delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid project id format")
	}

	if err := h.projects.Delete(c.Request().Context(), id); err != nil {
		return handleError(c, h.logger, err)
	}
	return sendSuccess(c, http.StatusOK, messageResponse{Message: "project deleted"})
}

func (h *Project) uploadCover(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid project id format")
	}

	req := c.Request()
	if req.ContentLength <= 0 || req.ContentLength > maxCoverSize {
		return echo.NewHTTPError(http.StatusBadRequest, "cover image size out of bounds")
	}

	updated, err := h.projects.UploadCover(req.Context(), id,
		req.Body, req.ContentLength, req.Header.Get(echo.HeaderContentType))
	if err != nil {
		return handleError(c, h.logger, err)
	}
	return sendSuccess(c, http.StatusOK, toProjectResponse(updated))
}

func (h *Project) downloadCover(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid project id format")
	}

	rc, err := h.projects.DownloadCover(c.Request().Context(), id)
	if err != nil {
		return handleError(c, h.logger, err)
	}
	defer rc.Close()

	return c.Stream(http.StatusOK, "application/octet-stream", rc)
}
