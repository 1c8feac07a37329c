package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"

	"github.com/okonst/portfolio-server/internal/logger"
	"github.com/okonst/portfolio-server/internal/model"
)

// Project implements owner-scoped portfolio project CRUD. Every operation
// resolves the caller through the request identity first; a project owned by
// someone else is reported as absent, never as forbidden.
type Project struct {
	store  model.ProjectStore
	files  model.FileStorage
	logger *logger.Logger
}

func NewProject(store model.ProjectStore, files model.FileStorage, logger *logger.Logger) *Project {
	return &Project{store: store, files: files, logger: logger}
}

func (p *Project) Create(ctx context.Context, in model.Project) (model.Project, error) {
	ownerID, err := model.RequireUserID(ctx)
	if err != nil {
		return model.Project{}, err
	}
	if strings.TrimSpace(in.Title) == "" {
		return model.Project{}, model.Validation("project rejected", "title must not be empty")
	}

	in.ID = uuid.New()
	in.OwnerID = ownerID
	in.CoverImageKey = nil

	created, err := p.store.Create(ctx, in)
	if err != nil {
		return model.Project{}, fmt.Errorf("create project: %w", err)
	}
	return created, nil
}

func (p *Project) Get(ctx context.Context, id uuid.UUID) (model.Project, error) {
	return p.getOwned(ctx, id)
}

func (p *Project) List(ctx context.Context) ([]model.Project, error) {
	ownerID, err := model.RequireUserID(ctx)
	if err != nil {
		return nil, err
	}

	projects, err := p.store.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	return projects, nil
}

func (p *Project) Update(ctx context.Context, in model.Project) (model.Project, error) {
	existing, err := p.getOwned(ctx, in.ID)
	if err != nil {
		return model.Project{}, err
	}
	if strings.TrimSpace(in.Title) == "" {
		return model.Project{}, model.Validation("project rejected", "title must not be empty")
	}

	existing.Title = in.Title
	existing.Summary = in.Summary
	existing.Description = in.Description
	existing.Tags = in.Tags
	existing.Published = in.Published

	updated, err := p.store.Update(ctx, existing)
	if err != nil {
		return model.Project{}, fmt.Errorf("update project: %w", err)
	}
	return updated, nil
}

func (p *Project) Delete(ctx context.Context, id uuid.UUID) error {
	existing, err := p.getOwned(ctx, id)
	if err != nil {
		return err
	}

	if existing.CoverImageKey != nil {
		if err := p.files.Delete(ctx, *existing.CoverImageKey); err != nil {
			p.logger.Error("Project service: failed to delete cover image",
				"project_id", id,
				"error", err.Error())
		}
	}

	if err := p.store.SoftDelete(ctx, id); err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	return nil
}

// UploadCover stores a new cover image and swaps the project's object key.
// The previous object, if any, is removed best effort.
func (p *Project) UploadCover(ctx context.Context, id uuid.UUID, data io.Reader, size int64, contentType string) (model.Project, error) {
	existing, err := p.getOwned(ctx, id)
	if err != nil {
		return model.Project{}, err
	}
	if !strings.HasPrefix(contentType, "image/") {
		return model.Project{}, model.Validation("cover rejected", "cover must be an image")
	}

	key := fmt.Sprintf("covers/%s/%s", id, uuid.NewString())
	if err := p.files.Save(ctx, key, data, size, contentType); err != nil {
		return model.Project{}, fmt.Errorf("store cover image: %w", err)
	}

	oldKey := existing.CoverImageKey
	existing.CoverImageKey = &key
	updated, err := p.store.Update(ctx, existing)
	if err != nil {
		return model.Project{}, fmt.Errorf("update project: %w", err)
	}

	if oldKey != nil {
		if err := p.files.Delete(ctx, *oldKey); err != nil {
			p.logger.Error("Project service: failed to delete previous cover image",
				"project_id", id,
				"error", err.Error())
		}
	}

	return updated, nil
}

// DownloadCover streams the project's cover image. The caller closes the
// returned reader.
func (p *Project) DownloadCover(ctx context.Context, id uuid.UUID) (io.ReadCloser, error) {
	existing, err := p.getOwned(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing.CoverImageKey == nil {
		return nil, model.NotFoundError("project has no cover image")
	}

	rc, err := p.files.Load(ctx, *existing.CoverImageKey)
	if err != nil {
		return nil, fmt.Errorf("load cover image: %w", err)
	}
	return rc, nil
}

func (p *Project) getOwned(ctx context.Context, id uuid.UUID) (model.Project, error) {
	ownerID, err := model.RequireUserID(ctx)
	if err != nil {
		return model.Project{}, err
	}

	existing, err := p.store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.Project{}, model.NotFoundError("project not found")
		}
		return model.Project{}, fmt.Errorf("lookup project: %w", err)
	}
	if existing.OwnerID != ownerID {
		return model.Project{}, model.NotFoundError("project not found")
	}
	return existing, nil
}
