package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/okonst/portfolio-server/internal/model"
)

var _ model.ProjectStore = (*ProjectRepository)(nil)

type ProjectRepository struct {
	db *Connection
}

func NewProjectRepository(db *Connection) *ProjectRepository {
	return &ProjectRepository{db: db}
}

const projectColumns = `id, owner_id, title, summary, description, tags, cover_image_key, published, created_at, updated_at, deleted_at`

func (r *ProjectRepository) Create(ctx context.Context, p model.Project) (model.Project, error) {
	const query = `
        INSERT INTO projects (id, owner_id, title, summary, description, tags, cover_image_key, published, created_at, updated_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,NOW(),NOW())
        RETURNING ` + projectColumns

	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}

	tags, err := json.Marshal(p.Tags)
	if err != nil {
		return model.Project{}, fmt.Errorf("failed to marshal tags: %w", err)
	}

	row := r.db.querier(ctx).QueryRowContext(ctx, query,
		p.ID, p.OwnerID, p.Title, p.Summary, p.Description, tags, p.CoverImageKey, p.Published,
	)
	created, err := scanProject(row)
	if err != nil {
		return model.Project{}, fmt.Errorf("failed to create project: %w", err)
	}
	return created, nil
}

func (r *ProjectRepository) GetByID(ctx context.Context, id uuid.UUID) (model.Project, error) {
	const query = `SELECT ` + projectColumns + ` FROM projects WHERE id = $1 AND deleted_at IS NULL`

	p, err := scanProject(r.db.querier(ctx).QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Project{}, model.ErrNotFound
		}
		return model.Project{}, fmt.Errorf("failed to get project: %w", err)
	}
	return p, nil
}

func (r *ProjectRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]model.Project, error) {
	const query = `SELECT ` + projectColumns + ` FROM projects WHERE owner_id = $1 AND deleted_at IS NULL ORDER BY created_at DESC`

	rows, err := r.db.querier(ctx).QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	var projects []model.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate projects: %w", err)
	}
	return projects, nil
}

func (r *ProjectRepository) Update(ctx context.Context, p model.Project) (model.Project, error) {
	const query = `
        UPDATE projects SET
            title = $2, summary = $3, description = $4, tags = $5,
            cover_image_key = $6, published = $7, updated_at = NOW()
        WHERE id = $1 AND deleted_at IS NULL
        RETURNING ` + projectColumns

	tags, err := json.Marshal(p.Tags)
	if err != nil {
		return model.Project{}, fmt.Errorf("failed to marshal tags: %w", err)
	}

	row := r.db.querier(ctx).QueryRowContext(ctx, query,
		p.ID, p.Title, p.Summary, p.Description, tags, p.CoverImageKey, p.Published,
	)
	updated, err := scanProject(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Project{}, model.ErrNotFound
		}
		return model.Project{}, fmt.Errorf("failed to update project: %w", err)
	}
	return updated, nil
}

func (r *ProjectRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	const query = `UPDATE projects SET deleted_at = NOW() WHERE id = $1 AND deleted_at IS NULL`

	res, err := r.db.querier(ctx).ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return model.ErrNotFound
	}
	return nil
}

func scanProject(row rowScanner) (model.Project, error) {
	var p model.Project
	var tags []byte
	err := row.Scan(
		&p.ID, &p.OwnerID, &p.Title, &p.Summary, &p.Description,
		&tags, &p.CoverImageKey, &p.Published, &p.CreatedAt, &p.UpdatedAt, &p.DeletedAt,
	)
	if err != nil {
		return model.Project{}, err
	}
	if err := json.Unmarshal(tags, &p.Tags); err != nil {
		return model.Project{}, fmt.Errorf("failed to unmarshal tags: %w", err)
	}
	return p, nil
}
