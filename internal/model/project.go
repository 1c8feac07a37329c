package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// ProjectStore defines persistence operations for portfolio projects. All
// reads filter out soft-deleted rows.
type ProjectStore interface {
	Create(ctx context.Context, p Project) (Project, error)
	GetByID(ctx context.Context, id uuid.UUID) (Project, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]Project, error)
	Update(ctx context.Context, p Project) (Project, error)
	SoftDelete(ctx context.Context, id uuid.UUID) error
}

// Project is a portfolio entry owned by a single user.
type Project struct {
	ID            uuid.UUID
	OwnerID       uuid.UUID
	Title         string
	Summary       string
	Description   string
	Tags          []string
	CoverImageKey *string
	Published     bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
	DeletedAt     *time.Time
}
