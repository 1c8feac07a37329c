package service

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/okonst/portfolio-server/internal/mocks"
	"github.com/okonst/portfolio-server/internal/model"
	"github.com/okonst/portfolio-server/internal/testutil"
)

type projectFixture struct {
	svc   *Project
	store *mocks.ProjectStore
	files *mocks.FileStorage
}

func newProjectFixture(t *testing.T) projectFixture {
	t.Helper()
	f := projectFixture{
		store: mocks.NewProjectStore(t),
		files: mocks.NewFileStorage(t),
	}
	f.svc = NewProject(f.store, f.files, testutil.MakeNoopLogger())
	return f
}

func authedCtx(userID uuid.UUID) context.Context {
	return model.WithIdentity(context.Background(), model.Identity{UserID: userID})
}

func TestProject_Create(t *testing.T) {
	t.Run("requires authentication", func(t *testing.T) {
		f := newProjectFixture(t)

		_, err := f.svc.Create(context.Background(), model.Project{Title: "Demo"})
		kind, ok := model.KindOf(err)
		require.True(t, ok)
		assert.Equal(t, model.KindUnauthorized, kind)
	})

	t.Run("assigns the caller as owner", func(t *testing.T) {
		f := newProjectFixture(t)
		ownerID := uuid.New()
		ctx := authedCtx(ownerID)

		f.store.On("Create", ctx, mock.MatchedBy(func(p model.Project) bool {
			return p.OwnerID == ownerID && p.Title == "Demo" && p.ID != uuid.Nil
		})).Return(model.Project{Title: "Demo", OwnerID: ownerID}, nil)

		created, err := f.svc.Create(ctx, model.Project{Title: "Demo"})
		require.NoError(t, err)
		assert.Equal(t, ownerID, created.OwnerID)
	})

	t.Run("empty title is rejected", func(t *testing.T) {
		f := newProjectFixture(t)

		_, err := f.svc.Create(authedCtx(uuid.New()), model.Project{Title: "   "})
		kind, ok := model.KindOf(err)
		require.True(t, ok)
		assert.Equal(t, model.KindValidation, kind)
	})
}

func TestProject_Get_HidesForeignProjects(t *testing.T) {
	f := newProjectFixture(t)
	callerID := uuid.New()
	ctx := authedCtx(callerID)
	projectID := uuid.New()

	f.store.On("GetByID", ctx, projectID).Return(model.Project{
		ID:      projectID,
		OwnerID: uuid.New(),
	}, nil)

	_, err := f.svc.Get(ctx, projectID)
	kind, ok := model.KindOf(err)
	require.True(t, ok)
	assert.Equal(t, model.KindNotFound, kind)
}

func TestProject_Update(t *testing.T) {
	f := newProjectFixture(t)
	ownerID := uuid.New()
	ctx := authedCtx(ownerID)
	key := "covers/existing"
	existing := model.Project{ID: uuid.New(), OwnerID: ownerID, Title: "Old", CoverImageKey: &key}

	f.store.On("GetByID", ctx, existing.ID).Return(existing, nil)
	f.store.On("Update", ctx, mock.MatchedBy(func(p model.Project) bool {
		// The cover key is owned by the upload path and must survive edits.
		return p.Title == "New" && p.Published && p.CoverImageKey == &key
	})).Return(model.Project{Title: "New"}, nil)

	updated, err := f.svc.Update(ctx, model.Project{ID: existing.ID, Title: "New", Published: true})
	require.NoError(t, err)
	assert.Equal(t, "New", updated.Title)
}

func TestProject_Delete_RemovesCoverObject(t *testing.T) {
	f := newProjectFixture(t)
	ownerID := uuid.New()
	ctx := authedCtx(ownerID)
	key := "covers/abc"
	existing := model.Project{ID: uuid.New(), OwnerID: ownerID, Title: "Demo", CoverImageKey: &key}

	f.store.On("GetByID", ctx, existing.ID).Return(existing, nil)
	f.files.On("Delete", ctx, key).Return(nil)
	f.store.On("SoftDelete", ctx, existing.ID).Return(nil)

	require.NoError(t, f.svc.Delete(ctx, existing.ID))
}

func TestProject_UploadCover(t *testing.T) {
	t.Run("rejects non-image content", func(t *testing.T) {
		f := newProjectFixture(t)
		ownerID := uuid.New()
		ctx := authedCtx(ownerID)
		existing := model.Project{ID: uuid.New(), OwnerID: ownerID, Title: "Demo"}

		f.store.On("GetByID", ctx, existing.ID).Return(existing, nil)

		_, err := f.svc.UploadCover(ctx, existing.ID, strings.NewReader("data"), 4, "application/zip")
		kind, ok := model.KindOf(err)
		require.True(t, ok)
		assert.Equal(t, model.KindValidation, kind)
	})

	t.Run("stores the object and swaps the key", func(t *testing.T) {
		f := newProjectFixture(t)
		ownerID := uuid.New()
		ctx := authedCtx(ownerID)
		oldKey := "covers/old"
		existing := model.Project{ID: uuid.New(), OwnerID: ownerID, Title: "Demo", CoverImageKey: &oldKey}

		var savedKey string
		f.store.On("GetByID", ctx, existing.ID).Return(existing, nil)
		f.files.On("Save", ctx, mock.MatchedBy(func(key string) bool {
			savedKey = key
			return strings.HasPrefix(key, "covers/"+existing.ID.String()+"/")
		}), mock.Anything, int64(4), "image/png").Return(nil)
		f.store.On("Update", ctx, mock.MatchedBy(func(p model.Project) bool {
			return p.CoverImageKey != nil && *p.CoverImageKey == savedKey
		})).Return(existing, nil)
		f.files.On("Delete", ctx, oldKey).Return(nil)

		_, err := f.svc.UploadCover(ctx, existing.ID, strings.NewReader("data"), 4, "image/png")
		require.NoError(t, err)
	})
}

func TestProject_DownloadCover_NoCover(t *testing.T) {
	f := newProjectFixture(t)
	ownerID := uuid.New()
	ctx := authedCtx(ownerID)
	existing := model.Project{ID: uuid.New(), OwnerID: ownerID, Title: "Demo"}

	f.store.On("GetByID", ctx, existing.ID).Return(existing, nil)

	_, err := f.svc.DownloadCover(ctx, existing.ID)
	kind, ok := model.KindOf(err)
	require.True(t, ok)
	assert.Equal(t, model.KindNotFound, kind)
}
