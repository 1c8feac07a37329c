package minio

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	minioLib "github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeMinio implements minioAPI for testing without network.
type fakeMinio struct {
	bucketExists    bool
	bucketExistsErr error
	makeBucketErr   error
	madeBucket      bool

	putContentType string
	putSize        int64
	putErr         error

	getRC  io.ReadCloser
	getErr error

	removedKey string
	removeErr  error
}

func (f *fakeMinio) BucketExists(_ context.Context, _ string) (bool, error) {
	return f.bucketExists, f.bucketExistsErr
}
func (f *fakeMinio) MakeBucket(_ context.Context, _ string, _ minioLib.MakeBucketOptions) error {
	f.madeBucket = true
	return f.makeBucketErr
}
func (f *fakeMinio) PutObject(_ context.Context, _ string, _ string, _ io.Reader, size int64, opts minioLib.PutObjectOptions) (minioLib.UploadInfo, error) {
	f.putContentType = opts.ContentType
	f.putSize = size
	return minioLib.UploadInfo{}, f.putErr
}
func (f *fakeMinio) GetObject(_ context.Context, _ string, _ string, _ minioLib.GetObjectOptions) (io.ReadCloser, error) {
	return f.getRC, f.getErr
}
func (f *fakeMinio) RemoveObject(_ context.Context, _ string, key string, _ minioLib.RemoveObjectOptions) error {
	f.removedKey = key
	return f.removeErr
}

func TestNewClientWithAPI_BucketExists(t *testing.T) {
	ctx := context.Background()
	api := &fakeMinio{bucketExists: true}

	c, err := NewClientWithAPI(ctx, api, "covers")
	require.NoError(t, err)
	assert.NotNil(t, c)
	assert.False(t, api.madeBucket)
}

func TestNewClientWithAPI_CreatesMissingBucket(t *testing.T) {
	ctx := context.Background()
	api := &fakeMinio{bucketExists: false}

	_, err := NewClientWithAPI(ctx, api, "covers")
	require.NoError(t, err)
	assert.True(t, api.madeBucket)
}

func TestNewClientWithAPI_BucketCheckFails(t *testing.T) {
	ctx := context.Background()
	api := &fakeMinio{bucketExistsErr: errors.New("network down")}

	_, err := NewClientWithAPI(ctx, api, "covers")
	require.Error(t, err)
}

func TestClient_Save(t *testing.T) {
	ctx := context.Background()
	api := &fakeMinio{bucketExists: true}
	c, err := NewClientWithAPI(ctx, api, "covers")
	require.NoError(t, err)

	err = c.Save(ctx, "covers/p1/img", strings.NewReader("png bytes"), 9, "image/png")
	require.NoError(t, err)
	assert.Equal(t, "image/png", api.putContentType)
	assert.Equal(t, int64(9), api.putSize)
}

func TestClient_Load(t *testing.T) {
	ctx := context.Background()
	api := &fakeMinio{
		bucketExists: true,
		getRC:        io.NopCloser(bytes.NewReader([]byte("png bytes"))),
	}
	c, err := NewClientWithAPI(ctx, api, "covers")
	require.NoError(t, err)

	rc, err := c.Load(ctx, "covers/p1/img")
	require.NoError(t, err)
	defer rc.Close()

	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "png bytes", string(data))
}

func TestClient_Delete(t *testing.T) {
	ctx := context.Background()
	api := &fakeMinio{bucketExists: true}
	c, err := NewClientWithAPI(ctx, api, "covers")
	require.NoError(t, err)

	require.NoError(t, c.Delete(ctx, "covers/p1/img"))
	assert.Equal(t, "covers/p1/img", api.removedKey)
}
