package model

import (
	"context"
	"io"
)

// FileStorage stores uploaded assets (project cover images) in an object
// store keyed by an opaque object name.
type FileStorage interface {
	Save(ctx context.Context, key string, data io.Reader, size int64, contentType string) error
	Load(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
}

// TxManager runs a function inside a database transaction. The transaction
// travels on the returned context, so store calls made with that context
// join it automatically.
type TxManager interface {
	InTx(ctx context.Context, fn func(ctx context.Context) error) error
}
