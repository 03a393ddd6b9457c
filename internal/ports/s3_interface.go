package ports

import (
	"context"
	"io"
	"time"
)

// S3Storage : хранилище изображений артов и аватаров
type S3Storage interface {
	UploadObject(ctx context.Context, key string, contentType string, body io.Reader) error
	GeneratePresignedGetURL(ctx context.Context, key string, expire time.Duration) (string, error)
	GeneratePresignedPutURL(ctx context.Context, key string, expire time.Duration) (string, error)
	DeleteObject(ctx context.Context, key string) error
}
