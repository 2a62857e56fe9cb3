package fsx

import "context"

// FileSystem abstracts blob storage for uploaded documents. Implementations
// exist for the local disk (development) and S3 (production).
type FileSystem interface {
	Write(ctx context.Context, key string, data []byte, contentType string) error
	Read(ctx context.Context, key string) ([]byte, error)
	Exists(ctx context.Context, key string) (bool, error)
	Delete(ctx context.Context, key string) error
}
