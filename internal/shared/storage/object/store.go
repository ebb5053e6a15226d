package object

import (
	"context"
	"io"
)

// ObjectStore writes binary objects under caller-chosen keys.
type ObjectStore interface {
	// Put stores r under key and returns where it landed: a filesystem path
	// for local stores, an s3:// URI for S3.
	Put(ctx context.Context, key string, r io.Reader) (location string, sizeBytes int64, err error)
}
