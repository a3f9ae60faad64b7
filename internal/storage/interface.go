package storage

import (
	"context"
	"fmt"
)

// Artifact identifies an uploaded object in the bucket that owns it.
type Artifact struct {
	Bucket string
	Key    string
}

// URI returns the canonical locator consumed by the transcription service.
func (a Artifact) URI() string {
	return fmt.Sprintf("s3://%s/%s", a.Bucket, a.Key)
}

// Storage covers the object-store operations a run needs: bucket discovery,
// region resolution, upload and cleanup.
type Storage interface {
	ListBuckets(ctx context.Context) ([]string, error)
	ResolveBucketRegion(ctx context.Context, bucket string) (string, error)
	Upload(ctx context.Context, localPath, bucket string) (Artifact, error)
	Delete(ctx context.Context, artifact Artifact) error
}
