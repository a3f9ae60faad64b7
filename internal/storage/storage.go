package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// DefaultRegion is what an empty bucket location constraint means. S3 reports
// buckets in us-east-1 with an empty constraint rather than a region name.
const DefaultRegion = "us-east-1"

// ListBuckets returns the names of all buckets visible to the caller.
func (s *implStorage) ListBuckets(ctx context.Context) ([]string, error) {
	out, err := s.client.ListBuckets(ctx, &s3.ListBucketsInput{})
	if err != nil {
		return nil, fmt.Errorf("list buckets: %w", err)
	}

	names := make([]string, 0, len(out.Buckets))
	for _, b := range out.Buckets {
		names = append(names, aws.ToString(b.Name))
	}
	return names, nil
}

// ResolveBucketRegion queries the bucket's location constraint. The bucket's
// region is authoritative for every subsequent call in a run.
func (s *implStorage) ResolveBucketRegion(ctx context.Context, bucket string) (string, error) {
	out, err := s.client.GetBucketLocation(ctx, &s3.GetBucketLocationInput{
		Bucket: aws.String(bucket),
	})
	if err != nil {
		return "", fmt.Errorf("get bucket location for %s: %w", bucket, err)
	}

	if out.LocationConstraint == "" {
		return DefaultRegion, nil
	}
	return string(out.LocationConstraint), nil
}

// Upload streams the file at localPath into the bucket under its base name,
// with AES-256 server-side encryption. The body is the open file itself, so
// even multi-hundred-MB recordings never sit in memory.
func (s *implStorage) Upload(ctx context.Context, localPath, bucket string) (Artifact, error) {
	resolved, err := ResolvePath(localPath)
	if err != nil {
		return Artifact{}, err
	}

	f, err := os.Open(resolved)
	if err != nil {
		return Artifact{}, fmt.Errorf("open %s: %w", resolved, err)
	}
	defer f.Close()

	key := filepath.Base(resolved)
	s.logger.Debug(ctx, "Uploading %s to s3://%s/%s", resolved, bucket, key)

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:               aws.String(bucket),
		Key:                  aws.String(key),
		Body:                 f,
		ServerSideEncryption: types.ServerSideEncryptionAes256,
	})
	if err != nil {
		return Artifact{}, fmt.Errorf("upload to s3://%s/%s: %w", bucket, key, err)
	}

	return Artifact{Bucket: bucket, Key: key}, nil
}

// Delete removes an uploaded artifact.
func (s *implStorage) Delete(ctx context.Context, artifact Artifact) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(artifact.Bucket),
		Key:    aws.String(artifact.Key),
	})
	if err != nil {
		return fmt.Errorf("delete %s: %w", artifact.URI(), err)
	}
	return nil
}
