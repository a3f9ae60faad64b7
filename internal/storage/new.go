package storage

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/nguyentantai21042004/distill-flow/internal/logger"
)

// s3API is the slice of the S3 client this package uses.
type s3API interface {
	ListBuckets(ctx context.Context, params *s3.ListBucketsInput, optFns ...func(*s3.Options)) (*s3.ListBucketsOutput, error)
	GetBucketLocation(ctx context.Context, params *s3.GetBucketLocationInput, optFns ...func(*s3.Options)) (*s3.GetBucketLocationOutput, error)
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

type implStorage struct {
	client s3API
	logger logger.Logger
}

// New creates a Storage backed by the given S3 client.
func New(client s3API, log logger.Logger) Storage {
	return &implStorage{
		client: client,
		logger: log,
	}
}

// LoadAWSConfig builds an AWS config from the standard credential chain,
// pinned to region when one is given.
func LoadAWSConfig(ctx context.Context, region string) (aws.Config, error) {
	if region == "" {
		return awsconfig.LoadDefaultConfig(ctx)
	}
	return awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
}

// NewClient creates an S3 client for the given config. Uploads can run for
// many minutes on large files, so no overall request timeout is set here;
// the transport's dial and TLS timeouts still apply.
func NewClient(cfg aws.Config) *s3.Client {
	return s3.NewFromConfig(cfg)
}
