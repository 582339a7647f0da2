package reference

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/ethanbaker/states/pkg/states"
)

// ErrObjectNotFound is returned when the dataset object does not exist
var ErrObjectNotFound = errors.New("reference: dataset object not found")

// S3Config holds the settings for reading the dataset from an S3 compatible bucket
type S3Config struct {
	// Endpoint overrides the S3 endpoint URL. Leave empty for AWS S3
	Endpoint string
	// Region is the bucket region
	Region string
	// AccessKeyID and SecretAccessKey are optional static credentials
	AccessKeyID     string
	SecretAccessKey string
	// Bucket and Key locate the dataset object
	Bucket string
	Key    string
	// UsePathStyle enables path-style addressing (needed by most S3 compatible services)
	UsePathStyle bool
}

// S3Source reads the dataset from a single S3 object
type S3Source struct {
	client *s3.Client
	bucket string
	key    string
}

// NewS3Source creates an S3 source from configuration
func NewS3Source(ctx context.Context, cfg S3Config) (*S3Source, error) {
	if cfg.Bucket == "" || cfg.Key == "" {
		return nil, fmt.Errorf("dataset bucket and key are required")
	}

	opts := []func(*config.LoadOptions) error{config.WithRegion(cfg.Region)}
	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	sdkConfig, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(sdkConfig, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.UsePathStyle
	})

	return NewS3SourceFromClient(client, cfg.Bucket, cfg.Key), nil
}

// NewS3SourceFromClient creates an S3 source around an existing client
func NewS3SourceFromClient(client *s3.Client, bucket, key string) *S3Source {
	return &S3Source{client: client, bucket: bucket, key: key}
}

// Load fetches and decodes the dataset object
func (s *S3Source) Load(ctx context.Context) ([]states.StateRecord, error) {
	result, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key),
	})
	if err != nil {
		var nsk *types.NoSuchKey
		if errors.As(err, &nsk) {
			return nil, ErrObjectNotFound
		}
		var notFound *types.NotFound
		if errors.As(err, &notFound) {
			return nil, ErrObjectNotFound
		}
		return nil, fmt.Errorf("failed to get dataset object %q: %w", s.key, err)
	}
	defer result.Body.Close()

	data, err := io.ReadAll(result.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset object %q: %w", s.key, err)
	}
	return Decode(data)
}
