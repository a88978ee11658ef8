// Package objectstore uploads order exports to S3-compatible storage (MinIO
// in development) and hands out time-limited download links.
package objectstore

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/ghuser/stockroom/pkg/config"
)

// Store wraps an S3 client scoped to a single bucket.
type Store struct {
	client  *s3.Client
	presign *s3.PresignClient
	bucket  string
	ttl     time.Duration
}

// New builds a Store from cfg. Returns nil, nil when exports are disabled.
func New(ctx context.Context, cfg *config.Config) (*Store, error) {
	if !cfg.ExportsEnabled() {
		return nil, nil
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.MinioRegion),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.MinioRootUser,
			cfg.MinioRootPassword,
			"",
		)))
	if err != nil {
		return nil, fmt.Errorf("objectstore: load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.MinioEndpoint)
		o.UsePathStyle = true
	})

	ttl := cfg.ExportURLTTL
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	return &Store{
		client:  client,
		presign: s3.NewPresignClient(client),
		bucket:  cfg.MinioBucket,
		ttl:     ttl,
	}, nil
}

// Bucket returns the bucket name.
func (s *Store) Bucket() string {
	return s.bucket
}

// EnsureBucket creates the bucket if it does not exist yet.
func (s *Store) EnsureBucket(ctx context.Context) error {
	_, err := s.client.CreateBucket(ctx, &s3.CreateBucketInput{Bucket: aws.String(s.bucket)})
	if err == nil {
		return nil
	}
	var owned *types.BucketAlreadyOwnedByYou
	var exists *types.BucketAlreadyExists
	if errors.As(err, &owned) || errors.As(err, &exists) {
		return nil
	}
	return fmt.Errorf("objectstore: create bucket %s: %w", s.bucket, err)
}

// Put uploads body under key.
func (s *Store) Put(ctx context.Context, key, contentType string, body []byte) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(body),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(body))),
	})
	if err != nil {
		return fmt.Errorf("objectstore: put %s: %w", key, err)
	}
	return nil
}

// PresignGet returns a download URL for key valid for the configured TTL.
func (s *Store) PresignGet(ctx context.Context, key string) (string, time.Time, error) {
	req, err := s.presign.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(s.ttl))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("objectstore: presign %s: %w", key, err)
	}
	return req.URL, time.Now().Add(s.ttl), nil
}

// Ping checks that the bucket is reachable.
func (s *Store) Ping(ctx context.Context) error {
	if _, err := s.client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(s.bucket)}); err != nil {
		return fmt.Errorf("objectstore: head bucket %s: %w", s.bucket, err)
	}
	return nil
}
