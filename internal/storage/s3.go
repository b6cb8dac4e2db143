package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"path"
	"strings"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	appconfig "github.com/talentbridge/backend/pkg/config"
)

// File is the sanitized upload passed down from the transport layer.
type File struct {
	Name        string
	ContentType string
	Body        io.Reader
}

// Service stores profile documents and media in an S3 bucket.
type Service struct {
	client *s3.Client
	bucket string
	region string
}

// NewService builds the S3 client from static credentials in configuration.
func NewService(ctx context.Context, cfg *appconfig.AWSConfig) (*Service, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("storage: bucket name is required")
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("storage: load aws config: %w", err)
	}

	return &Service{
		client: s3.NewFromConfig(awsCfg),
		bucket: cfg.Bucket,
		region: cfg.Region,
	}, nil
}

// Upload writes the file under a fresh uuid key, preserving the extension,
// and returns the public object URL.
func (s *Service) Upload(ctx context.Context, file *File) (string, error) {
	if file == nil {
		return "", fmt.Errorf("storage: file is required")
	}

	key := fmt.Sprintf("uploads/%s%s", uuid.New().String(), path.Ext(file.Name))
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      awsv2.String(s.bucket),
		Key:         awsv2.String(key),
		Body:        file.Body,
		ContentType: awsv2.String(file.ContentType),
	})
	if err != nil {
		return "", fmt.Errorf("storage: put object %s: %w", key, err)
	}

	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key), nil
}

// Delete removes the object behind a URL previously returned by Upload.
func (s *Service) Delete(ctx context.Context, objectURL string) error {
	u, err := url.Parse(objectURL)
	if err != nil || u.Path == "" {
		return fmt.Errorf("storage: invalid object url %q", objectURL)
	}
	key := strings.TrimPrefix(u.Path, "/")

	_, err = s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: awsv2.String(s.bucket),
		Key:    awsv2.String(key),
	})
	if err != nil {
		return fmt.Errorf("storage: delete object %s: %w", key, err)
	}
	return nil
}
