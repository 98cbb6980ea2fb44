// internal/storage/s3.go
package storage

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net/url"
	"path"
	"regexp"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/dangerclosesec/nexus/internal/config"
)

// Client is the object-storage surface the upload service depends on.
type Client interface {
	PutObject(ctx context.Context, key, contentType string, body io.Reader) error
	DeleteObject(ctx context.Context, key string) error
	PresignUpload(ctx context.Context, key, contentType string, expiry time.Duration) (string, error)
	PresignDownload(ctx context.Context, key string, expiry time.Duration) (string, error)
	HealthCheck(ctx context.Context) bool
	PublicURL(key string) string
	KeyFromURL(fileURL string) (string, error)
}

// S3Client wraps the AWS S3 client with presign support.
type S3Client struct {
	svc           *s3.Client
	presignClient *s3.PresignClient
	bucket        string
	region        string
}

// NewS3Client builds the client from the injected configuration. A non-empty
// endpoint switches to path-style addressing for localstack-style setups.
func NewS3Client(ctx context.Context, cfg *config.Config) (*S3Client, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Storage.Region),
	)
	if err != nil {
		return nil, fmt.Errorf("loading AWS configuration: %w", err)
	}

	svc := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Storage.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Storage.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &S3Client{
		svc:           svc,
		presignClient: s3.NewPresignClient(svc),
		bucket:        cfg.Storage.Bucket,
		region:        cfg.Storage.Region,
	}, nil
}

func (c *S3Client) PutObject(ctx context.Context, key, contentType string, body io.Reader) error {
	_, err := c.svc.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(c.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("putting object %s: %w", key, err)
	}
	return nil
}

func (c *S3Client) DeleteObject(ctx context.Context, key string) error {
	_, err := c.svc.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("deleting object %s: %w", key, err)
	}
	return nil
}

// PresignUpload creates a presigned URL for uploading an object.
func (c *S3Client) PresignUpload(ctx context.Context, key, contentType string, expiry time.Duration) (string, error) {
	presignResult, err := c.presignClient.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(c.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}, s3.WithPresignExpires(expiry))
	if err != nil {
		return "", fmt.Errorf("presigning upload for %s: %w", key, err)
	}
	return presignResult.URL, nil
}

// PresignDownload creates a presigned URL for downloading an object.
func (c *S3Client) PresignDownload(ctx context.Context, key string, expiry time.Duration) (string, error) {
	presignResult, err := c.presignClient.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(expiry))
	if err != nil {
		return "", fmt.Errorf("presigning download for %s: %w", key, err)
	}
	return presignResult.URL, nil
}

// HealthCheck probes the bucket with a HEAD on a key that does not exist.
// A NoSuchKey/NotFound response means credentials and bucket access work.
func (c *S3Client) HealthCheck(ctx context.Context) bool {
	_, err := c.svc.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String("health-check-dummy-key"),
	})
	if err == nil {
		return true
	}
	var notFound *types.NotFound
	return errors.As(err, &notFound)
}

// PublicURL renders the templated storage-provider URL for a key.
func (c *S3Client) PublicURL(key string) string {
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", c.bucket, c.region, key)
}

// KeyFromURL extracts the object key from a public file URL.
func (c *S3Client) KeyFromURL(fileURL string) (string, error) {
	u, err := url.Parse(fileURL)
	if err != nil {
		return "", fmt.Errorf("invalid file URL: %w", err)
	}
	key := strings.TrimPrefix(u.Path, "/")
	if key == "" {
		return "", fmt.Errorf("invalid file URL: no key in %q", fileURL)
	}
	return key, nil
}

var unsafeNameChars = regexp.MustCompile(`[^a-zA-Z0-9.-]`)

// GenerateFileName builds a collision-resistant object name from the
// original: unix-millisecond timestamp, 8 random bytes, sanitized base name.
func GenerateFileName(originalName string) string {
	timestamp := time.Now().UnixMilli()

	random := make([]byte, 8)
	rand.Read(random)

	extension := path.Ext(originalName)
	base := strings.TrimSuffix(path.Base(originalName), extension)
	sanitized := unsafeNameChars.ReplaceAllString(base, "_")

	return fmt.Sprintf("%d_%s_%s%s", timestamp, hex.EncodeToString(random), sanitized, extension)
}

// ObjectKey namespaces an object under its organization and classification
// folder.
func ObjectKey(organizationID, folder, fileName string) string {
	return fmt.Sprintf("%s/%s/%s", organizationID, folder, fileName)
}
