package artifacts

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/quorumhq/quorum-e2e/internal/config"
)

// Uploader copies a run directory to S3-compatible storage so CI artifacts
// survive ephemeral runners.
type Uploader struct {
	client *s3.Client
	bucket string
}

// NewUploader builds an uploader from harness configuration. A custom
// endpoint (fake S3, Tigris, MinIO) switches the client to path-style
// addressing.
func NewUploader(ctx context.Context, cfg config.S3Config) (*Uploader, error) {
	if !cfg.Enabled() {
		return nil, fmt.Errorf("artifact upload is not configured")
	}

	sdkConfig, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}

	client := s3.NewFromConfig(sdkConfig, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})
	return &Uploader{client: client, bucket: cfg.Bucket}, nil
}

// NewUploaderFromClient wraps an existing S3 client, used by tests.
func NewUploaderFromClient(client *s3.Client, bucket string) *Uploader {
	return &Uploader{client: client, bucket: bucket}
}

// UploadDir uploads every regular file under dir to bucket/prefix, keeping
// the directory layout. Returns the number of uploaded objects.
func (u *Uploader) UploadDir(ctx context.Context, dir, prefix string) (int, error) {
	uploaded := 0
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		key := strings.TrimSuffix(prefix, "/") + "/" + filepath.ToSlash(rel)

		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("open %s: %w", path, err)
		}
		defer f.Close()

		_, err = u.client.PutObject(ctx, &s3.PutObjectInput{
			Bucket:      aws.String(u.bucket),
			Key:         aws.String(key),
			Body:        f,
			ContentType: aws.String(contentTypeFor(path)),
		})
		if err != nil {
			return fmt.Errorf("upload %s: %w", key, err)
		}
		uploaded++
		return nil
	})
	if err != nil {
		return uploaded, err
	}
	log.Info("uploaded artifacts", "bucket", u.bucket, "prefix", prefix, "objects", uploaded)
	return uploaded, nil
}

func contentTypeFor(path string) string {
	switch filepath.Ext(path) {
	case ".png":
		return "image/png"
	case ".json":
		return "application/json"
	case ".html":
		return "text/html; charset=utf-8"
	case ".md":
		return "text/markdown; charset=utf-8"
	default:
		return "application/octet-stream"
	}
}
