// Package blob implements the image blob-storage collaborator on S3.
package blob

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log/slog"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/Timicreates/dev-events/internal/domain"
)

// MaxImageSize is the maximum accepted event image size (5MB).
const MaxImageSize = 5 * 1024 * 1024

// folder is the bucket prefix for event images.
const folder = "dev-events"

// allowedImageTypes maps accepted image MIME types to file extensions.
var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/jpg":  ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

// ValidImageType reports whether contentType is an accepted event image type.
func ValidImageType(contentType string) bool {
	_, ok := allowedImageTypes[strings.ToLower(contentType)]
	return ok
}

// Config holds S3 client configuration.
type Config struct {
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	Bucket          string
}

type s3Store struct {
	uploader *manager.Uploader
	bucket   string
	region   string
}

// NewS3Store creates an ImageStore backed by S3. When no static
// credentials are configured the default AWS credential chain is used.
func NewS3Store(ctx context.Context, cfg Config, logger *slog.Logger) (domain.ImageStore, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	} else {
		logger.Warn("s3 image store using default credential chain")
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	client := s3.NewFromConfig(awsCfg)
	return &s3Store{
		uploader: manager.NewUploader(client),
		bucket:   cfg.Bucket,
		region:   cfg.Region,
	}, nil
}

// Upload stores the image under the dev-events prefix and returns its
// public URL. Objects are uploaded public-read: the returned URL goes
// straight into the event record for page rendering.
func (s *s3Store) Upload(ctx context.Context, filename, contentType string, data []byte) (string, error) {
	ext := allowedImageTypes[strings.ToLower(contentType)]
	if ext == "" {
		return "", fmt.Errorf("unsupported image type: %s", contentType)
	}
	base := strings.TrimSuffix(path.Base(filename), path.Ext(filename))
	if base == "" || base == "." {
		base = "image"
	}
	suffix := make([]byte, 8)
	if _, err := rand.Read(suffix); err != nil {
		return "", fmt.Errorf("generate object suffix: %w", err)
	}
	key := path.Join(folder, base+"-"+hex.EncodeToString(suffix)+ext)

	_, err := s.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
		ACL:         types.ObjectCannedACLPublicRead,
	})
	if err != nil {
		return "", fmt.Errorf("upload image: %w", err)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key), nil
}
