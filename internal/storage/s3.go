package storage

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"mime"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/charllys777/appsaloes/internal/config"
)

// MaxUploadBytes is the hard ceiling on image uploads.
const MaxUploadBytes = 5 * 1024 * 1024

// ErrFileTooLarge is returned before any network call is made.
var ErrFileTooLarge = errors.New("file exceeds the 5MB upload limit")

// S3API is the subset of the S3 client used by Uploader.
type S3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Uploader stores tenant images in a public bucket and hands back the
// URL the profile or portfolio will embed.
type Uploader struct {
	client    S3API
	bucket    string
	publicURL string
	now       func() time.Time
}

func NewUploader(ctx context.Context, cfg config.StorageConfig) (*Uploader, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return NewUploaderWithClient(s3.NewFromConfig(awsCfg), cfg), nil
}

func NewUploaderWithClient(client S3API, cfg config.StorageConfig) *Uploader {
	publicURL := cfg.PublicURL
	if publicURL == "" {
		publicURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, cfg.Region)
	}
	return &Uploader{
		client:    client,
		bucket:    cfg.Bucket,
		publicURL: strings.TrimRight(publicURL, "/"),
		now:       time.Now,
	}
}

// Upload writes one image under a fresh timestamped key and returns its
// public URL. Oversized payloads are rejected locally.
func (u *Uploader) Upload(ctx context.Context, filename string, data []byte) (string, error) {
	if len(data) > MaxUploadBytes {
		return "", ErrFileTooLarge
	}

	key, err := u.objectKey(filename)
	if err != nil {
		return "", err
	}

	_, err = u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType(filename)),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload image: %w", err)
	}
	return fmt.Sprintf("%s/%s", u.publicURL, key), nil
}

// objectKey mirrors the dashboard's naming: upload time plus a random
// suffix, keeping the original extension.
func (u *Uploader) objectKey(filename string) (string, error) {
	suffix := make([]byte, 6)
	if _, err := rand.Read(suffix); err != nil {
		return "", fmt.Errorf("failed to generate object key: %w", err)
	}

	ext := strings.ToLower(path.Ext(filename))
	return fmt.Sprintf("images/%d-%s%s", u.now().UnixMilli(), hex.EncodeToString(suffix), ext), nil
}

func contentType(filename string) string {
	if ct := mime.TypeByExtension(strings.ToLower(path.Ext(filename))); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
