// Package storage issues presigned upload URLs against an S3-compatible bucket (AWS S3, Cloudflare R2, MinIO).
package storage

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/ghostpin/ghostpin-api/internal/config"
)

var ErrUnsupportedContentType = errors.New("unsupported content type")

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
	"image/heic": true,
}

type PresignedUpload struct {
	UploadURL string    `json:"upload_url"`
	Key       string    `json:"key"`
	PublicURL string    `json:"public_url"`
	ExpiresAt time.Time `json:"expires_at"`
}

type Presigner struct {
	client *s3.Client
	conf   *config.StorageConfig
	now    func() time.Time
}

func NewPresigner(conf *config.StorageConfig) *Presigner {
	opts := s3.Options{
		Credentials: credentials.NewStaticCredentialsProvider(conf.AccessKeyID, conf.SecretAccessKey, ""),
		Region:      conf.Region,
	}
	if conf.Endpoint != "" {
		opts.BaseEndpoint = aws.String(conf.Endpoint)
		opts.UsePathStyle = true
	}

	return &Presigner{
		client: s3.New(opts),
		conf:   conf,
		now:    time.Now,
	}
}

// PresignCheckInProof returns a PUT URL for a check-in photo owned by userID.
func (p *Presigner) PresignCheckInProof(ctx context.Context, userID uint, fileName, contentType string) (PresignedUpload, error) {
	if !allowedImageTypes[strings.ToLower(contentType)] {
		return PresignedUpload{}, ErrUnsupportedContentType
	}

	now := p.now()
	key := CheckInProofKey(userID, fileName, now)

	presigner := s3.NewPresignClient(p.client)
	req, err := presigner.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(p.conf.Bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}, func(opts *s3.PresignOptions) {
		opts.Expires = p.conf.PresignTTL
	})
	if err != nil {
		return PresignedUpload{}, fmt.Errorf("presigner.PresignPutObject -> %w", err)
	}

	return PresignedUpload{
		UploadURL: req.URL,
		Key:       key,
		PublicURL: p.publicURL(key),
		ExpiresAt: now.Add(p.conf.PresignTTL),
	}, nil
}

func (p *Presigner) publicURL(key string) string {
	if p.conf.PublicURL == "" {
		return ""
	}

	return strings.TrimRight(p.conf.PublicURL, "/") + "/" + key
}

func CheckInProofKey(userID uint, fileName string, at time.Time) string {
	ext := strings.ToLower(filepath.Ext(fileName))

	return fmt.Sprintf("checkins/%d/%d_%s%s", userID, at.Unix(), uuid.New().String(), ext)
}
