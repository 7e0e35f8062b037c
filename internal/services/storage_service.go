// internal/services/storage_service.go
package services

import (
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/google/uuid"

	"github.com/atelierhub/marketplace-backend/internal/apperrors"
	"github.com/atelierhub/marketplace-backend/internal/config"
)

// StorageService uploads media assets to S3. Public URLs go through
// CloudFront when a distribution is configured.
type StorageService struct {
	s3Client *s3.S3
	cfg      *config.Config
}

var allowedImageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

const maxImageSize = 5 << 20 // 5 MiB

func NewStorageService(cfg *config.Config) (*StorageService, error) {
	sess, err := session.NewSession(&aws.Config{
		Region: aws.String(cfg.AWS.Region),
		Credentials: credentials.NewStaticCredentials(
			cfg.AWS.AccessKeyID,
			cfg.AWS.SecretAccessKey,
			"",
		),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS session: %w", err)
	}

	return &StorageService{
		s3Client: s3.New(sess),
		cfg:      cfg,
	}, nil
}

// UploadImage stores an image under the given prefix and returns its public
// URL.
func (s *StorageService) UploadImage(file *multipart.FileHeader, prefix string) (string, error) {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedImageExtensions[ext] {
		return "", apperrors.InvalidInput("unsupported image type: %s", ext)
	}
	if file.Size > maxImageSize {
		return "", apperrors.InvalidInput("image exceeds the 5MB limit")
	}

	src, err := file.Open()
	if err != nil {
		return "", apperrors.Internal(err, "failed to open uploaded file")
	}
	defer src.Close()

	key := fmt.Sprintf("%s/%d-%s%s", prefix, time.Now().Unix(), uuid.New().String(), ext)

	_, err = s.s3Client.PutObject(&s3.PutObjectInput{
		Bucket:      aws.String(s.cfg.AWS.S3Bucket),
		Key:         aws.String(key),
		Body:        aws.ReadSeekCloser(src),
		ContentType: aws.String(contentTypeForExt(ext)),
	})
	if err != nil {
		return "", apperrors.Internal(err, "failed to upload to S3")
	}

	return s.publicURL(key), nil
}

func (s *StorageService) DeleteObject(objectURL string) error {
	key := s.keyFromURL(objectURL)
	if key == "" {
		return apperrors.InvalidInput("URL does not belong to this bucket")
	}

	_, err := s.s3Client.DeleteObject(&s3.DeleteObjectInput{
		Bucket: aws.String(s.cfg.AWS.S3Bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return apperrors.Internal(err, "failed to delete from S3")
	}
	return nil
}

func (s *StorageService) publicURL(key string) string {
	if s.cfg.AWS.CloudFrontURL != "" {
		return fmt.Sprintf("%s/%s", strings.TrimRight(s.cfg.AWS.CloudFrontURL, "/"), key)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.cfg.AWS.S3Bucket, s.cfg.AWS.Region, key)
}

func (s *StorageService) keyFromURL(objectURL string) string {
	prefixes := []string{
		fmt.Sprintf("https://%s.s3.%s.amazonaws.com/", s.cfg.AWS.S3Bucket, s.cfg.AWS.Region),
	}
	if s.cfg.AWS.CloudFrontURL != "" {
		prefixes = append(prefixes, strings.TrimRight(s.cfg.AWS.CloudFrontURL, "/")+"/")
	}
	for _, p := range prefixes {
		if strings.HasPrefix(objectURL, p) {
			return strings.TrimPrefix(objectURL, p)
		}
	}
	return ""
}

func contentTypeForExt(ext string) string {
	switch ext {
	case ".png":
		return "image/png"
	case ".webp":
		return "image/webp"
	default:
		return "image/jpeg"
	}
}
