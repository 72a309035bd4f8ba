package storage

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/ikkim/dessert-review-backend/pkg/logger"
)

// 허용 이미지 확장자와 Content-Type
var allowedImageTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".webp": "image/webp",
	".heic": "image/heic",
}

// MaxImageSize 업로드 이미지 최대 크기 (10MB)
const MaxImageSize int64 = 10 << 20

// ObjectName 저장소 객체 위치 (middlePath/path + extension)
type ObjectName struct {
	MiddlePath string
	Path       string
	Extension  string
}

func (o ObjectName) Key() string {
	return path.Join(o.MiddlePath, o.Path+o.Extension)
}

// NewObjectName folder/yyyyMMdd 아래 uuid 이름을 만든다
func NewObjectName(folder, ext string, now time.Time) ObjectName {
	return ObjectName{
		MiddlePath: path.Join(folder, now.Format("20060102")),
		Path:       uuid.New().String(),
		Extension:  strings.ToLower(ext),
	}
}

// ContentTypeFor 확장자에 맞는 Content-Type (허용되지 않으면 false)
func ContentTypeFor(ext string) (string, bool) {
	ct, ok := allowedImageTypes[strings.ToLower(ext)]
	return ct, ok
}

type S3Storage struct {
	client  *s3.Client
	bucket  string
	baseURL string
}

func NewS3Storage(region, bucket, accessKeyID, secretAccessKey, baseURL string) *S3Storage {
	var cfg aws.Config
	var err error

	// If credentials are provided, use them. Otherwise, use default credential chain
	if accessKeyID != "" && secretAccessKey != "" {
		cfg = aws.Config{
			Region: region,
			Credentials: credentials.NewStaticCredentialsProvider(
				accessKeyID,
				secretAccessKey,
				"",
			),
		}
	} else {
		cfg, err = config.LoadDefaultConfig(context.Background(),
			config.WithRegion(region),
		)
		if err != nil {
			cfg = aws.Config{
				Region: region,
			}
		}
	}

	return &S3Storage{
		client:  s3.NewFromConfig(cfg),
		bucket:  bucket,
		baseURL: baseURL,
	}
}

// Upload 객체 업로드 후 접근 URL 반환
func (s *S3Storage) Upload(ctx context.Context, key, contentType string, data []byte) (string, error) {
	logger.Debug("Uploading object to S3", map[string]interface{}{
		"bucket": s.bucket,
		"key":    key,
		"size":   len(data),
	})

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(data))),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload object: %w", err)
	}
	return s.URL(key), nil
}

// Delete 객체 삭제 (없는 객체도 성공으로 처리)
func (s *S3Storage) Delete(ctx context.Context, key string) error {
	logger.Debug("Deleting object from S3", map[string]interface{}{
		"bucket": s.bucket,
		"key":    key,
	})

	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete object: %w", err)
	}
	return nil
}

// URL 객체 접근 URL
func (s *S3Storage) URL(key string) string {
	if s.baseURL != "" {
		// Use CloudFront or custom domain
		return fmt.Sprintf("%s/%s", strings.TrimRight(s.baseURL, "/"), key)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.client.Options().Region, key)
}

// ValidateFileSize validates the file size
func ValidateFileSize(size int64, maxSize int64) error {
	if size <= 0 {
		return fmt.Errorf("file is empty")
	}
	if size > maxSize {
		return fmt.Errorf("file size exceeds maximum allowed size of %d bytes", maxSize)
	}
	return nil
}
