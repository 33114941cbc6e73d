// services/photo_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	appconfig "wedding-backend/config"
)

// PhotoService stores gallery photos in S3.
type PhotoService struct {
	client    *s3.Client
	bucket    string
	urlPrefix string
}

func NewPhotoService(cfg *appconfig.App) (*PhotoService, error) {
	svc := &PhotoService{
		bucket:    cfg.S3Bucket,
		urlPrefix: strings.TrimSuffix(cfg.S3URLPrefix, "/"),
	}
	if svc.urlPrefix == "" {
		svc.urlPrefix = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.S3Bucket, cfg.AWSRegion)
	}

	if cfg.AWSAccessKey != "" && cfg.AWSSecretKey != "" {
		awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
			awsconfig.WithRegion(cfg.AWSRegion),
			awsconfig.WithCredentialsProvider(
				credentials.NewStaticCredentialsProvider(cfg.AWSAccessKey, cfg.AWSSecretKey, "")),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to load AWS config: %w", err)
		}
		svc.client = s3.NewFromConfig(awsCfg)
	}

	return svc, nil
}

// Upload puts the object and returns its public URL.
func (s *PhotoService) Upload(ctx context.Context, key string, body io.Reader, contentType string) (string, error) {
	if s.client == nil {
		return "", errors.New("S3 client not initialized - check credentials")
	}

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("uploading %s: %w", key, err)
	}

	return s.urlPrefix + "/" + key, nil
}

// Delete removes the object.
func (s *PhotoService) Delete(ctx context.Context, key string) error {
	if s.client == nil {
		return errors.New("S3 client not initialized - check credentials")
	}

	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("deleting %s: %w", key, err)
	}
	return nil
}
