package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	cfg "github.com/easy-post-ia-1/easy-post-ia-backend/configs"
)

// StorageService stores generated image artifacts and hands back public URLs.
type StorageService interface {
	UploadBase64(ctx context.Context, base64Data, key string) (string, error)
}

type storageService struct {
	config cfg.Config
}

func NewStorageService(cfg cfg.Config) StorageService {
	return &storageService{config: cfg}
}

func (s *storageService) s3Client(ctx context.Context) (*s3.Client, error) {
	awsCfg, err := config.LoadDefaultConfig(ctx,
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(s.config.S3.AccessKey, s.config.S3.SecretKey, "")),
		config.WithRegion(s.config.S3.Region),
	)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}

	return s3.NewFromConfig(awsCfg), nil
}

// UploadBase64 decodes the artifact and puts it in the post-images bucket.
func (s *storageService) UploadBase64(ctx context.Context, base64Data, key string) (string, error) {
	decoded, err := base64.StdEncoding.DecodeString(base64Data)
	if err != nil {
		slog.Info(err.Error())
		return "", fmt.Errorf("invalid base64 artifact: %w", err)
	}

	client, err := s.s3Client(ctx)
	if err != nil {
		return "", err
	}

	input := &s3.PutObjectInput{
		Bucket:      aws.String(s.config.S3.BucketName),
		Key:         aws.String(key),
		Body:        bytes.NewReader(decoded),
		ContentType: aws.String("image/jpeg"),
	}

	_, err = client.PutObject(ctx, input)
	if err != nil {
		slog.Info(err.Error())
		return "", err
	}

	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.config.S3.BucketName, s.config.S3.Region, key), nil
}
