package services

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Service issues presigned URLs for client-side uploads and read-time
// resolution of image message content. Injected rather than package-global
// so the message store can resolve URLs and tests can leave it out.
type S3Service struct {
	Bucket    string
	presigner *s3.PresignClient
}

func NewS3Service(ctx context.Context, region, bucket string) (*S3Service, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, err
	}
	client := s3.NewFromConfig(cfg)
	return &S3Service{
		Bucket:    bucket,
		presigner: s3.NewPresignClient(client),
	}, nil
}

// GenerateUploadURL generates a presigned URL for uploading a file and
// returns the URL together with the object key the client must send as
// the image message content.
func (s *S3Service) GenerateUploadURL(ctx context.Context, fileName, fileType string) (string, string, error) {
	key := "chat-images/" + time.Now().Format("20060102150405") + "-" + fileName
	params := &s3.PutObjectInput{
		Bucket:      aws.String(s.Bucket),
		Key:         aws.String(key),
		ContentType: aws.String(fileType),
	}
	presigned, err := s.presigner.PresignPutObject(ctx, params, s3.WithPresignExpires(5*time.Minute))
	if err != nil {
		return "", "", err
	}
	return presigned.URL, key, nil
}

// GenerateReadURL generates a presigned URL for reading a stored object
func (s *S3Service) GenerateReadURL(ctx context.Context, key string) (string, error) {
	params := &s3.GetObjectInput{
		Bucket: aws.String(s.Bucket),
		Key:    aws.String(key),
	}
	presigned, err := s.presigner.PresignGetObject(ctx, params, s3.WithPresignExpires(5*time.Minute))
	if err != nil {
		return "", err
	}
	return presigned.URL, nil
}
