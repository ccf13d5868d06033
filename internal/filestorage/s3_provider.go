package filestorage

import (
	"context"
	"fmt"
	"path"
	"time"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	consts "github.com/dwellify/dwellify/internal/config"
)

// S3Storage is the AWS-hosted variant of the file storage provider.
type S3Storage struct {
	client   *s3.Client
	bucket   string
	tempPath string
}

func NewS3Storage(ctx context.Context, bucket string, tempPath string) (*S3Storage, error) {
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return &S3Storage{
		client:   s3.NewFromConfig(cfg),
		bucket:   bucket,
		tempPath: tempPath,
	}, nil
}

func (f *S3Storage) GetTempUploadURL(ctx context.Context, name string) (string, error) {
	var (
		key           = path.Join(f.tempPath, name)
		presignClient = s3.NewPresignClient(f.client)
	)
	req, err := presignClient.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket: &f.bucket,
		Key:    &key,
	}, func(po *s3.PresignOptions) {
		po.Expires = time.Minute * consts.PRESIGN_URL_EXPIRE_MINUTES
	})
	if err != nil {
		return "", err
	}
	return req.URL, nil
}

func (f *S3Storage) GetPublicURL(_ context.Context) (string, error) {
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", f.bucket, "ap-southeast-1", "public"), nil
}
