package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dwellify/dwellify/internal/config"
)

// GetTempUploadURL returns a presigned URL for uploading a property
// photo or lease document, plus the object key the client should
// reference afterwards.
func (u Usecase) GetTempUploadURL(ctx context.Context, name string) (string, string, error) {
	if u.fileStorageProvider == nil {
		return "", "", fmt.Errorf("file storage is not configured")
	}
	userID, ok := ctx.Value(config.CTX_KEY_USER_ID).(uuid.UUID)
	if !ok {
		return "", "", fmt.Errorf("user id not found in context")
	}
	path := fmt.Sprintf("%s-%d/%s", userID.String()[:8], time.Now().Unix(), name)
	url, err := u.fileStorageProvider.GetTempUploadURL(ctx, path)
	if err != nil {
		return "", "", err
	}
	return url, path, nil
}

func (u Usecase) GetPublicFileURL(ctx context.Context) (string, error) {
	if u.fileStorageProvider == nil {
		return "", fmt.Errorf("file storage is not configured")
	}
	return u.fileStorageProvider.GetPublicURL(ctx)
}
