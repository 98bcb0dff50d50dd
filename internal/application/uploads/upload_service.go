package uploads

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/bayup/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PresignExpiry is how long an upload URL stays valid
const PresignExpiry = time.Hour

// KeyPrefix is the folder every upload is written under
const KeyPrefix = "uploads/"

// ObjectStorage issues presigned upload URLs
type ObjectStorage interface {
	GenerateUploadURL(ctx context.Context, storageKey, contentType string, expiresIn time.Duration) (string, time.Time, error)
	PublicURL(storageKey string) string
}

// PresignRequest asks for an upload slot
type PresignRequest struct {
	Filename    string `json:"filename" binding:"required,max=255"`
	ContentType string `json:"content_type" binding:"required,max=100"`
}

// PresignResponse is the upload slot
type PresignResponse struct {
	UploadURL string    `json:"upload_url"`
	PublicURL string    `json:"public_url"`
	Key       string    `json:"key"`
	ExpiresAt time.Time `json:"expires_at"`
	ExpiresIn int       `json:"expires_in"`
}

// UploadService hands out presigned PUT URLs
type UploadService struct {
	storage ObjectStorage
	logger  *zap.Logger
}

// NewUploadService creates a new UploadService
func NewUploadService(storage ObjectStorage, logger *zap.Logger) *UploadService {
	return &UploadService{storage: storage, logger: logger}
}

// Presign returns a presigned PUT URL for uploads/{uuid}.{ext}
func (s *UploadService) Presign(ctx context.Context, tenantID uuid.UUID, req PresignRequest) (*PresignResponse, error) {
	contentType := strings.TrimSpace(req.ContentType)
	if !strings.Contains(contentType, "/") {
		return nil, shared.NewDomainErrorf("INVALID_CONTENT_TYPE", "Invalid content type %q", req.ContentType)
	}

	key := ObjectKey(req.Filename)
	uploadURL, expiresAt, err := s.storage.GenerateUploadURL(ctx, key, contentType, PresignExpiry)
	if err != nil {
		return nil, fmt.Errorf("presign upload: %w", err)
	}

	s.logger.Debug("upload presigned",
		zap.String("tenant_id", tenantID.String()),
		zap.String("key", key),
		zap.String("content_type", contentType),
	)
	return &PresignResponse{
		UploadURL: uploadURL,
		PublicURL: s.storage.PublicURL(key),
		Key:       key,
		ExpiresAt: expiresAt,
		ExpiresIn: int(PresignExpiry.Seconds()),
	}, nil
}

// ObjectKey builds a fresh object key keeping the file extension
func ObjectKey(filename string) string {
	ext := strings.ToLower(strings.TrimPrefix(path.Ext(strings.TrimSpace(filename)), "."))
	if ext == "" || len(ext) > 10 {
		ext = "bin"
	}
	return KeyPrefix + uuid.NewString() + "." + ext
}
