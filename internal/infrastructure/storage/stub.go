package storage

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/bayup/backend/internal/application/uploads"
)

const defaultStubBaseURL = "https://storage.example.com"

// StubObjectStorage hands out fake upload URLs for local development when
// S3 is not configured. Nothing is stored.
type StubObjectStorage struct {
	BaseURL string
}

// NewStubObjectStorage creates a new StubObjectStorage; an empty base URL
// falls back to https://storage.example.com
func NewStubObjectStorage(baseURL string) *StubObjectStorage {
	baseURL = strings.TrimRight(baseURL, "/")
	if baseURL == "" {
		baseURL = defaultStubBaseURL
	}
	return &StubObjectStorage{BaseURL: baseURL}
}

// Ensure StubObjectStorage implements uploads.ObjectStorage
var _ uploads.ObjectStorage = (*StubObjectStorage)(nil)

// GenerateUploadURL generates a stub presigned URL for uploading a file
func (s *StubObjectStorage) GenerateUploadURL(
	ctx context.Context,
	storageKey, contentType string,
	expiresIn time.Duration,
) (string, time.Time, error) {
	if storageKey == "" {
		return "", time.Time{}, errors.New("storage key is required")
	}

	expiresAt := time.Now().Add(expiresIn)
	url := s.BaseURL + "/upload/" + storageKey + "?expires=" + expiresAt.Format(time.RFC3339)
	return url, expiresAt, nil
}

// PublicURL returns the stub public URL of a key
func (s *StubObjectStorage) PublicURL(storageKey string) string {
	return s.BaseURL + "/" + storageKey
}
