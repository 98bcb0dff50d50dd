package storage

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/bayup/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
)

func TestNewS3ObjectStorage_Validation(t *testing.T) {
	t.Run("nil config returns error", func(t *testing.T) {
		_, err := NewS3ObjectStorage(nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "configuration is required")
	})

	t.Run("missing bucket returns error", func(t *testing.T) {
		_, err := NewS3ObjectStorage(&config.StorageConfig{AccessKeyID: "k", SecretAccessKey: "s"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "bucket is required")
	})

	t.Run("missing access key returns error", func(t *testing.T) {
		_, err := NewS3ObjectStorage(&config.StorageConfig{Bucket: "b", SecretAccessKey: "s"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "access key is required")
	})

	t.Run("missing secret key returns error", func(t *testing.T) {
		_, err := NewS3ObjectStorage(&config.StorageConfig{Bucket: "b", AccessKeyID: "k"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "secret key is required")
	})

	t.Run("default presign expiration is one hour", func(t *testing.T) {
		storage, err := NewS3ObjectStorage(&config.StorageConfig{Bucket: "b", AccessKeyID: "k", SecretAccessKey: "s"})
		require.NoError(t, err)
		assert.Equal(t, time.Hour, storage.presignExpiration)
		assert.Equal(t, "b", storage.GetBucket())
	})
}

func TestS3ObjectStorage_PublicURL(t *testing.T) {
	t.Run("aws virtual host", func(t *testing.T) {
		storage, err := NewS3ObjectStorage(&config.StorageConfig{
			Bucket: "bayup-media", Region: "sa-east-1", AccessKeyID: "k", SecretAccessKey: "s",
		})
		require.NoError(t, err)
		assert.Equal(t, "https://bayup-media.s3.sa-east-1.amazonaws.com/uploads/a.png", storage.PublicURL("uploads/a.png"))
	})

	t.Run("custom endpoint", func(t *testing.T) {
		storage, err := NewS3ObjectStorage(&config.StorageConfig{
			Bucket: "media", Endpoint: "http://localhost:9000", UsePathStyle: true, AccessKeyID: "k", SecretAccessKey: "s",
		})
		require.NoError(t, err)
		assert.Equal(t, "http://localhost:9000/media/uploads/a.png", storage.PublicURL("uploads/a.png"))
	})

	t.Run("explicit public base", func(t *testing.T) {
		storage, err := NewS3ObjectStorage(&config.StorageConfig{
			Bucket: "media", PublicBaseURL: "https://cdn.bayup.com.co/", AccessKeyID: "k", SecretAccessKey: "s",
		})
		require.NoError(t, err)
		assert.Equal(t, "https://cdn.bayup.com.co/uploads/a.png", storage.PublicURL("/uploads/a.png"))
	})
}

func TestS3ObjectStorageOptions(t *testing.T) {
	cfg := &config.StorageConfig{Bucket: "b", AccessKeyID: "k", SecretAccessKey: "s", Endpoint: "http://localhost:9000"}

	t.Run("WithLogger sets custom logger", func(t *testing.T) {
		storage, err := NewS3ObjectStorage(cfg, WithLogger(zaptest.NewLogger(t)))
		require.NoError(t, err)
		assert.NotNil(t, storage.logger)
	})

	t.Run("WithPresignExpiration sets custom duration", func(t *testing.T) {
		storage, err := NewS3ObjectStorage(cfg, WithPresignExpiration(10*time.Minute))
		require.NoError(t, err)
		assert.Equal(t, 10*time.Minute, storage.presignExpiration)
	})
}

func TestS3ObjectStorage_GenerateUploadURL(t *testing.T) {
	storage, err := NewS3ObjectStorage(&config.StorageConfig{
		Bucket:          "test-bucket",
		AccessKeyID:     "test-key",
		SecretAccessKey: "test-secret",
		Endpoint:        "http://localhost:9000",
		UsePathStyle:    true,
	})
	require.NoError(t, err)

	t.Run("empty storage key returns error", func(t *testing.T) {
		url, _, err := storage.GenerateUploadURL(context.Background(), "", "image/jpeg", time.Hour)
		require.Error(t, err)
		assert.Empty(t, url)
	})

	t.Run("generates presigned URL offline", func(t *testing.T) {
		url, expiresAt, err := storage.GenerateUploadURL(context.Background(), "uploads/key.jpg", "image/jpeg", time.Hour)
		require.NoError(t, err)
		assert.True(t, strings.Contains(url, "localhost:9000"))
		assert.True(t, strings.Contains(url, "test-bucket"))
		assert.Contains(t, url, "X-Amz-Expires=3600")
		assert.True(t, expiresAt.After(time.Now().Add(59*time.Minute)))
	})
}

func TestNewObjectStorage_FallsBackToStub(t *testing.T) {
	s, err := NewObjectStorage(config.StorageConfig{Enabled: false}, zap.NewNop())
	require.NoError(t, err)
	_, ok := s.(*StubObjectStorage)
	assert.True(t, ok)
}
