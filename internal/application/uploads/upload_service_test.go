package uploads

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type recordingStorage struct {
	key         string
	contentType string
	expiresIn   time.Duration
	err         error
}

func (r *recordingStorage) GenerateUploadURL(_ context.Context, key, contentType string, expiresIn time.Duration) (string, time.Time, error) {
	if r.err != nil {
		return "", time.Time{}, r.err
	}
	r.key, r.contentType, r.expiresIn = key, contentType, expiresIn
	return "https://bucket.example.com/" + key + "?sig=x", time.Now().Add(expiresIn), nil
}

func (r *recordingStorage) PublicURL(key string) string {
	return "https://cdn.example.com/" + key
}

func TestUploadService_Presign(t *testing.T) {
	storage := &recordingStorage{}
	svc := NewUploadService(storage, zap.NewNop())

	resp, err := svc.Presign(context.Background(), uuid.New(), PresignRequest{Filename: "Foto Producto.JPG", ContentType: "image/jpeg"})
	require.NoError(t, err)
	assert.Regexp(t, `^uploads/[0-9a-f-]{36}\.jpg$`, resp.Key)
	assert.Equal(t, "https://cdn.example.com/"+resp.Key, resp.PublicURL)
	assert.Equal(t, 3600, resp.ExpiresIn)
	assert.Equal(t, time.Hour, storage.expiresIn)
	assert.Equal(t, "image/jpeg", storage.contentType)
}

func TestUploadService_PresignErrors(t *testing.T) {
	svc := NewUploadService(&recordingStorage{}, zap.NewNop())
	_, err := svc.Presign(context.Background(), uuid.New(), PresignRequest{Filename: "a.png", ContentType: "png"})
	assert.Error(t, err)

	failing := NewUploadService(&recordingStorage{err: errors.New("s3 down")}, zap.NewNop())
	_, err = failing.Presign(context.Background(), uuid.New(), PresignRequest{Filename: "a.png", ContentType: "image/png"})
	assert.ErrorContains(t, err, "s3 down")
}

func TestObjectKey(t *testing.T) {
	assert.Regexp(t, `\.bin$`, ObjectKey("LICENSE"))
	assert.Regexp(t, `\.pdf$`, ObjectKey("factura.PDF"))
	assert.NotEqual(t, ObjectKey("a.png"), ObjectKey("a.png"))
}
